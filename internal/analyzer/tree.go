package analyzer

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/models"
)

// DefaultTreeDepth bounds the recursion-tree expansion when the caller
// does not choose one.
const DefaultTreeDepth = 6

// BuildTree expands a recurrence into a bounded per-level view: how many
// subproblems each depth holds, how large they are, and what the level
// costs. The tree illustrates the recurrence; the bound always comes from
// the solver or the structural engine.
func BuildTree(rel *models.RecurrenceRelation, maxDepth int) *models.RecursionTree {
	if rel == nil || len(rel.Terms) == 0 || rel.Unresolved() {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultTreeDepth
	}

	branching := 0
	for _, t := range rel.Terms {
		branching += t.Coeff
	}

	tree := &models.RecursionTree{
		Structure: describeStructure(rel, branching),
		Truncated: true,
	}

	nodes := 1
	for depth := 0; depth <= maxDepth; depth++ {
		size := sizeLabel(rel.Terms, depth)
		tree.Levels = append(tree.Levels, models.TreeLevel{
			Depth:     depth,
			Nodes:     nodes,
			SizeLabel: size,
			CostLabel: costLabel(rel.Extra, nodes, size),
		})
		nodes *= branching
	}

	tree.Total = fmt.Sprintf("T(n) = sum of the level costs, continued past depth %d until the base case", maxDepth)
	return tree
}

func describeStructure(rel *models.RecurrenceRelation, branching int) string {
	kinds := make([]string, len(rel.Terms))
	for i, t := range rel.Terms {
		if t.Op == models.OpDiv {
			kinds[i] = fmt.Sprintf("%d of size n/%g", t.Coeff, t.Amount)
		} else {
			kinds[i] = fmt.Sprintf("%d of size n-%g", t.Coeff, t.Amount)
		}
	}
	return fmt.Sprintf("each node spawns %d subproblem(s): %s", branching, strings.Join(kinds, ", "))
}

// sizeLabel renders the problem size at the given depth. Mixed transforms
// track the largest (slowest shrinking) child, which dominates the depth.
func sizeLabel(terms []models.Term, depth int) string {
	if depth == 0 {
		return "n"
	}
	t := slowestTerm(terms)
	if t.Op == models.OpDiv {
		if depth == 1 {
			return fmt.Sprintf("n/%g", t.Amount)
		}
		return fmt.Sprintf("n/%g^%d", t.Amount, depth)
	}
	return fmt.Sprintf("n-%g", t.Amount*float64(depth))
}

// slowestTerm picks the transform whose subproblem stays largest: any
// subtraction beats any division, larger divisors shrink faster.
func slowestTerm(terms []models.Term) models.Term {
	best := terms[0]
	for _, t := range terms[1:] {
		switch {
		case best.Op == models.OpDiv && t.Op == models.OpSub:
			best = t
		case best.Op == t.Op && t.Op == models.OpDiv && t.Amount < best.Amount:
			best = t
		case best.Op == t.Op && t.Op == models.OpSub && t.Amount < best.Amount:
			best = t
		}
	}
	return best
}

func costLabel(extra models.Measure, nodes int, size string) string {
	if extra.IsConstant() {
		if nodes == 1 {
			return "O(1)"
		}
		return fmt.Sprintf("%d · O(1)", nodes)
	}
	per := strings.ReplaceAll(extra.Notation(), "n", fmt.Sprintf("(%s)", size))
	if nodes == 1 {
		return per
	}
	return fmt.Sprintf("%d · %s", nodes, per)
}
