package analyzer

import (
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
)

// patternMatch is a recognized recursive shape with its known case spread.
// Patterns exist because the solver alone produces a single bound: the
// spread between best and worst case (binary search hitting on the first
// probe, quicksort degenerating on sorted input) comes from here.
type patternMatch struct {
	Name        string
	Cases       models.Cases
	Description string
}

var patternTable = map[string]patternMatch{
	"fibonacci": {
		Name:        "fibonacci",
		Cases:       models.Uniform(models.Exponential(models.GoldenRatio)),
		Description: "two self-calls on n-1 and n-2 grow as the golden ratio to the n",
	},
	"hanoi": {
		Name:        "hanoi",
		Cases:       models.Uniform(models.Exponential(2)),
		Description: "doubling self-calls on n-1 double the work per unit of input",
	},
	"binary-search": {
		Name: "binary-search",
		Cases: models.Cases{
			Best:    models.Constant,
			Average: models.Logarithmic,
			Worst:   models.Logarithmic,
		},
		Description: "one self-call on half the range; a lucky first probe ends immediately",
	},
	"merge-sort": {
		Name:        "merge-sort",
		Cases:       models.Uniform(models.Linearithmic),
		Description: "two half-size self-calls plus a linear merge",
	},
	"quicksort": {
		Name: "quicksort",
		Cases: models.Cases{
			Best:    models.Linearithmic,
			Average: models.Linearithmic,
			Worst:   models.Quadratic,
		},
		Description: "partition-based splits are balanced on average but degenerate on adversarial input",
	},
	"linear-recursion": {
		Name:        "linear-recursion",
		Cases:       models.Uniform(models.Linear),
		Description: "a single self-call on n-1 with constant work per level",
	},
}

// classifyPattern matches a recursive procedure against the known shapes.
// It prefers the extracted recurrence when its terms classified cleanly and
// falls back to direct structure checks otherwise.
func classifyPattern(proc *ast.ProcedureDecl, rel *models.RecurrenceRelation) (patternMatch, bool) {
	self := callsTo(proc.Body, proc.Name)
	if len(self) == 0 {
		return patternMatch{}, false
	}

	if len(self) >= 2 && hasCallMatching(proc.Body, proc.Name, "partition", "pivot") {
		return patternTable["quicksort"], true
	}

	if rel == nil || rel.Unresolved() {
		return patternMatch{}, false
	}

	subs, divs := splitTerms(rel.Terms)
	switch {
	case len(divs) == 0 && len(subs) == 2 &&
		subs[0].Coeff == 1 && subs[1].Coeff == 1 &&
		subs[0].Amount+subs[1].Amount == 3 &&
		rel.Extra.IsConstant():
		return patternTable["fibonacci"], true
	case len(divs) == 0 && len(subs) == 1 && subs[0].Coeff >= 2 && rel.Extra.IsConstant():
		match := patternTable["hanoi"]
		match.Cases = models.Uniform(models.Exponential(float64(subs[0].Coeff)))
		return match, true
	case len(divs) == 0 && len(subs) == 1 && subs[0].Coeff == 1 && rel.Extra.IsConstant():
		return patternTable["linear-recursion"], true
	case len(subs) == 0 && len(divs) == 1 && divs[0].Coeff == 1 && rel.Extra.IsConstant():
		return patternTable["binary-search"], true
	case len(subs) == 0 && len(divs) == 1 && divs[0].Coeff == 2 &&
		divs[0].Amount == 2 && rel.Extra.Equal(models.Linear):
		return patternTable["merge-sort"], true
	}
	return patternMatch{}, false
}

func splitTerms(terms []models.Term) (subs, divs []models.Term) {
	for _, t := range terms {
		if t.Op == models.OpDiv {
			divs = append(divs, t)
		} else {
			subs = append(subs, t)
		}
	}
	return subs, divs
}

// hasCallMatching reports whether the body calls a procedure other than
// self whose name contains one of the fragments.
func hasCallMatching(block *ast.Block, self string, fragments ...string) bool {
	found := false
	walkStmts(block, func(stmt ast.Stmt) bool {
		for _, e := range stmtExprs(stmt) {
			walkExprs(e, func(e ast.Expr) {
				call, ok := e.(*ast.CallExpr)
				if !ok || strings.EqualFold(call.Name, self) {
					return
				}
				lower := strings.ToLower(call.Name)
				for _, frag := range fragments {
					if strings.Contains(lower, frag) {
						found = true
					}
				}
			})
		}
		return !found
	})
	return found
}
