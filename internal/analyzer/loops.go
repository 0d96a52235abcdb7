package analyzer

import (
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
)

// loopShape classifies how many iterations a loop performs.
type loopShape struct {
	Iterations models.Measure
	// Kind is "linear", "logarithmic", "constant", "flag" or "unresolved".
	Kind string
	// EarlyExit is set when the loop can stop on a data-dependent flag
	// or an embedded return, lowering its best case.
	EarlyExit bool
	// FlagGuard is set when the condition variable is a boolean flag
	// re-armed conditionally inside the body. Such a loop still runs at
	// most a linear number of passes, but its best case is a single pass.
	FlagGuard bool
}

// classifyFor reads the bounds of a counted loop. A constant-to-constant
// loop is constant; everything else runs a linear number of times in the
// input size, including n-1 or n/2 style bounds.
func classifyFor(loop *ast.ForLoop) loopShape {
	shape := loopShape{Iterations: models.Linear, Kind: "linear"}
	_, fromConst := numberValue(loop.From)
	_, toConst := numberValue(loop.To)
	if fromConst && toConst {
		shape.Iterations = models.Constant
		shape.Kind = "constant"
	}
	if containsReturn(loop.Body) {
		shape.EarlyExit = true
	}
	return shape
}

// classifyCondLoop reads a while or repeat-until loop: the condition's
// variables are matched against the assignments in the body to decide how
// fast the loop makes progress.
func classifyCondLoop(cond ast.Expr, body *ast.Block, mids map[string]bool) loopShape {
	shape := loopShape{Iterations: models.Linear, Kind: "unresolved"}

	condVars := identNames(cond)
	for _, name := range condVars {
		if flagLike(name) {
			shape.EarlyExit = true
		}
		if boolFlagGuard(name, body) {
			shape.EarlyExit = true
			shape.FlagGuard = true
		}
	}
	if containsReturn(body) {
		shape.EarlyExit = true
	}

	for _, name := range condVars {
		switch progressOf(name, body, mids) {
		case progressHalving:
			shape.Iterations = models.Logarithmic
			shape.Kind = "logarithmic"
			return shape
		case progressStepping:
			shape.Iterations = models.Linear
			shape.Kind = "linear"
		}
	}
	if shape.Kind == "unresolved" && shape.FlagGuard {
		shape.Kind = "flag"
	}
	return shape
}

type progress int

const (
	progressNone progress = iota
	progressStepping
	progressHalving
)

// progressOf inspects every assignment to name inside the body and reports
// the strongest progress found. Moving the variable to a midpoint (the
// iterative binary-search update low <- mid + 1) counts as halving.
func progressOf(name string, body *ast.Block, mids map[string]bool) progress {
	found := progressNone
	walkStmts(body, func(stmt ast.Stmt) bool {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			return true
		}
		target, ok := assign.Target.(*ast.Identifier)
		if !ok || !strings.EqualFold(target.Name, name) {
			return true
		}
		switch classifyUpdate(name, assign.Value, mids) {
		case progressHalving:
			found = progressHalving
		case progressStepping:
			if found == progressNone {
				found = progressStepping
			}
		}
		return true
	})
	return found
}

func classifyUpdate(name string, value ast.Expr, mids map[string]bool) progress {
	if _, ok := divisorOf(value, name); ok {
		return progressHalving
	}
	if bin, ok := value.(*ast.BinaryExpr); ok {
		// multiplication by a constant > 1 also takes log n steps to
		// reach an upper bound
		if bin.Op == "*" {
			if id, ok := bin.Left.(*ast.Identifier); ok && strings.EqualFold(id.Name, name) {
				if c, ok := numberValue(bin.Right); ok && c > 1 {
					return progressHalving
				}
			}
		}
		if bin.Op == "+" || bin.Op == "-" {
			if id, ok := bin.Left.(*ast.Identifier); ok {
				if mids[strings.ToLower(id.Name)] {
					return progressHalving
				}
				if strings.EqualFold(id.Name, name) {
					return progressStepping
				}
			}
		}
	}
	if id, ok := value.(*ast.Identifier); ok && mids[strings.ToLower(id.Name)] {
		return progressHalving
	}
	return progressNone
}
