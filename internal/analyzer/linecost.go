package analyzer

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
)

// LineCosts builds the per-line execution-count table. Each statement is
// charged the product of the iteration measures of its enclosing loops; a
// loop header itself is charged once per iteration it drives. The table is
// explanatory output and never feeds back into the final bound.
func LineCosts(prog *ast.Program, source string) []models.LineCost {
	lines := strings.Split(source, "\n")
	var rows []models.LineCost

	emit := func(pos int, cost models.Measure, reason string) {
		code := ""
		if pos >= 1 && pos <= len(lines) {
			code = strings.TrimSpace(lines[pos-1])
		}
		rows = append(rows, models.LineCost{
			Line:   pos,
			Code:   code,
			Cost:   cost.Notation(),
			Reason: reason,
		})
	}

	var costBlock func(block *ast.Block, enclosing models.Measure, depth int)
	costBlock = func(block *ast.Block, enclosing models.Measure, depth int) {
		if block == nil {
			return
		}
		mids := midVariables(block)
		for _, stmt := range block.Stmts {
			switch s := stmt.(type) {
			case *ast.ForLoop:
				shape := classifyFor(s)
				inner := enclosing.Times(shape.Iterations)
				emit(s.Pos().Line, inner, loopReason(shape, depth))
				costBlock(s.Body, inner, depth+1)
			case *ast.WhileLoop:
				shape := classifyCondLoop(s.Cond, s.Body, mids)
				inner := enclosing.Times(shape.Iterations)
				emit(s.Pos().Line, inner, loopReason(shape, depth))
				costBlock(s.Body, inner, depth+1)
			case *ast.RepeatUntilLoop:
				shape := classifyCondLoop(s.Cond, s.Body, mids)
				inner := enclosing.Times(shape.Iterations)
				emit(s.Pos().Line, inner, loopReason(shape, depth))
				costBlock(s.Body, inner, depth+1)
			case *ast.IfElse:
				emit(s.Pos().Line, enclosing, stmtReason(enclosing, depth))
				costBlock(s.Then, enclosing, depth)
				costBlock(s.Else, enclosing, depth)
			case *ast.NoOp:
				emit(s.Pos().Line, models.Constant, "declaration only")
			default:
				emit(stmt.Pos().Line, enclosing, stmtReason(enclosing, depth))
			}
		}
	}

	for _, proc := range prog.Procedures {
		costBlock(proc.Body, models.Constant, 0)
	}
	costBlock(prog.Main, models.Constant, 0)
	return rows
}

func loopReason(shape loopShape, depth int) string {
	var what string
	switch shape.Kind {
	case "logarithmic":
		what = "loop halves its range each pass"
	case "constant":
		what = "loop runs a constant number of times"
	case "unresolved":
		what = "loop progress not recognized, assumed linear"
	default:
		what = "loop runs once per element"
	}
	if depth > 0 {
		return fmt.Sprintf("%s, nested %d deep", what, depth)
	}
	return what
}

func stmtReason(enclosing models.Measure, depth int) string {
	if depth == 0 {
		return "executes once"
	}
	return fmt.Sprintf("inside %d nested loop(s), executes %s times", depth, enclosing.Notation())
}
