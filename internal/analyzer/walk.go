// Package analyzer derives asymptotic complexity bounds from parsed
// pseudocode. The entry point is Analyzer.Analyze; the remaining files
// implement the passes it runs: per-line costs, the structural engine,
// recurrence extraction, the solver, the recursion tree builder and the
// final resolution policy.
package analyzer

import (
	"math"
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
)

// walkStmts visits every statement in the block, depth first. The visitor
// returns false to stop descending into a statement's children.
func walkStmts(block *ast.Block, visit func(ast.Stmt) bool) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		if !visit(stmt) {
			continue
		}
		switch s := stmt.(type) {
		case *ast.ForLoop:
			walkStmts(s.Body, visit)
		case *ast.WhileLoop:
			walkStmts(s.Body, visit)
		case *ast.RepeatUntilLoop:
			walkStmts(s.Body, visit)
		case *ast.IfElse:
			walkStmts(s.Then, visit)
			walkStmts(s.Else, visit)
		case *ast.ProcedureDecl:
			walkStmts(s.Body, visit)
		}
	}
}

// walkExprs visits every subexpression of e.
func walkExprs(e ast.Expr, visit func(ast.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch x := e.(type) {
	case *ast.BinaryExpr:
		walkExprs(x.Left, visit)
		walkExprs(x.Right, visit)
	case *ast.UnaryExpr:
		walkExprs(x.Operand, visit)
	case *ast.ArrayAccess:
		walkExprs(x.Array, visit)
		for _, idx := range x.Indexes {
			walkExprs(idx, visit)
		}
	case *ast.FieldAccess:
		walkExprs(x.Object, visit)
	case *ast.CallExpr:
		for _, a := range x.Args {
			walkExprs(a, visit)
		}
	case *ast.LengthCall:
		walkExprs(x.Arg, visit)
	case *ast.RangeExpr:
		walkExprs(x.Low, visit)
		walkExprs(x.High, visit)
	}
}

// stmtExprs collects the expressions directly attached to a statement,
// without descending into nested statements.
func stmtExprs(stmt ast.Stmt) []ast.Expr {
	switch s := stmt.(type) {
	case *ast.ForLoop:
		return []ast.Expr{s.From, s.To}
	case *ast.WhileLoop:
		return []ast.Expr{s.Cond}
	case *ast.RepeatUntilLoop:
		return []ast.Expr{s.Cond}
	case *ast.IfElse:
		return []ast.Expr{s.Cond}
	case *ast.Assignment:
		return []ast.Expr{s.Target, s.Value}
	case *ast.CallStmt:
		return []ast.Expr{s.Call}
	case *ast.PrintStmt:
		return s.Args
	case *ast.ReturnStmt:
		if s.Value != nil {
			return []ast.Expr{s.Value}
		}
	}
	return nil
}

// callsTo collects every call to name (case-insensitive) reachable from the
// block, including calls buried in expressions.
func callsTo(block *ast.Block, name string) []*ast.CallExpr {
	var calls []*ast.CallExpr
	walkStmts(block, func(stmt ast.Stmt) bool {
		for _, e := range stmtExprs(stmt) {
			walkExprs(e, func(e ast.Expr) {
				if call, ok := e.(*ast.CallExpr); ok && strings.EqualFold(call.Name, name) {
					calls = append(calls, call)
				}
			})
		}
		return true
	})
	return calls
}

// containsReturn reports whether the block returns anywhere, at any depth.
func containsReturn(block *ast.Block) bool {
	found := false
	walkStmts(block, func(stmt ast.Stmt) bool {
		if _, ok := stmt.(*ast.ReturnStmt); ok {
			found = true
		}
		return !found
	})
	return found
}

// identNames collects every identifier mentioned in the expression.
func identNames(e ast.Expr) []string {
	var names []string
	walkExprs(e, func(e ast.Expr) {
		if id, ok := e.(*ast.Identifier); ok {
			names = append(names, id.Name)
		}
	})
	return names
}

// numberValue unwraps a numeric literal, looking through unary minus.
func numberValue(e ast.Expr) (float64, bool) {
	switch x := e.(type) {
	case *ast.NumberLit:
		return x.Value, true
	case *ast.UnaryExpr:
		if x.Op == "-" {
			if v, ok := numberValue(x.Operand); ok {
				return -v, true
			}
		}
	}
	return 0, false
}

// midVariables finds variables assigned a midpoint, i.e. a halved sum such
// as (low + high) / 2. Recursive calls and loop updates that move to such a
// variable halve the problem.
func midVariables(block *ast.Block) map[string]bool {
	mids := make(map[string]bool)
	walkStmts(block, func(stmt ast.Stmt) bool {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			return true
		}
		target, ok := assign.Target.(*ast.Identifier)
		if !ok {
			return true
		}
		if isHalvedSum(assign.Value) {
			mids[strings.ToLower(target.Name)] = true
		}
		return true
	})
	return mids
}

// isHalvedSum matches (a + b) / 2 and (a + b) div 2.
func isHalvedSum(e ast.Expr) bool {
	bin, ok := e.(*ast.BinaryExpr)
	if !ok || (bin.Op != "/" && bin.Op != "div") {
		return false
	}
	if v, ok := numberValue(bin.Right); !ok || v != 2 {
		return false
	}
	sum, ok := bin.Left.(*ast.BinaryExpr)
	return ok && sum.Op == "+"
}

// divisorOf matches v / c or v div c for a constant c > 1 applied to the
// named variable, returning c.
func divisorOf(e ast.Expr, name string) (float64, bool) {
	bin, ok := e.(*ast.BinaryExpr)
	if !ok || (bin.Op != "/" && bin.Op != "div") {
		return 0, false
	}
	id, ok := bin.Left.(*ast.Identifier)
	if !ok || !strings.EqualFold(id.Name, name) {
		return 0, false
	}
	c, ok := numberValue(bin.Right)
	if !ok || c <= 1 {
		return 0, false
	}
	return c, true
}

// flagLike reports whether a variable name looks like a search flag. Loops
// guarded by such a flag usually exit early on success.
var flagFragments = []string{"found", "flag", "exist", "done", "encontr"}

func flagLike(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range flagFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// boolFlagGuard reports whether the named loop-condition variable is a
// boolean flag re-armed inside the body: it receives a boolean literal
// somewhere in the body, at least once under a conditional. The classic
// shape is optimized bubble sort, swapped <- false at the top of each pass
// and swapped <- true inside the comparison branch.
func boolFlagGuard(name string, body *ast.Block) bool {
	var assigned, conditional bool
	markBranch := func(b *ast.Block) {
		walkStmts(b, func(stmt ast.Stmt) bool {
			if assignsBool(stmt, name) {
				assigned = true
				conditional = true
			}
			return true
		})
	}
	walkStmts(body, func(stmt ast.Stmt) bool {
		switch s := stmt.(type) {
		case *ast.Assignment:
			if assignsBool(s, name) {
				assigned = true
			}
		case *ast.IfElse:
			markBranch(s.Then)
			markBranch(s.Else)
			return false
		}
		return true
	})
	return assigned && conditional
}

// assignsBool matches `name <- true` / `name <- false`.
func assignsBool(stmt ast.Stmt, name string) bool {
	assign, ok := stmt.(*ast.Assignment)
	if !ok {
		return false
	}
	target, ok := assign.Target.(*ast.Identifier)
	if !ok || !strings.EqualFold(target.Name, name) {
		return false
	}
	_, ok = assign.Value.(*ast.BoolLit)
	return ok
}

// logBase returns log_b(a), the critical exponent of the master theorem.
func logBase(a, b float64) float64 {
	return math.Log(a) / math.Log(b)
}
