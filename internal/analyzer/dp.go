package analyzer

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
)

// DetectDP looks for the two dynamic-programming shapes: a memo table
// consulted before recursing, and a bottom-up fill where a table entry is
// computed from earlier entries of the same table. The finding is
// advisory; it annotates the report without changing the derived bound.
func DetectDP(proc *ast.ProcedureDecl) *models.Annotation {
	if proc == nil {
		return nil
	}
	recursive := len(callsTo(proc.Body, proc.Name)) > 0

	if recursive {
		if table, ok := memoTable(proc); ok {
			return &models.Annotation{
				Kind: models.AnnDynamicProgramming,
				Detail: fmt.Sprintf(
					"top-down memoization on table %s: each subproblem is solved once, space grows with the table", table),
				Line: proc.Pos().Line,
			}
		}
		return nil
	}

	if table, dims, ok := bottomUpFill(proc.Body); ok {
		space := "O(n)"
		if dims > 1 {
			space = fmt.Sprintf("O(n^%d)", dims)
		}
		return &models.Annotation{
			Kind: models.AnnDynamicProgramming,
			Detail: fmt.Sprintf(
				"bottom-up table fill on %s: entries derive from earlier entries, %s space", table, space),
			Line: proc.Pos().Line,
		}
	}
	return nil
}

// memoTable matches the guard-then-store shape: the body reads some array
// under a leading conditional that returns, and stores into the same array
// before the final return.
func memoTable(proc *ast.ProcedureDecl) (string, bool) {
	reads := map[string]bool{}
	for _, stmt := range proc.Body.Stmts {
		cond, ok := stmt.(*ast.IfElse)
		if !ok || !containsReturn(cond.Then) {
			continue
		}
		walkExprs(cond.Cond, func(e ast.Expr) {
			if acc, ok := e.(*ast.ArrayAccess); ok {
				if id, ok := acc.Array.(*ast.Identifier); ok {
					reads[strings.ToLower(id.Name)] = true
				}
			}
		})
	}
	if len(reads) == 0 {
		return "", false
	}

	stored := ""
	walkStmts(proc.Body, func(stmt ast.Stmt) bool {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			return true
		}
		if acc, ok := assign.Target.(*ast.ArrayAccess); ok {
			if id, ok := acc.Array.(*ast.Identifier); ok && reads[strings.ToLower(id.Name)] {
				stored = id.Name
			}
		}
		return true
	})
	return stored, stored != ""
}

// bottomUpFill matches a loop that assigns table[i] from table entries at
// other indexes. Returns the table name and its dimensionality.
func bottomUpFill(block *ast.Block) (string, int, bool) {
	name := ""
	dims := 0
	var inLoop func(b *ast.Block, depth int)
	inLoop = func(b *ast.Block, depth int) {
		if b == nil || name != "" {
			return
		}
		for _, stmt := range b.Stmts {
			switch s := stmt.(type) {
			case *ast.ForLoop:
				inLoop(s.Body, depth+1)
			case *ast.WhileLoop:
				inLoop(s.Body, depth+1)
			case *ast.RepeatUntilLoop:
				inLoop(s.Body, depth+1)
			case *ast.IfElse:
				inLoop(s.Then, depth)
				inLoop(s.Else, depth)
			case *ast.Assignment:
				if depth == 0 {
					continue
				}
				target, ok := s.Target.(*ast.ArrayAccess)
				if !ok {
					continue
				}
				id, ok := target.Array.(*ast.Identifier)
				if !ok {
					continue
				}
				if readsArray(s.Value, id.Name) {
					name = id.Name
					dims = len(target.Indexes)
				}
			}
		}
	}
	inLoop(block, 0)
	return name, dims, name != ""
}

func readsArray(e ast.Expr, table string) bool {
	found := false
	walkExprs(e, func(e ast.Expr) {
		if acc, ok := e.(*ast.ArrayAccess); ok {
			if id, ok := acc.Array.(*ast.Identifier); ok && strings.EqualFold(id.Name, table) {
				found = true
			}
		}
	})
	return found
}
