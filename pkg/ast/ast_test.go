package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	prog := &Program{
		Procedures: []*ProcedureDecl{
			{Name: "BinarySearch"},
			{Name: "merge"},
		},
	}
	require.NotNil(t, prog.Lookup("binarysearch"))
	require.NotNil(t, prog.Lookup("MERGE"))
	assert.Nil(t, prog.Lookup("missing"))
}

func TestExprString(t *testing.T) {
	expr := &BinaryExpr{
		Op:   "+",
		Left: &ArrayAccess{Array: &Identifier{Name: "A"}, Indexes: []Expr{&Identifier{Name: "i"}}},
		Right: &CallExpr{Name: "Fib", Args: []Expr{
			&BinaryExpr{Op: "-", Left: &Identifier{Name: "n"}, Right: &NumberLit{Value: 1, Raw: "1"}},
		}},
	}
	assert.Equal(t, "(A[i] + Fib((n - 1)))", expr.String())
}

func TestDump(t *testing.T) {
	prog := &Program{
		Procedures: []*ProcedureDecl{{
			Name:   "Sum",
			Params: []Param{{Name: "A"}, {Name: "n"}},
			Body: &Block{Stmts: []Stmt{
				&ForLoop{
					Var:  "i",
					From: &NumberLit{Value: 1, Raw: "1"},
					To:   &Identifier{Name: "n"},
					Body: &Block{Stmts: []Stmt{
						&Assignment{
							Target: &Identifier{Name: "s"},
							Value: &BinaryExpr{
								Op:    "+",
								Left:  &Identifier{Name: "s"},
								Right: &ArrayAccess{Array: &Identifier{Name: "A"}, Indexes: []Expr{&Identifier{Name: "i"}}},
							},
						},
					}},
				},
				&ReturnStmt{Value: &Identifier{Name: "s"}},
			}},
		}},
	}

	out := Dump(prog)
	assert.Contains(t, out, "Procedure Sum(A, n)")
	assert.Contains(t, out, "For i <- 1 to n")
	assert.Contains(t, out, "Assign s <- (s + A[i])")
	assert.Contains(t, out, "Return s")
}
