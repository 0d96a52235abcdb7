// Package ast defines the node vocabulary produced by the pseudocode parser.
// The set of node types is closed: analysis passes switch over it
// exhaustively, and an unhandled node is a bug rather than a fallthrough.
//
// Nodes never point back at their parents or at the procedures that contain
// them. A call site refers to its callee by name only; resolution happens
// through Program.Lookup, which keeps the tree a strict hierarchy.
package ast

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/lexer"
)

// Node is implemented by every AST node.
type Node interface {
	node()
}

// Stmt is a statement node. Every statement knows its source position so
// per-line cost rows can point back at the input.
type Stmt interface {
	Node
	stmtNode()
	Pos() lexer.Pos
}

// Expr is an expression node. String renders the expression in canonical
// infix form for reports and recurrence equations.
type Expr interface {
	Node
	exprNode()
	String() string
}

// Program is the root of a parse.
type Program struct {
	Classes    []*ClassDecl
	Procedures []*ProcedureDecl
	Main       *Block
}

func (*Program) node() {}

// Lookup resolves a procedure by name, case-insensitively. It returns nil
// when no procedure with that name was declared.
func (p *Program) Lookup(name string) *ProcedureDecl {
	for _, proc := range p.Procedures {
		if strings.EqualFold(proc.Name, name) {
			return proc
		}
	}
	return nil
}

// ClassDecl declares a record type. Field names are kept only so the dump
// reflects the source; analysis ignores them.
type ClassDecl struct {
	Name   string
	Fields []string
	At     lexer.Pos
}

func (*ClassDecl) node()            {}
func (*ClassDecl) stmtNode()        {}
func (c *ClassDecl) Pos() lexer.Pos { return c.At }

// ProcedureDecl declares a procedure, function or algorithm.
type ProcedureDecl struct {
	Name   string
	Params []Param
	Body   *Block
	At     lexer.Pos
}

func (*ProcedureDecl) node()            {}
func (*ProcedureDecl) stmtNode()        {}
func (d *ProcedureDecl) Pos() lexer.Pos { return d.At }

// Param is a formal parameter.
type Param struct {
	Name string
}

// Block is a delimited statement sequence. Blocks exist only with both
// delimiters consumed; a dangling block is a parse error, never a node.
type Block struct {
	Stmts []Stmt
}

func (*Block) node() {}

// ForLoop is a counted loop. Down is set for "downto" bounds.
type ForLoop struct {
	Var  string
	From Expr
	To   Expr
	Down bool
	Body *Block
	At   lexer.Pos
}

func (*ForLoop) node()            {}
func (*ForLoop) stmtNode()        {}
func (f *ForLoop) Pos() lexer.Pos { return f.At }

// WhileLoop is a condition-controlled loop.
type WhileLoop struct {
	Cond Expr
	Body *Block
	At   lexer.Pos
}

func (*WhileLoop) node()            {}
func (*WhileLoop) stmtNode()        {}
func (w *WhileLoop) Pos() lexer.Pos { return w.At }

// RepeatUntilLoop runs its body at least once.
type RepeatUntilLoop struct {
	Body *Block
	Cond Expr
	At   lexer.Pos
}

func (*RepeatUntilLoop) node()            {}
func (*RepeatUntilLoop) stmtNode()        {}
func (r *RepeatUntilLoop) Pos() lexer.Pos { return r.At }

// IfElse is a conditional. Else is nil when absent.
type IfElse struct {
	Cond Expr
	Then *Block
	Else *Block
	At   lexer.Pos
}

func (*IfElse) node()            {}
func (*IfElse) stmtNode()        {}
func (i *IfElse) Pos() lexer.Pos { return i.At }

// Assignment stores Value into Target. Target is an identifier, array
// access or field access.
type Assignment struct {
	Target Expr
	Value  Expr
	At     lexer.Pos
}

func (*Assignment) node()            {}
func (*Assignment) stmtNode()        {}
func (a *Assignment) Pos() lexer.Pos { return a.At }

// CallStmt invokes a procedure for effect.
type CallStmt struct {
	Call *CallExpr
	At   lexer.Pos
}

func (*CallStmt) node()            {}
func (*CallStmt) stmtNode()        {}
func (c *CallStmt) Pos() lexer.Pos { return c.At }

// PrintStmt writes its arguments.
type PrintStmt struct {
	Args []Expr
	At   lexer.Pos
}

func (*PrintStmt) node()            {}
func (*PrintStmt) stmtNode()        {}
func (p *PrintStmt) Pos() lexer.Pos { return p.At }

// ReturnStmt exits the enclosing procedure. Value is nil for a bare return.
type ReturnStmt struct {
	Value Expr
	At    lexer.Pos
}

func (*ReturnStmt) node()            {}
func (*ReturnStmt) stmtNode()        {}
func (r *ReturnStmt) Pos() lexer.Pos { return r.At }

// NoOp covers declaration lines (let, declare) that carry no runtime cost.
type NoOp struct {
	Text string
	At   lexer.Pos
}

func (*NoOp) node()            {}
func (*NoOp) stmtNode()        {}
func (n *NoOp) Pos() lexer.Pos { return n.At }

// Identifier names a variable.
type Identifier struct {
	Name string
}

func (*Identifier) node()            {}
func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// NumberLit is a numeric literal. Raw preserves the source spelling.
type NumberLit struct {
	Value float64
	Raw   string
}

func (*NumberLit) node()            {}
func (*NumberLit) exprNode()        {}
func (n *NumberLit) String() string { return n.Raw }

// StringLit is a quoted literal.
type StringLit struct {
	Value string
}

func (*StringLit) node()            {}
func (*StringLit) exprNode()        {}
func (s *StringLit) String() string { return fmt.Sprintf("%q", s.Value) }

// BoolLit is T/F or true/false.
type BoolLit struct {
	Value bool
}

func (*BoolLit) node()     {}
func (*BoolLit) exprNode() {}
func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NullLit is the null constant.
type NullLit struct{}

func (*NullLit) node()          {}
func (*NullLit) exprNode()      {}
func (*NullLit) String() string { return "null" }

// BinaryExpr applies Op to two operands. Op is the normalized lexeme
// ("+", "<=", "and", "mod", ...).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryExpr applies Op ("-" or "not") to one operand.
type UnaryExpr struct {
	Op      string
	Operand Expr
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}
func (u *UnaryExpr) String() string {
	if u.Op == "not" {
		return fmt.Sprintf("(not %s)", u.Operand)
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

// ArrayAccess indexes an array, possibly on several dimensions.
type ArrayAccess struct {
	Array   Expr
	Indexes []Expr
}

func (*ArrayAccess) node()     {}
func (*ArrayAccess) exprNode() {}
func (a *ArrayAccess) String() string {
	parts := make([]string, len(a.Indexes))
	for i, idx := range a.Indexes {
		parts[i] = idx.String()
	}
	return fmt.Sprintf("%s[%s]", a.Array, strings.Join(parts, ", "))
}

// FieldAccess selects a named field.
type FieldAccess struct {
	Object Expr
	Field  string
}

func (*FieldAccess) node()            {}
func (*FieldAccess) exprNode()        {}
func (f *FieldAccess) String() string { return fmt.Sprintf("%s.%s", f.Object, f.Field) }

// CallExpr invokes a procedure by name. The callee is always a bare name;
// see Program.Lookup for resolution.
type CallExpr struct {
	Name string
	Args []Expr
}

func (*CallExpr) node()     {}
func (*CallExpr) exprNode() {}
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

// LengthCall is the built-in length(A).
type LengthCall struct {
	Arg Expr
}

func (*LengthCall) node()            {}
func (*LengthCall) exprNode()        {}
func (l *LengthCall) String() string { return fmt.Sprintf("length(%s)", l.Arg) }

// RangeExpr is an inclusive a..b span, used in subarray arguments.
type RangeExpr struct {
	Low  Expr
	High Expr
}

func (*RangeExpr) node()            {}
func (*RangeExpr) exprNode()        {}
func (r *RangeExpr) String() string { return fmt.Sprintf("%s..%s", r.Low, r.High) }
