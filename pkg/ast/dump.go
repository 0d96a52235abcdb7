package ast

import (
	"fmt"
	"strings"
)

// Dump renders the program as an indented tree, one node per line. The
// output is part of the analysis report, so it stays stable and readable
// rather than exhaustive.
func Dump(p *Program) string {
	var b strings.Builder
	b.WriteString("Program\n")
	for _, c := range p.Classes {
		fmt.Fprintf(&b, "  Class %s(%s)\n", c.Name, strings.Join(c.Fields, ", "))
	}
	for _, proc := range p.Procedures {
		params := make([]string, len(proc.Params))
		for i, prm := range proc.Params {
			params[i] = prm.Name
		}
		fmt.Fprintf(&b, "  Procedure %s(%s)\n", proc.Name, strings.Join(params, ", "))
		dumpBlock(&b, proc.Body, 2)
	}
	if p.Main != nil && len(p.Main.Stmts) > 0 {
		b.WriteString("  Main\n")
		dumpBlock(&b, p.Main, 2)
	}
	return strings.TrimRight(b.String(), "\n")
}

func dumpBlock(b *strings.Builder, block *Block, depth int) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		dumpStmt(b, stmt, depth)
	}
}

func dumpStmt(b *strings.Builder, stmt Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *ForLoop:
		dir := "to"
		if s.Down {
			dir = "downto"
		}
		fmt.Fprintf(b, "%sFor %s <- %s %s %s\n", pad, s.Var, s.From, dir, s.To)
		dumpBlock(b, s.Body, depth+1)
	case *WhileLoop:
		fmt.Fprintf(b, "%sWhile %s\n", pad, s.Cond)
		dumpBlock(b, s.Body, depth+1)
	case *RepeatUntilLoop:
		fmt.Fprintf(b, "%sRepeat\n", pad)
		dumpBlock(b, s.Body, depth+1)
		fmt.Fprintf(b, "%sUntil %s\n", pad, s.Cond)
	case *IfElse:
		fmt.Fprintf(b, "%sIf %s\n", pad, s.Cond)
		dumpBlock(b, s.Then, depth+1)
		if s.Else != nil {
			fmt.Fprintf(b, "%sElse\n", pad)
			dumpBlock(b, s.Else, depth+1)
		}
	case *Assignment:
		fmt.Fprintf(b, "%sAssign %s <- %s\n", pad, s.Target, s.Value)
	case *CallStmt:
		fmt.Fprintf(b, "%sCall %s\n", pad, s.Call)
	case *PrintStmt:
		parts := make([]string, len(s.Args))
		for i, a := range s.Args {
			parts[i] = a.String()
		}
		fmt.Fprintf(b, "%sPrint %s\n", pad, strings.Join(parts, ", "))
	case *ReturnStmt:
		if s.Value != nil {
			fmt.Fprintf(b, "%sReturn %s\n", pad, s.Value)
		} else {
			fmt.Fprintf(b, "%sReturn\n", pad)
		}
	case *NoOp:
		fmt.Fprintf(b, "%sDeclare %s\n", pad, s.Text)
	case *ClassDecl:
		fmt.Fprintf(b, "%sClass %s\n", pad, s.Name)
	case *ProcedureDecl:
		fmt.Fprintf(b, "%sProcedure %s\n", pad, s.Name)
		dumpBlock(b, s.Body, depth+1)
	default:
		fmt.Fprintf(b, "%s%T\n", pad, s)
	}
}
