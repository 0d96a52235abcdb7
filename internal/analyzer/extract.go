package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
)

// ExtractRecurrence builds the recurrence relation of a recursive
// procedure: one term per distinct input-size transform among its
// self-calls, plus the non-recursive work of the body. It returns nil for
// procedures that never call themselves.
func ExtractRecurrence(prog *ast.Program, proc *ast.ProcedureDecl) *models.RecurrenceRelation {
	self := callsTo(proc.Body, proc.Name)
	if len(self) == 0 {
		return nil
	}

	ex := &extractor{
		proc:   proc,
		params: paramSet(proc),
		mids:   midVariables(proc.Body),
		pivots: callAssignedVars(proc.Body, proc.Name),
	}

	groups := map[string]*models.Term{}
	var order []string
	for _, call := range self {
		term := ex.classifyCall(call)
		key := fmt.Sprintf("%s|%g|%s|%v", term.Op, term.Amount, term.Raw, term.Unresolved)
		if existing, ok := groups[key]; ok {
			existing.Coeff++
			continue
		}
		t := term
		groups[key] = &t
		order = append(order, key)
	}

	rel := &models.RecurrenceRelation{
		Procedure: proc.Name,
		Extra:     nonRecursiveWork(prog, proc),
		Notes:     ex.notes,
	}
	for _, key := range order {
		rel.Terms = append(rel.Terms, *groups[key])
	}
	sortTerms(rel.Terms)

	rel.Equation = rel.RenderEquation()
	rel.BaseCase = baseCase(proc)
	rel.Explanation = ex.explain(rel)
	return rel
}

type extractor struct {
	proc   *ast.ProcedureDecl
	params map[string]bool
	mids   map[string]bool
	pivots map[string]bool
	notes  []string
}

func paramSet(proc *ast.ProcedureDecl) map[string]bool {
	set := make(map[string]bool, len(proc.Params))
	for _, prm := range proc.Params {
		set[strings.ToLower(prm.Name)] = true
	}
	return set
}

// callAssignedVars finds variables assigned from a call to some other
// procedure, e.g. the pivot index a partition routine returns.
func callAssignedVars(block *ast.Block, self string) map[string]bool {
	vars := make(map[string]bool)
	walkStmts(block, func(stmt ast.Stmt) bool {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			return true
		}
		target, ok := assign.Target.(*ast.Identifier)
		if !ok {
			return true
		}
		if call, ok := assign.Value.(*ast.CallExpr); ok && !strings.EqualFold(call.Name, self) {
			vars[strings.ToLower(target.Name)] = true
		}
		return true
	})
	return vars
}

// classifyCall reads the argument list of one self-call and decides how the
// input size shrinks. The first argument that classifies wins; a call whose
// arguments all pass through unchanged (or defeat classification) yields an
// unresolved term.
func (ex *extractor) classifyCall(call *ast.CallExpr) models.Term {
	for _, arg := range call.Args {
		if term, ok := ex.classifyArg(arg); ok {
			return term
		}
	}
	raw := "?"
	if len(call.Args) > 0 {
		raw = call.Args[len(call.Args)-1].String()
	}
	ex.notes = append(ex.notes,
		fmt.Sprintf("could not classify how %s changes the input size", call))
	return models.Term{Coeff: 1, Raw: raw, Unresolved: true}
}

func (ex *extractor) classifyArg(arg ast.Expr) (models.Term, bool) {
	switch x := arg.(type) {
	case *ast.BinaryExpr:
		left, leftIsIdent := x.Left.(*ast.Identifier)
		switch x.Op {
		case "-":
			if leftIsIdent && ex.params[strings.ToLower(left.Name)] {
				if k, ok := numberValue(x.Right); ok && k > 0 {
					return models.Term{Coeff: 1, Op: models.OpSub, Amount: k}, true
				}
			}
			// mid-1 and pivot-1 bound half (or an expected half) of the range
			if leftIsIdent && ex.splitVar(left.Name) {
				return ex.splitTerm(left.Name), true
			}
		case "+":
			if leftIsIdent && ex.splitVar(left.Name) {
				return ex.splitTerm(left.Name), true
			}
		case "/", "div":
			if leftIsIdent && ex.params[strings.ToLower(left.Name)] {
				if b, ok := numberValue(x.Right); ok && b > 1 {
					return models.Term{Coeff: 1, Op: models.OpDiv, Amount: b}, true
				}
			}
		}
	case *ast.Identifier:
		if ex.splitVar(x.Name) {
			return ex.splitTerm(x.Name), true
		}
	case *ast.RangeExpr:
		for _, name := range identNames(arg) {
			if ex.splitVar(name) {
				return ex.splitTerm(name), true
			}
		}
	}
	return models.Term{}, false
}

func (ex *extractor) splitVar(name string) bool {
	lower := strings.ToLower(name)
	return ex.mids[lower] || ex.pivots[lower]
}

func (ex *extractor) splitTerm(name string) models.Term {
	if ex.pivots[strings.ToLower(name)] && !ex.mids[strings.ToLower(name)] {
		ex.notes = append(ex.notes,
			fmt.Sprintf("split point %s comes from another procedure; treating the split as balanced", name))
	}
	return models.Term{Coeff: 1, Op: models.OpDiv, Amount: 2}
}

// nonRecursiveWork prices the body with self-calls ignored, giving the f(n)
// of the recurrence. Loop depth decides the polynomial degree exactly as in
// the line-cost table, and helper calls (a merge routine, a partition pass)
// contribute their own structural worst case.
func nonRecursiveWork(prog *ast.Program, proc *ast.ProcedureDecl) models.Measure {
	work := models.Constant
	mids := midVariables(proc.Body)

	callWork := func(stmt ast.Stmt, enclosing models.Measure) {
		for _, e := range stmtExprs(stmt) {
			walkExprs(e, func(e ast.Expr) {
				call, ok := e.(*ast.CallExpr)
				if !ok || strings.EqualFold(call.Name, proc.Name) {
					return
				}
				callee := prog.Lookup(call.Name)
				if callee == nil || strings.EqualFold(callee.Name, proc.Name) {
					return
				}
				sub := AnalyzeStructure(prog, callee, nil)
				work = work.Max(enclosing.Times(sub.Cases.Worst))
			})
		}
	}

	var visit func(block *ast.Block, enclosing models.Measure)
	visit = func(block *ast.Block, enclosing models.Measure) {
		if block == nil {
			return
		}
		for _, stmt := range block.Stmts {
			switch s := stmt.(type) {
			case *ast.ForLoop:
				inner := enclosing.Times(classifyFor(s).Iterations)
				work = work.Max(inner)
				visit(s.Body, inner)
			case *ast.WhileLoop:
				inner := enclosing.Times(classifyCondLoop(s.Cond, s.Body, mids).Iterations)
				work = work.Max(inner)
				visit(s.Body, inner)
			case *ast.RepeatUntilLoop:
				inner := enclosing.Times(classifyCondLoop(s.Cond, s.Body, mids).Iterations)
				work = work.Max(inner)
				visit(s.Body, inner)
			case *ast.IfElse:
				callWork(s, enclosing)
				visit(s.Then, enclosing)
				visit(s.Else, enclosing)
			default:
				callWork(s, enclosing)
			}
		}
	}
	visit(proc.Body, models.Constant)
	return work
}

// baseCase reads the guard of the leading conditional, which by convention
// stops the recursion on small input.
func baseCase(proc *ast.ProcedureDecl) string {
	if len(proc.Body.Stmts) == 0 {
		return ""
	}
	cond, ok := proc.Body.Stmts[0].(*ast.IfElse)
	if !ok {
		return ""
	}
	if !containsReturn(cond.Then) {
		return ""
	}
	return fmt.Sprintf("T(n) = O(1) when %s", cond.Cond)
}

func (ex *extractor) explain(rel *models.RecurrenceRelation) string {
	var parts []string
	for _, t := range rel.Terms {
		switch {
		case t.Unresolved:
			parts = append(parts, fmt.Sprintf("%d call(s) with an unclassified size change", t.Coeff))
		case t.Op == models.OpDiv:
			parts = append(parts, fmt.Sprintf("%d call(s) on input divided by %g", t.Coeff, t.Amount))
		default:
			parts = append(parts, fmt.Sprintf("%d call(s) on input reduced by %g", t.Coeff, t.Amount))
		}
	}
	return fmt.Sprintf("%s makes %s; the remaining body costs %s per invocation",
		ex.proc.Name, strings.Join(parts, " and "), rel.Extra.Notation())
}

// sortTerms orders terms deterministically: divisions first, then by
// shrink amount.
func sortTerms(terms []models.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		if terms[i].Op != terms[j].Op {
			return terms[i].Op == models.OpDiv
		}
		return terms[i].Amount < terms[j].Amount
	})
}
