package analyzer

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
)

// AnalyzeStructure derives a case spread for one procedure by walking its
// body: sequences keep the dominant cost, loops multiply by their iteration
// measure, conditionals split into best and worst branches. pattern, when
// non-nil, supplies the known spread for a recognized recursive shape;
// annotations are collected either way so the resolver can see what the
// walk ran into.
func AnalyzeStructure(prog *ast.Program, proc *ast.ProcedureDecl, pattern *patternMatch) models.StructuralResult {
	pass := &structuralPass{
		prog:     prog,
		visiting: map[string]bool{},
	}
	var body *ast.Block
	if proc != nil {
		pass.self = proc.Name
		pass.visiting[strings.ToLower(proc.Name)] = true
		body = proc.Body
	} else {
		body = prog.Main
	}
	pass.mids = midVariables(body)

	cases := pass.evalBlock(body, 0)
	result := models.StructuralResult{
		Cases:       cases,
		Annotations: pass.anns,
		Assumed:     pass.assumed,
	}

	if pattern != nil {
		result.Pattern = pattern.Name
		result.Cases = pattern.Cases
		result.Annotations = append(result.Annotations, models.Annotation{
			Kind:   models.AnnPattern,
			Detail: fmt.Sprintf("%s: %s", pattern.Name, pattern.Description),
		})
	}
	return result
}

type structuralPass struct {
	prog     *ast.Program
	self     string
	mids     map[string]bool
	anns     []models.Annotation
	assumed  bool
	visiting map[string]bool
}

func (p *structuralPass) note(kind, detail string, line int) {
	p.anns = append(p.anns, models.Annotation{Kind: kind, Detail: detail, Line: line})
}

func (p *structuralPass) evalBlock(block *ast.Block, loopDepth int) models.Cases {
	cases := models.Uniform(models.Constant)
	if block == nil {
		return cases
	}
	for _, stmt := range block.Stmts {
		cases = cases.Sequence(p.evalStmt(stmt, loopDepth))
	}
	return cases
}

func (p *structuralPass) evalStmt(stmt ast.Stmt, loopDepth int) models.Cases {
	switch s := stmt.(type) {
	case *ast.ForLoop:
		shape := classifyFor(s)
		body := p.evalBlock(s.Body, loopDepth+1)
		cases := body.Scale(shape.Iterations)
		if shape.EarlyExit {
			p.note(models.AnnEarlyExit, "loop can return before exhausting its range", s.Pos().Line)
			cases.Best = models.Constant
		}
		return cases
	case *ast.WhileLoop:
		return p.evalCondLoop(s.Cond, s.Body, s.Pos().Line, loopDepth)
	case *ast.RepeatUntilLoop:
		return p.evalCondLoop(s.Cond, s.Body, s.Pos().Line, loopDepth)
	case *ast.IfElse:
		then := p.evalBlock(s.Then, loopDepth)
		if s.Else == nil {
			// an absent branch costs nothing, which makes it the best case
			return then.Branch(models.Uniform(models.Constant))
		}
		return then.Branch(p.evalBlock(s.Else, loopDepth))
	case *ast.NoOp:
		return models.Uniform(models.Constant)
	default:
		return p.exprCost(stmt, loopDepth)
	}
}

func (p *structuralPass) evalCondLoop(cond ast.Expr, body *ast.Block, line, loopDepth int) models.Cases {
	shape := classifyCondLoop(cond, body, p.mids)
	switch shape.Kind {
	case "logarithmic":
		p.note(models.AnnLogLoop, "loop halves its search range each iteration", line)
	case "unresolved":
		p.note(models.AnnUnresolvedProgress,
			"no recognizable progress toward the exit condition, assuming at least linear", line)
		p.assumed = true
	}
	pass := p.evalBlock(body, loopDepth+1)
	cases := pass.Scale(shape.Iterations)
	if shape.EarlyExit {
		if shape.FlagGuard {
			// a clean pass drops the flag and ends the loop, so the best
			// case is one pass of the body
			p.note(models.AnnEarlyExit, "the guarding flag can settle on the first pass", line)
			cases.Best = pass.Best
		} else {
			p.note(models.AnnEarlyExit, "loop exits early when its target is found", line)
			cases.Best = models.Constant
		}
	}
	return cases
}

// exprCost prices a simple statement: constant work plus the cost of any
// procedure it calls. Self-calls are flagged rather than priced; their cost
// belongs to the recurrence machinery.
func (p *structuralPass) exprCost(stmt ast.Stmt, loopDepth int) models.Cases {
	cases := models.Uniform(models.Constant)
	for _, e := range stmtExprs(stmt) {
		walkExprs(e, func(e ast.Expr) {
			call, ok := e.(*ast.CallExpr)
			if !ok {
				return
			}
			if p.self != "" && strings.EqualFold(call.Name, p.self) {
				p.flagSelfCall(call, stmt.Pos().Line, loopDepth)
				return
			}
			cases = cases.Sequence(p.calleeCost(call))
		})
	}
	return cases
}

func (p *structuralPass) flagSelfCall(call *ast.CallExpr, line, loopDepth int) {
	if loopDepth > 0 {
		p.note(models.AnnCallInLoop,
			fmt.Sprintf("recursive call to %s inside a loop multiplies both costs", call.Name), line)
	}
	for _, arg := range call.Args {
		if p.refersToMid(arg) {
			p.note(models.AnnDivideAndConquer,
				"recursive call on a midpoint-split subrange", line)
			return
		}
	}
}

func (p *structuralPass) refersToMid(arg ast.Expr) bool {
	for _, name := range identNames(arg) {
		if p.mids[strings.ToLower(name)] {
			return true
		}
	}
	return false
}

// calleeCost inlines one level of a call to another procedure. Unknown
// names (built-ins like swap) and cyclic chains price as constant.
func (p *structuralPass) calleeCost(call *ast.CallExpr) models.Cases {
	callee := p.prog.Lookup(call.Name)
	if callee == nil {
		return models.Uniform(models.Constant)
	}
	key := strings.ToLower(callee.Name)
	if p.visiting[key] {
		return models.Uniform(models.Constant)
	}
	p.visiting[key] = true
	defer delete(p.visiting, key)

	sub := &structuralPass{
		prog:     p.prog,
		self:     callee.Name,
		mids:     midVariables(callee.Body),
		visiting: p.visiting,
	}
	return sub.evalBlock(callee.Body, 0)
}
