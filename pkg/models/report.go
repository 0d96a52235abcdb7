package models

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/lexer"
)

// Annotation marks a structural finding that influenced the analysis.
type Annotation struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
	Line   int    `json:"line,omitempty"`
}

// Annotation kinds produced by the structural engine.
const (
	AnnCallInLoop         = "call-in-loop"
	AnnDivideAndConquer   = "divide-and-conquer"
	AnnUnresolvedProgress = "unresolved-progress"
	AnnLogLoop            = "log-loop"
	AnnEarlyExit          = "early-exit"
	AnnDynamicProgramming = "dynamic-programming"
	AnnPattern            = "pattern"
	AnnSolverFailed       = "solver-failed"
)

// StructuralResult is the outcome of the direct AST walk.
type StructuralResult struct {
	Cases       Cases        `json:"cases"`
	Annotations []Annotation `json:"annotations,omitempty"`
	// Assumed is set when an unresolvable loop forced a conservative
	// default rather than a derived bound.
	Assumed bool `json:"assumed,omitempty"`
	// Pattern names a recognized recursive shape, when one matched.
	Pattern string `json:"pattern,omitempty"`
}

// Has reports whether an annotation of the given kind is present.
func (r StructuralResult) Has(kind string) bool {
	for _, a := range r.Annotations {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// LineCost is one row of the per-line cost table.
type LineCost struct {
	Line   int    `json:"line"`
	Code   string `json:"code"`
	Cost   string `json:"cost"`
	Reason string `json:"reason,omitempty"`
}

// TermOp is the input-size transform of a recursive call.
type TermOp int

const (
	// OpSub is T(n-k).
	OpSub TermOp = iota
	// OpDiv is T(n/b).
	OpDiv
)

func (op TermOp) String() string {
	if op == OpDiv {
		return "div"
	}
	return "sub"
}

// Term is one recursive-call group of a recurrence: Coeff calls whose
// argument shrinks the input by Amount under Op. Raw preserves the argument
// expression; Unresolved marks a transform that could not be classified.
type Term struct {
	Coeff      int     `json:"coeff"`
	Op         TermOp  `json:"op"`
	Amount     float64 `json:"amount"`
	Raw        string  `json:"raw,omitempty"`
	Unresolved bool    `json:"unresolved,omitempty"`
}

// Render writes the term as it appears in the equation, e.g. "2T(n/2)".
func (t Term) Render() string {
	var arg string
	switch {
	case t.Unresolved:
		arg = t.Raw
	case t.Op == OpDiv:
		arg = fmt.Sprintf("n/%s", trimFloat(t.Amount))
	case t.Amount == 0:
		arg = "n"
	default:
		arg = fmt.Sprintf("n-%s", trimFloat(t.Amount))
	}
	if t.Coeff == 1 {
		return fmt.Sprintf("T(%s)", arg)
	}
	return fmt.Sprintf("%dT(%s)", t.Coeff, arg)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// RecurrenceRelation describes the self-referential cost of a recursive
// procedure.
type RecurrenceRelation struct {
	Procedure   string   `json:"procedure"`
	Terms       []Term   `json:"terms"`
	Extra       Measure  `json:"extra"`
	Equation    string   `json:"equation"`
	BaseCase    string   `json:"base_case,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

// RenderEquation assembles the canonical equation text from the terms and
// the non-recursive cost.
func (r *RecurrenceRelation) RenderEquation() string {
	parts := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		parts[i] = t.Render()
	}
	extra := r.Extra.Notation()
	if extra == "1" {
		extra = "O(1)"
	}
	return fmt.Sprintf("T(n) = %s + %s", strings.Join(parts, " + "), extra)
}

// Unresolved reports whether any term's transform is unclassified.
func (r *RecurrenceRelation) Unresolved() bool {
	for _, t := range r.Terms {
		if t.Unresolved {
			return true
		}
	}
	return false
}

// MathStep is one line of a solution derivation.
type MathStep struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Solution is a solved (or structurally decided) complexity bound.
type Solution struct {
	MainResult    string     `json:"main_result"`
	Cases         Cases      `json:"cases"`
	MethodUsed    string     `json:"method_used"`
	Justification string     `json:"justification"`
	MathSteps     []MathStep `json:"math_steps,omitempty"`
}

// Methods a solution can come from.
const (
	MethodMasterTheorem = "master-theorem"
	MethodLinearForm    = "linear-recurrence"
	MethodSubstitution  = "bounded-substitution"
	MethodStructural    = "structural-analysis"
)

// TreeLevel is one depth slice of an expanded recursion tree.
type TreeLevel struct {
	Depth     int    `json:"depth"`
	Nodes     int    `json:"nodes"`
	SizeLabel string `json:"size"`
	CostLabel string `json:"cost"`
}

// RecursionTree is an illustrative bounded expansion of a recurrence. It
// never feeds back into a bound.
type RecursionTree struct {
	Levels    []TreeLevel `json:"levels"`
	Structure string      `json:"structure,omitempty"`
	Total     string      `json:"total,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
}

// TokenDump is the lexer section of a report.
type TokenDump struct {
	Tokens []lexer.Token `json:"tokens"`
}

// AnalysisReport is the full output for one program.
type AnalysisReport struct {
	Procedure  string              `json:"procedure,omitempty"`
	Tokens     []lexer.Token       `json:"tokens"`
	ASTDump    string              `json:"ast_dump"`
	LineCosts  []LineCost          `json:"line_costs"`
	Structural StructuralResult    `json:"structural"`
	Extraction *RecurrenceRelation `json:"extraction,omitempty"`
	Solution   Solution            `json:"solution"`
	Tree       *RecursionTree      `json:"recursion_tree,omitempty"`
	// Corrected is set when the source only parsed after a grammar
	// correction round.
	Corrected bool `json:"corrected,omitempty"`
}
