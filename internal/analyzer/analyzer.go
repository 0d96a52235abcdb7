package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/lexer"
	"github.com/tmorelli/augur/pkg/models"
	"github.com/tmorelli/augur/pkg/parser"
)

// Corrector rewrites source that failed to parse. The analyzer consults it
// at most once per analysis; implementations typically wrap an external
// grammar-repair service.
type Corrector interface {
	Correct(ctx context.Context, source string, parseErr error) (string, error)
}

// Options configures an Analyzer. Zero values pick the defaults.
type Options struct {
	// TreeDepth bounds the recursion-tree expansion.
	TreeDepth int
	// SubstitutionCap bounds the solver's bounded-substitution unrolling.
	SubstitutionCap int
	// Corrector, when set, gets one chance to repair unparsable source.
	Corrector Corrector
}

// DefaultSubstitutionCap bounds the solver's unrolling fallback.
const DefaultSubstitutionCap = 10

// Analyzer runs the full pipeline: tokenize, parse, per-line costs,
// structural analysis, recurrence extraction and solving, recursion tree,
// and the final resolution into one reported bound. An Analyzer holds no
// per-run state and may be shared across goroutines.
type Analyzer struct {
	opts Options
}

// New returns an Analyzer with defaults filled in.
func New(opts Options) *Analyzer {
	if opts.TreeDepth <= 0 {
		opts.TreeDepth = DefaultTreeDepth
	}
	if opts.SubstitutionCap <= 0 {
		opts.SubstitutionCap = DefaultSubstitutionCap
	}
	return &Analyzer{opts: opts}
}

// Analyze runs the pipeline over one pseudocode program.
func (a *Analyzer) Analyze(ctx context.Context, source string) (*models.AnalysisReport, error) {
	prog, corrected, err := a.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	if corrected != "" {
		source = corrected
	}

	// the source parsed, so tokenizing again cannot fail
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{
		Tokens:    tokens,
		ASTDump:   ast.Dump(prog),
		LineCosts: LineCosts(prog, source),
		Corrected: corrected != "",
	}

	proc := subjectProcedure(prog)
	if proc != nil {
		report.Procedure = proc.Name
	}

	var rel *models.RecurrenceRelation
	if proc != nil {
		rel = ExtractRecurrence(prog, proc)
	}

	var pattern *patternMatch
	if proc != nil {
		if match, ok := classifyPattern(proc, rel); ok {
			pattern = &match
		}
	}

	structural := AnalyzeStructure(prog, proc, pattern)
	if dp := DetectDP(proc); dp != nil {
		structural.Annotations = append(structural.Annotations, *dp)
	}

	var solved *models.Solution
	var solveErr error
	if rel != nil {
		report.Extraction = rel
		solved, solveErr = Solve(rel, a.opts.SubstitutionCap)
		report.Tree = BuildTree(rel, a.opts.TreeDepth)
	}

	report.Solution = resolve(&structural, rel, solved, solveErr)
	report.Structural = structural
	return report, nil
}

// parse runs the parser, giving the corrector one retry on failure.
func (a *Analyzer) parse(ctx context.Context, source string) (*ast.Program, string, error) {
	prog, err := parser.Parse(source)
	if err == nil {
		return prog, "", nil
	}
	if a.opts.Corrector == nil {
		return nil, "", err
	}

	corrected, corrErr := a.opts.Corrector.Correct(ctx, source, err)
	if corrErr != nil {
		return nil, "", fmt.Errorf("parse failed (%w) and correction failed: %v", err, corrErr)
	}
	prog, retryErr := parser.Parse(corrected)
	if retryErr != nil {
		return nil, "", fmt.Errorf("parse failed even after correction: %w", retryErr)
	}
	return prog, corrected, nil
}

// subjectProcedure picks the procedure the report centers on: the first
// recursive one, else the first declared, else nil for a bare main block.
func subjectProcedure(prog *ast.Program) *ast.ProcedureDecl {
	for _, proc := range prog.Procedures {
		if len(callsTo(proc.Body, proc.Name)) > 0 {
			return proc
		}
	}
	if len(prog.Procedures) > 0 {
		return prog.Procedures[0]
	}
	return nil
}

// Describe summarizes a report in one sentence, used by CLI summaries.
func Describe(report *models.AnalysisReport) string {
	subject := report.Procedure
	if subject == "" {
		subject = "main block"
	}
	return fmt.Sprintf("%s: %s (%s)", subject, report.Solution.MainResult,
		strings.ReplaceAll(report.Solution.MethodUsed, "-", " "))
}
