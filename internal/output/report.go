package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmorelli/augur/pkg/lexer"
	"github.com/tmorelli/augur/pkg/models"
)

// BuildAnalysis assembles the full renderable report for one analyzed
// program. The JSON shape comes from the models types; the text and
// markdown shapes are built here.
func BuildAnalysis(report *models.AnalysisReport, title string) *Report {
	out := &Report{Title: title, Data: report}

	out.Sections = append(out.Sections, solutionSection(report))
	if report.Extraction != nil {
		out.Sections = append(out.Sections, extractionSection(report.Extraction))
	}
	if report.Tree != nil {
		out.Sections = append(out.Sections, TreeTable(report.Tree))
	}
	out.Sections = append(out.Sections, LineCostTable(report.LineCosts))
	if len(report.Structural.Annotations) > 0 {
		out.Sections = append(out.Sections, annotationSection(report.Structural.Annotations))
	}
	return out
}

func solutionSection(report *models.AnalysisReport) Renderable {
	sol := report.Solution
	var b strings.Builder
	fmt.Fprintf(&b, "Result: %s\n", sol.MainResult)
	fmt.Fprintf(&b, "Best: %s   Average: %s   Worst: %s\n",
		sol.Cases.Best.Notation(), sol.Cases.Average.Notation(), sol.Cases.Worst.Notation())
	fmt.Fprintf(&b, "Method: %s\n", sol.MethodUsed)
	fmt.Fprintf(&b, "Why: %s", sol.Justification)
	if report.Structural.Assumed {
		b.WriteString("\nNote: part of this bound rests on an assumption; see the annotations")
	}
	if report.Corrected {
		b.WriteString("\nNote: the source was repaired by grammar correction before analysis")
	}

	section := &Section{Content: b.String(), Data: sol}
	if len(sol.MathSteps) > 0 {
		var steps strings.Builder
		for i, step := range sol.MathSteps {
			fmt.Fprintf(&steps, "%d. %s: %s\n", i+1, step.Label, step.Value)
		}
		section.Sections = append(section.Sections, Section{
			Title:   "Derivation",
			Content: strings.TrimRight(steps.String(), "\n"),
		})
	}
	return section
}

func extractionSection(rel *models.RecurrenceRelation) Renderable {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rel.Equation)
	if rel.BaseCase != "" {
		fmt.Fprintf(&b, "Base case: %s\n", rel.BaseCase)
	}
	if rel.Explanation != "" {
		fmt.Fprintf(&b, "%s\n", rel.Explanation)
	}
	for _, note := range rel.Notes {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}
	return &Section{
		Title:   "Recurrence",
		Content: strings.TrimRight(b.String(), "\n"),
		Data:    rel,
	}
}

// TreeTable renders the level-by-level recursion tree expansion.
func TreeTable(tree *models.RecursionTree) Renderable {
	rows := make([][]string, len(tree.Levels))
	for i, lvl := range tree.Levels {
		rows[i] = []string{
			strconv.Itoa(lvl.Depth),
			strconv.Itoa(lvl.Nodes),
			lvl.SizeLabel,
			lvl.CostLabel,
		}
	}
	return &Table{
		Title:   "Recursion Tree",
		Headers: []string{"Depth", "Nodes", "Size", "Level Cost"},
		Rows:    rows,
		Footer:  []string{"", "", "", tree.Total},
		Data:    tree,
	}
}

// LineCostTable renders the per-line execution-count rows.
func LineCostTable(rows []models.LineCost) *Table {
	table := &Table{
		Title:   "Line Costs",
		Headers: []string{"Line", "Code", "Cost", "Reason"},
		Data:    rows,
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(row.Line),
			row.Code,
			row.Cost,
			row.Reason,
		})
	}
	return table
}

func annotationSection(anns []models.Annotation) Renderable {
	var b strings.Builder
	for _, a := range anns {
		fmt.Fprintf(&b, "- %s\n", a)
	}
	return &Section{
		Title:   "Annotations",
		Content: strings.TrimRight(b.String(), "\n"),
		Data:    anns,
	}
}

// TokenTable renders the lexer's view of the source.
func TokenTable(tokens []lexer.Token) *Table {
	table := &Table{
		Title:   "Tokens",
		Headers: []string{"Line", "Col", "Kind", "Lexeme"},
		Data:    tokens,
	}
	for _, tok := range tokens {
		if tok.Kind == lexer.KindEOF {
			continue
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			tok.Kind.String(),
			tok.Lexeme,
		})
	}
	return table
}

// SummaryTable renders one row per analyzed file for multi-file runs.
func SummaryTable(names []string, reports []*models.AnalysisReport, colored bool) *Table {
	table := &Table{
		Title:   "Analysis Summary",
		Headers: []string{"File", "Subject", "Bound", "Method"},
	}
	for i, report := range reports {
		subject := report.Procedure
		if subject == "" {
			subject = "(main)"
		}
		bound := report.Solution.MainResult
		if colored {
			bound = GrowthColor(bound)
		}
		table.Rows = append(table.Rows, []string{
			names[i],
			subject,
			bound,
			report.Solution.MethodUsed,
		})
	}
	return table
}
