package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorelli/augur/pkg/models"
)

func sampleReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		Procedure: "MergeSort",
		ASTDump:   "Program\n  Procedure MergeSort(A, low, high)",
		LineCosts: []models.LineCost{
			{Line: 3, Code: "for k <- low to high do", Cost: "n", Reason: "loop runs once per element"},
		},
		Extraction: &models.RecurrenceRelation{
			Procedure: "MergeSort",
			Terms:     []models.Term{{Coeff: 2, Op: models.OpDiv, Amount: 2}},
			Extra:     models.Linear,
			Equation:  "T(n) = 2T(n/2) + n",
			BaseCase:  "T(n) = O(1) when (low >= high)",
		},
		Solution: models.Solution{
			MainResult:    "Θ(n log n)",
			Cases:         models.Uniform(models.Linearithmic),
			MethodUsed:    models.MethodMasterTheorem,
			Justification: "master theorem case 2",
			MathSteps: []models.MathStep{
				{Label: "coefficients", Value: "a = 2, b = 2, f(n) = n"},
				{Label: "conclusion", Value: "T(n) = Θ(n log n)"},
			},
		},
		Tree: &models.RecursionTree{
			Levels: []models.TreeLevel{
				{Depth: 0, Nodes: 1, SizeLabel: "n", CostLabel: "n"},
				{Depth: 1, Nodes: 2, SizeLabel: "n/2", CostLabel: "2 · (n/2)"},
			},
			Total: "sum of the level costs",
		},
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatMarkdown, ParseFormat("md"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("anything"))
}

func TestBuildAnalysisTextRendering(t *testing.T) {
	report := BuildAnalysis(sampleReport(), "merge.pseudo")

	var buf bytes.Buffer
	require.NoError(t, report.RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "merge.pseudo")
	assert.Contains(t, out, "Result: Θ(n log n)")
	assert.Contains(t, out, "T(n) = 2T(n/2) + n")
	assert.Contains(t, out, "Derivation")
	assert.Contains(t, out, "a = 2, b = 2")
	assert.Contains(t, out, "Recursion Tree")
	assert.Contains(t, out, "Line Costs")
}

func TestBuildAnalysisJSONCarriesFullReport(t *testing.T) {
	report := BuildAnalysis(sampleReport(), "merge.pseudo")

	raw, err := json.Marshal(report.RenderData())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	sol, ok := decoded["solution"].(map[string]any)
	require.True(t, ok, "solution section missing: %s", raw)
	assert.Equal(t, "Θ(n log n)", sol["main_result"])
	cases, ok := sol["cases"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "n log n", cases["worst"])

	ext, ok := decoded["extraction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "T(n) = 2T(n/2) + n", ext["equation"])
}

func TestBuildAnalysisMarkdown(t *testing.T) {
	report := BuildAnalysis(sampleReport(), "merge.pseudo")

	var buf bytes.Buffer
	require.NoError(t, report.RenderMarkdown(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# merge.pseudo"))
	assert.Contains(t, out, "| Depth | Nodes | Size | Level Cost |")
}

func TestTableRenderMarkdown(t *testing.T) {
	table := &Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}},
	}
	var buf bytes.Buffer
	require.NoError(t, table.RenderMarkdown(&buf))
	assert.Contains(t, buf.String(), "| A | B |")
	assert.Contains(t, buf.String(), "| 1 | 2 |")
}

func TestSummaryTable(t *testing.T) {
	table := SummaryTable(
		[]string{"a.pseudo"},
		[]*models.AnalysisReport{sampleReport()},
		false,
	)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"a.pseudo", "MergeSort", "Θ(n log n)", models.MethodMasterTheorem}, table.Rows[0])
}
