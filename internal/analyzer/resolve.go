package analyzer

import (
	"fmt"
	"strings"

	"github.com/tmorelli/augur/pkg/models"
)

// resolve decides which engine's answer the report leads with. Structural
// findings that a recurrence cannot express (a recursive call nested in a
// loop, a loop whose progress defeated analysis, an iterative halving loop)
// force the structural bound; otherwise a solved recurrence wins and the
// structural pass contributes the best/worst spread; a failed solve falls
// back to the structural bound with the failure on record.
func resolve(structural *models.StructuralResult, rel *models.RecurrenceRelation, solved *models.Solution, solveErr error) models.Solution {
	structuralForced := structural.Has(models.AnnCallInLoop) ||
		structural.Has(models.AnnLogLoop) ||
		structural.Has(models.AnnUnresolvedProgress)

	if !structuralForced && solved != nil {
		out := *solved
		if structural.Pattern != "" {
			// the pattern table knows the case spread a single solved
			// bound cannot carry (quicksort's degenerate worst case,
			// binary search's lucky first probe)
			out.Cases = structural.Cases
		} else if structural.Has(models.AnnEarlyExit) {
			out.Cases.Best = structural.Cases.Best.Min(out.Cases.Best)
		}
		out.MainResult = out.Cases.Bound()
		if out.Cases.Spread() {
			out.Justification = fmt.Sprintf("%s; the case spread comes from the program's structure", out.Justification)
		}
		return out
	}

	out := models.Solution{
		Cases:         structural.Cases,
		MainResult:    structural.Cases.Bound(),
		MethodUsed:    models.MethodStructural,
		Justification: structuralJustification(structural),
	}
	if solveErr != nil {
		structural.Annotations = append(structural.Annotations, models.Annotation{
			Kind:   models.AnnSolverFailed,
			Detail: solveErr.Error(),
		})
		out.Justification = fmt.Sprintf("%s (recurrence solving failed: %v)", out.Justification, solveErr)
	}
	if rel != nil && structuralForced && solved != nil {
		out.Justification = fmt.Sprintf(
			"%s; the structural reading overrides the solved recurrence here", out.Justification)
	}
	return out
}

func structuralJustification(structural *models.StructuralResult) string {
	var reasons []string
	seen := map[string]bool{}
	for _, a := range structural.Annotations {
		if seen[a.Kind] {
			continue
		}
		seen[a.Kind] = true
		switch a.Kind {
		case models.AnnCallInLoop:
			reasons = append(reasons, "a recursive call runs inside a loop")
		case models.AnnLogLoop:
			reasons = append(reasons, "the dominant loop halves its range each pass")
		case models.AnnUnresolvedProgress:
			reasons = append(reasons, "a loop's progress could not be established and a conservative bound was assumed")
		case models.AnnEarlyExit:
			reasons = append(reasons, "an early exit lowers the best case")
		case models.AnnPattern:
			reasons = append(reasons, a.Detail)
		}
	}
	if len(reasons) == 0 {
		return "derived from loop nesting and statement sequencing"
	}
	return strings.Join(reasons, "; ")
}
