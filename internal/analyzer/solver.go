package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/tmorelli/augur/pkg/models"
)

// ErrUnsolvable reports a recurrence none of the solving strategies could
// close. The caller falls back to the structural bound.
var ErrUnsolvable = errors.New("recurrence is not solvable by the available methods")

// epsilon guards the master-theorem case comparison: the critical exponent
// comes out of a log ratio and is rarely an exact float.
const epsilon = 1e-9

// Solve closes a recurrence relation into an asymptotic bound. Strategies
// are tried in order of rigor: the master theorem for uniform
// divide-and-conquer forms, closed forms for linear recurrences, then a
// bounded substitution that unrolls at most maxSubstitution levels and
// extrapolates from the observed pattern.
func Solve(rel *models.RecurrenceRelation, maxSubstitution int) (*models.Solution, error) {
	if rel == nil || len(rel.Terms) == 0 {
		return nil, ErrUnsolvable
	}
	if rel.Unresolved() {
		return nil, fmt.Errorf("%w: a recursive call has an unclassified size transform", ErrUnsolvable)
	}
	if sol := solveMaster(rel); sol != nil {
		return sol, nil
	}
	if sol := solveLinear(rel); sol != nil {
		return sol, nil
	}
	if sol := solveSubstitution(rel, maxSubstitution); sol != nil {
		return sol, nil
	}
	return nil, ErrUnsolvable
}

// solveMaster applies the master theorem to T(n) = aT(n/b) + f(n). It
// requires every term to divide by the same b.
func solveMaster(rel *models.RecurrenceRelation) *models.Solution {
	a := 0
	b := 0.0
	for _, t := range rel.Terms {
		if t.Op != models.OpDiv {
			return nil
		}
		if b == 0 {
			b = t.Amount
		} else if t.Amount != b {
			return nil
		}
		a += t.Coeff
	}
	if a < 1 || b <= 1 {
		return nil
	}

	f := rel.Extra
	if f.ExpBase > 0 {
		return nil
	}
	c := logBase(float64(a), b)

	steps := []models.MathStep{
		{Label: "recurrence", Value: rel.Equation},
		{Label: "coefficients", Value: fmt.Sprintf("a = %d, b = %g, f(n) = %s", a, b, f.Notation())},
		{Label: "critical exponent", Value: fmt.Sprintf("log_%g(%d) = %s", b, a, trimExponent(c))},
	}

	var result models.Measure
	var caseName, comparison, conclusion string
	switch {
	case f.Degree < c-epsilon:
		caseName = "case 1"
		comparison = fmt.Sprintf("deg f = %g < %s", f.Degree, trimExponent(c))
		result = models.Polynomial(c)
		conclusion = fmt.Sprintf("T(n) = Θ(n^%s)", trimExponent(c))
	case f.Degree > c+epsilon:
		caseName = "case 3"
		comparison = fmt.Sprintf("deg f = %g > %s", f.Degree, trimExponent(c))
		result = f
		conclusion = fmt.Sprintf("T(n) = Θ(%s)", f.Notation())
	default:
		caseName = "case 2"
		comparison = fmt.Sprintf("deg f = %g matches the critical exponent", f.Degree)
		result = models.Measure{Degree: c, LogPower: f.LogPower + 1}
		conclusion = fmt.Sprintf("T(n) = Θ(%s)", result.Notation())
	}
	steps = append(steps,
		models.MathStep{Label: "comparison", Value: fmt.Sprintf("%s: %s", caseName, comparison)},
		models.MathStep{Label: "conclusion", Value: conclusion},
	)
	if caseName == "case 3" {
		steps = append(steps, models.MathStep{
			Label: "regularity",
			Value: "a·f(n/b) ≤ k·f(n) for some k < 1 is assumed, as it holds for polynomial f",
		})
	}

	return &models.Solution{
		MainResult: fmt.Sprintf("Θ(%s)", result.Notation()),
		Cases:      models.Uniform(result),
		MethodUsed: models.MethodMasterTheorem,
		Justification: fmt.Sprintf("master theorem %s with a = %d, b = %g, f(n) = %s",
			caseName, a, b, f.Notation()),
		MathSteps: steps,
	}
}

// solveLinear closes the subtract-style forms: telescoping for a single
// call per level, and the classic exponential shapes for branching ones.
func solveLinear(rel *models.RecurrenceRelation) *models.Solution {
	for _, t := range rel.Terms {
		if t.Op != models.OpSub {
			return nil
		}
	}
	terms := rel.Terms

	// T(n) = T(n-k) + f(n): n/k levels each costing at most f(n)
	if len(terms) == 1 && terms[0].Coeff == 1 {
		result := rel.Extra.AddDegree(1)
		return &models.Solution{
			MainResult: fmt.Sprintf("Θ(%s)", result.Notation()),
			Cases:      models.Uniform(result),
			MethodUsed: models.MethodLinearForm,
			Justification: fmt.Sprintf(
				"telescoping: roughly n/%g levels, each doing %s work", terms[0].Amount, rel.Extra.Notation()),
			MathSteps: []models.MathStep{
				{Label: "recurrence", Value: rel.Equation},
				{Label: "expansion", Value: fmt.Sprintf("T(n) = f(n) + f(n-%g) + f(n-%g) + ... + T(base)", terms[0].Amount, 2*terms[0].Amount)},
				{Label: "levels", Value: fmt.Sprintf("n/%g terms in the sum", terms[0].Amount)},
				{Label: "conclusion", Value: fmt.Sprintf("T(n) = Θ(%s)", result.Notation())},
			},
		}
	}

	// T(n) = T(n-1) + T(n-2) + O(1): Fibonacci growth
	if len(terms) == 2 && terms[0].Coeff == 1 && terms[1].Coeff == 1 &&
		terms[0].Amount+terms[1].Amount == 3 && rel.Extra.IsConstant() {
		result := models.Exponential(models.GoldenRatio)
		return &models.Solution{
			MainResult:    fmt.Sprintf("Θ(%s)", result.Notation()),
			Cases:         models.Uniform(result),
			MethodUsed:    models.MethodLinearForm,
			Justification: "the characteristic equation x^2 = x + 1 has the golden ratio as its dominant root",
			MathSteps: []models.MathStep{
				{Label: "recurrence", Value: rel.Equation},
				{Label: "characteristic equation", Value: "x^2 = x + 1"},
				{Label: "dominant root", Value: "φ = (1 + √5)/2 ≈ 1.618"},
				{Label: "conclusion", Value: fmt.Sprintf("T(n) = Θ(%s)", result.Notation())},
			},
		}
	}

	// a·T(n-k) + O(1) with a ≥ 2: Hanoi-style doubling
	if len(terms) == 1 && terms[0].Coeff >= 2 {
		a := float64(terms[0].Coeff)
		base := math.Pow(a, 1/terms[0].Amount)
		result := models.Exponential(base)
		return &models.Solution{
			MainResult: fmt.Sprintf("Θ(%s)", result.Notation()),
			Cases:      models.Uniform(result),
			MethodUsed: models.MethodLinearForm,
			Justification: fmt.Sprintf(
				"%d branches per level over n/%g levels multiply to an exponential", terms[0].Coeff, terms[0].Amount),
			MathSteps: []models.MathStep{
				{Label: "recurrence", Value: rel.Equation},
				{Label: "branching", Value: fmt.Sprintf("%d subproblems per level, n/%g levels", terms[0].Coeff, terms[0].Amount)},
				{Label: "conclusion", Value: fmt.Sprintf("T(n) = Θ(%s)", result.Notation())},
			},
		}
	}
	return nil
}

// solveSubstitution numerically unrolls the recurrence for a bounded number
// of levels and extrapolates from the per-level cost ratio. It handles the
// mixed forms the closed-form strategies reject, such as
// T(n) = T(n/2) + T(n/3) + n.
func solveSubstitution(rel *models.RecurrenceRelation, maxLevels int) *models.Solution {
	if maxLevels <= 0 {
		return nil
	}
	const startSize = 1 << 20
	const nodeLimit = 1 << 16

	f := func(s float64) float64 {
		if s < 2 {
			return 1
		}
		v := math.Pow(s, rel.Extra.Degree)
		for i := 0; i < rel.Extra.LogPower; i++ {
			v *= math.Log2(s)
		}
		return v
	}

	sizes := []float64{startSize}
	var levelCosts []float64
	hasSub := false
	for _, t := range rel.Terms {
		if t.Op == models.OpSub {
			hasSub = true
		}
	}

	for level := 0; level < maxLevels && len(sizes) > 0 && len(sizes) < nodeLimit; level++ {
		cost := 0.0
		var next []float64
		for _, s := range sizes {
			cost += f(s)
			if s <= 1 {
				continue
			}
			for _, t := range rel.Terms {
				child := s
				if t.Op == models.OpDiv {
					child = s / t.Amount
				} else {
					child = s - t.Amount
				}
				for i := 0; i < t.Coeff; i++ {
					next = append(next, child)
				}
			}
		}
		levelCosts = append(levelCosts, cost)
		sizes = next
	}
	if len(levelCosts) < 3 {
		return nil
	}

	// ratio of successive level costs over the tail of the expansion
	last := levelCosts[len(levelCosts)-1]
	prev := levelCosts[len(levelCosts)-2]
	if prev == 0 {
		return nil
	}
	ratio := last / prev

	depth := models.Logarithmic
	if hasSub {
		depth = models.Linear
	}

	var result models.Measure
	var conclusion string
	switch {
	case ratio < 1-0.05:
		// geometrically shrinking levels: the root dominates
		result = rel.Extra
		conclusion = "per-level cost shrinks geometrically; the top level dominates"
	case ratio <= 1+0.05:
		result = rel.Extra.Times(depth)
		conclusion = "per-level cost stays flat; total is top-level cost times the depth"
	default:
		if hasSub {
			result = models.Exponential(ratio)
			conclusion = "per-level cost grows geometrically over linearly many levels"
		} else {
			// growing divide-and-conquer outside master form
			result = models.Polynomial(math.Max(rel.Extra.Degree+1, 1))
			conclusion = "per-level cost grows geometrically over logarithmically many levels"
		}
	}

	return &models.Solution{
		MainResult: fmt.Sprintf("Θ(%s)", result.Notation()),
		Cases:      models.Uniform(result),
		MethodUsed: models.MethodSubstitution,
		Justification: fmt.Sprintf(
			"bounded substitution over %d levels observed a per-level cost ratio of %.2f", len(levelCosts), ratio),
		MathSteps: []models.MathStep{
			{Label: "recurrence", Value: rel.Equation},
			{Label: "expansion", Value: fmt.Sprintf("unrolled %d levels from a representative input", len(levelCosts))},
			{Label: "observed ratio", Value: fmt.Sprintf("successive level costs scale by %.2f", ratio)},
			{Label: "pattern", Value: conclusion},
			{Label: "conclusion", Value: fmt.Sprintf("T(n) = Θ(%s)", result.Notation())},
		},
	}
}

func trimExponent(c float64) string {
	if c == math.Trunc(c) {
		return fmt.Sprintf("%d", int(c))
	}
	return fmt.Sprintf("%.3f", c)
}
