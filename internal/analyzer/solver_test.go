package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/tmorelli/augur/pkg/models"
)

func relation(extra models.Measure, terms ...models.Term) *models.RecurrenceRelation {
	rel := &models.RecurrenceRelation{Procedure: "T", Terms: terms, Extra: extra}
	rel.Equation = rel.RenderEquation()
	return rel
}

func TestSolveMasterTheorem(t *testing.T) {
	tests := []struct {
		name       string
		rel        *models.RecurrenceRelation
		wantResult string
	}{
		{
			name:       "case 2 merge sort",
			rel:        relation(models.Linear, models.Term{Coeff: 2, Op: models.OpDiv, Amount: 2}),
			wantResult: "Θ(n log n)",
		},
		{
			name:       "case 1 leaf heavy",
			rel:        relation(models.Linear, models.Term{Coeff: 4, Op: models.OpDiv, Amount: 2}),
			wantResult: "Θ(n^2)",
		},
		{
			name:       "case 3 root heavy",
			rel:        relation(models.Quadratic, models.Term{Coeff: 2, Op: models.OpDiv, Amount: 2}),
			wantResult: "Θ(n^2)",
		},
		{
			name:       "case 2 binary search",
			rel:        relation(models.Constant, models.Term{Coeff: 1, Op: models.OpDiv, Amount: 2}),
			wantResult: "Θ(log n)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := Solve(tt.rel, DefaultSubstitutionCap)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if sol.MainResult != tt.wantResult {
				t.Errorf("MainResult = %q, want %q", sol.MainResult, tt.wantResult)
			}
			if sol.MethodUsed != models.MethodMasterTheorem {
				t.Errorf("MethodUsed = %q, want master theorem", sol.MethodUsed)
			}
			if len(sol.MathSteps) < 4 {
				t.Errorf("expected a full derivation, got %d steps", len(sol.MathSteps))
			}
		})
	}
}

func TestSolveMasterTheoremSteps(t *testing.T) {
	rel := relation(models.Linear, models.Term{Coeff: 2, Op: models.OpDiv, Amount: 2})
	sol, err := Solve(rel, DefaultSubstitutionCap)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	joined := ""
	for _, step := range sol.MathSteps {
		joined += step.Label + ": " + step.Value + "\n"
	}
	for _, want := range []string{"a = 2, b = 2", "log_2(2) = 1", "case 2", "Θ(n log n)"} {
		if !strings.Contains(joined, want) {
			t.Errorf("math steps missing %q:\n%s", want, joined)
		}
	}
}

func TestSolveLinearForms(t *testing.T) {
	tests := []struct {
		name       string
		rel        *models.RecurrenceRelation
		wantResult string
	}{
		{
			name:       "telescoping constant work",
			rel:        relation(models.Constant, models.Term{Coeff: 1, Op: models.OpSub, Amount: 1}),
			wantResult: "Θ(n)",
		},
		{
			name:       "telescoping linear work",
			rel:        relation(models.Linear, models.Term{Coeff: 1, Op: models.OpSub, Amount: 1}),
			wantResult: "Θ(n^2)",
		},
		{
			name: "fibonacci",
			rel: relation(models.Constant,
				models.Term{Coeff: 1, Op: models.OpSub, Amount: 1},
				models.Term{Coeff: 1, Op: models.OpSub, Amount: 2}),
			wantResult: "Θ(1.618^n)",
		},
		{
			name:       "hanoi",
			rel:        relation(models.Constant, models.Term{Coeff: 2, Op: models.OpSub, Amount: 1}),
			wantResult: "Θ(2^n)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := Solve(tt.rel, DefaultSubstitutionCap)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if sol.MainResult != tt.wantResult {
				t.Errorf("MainResult = %q, want %q", sol.MainResult, tt.wantResult)
			}
			if sol.MethodUsed != models.MethodLinearForm {
				t.Errorf("MethodUsed = %q, want linear recurrence", sol.MethodUsed)
			}
		})
	}
}

func TestSolveSubstitutionMixedDivisors(t *testing.T) {
	rel := relation(models.Linear,
		models.Term{Coeff: 1, Op: models.OpDiv, Amount: 2},
		models.Term{Coeff: 1, Op: models.OpDiv, Amount: 3})
	sol, err := Solve(rel, DefaultSubstitutionCap)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if sol.MethodUsed != models.MethodSubstitution {
		t.Errorf("MethodUsed = %q, want bounded substitution", sol.MethodUsed)
	}
	// the two halves sum below n, so the top level dominates
	if sol.MainResult != "Θ(n)" {
		t.Errorf("MainResult = %q, want Θ(n)", sol.MainResult)
	}
}

func TestSolveUnresolvedTermFails(t *testing.T) {
	rel := relation(models.Constant, models.Term{Coeff: 1, Raw: "k", Unresolved: true})
	_, err := Solve(rel, DefaultSubstitutionCap)
	if !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("Solve() error = %v, want ErrUnsolvable", err)
	}
}

func TestSolveNilRelation(t *testing.T) {
	if _, err := Solve(nil, DefaultSubstitutionCap); !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("expected ErrUnsolvable for nil relation, got %v", err)
	}
}
