package analyzer

import (
	"strings"
	"testing"

	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/models"
	"github.com/tmorelli/augur/pkg/parser"
)

// mustParse is shared by the analyzer tests.
func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return prog
}

func TestExtractFibonacci(t *testing.T) {
	prog := mustParse(t, `
procedure Fib(n)
begin
    if n <= 1 then
        return n
    return Fib(n-1) + Fib(n-2)
end
`)
	rel := ExtractRecurrence(prog, prog.Procedures[0])
	if rel == nil {
		t.Fatal("expected a recurrence")
	}
	if rel.Equation != "T(n) = T(n-1) + T(n-2) + O(1)" {
		t.Errorf("Equation = %q", rel.Equation)
	}
	if rel.BaseCase == "" || !strings.Contains(rel.BaseCase, "n <= 1") {
		t.Errorf("BaseCase = %q, want the leading guard", rel.BaseCase)
	}
	if rel.Unresolved() {
		t.Error("terms should classify cleanly")
	}
}

func TestExtractMergeSort(t *testing.T) {
	prog := mustParse(t, `
procedure MergeSort(A, low, high)
begin
    if low < high then
    begin
        mid <- (low + high) / 2
        call MergeSort(A, low, mid)
        call MergeSort(A, mid + 1, high)
        call Merge(A, low, mid, high)
    end
end

procedure Merge(A, low, mid, high)
begin
    for k <- low to high do
        B[k] <- A[k]
end
`)
	rel := ExtractRecurrence(prog, prog.Procedures[0])
	if rel == nil {
		t.Fatal("expected a recurrence")
	}
	if rel.Equation != "T(n) = 2T(n/2) + n" {
		t.Errorf("Equation = %q, want T(n) = 2T(n/2) + n", rel.Equation)
	}
}

func TestExtractQuicksortNotesBalancedSplit(t *testing.T) {
	prog := mustParse(t, `
procedure QuickSort(A, low, high)
begin
    if low < high then
    begin
        p <- Partition(A, low, high)
        call QuickSort(A, low, p - 1)
        call QuickSort(A, p + 1, high)
    end
end

procedure Partition(A, low, high)
begin
    for j <- low to high do
        x <- A[j]
    return low
end
`)
	rel := ExtractRecurrence(prog, prog.Procedures[0])
	if rel == nil {
		t.Fatal("expected a recurrence")
	}
	if rel.Equation != "T(n) = 2T(n/2) + n" {
		t.Errorf("Equation = %q, want the balanced-split form", rel.Equation)
	}
	foundNote := false
	for _, note := range rel.Notes {
		if strings.Contains(note, "balanced") {
			foundNote = true
		}
	}
	if !foundNote {
		t.Errorf("expected a note about the assumed balanced split, got %v", rel.Notes)
	}
}

func TestExtractFactorial(t *testing.T) {
	prog := mustParse(t, `
procedure Factorial(n)
begin
    if n <= 1 then
        return 1
    return n * Factorial(n - 1)
end
`)
	rel := ExtractRecurrence(prog, prog.Procedures[0])
	if rel == nil {
		t.Fatal("expected a recurrence")
	}
	want := []models.Term{{Coeff: 1, Op: models.OpSub, Amount: 1}}
	if len(rel.Terms) != 1 || rel.Terms[0] != want[0] {
		t.Errorf("Terms = %+v, want %+v", rel.Terms, want)
	}
}

func TestExtractUnclassifiedArgument(t *testing.T) {
	prog := mustParse(t, `
procedure Odd(n)
begin
    if n <= 1 then
        return 1
    return Odd(someOther(n))
end
`)
	rel := ExtractRecurrence(prog, prog.Procedures[0])
	if rel == nil {
		t.Fatal("expected a recurrence")
	}
	if !rel.Unresolved() {
		t.Error("a call through another function should stay unresolved")
	}
	if len(rel.Notes) == 0 {
		t.Error("expected an explanatory note")
	}
}

func TestExtractNonRecursiveReturnsNil(t *testing.T) {
	prog := mustParse(t, `
procedure Sum(A, n)
begin
    s <- 0
    for i <- 1 to n do
        s <- s + A[i]
    return s
end
`)
	if rel := ExtractRecurrence(prog, prog.Procedures[0]); rel != nil {
		t.Errorf("expected nil recurrence, got %v", rel)
	}
}
