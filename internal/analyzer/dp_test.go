package analyzer

import (
	"strings"
	"testing"
)

func TestDetectDPMemoizedRecursion(t *testing.T) {
	prog := mustParse(t, `
procedure Fib(n)
begin
    if memo[n] <> null then
        return memo[n]
    if n <= 1 then
        return n
    memo[n] <- Fib(n-1) + Fib(n-2)
    return memo[n]
end
`)
	ann := DetectDP(prog.Procedures[0])
	if ann == nil {
		t.Fatal("expected a dynamic-programming annotation")
	}
	if !strings.Contains(ann.Detail, "memo") {
		t.Errorf("Detail = %q, want the table name", ann.Detail)
	}
	if !strings.Contains(ann.Detail, "top-down") {
		t.Errorf("Detail = %q, want the top-down approach named", ann.Detail)
	}
}

func TestDetectDPBottomUpFill(t *testing.T) {
	prog := mustParse(t, `
procedure FibTable(n)
begin
    table[1] <- 1
    table[2] <- 1
    for i <- 3 to n do
        table[i] <- table[i-1] + table[i-2]
    return table[n]
end
`)
	ann := DetectDP(prog.Procedures[0])
	if ann == nil {
		t.Fatal("expected a dynamic-programming annotation")
	}
	if !strings.Contains(ann.Detail, "bottom-up") {
		t.Errorf("Detail = %q, want the bottom-up approach named", ann.Detail)
	}
	if !strings.Contains(ann.Detail, "O(n) space") {
		t.Errorf("Detail = %q, want a space estimate", ann.Detail)
	}
}

func TestDetectDPPlainRecursionIsNot(t *testing.T) {
	prog := mustParse(t, `
procedure Fib(n)
begin
    if n <= 1 then
        return n
    return Fib(n-1) + Fib(n-2)
end
`)
	if ann := DetectDP(prog.Procedures[0]); ann != nil {
		t.Errorf("plain recursion misdetected as DP: %v", ann)
	}
}

func TestDetectDPPlainLoopIsNot(t *testing.T) {
	prog := mustParse(t, `
procedure Sum(A, n)
begin
    s <- 0
    for i <- 1 to n do
        s <- s + A[i]
    return s
end
`)
	if ann := DetectDP(prog.Procedures[0]); ann != nil {
		t.Errorf("plain loop misdetected as DP: %v", ann)
	}
}
