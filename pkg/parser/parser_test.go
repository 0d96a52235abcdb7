package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorelli/augur/pkg/ast"
)

const bubbleSort = `
procedure BubbleSort(A, n)
begin
    for i <- 1 to n - 1 do
    begin
        for j <- 1 to n - i do
        begin
            if A[j] > A[j+1] then
                swap A[j] with A[j+1]
        end
    end
end
`

const fibonacci = `
procedure Fib(n)
begin
    if n <= 1 then
        return n
    return Fib(n-1) + Fib(n-2)
end
`

const binarySearch = `
procedure BinarySearch(A, n, x)
begin
    low <- 1
    high <- n
    while low <= high do
    begin
        mid <- ⌊(low + high) / 2⌋
        if A[mid] = x then
            return mid
        else if A[mid] < x then
            low <- mid + 1
        else
            high <- mid - 1
    end
    return -1
end
`

func TestParseBubbleSort(t *testing.T) {
	prog, err := Parse(bubbleSort)
	require.NoError(t, err)
	require.Len(t, prog.Procedures, 1)

	proc := prog.Procedures[0]
	assert.Equal(t, "BubbleSort", proc.Name)
	require.Len(t, proc.Body.Stmts, 1)

	outer, ok := proc.Body.Stmts[0].(*ast.ForLoop)
	require.True(t, ok)
	assert.Equal(t, "i", outer.Var)

	inner, ok := outer.Body.Stmts[0].(*ast.ForLoop)
	require.True(t, ok)
	assert.Equal(t, "j", inner.Var)

	cond, ok := inner.Body.Stmts[0].(*ast.IfElse)
	require.True(t, ok)
	call, ok := cond.Then.Stmts[0].(*ast.CallStmt)
	require.True(t, ok)
	assert.Equal(t, "swap", call.Call.Name)
	assert.Len(t, call.Call.Args, 2)
}

func TestParseFibonacci(t *testing.T) {
	prog, err := Parse(fibonacci)
	require.NoError(t, err)
	proc := prog.Lookup("fib")
	require.NotNil(t, proc)
	require.Len(t, proc.Body.Stmts, 2)

	ret, ok := proc.Body.Stmts[1].(*ast.ReturnStmt)
	require.True(t, ok)
	sum, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)

	left, ok := sum.Left.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "Fib", left.Name)
}

func TestParseBinarySearch(t *testing.T) {
	prog, err := Parse(binarySearch)
	require.NoError(t, err)
	proc := prog.Procedures[0]
	require.Len(t, proc.Body.Stmts, 4)

	loop, ok := proc.Body.Stmts[2].(*ast.WhileLoop)
	require.True(t, ok)

	// the floor brackets group like parentheses
	mid, ok := loop.Body.Stmts[0].(*ast.Assignment)
	require.True(t, ok)
	div, ok := mid.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "/", div.Op)

	// else-if chains nest inside the else branch
	branch, ok := loop.Body.Stmts[1].(*ast.IfElse)
	require.True(t, ok)
	require.NotNil(t, branch.Else)
	_, ok = branch.Else.Stmts[0].(*ast.IfElse)
	assert.True(t, ok)
}

func TestParseBareProcedureForm(t *testing.T) {
	prog, err := Parse(`
Sum(A[1..n], n) returns integer
begin
    total <- 0
    for i <- 1 to n do
        total <- total + A[i]
    return total
end
`)
	require.NoError(t, err)
	require.Len(t, prog.Procedures, 1)
	assert.Equal(t, "Sum", prog.Procedures[0].Name)
	assert.Equal(t, []ast.Param{{Name: "A"}, {Name: "n"}}, prog.Procedures[0].Params)
}

func TestParseMainBlockStatements(t *testing.T) {
	prog, err := Parse(`
x <- 10
print x
call Work(x)
`)
	require.NoError(t, err)
	require.Len(t, prog.Main.Stmts, 3)
	_, ok := prog.Main.Stmts[0].(*ast.Assignment)
	assert.True(t, ok)
	_, ok = prog.Main.Stmts[1].(*ast.PrintStmt)
	assert.True(t, ok)
	_, ok = prog.Main.Stmts[2].(*ast.CallStmt)
	assert.True(t, ok)
}

func TestParseRepeatUntil(t *testing.T) {
	prog, err := Parse(`
procedure Drain(n)
begin
    repeat
        n <- n - 1
    until n <= 0
end
`)
	require.NoError(t, err)
	loop, ok := prog.Procedures[0].Body.Stmts[0].(*ast.RepeatUntilLoop)
	require.True(t, ok)
	assert.Len(t, loop.Body.Stmts, 1)
}

func TestParseMissingEndReportsExpectedToken(t *testing.T) {
	_, err := Parse(`
procedure Broken(n)
begin
    x <- 1
`)
	require.Error(t, err)
	var parseErr *Error
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, `"end"`, parseErr.Expected)
	assert.NotZero(t, parseErr.Pos.Line)
}

func TestParseMissingToReportsExpectedToken(t *testing.T) {
	_, err := Parse(`
procedure Broken(n)
begin
    for i <- 1 n
        x <- 1
end
`)
	require.Error(t, err)
	var parseErr *Error
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, `"to"`, parseErr.Expected)
	assert.Equal(t, "n", parseErr.Found.Lexeme)
}

func TestParseClassDeclaration(t *testing.T) {
	prog, err := Parse(`
class Node
begin
    value, next
end

procedure Touch(p)
begin
    p.value <- 0
end
`)
	require.NoError(t, err)
	require.Len(t, prog.Classes, 1)
	assert.Equal(t, []string{"value", "next"}, prog.Classes[0].Fields)

	assign, ok := prog.Procedures[0].Body.Stmts[0].(*ast.Assignment)
	require.True(t, ok)
	_, ok = assign.Target.(*ast.FieldAccess)
	assert.True(t, ok)
}
