package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexemes(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == KindEOF {
			break
		}
		out = append(out, t.Lexeme)
	}
	return out
}

func TestTokenizeAssignmentSpellings(t *testing.T) {
	for _, src := range []string{"x <- 1", "x ← 1", "x 🡨 1", "x := 1", "x ↨ 1"} {
		tokens, err := Tokenize(src)
		require.NoError(t, err, src)
		require.Len(t, tokens, 4, src)
		assert.Equal(t, KindIdentifier, tokens[0].Kind)
		if src != "x := 1" {
			assert.Equal(t, "<-", tokens[1].Lexeme, src)
		}
		assert.Equal(t, KindNumber, tokens[2].Kind)
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	tokens, err := Tokenize("WHILE While while")
	require.NoError(t, err)
	for _, tok := range tokens[:3] {
		assert.Equal(t, KindKeyword, tok.Kind)
		assert.Equal(t, "while", tok.Lexeme)
	}
}

func TestTokenizeUnicodeOperators(t *testing.T) {
	tokens, err := Tokenize("a ≤ b ≥ c ≠ d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "<=", "b", ">=", "c", "<>", "d"}, lexemes(tokens))
}

func TestTokenizeFloorBrackets(t *testing.T) {
	tokens, err := Tokenize("mid <- ⌊(low + high) / 2⌋")
	require.NoError(t, err)
	got := lexemes(tokens)
	assert.Contains(t, got, "⌊")
	assert.Contains(t, got, "⌋")
}

func TestTokenizeComments(t *testing.T) {
	tokens, err := Tokenize("x <- 1 ► the invariant holds here\ny <- 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "<-", "1", "y", "<-", "2"}, lexemes(tokens))
}

func TestTokenizeInfinity(t *testing.T) {
	tokens, err := Tokenize("best <- ∞")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, KindIdentifier, tokens[2].Kind)
	assert.Equal(t, "infinity", tokens[2].Lexeme)
}

func TestTokenizeRangeVersusDecimal(t *testing.T) {
	tokens, err := Tokenize("A[1..n] 3.14")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "[", "1", "..", "n", "]", "3.14"}, lexemes(tokens))
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("for i <- 1 to n\n  x <- x + 1")
	require.NoError(t, err)
	assert.Equal(t, Pos{Line: 1, Column: 1}, tokens[0].Pos)
	// "x" on the second line, after two spaces
	var second Token
	for _, tok := range tokens {
		if tok.Pos.Line == 2 {
			second = tok
			break
		}
	}
	assert.Equal(t, Pos{Line: 2, Column: 3}, second.Pos)
}

func TestTokenizeRejectsUnknownCharacter(t *testing.T) {
	_, err := Tokenize("x <- 1\ny <- @")
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, '@', lexErr.Char)
	assert.Equal(t, Pos{Line: 2, Column: 6}, lexErr.Pos)
}

func TestTokenizeEmptySource(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, KindEOF, tokens[0].Kind)
}

func TestTokenizeString(t *testing.T) {
	tokens, err := Tokenize(`print "not found"`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, KindKeyword, tokens[0].Kind)
	assert.Equal(t, KindString, tokens[1].Kind)
	assert.Equal(t, "not found", tokens[1].Lexeme)
}
