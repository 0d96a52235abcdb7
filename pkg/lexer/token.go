package lexer

import "fmt"

// Kind classifies a token.
type Kind int

const (
	KindIdentifier Kind = iota
	KindNumber
	KindString
	KindKeyword
	KindSymbol
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindKeyword:
		return "keyword"
	case KindSymbol:
		return "symbol"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Pos is a 1-based source position.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Keyword lexemes are lowercased; symbol
// lexemes are normalized to their ASCII form (e.g. "≤" becomes "<=").
type Token struct {
	Kind   Kind   `json:"kind"`
	Lexeme string `json:"lexeme"`
	Pos    Pos    `json:"pos"`
}

func (t Token) String() string {
	if t.Kind == KindEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}

// Is reports whether the token is a keyword or symbol with the given lexeme.
func (t Token) Is(lexeme string) bool {
	return (t.Kind == KindKeyword || t.Kind == KindSymbol) && t.Lexeme == lexeme
}

// keywords of the pseudocode dialect, matched case-insensitively.
var keywords = map[string]bool{
	"algorithm": true,
	"procedure": true,
	"function":  true,
	"begin":     true,
	"end":       true,
	"for":       true,
	"to":        true,
	"downto":    true,
	"while":     true,
	"repeat":    true,
	"until":     true,
	"if":        true,
	"then":      true,
	"else":      true,
	"do":        true,
	"and":       true,
	"or":        true,
	"not":       true,
	"call":      true,
	"return":    true,
	"print":     true,
	"mod":       true,
	"div":       true,
	"length":    true,
	"null":      true,
	"t":         true,
	"f":         true,
	"true":      true,
	"false":     true,
	"new":       true,
	"array":     true,
	"class":     true,
	"returns":   true,
	"swap":      true,
	"with":      true,
	"let":       true,
	"declare":   true,
}

// IsKeyword reports whether word is a reserved word of the dialect.
func IsKeyword(word string) bool {
	return keywords[word]
}
