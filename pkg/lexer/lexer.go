// Package lexer converts pseudocode source into a flat token stream. The
// dialect accepts several spellings for common operators (ASCII digraphs and
// their Unicode equivalents); the lexer normalizes those to a single form so
// later stages match on one lexeme only.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// Error reports an unrecognized character. The lexer does not attempt
// recovery; the first bad character aborts the scan.
type Error struct {
	Pos  Pos
	Char rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("unrecognized character %q at %s", e.Char, e.Pos)
}

const commentRune = '►'

// symbol normalization for the Unicode spellings.
var normalized = map[string]string{
	"≤": "<=",
	"≥": ">=",
	"≠": "<>",
	"←": "<-",
	"🡨": "<-",
	"↨": "<-",
}

var singleSymbols = map[rune]bool{
	'+': true, '-': true, '*': true, '/': true,
	'(': true, ')': true, '[': true, ']': true,
	'{': true, '}': true, ',': true, ';': true,
	':': true, '<': true, '>': true, '=': true,
	'.': true, '⌈': true, '⌉': true, '⌊': true, '⌋': true,
}

type scanner struct {
	src    []rune
	pos    int
	line   int
	column int
}

// Tokenize scans source in a single pass and returns its tokens, terminated
// by an EOF token. The only error it returns is *Error.
func Tokenize(source string) ([]Token, error) {
	s := &scanner{src: []rune(source), line: 1, column: 1}
	var tokens []Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens, nil
		}
	}
}

func (s *scanner) next() (Token, error) {
	s.skipBlanks()
	if s.pos >= len(s.src) {
		return Token{Kind: KindEOF, Pos: s.here()}, nil
	}

	start := s.here()
	ch := s.src[s.pos]

	switch {
	case unicode.IsDigit(ch):
		return Token{Kind: KindNumber, Lexeme: s.scanNumber(), Pos: start}, nil
	case isIdentStart(ch):
		word := s.scanWord()
		lower := strings.ToLower(word)
		if keywords[lower] {
			return Token{Kind: KindKeyword, Lexeme: lower, Pos: start}, nil
		}
		return Token{Kind: KindIdentifier, Lexeme: word, Pos: start}, nil
	case ch == '∞':
		s.advance()
		return Token{Kind: KindIdentifier, Lexeme: "infinity", Pos: start}, nil
	case ch == '"' || ch == '\'':
		return Token{Kind: KindString, Lexeme: s.scanString(ch), Pos: start}, nil
	}

	if lexeme, ok := s.scanSymbol(); ok {
		return Token{Kind: KindSymbol, Lexeme: lexeme, Pos: start}, nil
	}
	return Token{}, &Error{Pos: start, Char: ch}
}

func (s *scanner) skipBlanks() {
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		if ch == commentRune {
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance()
			}
			continue
		}
		if !unicode.IsSpace(ch) {
			return
		}
		s.advance()
	}
}

func (s *scanner) scanNumber() string {
	from := s.pos
	for s.pos < len(s.src) && unicode.IsDigit(s.src[s.pos]) {
		s.advance()
	}
	// a fractional part, but not a ".." range operator
	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && unicode.IsDigit(s.src[s.pos+1]) {
		s.advance()
		for s.pos < len(s.src) && unicode.IsDigit(s.src[s.pos]) {
			s.advance()
		}
	}
	return string(s.src[from:s.pos])
}

func (s *scanner) scanWord() string {
	from := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.advance()
	}
	return string(s.src[from:s.pos])
}

// scanString consumes a quoted literal. An unterminated string closes at end
// of input; string contents never matter to the analysis.
func (s *scanner) scanString(quote rune) string {
	s.advance()
	from := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != quote && s.src[s.pos] != '\n' {
		s.advance()
	}
	lexeme := string(s.src[from:s.pos])
	if s.pos < len(s.src) && s.src[s.pos] == quote {
		s.advance()
	}
	return lexeme
}

func (s *scanner) scanSymbol() (string, bool) {
	ch := s.src[s.pos]
	if repl, ok := normalized[string(ch)]; ok {
		s.advance()
		return repl, true
	}

	if s.pos+1 < len(s.src) {
		pair := string(s.src[s.pos : s.pos+2])
		switch pair {
		case "<=", ">=", "<>", ":=", "<-", "..":
			s.advance()
			s.advance()
			return pair, true
		}
	}

	if singleSymbols[ch] {
		s.advance()
		return string(ch), true
	}
	return "", false
}

func (s *scanner) here() Pos {
	return Pos{Line: s.line, Column: s.column}
}

func (s *scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.pos++
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '\''
}
