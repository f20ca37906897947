package regexlib

import (
	"unicode/utf8"
)

type SymbolKind int

const (
	SymOperand  SymbolKind = iota // literal rune
	SymLParen                     // (
	SymRParen                     // )
	SymStar                       // *
	SymPlus                       // +
	SymOptional                   // ?
	SymUnion                      // |
	SymConcat                     // implicit, inserted by InsertConcat
)

// Symbol is one unit of a pattern: an operand rune or an operator. Pos is the
// byte offset of the symbol in the source pattern.
type Symbol struct {
	Kind SymbolKind
	Rune rune
	Pos  int
}

func (s Symbol) String() string {
	switch s.Kind {
	case SymOperand:
		return string(s.Rune)
	case SymLParen:
		return "("
	case SymRParen:
		return ")"
	case SymStar:
		return "*"
	case SymPlus:
		return "+"
	case SymOptional:
		return "?"
	case SymUnion:
		return "|"
	case SymConcat:
		return "·"
	default:
		return "<bad>"
	}
}

type lexer struct {
	input string
	pos   int
}

func newLexer(s string) *lexer { return &lexer{input: s} }

func (l *lexer) next() (Symbol, bool) {
	if l.pos >= len(l.input) {
		return Symbol{}, false
	}
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	switch r {
	case '(':
		return Symbol{Kind: SymLParen, Pos: start}, true
	case ')':
		return Symbol{Kind: SymRParen, Pos: start}, true
	case '*':
		return Symbol{Kind: SymStar, Pos: start}, true
	case '+':
		return Symbol{Kind: SymPlus, Pos: start}, true
	case '?':
		return Symbol{Kind: SymOptional, Pos: start}, true
	case '|':
		return Symbol{Kind: SymUnion, Pos: start}, true
	case '\\':
		if l.pos >= len(l.input) {
			// standalone backslash => treat as literal
			return Symbol{Kind: SymOperand, Rune: r, Pos: start}, true
		}
		r2, s2 := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += s2
		return Symbol{Kind: SymOperand, Rune: unescape(r2), Pos: start}, true
	default:
		return Symbol{Kind: SymOperand, Rune: r, Pos: start}, true
	}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// Scan splits a pattern into symbols without inserting concatenation.
func Scan(pattern string) []Symbol {
	l := newLexer(pattern)
	var out []Symbol
	for {
		sym, ok := l.next()
		if !ok {
			return out
		}
		out = append(out, sym)
	}
}
