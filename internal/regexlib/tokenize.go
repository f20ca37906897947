package regexlib

import (
	"io"
	"math"
	"unicode/utf8"
)

// Tokenizer splits input into tokens with a DFA, always taking the longest
// accepting prefix. Kinds listed as ignored are consumed but not emitted.
// A Tokenizer holds no per-input state and may be shared between goroutines.
type Tokenizer struct {
	dfa     *DFA
	ignored map[string]struct{}
}

type TokenizerOption func(*Tokenizer)

// WithIgnored replaces the set of ignored kinds (DefaultIgnored by default).
func WithIgnored(kinds ...string) TokenizerOption {
	return func(t *Tokenizer) {
		t.ignored = make(map[string]struct{}, len(kinds))
		for _, k := range kinds {
			t.ignored[k] = struct{}{}
		}
	}
}

func NewTokenizer(d *DFA, opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{dfa: d}
	WithIgnored(DefaultIgnored...)(t)
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Tokenizer) DFA() *DFA { return t.dfa }

func (t *Tokenizer) Ignored(kind string) bool {
	_, ok := t.ignored[kind]
	return ok
}

// Tokenize returns every non-ignored token of input, or the first
// *UnrecognizedCharError.
func (t *Tokenizer) Tokenize(input string) ([]Token, error) {
	sc := t.Scanner(input)
	var out []Token
	for {
		tok, err := sc.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

// Tokenize is shorthand for NewTokenizer(d, opts...).Tokenize(input).
func Tokenize(d *DFA, input string, opts ...TokenizerOption) ([]Token, error) {
	return NewTokenizer(d, opts...).Tokenize(input)
}

// Scanner yields the tokens of one input one at a time.
type Scanner struct {
	t     *Tokenizer
	input string
	pos   int
	line  int
	col   int
}

func (t *Tokenizer) Scanner(input string) *Scanner {
	return &Scanner{t: t, input: input, line: 1, col: 1}
}

// Pos returns the byte offset, line and column of the next unread rune.
func (s *Scanner) Pos() (offset, line, column int) { return s.pos, s.line, s.col }

// Next returns the next non-ignored token, io.EOF once the input is
// exhausted, or an *UnrecognizedCharError. After an error the scanner does
// not advance.
func (s *Scanner) Next() (Token, error) {
	for s.pos < len(s.input) {
		end, st := longestMatch(s.t.dfa, s.input, s.pos)
		if end < 0 {
			r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
			return Token{}, &UnrecognizedCharError{Pos: s.pos, Line: s.line, Column: s.col, Char: r}
		}
		tok := tokenAt(st, s.input[s.pos:end], s.pos, s.line, s.col)
		s.advance(end)
		if s.t.Ignored(tok.Kind) {
			continue
		}
		return tok, nil
	}
	return Token{}, io.EOF
}

func (s *Scanner) advance(end int) {
	for _, r := range s.input[s.pos:end] {
		if r == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
	s.pos = end
}

// longestMatch walks d from pos as far as transitions allow and returns the
// end offset of the last final state reached together with that state. The
// empty prefix never matches; end is -1 when no final state was reached.
func longestMatch(d *DFA, input string, pos int) (int, *DfaState) {
	end := -1
	var last *DfaState
	if d == nil || d.Start == nil {
		return end, last
	}
	cur := d.Start
	for i := pos; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		next, ok := cur.Transitions[r]
		if !ok {
			break
		}
		cur = next
		i += size
		if cur.Final {
			end, last = i, cur
		}
	}
	return end, last
}

func tokenAt(st *DfaState, lexeme string, pos, line, col int) Token {
	tok := Token{Lexeme: lexeme, Pos: pos, Line: line, Column: col, Priority: math.MaxInt}
	if st.Token != nil {
		tok.Kind = st.Token.Kind
		tok.Pattern = st.Token.Pattern
		tok.Priority = st.Token.Priority
	}
	return tok
}
