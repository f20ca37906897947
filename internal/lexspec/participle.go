package lexspec

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"

	"lexgen/internal/regexlib"
)

// Definition exposes l as a participle lexer, so grammars can refer to rule
// kinds as token types.
func (l *Lexer) Definition() lexer.Definition { return &definition{l: l} }

type definition struct {
	l *Lexer
}

var (
	_ lexer.Definition       = (*definition)(nil)
	_ lexer.StringDefinition = (*definition)(nil)
)

func (d *definition) Symbols() map[string]lexer.TokenType {
	out := make(map[string]lexer.TokenType, len(d.l.symbols))
	for k, v := range d.l.symbols {
		out[k] = v
	}
	return out
}

func (d *definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(b))
}

func (d *definition) LexString(filename string, input string) (lexer.Lexer, error) {
	return &stream{filename: filename, sc: d.l.Scanner(input), symbols: d.l.symbols}, nil
}

type stream struct {
	filename string
	sc       *regexlib.Scanner
	symbols  map[string]lexer.TokenType
}

func (s *stream) Next() (lexer.Token, error) {
	tok, err := s.sc.Next()
	if err == io.EOF {
		off, line, col := s.sc.Pos()
		return lexer.EOFToken(lexer.Position{Filename: s.filename, Offset: off, Line: line, Column: col}), nil
	}
	if err != nil {
		return lexer.Token{}, fmt.Errorf("%s: %w", s.filename, err)
	}
	return lexer.Token{
		Type:  s.symbols[tok.Kind],
		Value: tok.Lexeme,
		Pos:   lexer.Position{Filename: s.filename, Offset: tok.Pos, Line: tok.Line, Column: tok.Column},
	}, nil
}
