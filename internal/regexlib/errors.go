package regexlib

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPattern     = errors.New("empty pattern")
	ErrMalformedPattern = errors.New("malformed pattern")
	ErrUnrecognizedChar = errors.New("unrecognized character")
)

// PatternError reports a pattern that could not be turned into an NFA:
// unbalanced grouping or an operator without enough operands.
type PatternError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("malformed pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Msg)
}

func (e *PatternError) Unwrap() error { return ErrMalformedPattern }

// UnrecognizedCharError is returned by the tokenizer when no accepting
// prefix starts at Pos.
type UnrecognizedCharError struct {
	Pos    int
	Line   int
	Column int
	Char   rune
}

func (e *UnrecognizedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d (line %d, column %d)", e.Char, e.Pos, e.Line, e.Column)
}

func (e *UnrecognizedCharError) Unwrap() error { return ErrUnrecognizedChar }
