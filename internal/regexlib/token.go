package regexlib

import (
	"fmt"
	"math"
)

// Token is a recognized lexeme. Pos is a byte offset into the input; Line and
// Column are 1-based, Column counting runes.
type Token struct {
	Kind     string
	Lexeme   string
	Pos      int
	Line     int
	Column   int
	Pattern  string
	Priority int
}

func (t Token) String() string {
	if t.Pattern != "" {
		return fmt.Sprintf("Token(%s, %q, pos=%d, pattern=%q)", t.Kind, t.Lexeme, t.Pos, t.Pattern)
	}
	return fmt.Sprintf("Token(%s, %q, pos=%d)", t.Kind, t.Lexeme, t.Pos)
}

// Priorities ranks token kinds, strongest first. When one DFA state stands
// for final NFA states of several kinds, the kind with the lowest rank wins.
type Priorities []string

var DefaultPriorities = Priorities{"KEYWORD", "IDENTIFIER", "NUMBER"}

// DefaultIgnored lists kinds the tokenizer consumes without emitting.
var DefaultIgnored = []string{"WHITESPACE", "COMMENT"}

// Rank returns the position of kind in p. Kinds that are not listed, and the
// empty kind, are unranked.
func (p Priorities) Rank(kind string) (int, bool) {
	if kind == "" {
		return 0, false
	}
	for i, k := range p {
		if k == kind {
			return i, true
		}
	}
	return 0, false
}

// DefaultPriority is the rank of kind in DefaultPriorities, or math.MaxInt
// for any other kind.
func DefaultPriority(kind string) int {
	if r, ok := DefaultPriorities.Rank(kind); ok {
		return r
	}
	return math.MaxInt
}
