// Package lexspec reads lexer definitions written as one KIND = pattern rule
// per line and builds a single minimal DFA lexer from them.
//
//	# comment
//	KEYWORD     = if|else
//	IDENTIFIER  = (a|b)(a|b|0|1)*
//	!WHITESPACE = ( |\t)+
//
// A leading ! marks a kind whose tokens are consumed but not emitted. Kinds
// rank by first appearance, earlier ones winning ties on the same lexeme.
// Everything after "=" up to the end of the line, minus surrounding blanks,
// is the pattern, so comments only work on lines of their own.
package lexspec

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"lexgen/internal/regexlib"
)

type ruleFile struct {
	Lines []*ruleLine `parser:"( @@ | EOL )*"`
}

type ruleLine struct {
	Pos     lexer.Position
	Ignore  bool   `parser:"@Bang?"`
	Kind    string `parser:"@Kind Assign"`
	Pattern string `parser:"@Pattern"`
}

var ruleLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "EOL", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Bang", Pattern: `!`},
		{Name: "Kind", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Assign", Pattern: `=[ \t]*`, Action: lexer.Push("Body")},
	},
	"Body": {
		{Name: "Pattern", Pattern: `[^\r\n]+`, Action: lexer.Pop()},
	},
})

var parser = participle.MustBuild[ruleFile](
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Rule is one KIND = pattern line.
type Rule struct {
	Kind    string
	Pattern string
	Ignore  bool
	Pos     lexer.Position
}

// Spec is a parsed rule file. Rules keep their file order.
type Spec struct {
	Rules []Rule
}

// Parse reads a rule file from r. filename is only used in error positions.
func Parse(r io.Reader, filename string) (*Spec, error) {
	f, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return fromFile(f), nil
}

func ParseString(filename, src string) (*Spec, error) {
	f, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	return fromFile(f), nil
}

func fromFile(f *ruleFile) *Spec {
	s := &Spec{}
	for _, l := range f.Lines {
		s.Rules = append(s.Rules, Rule{
			Kind:    l.Kind,
			Pattern: trimPattern(l.Pattern),
			Ignore:  l.Ignore,
			Pos:     l.Pos,
		})
	}
	return s
}

// trimPattern drops trailing blanks, keeping one that is escaped by an odd
// run of backslashes.
func trimPattern(p string) string {
	t := strings.TrimRight(p, " \t")
	if t == p {
		return p
	}
	slashes := len(t) - len(strings.TrimRight(t, `\`))
	if slashes%2 == 1 {
		return p[:len(t)+1]
	}
	return t
}

// Priorities lists every kind once, in order of first appearance.
func (s *Spec) Priorities() regexlib.Priorities {
	var out regexlib.Priorities
	seen := map[string]bool{}
	for _, r := range s.Rules {
		if !seen[r.Kind] {
			seen[r.Kind] = true
			out = append(out, r.Kind)
		}
	}
	return out
}

// Ignored lists the kinds marked with ! on any of their rules.
func (s *Spec) Ignored() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range s.Rules {
		if r.Ignore && !seen[r.Kind] {
			seen[r.Kind] = true
			out = append(out, r.Kind)
		}
	}
	return out
}

// Alphabet is the set of runes used as operands by any rule.
func (s *Spec) Alphabet() []rune {
	patterns := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		patterns[i] = r.Pattern
	}
	return regexlib.AlphabetOf(patterns...)
}

func (r Rule) String() string {
	bang := ""
	if r.Ignore {
		bang = "!"
	}
	return fmt.Sprintf("%s%s = %s", bang, r.Kind, r.Pattern)
}
