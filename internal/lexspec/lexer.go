package lexspec

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alecthomas/participle/v2/lexer"

	"lexgen/internal/regexlib"
)

var ErrNoRules = errors.New("no rules")

// reservedKind is the token type participle uses for end of input.
const reservedKind = "EOF"

type options struct {
	logger   *slog.Logger
	alphabet []rune
	ignored  []string
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithAlphabet widens the lexer alphabet beyond the runes the rules mention.
func WithAlphabet(alpha []rune) Option { return func(o *options) { o.alphabet = alpha } }

// WithIgnored adds kinds to the ones the rule file marks with !.
func WithIgnored(kinds ...string) Option {
	return func(o *options) { o.ignored = append(o.ignored, kinds...) }
}

// Lexer tokenizes input with the minimal DFA of all rules of a Spec.
type Lexer struct {
	spec      *Spec
	raw       *regexlib.DFA
	dfa       *regexlib.DFA
	tokenizer *regexlib.Tokenizer
	symbols   map[string]lexer.TokenType
}

// Build compiles every rule into one arena, joins them and runs the subset
// construction with the rule-order priorities, then minimizes.
func Build(spec *Spec, opts ...Option) (*Lexer, error) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if spec == nil || len(spec.Rules) == 0 {
		return nil, ErrNoRules
	}

	arena := regexlib.NewArena()
	nfas := make([]*regexlib.NFA, 0, len(spec.Rules))
	for _, r := range spec.Rules {
		switch r.Kind {
		case "":
			return nil, fmt.Errorf("rule at %s: missing kind", r.Pos)
		case reservedKind:
			return nil, fmt.Errorf("rule %s at %s: kind %s is reserved", r.Kind, r.Pos, reservedKind)
		}
		n, err := regexlib.ParseIn(arena, r.Pattern, r.Kind)
		if err != nil {
			return nil, fmt.Errorf("rule %s at %s: %w", r.Kind, r.Pos, err)
		}
		nfas = append(nfas, n)
	}

	prio := spec.Priorities()
	alpha := regexlib.ParseAlphabet(string(spec.Alphabet()) + string(o.alphabet))
	raw := regexlib.Convert(regexlib.Union(arena, nfas...), alpha, regexlib.WithPriorities(prio))
	dfa := regexlib.Minimize(raw, alpha)

	ignored := append(spec.Ignored(), o.ignored...)
	symbols := map[string]lexer.TokenType{reservedKind: lexer.EOF}
	for i, k := range prio {
		symbols[k] = lexer.TokenType(-(i + 2))
	}

	o.logger.Debug("lexer built",
		"rules", len(spec.Rules),
		"kinds", len(prio),
		"nfa_states", arena.Len(),
		"dfa_states", len(raw.States),
		"min_states", len(dfa.States),
	)

	return &Lexer{
		spec:      spec,
		raw:       raw,
		dfa:       dfa,
		tokenizer: regexlib.NewTokenizer(dfa, regexlib.WithIgnored(ignored...)),
		symbols:   symbols,
	}, nil
}

func (l *Lexer) Spec() *Spec { return l.spec }

// DFA returns the minimized automaton. RawDFA is the one before minimization.
func (l *Lexer) DFA() *regexlib.DFA    { return l.dfa }
func (l *Lexer) RawDFA() *regexlib.DFA { return l.raw }

func (l *Lexer) Tokenize(input string) ([]regexlib.Token, error) {
	return l.tokenizer.Tokenize(input)
}

func (l *Lexer) Scanner(input string) *regexlib.Scanner {
	return l.tokenizer.Scanner(input)
}
