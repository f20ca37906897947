package regexlib

import (
	"unicode/utf8"
)

type options struct {
	kind       string
	alphabet   []rune
	priorities Priorities
}

// Option configures Compile and Convert. Convert only looks at the
// priorities.
type Option func(*options)

// WithKind labels the compiled pattern's tokens with kind.
func WithKind(kind string) Option { return func(o *options) { o.kind = kind } }

// WithAlphabet fixes the input alphabet. By default Compile uses the operand
// runes of the pattern.
func WithAlphabet(alpha []rune) Option {
	return func(o *options) { o.alphabet = normalizeAlphabet(alpha) }
}

// WithPriorities sets the kind ranking used to resolve tokens.
func WithPriorities(p Priorities) Option { return func(o *options) { o.priorities = p } }

func newOptions(opts []Option) options {
	o := options{priorities: DefaultPriorities}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

/* ----------- compilation ----------- */

// Regex is a pattern compiled down to a minimal DFA. It is immutable and safe
// for concurrent use.
type Regex struct {
	pattern  string
	kind     string
	nfa      *NFA
	rawDFA   *DFA
	dfa      *DFA
	alphabet []rune
}

// Compile runs the whole pipeline for pattern: postfix, Thompson NFA, subset
// construction and minimization. A kind given with WithKind is always ranked,
// so the tokens of the compiled pattern carry it.
func Compile(pattern string, opts ...Option) (*Regex, error) {
	o := newOptions(opts)

	nfa, err := Parse(pattern, o.kind)
	if err != nil {
		return nil, err
	}

	alphabet := o.alphabet
	if len(alphabet) == 0 {
		alphabet = AlphabetOf(pattern)
	}

	prio := o.priorities
	if _, ok := prio.Rank(o.kind); o.kind != "" && !ok {
		prio = append(append(Priorities{}, prio...), o.kind)
	}

	raw := Convert(nfa, alphabet, WithPriorities(prio))
	minimized := Minimize(raw, alphabet)

	metricCompiles.Inc()
	metricDFAStates.WithLabelValues("raw").Observe(float64(len(raw.States)))
	metricDFAStates.WithLabelValues("minimized").Observe(float64(len(minimized.States)))

	return &Regex{
		pattern:  pattern,
		kind:     o.kind,
		nfa:      nfa,
		rawDFA:   raw,
		dfa:      minimized,
		alphabet: alphabet,
	}, nil
}

func MustCompile(p string, opts ...Option) *Regex {
	r, err := Compile(p, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

/* ----------- matching ----------- */

type Match struct {
	Start, End int
}

// Match reports whether the whole of s is in the pattern's language.
func (r *Regex) Match(s string) bool { return Simulate(r.dfa, s) }

// Tokenize splits s with the minimal DFA.
func (r *Regex) Tokenize(s string, opts ...TokenizerOption) ([]Token, error) {
	return Tokenize(r.dfa, s, opts...)
}

// FindAll returns the leftmost-longest non-overlapping matches in text,
// stepping over runes where nothing matches.
func (r *Regex) FindAll(text string) []Match {
	var out []Match
	for i := 0; i < len(text); {
		end, _ := longestMatch(r.dfa, text, i)
		if end < 0 {
			_, sz := utf8.DecodeRuneInString(text[i:])
			i += sz
			continue
		}
		out = append(out, Match{Start: i, End: end})
		i = end
	}
	return out
}

/* ----------- accessors ----------- */

func (r *Regex) String() string   { return r.pattern }
func (r *Regex) Kind() string     { return r.kind }
func (r *Regex) NFA() *NFA        { return r.nfa }
func (r *Regex) RawDFA() *DFA     { return r.rawDFA }
func (r *Regex) DFA() *DFA        { return r.dfa }
func (r *Regex) Alphabet() []rune { return r.alphabet }
