package regexlib

import (
	"errors"
	"fmt"
	"sort"
)

var errStackUnderflow = errors.New("operator without enough operands")

// builder turns a postfix sequence into a Thompson NFA using a stack of
// fragments. Every fragment on the stack has exactly one final state: its
// End, labelled with the builder's kind.
type builder struct {
	arena *Arena
	kind  string
	stack []*NFA
}

// Parse compiles pattern into an NFA whose final state carries kind. An
// empty kind produces an accept-only automaton.
func Parse(pattern, kind string) (*NFA, error) {
	return ParseIn(NewArena(), pattern, kind)
}

// ParseIn is Parse with the states allocated from arena, so that several
// patterns can later be joined with Union.
func ParseIn(arena *Arena, pattern, kind string) (*NFA, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	postfix, err := ToPostfix(pattern)
	if err != nil {
		return nil, err
	}

	b := &builder{arena: arena, kind: kind}
	for _, sym := range postfix {
		if err := b.apply(sym); err != nil {
			return nil, &PatternError{Pattern: pattern, Pos: sym.Pos, Msg: fmt.Sprintf("%s: %v", sym, err)}
		}
	}
	if len(b.stack) != 1 {
		return nil, &PatternError{
			Pattern: pattern,
			Pos:     len(pattern),
			Msg:     fmt.Sprintf("%d fragments left after building, want 1", len(b.stack)),
		}
	}

	nfa := b.stack[0]
	nfa.End.accept(kind)
	nfa.End.Pattern = pattern
	return nfa, nil
}

func (b *builder) push(n *NFA) { b.stack = append(b.stack, n) }

func (b *builder) pop() (*NFA, error) {
	if len(b.stack) == 0 {
		return nil, errStackUnderflow
	}
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return n, nil
}

func (b *builder) pop2() (*NFA, *NFA, error) {
	n2, err := b.pop()
	if err != nil {
		return nil, nil, err
	}
	n1, err := b.pop()
	if err != nil {
		return nil, nil, err
	}
	return n1, n2, nil
}

func (b *builder) fragment(start, end *State) *NFA {
	return &NFA{Start: start, End: end, arena: b.arena}
}

func (b *builder) apply(sym Symbol) error {
	switch sym.Kind {
	case SymOperand:
		b.operand(sym.Rune)
		return nil
	case SymConcat:
		return b.concat()
	case SymUnion:
		return b.union()
	case SymStar:
		return b.star()
	case SymPlus:
		return b.plus()
	case SymOptional:
		return b.optional()
	default:
		return fmt.Errorf("invalid operator %s", sym)
	}
}

func (b *builder) operand(r rune) {
	start := b.arena.NewState()
	end := b.arena.NewState()
	start.AddTransition(r, end)
	end.accept(b.kind)
	b.push(b.fragment(start, end))
}

func (b *builder) concat() error {
	n1, n2, err := b.pop2()
	if err != nil {
		return err
	}
	n1.End.strip()
	n1.End.AddEpsilon(n2.Start)
	b.push(b.fragment(n1.Start, n2.End))
	return nil
}

func (b *builder) union() error {
	n1, n2, err := b.pop2()
	if err != nil {
		return err
	}
	start := b.arena.NewState()
	end := b.arena.NewState()
	start.AddEpsilon(n1.Start)
	start.AddEpsilon(n2.Start)
	n1.End.strip()
	n2.End.strip()
	n1.End.AddEpsilon(end)
	n2.End.AddEpsilon(end)
	end.accept(b.kind)
	b.push(b.fragment(start, end))
	return nil
}

func (b *builder) star() error {
	n, err := b.pop()
	if err != nil {
		return err
	}
	start := b.arena.NewState()
	end := b.arena.NewState()
	start.AddEpsilon(n.Start)
	start.AddEpsilon(end) // zero iterations
	n.End.AddEpsilon(n.Start)
	n.End.AddEpsilon(end)
	n.End.strip()
	end.accept(b.kind)
	b.push(b.fragment(start, end))
	return nil
}

func (b *builder) plus() error {
	n, err := b.pop()
	if err != nil {
		return err
	}
	start := b.arena.NewState()
	end := b.arena.NewState()
	start.AddEpsilon(n.Start)
	n.End.AddEpsilon(n.Start)
	n.End.AddEpsilon(end)
	n.End.strip()
	end.accept(b.kind)
	b.push(b.fragment(start, end))
	return nil
}

// optional keeps the operand's end as the fragment's final state.
func (b *builder) optional() error {
	n, err := b.pop()
	if err != nil {
		return err
	}
	start := b.arena.NewState()
	start.AddEpsilon(n.Start)
	start.AddEpsilon(n.End)
	n.End.accept(b.kind)
	b.push(b.fragment(start, n.End))
	return nil
}

// Union joins rule NFAs built in arena under a fresh start state. Each
// alternative keeps its own final state and kind, so a DFA built from the
// result can tell the rules apart.
func Union(arena *Arena, nfas ...*NFA) *NFA {
	start := arena.NewState()
	for _, n := range nfas {
		if n.arena != arena {
			panic("regexlib: Union of NFAs from different arenas")
		}
		start.AddEpsilon(n.Start)
	}
	return &NFA{Start: start, arena: arena}
}

// AlphabetOf returns the sorted set of operand runes used by the patterns.
func AlphabetOf(patterns ...string) []rune {
	set := map[rune]struct{}{}
	for _, p := range patterns {
		for _, sym := range Scan(p) {
			if sym.Kind == SymOperand {
				set[sym.Rune] = struct{}{}
			}
		}
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseAlphabet returns the sorted, de-duplicated runes of s.
func ParseAlphabet(s string) []rune {
	return normalizeAlphabet([]rune(s))
}

func normalizeAlphabet(alpha []rune) []rune {
	return unionRunes(alpha, nil)
}
