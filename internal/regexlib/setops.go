package regexlib

import "sort"

// Product walks a and b in lockstep. A missing transition is treated as a
// move into an implicit dead state, so the product is defined over the union
// of both alphabets; op decides finality from the finality of the two sides.
// Product states carry no NFA states and no tokens.
func Product(a, b *DFA, op func(bool, bool) bool) *DFA {
	type pair struct{ x, y *DfaState }
	final := func(p pair) bool {
		return op(p.x != nil && p.x.Final, p.y != nil && p.y.Final)
	}
	step := func(s *DfaState, r rune) *DfaState {
		if s == nil {
			return nil
		}
		return s.Transitions[r]
	}

	alpha := unionRunes(a.Alphabet, b.Alphabet)
	for _, d := range []*DFA{a, b} {
		for _, s := range d.States {
			alpha = unionRunes(alpha, s.Symbols())
		}
	}

	startPair := pair{a.Start, b.Start}
	start := newDfaState(0)
	start.Final = final(startPair)
	mp := map[pair]*DfaState{startPair: start}
	queue := []pair{startPair}
	states := []*DfaState{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cur := mp[p]
		for _, c := range alpha {
			np := pair{step(p.x, c), step(p.y, c)}
			if np.x == nil && np.y == nil {
				continue
			}
			ns, exists := mp[np]
			if !exists {
				ns = newDfaState(len(states))
				ns.Final = final(np)
				mp[np] = ns
				states = append(states, ns)
				queue = append(queue, np)
			}
			cur.AddTransition(c, ns)
		}
	}
	return &DFA{Start: start, States: states, Alphabet: alpha}
}

// Intersect accepts the strings accepted by both a and b.
func Intersect(a, b *DFA) *DFA { return Product(a, b, func(x, y bool) bool { return x && y }) }

// Equivalent reports whether a and b accept the same language, by looking for
// a reachable product state where exactly one side accepts.
func Equivalent(a, b *DFA) bool {
	diff := Product(a, b, func(x, y bool) bool { return x != y })
	for _, s := range diff.States {
		if s.Final {
			return false
		}
	}
	return true
}

func unionRunes(a, b []rune) []rune {
	m := map[rune]struct{}{}
	for _, r := range a {
		m[r] = struct{}{}
	}
	for _, r := range b {
		m[r] = struct{}{}
	}
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
