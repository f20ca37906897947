package regexlib

import "github.com/bits-and-blooms/bitset"

// Simulate reports whether d accepts the whole input. A symbol without a
// transition, including any symbol outside the alphabet, rejects.
func Simulate(d *DFA, input string) bool {
	if d == nil || d.Start == nil {
		return false
	}
	cur := d.Start
	for _, r := range input {
		next, ok := cur.Transitions[r]
		if !ok {
			return false
		}
		cur = next
	}
	return cur.Final
}

// Recognize runs d over the whole input and returns the token of the state it
// stops in. ok is false when the input is rejected; an accept-only state
// yields a token with an empty Kind.
func Recognize(d *DFA, input string) (tok Token, ok bool) {
	if d == nil || d.Start == nil {
		return Token{}, false
	}
	cur := d.Start
	for _, r := range input {
		next, found := cur.Transitions[r]
		if !found {
			return Token{}, false
		}
		cur = next
	}
	if !cur.Final {
		return Token{}, false
	}
	return tokenAt(cur, input, 0, 1, 1), true
}

// SimulateNFA runs n directly, tracking the set of active states. It is the
// reference the DFA pipeline is checked against.
func SimulateNFA(n *NFA, input string) bool {
	c := &converter{nfa: indexStates(n.Start)}
	cur := c.newSet()
	cur.Set(uint(n.Start.ID))
	cur = c.closure(cur)
	for _, r := range input {
		cur = c.closure(c.move(cur, r))
		if cur.None() {
			return false
		}
	}
	return anyFinal(c, cur)
}

func anyFinal(c *converter, set *bitset.BitSet) bool {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if c.nfa[i].Final {
			return true
		}
	}
	return false
}
