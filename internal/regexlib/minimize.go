package regexlib

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Minimize returns the minimal DFA equivalent to d over alphabet. The input
// automaton is left untouched.
//
// Two states start out distinguishable when they differ in finality or in
// the kind of their resolved token. A pair becomes distinguishable when, on
// some symbol, exactly one of them has a transition or both move into a
// distinguishable pair. The remaining pairs are merged with union-find.
//
// Seeding on the kind means finals that carry different tokens are never
// merged, so the result can have more states than a minimization that seeds
// on finality alone.
func Minimize(d *DFA, alphabet []rune) *DFA {
	if d == nil || d.Start == nil {
		return d
	}
	states := d.States
	n := len(states)
	index := make(map[*DfaState]int, n)
	for i, s := range states {
		index[s] = i
	}
	target := func(s *DfaState, r rune) (int, bool) {
		to, ok := s.Transitions[r]
		if !ok {
			return 0, false
		}
		j, owned := index[to]
		if !owned {
			panic(fmt.Sprintf("regexlib: D%d moves to D%d outside the DFA", s.ID, to.ID))
		}
		return j, true
	}

	// Symbols present in the automaton but missing from alphabet still have
	// to be compared, or merged states could disagree on them.
	alpha := unionRunes(alphabet, d.Alphabet)
	for _, s := range states {
		alpha = unionRunes(alpha, s.Symbols())
	}

	// --- 1. seed the pair table -------------------------------------------
	marked := bitset.New(uint(n * n))
	pair := func(i, j int) uint {
		if i > j {
			i, j = j, i
		}
		return uint(i*n + j)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if states[i].Final != states[j].Final || states[i].kind() != states[j].kind() {
				marked.Set(pair(i, j))
			}
		}
	}

	// --- 2. refine to a fixed point ---------------------------------------
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if marked.Test(pair(i, j)) {
					continue
				}
				for _, r := range alpha {
					t1, ok1 := target(states[i], r)
					t2, ok2 := target(states[j], r)
					if !ok1 && !ok2 {
						continue
					}
					if ok1 != ok2 || (t1 != t2 && marked.Test(pair(t1, t2))) {
						marked.Set(pair(i, j))
						changed = true
						break
					}
				}
			}
		}
	}

	// --- 3. group equivalent states ---------------------------------------
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		root := i
		for parent[root] != root {
			root = parent[root]
		}
		for parent[i] != root {
			parent[i], i = root, parent[i]
		}
		return root
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !marked.Test(pair(i, j)) {
				if ri, rj := find(i), find(j); ri != rj {
					parent[ri] = rj
				}
			}
		}
	}

	// --- 4. build the reduced DFA -----------------------------------------
	// one representative per class, numbered by the class's first member
	classOf := make([]int, n)
	classByRoot := make(map[int]int)
	var reps []*DfaState
	for i, s := range states {
		root := find(i)
		c, ok := classByRoot[root]
		if !ok {
			c = len(reps)
			classByRoot[root] = c
			reps = append(reps, newDfaState(c))
		}
		classOf[i] = c

		rep := reps[c]
		if s.Final {
			rep.Final = true
			if rep.Token == nil && s.Token != nil {
				tok := *s.Token
				rep.Token = &tok
			}
		}
	}

	for i, s := range states {
		rep := reps[classOf[i]]
		for _, r := range s.Symbols() {
			j, _ := target(s, r)
			rep.AddTransition(r, reps[classOf[j]])
		}
	}

	return &DFA{
		Start:    reps[classOf[index[d.Start]]],
		States:   reps,
		Alphabet: alpha,
	}
}
