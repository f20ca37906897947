package regexlib

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// DfaState is one state of a DFA. States produced by Convert are identified
// by the set of NFA states they stand for; states produced by Minimize have
// no NFA states.
type DfaState struct {
	ID          int
	NFAStates   []*State
	Final       bool
	Transitions map[rune]*DfaState
	// Token is the resolved token of a final state. A final state whose NFA
	// states carry no ranked kind has a nil Token and is accept-only.
	Token *Token
}

func newDfaState(id int) *DfaState {
	return &DfaState{ID: id, Transitions: map[rune]*DfaState{}}
}

// AddTransition records d --r--> to. A second, different target for the same
// symbol breaks determinism and panics.
func (d *DfaState) AddTransition(r rune, to *DfaState) {
	if prev, ok := d.Transitions[r]; ok && prev != to {
		panic(fmt.Sprintf("regexlib: D%d already moves on %q to D%d, not D%d", d.ID, r, prev.ID, to.ID))
	}
	d.Transitions[r] = to
}

func (d *DfaState) Next(r rune) (*DfaState, bool) {
	to, ok := d.Transitions[r]
	return to, ok
}

// Symbols returns the symbols d has transitions on, sorted.
func (d *DfaState) Symbols() []rune {
	out := make([]rune, 0, len(d.Transitions))
	for r := range d.Transitions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d *DfaState) kind() string {
	if d.Token == nil {
		return ""
	}
	return d.Token.Kind
}

type DFA struct {
	Start    *DfaState
	States   []*DfaState
	Alphabet []rune
}

func (d *DFA) StateByID(id int) *DfaState {
	for _, s := range d.States {
		if s.ID == id {
			return s
		}
	}
	return nil
}

var errNoStart = errors.New("dfa has no start state")

// Validate checks the structural invariants of d: every state is reachable
// from Start, no transition leaves the state collection, and no two states
// stand for the same non-empty set of NFA states.
func (d *DFA) Validate() error {
	if d == nil || d.Start == nil {
		return errNoStart
	}
	owned := make(map[*DfaState]struct{}, len(d.States))
	sets := make(map[string]int, len(d.States))
	for _, s := range d.States {
		owned[s] = struct{}{}
		if len(s.NFAStates) == 0 {
			continue
		}
		k := stateListKey(s.NFAStates)
		if other, ok := sets[k]; ok {
			return fmt.Errorf("D%d and D%d stand for the same NFA states", other, s.ID)
		}
		sets[k] = s.ID
	}
	if _, ok := owned[d.Start]; !ok {
		return fmt.Errorf("start state D%d is not in the state list", d.Start.ID)
	}

	seen := map[*DfaState]struct{}{d.Start: {}}
	queue := []*DfaState{d.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, r := range cur.Symbols() {
			to := cur.Transitions[r]
			if _, ok := owned[to]; !ok {
				return fmt.Errorf("D%d moves on %q to D%d outside the state list", cur.ID, r, to.ID)
			}
			if _, ok := seen[to]; !ok {
				seen[to] = struct{}{}
				queue = append(queue, to)
			}
		}
	}
	if len(seen) != len(d.States) {
		return fmt.Errorf("%d of %d states are unreachable", len(d.States)-len(seen), len(d.States))
	}
	return nil
}

/* ----------- subset construction ----------- */

type converter struct {
	nfa    []*State // indexed by state id
	byKey  map[string]*DfaState
	sets   []*bitset.BitSet // NFA-state set of each DFA state, by DFA id
	states []*DfaState
}

// Convert turns n into an equivalent DFA over alphabet with the subset
// construction. Symbols outside alphabet never get a transition. Final states
// resolve their token with the priorities given by WithPriorities
// (DefaultPriorities otherwise).
func Convert(n *NFA, alphabet []rune, opts ...Option) *DFA {
	o := newOptions(opts)
	alpha := normalizeAlphabet(alphabet)

	c := &converter{nfa: indexStates(n.Start), byKey: map[string]*DfaState{}}
	start := c.newSet()
	start.Set(uint(n.Start.ID))
	dStart, _ := c.lookup(c.closure(start))

	for queue := []*DfaState{dStart}; len(queue) > 0; {
		cur := queue[0]
		queue = queue[1:]
		for _, r := range alpha {
			moved := c.move(c.sets[cur.ID], r)
			if moved.None() {
				continue
			}
			to, created := c.lookup(c.closure(moved))
			if created {
				queue = append(queue, to)
			}
			cur.AddTransition(r, to)
		}
	}

	for _, d := range c.states {
		resolve(d, o.priorities)
	}
	return &DFA{Start: dStart, States: c.states, Alphabet: alpha}
}

func (c *converter) newSet() *bitset.BitSet {
	return bitset.New(uint(len(c.nfa)))
}

// closure extends set in place with every state reachable over epsilon edges.
func (c *converter) closure(set *bitset.BitSet) *bitset.BitSet {
	stack := make([]*State, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		stack = append(stack, c.nfa[i])
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range s.Transitions {
			if t.Epsilon && !set.Test(uint(t.To.ID)) {
				set.Set(uint(t.To.ID))
				stack = append(stack, t.To)
			}
		}
	}
	return set
}

func (c *converter) move(set *bitset.BitSet, r rune) *bitset.BitSet {
	res := c.newSet()
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, t := range c.nfa[i].Transitions {
			if !t.Epsilon && t.Symbol == r {
				res.Set(uint(t.To.ID))
			}
		}
	}
	return res
}

// lookup returns the DFA state for set, creating it when no state with the
// same NFA states exists yet.
func (c *converter) lookup(set *bitset.BitSet) (*DfaState, bool) {
	k := setKey(set)
	if d, ok := c.byKey[k]; ok {
		return d, false
	}
	d := newDfaState(len(c.states))
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		d.NFAStates = append(d.NFAStates, c.nfa[i])
	}
	c.byKey[k] = d
	c.states = append(c.states, d)
	c.sets = append(c.sets, set)
	return d, true
}

// resolve marks d final when any of its NFA states is final and attaches the
// token of the strongest ranked kind among them.
func resolve(d *DfaState, prio Priorities) {
	var winner *State
	best := 0
	for _, s := range d.NFAStates {
		if !s.Final {
			continue
		}
		d.Final = true
		if rank, ok := prio.Rank(s.Kind); ok && (winner == nil || rank < best) {
			winner, best = s, rank
		}
	}
	if winner != nil {
		d.Token = &Token{Kind: winner.Kind, Pos: -1, Pattern: winner.Pattern, Priority: best}
	}
}

func setKey(set *bitset.BitSet) string {
	var b strings.Builder
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		b.WriteString(strconv.FormatUint(uint64(i), 36))
		b.WriteByte(',')
	}
	return b.String()
}

func stateListKey(states []*State) string {
	ids := make([]int, len(states))
	for i, s := range states {
		ids[i] = s.ID
	}
	sort.Ints(ids)
	return fmt.Sprint(ids)
}
