package regexlib

import "fmt"

// Arena hands out state ids for a single construction. Ids are dense and
// start at zero, so automata built in different arenas may reuse ids; build
// every fragment that ends up in one automaton from the same arena.
//
// An Arena is not safe for concurrent use. Separate arenas are independent.
type Arena struct {
	states []*State
}

func NewArena() *Arena { return &Arena{} }

func (a *Arena) NewState() *State {
	s := &State{ID: len(a.states)}
	a.states = append(a.states, s)
	return s
}

// Len reports how many states the arena has created.
func (a *Arena) Len() int { return len(a.states) }

type Transition struct {
	Epsilon bool
	Symbol  rune
	To      *State
}

type State struct {
	ID          int
	Transitions []Transition
	Final       bool
	// Kind and Pattern are only meaningful while Final is set.
	Kind    string
	Pattern string
}

func (s *State) AddEpsilon(to *State) {
	s.Transitions = append(s.Transitions, Transition{Epsilon: true, To: to})
}

func (s *State) AddTransition(r rune, to *State) {
	s.Transitions = append(s.Transitions, Transition{Symbol: r, To: to})
}

func (s *State) EpsilonTargets() []*State {
	var out []*State
	for _, t := range s.Transitions {
		if t.Epsilon {
			out = append(out, t.To)
		}
	}
	return out
}

func (s *State) Targets(r rune) []*State {
	var out []*State
	for _, t := range s.Transitions {
		if !t.Epsilon && t.Symbol == r {
			out = append(out, t.To)
		}
	}
	return out
}

func (s *State) accept(kind string) {
	s.Final = true
	s.Kind = kind
}

// strip clears finality from an end state that has been absorbed into a
// larger fragment.
func (s *State) strip() {
	s.Final = false
	s.Kind = ""
	s.Pattern = ""
}

// NFA is a Thompson fragment. End is nil for automata combined with Union,
// where every alternative keeps its own final state.
type NFA struct {
	Start *State
	End   *State
	arena *Arena
}

func (n *NFA) Arena() *Arena { return n.arena }

// States returns every state reachable from Start, indexed by id. Slots for
// ids that are not reachable are nil.
func (n *NFA) States() []*State {
	return indexStates(n.Start)
}

func indexStates(start *State) []*State {
	if start == nil {
		return nil
	}
	seen := map[*State]struct{}{start: {}}
	stack := []*State{start}
	var index []*State
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for s.ID >= len(index) {
			index = append(index, nil)
		}
		if index[s.ID] != nil {
			panic(fmt.Sprintf("regexlib: two NFA states share id %d", s.ID))
		}
		index[s.ID] = s
		for _, t := range s.Transitions {
			if _, ok := seen[t.To]; !ok {
				seen[t.To] = struct{}{}
				stack = append(stack, t.To)
			}
		}
	}
	return index
}
