package regexlib

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportDOT prints a Graphviz rendering of a *DFA or *NFA to w.
func ExportDOT(w io.Writer, g interface{}) error {
	var b strings.Builder
	fmt.Fprintln(&b, "digraph G {")
	fmt.Fprintln(&b, "    rankdir=LR;")

	switch t := g.(type) {

	//------------------------------------------------------------------ DFA
	case *DFA:
		if t == nil || t.Start == nil {
			return errNoStart
		}
		for _, s := range t.States {
			shape := "circle"
			if s.Final {
				shape = "doublecircle"
			}
			label := fmt.Sprintf("D%d", s.ID)
			if s.Token != nil {
				label += "\\n" + s.Token.Kind
			}
			fmt.Fprintf(&b, "    q%d [shape=%s, label=%s];\n", s.ID, shape, strconv.Quote(label))
			for _, r := range s.Symbols() {
				fmt.Fprintf(&b, "    q%d -> q%d [label=%s];\n", s.ID, s.Transitions[r].ID, strconv.Quote(escapeRune(r)))
			}
		}
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", t.Start.ID)

	//------------------------------------------------------------------ NFA
	case *NFA:
		if t == nil || t.Start == nil {
			return errors.New("nfa has no start state")
		}
		for _, s := range t.States() {
			if s == nil {
				continue
			}
			shape := "circle"
			if s.Final {
				shape = "doublecircle"
			}
			fmt.Fprintf(&b, "    n%d [shape=%s];\n", s.ID, shape)
			for _, e := range s.Transitions {
				label := "ε"
				if !e.Epsilon {
					label = escapeRune(e.Symbol)
				}
				fmt.Fprintf(&b, "    n%d -> n%d [label=%s];\n", s.ID, e.To.ID, strconv.Quote(label))
			}
		}
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> n%d;\n", t.Start.ID)

	default:
		fmt.Fprintln(&b, "    /* unknown graph type */")
	}

	fmt.Fprintln(&b, "}")
	_, err := io.WriteString(w, b.String())
	return err
}
