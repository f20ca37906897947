package regexlib

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Visualize writes a plain-text dump of d: the start state, then every state
// with its finality and its transitions sorted by symbol.
func Visualize(w io.Writer, d *DFA) error {
	if d == nil || d.Start == nil {
		return errNoStart
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Start State: D%d\n", d.Start.ID)
	for _, s := range d.States {
		fmt.Fprintf(&b, "State D%d", s.ID)
		if s.Final {
			b.WriteString(" (Final)")
		}
		if s.Token != nil {
			fmt.Fprintf(&b, " [%s]", s.Token.Kind)
		}
		b.WriteString(":")
		for _, r := range s.Symbols() {
			fmt.Fprintf(&b, "\n  --'%s'--> D%d", escapeRune(r), s.Transitions[r].ID)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTable renders the transition table of d.
func WriteTable(w io.Writer, d *DFA) error {
	if d == nil || d.Start == nil {
		return errNoStart
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"From", "Symbol", "To", "Final", "Token"})

	for _, s := range d.States {
		from := "D" + strconv.Itoa(s.ID)
		if s == d.Start {
			from = "->" + from
		}
		final := ""
		if s.Final {
			final = "*"
		}
		token := ""
		if s.Token != nil {
			token = s.Token.Kind
		}
		syms := s.Symbols()
		if len(syms) == 0 {
			if err := table.Append([]string{from, "", "", final, token}); err != nil {
				return err
			}
			continue
		}
		for _, r := range syms {
			to := "D" + strconv.Itoa(s.Transitions[r].ID)
			if err := table.Append([]string{from, escapeRune(r), to, final, token}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}
