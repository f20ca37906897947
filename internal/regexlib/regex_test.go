package regexlib

import (
	"strings"
	"sync"
	"testing"
)

// ------------------------------------------------------------------- helpers

func newRE(t *testing.T, pat string, opts ...Option) *Regex {
	t.Helper()
	re, err := Compile(pat, opts...)
	if err != nil {
		t.Fatalf("compile %q: %v", pat, err)
	}
	return re
}

func acc(t *testing.T, re *Regex, in string, want bool) {
	t.Helper()
	if got := re.Match(in); got != want {
		t.Fatalf("pattern %q on %q want %v got %v", re, in, want, got)
	}
}

// words returns every string over alpha of length at most n.
func words(alpha string, n int) []string {
	out := []string{""}
	frontier := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range frontier {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// ------------------------------------------------------------------- scenarios

func TestScenarioStarOfUnion(t *testing.T) {
	re := newRE(t, "a(b|c)*", WithAlphabet([]rune("abc")))
	for _, s := range []string{"a", "ab", "ac", "abbc", "acb", "abcabc"} {
		acc(t, re, s, true)
	}
	for _, s := range []string{"", "b"} {
		acc(t, re, s, false)
	}
}

func TestScenarioOptionalGroup(t *testing.T) {
	re := newRE(t, "a(b*|c+)?d", WithAlphabet([]rune("abcd")))
	for _, s := range []string{"abd", "acd", "abbbd", "acccd", "ad"} {
		acc(t, re, s, true)
	}
	for _, s := range []string{"a", "d"} {
		acc(t, re, s, false)
	}
}

func TestScenarioPlus(t *testing.T) {
	re := newRE(t, "a+")
	acc(t, re, "", false)
	acc(t, re, "a", true)
	acc(t, re, "aa", true)
	acc(t, re, "aaaa", true)
	acc(t, re, "b", false)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"a?", "", true},
		{"a?", "a", true},
		{"a?", "aa", false},
		{"a?", "b", false},
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "", false},
		{"a|b", "c", false},
		{"a|b", "ab", false},
		{"ab|c", "ab", true},
		{"ab|c", "c", true},
		{"ab|c", "a", false},
		{"ab|c", "ac", false},
		{"ab*c", "ac", true},
		{"ab*c", "abc", true},
		{"ab*c", "abbbc", true},
		{"ab*c", "ab", false},
		{"ab*c", "bc", false},
		{"(ab)+", "abab", true},
		{"(ab)+", "aba", false},
		{`a\*`, "a*", true},
		{`a\*`, "aa", false},
		{`x\ty`, "x\ty", true},
		{"é+", "ééé", true},
	}
	for _, tt := range tests {
		re := newRE(t, tt.pattern, WithAlphabet([]rune("abcé*xy\t")))
		acc(t, re, tt.input, tt.want)
	}
}

func TestOutOfAlphabetRejects(t *testing.T) {
	re := newRE(t, "ab", WithAlphabet([]rune("a")))
	acc(t, re, "ab", false)
	acc(t, re, "a", false)
}

// ------------------------------------------------------------------- NFA ←→ DFA

func TestNFAtoDFAEquivalence(t *testing.T) {
	patterns := []string{"(ab|a)*c", "a(b*|c+)?d", "(a|b)*abb", "a?b?c?", "((a|b)c)+", "(a*)*", "(a?)+b"}
	for _, pat := range patterns {
		nfa, err := Parse(pat, "")
		if err != nil {
			t.Fatalf("parse %q: %v", pat, err)
		}
		raw := Convert(nfa, []rune("abcd"))
		min := Minimize(raw, []rune("abcd"))
		for _, s := range words("abcd", 4) {
			want := SimulateNFA(nfa, s)
			if got := Simulate(raw, s); got != want {
				t.Fatalf("%q on %q: dfa %v nfa %v", pat, s, got, want)
			}
			if got := Simulate(min, s); got != want {
				t.Fatalf("%q on %q: minimized %v nfa %v", pat, s, got, want)
			}
		}
	}
}

func TestFindAll(t *testing.T) {
	re := newRE(t, "ab*")
	text := "xxabbbyab"
	m := re.FindAll(text)
	if len(m) != 2 || text[m[0].Start:m[0].End] != "abbb" || text[m[1].Start:m[1].End] != "ab" {
		t.Fatalf("unexpected matches %v", m)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, pat := range []string{"", "(a", "a)", "*", "a|", "()", "|"} {
		if _, err := Compile(pat); err == nil {
			t.Fatalf("compile %q: want error", pat)
		}
	}
}

func TestConcurrentCompile(t *testing.T) {
	patterns := []string{"a(b|c)*", "a+", "(ab)+c?", "a(b*|c+)?d"}
	var wg sync.WaitGroup
	res := make([]*Regex, len(patterns)*8)
	for i := range res {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res[i] = MustCompile(patterns[i%len(patterns)], WithAlphabet([]rune("abcd")))
		}(i)
	}
	wg.Wait()
	for i, re := range res {
		want := res[i%len(patterns)]
		if len(re.DFA().States) != len(want.DFA().States) {
			t.Fatalf("%q: %d states, want %d", re, len(re.DFA().States), len(want.DFA().States))
		}
		if !Equivalent(re.DFA(), want.DFA()) {
			t.Fatalf("%q: concurrent compiles disagree", re)
		}
	}
}

// ------------------------------------------------------------------- Bench (quick)

func BenchmarkMillionAs(b *testing.B) {
	re := MustCompile("ab*")
	txt := strings.Repeat("a", 1_000_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = re.FindAll(txt)
	}
}
