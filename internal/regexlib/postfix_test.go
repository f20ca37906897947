package regexlib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPostfix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"ab", "ab·"},
		{"ab|c", "ab·c|"},
		{"a|b|c", "ab|c|"},
		{"ab*c", "ab*·c·"},
		{"a(b|c)*", "abc|*·"},
		{"a(b*|c+)?d", "ab*c+|?·d·"},
		{`a\*b`, `a\*·b·`},
		{`a\nb`, `a\n·b·`},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			post, err := ToPostfix(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatPostfix(post))
		})
	}
}

func TestInsertConcat(t *testing.T) {
	syms := InsertConcat(Scan("(a)b*c"))
	var kinds []SymbolKind
	for _, s := range syms {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SymbolKind{
		SymLParen, SymOperand, SymRParen, SymConcat, SymOperand, SymStar, SymConcat, SymOperand,
	}, kinds)
}

func TestScanEscapes(t *testing.T) {
	syms := Scan(`\(\t\`)
	require.Len(t, syms, 3)
	for _, s := range syms {
		assert.Equal(t, SymOperand, s.Kind)
	}
	assert.Equal(t, '(', syms[0].Rune)
	assert.Equal(t, '\t', syms[1].Rune)
	assert.Equal(t, '\\', syms[2].Rune)
	assert.Equal(t, []int{0, 2, 4}, []int{syms[0].Pos, syms[1].Pos, syms[2].Pos})
}

func TestUnbalancedParens(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
		msg     string
	}{
		{"(a", 0, "unclosed ("},
		{"a(b|(c)", 1, "unclosed ("},
		{"a)", 1, "unbalanced )"},
		{"(a))b", 3, "unbalanced )"},
	}
	for _, tt := range tests {
		_, err := ToPostfix(tt.pattern)
		require.Error(t, err, tt.pattern)
		assert.True(t, errors.Is(err, ErrMalformedPattern))

		var pe *PatternError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, tt.pos, pe.Pos, tt.pattern)
		assert.Equal(t, tt.msg, pe.Msg, tt.pattern)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("", "X")
	assert.ErrorIs(t, err, ErrEmptyPattern)

	for _, pat := range []string{"*", "a|", "|b", "()", "+a"} {
		_, err := Parse(pat, "X")
		assert.ErrorIs(t, err, ErrMalformedPattern, pat)
	}
}

func TestThompsonShape(t *testing.T) {
	n, err := Parse("a", "X")
	require.NoError(t, err)
	assert.Equal(t, 2, n.Arena().Len())
	assert.False(t, n.Start.Final)
	assert.True(t, n.End.Final)
	assert.Equal(t, "X", n.End.Kind)
	assert.Equal(t, "a", n.End.Pattern)
	assert.Equal(t, []*State{n.End}, n.Start.Targets('a'))

	n, err = Parse("a|b", "X")
	require.NoError(t, err)
	assert.Equal(t, 6, n.Arena().Len())
	assert.Len(t, n.Start.EpsilonTargets(), 2)

	var finals int
	for _, s := range n.States() {
		if s != nil && s.Final {
			finals++
		}
	}
	assert.Equal(t, 1, finals, "inner ends must lose finality")
}

func TestUnionKeepsRuleFinals(t *testing.T) {
	arena := NewArena()
	a, err := ParseIn(arena, "a", "A")
	require.NoError(t, err)
	b, err := ParseIn(arena, "b+", "B")
	require.NoError(t, err)

	u := Union(arena, a, b)
	assert.Nil(t, u.End)
	assert.Len(t, u.Start.EpsilonTargets(), 2)

	kinds := map[string]bool{}
	for _, s := range u.States() {
		if s != nil && s.Final {
			kinds[s.Kind] = true
		}
	}
	assert.Equal(t, map[string]bool{"A": true, "B": true}, kinds)

	other, err := Parse("c", "C")
	require.NoError(t, err)
	assert.Panics(t, func() { Union(arena, a, other) })
}

func TestAlphabetOf(t *testing.T) {
	assert.Equal(t, []rune("abc"), AlphabetOf("a(b|c)*", "cab+"))
	assert.Equal(t, []rune("*a"), AlphabetOf(`a\*`))
	assert.Equal(t, []rune("abc"), ParseAlphabet("cbaab"))
}
