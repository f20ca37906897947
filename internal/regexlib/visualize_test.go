package regexlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Visualize(&buf, MustCompile("a+").DFA()))
	assert.Equal(t, strings.Join([]string{
		"Start State: D0",
		"State D0:",
		"  --'a'--> D1",
		"State D1 (Final):",
		"  --'a'--> D1",
		"",
	}, "\n"), buf.String())
}

func TestVisualizeShowsKinds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Visualize(&buf, MustCompile(`a\|`, WithKind("PIPE")).DFA()))
	out := buf.String()
	assert.Contains(t, out, "  --'\\|'--> D2")
	assert.Contains(t, out, "State D2 (Final) [PIPE]:")
}

func TestExportDOT(t *testing.T) {
	re := MustCompile("ab", WithKind("AB"))

	var buf bytes.Buffer
	require.NoError(t, ExportDOT(&buf, re.DFA()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `q0 -> q1 [label="a"];`)
	assert.Contains(t, out, `q2 [shape=doublecircle, label="D2\\nAB"];`)
	assert.Contains(t, out, "_start -> q0;")

	buf.Reset()
	require.NoError(t, ExportDOT(&buf, re.NFA()))
	out = buf.String()
	assert.Contains(t, out, `n0 -> n1 [label="a"];`)
	assert.Contains(t, out, `n1 -> n2 [label="ε"];`)
	assert.Contains(t, out, "n3 [shape=doublecircle];")

	buf.Reset()
	require.NoError(t, ExportDOT(&buf, 42))
	assert.Contains(t, buf.String(), "unknown graph type")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, MustCompile("ab", WithKind("AB")).DFA()))
	out := buf.String()
	for _, want := range []string{"->D0", "D1", "D2", "AB"} {
		assert.Contains(t, out, want)
	}
	// header plus one row per transition and one for the dead end
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 4)
}

func TestRenderingWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	for _, d := range []*DFA{nil, {}, Minimize(nil, nil)} {
		assert.Error(t, Visualize(&buf, d))
		assert.Error(t, WriteTable(&buf, d))
		assert.Error(t, ExportDOT(&buf, d))
		assert.Error(t, d.Validate())
	}
	assert.Error(t, ExportDOT(&buf, (*NFA)(nil)))
	assert.Error(t, ExportDOT(&buf, &NFA{}))
	assert.Empty(t, buf.String())
}
