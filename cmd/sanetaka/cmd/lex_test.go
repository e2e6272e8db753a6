package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexEvalPrintsOneTokenPerLine(t *testing.T) {
	lexEval = `auto x = 1;`
	defer func() { lexEval = "" }()

	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	os.Stdout = w

	err := runLex(nil, nil)

	w.Close()
	os.Stdout = old
	require.NoError(t, err)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	lines := buf.String()

	require.Contains(t, lines, "auto:auto (1:1)")
	require.Contains(t, lines, "x:IDENT (1:6)")
	require.Contains(t, lines, "1:NUMBER (1:10)")
	require.Contains(t, lines, ";:; (1:11)")
}

func TestLexNoArgsReturnsError(t *testing.T) {
	lexEval = ""
	err := runLex(nil, nil)
	require.Error(t, err)
}
