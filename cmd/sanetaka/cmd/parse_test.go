package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEvalPrintsAST(t *testing.T) {
	parseEval = `auto x = 1 + 2;`
	defer func() { parseEval = "" }()

	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	os.Stdout = w

	err := runParse(nil, nil)

	w.Close()
	os.Stdout = old
	require.NoError(t, err)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	require.Contains(t, buf.String(), "auto x = (1 + 2);")
}

func TestParseEvalErrorReturnsError(t *testing.T) {
	parseEval = `let x: = 1;`
	defer func() { parseEval = "" }()

	old := os.Stderr
	_, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	os.Stderr = w

	err := runParse(nil, nil)

	w.Close()
	os.Stderr = old
	require.Error(t, err)
}

func TestParseNoArgsReturnsError(t *testing.T) {
	parseEval = ""
	err := runParse(nil, nil)
	require.Error(t, err)
}
