package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunEvalPrintsOutput(t *testing.T) {
	runEval = `print(1 + 2);`
	runDumpAST = false
	defer func() { runEval = "" }()

	out, err := captureStdout(t, func() error { return runRun(nil, nil) })
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestRunEvalTypeErrorReturnsError(t *testing.T) {
	runEval = `let x: number = "hi";`
	runDumpAST = false
	defer func() { runEval = "" }()

	_, err := captureStdout(t, func() error { return runRun(nil, nil) })
	require.Error(t, err)
}

func TestRunEvalParseErrorReturnsError(t *testing.T) {
	runEval = `let x: = 1;`
	runDumpAST = false
	defer func() { runEval = "" }()

	_, err := captureStdout(t, func() error { return runRun(nil, nil) })
	require.Error(t, err)
}

func TestRunNoArgsReturnsError(t *testing.T) {
	runEval = ""
	_, err := captureStdout(t, func() error { return runRun(nil, nil) })
	require.Error(t, err)
}

func TestRunDumpASTIncludesASTBeforeOutput(t *testing.T) {
	runEval = `print(1);`
	runDumpAST = true
	defer func() { runDumpAST = false; runEval = "" }()

	out, err := captureStdout(t, func() error { return runRun(nil, nil) })
	require.NoError(t, err)
	require.Contains(t, out, "print(1)")
	require.Contains(t, out, "1\n")
}
