package cmd

import (
	"fmt"
	"os"
)

// readSource resolves a subcommand's input: inline code via -e/--eval takes
// precedence over a file argument. filename is "<eval>" for inline code,
// for use in diagnostics.
func readSource(args []string, eval string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline code")
}
