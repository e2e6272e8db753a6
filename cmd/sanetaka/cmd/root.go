package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sanetaka",
	Short: "Sanetaka toolchain: lexer, parser, type checker, and interpreter",
	Long: `sanetaka is a statically-typed, expression-oriented scripting language.

A program is lexed, parsed into an AST, type-checked and lowered into an
IR, then evaluated by a tree-walking interpreter.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
