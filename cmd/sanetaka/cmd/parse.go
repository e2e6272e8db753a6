package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ky0422/sanetaka/internal/errors"
	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/parser"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Sanetaka source and print the AST",
	Long: `Parse Sanetaka source code and print the resulting Abstract Syntax Tree.

Examples:
  sanetaka parse script.snt
  sanetaka parse -e "auto x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args, parseEval)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(source))
	program := p.ParseProgram()

	if len(program.Errors) > 0 {
		diags := make([]*errors.Diagnostic, len(program.Errors))
		for i, pe := range program.Errors {
			diags[i] = errors.New(pe.Message, pe.Pos, source, filename)
		}
		fmt.Fprintln(os.Stderr, errors.FormatAll(diags, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(program.Errors))
	}

	fmt.Println(program.String())
	return nil
}
