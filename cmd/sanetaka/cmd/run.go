package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ky0422/sanetaka/internal/compiler"
	"github.com/ky0422/sanetaka/internal/errors"
	"github.com/ky0422/sanetaka/internal/interp"
	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/parser"
)

var (
	runEval    string
	runDumpAST bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Sanetaka file or expression",
	Long: `Lex, parse, type-check, and interpret a Sanetaka program.

Examples:
  sanetaka run script.snt
  sanetaka run -e "print(1 + 2);"
  sanetaka run --dump-ast script.snt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed AST before running")
}

func runRun(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args, runEval)
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

	if runDumpAST {
		fmt.Println(program.String())
	}

	instructions, cerr := compiler.New().Compile(program)
	if cerr != nil {
		diag := errors.New(fmt.Sprintf("%s: %s", cerr.Kind, cerr.Message), cerr.Pos, source, filename)
		fmt.Fprintln(os.Stderr, diag.Format(true))
		return fmt.Errorf("type checking failed")
	}

	if _, rerr := interp.New(os.Stdout).Run(instructions); rerr != nil {
		diag := errors.New(fmt.Sprintf("%s: %s", rerr.Kind, rerr.Message), rerr.Pos, source, filename)
		fmt.Fprintln(os.Stderr, diag.Format(true))
		return fmt.Errorf("execution failed")
	}

	return nil
}
