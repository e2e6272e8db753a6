package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/token"
)

var lexEval string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Sanetaka file or expression",
	Long: `Tokenize a Sanetaka program and print one token per line.

Examples:
  sanetaka lex script.snt
  sanetaka lex -e "auto x = 1;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(args, lexEval)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}

// printToken renders a token as "<literal>:<kind> (line:col)".
func printToken(tok token.Token) {
	literal := tok.Literal
	if literal == "" {
		literal = tok.Type.String()
	}
	fmt.Printf("%s:%s (%d:%d)\n", literal, tok.Type, tok.Pos.Line, tok.Pos.Column)
}
