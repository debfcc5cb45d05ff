package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klauskaan/go-cal/internal/lexer"
	"github.com/klauskaan/go-cal/pkg/token"
)

var (
	lexEvalExpr   string
	showPos       bool
	showType      bool
	onlyErrors    bool
	showCleanExit bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a C/AL file or expression",
	Long: `Tokenize (lex) a C/AL source and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
C/AL source code is tokenized.

Examples:
  # Tokenize an object file
  calparse lex COD50000.TXT

  # Tokenize an inline fragment
  calparse lex -e "IF x THEN y := 1;"

  # Show token types and positions
  calparse lex --show-type --show-pos COD50000.TXT

  # Show only illegal tokens
  calparse lex --only-errors COD50000.TXT`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
	lexCmd.Flags().BoolVar(&showCleanExit, "clean-exit", false, "print the clean-exit verdict")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	log.WithField("file", filename).Debug("tokenizing")

	l := lexer.New(input)
	tokens := l.Tokenize()

	errorCount := 0
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.ILLEGAL {
			errorCount++
		}
		if onlyErrors && tok.Type != token.ILLEGAL {
			continue
		}

		line := tok.Literal
		if showType {
			line = fmt.Sprintf("%-14s %s", tok.Type, line)
		}
		if showPos {
			line = fmt.Sprintf("%4d:%-3d %s", tok.Pos.Line, tok.Pos.Column, line)
		}
		fmt.Println(line)
	}

	fmt.Printf("%d tokens, %d errors\n", len(tokens)-1, errorCount)

	if showCleanExit {
		result := l.IsCleanExit(lexer.CleanExitOptions{})
		if result.Passed {
			fmt.Println("clean exit: PASS")
		} else {
			fmt.Printf("clean exit: FAIL (%d violations)\n", len(result.Violations))
			for _, v := range result.Violations {
				fmt.Printf("  [%s] %s: expected %s, actual %s\n",
					v.Category, v.Message, v.Expected, v.Actual)
			}
		}
	}
	return nil
}
