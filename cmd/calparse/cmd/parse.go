package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klauskaan/go-cal/internal/lexer"
	"github.com/klauskaan/go-cal/internal/parser"
	"github.com/klauskaan/go-cal/pkg/ast"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a C/AL file or expression",
	Long: `Parse a C/AL source into an AST and report any syntax errors.

Error messages are sanitized: raw identifier text from the source is
replaced with fixed-format placeholders.

Examples:
  # Parse an object file
  calparse parse COD50000.TXT

  # Parse an inline fragment
  calparse parse -e "IF x THEN y := 1;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	log.WithField("file", filename).Debug("parsing")

	l := lexer.New(input)
	p := parser.New(l.Tokenize())
	doc := p.Parse()

	if obj := doc.Object; obj != nil {
		fmt.Printf("OBJECT %s %d %s\n", obj.Kind, obj.ID, obj.Name)
		if obj.Code != nil {
			fmt.Printf("  %d global variables\n", len(obj.Code.Variables))
			for _, trigger := range obj.Code.Triggers {
				fmt.Printf("  %s\n", trigger.String())
			}
			for _, proc := range obj.Code.Procedures {
				fmt.Printf("  %s\n", proc.String())
			}
		}
	} else {
		fmt.Printf("%d top-level statements\n", len(doc.Statements))
	}

	statementCount := 0
	ast.Inspect(doc, func(n ast.Node) bool {
		if _, ok := n.(ast.Statement); ok {
			statementCount++
		}
		return true
	})
	fmt.Printf("%d statements total\n", statementCount)

	errors := p.Errors()
	if len(errors) == 0 {
		fmt.Println("no errors")
		return nil
	}
	fmt.Printf("%d errors:\n", len(errors))
	for _, parseErr := range errors {
		fmt.Printf("  %s\n", parseErr.Error())
	}
	return nil
}
