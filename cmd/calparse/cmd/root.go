package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "calparse",
	Short: "C/AL lexer and parser toolchain",
	Long: `calparse tokenizes and parses C/AL source files — the legacy
procedural language of classic ERP objects (Tables, Pages, Codeunits,
Reports, XMLports).

It produces token streams with precise source positions, an AST of the
outer object and its procedural bodies, and a health report quantifying
lexer correctness and performance across a corpus of real-world files.

All diagnostics are sanitized: proprietary identifiers from customer
source never appear in messages or reports.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.SetOutput(os.Stderr)

	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// readInput resolves the command input: an inline -e expression or a file
// argument.
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
