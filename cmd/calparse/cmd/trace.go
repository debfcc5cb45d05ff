package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/klauskaan/go-cal/internal/lexer"
	"github.com/klauskaan/go-cal/internal/sanitize"
)

var (
	traceEvalExpr string
	traceSanitize bool
	traceOutput   string
)

const traceBanner = `# C/AL lexer trace
# CONFIDENTIAL: may contain source text from customer objects.
# Do not attach to public issues unless produced with --sanitize.
`

var traceCmd = &cobra.Command{
	Use:   "trace [file]",
	Short: "Dump every lexer decision for a C/AL source",
	Long: `Run the lexer with tracing enabled and write one line per decision:
token emissions, context pushes and pops, depth counter changes, and
skipped regions. The output is grep-able: [line:column] EVENT: details.

With --sanitize, token values outside the keyword allow-list and simple
short identifiers are truncated to their first and last three characters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: traceSource,
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringVarP(&traceEvalExpr, "eval", "e", "", "trace inline code instead of reading from file")
	traceCmd.Flags().BoolVar(&traceSanitize, "sanitize", false, "truncate token values in the trace")
	traceCmd.Flags().StringVarP(&traceOutput, "output", "o", "", "write trace to file instead of stdout")
}

// writerSink adapts an io.Writer to the lexer's TraceSink. Only the raw
// token value of TOKEN events is sanitized; push/pop/flag/skip details
// are lexer-generated diagnostics and never carry source text.
type writerSink struct {
	w        io.Writer
	sanitize bool
}

func (s *writerSink) Event(ev lexer.TraceEvent) {
	detail := ev.Detail
	if ev.Kind == lexer.TraceToken {
		value := ev.Value
		if s.sanitize {
			value = sanitize.Truncate(value)
		}
		if value != "" {
			detail = detail + " " + value
		}
	}
	fmt.Fprintf(s.w, "[%d:%d] %s: %s\n", ev.Pos.Line, ev.Pos.Column, ev.Kind, detail)
}

func traceSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(traceEvalExpr, args)
	if err != nil {
		return err
	}

	out := os.Stdout
	if traceOutput != "" {
		f, err := os.Create(traceOutput)
		if err != nil {
			return fmt.Errorf("failed to create trace file %s: %w", traceOutput, err)
		}
		defer f.Close()
		out = f
	}

	fmt.Fprint(out, traceBanner)
	log.WithField("file", filename).Debug("tracing")

	l := lexer.New(input, lexer.WithTrace(&writerSink{w: out, sanitize: traceSanitize}))
	l.Tokenize()
	return nil
}
