package corpus

import (
	"fmt"
	"strings"
	"time"

	"github.com/klauskaan/go-cal/internal/sanitize"
	"github.com/klauskaan/go-cal/internal/stats"
)

// outlierFactor flags files whose tokenize time is strictly greater than
// this multiple of the p95.
const outlierFactor = 2.0

// Totals is the side-channel carrying whole-corpus counts when only the
// failing results were retained in memory.
type Totals struct {
	TotalFiles  int
	TotalLines  int
	TotalTokens int
}

// HealthReport renders the corpus results as a markdown document. totals
// may be nil when results covers the whole corpus. Every variable piece of
// text — file names, error messages, violation fields — is
// markdown-escaped.
func HealthReport(results []FileResult, totals *Totals) string {
	var b strings.Builder
	b.WriteString("# C/AL Lexer Health Report\n\n")

	if len(results) == 0 && (totals == nil || totals.TotalFiles == 0) {
		b.WriteString("⚠️ **No files to validate**\n")
		return b.String()
	}

	writeSummary(&b, results, totals)
	writePerformance(&b, results)
	writeFailures(&b, results)
	return b.String()
}

func writeSummary(b *strings.Builder, results []FileResult, totals *Totals) {
	files, lines, tokens := len(results), 0, 0
	failures := 0
	for _, r := range results {
		lines += r.Lines
		tokens += r.TokenCount
		if r.Failed() {
			failures++
		}
	}
	if totals != nil {
		files = totals.TotalFiles
		lines = totals.TotalLines
		tokens = totals.TotalTokens
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- Files validated: %d\n", files)
	fmt.Fprintf(b, "- Total lines: %d\n", lines)
	fmt.Fprintf(b, "- Total tokens: %d\n", tokens)
	fmt.Fprintf(b, "- Failures: %d\n\n", failures)
}

func writePerformance(b *strings.Builder, results []FileResult) {
	b.WriteString("## Performance Metrics\n\n")

	times := make([]float64, 0, len(results))
	for _, r := range results {
		if r.TokenizeTime > 0 {
			times = append(times, float64(r.TokenizeTime.Microseconds())/1000)
		}
	}
	if len(times) == 0 {
		b.WriteString("Percentile data unavailable\n\n")
		return
	}

	p50, _ := stats.Percentile(times, 50)
	p95, _ := stats.Percentile(times, 95)
	p99, _ := stats.Percentile(times, 99)
	minTime, maxTime, sum := times[0], times[0], 0.0
	for _, t := range times {
		if t < minTime {
			minTime = t
		}
		if t > maxTime {
			maxTime = t
		}
		sum += t
	}

	fmt.Fprintf(b, "| Metric | Tokenize time (ms) |\n|---|---|\n")
	fmt.Fprintf(b, "| p50 | %.3f |\n", p50)
	fmt.Fprintf(b, "| p95 | %.3f |\n", p95)
	fmt.Fprintf(b, "| p99 | %.3f |\n", p99)
	fmt.Fprintf(b, "| min | %.3f |\n", minTime)
	fmt.Fprintf(b, "| max | %.3f |\n", maxTime)
	fmt.Fprintf(b, "| avg | %.3f |\n\n", sum/float64(len(times)))

	writeOutliers(b, results, p95)
}

func writeOutliers(b *strings.Builder, results []FileResult, p95 float64) {
	threshold := time.Duration(outlierFactor * p95 * float64(time.Millisecond))
	var outliers []FileResult
	for _, r := range results {
		if r.TokenizeTime > threshold {
			outliers = append(outliers, r)
		}
	}
	if len(outliers) == 0 {
		return
	}

	b.WriteString("## Performance Outliers\n\n")
	for _, r := range outliers {
		fmt.Fprintf(b, "- %s: %.3f ms\n",
			sanitize.EscapeMarkdown(r.File),
			float64(r.TokenizeTime.Microseconds())/1000)
	}
	b.WriteString("\n")
}

func writeFailures(b *strings.Builder, results []FileResult) {
	byCategory := map[string][]string{}
	var categories []string

	record := func(category, entry string) {
		if _, seen := byCategory[category]; !seen {
			categories = append(categories, category)
		}
		byCategory[category] = append(byCategory[category], entry)
	}

	for _, r := range results {
		file := sanitize.EscapeMarkdown(r.File)
		for _, msg := range r.Errors {
			record("read-error", fmt.Sprintf("%s: %s", file, sanitize.EscapeMarkdown(msg)))
		}
		for _, msg := range r.PositionValidation.Errors {
			record("position-mismatch", fmt.Sprintf("%s: %s", file, sanitize.EscapeMarkdown(msg)))
		}
		for _, v := range r.CleanExit.Violations {
			record(v.Category, fmt.Sprintf("%s: %s (expected %s, actual %s)",
				file,
				sanitize.EscapeMarkdown(v.Message),
				sanitize.EscapeMarkdown(v.Expected),
				sanitize.EscapeMarkdown(v.Actual)))
		}
	}

	if len(categories) == 0 {
		return
	}

	b.WriteString("## Failures\n")
	for _, category := range categories {
		fmt.Fprintf(b, "\n### %s\n\n", sanitize.EscapeMarkdown(category))
		for _, entry := range byCategory[category] {
			fmt.Fprintf(b, "- %s\n", entry)
		}
	}
}
