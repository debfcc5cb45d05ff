package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klauskaan/go-cal/internal/corpus"
)

var (
	healthConfig string
	healthRoot   string
	healthOut    string
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run the lexer across the corpus and write a health report",
	Long: `Walk the corpus directory (default test/REAL), tokenize every .txt
file, validate token positions and the clean-exit invariant, and render
a markdown health report with performance percentiles, outliers, and
failures grouped by category.

Report objects (REP*.txt, except REPORT*.txt) are checked with RDLDATA
underflow tolerated, matching the asymmetric markers observed in the corpus.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().StringVarP(&healthConfig, "config", "c", "", "corpus config file (YAML)")
	healthCmd.Flags().StringVar(&healthRoot, "root", "", "corpus root directory")
	healthCmd.Flags().StringVarP(&healthOut, "output", "o", "", "report output path")
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := corpus.LoadConfig(healthConfig)
	if err != nil {
		return err
	}
	if healthRoot != "" {
		cfg.Root = healthRoot
	}
	if healthOut != "" {
		cfg.ReportPath = healthOut
	}

	driver := corpus.NewDriver(cfg.Root, log)
	results, err := driver.Run()
	if err != nil {
		return err
	}

	report := corpus.HealthReport(results, nil)
	if err := os.WriteFile(cfg.ReportPath, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", cfg.ReportPath, err)
	}

	failures := 0
	for _, r := range results {
		if r.Failed() {
			failures++
		}
	}
	log.WithFields(map[string]interface{}{
		"files":    len(results),
		"failures": failures,
		"report":   cfg.ReportPath,
	}).Info("health report written")
	fmt.Printf("%d files validated, %d failures, report written to %s\n",
		len(results), failures, cfg.ReportPath)
	return nil
}
