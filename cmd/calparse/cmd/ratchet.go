package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klauskaan/go-cal/internal/corpus"
)

var (
	ratchetConfig   string
	ratchetBaseline string
	ratchetRoot     string
)

var ratchetCmd = &cobra.Command{
	Use:   "ratchet",
	Short: "Compare corpus failures against the stored baseline",
	Long: `Count validation failures across the corpus and compare them to the
maxFailures ceiling stored in the baseline JSON. The count may only
equal or decrease across runs; any increase is a regression.

Exit codes: 0 on pass or when the corpus directory does not exist
(skipped), 1 on regression, 2 on configuration errors (missing or
malformed baseline, empty or unreadable corpus directory).`,
	Run: runRatchet,
}

func init() {
	rootCmd.AddCommand(ratchetCmd)

	ratchetCmd.Flags().StringVarP(&ratchetConfig, "config", "c", "", "corpus config file (YAML)")
	ratchetCmd.Flags().StringVar(&ratchetBaseline, "baseline", "", "baseline JSON path")
	ratchetCmd.Flags().StringVar(&ratchetRoot, "root", "", "corpus root directory")
}

func runRatchet(cmd *cobra.Command, args []string) {
	cfg, err := corpus.LoadConfig(ratchetConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(corpus.ExitConfigError)
	}
	if ratchetBaseline != "" {
		cfg.BaselinePath = ratchetBaseline
	}
	if ratchetRoot != "" {
		cfg.Root = ratchetRoot
	}

	outcome := corpus.RunRatchet(cfg.BaselinePath, cfg.Root, func(root string) (int, error) {
		driver := corpus.NewDriver(root, log)
		results, err := driver.Run()
		if err != nil {
			return 0, err
		}
		failures := 0
		for _, r := range results {
			if r.Failed() {
				failures++
			}
		}
		return failures, nil
	})

	fmt.Println(outcome.Message)
	if outcome.Comparison != nil && outcome.Comparison.RequiresBaselineUpdate {
		fmt.Printf("ratchet the baseline down: set maxFailures to the new count (improvement of %d)\n",
			outcome.Comparison.Improvement)
	}
	os.Exit(outcome.ExitCode)
}
