package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klauskaan/go-cal/internal/corpus"
)

var versionCI bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print calparse version information, and warn when the recorded
baseline was produced by a different toolchain version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("calparse version %s\n", Version)
		fmt.Printf("Commit: %s\n", GitCommit)
		fmt.Printf("Built:  %s\n", BuildDate)

		if warning := corpus.CheckBaselineVersion(".", versionCI); warning != nil {
			out := os.Stderr
			if warning.Stream == "stdout" {
				out = os.Stdout
			}
			fmt.Fprintln(out, warning.Output)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionCI, "ci-annotations", false, "emit CI ::warning:: annotations on stdout")
}
