// Command qpp-validator validates decoded quality report submissions
// against a measures data file from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goqpp/validator/pkg/logger"
)

var (
	measuresFile string
	exclusions   []string
	maxErrors    int
	workerCount  int
	noProgress   bool
	dumpTree     bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "qpp-validator",
	Short: "Validate quality report submissions against measures data",
	Long: `qpp-validator checks decoded quality report submission trees against
externally supplied measure configuration data. It reports every
structural finding with the tree path of the offending element; an empty
report means the submission is structurally valid.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(logger.LevelDebug)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&measuresFile, "measures-data", "m", "measures-data.json",
		"measures data file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	validateCmd.Flags().StringSliceVar(&exclusions, "exclude-population", nil,
		"population criteria keys exempt from aggregate count checks (e.g. DENEX)")
	validateCmd.Flags().IntVar(&maxErrors, "max-errors", 0, "stop after this many findings (0 = unlimited)")
	validateCmd.Flags().IntVar(&workerCount, "workers", 0, "workers for batch validation (0 = NumCPU)")
	validateCmd.Flags().BoolVar(&noProgress, "no-progress", false, "don't show a progress bar in batch mode")
	validateCmd.Flags().BoolVar(&dumpTree, "dump-tree", false, "dump the decoded tree before validating")

	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
