// Package cli implements the stormsummary command line interface for offline
// aggregation of Storm Events CSV extracts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stormsummary",
	Short: "Aggregate NOAA Storm Events records into per-category impact summaries",
	Long: `stormsummary normalizes NOAA Storm Events records and aggregates them
into per-category public-health and economic impact totals.

Each record's free-text event type is mapped to one of fifteen canonical
categories, its damage figures are reconstructed from the base value and
magnitude code, and the results are summed by category. Damage totals are
reported in billions of dollars.

The same normalization and aggregation logic also runs as a streaming
service; see the aggregator binary.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stormsummary v0.1.0")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}
