package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-impact-summary/internal/aggregate"
	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

var (
	inputFile string
	workers   int
	format    string
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate a Storm Events CSV file into per-category totals",
	Long: `Aggregate reads a Storm Events CSV extract, normalizes each record,
and prints the per-category impact summary.

Example:
  stormsummary aggregate -f StormEvents.csv
  stormsummary aggregate -f StormEvents.csv --format long
  stormsummary aggregate -f StormEvents.csv --format json --workers 8`,
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Storm Events CSV file to aggregate")
	aggregateCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel aggregation workers")
	aggregateCmd.Flags().StringVar(&format, "format", "table", "output format: table, long, or json")
	_ = aggregateCmd.MarkFlagRequired("file")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	records, skipped, err := LoadRecords(inputFile)
	if err != nil {
		return err
	}

	for _, skipErr := range skipped {
		fmt.Fprintf(os.Stderr, "skipped: %v\n", skipErr)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "loaded %d records (%d skipped)\n", len(records), len(skipped))
	}

	acc := aggregate.Summarize(records, workers)
	snap := acc.Snapshot(domain.Clock().Now())

	switch format {
	case "table":
		return writeTable(cmd.OutOrStdout(), snap)
	case "long":
		return writeLong(cmd.OutOrStdout(), snap)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		return fmt.Errorf("unknown format %q (want table, long, or json)", format)
	}
}

// writeTable prints the wide summary, one row per populated category.
func writeTable(out io.Writer, snap aggregate.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tFATALITIES\tINJURIES\tPROP DMG ($B)\tCROP DMG ($B)")
	for _, row := range snap.Rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.6g\t%.6g\n",
			row.Category, row.Fatalities, row.Injuries, row.PropDamage, row.CropDamage)
	}
	fmt.Fprintf(w, "\t\t\t\t\n")
	fmt.Fprintf(w, "records: %d\t\t\t\t\n", snap.Records)
	return w.Flush()
}

// writeLong prints the melted form: one row per (category, metric) pair.
func writeLong(out io.Writer, snap aggregate.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tMETRIC\tVALUE")
	for _, row := range aggregate.MeltHealth(snap.Rows) {
		fmt.Fprintf(w, "%s\t%s\t%d\n", row.Category, row.Metric, row.Count)
	}
	for _, row := range aggregate.MeltEconomic(snap.Rows) {
		fmt.Fprintf(w, "%s\t%s\t%.6g\n", row.Category, row.Metric, row.Amount)
	}
	return w.Flush()
}
