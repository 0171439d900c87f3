// Command stormsummary aggregates NOAA Storm Events CSV extracts into
// per-category impact summaries from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/storm-impact-summary/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
