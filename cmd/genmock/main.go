// Command genmock reads a NOAA Storm Events CSV extract and generates mock
// data fixtures: the raw JSON records a collector would publish to Kafka, and
// the expected per-category summary. It uses the actual domain and aggregate
// packages so the fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/StormEvents_sample.csv \
//	  -raw-out data/mock/storm_events_raw.json \
//	  -summary-out data/mock/storm_events_summary.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-impact-summary/internal/aggregate"
	"github.com/couchcryptid/storm-impact-summary/internal/cli"
	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "Storm Events CSV file")
	rawOut := flag.String("raw-out", "", "output path for raw JSON record fixture")
	summaryOut := flag.String("summary-out", "", "output path for expected summary fixture")
	flag.Parse()

	if *csvPath == "" || *rawOut == "" || *summaryOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -raw-out, -summary-out")
	}

	// Set a fixed clock for reproducible timestamps.
	generatedAt := time.Date(2026, time.February, 11, 18, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(generatedAt))
	defer domain.SetClock(nil)

	records, skipped, err := cli.LoadRecords(*csvPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", *csvPath, err)
	}
	for _, skipErr := range skipped {
		log.Printf("skipped: %v", skipErr)
	}
	log.Printf("loaded %d records (%d skipped)", len(records), len(skipped))

	if err := writeJSON(*rawOut, records); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	snap := aggregate.Summarize(records, 1).Snapshot(generatedAt)
	if err := writeJSON(*summaryOut, snap); err != nil {
		return fmt.Errorf("writing summary fixture: %w", err)
	}
	log.Printf("wrote summary fixture: %s", *summaryOut)

	printStats(snap)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(snap aggregate.Snapshot) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total records: %d\n", snap.Records)
	fmt.Printf("Populated categories: %d\n", len(snap.Rows))

	var fatalities, injuries int64
	var propDamage, cropDamage float64
	for _, row := range snap.Rows {
		fatalities += row.Fatalities
		injuries += row.Injuries
		propDamage += row.PropDamage
		cropDamage += row.CropDamage
		fmt.Printf("  %s: fatalities=%d injuries=%d prop=%.6g crop=%.6g\n",
			row.Category, row.Fatalities, row.Injuries, row.PropDamage, row.CropDamage)
	}

	fmt.Printf("Totals: fatalities=%d injuries=%d prop=%.6g crop=%.6g ($B)\n",
		fatalities, injuries, propDamage, cropDamage)
}
