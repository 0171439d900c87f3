package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

// requiredColumns are the Storm Events columns the aggregation needs. The
// source file carries ~37 columns; everything else is ignored.
var requiredColumns = []string{
	"EVTYPE",
	"FATALITIES",
	"INJURIES",
	"PROPDMG",
	"PROPDMGEXP",
	"CROPDMG",
	"CROPDMGEXP",
}

// LoadRecords reads a Storm Events CSV file into raw records. The header row
// drives column lookup, so column order does not matter. Rows too short to
// cover the required columns are skipped and reported as RecordShapeErrors;
// they never abort the load.
func LoadRecords(path string) ([]domain.RawCSVRecord, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(r io.Reader) ([]domain.RawCSVRecord, []error, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // the source file has ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	maxRequired := 0
	for _, col := range requiredColumns {
		i, ok := colIdx[col]
		if !ok {
			return nil, nil, fmt.Errorf("csv header missing required column %q", col)
		}
		if i > maxRequired {
			maxRequired = i
		}
	}

	var records []domain.RawCSVRecord
	var skipped []error

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped = append(skipped, &domain.RecordShapeError{
				Reason: fmt.Sprintf("line %d", line),
				Err:    err,
			})
			continue
		}
		if len(row) <= maxRequired {
			skipped = append(skipped, &domain.RecordShapeError{
				Reason: fmt.Sprintf("line %d: %d columns, required columns span %d", line, len(row), maxRequired+1),
			})
			continue
		}

		records = append(records, domain.RawCSVRecord{
			EventType:  get(row, colIdx, "EVTYPE"),
			Fatalities: get(row, colIdx, "FATALITIES"),
			Injuries:   get(row, colIdx, "INJURIES"),
			PropDmg:    get(row, colIdx, "PROPDMG"),
			PropDmgExp: get(row, colIdx, "PROPDMGEXP"),
			CropDmg:    get(row, colIdx, "CROPDMG"),
			CropDmgExp: get(row, colIdx, "CROPDMGEXP"),
			State:      get(row, colIdx, "STATE"),
			BeginDate:  get(row, colIdx, "BGN_DATE"),
			Remarks:    get(row, colIdx, "REMARKS"),
		})
	}

	return records, skipped, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
