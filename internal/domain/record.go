package domain

import (
	"context"
	"fmt"
	"time"
)

// RawCSVRecord represents the flat JSON structure produced by the collector
// from the NOAA Storm Events database CSV. Every field arrives as a string:
// the source file is untyped and noisy, so numeric interpretation is
// deferred to the transform step where failures can be zeroed out per field.
type RawCSVRecord struct {
	EventType  string `json:"EVTYPE"`     // free text, ~1000 distinct spellings incl. typos ("TORNDAO")
	Fatalities string `json:"FATALITIES"` // non-negative count, sometimes "1.0"-style
	Injuries   string `json:"INJURIES"`
	PropDmg    string `json:"PROPDMG"`    // base damage value in dollars
	PropDmgExp string `json:"PROPDMGEXP"` // magnitude code, see ResolveMagnitudeCode
	CropDmg    string `json:"CROPDMG"`
	CropDmgExp string `json:"CROPDMGEXP"`

	State     string `json:"STATE,omitempty"`
	BeginDate string `json:"BGN_DATE,omitempty"`
	Remarks   string `json:"REMARKS,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// StormImpact is the normalized per-record result: one canonical category
// plus the record's public-health and economic contributions. Damage amounts
// are in billions of dollars (see DamageUnitDivisor).
type StormImpact struct {
	ID           string   `json:"id"`
	Category     Category `json:"category"`
	RawEventType string   `json:"raw_event_type"`
	Fatalities   int64    `json:"fatalities"`
	Injuries     int64    `json:"injuries"`
	PropDamage   float64  `json:"prop_damage"`
	CropDamage   float64  `json:"crop_damage"`
	State        string   `json:"state,omitempty"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// RecordShapeError reports a structurally malformed input record: an
// unparseable payload or a row missing required columns. Affected records
// are skipped and reported; they never abort a run.
type RecordShapeError struct {
	Reason string
	Err    error
}

func (e *RecordShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed record: %s", e.Reason)
}

func (e *RecordShapeError) Unwrap() error { return e.Err }
