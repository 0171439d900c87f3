// Package aggregate groups normalized storm impacts into per-category
// summary totals: the table consumed by presentation collaborators.
package aggregate

import (
	"sort"
	"time"

	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

// SummaryRow is one aggregated row: the impact totals for a single canonical
// category. Damage totals are in billions of dollars.
type SummaryRow struct {
	Category   domain.Category `json:"category"`
	Fatalities int64           `json:"fatalities"`
	Injuries   int64           `json:"injuries"`
	PropDamage float64         `json:"prop_damage"`
	CropDamage float64         `json:"crop_damage"`
}

// HealthRow is the long-form shape for public-health metrics, one row per
// (category, metric) pair. Simplifies grouped-bar rendering downstream.
type HealthRow struct {
	Category domain.Category `json:"category"`
	Metric   string          `json:"metric"` // MetricFatalities or MetricInjuries
	Count    int64           `json:"count"`
}

// EconomicRow is the long-form shape for economic metrics.
type EconomicRow struct {
	Category domain.Category `json:"category"`
	Metric   string          `json:"metric"` // MetricPropDamage or MetricCropDamage
	Amount   float64         `json:"amount"`
}

// Long-form metric names.
const (
	MetricFatalities = "Fatalities"
	MetricInjuries   = "Injuries"
	MetricPropDamage = "Property Damage"
	MetricCropDamage = "Crop Damage"
)

// Snapshot is an immutable point-in-time view of the aggregate, the unit
// published to the sink topic and served over HTTP.
type Snapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Records     int64        `json:"records"`
	Rows        []SummaryRow `json:"rows"`
}

// Accumulator groups impact totals by canonical category. Categories with no
// contributing records never appear in the output (grouped-sum semantics, no
// zero-filling). Not safe for concurrent use; parallel callers give each
// worker its own shard and Merge at the end.
type Accumulator struct {
	totals  map[domain.Category]*SummaryRow
	records int64
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{totals: make(map[domain.Category]*SummaryRow)}
}

// Add folds one impact into the running totals.
func (a *Accumulator) Add(impact domain.StormImpact) {
	row, ok := a.totals[impact.Category]
	if !ok {
		row = &SummaryRow{Category: impact.Category}
		a.totals[impact.Category] = row
	}
	row.Fatalities += impact.Fatalities
	row.Injuries += impact.Injuries
	row.PropDamage += impact.PropDamage
	row.CropDamage += impact.CropDamage
	a.records++
}

// Merge folds another accumulator's totals into this one. Summation is
// commutative, so merge order never affects the result.
func (a *Accumulator) Merge(other *Accumulator) {
	for category, row := range other.totals {
		dst, ok := a.totals[category]
		if !ok {
			dst = &SummaryRow{Category: category}
			a.totals[category] = dst
		}
		dst.Fatalities += row.Fatalities
		dst.Injuries += row.Injuries
		dst.PropDamage += row.PropDamage
		dst.CropDamage += row.CropDamage
	}
	a.records += other.records
}

// Records returns the number of impacts folded in so far.
func (a *Accumulator) Records() int64 { return a.records }

// Rows returns the summary table sorted by category name, one row per
// category that received at least one record.
func (a *Accumulator) Rows() []SummaryRow {
	rows := make([]SummaryRow, 0, len(a.totals))
	for _, row := range a.totals {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// Snapshot captures the current state as an immutable value.
func (a *Accumulator) Snapshot(generatedAt time.Time) Snapshot {
	return Snapshot{
		GeneratedAt: generatedAt,
		Records:     a.records,
		Rows:        a.Rows(),
	}
}

// MeltHealth reshapes wide summary rows into long-form health metric rows,
// two per category (fatalities, injuries), preserving row order.
func MeltHealth(rows []SummaryRow) []HealthRow {
	out := make([]HealthRow, 0, 2*len(rows))
	for _, row := range rows {
		out = append(out,
			HealthRow{Category: row.Category, Metric: MetricFatalities, Count: row.Fatalities},
			HealthRow{Category: row.Category, Metric: MetricInjuries, Count: row.Injuries},
		)
	}
	return out
}

// MeltEconomic reshapes wide summary rows into long-form economic metric
// rows, two per category (property, crop), preserving row order.
func MeltEconomic(rows []SummaryRow) []EconomicRow {
	out := make([]EconomicRow, 0, 2*len(rows))
	for _, row := range rows {
		out = append(out,
			EconomicRow{Category: row.Category, Metric: MetricPropDamage, Amount: row.PropDamage},
			EconomicRow{Category: row.Category, Metric: MetricCropDamage, Amount: row.CropDamage},
		)
	}
	return out
}
