package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseRawRecord deserializes a RawEvent's value into a RawCSVRecord.
// It expects the flat CSV-style JSON produced by the collector service.
// Unparseable payloads return a RecordShapeError (skip-and-report).
func ParseRawRecord(raw RawEvent) (RawCSVRecord, error) {
	var rec RawCSVRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return RawCSVRecord{}, &RecordShapeError{Reason: "unparseable payload", Err: err}
	}
	return rec, nil
}

// ClassifierFunc maps a raw EVTYPE label to its canonical category.
// BuildImpact accepts one so callers can wrap Classify with memoization.
type ClassifierFunc func(string) Category

// BuildImpact classifies a parsed record and reconstructs its monetary
// damages. Pass a nil classify to use Classify directly.
//
// The returned warnings list the record's non-fatal normalization problems
// (magnitude codes outside the documented alphabet, zeroed out per policy);
// the impact itself is always fully usable. ProcessedAt is stamped from the
// package clock.
func BuildImpact(rec RawCSVRecord, classify ClassifierFunc) (StormImpact, []error) {
	if classify == nil {
		classify = Classify
	}

	category := classify(rec.EventType)

	var warnings []error
	propDamage, err := NormalizeDamage(parseFloatOrZero(rec.PropDmg), rec.PropDmgExp, DamageUnitDivisor)
	if err != nil {
		warnings = append(warnings, fmt.Errorf("property damage: %w", err))
	}
	cropDamage, err := NormalizeDamage(parseFloatOrZero(rec.CropDmg), rec.CropDmgExp, DamageUnitDivisor)
	if err != nil {
		warnings = append(warnings, fmt.Errorf("crop damage: %w", err))
	}

	return StormImpact{
		ID:           generateID(rec, category),
		Category:     category,
		RawEventType: rec.EventType,
		Fatalities:   parseCountOrZero(rec.Fatalities),
		Injuries:     parseCountOrZero(rec.Injuries),
		PropDamage:   propDamage,
		CropDamage:   cropDamage,
		State:        strings.TrimSpace(rec.State),
		ProcessedAt:  clock.Now(),
	}, warnings
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCountOrZero parses a count field. The source file contains both "2"
// and "2.0" style values; floats truncate toward zero and negatives clamp
// to 0 (counts are non-negative by definition).
func parseCountOrZero(s string) int64 {
	v := parseFloatOrZero(s)
	if v <= 0 {
		return 0
	}
	return int64(v)
}

// generateID produces a deterministic ID from the record's key fields.
// Deterministic IDs keep reprocessing idempotent: replaying the same raw
// record yields the same ID.
func generateID(rec RawCSVRecord, category Category) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%s",
		rec.EventType, rec.State, rec.BeginDate,
		rec.Fatalities, rec.Injuries,
		rec.PropDmg, rec.PropDmgExp, rec.CropDmg, rec.CropDmgExp)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	return category.Slug() + "-" + short
}
