// Package domain models NOAA Storm Events database records and their
// normalization into a fixed impact taxonomy.
//
// # Data Source
//
// Records originate from the NOAA National Climatic Data Center Storm Events
// database (1950 onward), a historical file of severe-weather events with
// casualty counts and damage estimates. The upstream collector service parses
// the compressed CSV and publishes each row as flat JSON to the Kafka source
// topic; this service consumes those rows. The CLI can run the same
// normalization directly over a local copy of the CSV.
//
// # Storm Events Data Conventions
//
// Event type (EVTYPE column):
//
//	Free text entered by hand over five decades: arbitrary case, plurals,
//	abbreviations ("TSTM WND"), and typos ("TORNDAO"). Roughly 1000 distinct
//	spellings collapse into 15 canonical categories via an ordered rule list
//	evaluated first-match-wins; see [Classify]. Rule order is load-bearing:
//	a label containing both "flood" and "wind" tokens classifies by the
//	earlier rule.
//
// Damage encoding (PROPDMG/PROPDMGEXP and CROPDMG/CROPDMGEXP column pairs):
//
//	A base value plus a single-character magnitude code. The code alphabet is
//	inconsistent: alphabetic shorthands h/k/m/b (hundreds, thousands,
//	millions, billions, case-insensitive), bare digits meaning powers of ten,
//	and junk tokens ("-", "?", "+", empty). Junk and unrecognized codes zero
//	the field out rather than failing the record; see [ResolveMagnitudeCode].
//
// Digit code "0":
//
//	Ambiguous in the source data. A literal 10^0 reading would keep the base
//	value; this package applies the zero-out policy instead (multiplier 0),
//	consistent with the other unusable tokens. The numeric difference is
//	negligible at reporting scale either way.
//
// Casualty counts (FATALITIES/INJURIES columns):
//
//	Non-negative counts, occasionally recorded with a decimal point ("1.0").
//	Parsed as floats, truncated toward zero, clamped at 0.
//
// # Reporting Units
//
// Damage totals are reported in billions of dollars: reconstructed amounts
// divide by [DamageUnitDivisor] so downstream presentation never handles raw
// dollar magnitudes.
//
// # ID Generation
//
// Impact IDs are deterministic SHA-256 hashes of the record's key fields,
// prefixed with the category slug. This enables idempotent reprocessing and
// replay safety without distributed coordination. See [BuildImpact].
package domain
