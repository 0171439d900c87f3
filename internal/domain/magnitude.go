package domain

import (
	"fmt"
	"math"
	"strings"
)

// DamageUnitDivisor rescales raw dollar amounts into the reporting unit
// (billions of dollars).
const DamageUnitDivisor = 1e9

// UnrecognizedCodeError reports a magnitude code outside the documented
// alphabet. Policy is zero-out, not abort: callers receive multiplier 0
// alongside the error and may count or log the occurrence.
type UnrecognizedCodeError struct {
	Code string
}

func (e *UnrecognizedCodeError) Error() string {
	return fmt.Sprintf("unrecognized magnitude code %q", e.Code)
}

// ResolveMagnitudeCode maps a PROPDMGEXP/CROPDMGEXP token to its power-of-ten
// multiplier. The code alphabet is case-insensitive and inconsistent in the
// source data:
//
//	"", "-", "?", "+"  -> 0 (unknown or unusable)
//	"0"                -> 0 (zero-out policy; the 10^0 reading is negligible either way)
//	"1".."9"           -> 10^d
//	"h"/"H"            -> 100 (hundreds)
//	"k"/"K"            -> 1,000
//	"m"/"M"            -> 1,000,000
//	"b"/"B"            -> 1,000,000,000
//
// Any other token returns 0 and an UnrecognizedCodeError.
func ResolveMagnitudeCode(code string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "-", "?", "+", "0":
		return 0, nil
	case "1":
		return 1e1, nil
	case "2":
		return 1e2, nil
	case "3":
		return 1e3, nil
	case "4":
		return 1e4, nil
	case "5":
		return 1e5, nil
	case "6":
		return 1e6, nil
	case "7":
		return 1e7, nil
	case "8":
		return 1e8, nil
	case "9":
		return 1e9, nil
	case "h":
		return 1e2, nil
	case "k":
		return 1e3, nil
	case "m":
		return 1e6, nil
	case "b":
		return 1e9, nil
	default:
		return 0, &UnrecognizedCodeError{Code: code}
	}
}

// NormalizeDamage reconstructs a monetary amount from a base value and its
// magnitude code, rescaled by unitDivisor (typically DamageUnitDivisor).
// Negative or NaN base values contribute 0. An UnrecognizedCodeError is
// returned alongside the (zeroed) amount so callers can report it; the
// amount is always usable.
func NormalizeDamage(baseValue float64, code string, unitDivisor float64) (float64, error) {
	if baseValue <= 0 || math.IsNaN(baseValue) {
		// Still surface a bad code on zero-value records.
		_, err := ResolveMagnitudeCode(code)
		return 0, err
	}
	multiplier, err := ResolveMagnitudeCode(code)
	return baseValue * multiplier / unitDivisor, err
}
