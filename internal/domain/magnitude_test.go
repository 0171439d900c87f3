package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMagnitudeCode(t *testing.T) {
	tests := []struct {
		code     string
		expected float64
	}{
		{"h", 100},
		{"H", 100},
		{"k", 1000},
		{"K", 1000},
		{"m", 1e6},
		{"M", 1e6},
		{"b", 1e9},
		{"B", 1e9},
		{"", 0},
		{"-", 0},
		{"?", 0},
		{"+", 0},
		{"0", 0},
		{"1", 10},
		{"2", 100},
		{"3", 1000},
		{"4", 1e4},
		{"5", 1e5},
		{"6", 1e6},
		{"7", 1e7},
		{"8", 1e8},
		{"9", 1e9},
		{" K ", 1000}, // tokens arrive with stray whitespace
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			got, err := ResolveMagnitudeCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveMagnitudeCode_Unrecognized(t *testing.T) {
	for _, code := range []string{"x", "Z", "10", "kk", "%"} {
		t.Run("code "+code, func(t *testing.T) {
			got, err := ResolveMagnitudeCode(code)
			assert.Equal(t, 0.0, got, "unrecognized codes zero out")

			var codeErr *UnrecognizedCodeError
			require.ErrorAs(t, err, &codeErr)
			assert.Contains(t, codeErr.Error(), "unrecognized magnitude code")
		})
	}
}

func TestNormalizeDamage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		code     string
		expected float64
	}{
		{"thousands", 25, "K", 2.5e-5},
		{"millions", 5, "M", 5e-3},
		{"billions", 2, "B", 2},
		{"hundreds", 10, "h", 1e-6},
		{"digit code", 1, "6", 1e-3},
		{"empty code zeroes", 100, "", 0},
		{"junk code zeroes", 100, "?", 0},
		{"digit zero zeroes", 100, "0", 0},
		{"zero value", 0, "B", 0},
		{"negative value", -5, "K", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDamage(tt.value, tt.code, DamageUnitDivisor)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestNormalizeDamage_UnrecognizedCode(t *testing.T) {
	got, err := NormalizeDamage(50, "x", DamageUnitDivisor)
	assert.Equal(t, 0.0, got)
	var codeErr *UnrecognizedCodeError
	assert.True(t, errors.As(err, &codeErr))

	// A bad code is surfaced even when the value contributes nothing.
	got, err = NormalizeDamage(0, "x", DamageUnitDivisor)
	assert.Equal(t, 0.0, got)
	assert.True(t, errors.As(err, &codeErr))
}

func TestNormalizeDamage_CustomDivisor(t *testing.T) {
	got, err := NormalizeDamage(25, "K", 1e6) // report in millions instead
	require.NoError(t, err)
	assert.InDelta(t, 0.025, got, 1e-12)
}
