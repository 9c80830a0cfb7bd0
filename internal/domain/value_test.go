package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
		ok       bool
	}{
		{"decimal string", "38.9072", 38.9072, true},
		{"negative string", "-118.2426", -118.2426, true},
		{"whitespace", "  5 ", 5, true},
		{"exponent", "1e3", 1000, true},
		{"float64", 2.5, 2.5, true},
		{"int", 7000, 7000, true},
		{"uint8", uint8(3), 3, true},
		{"empty", "", 0, false},
		{"text", "N/A", 0, false},
		{"NaN", "NaN", 0, false},
		{"Inf", "-Inf", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFloat(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected int64
		ok       bool
	}{
		{"zero", "0", 0, true},
		{"positive", "12", 12, true},
		{"float text", "3.0", 3, true},
		{"fraction truncates", "0.4", 0, true},
		{"negative fraction", "-1.7", -1, true},
		{"native int", 4, 4, true},
		{"native float", 0.0, 0, true},
		{"largest below 2^63", "9.223372036854775e18", 9223372036854774784, true},
		{"2^63 overflows", "9223372036854775808.0", 0, false},
		{"-2^63", "-9223372036854775808.0", math.MinInt64, true},
		{"empty", "", 0, false},
		{"text", "yes", 0, false},
		{"NaN", "NaN", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "600.0", numericValue("600.0").Display())
	assert.Equal(t, "1e3", numericValue("1e3").Display())
	assert.Equal(t, "1e400", numericValue("1e400").Display())
	assert.Equal(t, "0.5", numericValue(0.5).Display())
	assert.Equal(t, "n/a", numericValue("n/a").Display())
	assert.Equal(t, "Region 7", textValue("Region 7").Display())
	assert.Equal(t, "42", textValue(42).Display())
}
