package parser

import (
	"math"
	"strconv"
)

// ParseValue attempts to parse a field as a number.
// Returns int64 for integers, float64 for finite decimals, or the original
// string. NaN and infinities stay text.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}

// IsNumeric reports whether s parses as a number.
func IsNumeric(s string) bool {
	_, ok := ParseValue(s).(string)
	return !ok
}
