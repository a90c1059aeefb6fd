package format

import (
	"math"
	"strings"
	"time"
)

// Percent renders a percentage change with two decimals, "0.00" when missing.
func Percent(v *float64) string {
	if v == nil {
		return "0.00"
	}
	return fixed(*v, 2)
}

// AbsPercent renders the magnitude of a percentage change with two decimals.
func AbsPercent(v *float64) string {
	if v == nil {
		return "0.00"
	}
	return fixed(math.Abs(*v), 2)
}

// Positive reports whether a percentage change is strictly above zero.
func Positive(v *float64) bool {
	return v != nil && *v > 0
}

// DateLayout renders timestamps as "Mar 14, 2024, 07:10 AM".
const DateLayout = "Jan 2, 2006, 03:04 PM"

// Date parses an RFC 3339 timestamp and renders it in UTC with DateLayout.
// Empty or unparsable input renders NotAvailable.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return NotAvailable
	}
	return t.UTC().Format(DateLayout)
}
