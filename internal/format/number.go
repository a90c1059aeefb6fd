// Package format renders market figures for display.
package format

import (
	"github.com/shopspring/decimal"
)

// NotAvailable is rendered for missing values.
const NotAvailable = "N/A"

// DefaultDecimals is the precision used for values in [1, 1000) and for mantissas.
const DefaultDecimals = 2

var suffixes = []string{"", "K", "M", "B", "T"}

// Number formats v by magnitude:
//
//	v < 1e-6        8 decimals
//	[1e-6, 0.1)     6 decimals
//	[0.1, 1)        4 decimals
//	[1, 1000)       decimals
//	>= 1000         mantissa with decimals and a K/M/B/T suffix
//
// The suffix is chosen so the mantissa stays below 1000; a mantissa that rounds
// up to 1000 moves to the next suffix. Values beyond the trillions keep the T suffix.
func Number(v float64, decimals int) string {
	switch {
	case v < 0.000001:
		return fixed(v, 8)
	case v < 0.1:
		return fixed(v, 6)
	case v < 1:
		return fixed(v, 4)
	case v < 1000:
		return fixed(v, decimals)
	}

	idx := 0
	mantissa := v
	for mantissa >= 1000 && idx < len(suffixes)-1 {
		mantissa /= 1000
		idx++
	}

	rounded := decimal.NewFromFloat(mantissa).Round(int32(decimals))
	if rounded.GreaterThanOrEqual(decimal.NewFromInt(1000)) && idx < len(suffixes)-1 {
		mantissa /= 1000
		idx++
		rounded = decimal.NewFromFloat(mantissa).Round(int32(decimals))
	}
	return rounded.StringFixed(int32(decimals)) + suffixes[idx]
}

// Money formats v like Number with the currency symbol prefixed.
func Money(symbol string, v float64, decimals int) string {
	return symbol + Number(v, decimals)
}

// OptionalNumber formats v, or returns NotAvailable when v is nil.
func OptionalNumber(v *float64, decimals int) string {
	if v == nil {
		return NotAvailable
	}
	return Number(*v, decimals)
}

// OptionalMoney formats v with symbol, or returns NotAvailable when v is nil.
func OptionalMoney(symbol string, v *float64, decimals int) string {
	if v == nil {
		return NotAvailable
	}
	return Money(symbol, *v, decimals)
}

// LookupMoney formats the per-currency value of m for code, or NotAvailable.
func LookupMoney(symbol string, m map[string]float64, code string) string {
	v, ok := m[code]
	if !ok {
		return NotAvailable
	}
	return Money(symbol, v, DefaultDecimals)
}

func fixed(v float64, places int) string {
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}
