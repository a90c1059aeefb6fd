package domain

import "strconv"

// Lookback window bounds and default, in days.
const (
	MinWindowDays     = 1
	MaxWindowDays     = 365
	DefaultWindowDays = 30
)

// WindowOptions are the lookback windows offered in the chart selector.
var WindowOptions = []int{1, 7, 14, 30, 90, 180, 365}

// ChartPoint is one timestamped value of a historical series.
type ChartPoint struct {
	TimestampMs int64   // Unix timestamp in milliseconds
	Value       float64 // price, market cap or volume
}

// ChartSeries holds the parallel historical arrays returned by /market_chart.
type ChartSeries struct {
	Prices       []ChartPoint
	MarketCaps   []ChartPoint
	TotalVolumes []ChartPoint
}

// WindowLabel renders a lookback window for chart headers: "24H" for one day, "<n>D" otherwise.
func WindowLabel(days int) string {
	if days == 1 {
		return "24H"
	}
	return strconv.Itoa(days) + "D"
}

// WindowOptionLabel renders a selector option; a full year reads "1Y".
func WindowOptionLabel(days int) string {
	if days == 365 {
		return "1Y"
	}
	return WindowLabel(days)
}

// ValidWindow reports whether days is an accepted lookback window.
func ValidWindow(days int) bool {
	return days >= MinWindowDays && days <= MaxWindowDays
}
