package coingecko

import (
	"context"
	"fmt"
	"net/http"

	"crypto-tracker/internal/domain"
)

// Client defines the read-only CoinGecko endpoints the dashboard consumes.
type Client interface {
	// Markets returns the default page of coin summaries denominated in vsCurrency.
	Markets(ctx context.Context, vsCurrency string) ([]domain.CoinSummary, error)

	// CoinDetail returns the full metadata record of a coin.
	CoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error)

	// MarketChart returns daily historical series for the last days in vsCurrency.
	MarketChart(ctx context.Context, id, vsCurrency string, days int) (*domain.ChartSeries, error)
}

// Endpoint labels used for metrics and errors.
const (
	EndpointMarkets     = "markets"
	EndpointCoinDetail  = "coin_detail"
	EndpointMarketChart = "market_chart"
)

// APIError is returned for non-2xx upstream responses.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// StatusText returns the HTTP reason phrase of the response status.
func (e *APIError) StatusText() string {
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}
