// Package detail loads one coin and assembles the detail page model.
package detail

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"crypto-tracker/internal/coingecko"
	"crypto-tracker/internal/domain"
)

// Page texts.
const (
	MsgMissingID = "Error: No cryptocurrency ID provided."
	msgDetailErr = "Error fetching coin details: "
	msgChartErr  = "Error fetching chart data: "
)

// Fetcher is the part of the CoinGecko client the detail view uses.
type Fetcher interface {
	CoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error)
	MarketChart(ctx context.Context, id, vsCurrency string, days int) (*domain.ChartSeries, error)
}

// Request identifies what the page shows. A change to any field means a refetch.
type Request struct {
	ID       string
	Currency domain.Currency
	Days     int
}

// ParseWindow reads the days query value. Anything that is not an integer in
// [domain.MinWindowDays, domain.MaxWindowDays] selects domain.DefaultWindowDays.
func ParseWindow(raw string) int {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !domain.ValidWindow(days) {
		return domain.DefaultWindowDays
	}
	return days
}

// View loads detail pages. Loads share no state, so concurrent loads for
// different tabs of one session are independent.
type View struct {
	client Fetcher
	logger *log.Logger
}

// NewView creates a detail view over client.
func NewView(client Fetcher, logger *log.Logger) *View {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &View{client: client, logger: logger}
}

// Load fetches the coin detail, then the chart, and builds the page. Failures
// are reported on the page itself; the error return is the context error when
// the caller gave up.
func (v *View) Load(ctx context.Context, req Request) (*Page, error) {
	if req.Currency.Code == "" {
		req.Currency = domain.DefaultCurrency
	}
	if !domain.ValidWindow(req.Days) {
		req.Days = domain.DefaultWindowDays
	}

	if strings.TrimSpace(req.ID) == "" {
		return errorPage(req, http.StatusBadRequest, MsgMissingID), nil
	}

	coin, err := v.client.CoinDetail(ctx, req.ID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		v.logger.Printf("Failed to fetch coin %s: %v", req.ID, err)
		return failurePage(req, msgDetailErr, err), nil
	}

	series, err := v.client.MarketChart(ctx, req.ID, req.Currency.Code, req.Days)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		v.logger.Printf("Failed to fetch %s chart (%s, %dd): %v", req.ID, req.Currency.Code, req.Days, err)
		return failurePage(req, msgChartErr, err), nil
	}

	return Build(req, coin, series), nil
}

func errorPage(req Request, status int, msg string) *Page {
	return &Page{Request: req, Status: status, Error: msg}
}

// failurePage renders upstream status failures with the reason phrase and
// transport failures with their own message.
func failurePage(req Request, prefix string, err error) *Page {
	var apiErr *coingecko.APIError
	if errors.As(err, &apiErr) {
		return errorPage(req, http.StatusBadGateway, prefix+apiErr.StatusText())
	}
	return errorPage(req, http.StatusBadGateway, err.Error())
}
