package detail

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-tracker/internal/coingecko"
	"crypto-tracker/internal/coingecko/stub"
	"crypto-tracker/internal/domain"
)

var (
	usd = domain.Currency{Code: "usd", Symbol: "$", Name: "US Dollar"}
	eur = domain.Currency{Code: "eur", Symbol: "€", Name: "Euro"}
)

func f64(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func bitcoin() *domain.CoinDetail {
	return &domain.CoinDetail{
		ID:            "bitcoin",
		Name:          "Bitcoin",
		Symbol:        "btc",
		MarketCapRank: intPtr(1),
		Image:         domain.CoinImage{Large: "https://img/btc-large.png"},
		Description:   `<a href="https://bitcoin.org">Bitcoin</a> is the first cryptocurrency. It was created in 2009.`,
		Links: domain.CoinLinks{
			Homepage:          []string{"https://www.bitcoin.org", "http://bitcoin.com/"},
			TwitterScreenName: "bitcoin",
			SubredditURL:      "https://www.reddit.com/r/Bitcoin/",
		},
		Categories:  []string{"Cryptocurrency", "Layer 1 (L1)"},
		GenesisDate: "2009-01-03",
		MarketData: domain.MarketData{
			CurrentPrice:             map[string]float64{"usd": 61000, "eur": 56000},
			MarketCap:                map[string]float64{"usd": 1.2e12},
			TotalVolume:              map[string]float64{"usd": 3.45e10},
			ATH:                      map[string]float64{"usd": 73738},
			ATHDate:                  map[string]string{"usd": "2024-03-14T07:10:36.635Z"},
			ATL:                      map[string]float64{"usd": 67.81},
			ATLDate:                  map[string]string{"usd": "2013-07-06T00:00:00.000Z"},
			PriceChangePercentage24h: f64(-1.234),
			CirculatingSupply:        f64(19_700_000),
			Performance: map[string]map[string]float64{
				"1h":  {"usd": 0.5},
				"24h": {"usd": -1.234},
				"7d":  {"usd": 3.1},
			},
		},
	}
}

func newStub() *stub.Client {
	client := stub.NewClient()
	client.Details["bitcoin"] = bitcoin()
	client.Charts["bitcoin"] = &domain.ChartSeries{
		Prices: []domain.ChartPoint{{TimestampMs: 1, Value: 60000}, {TimestampMs: 2, Value: 61000}},
	}
	return client
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 30},
		{"1", 1},
		{"7", 7},
		{" 90 ", 90},
		{"365", 365},
		{"0", 30},
		{"366", 30},
		{"-7", 30},
		{"max", 30},
		{"7.5", 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseWindow(tt.raw), "raw %q", tt.raw)
	}
}

func TestLoad_MissingID(t *testing.T) {
	client := newStub()
	v := NewView(client, nil)

	page, err := v.Load(context.Background(), Request{ID: "  ", Currency: usd, Days: 30})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, page.Status)
	assert.Equal(t, MsgMissingID, page.Error)
	assert.Empty(t, client.Calls())
}

func TestLoad_FetchesDetailThenChart(t *testing.T) {
	client := newStub()
	v := NewView(client, nil)

	page, err := v.Load(context.Background(), Request{ID: "bitcoin", Currency: eur, Days: 7})
	require.NoError(t, err)
	require.Empty(t, page.Error)
	assert.Equal(t, http.StatusOK, page.Status)

	calls := client.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, coingecko.EndpointCoinDetail, calls[0].Endpoint)
	assert.Equal(t, stub.Call{Endpoint: coingecko.EndpointMarketChart, ID: "bitcoin", VsCurrency: "eur", Days: 7}, calls[1])

	assert.Equal(t, "€ Price Chart (7D)", page.Chart.Title)
	assert.Equal(t, "€56.00K", page.Header.Price)
}

func TestLoad_DefaultsWindowAndCurrency(t *testing.T) {
	client := newStub()
	v := NewView(client, nil)

	page, err := v.Load(context.Background(), Request{ID: "bitcoin", Days: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWindowDays, page.Request.Days)
	assert.Equal(t, "usd", client.CallsTo(coingecko.EndpointMarketChart)[0].VsCurrency)
	assert.Equal(t, "$ Price Chart (30D)", page.Chart.Title)
}

func TestLoad_DetailFailureSkipsChart(t *testing.T) {
	client := newStub()
	client.SetError(coingecko.EndpointCoinDetail, &coingecko.APIError{
		Endpoint: coingecko.EndpointCoinDetail, StatusCode: http.StatusNotFound,
	})
	v := NewView(client, nil)

	page, err := v.Load(context.Background(), Request{ID: "nope", Currency: usd, Days: 30})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, page.Status)
	assert.Equal(t, "Error fetching coin details: Not Found", page.Error)
	assert.Empty(t, client.CallsTo(coingecko.EndpointMarketChart))
}

func TestLoad_ChartFailure(t *testing.T) {
	client := newStub()
	client.SetError(coingecko.EndpointMarketChart, &coingecko.APIError{
		Endpoint: coingecko.EndpointMarketChart, StatusCode: http.StatusTooManyRequests,
	})
	v := NewView(client, nil)

	page, err := v.Load(context.Background(), Request{ID: "bitcoin", Currency: usd, Days: 30})
	require.NoError(t, err)
	assert.Equal(t, "Error fetching chart data: Too Many Requests", page.Error)
}

func TestLoad_TransportErrorSurfacesMessage(t *testing.T) {
	client := newStub()
	client.SetError(coingecko.EndpointCoinDetail, errors.New("dial tcp: connection refused"))
	v := NewView(client, nil)

	page, err := v.Load(context.Background(), Request{ID: "bitcoin", Currency: usd, Days: 30})
	require.NoError(t, err)
	assert.Equal(t, "dial tcp: connection refused", page.Error)
}

func TestLoad_ConcurrentLoadsAreIndependent(t *testing.T) {
	client := newStub()
	client.Details["ethereum"] = &domain.CoinDetail{ID: "ethereum", Name: "Ethereum", Symbol: "eth"}
	client.Charts["ethereum"] = &domain.ChartSeries{}

	started := make(chan struct{})
	release := make(chan struct{})
	client.BeforeDetail = func(_ context.Context, id string) error {
		if id == "bitcoin" {
			close(started)
			<-release
		}
		return nil
	}

	v := NewView(client, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	var slowPage *Page
	var slowErr error
	go func() {
		defer wg.Done()
		slowPage, slowErr = v.Load(ctx, Request{ID: "bitcoin", Currency: usd, Days: 30})
	}()

	<-started
	page, err := v.Load(ctx, Request{ID: "ethereum", Currency: usd, Days: 30})
	require.NoError(t, err)
	assert.Equal(t, "Ethereum", page.Header.Name)

	close(release)
	wg.Wait()

	require.NoError(t, slowErr, "an earlier tab keeps its own page")
	require.NotNil(t, slowPage)
	assert.Equal(t, "Bitcoin", slowPage.Header.Name)
	assert.Equal(t, http.StatusOK, slowPage.Status)
	assert.Len(t, client.CallsTo(coingecko.EndpointMarketChart), 2)
}

func TestLoad_CancelledRequestIsAbandoned(t *testing.T) {
	client := newStub()
	ctx, cancel := context.WithCancel(context.Background())
	client.BeforeDetail = func(context.Context, string) error {
		cancel()
		return nil
	}

	v := NewView(client, nil)
	page, err := v.Load(ctx, Request{ID: "bitcoin", Currency: usd, Days: 30})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, page)
	assert.Empty(t, client.CallsTo(coingecko.EndpointMarketChart), "chart is not fetched after cancellation")
}
