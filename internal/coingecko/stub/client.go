package stub

import (
	"context"
	"errors"
	"sync"

	"crypto-tracker/internal/coingecko"
	"crypto-tracker/internal/domain"
)

// ErrNotFound is returned when a coin is not present in the stub store.
var ErrNotFound = errors.New("not found")

// Call records one request made against the stub.
type Call struct {
	Endpoint   string
	ID         string
	VsCurrency string
	Days       int
}

// Client implements coingecko.Client for testing.
type Client struct {
	mu sync.Mutex

	MarketsByCurrency map[string][]domain.CoinSummary
	Details           map[string]*domain.CoinDetail
	Charts            map[string]*domain.ChartSeries

	// Errors forces a failure per endpoint label (coingecko.Endpoint*).
	Errors map[string]error

	// BeforeMarkets, when set, runs before Markets answers. Tests use it to
	// hold a request in flight.
	BeforeMarkets func(ctx context.Context, vsCurrency string) error

	// BeforeDetail does the same for CoinDetail.
	BeforeDetail func(ctx context.Context, id string) error

	calls []Call
}

// NewClient creates a new stub client.
func NewClient() *Client {
	return &Client{
		MarketsByCurrency: make(map[string][]domain.CoinSummary),
		Details:           make(map[string]*domain.CoinDetail),
		Charts:            make(map[string]*domain.ChartSeries),
		Errors:            make(map[string]error),
	}
}

// Markets returns the stubbed list for vsCurrency.
func (c *Client) Markets(ctx context.Context, vsCurrency string) ([]domain.CoinSummary, error) {
	c.record(Call{Endpoint: coingecko.EndpointMarkets, VsCurrency: vsCurrency})

	c.mu.Lock()
	hook := c.BeforeMarkets
	c.mu.Unlock()
	if hook != nil {
		if err := hook(ctx, vsCurrency); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Errors[coingecko.EndpointMarkets]; err != nil {
		return nil, err
	}
	src := c.MarketsByCurrency[vsCurrency]
	out := make([]domain.CoinSummary, len(src))
	copy(out, src)
	return out, nil
}

// CoinDetail returns the stubbed detail for id.
func (c *Client) CoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error) {
	c.record(Call{Endpoint: coingecko.EndpointCoinDetail, ID: id})

	c.mu.Lock()
	hook := c.BeforeDetail
	c.mu.Unlock()
	if hook != nil {
		if err := hook(ctx, id); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Errors[coingecko.EndpointCoinDetail]; err != nil {
		return nil, err
	}
	d, ok := c.Details[id]
	if !ok {
		return nil, ErrNotFound
	}
	detailCopy := *d
	return &detailCopy, nil
}

// MarketChart returns the stubbed series for id.
func (c *Client) MarketChart(_ context.Context, id, vsCurrency string, days int) (*domain.ChartSeries, error) {
	c.record(Call{Endpoint: coingecko.EndpointMarketChart, ID: id, VsCurrency: vsCurrency, Days: days})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Errors[coingecko.EndpointMarketChart]; err != nil {
		return nil, err
	}
	s, ok := c.Charts[id]
	if !ok {
		return nil, ErrNotFound
	}
	seriesCopy := *s
	return &seriesCopy, nil
}

// SetMarkets stores the list returned for vsCurrency.
func (c *Client) SetMarkets(vsCurrency string, coins []domain.CoinSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MarketsByCurrency[vsCurrency] = coins
}

// SetError forces endpoint to fail with err. A nil err clears it.
func (c *Client) SetError(endpoint string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.Errors, endpoint)
		return
	}
	c.Errors[endpoint] = err
}

// Calls returns the recorded requests in order.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallsTo returns the recorded requests for one endpoint.
func (c *Client) CallsTo(endpoint string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Endpoint == endpoint {
			out = append(out, call)
		}
	}
	return out
}

func (c *Client) record(call Call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

var _ coingecko.Client = (*Client)(nil)
