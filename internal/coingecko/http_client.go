package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/observability"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.coingecko.com/api/v3"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 0
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0

	// APIKeyHeader carries the demo-plan API key.
	APIKeyHeader = "x-cg-demo-api-key"
)

// HTTPClient implements Client over the CoinGecko REST API.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
}

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithAPIKey sets the API key sent in the x-cg-demo-api-key header.
func WithAPIKey(key string) ClientOption {
	return func(c *HTTPClient) {
		c.apiKey = key
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts. Zero disables retries.
func WithMaxRetries(n int) ClientOption {
	return func(c *HTTPClient) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.retryDelay = d
	}
}

// WithMaxDelay sets maximum retry delay.
func WithMaxDelay(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.maxDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// NewHTTPClient creates a new CoinGecko REST client rooted at baseURL.
// An empty baseURL selects the public API.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET request and decodes the JSON body into result.
// Transport failures, 429 and 5xx responses are retried with exponential backoff
// when retries are enabled; other non-2xx responses fail immediately.
func (c *HTTPClient) get(ctx context.Context, endpoint, path string, query url.Values, result interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			// Exponential backoff
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set(APIKeyHeader, c.apiKey)
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			observability.RecordUpstreamRequest(endpoint, "error", time.Since(start).Seconds())
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		observability.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = apiErr
				continue
			}
			return apiErr
		}

		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal %s response: %w", endpoint, err)
		}
		return nil
	}

	if c.maxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// Markets retrieves the default page of /coins/markets for vsCurrency.
func (c *HTTPClient) Markets(ctx context.Context, vsCurrency string) ([]domain.CoinSummary, error) {
	query := url.Values{}
	query.Set("vs_currency", vsCurrency)

	var raw []marketsItem
	if err := c.get(ctx, EndpointMarkets, "/coins/markets", query, &raw); err != nil {
		return nil, err
	}

	coins := make([]domain.CoinSummary, 0, len(raw))
	for _, item := range raw {
		coins = append(coins, item.toDomain())
	}
	return coins, nil
}

// CoinDetail retrieves /coins/{id}.
func (c *HTTPClient) CoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error) {
	var raw coinDetailResult
	if err := c.get(ctx, EndpointCoinDetail, "/coins/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain(), nil
}

// MarketChart retrieves /coins/{id}/market_chart with daily granularity.
func (c *HTTPClient) MarketChart(ctx context.Context, id, vsCurrency string, days int) (*domain.ChartSeries, error) {
	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("days", strconv.Itoa(days))
	query.Set("interval", "daily")

	var raw marketChartResult
	if err := c.get(ctx, EndpointMarketChart, "/coins/"+url.PathEscape(id)+"/market_chart", query, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain(), nil
}

var _ Client = (*HTTPClient)(nil)
