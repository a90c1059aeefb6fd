// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// Data provider metrics
	MarketRefreshes    *prometheus.CounterVec
	StaleResponses     *prometheus.CounterVec
	CoinsListed        prometheus.Gauge
	SubscriberCallouts prometheus.Counter

	// Web metrics
	PageRenders     *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	LoginAttempts   *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
	SessionsEvicted prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "crypto_tracker"
	}

	return &Metrics{
		// Upstream metrics
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coingecko",
			Name:      "requests_total",
			Help:      "Total number of CoinGecko requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "coingecko",
			Name:      "request_latency_seconds",
			Help:      "CoinGecko request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		// Data provider metrics
		MarketRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "refreshes_total",
			Help:      "Total number of coin list refreshes by currency and outcome",
		}, []string{"currency", "outcome"}),
		StaleResponses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer request superseded them",
		}, []string{"view"}),
		CoinsListed: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "coins_listed",
			Help:      "Number of coins in the most recently applied list",
		}),
		SubscriberCallouts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "subscriber_notifications_total",
			Help:      "Total number of snapshot notifications delivered to subscribers",
		}),

		// Web metrics
		PageRenders: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "web",
			Name:      "page_renders_total",
			Help:      "Total number of rendered pages by route and status",
		}, []string{"route", "status"}),
		RenderDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "web",
			Name:      "render_duration_seconds",
			Help:      "Time spent building and rendering a page, upstream calls included",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"route"}),
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "web",
			Name:      "login_attempts_total",
			Help:      "Total number of mock login submissions by outcome",
		}, []string{"outcome"}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "web",
			Name:      "active_sessions",
			Help:      "Number of live browser sessions",
		}),
		SessionsEvicted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "web",
			Name:      "sessions_evicted_total",
			Help:      "Total number of sessions evicted after idling",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordUpstreamRequest records one CoinGecko round trip.
func RecordUpstreamRequest(endpoint, status string, seconds float64) {
	DefaultMetrics.UpstreamRequests.WithLabelValues(endpoint, status).Inc()
	DefaultMetrics.UpstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordMarketRefresh records a coin list refresh and, on success, the list size.
func RecordMarketRefresh(currency string, coins int, err error) {
	if err != nil {
		DefaultMetrics.MarketRefreshes.WithLabelValues(currency, "error").Inc()
		return
	}
	DefaultMetrics.MarketRefreshes.WithLabelValues(currency, "success").Inc()
	DefaultMetrics.CoinsListed.Set(float64(coins))
}

// RecordStaleResponse records a response dropped by the generation guard.
func RecordStaleResponse(view string) {
	DefaultMetrics.StaleResponses.WithLabelValues(view).Inc()
}

// RecordNotification records snapshot deliveries to subscribers.
func RecordNotification(n int) {
	DefaultMetrics.SubscriberCallouts.Add(float64(n))
}

// RecordPageRender records a rendered page.
func RecordPageRender(route string, status int, seconds float64) {
	DefaultMetrics.PageRenders.WithLabelValues(route, statusLabel(status)).Inc()
	DefaultMetrics.RenderDuration.WithLabelValues(route).Observe(seconds)
}

// RecordLoginAttempt records a mock login submission outcome ("success" or "invalid").
func RecordLoginAttempt(outcome string) {
	DefaultMetrics.LoginAttempts.WithLabelValues(outcome).Inc()
}

// UpdateActiveSessions sets the live session gauge.
func UpdateActiveSessions(n int) {
	DefaultMetrics.ActiveSessions.Set(float64(n))
}

// RecordSessionsEvicted adds evicted sessions to the counter.
func RecordSessionsEvicted(n int) {
	DefaultMetrics.SessionsEvicted.Add(float64(n))
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
