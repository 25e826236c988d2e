package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the storefront core.
type Metrics struct {
	Registry           *prometheus.Registry
	FeedFetchesTotal   *prometheus.CounterVec
	FeedFetchDuration  prometheus.Histogram
	FeedRowsTotal      *prometheus.CounterVec
	CartMutationsTotal *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_feed_fetches_total",
			Help: "Total feed fetch attempts by outcome.",
		},
		[]string{"outcome"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_feed_fetch_duration_seconds",
			Help:    "Latency of feed fetch requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	rows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_feed_rows_total",
			Help: "Feed rows seen by the parser, by result.",
		},
		[]string{"result"},
	)
	cartMutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutation attempts by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	notifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notifications_total",
			Help: "Notifications emitted to clients, by kind.",
		},
		[]string{"kind"},
	)

	registry.MustRegister(fetches, fetchDuration, rows, cartMutations, notifications)

	return &Metrics{
		Registry:           registry,
		FeedFetchesTotal:   fetches,
		FeedFetchDuration:  fetchDuration,
		FeedRowsTotal:      rows,
		CartMutationsTotal: cartMutations,
		NotificationsTotal: notifications,
	}
}

// IncFeedFetch increments the fetch counter for an outcome label.
func (m *Metrics) IncFeedFetch(outcome string) {
	if m == nil {
		return
	}
	m.FeedFetchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetchDuration records a feed fetch duration.
func (m *Metrics) ObserveFetchDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.FeedFetchDuration.Observe(d.Seconds())
}

// IncRow increments the parsed-rows counter for a result label.
func (m *Metrics) IncRow(result string) {
	if m == nil {
		return
	}
	m.FeedRowsTotal.WithLabelValues(result).Inc()
}

// IncCartMutation increments the cart mutation counter.
func (m *Metrics) IncCartMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.CartMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// IncNotification increments the notifications counter for a kind label.
func (m *Metrics) IncNotification(kind string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(kind).Inc()
}
