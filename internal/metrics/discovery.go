package metrics

import "github.com/prometheus/client_golang/prometheus"

// Discovery Prometheus metrics.
var (
	DiscoverySearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "discovery_searches_total",
			Help:      "Total number of discovery searches",
		},
		[]string{"collection", "status"},
	)

	DiscoverySearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "discovery_search_duration_seconds",
			Help:      "Discovery engine evaluation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"collection"},
	)

	DiscoveryResultItems = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "discovery_result_items",
			Help:      "Number of listings matched per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"collection"},
	)

	SourceListings = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "source_listings",
			Help:      "Listings loaded from the source at the last search",
		},
		[]string{"collection"},
	)

	SeedReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "seed_reloads_total",
			Help:      "Seed file reloads",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var discoveryMetricsRegistered bool

// RegisterDiscoveryMetrics registers Prometheus discovery metrics. Must be called once from main.
func RegisterDiscoveryMetrics() {
	if discoveryMetricsRegistered {
		return
	}
	prometheus.MustRegister(DiscoverySearchesTotal)
	prometheus.MustRegister(DiscoverySearchDuration)
	prometheus.MustRegister(DiscoveryResultItems)
	prometheus.MustRegister(SourceListings)
	prometheus.MustRegister(SeedReloadsTotal)
	discoveryMetricsRegistered = true
}
