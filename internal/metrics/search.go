package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ordersearch",
			Name:      "query_duration_seconds",
			Help:      "Search query duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	SearchResultsTotal = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ordersearch",
			Name:      "query_results",
			Help:      "Number of results matched per search query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ordersearch",
			Name:      "queries_total",
			Help:      "Total search queries by mode",
		},
		[]string{"mode"}, // "text" / "filter"
	)

	SuggestionsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ordersearch",
			Name:      "suggestions_returned",
			Help:      "Number of suggestions returned per request",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	IndexedOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ordersearch",
			Name:      "indexed_orders",
			Help:      "Orders currently held in the catalog",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search metrics. Must be called once
// from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SuggestionsReturned)
	prometheus.MustRegister(IndexedOrders)
	searchMetricsRegistered = true
}

// CatalogGauge adapts the indexed-orders gauge for the ingest pipeline.
type CatalogGauge struct{}

// SetIndexedOrders reports the current catalog size.
func (CatalogGauge) SetIndexedOrders(n int) {
	IndexedOrders.Set(float64(n))
}
