package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "thermal_trace"

// Metrics holds the Prometheus counters, histograms, and gauges for a viewer session.
type Metrics struct {
	Loads          *prometheus.CounterVec // labels: outcome={loaded,rejected}
	LoadDuration   prometheus.Histogram
	ReadingsLoaded prometheus.Gauge
	Anomalies      prometheus.Gauge

	// Interaction metrics.
	HighlightTransitions *prometheus.CounterVec // labels: kind={select,clear,reset}
	RejectedOperations   *prometheus.CounterVec // labels: op

	// Fault publishing metrics.
	FaultPublishes *prometheus.CounterVec // labels: outcome={success,error,circuit_open}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Loads,
		m.LoadDuration,
		m.ReadingsLoaded,
		m.Anomalies,
		m.HighlightTransitions,
		m.RejectedOperations,
		m.FaultPublishes,
		m.GeocodeRequests,
		m.GeocodeCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Reading-set loads by outcome.",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to build a reading set, derive its indices and render it.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ReadingsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "readings_loaded",
			Help:      "Number of readings in the active reading set.",
		}),
		Anomalies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "anomalies_detected",
			Help:      "Number of fault readings in the active reading set.",
		}),
		HighlightTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "highlight_transitions_total",
			Help:      "Highlight state changes by kind.",
		}, []string{"kind"}),
		RejectedOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_operations_total",
			Help:      "Operations rejected with an error, by operation.",
		}, []string{"op"}),
		FaultPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fault_publish_total",
			Help:      "Fault batches published to Kafka by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
