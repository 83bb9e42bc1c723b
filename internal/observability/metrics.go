package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard pipeline.
type Metrics struct {
	RefreshesTotal prometheus.Counter
	FetchErrors    prometheus.Counter
	RecordErrors   prometheus.Counter
	FilterPasses   prometheus.Counter
	PublishErrors  prometheus.Counter

	FetchDuration prometheus.Histogram

	RecordsLoaded    prometheus.Gauge
	RecordsExcluded  prometheus.Gauge
	RecordsDisplayed prometheus.Gauge
	StatusRecords    *prometheus.GaugeVec // label: status={valid,expired,processing}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RefreshesTotal,
		m.FetchErrors,
		m.RecordErrors,
		m.FilterPasses,
		m.PublishErrors,
		m.FetchDuration,
		m.RecordsLoaded,
		m.RecordsExcluded,
		m.RecordsDisplayed,
		m.StatusRecords,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiln_monitor",
			Name:      "refreshes_total",
			Help:      "Total successful dataset refresh cycles.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiln_monitor",
			Name:      "fetch_errors_total",
			Help:      "Total refresh cycles aborted by transport or format errors.",
		}),
		RecordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiln_monitor",
			Name:      "record_errors_total",
			Help:      "Total records excluded from display for invalid coordinates.",
		}),
		FilterPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiln_monitor",
			Name:      "filter_passes_total",
			Help:      "Total filter recomputations triggered by criteria changes.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kiln_monitor",
			Name:      "publish_errors_total",
			Help:      "Total failed snapshot publishes.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kiln_monitor",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the dataset fetch, including failures.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiln_monitor",
			Name:      "records_loaded",
			Help:      "Records in the current normalized set.",
		}),
		RecordsExcluded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiln_monitor",
			Name:      "records_excluded",
			Help:      "Records excluded from display for invalid coordinates.",
		}),
		RecordsDisplayed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kiln_monitor",
			Name:      "records_displayed",
			Help:      "Records in the current filtered view.",
		}),
		StatusRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kiln_monitor",
			Name:      "status_records",
			Help:      "Coordinate-valid records by derived status.",
		}, []string{"status"}),
	}
}
