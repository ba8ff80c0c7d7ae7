// Package observability provides Prometheus instrumentation for the
// survey pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the instruments exported at /metrics.
type Metrics struct {
	ImportsTotal         *prometheus.CounterVec
	ImportErrorsTotal    *prometheus.CounterVec
	ObservationsImported prometheus.Counter
	MeasurementsImported prometheus.Counter
	AnalysisRunsTotal    prometheus.Counter
	AnalysisDuration     prometheus.Histogram
	ValidationRunsTotal  prometheus.Counter
	SSEClients           prometheus.Gauge
	HTTPRequestsTotal    *prometheus.CounterVec
}

// NewMetrics registers and returns the application metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ImportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "imports_total",
			Help:      "Completed imports by source format.",
		}, []string{"format"}),
		ImportErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "import_errors_total",
			Help:      "Failed imports by source format.",
		}, []string{"format"}),
		ObservationsImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "observations_imported_total",
			Help:      "Access point observations stored across all imports.",
		}),
		MeasurementsImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "measurements_imported_total",
			Help:      "Positioned measurements stored across all imports.",
		}),
		AnalysisRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "analysis_runs_total",
			Help:      "Completed floor analysis runs.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roamscope",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent computing a floor analysis.",
			Buckets:   prometheus.DefBuckets,
		}),
		ValidationRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "validation_runs_total",
			Help:      "Completed validation runs against reference baselines.",
		}),
		SSEClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "roamscope",
			Name:      "sse_clients",
			Help:      "Currently connected event stream clients.",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roamscope",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
}

// NewMetricsForTesting returns metrics backed by a throwaway registry.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
