package activitydb

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements the Metrics interface using Prometheus
type PrometheusMetrics struct {
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	registry   prometheus.Registerer
}

// NewPrometheusMetrics creates a new Prometheus metrics instance.
// If registry is nil, the default Prometheus registerer is used.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	pm := &PrometheusMetrics{
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		registry:   registry,
	}

	pm.registerDefaultMetrics()
	return pm
}

func (p *PrometheusMetrics) registerDefaultMetrics() {
	p.counters[MetricInsertSuccess] = promauto.With(p.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activitydb",
			Name:      "inserts_total",
			Help:      "Total number of document inserts",
		},
		[]string{"collection"},
	)

	p.counters[MetricUpdateApplied] = promauto.With(p.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activitydb",
			Name:      "updates_total",
			Help:      "Total number of document updates applied",
		},
		[]string{"collection"},
	)

	p.counters[MetricSeedInserted] = promauto.With(p.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activitydb",
			Name:      "seed_documents_total",
			Help:      "Documents inserted during first-run seeding",
		},
		[]string{"collection"},
	)

	p.counters[MetricProbeFailure] = promauto.With(p.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activitydb",
			Name:      "probe_failures_total",
			Help:      "Startup reachability probes that failed",
		},
		[]string{"backend"},
	)

	p.gauges[MetricBackendSelected] = promauto.With(p.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "activitydb",
			Name:      "backend_selected",
			Help:      "Which backend the selector bound at startup (1 = selected)",
		},
		[]string{"backend"},
	)

	p.histograms[MetricFindDuration] = promauto.With(p.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "activitydb",
			Name:      "find_duration_seconds",
			Help:      "Find execution duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"collection"},
	)

	p.histograms[MetricProbeDuration] = promauto.With(p.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "activitydb",
			Name:      "probe_duration_seconds",
			Help:      "Startup reachability probe duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
}

// Increment increases a counter by 1
func (p *PrometheusMetrics) Increment(name string, tags ...string) {
	if counter, ok := p.counters[name]; ok {
		counter.WithLabelValues(tagValues(tags)...).Inc()
	}
}

// Gauge sets an absolute value
func (p *PrometheusMetrics) Gauge(name string, value float64, tags ...string) {
	if gauge, ok := p.gauges[name]; ok {
		gauge.WithLabelValues(tagValues(tags)...).Set(value)
	}
}

// Timing records a duration
func (p *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...string) {
	if histogram, ok := p.histograms[name]; ok {
		histogram.WithLabelValues(tagValues(tags)...).Observe(duration.Seconds())
	}
}

// tagValues extracts label values from key-value tag pairs
func tagValues(tags []string) []string {
	values := make([]string, 0, len(tags)/2)
	for i := 1; i < len(tags); i += 2 {
		values = append(values, tags[i])
	}
	return values
}
