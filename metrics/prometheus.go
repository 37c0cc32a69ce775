package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TrevorS/regcluster"
)

// PrometheusCollector implements regcluster.MetricsCollector backed by
// Prometheus. Collectors are registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	phaseSeconds     *prometheus.HistogramVec
	iterationSeconds *prometheus.HistogramVec
	iterations       *prometheus.CounterVec
	emptyClusters    *prometheus.CounterVec
}

var _ regcluster.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "regcluster" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "regcluster"
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.phaseSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "kmeans",
			Name:      "phase_duration_seconds",
			Help:      "Duration of one iteration phase (index_build, assign, update) by layout.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10), // 10µs .. ~2.6s
		}, []string{"layout", "phase"})

		p.iterationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "kmeans",
			Name:      "iteration_duration_seconds",
			Help:      "Duration of a full assign+update iteration by layout.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"layout"})

		p.iterations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "kmeans",
			Name:      "iterations_total",
			Help:      "Total completed iterations by layout.",
		}, []string{"layout"})

		p.emptyClusters = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "kmeans",
			Name:      "empty_clusters_total",
			Help:      "Clusters that received no members in an iteration and kept their center.",
		}, []string{"layout"})

		p.reg.MustRegister(p.phaseSeconds)
		p.reg.MustRegister(p.iterationSeconds)
		p.reg.MustRegister(p.iterations)
		p.reg.MustRegister(p.emptyClusters)
	})
}

// RecordPhase observes the duration of one phase.
func (p *PrometheusCollector) RecordPhase(layout, phase string, seconds float64) {
	p.ensureRegistered()
	p.phaseSeconds.WithLabelValues(layout, phase).Observe(seconds)
}

// RecordIteration observes the duration of one iteration and counts it.
func (p *PrometheusCollector) RecordIteration(layout string, seconds float64) {
	p.ensureRegistered()
	p.iterationSeconds.WithLabelValues(layout).Observe(seconds)
	p.iterations.WithLabelValues(layout).Inc()
}

// RecordEmptyCluster counts a cluster that kept its center.
func (p *PrometheusCollector) RecordEmptyCluster(layout string) {
	p.ensureRegistered()
	p.emptyClusters.WithLabelValues(layout).Inc()
}
