package regcluster

// Phase names passed to MetricsCollector.RecordPhase.
const (
	PhaseIndexBuild = "index_build"
	PhaseAssign     = "assign"
	PhaseUpdate     = "update"
)

// MetricsCollector receives timing and degenerate-cluster observations from
// a run. Implementations must be safe for concurrent use; the metrics
// subpackage provides no-op and Prometheus-backed versions.
type MetricsCollector interface {
	// RecordPhase records how long one phase of one iteration took.
	RecordPhase(layout, phase string, seconds float64)

	// RecordIteration records the duration of a full assign+update iteration.
	RecordIteration(layout string, seconds float64)

	// RecordEmptyCluster counts a cluster that received no members in an
	// iteration and kept its previous center.
	RecordEmptyCluster(layout string)
}

type nopMetrics struct{}

func (nopMetrics) RecordPhase(string, string, float64) {}
func (nopMetrics) RecordIteration(string, float64)     {}
func (nopMetrics) RecordEmptyCluster(string)           {}
