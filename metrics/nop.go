// Package metrics provides MetricsCollector implementations for regcluster
// runs.
package metrics

import "github.com/TrevorS/regcluster"

// NopMetrics discards all observations.
type NopMetrics struct{}

var _ regcluster.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordPhase discards the phase duration.
func (n *NopMetrics) RecordPhase(_ /* layout */, _ /* phase */ string, _ /* seconds */ float64) {}

// RecordIteration discards the iteration duration.
func (n *NopMetrics) RecordIteration(_ /* layout */ string, _ /* seconds */ float64) {}

// RecordEmptyCluster discards the empty-cluster event.
func (n *NopMetrics) RecordEmptyCluster(_ /* layout */ string) {}
