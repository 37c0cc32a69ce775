package regcluster

import (
	"fmt"
	"time"
)

// step is the per-layout half of the iteration driver. A layout only
// decides how centers and membership are stored; the driver owns the
// ordering of phases and the instrumentation around them.
type step interface {
	// centerSnapshot returns the current centers indexed by cluster id.
	// The driver only reads it.
	centerSnapshot() []Point

	// assign discards the previous membership and classifies every input
	// position. idx is nil for linear scans.
	assign(idx CenterIndex) error

	// update recomputes every center from the membership just built and
	// returns the ids of clusters that had no members.
	update() ([]int, error)
}

// driver runs the bounded Lloyd iteration for one clusterer.
type driver struct {
	cfg    Config
	layout Layout
}

// run performs exactly iterations rounds of {index build, assign, update}
// over n input positions. Assignment fully completes before update reads
// membership, and update fully completes before the next round reads
// centers.
func (d *driver) run(s step, n, iterations int) error {
	if iterations < 0 {
		return fmt.Errorf("regcluster: iterations must be >= 0, got %d: %w", iterations, ErrInvalidConfiguration)
	}
	if iterations == 0 {
		return nil
	}

	layout := string(d.layout)
	log := d.cfg.Logger
	k := len(s.centerSnapshot())
	log.Info("clustering started",
		"layout", layout, "index", string(d.cfg.Index), "workers", d.cfg.Workers,
		"k", k, "positions", n, "iterations", iterations)
	runStart := time.Now()

	for it := 0; it < iterations; it++ {
		iterStart := time.Now()

		var idx CenterIndex
		if d.cfg.Index != IndexLinear {
			t := time.Now()
			var err error
			idx, err = buildCenterIndex(d.cfg.Index, s.centerSnapshot(), d.cfg.LeafSize)
			if err != nil {
				return err
			}
			d.cfg.Metrics.RecordPhase(layout, PhaseIndexBuild, time.Since(t).Seconds())
		}

		t := time.Now()
		if err := s.assign(idx); err != nil {
			log.Error("assignment failed", "layout", layout, "iteration", it, "error", err)
			return err
		}
		d.cfg.Metrics.RecordPhase(layout, PhaseAssign, time.Since(t).Seconds())

		t = time.Now()
		empty, err := s.update()
		if err != nil {
			log.Error("center update failed", "layout", layout, "iteration", it, "error", err)
			return err
		}
		d.cfg.Metrics.RecordPhase(layout, PhaseUpdate, time.Since(t).Seconds())

		for _, id := range empty {
			d.cfg.Metrics.RecordEmptyCluster(layout)
			log.Debug("cluster empty, center retained", "layout", layout, "iteration", it, "cluster", id)
		}

		elapsed := time.Since(iterStart)
		d.cfg.Metrics.RecordIteration(layout, elapsed.Seconds())
		log.Debug("iteration done", "layout", layout, "iteration", it, "elapsed", elapsed)
	}

	log.Info("clustering finished", "layout", layout, "iterations", iterations, "elapsed", time.Since(runStart))
	return nil
}
