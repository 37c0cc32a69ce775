package regcluster

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// recordingMetrics counts every observation by phase.
type recordingMetrics struct {
	mu         sync.Mutex
	phases     map[string]int
	iterations int
	empty      int
	layouts    map[string]bool
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{phases: map[string]int{}, layouts: map[string]bool{}}
}

func (m *recordingMetrics) RecordPhase(layout, phase string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases[phase]++
	m.layouts[layout] = true
}

func (m *recordingMetrics) RecordIteration(layout string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.iterations++
	m.layouts[layout] = true
}

func (m *recordingMetrics) RecordEmptyCluster(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.empty++
}

func TestRun_RecordsPhases(t *testing.T) {
	for _, index := range []IndexKind{IndexLinear, IndexRTree, IndexKDTree, IndexBallTree} {
		t.Run(string(index), func(t *testing.T) {
			m := newRecordingMetrics()
			cfg := DefaultConfig()
			cfg.Layout = LayoutHybrid
			cfg.Index = index
			cfg.Metrics = m

			c := mustNew(t, quadrantInitialCenters, cfg)
			if err := c.Run(quadrantPositions, 3); err != nil {
				t.Fatal(err)
			}

			wantBuilds := 3
			if index == IndexLinear {
				wantBuilds = 0
			}
			if m.phases[PhaseIndexBuild] != wantBuilds {
				t.Errorf("index builds = %d, want %d", m.phases[PhaseIndexBuild], wantBuilds)
			}
			if m.phases[PhaseAssign] != 3 || m.phases[PhaseUpdate] != 3 {
				t.Errorf("assign/update = %d/%d, want 3/3", m.phases[PhaseAssign], m.phases[PhaseUpdate])
			}
			if m.iterations != 3 {
				t.Errorf("iterations = %d, want 3", m.iterations)
			}
			if m.empty != 0 {
				t.Errorf("empty clusters = %d, want 0", m.empty)
			}
			if !m.layouts[string(LayoutHybrid)] || len(m.layouts) != 1 {
				t.Errorf("layout labels = %v, want only %q", m.layouts, LayoutHybrid)
			}
		})
	}
}

func TestRun_ZeroIterationsRecordsNothing(t *testing.T) {
	m := newRecordingMetrics()
	cfg := DefaultConfig()
	cfg.Metrics = m
	c := mustNew(t, quadrantInitialCenters, cfg)
	if err := c.Run(quadrantPositions, 0); err != nil {
		t.Fatal(err)
	}
	if len(m.phases) != 0 || m.iterations != 0 {
		t.Errorf("zero iterations recorded %v phases and %d iterations", m.phases, m.iterations)
	}
}

func TestRun_LogsEmptyClusters(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newRecordingMetrics()

	cfg := DefaultConfig()
	cfg.Layout = LayoutObjectOriented
	cfg.Logger = NewSlogLogger(logger)
	cfg.Metrics = m

	c := mustNew(t, []Point{Pt(1, 1), Pt(1000, 1000)}, cfg)
	if err := c.Run([]Point{Pt(0, 0), Pt(2, 2)}, 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"clustering started", "cluster empty, center retained", "clustering finished", "layout=object_oriented"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if m.empty != 2 {
		t.Errorf("empty clusters = %d, want 2", m.empty)
	}
}

// failingStep makes the driver observe an assignment error.
type failingStep struct{ err error }

func (failingStep) centerSnapshot() []Point   { return []Point{Pt(0, 0)} }
func (s failingStep) assign(CenterIndex) error { return s.err }
func (failingStep) update() ([]int, error)     { return nil, nil }

func TestDriver_PropagatesStepError(t *testing.T) {
	cfg := DefaultConfig()
	if err := prepareConfig(&cfg); err != nil {
		t.Fatal(err)
	}
	d := &driver{cfg: cfg, layout: LayoutDataOriented}
	err := d.run(failingStep{err: ErrWorkerFailed}, 1, 5)
	if !errors.Is(err, ErrWorkerFailed) {
		t.Fatalf("err = %v, want ErrWorkerFailed", err)
	}
}

func TestNewSlogLogger_NilUsesDefault(t *testing.T) {
	l := NewSlogLogger(nil)
	if l.logger != slog.Default() {
		t.Error("nil logger did not fall back to slog.Default()")
	}
	// NopLogger must accept arbitrary key-value pairs.
	NopLogger{}.Info("ignored", "k", 1)
}
