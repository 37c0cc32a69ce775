package regcluster

import (
	"fmt"
	"runtime"
)

// Layout selects how a clusterer stores centers and membership.
type Layout string

const (
	// LayoutObjectOriented keeps one Cluster object per cluster, each owning
	// its center and its elements.
	LayoutObjectOriented Layout = "object_oriented"
	// LayoutDataOriented keeps all centers in one contiguous array and
	// membership in one position array per cluster id.
	LayoutDataOriented Layout = "data_oriented"
	// LayoutHybrid keeps centers contiguous but membership in per-cluster
	// objects.
	LayoutHybrid Layout = "hybrid"
)

// IndexKind selects how the nearest center is found for each position.
type IndexKind string

const (
	// IndexLinear scans all k centers for every position.
	IndexLinear IndexKind = "linear"
	// IndexRTree bulk-loads the centers into an R-tree every iteration.
	IndexRTree IndexKind = "rtree"
	// IndexKDTree builds a KD-tree over the centers every iteration.
	IndexKDTree IndexKind = "kdtree"
	// IndexBallTree builds a ball tree over the centers every iteration.
	IndexBallTree IndexKind = "balltree"
)

// Config controls how a clusterer is built and run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Layout selects the storage layout. Only New and NewRandom read it;
	// the layout-specific constructors ignore it. Default: "data_oriented".
	Layout Layout

	// Index selects the nearest-center lookup. All kinds produce identical
	// assignments. Default: "linear".
	Index IndexKind

	// Workers is the number of goroutines used for the assignment and update
	// phases. 1 runs everything on the caller's goroutine. 0 means
	// runtime.NumCPU(). Default: 1.
	Workers int

	// LeafSize is the maximum number of centers in a tree leaf.
	// Only used with IndexKDTree and IndexBallTree. Default: 8.
	LeafSize int

	// Seed seeds the generator for random initial centers. 0 seeds from the
	// clock. Only used by NewRandom.
	Seed int64

	// Logger receives run and iteration events. Default: discard.
	Logger Logger

	// Metrics receives phase timings. Default: discard.
	Metrics MetricsCollector
}

// DefaultConfig returns a Config for a sequential data-oriented clusterer
// with linear nearest-center scans.
func DefaultConfig() Config {
	return Config{
		Layout:   LayoutDataOriented,
		Index:    IndexLinear,
		Workers:  1,
		LeafSize: 8,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Layout == "" {
		cfg.Layout = LayoutDataOriented
	}
	if cfg.Index == "" {
		cfg.Index = IndexLinear
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 8
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	switch cfg.Layout {
	case LayoutObjectOriented, LayoutDataOriented, LayoutHybrid:
	default:
		return fmt.Errorf("regcluster: unknown Layout %q: %w", cfg.Layout, ErrInvalidConfiguration)
	}
	switch cfg.Index {
	case IndexLinear, IndexRTree, IndexKDTree, IndexBallTree:
	default:
		return fmt.Errorf("regcluster: unknown Index %q: %w", cfg.Index, ErrInvalidConfiguration)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("regcluster: Workers must be >= 0, got %d: %w", cfg.Workers, ErrInvalidConfiguration)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("regcluster: LeafSize must be >= 1, got %d: %w", cfg.LeafSize, ErrInvalidConfiguration)
	}
	return nil
}

// prepareConfig applies defaults and validates cfg in place.
func prepareConfig(cfg *Config) error {
	applyDefaults(cfg)
	return validateConfig(cfg)
}
