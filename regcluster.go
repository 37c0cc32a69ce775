package regcluster

import (
	"fmt"
	"math/rand"
	"time"
)

// Clusterer is the contract shared by every storage layout.
//
// A Clusterer is not safe for concurrent use: one Run at a time.
type Clusterer interface {
	// Run performs exactly iterations rounds of nearest-center assignment
	// followed by center update over positions, mutating the clusterer in
	// place. iterations == 0 does nothing.
	Run(positions []Point, iterations int) error

	// K returns the number of clusters, fixed at construction.
	K() int

	// Centers returns a copy of the current centers, indexed by cluster id.
	Centers() []Point

	// Membership returns a copy of the positions assigned to each cluster
	// by the latest iteration, indexed by cluster id.
	Membership() [][]Point
}

// New returns a clusterer of layout cfg.Layout seeded with the given
// initial centers; k is len(centers).
func New(centers []Point, cfg Config) (Clusterer, error) {
	if err := prepareConfig(&cfg); err != nil {
		return nil, err
	}
	// Each case returns through its own typed variable so a failed
	// constructor yields a nil interface, not a typed nil.
	switch cfg.Layout {
	case LayoutObjectOriented:
		o, err := NewObjectOriented(centers, cfg)
		if err != nil {
			return nil, err
		}
		return o, nil
	case LayoutHybrid:
		h, err := NewHybrid(centers, cfg)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		d, err := NewDataOriented(centers, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// NewRandom returns a clusterer of layout cfg.Layout with k centers drawn
// independently and uniformly within bounds, seeded by cfg.Seed.
func NewRandom(bounds Bounds, k int, cfg Config) (Clusterer, error) {
	if err := prepareConfig(&cfg); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("regcluster: cluster count must be > 0, got %d: %w", k, ErrInvalidConfiguration)
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("regcluster: bounds lower corner %v exceeds upper corner %v: %w",
			bounds.Lower, bounds.Upper, ErrInvalidConfiguration)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(randomCenters(bounds, k, rand.New(rand.NewSource(seed))), cfg)
}

// randomCenters draws k points uniformly within bounds.
func randomCenters(bounds Bounds, k int, rng *rand.Rand) []Point {
	w := bounds.Upper.X - bounds.Lower.X
	h := bounds.Upper.Y - bounds.Lower.Y
	centers := make([]Point, k)
	for i := range centers {
		centers[i] = Point{
			X: bounds.Lower.X + rng.Float64()*w,
			Y: bounds.Lower.Y + rng.Float64()*h,
		}
	}
	return centers
}

// checkCenters rejects an empty initial center list.
func checkCenters(centers []Point) error {
	if len(centers) == 0 {
		return fmt.Errorf("regcluster: at least one initial center is required: %w", ErrInvalidConfiguration)
	}
	return nil
}

// clonePoints returns a non-nil copy of points.
func clonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}
