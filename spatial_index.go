package regcluster

import "fmt"

// CenterIndex answers nearest-center queries over a fixed snapshot of
// centers. Nearest returns the id of the center closest to p by Euclidean
// distance; equidistant centers resolve to the lowest id, exactly as a
// linear scan would.
//
// Implementations are read-only after construction and safe for concurrent
// queries.
type CenterIndex interface {
	Nearest(p Point) int
}

// buildCenterIndex builds an index of the requested kind over centers.
// For IndexLinear it returns nil; callers fall back to their own scan.
func buildCenterIndex(kind IndexKind, centers []Point, leafSize int) (CenterIndex, error) {
	switch kind {
	case IndexLinear:
		return nil, nil
	case IndexRTree:
		return newRTreeIndex(centers), nil
	case IndexKDTree:
		return NewKDTree(centers, leafSize), nil
	case IndexBallTree:
		return NewBallTree(centers, leafSize), nil
	default:
		return nil, fmt.Errorf("regcluster: unknown Index %q: %w", kind, ErrInvalidConfiguration)
	}
}
