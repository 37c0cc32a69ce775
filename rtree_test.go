package regcluster

import (
	"math/rand"
	"testing"
)

func TestRTreeIndex_MatchesLinearScan(t *testing.T) {
	centers := gridCenters(6, 5)
	idx := newRTreeIndex(centers)
	for _, q := range gridQueries(6, 5) {
		if got, want := idx.Nearest(q), nearestLinear(centers, q); got != want {
			t.Errorf("Nearest(%v) = %d, want %d", q, got, want)
		}
	}
}

func TestRTreeIndex_LargeCoordinates(t *testing.T) {
	// DEF database units reach 1e7..1e9 on large dies; ties must still go
	// to the lowest id there.
	for _, offset := range []float64{1e6, 4e7, 1e8, 1e9} {
		centers := gridCenters(6, 5)
		for i := range centers {
			centers[i] = Pt(centers[i].X+offset, centers[i].Y+offset)
		}
		idx := newRTreeIndex(centers)
		for _, q := range gridQueries(6, 5) {
			q = Pt(q.X+offset, q.Y+offset)
			if got, want := idx.Nearest(q), nearestLinear(centers, q); got != want {
				t.Errorf("offset=%g: Nearest(%v) = %d, want %d", offset, q, got, want)
			}
		}
	}
}

func TestRTreeIndex_RandomCenters(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	centers := make([]Point, 60)
	for i := range centers {
		centers[i] = Pt(rng.Float64()*1000, rng.Float64()*1000)
	}
	idx := newRTreeIndex(centers)
	for i := 0; i < 500; i++ {
		q := Pt(rng.Float64()*1200-100, rng.Float64()*1200-100)
		if got, want := idx.Nearest(q), nearestLinear(centers, q); got != want {
			t.Fatalf("Nearest(%v) = %d, want %d", q, got, want)
		}
	}
}

func TestRTreeIndex_DuplicateCenters(t *testing.T) {
	centers := []Point{Pt(5, 5), Pt(0, 0), Pt(5, 5)}
	idx := newRTreeIndex(centers)
	if got := idx.Nearest(Pt(5, 5)); got != 0 {
		t.Errorf("Nearest on duplicate = %d, want 0", got)
	}
	if got := idx.Nearest(Pt(2.5, 2.5)); got != 0 {
		t.Errorf("Nearest at equidistant point = %d, want 0", got)
	}
}

func TestRTreeIndex_Empty(t *testing.T) {
	if got := newRTreeIndex(nil).Nearest(Pt(0, 0)); got != -1 {
		t.Errorf("Nearest on empty index = %d, want -1", got)
	}
}

func TestBuildCenterIndex(t *testing.T) {
	centers := gridCenters(2, 2)

	idx, err := buildCenterIndex(IndexLinear, centers, 8)
	if err != nil || idx != nil {
		t.Errorf("linear: got %v, %v; want nil, nil", idx, err)
	}
	for _, kind := range []IndexKind{IndexRTree, IndexKDTree, IndexBallTree} {
		idx, err := buildCenterIndex(kind, centers, 1)
		if err != nil || idx == nil {
			t.Fatalf("%s: got %v, %v", kind, idx, err)
		}
		if got := idx.Nearest(Pt(0.9, 0.9)); got != 3 {
			t.Errorf("%s: Nearest = %d, want 3", kind, got)
		}
	}
	if _, err := buildCenterIndex("quadtree", centers, 1); err == nil {
		t.Error("unknown kind accepted")
	}
}
