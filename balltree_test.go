package regcluster

import (
	"math/rand"
	"testing"
)

func TestBallTree_MatchesLinearScan(t *testing.T) {
	centers := gridCenters(5, 4)
	queries := gridQueries(5, 4)

	for _, leafSize := range []int{1, 2, 8} {
		tree := NewBallTree(centers, leafSize)
		if tree.Len() != len(centers) {
			t.Fatalf("leafSize=%d: Len() = %d, want %d", leafSize, tree.Len(), len(centers))
		}
		for _, q := range queries {
			if got, want := tree.Nearest(q), nearestLinear(centers, q); got != want {
				t.Errorf("leafSize=%d: Nearest(%v) = %d, want %d", leafSize, q, got, want)
			}
		}
	}
}

func TestBallTree_RandomCenters(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	centers := make([]Point, 50)
	for i := range centers {
		centers[i] = Pt(rng.Float64()*100, rng.Float64()*100)
	}
	tree := NewBallTree(centers, 3)
	for i := 0; i < 500; i++ {
		q := Pt(rng.Float64()*120-10, rng.Float64()*120-10)
		if got, want := tree.Nearest(q), nearestLinear(centers, q); got != want {
			t.Fatalf("Nearest(%v) = %d, want %d", q, got, want)
		}
	}
}

func TestBallTree_RadiusCoversMembers(t *testing.T) {
	centers := gridCenters(4, 4)
	tree := NewBallTree(centers, 2)
	for id, nd := range tree.nodes {
		if !nd.used {
			continue
		}
		for i := nd.IdxStart; i < nd.IdxEnd; i++ {
			c := centers[tree.idxArray[i]]
			if d := Distance(c, tree.centroids[id]); d > tree.radii[id]+1e-12 {
				t.Errorf("node %d: center %v at %v outside radius %v", id, c, d, tree.radii[id])
			}
		}
	}
}

func TestBallTree_Empty(t *testing.T) {
	tree := NewBallTree(nil, 4)
	if got := tree.Nearest(Pt(0, 0)); got != -1 {
		t.Errorf("Nearest on empty tree = %d, want -1", got)
	}
}
