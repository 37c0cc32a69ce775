package regcluster

import (
	"math"
	"sort"
)

// ballSlack widens ball lower bounds so rounding in the centroid distance
// never prunes an exactly tied center.
const ballSlack = 1e-9

// BallTree is a ball tree over a snapshot of cluster centers. Each node
// stores the centroid and radius of the smallest centroid-based ball
// enclosing its centers.
//
// Like KDTree it is stored as a complete binary tree in array form, with
// node i having children at 2*i+1 and 2*i+2.
type BallTree struct {
	centers   []Point
	leafSize  int
	idxArray  []int // permutation: tree-order position → center id
	nodes     []kdNode
	centroids []Point
	radii     []float64
}

var _ CenterIndex = (*BallTree)(nil)

// NewBallTree builds a ball tree over centers. leafSize controls the max
// number of centers per leaf node.
func NewBallTree(centers []Point, leafSize int) *BallTree {
	if leafSize < 1 {
		leafSize = 1
	}
	n := len(centers)

	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize) // same upper bound as the KD-tree
	t := &BallTree{
		centers:   clonePoints(centers),
		leafSize:  leafSize,
		idxArray:  idxArray,
		nodes:     make([]kdNode, maxNodes),
		centroids: make([]Point, maxNodes),
		radii:     make([]float64, maxNodes),
	}
	if n > 0 {
		t.buildNode(0, 0, n)
	}
	return t
}

// buildNode recursively builds the ball tree for centers in
// idxArray[start:end].
func (t *BallTree) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, kdNode{})
		t.centroids = append(t.centroids, Point{})
		t.radii = append(t.radii, 0)
	}

	members := make([]Point, 0, end-start)
	for i := start; i < end; i++ {
		members = append(members, t.centers[t.idxArray[i]])
	}
	centroid, _ := Mean(members)
	var radius float64
	for _, c := range members {
		radius = math.Max(radius, Distance(centroid, c))
	}
	t.centroids[nodeID] = centroid
	t.radii[nodeID] = radius

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = kdNode{IdxStart: start, IdxEnd: end, IsLeaf: true, used: true}
		return
	}

	t.nodes[nodeID] = kdNode{IdxStart: start, IdxEnd: end, used: true}
	t.sortBySpread(start, end)
	mid := start + count/2

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// sortBySpread sorts idxArray[start:end] along the axis with the greater
// spread.
func (t *BallTree) sortBySpread(start, end int) {
	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := start; i < end; i++ {
		c := t.centers[t.idxArray[i]]
		lo = Point{X: math.Min(lo.X, c.X), Y: math.Min(lo.Y, c.Y)}
		hi = Point{X: math.Max(hi.X, c.X), Y: math.Max(hi.Y, c.Y)}
	}
	byX := hi.X-lo.X >= hi.Y-lo.Y

	sub := t.idxArray[start:end]
	centers := t.centers
	sort.Slice(sub, func(i, j int) bool {
		a, b := centers[sub[i]], centers[sub[j]]
		if byX {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
}

// Len returns the number of centers in the tree.
func (t *BallTree) Len() int { return len(t.centers) }

// Nearest returns the id of the center nearest to p, or -1 for an empty
// tree. Ties resolve to the lowest id.
func (t *BallTree) Nearest(p Point) int {
	if len(t.centers) == 0 {
		return -1
	}
	best, bestDist := -1, math.Inf(1)
	t.nearestSearch(0, p, &best, &bestDist)
	return best
}

func (t *BallTree) nearestSearch(nodeID int, p Point, best *int, bestDist *float64) {
	if nodeID >= len(t.nodes) || !t.nodes[nodeID].used {
		return
	}
	node := t.nodes[nodeID]

	if node.IsLeaf {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			id := t.idxArray[i]
			d := SquaredDistance(t.centers[id], p)
			if d < *bestDist || (d == *bestDist && id < *best) || *best < 0 {
				*best, *bestDist = id, d
			}
		}
		return
	}

	left, right := 2*nodeID+1, 2*nodeID+2
	leftRdist := t.minRdistPoint(left, p)
	rightRdist := t.minRdistPoint(right, p)

	nearChild, farChild := left, right
	nearRdist, farRdist := leftRdist, rightRdist
	if rightRdist < leftRdist {
		nearChild, farChild = right, left
		nearRdist, farRdist = rightRdist, leftRdist
	}

	if nearRdist <= *bestDist {
		t.nearestSearch(nearChild, p, best, bestDist)
	}
	if farRdist <= *bestDist {
		t.nearestSearch(farChild, p, best, bestDist)
	}
}

// minRdistPoint returns a lower bound on the squared distance between p and
// any center in node: the distance to the centroid minus the radius,
// clamped at zero.
func (t *BallTree) minRdistPoint(node int, p Point) float64 {
	if node >= len(t.nodes) || !t.nodes[node].used {
		return math.Inf(1)
	}
	dist := Distance(p, t.centroids[node]) - t.radii[node]
	if dist <= 0 {
		return 0
	}
	dist *= 1 - ballSlack
	return dist * dist
}
