package regcluster

import (
	"math"
	"sort"
)

// kdNode describes a single node of a KDTree: the range of idxArray it
// covers and whether it is a leaf.
type kdNode struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
	used             bool
}

// KDTree is a 2D KD-tree over a snapshot of cluster centers, used for
// nearest-center queries during assignment. Centers are reordered
// internally via an index permutation array; query results are original
// center ids.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as a lower and an upper corner per node
type KDTree struct {
	centers  []Point
	leafSize int
	idxArray []int // permutation: tree-order position → center id
	nodes    []kdNode
	lower    []Point // bounding box lower corner per node
	upper    []Point // bounding box upper corner per node
}

var _ CenterIndex = (*KDTree)(nil)

// NewKDTree builds a KD-tree over centers. leafSize controls the max number
// of centers per leaf node.
func NewKDTree(centers []Point, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}
	n := len(centers)

	centersCopy := make([]Point, n)
	copy(centersCopy, centers)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)
	t := &KDTree{
		centers:  centersCopy,
		leafSize: leafSize,
		idxArray: idxArray,
		nodes:    make([]kdNode, maxNodes),
		lower:    make([]Point, maxNodes),
		upper:    make([]Point, maxNodes),
	}
	if n > 0 {
		t.buildNode(0, 0, n)
	}
	return t
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2
}

// buildNode recursively builds the tree for centers in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, kdNode{})
		t.lower = append(t.lower, Point{})
		t.upper = append(t.upper, Point{})
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = kdNode{IdxStart: start, IdxEnd: end, IsLeaf: true, used: true}
		return
	}

	// Split along the axis with the greater spread, at the median.
	byX := t.upper[nodeID].X-t.lower[nodeID].X >= t.upper[nodeID].Y-t.lower[nodeID].Y
	t.sortByAxis(start, end, byX)
	mid := start + count/2

	t.nodes[nodeID] = kdNode{IdxStart: start, IdxEnd: end, used: true}
	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes the bounding box of idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := start; i < end; i++ {
		c := t.centers[t.idxArray[i]]
		lo.X = math.Min(lo.X, c.X)
		lo.Y = math.Min(lo.Y, c.Y)
		hi.X = math.Max(hi.X, c.X)
		hi.Y = math.Max(hi.Y, c.Y)
	}
	t.lower[nodeID] = lo
	t.upper[nodeID] = hi
}

// sortByAxis sorts idxArray[start:end] by X when byX is set, else by Y.
func (t *KDTree) sortByAxis(start, end int, byX bool) {
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
func (t *KDTree) Len() int { return len(t.centers) }

// Nearest returns the id of the center nearest to p, or -1 for an empty
// tree. Ties resolve to the lowest id.
func (t *KDTree) Nearest(p Point) int {
	if len(t.centers) == 0 {
		return -1
	}
	best, bestDist := -1, math.Inf(1)
	t.nearestSearch(0, p, &best, &bestDist)
	return best
}

// nearestSearch descends nearer child first. A subtree is skipped only when
// its box is strictly farther than the current best, so an equidistant
// center with a lower id is never pruned.
func (t *KDTree) nearestSearch(nodeID int, p Point, best *int, bestDist *float64) {
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
// any center in node.
func (t *KDTree) minRdistPoint(node int, p Point) float64 {
	if node >= len(t.nodes) || !t.nodes[node].used {
		return math.Inf(1)
	}
	lo, hi := t.lower[node], t.upper[node]
	var dx, dy float64
	if p.X < lo.X {
		dx = lo.X - p.X
	} else if p.X > hi.X {
		dx = p.X - hi.X
	}
	if p.Y < lo.Y {
		dy = lo.Y - p.Y
	} else if p.Y > hi.Y {
		dy = p.Y - hi.Y
	}
	return dx*dx + dy*dy
}
