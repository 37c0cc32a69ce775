package regcluster

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

const (
	// rtreeRelTol is the half-width of the box each center occupies in the
	// R-tree, relative to the largest coordinate magnitude. rtreego rejects
	// zero-sized rectangles, and a fixed width rounds away at DEF database
	// unit coordinates.
	rtreeRelTol = 1e-12

	rtreeMinChildren = 2
	rtreeMaxChildren = 16
)

// rtreeCenter is a center stored in the R-tree together with its id.
type rtreeCenter struct {
	id     int
	pos    Point
	bounds rtreego.Rect
}

func (c *rtreeCenter) Bounds() rtreego.Rect { return c.bounds }

// rtreeIndex answers nearest-center queries with an R-tree bulk-loaded from
// one snapshot of centers.
type rtreeIndex struct {
	tree    *rtreego.Rtree
	centers []Point
	tol     float64
}

var _ CenterIndex = (*rtreeIndex)(nil)

func newRTreeIndex(centers []Point) *rtreeIndex {
	scale := 1.0
	for _, c := range centers {
		scale = max(scale, magnitude(c))
	}
	tol := rtreeRelTol * scale

	objs := make([]rtreego.Spatial, len(centers))
	for i, c := range centers {
		objs[i] = &rtreeCenter{
			id:     i,
			pos:    c,
			bounds: rtreego.Point{c.X, c.Y}.ToRect(tol),
		}
	}
	snapshot := make([]Point, len(centers))
	copy(snapshot, centers)
	return &rtreeIndex{
		tree:    rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, objs...),
		centers: snapshot,
		tol:     tol,
	}
}

// magnitude returns the largest absolute coordinate of p.
func magnitude(p Point) float64 { return max(math.Abs(p.X), math.Abs(p.Y)) }

// Nearest asks the R-tree for a nearest candidate, then collects every
// center inside the square reaching that candidate's distance and picks the
// smallest squared distance, lowest id first. The R-tree measures distance
// to padded boxes, so the candidate alone is not enough for exact ties.
func (r *rtreeIndex) Nearest(p Point) int {
	hit := r.tree.NearestNeighbor(rtreego.Point{p.X, p.Y})
	if hit == nil {
		return -1
	}
	candidate := hit.(*rtreeCenter)

	radius := Distance(candidate.pos, p)
	pad := max(r.tol, rtreeRelTol*magnitude(p))
	half := radius + radius*1e-9 + 2*pad
	box, err := rtreego.NewRectFromPoints(
		rtreego.Point{p.X - half, p.Y - half},
		rtreego.Point{p.X + half, p.Y + half},
	)
	if err != nil || math.IsNaN(half) || math.IsInf(half, 0) {
		return nearestLinear(r.centers, p)
	}

	best, bestDist := candidate.id, SquaredDistance(candidate.pos, p)
	for _, s := range r.tree.SearchIntersect(box) {
		c := s.(*rtreeCenter)
		d := SquaredDistance(c.pos, p)
		if d < bestDist || (d == bestDist && c.id < best) {
			best, bestDist = c.id, d
		}
	}
	return best
}
