package regcluster

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is an immutable 2D position, for example the lower-left corner of a
// placed register.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Equal reports whether p and q have identical coordinates.
func (p Point) Equal(q Point) bool { return p.X == q.X && p.Y == q.Y }

// ApproxEqual reports whether both coordinates of p and q agree within tol,
// absolutely or relatively.
func (p Point) ApproxEqual(q Point, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(p.X, q.X, tol, tol) &&
		scalar.EqualWithinAbsOrRel(p.Y, q.Y, tol, tol)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), q.vec()))
}

// SquaredDistance returns the squared Euclidean distance between p and q.
// Nearest-center comparisons use it to skip the square root.
func SquaredDistance(p, q Point) float64 {
	return r2.Norm2(r2.Sub(p.vec(), q.vec()))
}

// Mean returns the coordinate-wise arithmetic mean of points. The second
// result is false when points is empty.
func Mean(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sum r2.Vec
	for _, p := range points {
		sum = r2.Add(sum, p.vec())
	}
	n := float64(len(points))
	return fromVec(r2.Vec{X: sum.X / n, Y: sum.Y / n}), true
}

// Bounds is an axis-aligned box given by its lower-left and upper-right
// corners, e.g. the die area of a circuit.
type Bounds struct {
	Lower, Upper Point
}

// Valid reports whether no lower coordinate exceeds its upper counterpart.
func (b Bounds) Valid() bool {
	return b.Lower.X <= b.Upper.X && b.Lower.Y <= b.Upper.Y
}

// Contains reports whether p lies inside b, borders included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Lower.X && p.X <= b.Upper.X &&
		p.Y >= b.Lower.Y && p.Y <= b.Upper.Y
}

// nearestLinear scans centers and returns the index with the smallest
// squared distance to p. Ties go to the lowest index.
func nearestLinear(centers []Point, p Point) int {
	best := 0
	bestDist := SquaredDistance(centers[0], p)
	for i := 1; i < len(centers); i++ {
		if d := SquaredDistance(centers[i], p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
