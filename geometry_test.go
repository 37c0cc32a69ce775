package regcluster

import (
	"math"
	"testing"
)

func TestSquaredDistance(t *testing.T) {
	tests := []struct {
		p, q Point
		want float64
	}{
		{Pt(0, 0), Pt(3, 4), 25},
		{Pt(1, 1), Pt(1, 1), 0},
		{Pt(-2, 5), Pt(1, 1), 25},
	}
	for _, tt := range tests {
		if got := SquaredDistance(tt.p, tt.q); got != tt.want {
			t.Errorf("SquaredDistance(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.want)
		}
		if got := SquaredDistance(tt.q, tt.p); got != tt.want {
			t.Errorf("SquaredDistance not symmetric for %v, %v", tt.p, tt.q)
		}
		if got, want := Distance(tt.p, tt.q), math.Sqrt(tt.want); math.Abs(got-want) > 1e-12 {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.p, tt.q, got, want)
		}
	}
}

func TestMean(t *testing.T) {
	if _, ok := Mean(nil); ok {
		t.Error("Mean(nil) reported ok")
	}

	m, ok := Mean([]Point{Pt(1, 1), Pt(2, 1), Pt(1, 2), Pt(2, 2)})
	if !ok || !m.Equal(Pt(1.5, 1.5)) {
		t.Errorf("Mean = %v, %v; want (1.5,1.5), true", m, ok)
	}

	m, _ = Mean([]Point{Pt(7, -3)})
	if !m.Equal(Pt(7, -3)) {
		t.Errorf("Mean of single point = %v", m)
	}
}

func TestPointApproxEqual(t *testing.T) {
	if !Pt(1, 2).ApproxEqual(Pt(1+1e-12, 2), 1e-9) {
		t.Error("points within tolerance reported unequal")
	}
	if Pt(1, 2).ApproxEqual(Pt(1.1, 2), 1e-9) {
		t.Error("points outside tolerance reported equal")
	}
	if !Pt(1, 2).Equal(Point{X: 1, Y: 2}) {
		t.Error("Pt does not match the literal")
	}
}

func TestBounds(t *testing.T) {
	b := Bounds{Lower: Pt(0, 0), Upper: Pt(10, 5)}
	if !b.Valid() {
		t.Fatal("bounds reported invalid")
	}
	for _, p := range []Point{Pt(0, 0), Pt(10, 5), Pt(3, 4)} {
		if !b.Contains(p) {
			t.Errorf("Contains(%v) = false", p)
		}
	}
	for _, p := range []Point{Pt(-1, 0), Pt(10, 5.1)} {
		if b.Contains(p) {
			t.Errorf("Contains(%v) = true", p)
		}
	}
	if (Bounds{Lower: Pt(1, 0), Upper: Pt(0, 1)}).Valid() {
		t.Error("inverted bounds reported valid")
	}
	if !(Bounds{Lower: Pt(2, 2), Upper: Pt(2, 2)}).Valid() {
		t.Error("degenerate bounds reported invalid")
	}
}

func TestNearestLinear_TieGoesToLowestIndex(t *testing.T) {
	centers := []Point{Pt(0, 0), Pt(2, 0), Pt(1, 5)}
	if got := nearestLinear(centers, Pt(1, 0)); got != 0 {
		t.Errorf("nearestLinear = %d, want 0", got)
	}
	if got := nearestLinear(centers, Pt(1.9, 0)); got != 1 {
		t.Errorf("nearestLinear = %d, want 1", got)
	}
}
