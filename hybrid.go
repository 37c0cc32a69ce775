package regcluster

// HybridCluster is one cluster of a Hybrid clusterer. It owns its member
// positions; its center lives in the clusterer's shared center array.
type HybridCluster struct {
	id       int
	centers  []Point
	elements []Point
}

// ID returns the cluster id.
func (c *HybridCluster) ID() int { return c.id }

// Center returns the current center of the cluster.
func (c *HybridCluster) Center() Point { return c.centers[c.id] }

// Elements returns the member positions from the latest iteration. The
// slice is reused by the next Run.
func (c *HybridCluster) Elements() []Point { return c.elements }

// Size returns the number of member positions.
func (c *HybridCluster) Size() int { return len(c.elements) }

// Hybrid stores centers contiguously, like DataOriented, but accumulates
// membership into per-cluster objects, like ObjectOriented. Comparing it
// against both separates the cost of center storage from the cost of
// membership storage.
type Hybrid struct {
	driver
	centers  []Point
	clusters []*HybridCluster
	input    []Point
}

var _ Clusterer = (*Hybrid)(nil)

// NewHybrid returns a hybrid clusterer seeded with centers.
// cfg.Layout is ignored.
func NewHybrid(centers []Point, cfg Config) (*Hybrid, error) {
	cfg.Layout = LayoutHybrid
	if err := prepareConfig(&cfg); err != nil {
		return nil, err
	}
	if err := checkCenters(centers); err != nil {
		return nil, err
	}
	h := &Hybrid{
		driver:   driver{cfg: cfg, layout: LayoutHybrid},
		centers:  clonePoints(centers),
		clusters: make([]*HybridCluster, len(centers)),
	}
	for id := range h.clusters {
		h.clusters[id] = &HybridCluster{id: id, centers: h.centers}
	}
	return h, nil
}

// Run performs exactly iterations assign+update rounds over positions.
func (h *Hybrid) Run(positions []Point, iterations int) error {
	h.input = positions
	defer func() { h.input = nil }()
	return h.run(h, len(positions), iterations)
}

// Clusters returns the cluster objects, indexed by id.
func (h *Hybrid) Clusters() []*HybridCluster { return h.clusters }

func (h *Hybrid) K() int { return len(h.centers) }

func (h *Hybrid) Centers() []Point { return clonePoints(h.centers) }

func (h *Hybrid) Membership() [][]Point {
	out := make([][]Point, len(h.clusters))
	for id, c := range h.clusters {
		out[id] = clonePoints(c.elements)
	}
	return out
}

func (h *Hybrid) centerSnapshot() []Point { return h.centers }

func (h *Hybrid) assign(idx CenterIndex) error {
	centers, input := h.centers, h.input
	buckets, err := accumulate(len(input), len(centers), h.cfg.Workers, func(i int) (int, Point) {
		p := input[i]
		if idx != nil {
			return idx.Nearest(p), p
		}
		return nearestLinear(centers, p), p
	})
	if err != nil {
		return err
	}
	for id, c := range h.clusters {
		c.elements = append(c.elements[:0], buckets[id]...)
	}
	return nil
}

func (h *Hybrid) update() ([]int, error) {
	return updateCenters(h.centers, func(id int) []Point { return h.clusters[id].elements }, h.cfg.Workers)
}
