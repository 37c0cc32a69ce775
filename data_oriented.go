package regcluster

// DataOriented is the structure-of-arrays clusterer: all centers live in
// one contiguous slice indexed by cluster id, and membership is one
// position slice per cluster id, kept apart from the centers.
type DataOriented struct {
	driver
	centers []Point
	members [][]Point
	input   []Point
}

var _ Clusterer = (*DataOriented)(nil)

// NewDataOriented returns a data-oriented clusterer seeded with centers.
// cfg.Layout is ignored.
func NewDataOriented(centers []Point, cfg Config) (*DataOriented, error) {
	cfg.Layout = LayoutDataOriented
	if err := prepareConfig(&cfg); err != nil {
		return nil, err
	}
	if err := checkCenters(centers); err != nil {
		return nil, err
	}
	return &DataOriented{
		driver:  driver{cfg: cfg, layout: LayoutDataOriented},
		centers: clonePoints(centers),
		members: make([][]Point, len(centers)),
	}, nil
}

// Run performs exactly iterations assign+update rounds over positions.
func (d *DataOriented) Run(positions []Point, iterations int) error {
	d.input = positions
	defer func() { d.input = nil }()
	return d.run(d, len(positions), iterations)
}

func (d *DataOriented) K() int { return len(d.centers) }

func (d *DataOriented) Centers() []Point { return clonePoints(d.centers) }

func (d *DataOriented) Membership() [][]Point {
	out := make([][]Point, len(d.members))
	for id, m := range d.members {
		out[id] = clonePoints(m)
	}
	return out
}

func (d *DataOriented) centerSnapshot() []Point { return d.centers }

func (d *DataOriented) assign(idx CenterIndex) error {
	centers, input := d.centers, d.input
	members, err := accumulate(len(input), len(centers), d.cfg.Workers, func(i int) (int, Point) {
		p := input[i]
		if idx != nil {
			return idx.Nearest(p), p
		}
		// Inline scan straight over the center array.
		best, bestDist := 0, SquaredDistance(centers[0], p)
		for c := 1; c < len(centers); c++ {
			if dist := SquaredDistance(centers[c], p); dist < bestDist {
				best, bestDist = c, dist
			}
		}
		return best, p
	})
	if err != nil {
		return err
	}
	d.members = members
	return nil
}

func (d *DataOriented) update() ([]int, error) {
	return updateCenters(d.centers, func(id int) []Point { return d.members[id] }, d.cfg.Workers)
}
