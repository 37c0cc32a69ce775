package regcluster

// Element is a clusterable item, such as a register, wrapping one
// position. During a run each Element is held by exactly one Cluster.
type Element struct {
	position Point
}

// NewElement returns an Element at p.
func NewElement(p Point) *Element { return &Element{position: p} }

// Position returns the element's position.
func (e *Element) Position() Point { return e.position }

// SetPosition moves the element to p.
func (e *Element) SetPosition(p Point) { e.position = p }

// Cluster is a self-contained cluster object: it owns its center and the
// elements assigned to it.
type Cluster struct {
	center   Point
	elements []*Element
}

// NewCluster returns an empty cluster centered at center.
func NewCluster(center Point) *Cluster { return &Cluster{center: center} }

// Center returns the cluster center.
func (c *Cluster) Center() Point { return c.center }

// SetCenter moves the cluster center to p.
func (c *Cluster) SetCenter(p Point) { c.center = p }

// Insert adds e to the cluster.
func (c *Cluster) Insert(e *Element) { c.elements = append(c.elements, e) }

// Elements returns the elements currently held by the cluster. The slice
// stays valid after later runs; each run gives the cluster a new one.
func (c *Cluster) Elements() []*Element { return c.elements }

// Size returns the number of elements held by the cluster.
func (c *Cluster) Size() int { return len(c.elements) }

// Clear releases every element held by the cluster. Slices returned by
// earlier Elements calls are left untouched.
func (c *Cluster) Clear() { c.elements = nil }

// Positions returns the positions of the held elements.
func (c *Cluster) Positions() []Point {
	out := make([]Point, len(c.elements))
	for i, e := range c.elements {
		out[i] = e.position
	}
	return out
}

func (c *Cluster) distanceTo(p Point) float64 { return SquaredDistance(c.center, p) }

// recenter moves the center to the mean of the held elements. An empty
// cluster keeps its center and reports true.
func (c *Cluster) recenter() (empty bool) {
	c.center, empty = updateCenter(c.Positions(), c.center)
	return empty
}

// ObjectOriented is the array-of-structures clusterer: a slice of Cluster
// objects, each asked in turn for its distance to every element.
type ObjectOriented struct {
	driver
	clusters []*Cluster
	input    []*Element
}

var _ Clusterer = (*ObjectOriented)(nil)

// NewObjectOriented returns an object-oriented clusterer with one Cluster
// per center. cfg.Layout is ignored.
func NewObjectOriented(centers []Point, cfg Config) (*ObjectOriented, error) {
	cfg.Layout = LayoutObjectOriented
	if err := prepareConfig(&cfg); err != nil {
		return nil, err
	}
	if err := checkCenters(centers); err != nil {
		return nil, err
	}
	o := &ObjectOriented{
		driver:   driver{cfg: cfg, layout: LayoutObjectOriented},
		clusters: make([]*Cluster, len(centers)),
	}
	for id, c := range centers {
		o.clusters[id] = NewCluster(c)
	}
	return o, nil
}

// Run wraps positions into Elements and calls RunElements.
func (o *ObjectOriented) Run(positions []Point, iterations int) error {
	elements := make([]*Element, len(positions))
	for i, p := range positions {
		elements[i] = NewElement(p)
	}
	return o.RunElements(elements, iterations)
}

// RunElements performs exactly iterations assign+update rounds. After it
// returns every element is held by exactly one cluster.
func (o *ObjectOriented) RunElements(elements []*Element, iterations int) error {
	o.input = elements
	defer func() { o.input = nil }()
	return o.run(o, len(elements), iterations)
}

// Clusters returns the cluster objects, indexed by id.
func (o *ObjectOriented) Clusters() []*Cluster { return o.clusters }

func (o *ObjectOriented) K() int { return len(o.clusters) }

func (o *ObjectOriented) Centers() []Point { return o.centerSnapshot() }

func (o *ObjectOriented) Membership() [][]Point {
	out := make([][]Point, len(o.clusters))
	for id, c := range o.clusters {
		out[id] = c.Positions()
	}
	return out
}

func (o *ObjectOriented) centerSnapshot() []Point {
	out := make([]Point, len(o.clusters))
	for id, c := range o.clusters {
		out[id] = c.center
	}
	return out
}

// nearestCluster asks every cluster object for its distance to p.
func (o *ObjectOriented) nearestCluster(p Point) int {
	best, bestDist := 0, o.clusters[0].distanceTo(p)
	for id := 1; id < len(o.clusters); id++ {
		if d := o.clusters[id].distanceTo(p); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func (o *ObjectOriented) assign(idx CenterIndex) error {
	for _, c := range o.clusters {
		c.Clear()
	}
	input := o.input
	buckets, err := accumulate(len(input), len(o.clusters), o.cfg.Workers, func(i int) (int, *Element) {
		e := input[i]
		if idx != nil {
			return idx.Nearest(e.position), e
		}
		return o.nearestCluster(e.position), e
	})
	if err != nil {
		return err
	}
	for id, bucket := range buckets {
		for _, e := range bucket {
			o.clusters[id].Insert(e)
		}
	}
	return nil
}

func (o *ObjectOriented) update() ([]int, error) {
	return recenterAll(len(o.clusters), o.cfg.Workers, func(id int) bool {
		return o.clusters[id].recenter()
	})
}
