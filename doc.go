// Package regcluster implements bounded-iteration k-means (Lloyd's
// algorithm) over 2D positions, such as the registers of a placed circuit.
//
// The same algorithm is provided in three storage layouts so their
// performance can be compared:
//
//   - ObjectOriented: a slice of Cluster objects, each owning its center
//     and its Elements.
//   - DataOriented: one contiguous center array and one position array per
//     cluster id.
//   - Hybrid: contiguous centers, membership held by per-cluster objects.
//
// Every layout produces the same centers and membership for the same input.
// Nearest-center ties resolve to the lowest cluster id.
//
// Basic usage:
//
//	cfg := regcluster.DefaultConfig()
//	cfg.Layout = regcluster.LayoutHybrid
//	c, err := regcluster.New(initialCenters, cfg)
//	err = c.Run(positions, 10)
//	// c.Centers()[i] is the center of cluster i
//	// c.Membership()[i] holds the positions assigned to cluster i
//
// Random initial centers within a bounding box:
//
//	c, err := regcluster.NewRandom(regcluster.Bounds{Lower: lo, Upper: hi}, 25, cfg)
//
// # Nearest-center lookup
//
// By default (Index: "linear") every position is compared with all k
// centers. Set Config.Index to rebuild a spatial index over the centers at
// the start of every iteration:
//
//	cfg.Index = regcluster.IndexRTree    // R-tree, bulk-loaded
//	cfg.Index = regcluster.IndexKDTree   // KD-tree
//	cfg.Index = regcluster.IndexBallTree // ball tree
//
// # Parallelism
//
// Config.Workers > 1 splits the input into contiguous chunks classified by
// separate goroutines into worker-local buckets, merged in chunk order once
// all workers finish, and recomputes centers in parallel by cluster. The
// result is identical to a sequential run.
package regcluster
