package regcluster

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// chunk is a contiguous half-open range [start, end) of input positions.
type chunk struct {
	start, end int
}

// chunkBounds splits n items into at most numWorkers contiguous chunks of
// equal size (the last may be shorter). Empty input yields no chunks.
func chunkBounds(n, numWorkers int) []chunk {
	if n == 0 {
		return nil
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	perWorker := (n + numWorkers - 1) / numWorkers

	chunks := make([]chunk, 0, numWorkers)
	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		if start >= n {
			break
		}
		end := min(start+perWorker, n)
		chunks = append(chunks, chunk{start: start, end: end})
	}
	return chunks
}

// accumulate classifies items 0..n-1 into k per-cluster buckets.
//
// classify returns the cluster id and the value to store for item i. With
// numWorkers <= 1 everything runs on the caller's goroutine. Otherwise each
// worker fills its own local buckets for one contiguous chunk, reading only
// state that is immutable for the duration of the call. Once every worker
// is done the local buckets are appended in chunk order, so the merged
// buckets are identical, element for element, to a sequential pass.
func accumulate[T any](n, k, numWorkers int, classify func(i int) (int, T)) ([][]T, error) {
	chunks := chunkBounds(n, numWorkers)

	if len(chunks) <= 1 {
		buckets := make([][]T, k)
		for i := 0; i < n; i++ {
			id, v := classify(i)
			buckets[id] = append(buckets[id], v)
		}
		return buckets, nil
	}

	local := make([][][]T, len(chunks))
	var g errgroup.Group
	for w, c := range chunks {
		w, c := w, c
		g.Go(func() (err error) {
			defer recoverWorker(w, &err)
			buckets := make([][]T, k)
			for i := c.start; i < c.end; i++ {
				id, v := classify(i)
				buckets[id] = append(buckets[id], v)
			}
			local[w] = buckets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([][]T, k)
	for id := range merged {
		size := 0
		for w := range local {
			size += len(local[w][id])
		}
		if size == 0 {
			continue
		}
		merged[id] = make([]T, 0, size)
		for w := range local {
			merged[id] = append(merged[id], local[w][id]...)
		}
	}
	return merged, nil
}

// forEachCluster calls fn for every cluster id in [0, k). With
// numWorkers > 1 the ids are spread over at most numWorkers goroutines;
// fn must only touch state belonging to its own id.
func forEachCluster(k, numWorkers int, fn func(id int)) error {
	if numWorkers <= 1 || k <= 1 {
		for id := 0; id < k; id++ {
			fn(id)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for id := 0; id < k; id++ {
		id := id
		g.Go(func() (err error) {
			defer recoverWorker(id, &err)
			fn(id)
			return nil
		})
	}
	return g.Wait()
}

// recoverWorker turns a worker panic into ErrWorkerFailed so the whole run
// aborts instead of silently dropping the worker's share.
func recoverWorker(worker int, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("regcluster: worker %d panicked: %v: %w", worker, r, ErrWorkerFailed)
	}
}
