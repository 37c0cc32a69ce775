package regcluster

import "errors"

var (
	// ErrInvalidConfiguration is returned when a clusterer cannot be built or
	// run with the given parameters: zero clusters, inverted bounds, a
	// negative iteration count, or an unknown layout or index kind.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrWorkerFailed is returned when a worker goroutine panics during a
	// parallel phase. The run is aborted and the clusterer state must not be
	// trusted afterwards.
	ErrWorkerFailed = errors.New("worker failed")
)
