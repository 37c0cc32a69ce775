package regcluster

// updateCenter returns the mean of members, or prev when members is empty.
// The boolean reports whether the cluster was empty.
func updateCenter(members []Point, prev Point) (Point, bool) {
	if c, ok := Mean(members); ok {
		return c, false
	}
	return prev, true
}

// recenterAll runs recenter for every cluster id, spread over numWorkers
// goroutines, and returns the ids for which recenter reported an empty
// cluster. recenter must only write state owned by its id.
func recenterAll(k, numWorkers int, recenter func(id int) (empty bool)) ([]int, error) {
	empty := make([]bool, k)
	err := forEachCluster(k, numWorkers, func(id int) {
		empty[id] = recenter(id)
	})
	if err != nil {
		return nil, err
	}

	var ids []int
	for id, e := range empty {
		if e {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// updateCenters recomputes centers in place, where centers[id] is the
// center of the cluster whose members are membership(id).
func updateCenters(centers []Point, membership func(id int) []Point, numWorkers int) ([]int, error) {
	return recenterAll(len(centers), numWorkers, func(id int) bool {
		var empty bool
		centers[id], empty = updateCenter(membership(id), centers[id])
		return empty
	})
}
