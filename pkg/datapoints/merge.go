package datapoints

import "sort"

// spliceInto merges a newly-arrived window result R into the
// accumulator for one series, preserving strict timestamp
// order. If acc is empty, R becomes the accumulator outright.
// Otherwise the least index i such that acc[i].Timestamp > R[0].Timestamp
// is located and R's points are inserted there — this degenerates to a
// simple append for in-order arrivals and correctly splices
// out-of-order ones (windows can complete in any order since they run
// on a worker pool).
func spliceInto(acc []Datapoint, r []Datapoint) []Datapoint {
	if len(r) == 0 {
		return acc
	}
	if len(acc) == 0 {
		return append([]Datapoint(nil), r...)
	}

	i := sort.Search(len(acc), func(i int) bool {
		return acc[i].TimestampMs > r[0].TimestampMs
	})

	merged := make([]Datapoint, 0, len(acc)+len(r))
	merged = append(merged, acc[:i]...)
	merged = append(merged, r...)
	merged = append(merged, acc[i:]...)
	return merged
}

// dedupOutsidePoints removes any point whose timestamp equals a later
// point's timestamp. Adjacent windows can each carry their own copy of
// the outside point at a shared seam when include-outside-points is
// requested; after splicing, those duplicates sit next to each other
// in ascending order, so a single forward scan comparing each point to
// its successor finds every one.
func dedupOutsidePoints(points []Datapoint) []Datapoint {
	if len(points) < 2 {
		return points
	}
	out := make([]Datapoint, 0, len(points))
	for i, p := range points {
		if i+1 < len(points) && points[i+1].TimestampMs == p.TimestampMs {
			continue
		}
		out = append(out, p)
	}
	return out
}
