package datapoints

import (
	"context"
	"strconv"
)

// fetchSeriesPage fetches one series over one window, following
// server paging to completion, respecting a caller limit.
//
// Termination: each iteration either returns fewer points than
// requested (window drained) or strictly advances next_start by at
// least 1ms, bounded above by w.End — so the loop always terminates.
func fetchSeriesPage(ctx context.Context, c apiClient, q Query, w Window) (Datapoints, error) {
	perRequestCap := RawReqLimit
	aggregate := len(q.Aggregates) > 0
	if aggregate {
		perRequestCap = AggReqLimit
	}

	rem := int64(-1) // -1 means "no caller limit" (unbounded)
	if q.Limit > 0 {
		rem = q.Limit
	}

	acc := Datapoints{ID: q.Identifier.ID, ExternalID: q.Identifier.ExternalID}

	nextStart := w.Start
	for nextStart < w.End {
		limit := int64(perRequestCap)
		if rem >= 0 && rem < limit {
			limit = rem
		}
		if limit <= 0 {
			break
		}

		item := listRequestItem{
			itemRef:              refFromCanonical(q.Identifier),
			Aggregates:           q.Aggregates,
			Start:                nextStart,
			End:                  w.End,
			Limit:                limit,
			IncludeOutsidePoints: q.IncludeOutsidePoints,
		}
		if q.GranularityMs > 0 {
			item.Granularity = granularityString(q.GranularityMs)
		}

		results, err := c.ListDatapoints(ctx, []listRequestItem{item})
		if err != nil {
			return Datapoints{}, err
		}
		if len(results) == 0 || len(results[0].Datapoints) == 0 {
			break
		}

		page := results[0].Datapoints
		for _, wd := range page {
			acc.Points = append(acc.Points, toDatapoint(wd))
		}

		returned := int64(len(page))
		if returned < limit {
			// Window drained: server had fewer points than we asked for.
			break
		}

		lastTs := page[len(page)-1].Timestamp
		step := int64(1)
		if q.GranularityMs > 0 {
			step = q.GranularityMs
		}
		nextStart = lastTs + step

		if rem >= 0 {
			rem -= returned
			if rem <= 0 {
				break
			}
		}
	}

	return acc, nil
}

// granularityString renders a granularity already normalized to
// milliseconds back into the wire's "<n><unit>" shape, since the server
// expects the original string form. It picks the largest of h, m and s
// that divides ms evenly, and falls back to "ms" otherwise.
func granularityString(ms int64) string {
	switch {
	case ms%3600000 == 0:
		return strconv.FormatInt(ms/3600000, 10) + "h"
	case ms%60000 == 0:
		return strconv.FormatInt(ms/60000, 10) + "m"
	case ms%1000 == 0:
		return strconv.FormatInt(ms/1000, 10) + "s"
	default:
		return strconv.FormatInt(ms, 10) + "ms"
	}
}
