package datapoints

import (
	"context"
	"fmt"

	"github.com/industrialdata/platform-client-go/internal/pool"
	"github.com/industrialdata/platform-client-go/platformerr"
)

// windowJob is one unit of work submitted to the pool in step C: fetch
// one window for one query.
type windowJob struct {
	queryIndex int
	query      Query
	window     Window
}

type windowResult struct {
	queryIndex int
	key        SeriesKey
	dp         Datapoints
}

// FetchDatapoints is the top-level read operation. queries is the
// already-canonicalized, ordered list of per-series
// queries (identifier.Normalize's output mapped 1:1 into Query); the
// returned DatapointsList preserves that same order.
//
// Cancellation: ctx firing aborts in-flight window fetches and fails
// the whole call with platformerr.Cancelled-shaped errors; no partial
// result is returned.
func FetchDatapoints(ctx context.Context, c apiClient, queries []Query, maxWorkers int) (DatapointsList, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	p := pool.NewPool(&pool.Config{MaxWorkers: maxWorkers, QueueDepth: 1_000_000})

	// Step A: per-query first-timestamp probe, then step B: window
	// expansion. Both are cheap/local-ish relative to the main fetch,
	// so they run sequentially per query; the expensive part (the
	// windows themselves) is what gets parallelized in step C.
	var jobs []interface{}
	for qi, q := range queries {
		adjusted, err := probeDataStart(ctx, c, q)
		if err != nil {
			return nil, err
		}

		var windows []Window
		if q.Limit > 0 {
			// A caller-supplied limit suppresses splitting entirely —
			// serve the whole query as one window.
			windows = []Window{{Start: adjusted.StartMs, End: adjusted.EndMs}}
		} else {
			windows = planWindows(adjusted.StartMs, adjusted.EndMs, adjusted.GranularityMs, maxWorkers, len(adjusted.Aggregates) > 0)
		}

		for _, w := range windows {
			jobs = append(jobs, windowJob{queryIndex: qi, query: adjusted, window: w})
		}
	}

	if len(jobs) == 0 {
		return emptyResultsInOrder(queries), nil
	}

	fn := func(ctx context.Context, payload interface{}) (interface{}, error) {
		j := payload.(windowJob)
		dp, err := fetchSeriesPage(ctx, c, j.query, j.window)
		if err != nil {
			return nil, err
		}
		return windowResult{queryIndex: j.queryIndex, key: keyFromCanonical(j.query.Identifier), dp: dp}, nil
	}

	results, errs, poolErr := p.RunJobs(ctx, jobs, fn)
	if poolErr != nil {
		if ctx.Err() != nil {
			return nil, platformerr.Cancelled()
		}
		return nil, platformerr.Wrap(platformerr.KindTransport, poolErr, "parallel datapoint fetch failed")
	}
	if len(errs) > 0 {
		// A partial time range would silently deceive downstream code,
		// so any window failure fails the whole read.
		return nil, errs[0]
	}

	// Merge, grouped by series identity, in the canonical query order
	// so output order matches identifier.Normalize's.
	acc := make(map[SeriesKey][]Datapoint, len(queries))
	outsideRequested := make(map[SeriesKey]bool, len(queries))
	for _, q := range queries {
		outsideRequested[keyFromCanonical(q.Identifier)] = q.IncludeOutsidePoints
	}

	for _, raw := range results {
		wr := raw.(windowResult)
		acc[wr.key] = spliceInto(acc[wr.key], wr.dp.Points)
	}

	out := make(DatapointsList, 0, len(queries))
	seen := make(map[SeriesKey]bool, len(queries))
	for _, q := range queries {
		key := keyFromCanonical(q.Identifier)
		if seen[key] {
			continue
		}
		seen[key] = true

		points := acc[key]
		if outsideRequested[key] {
			points = dedupOutsidePoints(points)
		}

		out = append(out, Datapoints{ID: q.Identifier.ID, ExternalID: q.Identifier.ExternalID, Points: points})
	}

	return out, nil
}

// probeDataStart issues a size-1 probe over [q.Start, q.End) to learn
// the true earliest timestamp, so window planning splits the actual
// data range rather than over-splitting an empty prefix. The probe
// read is off-budget against any caller limit: it runs regardless of
// q.Limit and only adjusts the range the real fetch plans against.
func probeDataStart(ctx context.Context, c apiClient, q Query) (Query, error) {
	item := listRequestItem{
		itemRef: refFromCanonical(q.Identifier),
		Start:   q.StartMs,
		End:     q.EndMs,
		Limit:   1,
	}
	if len(q.Aggregates) > 0 {
		item.Aggregates = q.Aggregates
		if q.GranularityMs <= 0 {
			return Query{}, fmt.Errorf("query for %s has aggregates but no granularity", describeIdentifier(q))
		}
		item.Granularity = granularityString(q.GranularityMs)
	}

	results, err := c.ListDatapoints(ctx, []listRequestItem{item})
	if err != nil {
		return Query{}, err
	}
	if len(results) == 0 || len(results[0].Datapoints) == 0 {
		return q, nil
	}

	t0 := results[0].Datapoints[0].Timestamp
	if t0 > q.StartMs {
		q.StartMs = t0
	}
	return q, nil
}

func describeIdentifier(q Query) string {
	if q.Identifier.ID != nil {
		return fmt.Sprintf("id=%d", *q.Identifier.ID)
	}
	if q.Identifier.ExternalID != nil {
		return fmt.Sprintf("external_id=%s", *q.Identifier.ExternalID)
	}
	return "<unknown>"
}

func emptyResultsInOrder(queries []Query) DatapointsList {
	out := make(DatapointsList, 0, len(queries))
	seen := make(map[SeriesKey]bool, len(queries))
	for _, q := range queries {
		key := keyFromCanonical(q.Identifier)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Datapoints{ID: q.Identifier.ID, ExternalID: q.Identifier.ExternalID})
	}
	return out
}
