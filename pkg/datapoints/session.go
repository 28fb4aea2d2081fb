package datapoints

import (
	"context"
	"strconv"

	"github.com/industrialdata/platform-client-go/internal/transport"
	"github.com/industrialdata/platform-client-go/pkg/identifier"
	"github.com/industrialdata/platform-client-go/pkg/timeparse"
	"github.com/industrialdata/platform-client-go/platformerr"
)

// Client is the public entry point for the datapoints resource
// family, wiring the HTTP session (internal/transport) to the
// engineering core above. One Client wraps one *transport.Session and
// is safe for concurrent use by multiple goroutines.
type Client struct {
	api        apiClient
	maxWorkers int
}

// NewClient builds a Client over an already-configured session.
func NewClient(session *transport.Session) *Client {
	return &Client{api: newSessionClient(session), maxWorkers: session.MaxWorkers()}
}

// RetrieveRequest is the caller-facing shape of a read call. Start/End
// accept any of the time expressions pkg/timeparse.ToMillis understands
// (epoch ms, time.Time, "now", "N<unit>-ago"); Aggregates/Granularity
// are the top-level defaults applied to every identifier that doesn't
// carry its own per-series override via identifier.ID.WithAggregates.
type RetrieveRequest struct {
	IDs         []identifier.ID
	ExternalIDs []identifier.ID

	Start interface{}
	End   interface{}

	Aggregates           []identifier.Aggregate
	Granularity          string
	IncludeOutsidePoints bool
	Limit                int64
}

// RetrieveResult mirrors identifier.Normalize's IsSingle flag: a
// caller that passed exactly one bare identifier gets back one series
// via Single(); any other shape of request gets a list via List, in
// the canonical id-then-external_id order.
type RetrieveResult struct {
	List     DatapointsList
	IsSingle bool
}

// Single returns the one series in the result. It is only meaningful
// when IsSingle is true; callers that built a RetrieveRequest with more
// than one identifier should use List directly.
func (r RetrieveResult) Single() Datapoints {
	if len(r.List) == 0 {
		return Datapoints{}
	}
	return r.List[0]
}

// RetrieveDatapoints implements the full read path: normalize
// identifiers, resolve time expressions, build one Query per series,
// and fan out through FetchDatapoints.
func (c *Client) RetrieveDatapoints(ctx context.Context, req RetrieveRequest) (RetrieveResult, error) {
	norm, err := identifier.Normalize(req.IDs, req.ExternalIDs)
	if err != nil {
		return RetrieveResult{}, err
	}

	now := timeparse.NowMillis()
	startMs, err := timeparse.ToMillis(req.Start, now)
	if err != nil {
		return RetrieveResult{}, err
	}
	endMs, err := timeparse.ToMillis(req.End, now)
	if err != nil {
		return RetrieveResult{}, err
	}

	var granularityMs int64
	if req.Granularity != "" {
		granularityMs, err = timeparse.GranularityToMillis(req.Granularity)
		if err != nil {
			return RetrieveResult{}, err
		}
	}

	queries := make([]Query, 0, len(norm.Items))
	for _, item := range norm.Items {
		aggregates := req.Aggregates
		if item.HasAggregates {
			aggregates = item.Aggregates
		}
		if len(aggregates) > 0 && granularityMs <= 0 {
			return RetrieveResult{}, platformerr.InvalidGranularity(
				"aggregates were requested but no granularity was given")
		}
		queries = append(queries, Query{
			Identifier:           item,
			StartMs:              startMs,
			EndMs:                endMs,
			Aggregates:           aggregates,
			GranularityMs:        granularityMs,
			IncludeOutsidePoints: req.IncludeOutsidePoints,
			Limit:                req.Limit,
		})
	}

	list, err := FetchDatapoints(ctx, c.api, queries, c.maxWorkers)
	if err != nil {
		return RetrieveResult{}, err
	}

	return RetrieveResult{List: list, IsSingle: norm.IsSingle}, nil
}

// InsertDatapoints implements the write path: validate, split,
// bin-pack, and concurrently dispatch the given per-series records.
func (c *Client) InsertDatapoints(ctx context.Context, records []InsertRecord) error {
	return InsertDatapoints(ctx, c.api, records, c.maxWorkers)
}

// DeleteRange is one (series, [start,end)) range to delete.
type DeleteRange struct {
	Identifier identifier.ID
	Start      interface{}
	End        interface{}
}

// DeleteDatapoints removes the datapoints in the given ranges. Unlike
// insertion this endpoint is idempotent on retry by construction
// (deleting an already-deleted range is a no-op server side), so, as
// for retrieval, the underlying session call is issued with retries
// enabled.
func (c *Client) DeleteDatapoints(ctx context.Context, ranges []DeleteRange) error {
	if len(ranges) == 0 {
		return nil
	}

	now := timeparse.NowMillis()
	items := make([]deleteRequestItem, 0, len(ranges))
	for _, r := range ranges {
		var ref itemRef
		switch {
		case r.Identifier.IsID():
			id := r.Identifier.Int64()
			ref = itemRef{ID: &id}
		case r.Identifier.IsExternalID():
			ext := r.Identifier.String()
			ref = itemRef{ExternalID: &ext}
		default:
			return platformerr.InvalidIdentifier("delete range is missing an identifier")
		}

		startMs, err := timeparse.ToMillis(r.Start, now)
		if err != nil {
			return err
		}
		endMs, err := timeparse.ToMillis(r.End, now)
		if err != nil {
			return err
		}
		items = append(items, deleteRequestItem{
			itemRef:        ref,
			InclusiveBegin: startMs,
			ExclusiveEnd:   endMs,
		})
	}

	return c.api.DeleteDatapoints(ctx, items)
}

// LatestDatapoints fetches the single most-recent datapoint (strictly
// before the optional "before" time expression, if given) for each
// identifier.
func (c *Client) LatestDatapoints(ctx context.Context, ids []identifier.ID, externalIDs []identifier.ID, before interface{}) (RetrieveResult, error) {
	norm, err := identifier.Normalize(ids, externalIDs)
	if err != nil {
		return RetrieveResult{}, err
	}

	var beforeStr string
	if before != nil {
		now := timeparse.NowMillis()
		ms, err := timeparse.ToMillis(before, now)
		if err != nil {
			return RetrieveResult{}, err
		}
		beforeStr = strconv.FormatInt(ms, 10)
	}

	items := make([]latestRequestItem, len(norm.Items))
	for i, it := range norm.Items {
		items[i] = latestRequestItem{itemRef: refFromCanonical(it), Before: beforeStr}
	}

	results, err := c.api.LatestDatapoints(ctx, items)
	if err != nil {
		return RetrieveResult{}, err
	}

	list := make(DatapointsList, 0, len(results))
	for _, r := range results {
		dp := Datapoints{ID: r.ID, ExternalID: r.ExternalID}
		for _, wd := range r.Datapoints {
			dp.Points = append(dp.Points, toDatapoint(wd))
		}
		list = append(list, dp)
	}

	return RetrieveResult{List: list, IsSingle: norm.IsSingle}, nil
}
