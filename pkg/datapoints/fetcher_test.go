package datapoints

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/industrialdata/platform-client-go/pkg/identifier"
)

// fakeAPI is an in-memory apiClient backed by a fixed set of points per
// series, used to exercise the planner/pager/fetcher without a real
// HTTP server.
type fakeAPI struct {
	mu       sync.Mutex
	series   map[SeriesKey][]wireDatapoint
	pageSize int // 0 means "serve everything in one response"
	calls    int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{series: make(map[SeriesKey][]wireDatapoint)}
}

func (f *fakeAPI) put(key SeriesKey, points []wireDatapoint) {
	sorted := append([]wireDatapoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })
	f.series[key] = sorted
}

func keyFromRef(ref itemRef) SeriesKey {
	if ref.ID != nil {
		return SeriesKey{ID: *ref.ID, byID: true}
	}
	return SeriesKey{ExternalID: *ref.ExternalID}
}

// ListDatapoints serves points already stored in ascending timestamp
// order, as the real server does. When an item requests outside
// points, the single nearest point below Start and the single nearest
// point at-or-after End are appended around the in-range page — the
// same thing a real server does at a window's edges, which is what
// lets adjacent windows each report the shared boundary point and
// requires the caller to dedup it back out.
func (f *fakeAPI) ListDatapoints(ctx context.Context, items []listRequestItem) ([]listResponseItem, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	out := make([]listResponseItem, 0, len(items))
	for _, item := range items {
		key := keyFromRef(item.itemRef)
		all := f.series[key]

		var before *wireDatapoint
		var page []wireDatapoint
		var after *wireDatapoint
		for i, p := range all {
			switch {
			case p.Timestamp < item.Start:
				cp := all[i]
				before = &cp
			case p.Timestamp < item.End:
				page = append(page, p)
			case after == nil:
				cp := all[i]
				after = &cp
			}
		}

		limit := item.Limit
		if limit <= 0 || limit > int64(len(page)) {
			limit = int64(len(page))
		}
		if f.pageSize > 0 && int64(f.pageSize) < limit {
			limit = int64(f.pageSize)
		}
		page = page[:limit]

		if item.IncludeOutsidePoints {
			if before != nil {
				page = append([]wireDatapoint{*before}, page...)
			}
			if after != nil {
				page = append(page, *after)
			}
		}

		out = append(out, listResponseItem{itemRef: item.itemRef, Datapoints: page})
	}
	return out, nil
}

func (f *fakeAPI) InsertDatapoints(ctx context.Context, items []insertRequestItem) error { return nil }
func (f *fakeAPI) DeleteDatapoints(ctx context.Context, items []deleteRequestItem) error { return nil }
func (f *fakeAPI) LatestDatapoints(ctx context.Context, items []latestRequestItem) ([]listResponseItem, error) {
	return nil, nil
}

func rawPoint(ts int64, v float64) wireDatapoint {
	return wireDatapoint{Timestamp: ts, Value: &wireValue{Num: &v}}
}

func TestFetchDatapointsBasicRawRead(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := newFakeAPI()
	key := SeriesKey{ID: 1, byID: true}
	api.put(key, []wireDatapoint{rawPoint(1000, 1), rawPoint(2000, 2), rawPoint(3000, 3)})

	id := int64(1)
	queries := []Query{{Identifier: identifier.Canonical{ID: &id}, StartMs: 0, EndMs: 10000}}

	list, err := FetchDatapoints(context.Background(), api, queries, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int64{1000, 2000, 3000}, timestampsOf(list[0].Points))
}

func TestFetchDatapointsPagedRawReadHitsServerCap(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Shrink the real per-request cap so the fake can return exactly
	// that many points and force the pager's "returned == limit, page
	// again" branch, rather than a fake-only cap that never agrees
	// with what the pager thinks it asked for.
	origCap := RawReqLimit
	RawReqLimit = 2
	defer func() { RawReqLimit = origCap }()

	api := newFakeAPI()
	key := SeriesKey{ID: 1, byID: true}
	api.put(key, []wireDatapoint{rawPoint(1000, 1), rawPoint(2000, 2), rawPoint(3000, 3)})

	id := int64(1)
	queries := []Query{{Identifier: identifier.Canonical{ID: &id}, StartMs: 0, EndMs: 10000}}

	list, err := FetchDatapoints(context.Background(), api, queries, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int64{1000, 2000, 3000}, timestampsOf(list[0].Points))
	assert.Equal(t, 3, api.calls, "expected the start-probe plus one full page at the cap plus one partial page")
}

func TestFetchDatapointsAggregateParallelWindows(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := newFakeAPI()
	key := SeriesKey{ID: 1, byID: true}

	hourMs := int64(3600_000)
	var points []wireDatapoint
	for h := int64(0); h < 24; h++ {
		avg := float64(h)
		points = append(points, wireDatapoint{Timestamp: h * hourMs, Average: &avg})
	}
	api.put(key, points)

	id := int64(1)
	queries := []Query{{
		Identifier:    identifier.Canonical{ID: &id},
		StartMs:       0,
		EndMs:         24 * hourMs,
		Aggregates:    []identifier.Aggregate{identifier.Average},
		GranularityMs: hourMs,
	}}

	list, err := FetchDatapoints(context.Background(), api, queries, 8)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Points, 24)
	assert.Equal(t, int64(0), list[0].Points[0].TimestampMs)
	assert.Equal(t, int64(23*hourMs), list[0].Points[23].TimestampMs)
}

func TestFetchDatapointsMixedIdentifiersPreserveOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := newFakeAPI()
	idKey := SeriesKey{ID: 7, byID: true}
	extKey := SeriesKey{ExternalID: "sensor-a"}
	api.put(idKey, []wireDatapoint{rawPoint(100, 1)})
	api.put(extKey, []wireDatapoint{rawPoint(200, 2)})

	idVal := int64(7)
	extVal := "sensor-a"
	norm, err := identifier.Normalize(
		[]identifier.ID{identifier.ByID(idVal)},
		[]identifier.ID{identifier.ByExternalID(extVal)},
	)
	require.NoError(t, err)
	assert.False(t, norm.IsSingle)

	queries := make([]Query, len(norm.Items))
	for i, item := range norm.Items {
		queries[i] = Query{Identifier: item, StartMs: 0, EndMs: 1000}
	}

	list, err := FetchDatapoints(context.Background(), api, queries, 4)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotNil(t, list[0].ID)
	assert.Equal(t, idVal, *list[0].ID)
	assert.NotNil(t, list[1].ExternalID)
	assert.Equal(t, extVal, *list[1].ExternalID)
}

func TestFetchDatapointsMultipleWindowsSpliceInStrictOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Shrink the raw window budget so a modest range genuinely splits
	// into several windows, instead of the real budget (RawReqLimit*500)
	// always collapsing realistic fixtures to one window.
	origCap := RawReqLimit
	RawReqLimit = 1
	defer func() { RawReqLimit = origCap }()

	api := newFakeAPI()
	key := SeriesKey{ID: 1, byID: true}
	// The start probe moves the range start to 100, so the planner emits
	// four windows of 575 over [100,2400) with one point in each. The
	// windows complete in pool order, so the accumulator has to splice
	// rather than append in arrival order.
	api.put(key, []wireDatapoint{
		rawPoint(1900, 4),
		rawPoint(1300, 3),
		rawPoint(700, 2),
		rawPoint(100, 1),
	})

	id := int64(1)
	queries := []Query{{Identifier: identifier.Canonical{ID: &id}, StartMs: 0, EndMs: 2400}}

	list, err := FetchDatapoints(context.Background(), api, queries, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int64{100, 700, 1300, 1900}, timestampsOf(list[0].Points))
	assert.GreaterOrEqual(t, api.calls, 5, "expected the start probe plus one fetch per window")
}

func TestFetchDatapointsDedupsOutsidePointsAtWindowSeam(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Shrink the raw window budget so [0,10000) genuinely splits into
	// two windows meeting at the seam (5000), and rely on the fake
	// honoring IncludeOutsidePoints the way a real server does: each
	// window forwards the query's IncludeOutsidePoints flag independently
	// (fetchSeriesPage passes q.IncludeOutsidePoints per window, not just
	// at the overall query boundary), so the point sitting on the seam
	// comes back once as window 0's trailing outside point and again as
	// window 1's leading in-range point — exactly the duplicate
	// dedupOutsidePoints exists to remove.
	origCap := RawReqLimit
	RawReqLimit = 10
	defer func() { RawReqLimit = origCap }()

	api := newFakeAPI()
	key := SeriesKey{ID: 1, byID: true}
	api.put(key, []wireDatapoint{rawPoint(0, 1), rawPoint(5000, 2)})

	id := int64(1)
	queries := []Query{{
		Identifier:           identifier.Canonical{ID: &id},
		StartMs:              0,
		EndMs:                10000,
		IncludeOutsidePoints: true,
	}}

	list, err := FetchDatapoints(context.Background(), api, queries, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int64{0, 5000}, timestampsOf(list[0].Points))
}

func TestDedupOutsidePointsRemovesSeamDuplicate(t *testing.T) {
	deduped := dedupOutsidePoints([]Datapoint{
		{TimestampMs: 500, Value: 1.0},
		{TimestampMs: 1000, Value: 2.0},
		{TimestampMs: 1000, Value: 2.0},
		{TimestampMs: 1500, Value: 3.0},
	})
	assert.Equal(t, []int64{500, 1000, 1500}, timestampsOf(deduped))
}

func timestampsOf(points []Datapoint) []int64 {
	out := make([]int64, len(points))
	for i, p := range points {
		out[i] = p.TimestampMs
	}
	return out
}
