package datapoints

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/industrialdata/platform-client-go/pkg/identifier"
)

// recordingSessionAPI wraps fakeAPI to capture Delete/Latest calls the
// plain fakeAPI discards, so session-level tests can assert on what the
// Client actually sent to the wire.
type recordingSessionAPI struct {
	*fakeAPI
	deleted []deleteRequestItem
	latest  []latestRequestItem
}

func (r *recordingSessionAPI) DeleteDatapoints(ctx context.Context, items []deleteRequestItem) error {
	r.deleted = append(r.deleted, items...)
	return nil
}

func (r *recordingSessionAPI) LatestDatapoints(ctx context.Context, items []latestRequestItem) ([]listResponseItem, error) {
	r.latest = append(r.latest, items...)
	out := make([]listResponseItem, len(items))
	for i, it := range items {
		out[i] = listResponseItem{itemRef: it.itemRef, Datapoints: []wireDatapoint{rawPoint(9000, 42)}}
	}
	return out, nil
}

func TestClientRetrieveDatapointsSingleIdentifierIsSingle(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	api.put(SeriesKey{ID: 1, byID: true}, []wireDatapoint{rawPoint(1000, 1), rawPoint(2000, 2)})

	c := &Client{api: api, maxWorkers: 4}
	res, err := c.RetrieveDatapoints(context.Background(), RetrieveRequest{
		IDs:   []identifier.ID{identifier.ByID(1)},
		Start: int64(0),
		End:   int64(3000),
	})
	require.NoError(t, err)
	assert.True(t, res.IsSingle)
	assert.Equal(t, []int64{1000, 2000}, timestampsOf(res.Single().Points))
}

func TestClientRetrieveDatapointsRejectsAggregatesWithoutGranularity(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	_, err := c.RetrieveDatapoints(context.Background(), RetrieveRequest{
		IDs:        []identifier.ID{identifier.ByID(1)},
		Start:      int64(0),
		End:        int64(1000),
		Aggregates: []identifier.Aggregate{identifier.Average},
	})
	require.Error(t, err)
}

func TestClientInsertDatapointsDelegatesToPackageFunc(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	id := int64(1)
	err := c.InsertDatapoints(context.Background(), []InsertRecord{{
		Identifier: identifier.Canonical{ID: &id},
		Points:     []Datapoint{{TimestampMs: 40 * 24 * 3600 * 1000, Value: 1.5}},
	}})
	require.NoError(t, err)
}

func TestClientDeleteDatapointsBuildsRangeFromEitherIdentifierKind(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	err := c.DeleteDatapoints(context.Background(), []DeleteRange{
		{Identifier: identifier.ByID(7), Start: int64(1000), End: int64(2000)},
		{Identifier: identifier.ByExternalID("sensor-a"), Start: int64(0), End: int64(500)},
	})
	require.NoError(t, err)
	require.Len(t, api.deleted, 2)
	assert.Equal(t, int64(7), *api.deleted[0].ID)
	assert.Equal(t, "sensor-a", *api.deleted[1].ExternalID)
}

func TestClientDeleteDatapointsNoRangesIsNoop(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	err := c.DeleteDatapoints(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, api.deleted)
}

func TestClientDeleteDatapointsRejectsMissingIdentifier(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	err := c.DeleteDatapoints(context.Background(), []DeleteRange{{Start: int64(0), End: int64(1)}})
	require.Error(t, err)
}

func TestClientLatestDatapointsReturnsOnePointPerIdentifier(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	res, err := c.LatestDatapoints(context.Background(),
		[]identifier.ID{identifier.ByID(1), identifier.ByID(2)}, nil, nil)
	require.NoError(t, err)
	require.Len(t, api.latest, 2)
	require.Len(t, res.List, 2)
	assert.False(t, res.IsSingle)
	assert.Equal(t, int64(9000), res.List[0].Points[0].TimestampMs)
}

func TestClientLatestDatapointsResolvesBeforeExpression(t *testing.T) {
	api := &recordingSessionAPI{fakeAPI: newFakeAPI()}
	c := &Client{api: api, maxWorkers: 4}

	_, err := c.LatestDatapoints(context.Background(), []identifier.ID{identifier.ByID(1)}, nil, int64(5000))
	require.NoError(t, err)
	require.Len(t, api.latest, 1)
	assert.Equal(t, "5000", api.latest[0].Before)
}
