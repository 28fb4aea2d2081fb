package sequences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	createdItems []wireSequence
	insertedRows []rowsInsertRequestItem
	rowPages     map[int64][]wireRow
}

func (f *fakeAPI) List(ctx context.Context, req listRequest) (listResponse, error) {
	return listResponse{}, nil
}

func (f *fakeAPI) Create(ctx context.Context, req createRequest) (createResponse, error) {
	f.createdItems = append(f.createdItems, req.Items...)
	out := make([]wireSequence, len(req.Items))
	for i, it := range req.Items {
		it.ID = int64(i + 1)
		out[i] = it
	}
	return createResponse{Items: out}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, req deleteRequest) error { return nil }

func (f *fakeAPI) InsertRows(ctx context.Context, req rowsInsertRequest) error {
	f.insertedRows = append(f.insertedRows, req.Items...)
	return nil
}

func (f *fakeAPI) ListRows(ctx context.Context, req rowsListRequest) (rowsListResponse, error) {
	item := req.Items[0]
	rows := f.rowPages[item.ID]
	return rowsListResponse{Items: []rowsListResponseItem{{itemRef: item.itemRef, Rows: rows}}}, nil
}

func TestClientCreateSequence(t *testing.T) {
	api := &fakeAPI{}
	c := &Client{api: api}

	created, err := c.Create(context.Background(), []NewSequence{{
		Name:    "compressor-readings",
		Columns: []Column{{ExternalID: "pressure", ValueType: "DOUBLE"}},
	}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, "pressure", created[0].Columns[0].ExternalID)
}

func TestClientInsertAndListRows(t *testing.T) {
	api := &fakeAPI{rowPages: map[int64][]wireRow{
		5: {{RowNumber: 0, Values: []interface{}{1.0}}, {RowNumber: 1, Values: []interface{}{2.0}}},
	}}
	c := &Client{api: api}

	err := c.InsertRows(context.Background(), Ref{ID: 5}, []string{"pressure"}, []Row{
		{RowNumber: 0, Values: []interface{}{1.0}},
	})
	require.NoError(t, err)
	require.Len(t, api.insertedRows, 1)

	rows, err := c.ListRows(context.Background(), Ref{ID: 5}, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[1].RowNumber)
}
