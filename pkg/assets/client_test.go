package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	pages   [][]wireAsset
	created []wireAsset
}

func (f *fakeAPI) List(ctx context.Context, req listRequest) (listResponse, error) {
	idx := 0
	if req.Cursor != "" {
		idx = int(req.Cursor[0] - 'a')
	}
	if idx >= len(f.pages) {
		return listResponse{}, nil
	}
	next := ""
	if idx+1 < len(f.pages) {
		next = string(rune('a' + idx + 1))
	}
	return listResponse{Items: f.pages[idx], NextCursor: next}, nil
}

func (f *fakeAPI) Create(ctx context.Context, req createRequest) (createResponse, error) {
	f.created = append(f.created, req.Items...)
	out := make([]wireAsset, len(req.Items))
	for i, it := range req.Items {
		it.ID = int64(i + 1)
		out[i] = it
	}
	return createResponse{Items: out}, nil
}

func (f *fakeAPI) Update(ctx context.Context, req updateRequest) error { return nil }
func (f *fakeAPI) Delete(ctx context.Context, req deleteRequest) error { return nil }

func TestClientListPagesThroughCursor(t *testing.T) {
	api := &fakeAPI{pages: [][]wireAsset{
		{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
		{{ID: 3, Name: "c"}},
	}}
	c := &Client{api: api, maxWorkers: 1}

	it := c.List(Filter{}, 2)
	var got []string
	for {
		a, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, a.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestClientCreate(t *testing.T) {
	api := &fakeAPI{}
	c := &Client{api: api, maxWorkers: 1}

	created, err := c.Create(context.Background(), []NewAsset{{Name: "pump-1"}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, "pump-1", created[0].Name)
}
