package sequences

import (
	"context"

	"github.com/industrialdata/platform-client-go/internal/resource"
	"github.com/industrialdata/platform-client-go/internal/transport"
)

type apiClient interface {
	List(ctx context.Context, req listRequest) (listResponse, error)
	Create(ctx context.Context, req createRequest) (createResponse, error)
	Delete(ctx context.Context, req deleteRequest) error
	InsertRows(ctx context.Context, req rowsInsertRequest) error
	ListRows(ctx context.Context, req rowsListRequest) (rowsListResponse, error)
}

type sessionClient struct{ session *transport.Session }

func newSessionClient(s *transport.Session) *sessionClient { return &sessionClient{session: s} }

func (c *sessionClient) List(ctx context.Context, req listRequest) (listResponse, error) {
	var resp listResponse
	err := c.session.Do(ctx, "/sequences/list", req, &resp, true)
	return resp, err
}

func (c *sessionClient) Create(ctx context.Context, req createRequest) (createResponse, error) {
	var resp createResponse
	err := c.session.Do(ctx, "/sequences", req, &resp, false)
	return resp, err
}

func (c *sessionClient) Delete(ctx context.Context, req deleteRequest) error {
	return c.session.Do(ctx, "/sequences/delete", req, nil, false)
}

func (c *sessionClient) InsertRows(ctx context.Context, req rowsInsertRequest) error {
	return c.session.Do(ctx, "/sequences/data", req, nil, false)
}

func (c *sessionClient) ListRows(ctx context.Context, req rowsListRequest) (rowsListResponse, error) {
	var resp rowsListResponse
	err := c.session.Do(ctx, "/sequences/data/list", req, &resp, true)
	return resp, err
}

// Client is the public entry point for the sequence resource.
type Client struct{ api apiClient }

func NewClient(session *transport.Session) *Client {
	return &Client{api: newSessionClient(session)}
}

func (c *Client) List(filter Filter, pageSize int) *resource.Iterator[Sequence] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[Sequence], error) {
		resp, err := c.api.List(ctx, listRequest{Filter: fromFilter(filter), Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[Sequence]{}, err
		}
		items := make([]Sequence, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = toSequence(w)
		}
		return resource.Page[Sequence]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

func (c *Client) Create(ctx context.Context, newSeqs []NewSequence) ([]Sequence, error) {
	items := make([]wireSequence, len(newSeqs))
	for i, s := range newSeqs {
		items[i] = fromNewSequence(s)
	}
	resp, err := c.api.Create(ctx, createRequest{Items: items})
	if err != nil {
		return nil, err
	}
	out := make([]Sequence, len(resp.Items))
	for i, w := range resp.Items {
		out[i] = toSequence(w)
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, refs []Ref) error {
	items := make([]itemRef, len(refs))
	for i, r := range refs {
		items[i] = itemRef{ID: r.ID, ExternalID: r.ExternalID}
	}
	return c.api.Delete(ctx, deleteRequest{Items: items})
}

// InsertRows inserts rows into one sequence, in the given column order.
func (c *Client) InsertRows(ctx context.Context, ref Ref, columns []string, rows []Row) error {
	wireRows := make([]wireRow, len(rows))
	for i, r := range rows {
		wireRows[i] = wireRow{RowNumber: r.RowNumber, Values: r.Values}
	}
	item := rowsInsertRequestItem{
		itemRef: itemRef{ID: ref.ID, ExternalID: ref.ExternalID},
		Columns: columns,
		Rows:    wireRows,
	}
	return c.api.InsertRows(ctx, rowsInsertRequest{Items: []rowsInsertRequestItem{item}})
}

// ListRows returns every row of one sequence in [start, end), across
// whatever server-side paging the response demands.
func (c *Client) ListRows(ctx context.Context, ref Ref, start, end int64) ([]Row, error) {
	cursor := ""
	var out []Row
	for {
		item := rowsListRequestItem{
			itemRef: itemRef{ID: ref.ID, ExternalID: ref.ExternalID},
			Start:   start, End: end, Cursor: cursor,
		}
		resp, err := c.api.ListRows(ctx, rowsListRequest{Items: []rowsListRequestItem{item}})
		if err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		page := resp.Items[0]
		for _, wr := range page.Rows {
			out = append(out, Row{RowNumber: wr.RowNumber, Values: wr.Values})
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return out, nil
}
