package assets

import (
	"context"

	"github.com/industrialdata/platform-client-go/internal/resource"
	"github.com/industrialdata/platform-client-go/internal/transport"
)

type apiClient interface {
	List(ctx context.Context, req listRequest) (listResponse, error)
	Create(ctx context.Context, req createRequest) (createResponse, error)
	Update(ctx context.Context, req updateRequest) error
	Delete(ctx context.Context, req deleteRequest) error
}

type sessionClient struct{ session *transport.Session }

func newSessionClient(s *transport.Session) *sessionClient { return &sessionClient{session: s} }

func (c *sessionClient) List(ctx context.Context, req listRequest) (listResponse, error) {
	var resp listResponse
	err := c.session.Do(ctx, "/assets/list", req, &resp, true)
	return resp, err
}

func (c *sessionClient) Create(ctx context.Context, req createRequest) (createResponse, error) {
	var resp createResponse
	err := c.session.Do(ctx, "/assets", req, &resp, false)
	return resp, err
}

func (c *sessionClient) Update(ctx context.Context, req updateRequest) error {
	return c.session.Do(ctx, "/assets/update", req, nil, false)
}

func (c *sessionClient) Delete(ctx context.Context, req deleteRequest) error {
	return c.session.Do(ctx, "/assets/delete", req, nil, false)
}

// Client is the public entry point for the asset hierarchy resource.
type Client struct {
	api        apiClient
	maxWorkers int
}

func NewClient(session *transport.Session) *Client {
	return &Client{api: newSessionClient(session), maxWorkers: session.MaxWorkers()}
}

// List returns an iterator over every asset matching filter, paging
// transparently via internal/resource.
func (c *Client) List(filter Filter, pageSize int) *resource.Iterator[Asset] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[Asset], error) {
		resp, err := c.api.List(ctx, listRequest{Filter: fromFilter(filter), Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[Asset]{}, err
		}
		items := make([]Asset, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = toAsset(w)
		}
		return resource.Page[Asset]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

// Create creates the given assets in one request.
func (c *Client) Create(ctx context.Context, assets []NewAsset) ([]Asset, error) {
	items := make([]wireAsset, len(assets))
	for i, a := range assets {
		items[i] = fromNewAsset(a)
	}
	resp, err := c.api.Create(ctx, createRequest{Items: items})
	if err != nil {
		return nil, err
	}
	out := make([]Asset, len(resp.Items))
	for i, w := range resp.Items {
		out[i] = toAsset(w)
	}
	return out, nil
}

// Update applies the given partial updates.
func (c *Client) Update(ctx context.Context, updates []Update) error {
	items := make([]updateRequestItem, len(updates))
	for i, u := range updates {
		items[i] = fromUpdate(u)
	}
	return c.api.Update(ctx, updateRequest{Items: items})
}

// Delete removes the given assets. recursive also removes their
// descendants; without it, deleting an asset with children fails
// server-side.
func (c *Client) Delete(ctx context.Context, refs []Ref, recursive, ignoreUnknownIDs bool) error {
	items := make([]itemRef, len(refs))
	for i, r := range refs {
		items[i] = itemRef{ID: r.ID, ExternalID: r.ExternalID}
	}
	return c.api.Delete(ctx, deleteRequest{Items: items, RecursiveDelete: recursive, IgnoreUnknownIDs: ignoreUnknownIDs})
}
