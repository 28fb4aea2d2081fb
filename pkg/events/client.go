package events

import (
	"context"

	"github.com/industrialdata/platform-client-go/internal/resource"
	"github.com/industrialdata/platform-client-go/internal/transport"
)

type apiClient interface {
	List(ctx context.Context, req listRequest) (listResponse, error)
	Create(ctx context.Context, req createRequest) (createResponse, error)
	Delete(ctx context.Context, req deleteRequest) error
}

type sessionClient struct{ session *transport.Session }

func newSessionClient(s *transport.Session) *sessionClient { return &sessionClient{session: s} }

func (c *sessionClient) List(ctx context.Context, req listRequest) (listResponse, error) {
	var resp listResponse
	err := c.session.Do(ctx, "/events/list", req, &resp, true)
	return resp, err
}

func (c *sessionClient) Create(ctx context.Context, req createRequest) (createResponse, error) {
	var resp createResponse
	err := c.session.Do(ctx, "/events", req, &resp, false)
	return resp, err
}

func (c *sessionClient) Delete(ctx context.Context, req deleteRequest) error {
	return c.session.Do(ctx, "/events/delete", req, nil, false)
}

// Client is the public entry point for the event resource.
type Client struct{ api apiClient }

func NewClient(session *transport.Session) *Client {
	return &Client{api: newSessionClient(session)}
}

// List returns an iterator over every event matching filter.
func (c *Client) List(filter Filter, pageSize int) *resource.Iterator[Event] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[Event], error) {
		resp, err := c.api.List(ctx, listRequest{Filter: fromFilter(filter), Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[Event]{}, err
		}
		items := make([]Event, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = toEvent(w)
		}
		return resource.Page[Event]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

// Create creates the given events in one request.
func (c *Client) Create(ctx context.Context, newEvents []NewEvent) ([]Event, error) {
	items := make([]wireEvent, len(newEvents))
	for i, e := range newEvents {
		items[i] = fromNewEvent(e)
	}
	resp, err := c.api.Create(ctx, createRequest{Items: items})
	if err != nil {
		return nil, err
	}
	out := make([]Event, len(resp.Items))
	for i, w := range resp.Items {
		out[i] = toEvent(w)
	}
	return out, nil
}

// Delete removes the given events.
func (c *Client) Delete(ctx context.Context, refs []Ref, ignoreUnknownIDs bool) error {
	items := make([]itemRef, len(refs))
	for i, r := range refs {
		items[i] = itemRef{ID: r.ID, ExternalID: r.ExternalID}
	}
	return c.api.Delete(ctx, deleteRequest{Items: items, IgnoreUnknownIDs: ignoreUnknownIDs})
}
