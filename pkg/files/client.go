package files

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
	err := c.session.Do(ctx, "/files/list", req, &resp, true)
	return resp, err
}

func (c *sessionClient) Create(ctx context.Context, req createRequest) (createResponse, error) {
	var resp createResponse
	err := c.session.Do(ctx, "/files", req, &resp, false)
	return resp, err
}

func (c *sessionClient) Delete(ctx context.Context, req deleteRequest) error {
	return c.session.Do(ctx, "/files/delete", req, nil, false)
}

// Client is the public entry point for the file metadata resource.
type Client struct{ api apiClient }

func NewClient(session *transport.Session) *Client {
	return &Client{api: newSessionClient(session)}
}

func (c *Client) List(filter Filter, pageSize int) *resource.Iterator[FileMetadata] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[FileMetadata], error) {
		resp, err := c.api.List(ctx, listRequest{Filter: fromFilter(filter), Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[FileMetadata]{}, err
		}
		items := make([]FileMetadata, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = toFileMetadata(w)
		}
		return resource.Page[FileMetadata]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

// Create registers the given file metadata records. Actually uploading
// bytes to the returned storage location is out of this client's
// scope.
func (c *Client) Create(ctx context.Context, newFiles []NewFileMetadata) ([]FileMetadata, error) {
	items := make([]wireFileMetadata, len(newFiles))
	for i, f := range newFiles {
		items[i] = fromNewFileMetadata(f)
	}
	resp, err := c.api.Create(ctx, createRequest{Items: items})
	if err != nil {
		return nil, err
	}
	out := make([]FileMetadata, len(resp.Items))
	for i, w := range resp.Items {
		out[i] = toFileMetadata(w)
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
