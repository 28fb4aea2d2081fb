package datapoints

import (
	"context"

	"github.com/industrialdata/platform-client-go/internal/transport"
)

// apiClient is the narrow surface the core needs from the HTTP
// session. Kept as an interface so the fetcher/writer/pager are
// testable against a fake without a real HTTP server.
type apiClient interface {
	ListDatapoints(ctx context.Context, items []listRequestItem) ([]listResponseItem, error)
	InsertDatapoints(ctx context.Context, items []insertRequestItem) error
	DeleteDatapoints(ctx context.Context, items []deleteRequestItem) error
	LatestDatapoints(ctx context.Context, items []latestRequestItem) ([]listResponseItem, error)
}

// sessionClient adapts a *transport.Session to apiClient, translating
// each call into its wire endpoint.
type sessionClient struct {
	session *transport.Session
}

func newSessionClient(s *transport.Session) *sessionClient {
	return &sessionClient{session: s}
}

func (c *sessionClient) ListDatapoints(ctx context.Context, items []listRequestItem) ([]listResponseItem, error) {
	var resp listResponse
	if err := c.session.Do(ctx, "/timeseries/data/list", listRequest{Items: items}, &resp, true); err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

func (c *sessionClient) InsertDatapoints(ctx context.Context, items []insertRequestItem) error {
	return c.session.Do(ctx, "/timeseries/data", insertRequest{Items: items}, nil, false)
}

func (c *sessionClient) DeleteDatapoints(ctx context.Context, items []deleteRequestItem) error {
	return c.session.Do(ctx, "/timeseries/data/delete", deleteRequest{Items: items}, nil, true)
}

func (c *sessionClient) LatestDatapoints(ctx context.Context, items []latestRequestItem) ([]listResponseItem, error) {
	var resp latestResponse
	if err := c.session.Do(ctx, "/timeseries/data/latest", latestRequest{Items: items}, &resp, true); err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}
