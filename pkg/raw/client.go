package raw

import (
	"context"
	"fmt"
	"sync"

	"github.com/industrialdata/platform-client-go/internal/boundedwg"
	"github.com/industrialdata/platform-client-go/internal/resource"
	"github.com/industrialdata/platform-client-go/internal/transport"
)

type apiClient interface {
	ListDatabases(ctx context.Context, req listRequest) (databaseListResponse, error)
	CreateDatabases(ctx context.Context, req databaseCreateRequest) error
	DeleteDatabases(ctx context.Context, req databaseDeleteRequest) error
	ListTables(ctx context.Context, database string, req listRequest) (tableListResponse, error)
	CreateTables(ctx context.Context, database string, req tableCreateRequest) error
	DeleteTables(ctx context.Context, database string, req tableDeleteRequest) error
	ListRows(ctx context.Context, database, table string, req listRequest) (rowListResponse, error)
	CreateRows(ctx context.Context, database, table string, req rowCreateRequest) error
	DeleteRows(ctx context.Context, database, table string, req rowDeleteRequest) error
}

type sessionClient struct{ session *transport.Session }

func newSessionClient(s *transport.Session) *sessionClient { return &sessionClient{session: s} }

func (c *sessionClient) ListDatabases(ctx context.Context, req listRequest) (databaseListResponse, error) {
	var resp databaseListResponse
	err := c.session.Do(ctx, "/raw/databases/list", req, &resp, true)
	return resp, err
}

func (c *sessionClient) CreateDatabases(ctx context.Context, req databaseCreateRequest) error {
	return c.session.Do(ctx, "/raw/databases", req, nil, false)
}

func (c *sessionClient) DeleteDatabases(ctx context.Context, req databaseDeleteRequest) error {
	return c.session.Do(ctx, "/raw/databases/delete", req, nil, false)
}

func (c *sessionClient) ListTables(ctx context.Context, database string, req listRequest) (tableListResponse, error) {
	var resp tableListResponse
	err := c.session.Do(ctx, fmt.Sprintf("/raw/databases/%s/tables/list", database), req, &resp, true)
	return resp, err
}

func (c *sessionClient) CreateTables(ctx context.Context, database string, req tableCreateRequest) error {
	return c.session.Do(ctx, fmt.Sprintf("/raw/databases/%s/tables", database), req, nil, false)
}

func (c *sessionClient) DeleteTables(ctx context.Context, database string, req tableDeleteRequest) error {
	return c.session.Do(ctx, fmt.Sprintf("/raw/databases/%s/tables/delete", database), req, nil, false)
}

func (c *sessionClient) ListRows(ctx context.Context, database, table string, req listRequest) (rowListResponse, error) {
	var resp rowListResponse
	err := c.session.Do(ctx, fmt.Sprintf("/raw/databases/%s/tables/%s/rows/list", database, table), req, &resp, true)
	return resp, err
}

func (c *sessionClient) CreateRows(ctx context.Context, database, table string, req rowCreateRequest) error {
	return c.session.Do(ctx, fmt.Sprintf("/raw/databases/%s/tables/%s/rows", database, table), req, nil, false)
}

func (c *sessionClient) DeleteRows(ctx context.Context, database, table string, req rowDeleteRequest) error {
	return c.session.Do(ctx, fmt.Sprintf("/raw/databases/%s/tables/%s/rows/delete", database, table), req, nil, false)
}

// Client is the public entry point for the raw resource.
type Client struct{ api apiClient }

func NewClient(session *transport.Session) *Client {
	return &Client{api: newSessionClient(session)}
}

func (c *Client) ListDatabases(pageSize int) *resource.Iterator[Database] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[Database], error) {
		resp, err := c.api.ListDatabases(ctx, listRequest{Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[Database]{}, err
		}
		items := make([]Database, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = Database{Name: w.DBName}
		}
		return resource.Page[Database]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

func (c *Client) CreateDatabases(ctx context.Context, names []string) error {
	items := make([]wireDatabase, len(names))
	for i, n := range names {
		items[i] = wireDatabase{DBName: n}
	}
	return c.api.CreateDatabases(ctx, databaseCreateRequest{Items: items})
}

func (c *Client) DeleteDatabases(ctx context.Context, names []string) error {
	items := make([]wireDatabase, len(names))
	for i, n := range names {
		items[i] = wireDatabase{DBName: n}
	}
	return c.api.DeleteDatabases(ctx, databaseDeleteRequest{Items: items})
}

func (c *Client) ListTables(database string, pageSize int) *resource.Iterator[Table] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[Table], error) {
		resp, err := c.api.ListTables(ctx, database, listRequest{Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[Table]{}, err
		}
		items := make([]Table, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = Table{Name: w.TableName}
		}
		return resource.Page[Table]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

func (c *Client) CreateTables(ctx context.Context, database string, names []string) error {
	items := make([]wireTable, len(names))
	for i, n := range names {
		items[i] = wireTable{TableName: n}
	}
	return c.api.CreateTables(ctx, database, tableCreateRequest{Items: items})
}

func (c *Client) DeleteTables(ctx context.Context, database string, names []string) error {
	items := make([]wireTable, len(names))
	for i, n := range names {
		items[i] = wireTable{TableName: n}
	}
	return c.api.DeleteTables(ctx, database, tableDeleteRequest{Items: items})
}

func (c *Client) ListRows(database, table string, pageSize int) *resource.Iterator[Row] {
	fetch := func(ctx context.Context, cursor string, limit int) (resource.Page[Row], error) {
		resp, err := c.api.ListRows(ctx, database, table, listRequest{Cursor: cursor, Limit: limit})
		if err != nil {
			return resource.Page[Row]{}, err
		}
		items := make([]Row, len(resp.Items))
		for i, w := range resp.Items {
			items[i] = Row{Key: w.Key, Columns: w.Columns}
		}
		return resource.Page[Row]{Items: items, NextCursor: resp.NextCursor}, nil
	}
	return resource.NewIterator(fetch, pageSize)
}

func (c *Client) CreateRows(ctx context.Context, database, table string, rows []Row) error {
	items := make([]wireRow, len(rows))
	for i, r := range rows {
		items[i] = wireRow{Key: r.Key, Columns: r.Columns}
	}
	return c.api.CreateRows(ctx, database, table, rowCreateRequest{Items: items})
}

// TableListing is one database's table listing outcome.
type TableListing struct {
	Database string
	Tables   []Table
	Err      error
}

// ListTablesForDatabases concurrently lists the tables of every given
// database, bounded to maxWorkers in flight at once. One database's
// failure doesn't stop the others — each result carries its own Err —
// so this uses boundedwg rather than internal/pool's cancel-on-error
// pool.
func (c *Client) ListTablesForDatabases(ctx context.Context, databases []string, maxWorkers int) []TableListing {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	bwg := boundedwg.New(uint(maxWorkers))
	results := make([]TableListing, len(databases))
	var mu sync.Mutex

	for i, db := range databases {
		bwg.Add(1)
		go func(i int, db string) {
			defer bwg.Done()

			tables, err := resource.CollectAll(ctx, func(ctx context.Context, cursor string, limit int) (resource.Page[Table], error) {
				resp, err := c.api.ListTables(ctx, db, listRequest{Cursor: cursor, Limit: limit})
				if err != nil {
					return resource.Page[Table]{}, err
				}
				items := make([]Table, len(resp.Items))
				for j, w := range resp.Items {
					items[j] = Table{Name: w.TableName}
				}
				return resource.Page[Table]{Items: items, NextCursor: resp.NextCursor}, nil
			}, 100)

			mu.Lock()
			results[i] = TableListing{Database: db, Tables: tables, Err: err}
			mu.Unlock()
		}(i, db)
	}

	bwg.Wait()
	return results
}

func (c *Client) DeleteRows(ctx context.Context, database, table string, keys []string) error {
	items := make([]wireRow, len(keys))
	for i, k := range keys {
		items[i] = wireRow{Key: k}
	}
	return c.api.DeleteRows(ctx, database, table, rowDeleteRequest{Items: items})
}
