package raw

type wireDatabase struct {
	DBName string `json:"dbName"`
}

type wireTable struct {
	TableName string `json:"tableName"`
}

type wireRow struct {
	Key     string                 `json:"key"`
	Columns map[string]interface{} `json:"columns"`
}

type listRequest struct {
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type databaseListResponse struct {
	Items      []wireDatabase `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

type tableListResponse struct {
	Items      []wireTable `json:"items"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

type rowListResponse struct {
	Items      []wireRow `json:"items"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

type databaseCreateRequest struct {
	Items []wireDatabase `json:"items"`
}

type tableCreateRequest struct {
	Items []wireTable `json:"items"`
}

type rowCreateRequest struct {
	Items []wireRow `json:"items"`
}

type databaseDeleteRequest struct {
	Items []wireDatabase `json:"items"`
}

type tableDeleteRequest struct {
	Items []wireTable `json:"items"`
}

type rowDeleteRequest struct {
	Items []wireRow `json:"items"`
}
