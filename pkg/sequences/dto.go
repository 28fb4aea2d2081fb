package sequences

type wireColumn struct {
	ExternalID string `json:"externalId"`
	Name       string `json:"name,omitempty"`
	ValueType  string `json:"valueType,omitempty"`
}

type wireSequence struct {
	ID              int64             `json:"id,omitempty"`
	ExternalID      string            `json:"externalId,omitempty"`
	Name            string            `json:"name,omitempty"`
	Description     string            `json:"description,omitempty"`
	Columns         []wireColumn      `json:"columns"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedTime     int64             `json:"createdTime,omitempty"`
	LastUpdatedTime int64             `json:"lastUpdatedTime,omitempty"`
}

func toSequence(w wireSequence) Sequence {
	cols := make([]Column, len(w.Columns))
	for i, c := range w.Columns {
		cols[i] = Column{ExternalID: c.ExternalID, Name: c.Name, ValueType: c.ValueType}
	}
	return Sequence{
		ID: w.ID, ExternalID: w.ExternalID, Name: w.Name, Description: w.Description,
		Columns: cols, Metadata: w.Metadata, CreatedTime: w.CreatedTime, LastUpdatedTime: w.LastUpdatedTime,
	}
}

func fromNewSequence(n NewSequence) wireSequence {
	cols := make([]wireColumn, len(n.Columns))
	for i, c := range n.Columns {
		cols[i] = wireColumn{ExternalID: c.ExternalID, Name: c.Name, ValueType: c.ValueType}
	}
	return wireSequence{
		ExternalID: n.ExternalID, Name: n.Name, Description: n.Description,
		Columns: cols, Metadata: n.Metadata,
	}
}

type wireFilter struct {
	Name             string            `json:"name,omitempty"`
	ExternalIDPrefix string            `json:"externalIdPrefix,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

func fromFilter(f Filter) wireFilter {
	return wireFilter{Name: f.Name, ExternalIDPrefix: f.ExternalIDPrefix, Metadata: f.Metadata}
}

type listRequest struct {
	Filter wireFilter `json:"filter"`
	Cursor string     `json:"cursor,omitempty"`
	Limit  int        `json:"limit,omitempty"`
}

type listResponse struct {
	Items      []wireSequence `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

type createRequest struct {
	Items []wireSequence `json:"items"`
}

type createResponse struct {
	Items []wireSequence `json:"items"`
}

type itemRef struct {
	ID         int64  `json:"id,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

type deleteRequest struct {
	Items []itemRef `json:"items"`
}

type wireRow struct {
	RowNumber int64         `json:"rowNumber"`
	Values    []interface{} `json:"values"`
}

type rowsInsertRequestItem struct {
	itemRef
	Columns []string  `json:"columns"`
	Rows    []wireRow `json:"rows"`
}

type rowsInsertRequest struct {
	Items []rowsInsertRequestItem `json:"items"`
}

type rowsListRequestItem struct {
	itemRef
	Start  int64    `json:"start,omitempty"`
	End    int64    `json:"end,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Limit  int      `json:"limit,omitempty"`
	Cursor string   `json:"cursor,omitempty"`
}

type rowsListRequest struct {
	Items []rowsListRequestItem `json:"items"`
}

type rowsListResponseItem struct {
	itemRef
	Columns    []string  `json:"columns"`
	Rows       []wireRow `json:"rows"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

type rowsListResponse struct {
	Items []rowsListResponseItem `json:"items"`
}
