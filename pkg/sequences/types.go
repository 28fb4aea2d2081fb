// Package sequences is a thin client over the sequence resource: named
// tables of rows indexed by an integer row number, each column
// strongly typed (grounded on original_source/cognite/v06/sequences.py).
package sequences

// Column describes one column in a sequence.
type Column struct {
	ExternalID string
	Name       string
	ValueType  string // "STRING", "DOUBLE", or "LONG"
}

// Sequence is the metadata of one sequence.
type Sequence struct {
	ID              int64
	ExternalID      string
	Name            string
	Description     string
	Columns         []Column
	Metadata        map[string]string
	CreatedTime     int64
	LastUpdatedTime int64
}

// NewSequence is the payload for Create.
type NewSequence struct {
	ExternalID  string
	Name        string
	Description string
	Columns     []Column
	Metadata    map[string]string
}

// Row is one row of a sequence: an integer row number plus one value
// per declared column, in column order.
type Row struct {
	RowNumber int64
	Values    []interface{}
}

// Filter narrows a List call.
type Filter struct {
	Name             string
	ExternalIDPrefix string
	Metadata         map[string]string
}

// Ref addresses one existing sequence by exactly one of ID/ExternalID.
type Ref struct {
	ID         int64
	ExternalID string
}
