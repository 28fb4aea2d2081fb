// Package raw is a thin client over the raw key/value table resource,
// grounded directly on original_source/cognite/raw.py's
// database -> table -> row hierarchy.
package raw

// Database is a raw database: a namespace holding tables.
type Database struct {
	Name string
}

// Table is a raw table inside one database: a namespace holding rows.
type Table struct {
	Name string
}

// Row is one key/value row inside one table. Columns holds arbitrary
// JSON-shaped column data, mirroring the original's RawRowDTO.
type Row struct {
	Key     string
	Columns map[string]interface{}
}
