// Package events is a thin client over the event resource, grounded on
// original_source/cognite/client/_api/events.py's filter+cursor list
// shape and sharing internal/resource for pagination.
package events

// Event is a time-bounded occurrence, optionally linked to one or more
// assets.
type Event struct {
	ID              int64
	ExternalID      string
	StartTime       int64
	EndTime         int64
	Type            string
	Subtype         string
	Description     string
	Metadata        map[string]string
	AssetIDs        []int64
	Source          string
	CreatedTime     int64
	LastUpdatedTime int64
}

// Filter narrows a List call.
type Filter struct {
	StartTimeMin      int64
	StartTimeMax      int64
	EndTimeMin        int64
	EndTimeMax        int64
	ActiveAtTimeMs    int64
	Type              string
	Subtype           string
	AssetIDs          []int64
	AssetExternalIDs  []string
	AssetSubtreeIDs   []int64
	Source            string
	Metadata          map[string]string
	ExternalIDPrefix  string
}

// NewEvent is the payload for Create.
type NewEvent struct {
	ExternalID  string
	StartTime   int64
	EndTime     int64
	Type        string
	Subtype     string
	Description string
	Metadata    map[string]string
	AssetIDs    []int64
	Source      string
}

// Ref addresses one existing event by exactly one of ID/ExternalID.
type Ref struct {
	ID         int64
	ExternalID string
}
