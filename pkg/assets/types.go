// Package assets is a thin client over the asset hierarchy resource,
// following the Filter -> List/Iterator -> Create/Update/Delete shape
// described for the resource family (original_source/cognite/assets.py
// and cognite/client/_api/events.py's modern filter+cursor form).
package assets

// Asset is one node in the asset hierarchy.
type Asset struct {
	ID             int64
	ExternalID     string
	Name           string
	ParentID       int64
	ParentExternalID string
	Description    string
	Metadata       map[string]string
	Source         string
	CreatedTime    int64
	LastUpdatedTime int64
	RootID         int64
}

// Filter narrows a List call. Zero-valued fields are omitted from the
// request.
type Filter struct {
	Name           string
	ParentIDs      []int64
	ParentExternalIDs []string
	RootIDs        []int64
	Metadata       map[string]string
	Source         string
	ExternalIDPrefix string
}

// NewAsset is the payload for Create: a name is required, everything
// else is optional.
type NewAsset struct {
	Name             string
	ExternalID       string
	ParentID         int64
	ParentExternalID string
	Description      string
	Metadata         map[string]string
	Source           string
}

// Update describes a partial update to one asset, addressed by
// exactly one of ID/ExternalID.
type Update struct {
	ID          int64
	ExternalID  string
	Name        *string
	Description *string
	Metadata    map[string]string
}

// Ref addresses one existing asset by exactly one of ID/ExternalID,
// for Delete.
type Ref struct {
	ID         int64
	ExternalID string
}
