package assets

type wireAsset struct {
	ID               int64             `json:"id,omitempty"`
	ExternalID       string            `json:"externalId,omitempty"`
	Name             string            `json:"name"`
	ParentID         int64             `json:"parentId,omitempty"`
	ParentExternalID string            `json:"parentExternalId,omitempty"`
	Description      string            `json:"description,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	Source           string            `json:"source,omitempty"`
	CreatedTime      int64             `json:"createdTime,omitempty"`
	LastUpdatedTime  int64             `json:"lastUpdatedTime,omitempty"`
	RootID           int64             `json:"rootId,omitempty"`
}

func toAsset(w wireAsset) Asset {
	return Asset{
		ID: w.ID, ExternalID: w.ExternalID, Name: w.Name,
		ParentID: w.ParentID, ParentExternalID: w.ParentExternalID,
		Description: w.Description, Metadata: w.Metadata, Source: w.Source,
		CreatedTime: w.CreatedTime, LastUpdatedTime: w.LastUpdatedTime, RootID: w.RootID,
	}
}

func fromNewAsset(n NewAsset) wireAsset {
	return wireAsset{
		Name: n.Name, ExternalID: n.ExternalID, ParentID: n.ParentID,
		ParentExternalID: n.ParentExternalID, Description: n.Description,
		Metadata: n.Metadata, Source: n.Source,
	}
}

type wireFilter struct {
	Name              string            `json:"name,omitempty"`
	ParentIDs         []int64           `json:"parentIds,omitempty"`
	ParentExternalIDs []string          `json:"parentExternalIds,omitempty"`
	RootIDs           []int64           `json:"rootIds,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Source            string            `json:"source,omitempty"`
	ExternalIDPrefix  string            `json:"externalIdPrefix,omitempty"`
}

func fromFilter(f Filter) wireFilter {
	return wireFilter{
		Name: f.Name, ParentIDs: f.ParentIDs, ParentExternalIDs: f.ParentExternalIDs,
		RootIDs: f.RootIDs, Metadata: f.Metadata, Source: f.Source,
		ExternalIDPrefix: f.ExternalIDPrefix,
	}
}

type listRequest struct {
	Filter wireFilter `json:"filter"`
	Cursor string     `json:"cursor,omitempty"`
	Limit  int        `json:"limit,omitempty"`
}

type listResponse struct {
	Items      []wireAsset `json:"items"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

type createRequest struct {
	Items []wireAsset `json:"items"`
}

type createResponse struct {
	Items []wireAsset `json:"items"`
}

type itemRef struct {
	ID         int64  `json:"id,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

type updateFields struct {
	Name        *setString            `json:"name,omitempty"`
	Description *setString            `json:"description,omitempty"`
	Metadata    *setStringMap         `json:"metadata,omitempty"`
}

type setString struct {
	Set string `json:"set"`
}

type setStringMap struct {
	Set map[string]string `json:"set"`
}

type updateRequestItem struct {
	itemRef
	Update updateFields `json:"update"`
}

type updateRequest struct {
	Items []updateRequestItem `json:"items"`
}

func fromUpdate(u Update) updateRequestItem {
	item := updateRequestItem{itemRef: itemRef{ID: u.ID, ExternalID: u.ExternalID}}
	if u.Name != nil {
		item.Update.Name = &setString{Set: *u.Name}
	}
	if u.Description != nil {
		item.Update.Description = &setString{Set: *u.Description}
	}
	if u.Metadata != nil {
		item.Update.Metadata = &setStringMap{Set: u.Metadata}
	}
	return item
}

type deleteRequest struct {
	Items              []itemRef `json:"items"`
	IgnoreUnknownIDs   bool      `json:"ignoreUnknownIds,omitempty"`
	RecursiveDelete    bool      `json:"recursive,omitempty"`
}
