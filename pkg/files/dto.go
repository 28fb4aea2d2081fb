package files

type wireFileMetadata struct {
	ID              int64             `json:"id,omitempty"`
	ExternalID      string            `json:"externalId,omitempty"`
	Name            string            `json:"name,omitempty"`
	Source          string            `json:"source,omitempty"`
	MimeType        string            `json:"mimeType,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	AssetIDs        []int64           `json:"assetIds,omitempty"`
	Uploaded        bool              `json:"uploaded,omitempty"`
	CreatedTime     int64             `json:"createdTime,omitempty"`
	LastUpdatedTime int64             `json:"lastUpdatedTime,omitempty"`
}

func toFileMetadata(w wireFileMetadata) FileMetadata {
	return FileMetadata{
		ID: w.ID, ExternalID: w.ExternalID, Name: w.Name, Source: w.Source, MimeType: w.MimeType,
		Metadata: w.Metadata, AssetIDs: w.AssetIDs, Uploaded: w.Uploaded,
		CreatedTime: w.CreatedTime, LastUpdatedTime: w.LastUpdatedTime,
	}
}

func fromNewFileMetadata(n NewFileMetadata) wireFileMetadata {
	return wireFileMetadata{
		ExternalID: n.ExternalID, Name: n.Name, Source: n.Source, MimeType: n.MimeType,
		Metadata: n.Metadata, AssetIDs: n.AssetIDs,
	}
}

type wireFilter struct {
	Name             string            `json:"name,omitempty"`
	Source           string            `json:"source,omitempty"`
	MimeType         string            `json:"mimeType,omitempty"`
	AssetIDs         []int64           `json:"assetIds,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	Uploaded         *bool             `json:"uploaded,omitempty"`
	ExternalIDPrefix string            `json:"externalIdPrefix,omitempty"`
}

func fromFilter(f Filter) wireFilter {
	return wireFilter{
		Name: f.Name, Source: f.Source, MimeType: f.MimeType, AssetIDs: f.AssetIDs,
		Metadata: f.Metadata, Uploaded: f.Uploaded, ExternalIDPrefix: f.ExternalIDPrefix,
	}
}

type listRequest struct {
	Filter wireFilter `json:"filter"`
	Cursor string     `json:"cursor,omitempty"`
	Limit  int        `json:"limit,omitempty"`
}

type listResponse struct {
	Items      []wireFileMetadata `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

type createRequest struct {
	Items []wireFileMetadata `json:"items"`
}

type createResponse struct {
	Items []wireFileMetadata `json:"items"`
}

type itemRef struct {
	ID         int64  `json:"id,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

type deleteRequest struct {
	Items []itemRef `json:"items"`
}
