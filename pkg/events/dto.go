package events

type wireEvent struct {
	ID              int64             `json:"id,omitempty"`
	ExternalID      string            `json:"externalId,omitempty"`
	StartTime       int64             `json:"startTime,omitempty"`
	EndTime         int64             `json:"endTime,omitempty"`
	Type            string            `json:"type,omitempty"`
	Subtype         string            `json:"subtype,omitempty"`
	Description     string            `json:"description,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	AssetIDs        []int64           `json:"assetIds,omitempty"`
	Source          string            `json:"source,omitempty"`
	CreatedTime     int64             `json:"createdTime,omitempty"`
	LastUpdatedTime int64             `json:"lastUpdatedTime,omitempty"`
}

func toEvent(w wireEvent) Event {
	return Event{
		ID: w.ID, ExternalID: w.ExternalID, StartTime: w.StartTime, EndTime: w.EndTime,
		Type: w.Type, Subtype: w.Subtype, Description: w.Description, Metadata: w.Metadata,
		AssetIDs: w.AssetIDs, Source: w.Source, CreatedTime: w.CreatedTime, LastUpdatedTime: w.LastUpdatedTime,
	}
}

func fromNewEvent(n NewEvent) wireEvent {
	return wireEvent{
		ExternalID: n.ExternalID, StartTime: n.StartTime, EndTime: n.EndTime,
		Type: n.Type, Subtype: n.Subtype, Description: n.Description,
		Metadata: n.Metadata, AssetIDs: n.AssetIDs, Source: n.Source,
	}
}

type timeRange struct {
	Min int64 `json:"min,omitempty"`
	Max int64 `json:"max,omitempty"`
}

type wireFilter struct {
	StartTime        *timeRange        `json:"startTime,omitempty"`
	EndTime          *timeRange        `json:"endTime,omitempty"`
	ActiveAtTime     int64             `json:"activeAtTime,omitempty"`
	Type             string            `json:"type,omitempty"`
	Subtype          string            `json:"subtype,omitempty"`
	AssetIDs         []int64           `json:"assetIds,omitempty"`
	AssetExternalIDs []string          `json:"assetExternalIds,omitempty"`
	AssetSubtreeIDs  []int64           `json:"assetSubtreeIds,omitempty"`
	Source           string            `json:"source,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	ExternalIDPrefix string            `json:"externalIdPrefix,omitempty"`
}

func fromFilter(f Filter) wireFilter {
	wf := wireFilter{
		ActiveAtTime: f.ActiveAtTimeMs, Type: f.Type, Subtype: f.Subtype,
		AssetIDs: f.AssetIDs, AssetExternalIDs: f.AssetExternalIDs, AssetSubtreeIDs: f.AssetSubtreeIDs,
		Source: f.Source, Metadata: f.Metadata, ExternalIDPrefix: f.ExternalIDPrefix,
	}
	if f.StartTimeMin != 0 || f.StartTimeMax != 0 {
		wf.StartTime = &timeRange{Min: f.StartTimeMin, Max: f.StartTimeMax}
	}
	if f.EndTimeMin != 0 || f.EndTimeMax != 0 {
		wf.EndTime = &timeRange{Min: f.EndTimeMin, Max: f.EndTimeMax}
	}
	return wf
}

type listRequest struct {
	Filter wireFilter `json:"filter"`
	Cursor string     `json:"cursor,omitempty"`
	Limit  int        `json:"limit,omitempty"`
}

type listResponse struct {
	Items      []wireEvent `json:"items"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

type createRequest struct {
	Items []wireEvent `json:"items"`
}

type createResponse struct {
	Items []wireEvent `json:"items"`
}

type itemRef struct {
	ID         int64  `json:"id,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

type deleteRequest struct {
	Items            []itemRef `json:"items"`
	IgnoreUnknownIDs bool      `json:"ignoreUnknownIds,omitempty"`
}
