package datapoints

import (
	"encoding/json"

	"github.com/industrialdata/platform-client-go/pkg/identifier"
)

// The types in this file are the JSON wire shapes for the datapoints
// endpoints, isolated from the public Go-idiomatic types in types.go
// so the camelCase-at-the-wire / idiomatic-Go translation happens in
// exactly one place.

type itemRef struct {
	ID         *int64  `json:"id,omitempty"`
	ExternalID *string `json:"externalId,omitempty"`
}

func refFromCanonical(c identifier.Canonical) itemRef {
	return itemRef{ID: c.ID, ExternalID: c.ExternalID}
}

// --- /timeseries/data/list ---

type listRequestItem struct {
	itemRef
	Aggregates []identifier.Aggregate `json:"aggregates,omitempty"`
	Granularity string                `json:"granularity,omitempty"`
	Start       int64                 `json:"start"`
	End         int64                 `json:"end"`
	Limit       int64                 `json:"limit,omitempty"`
	IncludeOutsidePoints bool         `json:"includeOutsidePoints,omitempty"`
}

type listRequest struct {
	Items []listRequestItem `json:"items"`
}

type wireDatapoint struct {
	Timestamp          int64    `json:"timestamp"`
	Value              *wireValue `json:"value,omitempty"`
	Average            *float64 `json:"average,omitempty"`
	Max                *float64 `json:"max,omitempty"`
	Min                *float64 `json:"min,omitempty"`
	Count              *float64 `json:"count,omitempty"`
	Sum                *float64 `json:"sum,omitempty"`
	Interpolation      *float64 `json:"interpolation,omitempty"`
	StepInterpolation  *float64 `json:"stepInterpolation,omitempty"`
	ContinuousVariance *float64 `json:"continuousVariance,omitempty"`
	DiscreteVariance   *float64 `json:"discreteVariance,omitempty"`
	TotalVariation     *float64 `json:"totalVariation,omitempty"`
}

// wireValue accepts either a numeric or string raw value.
type wireValue struct {
	Num *float64
	Str *string
}

func (v *wireValue) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v.Str = &str
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	v.Num = &f
	return nil
}

func (v wireValue) MarshalJSON() ([]byte, error) {
	if v.Str != nil {
		return json.Marshal(*v.Str)
	}
	if v.Num != nil {
		return json.Marshal(*v.Num)
	}
	return []byte("null"), nil
}

func (v wireValue) toInterface() interface{} {
	if v.Str != nil {
		return *v.Str
	}
	if v.Num != nil {
		return *v.Num
	}
	return nil
}

type listResponseItem struct {
	itemRef
	Datapoints []wireDatapoint `json:"datapoints"`
}

type listResponse struct {
	Data struct {
		Items []listResponseItem `json:"items"`
	} `json:"data"`
}

func toDatapoint(w wireDatapoint) Datapoint {
	d := Datapoint{TimestampMs: w.Timestamp}
	if w.Value != nil {
		d.Value = w.Value.toInterface()
	}
	d.Average = w.Average
	d.Max = w.Max
	d.Min = w.Min
	if w.Count != nil {
		c := int64(*w.Count)
		d.Count = &c
	}
	d.Sum = w.Sum
	d.Interpolation = w.Interpolation
	d.StepInterpolation = w.StepInterpolation
	d.ContinuousVariance = w.ContinuousVariance
	d.DiscreteVariance = w.DiscreteVariance
	d.TotalVariation = w.TotalVariation
	return d
}

func fromDatapoint(d Datapoint) wireDatapoint {
	w := wireDatapoint{Timestamp: d.TimestampMs}
	if d.Value != nil {
		switch v := d.Value.(type) {
		case string:
			w.Value = &wireValue{Str: &v}
		case float64:
			w.Value = &wireValue{Num: &v}
		}
	}
	w.Average = d.Average
	w.Max = d.Max
	w.Min = d.Min
	if d.Count != nil {
		c := float64(*d.Count)
		w.Count = &c
	}
	w.Sum = d.Sum
	w.Interpolation = d.Interpolation
	w.StepInterpolation = d.StepInterpolation
	w.ContinuousVariance = d.ContinuousVariance
	w.DiscreteVariance = d.DiscreteVariance
	w.TotalVariation = d.TotalVariation
	return w
}

// --- /timeseries/data (insert) ---

type insertRequestItem struct {
	itemRef
	Datapoints []wireDatapoint `json:"datapoints"`
}

type insertRequest struct {
	Items []insertRequestItem `json:"items"`
}

// --- /timeseries/data/delete ---

type deleteRequestItem struct {
	itemRef
	InclusiveBegin int64 `json:"inclusiveBegin"`
	ExclusiveEnd   int64 `json:"exclusiveEnd"`
}

type deleteRequest struct {
	Items []deleteRequestItem `json:"items"`
}

// --- /timeseries/data/latest ---

type latestRequestItem struct {
	itemRef
	Before string `json:"before,omitempty"`
}

type latestRequest struct {
	Items []latestRequestItem `json:"items"`
}

type latestResponse struct {
	Data struct {
		Items []listResponseItem `json:"items"`
	} `json:"data"`
}
