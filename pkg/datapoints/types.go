// Package datapoints implements the engineering core of the client:
// identifier normalization, time parsing, range planning, paging,
// concurrent fetch/merge, and batched writes. Everything here is
// ephemeral per call — no state persists across invocations.
package datapoints

import (
	"github.com/industrialdata/platform-client-go/pkg/identifier"
)

// Datapoint is a single time-value observation on one series. It is
// either raw (Value set) or aggregate (at least one aggregate field
// set, Value unset) — never both.
type Datapoint struct {
	TimestampMs int64

	// Raw fields.
	Value interface{} // float64 or string

	// Aggregate fields. Pointers distinguish "not present" from zero.
	Average            *float64
	Max                *float64
	Min                *float64
	Count              *int64
	Sum                *float64
	Interpolation      *float64
	StepInterpolation  *float64
	ContinuousVariance *float64
	DiscreteVariance   *float64
	TotalVariation     *float64
}

// IsAggregate reports whether d carries any aggregate field.
func (d Datapoint) IsAggregate() bool {
	return d.Average != nil || d.Max != nil || d.Min != nil || d.Count != nil ||
		d.Sum != nil || d.Interpolation != nil || d.StepInterpolation != nil ||
		d.ContinuousVariance != nil || d.DiscreteVariance != nil || d.TotalVariation != nil
}

// Datapoints is an ordered collection of datapoints belonging to one
// series, identified by exactly one of ID/ExternalID. Entries are kept
// sorted by TimestampMs, strictly increasing except for at most one
// leading and one trailing duplicate when outside points were
// requested — and those duplicates are removed before the object is
// returned to a caller.
type Datapoints struct {
	ID         *int64
	ExternalID *string

	Points []Datapoint
}

// SeriesKey identifies which series Datapoints belongs to, used as a
// map key during the merge step since an (id, external_id) pair can't
// be compared directly when only one is set.
type SeriesKey struct {
	ID         int64
	ExternalID string
	byID       bool
}

func (d Datapoints) Key() SeriesKey {
	if d.ID != nil {
		return SeriesKey{ID: *d.ID, byID: true}
	}
	return SeriesKey{ExternalID: *d.ExternalID}
}

func keyFromCanonical(c identifier.Canonical) SeriesKey {
	if c.ID != nil {
		return SeriesKey{ID: *c.ID, byID: true}
	}
	return SeriesKey{ExternalID: *c.ExternalID}
}

// DatapointsList is an ordered sequence of Datapoints, one per
// requested series, in the canonical order from identifier.Normalize:
// all `id`-derived entries first in caller order, then all
// `external_id`-derived entries in caller order.
type DatapointsList []Datapoints

// Query plans a single-series fetch. EndMs is exclusive.
type Query struct {
	Identifier           identifier.Canonical
	StartMs              int64
	EndMs                int64
	Aggregates           []identifier.Aggregate
	GranularityMs        int64 // 0 means "no granularity / raw"
	IncludeOutsidePoints bool
	Limit                int64 // 0 means "no caller limit"
}

// Window is a disjoint sub-range [Start, End) produced by the range
// planner, granularity-aligned when GranularityMs is set.
type Window struct {
	Start int64
	End   int64
}

// Per-request size caps referenced throughout the planner and pager.
// Declared as vars, not consts, so tests can shrink them to exercise
// the server-returns-exactly-the-cap paging path without needing a
// fake server that actually holds 100,000 points.
var (
	AggReqLimit int64 = 10_000
	RawReqLimit int64 = 100_000
)

// WriteLimit is the maximum number of points in one write HTTP
// request body.
const WriteLimit = 100_000
