// Package identifier implements the identifier normalizer: the
// duck-typed "id can be a scalar, a list, a mapping, or a list of
// mappings" argument from the original source is replaced with an
// explicit sum type constructed through named constructors, and this
// package reduces any ordered sequence of those into the canonical
// form the rest of the datapoints core consumes.
package identifier

import (
	"github.com/industrialdata/platform-client-go/platformerr"
)

// Aggregate names one of the server-computed aggregate statistics.
type Aggregate string

const (
	Average            Aggregate = "average"
	Max                Aggregate = "max"
	Min                Aggregate = "min"
	Count              Aggregate = "count"
	Sum                Aggregate = "sum"
	Interpolation      Aggregate = "interpolation"
	StepInterpolation  Aggregate = "stepInterpolation"
	ContinuousVariance Aggregate = "continuousVariance"
	DiscreteVariance   Aggregate = "discreteVariance"
	TotalVariation     Aggregate = "totalVariation"
)

// ID is the sum type replacing the original's duck-typed argument:
// exactly one of ByID/ByExternalID, each optionally carrying a
// per-series aggregate override.
type ID struct {
	id           *int64
	externalID   *string
	aggregates   []Aggregate
	hasAggregate bool
}

// ByID constructs an identifier referencing a series by its numeric id.
func ByID(id int64) ID { return ID{id: &id} }

// ByExternalID constructs an identifier referencing a series by its
// external string id.
func ByExternalID(externalID string) ID { return ID{externalID: &externalID} }

// WithAggregates attaches a per-series aggregate override to an
// identifier already constructed via ByID/ByExternalID.
func (i ID) WithAggregates(aggregates ...Aggregate) ID {
	i.aggregates = aggregates
	i.hasAggregate = true
	return i
}

func (i ID) IsID() bool         { return i.id != nil }
func (i ID) IsExternalID() bool { return i.externalID != nil }

func (i ID) Int64() int64 {
	if i.id == nil {
		return 0
	}
	return *i.id
}

func (i ID) String() string {
	if i.externalID == nil {
		return ""
	}
	return *i.externalID
}

func (i ID) Aggregates() ([]Aggregate, bool) { return i.aggregates, i.hasAggregate }

// Canonical is one normalized entry: exactly one of ID/ExternalID set,
// plus the optional per-series aggregate override.
type Canonical struct {
	ID         *int64
	ExternalID *string
	Aggregates []Aggregate
	HasAggregates bool
}

// Result is the output of Normalize: the canonical ordered sequence —
// all `id`-derived entries first in caller order, then all
// `external_id`-derived entries in caller order (DatapointsList
// ordering invariant) — plus the IsSingle flag controlling whether the
// top-level caller gets back one Datapoints or a DatapointsList.
type Result struct {
	Items    []Canonical
	IsSingle bool
}

// Normalize accepts the two heterogeneous arguments a caller may pass
// — here already reduced to Go-idiomatic shapes by the typed
// constructors above — and produces the canonical sequence.
//
// ids and externalIDs may each be nil/empty. Passing neither is
// InvalidIdentifier. IsSingle is true iff exactly one of ids/externalIDs
// was supplied with exactly one element and the other is empty.
func Normalize(ids []ID, externalIDs []ID) (Result, error) {
	if len(ids) == 0 && len(externalIDs) == 0 {
		return Result{}, platformerr.InvalidIdentifier("must specify at least one of id or external_id")
	}

	items := make([]Canonical, 0, len(ids)+len(externalIDs))
	for _, v := range ids {
		if !v.IsID() {
			return Result{}, platformerr.InvalidIdentifier("item in id list is missing its id field")
		}
		c := Canonical{ID: int64Ptr(v.Int64())}
		if aggs, ok := v.Aggregates(); ok {
			c.Aggregates = aggs
			c.HasAggregates = true
		}
		items = append(items, c)
	}
	for _, v := range externalIDs {
		if !v.IsExternalID() {
			return Result{}, platformerr.InvalidIdentifier("item in external_id list is missing its external_id field")
		}
		c := Canonical{ExternalID: stringPtr(v.String())}
		if aggs, ok := v.Aggregates(); ok {
			c.Aggregates = aggs
			c.HasAggregates = true
		}
		items = append(items, c)
	}

	isSingle := len(ids)+len(externalIDs) == 1

	return Result{Items: items, IsSingle: isSingle}, nil
}

func int64Ptr(v int64) *int64     { return &v }
func stringPtr(v string) *string  { return &v }
