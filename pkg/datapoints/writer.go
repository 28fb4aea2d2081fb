package datapoints

import (
	"context"
	"sort"

	"github.com/industrialdata/platform-client-go/internal/pool"
	"github.com/industrialdata/platform-client-go/pkg/identifier"
	"github.com/industrialdata/platform-client-go/pkg/timeparse"
	"github.com/industrialdata/platform-client-go/platformerr"
)

// InsertRecord is one (identifier, datapoints) record supplied by the
// caller to InsertDatapoints.
type InsertRecord struct {
	Identifier identifier.Canonical
	Points     []Datapoint
}

// seriesChunk is a record after step 2 (per-series splitting): a
// contiguous, in-original-order slice of one series' points, never
// exceeding WriteLimit.
type seriesChunk struct {
	identifier identifier.Canonical
	points     []Datapoint
}

// bin is one HTTP request body's worth of chunks, accumulated by the
// first-fit bin-packer in step 3.
type bin struct {
	chunks   []seriesChunk
	occupied int
}

// InsertDatapoints validates, splits oversized per-series payloads,
// first-fit bin-packs across series into size-bounded request bodies,
// and issues one POST per bin concurrently.
func InsertDatapoints(ctx context.Context, c apiClient, records []InsertRecord, maxWorkers int) error {
	// Step 1: per-record validation.
	chunks := make([]seriesChunk, 0, len(records))
	for _, rec := range records {
		if err := validateRecord(rec); err != nil {
			return err
		}
		chunks = append(chunks, splitOversizedRecord(rec)...)
	}

	// Step 3: first-fit bin-packing over the post-split chunks.
	bins := firstFitPack(chunks)

	if len(bins) == 0 {
		return nil
	}

	// Step 4: concurrent issue, one POST per bin.
	p := pool.NewPool(&pool.Config{MaxWorkers: maxWorkers, QueueDepth: len(bins)})

	jobs := make([]interface{}, len(bins))
	for i, b := range bins {
		jobs[i] = binJob{index: i, bin: b}
	}

	fn := func(ctx context.Context, payload interface{}) (interface{}, error) {
		j := payload.(binJob)
		items := make([]insertRequestItem, len(j.bin.chunks))
		for i, ch := range j.bin.chunks {
			wireDps := make([]wireDatapoint, len(ch.points))
			for pi, pt := range ch.points {
				wireDps[pi] = fromDatapoint(pt)
			}
			items[i] = insertRequestItem{itemRef: refFromCanonical(ch.identifier), Datapoints: wireDps}
		}
		err := c.InsertDatapoints(ctx, items)
		// Returning err (not swallowing it to nil) is what makes the pool
		// cancel every other in-flight bin as soon as one POST fails;
		// cancelled siblings still report their own outcome below, via
		// whatever error InsertDatapoints returns for a cancelled ctx.
		return binOutcome{index: j.index, err: err}, err
	}

	results, _, poolErr := p.RunJobs(ctx, jobs, fn)
	if poolErr != nil {
		return platformerr.Wrap(platformerr.KindTransport, poolErr, "datapoint write pool failed")
	}

	outcomes := make([]error, len(bins))
	anyFailed := false
	for _, raw := range results {
		o := raw.(binOutcome)
		outcomes[o.index] = o.err
		if o.err != nil {
			anyFailed = true
		}
	}

	if anyFailed {
		return &platformerr.PartialWriteFailure{BinOutcomes: outcomes}
	}
	return nil
}

type binJob struct {
	index int
	bin   bin
}

type binOutcome struct {
	index int
	err   error
}

func validateRecord(rec InsertRecord) error {
	if rec.Identifier.ID == nil && rec.Identifier.ExternalID == nil {
		return platformerr.InvalidDatapoint("record is missing an identifier")
	}
	if len(rec.Points) == 0 {
		return platformerr.InvalidDatapoint("record for %s has no datapoints", describeCanonical(rec.Identifier))
	}
	for _, pt := range rec.Points {
		if pt.Value == nil && !pt.IsAggregate() {
			return platformerr.InvalidDatapoint("datapoint at %d has neither a value nor an aggregate field", pt.TimestampMs)
		}
		if err := timeparse.ValidateInsertTimestamp(pt.TimestampMs); err != nil {
			return err
		}
	}
	return nil
}

func describeCanonical(c identifier.Canonical) string {
	if c.ID != nil {
		return "id"
	}
	return "external_id"
}

// splitOversizedRecord implements step 2: for a record whose points
// exceed WriteLimit, emit ceil(n/WriteLimit) replacement chunks
// sharing the identifier, each a WriteLimit-sized contiguous slice in
// original order.
func splitOversizedRecord(rec InsertRecord) []seriesChunk {
	if len(rec.Points) <= WriteLimit {
		return []seriesChunk{{identifier: rec.Identifier, points: rec.Points}}
	}

	var chunks []seriesChunk
	for start := 0; start < len(rec.Points); start += WriteLimit {
		end := start + WriteLimit
		if end > len(rec.Points) {
			end = len(rec.Points)
		}
		chunks = append(chunks, seriesChunk{identifier: rec.Identifier, points: rec.Points[start:end]})
	}
	return chunks
}

// firstFitPack bin-packs chunks using first-fit decreasing: chunks are
// sorted by point count, largest first, then each is placed in the
// first bin with enough remaining room, opening a new bin otherwise.
// Packing by descending weight instead of input order keeps the bin
// count close to optimal regardless of the order callers happen to
// supply records in, which matters since the writer's goal is
// minimizing HTTP round-trips, not preserving a packing order.
//
// Each chunk's own points stay in the contiguous, original-timestamp-
// order slice splitOversizedRecord produced; packing only ever
// reorders chunks relative to each other, never the points inside one.
func firstFitPack(chunks []seriesChunk) []bin {
	ordered := make([]seriesChunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].points) > len(ordered[j].points)
	})

	var bins []bin
	for _, ch := range ordered {
		weight := len(ch.points)
		placed := false
		for i := range bins {
			if bins[i].occupied+weight <= WriteLimit {
				bins[i].chunks = append(bins[i].chunks, ch)
				bins[i].occupied += weight
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, bin{chunks: []seriesChunk{ch}, occupied: weight})
		}
	}
	return bins
}
