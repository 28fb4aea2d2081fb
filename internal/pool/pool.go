// Package pool provides the bounded worker pool shared by the parallel
// datapoint fetcher and the datapoint writer. It runs a batch of
// independent jobs over a fixed number of workers, collecting every
// result and every error — not just the first — while still
// cancelling outstanding siblings as soon as one job fails.
package pool

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Config sizes the pool.
type Config struct {
	MaxWorkers int
	QueueDepth int
}

func defaultConfig() *Config {
	return &Config{MaxWorkers: 10, QueueDepth: 10000}
}

// Pool runs bounded-concurrency batches of jobs. Each RunJobs call
// owns its own concurrency budget for the duration of the call — a
// "pool" is scoped to one fetch or write, not to the process lifetime,
// which keeps a client library call side-effect-free between calls.
type Pool struct {
	cfg *Config
}

func NewPool(cfg *Config) *Pool {
	if cfg == nil {
		cfg = defaultConfig()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	return &Pool{cfg: cfg}
}

// JobFunc is one unit of work. The payload is opaque to the pool; the
// result, if non-nil, is collected alongside any error from the same
// job. fn receives the pool's derived context, which is cancelled as
// soon as any sibling job returns a non-nil error.
type JobFunc func(ctx context.Context, payload interface{}) (interface{}, error)

// RunJobs runs fn over every payload with at most cfg.MaxWorkers
// concurrent invocations. It returns every non-nil result (in
// completion order, not submission order — callers needing submission
// order key results themselves) and every non-nil error, one per
// failing job. The third return value is a pool-level failure: the
// queue depth was exceeded, or ctx was cancelled/timed out before or
// during the run.
func (p *Pool) RunJobs(ctx context.Context, payloads []interface{}, fn JobFunc) ([]interface{}, []error, error) {
	if len(payloads) > p.cfg.QueueDepth {
		return nil, nil, fmt.Errorf("pool: %d jobs exceed queue depth %d", len(payloads), p.cfg.QueueDepth)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxWorkers)

	var (
		mu      sync.Mutex
		results []interface{}
		errs    []error
	)

	for _, payload := range payloads {
		payload := payload
		g.Go(func() error {
			res, err := fn(gctx, payload)

			mu.Lock()
			if res != nil {
				results = append(results, res)
			}
			if err != nil {
				errs = append(errs, err)
			}
			mu.Unlock()

			// Returning err (rather than always nil) is what makes
			// errgroup.WithContext cancel gctx for every other
			// in-flight job as soon as one fails.
			return err
		})
	}

	_ = g.Wait() // per-job errors are already collected above

	if ctx.Err() != nil {
		return results, errs, ctx.Err()
	}
	return results, errs, nil
}

// RunJobsErr is a convenience wrapper for callers that only want one
// combined error (via multierr) rather than the raw slice.
func (p *Pool) RunJobsErr(ctx context.Context, payloads []interface{}, fn JobFunc) ([]interface{}, error) {
	results, errs, err := p.RunJobs(ctx, payloads, fn)
	if err != nil {
		return results, err
	}
	return results, multierr.Combine(errs...)
}
