// Package hedgedmetrics publishes hedged-request statistics from
// hedgedhttp to a prometheus counter. It publishes the *difference*
// between successive snapshots because hedgedhttp's StatsSnapshot is
// cumulative for the lifetime of the client.
package hedgedmetrics

import (
	"time"

	"github.com/cristalhq/hedgedhttp"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsProvider is the subset of *hedgedhttp.Client needed here,
// narrowed for testability.
type StatsProvider interface {
	Snapshot() hedgedhttp.StatsSnapshot
}

type diffCounter struct {
	previous uint64
	counter  prometheus.Counter
}

// addAbsoluteToCounter adds the delta since the last call to the
// counter. newValue wrapping past math.MaxUint64 is handled the same
// way a prometheus.Counter handles process restarts: the subtraction
// wraps too, so the delta comes out small and positive either way.
func (d *diffCounter) addAbsoluteToCounter(newValue uint64) {
	d.counter.Add(float64(newValue - d.previous))
	d.previous = newValue
}

// Publish starts a background ticker that republishes the delta
// between successive hedged-request snapshots into ctr every period.
// It returns a stop function; callers must call it to avoid leaking
// the ticker goroutine.
func Publish(stats StatsProvider, ctr prometheus.Counter, period time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		dc := &diffCounter{counter: ctr}
		for {
			select {
			case <-ticker.C:
				snap := stats.Snapshot()
				dc.addAbsoluteToCounter(snap.ActualRoundTrips - snap.RequestedRoundTrips)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
