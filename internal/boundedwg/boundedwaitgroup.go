// Package boundedwg provides a WaitGroup that also bounds concurrency.
// Used where callers want simple fire-and-collect concurrency without
// the cancel-on-error semantics internal/pool provides — e.g.
// pkg/raw's multi-database table listing, where one database's
// failure shouldn't abort the others.
package boundedwg

import "sync"

// BoundedWaitGroup behaves like sync.WaitGroup except Add blocks once
// the configured capacity of in-flight Add calls is reached.
type BoundedWaitGroup struct {
	wg sync.WaitGroup
	ch chan struct{}
}

// New creates a BoundedWaitGroup with the given concurrency.
func New(capacity uint) BoundedWaitGroup {
	if capacity == 0 {
		panic("boundedwg: capacity must be greater than zero or else it will block forever")
	}
	return BoundedWaitGroup{ch: make(chan struct{}, capacity)}
}

// Add adds delta to the group, blocking until there is room when
// delta is positive.
func (bwg *BoundedWaitGroup) Add(delta int) {
	for i := 0; i > delta; i-- {
		<-bwg.ch
	}
	for i := 0; i < delta; i++ {
		bwg.ch <- struct{}{}
	}
	bwg.wg.Add(delta)
}

// Done marks one unit of work complete.
func (bwg *BoundedWaitGroup) Done() {
	bwg.Add(-1)
}

// Wait blocks until every outstanding unit of work calls Done.
func (bwg *BoundedWaitGroup) Wait() {
	bwg.wg.Wait()
}
