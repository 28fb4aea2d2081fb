// Package resource implements the one cursor-pagination helper shared
// by every resource family package (assets, events, raw, sequences,
// files), replacing what the original source repeats per-module as
// _list/_list_generator methods on each API class.
package resource

import "context"

// Page is one page of T-typed items plus the cursor to fetch the next
// page, empty when this was the last page.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// FetchPageFunc issues one list request for the given cursor (empty
// for the first page) and page size.
type FetchPageFunc[T any] func(ctx context.Context, cursor string, limit int) (Page[T], error)

// Iterator lazily walks every page of a filtered list, fetching the
// next page only once the current one is exhausted.
type Iterator[T any] struct {
	fetch  FetchPageFunc[T]
	limit  int
	buf    []T
	cursor string
	done   bool
}

// NewIterator builds an Iterator over fetch, requesting limit items per
// page (defaulted to 100 if not positive).
func NewIterator[T any](fetch FetchPageFunc[T], limit int) *Iterator[T] {
	if limit <= 0 {
		limit = 100
	}
	return &Iterator[T]{fetch: fetch, limit: limit}
}

// Next returns the next item, or ok=false once every page has been
// exhausted.
func (it *Iterator[T]) Next(ctx context.Context) (item T, ok bool, err error) {
	for len(it.buf) == 0 {
		if it.done {
			return item, false, nil
		}
		page, err := it.fetch(ctx, it.cursor, it.limit)
		if err != nil {
			return item, false, err
		}
		it.buf = page.Items
		it.cursor = page.NextCursor
		if it.cursor == "" {
			it.done = true
		}
		if len(page.Items) == 0 && it.done {
			return item, false, nil
		}
	}
	item = it.buf[0]
	it.buf = it.buf[1:]
	return item, true, nil
}

// CollectAll drains the iterator into a slice. Intended for filters
// expected to match a bounded, moderate-sized result set; callers
// expecting a large or unbounded result set should drive Next directly
// instead of holding everything in memory.
func CollectAll[T any](ctx context.Context, fetch FetchPageFunc[T], limit int) ([]T, error) {
	it := NewIterator(fetch, limit)
	var out []T
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out, nil
}
