package console

import (
	"context"
	"sync"

	"github.com/addisride/admin-console/gateway"
)

// DefaultPageSize matches the backend's default list limit.
const DefaultPageSize = 10

// fetchFunc loads one page of a resource.
type fetchFunc[T any] func(ctx context.Context, page, limit int) (*gateway.Page[T], error)

// Pager holds one list view's state: current page number, page size,
// loading flag and the last fetched page. Every fetch is tagged with a
// generation; a completion whose generation has been superseded is
// discarded, so an out-of-order response can never clobber the state the
// operator is currently looking at.
type Pager[T any] struct {
	authn Authenticator
	fetch fetchFunc[T]

	lock       sync.Mutex
	page       int
	limit      int
	loading    bool
	current    *gateway.Page[T]
	generation uint64
}

func NewPager[T any](authn Authenticator, fetch fetchFunc[T], limit int) *Pager[T] {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Pager[T]{
		authn: authn,
		fetch: fetch,
		page:  1,
		limit: limit,
	}
}

// SetPage moves the cursor and invalidates any in-flight fetch for the
// old position.
func (p *Pager[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.lock.Lock()
	p.page = page
	p.generation++
	p.loading = false
	p.lock.Unlock()
}

// Invalidate supersedes any in-flight fetch without moving the cursor.
// Controllers call it when a filter changes. The new generation has no
// fetch in flight, so the loading flag drops with it.
func (p *Pager[T]) Invalidate() {
	p.lock.Lock()
	p.generation++
	p.loading = false
	p.lock.Unlock()
}

// Load fetches the current page, applying the retry-after-refresh
// policy. The result replaces the view state wholesale unless a newer
// Load or navigation superseded this one, in which case it is discarded.
func (p *Pager[T]) Load(ctx context.Context) error {
	p.lock.Lock()
	p.generation++
	generation := p.generation
	page, limit := p.page, p.limit
	p.loading = true
	p.lock.Unlock()

	var result *gateway.Page[T]
	err := withAuthRetry(ctx, p.authn, func(ctx context.Context) error {
		var fetchErr error
		result, fetchErr = p.fetch(ctx, page, limit)
		return fetchErr
	})

	p.lock.Lock()
	defer p.lock.Unlock()
	if generation != p.generation {
		// A newer fetch owns the view now.
		return nil
	}
	p.loading = false
	if err != nil {
		return err
	}
	p.current = result
	return nil
}

// Current returns the last fetched page, or nil before the first load.
func (p *Pager[T]) Current() *gateway.Page[T] {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.current == nil {
		return nil
	}
	snapshot := *p.current
	snapshot.Items = make([]T, len(p.current.Items))
	copy(snapshot.Items, p.current.Items)
	return &snapshot
}

// Patch applies an optimistic local edit to the items in place. The
// next Load replaces the page wholesale, so the patch is a display
// convenience, never a second source of truth.
func (p *Pager[T]) Patch(apply func(items []T)) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.current != nil {
		apply(p.current.Items)
	}
}

// Remove drops items matching the predicate from the current page, for
// actions that make a row disappear (approving a verification, deleting
// a report).
func (p *Pager[T]) Remove(match func(item T) bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.current == nil {
		return
	}
	kept := p.current.Items[:0]
	for _, item := range p.current.Items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	removed := len(p.current.Items) - len(kept)
	p.current.Items = kept
	p.current.Total -= removed
}

// Loading reports whether the latest fetch is still in flight.
func (p *Pager[T]) Loading() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.loading
}

// PageNumber returns the current cursor position.
func (p *Pager[T]) PageNumber() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.page
}
