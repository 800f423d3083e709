package table

import (
	"context"
	"strings"
	"sync"
)

// DefaultItemsPerPage is the page size used when none is configured.
const DefaultItemsPerPage = 10

// DefaultLoadError is the message stored when a fetch fails without one.
const DefaultLoadError = "Veriler yüklenirken hata oluştu"

// FetchFunc loads the full collection.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Predicate selects items for mutation or filtering.
type Predicate[T any] func(item T) bool

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithItemsPerPage sets the page size. Non-positive values are ignored.
func WithItemsPerPage[T any](n int) Option[T] {
	return func(c *Controller[T]) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithSearchKey designates the searchable fields. An item matches a query
// when any key contains it.
func WithSearchKey[T any](keys ...SearchKey[T]) Option[T] {
	return func(c *Controller[T]) {
		c.keys = append(c.keys, keys...)
	}
}

// WithFilter installs a predicate applied before search and paging.
func WithFilter[T any](p Predicate[T]) Option[T] {
	return func(c *Controller[T]) { c.filter = p }
}

// WithInitialData seeds the collection before the first load.
func WithInitialData[T any](items []T) Option[T] {
	return func(c *Controller[T]) { c.items = append([]T(nil), items...) }
}

// Controller owns one in-memory collection and derives its visible page by
// filtering, then searching, then slicing. It is safe for concurrent use.
//
// Load is the only operation with an external effect. Concurrent loads are
// sequenced: each call takes a ticket and a result is applied only when its
// ticket is newer than the last applied one, so a stale response never
// overwrites a newer one.
type Controller[T any] struct {
	mu sync.RWMutex

	fetch   FetchFunc[T]
	perPage int
	keys    []SearchKey[T]
	filter  Predicate[T]

	items   []T
	query   string
	page    int
	loading bool
	errMsg  string

	issued   uint64
	applied  uint64
	inflight int

	ready     chan struct{}
	readyOnce sync.Once
}

// New constructs a Controller with an empty collection. When fetch is non-nil
// the controller starts in the loading state; call Load (or use Open) to
// perform the initial fetch.
func New[T any](fetch FetchFunc[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		fetch:   fetch,
		perPage: DefaultItemsPerPage,
		page:    1,
		loading: fetch != nil,
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if fetch == nil {
		c.markReady()
	}
	return c
}

// Open constructs a Controller and triggers the initial load in the
// background. Ready is closed once that load resolves.
func Open[T any](ctx context.Context, fetch FetchFunc[T], opts ...Option[T]) *Controller[T] {
	c := New(fetch, opts...)
	if fetch != nil {
		go c.Load(ctx)
	}
	return c
}

// Ready is closed after the first load resolves, successfully or not.
func (c *Controller[T]) Ready() <-chan struct{} {
	return c.ready
}

func (c *Controller[T]) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}

// Load invokes the fetch function. On success it replaces the collection and
// clears the error; on failure it stores a human-readable message and keeps
// the previous collection. Loading is cleared once no load is in flight.
// Results of loads superseded by a newer one are discarded.
func (c *Controller[T]) Load(ctx context.Context) {
	if c.fetch == nil {
		return
	}

	c.mu.Lock()
	c.issued++
	ticket := c.issued
	c.inflight++
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	c.inflight--
	c.loading = c.inflight > 0
	if ticket > c.applied {
		c.applied = ticket
		if err != nil {
			c.errMsg = loadErrorMessage(err)
		} else {
			c.items = append([]T(nil), items...)
			c.errMsg = ""
		}
	}
	c.mu.Unlock()

	c.markReady()
}

// Refresh reloads the collection. It is Load under the name list views use.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.Load(ctx)
}

func loadErrorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultLoadError
}

// Loading reports whether a load is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the message of the last failed load, or "" when the last
// applied load succeeded.
func (c *Controller[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// SetSearchQuery sets the search query. The page cursor is kept; it is
// clamped when the page is derived.
func (c *Controller[T]) SetSearchQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// SearchQuery returns the current search query.
func (c *Controller[T]) SearchQuery() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// SetFilter replaces the pre-search filter; nil removes it.
func (c *Controller[T]) SetFilter(p Predicate[T]) {
	c.mu.Lock()
	c.filter = p
	c.mu.Unlock()
}

// GoToPage moves the cursor to n clamped to [1, TotalPages] (1 when there
// are no pages). It never fails.
func (c *Controller[T]) GoToPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = clampPage(n, totalPages(len(c.filteredLocked()), c.perPage))
}

// CurrentPage returns the cursor clamped to the current page count.
func (c *Controller[T]) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clampPage(c.page, totalPages(len(c.filteredLocked()), c.perPage))
}

// ItemsPerPage returns the configured page size.
func (c *Controller[T]) ItemsPerPage() int {
	return c.perPage
}

// TotalPages returns ceil(filtered count / items per page).
func (c *Controller[T]) TotalPages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return totalPages(len(c.filteredLocked()), c.perPage)
}

// TotalItemCount returns the size of the filtered, unpaged collection.
func (c *Controller[T]) TotalItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filteredLocked())
}

// VisiblePage returns the items of the current page.
func (c *Controller[T]) VisiblePage() []T {
	return c.Page().Items
}

// Page returns a consistent snapshot of the derived view.
func (c *Controller[T]) Page() Page[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := c.filteredLocked()
	total := totalPages(len(filtered), c.perPage)
	current := clampPage(c.page, total)
	start, end := pageBounds(current, c.perPage, len(filtered))

	return Page[T]{
		Items:        append([]T{}, filtered[start:end]...),
		CurrentPage:  current,
		TotalPages:   total,
		TotalItems:   len(filtered),
		ItemsPerPage: c.perPage,
		Query:        c.query,
		Loading:      c.loading,
		Error:        c.errMsg,
	}
}

// Items returns a copy of the full collection.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T{}, c.items...)
}

// SetItems replaces the full collection.
func (c *Controller[T]) SetItems(items []T) {
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.mu.Unlock()
}

// DeleteItem removes every item matching match from the full collection and
// returns how many were removed. Surviving items keep their order. It does
// not touch the remote collection; call it after the remote delete succeeded.
func (c *Controller[T]) DeleteItem(match Predicate[T]) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	removed := len(c.items) - len(kept)
	if removed > 0 {
		c.items = kept
	}
	return removed
}

// UpdateItem replaces every item matching match with patch applied to a copy
// of it and returns how many were updated. Non-matching items are untouched.
// Applying the same field-merging patch twice yields the same collection.
func (c *Controller[T]) UpdateItem(match Predicate[T], patch func(T) T) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var updated []T
	n := 0
	for i, item := range c.items {
		if !match(item) {
			continue
		}
		if updated == nil {
			updated = append([]T(nil), c.items...)
		}
		updated[i] = patch(item)
		n++
	}
	if n > 0 {
		c.items = updated
	}
	return n
}

// ReplaceItem replaces every item matching match with v, typically the
// entity returned by a confirmed remote update.
func (c *Controller[T]) ReplaceItem(match Predicate[T], v T) int {
	return c.UpdateItem(match, func(T) T { return v })
}

// Remove runs del, the remote delete, and drops the items matching match
// only once it succeeded. A failed delete leaves the collection unchanged
// and is returned as is.
func (c *Controller[T]) Remove(ctx context.Context, match Predicate[T], del func(context.Context) error) (int, error) {
	if err := del(ctx); err != nil {
		return 0, err
	}
	return c.DeleteItem(match), nil
}

// Apply runs write, the remote update, and replaces the items matching match
// with the entity it returns. Derived fields such as joined display names
// come from that entity. A failed write leaves the collection unchanged.
func (c *Controller[T]) Apply(ctx context.Context, match Predicate[T], write func(context.Context) (T, error)) (T, error) {
	v, err := write(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.ReplaceItem(match, v)
	return v, nil
}

// filteredLocked applies the filter and search query. The caller must hold mu.
func (c *Controller[T]) filteredLocked() []T {
	query := strings.ToLower(c.query)
	searching := query != "" && len(c.keys) > 0
	if c.filter == nil && !searching {
		return c.items
	}
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.filter != nil && !c.filter(item) {
			continue
		}
		if searching && !matches(item, c.keys, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}
