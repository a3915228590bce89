package vlist

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// range_ is a half-open [Start, End) data-index window.
type range_ struct {
	Start, End int
}

func (r range_) empty() bool { return r.End <= r.Start }

func (r range_) overlaps(o range_) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r range_) union(o range_) range_ {
	u := r
	if o.Start < u.Start {
		u.Start = o.Start
	}
	if o.End > u.End {
		u.End = o.End
	}
	return u
}

// DataManagerErrorContext identifies which operation produced an
// adapter error, used to tag ErrorEvent.Context.
type DataManagerErrorContext string

const (
	ErrLoadInitial DataManagerErrorContext = "loadInitial"
	ErrEnsureRange DataManagerErrorContext = "ensureRange"
	ErrLoadMore    DataManagerErrorContext = "loadMore"
)

// DataManager mediates between the render loop's range demands and an
// Adapter: it skips a range fully covered by an in-flight read,
// coalesces concurrent reads of the identical range with singleflight,
// tracks a generation counter so responses to a superseded request are
// discarded rather than applied, and defers a range to "pending" when
// scroll velocity is too high to be worth fetching yet (spec.md's
// cancel/preload velocity gating).
type DataManager[T Identifiable] struct {
	adapter Adapter[T]

	mu    sync.Mutex
	items []T
	total int // -1 if unknown

	generation int
	inFlight   map[range_]struct{}
	pending    *range_

	group singleflight.Group

	onError  func(ctx DataManagerErrorContext, err error)
	onLoaded func(r range_)
}

// NewDataManager creates a manager with no resident items.
func NewDataManager[T Identifiable](adapter Adapter[T], onError func(DataManagerErrorContext, error), onLoaded func(range_)) *DataManager[T] {
	return &DataManager[T]{
		adapter:  adapter,
		total:    -1,
		inFlight: make(map[range_]struct{}),
		onError:  onError,
		onLoaded: onLoaded,
	}
}

// SetItems replaces the resident item set wholesale (spec.md's eager
// "items" path, or a full refresh of a lazy source). Bumps the
// generation so any in-flight partial loads are discarded on arrival.
func (m *DataManager[T]) SetItems(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
	m.total = len(items)
	m.generation++
	m.inFlight = make(map[range_]struct{})
	m.pending = nil
}

// Len returns the number of resident items (placeholders count).
func (m *DataManager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Total returns the known total item count, or -1 if the adapter
// hasn't reported one yet.
func (m *DataManager[T]) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Get returns the item at data index i and whether it is resident
// (false means render a Placeholder).
func (m *DataManager[T]) Get(i int) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if i < 0 || i >= len(m.items) {
		return zero, false
	}
	return m.items[i], true
}

// LoadInitial fetches the first InitialLoadSize items. Called once at
// mount when the engine was configured with an Adapter instead of an
// eager item slice.
func (m *DataManager[T]) LoadInitial(ctx context.Context) {
	m.fetch(ctx, range_{Start: 0, End: InitialLoadSize}, ErrLoadInitial)
}

// EnsureRange guarantees every index in [start,end) is resident,
// subject to velocity gating: if velocity exceeds
// CancelLoadVelocityThreshold the range is recorded as pending and
// not fetched; FlushPending should be called once scrolling settles.
// A velocity between PreloadVelocityThreshold and the cancel threshold
// extends the fetched range by PreloadAhead indices in the scroll
// direction.
func (m *DataManager[T]) EnsureRange(ctx context.Context, start, end int, velocity float64, scrollingForward bool) {
	want := range_{Start: start, End: end}

	m.mu.Lock()
	missing := m.missingWithin(want)
	m.mu.Unlock()
	if missing.empty() {
		return
	}

	if velocity > CancelLoadVelocityThreshold {
		m.mu.Lock()
		if m.pending == nil {
			m.pending = &missing
		} else {
			u := m.pending.union(missing)
			m.pending = &u
		}
		m.mu.Unlock()
		return
	}

	if velocity > PreloadVelocityThreshold {
		if scrollingForward {
			missing.End += PreloadAhead
		} else {
			missing.Start -= PreloadAhead
			if missing.Start < 0 {
				missing.Start = 0
			}
		}
	}

	m.fetch(ctx, missing, ErrEnsureRange)
}

// FlushPending re-issues the range deferred by the last
// velocity-gated EnsureRange call, if any. Called by the scroll idle
// timer.
func (m *DataManager[T]) FlushPending(ctx context.Context) {
	m.mu.Lock()
	p := m.pending
	m.pending = nil
	m.mu.Unlock()
	if p == nil || p.empty() {
		return
	}
	m.fetch(ctx, *p, ErrEnsureRange)
}

// LoadMore fetches the next InitialLoadSize items past the current
// resident end, for infinite-scroll triggers.
func (m *DataManager[T]) LoadMore(ctx context.Context) {
	m.mu.Lock()
	start := len(m.items)
	m.mu.Unlock()
	m.fetch(ctx, range_{Start: start, End: start + InitialLoadSize}, ErrLoadMore)
}

// missingWithin returns the sub-range of want not yet resident and
// not already in flight. Caller holds m.mu.
func (m *DataManager[T]) missingWithin(want range_) range_ {
	start := want.Start
	if start < len(m.items) {
		start = len(m.items) // everything below len(items) is resident
	}
	if start < want.Start {
		start = want.Start
	}
	end := want.End
	for r := range m.inFlight {
		if r.overlaps(range_{start, end}) {
			if r.Start <= start && r.End >= end {
				return range_{0, 0} // fully covered by an in-flight fetch
			}
		}
	}
	return range_{Start: start, End: end}
}

func (m *DataManager[T]) fetch(ctx context.Context, r range_, errCtx DataManagerErrorContext) {
	if r.empty() {
		return
	}
	key := fmt.Sprintf("%d:%d", r.Start, r.End)

	m.mu.Lock()
	m.inFlight[r] = struct{}{}
	gen := m.generation
	m.mu.Unlock()

	go func() {
		v, err, _ := m.group.Do(key, func() (any, error) {
			return m.adapter.Read(ctx, ReadRequest{Offset: r.Start, Limit: r.End - r.Start})
		})

		m.mu.Lock()
		delete(m.inFlight, r)
		stale := gen != m.generation
		m.mu.Unlock()
		if stale {
			return
		}

		if err != nil {
			if m.onError != nil {
				m.onError(errCtx, err)
			}
			return
		}

		page := v.(Page[T])
		m.applyPage(r.Start, page)
		if m.onLoaded != nil {
			m.onLoaded(range_{Start: r.Start, End: r.Start + len(page.Items)})
		}
	}()
}

func (m *DataManager[T]) applyPage(offset int, page Page[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	need := offset + len(page.Items)
	if need > len(m.items) {
		grown := make([]T, need)
		copy(grown, m.items)
		m.items = grown
	}
	copy(m.items[offset:], page.Items)
	if page.Total >= 0 {
		m.total = page.Total
	}
}
