package vlist

import "context"

// Page is a contiguous slice of items returned by an Adapter read,
// plus enough metadata to know whether more data exists beyond it.
type Page[T Identifiable] struct {
	Items   []T
	Total   int    // -1 if unknown
	HasMore bool
	Cursor  string // opaque continuation token, adapter-defined
}

// ReadRequest describes one adapter fetch. Offset/Limit address a
// classic paginated source; Cursor lets cursor-based sources (e.g.
// wsadapter) resume from where a previous Page left off instead.
type ReadRequest struct {
	Offset int
	Limit  int
	Cursor string
}

// Adapter is the data source contract every lazily-loaded list binds
// to. Implementations must be safe to call concurrently: the Data
// Manager coalesces identical requests but does not serialize calls
// to distinct (even partly overlapping) ranges.
type Adapter[T Identifiable] interface {
	Read(ctx context.Context, req ReadRequest) (Page[T], error)
}
