package vlist

// MaxElementHeight is the ~16.7M px ceiling browser engines impose
// on a single element's usable height. Above this, the Compression
// Mapper takes over so multi-million-item lists stay scrollable.
const MaxElementHeight = 16_700_000.0

// LoadMoreThreshold is the distance, in host units, from the current
// viewport to the growth edge that triggers an infinite-scroll load.
const LoadMoreThreshold = 200.0

// ScrollIdleTimeout is how long scrolling must be quiet before
// IsScrolling reports false and the idle timer flushes any pending
// range.
const ScrollIdleTimeout = 150 // milliseconds

// CancelLoadVelocityThreshold is the px/ms velocity above which
// ensureRange is not invoked; the range is recorded as pending
// instead.
const CancelLoadVelocityThreshold = 25.0

// PreloadVelocityThreshold is the lower px/ms velocity above which a
// requested range is extended by PreloadAhead indices in the scroll
// direction.
const PreloadVelocityThreshold = 10.0

// PreloadAhead is how many extra indices are requested, in the
// scroll direction, once velocity crosses PreloadVelocityThreshold.
const PreloadAhead = 20

// InitialLoadSize is the chunk size requested by the first adapter
// read.
const InitialLoadSize = 50

// DefaultOverscan is the default number of extra items rendered above
// and below the visible range.
const DefaultOverscan = 3
