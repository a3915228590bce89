package vlist

import "context"

// SliceAdapter serves a Page straight out of an in-memory slice. It
// never reports HasMore — the whole data set is already resident —
// and ignores Cursor. Used for the static/eager scenarios (spec.md
// §7's "items" config path) and as the adapter under test for the
// reconciliation and layout logic, so tests don't need a fake
// network round trip.
type SliceAdapter[T Identifiable] struct {
	Items []T
}

// NewSliceAdapter wraps items for eager, fully-resident serving.
func NewSliceAdapter[T Identifiable](items []T) *SliceAdapter[T] {
	return &SliceAdapter[T]{Items: items}
}

// Read returns the requested window, clamped to the slice bounds.
func (a *SliceAdapter[T]) Read(ctx context.Context, req ReadRequest) (Page[T], error) {
	if err := ctx.Err(); err != nil {
		return Page[T]{}, err
	}
	start := req.Offset
	if start < 0 {
		start = 0
	}
	if start > len(a.Items) {
		start = len(a.Items)
	}
	end := start + req.Limit
	if req.Limit <= 0 || end > len(a.Items) {
		end = len(a.Items)
	}
	return Page[T]{
		Items:   a.Items[start:end],
		Total:   len(a.Items),
		HasMore: false,
	}, nil
}

// SetItems replaces the backing slice, e.g. after a setItems mutation.
func (a *SliceAdapter[T]) SetItems(items []T) { a.Items = items }
