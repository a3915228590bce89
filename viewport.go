package vlist

// ViewportState is recomputed on every scroll and resize.
type ViewportState struct {
	ScrollActual      float64
	ContainerHeight   float64
	ActualTotalHeight float64
	VirtualTotalHeight float64
	CompressionActive bool
	CompressionRatio  float64

	VisStart, VisEnd int // visible index range, inclusive
	RenStart, RenEnd int // render index range (visible +- overscan), inclusive
}

// RenderRangeEqual reports whether two states have the same render range — the
// render-skip memo compares only this, per spec.md §4.3.
func (v ViewportState) RenderRangeEqual(o ViewportState) bool {
	return v.RenStart == o.RenStart && v.RenEnd == o.RenEnd
}

// ComputeViewport is the pure function spec.md §4.3 describes:
// (scrollActual, containerHeight, compression, heightCache, overscan)
// -> ViewportState. It never mutates its inputs.
func ComputeViewport(scrollActual, containerHeight float64, comp *CompressionMapper, hc HeightCache, overscan int) ViewportState {
	state := comp.State()
	virtual := comp.ActualToVirtual(scrollActual)

	length := hc.Length()
	var visStart, visEnd int
	if length == 0 {
		visStart, visEnd = 0, -1
	} else {
		visStart = hc.IndexAtOffset(virtual)
		visEnd = visStart
		target := virtual + containerHeight
		for visEnd < length-1 && hc.OffsetAt(visEnd+1) < target {
			visEnd++
		}
	}

	renStart := visStart - overscan
	if renStart < 0 {
		renStart = 0
	}
	renEnd := visEnd + overscan
	if renEnd > length-1 {
		renEnd = length - 1
	}
	if renEnd < renStart {
		renEnd = renStart - 1 // empty range, still well-formed
	}

	return ViewportState{
		ScrollActual:       scrollActual,
		ContainerHeight:    containerHeight,
		ActualTotalHeight:  state.ActualHeight,
		VirtualTotalHeight: state.VirtualHeight,
		CompressionActive:  state.IsCompressed,
		CompressionRatio:   state.Ratio,
		VisStart:           visStart,
		VisEnd:             visEnd,
		RenStart:           renStart,
		RenEnd:             renEnd,
	}
}
