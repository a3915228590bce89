package vlist

import "math"

// CompressionState is the snapshot CompressionMapper.State() exposes.
type CompressionState struct {
	IsCompressed bool
	ActualHeight float64
	VirtualHeight float64
	Ratio         float64 // ActualHeight / VirtualHeight
}

// CompressionMapper bidirectionally maps between virtual pixel space
// (the true height of the sequence) and actual pixel space (what the
// host's scroll machinery can represent), compressing only when the
// virtual height exceeds MaxElementHeight. A snap zone one viewport
// wide sits at the top and bottom so the first and last items always
// map exactly to 0 and actualHeight-itemHeight — otherwise rounding in
// the proportional map would leave the last few items unreachable.
type CompressionMapper struct {
	virtualHeight float64
	actualHeight  float64
	snapWidth     float64 // one viewport, in virtual pixels
}

// NewCompressionMapper builds a mapper for the given virtual height
// and viewport height (the snap zone width).
func NewCompressionMapper(virtualHeight, viewportHeight float64) *CompressionMapper {
	m := &CompressionMapper{}
	m.Reconfigure(virtualHeight, viewportHeight)
	return m
}

// Reconfigure recomputes compression state; called when item count or
// the height function changes (the orchestrator invalidates its
// cached state on every data mutation).
func (m *CompressionMapper) Reconfigure(virtualHeight, viewportHeight float64) {
	m.virtualHeight = virtualHeight
	m.snapWidth = viewportHeight
	if virtualHeight > MaxElementHeight {
		m.actualHeight = MaxElementHeight
	} else {
		m.actualHeight = virtualHeight
	}
}

// State returns the current compression snapshot.
func (m *CompressionMapper) State() CompressionState {
	ratio := 1.0
	if m.virtualHeight > 0 {
		ratio = m.actualHeight / m.virtualHeight
	}
	return CompressionState{
		IsCompressed:  m.virtualHeight > MaxElementHeight,
		ActualHeight:  m.actualHeight,
		VirtualHeight: m.virtualHeight,
		Ratio:         ratio,
	}
}

// VirtualToActual maps a virtual pixel offset to an actual one.
// Inside either snap zone the map is identity-plus-offset; outside,
// it's the proportional (actualHeight/virtualHeight) map.
func (m *CompressionMapper) VirtualToActual(v float64) float64 {
	if m.virtualHeight <= MaxElementHeight {
		return v
	}
	if v <= m.snapWidth {
		return v // identity in the top snap zone
	}
	if v >= m.virtualHeight-m.snapWidth {
		// identity-plus-offset in the bottom snap zone: preserves
		// exact distance from the end so the last item lands on
		// actualHeight exactly.
		return m.actualHeight - (m.virtualHeight - v)
	}
	return v * (m.actualHeight / m.virtualHeight)
}

// ActualToVirtual is the inverse of VirtualToActual.
func (m *CompressionMapper) ActualToVirtual(a float64) float64 {
	if m.virtualHeight <= MaxElementHeight {
		return a
	}
	if a <= m.snapWidth {
		return a
	}
	if a >= m.actualHeight-m.snapWidth {
		return m.virtualHeight - (m.actualHeight - a)
	}
	return a * (m.virtualHeight / m.actualHeight)
}

// JumpGranularity returns ceil(V/A): the maximum number of virtual
// pixels a single actual-pixel delta can advance, outside the snap
// zones. Callers must re-derive the visible range from the mapped
// offset after every actual-scroll delta rather than integrating
// deltas, because this granularity can be large.
func (m *CompressionMapper) JumpGranularity() float64 {
	if m.actualHeight <= 0 {
		return 1
	}
	g := math.Ceil(m.virtualHeight / m.actualHeight)
	if g < 1 {
		return 1
	}
	return g
}
