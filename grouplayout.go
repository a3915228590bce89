package vlist

import "sort"

// GroupEntryKind distinguishes a layout-index entry produced by a
// GroupLayout.
type GroupEntryKind int

const (
	EntryItem GroupEntryKind = iota
	EntryHeader
)

// LayoutEntry describes what occupies a single layout index.
type LayoutEntry struct {
	Kind       GroupEntryKind
	DataIndex  int // valid when Kind == EntryItem
	GroupIndex int
	GroupKey   any
}

// GroupBoundary marks where one group starts in both the data and
// layout index spaces. A new boundary starts whenever getGroupForIndex
// returns a different key than the previous item — items are assumed
// pre-sorted by group; non-adjacent occurrences of the same key
// deliberately create separate groups (spec.md §4.9).
type GroupBoundary struct {
	Key             any
	GroupIndex      int
	HeaderLayoutIndex int
	FirstDataIndex  int
	Count           int
}

// GroupLayout splices group-header pseudo-entries into the data
// index space and supplies O(log G) bidirectional index mapping plus
// sticky-header tracking.
type GroupLayout struct {
	boundaries []GroupBoundary
	dataLen    int
	layoutLen  int // dataLen + len(boundaries)

	headerHeight func(groupIndex int) float64
	itemHeight   func(dataIndex int) float64

	heightCache *VariableHeightCache

	// sticky header state
	activeGroup int
	stickyH     float64
}

// NewGroupLayout builds a group layout for dataLen items, where
// groupFor(d) returns the (comparable) group key for data index d.
func NewGroupLayout(dataLen int, groupFor func(d int) any, headerHeight func(groupIndex int) float64, itemHeight func(dataIndex int) float64) *GroupLayout {
	g := &GroupLayout{headerHeight: headerHeight, itemHeight: itemHeight}
	g.Rebuild(dataLen, groupFor)
	return g
}

// Rebuild rescans the data sequence and recomputes boundaries, the
// layout length, and the height cache. Per spec.md §9's open question
// on reconfiguration, any change to the header-height source (fixed
// vs per-group function) requires this full rebuild — there is no
// partial-invalidation path.
func (g *GroupLayout) Rebuild(dataLen int, groupFor func(d int) any) {
	g.dataLen = dataLen
	g.boundaries = g.boundaries[:0]

	var prevKey any
	havePrev := false
	for d := 0; d < dataLen; d++ {
		key := groupFor(d)
		if !havePrev || key != prevKey {
			g.boundaries = append(g.boundaries, GroupBoundary{
				Key:            key,
				GroupIndex:     len(g.boundaries),
				FirstDataIndex: d,
			})
			havePrev = true
			prevKey = key
		}
		g.boundaries[len(g.boundaries)-1].Count++
	}

	// assign header layout indices and layout length
	ell := 0
	for i := range g.boundaries {
		g.boundaries[i].HeaderLayoutIndex = ell
		ell += 1 + g.boundaries[i].Count
	}
	g.layoutLen = ell

	g.heightCache = NewVariableHeightCache(g.heightOfLayoutIndex, g.layoutLen)
}

func (g *GroupLayout) heightOfLayoutIndex(ell int) float64 {
	entry := g.GetEntry(ell)
	if entry.Kind == EntryHeader {
		return g.headerHeight(entry.GroupIndex)
	}
	return g.itemHeight(entry.DataIndex)
}

// Length returns L = N + G.
func (g *GroupLayout) Length() int { return g.layoutLen }

// HeightCache returns the layout-index-keyed height cache (header
// rows report header height, item rows report item height).
func (g *GroupLayout) HeightCache() HeightCache { return g.heightCache }

// boundaryFor returns the boundary index owning data index d, via
// binary search over FirstDataIndex.
func (g *GroupLayout) boundaryFor(d int) int {
	i := sort.Search(len(g.boundaries), func(i int) bool {
		return g.boundaries[i].FirstDataIndex > d
	})
	return i - 1
}

// DataToLayoutIndex maps a data index to its layout index (skipping
// over every header before it).
func (g *GroupLayout) DataToLayoutIndex(d int) int {
	if d < 0 || d >= g.dataLen || len(g.boundaries) == 0 {
		return d
	}
	bi := g.boundaryFor(d)
	b := g.boundaries[bi]
	return b.HeaderLayoutIndex + 1 + (d - b.FirstDataIndex)
}

// LayoutToDataIndex maps a layout index to the data index it
// represents. Calling this on a header index returns the first data
// index of that group (callers should check GetEntry first to avoid
// treating a header as an item).
func (g *GroupLayout) LayoutToDataIndex(ell int) int {
	entry := g.GetEntry(ell)
	if entry.Kind == EntryItem {
		return entry.DataIndex
	}
	return g.boundaries[entry.GroupIndex].FirstDataIndex
}

// GetEntry describes what occupies layout index ell.
func (g *GroupLayout) GetEntry(ell int) LayoutEntry {
	// binary search over HeaderLayoutIndex for the owning boundary
	bi := sort.Search(len(g.boundaries), func(i int) bool {
		return g.boundaries[i].HeaderLayoutIndex > ell
	}) - 1
	if bi < 0 {
		bi = 0
	}
	b := g.boundaries[bi]
	if ell == b.HeaderLayoutIndex {
		return LayoutEntry{Kind: EntryHeader, GroupIndex: bi, GroupKey: b.Key}
	}
	dataIdx := b.FirstDataIndex + (ell - b.HeaderLayoutIndex - 1)
	return LayoutEntry{Kind: EntryItem, DataIndex: dataIdx, GroupIndex: bi, GroupKey: b.Key}
}

// GroupCount returns G, the number of groups.
func (g *GroupLayout) GroupCount() int { return len(g.boundaries) }

// Boundary returns the boundary for a given group index.
func (g *GroupLayout) Boundary(groupIndex int) GroupBoundary {
	return g.boundaries[groupIndex]
}

// GroupAt returns the group index owning layout index ell.
func (g *GroupLayout) GroupAt(ell int) int {
	return g.GetEntry(ell).GroupIndex
}

// StickyHeaderState describes how to render the pinned header node:
// which group is active, and the pixel offset (0 or negative) to
// translate it by for the push transition.
type StickyHeaderState struct {
	GroupIndex int
	TranslateY float64 // 0 = no transition; negative = pushed up
}

// SetStickyHeaderHeight configures the sticky node's own height, used
// by the push-transition calculation.
func (g *GroupLayout) SetStickyHeaderHeight(h float64) { g.stickyH = h }

// StickyStateAt computes the active group and push-transition offset
// for the sticky header, given the current scroll offset in virtual
// pixels. Spec.md §4.9: a push transition applies when the distance
// from scrollTop to the next header's offset is less than the sticky
// header's height; the sticky node translates up by
// (distance - stickyHeight), a negative value. No transform when the
// distance exceeds the sticky height or the current group is last.
func (g *GroupLayout) StickyStateAt(scrollTopVirtual float64) StickyHeaderState {
	if len(g.boundaries) == 0 {
		return StickyHeaderState{}
	}
	ell := g.heightCache.IndexAtOffset(scrollTopVirtual)
	active := g.GroupAt(ell)
	g.activeGroup = active

	state := StickyHeaderState{GroupIndex: active}
	if active >= len(g.boundaries)-1 {
		return state // last group: no next header to push against
	}
	nextHeaderOffset := g.heightCache.OffsetAt(g.boundaries[active+1].HeaderLayoutIndex)
	distance := nextHeaderOffset - scrollTopVirtual
	if distance < g.stickyH {
		state.TranslateY = distance - g.stickyH
	}
	return state
}
