package vlist

import "testing"

func groupOf5(d int) any { return d / 5 }

func TestGroupLayout_BoundariesAndLength(t *testing.T) {
	g := NewGroupLayout(23, groupOf5, func(int) float64 { return 24 }, func(int) float64 { return 20 })

	if got, want := g.GroupCount(), 5; got != want {
		t.Fatalf("GroupCount() = %d, want %d", got, want)
	}
	// N=23 items + G=5 headers
	if got, want := g.Length(), 28; got != want {
		t.Errorf("Length() = %d, want %d", got, want)
	}
}

func TestGroupLayout_DataLayoutRoundTrip(t *testing.T) {
	g := NewGroupLayout(23, groupOf5, func(int) float64 { return 24 }, func(int) float64 { return 20 })

	for d := 0; d < 23; d++ {
		ell := g.DataToLayoutIndex(d)
		entry := g.GetEntry(ell)
		if entry.Kind != EntryItem {
			t.Fatalf("GetEntry(DataToLayoutIndex(%d)) kind = %v, want EntryItem", d, entry.Kind)
		}
		if back := g.LayoutToDataIndex(ell); back != d {
			t.Errorf("LayoutToDataIndex(DataToLayoutIndex(%d)=%d) = %d, want %d", d, ell, back, d)
		}
	}
}

func TestGroupLayout_HeaderEntries(t *testing.T) {
	g := NewGroupLayout(23, groupOf5, func(int) float64 { return 24 }, func(int) float64 { return 20 })

	for gi := 0; gi < g.GroupCount(); gi++ {
		b := g.Boundary(gi)
		entry := g.GetEntry(b.HeaderLayoutIndex)
		if entry.Kind != EntryHeader {
			t.Errorf("group %d header at layout index %d is not EntryHeader", gi, b.HeaderLayoutIndex)
		}
		if entry.GroupIndex != gi {
			t.Errorf("header entry GroupIndex = %d, want %d", entry.GroupIndex, gi)
		}
	}
}

func TestGroupLayout_NonAdjacentSameKeySplitsGroups(t *testing.T) {
	// keys: 0,0,1,0,0 — the second run of key 0 is a distinct group
	// from the first, per spec.md's pre-sorted-groups assumption.
	keys := []any{0, 0, 1, 0, 0}
	g := NewGroupLayout(len(keys), func(d int) any { return keys[d] }, func(int) float64 { return 24 }, func(int) float64 { return 20 })

	if got, want := g.GroupCount(), 3; got != want {
		t.Fatalf("GroupCount() = %d, want %d (non-adjacent same-key runs must not merge)", got, want)
	}
}

func TestGroupLayout_StickyStateAt(t *testing.T) {
	g := NewGroupLayout(23, groupOf5, func(int) float64 { return 24 }, func(int) float64 { return 20 })
	g.SetStickyHeaderHeight(24)

	// well inside group 0, far from the next header: no push transition.
	state := g.StickyStateAt(10)
	if state.GroupIndex != 0 {
		t.Errorf("StickyStateAt(10).GroupIndex = %d, want 0", state.GroupIndex)
	}
	if state.TranslateY != 0 {
		t.Errorf("StickyStateAt(10).TranslateY = %v, want 0 (far from next header)", state.TranslateY)
	}

	// group 0 spans layout indices [0,6) (1 header + 5 items of height
	// 20 = 100px then header at offset 124); scrolling to just before
	// the next header should trigger the push transition.
	nextHeaderOffset := g.heightCache.OffsetAt(g.boundaries[1].HeaderLayoutIndex)
	near := nextHeaderOffset - 10 // 10px away, less than stickyH=24
	state = g.StickyStateAt(near)
	if state.TranslateY >= 0 {
		t.Errorf("StickyStateAt(%v).TranslateY = %v, want negative push transition", near, state.TranslateY)
	}
	wantTranslate := 10.0 - 24.0
	if state.TranslateY != wantTranslate {
		t.Errorf("StickyStateAt(%v).TranslateY = %v, want %v", near, state.TranslateY, wantTranslate)
	}

	// last group: no next header to push against.
	lastBoundary := g.boundaries[g.GroupCount()-1]
	state = g.StickyStateAt(g.heightCache.OffsetAt(lastBoundary.HeaderLayoutIndex))
	if state.TranslateY != 0 {
		t.Errorf("StickyStateAt in last group TranslateY = %v, want 0", state.TranslateY)
	}
}

func TestGroupLayout_Rebuild(t *testing.T) {
	g := NewGroupLayout(23, groupOf5, func(int) float64 { return 24 }, func(int) float64 { return 20 })
	g.Rebuild(10, groupOf5)

	if got, want := g.GroupCount(), 2; got != want {
		t.Fatalf("GroupCount() after rebuild to 10 items = %d, want %d", got, want)
	}
	if got, want := g.Length(), 12; got != want { // 10 items + 2 headers
		t.Errorf("Length() after rebuild = %d, want %d", got, want)
	}
}
