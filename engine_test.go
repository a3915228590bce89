package vlist

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"vlist/surface"
	"vlist/surface/memsurface"
)

type row struct {
	id   int
	text string
}

func (r row) ItemKey() any { return r.id }

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{id: i, text: fmt.Sprintf("row-%d", i)}
	}
	return rows
}

func textTemplate(item row, index int, state ItemState) surface.Content {
	return surface.Text(item.text)
}

func mountEngine(t *testing.T, n int, cfg func(*Config[row])) (*Engine[row], *memsurface.Host) {
	t.Helper()
	host := memsurface.New(300, 200)
	c := Config[row]{
		Host:       host,
		ItemHeight: 20,
		Items:      makeRows(n),
		Template:   textTemplate,
	}
	if cfg != nil {
		cfg(&c)
	}
	e := NewEngine(c)
	if err := e.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return e, host
}

func TestEngine_StaticFixedHeightList(t *testing.T) {
	e, host := mountEngine(t, 100, nil)

	if host.MountedCount() == 0 {
		t.Fatal("expected some nodes mounted after Mount")
	}
	vp := e.Viewport()
	if vp.RenEnd < vp.RenStart {
		t.Fatal("expected a non-empty render range for a 100-item list in a 200px viewport")
	}

	for _, n := range host.MountedNodes() {
		idxStr := n.Attr("data-index")
		if idxStr == "" {
			t.Errorf("mounted node missing data-index attr")
		}
	}
}

func TestEngine_SetItemsShrinkAndGrow(t *testing.T) {
	e, host := mountEngine(t, 100, nil)

	e.SetItems(makeRows(5))
	if host.ContentHeight() != 100 { // 5 * 20
		t.Errorf("ContentHeight() after shrink = %v, want 100", host.ContentHeight())
	}
	if host.MountedCount() > 5 {
		t.Errorf("MountedCount() = %d, want <= 5 after shrinking to 5 items", host.MountedCount())
	}

	e.SetItems(makeRows(1000))
	if host.ContentHeight() != 20_000 {
		t.Errorf("ContentHeight() after grow = %v, want 20000", host.ContentHeight())
	}
}

func TestEngine_CompressedLargeList(t *testing.T) {
	// enough rows that total virtual height exceeds MaxElementHeight
	n := int(MaxElementHeight/20) + 10_000
	e, host := mountEngine(t, n, nil)

	vp := e.Viewport()
	if !vp.CompressionActive {
		t.Fatal("expected compression to activate for a list this large")
	}
	if host.ContentHeight() > MaxElementHeight {
		t.Errorf("ContentHeight() = %v, want <= MaxElementHeight", host.ContentHeight())
	}

	// scroll to the very end; the last item must still be reachable.
	e.OnScroll(host.ContentHeight(), time.Now())
	vp = e.Viewport()
	if vp.VisEnd != n-1 && vp.RenEnd != n-1 {
		t.Errorf("scrolling to the end did not reach the last index: VisEnd=%d RenEnd=%d length=%d", vp.VisEnd, vp.RenEnd, n)
	}
}

func TestEngine_IdentityPreservedAcrossScroll(t *testing.T) {
	e, host := mountEngine(t, 1000, nil)

	before := map[int]*memsurface.Node{}
	for _, n := range host.MountedNodes() {
		before[n.ID] = n
	}

	e.OnScroll(40, time.Now()) // scroll by two rows, well within overscan
	after := host.MountedNodes()

	reused := 0
	for _, n := range after {
		if _, ok := before[n.ID]; ok {
			reused++
		}
	}
	if reused == 0 {
		t.Error("expected at least some nodes to be reused (not recreated) across a small scroll")
	}
}

func TestEngine_DestroyReleasesEveryNode(t *testing.T) {
	e, host := mountEngine(t, 500, nil)
	if host.MountedCount() == 0 {
		t.Fatal("expected nodes mounted before Destroy")
	}
	e.Destroy()
	if host.MountedCount() != 0 {
		t.Errorf("MountedCount() after Destroy = %d, want 0", host.MountedCount())
	}
	if !host.Destroyed() {
		t.Error("expected host.Destroyed() to be true after Engine.Destroy")
	}

	// destroyed engine's mutating calls are no-ops, not panics
	e.SetItems(makeRows(10))
	e.OnScroll(10, time.Now())
	if host.MountedCount() != 0 {
		t.Error("destroyed engine's OnScroll should not remount anything")
	}
}

func TestEngine_GroupedList(t *testing.T) {
	e, _ := mountEngine(t, 250, func(c *Config[row]) {
		c.Group = &GroupConfig[row]{
			KeyOf:        func(item row, index int) any { return item.id / 50 },
			HeaderHeight: func(groupIndex int) float64 { return 20 },
		}
	})

	if e.group.GroupCount() != 5 {
		t.Fatalf("GroupCount() = %d, want 5", e.group.GroupCount())
	}
	for g := 0; g < e.group.GroupCount(); g++ {
		b := e.group.Boundary(g)
		entry := e.group.GetEntry(b.HeaderLayoutIndex)
		if entry.Kind != EntryHeader {
			t.Errorf("group %d's HeaderLayoutIndex %d is not a header entry", g, b.HeaderLayoutIndex)
		}
	}
}

func TestEngine_GridLayoutFourColumns(t *testing.T) {
	e, host := mountEngine(t, 40, func(c *Config[row]) {
		c.Grid = &GridConfig{Columns: 4, Gap: 2, RowHeight: func(row int) float64 { return 20 }}
	})
	host.Resize(400, 200)
	e.OnResize(surface.ResizeEvent{Width: 400, Height: 200})

	if e.grid.RowCount() != 10 {
		t.Fatalf("RowCount() = %d, want 10", e.grid.RowCount())
	}
	row0, col0 := e.grid.RowColOf(3)
	if row0 != 0 || col0 != 3 {
		t.Errorf("RowColOf(3) = (%d,%d), want (0,3)", row0, col0)
	}
	if d := e.grid.DataIndexAt(1, 0); d != 4 {
		t.Errorf("DataIndexAt(1,0) = %d, want 4", d)
	}
}

func TestEngine_AdapterLoadStormPrevention(t *testing.T) {
	// 50 concurrent, identical-range EnsureRange calls — the shape of a
	// scroll storm that keeps landing on the same missing window —
	// must coalesce to a single adapter.Read via singleflight rather
	// than firing one request per call.
	source := makeRows(10_000)
	var mu sync.Mutex
	calls := 0
	adapter := &countingAdapter{inner: NewSliceAdapter(source), calls: &calls, mu: &mu}

	var wg sync.WaitGroup
	wg.Add(50)
	dm := NewDataManager[row](adapter, nil, func(range_) { wg.Done() })

	for i := 0; i < 50; i++ {
		go dm.EnsureRange(context.Background(), 0, 50, 0, true)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls > 5 {
		t.Errorf("adapter.Read called %d times for 50 concurrent identical-range requests, expected singleflight to keep this near 1", calls)
	}
}

type countingAdapter struct {
	inner *SliceAdapter[row]
	calls *int
	mu    *sync.Mutex
}

func (c *countingAdapter) Read(ctx context.Context, req ReadRequest) (Page[row], error) {
	c.mu.Lock()
	*c.calls++
	c.mu.Unlock()
	return c.inner.Read(ctx, req)
}
