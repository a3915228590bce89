package vlist

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"vlist/surface"
)

// EngineState is the lifecycle state machine spec.md §5 describes:
// constructing -> initialized <-> rendering -> destroyed. Mutating
// calls after destroyed are no-ops; ScrollToIndex called before Mount
// has succeeded returns ErrNotMounted.
type EngineState int

const (
	StateConstructing EngineState = iota
	StateInitialized
	StateRendering
	StateDestroyed
)

// Engine is the orchestrator every host binds to: it owns config
// validation, dependency-ordered construction of the height cache,
// compression mapper, element pool, renderer, scroll controller, data
// manager, selection set, and event bus, and drives them through one
// render loop per scroll/resize/mutation. Grouping and gridding are
// implemented as Engine-owned optional components with declared
// mutual exclusion (validated at Mount) rather than a fully dynamic
// capability-registry of plugins — see DESIGN.md for why.
type Engine[T Identifiable] struct {
	cfg   Config[T]
	state EngineState
	log   zerolog.Logger

	data      *DataManager[T]
	heights   HeightCache
	group     *GroupLayout
	grid      *GridLayout
	comp      *CompressionMapper
	pool      *ElementPool
	renderer  *Renderer
	scroll    *ScrollController
	selection *Selection
	bus       *EventBus

	viewport           ViewportState
	rendered           bool
	focusedLayoutIndex int
}

// NewEngine constructs an Engine in state Constructing. Call Mount to
// validate cfg and bring it to Initialized.
func NewEngine[T Identifiable](cfg Config[T]) *Engine[T] {
	return &Engine[T]{cfg: cfg, state: StateConstructing, focusedLayoutIndex: -1}
}

// Mount validates the configuration, wires every component in
// dependency order, and performs the initial render. Returns a
// *ConfigError (non-recoverable) if validation fails; the engine
// remains in StateConstructing and must be discarded.
func (e *Engine[T]) Mount(ctx context.Context) error {
	if e.state != StateConstructing {
		return fmt.Errorf("vlist: Mount called in state %d, expected Constructing", e.state)
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	e.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("component", "vlist").Logger()
	e.bus = NewEventBus(e.log)
	e.selection = NewSelection(e.cfg.SelectionMode)
	e.scroll = NewScrollController()

	adapter := e.cfg.Adapter
	if adapter == nil {
		adapter = NewSliceAdapter(e.cfg.Items)
	}
	e.data = NewDataManager[T](adapter, e.onAdapterError, e.onRangeLoaded)
	if e.cfg.Items != nil {
		e.data.SetItems(e.cfg.Items)
	}

	e.rebuildLayout()

	vp := e.cfg.Host.Viewport()
	e.comp = NewCompressionMapper(e.heights.TotalHeight(), vp.Height)

	e.pool = NewElementPool(e.cfg.Host)
	e.renderer = NewRenderer(e.cfg.Host, e.pool)

	e.cfg.Host.SetContentHeight(e.comp.State().ActualHeight)
	e.viewport.ContainerHeight = vp.Height
	if e.cfg.AriaLabel != "" {
		// host-specific ARIA wiring happens in the concrete Host
		// implementation; Engine only guarantees the label reaches it
		// via an attribute on future root-node access, left to the host.
		_ = e.cfg.AriaLabel
	}

	if e.cfg.Adapter != nil {
		e.data.LoadInitial(ctx)
	}

	e.state = StateInitialized
	e.renderNow()
	return nil
}

// rebuildLayout (re)constructs whichever layout (plain height cache,
// group, or grid) is active, based on the current item count and
// configuration. Called at Mount and after any data mutation.
func (e *Engine[T]) rebuildLayout() {
	n := e.data.Total()
	if n < 0 {
		// adapter hasn't reported a total yet (or this engine has no
		// adapter at all, where Total() mirrors Len()); fall back to
		// what's actually resident rather than under-sizing to 0.
		n = e.data.Len()
	}
	switch {
	case e.cfg.Group != nil:
		if e.group == nil {
			e.group = NewGroupLayout(n,
				func(d int) any {
					item, _ := e.data.Get(d)
					return e.cfg.Group.KeyOf(item, d)
				},
				e.cfg.Group.HeaderHeight,
				e.itemHeightByData(),
			)
		} else {
			e.group.Rebuild(n, func(d int) any {
				item, _ := e.data.Get(d)
				return e.cfg.Group.KeyOf(item, d)
			})
		}
		e.heights = e.group.HeightCache()
	case e.cfg.Grid != nil:
		if e.grid == nil {
			e.grid = NewGridLayout(e.cfg.Grid.Columns, e.cfg.Grid.Gap, n, e.cfg.Grid.RowHeight)
		} else {
			e.grid.Rebuild(n)
		}
		e.heights = e.grid.HeightCache()
	default:
		if e.cfg.ItemHeightFunc != nil {
			e.heights = NewVariableHeightCache(e.cfg.itemHeightFunc(), n)
		} else {
			e.heights = NewFixedHeightCache(e.cfg.ItemHeight, n)
		}
	}
}

func (e *Engine[T]) itemHeightByData() func(d int) float64 {
	hf := e.cfg.itemHeightFunc()
	return hf
}

// onAdapterError forwards a DataManager failure onto the event bus.
func (e *Engine[T]) onAdapterError(ctx DataManagerErrorContext, err error) {
	e.bus.Emit(Event{Kind: EventError, Data: ErrorEvent{Err: err, Context: string(ctx)}})
}

// onRangeLoaded is the DataManager's completion callback: the newly
// resident range may change the total height, so a full re-render is
// triggered.
func (e *Engine[T]) onRangeLoaded(r range_) {
	if e.state == StateDestroyed {
		return
	}
	e.rebuildLayout()
	e.comp.Reconfigure(e.heights.TotalHeight(), e.viewport.ContainerHeight)
	e.cfg.Host.SetContentHeight(e.comp.State().ActualHeight)
	e.bus.Emit(Event{Kind: EventRangeChange, Data: RangeEvent{RenStart: r.Start, RenEnd: r.End}})
	e.renderNow()
}

// SetItems replaces the resident item set, per spec.md's setItems
// mutation: it rebuilds the height cache/compression mapper and
// forces a re-render, identity-preserving wherever keys survived.
func (e *Engine[T]) SetItems(items []T) {
	if e.state == StateDestroyed {
		return
	}
	e.data.SetItems(items)
	e.rebuildLayout()
	e.comp.Reconfigure(e.heights.TotalHeight(), e.viewport.ContainerHeight)
	e.cfg.Host.SetContentHeight(e.comp.State().ActualHeight)
	e.renderNow()
}

// renderNow recomputes the viewport and reconciles the renderer
// against it, skipping the reconcile entirely if the render range is
// unchanged from last time (spec.md §4.3's render-skip memo).
func (e *Engine[T]) renderNow() {
	if e.state == StateDestroyed {
		return
	}
	e.state = StateRendering

	next := ComputeViewport(e.cfg.Host.ScrollTop(), e.viewport.ContainerHeight, e.comp, e.heights, e.cfg.Overscan)
	skip := e.rendered && e.viewport.RenderRangeEqual(next)
	e.viewport = next

	if !skip {
		entries := e.buildEntries(next.RenStart, next.RenEnd)
		e.renderer.Reconcile(entries, e.focusedLayoutIndex, e.heights.Length())
		e.rendered = true
	}

	e.state = StateInitialized
}

// buildEntries produces the RenderEntry set covering render rows/
// indices [renStart, renEnd]. For plain and group layouts that's one
// entry per layout index; for a grid, each row expands into one entry
// per column, keyed by data index (grid cells have no single "layout
// index" of their own — the row does, but a row holds Columns cells).
func (e *Engine[T]) buildEntries(renStart, renEnd int) []RenderEntry {
	if renEnd < renStart {
		return nil
	}
	if e.grid != nil {
		return e.gridEntries(renStart, renEnd)
	}
	out := make([]RenderEntry, 0, renEnd-renStart+1)
	for ell := renStart; ell <= renEnd; ell++ {
		out = append(out, e.entryFor(ell, renStart))
	}
	return out
}

func (e *Engine[T]) gridEntries(rowStart, rowEnd int) []RenderEntry {
	colW := e.grid.ColumnWidth()
	out := make([]RenderEntry, 0, (rowEnd-rowStart+1)*e.grid.Columns)
	for row := rowStart; row <= rowEnd; row++ {
		y := PositionOf(row, rowStart, e.heights, e.comp)
		h := e.heights.HeightOf(row)
		for col := 0; col < e.grid.Columns; col++ {
			d := e.grid.DataIndexAt(row, col)
			if d < 0 {
				continue
			}
			x := float64(col) * (colW + e.grid.Gap)
			entry := e.dataEntry(d, d, y, h, x)
			entry.Width = colW
			// dataEntry's focus check compares against the cell's data
			// index, but a grid's focusedLayoutIndex is a row number —
			// override with the row-based comparison that's actually
			// meaningful here.
			entry.State.Focused = row == e.focusedLayoutIndex
			out = append(out, entry)
		}
	}
	return out
}

func (e *Engine[T]) entryFor(ell, renStart int) RenderEntry {
	y := PositionOf(ell, renStart, e.heights, e.comp)
	h := e.heights.HeightOf(ell)

	if e.group != nil {
		ge := e.group.GetEntry(ell)
		if ge.Kind == EntryHeader {
			return RenderEntry{
				LayoutIndex: ell,
				ID:          fmt.Sprintf("header:%v", ge.GroupKey),
				Content:     func() surface.Content { return surface.Text(fmt.Sprintf("%v", ge.GroupKey)) },
				Y:           y,
				Height:      h,
			}
		}
		return e.dataEntry(ell, ge.DataIndex, y, h, 0)
	}
	return e.dataEntry(ell, ell, y, h, 0)
}

func (e *Engine[T]) dataEntry(ell, dataIndex int, y, h, x float64) RenderEntry {
	item, ok := e.data.Get(dataIndex)
	var id string
	var content func() surface.Content
	if ok {
		id = fmt.Sprintf("%v", item.ItemKey())
		it := item
		content = func() surface.Content { return e.cfg.Template(it, dataIndex, e.stateFor(dataIndex, ell)) }
	} else {
		ph := Placeholder{Index: dataIndex}
		id = fmt.Sprintf("%v", ph.ItemKey())
		content = func() surface.Content { return surface.Text(fmt.Sprintf("loading %d", dataIndex)) }
	}
	return RenderEntry{LayoutIndex: ell, ID: id, Content: content, X: x, Y: y, Height: h, State: e.stateFor(dataIndex, ell)}
}

func (e *Engine[T]) stateFor(dataIndex, ell int) ItemState {
	return ItemState{Selected: e.selection.IsSelected(dataIndex), Focused: ell == e.focusedLayoutIndex}
}

// OnResize updates the container height and re-renders.
func (e *Engine[T]) OnResize(ev surface.ResizeEvent) {
	if e.state == StateDestroyed {
		return
	}
	e.viewport.ContainerHeight = ev.Height
	if e.grid != nil {
		e.grid.SetContainerWidth(ev.Width)
	}
	e.comp.Reconfigure(e.heights.TotalHeight(), ev.Height)
	e.renderNow()
}

// OnScroll is called by the host on every native scroll event, or
// driven directly by a caller that isn't backed by a real native
// scroll container (e.g. memsurface in tests, vlistbench). It is the
// single source of truth for the current scroll position: it writes
// actual back to the host itself, so callers never need a separate
// SetScrollTop call of their own.
func (e *Engine[T]) OnScroll(actual float64, now time.Time) {
	if e.state == StateDestroyed {
		return
	}
	prevActual := e.scroll.lastActual
	forward := actual >= prevActual
	e.cfg.Host.SetScrollTop(actual)
	velocity := e.scroll.OnScrollEvent(actual, now)
	e.bus.Emit(Event{Kind: EventScroll, Data: ScrollEvent{ScrollActual: actual, Velocity: velocity}})
	e.renderNow()
	e.maybeLoadMore()
	if e.cfg.Adapter != nil {
		// the cancel/preload velocity gates require both a threshold
		// breach and IsTracking(); a ramp-up velocity from too few
		// samples must never trigger them (spec.md §4.6 property #9).
		gateVelocity := velocity
		if !e.scroll.IsTracking() {
			gateVelocity = 0
		}
		e.data.EnsureRange(context.Background(), e.viewport.RenStart, e.viewport.RenEnd+1, gateVelocity, forward)
	}
}

// Tick advances idle detection and any in-flight animated scroll;
// hosts call it once per animation frame / poll tick.
func (e *Engine[T]) Tick(now time.Time) {
	if e.state == StateDestroyed {
		return
	}
	pos, animating := e.scroll.Tick(now)
	if animating {
		e.cfg.Host.SetScrollTop(pos)
		e.renderNow()
	}
	if !e.scroll.IsScrolling() && e.cfg.Adapter != nil {
		e.data.FlushPending(context.Background())
	}
}

// maybeLoadMore triggers an infinite-scroll fetch when the viewport
// is within LoadMoreThreshold of the growth edge.
func (e *Engine[T]) maybeLoadMore() {
	if e.cfg.Adapter == nil {
		return
	}
	remaining := e.viewport.ActualTotalHeight - (e.viewport.ScrollActual + e.viewport.ContainerHeight)
	if remaining <= LoadMoreThreshold {
		e.bus.Emit(Event{Kind: EventLoadMore, Data: nil})
		e.data.LoadMore(context.Background())
	}
}

// ScrollAlign picks where within the viewport a ScrollToIndex target
// lands: at the top edge, centered, or at the bottom edge.
type ScrollAlign int

const (
	AlignStart ScrollAlign = iota
	AlignCenter
	AlignEnd
)

// ScrollToIndex scrolls so that data/layout index is visible, aligned
// within the viewport per align. duration > 0 animates with quadratic
// ease-in-out; 0 snaps immediately.
func (e *Engine[T]) ScrollToIndex(index int, duration time.Duration, align ScrollAlign) error {
	if e.state == StateDestroyed {
		return ErrDestroyed
	}
	if e.state == StateConstructing {
		return ErrNotMounted
	}
	ell := index
	if e.group != nil {
		ell = e.group.DataToLayoutIndex(index)
	} else if e.grid != nil {
		ell = e.grid.ScrollRowFor(index)
	}
	virtual := e.heights.OffsetAt(ell)
	itemHeight := e.heights.HeightOf(ell)

	var offset float64
	switch align {
	case AlignCenter:
		offset = e.viewport.ContainerHeight/2 - itemHeight/2
	case AlignEnd:
		offset = e.viewport.ContainerHeight - itemHeight
	}
	virtual -= offset
	if virtual < 0 {
		virtual = 0
	}
	actual := e.comp.VirtualToActual(virtual)

	pos, animating := e.scroll.AnimateTo(actual, time.Now(), duration)
	e.cfg.Host.SetScrollTop(pos)
	if !animating {
		e.renderNow()
	}
	return nil
}

// Destroy releases every mounted node and marks the engine terminal;
// further calls are no-ops.
func (e *Engine[T]) Destroy() {
	if e.state == StateDestroyed {
		return
	}
	e.pool.ReleaseAll()
	e.bus.Emit(Event{Kind: EventDestroy, Data: nil})
	e.cfg.Host.Destroy()
	e.state = StateDestroyed
}

// State returns the current lifecycle state.
func (e *Engine[T]) State() EngineState { return e.state }

// Viewport returns the last computed viewport state.
func (e *Engine[T]) Viewport() ViewportState { return e.viewport }
