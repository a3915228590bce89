package vlist

// Key names the engine recognizes from a host's normalized keyboard
// event. Hosts translate their native key representation (a DOM
// KeyboardEvent.key, or a bubbletea tea.KeyMsg) into one of these.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeySpace      Key = "Space"
	KeyEnter      Key = "Enter"
)

// KeyEvent is a normalized keyboard event.
type KeyEvent struct {
	Key Key
}

// ClickEvent is a normalized pointer event targeting a rendered row.
type ClickEvent struct {
	LayoutIndex int
}

// HandleClick toggles selection on the clicked row's data index and
// emits a SelectEvent. Clicks on a group header (where LayoutToDataIndex
// would return the header's first item) are ignored — headers are not
// selectable. For a grid, ev.LayoutIndex is already the cell's data
// index (grid cells have no separate layout-index space — see
// buildEntries/gridEntries), so it's used directly rather than through
// layoutToData, which resolves grid indices as rows.
func (e *Engine[T]) HandleClick(ev ClickEvent) {
	if e.state == StateDestroyed {
		return
	}
	if e.grid != nil {
		dataIndex := ev.LayoutIndex
		selected := e.selection.Toggle(dataIndex)
		e.bus.Emit(Event{Kind: EventSelect, Data: SelectEvent{Index: dataIndex, Selected: selected}})
		e.renderer.UpdateItemClasses(dataIndex, e.stateFor(dataIndex, -1))
		return
	}
	if e.group != nil && e.group.GetEntry(ev.LayoutIndex).Kind == EntryHeader {
		return
	}
	dataIndex := e.layoutToData(ev.LayoutIndex)
	selected := e.selection.Toggle(dataIndex)
	e.bus.Emit(Event{Kind: EventSelect, Data: SelectEvent{Index: dataIndex, Selected: selected}})
	e.renderer.UpdateItemClasses(ev.LayoutIndex, e.stateFor(dataIndex, ev.LayoutIndex))
}

// HandleKey implements spec.md §4.8's keyboard navigation: arrow keys
// move focus by one layout row, Home/End jump to the first/last row,
// Space toggles selection at the focused row, Enter activates it (an
// EventSelect with Selected forced true). Only these keys are
// considered handled — a host should apply preventDefault-equivalent
// suppression only when HandleKey returns true.
func (e *Engine[T]) HandleKey(ev KeyEvent) (handled bool) {
	if e.state == StateDestroyed {
		return false
	}
	length := e.heights.Length()
	if length == 0 {
		return false
	}
	prev := e.focusedLayoutIndex

	switch ev.Key {
	case KeyArrowDown, KeyArrowRight:
		e.moveFocus(1, length)
	case KeyArrowUp, KeyArrowLeft:
		e.moveFocus(-1, length)
	case KeyHome:
		e.focusedLayoutIndex = 0
	case KeyEnd:
		e.focusedLayoutIndex = length - 1
	case KeySpace:
		if e.focusedLayoutIndex < 0 {
			return false
		}
		dataIndex := e.layoutToData(e.focusedLayoutIndex)
		selected := e.selection.Toggle(dataIndex)
		e.bus.Emit(Event{Kind: EventSelect, Data: SelectEvent{Index: dataIndex, Selected: selected}})
		e.renderer.UpdateItemClasses(e.focusedLayoutIndex, e.stateFor(dataIndex, e.focusedLayoutIndex))
		return true
	case KeyEnter:
		if e.focusedLayoutIndex < 0 {
			return false
		}
		dataIndex := e.layoutToData(e.focusedLayoutIndex)
		e.bus.Emit(Event{Kind: EventSelect, Data: SelectEvent{Index: dataIndex, Selected: true}})
		return true
	default:
		return false
	}

	if e.focusedLayoutIndex != prev {
		if prev >= 0 {
			e.renderer.UpdateItemClasses(prev, e.stateFor(e.layoutToData(prev), prev))
		}
		e.bus.Emit(Event{Kind: EventFocus, Data: FocusEvent{Index: e.focusedLayoutIndex}})
		e.ensureFocusVisible()
		e.renderer.UpdateItemClasses(e.focusedLayoutIndex, e.stateFor(e.layoutToData(e.focusedLayoutIndex), e.focusedLayoutIndex))
	}
	return true
}

// moveFocus steps the focused layout index by delta, clamped to
// [0, length). Group headers are skippable targets are still valid
// focus stops here — only clicks reject headers, keyboard traversal
// visits every row.
func (e *Engine[T]) moveFocus(delta, length int) {
	if e.focusedLayoutIndex < 0 {
		e.focusedLayoutIndex = 0
		return
	}
	next := e.focusedLayoutIndex + delta
	if next < 0 {
		next = 0
	}
	if next >= length {
		next = length - 1
	}
	e.focusedLayoutIndex = next
}

// ensureFocusVisible scrolls, without animation, so the focused row
// is visible, centered in the viewport per spec.md §4.8.
func (e *Engine[T]) ensureFocusVisible() {
	if e.focusedLayoutIndex < e.viewport.VisStart || e.focusedLayoutIndex > e.viewport.VisEnd {
		_ = e.ScrollToIndex(e.layoutToData(e.focusedLayoutIndex), 0, AlignCenter)
	}
}

// layoutToData resolves a layout index to the data index it
// represents, accounting for whichever optional layout is active.
func (e *Engine[T]) layoutToData(ell int) int {
	switch {
	case e.group != nil:
		return e.group.LayoutToDataIndex(ell)
	case e.grid != nil:
		dataStart, _ := e.grid.RowsInRange(ell, ell)
		return dataStart
	default:
		return ell
	}
}
