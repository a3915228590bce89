package vlist

import "testing"

func TestHandleKey_ArrowDownMovesFocusAndEmitsFocusEvent(t *testing.T) {
	e, _ := mountEngine(t, 100, nil)
	var focused []int
	e.bus.On(func(ev Event) {
		if ev.Kind == EventFocus {
			focused = append(focused, ev.Data.(FocusEvent).Index)
		}
	})

	if !e.HandleKey(KeyEvent{Key: KeyArrowDown}) {
		t.Fatal("HandleKey(ArrowDown) should report handled")
	}
	if e.focusedLayoutIndex != 0 {
		t.Errorf("focusedLayoutIndex after first ArrowDown = %d, want 0", e.focusedLayoutIndex)
	}
	e.HandleKey(KeyEvent{Key: KeyArrowDown})
	if e.focusedLayoutIndex != 1 {
		t.Errorf("focusedLayoutIndex after second ArrowDown = %d, want 1", e.focusedLayoutIndex)
	}
	if len(focused) != 2 {
		t.Errorf("FocusEvent count = %d, want 2", len(focused))
	}
}

func TestHandleKey_HomeAndEnd(t *testing.T) {
	e, _ := mountEngine(t, 100, nil)
	e.HandleKey(KeyEvent{Key: KeyEnd})
	if e.focusedLayoutIndex != 99 {
		t.Errorf("focusedLayoutIndex after End = %d, want 99", e.focusedLayoutIndex)
	}
	e.HandleKey(KeyEvent{Key: KeyHome})
	if e.focusedLayoutIndex != 0 {
		t.Errorf("focusedLayoutIndex after Home = %d, want 0", e.focusedLayoutIndex)
	}
}

func TestHandleKey_ClampsAtBoundaries(t *testing.T) {
	e, _ := mountEngine(t, 10, nil)
	e.HandleKey(KeyEvent{Key: KeyHome})
	e.HandleKey(KeyEvent{Key: KeyArrowUp}) // already at 0, should clamp
	if e.focusedLayoutIndex != 0 {
		t.Errorf("focusedLayoutIndex = %d, want 0 (clamped)", e.focusedLayoutIndex)
	}
	e.HandleKey(KeyEvent{Key: KeyEnd})
	e.HandleKey(KeyEvent{Key: KeyArrowDown}) // already at last, should clamp
	if e.focusedLayoutIndex != 9 {
		t.Errorf("focusedLayoutIndex = %d, want 9 (clamped)", e.focusedLayoutIndex)
	}
}

func TestHandleKey_SpaceTogglesSelectionAtFocus(t *testing.T) {
	e, _ := mountEngine(t, 10, func(c *Config[row]) { c.SelectionMode = SelectionMultiple })
	e.HandleKey(KeyEvent{Key: KeyArrowDown}) // focus index 0

	var selected []SelectEvent
	e.bus.On(func(ev Event) {
		if ev.Kind == EventSelect {
			selected = append(selected, ev.Data.(SelectEvent))
		}
	})
	if !e.HandleKey(KeyEvent{Key: KeySpace}) {
		t.Fatal("HandleKey(Space) should report handled")
	}
	if len(selected) != 1 || selected[0].Index != 0 || !selected[0].Selected {
		t.Errorf("selected events = %+v, want a single selecting event for index 0", selected)
	}
	if !e.selection.IsSelected(0) {
		t.Error("expected index 0 to be selected after Space")
	}
}

func TestHandleKey_SpaceBeforeAnyFocusIsUnhandled(t *testing.T) {
	e, _ := mountEngine(t, 10, nil)
	if e.HandleKey(KeyEvent{Key: KeySpace}) {
		t.Error("Space before any focus move should report unhandled")
	}
}

func TestHandleKey_EnterForcesSelected(t *testing.T) {
	e, _ := mountEngine(t, 10, func(c *Config[row]) { c.SelectionMode = SelectionMultiple })
	e.HandleKey(KeyEvent{Key: KeyArrowDown})
	e.selection.Toggle(0) // pre-select
	var ev SelectEvent
	e.bus.On(func(e2 Event) {
		if e2.Kind == EventSelect {
			ev = e2.Data.(SelectEvent)
		}
	})
	e.HandleKey(KeyEvent{Key: KeyEnter})
	if !ev.Selected {
		t.Error("Enter should always emit Selected=true regardless of prior state")
	}
}

func TestHandleKey_UnknownKeyUnhandled(t *testing.T) {
	e, _ := mountEngine(t, 10, nil)
	if e.HandleKey(KeyEvent{Key: "Unrecognized"}) {
		t.Error("an unrecognized key should report unhandled")
	}
}

func TestHandleClick_TogglesSelectionAndIgnoresHeaders(t *testing.T) {
	e, _ := mountEngine(t, 250, func(c *Config[row]) {
		c.SelectionMode = SelectionMultiple
		c.Group = &GroupConfig[row]{
			KeyOf:        func(item row, index int) any { return item.id / 50 },
			HeaderHeight: func(int) float64 { return 20 },
		}
	})

	headerLayoutIndex := e.group.Boundary(0).HeaderLayoutIndex
	e.HandleClick(ClickEvent{LayoutIndex: headerLayoutIndex})
	if len(e.selection.Selected()) != 0 {
		t.Error("clicking a group header must not select anything")
	}

	itemLayoutIndex := headerLayoutIndex + 1
	e.HandleClick(ClickEvent{LayoutIndex: itemLayoutIndex})
	if len(e.selection.Selected()) != 1 {
		t.Error("clicking an item row should toggle its selection")
	}
}

func TestHandleClick_GridUsesDataIndexDirectly(t *testing.T) {
	e, _ := mountEngine(t, 40, func(c *Config[row]) {
		c.SelectionMode = SelectionMultiple
		c.Grid = &GridConfig{Columns: 4, Gap: 2, RowHeight: func(int) float64 { return 20 }}
	})
	e.HandleClick(ClickEvent{LayoutIndex: 7})
	if !e.selection.IsSelected(7) {
		t.Error("grid click should select the data index passed directly, not a row-resolved index")
	}
}

func TestHandleKey_DestroyedEngineIgnoresInput(t *testing.T) {
	e, _ := mountEngine(t, 10, nil)
	e.Destroy()
	if e.HandleKey(KeyEvent{Key: KeyArrowDown}) {
		t.Error("HandleKey on a destroyed engine should report unhandled")
	}
}
