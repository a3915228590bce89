package vlist

// Selection tracks the set of selected data indices, enforcing the
// configured SelectionMode. None rejects every Toggle; Single keeps
// at most one index selected, deselecting the previous one; Multiple
// XOR-toggles freely.
type Selection struct {
	mode SelectionMode
	set  map[int]bool
}

// NewSelection creates an empty selection set under mode.
func NewSelection(mode SelectionMode) *Selection {
	return &Selection{mode: mode, set: make(map[int]bool)}
}

// Toggle flips index's membership per the selection mode, returning
// whether it ended up selected.
func (s *Selection) Toggle(index int) bool {
	switch s.mode {
	case SelectionNone:
		return false
	case SelectionSingle:
		wasSelected := s.set[index]
		for k := range s.set {
			delete(s.set, k)
		}
		if !wasSelected {
			s.set[index] = true
			return true
		}
		return false
	default: // SelectionMultiple
		if s.set[index] {
			delete(s.set, index)
			return false
		}
		s.set[index] = true
		return true
	}
}

// IsSelected reports whether index is currently selected.
func (s *Selection) IsSelected(index int) bool { return s.set[index] }

// Selected returns the current selected indices, in no particular
// order.
func (s *Selection) Selected() []int {
	out := make([]int, 0, len(s.set))
	for k := range s.set {
		out = append(out, k)
	}
	return out
}

// Clear empties the selection set.
func (s *Selection) Clear() {
	s.set = make(map[int]bool)
}

// Restore replaces the selection set wholesale, e.g. from a Snapshot.
func (s *Selection) Restore(indices []int) {
	s.set = make(map[int]bool, len(indices))
	for _, i := range indices {
		s.set[i] = true
	}
}
