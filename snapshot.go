package vlist

// Snapshot captures enough state to restore scroll position and
// selection after the engine is torn down and remounted (or after a
// setItems that reshuffles indices) — identity-based, not
// index-based, so a restore still lands on the right rows when items
// shifted around.
type Snapshot struct {
	AnchorKey     any     // ItemKey() of the topmost visible item
	OffsetInItem  float64 // pixels scrolled past the anchor's top
	SelectedKeys  []any
}

// TakeSnapshot captures the current scroll anchor and selection.
// anchorIndex is typically ViewportState.VisStart; each data index is
// resolved to its stable key via items[i].ItemKey().
func TakeSnapshot[T Identifiable](items []T, anchorIndex int, offsetInItem float64, sel *Selection) Snapshot {
	var anchorKey any
	if anchorIndex >= 0 && anchorIndex < len(items) {
		anchorKey = items[anchorIndex].ItemKey()
	}
	keys := make([]any, 0, len(sel.set))
	for idx := range sel.set {
		if idx >= 0 && idx < len(items) {
			keys = append(keys, items[idx].ItemKey())
		}
	}
	return Snapshot{AnchorKey: anchorKey, OffsetInItem: offsetInItem, SelectedKeys: keys}
}

// Restore resolves a Snapshot's keys against the current item slice,
// clamping/saturating when a key no longer exists: a missing anchor
// falls back to index 0, and missing selected keys are silently
// dropped rather than erroring.
func Restore[T Identifiable](snap Snapshot, items []T, sel *Selection) (anchorIndex int, offsetInItem float64) {
	index := make(map[any]int, len(items))
	for i, it := range items {
		index[it.ItemKey()] = i
	}

	anchorIndex = 0
	if i, ok := index[snap.AnchorKey]; ok {
		anchorIndex = i
		offsetInItem = snap.OffsetInItem
	}

	restored := make([]int, 0, len(snap.SelectedKeys))
	for _, k := range snap.SelectedKeys {
		if i, ok := index[k]; ok {
			restored = append(restored, i)
		}
	}
	sel.Restore(restored)
	return anchorIndex, offsetInItem
}
