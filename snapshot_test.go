package vlist

import "testing"

func TestSnapshotRoundTrip(t *testing.T) {
	items := makeRows(10)
	sel := NewSelection(SelectionMultiple)
	sel.Toggle(2)
	sel.Toggle(5)

	snap := TakeSnapshot(items, 3, 7.5, sel)
	if snap.AnchorKey != items[3].ItemKey() {
		t.Fatalf("AnchorKey = %v, want %v", snap.AnchorKey, items[3].ItemKey())
	}
	if len(snap.SelectedKeys) != 2 {
		t.Fatalf("SelectedKeys length = %d, want 2", len(snap.SelectedKeys))
	}

	sel2 := NewSelection(SelectionMultiple)
	anchorIndex, offset := Restore(snap, items, sel2)
	if anchorIndex != 3 {
		t.Errorf("Restore anchorIndex = %d, want 3", anchorIndex)
	}
	if offset != 7.5 {
		t.Errorf("Restore offsetInItem = %v, want 7.5", offset)
	}
	if !sel2.IsSelected(2) || !sel2.IsSelected(5) {
		t.Error("Restore should reselect indices 2 and 5")
	}
}

func TestSnapshotRestore_MissingAnchorFallsBackToZero(t *testing.T) {
	items := makeRows(10)
	sel := NewSelection(SelectionMultiple)
	snap := TakeSnapshot(items, 3, 7.5, sel)

	// the anchor item is gone from the new item set entirely.
	shrunk := makeRows(2)
	sel2 := NewSelection(SelectionMultiple)
	anchorIndex, offset := Restore(snap, shrunk, sel2)
	if anchorIndex != 0 {
		t.Errorf("anchorIndex = %d, want 0 when the anchor key no longer exists", anchorIndex)
	}
	if offset != 0 {
		t.Errorf("offsetInItem = %v, want 0 when the anchor key no longer exists", offset)
	}
}

func TestSnapshotRestore_MissingSelectedKeysAreDropped(t *testing.T) {
	items := makeRows(10)
	sel := NewSelection(SelectionMultiple)
	sel.Toggle(8) // key 8
	snap := TakeSnapshot(items, 0, 0, sel)

	shrunk := makeRows(5) // keys 0-4 only; key 8 no longer exists
	sel2 := NewSelection(SelectionMultiple)
	Restore(snap, shrunk, sel2)
	if len(sel2.Selected()) != 0 {
		t.Errorf("Selected() = %v, want empty after restoring against a set missing the selected key", sel2.Selected())
	}
}
