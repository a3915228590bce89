package vlist

import (
	"testing"

	"vlist/surface/memsurface"
)

func TestElementPool_AcquireMountRelease(t *testing.T) {
	host := memsurface.New(300, 200)
	p := NewElementPool(host)

	n := p.Acquire()
	p.MountAt(3, n)

	got, ok := p.NodeAt(3)
	if !ok || got != n {
		t.Fatalf("NodeAt(3) = (%v, %v), want the mounted node", got, ok)
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if host.MountedCount() != 1 {
		t.Fatalf("host.MountedCount() = %d, want 1", host.MountedCount())
	}

	p.Release(3)
	if p.Len() != 0 {
		t.Errorf("Len() after Release = %d, want 0", p.Len())
	}
	if host.MountedCount() != 0 {
		t.Errorf("host.MountedCount() after Release = %d, want 0", host.MountedCount())
	}
	if _, ok := p.NodeAt(3); ok {
		t.Error("NodeAt(3) still reports mounted after Release")
	}
}

func TestElementPool_ReleasedNodeIsReusedNotRecreated(t *testing.T) {
	host := memsurface.New(300, 200)
	p := NewElementPool(host)

	first := p.Acquire()
	p.MountAt(0, first)
	p.Release(0)

	second := p.Acquire()
	if second != first {
		t.Error("Acquire() after a Release should reuse the freed node, not create a new one")
	}
}

func TestElementPool_ReleaseResetsNode(t *testing.T) {
	host := memsurface.New(300, 200)
	p := NewElementPool(host)

	n := p.Acquire().(*memsurface.Node)
	n.SetAttr("data-id", "row-1")
	n.SetClass("selected", true)
	p.MountAt(0, n)
	p.Release(0)

	if n.Attr("data-id") != "" {
		t.Error("expected Release to reset attrs via node.Reset()")
	}
	if n.HasClass("selected") {
		t.Error("expected Release to reset classes via node.Reset()")
	}
	if n.ResetCount() != 1 {
		t.Errorf("ResetCount() = %d, want 1", n.ResetCount())
	}
}

func TestElementPool_ReleaseAll(t *testing.T) {
	host := memsurface.New(300, 200)
	p := NewElementPool(host)

	for i := 0; i < 5; i++ {
		p.MountAt(i, p.Acquire())
	}
	p.ReleaseAll()

	if p.Len() != 0 {
		t.Errorf("Len() after ReleaseAll = %d, want 0", p.Len())
	}
	if host.MountedCount() != 0 {
		t.Errorf("host.MountedCount() after ReleaseAll = %d, want 0", host.MountedCount())
	}
}

func TestElementPool_MountedIndices(t *testing.T) {
	host := memsurface.New(300, 200)
	p := NewElementPool(host)
	p.MountAt(2, p.Acquire())
	p.MountAt(7, p.Acquire())

	indices := p.MountedIndices()
	seen := map[int]bool{}
	for _, i := range indices {
		seen[i] = true
	}
	if !seen[2] || !seen[7] || len(indices) != 2 {
		t.Errorf("MountedIndices() = %v, want exactly [2 7]", indices)
	}
}
