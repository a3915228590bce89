// Package memsurface is an in-memory surface.Host used by tests. It
// keeps no real widget tree, only enough bookkeeping to assert on:
// which nodes are mounted, their positions, attrs, and classes. This
// is the direct analogue of the teacher's Buffer-backed component
// tests (virtuallist_bench_test.go, tui_test.go), which never touch a
// real terminal either.
package memsurface

import (
	"sync"

	"vlist/surface"
)

// Node is a fake surface.Node recording every mutation so tests can
// assert on it without a real host.
type Node struct {
	mu sync.Mutex

	ID       int // stable identity, assigned at creation
	attrs    map[string]string
	classes  map[string]bool
	content  surface.Content
	x, y     float64
	w, h     float64
	mounted  bool
	resetCnt int
}

func (n *Node) SetAttr(key, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

func (n *Node) RemoveAttr(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.attrs, key)
}

func (n *Node) Attr(key string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attrs[key]
}

func (n *Node) SetContent(c surface.Content) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.content = c
}

func (n *Node) Content() surface.Content {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.content
}

func (n *Node) SetPosition(x, y float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.x, n.y = x, y
}

func (n *Node) Position() (x, y float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.x, n.y
}

func (n *Node) SetSize(w, h float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.w, n.h = w, h
}

func (n *Node) SetClass(name string, on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.classes == nil {
		n.classes = make(map[string]bool)
	}
	if on {
		n.classes[name] = true
	} else {
		delete(n.classes, name)
	}
}

func (n *Node) HasClass(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.classes[name]
}

func (n *Node) Detach() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mounted = false
}

func (n *Node) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attrs = nil
	n.classes = nil
	n.content = nil
	n.x, n.y, n.w, n.h = 0, 0, 0, 0
	n.resetCnt++
}

// ResetCount returns how many times Reset has been called; tests use
// this to confirm pooled nodes are actually recycled, not leaked.
func (n *Node) ResetCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resetCnt
}

// Host is an in-memory surface.Host.
type Host struct {
	mu sync.Mutex

	width, height  float64
	contentHeight  float64
	scrollTop      float64
	busy           bool
	activeDesc     int
	activeDescSet  bool
	nextID         int
	mountedNodes   map[*Node]bool
	destroyed      bool
}

// New creates a Host with the given initial viewport box.
func New(width, height float64) *Host {
	return &Host{
		width:        width,
		height:       height,
		mountedNodes: make(map[*Node]bool),
	}
}

func (h *Host) NewNode() surface.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	return &Node{ID: h.nextID}
}

func (h *Host) Mount(n surface.Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	mn := n.(*Node)
	mn.mu.Lock()
	mn.mounted = true
	mn.mu.Unlock()
	h.mountedNodes[mn] = true
}

func (h *Host) Unmount(n surface.Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	mn := n.(*Node)
	delete(h.mountedNodes, mn)
	mn.Detach()
}

func (h *Host) Viewport() surface.Rect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return surface.Rect{Width: h.width, Height: h.height}
}

// Resize changes the viewport box; tests call this to simulate a
// host resize observation.
func (h *Host) Resize(w, height float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = w, height
}

func (h *Host) SetContentHeight(height float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.contentHeight = height
}

func (h *Host) ContentHeight() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.contentHeight
}

func (h *Host) ScrollTop() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrollTop
}

func (h *Host) SetScrollTop(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scrollTop = v
}

func (h *Host) SetBusy(busy bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.busy = busy
}

func (h *Host) Busy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.busy
}

func (h *Host) SetActiveDescendant(layoutIndex int, total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activeDesc = layoutIndex
	h.activeDescSet = true
}

func (h *Host) ActiveDescendant() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activeDesc, h.activeDescSet
}

func (h *Host) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for n := range h.mountedNodes {
		n.Detach()
	}
	h.mountedNodes = make(map[*Node]bool)
	h.destroyed = true
}

// MountedCount returns how many nodes are currently mounted.
func (h *Host) MountedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.mountedNodes)
}

// MountedNodes returns a snapshot slice of currently mounted nodes.
func (h *Host) MountedNodes() []*Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Node, 0, len(h.mountedNodes))
	for n := range h.mountedNodes {
		out = append(out, n)
	}
	return out
}

func (h *Host) Destroyed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destroyed
}
