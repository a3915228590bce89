// Package surface abstracts the host a virtual list mounts into.
//
// The engine in the vlist package never talks to a browser or a
// terminal directly; it talks to a Host. That keeps the height
// accounting, compression, reconciliation, and data-manager logic
// testable with a plain in-memory fake (see surface/memsurface)
// while real hosts (surface/domjs for a wasm browser binding,
// termhost for a terminal) implement the same small capability set.
package surface

import "fmt"

// Rect is an axis-aligned box in host pixels (browser) or cells
// (terminal), matched to whatever unit the concrete Host uses.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Node is a single mounted or pooled unit the renderer positions and
// fills with template output. A Node is either attached to the host's
// visible tree or detached (held by the element pool).
type Node interface {
	// SetAttr sets a host-native attribute (e.g. "data-index", or a
	// terminal host's internal row key). Hosts that have no concept
	// of attributes (plain buffers) may no-op.
	SetAttr(key, value string)
	// RemoveAttr clears a previously set attribute.
	RemoveAttr(key string)
	// SetContent replaces the node's rendered content, as produced by
	// the caller's template function.
	SetContent(c Content)
	// SetPosition places the node's top-left corner, in host units,
	// relative to the items container's origin.
	SetPosition(x, y float64)
	// SetSize sets the node's box, in host units.
	SetSize(w, h float64)
	// SetClass toggles a semantic class (selected, focused) without
	// touching content; hosts map this to whatever native mechanism
	// fits (a DOM classList, or a terminal style flag).
	SetClass(name string, on bool)
	// Detach removes the node from the visible tree without
	// destroying it, returning it to a state Reset can reuse.
	Detach()
	// Reset clears all content/attrs/classes for pool reuse.
	Reset()
}

// Content is whatever a template function returned: either opaque
// text or a host-native element subtree. Hosts type-switch on the
// concrete implementation they understand; a host that receives a
// Content it doesn't recognize should render it as its String().
type Content interface {
	fmt.Stringer
}

// Text is the simplest Content: plain opaque text, the equivalent of
// a template function returning a string in the source spec.
type Text string

// String implements Content.
func (t Text) String() string { return string(t) }

// Host is the mount point a virtual list attaches to: it creates and
// destroys pooled Nodes, reports its own viewport geometry, and
// delivers input events the engine normalizes into ScrollEvent /
// ClickEvent / KeyEvent.
type Host interface {
	// NewNode allocates a fresh, detached Node with the host's
	// baseline skeleton applied (e.g. a browser host sets
	// role="option", position:absolute on creation).
	NewNode() Node
	// Mount attaches a detached node to the visible items container.
	Mount(n Node)
	// Unmount detaches a node from the visible tree (it is not
	// destroyed; the caller may pool and reuse it).
	Unmount(n Node)
	// Viewport returns the current container box, in host units.
	Viewport() Rect
	// SetContentHeight sets the scrollable content's total height
	// (the actual, compressed height when compression is active).
	SetContentHeight(h float64)
	// ScrollTop returns the host's current scroll offset.
	ScrollTop() float64
	// SetScrollTop sets the host's scroll offset directly (used by
	// smooth-scroll animation frames and ScrollTo).
	SetScrollTop(v float64)
	// SetBusy marks the host's aria-busy-equivalent state during an
	// initial adapter load.
	SetBusy(busy bool)
	// SetActiveDescendant marks the logically focused layout index
	// for assistive-technology purposes.
	SetActiveDescendant(layoutIndex int, total int)
	// Destroy detaches everything and releases host resources.
	Destroy()
}

// ResizeEvent is delivered by a Host when its viewport box changes.
type ResizeEvent struct {
	Width, Height float64
}
