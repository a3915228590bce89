package vlist

import (
	"strconv"

	"vlist/surface"
)

// ItemState is passed to the template function so it can style the
// selected/focused affordances without the renderer needing to know
// anything about the template's internals.
type ItemState struct {
	Selected bool
	Focused  bool
}

// RenderEntry is what the Engine hands the Renderer for one layout
// index in the render range: enough to mount or reconcile a node
// without the renderer needing to know about data indices, groups, or
// grids.
type RenderEntry struct {
	LayoutIndex int
	ID          string // stable identity; changing this forces a re-template
	Content     func() surface.Content
	State       ItemState
	X, Y        float64 // pre-computed position (grid sets X; linear/group leave X=0)
	Width, Height float64
}

// Renderer is the sole consumer of the ElementPool. It reconciles a
// target render range against currently-mounted nodes: identity-based
// reuse for nodes whose (index -> id) mapping is unchanged, targeted
// re-template when identity changes, toggle-only class updates when
// only selection/focus changed, and release for anything mounted
// outside the new range.
type Renderer struct {
	host  surface.Host
	pool  *ElementPool
	ids   map[int]string // layout index -> last-rendered id, for identity checks
}

// NewRenderer creates a renderer bound to a host and its element pool.
func NewRenderer(host surface.Host, pool *ElementPool) *Renderer {
	return &Renderer{host: host, pool: pool, ids: make(map[int]string)}
}

// Reconcile mounts/updates/releases nodes so that exactly the layout
// indices in entries are mounted, in identity-preserving fashion.
// focusedLayoutIndex < 0 means nothing is focused; totalLayout is L,
// used for aria-setsize.
func (r *Renderer) Reconcile(entries []RenderEntry, focusedLayoutIndex, totalLayout int) {
	wanted := make(map[int]RenderEntry, len(entries))
	for _, e := range entries {
		wanted[e.LayoutIndex] = e
	}

	// release anything mounted outside the new range
	for _, ell := range r.pool.MountedIndices() {
		if _, ok := wanted[ell]; !ok {
			r.pool.Release(ell)
			delete(r.ids, ell)
		}
	}

	for _, e := range entries {
		node, mounted := r.pool.NodeAt(e.LayoutIndex)
		if !mounted {
			node = r.pool.Acquire()
			r.mountNew(node, e, totalLayout)
		} else if r.ids[e.LayoutIndex] != e.ID {
			r.retemplate(node, e)
		} else {
			r.toggleClasses(node, e.State)
		}
		node.SetPosition(e.X, e.Y)
		if e.Width > 0 || e.Height > 0 {
			node.SetSize(e.Width, e.Height)
		}
	}

	if focusedLayoutIndex >= 0 {
		r.host.SetActiveDescendant(focusedLayoutIndex, totalLayout)
	}
}

func (r *Renderer) mountNew(node surface.Node, e RenderEntry, totalLayout int) {
	node.SetAttr("data-index", strconv.Itoa(e.LayoutIndex))
	node.SetAttr("data-id", e.ID)
	node.SetAttr("aria-posinset", strconv.Itoa(e.LayoutIndex+1))
	node.SetAttr("aria-setsize", strconv.Itoa(totalLayout))
	node.SetContent(e.Content())
	r.toggleClasses(node, e.State)
	r.pool.MountAt(e.LayoutIndex, node)
	r.ids[e.LayoutIndex] = e.ID
}

func (r *Renderer) retemplate(node surface.Node, e RenderEntry) {
	node.SetAttr("data-id", e.ID)
	node.SetContent(e.Content())
	r.toggleClasses(node, e.State)
	r.ids[e.LayoutIndex] = e.ID
}

func (r *Renderer) toggleClasses(node surface.Node, s ItemState) {
	node.SetClass("selected", s.Selected)
	node.SetClass("focused", s.Focused)
}

// UpdateItem re-invokes the template for a single mounted layout
// index without reconciling the whole range — spec.md §4.5's targeted
// update operation, used after a data mutation touching one item.
func (r *Renderer) UpdateItem(ell int, id string, content surface.Content, state ItemState) {
	node, ok := r.pool.NodeAt(ell)
	if !ok {
		return
	}
	node.SetAttr("data-id", id)
	node.SetContent(content)
	r.toggleClasses(node, state)
	r.ids[ell] = id
}

// UpdateItemClasses toggles selection/focus classes only, without a
// re-template — used for arrow-key focus changes so they don't force
// a full reconciliation.
func (r *Renderer) UpdateItemClasses(ell int, state ItemState) {
	node, ok := r.pool.NodeAt(ell)
	if !ok {
		return
	}
	r.toggleClasses(node, state)
}

// PositionOf computes the translate position for layout index ell,
// honoring compression per spec.md §4.5: uncompressed, it's simply
// the virtual offset; compressed, nodes are positioned in actual
// coordinates but their relative geometry within the rendered range
// reflects the virtual layout.
func PositionOf(ell, renStart int, hc HeightCache, comp *CompressionMapper) float64 {
	virtual := hc.OffsetAt(ell)
	if !comp.State().IsCompressed {
		return virtual
	}
	rangeStartVirtual := hc.OffsetAt(renStart)
	rangeStartActual := comp.VirtualToActual(rangeStartVirtual)
	return (virtual - rangeStartVirtual) + rangeStartActual
}
