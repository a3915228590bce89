//go:build js && wasm

// Package domjs is the real browser surface.Host, built on syscall/js.
// Grounded directly on the retrieved gux VirtualList component: same
// absolute-positioned content div inside a scrolling viewport div, same
// createElement/appendChild/style idiom, generalized from that
// component's single render() pass into the engine's mount/unmount-per-
// node pooling model.
package domjs

import (
	"fmt"
	"syscall/js"

	"vlist/surface"
)

// Element is a Content that wraps an already-built js.Value subtree,
// for template functions that want real DOM rather than plain text.
type Element struct {
	Value js.Value
}

func (e Element) String() string {
	if !e.Value.Truthy() {
		return ""
	}
	return e.Value.Get("outerHTML").String()
}

// Node is a pooled <div>, absolutely positioned within the content
// container.
type Node struct {
	el js.Value
}

func newNode(document js.Value) *Node {
	el := document.Call("createElement", "div")
	style := el.Get("style")
	style.Set("position", "absolute")
	style.Set("left", "0")
	style.Set("right", "0")
	style.Set("will-change", "transform")
	el.Set("className", "vlist-row")
	el.Call("setAttribute", "role", "option")
	return &Node{el: el}
}

func (n *Node) SetAttr(key, value string) { n.el.Call("setAttribute", key, value) }
func (n *Node) RemoveAttr(key string)      { n.el.Call("removeAttribute", key) }

func (n *Node) SetContent(c surface.Content) {
	if el, ok := c.(Element); ok {
		n.el.Set("innerHTML", "")
		if el.Value.Truthy() {
			n.el.Call("appendChild", el.Value)
		}
		return
	}
	n.el.Set("textContent", c.String())
}

func (n *Node) SetPosition(x, y float64) {
	style := n.el.Get("style")
	style.Set("transform", fmt.Sprintf("translate(%gpx, %gpx)", x, y))
}

func (n *Node) SetSize(w, h float64) {
	style := n.el.Get("style")
	if h > 0 {
		style.Set("height", fmt.Sprintf("%gpx", h))
	}
	if w > 0 {
		style.Set("width", fmt.Sprintf("%gpx", w))
	}
}

func (n *Node) SetClass(name string, on bool) {
	classList := n.el.Get("classList")
	if on {
		classList.Call("add", name)
	} else {
		classList.Call("remove", name)
	}
}

func (n *Node) Detach() {
	parent := n.el.Get("parentNode")
	if parent.Truthy() {
		parent.Call("removeChild", n.el)
	}
}

func (n *Node) Reset() {
	n.el.Set("innerHTML", "")
	attrs := n.el.Get("attributes")
	for attrs.Get("length").Int() > 0 {
		name := attrs.Index(0).Get("name").String()
		n.el.Call("removeAttribute", name)
	}
	// removing every attribute also drops class, style and role; put
	// newNode's skeleton back so a reused node matches a fresh one.
	style := n.el.Get("style")
	style.Set("position", "absolute")
	style.Set("left", "0")
	style.Set("right", "0")
	style.Set("will-change", "transform")
	n.el.Set("className", "vlist-row")
	n.el.Call("setAttribute", "role", "option")
}

// Host mounts into an existing container element, building the
// scrolling viewport/content pair the way the gux VirtualList does.
type Host struct {
	container js.Value
	viewport  js.Value
	content   js.Value

	scrollHandler js.Func
	resizeHandler js.Func
	onScroll      func(actual float64)
	onResize      func(surface.ResizeEvent)
}

// New builds the viewport/content DOM structure inside container
// (an existing js.Value, typically found via
// document.getElementById) and wires scroll/resize listeners that
// call onScroll/onResize. height/width are CSS size strings, e.g.
// "400px" or "100%".
func New(container js.Value, height, width string, onScroll func(float64), onResize func(surface.ResizeEvent)) *Host {
	document := js.Global().Get("document")

	container.Get("style").Set("height", height)
	container.Get("style").Set("width", width)

	viewport := document.Call("createElement", "div")
	vstyle := viewport.Get("style")
	vstyle.Set("height", "100%")
	vstyle.Set("overflow", "auto")
	vstyle.Set("position", "relative")
	viewport.Set("className", "vlist-viewport")

	content := document.Call("createElement", "div")
	content.Get("style").Set("position", "relative")
	content.Set("className", "vlist-content")

	viewport.Call("appendChild", content)
	container.Call("appendChild", viewport)

	h := &Host{container: container, viewport: viewport, content: content, onScroll: onScroll, onResize: onResize}

	h.scrollHandler = js.FuncOf(func(this js.Value, args []js.Value) any {
		if h.onScroll != nil {
			h.onScroll(h.viewport.Get("scrollTop").Float())
		}
		return nil
	})
	viewport.Call("addEventListener", "scroll", h.scrollHandler)

	h.resizeHandler = js.FuncOf(func(this js.Value, args []js.Value) any {
		if h.onResize != nil {
			h.onResize(h.Viewport2())
		}
		return nil
	})
	js.Global().Get("window").Call("addEventListener", "resize", h.resizeHandler)

	return h
}

func (h *Host) NewNode() surface.Node {
	n := newNode(js.Global().Get("document"))
	return n
}

func (h *Host) Mount(n surface.Node) {
	el := n.(*Node).el
	// the id SetActiveDescendant points at; the pool sets data-index
	// before mounting.
	el.Set("id", "vlist-row-"+el.Call("getAttribute", "data-index").String())
	h.content.Call("appendChild", el)
}

func (h *Host) Unmount(n surface.Node) {
	n.Detach()
}

// Viewport2 avoids colliding with the surface.Host.Viewport method
// name while letting the resize handler reuse the same
// getBoundingClientRect read.
func (h *Host) Viewport2() surface.ResizeEvent {
	rect := h.viewport.Call("getBoundingClientRect")
	return surface.ResizeEvent{Width: rect.Get("width").Float(), Height: rect.Get("height").Float()}
}

func (h *Host) Viewport() surface.Rect {
	ev := h.Viewport2()
	return surface.Rect{Width: ev.Width, Height: ev.Height}
}

func (h *Host) SetContentHeight(height float64) {
	h.content.Get("style").Set("height", fmt.Sprintf("%gpx", height))
}

func (h *Host) ScrollTop() float64 {
	return h.viewport.Get("scrollTop").Float()
}

func (h *Host) SetScrollTop(v float64) {
	h.viewport.Set("scrollTop", v)
}

func (h *Host) SetBusy(busy bool) {
	if busy {
		h.container.Call("setAttribute", "aria-busy", "true")
	} else {
		h.container.Call("removeAttribute", "aria-busy")
	}
}

func (h *Host) SetActiveDescendant(layoutIndex, total int) {
	h.container.Call("setAttribute", "aria-activedescendant", fmt.Sprintf("vlist-row-%d", layoutIndex))
}

func (h *Host) Destroy() {
	h.viewport.Call("removeEventListener", "scroll", h.scrollHandler)
	h.scrollHandler.Release()
	js.Global().Get("window").Call("removeEventListener", "resize", h.resizeHandler)
	h.resizeHandler.Release()
	h.content.Set("innerHTML", "")
}
