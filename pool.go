package vlist

import (
	"strconv"

	"vlist/surface"
)

// ElementPool is a stack of detached host nodes plus a map from
// layout index to the node currently mounted at it. Grounded on the
// teacher's sync.Pool-based buffer/component pools (pool.go,
// buffer_pool.go): same "acquire, reset on release, no size cap"
// shape, generalized from a fixed set of pooled component kinds to a
// single detached-node stack since every row here is host-agnostic.
//
// Invariant: no node appears in both the free stack and the mounted
// map; every mounted node carries a "data-index" attr matching its
// map key.
type ElementPool struct {
	host    surface.Host
	free    []surface.Node
	mounted map[int]surface.Node
}

// NewElementPool creates a pool bound to a host.
func NewElementPool(host surface.Host) *ElementPool {
	return &ElementPool{
		host:    host,
		mounted: make(map[int]surface.Node),
	}
}

// Acquire pops a node from the free stack, or asks the host to create
// one if the stack is empty.
func (p *ElementPool) Acquire() surface.Node {
	if n := len(p.free); n > 0 {
		node := p.free[n-1]
		p.free = p.free[:n-1]
		return node
	}
	return p.host.NewNode()
}

// MountAt records that node n is now mounted at layout index i and
// attaches it to the host.
func (p *ElementPool) MountAt(i int, n surface.Node) {
	n.SetAttr("data-index", strconv.Itoa(i))
	p.host.Mount(n)
	p.mounted[i] = n
}

// NodeAt returns the node currently mounted at layout index i, if
// any.
func (p *ElementPool) NodeAt(i int) (surface.Node, bool) {
	n, ok := p.mounted[i]
	return n, ok
}

// MountedIndices returns the set of layout indices currently mounted.
func (p *ElementPool) MountedIndices() []int {
	out := make([]int, 0, len(p.mounted))
	for i := range p.mounted {
		out = append(out, i)
	}
	return out
}

// Release detaches the node mounted at layout index i, resets it, and
// returns it to the free stack.
func (p *ElementPool) Release(i int) {
	n, ok := p.mounted[i]
	if !ok {
		return
	}
	delete(p.mounted, i)
	p.host.Unmount(n)
	n.Reset()
	p.free = append(p.free, n)
}

// ReleaseAll detaches and resets every mounted node; called on
// destroy.
func (p *ElementPool) ReleaseAll() {
	for i := range p.mounted {
		p.Release(i)
	}
	p.free = nil
}

// Len reports how many nodes are currently mounted.
func (p *ElementPool) Len() int { return len(p.mounted) }
