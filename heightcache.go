package vlist

import "sort"

// HeightCache maps a layout index to its cumulative pixel offset and
// back. It has two implementations — fixed and variable — behind one
// capability set, the same "tagged abstraction" the teacher's own
// VirtualList comments call for with its "itemHeight int // fixed
// height per item (for now)" field: here the "for now" is resolved by
// giving variable heights their own implementation instead of a TODO.
type HeightCache interface {
	// OffsetAt returns the cumulative height of entries [0, i).
	// Returns 0 for i <= 0 and totalHeight for i >= length.
	OffsetAt(i int) float64
	// IndexAtOffset returns the largest i such that OffsetAt(i) <= o.
	// Returns 0 when length is 0 or o <= 0.
	IndexAtOffset(o float64) int
	// HeightOf returns the height of the entry at i.
	HeightOf(i int) float64
	// TotalHeight returns OffsetAt(length).
	TotalHeight() float64
	// Rebuild recomputes the cache for a new length, using the
	// height source the cache was built with.
	Rebuild(length int)
	// Length returns the current layout length the cache covers.
	Length() int
}

// FixedHeightCache implements HeightCache when every entry has the
// same height: offsetAt(i) = i*h, indexAtOffset(o) = floor(o/h).
type FixedHeightCache struct {
	height float64
	length int
}

// NewFixedHeightCache creates a fixed-height cache for length entries.
func NewFixedHeightCache(height float64, length int) *FixedHeightCache {
	return &FixedHeightCache{height: height, length: length}
}

func (c *FixedHeightCache) OffsetAt(i int) float64 {
	if i <= 0 {
		return 0
	}
	if i >= c.length {
		return c.TotalHeight()
	}
	return float64(i) * c.height
}

func (c *FixedHeightCache) IndexAtOffset(o float64) int {
	if c.length == 0 || o <= 0 {
		return 0
	}
	idx := int(o / c.height)
	if idx >= c.length {
		idx = c.length - 1
	}
	return idx
}

func (c *FixedHeightCache) HeightOf(i int) float64 {
	if i < 0 || i >= c.length {
		return 0
	}
	return c.height
}

func (c *FixedHeightCache) TotalHeight() float64 {
	return float64(c.length) * c.height
}

func (c *FixedHeightCache) Rebuild(length int) {
	c.length = length
}

func (c *FixedHeightCache) Length() int { return c.length }

// VariableHeightCache implements HeightCache with a prefix-sum array,
// giving O(log L) offset<->index lookups via binary search. Rebuild
// recomputes the whole prefix sum eagerly: per spec.md's design note,
// item mutations are rare relative to scrolls, so the cost is
// amortized rather than optimized away.
type VariableHeightCache struct {
	heightOf func(i int) float64
	prefix   []float64 // prefix[i] = offsetAt(i); len(prefix) = length+1
}

// NewVariableHeightCache creates a variable-height cache for length
// entries, deriving each entry's height from heightOf.
func NewVariableHeightCache(heightOf func(i int) float64, length int) *VariableHeightCache {
	c := &VariableHeightCache{heightOf: heightOf}
	c.Rebuild(length)
	return c
}

func (c *VariableHeightCache) Rebuild(length int) {
	prefix := make([]float64, length+1)
	var sum float64
	for i := 0; i < length; i++ {
		prefix[i] = sum
		sum += c.heightOf(i)
	}
	prefix[length] = sum
	c.prefix = prefix
}

func (c *VariableHeightCache) Length() int { return len(c.prefix) - 1 }

func (c *VariableHeightCache) OffsetAt(i int) float64 {
	length := c.Length()
	if i <= 0 {
		return 0
	}
	if i >= length {
		return c.prefix[length]
	}
	return c.prefix[i]
}

func (c *VariableHeightCache) IndexAtOffset(o float64) int {
	length := c.Length()
	if length == 0 || o <= 0 {
		return 0
	}
	// largest i such that prefix[i] <= o, over prefix[0:length]
	i := sort.Search(length, func(i int) bool { return c.prefix[i+1] > o })
	if i >= length {
		i = length - 1
	}
	return i
}

func (c *VariableHeightCache) HeightOf(i int) float64 {
	length := c.Length()
	if i < 0 || i >= length {
		return 0
	}
	return c.prefix[i+1] - c.prefix[i]
}

func (c *VariableHeightCache) TotalHeight() float64 {
	return c.prefix[len(c.prefix)-1]
}

// UpdateItem picks up a changed height for entry i by recomputing the
// whole prefix sum; i itself is not used. spec.md §9's open question ("rebuild
// full prefix sum or patch incrementally") is resolved here by always
// doing a full Rebuild — simplest, matches the Rebuild cost model
// already assumed for mutations, and avoids a second, subtly
// different incremental-update code path to keep correct.
func (c *VariableHeightCache) UpdateItem(i int) {
	c.Rebuild(c.Length())
}
