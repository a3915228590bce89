package vlist

// GridLayout reshapes a linear data sequence into rows of Columns
// items, overriding the range and position math the linear layout
// otherwise uses. Grid is mutually exclusive with horizontal
// orientation, reverse mode, and groups — Mount rejects the
// combination (spec.md §4.10).
type GridLayout struct {
	Columns int
	Gap     float64

	dataLen      int
	rowHeight    func(row int) float64 // max across the row's items, or fixed
	containerW   float64

	heightCache *VariableHeightCache
}

// NewGridLayout builds a grid layout over dataLen items.
func NewGridLayout(columns int, gap float64, dataLen int, rowHeight func(row int) float64) *GridLayout {
	if columns < 1 {
		columns = 1
	}
	g := &GridLayout{Columns: columns, Gap: gap, rowHeight: rowHeight}
	g.Rebuild(dataLen)
	return g
}

// RowCount returns ceil(N/columns).
func (g *GridLayout) RowCount() int {
	if g.dataLen == 0 {
		return 0
	}
	return (g.dataLen + g.Columns - 1) / g.Columns
}

// Rebuild recomputes the row count and the row-keyed height cache.
func (g *GridLayout) Rebuild(dataLen int) {
	g.dataLen = dataLen
	g.heightCache = NewVariableHeightCache(g.rowHeight, g.RowCount())
}

// Length reports the row count to the viewport calculator, as spec.md
// §4.10 requires ("reports rows x columns ... as if heights were per
// row").
func (g *GridLayout) Length() int { return g.RowCount() }

// HeightCache returns the row-indexed height cache.
func (g *GridLayout) HeightCache() HeightCache { return g.heightCache }

// RowColOf returns the row and column for data index d.
func (g *GridLayout) RowColOf(d int) (row, col int) {
	return d / g.Columns, d % g.Columns
}

// DataIndexAt returns the data index at (row, col), or -1 if out of
// range.
func (g *GridLayout) DataIndexAt(row, col int) int {
	d := row*g.Columns + col
	if d < 0 || d >= g.dataLen {
		return -1
	}
	return d
}

// SetContainerWidth records the available width for column-width math.
func (g *GridLayout) SetContainerWidth(w float64) { g.containerW = w }

// ColumnWidth returns (containerWidth - (columns-1)*gap) / columns.
func (g *GridLayout) ColumnWidth() float64 {
	usable := g.containerW - float64(g.Columns-1)*g.Gap
	if usable < 0 {
		usable = 0
	}
	return usable / float64(g.Columns)
}

// PositionOf returns the (x, y) translate for data index d: column
// position from ColumnWidth/Gap, row position from the row height
// cache.
func (g *GridLayout) PositionOf(d int) (x, y float64) {
	row, col := g.RowColOf(d)
	colW := g.ColumnWidth()
	x = float64(col) * (colW + g.Gap)
	y = g.heightCache.OffsetAt(row)
	return x, y
}

// RowsInRange returns the data indices covered by rows
// [rowStart, rowEnd] inclusive.
func (g *GridLayout) RowsInRange(rowStart, rowEnd int) (dataStart, dataEnd int) {
	dataStart = rowStart * g.Columns
	dataEnd = (rowEnd+1)*g.Columns - 1
	if dataEnd >= g.dataLen {
		dataEnd = g.dataLen - 1
	}
	return
}

// ScrollRowFor returns the row index scrollToIndex must target to
// bring data index d into view (spec.md: grid "overrides
// scrollToIndex to scroll to the item's row").
func (g *GridLayout) ScrollRowFor(d int) int {
	row, _ := g.RowColOf(d)
	return row
}
