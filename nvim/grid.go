// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/grid.go
// Summary: Flat row-major cell buffer with cursor state and a version tick.
// Usage: Two instances ping-pong between the writing and published roles.

package nvim

import "github.com/notbaab/neovim-mac/msg"

// Grid is the single supported screen cell matrix. The event-processing
// goroutine is its sole writer; readers only see instances published
// through the controller's complete pointer.
type Grid struct {
	width  int
	height int
	cells  []Cell

	cursorRow   int
	cursorCol   int
	cursorAttrs CursorAttributes

	drawTick uint64
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// DrawTick returns the frame counter, incremented once per published frame.
func (g *Grid) DrawTick() uint64 { return g.drawTick }

// Cursor returns the cursor position as (row, col).
func (g *Grid) Cursor() (int, int) { return g.cursorRow, g.cursorCol }

// CursorAttrs returns the cursor style selected by the last mode change.
func (g *Grid) CursorAttrs() CursorAttributes { return g.cursorAttrs }

// CellAt returns the cell at (row, col). Callers must stay in bounds.
func (g *Grid) CellAt(row, col int) Cell {
	return g.cells[row*g.width+col]
}

// Row returns the cells of one row. The returned slice aliases the grid;
// treat it as read-only.
func (g *Grid) Row(row int) []Cell {
	return g.cells[row*g.width : (row+1)*g.width]
}

// resize reallocates the cell buffer to width*height. Content is truncated
// or extended in flat order, not reflowed; callers expect a visual reset
// after a width change.
func (g *Grid) resize(width, height int) {
	g.width = width
	g.height = height

	n := width * height
	if cap(g.cells) >= n {
		old := len(g.cells)
		g.cells = g.cells[:n]
		for i := old; i < n; i++ {
			g.cells[i] = Cell{}
		}
		return
	}

	cells := make([]Cell, n)
	copy(cells, g.cells)
	g.cells = cells
}

// clear resets every cell to an empty glyph carrying the default background.
func (g *Grid) clear(background RGBColor) {
	empty := Cell{}
	empty.Attrs.Background = background
	for i := range g.cells {
		g.cells[i] = empty
	}
}

// setCursor moves the cursor; bounds are checked by the caller.
func (g *Grid) setCursor(row, col int) {
	g.cursorRow = row
	g.cursorCol = col
}

// applyLine applies one grid_line run starting at (row, col). Each update
// is [text], [text, hlid] or [text, hlid, repeat]; an omitted highlight id
// persists from the previous update within the same run. Empty text marks
// the right half of a double-width glyph. Returns diagnostics through diag
// and leaves already-written cells in place on overflow.
func (g *Grid) applyLine(row, col int, updates []msg.Value, hl *HighlightTable, diag Diag) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		diag.Report(SeverityError, "grid_line",
			"index out of bounds, grid=%dx%d row=%d col=%d",
			g.width, g.height, row, col)
		return
	}

	rowCells := g.Row(row)
	x := col

	// Attributes persist across updates until an id is supplied.
	var attrs CellAttributes
	haveAttrs := false

	for _, update := range updates {
		tuple, ok := msg.Array(update)
		if !ok || len(tuple) < 1 || len(tuple) > 3 {
			diag.Report(SeverityError, "grid_line",
				"cell update type error, got %s", msg.TypeName(update))
			return
		}

		text, ok := msg.String(tuple[0])
		if !ok {
			diag.Report(SeverityError, "grid_line",
				"cell update type error, got %s", msg.TupleTypes(tuple))
			return
		}

		repeat := 1
		if len(tuple) >= 2 {
			hlid, ok := msg.Int(tuple[1])
			if !ok {
				diag.Report(SeverityError, "grid_line",
					"cell update type error, got %s", msg.TupleTypes(tuple))
				return
			}
			attrs = hl.Resolve(int(hlid))
			haveAttrs = true
		}
		if len(tuple) == 3 {
			n, ok := msg.Int(tuple[2])
			if !ok {
				diag.Report(SeverityError, "grid_line",
					"cell update type error, got %s", msg.TupleTypes(tuple))
				return
			}
			repeat = int(n)
		}

		// Every update touches the cell at the run cursor, so an exhausted
		// row overflows no matter what form the update takes.
		if x >= g.width || repeat < 0 || repeat > g.width-x {
			diag.Report(SeverityError, "grid_line",
				"row overflow, width=%d col=%d repeat=%d", g.width, x, repeat)
			return
		}

		if text == "" {
			// Right half of a double-width glyph. Should never start a
			// row; drop the run if it does.
			if x == 0 {
				return
			}
			left := &rowCells[x-1]
			rowCells[x].Text = ""
			rowCells[x].Attrs = left.Attrs
			left.Attrs.Flags |= AttrDoubleWidth

			// Double-width continuations never repeat.
			x++
			continue
		}

		cell := Cell{Text: text}
		if haveAttrs {
			cell.Attrs = attrs
		} else {
			cell.Attrs = rowCells[x].Attrs
		}
		// A zero repeat still writes the cell but leaves the run cursor in
		// place, so the next update lands on top of it.
		rowCells[x] = cell
		for i := 1; i < repeat; i++ {
			rowCells[x+i] = cell
		}
		x += repeat
	}
}

// scroll shifts the [top,bottom)x[left,right) sub-rectangle vertically by
// rows. Positive rows scroll content upward. The copy walks in the scroll
// direction so overlapping source and destination rows stay safe.
func (g *Grid) scroll(top, bottom, left, right, rows int) {
	height := bottom - top
	width := right - left

	var count, step, dest int
	if rows >= 0 {
		dest = top
		step = 1
		count = height - rows
	} else {
		dest = bottom - 1
		step = -1
		count = height + rows
	}

	for i := 0; i < count; i++ {
		src := dest + rows
		copy(g.cells[dest*g.width+left:dest*g.width+left+width],
			g.cells[src*g.width+left:src*g.width+left+width])
		dest += step
	}
}

// copyFrom overwrites g with a full copy of src. The next writing buffer
// must start identical to the last published frame because subsequent
// events are differential.
func (g *Grid) copyFrom(src *Grid) {
	g.width = src.width
	g.height = src.height
	g.cursorRow = src.cursorRow
	g.cursorCol = src.cursorCol
	g.cursorAttrs = src.cursorAttrs
	g.drawTick = src.drawTick

	if cap(g.cells) < len(src.cells) {
		g.cells = make([]Cell, len(src.cells))
	} else {
		g.cells = g.cells[:len(src.cells)]
	}
	copy(g.cells, src.cells)
}
