// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: render/draw.go
// Summary: Paints a published grid snapshot onto a tcell screen.
// Notes: The snapshot is borrowed; Draw copies everything it needs before
//        returning, per the publisher's recycling contract.

package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/notbaab/neovim-mac/nvim"
)

// Draw paints the grid onto the screen, including the cursor. Callers show
// the result with screen.Show.
func Draw(screen tcell.Screen, grid *nvim.Grid) {
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			cell := grid.CellAt(row, col)
			if cell.Text == "" {
				// Right half of a double-width glyph; tcell spaces wide
				// runes itself.
				continue
			}

			runes := []rune(cell.Text)
			screen.SetContent(col, row, runes[0], runes[1:], Style(cell.Attrs))
		}
	}

	row, col := grid.Cursor()
	screen.ShowCursor(col, row)
	screen.SetCursorStyle(CursorStyle(grid.CursorAttrs()))
}

// GridString renders the grid's text content as one string per row joined
// by newlines, with double-width glyphs padded to keep columns aligned.
// Used by tests and the trace inspector; styling is dropped.
func GridString(grid *nvim.Grid) string {
	var b strings.Builder

	for row := 0; row < grid.Height(); row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < grid.Width(); col++ {
			cell := grid.CellAt(row, col)
			if cell.Attrs.Flags&nvim.AttrDoubleWidth != 0 {
				// The continuation cell to the right carries no text of
				// its own; the glyph covers both columns.
				b.WriteString(cell.Text)
				col++
				continue
			}
			if cell.Text == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cell.Text)
			// Keep columns aligned for wide glyphs that arrived without a
			// continuation cell.
			if w := runewidth.StringWidth(cell.Text); w > 1 {
				col += w - 1
			}
		}
	}

	return b.String()
}
