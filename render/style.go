// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: render/style.go
// Summary: Converts resolved cell attributes to tcell styles and colors.

// Package render turns published grid snapshots into terminal output. It is
// the only package that knows about tcell; the core model stays plain RGB
// values and flags.
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/notbaab/neovim-mac/nvim"
)

// Color converts an RGBColor to a tcell color. A default-tagged black means
// default_colors_set has not arrived yet; fall back to the terminal default
// rather than painting everything black.
func Color(c nvim.RGBColor) tcell.Color {
	if c.IsDefault() && c.Value() == 0 {
		return tcell.ColorDefault
	}
	rgb := c.Value()
	return tcell.NewRGBColor(
		int32(rgb>>16&0xff),
		int32(rgb>>8&0xff),
		int32(rgb&0xff),
	)
}

// Style converts cell attributes to a tcell style. Reverse video is already
// baked into the colors at define time, so the reverse flag is not applied
// again here.
func Style(attrs nvim.CellAttributes) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(Color(attrs.Foreground)).
		Background(Color(attrs.Background))

	if attrs.Flags&nvim.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs.Flags&nvim.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs.Flags&nvim.AttrUnderline != 0 {
		style = style.Underline(true, Color(attrs.Special))
	}
	if attrs.Flags&nvim.AttrUndercurl != 0 {
		style = style.Underline(tcell.UnderlineStyleCurly, Color(attrs.Special))
	}
	if attrs.Flags&nvim.AttrStrikethrough != 0 {
		style = style.StrikeThrough(true)
	}
	return style
}

// CursorStyle maps a mode's cursor attributes to a tcell cursor style.
func CursorStyle(attrs nvim.CursorAttributes) tcell.CursorStyle {
	switch attrs.Shape {
	case nvim.CursorShapeVertical:
		if attrs.Blinks {
			return tcell.CursorStyleBlinkingBar
		}
		return tcell.CursorStyleSteadyBar
	case nvim.CursorShapeHorizontal:
		if attrs.Blinks {
			return tcell.CursorStyleBlinkingUnderline
		}
		return tcell.CursorStyleSteadyUnderline
	default:
		if attrs.Blinks {
			return tcell.CursorStyleBlinkingBlock
		}
		return tcell.CursorStyleSteadyBlock
	}
}
