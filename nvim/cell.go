// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/cell.go
// Summary: Cell, color and attribute value types for the grid model.

package nvim

// RGBColor packs a 24-bit RGB value together with a "use default" marker.
// The zero value is the default color with black as its resolved value.
// Colors rewritten by default_colors_set keep the marker so later default
// changes re-resolve them again.
type RGBColor uint32

const (
	colorValueMask RGBColor = 0x00ffffff
	colorOpaque    RGBColor = 1 << 31
)

// NewRGBColor returns a concrete color, as produced by hl_attr_define.
func NewRGBColor(rgb uint32) RGBColor {
	return RGBColor(rgb)&colorValueMask | colorOpaque
}

// DefaultRGBColor returns a color that resolves to rgb but is still tagged
// as "use default", as produced by default_colors_set.
func DefaultRGBColor(rgb uint32) RGBColor {
	return RGBColor(rgb) & colorValueMask
}

// IsDefault reports whether the color tracks the default palette.
func (c RGBColor) IsDefault() bool {
	return c&colorOpaque == 0
}

// Value returns the renderable 24-bit 0xRRGGBB value.
func (c RGBColor) Value() uint32 {
	return uint32(c & colorValueMask)
}

// AttrFlags is a bitmask of cell rendering attributes.
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrItalic
	AttrUnderline
	AttrUndercurl
	AttrStrikethrough
	AttrReverse
	// AttrDoubleWidth marks the left cell of a glyph spanning two columns.
	AttrDoubleWidth
)

// CellAttributes is one resolved highlight record: colors plus flags.
// Reverse video is baked in when the record is defined, not at draw time.
type CellAttributes struct {
	Foreground RGBColor
	Background RGBColor
	Special    RGBColor
	Flags      AttrFlags
}

// Cell is one terminal cell. Text holds zero or more code points forming a
// single glyph; the empty string marks the right half of a double-width
// glyph. Cells are plain values and are copied freely between buffers.
type Cell struct {
	Text  string
	Attrs CellAttributes
}

// CursorShape selects how the cursor is drawn in a given mode.
type CursorShape int

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeVertical
	CursorShapeHorizontal
)

// CursorAttributes describes cursor rendering for the active mode.
type CursorAttributes struct {
	Shape      CursorShape
	Percentage uint16
	BlinkWait  uint16
	BlinkOn    uint16
	BlinkOff   uint16
	Blinks     bool
	Foreground RGBColor
	Background RGBColor
	Special    RGBColor
}
