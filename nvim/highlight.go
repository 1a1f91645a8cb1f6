// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/highlight.go
// Summary: Highlight table mapping small integer ids to attribute records.
// Notes: Id 0 is the default group and is never removed.

package nvim

import "github.com/notbaab/neovim-mac/msg"

// HighlightTable stores attribute records indexed by highlight id. The UI
// protocol predefines highlight groups in a table and refers to them by
// index; the default group lives at id 0.
type HighlightTable struct {
	entries []CellAttributes
	diag    Diag
}

// NewHighlightTable returns a table containing only the default group.
func NewHighlightTable(diag Diag) *HighlightTable {
	return &HighlightTable{
		entries: make([]CellAttributes, 1, 64),
		diag:    diag,
	}
}

// Resolve returns the record for the given id. Ids that were never defined
// resolve to the default group, so lookups cannot fail.
func (t *HighlightTable) Resolve(id int) CellAttributes {
	if id >= 0 && id < len(t.entries) {
		return t.entries[id]
	}
	return t.entries[0]
}

// Default returns the id-0 record.
func (t *HighlightTable) Default() CellAttributes {
	return t.entries[0]
}

// Len returns the number of entries currently in the table.
func (t *HighlightTable) Len() int {
	return len(t.entries)
}

// entry returns a pointer to the record at id, extending the table as
// needed. Gaps are backfilled with copies of the default group so no id is
// ever undefined once referenced.
func (t *HighlightTable) entry(id int) *CellAttributes {
	if id < len(t.entries) {
		t.entries[id] = t.entries[0]
		return &t.entries[id]
	}

	def := t.entries[0]
	for len(t.entries) <= id {
		t.entries = append(t.entries, def)
	}
	return &t.entries[id]
}

// Define parses a named-attribute map into the record at id, creating or
// backfilling entries as needed. Unrecognized keys are reported and skipped.
// If the reverse flag ends up set, foreground and background are swapped
// once, after every named field has been parsed.
func (t *HighlightTable) Define(id int, definition map[string]msg.Value) {
	if id < 0 {
		t.diag.Report(SeverityError, "hl_attr_define", "negative highlight id %d", id)
		return
	}
	attrs := t.entry(id)

	for name, value := range definition {
		switch name {
		case "foreground":
			t.setRGB(&attrs.Foreground, value)
		case "background":
			t.setRGB(&attrs.Background, value)
		case "special":
			t.setRGB(&attrs.Special, value)
		case "bold":
			attrs.Flags |= AttrBold
		case "italic":
			attrs.Flags |= AttrItalic
		case "underline":
			attrs.Flags |= AttrUnderline
		case "undercurl":
			attrs.Flags |= AttrUndercurl
		case "strikethrough":
			attrs.Flags |= AttrStrikethrough
		case "reverse":
			attrs.Flags |= AttrReverse
		default:
			t.diag.Report(SeverityInfo, "hl_attr_define",
				"ignoring highlight attribute %q", name)
		}
	}

	if attrs.Flags&AttrReverse != 0 {
		attrs.Foreground, attrs.Background = attrs.Background, attrs.Foreground
	}
}

func (t *HighlightTable) setRGB(color *RGBColor, value msg.Value) {
	rgb, ok := msg.Uint32(value)
	if !ok {
		t.diag.Report(SeverityError, "hl_attr_define",
			"RGB type error, got %s", msg.TypeName(value))
		return
	}
	*color = NewRGBColor(rgb)
}

// SetDefaultColors rewrites the id-0 record and re-resolves every
// "use default" colored field across the whole table. Callers re-resolve
// the writing grid themselves; published snapshots are left untouched.
func (t *HighlightTable) SetDefaultColors(fg, bg, sp uint32) {
	def := &t.entries[0]
	def.Foreground = DefaultRGBColor(fg)
	def.Background = DefaultRGBColor(bg)
	def.Special = DefaultRGBColor(sp)
	def.Flags = 0

	for i := range t.entries {
		adjustDefaults(*def, &t.entries[i])
	}
}

// adjustDefaults rewrites the default-tagged fields of attrs against the
// current default record. Reversed records pick up swapped defaults so the
// bake-at-define-time swap stays consistent.
func adjustDefaults(def CellAttributes, attrs *CellAttributes) {
	reversed := attrs.Flags&AttrReverse != 0

	if attrs.Foreground.IsDefault() {
		if reversed {
			attrs.Foreground = def.Background
		} else {
			attrs.Foreground = def.Foreground
		}
	}
	if attrs.Background.IsDefault() {
		if reversed {
			attrs.Background = def.Foreground
		} else {
			attrs.Background = def.Background
		}
	}
	if attrs.Special.IsDefault() {
		attrs.Special = def.Special
	}
}
