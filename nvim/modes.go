// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/modes.go
// Summary: Per-mode cursor style table rebuilt by mode_info_set.

package nvim

import "github.com/notbaab/neovim-mac/msg"

// ModeInfo describes cursor rendering for one editor mode.
type ModeInfo struct {
	Name        string
	CursorAttrs CursorAttributes
}

func parseCursorShape(value msg.Value, diag Diag) CursorShape {
	if name, ok := msg.String(value); ok {
		switch name {
		case "block":
			return CursorShapeBlock
		case "vertical":
			return CursorShapeVertical
		case "horizontal":
			return CursorShapeHorizontal
		}
	}

	diag.Report(SeverityError, "mode_info_set",
		"unknown cursor shape %s", msg.TypeName(value))
	return CursorShapeBlock
}

// setCursorColors resolves attr_id through the highlight table. Non-zero
// ids carry cursor colors directly; id 0 swaps foreground and background so
// the cursor stays visible over default-styled text.
func setCursorColors(attrs *CursorAttributes, hl *HighlightTable, value msg.Value, diag Diag) {
	hlid, ok := msg.Int(value)
	if !ok {
		diag.Report(SeverityError, "mode_info_set",
			"highlight id type error, got %s", msg.TypeName(value))
		return
	}

	record := hl.Resolve(int(hlid))
	attrs.Special = record.Special

	if hlid != 0 {
		attrs.Foreground = record.Foreground
		attrs.Background = record.Background
	} else {
		attrs.Foreground = record.Background
		attrs.Background = record.Foreground
	}
}

func narrow(value msg.Value) uint16 {
	n, _ := msg.Uint16(value)
	return n
}

// parseModeInfo builds one table entry from a mode property map. Blink
// animation is enabled only when all three timings are non-zero.
func parseModeInfo(hl *HighlightTable, properties map[string]msg.Value, diag Diag) ModeInfo {
	var info ModeInfo

	for name, value := range properties {
		switch name {
		case "cursor_shape":
			info.CursorAttrs.Shape = parseCursorShape(value, diag)
		case "cell_percentage":
			info.CursorAttrs.Percentage = narrow(value)
		case "blinkwait":
			info.CursorAttrs.BlinkWait = narrow(value)
		case "blinkon":
			info.CursorAttrs.BlinkOn = narrow(value)
		case "blinkoff":
			info.CursorAttrs.BlinkOff = narrow(value)
		case "name":
			info.Name, _ = msg.String(value)
		case "attr_id":
			setCursorColors(&info.CursorAttrs, hl, value, diag)
		}
	}

	if info.CursorAttrs.BlinkWait != 0 &&
		info.CursorAttrs.BlinkOn != 0 &&
		info.CursorAttrs.BlinkOff != 0 {
		info.CursorAttrs.Blinks = true
	}

	return info
}
