// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: cmd/nvim-view/demo.go
// Summary: Built-in redraw script played when no trace is given.

package main

import (
	"fmt"

	"github.com/notbaab/neovim-mac/msg"
)

// demoScript produces redraw batches the way the editor would send them:
// options and highlight definitions first, then grid content, each batch
// terminated by a flush.
func demoScript() [][]msg.Value {
	var batches [][]msg.Value

	batches = append(batches, []msg.Value{
		[]any{"option_set", []any{"ext_linegrid", true}},
		[]any{"default_colors_set", []any{0xdcdccc, 0x3f3f3f, 0xdca3a3}},
		[]any{"hl_attr_define", []any{1, map[string]any{"foreground": 0x7f9f7f, "bold": true}}},
		[]any{"hl_attr_define", []any{2, map[string]any{"foreground": 0xf0dfaf, "italic": true}}},
		[]any{"hl_attr_define", []any{3, map[string]any{"reverse": true}}},
		[]any{"mode_info_set", []any{true, []any{
			map[string]any{"name": "normal", "cursor_shape": "block"},
			map[string]any{"name": "insert", "cursor_shape": "vertical",
				"cell_percentage": 25, "blinkwait": 700, "blinkon": 400, "blinkoff": 250},
		}}},
		[]any{"mode_change", []any{"normal", 0}},
		[]any{"set_title", []any{"nvim-view demo"}},
		[]any{"grid_resize", []any{1, 60, 12}},
		[]any{"flush", []any{}},
	})

	batches = append(batches, []msg.Value{
		[]any{"grid_clear", []any{1}},
		[]any{"grid_line",
			[]any{1, 0, 0, []any{[]any{"n", 1}, []any{"vim-view"}, []any{" "}, []any{"—", 2}, []any{" "}, []any{"redraw core demo"}}},
			[]any{1, 1, 0, []any{[]any{"─", 2, 60}}},
		},
		[]any{"grid_cursor_goto", []any{1, 2, 0}},
		[]any{"flush", []any{}},
	})

	for i := 0; i < 8; i++ {
		batches = append(batches, []msg.Value{
			[]any{"grid_line",
				[]any{1, 11, 0, []any{[]any{fmt.Sprintf("line %d scrolls up", i), 0}}},
			},
			[]any{"grid_scroll", []any{1, 2, 12, 0, 60, 1}},
			[]any{"flush", []any{}},
		})
	}

	batches = append(batches, []msg.Value{
		[]any{"mode_change", []any{"insert", 1}},
		[]any{"grid_line",
			[]any{1, 11, 0, []any{[]any{"-", 3}, []any{"-", 3}, []any{" INSERT ", 3}, []any{"press q to quit", 0}}},
		},
		[]any{"grid_cursor_goto", []any{1, 11, 25}},
		[]any{"flush", []any{}},
	})

	return batches
}
