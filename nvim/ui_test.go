// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/ui_test.go
// Summary: Exercises event dispatch, the double-buffer publish and the
//          option notification contract end to end.

package nvim

import (
	"runtime"
	"testing"

	"github.com/notbaab/neovim-mac/msg"
)

// ev builds one redraw event: [name, argTuple...].
func ev(name string, tuples ...any) msg.Value {
	event := []any{name}
	return append(event, tuples...)
}

func flushEvent() msg.Value { return ev("flush", []any{}) }

func TestRedrawPublishesFrame(t *testing.T) {
	c, window, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 10, 4}),
		ev("hl_attr_define", []any{1, map[string]any{"foreground": 0x00ff00}}),
		ev("grid_line", []any{1, 0, 0, []any{[]any{"h", 1}, []any{"i"}}}),
		ev("grid_cursor_goto", []any{1, 0, 2}),
		flushEvent(),
	})

	if window.redraws != 1 {
		t.Fatalf("redraw callbacks = %d, want 1", window.redraws)
	}
	if diag.errorCount() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diag.records)
	}

	grid := c.Complete()
	if grid.Width() != 10 || grid.Height() != 4 {
		t.Fatalf("published grid is %dx%d, want 10x4", grid.Width(), grid.Height())
	}
	if grid.CellAt(0, 0).Text != "h" || grid.CellAt(0, 1).Text != "i" {
		t.Fatalf("published content wrong: %+v %+v", grid.CellAt(0, 0), grid.CellAt(0, 1))
	}
	if row, col := grid.Cursor(); row != 0 || col != 2 {
		t.Fatalf("published cursor = (%d,%d), want (0,2)", row, col)
	}
}

func TestFlushRecyclesWritingBuffer(t *testing.T) {
	c, _, _ := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 6, 2}),
		ev("grid_line", []any{1, 1, 0, []any{[]any{"z", 0, 6}}}),
		flushEvent(),
	})

	published := c.Complete()
	if c.writing == published {
		t.Fatalf("writing and published buffers alias each other")
	}
	if c.writing.width != published.width || c.writing.height != published.height ||
		c.writing.drawTick != published.drawTick {
		t.Fatalf("writing buffer header differs from published")
	}
	for i := range published.cells {
		if c.writing.cells[i] != published.cells[i] {
			t.Fatalf("cell %d differs after recycle: %+v vs %+v",
				i, c.writing.cells[i], published.cells[i])
		}
	}
}

func TestFlushTicksAreSuccessive(t *testing.T) {
	c, _, _ := newTestController()

	c.Redraw([]msg.Value{ev("grid_resize", []any{1, 4, 2}), flushEvent()})
	first := c.Complete().DrawTick()

	c.Redraw([]msg.Value{flushEvent()})
	second := c.Complete().DrawTick()

	if second != first+1 {
		t.Fatalf("ticks = %d then %d, want successive", first, second)
	}
}

func TestDefaultColorsSetLeavesPublishedAlone(t *testing.T) {
	c, _, _ := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 4, 1}),
		ev("default_colors_set", []any{0x111111, 0x222222, 0x333333}),
		ev("grid_line", []any{1, 0, 0, []any{[]any{"a", 0, 4}}}),
		flushEvent(),
	})

	published := c.Complete()
	before := published.CellAt(0, 0).Attrs

	c.Redraw([]msg.Value{
		ev("default_colors_set", []any{0xaaaaaa, 0xbbbbbb, 0xcccccc}),
	})

	if got := published.CellAt(0, 0).Attrs; got != before {
		t.Fatalf("published cell retouched: %+v, was %+v", got, before)
	}
	if got := c.writing.CellAt(0, 0).Attrs.Background.Value(); got != 0xbbbbbb {
		t.Fatalf("writing cell background = %#x, want re-resolved 0xbbbbbb", got)
	}
}

func TestMalformedEventsSkipSiblings(t *testing.T) {
	c, window, diag := newTestController()

	c.Redraw([]msg.Value{
		"not-an-event",
		[]any{},
		[]any{42, []any{}},
		ev("grid_resize", []any{1, 5, 2}),
		flushEvent(),
	})

	if window.redraws != 1 {
		t.Fatalf("well-formed siblings were not processed")
	}
	if c.Complete().Width() != 5 {
		t.Fatalf("resize dropped alongside malformed events")
	}
	if diag.errorCount() != 3 {
		t.Fatalf("diagnostics = %+v, want 3 errors", diag.records)
	}
}

func TestTupleMismatchSkipsOnlyThatTuple(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 8, 4}),
		ev("grid_cursor_goto",
			[]any{1, "x", 0},
			[]any{1},
			[]any{1, 2, 3},
		),
	})

	if row, col := c.writing.Cursor(); row != 2 || col != 3 {
		t.Fatalf("cursor = (%d,%d), want the valid tuple applied (2,3)", row, col)
	}
	if !diag.hasError("grid_cursor_goto", "argument type error") {
		t.Fatalf("tuple mismatch not reported: %+v", diag.records)
	}
}

func TestExtraTrailingTupleArgsTolerated(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 4, 4}),
		// Newer protocol versions append a columns argument.
		ev("grid_scroll", []any{1, 0, 4, 0, 4, 1, 0}),
	})

	if diag.errorCount() != 0 {
		t.Fatalf("trailing argument rejected: %+v", diag.records)
	}
}

func TestUnknownEventReportedInfo(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{ev("win_viewport", []any{})})

	found := false
	for _, r := range diag.records {
		if r.sev == SeverityInfo && r.event == "redraw" {
			found = true
		}
	}
	if !found {
		t.Fatalf("unknown event not reported: %+v", diag.records)
	}
}

func TestIgnoredEventsAreSilent(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("mouse_on"),
		ev("mouse_off"),
		ev("set_icon", []any{"icon"}),
		ev("hl_group_set", []any{"Normal", 1}),
	})

	if len(diag.records) != 0 {
		t.Fatalf("ignored events produced diagnostics: %+v", diag.records)
	}
}

func TestMultigridIsFatal(t *testing.T) {
	c, _, _ := newTestController()

	defer func() {
		if recover() == nil {
			t.Fatalf("grid id 2 did not panic")
		}
	}()
	c.Redraw([]msg.Value{ev("grid_resize", []any{2, 4, 4})})
}

func TestCursorGotoBounds(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 10, 5}),
		ev("grid_cursor_goto", []any{1, 4, 9}),
	})
	if row, col := c.writing.Cursor(); row != 4 || col != 9 {
		t.Fatalf("cursor = (%d,%d), want (4,9)", row, col)
	}

	c.Redraw([]msg.Value{ev("grid_cursor_goto", []any{1, 5, 9})})
	if row, col := c.writing.Cursor(); row != 4 || col != 9 {
		t.Fatalf("out-of-bounds goto moved cursor to (%d,%d)", row, col)
	}
	if !diag.hasError("grid_cursor_goto", "out of bounds") {
		t.Fatalf("out-of-bounds goto not reported: %+v", diag.records)
	}
}

func TestScrollInvalidRectangle(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 4, 4}),
		ev("grid_scroll", []any{1, 3, 1, 0, 4, 1}),
		ev("grid_scroll", []any{1, 0, 4, 0, 9, 1}),
	})

	if !diag.hasError("grid_scroll", "invalid args") {
		t.Fatalf("inverted rectangle not reported: %+v", diag.records)
	}
	if !diag.hasError("grid_scroll", "out of bounds") {
		t.Fatalf("oversized rectangle not reported: %+v", diag.records)
	}
}

func TestSetTitle(t *testing.T) {
	c, window, _ := newTestController()

	c.Redraw([]msg.Value{ev("set_title", []any{"notes.txt + Neovim"})})

	if window.titles != 1 {
		t.Fatalf("title callbacks = %d, want 1", window.titles)
	}
	if got := c.Title(); got != "notes.txt + Neovim" {
		t.Fatalf("Title() = %q", got)
	}
}

func TestOptionSetNotifiesOncePerBatch(t *testing.T) {
	c, window, _ := newTestController()

	c.Redraw([]msg.Value{
		ev("option_set", []any{"ext_cmdline", true}),
		ev("option_set", []any{"ext_tabline", true}, []any{"ext_messages", true}),
	})

	if window.options != 1 {
		t.Fatalf("options callbacks = %d, want 1 per batch", window.options)
	}
	opts := c.Options()
	if !opts.ExtCmdline || !opts.ExtTabline || !opts.ExtMessages {
		t.Fatalf("options not applied: %+v", opts)
	}
}

func TestOptionSetRedundantBatchSuppressed(t *testing.T) {
	c, window, _ := newTestController()

	c.Redraw([]msg.Value{ev("option_set", []any{"ext_popupmenu", true})})
	c.Redraw([]msg.Value{ev("option_set", []any{"ext_popupmenu", true})})

	if window.options != 1 {
		t.Fatalf("options callbacks = %d, want the redundant batch suppressed", window.options)
	}
}

func TestOptionSetWrongTypesIgnored(t *testing.T) {
	c, window, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("option_set",
			[]any{"ext_cmdline", "yes"},
			[]any{"guifont", 14},
			[]any{"mousemoveevent", true},
		),
	})

	if window.options != 0 || window.fonts != 0 {
		t.Fatalf("invalid options fired callbacks: %+v", window)
	}
	if c.Options().ExtCmdline {
		t.Fatalf("wrong-typed option applied")
	}
	infos := 0
	for _, r := range diag.records {
		if r.sev == SeverityInfo && r.event == "option_set" {
			infos++
		}
	}
	if infos != 3 {
		t.Fatalf("option diagnostics = %+v, want 3 infos", diag.records)
	}
}

func TestGuifontOption(t *testing.T) {
	c, window, _ := newTestController()

	c.Redraw([]msg.Value{
		ev("option_set", []any{"guifont", "Menlo:h14, Courier"}),
	})

	if window.fonts != 1 {
		t.Fatalf("font callbacks = %d, want 1", window.fonts)
	}
	if got := c.FontString(); got != "Menlo:h14, Courier" {
		t.Fatalf("FontString() = %q", got)
	}

	fonts := c.Fonts(13.0)
	if len(fonts) != 2 || fonts[0] != (Font{"Menlo", 14.0}) || fonts[1] != (Font{"Courier", 13.0}) {
		t.Fatalf("Fonts() = %+v", fonts)
	}
}

func TestModeInfoSetAndModeChange(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("grid_resize", []any{1, 4, 2}),
		ev("default_colors_set", []any{0x111111, 0x222222, 0x333333}),
		ev("hl_attr_define", []any{7, map[string]any{
			"foreground": 0xabc123, "background": 0x123abc,
		}}),
		ev("mode_info_set", []any{true, []any{
			map[string]any{"name": "normal", "cursor_shape": "block", "attr_id": 0},
			map[string]any{"name": "insert", "cursor_shape": "vertical",
				"cell_percentage": 25, "blinkwait": 700, "blinkon": 400,
				"blinkoff": 250, "attr_id": 7},
		}}),
		ev("mode_change", []any{"insert", 1}),
	})

	attrs := c.writing.CursorAttrs()
	if attrs.Shape != CursorShapeVertical || attrs.Percentage != 25 {
		t.Fatalf("cursor attrs = %+v", attrs)
	}
	if !attrs.Blinks {
		t.Fatalf("blink not enabled with all three timings set")
	}
	if attrs.Foreground != NewRGBColor(0xabc123) || attrs.Background != NewRGBColor(0x123abc) {
		t.Fatalf("non-zero attr_id colors not taken as-is: %+v", attrs)
	}

	// Mode 0 uses the default group with swapped polarity.
	c.Redraw([]msg.Value{ev("mode_change", []any{"normal", 0})})
	attrs = c.writing.CursorAttrs()
	if attrs.Shape != CursorShapeBlock || attrs.Blinks {
		t.Fatalf("mode 0 attrs = %+v", attrs)
	}
	if attrs.Foreground.Value() != 0x222222 || attrs.Background.Value() != 0x111111 {
		t.Fatalf("id-0 polarity flip missing: %+v", attrs)
	}

	// Out-of-range keeps the previous cursor attributes in effect.
	c.Redraw([]msg.Value{ev("mode_change", []any{"bogus", 9})})
	if got := c.writing.CursorAttrs(); got != attrs {
		t.Fatalf("out-of-range mode change altered cursor attrs")
	}
	if !diag.hasError("mode_change", "out of bounds") {
		t.Fatalf("out-of-range mode change not reported: %+v", diag.records)
	}
}

func TestModeInfoSetResetsCurrentMode(t *testing.T) {
	c, _, _ := newTestController()

	modes := []any{
		map[string]any{"name": "normal", "cursor_shape": "block"},
		map[string]any{"name": "insert", "cursor_shape": "vertical"},
	}
	c.Redraw([]msg.Value{
		ev("mode_info_set", []any{true, modes}),
		ev("mode_change", []any{"insert", 1}),
	})
	if c.currentMode != 1 {
		t.Fatalf("currentMode = %d, want 1", c.currentMode)
	}

	c.Redraw([]msg.Value{ev("mode_info_set", []any{true, modes})})
	if c.currentMode != 0 {
		t.Fatalf("rebuild did not reset currentMode, got %d", c.currentMode)
	}
}

func TestUnknownCursorShapeFallsBackToBlock(t *testing.T) {
	c, _, diag := newTestController()

	c.Redraw([]msg.Value{
		ev("mode_info_set", []any{true, []any{
			map[string]any{"name": "weird", "cursor_shape": "wobble"},
		}}),
		ev("mode_change", []any{"weird", 0}),
	})

	if got := c.writing.CursorAttrs().Shape; got != CursorShapeBlock {
		t.Fatalf("shape = %v, want fallback to block", got)
	}
	if !diag.hasError("mode_info_set", "unknown cursor shape") {
		t.Fatalf("unknown shape not reported: %+v", diag.records)
	}
}

func TestWaitForFlushReplacesRedrawNotification(t *testing.T) {
	c, window, _ := newTestController()
	c.Redraw([]msg.Value{ev("grid_resize", []any{1, 4, 2}), flushEvent()})
	if window.redraws != 1 {
		t.Fatalf("setup flush did not notify")
	}

	done := make(chan struct{})
	go func() {
		c.WaitForFlush()
		close(done)
	}()
	for c.flushWait.Load() == nil {
		runtime.Gosched()
	}

	c.Redraw([]msg.Value{flushEvent()})
	<-done

	if window.redraws != 1 {
		t.Fatalf("flush with a pending waiter also fired the redraw callback")
	}
}
