// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/ui.go
// Summary: UI controller owning the grid pair, highlight table, mode table
//          and option state, with the double-buffer publish on flush.
// Notes: The event-processing goroutine is the sole writer of everything
//        except the option state, which is mutex-guarded.

package nvim

import (
	"sync"
	"sync/atomic"

	"github.com/notbaab/neovim-mac/msg"
)

// WindowController is the rendering/window collaborator notified by the
// controller. Callbacks arrive on the event-processing goroutine and must
// not call back into mutating controller methods.
type WindowController interface {
	// Redraw reports that a new published frame is available.
	Redraw()
	// TitleSet reports a title change.
	TitleSet()
	// FontSet reports a guifont change.
	FontSet()
	// OptionsSet reports that the UI extension options actually changed.
	OptionsSet()
}

// UIController turns redraw event batches into grid state. Construct one
// per session; its tables live for the controller's lifetime.
type UIController struct {
	window WindowController
	diag   Diag

	hl *HighlightTable

	grids    [2]Grid
	writing  *Grid
	complete atomic.Pointer[Grid]

	flushWait atomic.Pointer[chan struct{}]

	modeTable   []ModeInfo
	currentMode int

	optMu   sync.Mutex
	title   string
	guifont string
	opts    Options
}

// NewUIController constructs a controller publishing to window and
// reporting protocol problems to diag. A nil diag discards diagnostics.
func NewUIController(window WindowController, diag Diag) *UIController {
	if diag == nil {
		diag = NewLogDiag(nil)
	}
	c := &UIController{
		window: window,
		diag:   diag,
		hl:     NewHighlightTable(diag),
	}
	c.writing = &c.grids[0]
	c.complete.Store(&c.grids[1])
	return c
}

// grid returns the writing grid for the given grid id. Multigrid is not
// supported; any id other than 1 is a programming-contract violation and
// aborts rather than corrupting state invisibly.
func (c *UIController) grid(id int) *Grid {
	if id != 1 {
		panic("nvim: ext_multigrid is not supported, got grid id != 1")
	}
	return c.writing
}

// Complete returns the last published grid snapshot. The referent may be
// recycled as early as the next flush; consume it before yielding control
// back to the event loop and never retain it across frames.
func (c *UIController) Complete() *Grid {
	return c.complete.Load()
}

// WaitForFlush blocks until the next flush publishes a frame. The wait is
// one-shot with no timeout; it replaces the Redraw notification for that
// flush. A second concurrent waiter is not supported.
func (c *UIController) WaitForFlush() {
	ch := make(chan struct{})
	c.flushWait.Store(&ch)
	<-ch
}

// flush publishes the writing grid: bump its tick, exchange the complete
// pointer, and re-seed the new writing buffer with the published content so
// differential updates keep working. Exactly one of the pending flush wait
// or the redraw notification fires.
func (c *UIController) flush() {
	completed := c.writing
	completed.drawTick++

	c.writing = c.complete.Swap(completed)
	c.writing.copyFrom(completed)

	if wait := c.flushWait.Swap(nil); wait != nil {
		close(*wait)
	} else {
		c.window.Redraw()
	}
}

// Title returns the current window title.
func (c *UIController) Title() string {
	c.optMu.Lock()
	defer c.optMu.Unlock()
	return c.title
}

// FontString returns the raw guifont option value.
func (c *UIController) FontString() string {
	c.optMu.Lock()
	defer c.optMu.Unlock()
	return c.guifont
}

// Fonts parses the guifont option into a font list, using defaultSize for
// entries without an explicit size.
func (c *UIController) Fonts(defaultSize float64) []Font {
	c.optMu.Lock()
	defer c.optMu.Unlock()
	return ParseFontList(c.guifont, defaultSize)
}

// Options returns a snapshot of the UI extension options.
func (c *UIController) Options() Options {
	c.optMu.Lock()
	defer c.optMu.Unlock()
	return c.opts
}

func (c *UIController) gridResize(id, width, height int) {
	if width < 0 || height < 0 {
		c.diag.Report(SeverityError, "grid_resize",
			"invalid size %dx%d", width, height)
		return
	}
	c.grid(id).resize(width, height)
}

func (c *UIController) gridLine(id, row, col int, updates []msg.Value) {
	c.grid(id).applyLine(row, col, updates, c.hl, c.diag)
}

func (c *UIController) gridClear(id int) {
	c.grid(id).clear(c.hl.Default().Background)
}

func (c *UIController) gridCursorGoto(id, row, col int) {
	grid := c.grid(id)
	if row < 0 || row >= grid.height || col < 0 || col >= grid.width {
		c.diag.Report(SeverityError, "grid_cursor_goto",
			"cursor out of bounds, grid=%dx%d row=%d col=%d",
			grid.width, grid.height, row, col)
		return
	}
	grid.setCursor(row, col)
}

func (c *UIController) gridScroll(id, top, bottom, left, right, rows int) {
	if bottom < top || right < left || top < 0 || left < 0 {
		c.diag.Report(SeverityError, "grid_scroll",
			"invalid args, top=%d bottom=%d left=%d right=%d",
			top, bottom, left, right)
		return
	}

	grid := c.grid(id)
	if bottom > grid.height || right > grid.width {
		c.diag.Report(SeverityError, "grid_scroll",
			"index out of bounds, grid=%dx%d bottom=%d right=%d",
			grid.width, grid.height, bottom, right)
		return
	}

	grid.scroll(top, bottom, left, right, rows)
}

func (c *UIController) hlAttrDefine(id int, definition map[string]msg.Value) {
	c.hl.Define(id, definition)
}

// defaultColorsSet rewrites the default group, then re-resolves every
// default-tagged field in the table and in the writing grid. The published
// complete buffer and cursor colors are intentionally left untouched.
func (c *UIController) defaultColorsSet(fg, bg, sp uint32) {
	c.hl.SetDefaultColors(fg, bg, sp)

	def := c.hl.Default()
	for i := range c.writing.cells {
		adjustDefaults(def, &c.writing.cells[i].Attrs)
	}
}

// modeInfoSet rebuilds the mode table wholesale. The enabled flag is
// advisory and does not gate the rebuild.
func (c *UIController) modeInfoSet(enabled bool, propertyMaps []msg.Value) {
	c.modeTable = c.modeTable[:0]
	c.currentMode = 0

	for _, value := range propertyMaps {
		properties, ok := msg.Map(value)
		if !ok {
			c.diag.Report(SeverityError, "mode_info_set",
				"cursor property map type error, got %s", msg.TypeName(value))
			continue
		}
		c.modeTable = append(c.modeTable, parseModeInfo(c.hl, properties, c.diag))
	}
}

func (c *UIController) modeChange(name string, index int) {
	if index < 0 || index >= len(c.modeTable) {
		c.diag.Report(SeverityError, "mode_change",
			"mode index out of bounds, table=%d index=%d",
			len(c.modeTable), index)
		return
	}

	c.currentMode = index
	c.writing.cursorAttrs = c.modeTable[index].CursorAttrs
}

func (c *UIController) setTitle(title string) {
	c.optMu.Lock()
	c.title = title
	c.optMu.Unlock()

	c.window.TitleSet()
}

// setOption applies one option_set tuple and reports whether the guifont
// option was set. Recognized names are the font string and the fixed set of
// boolean extension flags; wrong-typed values are reported and ignored.
// Callers hold optMu.
func (c *UIController) setOption(name string, value msg.Value) (fontSet bool) {
	if name == "guifont" {
		font, ok := msg.String(value)
		if !ok {
			c.diag.Report(SeverityInfo, "option_set",
				"option type error, option=guifont got %s", msg.TypeName(value))
			return false
		}
		c.guifont = font
		return true
	}

	var flag *bool
	switch name {
	case "ext_cmdline":
		flag = &c.opts.ExtCmdline
	case "ext_hlstate":
		flag = &c.opts.ExtHlstate
	case "ext_linegrid":
		flag = &c.opts.ExtLinegrid
	case "ext_messages":
		flag = &c.opts.ExtMessages
	case "ext_multigrid":
		flag = &c.opts.ExtMultigrid
	case "ext_popupmenu":
		flag = &c.opts.ExtPopupmenu
	case "ext_tabline":
		flag = &c.opts.ExtTabline
	case "ext_termcolors":
		flag = &c.opts.ExtTermcolors
	default:
		c.diag.Report(SeverityInfo, "option_set",
			"ignoring option %q", name)
		return false
	}

	b, ok := msg.Bool(value)
	if !ok {
		c.diag.Report(SeverityInfo, "option_set",
			"option type error, option=%s got %s", name, msg.TypeName(value))
		return false
	}
	*flag = b
	return false
}
