// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/dispatch.go
// Summary: Redraw event dispatch table and argument schema validation.
// Notes: One malformed tuple never aborts its siblings; the unit of work
//        dropped on error is a single tuple or a single event.

package nvim

import "github.com/notbaab/neovim-mac/msg"

// argKind declares one parameter of a redraw handler.
type argKind int

const (
	argInt argKind = iota
	argBool
	argString
	argArray
	argAny
)

func checkArg(kind argKind, v msg.Value) bool {
	switch kind {
	case argInt:
		_, ok := msg.Int(v)
		return ok
	case argBool:
		_, ok := msg.Bool(v)
		return ok
	case argString:
		_, ok := msg.String(v)
		return ok
	case argArray:
		_, ok := msg.Array(v)
		return ok
	}
	return true
}

func argToInt(v msg.Value) int {
	n, _ := msg.Int(v)
	return int(n)
}

func argToUint32(v msg.Value) uint32 {
	n, _ := msg.Uint32(v)
	return n
}

// handlerSpec pairs a handler's declared parameter kinds with an apply
// function invoked once per validated argument tuple.
type handlerSpec struct {
	params []argKind
	apply  func(c *UIController, args []msg.Value)
}

// redrawHandlers maps event names to their handlers. option_set is handled
// separately because its effects are compared against the prior option
// snapshot, and ignoredEvents lists known-harmless names.
var redrawHandlers = map[string]handlerSpec{
	"grid_resize": {
		params: []argKind{argInt, argInt, argInt},
		apply: func(c *UIController, args []msg.Value) {
			c.gridResize(argToInt(args[0]), argToInt(args[1]), argToInt(args[2]))
		},
	},
	"grid_line": {
		params: []argKind{argInt, argInt, argInt, argArray},
		apply: func(c *UIController, args []msg.Value) {
			updates, _ := msg.Array(args[3])
			c.gridLine(argToInt(args[0]), argToInt(args[1]), argToInt(args[2]), updates)
		},
	},
	"grid_clear": {
		params: []argKind{argInt},
		apply: func(c *UIController, args []msg.Value) {
			c.gridClear(argToInt(args[0]))
		},
	},
	"grid_cursor_goto": {
		params: []argKind{argInt, argInt, argInt},
		apply: func(c *UIController, args []msg.Value) {
			c.gridCursorGoto(argToInt(args[0]), argToInt(args[1]), argToInt(args[2]))
		},
	},
	"grid_scroll": {
		params: []argKind{argInt, argInt, argInt, argInt, argInt, argInt},
		apply: func(c *UIController, args []msg.Value) {
			c.gridScroll(argToInt(args[0]), argToInt(args[1]), argToInt(args[2]),
				argToInt(args[3]), argToInt(args[4]), argToInt(args[5]))
		},
	},
	"flush": {
		params: nil,
		apply: func(c *UIController, args []msg.Value) {
			c.flush()
		},
	},
	"hl_attr_define": {
		params: []argKind{argInt, argAny},
		apply: func(c *UIController, args []msg.Value) {
			definition, ok := msg.Map(args[1])
			if !ok {
				c.diag.Report(SeverityError, "hl_attr_define",
					"attribute map type error, got %s", msg.TypeName(args[1]))
				return
			}
			c.hlAttrDefine(argToInt(args[0]), definition)
		},
	},
	"default_colors_set": {
		params: []argKind{argInt, argInt, argInt},
		apply: func(c *UIController, args []msg.Value) {
			c.defaultColorsSet(argToUint32(args[0]), argToUint32(args[1]),
				argToUint32(args[2]))
		},
	},
	"mode_info_set": {
		params: []argKind{argBool, argArray},
		apply: func(c *UIController, args []msg.Value) {
			enabled, _ := msg.Bool(args[0])
			maps, _ := msg.Array(args[1])
			c.modeInfoSet(enabled, maps)
		},
	},
	"mode_change": {
		params: []argKind{argString, argInt},
		apply: func(c *UIController, args []msg.Value) {
			name, _ := msg.String(args[0])
			c.modeChange(name, argToInt(args[1]))
		},
	},
	"set_title": {
		params: []argKind{argString},
		apply: func(c *UIController, args []msg.Value) {
			title, _ := msg.String(args[0])
			c.setTitle(title)
		},
	},
}

// ignoredEvents are protocol surface we deliberately do not render.
var ignoredEvents = map[string]struct{}{
	"mouse_on":     {},
	"mouse_off":    {},
	"set_icon":     {},
	"hl_group_set": {},
}

// applyTuples validates and applies each argument tuple against the
// handler's declared parameters. A tuple may carry extra trailing values;
// newer protocol versions append arguments, so only the declared prefix
// is checked.
func (c *UIController) applyTuples(name string, spec handlerSpec, tuples []msg.Value) {
	for _, tuple := range tuples {
		args, ok := msg.Array(tuple)
		if !ok || len(args) < len(spec.params) {
			c.diag.Report(SeverityError, name,
				"argument type error, got %s", msg.TypeName(tuple))
			continue
		}

		valid := true
		for i, kind := range spec.params {
			if !checkArg(kind, args[i]) {
				valid = false
				break
			}
		}
		if !valid {
			c.diag.Report(SeverityError, name,
				"argument type error, got %s", msg.TupleTypes(args))
			continue
		}

		spec.apply(c, args)
	}
}

// redrawEvent dispatches one event of the form [name, argTuple...].
func (c *UIController) redrawEvent(event msg.Value, batch *optionBatch) {
	parts, ok := msg.Array(event)
	if !ok || len(parts) == 0 {
		c.diag.Report(SeverityError, "redraw",
			"event type error, got %s", msg.TypeName(event))
		return
	}

	name, ok := msg.String(parts[0])
	if !ok {
		c.diag.Report(SeverityError, "redraw",
			"event type error, got %s", msg.TypeName(parts[0]))
		return
	}
	tuples := parts[1:]

	if spec, ok := redrawHandlers[name]; ok {
		c.applyTuples(name, spec, tuples)
		return
	}

	// Option changes are buffered against the snapshot taken when the
	// first option_set of the batch arrives. Neovim tends to resend
	// unchanged options, and the delegate only wants real changes.
	if name == "option_set" {
		c.optMu.Lock()
		if !batch.active {
			batch.active = true
			batch.before = c.opts
		}
		c.optMu.Unlock()
		c.applyOptionTuples(tuples)
		return
	}

	if _, ok := ignoredEvents[name]; ok {
		return
	}

	c.diag.Report(SeverityInfo, "redraw", "unhandled event %q", name)
}

var optionSetParams = []argKind{argString, argAny}

func (c *UIController) applyOptionTuples(tuples []msg.Value) {
	for _, tuple := range tuples {
		args, ok := msg.Array(tuple)
		if !ok || len(args) < len(optionSetParams) ||
			!checkArg(optionSetParams[0], args[0]) {
			c.diag.Report(SeverityError, "option_set",
				"argument type error, got %s", msg.TypeName(tuple))
			continue
		}

		name, _ := msg.String(args[0])

		c.optMu.Lock()
		fontSet := c.setOption(name, args[1])
		c.optMu.Unlock()

		// The font callback fires outside the lock so the window side can
		// immediately read the new font list back.
		if fontSet {
			c.window.FontSet()
		}
	}
}

// optionBatch tracks whether a batch touched option state and what the
// options looked like beforehand.
type optionBatch struct {
	active bool
	before Options
}

// Redraw processes one ordered batch of redraw events. Malformed events are
// reported and skipped; their well-formed siblings still execute. The
// window's OptionsSet callback fires at most once per batch, and only if
// the option snapshot actually changed.
func (c *UIController) Redraw(events []msg.Value) {
	var batch optionBatch

	for _, event := range events {
		c.redrawEvent(event, &batch)
	}

	if batch.active {
		c.optMu.Lock()
		changed := c.opts != batch.before
		c.optMu.Unlock()

		if changed {
			c.window.OptionsSet()
		}
	}
}
