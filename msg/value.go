// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: msg/value.go
// Summary: Typed accessors over generic decoded msgpack-style values.
// Usage: Used by the nvim dispatcher to validate and unwrap event arguments.

// Package msg provides narrow/widen helpers for reading typed fields out of
// generic decoded values: booleans, integers, strings, ordered sequences and
// string-keyed maps. The transport decoder is external; this package only
// interprets what it produced.
package msg

import (
	"fmt"
	"math"
)

// Value is one decoded wire value. It is any of bool, int64/uint64 (and the
// smaller integer kinds a decoder may emit), string, []Value as []any, or
// map[string]Value as map[string]any.
type Value = any

// Bool reports v as a boolean.
func Bool(v Value) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Int reports v as a signed 64-bit integer. Unsigned and smaller integer
// kinds widen; float64 is accepted when integral because JSON-decoded
// replays carry numbers that way.
func Int(v Value) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n <= math.MaxInt64 {
			return int64(n), true
		}
		return 0, false
	}
	return 0, false
}

// Uint32 narrows v to 32 bits, truncating like the wire format allows.
func Uint32(v Value) (uint32, bool) {
	n, ok := Int(v)
	if !ok {
		return 0, false
	}
	return uint32(n), true
}

// Uint16 narrows v to 16 bits, truncating like the wire format allows.
func Uint16(v Value) (uint16, bool) {
	n, ok := Int(v)
	if !ok {
		return 0, false
	}
	return uint16(n), true
}

// String reports v as a string.
func String(v Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Array reports v as an ordered sequence.
func Array(v Value) ([]Value, bool) {
	a, ok := v.([]any)
	return a, ok
}

// Map reports v as a string-keyed map.
func Map(v Value) (map[string]Value, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// TypeName names v's decoded kind for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case int64, int, int32, int16, int8, uint64, uint, uint32, uint16, uint8:
		return "integer"
	case float64, float32:
		return "float"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "map"
	}
	return fmt.Sprintf("%T", v)
}

// TupleTypes renders the kinds of a tuple's elements, for error messages
// about malformed argument tuples.
func TupleTypes(tuple []Value) string {
	out := "["
	for i, v := range tuple {
		if i > 0 {
			out += ", "
		}
		out += TypeName(v)
	}
	return out + "]"
}
