// Copyright © 2026 neovim-mac contributors
// SPDX-License-Identifier: MIT
//
// File: nvim/diag.go
// Summary: Injected diagnostics sink for redraw protocol errors.
// Usage: Created by the embedding binary; tests substitute a capturing sink.

package nvim

import (
	"fmt"
	"io"
	"log"
)

// Severity classifies a diagnostic record.
type Severity int

const (
	// SeverityError marks malformed input or out-of-bounds references that
	// caused a unit of work to be dropped.
	SeverityError Severity = iota
	// SeverityInfo marks unknown but harmless protocol surface.
	SeverityInfo
)

func (s Severity) String() string {
	if s == SeverityInfo {
		return "info"
	}
	return "error"
}

// Diag receives structured diagnostics from the redraw state machine.
// Handlers never fail; every recoverable problem is reported here and the
// offending event or argument tuple is dropped.
type Diag interface {
	Report(sev Severity, event string, format string, args ...any)
}

type logDiag struct {
	l *log.Logger
}

// NewLogDiag returns a Diag that writes to the given logger. A nil logger
// discards everything, mirroring the quiet default of the server logging.
func NewLogDiag(l *log.Logger) Diag {
	if l == nil {
		l = log.New(io.Discard, "", log.LstdFlags)
	}
	return &logDiag{l: l}
}

func (d *logDiag) Report(sev Severity, event string, format string, args ...any) {
	d.l.Printf("redraw %s: event=%s %s", sev, event, fmt.Sprintf(format, args...))
}
