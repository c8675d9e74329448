// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csvio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrImportFormat = errors.New("import format error")
	ErrRead         = errors.New("read error")
)

// ImportFormatError describes why a whole import was rejected.
type ImportFormatError struct {
	Line    int
	Missing []string
	Msg     string
}

func (e *ImportFormatError) Error() string {
	var b strings.Builder
	b.WriteString("import format error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " on line %d", e.Line)
	}
	b.WriteString(": ")
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing required header(s): %s", strings.Join(e.Missing, ", "))
	} else {
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *ImportFormatError) Unwrap() error { return ErrImportFormat }

// ReadError wraps a failure of the underlying reader.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error: %v", e.Err)
}

// Unwrap returns both the sentinel and the cause so callers can match either.
func (e *ReadError) Unwrap() []error { return []error{ErrRead, e.Err} }
