// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"sort"
	"strings"

	"modernc.org/token"
)

// Severity classifies a Diagnostic.
type Severity int

// Values of type Severity.
const (
	Warning Severity = iota
	Error
	// Fatal means the production being parsed was abandoned. Parsing
	// still continues with the enclosing production.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic describes one problem found in the source.
type Diagnostic struct {
	Position token.Position
	Msg      string
	Severity Severity
}

// String renders d as
//
//	file(line,col) Severity: message
//
// The file part is omitted when the position has no file name.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s(%d,%d) %s: %s", d.Position.Filename, d.Position.Line, d.Position.Column, d.Severity, d.Msg)
}

// Error implements error.
func (d Diagnostic) Error() string { return d.String() }

// Diagnostics is a list of diagnostics in the order they were found.
type Diagnostics []Diagnostic

// HasErrors reports whether d contains anything more severe than a
// warning.
func (d Diagnostics) HasErrors() bool {
	for _, v := range d {
		if v.Severity > Warning {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with severity s.
func (d Diagnostics) Count(s Severity) (n int) {
	for _, v := range d {
		if v.Severity == s {
			n++
		}
	}
	return n
}

func (d Diagnostics) String() string {
	var b strings.Builder
	for i, v := range d {
		if i != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// Sort orders d by source offset. Diagnostics at the same offset keep their
// relative order.
func (d Diagnostics) Sort() {
	sort.SliceStable(d, func(i, j int) bool { return d[i].Position.Offset < d[j].Position.Offset })
}

// Err returns d as an error or nil if d is empty.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}

	return errList(d)
}

type errList Diagnostics

func (e errList) Error() string { return Diagnostics(e).String() }

func (e errList) Unwrap() []error {
	r := make([]error, len(e))
	for i, v := range e {
		r[i] = v
	}
	return r
}
