// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"errors"
	"fmt"
	"strconv"
)

func decodeInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("integer constant out of range: %s", s)
		}

		return 0, fmt.Errorf("invalid integer constant: %s", s)
	}

	return n, nil
}

func decodeReal(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("real constant out of range: %s", s)
		}

		return 0, fmt.Errorf("invalid real constant: %s", s)
	}

	return n, nil
}

// Int returns the value of an integer literal.
func (n *Literal) Int() (int64, bool) {
	v, ok := n.Value.(int64)
	return v, ok
}

// Real returns the value of a real literal.
func (n *Literal) Real() (float64, bool) {
	v, ok := n.Value.(float64)
	return v, ok
}

// Str returns the value of a string or char literal with doubled quotes
// already collapsed.
func (n *Literal) Str() (string, bool) {
	v, ok := n.Value.(string)
	return v, ok
}

// IsNil reports whether n is the nil pointer constant.
func (n *Literal) IsNil() bool { return n.Token.Ch == NIL }
