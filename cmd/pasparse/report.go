// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/pascal/cmd/pasparse"

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"modernc.org/mathutil"
	"modernc.org/pascal"
)

var (
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	styleFatal   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#EF4444")).Bold(true)
	styleCaret   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// reporter writes diagnostics, optionally with a source excerpt.
type reporter struct {
	w     io.Writer
	cfg   config
	lines map[string][]string // file name: source lines
}

func newReporter(w io.Writer, cfg config) *reporter {
	return &reporter{w: w, cfg: cfg, lines: map[string][]string{}}
}

func (r *reporter) source(name string, src []byte) {
	if r.cfg.Context {
		r.lines[name] = strings.Split(string(src), "\n")
	}
}

func (r *reporter) style(s lipgloss.Style, text string) string {
	if !r.cfg.Color {
		return text
	}

	return s.Render(text)
}

func (r *reporter) severity(s pascal.Severity) string {
	switch s {
	case pascal.Warning:
		return r.style(styleWarning, s.String())
	case pascal.Error:
		return r.style(styleError, s.String())
	default:
		return r.style(styleFatal, s.String())
	}
}

func (r *reporter) report(d pascal.Diagnostic) {
	pos := d.Position
	fmt.Fprintf(r.w, "%s(%d,%d) %s: %s\n", pos.Filename, pos.Line, pos.Column, r.severity(d.Severity), d.Msg)
	if !r.cfg.Context {
		return
	}

	lines := r.lines[pos.Filename]
	if pos.Line < 1 || pos.Line > len(lines) {
		return
	}

	line, caret := excerpt(strings.TrimRight(lines[pos.Line-1], "\r"), pos.Column, r.cfg.ContextWidth)
	fmt.Fprintf(r.w, "\t%s\n\t%s\n", r.style(styleMuted, line), r.style(styleCaret, caret))
}

// excerpt returns at most width bytes of line around the 1-based column col
// and a caret line pointing at col. Tabs before the caret are kept so the
// caret aligns with the excerpt.
func excerpt(line string, col, width int) (text, caret string) {
	width = mathutil.Max(width, 1)
	off := mathutil.Clamp(col-1, 0, len(line))
	start := 0
	if len(line) > width {
		start = mathutil.Clamp(off-width/2, 0, len(line)-width)
	}
	end := mathutil.Min(len(line), start+width)
	text = line[start:end]
	var b strings.Builder
	for i := start; i < off; i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
			continue
		}

		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return text, b.String()
}

// recordString renders the record expression of a with statement.
func recordString(x pascal.Expr) string {
	switch x := x.(type) {
	case *pascal.VarRef:
		return x.Name.Name()
	case *pascal.Literal:
		return x.Token.Src
	case *pascal.FieldAccess:
		return recordString(x.Base) + "." + x.Field.Name()
	case *pascal.DerefExpr:
		return recordString(x.Base) + "^"
	case *pascal.IndexExpr:
		var a []string
		for _, v := range x.Indexes {
			a = append(a, recordString(v))
		}
		return recordString(x.Base) + "[" + strings.Join(a, ", ") + "]"
	case *pascal.CallExpr:
		var a []string
		for _, v := range x.Args {
			a = append(a, recordString(v))
		}
		return recordString(x.Callee) + "(" + strings.Join(a, ", ") + ")"
	case *pascal.UnaryExpr:
		return x.Op.Src + recordString(x.Operand)
	case *pascal.BinaryExpr:
		return recordString(x.Left) + " " + x.Op.Src + " " + recordString(x.Right)
	}

	return "?"
}

type stats struct {
	start time.Time

	bytes  int
	diags  int
	errors int
	fatals int
	files  int
	lines  int
	tokens int
}

func (s *stats) add(src []byte, toks []pascal.Token, diags pascal.Diagnostics) {
	s.files++
	s.bytes += len(src)
	s.lines += strings.Count(string(src), "\n")
	s.tokens += len(toks)
	s.diags += len(diags)
	s.errors += diags.Count(pascal.Error)
	s.fatals += diags.Count(pascal.Fatal)
}

func (s *stats) print(w io.Writer) {
	fmt.Fprintf(w, "%s files, %s, %s lines, %s tokens, %s diagnostics (%s errors, %s fatal) in %v\n",
		humanize.Comma(int64(s.files)),
		humanize.Bytes(uint64(s.bytes)),
		humanize.Comma(int64(s.lines)),
		humanize.Comma(int64(s.tokens)),
		humanize.Comma(int64(s.diags)),
		humanize.Comma(int64(s.errors)),
		humanize.Comma(int64(s.fatals)),
		time.Since(s.start).Round(time.Millisecond),
	)
}
