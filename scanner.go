// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"modernc.org/strutil"
	"modernc.org/token"
)

// Lexer converts source text to tokens. Keywords are recognized regardless
// of letter case.
//
// Every lexical error produces one Error diagnostic and exactly one token
// with Ch == ILLEGAL, so the markers can be removed 1:1 before parsing, see
// FilterErrors.
type Lexer struct {
	errs Diagnostics
	file *token.File
	pool *strutil.Pool
	src  string
	off  int // current index into src
}

// NewLexer returns a Lexer for src. The name is used in positions only.
func NewLexer(name string, src []byte) *Lexer {
	file := token.NewFile(name, len(src))
	file.SetLinesForContent(src)
	return &Lexer{
		file: file,
		pool: strutil.NewPool(),
		src:  string(src),
	}
}

// NewLexerReader returns a Lexer for the content of r.
func NewLexerReader(name string, r io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return NewLexer(name, b), nil
}

// Tokenize returns the tokens of src, terminated by an EOF token, and the
// lexical diagnostics.
func Tokenize(name string, src []byte) ([]Token, Diagnostics) {
	l := NewLexer(name, src)
	return l.Tokenize(), l.Errors()
}

// HasErrors reports whether any lexical error was found so far.
func (l *Lexer) HasErrors() bool { return len(l.errs) != 0 }

// Errors returns the lexical diagnostics found so far.
func (l *Lexer) Errors() Diagnostics { return l.errs }

// Tokenize scans the remaining input. The last token has Ch == EOF.
func (l *Lexer) Tokenize() (r []Token) {
	for {
		t := l.Scan()
		r = append(r, t)
		if t.Ch == EOF {
			return r
		}
	}
}

func (l *Lexer) c() byte {
	if l.off < len(l.src) {
		return l.src[l.off]
	}

	return 0
}

func (l *Lexer) peek(n int) byte {
	if l.off+n < len(l.src) {
		return l.src[l.off+n]
	}

	return 0
}

func (l *Lexer) eof() bool { return l.off >= len(l.src) }

func (l *Lexer) position(off int) token.Position {
	return l.file.Position(l.file.Pos(off))
}

func (l *Lexer) err(off int, msg string, args ...interface{}) {
	l.errs = append(l.errs, Diagnostic{
		Position: l.position(off),
		Msg:      fmt.Sprintf(msg, args...),
		Severity: Error,
	})
}

func (l *Lexer) tok(ch Ch, sep, start int) Token {
	return Token{
		Position: l.position(start),
		Sep:      l.src[sep:start],
		Src:      l.src[start:l.off],
		Ch:       ch,
	}
}

// skipLine advances to the next line boundary, the new line itself is left
// for the next token's separator.
func (l *Lexer) skipLine() {
	for !l.eof() && l.c() != '\n' {
		l.off++
	}
}

// Scan returns the next token. At end of input it returns an EOF token,
// repeatedly.
func (l *Lexer) Scan() (r Token) {
	sep := l.off
	for {
		switch c := l.c(); {
		case l.eof():
			return l.tok(EOF, sep, l.off)
		case isSep(c):
			l.off++
		case c == '{':
			if !l.comment(1, "}") {
				return l.unterminatedComment(sep)
			}
		case c == '(' && l.peek(1) == '*':
			if !l.comment(2, "*)") {
				return l.unterminatedComment(sep)
			}
		case c == '/' && l.peek(1) == '/':
			l.skipLine()
		default:
			return l.scan(sep)
		}
	}
}

// comment skips a comment which opening delimiter has length n. It reports
// false when the closing delimiter is missing, leaving the offset at the
// start of the comment.
func (l *Lexer) comment(n int, end string) bool {
	x := strings.Index(l.src[l.off+n:], end)
	if x < 0 {
		return false
	}

	l.off += n + x + len(end)
	return true
}

func (l *Lexer) unterminatedComment(sep int) Token {
	start := l.off
	l.err(start, "unterminated comment")
	l.off = len(l.src)
	return l.tok(ILLEGAL, sep, start)
}

func (l *Lexer) scan(sep int) Token {
	start := l.off
	c := l.c()
	switch {
	case isIdFirst(c):
		for isIdNext(l.c()) {
			l.off++
		}
		r := l.tok(IDENTIFIER, sep, start)
		if x, ok := keywords[strings.ToLower(r.Src)]; ok {
			r.Ch = x
			return r
		}

		r.Src = l.pool.Align(r.Src)
		return r
	case isDigit(c):
		return l.number(sep, start)
	case c == '\'':
		return l.str(sep, start)
	}

	l.off++
	ch := Ch(c)
	switch c {
	case ';', ',', '=', '(', ')', '+', '-', '/', '[', ']', '^', '@':
		// ok
	case '*':
		if l.c() == '*' {
			l.off++
			ch = POW
		}
	case ':':
		if l.c() == '=' {
			l.off++
			ch = ASSIGN
		}
	case '.':
		if l.c() == '.' {
			l.off++
			ch = DD
		}
	case '<':
		switch l.c() {
		case '=':
			l.off++
			ch = LE
		case '>':
			l.off++
			ch = NE
		}
	case '>':
		if l.c() == '=' {
			l.off++
			ch = GE
		}
	default:
		l.off = start
		r, _ := utf8.DecodeRuneInString(l.src[start:])
		l.err(start, "illegal character %q", r)
		l.skipLine()
		return l.tok(ILLEGAL, sep, start)
	}
	return l.tok(ch, sep, start)
}

// UnsignedInteger = DigitSequence .
// UnsignedReal = DigitSequence "." DigitSequence [ "e" ScaleFactor ] | DigitSequence "e" ScaleFactor .
func (l *Lexer) number(sep, start int) Token {
	for isDigit(l.c()) {
		l.off++
	}
	ch := INT_LITERAL
	if l.c() == '.' && isDigit(l.peek(1)) {
		for l.off++; isDigit(l.c()); l.off++ {
		}
		ch = REAL_LITERAL
	}
	if c := l.c(); c == 'e' || c == 'E' {
		n := 1
		if c := l.peek(n); c == '+' || c == '-' {
			n++
		}
		if isDigit(l.peek(n)) {
			for l.off += n; isDigit(l.c()); l.off++ {
			}
			ch = REAL_LITERAL
		}
	}
	r := l.tok(ch, sep, start)
	var err error
	switch ch {
	case INT_LITERAL:
		r.Val, err = decodeInt(r.Src)
	default:
		r.Val, err = decodeReal(r.Src)
	}
	if err != nil {
		l.err(start, "%v", err)
		r.Ch = ILLEGAL
		r.Val = nil
	}
	return r
}

// CharacterString = "'" StringElement { StringElement } "'" .
func (l *Lexer) str(sep, start int) Token {
	var b strings.Builder
	for l.off++; ; {
		switch c := l.c(); {
		case c == '\'':
			if l.peek(1) == '\'' {
				b.WriteByte('\'')
				l.off += 2
				break
			}

			l.off++
			r := l.tok(STR_LITERAL, sep, start)
			r.Val = b.String()
			if utf8.RuneCountInString(b.String()) == 1 {
				r.Ch = CHAR_LITERAL
			}
			return r
		case l.eof() || c == '\n' || c == '\r':
			l.err(start, "unterminated string")
			return l.tok(ILLEGAL, sep, start)
		default:
			b.WriteByte(c)
			l.off++
		}
	}
}

func isDigit(c byte) bool   { return c >= '0' && c <= '9' }
func isIdFirst(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' }
func isIdNext(c byte) bool  { return isIdFirst(c) || isDigit(c) }

func isSep(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}

	return false
}
