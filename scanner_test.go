// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func chs(toks []Token) (r []Ch) {
	for _, v := range toks {
		r = append(r, v.Ch)
	}
	return r
}

func tokenize(t *testing.T, src string) []Token {
	toks, errs := Tokenize("", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("%q: %v", src, errs)
	}

	return toks
}

func TestScannerKeywords(t *testing.T) {
	toks := tokenize(t, "BEGIN Begin begin bEgIn beginning")
	if g, e := chs(toks), []Ch{BEGIN, BEGIN, BEGIN, BEGIN, IDENTIFIER, EOF}; !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}

	if g, e := toks[1].Src, "Begin"; g != e {
		t.Errorf("got %q, expected %q", g, e)
	}

	for k, v := range keywords {
		toks := tokenize(t, strings.ToUpper(k))
		if g, e := toks[0].Ch, v; g != e {
			t.Errorf("%s: got %v, expected %v", k, g, e)
		}
		if !toks[0].Ch.IsKeyword() || toks[0].Kind() != Keyword {
			t.Errorf("%s: not a keyword", k)
		}
	}
}

func TestScannerOperators(t *testing.T) {
	toks := tokenize(t, ":= : .. . <= <> < >= > ** * ^ @ = ( ) [ ] , ;")
	e := []Ch{ASSIGN, ':', DD, '.', LE, NE, '<', GE, '>', POW, '*', '^', '@', '=', '(', ')', '[', ']', ',', ';', EOF}
	if g := chs(toks); !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}

	// Greedy, no white space needed.
	toks = tokenize(t, "a:=b<=c<>d**e")
	e = []Ch{IDENTIFIER, ASSIGN, IDENTIFIER, LE, IDENTIFIER, NE, IDENTIFIER, POW, IDENTIFIER, EOF}
	if g := chs(toks); !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}
}

func TestScannerNumbers(t *testing.T) {
	toks := tokenize(t, "42 2.5 3e2 4E-1 1..2 7.")
	e := []Ch{INT_LITERAL, REAL_LITERAL, REAL_LITERAL, REAL_LITERAL, INT_LITERAL, DD, INT_LITERAL, INT_LITERAL, '.', EOF}
	if g := chs(toks); !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}

	for i, e := range []interface{}{int64(42), 2.5, 300.0, 0.4, int64(1), nil, int64(2)} {
		if g := toks[i].Val; g != e {
			t.Errorf("%d: %q: got %#v, expected %#v", i, toks[i].Src, g, e)
		}
	}
}

func TestScannerStrings(t *testing.T) {
	for i, test := range []struct {
		src string
		ch  Ch
		val string
	}{
		{`'Don''t'`, STR_LITERAL, "Don't"},
		{`''''`, CHAR_LITERAL, "'"},
		{`'a'`, CHAR_LITERAL, "a"},
		{`''`, STR_LITERAL, ""},
		{`'hello, world'`, STR_LITERAL, "hello, world"},
		{`'{not a comment}'`, STR_LITERAL, "{not a comment}"},
	} {
		toks := tokenize(t, test.src)
		if g, e := len(toks), 2; g != e {
			t.Errorf("%v: %q: got %v tokens, expected %v", i, test.src, g, e)
			continue
		}

		tok := toks[0]
		if g, e := tok.Ch, test.ch; g != e {
			t.Errorf("%v: %q: got %v, expected %v", i, test.src, g, e)
		}
		if g, e := tok.Val, test.val; g != e {
			t.Errorf("%v: %q: got %q, expected %q", i, test.src, g, e)
		}
		if g, e := tok.Src, test.src; g != e {
			t.Errorf("%v: got lexeme %q, expected %q", i, g, e)
		}
	}
}

func TestScannerComments(t *testing.T) {
	src := "{ one } (* two\n*) // three\nx // trailing"
	toks := tokenize(t, src)
	if g, e := chs(toks), []Ch{IDENTIFIER, EOF}; !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}

	if g, e := toks[0].Sep, "{ one } (* two\n*) // three\n"; g != e {
		t.Errorf("got %q, expected %q", g, e)
	}

	if g, e := toks[1].Sep, " // trailing"; g != e {
		t.Errorf("got %q, expected %q", g, e)
	}

	// Comments do not nest.
	toks = tokenize(t, "{ a { b } c")
	if g, e := chs(toks), []Ch{IDENTIFIER, EOF}; !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}
}

func TestScannerPositions(t *testing.T) {
	toks := tokenize(t, "program P;\n  begin\n\tx := 1\nend.")
	for _, v := range []struct {
		ix        int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 9},
		{2, 1, 10},
		{3, 2, 3},
		{4, 3, 2},
		{5, 3, 4},
		{6, 3, 7},
		{7, 4, 1},
		{8, 4, 4},
	} {
		pos := toks[v.ix].Position
		if pos.Line != v.line || pos.Column != v.col {
			t.Errorf("%v %q: got %v:%v, expected %v:%v", v.ix, toks[v.ix].Src, pos.Line, pos.Column, v.line, v.col)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	for i, test := range []struct {
		src  string
		errs []string
	}{
		{"x := 'abc\ny", []string{"(1,6) Error: unterminated string"}},
		{"x { abc", []string{"(1,3) Error: unterminated comment"}},
		{"x (* abc", []string{"(1,3) Error: unterminated comment"}},
		{"x ? y\nz", []string{"(1,3) Error: illegal character '?'"}},
		{"99999999999999999999", []string{"(1,1) Error: integer constant out of range: 99999999999999999999"}},
		{"'a\n'b", []string{"(1,1) Error: unterminated string", "(2,1) Error: unterminated string"}},
		{"# !", []string{"(1,1) Error: illegal character '#'"}},
	} {
		toks, errs := Tokenize("", []byte(test.src))
		var g []string
		for _, v := range errs {
			g = append(g, v.String())
		}
		if !reflect.DeepEqual(g, test.errs) {
			t.Errorf("%v: %q: got %q, expected %q", i, test.src, g, test.errs)
		}

		n := 0
		for _, v := range toks {
			if v.Ch == ILLEGAL {
				n++
				if v.Kind() != LexError {
					t.Errorf("%v: marker kind %v", i, v.Kind())
				}
			}
		}
		if n != len(errs) {
			t.Errorf("%v: %q: %v markers for %v diagnostics", i, test.src, n, len(errs))
		}

		for _, v := range FilterErrors(toks) {
			if v.Ch == ILLEGAL {
				t.Errorf("%v: marker survived filtering", i)
			}
		}
	}
}

func TestScannerRoundTrip(t *testing.T) {
	srcs := []string{
		"",
		"   ",
		"program P; begin end.\n",
		"x := 'abc\ny { unterminated",
		"a ? b\n(* c *) d // e",
	}
	for _, fn := range testdataPrograms(t) {
		b, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}

		srcs = append(srcs, string(b))
	}
	for i, src := range srcs {
		toks, _ := Tokenize("", []byte(src))
		var b strings.Builder
		for _, v := range toks {
			b.WriteString(v.Sep)
			b.WriteString(v.Src)
		}
		if g := b.String(); g != src {
			t.Errorf("%v: round trip failed\ngot\n%q\nexpected\n%q", i, g, src)
		}

		if toks[len(toks)-1].Ch != EOF {
			t.Errorf("%v: missing EOF", i)
		}
	}
}

func TestScannerDeterministic(t *testing.T) {
	fn := filepath.Join("testdata", "stress.pas")
	b, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}

	t1, e1 := Tokenize(fn, b)
	t2, e2 := Tokenize(fn, b)
	if !reflect.DeepEqual(t1, t2) || !reflect.DeepEqual(e1, e2) {
		t.Fatal("tokenizing twice gave different results")
	}
}

func TestScannerEOF(t *testing.T) {
	l := NewLexer("", []byte("x"))
	l.Scan()
	for i := 0; i < 3; i++ {
		if g, e := l.Scan().Ch, EOF; g != e {
			t.Fatalf("%v: got %v, expected %v", i, g, e)
		}
	}
}

func TestTokenKind(t *testing.T) {
	toks := tokenize(t, "begin x 1 1.5 'ab' 'a' := ; ( ..")
	e := []Kind{Keyword, Identifier, IntLiteral, RealLiteral, StringLiteral, CharLiteral, Operator, Punctuation, Punctuation, Punctuation, EOFKind}
	for i, v := range toks {
		if g := v.Kind(); g != e[i] {
			t.Errorf("%v %q: got %v, expected %v", i, v.Src, g, e[i])
		}
	}

	if (Token{}).Kind() != InvalidKind || (Token{}).IsValid() {
		t.Error("zero token")
	}
}
