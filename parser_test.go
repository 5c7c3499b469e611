// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type fixture struct {
	Name    string   `yaml:"name"`
	Src     string   `yaml:"src"`
	Diags   []string `yaml:"diags"`
	Invalid bool     `yaml:"invalid"`
}

func loadFixtures(t *testing.T) []fixture {
	b, err := os.ReadFile(filepath.Join("testdata", "fixtures.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var r []fixture
	if err := yaml.Unmarshal(b, &r); err != nil {
		t.Fatal(err)
	}

	if len(r) == 0 {
		t.Fatal("no fixtures")
	}

	return r
}

func TestFixtures(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range loadFixtures(t) {
		if seen[f.Name] {
			t.Fatalf("duplicate fixture %s", f.Name)
		}

		seen[f.Name] = true
		t.Run(f.Name, func(t *testing.T) {
			prog, errs := Parse("", []byte(f.Src))
			if prog == nil || prog.Block == nil {
				t.Fatal("nil tree")
			}

			var g []string
			for _, v := range errs {
				g = append(g, v.String())
			}
			switch {
			case f.Invalid:
				if len(g) == 0 {
					t.Fatalf("expected diagnostics\n%s", f.Src)
				}
			case !reflect.DeepEqual(g, f.Diags):
				t.Fatalf("\n%s\ngot\n\t%s\nexpected\n\t%s", f.Src, strings.Join(g, "\n\t"), strings.Join(f.Diags, "\n\t"))
			}

			// The tree must be walkable whatever the input.
			Inspect(prog, func(Node) bool { return true })
		})
	}
}

func parseClean(t *testing.T, src string) *Program {
	t.Helper()
	prog, errs := Parse("", []byte(src))
	if len(errs) != 0 {
		t.Fatalf("%s\n%v", src, errs)
	}

	return prog
}

func parseStmts(t *testing.T, body string) []Stmt {
	t.Helper()
	prog := parseClean(t, "program T;\nbegin\n"+body+"\nend.\n")
	return prog.Block.Body.(*CompoundStmt).List
}

func parseExpr(t *testing.T, s string) Expr {
	t.Helper()
	return parseStmts(t, "x := "+s)[0].(*AssignStmt).Value
}

func parseType(t *testing.T, s string) Type {
	t.Helper()
	prog := parseClean(t, "program T;\ntype A = "+s+";\nbegin\nend.\n")
	return prog.Block.Decls[0].(*TypeSection).List[0].Type
}

// exprString renders n fully parenthesized.
func exprString(n Expr) string {
	switch x := n.(type) {
	case *Literal:
		return x.Token.Src
	case *VarRef:
		return x.Name.Name()
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", exprString(x.Left), x.Op.Src, exprString(x.Right))
	case *UnaryExpr:
		if x.Op.Ch == NOT {
			return fmt.Sprintf("(not %s)", exprString(x.Operand))
		}

		return fmt.Sprintf("(%s%s)", x.Op.Src, exprString(x.Operand))
	case *FieldAccess:
		return exprString(x.Base) + "." + x.Field.Name()
	case *IndexExpr:
		return exprString(x.Base) + "[" + exprList(x.Indexes) + "]"
	case *DerefExpr:
		return exprString(x.Base) + "^"
	case *CallExpr:
		return exprString(x.Callee) + "(" + exprList(x.Args) + ")"
	case *SetConstructor:
		return "[" + exprList(x.Elems) + "]"
	case *RangeExpr:
		return exprString(x.Low) + ".." + exprString(x.High)
	case *FormattedArg:
		s := exprString(x.X) + ":" + exprString(x.Width)
		if x.Prec != nil {
			s += ":" + exprString(x.Prec)
		}
		return s
	case *BadExpr:
		return "BAD"
	}

	panic(fmt.Sprintf("%T", n))
}

func exprList(list []Expr) string {
	var a []string
	for _, v := range list {
		a = append(a, exprString(v))
	}
	return strings.Join(a, ", ")
}

func TestPrecedence(t *testing.T) {
	for i, test := range []struct {
		src, exp string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a div b mod c", "((a div b) mod c)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"-a * b", "((-a) * b)"},
		{"- - a", "(-(-a))"},
		{"not a and b", "((not a) and b)"},
		{"a or b and c", "(a or (b and c))"},
		{"a = b and c < d", "((a = b) and (c < d))"},
		{"a + b = c - d", "((a + b) = (c - d))"},
		{"x in [1, 3..5]", "(x in [1, 3..5])"},
		{"[]", "[]"},
		{"@p^.f[1]", "(@p^.f[1])"},
		{"f(x, y)[2]", "f(x, y)[2]"},
		{"a[i, j].b^", "a[i, j].b^"},
		{"nil", "nil"},
		{"'s' + 'tr'", "('s' + 'tr')"},
		{"1.5e3 / 2", "(1.5e3 / 2)"},
	} {
		if g, e := exprString(parseExpr(t, test.src)), test.exp; g != e {
			t.Errorf("%v: %q: got %s, expected %s", i, test.src, g, e)
		}
	}
}

func TestRelationNonAssociative(t *testing.T) {
	_, errs := Parse("", []byte("program T;\nbegin\nx := a < b < c\nend.\n"))
	if g, e := errs.String(), `(3,12) Fatal: Syntax error, ";" expected but "<" found`; g != e {
		t.Fatalf("got %s, expected %s", g, e)
	}
}

func TestLiteralValues(t *testing.T) {
	x := parseExpr(t, "f(42, 2.5, 'it''s', 'c', nil)").(*CallExpr)
	if n, ok := x.Args[0].(*Literal).Int(); !ok || n != 42 {
		t.Errorf("int: %v %v", n, ok)
	}
	if n, ok := x.Args[1].(*Literal).Real(); !ok || n != 2.5 {
		t.Errorf("real: %v %v", n, ok)
	}
	if s, ok := x.Args[2].(*Literal).Str(); !ok || s != "it's" {
		t.Errorf("string: %q %v", s, ok)
	}
	if g, e := x.Args[3].(*Literal).Kind(), CharLiteral; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}
	if !x.Args[4].(*Literal).IsNil() {
		t.Error("nil")
	}
	if _, ok := x.Args[0].(*Literal).Str(); ok {
		t.Error("int literal has a string value")
	}
}

func TestDanglingElse(t *testing.T) {
	outer := parseStmts(t, "if a then if b then x := 1 else x := 2")[0].(*IfStmt)
	if outer.Else != nil {
		t.Fatal("else bound to the outer if")
	}

	inner := outer.Then.(*IfStmt)
	if _, ok := inner.Else.(*AssignStmt); !ok {
		t.Fatalf("inner else: %T", inner.Else)
	}
}

func TestArrayType(t *testing.T) {
	a := parseType(t, "packed array[1..2, 'a'..'z'] of integer").(*ArrayType)
	if !a.IsPacked() {
		t.Error("outer array not packed")
	}

	if _, ok := a.Index.(*SubrangeType); !ok {
		t.Errorf("index: %T", a.Index)
	}

	b, ok := a.Elem.(*ArrayType)
	if !ok {
		t.Fatalf("elem: %T", a.Elem)
	}

	if b.IsPacked() {
		t.Error("inner array packed")
	}

	if g, e := exprString(b.Index.(*SubrangeType).Low), "'a'"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}

	if n, ok := b.Elem.(*NamedType); !ok || !n.Name.Is("INTEGER") {
		t.Errorf("element type: %T", b.Elem)
	}
}

func TestPackedDoesNotPropagate(t *testing.T) {
	r := parseType(t, "packed record r: record a: integer end end").(*RecordType)
	if !r.IsPacked() {
		t.Error("outer record not packed")
	}

	if r.Fields[0].Type.(*RecordType).IsPacked() {
		t.Error("inline record inherited packed")
	}

	if parseType(t, "set of 1..9").(*SetType).IsPacked() {
		t.Error("set packed")
	}

	if g, e := parseType(t, "packed file of char").(*FileType).Position().Column, 10; g != e {
		t.Errorf("got column %v, expected %v", g, e)
	}
}

func TestVariantRecord(t *testing.T) {
	r := parseType(t, "record x: integer; case tag: boolean of true: (i: integer); false: (r: real; s: char) end").(*RecordType)
	if g, e := len(r.Fields), 1; g != e {
		t.Fatalf("got %v fields, expected %v", g, e)
	}

	v := r.Variant
	if v == nil || v.Tag == nil || !v.Tag.Is("tag") {
		t.Fatal("missing tag")
	}

	if g, e := len(v.Arms), 2; g != e {
		t.Fatalf("got %v arms, expected %v", g, e)
	}

	if g, e := len(v.Arms[1].Fields), 2; g != e {
		t.Errorf("got %v fields, expected %v", g, e)
	}

	if g, e := exprString(v.Arms[0].Labels[0]), "true"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}

	r = parseType(t, "record case integer of 1: (a: char); 2: () end").(*RecordType)
	if r.Variant.Tag != nil {
		t.Error("unexpected tag")
	}

	if g, e := r.Variant.TagType.(*NamedType).Name.Name(), "integer"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}

	if len(r.Variant.Arms[1].Fields) != 0 {
		t.Error("empty arm has fields")
	}
}

func TestForwardPointer(t *testing.T) {
	prog := parseClean(t, "program T;\ntype P = ^Node;\nNode = record next: P end;\nbegin\nend.\n")
	list := prog.Block.Decls[0].(*TypeSection).List
	if g, e := len(list), 2; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	if g, e := list[0].Type.(*PointerType).Target.Name(), "Node"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}
}

func TestLabels(t *testing.T) {
	prog := parseClean(t, "program T;\nlabel 10, done;\nbegin\n10: done: x := 1;\ngoto done\nend.\n")
	sec := prog.Block.Decls[0].(*LabelSection)
	if g, e := len(sec.Labels), 2; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	list := prog.Block.Body.(*CompoundStmt).List
	l := list[0].(*LabeledStmt)
	if g, e := l.Label.Src, "10"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}

	l2 := l.Stmt.(*LabeledStmt)
	if _, ok := l2.Stmt.(*AssignStmt); !ok {
		t.Errorf("got %T", l2.Stmt)
	}

	if g, e := list[1].(*GotoStmt).Label.Src, "done"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}
}

func TestCaseStmt(t *testing.T) {
	c := parseStmts(t, "case x of 1, 2: y := 1; 3..5: ; else y := 2; y := 3 end")[0].(*CaseStmt)
	if g, e := len(c.Arms), 2; g != e {
		t.Fatalf("got %v arms, expected %v", g, e)
	}

	if g, e := len(c.Arms[0].Labels), 2; g != e {
		t.Errorf("got %v labels, expected %v", g, e)
	}

	if _, ok := c.Arms[1].Labels[0].(*RangeExpr); !ok {
		t.Errorf("got %T", c.Arms[1].Labels[0])
	}

	if _, ok := c.Arms[1].Body.(*EmptyStmt); !ok {
		t.Errorf("got %T", c.Arms[1].Body)
	}

	if !c.Else.IsValid() || len(c.ElseList) != 2 {
		t.Errorf("else part: %v %v", c.Else.IsValid(), len(c.ElseList))
	}

	c = parseStmts(t, "case x of 1: y := 1; end")[0].(*CaseStmt)
	if c.Else.IsValid() || len(c.Arms) != 1 {
		t.Error("unexpected else part")
	}
}

func TestLoops(t *testing.T) {
	list := parseStmts(t, "for i := 10 downto 1 do x := i;\nrepeat x := x - 1; y := 1 until x = 0;\nwhile x < 3 do begin x := x + 1 end")
	f := list[0].(*ForStmt)
	if f.Dir != DownTo || f.Dir.String() != "downto" || !f.Var.Is("i") {
		t.Errorf("for: %v %v", f.Dir, f.Var.Name())
	}

	if g, e := len(list[1].(*RepeatStmt).List), 2; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}

	w := list[2].(*WhileStmt)
	if _, ok := w.Body.(*CompoundStmt); !ok {
		t.Errorf("got %T", w.Body)
	}
}

func TestProcCalls(t *testing.T) {
	list := parseStmts(t, "foo;\nfoo();\nwriteln(x:8:2, y:4, 'a')")
	a := list[0].(*ProcCallStmt)
	if a.LParen.IsValid() || a.Args != nil {
		t.Error("foo")
	}

	b := list[1].(*ProcCallStmt)
	if !b.LParen.IsValid() || len(b.Args) != 0 {
		t.Error("foo()")
	}

	c := list[2].(*ProcCallStmt)
	if g, e := exprList(c.Args), "x:8:2, y:4, 'a'"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}
}

func TestRoutines(t *testing.T) {
	prog := parseClean(t, `program T(input, output);
procedure P(var a, b: integer; const c: real; out d: char); forward;
function F: integer; forward;
procedure P(var a, b: integer; const c: real; out d: char);
begin
end;
function F(): integer;
	function G(x: integer): integer;
	begin
		G := x
	end;
begin
	F := G(1)
end;
begin
end.
`)
	if g, e := len(prog.Params), 2; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	d := prog.Block.Decls
	if g, e := len(d), 4; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	p := d[0].(*ProcDecl)
	if !p.Forward || p.Block != nil || len(p.Params) != 3 {
		t.Errorf("forward procedure: %v %v %v", p.Forward, p.Block, len(p.Params))
	}

	for i, e := range []string{"var", "const", "out"} {
		if g := strings.ToLower(p.Params[i].Mode.Src); g != e {
			t.Errorf("%v: got %s, expected %s", i, g, e)
		}
	}

	if !d[1].(*FuncDecl).Forward {
		t.Error("forward function")
	}

	f := d[3].(*FuncDecl)
	if f.Forward || f.Block == nil || len(f.Block.Decls) != 1 {
		t.Fatal("function body")
	}

	if _, ok := f.Block.Decls[0].(*FuncDecl); !ok {
		t.Errorf("got %T", f.Block.Decls[0])
	}
}

func TestOptionalHeading(t *testing.T) {
	prog := parseClean(t, "begin end.")
	if prog.Name != nil || prog.Program.IsValid() {
		t.Error("unexpected heading")
	}

	if !prog.Dot.IsValid() {
		t.Error("missing dot")
	}
}

func TestMissingNodes(t *testing.T) {
	prog, errs := Parse("", []byte("program T;\nvar a: ;\nbegin\nif a x := 1;\ny := 2\nend.\n"))
	if g, e := errs.String(), "(2,8) Error: Type identifier expected\n(4,6) Fatal: Syntax error, \"THEN\" expected but \"identifier X\" found"; g != e {
		t.Fatalf("got\n%s\nexpected\n%s", g, e)
	}

	if g, e := errs.Count(Fatal), 1; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}

	v := prog.Block.Decls[0].(*VarSection).List[0]
	if !IsMissing(v.Type) {
		t.Errorf("got %T", v.Type)
	}

	list := prog.Block.Body.(*CompoundStmt).List
	if g, e := len(list), 2; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	if !IsMissing(list[0]) || IsMissing(list[1]) {
		t.Errorf("got %T, %T", list[0], list[1])
	}

	if IsMissing(prog) {
		t.Error("program reported missing")
	}

	if errs.Err() == nil || Diagnostics(nil).Err() != nil {
		t.Error("Err")
	}
}

func TestDeclarationRecovery(t *testing.T) {
	prog, errs := Parse("", []byte("program T;\nconst a := 1;\nvar b: integer;\nbegin\nend.\n"))
	if g, e := errs.String(), `(2,9) Fatal: Syntax error, "=" expected but ":=" found`; g != e {
		t.Fatalf("got %s, expected %s", g, e)
	}

	d := prog.Block.Decls
	if g, e := len(d), 2; g != e {
		t.Fatalf("got %v, expected %v", g, e)
	}

	if g, e := len(d[1].(*VarSection).List), 1; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}
}

func TestParseMergesLexErrors(t *testing.T) {
	_, errs := Parse("x.pas", []byte("program T;\nbegin\nx := 'abc;\ny := ?\nend.\n"))
	if len(errs) == 0 || !errs.HasErrors() {
		t.Fatal("no diagnostics")
	}

	if g, e := errs[0].String(), "x.pas(3,6) Error: unterminated string"; g != e {
		t.Errorf("got %s, expected %s", g, e)
	}

	for i := 1; i < len(errs); i++ {
		if errs[i].Position.Offset < errs[i-1].Position.Offset {
			t.Fatalf("diagnostics not ordered\n%v", errs)
		}
	}
}

func TestNewParserAddsEOF(t *testing.T) {
	toks := tokenize(t, "begin end.")
	prog, errs := NewParser(toks[:len(toks)-1]).ParseProgram()
	if len(errs) != 0 || prog.Block.Body == nil {
		t.Fatal(errs)
	}

	_, errs = NewParser(nil).ParseProgram()
	if len(errs) == 0 {
		t.Fatal("empty input accepted")
	}
}

func TestWalkOrder(t *testing.T) {
	prog := parseClean(t, "program T;\nbegin\nx := 1 + 2\nend.\n")
	var g []string
	Inspect(prog, func(n Node) bool {
		if n != nil {
			g = append(g, strings.TrimPrefix(fmt.Sprintf("%T", n), "*pascal."))
		}
		return true
	})
	e := []string{"Program", "Ident", "Block", "CompoundStmt", "AssignStmt", "VarRef", "Ident", "BinaryExpr", "Literal", "Literal"}
	if !reflect.DeepEqual(g, e) {
		t.Fatalf("got %v, expected %v", g, e)
	}

	n := 0
	Inspect(prog, func(x Node) bool {
		if x != nil {
			n++
		}
		_, ok := x.(*AssignStmt)
		return !ok
	})
	if g, e := n, 5; g != e {
		t.Errorf("got %v, expected %v", g, e)
	}
}

func TestWalkTestdata(t *testing.T) {
	for _, fn := range testdataPrograms(t) {
		b, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}

		prog, _ := Parse(fn, b)
		enter, leave := 0, 0
		Inspect(prog, func(n Node) bool {
			if n == nil {
				leave++
				return false
			}

			if pos := n.Position(); !pos.IsValid() {
				t.Errorf("%s: %T has no position", fn, n)
			}
			enter++
			return true
		})
		if enter != leave {
			t.Errorf("%s: %v nodes entered, %v left", fn, enter, leave)
		}
	}
}

func TestPrettyString(t *testing.T) {
	s := PrettyString(parseClean(t, "program T;\nbegin\nx := 1\nend.\n"))
	for _, v := range []string{"AssignStmt", `"x"`, `":="`} {
		if !strings.Contains(s, v) {
			t.Errorf("%q not found in\n%s", v, s)
		}
	}
}
