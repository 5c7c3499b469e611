// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"

	"modernc.org/mathutil"
	"modernc.org/token"
)

// Parse tokenizes src, removes the lexical error markers and parses the
// result. The returned diagnostics contain both lexical and syntax problems
// ordered by position.
func Parse(name string, src []byte) (*Program, Diagnostics) {
	toks, errs := Tokenize(name, src)
	prog, perrs := NewParser(FilterErrors(toks)).ParseProgram()
	errs = append(errs, perrs...)
	errs.Sort()
	return prog, errs
}

type chSet map[Ch]bool

func newChSet(chs ...Ch) chSet {
	r := chSet{}
	for _, v := range chs {
		r[v] = true
	}
	return r
}

func (s chSet) union(chs ...Ch) chSet {
	r := newChSet(chs...)
	for k := range s {
		r[k] = true
	}
	return r
}

var (
	declSync    = newChSet(CONST, TYPE, VAR, LABEL, PROCEDURE, FUNCTION, BEGIN)
	sectionSync = declSync.union(';')
	stmtSync    = newChSet(';', END, ELSE, UNTIL)
)

// Parser is a recursive descent parser producing a *Program from tokens.
// A Parser is used once and is not safe for concurrent use.
type Parser struct {
	errs Diagnostics
	toks []Token
	ix   int // current index into toks

	// recovering is set by a Fatal diagnostic and cleared by the next
	// recovery point. No diagnostics are recorded while it is set.
	recovering bool
}

// NewParser returns a Parser for toks. toks must not contain tokens with
// Ch == ILLEGAL, see FilterErrors. A missing EOF token is added.
func NewParser(toks []Token) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Ch != EOF {
		var eof Token
		if n != 0 {
			eof.Position = toks[n-1].Position
		}
		eof.Ch = EOF
		toks = append(toks[:n:n], eof)
	}
	return &Parser{toks: toks}
}

// HasErrors reports whether any diagnostic was recorded.
func (p *Parser) HasErrors() bool { return len(p.errs) != 0 }

// Errors returns the diagnostics recorded so far.
func (p *Parser) Errors() Diagnostics { return p.errs }

func (p *Parser) c() Token { return p.toks[p.ix] }

func (p *Parser) peek(n int) Token { return p.toks[mathutil.Min(p.ix+n, len(p.toks)-1)] }

// shift consumes and returns the current token. EOF is never consumed.
func (p *Parser) shift() (r Token) {
	r = p.c()
	if r.Ch != EOF {
		p.ix++
	}
	return r
}

func (p *Parser) diag(t Token, s Severity, msg string, args ...interface{}) {
	if p.recovering {
		return
	}

	p.errs = append(p.errs, Diagnostic{Position: t.Position, Msg: fmt.Sprintf(msg, args...), Severity: s})
}

func (p *Parser) err(t Token, msg string, args ...interface{}) {
	p.diag(t, Error, msg, args...)
}

func (p *Parser) fatal(t Token, msg string, args ...interface{}) {
	p.diag(t, Fatal, msg, args...)
	p.recovering = true
}

func (p *Parser) expected(ch Ch) {
	t := p.c()
	p.fatal(t, "Syntax error, %s expected but %s found", ch.str(), t.describe())
}

func (p *Parser) must(ch Ch) (Token, bool) {
	if p.c().Ch == ch {
		return p.shift(), true
	}

	p.expected(ch)
	return Token{}, false
}

// sync skips tokens until one in set is found outside of any nested
// begin/case/record ... end or bracketed construct. An unbalanced end or
// closing bracket is skipped.
func (p *Parser) sync(set chSet) {
	var stack []Ch
	top := func() Ch {
		if len(stack) == 0 {
			return 0
		}

		return stack[len(stack)-1]
	}
	for {
		t := p.c()
		if t.Ch == EOF || len(stack) == 0 && set[t.Ch] {
			return
		}

		switch t.Ch {
		case BEGIN, RECORD, '(', '[':
			stack = append(stack, t.Ch)
		case CASE:
			if top() != RECORD {
				stack = append(stack, t.Ch)
			}
		case END:
			for len(stack) != 0 {
				ch := top()
				stack = stack[:len(stack)-1]
				if ch == BEGIN || ch == CASE || ch == RECORD {
					break
				}
			}
		case ')':
			if top() == '(' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if top() == '[' {
				stack = stack[:len(stack)-1]
			}
		}
		p.shift()
	}
}

// recover resynchronizes on set and leaves recovery mode.
func (p *Parser) recover(set chSet) {
	p.sync(set)
	p.recovering = false
}

func (p *Parser) ident() *Ident {
	if t, ok := p.must(IDENTIFIER); ok {
		return &Ident{Token: t}
	}

	return nil
}

// IdentifierList = Identifier { "," Identifier } .
func (p *Parser) identList() (r []*Ident) {
	for {
		id := p.ident()
		if id == nil {
			return r
		}

		r = append(r, id)
		if p.c().Ch != ',' {
			return r
		}

		p.shift()
	}
}

// ParseProgram parses the token sequence. The result is never nil, parts
// that could not be parsed are represented by Bad* nodes.
//
//	Program = [ "program" Identifier [ "(" IdentifierList ")" ] ";" ] Block "." .
func (p *Parser) ParseProgram() (*Program, Diagnostics) {
	r := &Program{}
	if p.c().Ch == PROGRAM {
		r.Program = p.shift()
		if r.Name = p.ident(); r.Name != nil && p.c().Ch == '(' {
			p.shift()
			r.Params = p.identList()
			if !p.recovering {
				p.must(')')
			}
		}
		if !p.recovering {
			p.must(';')
		}
		if p.recovering {
			p.recover(declSync)
		}
	}
	r.Block = p.block()
	if dot, ok := p.must('.'); ok {
		r.Dot = dot
	}
	return r, p.errs
}

// Block = { LabelSection | ConstSection | TypeSection | VarSection | ProcDecl | FuncDecl } CompoundStmt .
func (p *Parser) block() *Block {
	r := &Block{}
	for {
		switch t := p.c(); t.Ch {
		case LABEL:
			r.Decls = append(r.Decls, p.labelSection())
		case CONST:
			r.Decls = append(r.Decls, p.constSection())
		case TYPE:
			r.Decls = append(r.Decls, p.typeSection())
		case VAR:
			r.Decls = append(r.Decls, p.varSection())
		case PROCEDURE:
			r.Decls = append(r.Decls, p.procDecl())
		case FUNCTION:
			r.Decls = append(r.Decls, p.funcDecl())
		case BEGIN:
			r.Body = p.compoundStmt()
			return r
		default:
			p.expected(BEGIN)
			p.sync(declSync)
			r.Decls = append(r.Decls, &BadDecl{From: t.Position, To: p.c().Position})
			if p.c().Ch == EOF {
				// Stay in recovery mode, nothing can follow.
				r.Body = &BadStmt{From: p.c().Position, To: p.c().Position}
				return r
			}

			p.recovering = false
		}
	}
}

// endOfDecl consumes the semicolon terminating a declaration or a routine
// heading, resynchronizing first if the declaration was abandoned.
func (p *Parser) endOfDecl() {
	if !p.recovering {
		if p.c().Ch == ';' {
			p.shift()
			return
		}

		p.expected(';')
	}
	p.sync(sectionSync)
	if p.c().Ch == ';' {
		p.shift()
	}
	p.recovering = false
}

// LabelSection = "label" Label { "," Label } ";" .
func (p *Parser) labelSection() *LabelSection {
	r := &LabelSection{Label: p.shift()}
	for {
		switch p.c().Ch {
		case INT_LITERAL, IDENTIFIER:
			r.Labels = append(r.Labels, p.shift())
		default:
			p.expected(IDENTIFIER)
		}
		if p.recovering || p.c().Ch != ',' {
			break
		}

		p.shift()
	}
	p.endOfDecl()
	return r
}

// ConstSection = "const" ConstDecl ";" { ConstDecl ";" } .
func (p *Parser) constSection() *ConstSection {
	r := &ConstSection{Const: p.shift()}
	for {
		if d := p.constDecl(); d != nil {
			r.List = append(r.List, d)
		}
		p.endOfDecl()
		if p.c().Ch != IDENTIFIER {
			return r
		}
	}
}

// ConstDecl = Identifier [ ":" Type ] "=" Expression .
func (p *Parser) constDecl() *ConstDecl {
	name := p.ident()
	if name == nil {
		return nil
	}

	r := &ConstDecl{Name: name}
	if p.c().Ch == ':' {
		p.shift()
		if r.Type = p.typ(); p.recovering {
			return nil
		}
	}
	if _, ok := p.must('='); !ok {
		return nil
	}

	r.Value = p.expr()
	return r
}

// TypeSection = "type" TypeDecl ";" { TypeDecl ";" } .
func (p *Parser) typeSection() *TypeSection {
	r := &TypeSection{Type: p.shift()}
	for {
		if d := p.typeDecl(); d != nil {
			r.List = append(r.List, d)
		}
		p.endOfDecl()
		if p.c().Ch != IDENTIFIER {
			return r
		}
	}
}

// TypeDecl = Identifier "=" Type .
func (p *Parser) typeDecl() *TypeDecl {
	name := p.ident()
	if name == nil {
		return nil
	}

	if _, ok := p.must('='); !ok {
		return nil
	}

	return &TypeDecl{Name: name, Type: p.typ()}
}

// VarSection = "var" VarDecl ";" { VarDecl ";" } .
func (p *Parser) varSection() *VarSection {
	r := &VarSection{Var: p.shift()}
	for {
		if d := p.varDecl(); d != nil {
			r.List = append(r.List, d)
		}
		p.endOfDecl()
		if p.c().Ch != IDENTIFIER {
			return r
		}
	}
}

// VarDecl = IdentifierList ":" Type .
func (p *Parser) varDecl() *VarDecl {
	names := p.identList()
	if p.recovering {
		return nil
	}

	if _, ok := p.must(':'); !ok {
		return nil
	}

	return &VarDecl{Names: names, Type: p.typ()}
}

// ProcDecl = "procedure" Identifier [ FormalParameterList ] ";" ( Block | "forward" ) ";" .
func (p *Parser) procDecl() Decl {
	r := &ProcDecl{Procedure: p.shift()}
	if r.Name = p.ident(); r.Name != nil && p.c().Ch == '(' {
		r.Params = p.formalParams()
	}
	p.endOfDecl()
	r.Block, r.Forward = p.routineBody()
	return r
}

// FuncDecl = "function" Identifier [ FormalParameterList ] ":" TypeIdentifier ";" ( Block | "forward" ) ";" .
func (p *Parser) funcDecl() Decl {
	r := &FuncDecl{Function: p.shift()}
	if r.Name = p.ident(); r.Name != nil && p.c().Ch == '(' {
		r.Params = p.formalParams()
	}
	if !p.recovering {
		if _, ok := p.must(':'); ok {
			r.Result = p.typeIdent()
		}
	}
	p.endOfDecl()
	r.Block, r.Forward = p.routineBody()
	return r
}

func (p *Parser) routineBody() (*Block, bool) {
	if t := p.c(); t.Ch == IDENTIFIER && (&Ident{Token: t}).Is("forward") {
		p.shift()
		p.endOfDecl()
		return nil, true
	}

	b := p.block()
	p.endOfDecl()
	return b, false
}

// FormalParameterList = "(" [ ParamSection { ";" ParamSection } ] ")" .
func (p *Parser) formalParams() (r []*ParamSection) {
	p.shift()
	if p.c().Ch == ')' {
		p.shift()
		return nil
	}

	for {
		if s := p.paramSection(); s != nil {
			r = append(r, s)
		}
		if p.recovering || p.c().Ch != ';' {
			break
		}

		p.shift()
	}
	if !p.recovering {
		p.must(')')
	}
	return r
}

// ParamSection = [ "var" | "const" | "out" ] IdentifierList ":" TypeIdentifier .
func (p *Parser) paramSection() *ParamSection {
	r := &ParamSection{}
	switch t := p.c(); {
	case t.Ch == VAR, t.Ch == CONST:
		r.Mode = p.shift()
	case t.Ch == IDENTIFIER && p.peek(1).Ch == IDENTIFIER && (&Ident{Token: t}).Is("out"):
		r.Mode = p.shift()
	}
	if r.Names = p.identList(); p.recovering {
		return nil
	}

	if _, ok := p.must(':'); !ok {
		return nil
	}

	r.Type = p.typeIdent()
	return r
}

func (p *Parser) badType(from Token) *BadType {
	return &BadType{From: from.Position, To: p.c().Position}
}

// typeIdent parses a type denoter restricted to a type identifier.
func (p *Parser) typeIdent() Type {
	if t := p.c(); t.Ch != IDENTIFIER {
		p.err(t, "Type identifier expected")
		return p.badType(t)
	}

	return &NamedType{Name: p.ident()}
}

// Type = TypeIdentifier | SubrangeType | EnumType | [ "packed" ] StructuredType | PointerType .
func (p *Parser) typ() Type {
	switch t := p.c(); t.Ch {
	case PACKED:
		p.shift()
		switch p.c().Ch {
		case ARRAY:
			return p.arrayType(t)
		case RECORD:
			return p.recordType(t)
		case SET:
			return p.setType(t)
		case FILE:
			return p.fileType(t)
		}

		p.expected(ARRAY)
		return p.badType(t)
	case ARRAY:
		return p.arrayType(Token{})
	case RECORD:
		return p.recordType(Token{})
	case SET:
		return p.setType(Token{})
	case FILE:
		return p.fileType(Token{})
	case '^':
		return p.pointerType()
	case '(':
		return p.enumType()
	case IDENTIFIER:
		switch p.peek(1).Ch {
		case DD, '+', '-', '*', '/', DIV, MOD, '(':
			return p.subrangeType()
		}

		return &NamedType{Name: p.ident()}
	case INT_LITERAL, '-', '+', STR_LITERAL, CHAR_LITERAL:
		return p.subrangeType()
	default:
		p.err(t, "Type identifier expected")
		return p.badType(t)
	}
}

// SubrangeType = Constant ".." Constant .
func (p *Parser) subrangeType() Type {
	from := p.c()
	lo := p.additive()
	if p.recovering {
		return p.badType(from)
	}

	if _, ok := p.must(DD); !ok {
		return p.badType(from)
	}

	return &SubrangeType{Low: lo, High: p.additive()}
}

// EnumType = "(" IdentifierList ")" .
func (p *Parser) enumType() Type {
	r := &EnumType{LParen: p.shift()}
	if r.Values = p.identList(); p.recovering {
		return p.badType(r.LParen)
	}

	if _, ok := p.must(')'); !ok {
		return p.badType(r.LParen)
	}

	return r
}

// SetType = "set" "of" Type .
func (p *Parser) setType(packed Token) Type {
	r := &SetType{Packed: packed, Set: p.shift()}
	if _, ok := p.must(OF); !ok {
		return p.badType(r.Set)
	}

	r.Elem = p.typ()
	return r
}

// ArrayType = "array" "[" Type { "," Type } "]" "of" Type .
func (p *Parser) arrayType(packed Token) Type {
	arr := p.shift()
	if _, ok := p.must('['); !ok {
		return p.badType(arr)
	}

	var index []Type
	for {
		if index = append(index, p.typ()); p.recovering {
			return p.badType(arr)
		}

		if p.c().Ch != ',' {
			break
		}

		p.shift()
	}
	if _, ok := p.must(']'); !ok {
		return p.badType(arr)
	}

	if _, ok := p.must(OF); !ok {
		return p.badType(arr)
	}

	elem := p.typ()
	for i := len(index) - 1; i >= 0; i-- {
		a := &ArrayType{Array: arr, Index: index[i], Elem: elem}
		if i == 0 {
			a.Packed = packed
		}
		elem = a
	}
	return elem
}

// RecordType = "record" FieldList "end" .
func (p *Parser) recordType(packed Token) Type {
	r := &RecordType{Packed: packed, Record: p.shift()}
	if r.Fields, r.Variant = p.fieldList(); p.recovering {
		return p.badType(r.Record)
	}

	end, ok := p.must(END)
	if !ok {
		return p.badType(r.Record)
	}

	r.End = end
	return r
}

// FieldList = [ FieldDecl { ";" FieldDecl } ] [ ";" ] [ VariantPart [ ";" ] ] .
func (p *Parser) fieldList() (fields []*FieldDecl, variant *VariantPart) {
	for p.c().Ch == IDENTIFIER {
		names := p.identList()
		if p.recovering {
			return fields, nil
		}

		if _, ok := p.must(':'); !ok {
			return fields, nil
		}

		fields = append(fields, &FieldDecl{Names: names, Type: p.typ()})
		if p.recovering || p.c().Ch != ';' {
			break
		}

		p.shift()
	}
	if !p.recovering && p.c().Ch == CASE {
		if variant = p.variantPart(); !p.recovering && p.c().Ch == ';' {
			p.shift()
		}
	}
	return fields, variant
}

// VariantPart = "case" [ Identifier ":" ] TypeIdentifier "of" Variant { ";" Variant } [ ";" ] .
func (p *Parser) variantPart() *VariantPart {
	r := &VariantPart{Case: p.shift()}
	if p.c().Ch == IDENTIFIER && p.peek(1).Ch == ':' {
		r.Tag = p.ident()
		p.shift()
	}
	r.TagType = p.typeIdent()
	if _, ok := p.must(OF); !ok {
		return r
	}

	for {
		switch p.c().Ch {
		case END, ')':
			return r
		}

		v := p.variant()
		if p.recovering {
			return r
		}

		r.Arms = append(r.Arms, v)
		if p.c().Ch != ';' {
			return r
		}

		p.shift()
	}
}

// Variant = CaseLabel { "," CaseLabel } ":" "(" FieldList ")" .
func (p *Parser) variant() *Variant {
	r := &Variant{Labels: p.caseLabels()}
	if p.recovering {
		return r
	}

	if _, ok := p.must(':'); !ok {
		return r
	}

	if _, ok := p.must('('); !ok {
		return r
	}

	if r.Fields, r.Variant = p.fieldList(); p.recovering {
		return r
	}

	p.must(')')
	return r
}

// PointerType = "^" TypeIdentifier .
func (p *Parser) pointerType() Type {
	r := &PointerType{Caret: p.shift()}
	if t := p.c(); t.Ch != IDENTIFIER {
		p.err(t, "Type identifier expected")
		return p.badType(r.Caret)
	}

	r.Target = p.ident()
	return r
}

// FileType = "file" [ "of" ( TypeIdentifier | FileType | PointerType ) ] .
func (p *Parser) fileType(packed Token) Type {
	r := &FileType{Packed: packed, File: p.shift()}
	if p.c().Ch != OF {
		return r
	}

	p.shift()
	switch t := p.c(); t.Ch {
	case IDENTIFIER:
		r.Elem = &NamedType{Name: p.ident()}
	case FILE:
		r.Elem = p.fileType(Token{})
	case '^':
		r.Elem = p.pointerType()
	default:
		p.err(t, "Type identifier expected")
		r.Elem = &BadType{From: t.Position, To: t.Position}
	}
	return r
}

func (p *Parser) badStmt(from token.Position) *BadStmt {
	return &BadStmt{From: from, To: p.c().Position}
}

// StatementList = Statement { ";" Statement } .
//
// The list ends before term, which is left for the caller.
func (p *Parser) stmtList(term Ch) (r []Stmt) {
	for {
		r = append(r, p.stmt())
		if !p.recovering {
			switch p.c().Ch {
			case ';':
				p.shift()
				continue
			case term, EOF:
				return r
			}

			p.expected(';')
		}
		p.recover(stmtSync)
		switch p.c().Ch {
		case term, END, EOF:
			return r
		}

		// ';' or a misplaced else/until
		p.shift()
	}
}

// Statement = [ Label ":" ] ( SimpleStmt | StructuredStmt | GotoStmt ) .
func (p *Parser) stmt() Stmt {
	switch t := p.c(); t.Ch {
	case INT_LITERAL, IDENTIFIER:
		if p.peek(1).Ch == ':' {
			r := &LabeledStmt{Label: p.shift()}
			p.shift()
			r.Stmt = p.stmt()
			return r
		}

		if t.Ch == IDENTIFIER {
			return p.simpleStmt()
		}
	case BEGIN:
		return p.compoundStmt()
	case IF:
		return p.ifStmt()
	case WHILE:
		return p.whileStmt()
	case REPEAT:
		return p.repeatStmt()
	case FOR:
		return p.forStmt()
	case CASE:
		return p.caseStmt()
	case WITH:
		return p.withStmt()
	case GOTO:
		return p.gotoStmt()
	case ';', END, ELSE, UNTIL, EOF:
		return &EmptyStmt{Pos: t.Position}
	}

	t := p.c()
	p.err(t, "Illegal expression")
	p.sync(stmtSync)
	return p.badStmt(t.Position)
}

// SimpleStmt = Designator ":=" Expression | Identifier [ "(" [ Argument { "," Argument } ] ")" ] .
func (p *Parser) simpleStmt() Stmt {
	name := &Ident{Token: p.shift()}
	x := p.selectors(&VarRef{Name: name})
	if p.recovering {
		return p.badStmt(name.Position())
	}

	if p.c().Ch == ASSIGN {
		r := &AssignStmt{Target: x, Assign: p.shift()}
		r.Value = p.expr()
		return r
	}

	switch y := x.(type) {
	case *VarRef:
		return &ProcCallStmt{Name: name}
	case *CallExpr:
		if _, ok := y.Callee.(*VarRef); ok {
			return &ProcCallStmt{Name: name, LParen: y.LParen, Args: y.Args}
		}
	}

	p.expected(ASSIGN)
	return p.badStmt(name.Position())
}

// CompoundStmt = "begin" StatementList "end" .
func (p *Parser) compoundStmt() Stmt {
	r := &CompoundStmt{Begin: p.shift()}
	r.List = p.stmtList(END)
	end, ok := p.must(END)
	if !ok {
		return p.badStmt(r.Begin.Position)
	}

	r.End = end
	return r
}

// IfStmt = "if" Expression "then" Statement [ "else" Statement ] .
func (p *Parser) ifStmt() Stmt {
	r := &IfStmt{If: p.shift()}
	if r.Cond = p.expr(); p.recovering {
		return p.badStmt(r.If.Position)
	}

	if _, ok := p.must(THEN); !ok {
		return p.badStmt(r.If.Position)
	}

	if r.Then = p.stmt(); p.recovering {
		return r
	}

	if p.c().Ch == ELSE {
		p.shift()
		r.Else = p.stmt()
	}
	return r
}

// WhileStmt = "while" Expression "do" Statement .
func (p *Parser) whileStmt() Stmt {
	r := &WhileStmt{While: p.shift()}
	if r.Cond = p.expr(); p.recovering {
		return p.badStmt(r.While.Position)
	}

	if _, ok := p.must(DO); !ok {
		return p.badStmt(r.While.Position)
	}

	r.Body = p.stmt()
	return r
}

// RepeatStmt = "repeat" StatementList "until" Expression .
func (p *Parser) repeatStmt() Stmt {
	r := &RepeatStmt{Repeat: p.shift()}
	r.List = p.stmtList(UNTIL)
	if _, ok := p.must(UNTIL); !ok {
		return p.badStmt(r.Repeat.Position)
	}

	r.Cond = p.expr()
	return r
}

// ForStmt = "for" Identifier ":=" Expression ( "to" | "downto" ) Expression "do" Statement .
func (p *Parser) forStmt() Stmt {
	r := &ForStmt{For: p.shift()}
	if r.Var = p.ident(); r.Var == nil {
		return p.badStmt(r.For.Position)
	}

	if _, ok := p.must(ASSIGN); !ok {
		return p.badStmt(r.For.Position)
	}

	if r.Start = p.expr(); p.recovering {
		return p.badStmt(r.For.Position)
	}

	switch p.c().Ch {
	case TO:
		r.Dir = To
	case DOWNTO:
		r.Dir = DownTo
	default:
		p.expected(TO)
		return p.badStmt(r.For.Position)
	}

	p.shift()
	if r.Stop = p.expr(); p.recovering {
		return p.badStmt(r.For.Position)
	}

	if _, ok := p.must(DO); !ok {
		return p.badStmt(r.For.Position)
	}

	r.Body = p.stmt()
	return r
}

// CaseStmt = "case" Expression "of" CaseArm { ";" CaseArm } [ ";" ] [ "else" StatementList ] "end" .
func (p *Parser) caseStmt() Stmt {
	r := &CaseStmt{Case: p.shift()}
	if r.Selector = p.expr(); !p.recovering {
		p.must(OF)
	}
	for !p.recovering {
		switch t := p.c(); t.Ch {
		case END:
			r.End = p.shift()
			return r
		case ELSE:
			r.Else = p.shift()
			r.ElseList = p.stmtList(END)
			if end, ok := p.must(END); ok {
				r.End = end
				return r
			}

			continue
		case ';':
			p.err(t, "Illegal expression")
			p.shift()
			continue
		}

		arm := p.caseArm()
		if p.recovering {
			break
		}

		r.Arms = append(r.Arms, arm)
		switch p.c().Ch {
		case ';':
			p.shift()
		case END, ELSE:
			// ok
		default:
			p.expected(';')
		}
	}

	// Abandon the whole statement, up to and including its end.
	p.skipCase()
	p.recovering = false
	return p.badStmt(r.Case.Position)
}

// skipCase skips to the end closing the current case statement and
// consumes it.
func (p *Parser) skipCase() {
	depth := 0
	for {
		switch p.c().Ch {
		case EOF:
			return
		case BEGIN, CASE, RECORD:
			depth++
		case END:
			if depth == 0 {
				p.shift()
				return
			}

			depth--
		}
		p.shift()
	}
}

// CaseArm = CaseLabel { "," CaseLabel } ":" Statement .
func (p *Parser) caseArm() *CaseArm {
	r := &CaseArm{Labels: p.caseLabels()}
	if p.recovering {
		return r
	}

	if _, ok := p.must(':'); !ok {
		return r
	}

	r.Body = p.stmt()
	return r
}

func (p *Parser) caseLabels() (r []Expr) {
	for {
		r = append(r, p.caseLabel())
		if p.recovering || p.c().Ch != ',' {
			return r
		}

		p.shift()
	}
}

// CaseLabel = Expression [ ".." Expression ] .
func (p *Parser) caseLabel() Expr {
	if t := p.c(); !startsExpr(t.Ch) {
		p.err(t, "Constant expression expected")
		return &BadExpr{From: t.Position, To: t.Position}
	}

	return p.element()
}

// WithStmt = "with" Designator { "," Designator } "do" Statement .
func (p *Parser) withStmt() Stmt {
	r := &WithStmt{With: p.shift()}
	for {
		if r.Records = append(r.Records, p.designator()); p.recovering {
			return p.badStmt(r.With.Position)
		}

		if p.c().Ch != ',' {
			break
		}

		p.shift()
	}
	if _, ok := p.must(DO); !ok {
		return p.badStmt(r.With.Position)
	}

	r.Body = p.stmt()
	return r
}

// GotoStmt = "goto" Label .
func (p *Parser) gotoStmt() Stmt {
	r := &GotoStmt{Goto: p.shift()}
	switch p.c().Ch {
	case INT_LITERAL, IDENTIFIER:
		r.Label = p.shift()
		return r
	}

	p.expected(IDENTIFIER)
	return p.badStmt(r.Goto.Position)
}

// Designator = Identifier { "(" [ Argument { "," Argument } ] ")" | "[" Expression { "," Expression } "]" | "." Identifier | "^" } .
func (p *Parser) designator() Expr {
	t := p.c()
	id := p.ident()
	if id == nil {
		return &BadExpr{From: t.Position, To: t.Position}
	}

	return p.selectors(&VarRef{Name: id})
}

func (p *Parser) selectors(x Expr) Expr {
	for !p.recovering {
		switch p.c().Ch {
		case '(':
			lparen := p.shift()
			x = &CallExpr{Callee: x, LParen: lparen, Args: p.args()}
		case '[':
			p.shift()
			n := &IndexExpr{Base: x}
			for {
				if n.Indexes = append(n.Indexes, p.expr()); p.recovering {
					return n
				}

				if p.c().Ch != ',' {
					break
				}

				p.shift()
			}
			p.must(']')
			x = n
		case '.':
			p.shift()
			f := p.ident()
			if f == nil {
				return x
			}

			x = &FieldAccess{Base: x, Field: f}
		case '^':
			x = &DerefExpr{Base: x, Caret: p.shift()}
		default:
			return x
		}
	}
	return x
}

// args parses the arguments following an already consumed left
// parenthesis, up to and including the right one.
func (p *Parser) args() (r []Expr) {
	if p.c().Ch == ')' {
		p.shift()
		return nil
	}

	for {
		if r = append(r, p.arg()); p.recovering {
			return r
		}

		if p.c().Ch != ',' {
			break
		}

		p.shift()
	}
	p.must(')')
	return r
}

// Argument = Expression [ ":" Expression [ ":" Expression ] ] .
func (p *Parser) arg() Expr {
	x := p.expr()
	if p.recovering || p.c().Ch != ':' {
		return x
	}

	p.shift()
	r := &FormattedArg{X: x, Width: p.expr()}
	if !p.recovering && p.c().Ch == ':' {
		p.shift()
		r.Prec = p.expr()
	}
	return r
}

func startsExpr(ch Ch) bool {
	switch ch {
	case INT_LITERAL, REAL_LITERAL, STR_LITERAL, CHAR_LITERAL, NIL, IDENTIFIER,
		'(', '[', NOT, '-', '+', '@':
		return true
	}

	return false
}

// Expression = AndExpr { "or" AndExpr } .
func (p *Parser) expr() Expr {
	x := p.andExpr()
	for !p.recovering && p.c().Ch == OR {
		op := p.shift()
		x = &BinaryExpr{Left: x, Op: op, Right: p.andExpr()}
	}
	return x
}

// AndExpr = Relation { "and" Relation } .
func (p *Parser) andExpr() Expr {
	x := p.relation()
	for !p.recovering && p.c().Ch == AND {
		op := p.shift()
		x = &BinaryExpr{Left: x, Op: op, Right: p.relation()}
	}
	return x
}

// Relation = Additive [ ( "=" | "<>" | "<" | "<=" | ">" | ">=" | "in" ) Additive ] .
func (p *Parser) relation() Expr {
	x := p.additive()
	if p.recovering {
		return x
	}

	switch p.c().Ch {
	case '=', NE, '<', LE, '>', GE, IN:
		op := p.shift()
		return &BinaryExpr{Left: x, Op: op, Right: p.additive()}
	}

	return x
}

// Additive = Term { ( "+" | "-" ) Term } .
func (p *Parser) additive() Expr {
	x := p.term()
	for !p.recovering {
		switch p.c().Ch {
		case '+', '-':
			op := p.shift()
			x = &BinaryExpr{Left: x, Op: op, Right: p.term()}
		default:
			return x
		}
	}
	return x
}

// Term = Factor { ( "*" | "/" | "div" | "mod" ) Factor } .
func (p *Parser) term() Expr {
	x := p.factor()
	for !p.recovering {
		switch p.c().Ch {
		case '*', '/', DIV, MOD:
			op := p.shift()
			x = &BinaryExpr{Left: x, Op: op, Right: p.factor()}
		default:
			return x
		}
	}
	return x
}

// Factor = ( "not" | "-" | "+" | "@" ) Factor | Power .
func (p *Parser) factor() Expr {
	switch p.c().Ch {
	case NOT, '-', '+', '@':
		op := p.shift()
		return &UnaryExpr{Op: op, Operand: p.factor()}
	}

	return p.power()
}

// Power = Primary [ "**" Factor ] .
func (p *Parser) power() Expr {
	x := p.primary()
	if p.recovering || p.c().Ch != POW {
		return x
	}

	op := p.shift()
	return &BinaryExpr{Left: x, Op: op, Right: p.factor()}
}

// Primary = UnsignedConstant | "nil" | Designator | "(" Expression ")" | SetConstructor .
func (p *Parser) primary() Expr {
	switch t := p.c(); t.Ch {
	case INT_LITERAL, REAL_LITERAL, STR_LITERAL, CHAR_LITERAL, NIL:
		p.shift()
		return &Literal{Token: t, Value: t.Val}
	case IDENTIFIER:
		return p.selectors(&VarRef{Name: p.ident()})
	case '(':
		p.shift()
		x := p.expr()
		if p.recovering {
			return x
		}

		if _, ok := p.must(')'); !ok {
			return &BadExpr{From: t.Position, To: p.c().Position}
		}

		return x
	case '[':
		return p.setConstructor()
	default:
		p.err(t, "Illegal expression")
		return &BadExpr{From: t.Position, To: t.Position}
	}
}

// SetConstructor = "[" [ Element { "," Element } ] "]" .
func (p *Parser) setConstructor() Expr {
	r := &SetConstructor{LBrack: p.shift()}
	if p.c().Ch == ']' {
		p.shift()
		return r
	}

	for {
		if r.Elems = append(r.Elems, p.element()); p.recovering {
			return &BadExpr{From: r.LBrack.Position, To: p.c().Position}
		}

		if p.c().Ch != ',' {
			break
		}

		p.shift()
	}
	if _, ok := p.must(']'); !ok {
		return &BadExpr{From: r.LBrack.Position, To: p.c().Position}
	}

	return r
}

// Element = Expression [ ".." Expression ] .
func (p *Parser) element() Expr {
	x := p.expr()
	if p.recovering || p.c().Ch != DD {
		return x
	}

	p.shift()
	return &RangeExpr{Low: x, High: p.expr()}
}
