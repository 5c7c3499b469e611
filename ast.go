// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"reflect"
	"strings"

	"modernc.org/strutil"
	"modernc.org/token"
)

var (
	_ = []Node{
		(*ArrayType)(nil),
		(*AssignStmt)(nil),
		(*BadDecl)(nil),
		(*BadExpr)(nil),
		(*BadStmt)(nil),
		(*BadType)(nil),
		(*BinaryExpr)(nil),
		(*Block)(nil),
		(*CallExpr)(nil),
		(*CaseArm)(nil),
		(*CaseStmt)(nil),
		(*CompoundStmt)(nil),
		(*ConstDecl)(nil),
		(*ConstSection)(nil),
		(*DerefExpr)(nil),
		(*EmptyStmt)(nil),
		(*EnumType)(nil),
		(*FieldAccess)(nil),
		(*FieldDecl)(nil),
		(*FileType)(nil),
		(*ForStmt)(nil),
		(*FormattedArg)(nil),
		(*FuncDecl)(nil),
		(*GotoStmt)(nil),
		(*Ident)(nil),
		(*IfStmt)(nil),
		(*IndexExpr)(nil),
		(*LabelSection)(nil),
		(*LabeledStmt)(nil),
		(*Literal)(nil),
		(*NamedType)(nil),
		(*ParamSection)(nil),
		(*PointerType)(nil),
		(*ProcCallStmt)(nil),
		(*ProcDecl)(nil),
		(*Program)(nil),
		(*RangeExpr)(nil),
		(*RecordType)(nil),
		(*RepeatStmt)(nil),
		(*SetConstructor)(nil),
		(*SetType)(nil),
		(*SubrangeType)(nil),
		(*TypeDecl)(nil),
		(*TypeSection)(nil),
		(*UnaryExpr)(nil),
		(*VarDecl)(nil),
		(*VarRef)(nil),
		(*VarSection)(nil),
		(*Variant)(nil),
		(*VariantPart)(nil),
		(*WhileStmt)(nil),
		(*WithStmt)(nil),
	}

	_ = []Decl{
		(*BadDecl)(nil),
		(*ConstSection)(nil),
		(*FuncDecl)(nil),
		(*LabelSection)(nil),
		(*ProcDecl)(nil),
		(*TypeSection)(nil),
		(*VarSection)(nil),
	}

	_ = []Type{
		(*ArrayType)(nil),
		(*BadType)(nil),
		(*EnumType)(nil),
		(*FileType)(nil),
		(*NamedType)(nil),
		(*PointerType)(nil),
		(*RecordType)(nil),
		(*SetType)(nil),
		(*SubrangeType)(nil),
	}

	_ = []Stmt{
		(*AssignStmt)(nil),
		(*BadStmt)(nil),
		(*CaseStmt)(nil),
		(*CompoundStmt)(nil),
		(*EmptyStmt)(nil),
		(*ForStmt)(nil),
		(*GotoStmt)(nil),
		(*IfStmt)(nil),
		(*LabeledStmt)(nil),
		(*ProcCallStmt)(nil),
		(*RepeatStmt)(nil),
		(*WhileStmt)(nil),
		(*WithStmt)(nil),
	}

	_ = []Expr{
		(*BadExpr)(nil),
		(*BinaryExpr)(nil),
		(*CallExpr)(nil),
		(*DerefExpr)(nil),
		(*FieldAccess)(nil),
		(*FormattedArg)(nil),
		(*IndexExpr)(nil),
		(*Literal)(nil),
		(*RangeExpr)(nil),
		(*SetConstructor)(nil),
		(*UnaryExpr)(nil),
		(*VarRef)(nil),
	}
)

// Node is implemented by all AST nodes. Nodes are not modified after the
// parser returns them.
type Node interface {
	Position() token.Position
}

// Decl is a declaration part item.
type Decl interface {
	Node
	isDecl()
}

// Type is a type denoter.
type Type interface {
	Node
	isType()
}

// Stmt is a statement.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression.
type Expr interface {
	Node
	isExpr()
}

type decler struct{}

func (decler) isDecl() {}

type typer struct{}

func (typer) isType() {}

type stmter struct{}

func (stmter) isStmt() {}

type exprer struct{}

func (exprer) isExpr() {}

// IsMissing reports whether n is a placeholder for a production that could
// not be completed.
func IsMissing(n Node) bool {
	switch n.(type) {
	case *BadDecl, *BadType, *BadStmt, *BadExpr:
		return true
	}

	return false
}

var prettyHooks = strutil.PrettyPrintHooks{
	reflect.TypeOf(Token{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		t := v.(Token)
		if !t.IsValid() {
			return
		}

		f.Format("%s%q"+strings.Replace(suffix, "%", "%%", -1), prefix, t.Src)
	},
	reflect.TypeOf(token.Position{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		pos := v.(token.Position)
		if !pos.IsValid() {
			return
		}

		f.Format("%s%d:%d"+strings.Replace(suffix, "%", "%%", -1), prefix, pos.Line, pos.Column)
	},
}

// PrettyString returns a human readable dump of n.
func PrettyString(n Node) string {
	return strutil.PrettyString(n, "", "", prettyHooks)
}

// Ident is an identifier as written in the source. Identifiers are never
// resolved by the parser.
type Ident struct {
	Token Token
}

// Name returns the identifier text.
func (n *Ident) Name() string { return n.Token.Src }

// Position implements Node.
func (n *Ident) Position() token.Position { return n.Token.Position }

// Is reports whether n names s, ignoring case.
func (n *Ident) Is(s string) bool { return strings.EqualFold(n.Token.Src, s) }

// Program is the root of the tree.
//
//	Program = "program" Identifier [ "(" IdentifierList ")" ] ";" Block "." .
type Program struct {
	Program Token
	Name    *Ident // nil when the heading is missing
	Params  []*Ident
	Block   *Block
	Dot     Token
}

// Position implements Node.
func (n *Program) Position() token.Position {
	if n.Program.IsValid() {
		return n.Program.Position
	}

	return n.Block.Position()
}

// Block is the declaration part and statement part of a program or
// routine. Sections appear in Decls in source order and may repeat.
//
//	Block = { LabelSection | ConstSection | TypeSection | VarSection | ProcDecl | FuncDecl } CompoundStatement .
type Block struct {
	Decls []Decl
	Body  Stmt // *CompoundStmt or *BadStmt
}

// Position implements Node.
func (n *Block) Position() token.Position {
	if len(n.Decls) != 0 {
		return n.Decls[0].Position()
	}

	return n.Body.Position()
}

// BadDecl is a declaration that could not be parsed.
type BadDecl struct {
	decler
	From, To token.Position
}

// Position implements Node.
func (n *BadDecl) Position() token.Position { return n.From }

// LabelSection declares labels.
//
//	LabelSection = "label" Label { "," Label } ";" .
type LabelSection struct {
	decler
	Label  Token
	Labels []Token // INT_LITERAL or IDENTIFIER
}

// Position implements Node.
func (n *LabelSection) Position() token.Position { return n.Label.Position }

// ConstSection is a constant definition part.
//
//	ConstSection = "const" ConstDecl ";" { ConstDecl ";" } .
type ConstSection struct {
	decler
	Const Token
	List  []*ConstDecl
}

// Position implements Node.
func (n *ConstSection) Position() token.Position { return n.Const.Position }

// ConstDecl defines one constant.
//
//	ConstDecl = Identifier [ ":" Type ] "=" Expression .
type ConstDecl struct {
	Name  *Ident
	Type  Type // nil for untyped constants
	Value Expr
}

// Position implements Node.
func (n *ConstDecl) Position() token.Position { return n.Name.Position() }

// TypeSection is a type definition part.
//
//	TypeSection = "type" TypeDecl ";" { TypeDecl ";" } .
type TypeSection struct {
	decler
	Type Token
	List []*TypeDecl
}

// Position implements Node.
func (n *TypeSection) Position() token.Position { return n.Type.Position }

// TypeDecl defines one type name.
//
//	TypeDecl = Identifier "=" Type .
type TypeDecl struct {
	Name *Ident
	Type Type
}

// Position implements Node.
func (n *TypeDecl) Position() token.Position { return n.Name.Position() }

// VarSection is a variable declaration part.
//
//	VarSection = "var" VarDecl ";" { VarDecl ";" } .
type VarSection struct {
	decler
	Var  Token
	List []*VarDecl
}

// Position implements Node.
func (n *VarSection) Position() token.Position { return n.Var.Position }

// VarDecl declares variables of one type.
//
//	VarDecl = IdentifierList ":" Type .
type VarDecl struct {
	Names []*Ident
	Type  Type
}

// Position implements Node.
func (n *VarDecl) Position() token.Position { return n.Names[0].Position() }

// ParamSection is a group of formal parameters sharing a mode and a type.
//
//	ParamSection = [ "var" | "const" | "out" ] IdentifierList ":" Type .
type ParamSection struct {
	Mode  Token // zero for value parameters
	Names []*Ident
	Type  Type
}

// Position implements Node.
func (n *ParamSection) Position() token.Position {
	if n.Mode.IsValid() {
		return n.Mode.Position
	}

	return n.Names[0].Position()
}

// ProcDecl declares a procedure.
//
//	ProcDecl = "procedure" Identifier [ FormalParameterList ] ";" ( Block | "forward" ) ";" .
type ProcDecl struct {
	decler
	Procedure Token
	Name      *Ident
	Params    []*ParamSection
	Block     *Block // nil for forward declarations
	Forward   bool
}

// Position implements Node.
func (n *ProcDecl) Position() token.Position { return n.Procedure.Position }

// FuncDecl declares a function.
//
//	FuncDecl = "function" Identifier [ FormalParameterList ] ":" Type ";" ( Block | "forward" ) ";" .
type FuncDecl struct {
	decler
	Function Token
	Name     *Ident
	Params   []*ParamSection
	Result   Type
	Block    *Block // nil for forward declarations
	Forward  bool
}

// Position implements Node.
func (n *FuncDecl) Position() token.Position { return n.Function.Position }

// BadType is a type denoter that could not be parsed.
type BadType struct {
	typer
	From, To token.Position
}

// Position implements Node.
func (n *BadType) Position() token.Position { return n.From }

// NamedType refers to a type by name.
type NamedType struct {
	typer
	Name *Ident
}

// Position implements Node.
func (n *NamedType) Position() token.Position { return n.Name.Position() }

// SubrangeType is a contiguous range of an ordinal type.
//
//	SubrangeType = Constant ".." Constant .
type SubrangeType struct {
	typer
	Low, High Expr
}

// Position implements Node.
func (n *SubrangeType) Position() token.Position { return n.Low.Position() }

// EnumType lists the values of an enumeration in declaration order.
//
//	EnumType = "(" IdentifierList ")" .
type EnumType struct {
	typer
	LParen Token
	Values []*Ident
}

// Position implements Node.
func (n *EnumType) Position() token.Position { return n.LParen.Position }

// SetType is a set of an ordinal type.
//
//	SetType = [ "packed" ] "set" "of" Type .
type SetType struct {
	typer
	Packed Token
	Set    Token
	Elem   Type
}

// Position implements Node.
func (n *SetType) Position() token.Position { return packedPosition(n.Packed, n.Set) }

// IsPacked reports whether the type was declared packed.
func (n *SetType) IsPacked() bool { return n.Packed.IsValid() }

// ArrayType has exactly one index type. The parser turns
// array[A, B] of T into array[A] of array[B] of T, outer dimension first.
// Only the outer array carries the packed flag.
//
//	ArrayType = [ "packed" ] "array" "[" Type { "," Type } "]" "of" Type .
type ArrayType struct {
	typer
	Packed Token
	Array  Token
	Index  Type
	Elem   Type
}

// Position implements Node.
func (n *ArrayType) Position() token.Position { return packedPosition(n.Packed, n.Array) }

// IsPacked reports whether the type was declared packed.
func (n *ArrayType) IsPacked() bool { return n.Packed.IsValid() }

// RecordType is a record with a fixed part and an optional variant part.
//
//	RecordType = [ "packed" ] "record" FieldList "end" .
//	FieldList = [ FieldDecl { ";" FieldDecl } ] [ ";" ] [ VariantPart ] [ ";" ] .
type RecordType struct {
	typer
	Packed  Token
	Record  Token
	Fields  []*FieldDecl
	Variant *VariantPart // nil if absent
	End     Token
}

// Position implements Node.
func (n *RecordType) Position() token.Position { return packedPosition(n.Packed, n.Record) }

// IsPacked reports whether the type was declared packed.
func (n *RecordType) IsPacked() bool { return n.Packed.IsValid() }

// FieldDecl declares record fields of one type.
//
//	FieldDecl = IdentifierList ":" Type .
type FieldDecl struct {
	Names []*Ident
	Type  Type
}

// Position implements Node.
func (n *FieldDecl) Position() token.Position { return n.Names[0].Position() }

// VariantPart is the tagged part of a record. Tag is nil when the selector
// has no tag field, as in "case Boolean of".
//
//	VariantPart = "case" [ Identifier ":" ] Type "of" Variant { ";" Variant } [ ";" ] .
type VariantPart struct {
	Case    Token
	Tag     *Ident
	TagType Type
	Arms    []*Variant
}

// Position implements Node.
func (n *VariantPart) Position() token.Position { return n.Case.Position }

// Variant is one arm of a VariantPart. Arms are siblings; overlapping
// labels are not diagnosed.
//
//	Variant = CaseLabel { "," CaseLabel } ":" "(" FieldList ")" .
type Variant struct {
	Labels  []Expr
	Fields  []*FieldDecl
	Variant *VariantPart
}

// Position implements Node.
func (n *Variant) Position() token.Position { return n.Labels[0].Position() }

// PointerType points to a type identified only by name. The name is not
// resolved, it may refer to a type declared later.
//
//	PointerType = "^" Identifier .
type PointerType struct {
	typer
	Caret  Token
	Target *Ident
}

// Position implements Node.
func (n *PointerType) Position() token.Position { return n.Caret.Position }

// FileType is a file of Elem. Elem is nil for an untyped file.
//
//	FileType = [ "packed" ] "file" [ "of" Type ] .
type FileType struct {
	typer
	Packed Token
	File   Token
	Elem   Type
}

// Position implements Node.
func (n *FileType) Position() token.Position { return packedPosition(n.Packed, n.File) }

func packedPosition(packed, kw Token) token.Position {
	if packed.IsValid() {
		return packed.Position
	}

	return kw.Position
}

// BadStmt is a statement that could not be parsed.
type BadStmt struct {
	stmter
	From, To token.Position
}

// Position implements Node.
func (n *BadStmt) Position() token.Position { return n.From }

// EmptyStmt is the empty statement.
type EmptyStmt struct {
	stmter
	Pos token.Position
}

// Position implements Node.
func (n *EmptyStmt) Position() token.Position { return n.Pos }

// AssignStmt assigns Value to Target.
//
//	AssignStmt = Designator ":=" Expression .
type AssignStmt struct {
	stmter
	Target Expr
	Assign Token
	Value  Expr
}

// Position implements Node.
func (n *AssignStmt) Position() token.Position { return n.Target.Position() }

// ProcCallStmt calls a procedure. Built-in procedures like write or new
// are not distinguished.
//
//	ProcCallStmt = Identifier [ "(" [ Argument { "," Argument } ] ")" ] .
type ProcCallStmt struct {
	stmter
	Name   *Ident
	LParen Token // zero if there is no argument list
	Args   []Expr
}

// Position implements Node.
func (n *ProcCallStmt) Position() token.Position { return n.Name.Position() }

// CompoundStmt is a begin-end block.
//
//	CompoundStmt = "begin" Statement { ";" Statement } "end" .
type CompoundStmt struct {
	stmter
	Begin Token
	List  []Stmt
	End   Token
}

// Position implements Node.
func (n *CompoundStmt) Position() token.Position { return n.Begin.Position }

// IfStmt is a conditional statement. An else belongs to the nearest if.
//
//	IfStmt = "if" Expression "then" Statement [ "else" Statement ] .
type IfStmt struct {
	stmter
	If   Token
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// Position implements Node.
func (n *IfStmt) Position() token.Position { return n.If.Position }

// WhileStmt is a pre-tested loop.
//
//	WhileStmt = "while" Expression "do" Statement .
type WhileStmt struct {
	stmter
	While Token
	Cond  Expr
	Body  Stmt
}

// Position implements Node.
func (n *WhileStmt) Position() token.Position { return n.While.Position }

// RepeatStmt is a post-tested loop.
//
//	RepeatStmt = "repeat" Statement { ";" Statement } "until" Expression .
type RepeatStmt struct {
	stmter
	Repeat Token
	List   []Stmt
	Cond   Expr
}

// Position implements Node.
func (n *RepeatStmt) Position() token.Position { return n.Repeat.Position }

// ForDir is the direction of a for loop.
type ForDir int

// Values of type ForDir.
const (
	To ForDir = iota
	DownTo
)

func (d ForDir) String() string {
	if d == DownTo {
		return "downto"
	}

	return "to"
}

// ForStmt is a counting loop.
//
//	ForStmt = "for" Identifier ":=" Expression ( "to" | "downto" ) Expression "do" Statement .
type ForStmt struct {
	stmter
	For   Token
	Var   *Ident
	Start Expr
	Dir   ForDir
	Stop  Expr
	Body  Stmt
}

// Position implements Node.
func (n *ForStmt) Position() token.Position { return n.For.Position }

// CaseStmt selects one arm by the value of Selector. Else is zero and
// ElseList nil when there is no else part.
//
//	CaseStmt = "case" Expression "of" CaseArm { ";" CaseArm } [ ";" ] [ "else" Statement { ";" Statement } ] "end" .
type CaseStmt struct {
	stmter
	Case     Token
	Selector Expr
	Arms     []*CaseArm
	Else     Token
	ElseList []Stmt
	End      Token
}

// Position implements Node.
func (n *CaseStmt) Position() token.Position { return n.Case.Position }

// CaseArm is one labeled arm of a case statement. Labels are constant
// expressions or *RangeExpr.
//
//	CaseArm = CaseLabel { "," CaseLabel } ":" Statement .
//	CaseLabel = Expression [ ".." Expression ] .
type CaseArm struct {
	Labels []Expr
	Body   Stmt
}

// Position implements Node.
func (n *CaseArm) Position() token.Position { return n.Labels[0].Position() }

// WithStmt opens the field scopes of Records, left to right, for Body.
//
//	WithStmt = "with" Designator { "," Designator } "do" Statement .
type WithStmt struct {
	stmter
	With    Token
	Records []Expr
	Body    Stmt
}

// Position implements Node.
func (n *WithStmt) Position() token.Position { return n.With.Position }

// GotoStmt transfers control to Label. Whether the label exists is not
// checked.
//
//	GotoStmt = "goto" Label .
type GotoStmt struct {
	stmter
	Goto  Token
	Label Token
}

// Position implements Node.
func (n *GotoStmt) Position() token.Position { return n.Goto.Position }

// LabeledStmt is a statement prefixed by a label. Several labels on one
// statement nest.
//
//	LabeledStmt = Label ":" Statement .
type LabeledStmt struct {
	stmter
	Label Token
	Stmt  Stmt
}

// Position implements Node.
func (n *LabeledStmt) Position() token.Position { return n.Label.Position }

// BadExpr is an expression that could not be parsed.
type BadExpr struct {
	exprer
	From, To token.Position
}

// Position implements Node.
func (n *BadExpr) Position() token.Position { return n.From }

// Literal is a number, string, char or nil constant. Value holds the
// decoded value, see Token.Val.
type Literal struct {
	exprer
	Token Token
	Value interface{}
}

// Position implements Node.
func (n *Literal) Position() token.Position { return n.Token.Position }

// Kind returns the token kind of the literal.
func (n *Literal) Kind() Kind { return n.Token.Kind() }

// VarRef is an unqualified identifier used as a value.
type VarRef struct {
	exprer
	Name *Ident
}

// Position implements Node.
func (n *VarRef) Position() token.Position { return n.Name.Position() }

// FieldAccess selects a record field.
//
//	FieldAccess = Designator "." Identifier .
type FieldAccess struct {
	exprer
	Base  Expr
	Field *Ident
}

// Position implements Node.
func (n *FieldAccess) Position() token.Position { return n.Base.Position() }

// IndexExpr indexes an array. a[i, j] keeps both indexes in one node.
//
//	IndexExpr = Designator "[" Expression { "," Expression } "]" .
type IndexExpr struct {
	exprer
	Base    Expr
	Indexes []Expr
}

// Position implements Node.
func (n *IndexExpr) Position() token.Position { return n.Base.Position() }

// DerefExpr dereferences a pointer.
//
//	DerefExpr = Designator "^" .
type DerefExpr struct {
	exprer
	Base  Expr
	Caret Token
}

// Position implements Node.
func (n *DerefExpr) Position() token.Position { return n.Base.Position() }

// CallExpr is a function call or, syntactically identical, a type cast.
//
//	CallExpr = Designator "(" [ Argument { "," Argument } ] ")" .
type CallExpr struct {
	exprer
	Callee Expr
	LParen Token
	Args   []Expr
}

// Position implements Node.
func (n *CallExpr) Position() token.Position { return n.Callee.Position() }

// FormattedArg is a write style argument with field width and precision.
//
//	Argument = Expression [ ":" Expression [ ":" Expression ] ] .
type FormattedArg struct {
	exprer
	X     Expr
	Width Expr
	Prec  Expr // nil if absent
}

// Position implements Node.
func (n *FormattedArg) Position() token.Position { return n.X.Position() }

// UnaryExpr is one of not, -, + or @ applied to Operand.
type UnaryExpr struct {
	exprer
	Op      Token
	Operand Expr
}

// Position implements Node.
func (n *UnaryExpr) Position() token.Position { return n.Op.Position }

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	exprer
	Left  Expr
	Op    Token
	Right Expr
}

// Position implements Node.
func (n *BinaryExpr) Position() token.Position { return n.Left.Position() }

// SetConstructor is a set value. Elems are expressions or *RangeExpr.
//
//	SetConstructor = "[" [ Element { "," Element } ] "]" .
type SetConstructor struct {
	exprer
	LBrack Token
	Elems  []Expr
}

// Position implements Node.
func (n *SetConstructor) Position() token.Position { return n.LBrack.Position }

// RangeExpr is low..high in a set constructor or a case label.
type RangeExpr struct {
	exprer
	Low, High Expr
}

// Position implements Node.
func (n *RangeExpr) Position() token.Position { return n.Low.Position() }
