// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
)

// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of the children of node
// with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. Children are visited in
// source order. Nil children are skipped.
func Walk(v Visitor, n Node) {
	if isNil(n) {
		return
	}

	if v = v.Visit(n); v == nil {
		return
	}

	switch x := n.(type) {
	case *Program:
		walkIdent(v, x.Name)
		walkIdents(v, x.Params)
		walkNode(v, x.Block)
	case *Block:
		for _, d := range x.Decls {
			Walk(v, d)
		}
		Walk(v, x.Body)
	case *LabelSection, *Ident, *Literal, *GotoStmt, *EmptyStmt,
		*BadDecl, *BadType, *BadStmt, *BadExpr:
		// leaves
	case *ConstSection:
		for _, d := range x.List {
			walkNode(v, d)
		}
	case *ConstDecl:
		walkIdent(v, x.Name)
		Walk(v, x.Type)
		Walk(v, x.Value)
	case *TypeSection:
		for _, d := range x.List {
			walkNode(v, d)
		}
	case *TypeDecl:
		walkIdent(v, x.Name)
		Walk(v, x.Type)
	case *VarSection:
		for _, d := range x.List {
			walkNode(v, d)
		}
	case *VarDecl:
		walkIdents(v, x.Names)
		Walk(v, x.Type)
	case *ParamSection:
		walkIdents(v, x.Names)
		Walk(v, x.Type)
	case *ProcDecl:
		walkIdent(v, x.Name)
		for _, s := range x.Params {
			walkNode(v, s)
		}
		walkNode(v, x.Block)
	case *FuncDecl:
		walkIdent(v, x.Name)
		for _, s := range x.Params {
			walkNode(v, s)
		}
		Walk(v, x.Result)
		walkNode(v, x.Block)
	case *NamedType:
		walkIdent(v, x.Name)
	case *SubrangeType:
		Walk(v, x.Low)
		Walk(v, x.High)
	case *EnumType:
		walkIdents(v, x.Values)
	case *SetType:
		Walk(v, x.Elem)
	case *ArrayType:
		Walk(v, x.Index)
		Walk(v, x.Elem)
	case *RecordType:
		walkFields(v, x.Fields)
		walkNode(v, x.Variant)
	case *FieldDecl:
		walkIdents(v, x.Names)
		Walk(v, x.Type)
	case *VariantPart:
		walkIdent(v, x.Tag)
		Walk(v, x.TagType)
		for _, a := range x.Arms {
			walkNode(v, a)
		}
	case *Variant:
		walkExprs(v, x.Labels)
		walkFields(v, x.Fields)
		walkNode(v, x.Variant)
	case *PointerType:
		walkIdent(v, x.Target)
	case *FileType:
		Walk(v, x.Elem)
	case *AssignStmt:
		Walk(v, x.Target)
		Walk(v, x.Value)
	case *ProcCallStmt:
		walkIdent(v, x.Name)
		walkExprs(v, x.Args)
	case *CompoundStmt:
		walkStmts(v, x.List)
	case *IfStmt:
		Walk(v, x.Cond)
		Walk(v, x.Then)
		Walk(v, x.Else)
	case *WhileStmt:
		Walk(v, x.Cond)
		Walk(v, x.Body)
	case *RepeatStmt:
		walkStmts(v, x.List)
		Walk(v, x.Cond)
	case *ForStmt:
		walkIdent(v, x.Var)
		Walk(v, x.Start)
		Walk(v, x.Stop)
		Walk(v, x.Body)
	case *CaseStmt:
		Walk(v, x.Selector)
		for _, a := range x.Arms {
			walkNode(v, a)
		}
		walkStmts(v, x.ElseList)
	case *CaseArm:
		walkExprs(v, x.Labels)
		Walk(v, x.Body)
	case *WithStmt:
		walkExprs(v, x.Records)
		Walk(v, x.Body)
	case *LabeledStmt:
		Walk(v, x.Stmt)
	case *VarRef:
		walkIdent(v, x.Name)
	case *FieldAccess:
		Walk(v, x.Base)
		walkIdent(v, x.Field)
	case *IndexExpr:
		Walk(v, x.Base)
		walkExprs(v, x.Indexes)
	case *DerefExpr:
		Walk(v, x.Base)
	case *CallExpr:
		Walk(v, x.Callee)
		walkExprs(v, x.Args)
	case *FormattedArg:
		Walk(v, x.X)
		Walk(v, x.Width)
		Walk(v, x.Prec)
	case *UnaryExpr:
		Walk(v, x.Operand)
	case *BinaryExpr:
		Walk(v, x.Left)
		Walk(v, x.Right)
	case *SetConstructor:
		walkExprs(v, x.Elems)
	case *RangeExpr:
		Walk(v, x.Low)
		Walk(v, x.High)
	default:
		panic(fmt.Sprintf("Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

// isNil reports whether n is nil or a typed nil pointer stored in an
// interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}

	switch x := n.(type) {
	case *Ident:
		return x == nil
	case *Block:
		return x == nil
	case *VariantPart:
		return x == nil
	}
	return false
}

func walkNode(v Visitor, n Node) {
	if !isNil(n) {
		Walk(v, n)
	}
}

func walkIdent(v Visitor, n *Ident) {
	if n != nil {
		Walk(v, n)
	}
}

func walkIdents(v Visitor, list []*Ident) {
	for _, n := range list {
		walkIdent(v, n)
	}
}

func walkFields(v Visitor, list []*FieldDecl) {
	for _, n := range list {
		Walk(v, n)
	}
}

func walkExprs(v Visitor, list []Expr) {
	for _, n := range list {
		Walk(v, n)
	}
}

func walkStmts(v Visitor, list []Stmt) {
	for _, n := range list {
		Walk(v, n)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}

	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling f(n);
// n must not be nil. If f returns true, Inspect invokes f recursively for
// each of the non-nil children of n, followed by a call of f(nil).
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}
