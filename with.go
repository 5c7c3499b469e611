// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"strings"
)

// FieldScope holds the fields opened by one record expression of a with
// statement. Fields of variant arms and the tag field are included.
type FieldScope struct {
	Record Expr
	Fields map[string]*Ident // keyed by lower case name

	types map[*Ident]Type
}

func newFieldScope(record Expr, rec *RecordType) *FieldScope {
	r := &FieldScope{Record: record, Fields: map[string]*Ident{}, types: map[*Ident]Type{}}
	if rec != nil {
		r.add(rec.Fields, rec.Variant)
	}
	return r
}

func (s *FieldScope) add(fields []*FieldDecl, v *VariantPart) {
	for _, f := range fields {
		for _, id := range f.Names {
			s.Fields[strings.ToLower(id.Name())] = id
			s.types[id] = f.Type
		}
	}
	if v == nil {
		return
	}

	if v.Tag != nil {
		s.Fields[strings.ToLower(v.Tag.Name())] = v.Tag
		s.types[v.Tag] = v.TagType
	}
	for _, arm := range v.Arms {
		s.add(arm.Fields, arm.Variant)
	}
}

// WithScopes is the stack of field scopes active at a point of a statement
// body. The zero value is an empty stack.
type WithScopes struct {
	s []*FieldScope
}

// Len returns the number of active scopes.
func (w *WithScopes) Len() int { return len(w.s) }

// Push opens s as the innermost scope.
func (w *WithScopes) Push(s *FieldScope) { w.s = append(w.s, s) }

// Pop closes the innermost scope.
func (w *WithScopes) Pop() { w.s = w.s[:len(w.s)-1] }

// Lookup searches the scopes innermost first for a field called name,
// ignoring case.
func (w *WithScopes) Lookup(name string) (*FieldScope, *Ident, bool) {
	k := strings.ToLower(name)
	for i := len(w.s) - 1; i >= 0; i-- {
		if id, ok := w.s[i].Fields[k]; ok {
			return w.s[i], id, true
		}
	}
	return nil, nil, false
}

// WithBinding records an unqualified identifier that denotes a record field
// opened by an enclosing with statement.
type WithBinding struct {
	Ref    *VarRef
	Record Expr // the with statement record expression providing Field
	Field  *Ident
}

type scope struct {
	parent *scope
	types  map[string]Type
	vars   map[string]Type
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, types: map[string]Type{}, vars: map[string]Type{}}
}

func (s *scope) lookupType(name string) Type {
	k := strings.ToLower(name)
	for ; s != nil; s = s.parent {
		if t, ok := s.types[k]; ok {
			return t
		}
	}
	return nil
}

func (s *scope) lookupVar(name string) Type {
	k := strings.ToLower(name)
	for ; s != nil; s = s.parent {
		if t, ok := s.vars[k]; ok {
			return t
		}
	}
	return nil
}

type withResolver struct {
	bindings []WithBinding
	scope    *scope
	with     WithScopes
}

// ResolveWith binds the unqualified identifiers used inside with statement
// bodies to the record fields they denote. Identifiers naming a field of
// several open records bind to the innermost one; identifiers naming no
// field are left alone. Record types are found through the declarations
// of the program and its routines only, nothing is reported for names that
// cannot be resolved.
func ResolveWith(prog *Program) []WithBinding {
	if prog == nil || prog.Block == nil {
		return nil
	}

	r := &withResolver{}
	r.block(prog.Block, nil)
	return r.bindings
}

func (r *withResolver) block(b *Block, params []*ParamSection) {
	s := newScope(r.scope)
	for _, p := range params {
		for _, id := range p.Names {
			s.vars[strings.ToLower(id.Name())] = p.Type
		}
	}
	for _, d := range b.Decls {
		switch x := d.(type) {
		case *TypeSection:
			for _, v := range x.List {
				s.types[strings.ToLower(v.Name.Name())] = v.Type
			}
		case *VarSection:
			for _, v := range x.List {
				for _, id := range v.Names {
					s.vars[strings.ToLower(id.Name())] = v.Type
				}
			}
		}
	}

	saved := r.scope
	r.scope = s
	defer func() { r.scope = saved }()

	for _, d := range b.Decls {
		switch x := d.(type) {
		case *ProcDecl:
			if x.Block != nil {
				r.block(x.Block, x.Params)
			}
		case *FuncDecl:
			if x.Block != nil {
				r.block(x.Block, x.Params)
			}
		}
	}
	Walk(r, b.Body)
}

// Visit implements Visitor.
func (r *withResolver) Visit(n Node) Visitor {
	switch x := n.(type) {
	case *VarRef:
		if s, id, ok := r.with.Lookup(x.Name.Name()); ok {
			r.bindings = append(r.bindings, WithBinding{Ref: x, Record: s.Record, Field: id})
		}
	case *WithStmt:
		r.withStmt(x)
		return nil
	}
	return r
}

func (r *withResolver) withStmt(n *WithStmt) {
	pushed := 0
	defer func() {
		for ; pushed != 0; pushed-- {
			r.with.Pop()
		}
	}()

	for _, x := range n.Records {
		Walk(r, x)
		r.with.Push(newFieldScope(x, r.record(r.typeOf(x))))
		pushed++
	}
	Walk(r, n.Body)
}

// resolve follows type aliases.
func (r *withResolver) resolve(t Type) Type {
	seen := map[*NamedType]bool{}
	for {
		n, ok := t.(*NamedType)
		if !ok || seen[n] {
			return t
		}

		seen[n] = true
		u := r.scope.lookupType(n.Name.Name())
		if u == nil {
			return t
		}

		t = u
	}
}

func (r *withResolver) record(t Type) *RecordType {
	x, _ := r.resolve(t).(*RecordType)
	return x
}

// typeOf returns the declared type of a designator or nil.
func (r *withResolver) typeOf(x Expr) Type {
	switch x := x.(type) {
	case *VarRef:
		if s, id, ok := r.with.Lookup(x.Name.Name()); ok {
			return s.types[id]
		}

		return r.scope.lookupVar(x.Name.Name())
	case *FieldAccess:
		rec := r.record(r.typeOf(x.Base))
		if rec == nil {
			return nil
		}

		s := newFieldScope(nil, rec)
		if id, ok := s.Fields[strings.ToLower(x.Field.Name())]; ok {
			return s.types[id]
		}
	case *IndexExpr:
		t := r.typeOf(x.Base)
		for range x.Indexes {
			a, ok := r.resolve(t).(*ArrayType)
			if !ok {
				return nil
			}

			t = a.Elem
		}
		return t
	case *DerefExpr:
		switch t := r.resolve(r.typeOf(x.Base)).(type) {
		case *PointerType:
			if u := r.scope.lookupType(t.Target.Name()); u != nil {
				return u
			}

			return &NamedType{Name: t.Target}
		case *FileType:
			return t.Elem
		}
	}
	return nil
}
