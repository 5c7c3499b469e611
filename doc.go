// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pascal is a front end for Pascal programs. It turns source text
// into tokens and tokens into an abstract syntax tree, reporting
// diagnostics for malformed input while continuing to parse as much as
// possible.
//
// Scope
//
// The parser checks syntax only. Identifiers, labels and types are never
// resolved, so a program using an undeclared variable or jumping to an
// undeclared label parses without diagnostics. The exception is
// ResolveWith, a separate pass binding identifiers in with statement bodies
// to record fields.
//
// Usage
//
//	prog, diags := pascal.Parse("prog.pas", src)
//	if len(diags) != 0 {
//		fmt.Println(diags)
//		// prog is complete but not authoritative
//	}
//
// or, step by step
//
//	toks, lexErrs := pascal.Tokenize("prog.pas", src)
//	prog, parseErrs := pascal.NewParser(pascal.FilterErrors(toks)).ParseProgram()
//
// Diagnostics
//
// Diagnostics render as
//
//	file(line,col) Severity: message
//
// An Error means parsing went on normally. A Fatal means the innermost
// declaration or statement was abandoned and replaced by a Bad* node; the
// parser then skipped to the next declaration or statement boundary.
//
// Grammar
//
// The accepted language is that of [0] with the following additions:
// identifier labels, the power operator **, the address operator @, const
// and out parameters, typed constants, // line comments and an optional
// else part of case statements.
//
// References
//
// Referenced to from elsewhere:
//
//	[0]: Kathleen Jensen, Niklaus Wirth: Pascal User Manual and Report, Fourth Edition.
//		ISBN-13: 978-0-387-97649-5 e-ISBN: 978-1-4612-4450-9
package pascal // import "modernc.org/pascal"
