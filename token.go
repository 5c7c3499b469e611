// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"strings"

	"modernc.org/token"
)

// Kind is the coarse class of a token.
type Kind int

// Values of type Kind.
const (
	InvalidKind Kind = iota
	Keyword
	Identifier
	IntLiteral
	RealLiteral
	StringLiteral
	CharLiteral
	Operator
	Punctuation
	EOFKind
	LexError
)

var kindNames = [...]string{
	InvalidKind:   "invalid",
	Keyword:       "keyword",
	Identifier:    "identifier",
	IntLiteral:    "integer literal",
	RealLiteral:   "real literal",
	StringLiteral: "string literal",
	CharLiteral:   "char literal",
	Operator:      "operator",
	Punctuation:   "punctuation",
	EOFKind:       "end of input",
	LexError:      "lexical error",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Ch identifies a token exactly. Single character operators and
// punctuation use their own character value, everything else is one of the
// named constants below.
type Ch rune

// Values of type Ch.
const (
	ILLEGAL Ch = iota + 0x100

	EOF
	IDENTIFIER
	INT_LITERAL
	REAL_LITERAL
	STR_LITERAL
	CHAR_LITERAL

	ASSIGN // :=
	DD     // ..
	GE     // >=
	LE     // <=
	NE     // <>
	POW    // **

	keywordFirst
	AND
	ARRAY
	BEGIN
	CASE
	CONST
	DIV
	DO
	DOWNTO
	ELSE
	END
	FILE
	FOR
	FUNCTION
	GOTO
	IF
	IN
	LABEL
	MOD
	NIL
	NOT
	OF
	OR
	PACKED
	PROCEDURE
	PROGRAM
	RECORD
	REPEAT
	SET
	THEN
	TO
	TYPE
	UNTIL
	VAR
	WHILE
	WITH
	keywordLast
)

var keywords = map[string]Ch{
	"and":       AND,
	"array":     ARRAY,
	"begin":     BEGIN,
	"case":      CASE,
	"const":     CONST,
	"div":       DIV,
	"do":        DO,
	"downto":    DOWNTO,
	"else":      ELSE,
	"end":       END,
	"file":      FILE,
	"for":       FOR,
	"function":  FUNCTION,
	"goto":      GOTO,
	"if":        IF,
	"in":        IN,
	"label":     LABEL,
	"mod":       MOD,
	"nil":       NIL,
	"not":       NOT,
	"of":        OF,
	"or":        OR,
	"packed":    PACKED,
	"procedure": PROCEDURE,
	"program":   PROGRAM,
	"record":    RECORD,
	"repeat":    REPEAT,
	"set":       SET,
	"then":      THEN,
	"to":        TO,
	"type":      TYPE,
	"until":     UNTIL,
	"var":       VAR,
	"while":     WHILE,
	"with":      WITH,
}

var chNames = map[Ch]string{
	ILLEGAL:      "ILLEGAL",
	EOF:          "EOF",
	IDENTIFIER:   "IDENTIFIER",
	INT_LITERAL:  "INT_LITERAL",
	REAL_LITERAL: "REAL_LITERAL",
	STR_LITERAL:  "STR_LITERAL",
	CHAR_LITERAL: "CHAR_LITERAL",
	ASSIGN:       ":=",
	DD:           "..",
	GE:           ">=",
	LE:           "<=",
	NE:           "<>",
	POW:          "**",
}

func init() {
	for k, v := range keywords {
		chNames[v] = strings.ToUpper(k)
	}
}

// IsKeyword reports whether c is a reserved word.
func (c Ch) IsKeyword() bool { return c > keywordFirst && c < keywordLast }

func (c Ch) String() string {
	if s, ok := chNames[c]; ok {
		return s
	}

	if c > ' ' && c < 0x7f {
		return string(rune(c))
	}

	return fmt.Sprintf("Ch(%#x)", int(c))
}

// str renders c the way it appears in "X expected" messages.
func (c Ch) str() string {
	switch c {
	case IDENTIFIER:
		return `"identifier"`
	case INT_LITERAL:
		return `"ordinal const"`
	case EOF:
		return `"end of file"`
	}

	return fmt.Sprintf("%q", c.String())
}

// Token is a lexeme produced by the Lexer. Tokens are values and are never
// modified once scanned.
type Token struct {
	Position token.Position
	// Sep is the white space and comments preceding the token.
	Sep string
	// Src is the lexeme, exactly as it appears in the source.
	Src string
	// Val is the decoded value of a literal: int64 for integer literals,
	// float64 for real literals and string for string and char literals.
	Val interface{}
	Ch  Ch
}

// Kind returns the coarse class of t.
func (t Token) Kind() Kind {
	switch c := t.Ch; {
	case c == ILLEGAL:
		return LexError
	case c == EOF:
		return EOFKind
	case c == IDENTIFIER:
		return Identifier
	case c == INT_LITERAL:
		return IntLiteral
	case c == REAL_LITERAL:
		return RealLiteral
	case c == STR_LITERAL:
		return StringLiteral
	case c == CHAR_LITERAL:
		return CharLiteral
	case c.IsKeyword():
		return Keyword
	}

	switch t.Ch {
	case '(', ')', '[', ']', ',', ';', ':', '.', DD:
		return Punctuation
	case 0:
		return InvalidKind
	}

	return Operator
}

// IsValid reports whether t was produced by a Lexer.
func (t Token) IsValid() bool { return t.Ch != 0 }

func (t Token) String() string {
	return fmt.Sprintf("%v: %s %q", t.Position, t.Ch, t.Src)
}

// describe renders t the way it appears in "but X found" messages.
func (t Token) describe() string {
	switch {
	case t.Ch == IDENTIFIER:
		return fmt.Sprintf(`"identifier %s"`, strings.ToUpper(t.Src))
	case t.Ch == INT_LITERAL:
		return `"ordinal const"`
	case t.Ch == REAL_LITERAL:
		return `"real const"`
	case t.Ch == STR_LITERAL:
		return `"string const"`
	case t.Ch == CHAR_LITERAL:
		return `"char const"`
	case t.Ch == EOF:
		return `"end of file"`
	case t.Ch.IsKeyword():
		return fmt.Sprintf("%q", strings.ToUpper(t.Src))
	}

	return fmt.Sprintf("%q", t.Src)
}

// FilterErrors returns toks without the lexical error markers. The parser
// expects its input to be filtered this way.
func FilterErrors(toks []Token) []Token {
	r := make([]Token, 0, len(toks))
	for _, v := range toks {
		if v.Ch != ILLEGAL {
			r = append(r, v)
		}
	}
	return r
}
