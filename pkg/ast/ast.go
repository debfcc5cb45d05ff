// Package ast defines the Abstract Syntax Tree node types for C/AL.
//
// Every node references its start and end tokens by value; tokens are not
// owned by the tree — the flat token slice produced by the lexer remains the
// owner and nodes only carry back-references for span queries.
package ast

import (
	"bytes"
	"strconv"

	"github.com/klauskaan/go-cal/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is
	// associated with.
	TokenLiteral() string

	// String returns a string representation of the node for debugging
	// and testing.
	String() string

	// Pos returns the start position of the node in the source code.
	Pos() token.Position

	// End returns the byte offset just past the node in the source code.
	End() int
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action but doesn't produce
// a value.
type Statement interface {
	Node
	statementNode()
}

// CALDocument is the root node of the AST. A document usually owns a single
// Object; source fragments (inline expressions, test snippets) may instead
// carry bare statements.
type CALDocument struct {
	Object     *ObjectDeclaration
	Variables  []*VariableDecl
	Statements []Statement
	EndTok     token.Token
}

func (d *CALDocument) TokenLiteral() string {
	if d.Object != nil {
		return d.Object.TokenLiteral()
	}
	if len(d.Statements) > 0 {
		return d.Statements[0].TokenLiteral()
	}
	return ""
}

func (d *CALDocument) String() string {
	var out bytes.Buffer
	if d.Object != nil {
		out.WriteString(d.Object.String())
	}
	for _, stmt := range d.Statements {
		out.WriteString(stmt.String())
	}
	return out.String()
}

func (d *CALDocument) Pos() token.Position {
	if d.Object != nil {
		return d.Object.Pos()
	}
	if len(d.Statements) > 0 {
		return d.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1, Offset: 0}
}

func (d *CALDocument) End() int { return d.EndTok.End }

// Identifier represents a plain or quoted identifier.
type Identifier struct {
	Token  token.Token // IDENT, QUOTED_IDENT, or a contextual keyword
	Value  string      // the identifier name, quotes stripped for QUOTED_IDENT
	Quoted bool
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) End() int             { return i.Token.End }

// IntegerLiteral represents an integer literal value.
type IntegerLiteral struct {
	Token token.Token // the INT token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }
func (il *IntegerLiteral) Pos() token.Position  { return il.Token.Pos }
func (il *IntegerLiteral) End() int             { return il.Token.End }

// DecimalLiteral represents a decimal literal value.
type DecimalLiteral struct {
	Token token.Token // the FLOAT token
	Value float64
}

func (dl *DecimalLiteral) expressionNode()      {}
func (dl *DecimalLiteral) TokenLiteral() string { return dl.Token.Literal }
func (dl *DecimalLiteral) String() string       { return dl.Token.Literal }
func (dl *DecimalLiteral) Pos() token.Position  { return dl.Token.Pos }
func (dl *DecimalLiteral) End() int             { return dl.Token.End }

// StringLiteral represents a single-quoted string literal. Value holds the
// decoded text (doubled quotes collapsed).
type StringLiteral struct {
	Token token.Token // the STRING token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "'" + sl.Value + "'" }
func (sl *StringLiteral) Pos() token.Position  { return sl.Token.Pos }
func (sl *StringLiteral) End() int             { return sl.Token.End }

// BooleanLiteral represents TRUE or FALSE.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return strconv.FormatBool(bl.Value) }
func (bl *BooleanLiteral) Pos() token.Position  { return bl.Token.Pos }
func (bl *BooleanLiteral) End() int             { return bl.Token.End }
