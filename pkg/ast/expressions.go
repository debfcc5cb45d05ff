package ast

import (
	"bytes"
	"strings"

	"github.com/klauskaan/go-cal/pkg/token"
)

// UnaryExpression represents a prefix expression: -x, +x, NOT x.
type UnaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() token.Position  { return ue.Token.Pos }
func (ue *UnaryExpression) End() int {
	if ue.Operand != nil {
		return ue.Operand.End()
	}
	return ue.Token.End
}
func (ue *UnaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(ue.Operator)
	if len(ue.Operator) > 1 {
		out.WriteString(" ")
	}
	if ue.Operand != nil {
		out.WriteString(ue.Operand.String())
	}
	out.WriteString(")")
	return out.String()
}

// BinaryExpression represents an infix expression: a + b, x AND y, i <= n.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() token.Position {
	if be.Left != nil {
		return be.Left.Pos()
	}
	return be.Token.Pos
}
func (be *BinaryExpression) End() int {
	if be.Right != nil {
		return be.Right.End()
	}
	return be.Token.End
}
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if be.Left != nil {
		out.WriteString(be.Left.String())
	}
	out.WriteString(" " + be.Operator + " ")
	if be.Right != nil {
		out.WriteString(be.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

// MemberExpression represents field or method access: Rec.Name.
type MemberExpression struct {
	Token  token.Token // the '.' token
	Object Expression
	Member *Identifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) Pos() token.Position {
	if me.Object != nil {
		return me.Object.Pos()
	}
	return me.Token.Pos
}
func (me *MemberExpression) End() int {
	if me.Member != nil {
		return me.Member.End()
	}
	return me.Token.End
}
func (me *MemberExpression) String() string {
	var out bytes.Buffer
	if me.Object != nil {
		out.WriteString(me.Object.String())
	}
	out.WriteString(".")
	if me.Member != nil {
		out.WriteString(me.Member.String())
	}
	return out.String()
}

// NamespaceExpression represents scope access: DATABASE::Customer,
// Status::Open.
type NamespaceExpression struct {
	Token     token.Token // the '::' token
	Namespace Expression
	Member    Expression
}

func (ne *NamespaceExpression) expressionNode()      {}
func (ne *NamespaceExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NamespaceExpression) Pos() token.Position {
	if ne.Namespace != nil {
		return ne.Namespace.Pos()
	}
	return ne.Token.Pos
}
func (ne *NamespaceExpression) End() int {
	if ne.Member != nil {
		return ne.Member.End()
	}
	return ne.Token.End
}
func (ne *NamespaceExpression) String() string {
	var out bytes.Buffer
	if ne.Namespace != nil {
		out.WriteString(ne.Namespace.String())
	}
	out.WriteString("::")
	if ne.Member != nil {
		out.WriteString(ne.Member.String())
	}
	return out.String()
}

// IndexExpression represents array element access: Arr[i], Matrix[i,j].
type IndexExpression struct {
	Token   token.Token // the '[' token
	Left    Expression
	Indices []Expression
	EndTok  token.Token // the ']' token
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() token.Position {
	if ie.Left != nil {
		return ie.Left.Pos()
	}
	return ie.Token.Pos
}
func (ie *IndexExpression) End() int { return ie.EndTok.End }
func (ie *IndexExpression) String() string {
	var out bytes.Buffer
	if ie.Left != nil {
		out.WriteString(ie.Left.String())
	}
	out.WriteString("[")
	parts := make([]string, 0, len(ie.Indices))
	for _, idx := range ie.Indices {
		parts = append(parts, idx.String())
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString("]")
	return out.String()
}

// CallExpression represents a function or method invocation.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
	EndTok    token.Token // the ')' token
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() token.Position {
	if ce.Function != nil {
		return ce.Function.Pos()
	}
	return ce.Token.Pos
}
func (ce *CallExpression) End() int { return ce.EndTok.End }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	if ce.Function != nil {
		out.WriteString(ce.Function.String())
	}
	out.WriteString("(")
	args := make([]string, 0, len(ce.Arguments))
	for _, arg := range ce.Arguments {
		args = append(args, arg.String())
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// ParenExpression represents an explicitly parenthesized expression.
type ParenExpression struct {
	Token  token.Token // the '(' token
	Inner  Expression
	EndTok token.Token // the ')' token
}

func (pe *ParenExpression) expressionNode()      {}
func (pe *ParenExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *ParenExpression) Pos() token.Position  { return pe.Token.Pos }
func (pe *ParenExpression) End() int             { return pe.EndTok.End }
func (pe *ParenExpression) String() string {
	if pe.Inner == nil {
		return "()"
	}
	return "(" + pe.Inner.String() + ")"
}
