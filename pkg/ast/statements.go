package ast

import (
	"bytes"

	"github.com/klauskaan/go-cal/pkg/token"
)

// AssignmentStatement represents an assignment, simple or compound.
// Examples:
//
//	x := 10;
//	Total += Amount;
//	Rec.Name := 'x';
//	Arr[i] := 42;
type AssignmentStatement struct {
	Token    token.Token // the assignment operator token
	Target   Expression
	Value    Expression
	Operator token.TokenType // ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, TIMES_ASSIGN, DIVIDE_ASSIGN
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) Pos() token.Position {
	if as.Target != nil {
		return as.Target.Pos()
	}
	return as.Token.Pos
}
func (as *AssignmentStatement) End() int {
	if as.Value != nil {
		return as.Value.End()
	}
	return as.Token.End
}
func (as *AssignmentStatement) String() string {
	var out bytes.Buffer
	if as.Target != nil {
		out.WriteString(as.Target.String())
	}
	out.WriteString(" " + as.Token.Literal + " ")
	if as.Value != nil {
		out.WriteString(as.Value.String())
	}
	return out.String()
}

// CallStatement represents an expression used as a statement — a procedure
// call or a bare member invocation like Rec.MODIFY.
type CallStatement struct {
	Token token.Token // first token of the expression
	Call  Expression
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CallStatement) Pos() token.Position  { return cs.Token.Pos }
func (cs *CallStatement) End() int {
	if cs.Call != nil {
		return cs.Call.End()
	}
	return cs.Token.End
}
func (cs *CallStatement) String() string {
	if cs.Call == nil {
		return ""
	}
	return cs.Call.String()
}
