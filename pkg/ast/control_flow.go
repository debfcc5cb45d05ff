// Package ast defines control flow AST node types for C/AL.
package ast

import (
	"bytes"
	"strings"

	"github.com/klauskaan/go-cal/pkg/token"
)

// BlockStatement represents a BEGIN ... END compound statement.
type BlockStatement struct {
	Token      token.Token // the BEGIN token
	Statements []Statement
	EndTok     token.Token // the END token
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() token.Position  { return bs.Token.Pos }
func (bs *BlockStatement) End() int             { return bs.EndTok.End }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("BEGIN ")
	for i, stmt := range bs.Statements {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(stmt.String())
	}
	out.WriteString(" END")
	return out.String()
}

// IfStatement represents IF cond THEN stmt [ELSE stmt].
// The then-branch is always a single statement; compound bodies are
// explicit BlockStatements.
type IfStatement struct {
	Token       token.Token // the IF token
	Condition   Expression
	Consequence Statement
	Alternative Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }
func (is *IfStatement) End() int {
	if is.Alternative != nil {
		return is.Alternative.End()
	}
	if is.Consequence != nil {
		return is.Consequence.End()
	}
	return is.Token.End
}
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("IF ")
	if is.Condition != nil {
		out.WriteString(is.Condition.String())
	}
	out.WriteString(" THEN ")
	if is.Consequence != nil {
		out.WriteString(is.Consequence.String())
	}
	if is.Alternative != nil {
		out.WriteString(" ELSE ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement represents WHILE cond DO stmt.
type WhileStatement struct {
	Token     token.Token // the WHILE token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WhileStatement) End() int {
	if ws.Body != nil {
		return ws.Body.End()
	}
	return ws.Token.End
}
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString("WHILE ")
	if ws.Condition != nil {
		out.WriteString(ws.Condition.String())
	}
	out.WriteString(" DO ")
	if ws.Body != nil {
		out.WriteString(ws.Body.String())
	}
	return out.String()
}

// ForStatement represents FOR i := a TO|DOWNTO b DO stmt.
type ForStatement struct {
	Token    token.Token // the FOR token
	Variable *Identifier
	From     Expression
	To       Expression
	Downto   bool
	Body     Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() token.Position  { return fs.Token.Pos }
func (fs *ForStatement) End() int {
	if fs.Body != nil {
		return fs.Body.End()
	}
	return fs.Token.End
}
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("FOR ")
	if fs.Variable != nil {
		out.WriteString(fs.Variable.String())
	}
	out.WriteString(" := ")
	if fs.From != nil {
		out.WriteString(fs.From.String())
	}
	if fs.Downto {
		out.WriteString(" DOWNTO ")
	} else {
		out.WriteString(" TO ")
	}
	if fs.To != nil {
		out.WriteString(fs.To.String())
	}
	out.WriteString(" DO ")
	if fs.Body != nil {
		out.WriteString(fs.Body.String())
	}
	return out.String()
}

// WithStatement represents WITH rec DO stmt.
type WithStatement struct {
	Token   token.Token // the WITH token
	Subject Expression
	Body    Statement
}

func (ws *WithStatement) statementNode()       {}
func (ws *WithStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WithStatement) Pos() token.Position  { return ws.Token.Pos }
func (ws *WithStatement) End() int {
	if ws.Body != nil {
		return ws.Body.End()
	}
	return ws.Token.End
}
func (ws *WithStatement) String() string {
	var out bytes.Buffer
	out.WriteString("WITH ")
	if ws.Subject != nil {
		out.WriteString(ws.Subject.String())
	}
	out.WriteString(" DO ")
	if ws.Body != nil {
		out.WriteString(ws.Body.String())
	}
	return out.String()
}

// CaseBranch is one labeled arm of a CASE statement. Values is the ordered
// comma-separated label list; Statements is the arm body.
type CaseBranch struct {
	Token      token.Token // first token of the first value
	Values     []Expression
	Statements []Statement
}

func (cb *CaseBranch) TokenLiteral() string { return cb.Token.Literal }
func (cb *CaseBranch) Pos() token.Position  { return cb.Token.Pos }
func (cb *CaseBranch) End() int {
	if n := len(cb.Statements); n > 0 {
		return cb.Statements[n-1].End()
	}
	if n := len(cb.Values); n > 0 {
		return cb.Values[n-1].End()
	}
	return cb.Token.End
}
func (cb *CaseBranch) String() string {
	var out bytes.Buffer
	vals := make([]string, 0, len(cb.Values))
	for _, v := range cb.Values {
		vals = append(vals, v.String())
	}
	out.WriteString(strings.Join(vals, ", "))
	out.WriteString(": ")
	for i, stmt := range cb.Statements {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

// CaseStatement represents CASE expr OF branches [ELSE stmts] END.
// ElseStatements is a list: multiple statements are allowed between ELSE
// and END without an explicit block.
type CaseStatement struct {
	Token          token.Token // the CASE token
	Subject        Expression
	Branches       []*CaseBranch
	ElseStatements []Statement
	EndTok         token.Token // the END token
}

func (cs *CaseStatement) statementNode()       {}
func (cs *CaseStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CaseStatement) Pos() token.Position  { return cs.Token.Pos }
func (cs *CaseStatement) End() int             { return cs.EndTok.End }
func (cs *CaseStatement) String() string {
	var out bytes.Buffer
	out.WriteString("CASE ")
	if cs.Subject != nil {
		out.WriteString(cs.Subject.String())
	}
	out.WriteString(" OF ")
	for i, br := range cs.Branches {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(br.String())
	}
	if len(cs.ElseStatements) > 0 {
		out.WriteString(" ELSE ")
		for i, stmt := range cs.ElseStatements {
			if i > 0 {
				out.WriteString("; ")
			}
			out.WriteString(stmt.String())
		}
	}
	out.WriteString(" END")
	return out.String()
}

// RepeatStatement represents REPEAT stmts UNTIL cond. Condition is nil on
// the partial node produced when UNTIL is missing.
type RepeatStatement struct {
	Token     token.Token // the REPEAT token
	Body      []Statement
	Condition Expression
}

func (rs *RepeatStatement) statementNode()       {}
func (rs *RepeatStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RepeatStatement) Pos() token.Position  { return rs.Token.Pos }
func (rs *RepeatStatement) End() int {
	if rs.Condition != nil {
		return rs.Condition.End()
	}
	if n := len(rs.Body); n > 0 {
		return rs.Body[n-1].End()
	}
	return rs.Token.End
}
func (rs *RepeatStatement) String() string {
	var out bytes.Buffer
	out.WriteString("REPEAT ")
	for i, stmt := range rs.Body {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(stmt.String())
	}
	out.WriteString(" UNTIL ")
	if rs.Condition != nil {
		out.WriteString(rs.Condition.String())
	}
	return out.String()
}

// ExitStatement represents EXIT or EXIT(expr).
type ExitStatement struct {
	Token  token.Token // the EXIT token
	Value  Expression  // nil for a bare EXIT
	EndTok token.Token
}

func (es *ExitStatement) statementNode()       {}
func (es *ExitStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExitStatement) Pos() token.Position  { return es.Token.Pos }
func (es *ExitStatement) End() int             { return es.EndTok.End }
func (es *ExitStatement) String() string {
	if es.Value == nil {
		return "EXIT"
	}
	return "EXIT(" + es.Value.String() + ")"
}

// EmptyStatement represents a statement position holding no statement, such
// as a control-flow body that contains only a comment.
type EmptyStatement struct {
	Token token.Token // the token at the empty position
}

func (es *EmptyStatement) statementNode()       {}
func (es *EmptyStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EmptyStatement) Pos() token.Position  { return es.Token.Pos }
func (es *EmptyStatement) End() int             { return es.Token.Pos.Offset }
func (es *EmptyStatement) String() string       { return "" }
