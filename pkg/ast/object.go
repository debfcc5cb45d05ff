// Package ast defines the object-level AST node types: the outer OBJECT
// declaration, its braced sections, and the declarations inside CODE.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/klauskaan/go-cal/pkg/token"
)

// ObjectKind names the kind of a top-level C/AL object.
type ObjectKind int

const (
	ObjectUnknown ObjectKind = iota
	ObjectTable
	ObjectCodeunit
	ObjectPage
	ObjectReport
	ObjectXMLport
	ObjectQuery
	ObjectMenuSuite
)

// String returns the canonical object kind name.
func (k ObjectKind) String() string {
	switch k {
	case ObjectTable:
		return "Table"
	case ObjectCodeunit:
		return "Codeunit"
	case ObjectPage:
		return "Page"
	case ObjectReport:
		return "Report"
	case ObjectXMLport:
		return "XMLport"
	case ObjectQuery:
		return "Query"
	case ObjectMenuSuite:
		return "MenuSuite"
	}
	return "Unknown"
}

// ObjectDeclaration is the outer OBJECT <Kind> <Id> <Name> { sections }.
type ObjectDeclaration struct {
	Token            token.Token // the OBJECT keyword token
	Kind             ObjectKind
	ID               int
	Name             string
	ObjectProperties *PropertyBlock
	Properties       *PropertyBlock
	Fields           *FieldsBlock
	Keys             *KeysBlock
	Controls         *ControlsBlock
	Code             *CodeSection
	RDLData          *RDLDataSection
	EndTok           token.Token // the closing '}' token
}

func (od *ObjectDeclaration) TokenLiteral() string { return od.Token.Literal }
func (od *ObjectDeclaration) Pos() token.Position  { return od.Token.Pos }
func (od *ObjectDeclaration) End() int             { return od.EndTok.End }
func (od *ObjectDeclaration) String() string {
	return fmt.Sprintf("OBJECT %s %d %s", od.Kind, od.ID, od.Name)
}

// Property is a single Name=Value entry inside a property block. Value
// holds the raw source text of the right-hand side; Trigger is non-nil when
// the value is a code trigger (OnRun=BEGIN ... END).
type Property struct {
	Token   token.Token // first token of the property name
	Name    string
	Value   string
	Trigger *TriggerBody
	EndTok  token.Token
}

func (p *Property) TokenLiteral() string { return p.Token.Literal }
func (p *Property) Pos() token.Position  { return p.Token.Pos }
func (p *Property) End() int             { return p.EndTok.End }
func (p *Property) String() string {
	if p.Trigger != nil {
		return p.Name + "=" + p.Trigger.String()
	}
	return p.Name + "=" + p.Value
}

// TriggerBody is the code payload of a trigger property: optional local
// variables followed by a BEGIN ... END block.
type TriggerBody struct {
	Token     token.Token // VAR or BEGIN
	Variables []*VariableDecl
	Body      *BlockStatement
}

func (tb *TriggerBody) TokenLiteral() string { return tb.Token.Literal }
func (tb *TriggerBody) Pos() token.Position  { return tb.Token.Pos }
func (tb *TriggerBody) End() int {
	if tb.Body != nil {
		return tb.Body.End()
	}
	return tb.Token.End
}
func (tb *TriggerBody) String() string {
	if tb.Body == nil {
		return "BEGIN END"
	}
	return tb.Body.String()
}

// PropertyBlock is a PROPERTIES or OBJECT-PROPERTIES section.
type PropertyBlock struct {
	Token      token.Token // the section keyword token
	Properties []*Property
	EndTok     token.Token
}

func (pb *PropertyBlock) TokenLiteral() string { return pb.Token.Literal }
func (pb *PropertyBlock) Pos() token.Position  { return pb.Token.Pos }
func (pb *PropertyBlock) End() int             { return pb.EndTok.End }
func (pb *PropertyBlock) String() string {
	parts := make([]string, 0, len(pb.Properties))
	for _, p := range pb.Properties {
		parts = append(parts, p.String())
	}
	return pb.Token.Literal + " { " + strings.Join(parts, "; ") + " }"
}

// FieldDecl is one field row of a FIELDS section.
type FieldDecl struct {
	Token      token.Token // the row's '{' token
	No         int
	Enabled    string // the rarely-used enabled flag segment, raw
	Name       string
	Type       DataType
	Properties []*Property
	EndTok     token.Token
}

func (fd *FieldDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FieldDecl) Pos() token.Position  { return fd.Token.Pos }
func (fd *FieldDecl) End() int             { return fd.EndTok.End }
func (fd *FieldDecl) String() string {
	typeName := ""
	if fd.Type != nil {
		typeName = fd.Type.String()
	}
	return fmt.Sprintf("{ %d ;%s;%s ;%s }", fd.No, fd.Enabled, fd.Name, typeName)
}

// FieldsBlock is the FIELDS section of a Table object.
type FieldsBlock struct {
	Token  token.Token // the FIELDS keyword token
	Fields []*FieldDecl
	EndTok token.Token
}

func (fb *FieldsBlock) TokenLiteral() string { return fb.Token.Literal }
func (fb *FieldsBlock) Pos() token.Position  { return fb.Token.Pos }
func (fb *FieldsBlock) End() int             { return fb.EndTok.End }
func (fb *FieldsBlock) String() string {
	return fmt.Sprintf("FIELDS(%d)", len(fb.Fields))
}

// KeyDecl is one key row of a KEYS section.
type KeyDecl struct {
	Token      token.Token // the row's '{' token
	Fields     []string
	Properties []*Property
	EndTok     token.Token
}

func (kd *KeyDecl) TokenLiteral() string { return kd.Token.Literal }
func (kd *KeyDecl) Pos() token.Position  { return kd.Token.Pos }
func (kd *KeyDecl) End() int             { return kd.EndTok.End }
func (kd *KeyDecl) String() string {
	return "{ ;" + strings.Join(kd.Fields, ",") + " }"
}

// KeysBlock is the KEYS section of a Table object.
type KeysBlock struct {
	Token  token.Token
	Keys   []*KeyDecl
	EndTok token.Token
}

func (kb *KeysBlock) TokenLiteral() string { return kb.Token.Literal }
func (kb *KeysBlock) Pos() token.Position  { return kb.Token.Pos }
func (kb *KeysBlock) End() int             { return kb.EndTok.End }
func (kb *KeysBlock) String() string {
	return fmt.Sprintf("KEYS(%d)", len(kb.Keys))
}

// ControlDecl is one control row of a CONTROLS grid. Rows are free-form in
// the corpus; the declaration keeps the leading numeric id when present and
// the raw source span of the row body.
type ControlDecl struct {
	Token  token.Token // the row's '{' token
	ID     int
	Raw    string
	EndTok token.Token
}

func (cd *ControlDecl) TokenLiteral() string { return cd.Token.Literal }
func (cd *ControlDecl) Pos() token.Position  { return cd.Token.Pos }
func (cd *ControlDecl) End() int             { return cd.EndTok.End }
func (cd *ControlDecl) String() string {
	return fmt.Sprintf("{ %d;... }", cd.ID)
}

// ControlsBlock is the CONTROLS section of a Page object.
type ControlsBlock struct {
	Token    token.Token
	Controls []*ControlDecl
	EndTok   token.Token
}

func (cb *ControlsBlock) TokenLiteral() string { return cb.Token.Literal }
func (cb *ControlsBlock) Pos() token.Position  { return cb.Token.Pos }
func (cb *ControlsBlock) End() int             { return cb.EndTok.End }
func (cb *ControlsBlock) String() string {
	return fmt.Sprintf("CONTROLS(%d)", len(cb.Controls))
}

// RDLDataSection is the RDLDATA section of a Report object. The payload is
// opaque; Start/EndTok delimit the raw span in the source.
type RDLDataSection struct {
	Token  token.Token // the RDLDATA keyword token
	Open   token.Token // the '{' token
	EndTok token.Token // the '}' token
}

func (rs *RDLDataSection) TokenLiteral() string { return rs.Token.Literal }
func (rs *RDLDataSection) Pos() token.Position  { return rs.Token.Pos }
func (rs *RDLDataSection) End() int             { return rs.EndTok.End }
func (rs *RDLDataSection) String() string       { return "RDLDATA { ... }" }

// VariableDecl is a single variable declaration inside VAR or a trigger.
// The numeric @id tag from exports is tolerated by the parser and discarded.
type VariableDecl struct {
	Token       token.Token // the name token
	Name        string
	Type        DataType
	WithEvents  bool
	RunOnClient bool
	EndTok      token.Token
}

func (vd *VariableDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDecl) Pos() token.Position  { return vd.Token.Pos }
func (vd *VariableDecl) End() int             { return vd.EndTok.End }
func (vd *VariableDecl) String() string {
	var out bytes.Buffer
	out.WriteString(vd.Name)
	out.WriteString(" : ")
	if vd.Type != nil {
		out.WriteString(vd.Type.String())
	}
	if vd.WithEvents {
		out.WriteString(" WITHEVENTS")
	}
	if vd.RunOnClient {
		out.WriteString(" RUNONCLIENT")
	}
	return out.String()
}

// Parameter is a single procedure parameter.
type Parameter struct {
	Token      token.Token // the name token
	Name       string
	IsVar      bool
	Type       DataType
	WithEvents bool
	EndTok     token.Token
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) Pos() token.Position  { return p.Token.Pos }
func (p *Parameter) End() int             { return p.EndTok.End }
func (p *Parameter) String() string {
	var out bytes.Buffer
	if p.IsVar {
		out.WriteString("VAR ")
	}
	out.WriteString(p.Name)
	out.WriteString(" : ")
	if p.Type != nil {
		out.WriteString(p.Type.String())
	}
	return out.String()
}

// Procedure is a PROCEDURE or TRIGGER declaration with parameters,
// optional return type, local variables, and a body block.
type Procedure struct {
	Token      token.Token // the PROCEDURE or TRIGGER keyword token (or LOCAL)
	Name       string
	IsLocal    bool
	Parameters []*Parameter
	ReturnName string // optional named return value
	ReturnType DataType
	Locals     []*VariableDecl
	Body       *BlockStatement
	EndTok     token.Token
}

func (pr *Procedure) TokenLiteral() string { return pr.Token.Literal }
func (pr *Procedure) Pos() token.Position  { return pr.Token.Pos }
func (pr *Procedure) End() int             { return pr.EndTok.End }
func (pr *Procedure) String() string {
	var out bytes.Buffer
	if pr.IsLocal {
		out.WriteString("LOCAL ")
	}
	if pr.Token.Type == token.TRIGGER {
		out.WriteString("TRIGGER ")
	} else {
		out.WriteString("PROCEDURE ")
	}
	out.WriteString(pr.Name)
	out.WriteString("(")
	params := make([]string, 0, len(pr.Parameters))
	for _, p := range pr.Parameters {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, "; "))
	out.WriteString(")")
	if pr.ReturnType != nil {
		out.WriteString(" : ")
		out.WriteString(pr.ReturnType.String())
	}
	return out.String()
}

// CodeSection is the CODE section: global variables, object-level
// triggers, procedures, and the optional documentation block at the end.
type CodeSection struct {
	Token      token.Token // the CODE keyword token
	Variables  []*VariableDecl
	Triggers   []*Procedure // TRIGGER OnInsert();... declarations
	Procedures []*Procedure
	EndTok     token.Token
}

func (cs *CodeSection) TokenLiteral() string { return cs.Token.Literal }
func (cs *CodeSection) Pos() token.Position  { return cs.Token.Pos }
func (cs *CodeSection) End() int             { return cs.EndTok.End }
func (cs *CodeSection) String() string {
	return fmt.Sprintf("CODE(%d vars, %d triggers, %d procedures)",
		len(cs.Variables), len(cs.Triggers), len(cs.Procedures))
}
