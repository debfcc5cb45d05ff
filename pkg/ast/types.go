// Package ast defines the data type annotation nodes for C/AL declarations.
package ast

import (
	"bytes"
	"fmt"

	"github.com/klauskaan/go-cal/pkg/token"
)

// DataType is the interface implemented by all type annotation variants.
type DataType interface {
	Node
	dataTypeNode()
}

// PrimitiveType represents a built-in scalar type, optionally with a
// length: Integer, Boolean, Decimal, DateTime, Text[30], Code[20].
type PrimitiveType struct {
	Token  token.Token // the type name token
	Name   string
	Length int // 0 when no [n] suffix is present
	EndTok token.Token
}

func (pt *PrimitiveType) dataTypeNode()        {}
func (pt *PrimitiveType) TokenLiteral() string { return pt.Token.Literal }
func (pt *PrimitiveType) Pos() token.Position  { return pt.Token.Pos }
func (pt *PrimitiveType) End() int             { return pt.EndTok.End }
func (pt *PrimitiveType) String() string {
	if pt.Length > 0 {
		return fmt.Sprintf("%s[%d]", pt.Name, pt.Length)
	}
	return pt.Name
}

// RecordType represents Record <tableId>, optionally TEMPORARY.
type RecordType struct {
	Token     token.Token // the Record keyword token
	TableID   int
	Temporary bool
	EndTok    token.Token
}

func (rt *RecordType) dataTypeNode()        {}
func (rt *RecordType) TokenLiteral() string { return rt.Token.Literal }
func (rt *RecordType) Pos() token.Position  { return rt.Token.Pos }
func (rt *RecordType) End() int             { return rt.EndTok.End }
func (rt *RecordType) String() string {
	if rt.Temporary {
		return fmt.Sprintf("Record %d TEMPORARY", rt.TableID)
	}
	return fmt.Sprintf("Record %d", rt.TableID)
}

// ArrayType represents ARRAY[n] OF <T>.
type ArrayType struct {
	Token   token.Token // the ARRAY keyword token
	Length  int
	Element DataType
}

func (at *ArrayType) dataTypeNode()        {}
func (at *ArrayType) TokenLiteral() string { return at.Token.Literal }
func (at *ArrayType) Pos() token.Position  { return at.Token.Pos }
func (at *ArrayType) End() int {
	if at.Element != nil {
		return at.Element.End()
	}
	return at.Token.End
}
func (at *ArrayType) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "ARRAY[%d] OF ", at.Length)
	if at.Element != nil {
		out.WriteString(at.Element.String())
	}
	return out.String()
}

// OptionType represents an option type. Declared either as the bare Option
// keyword or as an inline single-quoted value list; OptionString holds the
// decoded comma-separated members, empty for the bare form.
type OptionType struct {
	Token        token.Token
	OptionString string
}

func (ot *OptionType) dataTypeNode()        {}
func (ot *OptionType) TokenLiteral() string { return ot.Token.Literal }
func (ot *OptionType) Pos() token.Position  { return ot.Token.Pos }
func (ot *OptionType) End() int             { return ot.Token.End }
func (ot *OptionType) String() string {
	if ot.OptionString == "" {
		return "Option"
	}
	return "'" + ot.OptionString + "'"
}

// DotNetType represents DotNet "'<assembly>'.<type>". The fields hold the
// decoded payload; a partial node may carry only the fields that parsed.
type DotNetType struct {
	Token             token.Token // the DotNet keyword token
	AssemblyReference string
	TypeName          string
	EndTok            token.Token // the quoted payload token
}

func (dt *DotNetType) dataTypeNode()        {}
func (dt *DotNetType) TokenLiteral() string { return dt.Token.Literal }
func (dt *DotNetType) Pos() token.Position  { return dt.Token.Pos }
func (dt *DotNetType) End() int             { return dt.EndTok.End }
func (dt *DotNetType) String() string {
	return fmt.Sprintf("DotNet \"'%s'.%s\"", dt.AssemblyReference, dt.TypeName)
}

// AutomationType represents
// Automation "{<typelib guid>} <version>:{<class guid>}:'<lib>'.<class>".
type AutomationType struct {
	Token       token.Token // the Automation keyword token
	TypeLibGUID string
	Version     string
	ClassGUID   string
	TypeLibName string
	ClassName   string
	EndTok      token.Token // the quoted payload token
}

func (at *AutomationType) dataTypeNode()        {}
func (at *AutomationType) TokenLiteral() string { return at.Token.Literal }
func (at *AutomationType) Pos() token.Position  { return at.Token.Pos }
func (at *AutomationType) End() int             { return at.EndTok.End }
func (at *AutomationType) String() string {
	return fmt.Sprintf("Automation \"{%s} %s:{%s}:'%s'.%s\"",
		at.TypeLibGUID, at.Version, at.ClassGUID, at.TypeLibName, at.ClassName)
}
