package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/klauskaan/go-cal/internal/sanitize"
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// parseDataType parses a type annotation: a primitive (optionally with a
// [n] length), Record <id>, ARRAY[n] OF <T>, an inline option string, a
// DotNet reference, or an Automation reference. Invalid interior payloads
// record an error but leave a partial node with the fields that parsed.
func (p *Parser) parseDataType() ast.DataType {
	tok := p.cur()

	switch tok.Type {
	case token.TEMPORARY:
		// TEMPORARY Record <id>
		p.advance()
		if p.curIs(token.RECORD) {
			rec, _ := p.parseRecordType().(*ast.RecordType)
			if rec != nil {
				rec.Temporary = true
				rec.Token = tok
			}
			return rec
		}
		p.errorAfterPrevious("Expected Record after TEMPORARY", ErrExpectedType)
		return nil

	case token.RECORD:
		return p.parseRecordType()

	case token.ARRAY:
		return p.parseArrayType()

	case token.OPTION:
		p.advance()
		return &ast.OptionType{Token: tok}

	case token.STRING:
		// Inline option type: 'A,B,C'.
		p.advance()
		return &ast.OptionType{Token: tok, OptionString: token.UnquoteString(tok.Literal)}

	case token.DOTNET:
		return p.parseDotNetType()

	case token.AUTOMATION:
		return p.parseAutomationType()

	default:
		if token.CanBeName(tok.Type) {
			return p.parsePrimitiveType()
		}
		msg := fmt.Sprintf("Expected type name, found %s", sanitize.Value(tok.Literal))
		p.addError(tok, msg, ErrExpectedType)
		return nil
	}
}

// parsePrimitiveType parses a named type with an optional [n] length:
// Integer, Boolean, Text[30], Code[20].
func (p *Parser) parsePrimitiveType() ast.DataType {
	nameTok := p.advance()
	prim := &ast.PrimitiveType{Token: nameTok, Name: nameValue(nameTok), EndTok: nameTok}

	if p.match(token.LBRACK) {
		lenTok := p.cur()
		if p.match(token.INT) {
			length, err := strconv.Atoi(lenTok.Literal)
			if err != nil || length <= 0 {
				msg := fmt.Sprintf("Invalid length %s in type annotation", sanitize.Value(lenTok.Literal))
				p.addError(lenTok, msg, ErrInvalidIntegerLiteral)
			}
			prim.Length = length
		} else {
			p.errorAfterPrevious("Expected length after [ in type annotation", ErrInvalidIntegerLiteral)
		}
		p.consumeExpected(token.RBRACK, "Expected ] after type length", ErrMissingRBracket)
		prim.EndTok = p.previous()
	}
	return prim
}

// parseRecordType parses Record <tableId> [TEMPORARY].
func (p *Parser) parseRecordType() ast.DataType {
	recTok := p.advance() // RECORD
	rec := &ast.RecordType{Token: recTok, EndTok: recTok}

	idTok := p.cur()
	if p.match(token.INT) {
		id, err := strconv.Atoi(idTok.Literal)
		if err != nil {
			msg := fmt.Sprintf("Invalid table number %s", sanitize.Value(idTok.Literal))
			p.addError(idTok, msg, ErrInvalidIntegerLiteral)
		}
		rec.TableID = id
		rec.EndTok = idTok
	} else {
		p.errorAfterPrevious("Expected table number after Record", ErrInvalidIntegerLiteral)
	}

	if p.curIs(token.TEMPORARY) {
		rec.Temporary = true
		rec.EndTok = p.advance()
	}
	return rec
}

// parseArrayType parses ARRAY[n] OF <T>.
func (p *Parser) parseArrayType() ast.DataType {
	arrTok := p.advance() // ARRAY
	arr := &ast.ArrayType{Token: arrTok}

	p.consumeExpected(token.LBRACK, "Expected [ after ARRAY", ErrUnexpectedToken)
	lenTok := p.cur()
	if p.match(token.INT) {
		length, err := strconv.Atoi(lenTok.Literal)
		if err != nil || length <= 0 {
			msg := fmt.Sprintf("Invalid array length %s", sanitize.Value(lenTok.Literal))
			p.addError(lenTok, msg, ErrInvalidIntegerLiteral)
		}
		arr.Length = length
	} else {
		p.errorAfterPrevious("Expected array length after [", ErrInvalidIntegerLiteral)
	}
	p.consumeExpected(token.RBRACK, "Expected ] after array length", ErrMissingRBracket)
	p.consumeExpected(token.OF, "Expected OF after array length", ErrMissingOf)

	arr.Element = p.parseDataType()
	return arr
}

// parseDotNetType parses DotNet "'<assembly>'.<type>". The lexer delivers
// the quoted payload byte-for-byte; the interior is parsed here with ''
// decoded to a single quote.
func (p *Parser) parseDotNetType() ast.DataType {
	dnTok := p.advance() // DOTNET
	dn := &ast.DotNetType{Token: dnTok, EndTok: dnTok}

	payloadTok := p.cur()
	if !p.match(token.QUOTED_IDENT) {
		p.errorAfterPrevious("Expected assembly-qualified type literal after DotNet", ErrInvalidTypeLiteral)
		return dn
	}
	dn.EndTok = payloadTok

	assembly, typeName, err := parseDotNetPayload(token.UnquoteIdent(payloadTok.Literal))
	dn.AssemblyReference = assembly
	dn.TypeName = typeName
	if err != nil {
		msg := fmt.Sprintf("Malformed DotNet type literal %s: %s",
			sanitize.Value(payloadTok.Literal), err)
		p.addError(payloadTok, msg, ErrInvalidTypeLiteral)
	}
	return dn
}

// parseDotNetPayload splits '<assembly>'.<type> into its parts. The
// assembly reference is quoted with '' escaping; the type name is the
// remainder after the dot.
func parseDotNetPayload(payload string) (assembly, typeName string, err error) {
	rest, ok := strings.CutPrefix(payload, "'")
	if !ok {
		return "", payload, fmt.Errorf("missing quoted assembly reference")
	}
	assembly, rest, err = scanQuotedRun(rest)
	if err != nil {
		return assembly, "", err
	}
	rest, ok = strings.CutPrefix(rest, ".")
	if !ok {
		return assembly, rest, fmt.Errorf("missing . between assembly and type name")
	}
	if rest == "" {
		return assembly, "", fmt.Errorf("missing type name")
	}
	return assembly, rest, nil
}

// parseAutomationType parses
// Automation "{<typelib guid>} <version>:{<class guid>}:'<lib>'.<class>".
// Both GUIDs are validated; a malformed payload records an error but the
// partial node keeps the fields that were parsed.
func (p *Parser) parseAutomationType() ast.DataType {
	autoTok := p.advance() // AUTOMATION
	auto := &ast.AutomationType{Token: autoTok, EndTok: autoTok}

	payloadTok := p.cur()
	if !p.match(token.QUOTED_IDENT) {
		p.errorAfterPrevious("Expected automation reference literal after Automation", ErrInvalidTypeLiteral)
		return auto
	}
	auto.EndTok = payloadTok

	if err := parseAutomationPayload(token.UnquoteIdent(payloadTok.Literal), auto); err != nil {
		msg := fmt.Sprintf("Malformed Automation type literal %s: %s",
			sanitize.Value(payloadTok.Literal), err)
		p.addError(payloadTok, msg, ErrInvalidTypeLiteral)
	}
	return auto
}

// parseAutomationPayload fills the automation fields from the decoded
// payload, returning the first structural error encountered.
func parseAutomationPayload(payload string, auto *ast.AutomationType) error {
	rest, ok := strings.CutPrefix(payload, "{")
	if !ok {
		return fmt.Errorf("missing type library GUID")
	}
	guid, rest, found := strings.Cut(rest, "}")
	if !found {
		return fmt.Errorf("unterminated type library GUID")
	}
	auto.TypeLibGUID = guid
	if _, err := uuid.FromString(guid); err != nil {
		return fmt.Errorf("invalid type library GUID")
	}

	rest = strings.TrimLeft(rest, " ")
	version, rest, found := strings.Cut(rest, ":")
	if !found {
		return fmt.Errorf("missing version")
	}
	auto.Version = version

	rest, ok = strings.CutPrefix(rest, "{")
	if !ok {
		return fmt.Errorf("missing class GUID")
	}
	guid, rest, found = strings.Cut(rest, "}")
	if !found {
		return fmt.Errorf("unterminated class GUID")
	}
	auto.ClassGUID = guid
	if _, err := uuid.FromString(guid); err != nil {
		return fmt.Errorf("invalid class GUID")
	}

	rest, ok = strings.CutPrefix(rest, ":")
	if !ok {
		return fmt.Errorf("missing : before type library name")
	}
	rest, ok = strings.CutPrefix(rest, "'")
	if !ok {
		return fmt.Errorf("missing quoted type library name")
	}
	libName, rest, err := scanQuotedRun(rest)
	if err != nil {
		return err
	}
	auto.TypeLibName = libName

	rest, ok = strings.CutPrefix(rest, ".")
	if !ok {
		return fmt.Errorf("missing . before class name")
	}
	if rest == "" {
		return fmt.Errorf("missing class name")
	}
	auto.ClassName = rest
	return nil
}

// scanQuotedRun reads a single-quoted run whose opening quote has already
// been stripped. Doubled quotes decode to one quote. Returns the decoded
// text and the remainder after the closing quote.
func scanQuotedRun(s string) (value, rest string, err error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return b.String(), s[i+1:], nil
	}
	return b.String(), "", fmt.Errorf("unterminated quoted run")
}
