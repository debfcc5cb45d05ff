package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/klauskaan/go-cal/internal/sanitize"
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// objectKinds maps object kind keywords to AST kinds.
var objectKinds = map[token.TokenType]ast.ObjectKind{
	token.TABLE:     ast.ObjectTable,
	token.CODEUNIT:  ast.ObjectCodeunit,
	token.PAGE:      ast.ObjectPage,
	token.REPORT:    ast.ObjectReport,
	token.XMLPORT:   ast.ObjectXMLport,
	token.QUERY:     ast.ObjectQuery,
	token.MENUSUITE: ast.ObjectMenuSuite,
}

// parseObject parses OBJECT <Kind> <Id> <Name> { sections }.
func (p *Parser) parseObject() *ast.ObjectDeclaration {
	objTok := p.advance() // OBJECT
	obj := &ast.ObjectDeclaration{Token: objTok}

	kindTok := p.cur()
	if kind, ok := objectKinds[kindTok.Type]; ok {
		obj.Kind = kind
		p.advance()
	} else {
		msg := fmt.Sprintf("Expected object kind after OBJECT, found %s",
			sanitize.Value(kindTok.Literal))
		p.addError(kindTok, msg, ErrUnexpectedToken)
	}

	idTok := p.cur()
	if p.match(token.INT) {
		id, err := strconv.Atoi(idTok.Literal)
		if err != nil {
			msg := fmt.Sprintf("Invalid object id %s", sanitize.Value(idTok.Literal))
			p.addError(idTok, msg, ErrInvalidIntegerLiteral)
		}
		obj.ID = id
	} else {
		p.errorAfterPrevious("Expected object id", ErrInvalidIntegerLiteral)
	}

	// The object name runs to the opening brace; exported names may
	// contain unquoted spaces and dots.
	nameParts := []string{}
	for !p.curIs(token.LBRACE) && !p.atEnd() {
		nameParts = append(nameParts, nameValue(p.advance()))
	}
	obj.Name = strings.Join(nameParts, " ")

	p.consumeExpected(token.LBRACE, "Expected { after object header", ErrUnexpectedToken)

	p.parseObjectSections(obj)

	p.consumeExpected(token.RBRACE, "Expected } to close object", ErrMissingRBrace)
	obj.EndTok = p.previous()
	return obj
}

// parseObjectSections dispatches the braced sections of the object body.
// A section keyword opens a section only when the very next token is '{';
// the lexer applies the same predicate, so a bare Code variable arrives as
// an identifier and lands in the error path instead of the dispatcher.
func (p *Parser) parseObjectSections(obj *ast.ObjectDeclaration) {
	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}

		tok := p.cur()
		if tok.Type.IsSectionKeyword() && !p.isFollowedByLeftBrace() {
			p.unexpectedToken("object body")
			p.advance()
			continue
		}

		switch tok.Type {
		case token.OBJECT_PROPERTIES:
			obj.ObjectProperties = p.parsePropertyBlock()
		case token.PROPERTIES:
			obj.Properties = p.parsePropertyBlock()
		case token.FIELDS:
			obj.Fields = p.parseFieldsBlock()
		case token.KEYS:
			obj.Keys = p.parseKeysBlock()
		case token.CONTROLS:
			obj.Controls = p.parseControlsBlock()
		case token.CODE:
			obj.Code = p.parseCodeSection()
		case token.RDLDATA:
			obj.RDLData = p.parseRDLDataSection()
		default:
			p.unexpectedToken("object body")
			p.skipToNextSection()
		}
	}
}

// skipToNextSection advances to the next section keyword or the object's
// closing brace. At least one token is consumed.
func (p *Parser) skipToNextSection() {
	p.advance()
	for !p.atEnd() {
		tok := p.cur()
		if tok.Type == token.RBRACE {
			return
		}
		if tok.Type.IsSectionKeyword() && p.isFollowedByLeftBrace() {
			return
		}
		p.advance()
	}
}

// parseRDLDataSection parses RDLDATA { }. The payload itself is raw and
// already skipped by the lexer; the node records the delimiting tokens so
// the span can be recovered from offsets.
func (p *Parser) parseRDLDataSection() *ast.RDLDataSection {
	section := &ast.RDLDataSection{Token: p.advance()} // RDLDATA

	openTok := p.cur()
	if p.consumeExpected(token.LBRACE, "Expected { after RDLDATA", ErrUnexpectedToken) {
		section.Open = openTok
	}
	p.consumeExpected(token.RBRACE, "Expected } to close RDLDATA section", ErrMissingRBrace)
	section.EndTok = p.previous()
	return section
}
