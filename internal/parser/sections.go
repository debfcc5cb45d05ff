package parser

import (
	"strconv"
	"strings"

	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// parsePropertyBlock parses PROPERTIES { Name=Value; ... } and
// OBJECT-PROPERTIES { Date=...; Version List=...; }.
func (p *Parser) parsePropertyBlock() *ast.PropertyBlock {
	block := &ast.PropertyBlock{Token: p.advance()} // section keyword

	p.consumeExpected(token.LBRACE, "Expected { to open property block", ErrUnexpectedToken)

	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}
		prop := p.parseProperty()
		if prop != nil {
			block.Properties = append(block.Properties, prop)
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close property block", ErrMissingRBrace)
	block.EndTok = p.previous()
	return block
}

// parseProperty parses one Name=Value entry. Property names may span
// several tokens (Version List); trigger-valued properties (OnRun=BEGIN
// ... END) parse their code payload with the statement parser.
func (p *Parser) parseProperty() *ast.Property {
	prop := &ast.Property{Token: p.cur()}

	nameParts := []string{}
	for !p.curIs(token.EQ) && !p.curIs(token.SEMICOLON) &&
		!p.curIs(token.RBRACE) && !p.atEnd() {
		nameParts = append(nameParts, p.advance().Literal)
	}
	prop.Name = strings.Join(nameParts, " ")

	if !p.match(token.EQ) {
		p.errorAfterPrevious("Expected = after property name", ErrUnexpectedToken)
		p.skipPastSemicolon()
		prop.EndTok = p.previous()
		return prop
	}

	if p.curIs(token.BEGIN) || p.curIs(token.VAR) {
		prop.Trigger = p.parseTriggerBody()
	} else {
		prop.Value = p.scanPropertyValue()
	}

	prop.EndTok = p.previous()
	return prop
}

// parseTriggerBody parses a trigger property payload: optional local
// variables and a BEGIN ... END block.
func (p *Parser) parseTriggerBody() *ast.TriggerBody {
	body := &ast.TriggerBody{Token: p.cur()}

	if p.match(token.VAR) {
		body.Variables = p.parseVariableDecls()
	}

	if p.curIs(token.BEGIN) {
		block, _ := p.parseBlockStatement().(*ast.BlockStatement)
		body.Body = block
	} else {
		p.errorAfterPrevious("Expected BEGIN to open trigger body", ErrUnexpectedToken)
	}
	return body
}

// scanPropertyValue collects the raw token run of a property value up to
// the terminating ';' at nesting depth zero, or the block's closing brace.
// Values freely contain brackets, parens, and nested braces.
func (p *Parser) scanPropertyValue() string {
	depth := 0
	parts := []string{}
	for !p.atEnd() {
		tok := p.cur()
		switch tok.Type {
		case token.SEMICOLON:
			if depth == 0 {
				return strings.Join(parts, " ")
			}
		case token.LBRACE, token.LPAREN, token.LBRACK:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACK:
			if tok.Type == token.RBRACE && depth == 0 {
				return strings.Join(parts, " ")
			}
			depth--
		}
		parts = append(parts, tok.Literal)
		p.advance()
	}
	return strings.Join(parts, " ")
}

// parseFieldsBlock parses FIELDS { rows }.
func (p *Parser) parseFieldsBlock() *ast.FieldsBlock {
	block := &ast.FieldsBlock{Token: p.advance()} // FIELDS

	p.consumeExpected(token.LBRACE, "Expected { to open FIELDS section", ErrUnexpectedToken)

	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}
		field := p.parseFieldDecl()
		if field != nil {
			block.Fields = append(block.Fields, field)
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close FIELDS section", ErrMissingRBrace)
	block.EndTok = p.previous()
	return block
}

// parseFieldDecl parses one field row:
// { <no> ;<enabled> ;<name> ;<type> [;<properties>] }.
func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	openTok := p.cur()
	if !p.match(token.LBRACE) {
		p.unexpectedToken("FIELDS section")
		p.skipToRowBoundary()
		return nil
	}
	field := &ast.FieldDecl{Token: openTok}

	noTok := p.cur()
	if p.match(token.INT) {
		no, err := strconv.Atoi(noTok.Literal)
		if err != nil {
			p.addError(noTok, "Invalid field number", ErrInvalidIntegerLiteral)
		}
		field.No = no
	} else {
		p.errorAfterPrevious("Expected field number", ErrInvalidIntegerLiteral)
	}
	p.consumeExpected(token.SEMICOLON, "Expected ; after field number", ErrMissingSemicolon)

	field.Enabled = p.scanRowSegment()
	p.consumeExpected(token.SEMICOLON, "Expected ; after enabled flag", ErrMissingSemicolon)

	field.Name = p.scanRowSegment()
	p.consumeExpected(token.SEMICOLON, "Expected ; after field name", ErrMissingSemicolon)

	if !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) {
		field.Type = p.parseDataType()
	}

	if p.match(token.SEMICOLON) {
		for !p.curIs(token.RBRACE) && !p.atEnd() {
			if p.match(token.SEMICOLON) {
				continue
			}
			prop := p.parseProperty()
			if prop != nil {
				field.Properties = append(field.Properties, prop)
			}
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close field declaration", ErrMissingRBrace)
	field.EndTok = p.previous()
	return field
}

// scanRowSegment collects tokens up to the next ';' or row closer. Quoted
// identifiers are unquoted, everything else keeps its literal.
func (p *Parser) scanRowSegment() string {
	parts := []string{}
	for !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.atEnd() {
		parts = append(parts, nameValue(p.advance()))
	}
	return strings.Join(parts, " ")
}

// skipToRowBoundary advances past the current malformed row: to the next
// '{' that opens a row, or the section's '}'. At least one token is
// consumed.
func (p *Parser) skipToRowBoundary() {
	p.advance()
	for !p.atEnd() {
		switch p.cur().Type {
		case token.LBRACE, token.RBRACE:
			return
		}
		p.advance()
	}
}

// parseKeysBlock parses KEYS { rows }.
func (p *Parser) parseKeysBlock() *ast.KeysBlock {
	block := &ast.KeysBlock{Token: p.advance()} // KEYS

	p.consumeExpected(token.LBRACE, "Expected { to open KEYS section", ErrUnexpectedToken)

	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}
		key := p.parseKeyDecl()
		if key != nil {
			block.Keys = append(block.Keys, key)
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close KEYS section", ErrMissingRBrace)
	block.EndTok = p.previous()
	return block
}

// parseKeyDecl parses one key row: { <flags> ;<field>,<field> [;props] }.
func (p *Parser) parseKeyDecl() *ast.KeyDecl {
	openTok := p.cur()
	if !p.match(token.LBRACE) {
		p.unexpectedToken("KEYS section")
		p.skipToRowBoundary()
		return nil
	}
	key := &ast.KeyDecl{Token: openTok}

	// Leading segment before the field list is unused in the corpus.
	p.scanRowSegment()
	p.consumeExpected(token.SEMICOLON, "Expected ; before key field list", ErrMissingSemicolon)

	for !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.atEnd() {
		// Field names may span several tokens (Primary Key).
		parts := []string{}
		for !p.curIs(token.COMMA) && !p.curIs(token.SEMICOLON) &&
			!p.curIs(token.RBRACE) && !p.atEnd() {
			parts = append(parts, nameValue(p.advance()))
		}
		if len(parts) > 0 {
			key.Fields = append(key.Fields, strings.Join(parts, " "))
		}
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.SEMICOLON) {
		for !p.curIs(token.RBRACE) && !p.atEnd() {
			if p.match(token.SEMICOLON) {
				continue
			}
			prop := p.parseProperty()
			if prop != nil {
				key.Properties = append(key.Properties, prop)
			}
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close key declaration", ErrMissingRBrace)
	key.EndTok = p.previous()
	return key
}

// parseControlsBlock parses CONTROLS { rows }. Control rows are free-form
// in the corpus: the leading numeric id is kept, the remainder is captured
// raw with nesting tracked.
func (p *Parser) parseControlsBlock() *ast.ControlsBlock {
	block := &ast.ControlsBlock{Token: p.advance()} // CONTROLS

	p.consumeExpected(token.LBRACE, "Expected { to open CONTROLS section", ErrUnexpectedToken)

	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}
		control := p.parseControlDecl()
		if control != nil {
			block.Controls = append(block.Controls, control)
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close CONTROLS section", ErrMissingRBrace)
	block.EndTok = p.previous()
	return block
}

// parseControlDecl parses one control row, capturing its body raw.
func (p *Parser) parseControlDecl() *ast.ControlDecl {
	openTok := p.cur()
	if !p.match(token.LBRACE) {
		p.unexpectedToken("CONTROLS section")
		p.skipToRowBoundary()
		return nil
	}
	control := &ast.ControlDecl{Token: openTok}

	idTok := p.cur()
	if p.match(token.INT) {
		id, _ := strconv.Atoi(idTok.Literal)
		control.ID = id
	}

	depth := 0
	parts := []string{}
	for !p.atEnd() {
		tok := p.cur()
		if tok.Type == token.RBRACE {
			if depth == 0 {
				break
			}
			depth--
		}
		if tok.Type == token.LBRACE {
			depth++
		}
		parts = append(parts, tok.Literal)
		p.advance()
	}
	control.Raw = strings.Join(parts, " ")

	p.consumeExpected(token.RBRACE, "Expected } to close control declaration", ErrMissingRBrace)
	control.EndTok = p.previous()
	return control
}

// parseCodeSection parses CODE { [VAR globals] procedures... [BEGIN END.] }.
func (p *Parser) parseCodeSection() *ast.CodeSection {
	section := &ast.CodeSection{Token: p.advance()} // CODE

	p.consumeExpected(token.LBRACE, "Expected { to open CODE section", ErrUnexpectedToken)

	for !p.curIs(token.RBRACE) && !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}

		before := p.pos
		switch p.cur().Type {
		case token.VAR:
			p.advance()
			section.Variables = append(section.Variables, p.parseVariableDecls()...)

		case token.TRIGGER:
			trigger := p.parseTriggerDecl()
			if trigger != nil {
				section.Triggers = append(section.Triggers, trigger)
			}

		case token.LOCAL, token.PROCEDURE:
			proc := p.parseProcedure()
			if proc != nil {
				section.Procedures = append(section.Procedures, proc)
			}

		case token.BEGIN:
			// The documentation block closing a CODE section:
			// BEGIN { notes } END.
			p.parseBlockStatement()
			p.match(token.DOT)

		default:
			p.unexpectedToken("CODE section")
			p.advance()
		}
		if p.pos == before {
			p.advance()
		}
	}

	p.consumeExpected(token.RBRACE, "Expected } to close CODE section", ErrMissingRBrace)
	section.EndTok = p.previous()
	return section
}

// parseProcedure parses [LOCAL] PROCEDURE Name[@id](params) [rv] [: Type];
// [VAR locals] BEGIN ... END;
func (p *Parser) parseProcedure() *ast.Procedure {
	startTok := p.cur()
	proc := &ast.Procedure{Token: startTok}

	if p.match(token.LOCAL) {
		proc.IsLocal = true
	}
	p.consumeExpected(token.PROCEDURE, "Expected PROCEDURE", ErrUnexpectedToken)

	p.parseProcedureTail(proc, "procedure")
	return proc
}

// parseTriggerDecl parses an object-level trigger declaration:
// TRIGGER OnInsert[@id](); [VAR locals] BEGIN ... END;
// Triggers share the procedure shape (name, parentheses, locals, body).
func (p *Parser) parseTriggerDecl() *ast.Procedure {
	trigger := &ast.Procedure{Token: p.advance()} // TRIGGER

	p.parseProcedureTail(trigger, "trigger")
	return trigger
}

// parseProcedureTail parses the common tail of procedure and trigger
// declarations: Name[@id](params) [rv] [: Type]; [VAR locals]
// BEGIN ... END;
func (p *Parser) parseProcedureTail(proc *ast.Procedure, what string) {
	nameTok := p.cur()
	if token.CanBeName(nameTok.Type) {
		p.advance()
		proc.Name = nameValue(nameTok)
	} else {
		p.errorAfterPrevious("Expected "+what+" name", ErrExpectedIdent)
	}
	p.discardIDTag()

	if p.consumeExpected(token.LPAREN, "Expected ( after "+what+" name", ErrUnexpectedToken) {
		proc.Parameters = p.parseParameters()
	}

	// Optional return value: a named return variable, a bare : Type, or
	// nothing.
	if token.CanBeName(p.cur().Type) && p.peekIs(token.COLON) {
		proc.ReturnName = nameValue(p.advance())
		p.advance() // :
		proc.ReturnType = p.parseDataType()
	} else if p.match(token.COLON) {
		proc.ReturnType = p.parseDataType()
	}

	p.consumeExpected(token.SEMICOLON, "Expected ; after "+what+" signature", ErrMissingSemicolon)

	if p.match(token.VAR) {
		proc.Locals = p.parseVariableDecls()
	}

	if p.curIs(token.BEGIN) {
		block, _ := p.parseBlockStatement().(*ast.BlockStatement)
		proc.Body = block
	} else {
		p.errorAfterPrevious("Expected BEGIN to open "+what+" body", ErrUnexpectedToken)
	}

	p.consumeExpected(token.SEMICOLON, "Expected ; after "+what+" body", ErrMissingSemicolon)
	proc.EndTok = p.previous()
}
