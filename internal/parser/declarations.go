package parser

import (
	"fmt"

	"github.com/klauskaan/go-cal/internal/sanitize"
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// parseVariableDecls parses the declarations of a VAR section (global,
// procedure-local, or trigger-local). The VAR keyword itself has already
// been consumed. The section ends at the first token that cannot start a
// declaration.
func (p *Parser) parseVariableDecls() []*ast.VariableDecl {
	decls := []*ast.VariableDecl{}

	for {
		tok := p.cur()

		// TRIGGER opens the next object-level trigger declaration.
		if tok.Type == token.TRIGGER {
			return decls
		}

		if token.CanBeName(tok.Type) {
			if decl := p.parseVariableDecl(); decl != nil {
				decls = append(decls, decl)
			}
			continue
		}

		// A reserved keyword in name position is an error unless it ends
		// the section (BEGIN, PROCEDURE, ...). The declaration shape —
		// keyword followed by @id or ':' — gives the misuse away.
		if token.IsStatementStarterKeyword(tok.Type) &&
			(p.peekIs(token.COLON) || p.peekIs(token.AT)) {
			msg := fmt.Sprintf("Reserved keyword %s cannot be used as a variable name",
				sanitize.Value(tok.Literal))
			p.addError(tok, msg, ErrReservedKeywordAsName)
			p.skipPastSemicolon()
			continue
		}

		return decls
	}
}

// parseVariableDecl parses name[@id] : DataType [WITHEVENTS] [RUNONCLIENT] ;
// The numeric @id tag is tolerated and discarded.
func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	nameTok := p.advance()
	decl := &ast.VariableDecl{Token: nameTok, Name: nameValue(nameTok)}

	p.discardIDTag()
	p.consumeExpected(token.COLON, "Expected : after variable name", ErrMissingColon)

	decl.Type = p.parseDataType()

	for {
		switch p.cur().Type {
		case token.WITHEVENTS:
			if p.allowsWithEvents(decl.Type) {
				decl.WithEvents = true
			}
			p.advance()
			continue
		case token.RUNONCLIENT:
			p.advance()
			decl.RunOnClient = true
			continue
		}
		break
	}

	p.consumeExpected(token.SEMICOLON, "Expected ; after variable declaration", ErrMissingSemicolon)
	decl.EndTok = p.previous()
	return decl
}

// parseParameters parses a procedure parameter list between parentheses.
// The opening '(' has already been consumed; the closing ')' is consumed
// here. Keywords that are not statement-starting reserved words (Table,
// Record, Code, Page, Report, ...) are accepted as parameter names.
func (p *Parser) parseParameters() []*ast.Parameter {
	params := []*ast.Parameter{}

	for !p.curIs(token.RPAREN) && !p.atEnd() {
		param := p.parseParameter()
		if param != nil {
			params = append(params, param)
		}
		if p.match(token.SEMICOLON) {
			continue
		}
		break
	}

	p.consumeExpected(token.RPAREN, "Expected ) after parameter list", ErrMissingRParen)
	return params
}

// parseParameter parses [VAR] name[@id] : DataType [WITHEVENTS].
func (p *Parser) parseParameter() *ast.Parameter {
	param := &ast.Parameter{Token: p.cur()}

	if p.curIs(token.VAR) {
		p.advance()
		param.IsVar = true
		param.Token = p.cur()
	}

	nameTok := p.cur()
	if !token.CanBeName(nameTok.Type) {
		p.unexpectedToken("parameter list")
		p.skipToParameterBoundary()
		return nil
	}
	p.advance()
	param.Name = nameValue(nameTok)

	p.discardIDTag()
	p.consumeExpected(token.COLON, "Expected : after parameter name", ErrMissingColon)

	param.Type = p.parseDataType()

	if p.curIs(token.WITHEVENTS) {
		if p.allowsWithEvents(param.Type) {
			param.WithEvents = true
		}
		p.advance()
	}

	param.EndTok = p.previous()
	return param
}

// allowsWithEvents reports whether the WITHEVENTS modifier at the cursor
// is legal for the parsed type. The modifier belongs to Automation and
// DotNet declarations only; anywhere else it is an unexpected-token error.
func (p *Parser) allowsWithEvents(dataType ast.DataType) bool {
	switch dataType.(type) {
	case *ast.AutomationType, *ast.DotNetType:
		return true
	}
	p.addError(p.cur(),
		"WITHEVENTS is only allowed on Automation and DotNet declarations",
		ErrUnexpectedToken)
	return false
}

// discardIDTag consumes an optional @<number> declaration tag.
func (p *Parser) discardIDTag() {
	if !p.curIs(token.AT) {
		return
	}
	p.advance()
	if !p.match(token.INT) {
		p.errorAfterPrevious("Expected numeric id after @", ErrInvalidIntegerLiteral)
	}
}

// skipPastSemicolon advances past the next semicolon, stopping early at a
// construct closer. At least one token is consumed when the cursor is not
// already at a closer.
func (p *Parser) skipPastSemicolon() {
	for !p.atEnd() {
		switch p.cur().Type {
		case token.SEMICOLON:
			p.advance()
			return
		case token.END, token.RBRACE, token.RPAREN:
			return
		}
		p.advance()
	}
}

// skipToParameterBoundary advances to the next ';' or ')' of the
// parameter list, consuming the offending tokens in between.
func (p *Parser) skipToParameterBoundary() {
	for !p.atEnd() {
		switch p.cur().Type {
		case token.SEMICOLON, token.RPAREN:
			return
		}
		p.advance()
	}
}

// nameValue returns the declared name for a name token, stripping quotes
// from quoted identifiers.
func nameValue(tok token.Token) string {
	if tok.Type == token.QUOTED_IDENT {
		return token.UnquoteIdent(tok.Literal)
	}
	return tok.Literal
}
