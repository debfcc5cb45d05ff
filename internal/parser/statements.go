package parser

import (
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// stopsStatement reports whether the token type closes the enclosing
// construct rather than starting a statement.
func stopsStatement(t token.TokenType) bool {
	switch t {
	case token.END, token.UNTIL, token.ELSE, token.RBRACE, token.EOF,
		token.SEMICOLON:
		return true
	}
	return false
}

// parseStatementList parses semicolon-separated statements until EOF.
// Used for source fragments without an outer OBJECT.
func (p *Parser) parseStatementList() []ast.Statement {
	statements := []ast.Statement{}
	for !p.atEnd() {
		if p.match(token.SEMICOLON) {
			continue
		}
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			if _, empty := stmt.(*ast.EmptyStatement); !empty {
				statements = append(statements, stmt)
			}
		}
		if p.pos == before {
			// A statement that made no progress would loop forever; the
			// offending token is dropped.
			p.unexpectedToken("statement list")
			p.advance()
		}
	}
	return statements
}

// parseStatement parses a single statement. On a construct-closing token
// it returns an EmptyStatement without consuming: a single-statement body
// of a control-flow construct never consumes a bare END, which is left for
// the enclosing block.
func (p *Parser) parseStatement() ast.Statement {
	if p.checkALOnly() {
		return &ast.EmptyStatement{Token: p.previous()}
	}

	tok := p.cur()
	switch tok.Type {
	case token.VAR:
		// A VAR section in a source fragment; the declarations hang off
		// the document.
		p.advance()
		p.fragmentVars = append(p.fragmentVars, p.parseVariableDecls()...)
		return &ast.EmptyStatement{Token: tok}
	case token.BEGIN:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.CASE:
		return p.parseCaseStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.EXIT:
		return p.parseExitStatement()
	case token.ELSE:
		// An ELSE no IF or CASE claims: the semicolon before it cut the
		// claim chain.
		p.addError(tok, "Expression cannot start with ELSE", ErrDanglingElse)
		p.advance()
		return p.parseStatement()
	default:
		if stopsStatement(tok.Type) {
			return &ast.EmptyStatement{Token: tok}
		}
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement parses an assignment or call statement.
func (p *Parser) parseSimpleStatement() ast.Statement {
	startTok := p.cur()
	target := p.parseExpression(LOWEST)
	if target == nil {
		return &ast.EmptyStatement{Token: startTok}
	}

	switch p.cur().Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.TIMES_ASSIGN, token.DIVIDE_ASSIGN:
		opTok := p.advance()
		value := p.parseExpression(LOWEST)
		if value == nil {
			p.errorAfterPrevious("Expected expression after assignment operator", ErrExpectedExpression)
		}
		return &ast.AssignmentStatement{
			Token:    opTok,
			Target:   target,
			Value:    value,
			Operator: opTok.Type,
		}
	}

	return &ast.CallStatement{Token: startTok, Call: target}
}

// parseBlockStatement parses BEGIN ... END. Statements are separated by
// semicolons; stray separators produce no nodes.
func (p *Parser) parseBlockStatement() ast.Statement {
	beginTok := p.advance() // BEGIN
	block := &ast.BlockStatement{Token: beginTok}

	for {
		if p.match(token.SEMICOLON) {
			continue
		}
		if p.curIs(token.END) || p.atEnd() || p.curIs(token.RBRACE) {
			break
		}
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			if _, empty := stmt.(*ast.EmptyStatement); !empty {
				block.Statements = append(block.Statements, stmt)
			}
		}
		if p.pos == before {
			p.unexpectedToken("block")
			p.advance()
		}
	}

	p.consumeExpected(token.END, "Expected END to close BEGIN block", ErrMissingEnd)
	block.EndTok = p.previous()
	return block
}

// parseExitStatement parses EXIT or EXIT(expr).
func (p *Parser) parseExitStatement() ast.Statement {
	exitTok := p.advance() // EXIT
	stmt := &ast.ExitStatement{Token: exitTok, EndTok: exitTok}

	if p.match(token.LPAREN) {
		if !p.curIs(token.RPAREN) {
			stmt.Value = p.parseExpression(LOWEST)
		}
		p.consumeExpected(token.RPAREN, "Expected ) after EXIT value", ErrMissingRParen)
		stmt.EndTok = p.previous()
	}
	return stmt
}
