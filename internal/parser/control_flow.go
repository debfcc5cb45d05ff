package parser

import (
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// parseIfStatement parses IF cond THEN stmt [ELSE stmt] with the C/AL
// dangling-ELSE rule: a semicolon after the then-branch terminates this
// IF's ability to claim an ELSE, delegating the ELSE to the enclosing
// construct.
func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.advance() // IF
	stmt := &ast.IfStatement{Token: ifTok}

	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		p.errorAfterPrevious("Expected condition after IF", ErrExpectedExpression)
	}
	p.consumeExpected(token.THEN, "Expected THEN after IF condition", ErrMissingThen)

	stmt.Consequence = p.parseStatement()

	switch {
	case p.curIs(token.ELSE) && p.previous().Type != token.SEMICOLON:
		// No semicolon intervened: the innermost IF claims the ELSE.
		p.advance()
		stmt.Alternative = p.parseStatement()

	case p.curIs(token.SEMICOLON) && p.peekIs(token.ELSE):
		// The semicolon cut the inner claim; an outer IF whose then-branch
		// is that inner IF picks the ELSE up instead.
		if inner, ok := stmt.Consequence.(*ast.IfStatement); ok && inner.Alternative == nil {
			p.advance() // ;
			p.advance() // ELSE
			stmt.Alternative = p.parseStatement()
		}
	}

	return stmt
}

// parseWhileStatement parses WHILE cond DO stmt.
func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.advance() // WHILE
	stmt := &ast.WhileStatement{Token: whileTok}

	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		p.errorAfterPrevious("Expected condition after WHILE", ErrExpectedExpression)
	}
	p.consumeExpected(token.DO, "Expected DO after WHILE condition", ErrMissingDo)

	stmt.Body = p.parseStatement()
	return stmt
}

// parseForStatement parses FOR i := a TO|DOWNTO b DO stmt.
func (p *Parser) parseForStatement() ast.Statement {
	forTok := p.advance() // FOR
	stmt := &ast.ForStatement{Token: forTok}

	nameTok := p.cur()
	if token.CanBeName(nameTok.Type) {
		p.advance()
		stmt.Variable = &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	} else {
		p.errorAfterPrevious("Expected loop variable after FOR", ErrExpectedIdent)
	}

	p.consumeExpected(token.ASSIGN, "Expected := after FOR loop variable", ErrUnexpectedToken)
	stmt.From = p.parseExpression(LOWEST)

	switch p.cur().Type {
	case token.TO:
		p.advance()
	case token.DOWNTO:
		p.advance()
		stmt.Downto = true
	default:
		p.errorAfterPrevious("Expected TO or DOWNTO in FOR statement", ErrUnexpectedToken)
	}

	stmt.To = p.parseExpression(LOWEST)
	p.consumeExpected(token.DO, "Expected DO after FOR range", ErrMissingDo)

	stmt.Body = p.parseStatement()
	return stmt
}

// parseWithStatement parses WITH rec DO stmt.
func (p *Parser) parseWithStatement() ast.Statement {
	withTok := p.advance() // WITH
	stmt := &ast.WithStatement{Token: withTok}

	stmt.Subject = p.parseExpression(LOWEST)
	if stmt.Subject == nil {
		p.errorAfterPrevious("Expected record after WITH", ErrExpectedExpression)
	}
	p.consumeExpected(token.DO, "Expected DO after WITH subject", ErrMissingDo)

	stmt.Body = p.parseStatement()
	return stmt
}

// parseRepeatStatement parses REPEAT stmts UNTIL cond. When UNTIL is
// missing the error is reported at the REPEAT keyword itself — not at EOF
// or wherever recovery stops — and the partial node keeps its body with a
// nil condition; no UNTIL clause is synthesized.
func (p *Parser) parseRepeatStatement() ast.Statement {
	repeatTok := p.advance() // REPEAT
	stmt := &ast.RepeatStatement{Token: repeatTok}

	for {
		if p.match(token.SEMICOLON) {
			continue
		}
		if p.curIs(token.UNTIL) || p.curIs(token.END) || p.curIs(token.RBRACE) || p.atEnd() {
			break
		}
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			if _, empty := s.(*ast.EmptyStatement); !empty {
				stmt.Body = append(stmt.Body, s)
			}
		}
		if p.pos == before {
			p.unexpectedToken("REPEAT body")
			p.advance()
		}
	}

	if p.match(token.UNTIL) {
		stmt.Condition = p.parseExpression(LOWEST)
		if stmt.Condition == nil {
			p.errorAfterPrevious("Expected condition after UNTIL", ErrExpectedExpression)
		}
	} else {
		p.addError(repeatTok, "Expected UNTIL to close REPEAT statement", ErrMissingUntil)
		// Some sources close a REPEAT with END. Take the END as the
		// recovery point; no UNTIL clause is synthesized.
		p.match(token.END)
	}
	return stmt
}

// parseCaseStatement parses CASE expr OF branches [ELSE stmts] END.
func (p *Parser) parseCaseStatement() ast.Statement {
	caseTok := p.advance() // CASE
	stmt := &ast.CaseStatement{Token: caseTok}

	stmt.Subject = p.parseExpression(LOWEST)
	if stmt.Subject == nil {
		p.errorAfterPrevious("Expected selector expression after CASE", ErrExpectedExpression)
	}
	p.consumeExpected(token.OF, "Expected OF after CASE expression", ErrMissingOf)

	for {
		if p.match(token.SEMICOLON) {
			continue
		}
		if p.curIs(token.END) || p.curIs(token.RBRACE) || p.atEnd() {
			break
		}
		if p.match(token.ELSE) {
			stmt.ElseStatements = p.parseCaseArmStatements(false)
			break
		}
		branch := p.parseCaseBranch()
		if branch != nil {
			stmt.Branches = append(stmt.Branches, branch)
		}
	}

	p.consumeExpected(token.END, "Expected END to close CASE statement", ErrMissingEnd)
	stmt.EndTok = p.previous()
	return stmt
}

// parseCaseBranch parses values ':' statements. On a missing colon a
// partial branch is produced (values populated, statements empty), a
// missing-colon error is recorded, and the cursor recovers at the next
// branch label, ELSE, or END.
func (p *Parser) parseCaseBranch() *ast.CaseBranch {
	branch := &ast.CaseBranch{Token: p.cur()}

	for {
		value := p.parseExpression(LOWEST)
		if value != nil {
			branch.Values = append(branch.Values, value)
		}
		if !p.match(token.COMMA) {
			break
		}
	}

	if !p.match(token.COLON) {
		p.errorAfterPrevious("Expected : after CASE branch value", ErrMissingColon)
		p.recoverToNextCaseBranch()
		return branch
	}

	branch.Statements = p.parseCaseArmStatements(true)
	return branch
}

// parseCaseArmStatements parses the statements of a branch arm or of the
// ELSE arm. Branch arms stop at the next branch label; the ELSE arm runs
// to END.
func (p *Parser) parseCaseArmStatements(stopAtLabel bool) []ast.Statement {
	statements := []ast.Statement{}
	for {
		if p.match(token.SEMICOLON) {
			continue
		}
		if p.curIs(token.END) || p.curIs(token.ELSE) || p.curIs(token.RBRACE) || p.atEnd() {
			break
		}
		if stopAtLabel && p.looksLikeCaseLabel() {
			break
		}
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			if _, empty := s.(*ast.EmptyStatement); !empty {
				statements = append(statements, s)
			}
		}
		if p.pos == before {
			p.unexpectedToken("CASE branch")
			p.advance()
		}
	}
	return statements
}

// looksLikeCaseLabel scans ahead from the cursor for a branch label: a run
// of label tokens (identifiers, literals, commas, :: and . accesses,
// unary minus) reaching a ':' before anything that could only belong to a
// statement. Pure look-ahead, no state change.
func (p *Parser) looksLikeCaseLabel() bool {
	const maxScan = 16
	for n := 0; n < maxScan; n++ {
		tok := p.peekN(n)
		switch tok.Type {
		case token.COLON:
			return n > 0
		case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE,
			token.COMMA, token.SCOPE, token.DOT, token.MINUS:
			// still plausible as part of a label list
		default:
			if !token.CanBeName(tok.Type) {
				return false
			}
		}
	}
	return false
}

// recoverToNextCaseBranch skips forward to a token that is an identifier
// or literal immediately followed by ':' — a real next branch label —
// or to ELSE or END. Identifiers inside call argument lists are followed
// by ',' or ')' and are therefore skipped.
func (p *Parser) recoverToNextCaseBranch() {
	for !p.atEnd() {
		tok := p.cur()
		if tok.Type == token.END || tok.Type == token.ELSE || tok.Type == token.RBRACE {
			return
		}
		if isLabelToken(tok.Type) && p.peekIs(token.COLON) {
			return
		}
		p.advance()
	}
}

// isLabelToken reports whether a token can be a single-token branch label.
func isLabelToken(t token.TokenType) bool {
	switch t {
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE:
		return true
	}
	return token.CanBeName(t)
}
