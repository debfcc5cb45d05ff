package parser

import (
	"fmt"
	"strconv"

	"github.com/klauskaan/go-cal/internal/sanitize"
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// getPrecedence returns the infix precedence of a token type.
func getPrecedence(t token.TokenType) int {
	if prec, ok := precedences[t]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression parses an expression with Pratt-style precedence
// climbing. On entry the cursor is at the first token of the expression;
// on exit it is just past it. Returns nil after recording an error when no
// expression can start at the cursor.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		prec := getPrecedence(p.cur().Type)
		if prec <= minPrec {
			return left
		}
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
}

// parsePrefix parses a primary or unary-prefixed expression.
func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()

	switch tok.Type {
	case token.INT:
		p.advance()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			msg := fmt.Sprintf("Invalid integer literal %s", sanitize.Value(tok.Literal))
			p.addError(tok, msg, ErrInvalidIntegerLiteral)
		}
		return &ast.IntegerLiteral{Token: tok, Value: value}

	case token.FLOAT:
		p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			msg := fmt.Sprintf("Invalid decimal literal %s", sanitize.Value(tok.Literal))
			p.addError(tok, msg, ErrInvalidIntegerLiteral)
		}
		return &ast.DecimalLiteral{Token: tok, Value: value}

	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: token.UnquoteString(tok.Literal)}

	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}

	case token.QUOTED_IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: token.UnquoteIdent(tok.Literal), Quoted: true}

	case token.MINUS, token.PLUS, token.NOT:
		p.advance()
		operand := p.parseExpression(PREFIX)
		if operand == nil {
			p.errorAfterPrevious(
				fmt.Sprintf("Expected expression after unary %s", sanitize.Value(tok.Literal)),
				ErrExpectedExpression)
		}
		return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Operand: operand}

	case token.LPAREN:
		p.advance()
		inner := p.parseExpression(LOWEST)
		p.consumeExpected(token.RPAREN, "Expected ) to close parenthesized expression", ErrMissingRParen)
		return &ast.ParenExpression{Token: tok, Inner: inner, EndTok: p.previous()}

	default:
		if token.CanBeName(tok.Type) {
			p.advance()
			return &ast.Identifier{Token: tok, Value: tok.Literal}
		}
		msg := fmt.Sprintf("Expected expression, found %s", sanitize.Value(tok.Literal))
		if tok.Type == token.EOF {
			msg = "Expected expression, found end of input"
		}
		p.addError(tok, msg, ErrExpectedExpression)
		// Guaranteed progress: the offending token is consumed.
		if !p.atEnd() {
			p.advance()
		}
		return nil
	}
}

// parseInfix parses one infix construct extending left. The cursor is at
// the operator token.
func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	tok := p.cur()

	switch tok.Type {
	case token.DOT:
		p.advance()
		memberTok := p.cur()
		if !token.CanBeName(memberTok.Type) {
			p.errorAfterPrevious("Expected member name after .", ErrExpectedIdent)
			return &ast.MemberExpression{Token: tok, Object: left}
		}
		p.advance()
		member := &ast.Identifier{Token: memberTok, Value: memberTok.Literal}
		if memberTok.Type == token.QUOTED_IDENT {
			member.Value = token.UnquoteIdent(memberTok.Literal)
			member.Quoted = true
		}
		return &ast.MemberExpression{Token: tok, Object: left, Member: member}

	case token.SCOPE:
		p.advance()
		member := p.parseScopeMember()
		return &ast.NamespaceExpression{Token: tok, Namespace: left, Member: member}

	case token.LBRACK:
		p.advance()
		indices := []ast.Expression{}
		if !p.curIs(token.RBRACK) {
			for {
				idx := p.parseExpression(LOWEST)
				if idx != nil {
					indices = append(indices, idx)
				}
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consumeExpected(token.RBRACK, "Expected ] to close index expression", ErrMissingRBracket)
		return &ast.IndexExpression{Token: tok, Left: left, Indices: indices, EndTok: p.previous()}

	case token.LPAREN:
		p.advance()
		args := []ast.Expression{}
		if !p.curIs(token.RPAREN) {
			for {
				arg := p.parseExpression(LOWEST)
				if arg != nil {
					args = append(args, arg)
				}
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consumeExpected(token.RPAREN, "Expected ) to close argument list", ErrMissingRParen)
		return &ast.CallExpression{Token: tok, Function: left, Arguments: args, EndTok: p.previous()}

	default:
		// Binary operator.
		p.advance()
		right := p.parseExpression(getPrecedence(tok.Type))
		if right == nil {
			p.errorAfterPrevious(
				fmt.Sprintf("Expected expression after %s", sanitize.Value(tok.Literal)),
				ErrExpectedExpression)
		}
		return &ast.BinaryExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
	}
}

// parseScopeMember parses the right-hand side of a :: access. Option
// members may be identifiers, integers, or string literals.
func (p *Parser) parseScopeMember() ast.Expression {
	tok := p.cur()
	switch {
	case tok.Type == token.INT:
		p.advance()
		value, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return &ast.IntegerLiteral{Token: tok, Value: value}
	case tok.Type == token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: token.UnquoteString(tok.Literal)}
	case token.CanBeName(tok.Type):
		p.advance()
		value := tok.Literal
		quoted := false
		if tok.Type == token.QUOTED_IDENT {
			value = token.UnquoteIdent(tok.Literal)
			quoted = true
		}
		return &ast.Identifier{Token: tok, Value: value, Quoted: quoted}
	default:
		p.errorAfterPrevious("Expected member name after ::", ErrExpectedIdent)
		return nil
	}
}
