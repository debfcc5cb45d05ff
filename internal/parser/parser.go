// Package parser implements the recursive-descent C/AL parser.
//
// Key patterns:
//   - The parser consumes a flat token slice produced by the lexer; it
//     never consults the source text, only tokens and their offsets.
//   - Missing-terminator errors are attributed to the end of the previous
//     token, so a missing ';' reports the line that needed it.
//   - All input errors accumulate as values in Errors(); the parser never
//     panics or throws for input errors, and every recovery site consumes
//     at least one token or closes the enclosing construct.
package parser

import (
	"fmt"

	"github.com/klauskaan/go-cal/internal/sanitize"
	"github.com/klauskaan/go-cal/pkg/ast"
	"github.com/klauskaan/go-cal/pkg/token"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	LOGIC_OR    // OR XOR
	LOGIC_AND   // AND
	RELATIONAL  // = <> < > <= >=
	SUM         // + -
	PRODUCT     // * / DIV MOD
	PREFIX      // -x, +x, NOT x
	CALL        // f(args), a[i], r.f, k::v
)

// precedences maps token types to their infix precedence levels.
var precedences = map[token.TokenType]int{
	token.OR:         LOGIC_OR,
	token.XOR:        LOGIC_OR,
	token.AND:        LOGIC_AND,
	token.EQ:         RELATIONAL,
	token.NOT_EQ:     RELATIONAL,
	token.LESS:       RELATIONAL,
	token.GREATER:    RELATIONAL,
	token.LESS_EQ:    RELATIONAL,
	token.GREATER_EQ: RELATIONAL,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.DIV:        PRODUCT,
	token.MOD:        PRODUCT,
	token.LPAREN:     CALL,
	token.LBRACK:     CALL,
	token.DOT:        CALL,
	token.SCOPE:      CALL,
	// Assignment operators are statement-level, not expression operators;
	// they are handled in parseSimpleStatement.
}

// Parser represents the C/AL parser over a flat token slice.
type Parser struct {
	tokens       []token.Token
	pos          int
	errors       []*ParseError
	fragmentVars []*ast.VariableDecl
}

// New creates a Parser for the given token slice. The slice is expected to
// be EOF-terminated as produced by the lexer; an EOF sentinel is appended
// if missing so cursor reads are always in range.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.NewToken(token.EOF, "", token.Position{Line: 1, Column: 1}))
	}
	return &Parser{tokens: tokens}
}

// Errors returns the accumulated parse errors in source order.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// cur returns the next unconsumed token.
func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

// peek returns the token after the next unconsumed token.
func (p *Parser) peek() token.Token {
	return p.peekN(1)
}

// peekN returns the token n positions past the cursor, clamped to EOF.
func (p *Parser) peekN(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// advance consumes and returns the next token. The cursor never moves past
// the EOF sentinel.
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// curIs checks the type of the next unconsumed token.
func (p *Parser) curIs(t token.TokenType) bool {
	return p.cur().Type == t
}

// peekIs checks the type of the token after the cursor.
func (p *Parser) peekIs(t token.TokenType) bool {
	return p.peek().Type == t
}

// match consumes the next token if it has the given type.
func (p *Parser) match(t token.TokenType) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	return false
}

// atEnd reports whether the cursor reached the EOF sentinel.
func (p *Parser) atEnd() bool {
	return p.curIs(token.EOF)
}

// isFollowedByLeftBrace reports whether the token after the cursor is '{'.
// It is the parser-side half of the section keyword disambiguation: CODE {
// opens a section, Code[20] and a variable named Code do not. Pure
// function of the cursor position; never mutates state.
func (p *Parser) isFollowedByLeftBrace() bool {
	return p.peekIs(token.LBRACE)
}

// addError records an error anchored to the given raw token. The message
// must already be sanitized.
func (p *Parser) addError(tok token.Token, message, code string) {
	p.errors = append(p.errors, NewParseError(tok, message, code))
}

// errorAfterPrevious records an error attributed to the end of the most
// recently consumed token. Missing-terminator errors use this so a missing
// ';', THEN, DO, OF, END, ')' or ':' reports the line that needed it
// rather than the line of the offending next token.
func (p *Parser) errorAfterPrevious(message, code string) {
	p.addError(p.previous(), message, code)
}

// consumeExpected consumes the next token if it matches, otherwise records
// an error at the end of the previous token and leaves the cursor in
// place.
func (p *Parser) consumeExpected(t token.TokenType, message, code string) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorAfterPrevious(message, code)
	return false
}

// unexpectedToken records an "unexpected token" error for the cursor
// token, naming the construct it appeared in. The raw value is sanitized.
func (p *Parser) unexpectedToken(in string) {
	tok := p.cur()
	msg := fmt.Sprintf("Unexpected token %s in %s", sanitize.Value(tok.Literal), in)
	p.addError(tok, msg, ErrUnexpectedToken)
}

// checkALOnly rejects tokens from the newer AL dialect with a message
// naming the dialect class. Returns true when the cursor token was an
// AL-only token (which is consumed).
func (p *Parser) checkALOnly() bool {
	tok := p.cur()
	var class token.ALTokenClass
	switch tok.Type {
	case token.PREPROC:
		class = token.ClassifyALOnly(tok.Literal)
		if class == token.ALNone {
			class = token.ALPreprocessor
		}
	case token.IDENT:
		class = token.ClassifyALOnly(tok.Literal)
	default:
		return false
	}
	if class == token.ALNone {
		return false
	}
	msg := fmt.Sprintf("%s %s is not allowed in C/AL", class, sanitize.Value(tok.Literal))
	p.addError(tok, msg, ErrALOnlyToken)
	p.advance()
	return true
}

// Parse parses the token stream into a CALDocument. A document is always
// returned: a full OBJECT when the source is an object file, bare
// statements for source fragments, and partial nodes under errors.
func (p *Parser) Parse() *ast.CALDocument {
	doc := &ast.CALDocument{}

	if p.curIs(token.OBJECT) {
		doc.Object = p.parseObject()
	} else {
		doc.Statements = p.parseStatementList()
		doc.Variables = p.fragmentVars
	}

	doc.EndTok = p.tokens[len(p.tokens)-1]
	return doc
}
