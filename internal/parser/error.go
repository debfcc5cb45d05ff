package parser

import (
	"fmt"

	"github.com/klauskaan/go-cal/pkg/token"
)

// ParseError represents a structured parsing error. Message is sanitized
// at construction time and safe to surface; Token carries the raw lexeme
// and is server-internal only — it must never be serialized across the
// LSP boundary (the adapter extracts the numeric fields instead).
type ParseError struct {
	Message string
	Token   token.Token
	Code    string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Token.Pos.Line, e.Token.Pos.Column)
}

// NewParseError creates a ParseError. The caller is responsible for
// sanitizing the message before construction.
func NewParseError(tok token.Token, message, code string) *ParseError {
	return &ParseError{
		Message: message,
		Token:   tok,
		Code:    code,
	}
}

// Error code constants for programmatic error handling
const (
	// ErrUnexpectedToken indicates an unexpected token was encountered
	ErrUnexpectedToken = "E_UNEXPECTED_TOKEN"

	// ErrMissingSemicolon indicates a missing semicolon
	ErrMissingSemicolon = "E_MISSING_SEMICOLON"

	// ErrMissingThen indicates a missing THEN keyword
	ErrMissingThen = "E_MISSING_THEN"

	// ErrMissingDo indicates a missing DO keyword
	ErrMissingDo = "E_MISSING_DO"

	// ErrMissingOf indicates a missing OF keyword
	ErrMissingOf = "E_MISSING_OF"

	// ErrMissingEnd indicates a missing END keyword
	ErrMissingEnd = "E_MISSING_END"

	// ErrMissingUntil indicates a REPEAT without a closing UNTIL
	ErrMissingUntil = "E_MISSING_UNTIL"

	// ErrMissingColon indicates a missing colon
	ErrMissingColon = "E_MISSING_COLON"

	// ErrMissingRParen indicates a missing closing parenthesis
	ErrMissingRParen = "E_MISSING_RPAREN"

	// ErrMissingRBracket indicates a missing closing bracket
	ErrMissingRBracket = "E_MISSING_RBRACKET"

	// ErrMissingRBrace indicates a missing closing brace
	ErrMissingRBrace = "E_MISSING_RBRACE"

	// ErrExpectedExpression indicates an expression was required
	ErrExpectedExpression = "E_EXPECTED_EXPRESSION"

	// ErrExpectedIdent indicates an identifier was expected
	ErrExpectedIdent = "E_EXPECTED_IDENT"

	// ErrExpectedType indicates a type annotation was expected
	ErrExpectedType = "E_EXPECTED_TYPE"

	// ErrReservedKeywordAsName indicates a reserved keyword used as a name
	ErrReservedKeywordAsName = "E_RESERVED_KEYWORD_AS_NAME"

	// ErrALOnlyToken indicates a token from the newer AL dialect
	ErrALOnlyToken = "E_AL_ONLY_TOKEN"

	// ErrDanglingElse indicates an ELSE with no claiming IF or CASE
	ErrDanglingElse = "E_DANGLING_ELSE"

	// ErrInvalidIntegerLiteral indicates a number was syntactically required
	ErrInvalidIntegerLiteral = "E_INVALID_INTEGER_LITERAL"

	// ErrInvalidTypeLiteral indicates a malformed DotNet or Automation payload
	ErrInvalidTypeLiteral = "E_INVALID_TYPE_LITERAL"
)
