package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/klauskaan/go-cal/pkg/token"
)

// PositionValidation is the outcome of cross-checking emitted tokens
// against the original source. The validator reports; it never repairs.
type PositionValidation struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// ValidateTokenPositions verifies for every token that the recorded byte
// range reproduces the literal and that line/column match a recomputation
// from the start offset.
func ValidateTokenPositions(source string, tokens []token.Token) PositionValidation {
	result := PositionValidation{IsValid: true}

	for i, tok := range tokens {
		if tok.Type == token.EOF {
			if tok.End != tok.Pos.Offset {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("token %d: EOF sentinel has non-empty range %d..%d",
						i, tok.Pos.Offset, tok.End))
			}
			continue
		}

		if tok.Pos.Offset < 0 || tok.End > len(source) || tok.Pos.Offset > tok.End {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("token %d (%s): offset range %d..%d outside source of %d bytes",
					i, tok.Type, tok.Pos.Offset, tok.End, len(source)))
			continue
		}

		if got := source[tok.Pos.Offset:tok.End]; got != tok.Literal {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("token %d (%s): source range %d..%d does not reproduce the literal",
					i, tok.Type, tok.Pos.Offset, tok.End))
		}

		if tok.End-tok.Pos.Offset != len(tok.Literal) {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("token %d (%s): range length %d != literal length %d",
					i, tok.Type, tok.End-tok.Pos.Offset, len(tok.Literal)))
		}

		line, column := positionAt(source, tok.Pos.Offset)
		if line != tok.Pos.Line || column != tok.Pos.Column {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("token %d (%s): recorded position %d:%d, recomputed %d:%d",
					i, tok.Type, tok.Pos.Line, tok.Pos.Column, line, column))
		}
	}

	return result
}

// positionAt recomputes the 1-based line and rune column of a byte offset.
// A leading UTF-8 BOM occupies no column, matching the lexer.
func positionAt(source string, offset int) (line, column int) {
	line = 1
	column = 0
	pos := 0
	if len(source) >= 3 && source[0] == 0xEF && source[1] == 0xBB && source[2] == 0xBF {
		pos = 3
	}
	for pos < offset && pos < len(source) {
		r, size := utf8.DecodeRuneInString(source[pos:])
		if r == '\n' {
			line++
			column = 0
		} else {
			column++
		}
		pos += size
	}
	return line, column + 1
}
