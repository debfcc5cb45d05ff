// Package sanitize implements the redaction boundary for outward-facing
// messages. Proprietary identifiers from customer source must never leak
// through diagnostics or reports: any raw token value is replaced by a
// fixed-format placeholder unless it is a recognized safe lexeme.
//
// All functions are pure; no I/O.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/klauskaan/go-cal/pkg/token"
)

// Value returns the input unchanged when it is a safe lexeme (a keyword
// from the table or short punctuation/operator), otherwise the placeholder
// "[content sanitized, N chars]" where N is the byte length of the input.
func Value(value string) string {
	if token.IsSafeLexeme(value) {
		return value
	}
	return fmt.Sprintf("[content sanitized, %d chars]", len(value))
}

// ValueAt is Value with the source offset appended to the placeholder.
func ValueAt(value string, offset int) string {
	if token.IsSafeLexeme(value) {
		return value
	}
	return fmt.Sprintf("[content sanitized, %d chars] at offset %d", len(value), offset)
}

// markdownSpecials lists the escaped characters in order; backslash must be
// first so that already-escaped sequences gain exactly one more level.
var markdownSpecials = []string{"\\", "|", "*", "_", "`", "[", "]", "<", ">", "#", "~"}

// EscapeMarkdown escapes markdown metacharacters with a backslash,
// processing the backslash itself first. The function distributes over
// concatenation: escaping piecewise and joining equals escaping the whole.
func EscapeMarkdown(s string) string {
	for _, special := range markdownSpecials {
		s = strings.ReplaceAll(s, special, "\\"+special)
	}
	return s
}

// Truncate shortens a value for trace output: values longer than six
// characters are reduced to their first and last three characters joined
// by an ellipsis. Safe lexemes and plain short identifiers pass through.
func Truncate(value string) string {
	if token.IsSafeLexeme(value) || len(value) <= 6 {
		return value
	}
	return value[:3] + "…" + value[len(value)-3:]
}
