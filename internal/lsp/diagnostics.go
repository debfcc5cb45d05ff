// Package lsp adapts parser errors to LSP diagnostics.
//
// The adapter is the serialization boundary for ParseError: only the
// sanitized message and three numeric token fields (line, column, value
// length) cross it. The raw token value never does.
package lsp

import "github.com/klauskaan/go-cal/internal/parser"

// DiagnosticSeverity follows the LSP numbering.
type DiagnosticSeverity int

// SeverityError is the fixed severity for parser diagnostics.
const SeverityError DiagnosticSeverity = 1

// Position is a zero-based LSP text position.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open LSP text range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is the wire representation of one parser error.
type Diagnostic struct {
	Severity DiagnosticSeverity `json:"severity"`
	Range    Range              `json:"range"`
	Message  string             `json:"message"`
	Source   string             `json:"source"`
}

// DiagnosticsFromErrors converts parser errors to LSP diagnostics. The
// range is computed from the token's one-based line/column and the byte
// length of its value; the message is already sanitized.
func DiagnosticsFromErrors(errors []*parser.ParseError) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(errors))
	for _, err := range errors {
		line := err.Token.Pos.Line - 1
		column := err.Token.Pos.Column - 1
		diagnostics = append(diagnostics, Diagnostic{
			Severity: SeverityError,
			Range: Range{
				Start: Position{Line: line, Character: column},
				End:   Position{Line: line, Character: column + len(err.Token.Literal)},
			},
			Message: err.Message,
			Source:  "cal",
		})
	}
	return diagnostics
}
