// Package token defines the lexical tokens of the C/AL language together
// with their source positions. Token values are immutable after creation;
// the keyword table is read-only after package initialization so tokens and
// lookups are safe to share across goroutines.
package token

import (
	"fmt"
	"strings"
)

// Position represents a location in the source text.
// Line and Column are 1-based; Offset is a 0-based byte index.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position in "line:column" format.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position has a plausible line number.
func (p Position) IsValid() bool {
	return p.Line >= 1
}

// Token represents a single lexical token.
// Literal is always the exact source substring, including any surrounding
// quote characters, so that End-Pos.Offset == len(Literal) holds for every
// token (half-open byte range).
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     int // end byte offset (exclusive)
}

// NewToken creates a token at the given position.
// The end offset is derived from the literal length.
func NewToken(tokenType TokenType, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Pos:     pos,
		End:     pos.Offset + len(literal),
	}
}

// Length returns the byte length of the token literal.
func (t Token) Length() int {
	return len(t.Literal)
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("EOF at %s", t.Pos)
	}
	lit := t.Literal
	if len(lit) > 20 {
		return fmt.Sprintf("%s(%q...) at %s", t.Type, lit[:20], t.Pos)
	}
	return fmt.Sprintf("%s(%q) at %s", t.Type, lit, t.Pos)
}

// keywords maps lowercase reserved lexemes to their token types.
// Lookup is case-insensitive; the table is never mutated after init.
var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,

	"object":            OBJECT,
	"object-properties": OBJECT_PROPERTIES,
	"properties":        PROPERTIES,
	"fields":            FIELDS,
	"keys":              KEYS,
	"controls":          CONTROLS,
	"code":              CODE,
	"rdldata":           RDLDATA,

	"table":     TABLE,
	"codeunit":  CODEUNIT,
	"page":      PAGE,
	"report":    REPORT,
	"xmlport":   XMLPORT,
	"query":     QUERY,
	"menusuite": MENUSUITE,

	"begin":  BEGIN,
	"end":    END,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"case":   CASE,
	"of":     OF,
	"while":  WHILE,
	"do":     DO,
	"repeat": REPEAT,
	"until":  UNTIL,
	"for":    FOR,
	"to":     TO,
	"downto": DOWNTO,
	"with":   WITH,
	"exit":   EXIT,

	"var":       VAR,
	"procedure": PROCEDURE,
	"local":     LOCAL,
	"trigger":   TRIGGER,
	"record":    RECORD,
	"array":     ARRAY,
	"option":    OPTION,
	"temporary": TEMPORARY,

	"dotnet":      DOTNET,
	"automation":  AUTOMATION,
	"withevents":  WITHEVENTS,
	"runonclient": RUNONCLIENT,

	"not": NOT,
	"and": AND,
	"or":  OR,
	"xor": XOR,
	"div": DIV,
	"mod": MOD,
}

// LookupIdent returns the keyword token type for the given identifier, or
// IDENT if it is not a reserved lexeme. The lookup is case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether the given lexeme is a reserved keyword.
func IsKeyword(ident string) bool {
	_, ok := keywords[strings.ToLower(ident)]
	return ok
}

// GetKeywordLiteral returns the canonical (uppercase) spelling of a keyword
// token type, or the empty string if the type is not a keyword.
func GetKeywordLiteral(tt TokenType) string {
	if !tt.IsKeyword() {
		return ""
	}
	return tt.String()
}

// statementStarters are keywords that may never be used as declaration or
// parameter names. Everything else in the keyword table (Table, Record,
// Code, Page, ...) is a contextual keyword and is accepted as a name.
var statementStarters = map[TokenType]bool{
	BEGIN: true, END: true, IF: true, THEN: true, ELSE: true,
	CASE: true, OF: true, WHILE: true, DO: true, REPEAT: true,
	UNTIL: true, FOR: true, TO: true, DOWNTO: true, WITH: true,
	EXIT: true, VAR: true, PROCEDURE: true, LOCAL: true,
	NOT: true, AND: true, OR: true, XOR: true, DIV: true, MOD: true,
}

// CanBeName reports whether a token of the given type may serve as a
// declaration or parameter name. IDENT and quoted identifiers always can;
// contextual keywords (Table, Record, Code, ...) can as well.
func CanBeName(tt TokenType) bool {
	if tt == IDENT || tt == QUOTED_IDENT {
		return true
	}
	return tt.IsKeyword() && !statementStarters[tt]
}

// IsStatementStarterKeyword reports whether the token type is a reserved
// keyword that opens or structures statements and therefore may not be
// reused as a name.
func IsStatementStarterKeyword(tt TokenType) bool {
	return statementStarters[tt]
}

// IsSafeLexeme reports whether a raw token value may appear verbatim in an
// outward-facing message: keywords from the table and short (at most three
// byte) punctuation or operator lexemes are safe, everything else must be
// sanitized.
func IsSafeLexeme(value string) bool {
	if IsKeyword(value) {
		return true
	}
	if len(value) == 0 || len(value) > 3 {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '{', '}', '(', ')', '[', ']', ',', ';', ':', '.', '@',
			'+', '-', '*', '/', '=', '<', '>', '#':
		default:
			return false
		}
	}
	return true
}

// ALTokenClass names the dialect class of an AL-only lexeme.
type ALTokenClass int

const (
	ALNone ALTokenClass = iota
	ALKeyword
	ALAccessModifier
	ALPreprocessor
)

// String returns the human-readable class name used in error messages.
func (c ALTokenClass) String() string {
	switch c {
	case ALKeyword:
		return "AL-only keyword"
	case ALAccessModifier:
		return "AL-only access modifier"
	case ALPreprocessor:
		return "AL-only preprocessor"
	}
	return ""
}

// alOnlyLexemes classifies tokens that belong to the newer AL dialect and
// are rejected in C/AL source.
var alOnlyLexemes = map[string]ALTokenClass{
	"interface": ALKeyword,
	"enum":      ALKeyword,
	"internal":  ALAccessModifier,
	"protected": ALAccessModifier,
	"#pragma":   ALPreprocessor,
	"#region":   ALPreprocessor,
	"#if":       ALPreprocessor,
	"#define":   ALPreprocessor,
}

// ClassifyALOnly returns the AL dialect class of the given lexeme, or ALNone
// if the lexeme is legal C/AL. The lookup is case-insensitive.
func ClassifyALOnly(value string) ALTokenClass {
	return alOnlyLexemes[strings.ToLower(value)]
}

// UnquoteString strips the single quotes from a STRING literal and decodes
// doubled quotes ('' becomes '). The input must be the exact source
// substring including its delimiters; malformed input is returned with the
// delimiters removed best-effort.
func UnquoteString(literal string) string {
	return unquote(literal, '\'')
}

// UnquoteIdent strips the double quotes from a QUOTED_IDENT literal.
func UnquoteIdent(literal string) string {
	return unquote(literal, '"')
}

func unquote(literal string, quote byte) string {
	if len(literal) >= 2 && literal[0] == quote && literal[len(literal)-1] == quote {
		literal = literal[1 : len(literal)-1]
	} else if len(literal) >= 1 && literal[0] == quote {
		literal = literal[1:]
	}
	doubled := string([]byte{quote, quote})
	return strings.ReplaceAll(literal, doubled, string(quote))
}
