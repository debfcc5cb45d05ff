package lexer

import (
	"testing"

	"github.com/klauskaan/go-cal/pkg/token"
)

func TestTokenizeBasicStatement(t *testing.T) {
	input := `IF x THEN y := 1;`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.IF, "IF"},
		{token.IDENT, "x"},
		{token.THEN, "THEN"},
		{token.IDENT, "y"},
		{token.ASSIGN, ":="},
		{token.INT, "1"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	tokens := New(input).Tokenize()
	if len(tokens) != len(tests) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(tests))
	}

	for i, tt := range tests {
		if tokens[i].Type != tt.expectedType {
			t.Fatalf("tokens[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tokens[i].Type, tokens[i].Literal)
		}
		if tokens[i].Literal != tt.expectedLiteral {
			t.Fatalf("tokens[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tokens[i].Literal)
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	input := `+ - * / := += -= *= /= = <> < > <= >= :: : . , @`

	expected := []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.TIMES_ASSIGN, token.DIVIDE_ASSIGN,
		token.EQ, token.NOT_EQ, token.LESS, token.GREATER,
		token.LESS_EQ, token.GREATER_EQ,
		token.SCOPE, token.COLON, token.DOT, token.COMMA, token.AT,
		token.EOF,
	}

	tokens := New(input).Tokenize()
	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("tokens[%d] = %v (%q), want %v",
				i, tokens[i].Type, tokens[i].Literal, want)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input           string
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{"0", token.INT, "0"},
		{"42", token.INT, "42"},
		{"50000", token.INT, "50000"},
		{"1.5", token.FLOAT, "1.5"},
		{"0.01", token.FLOAT, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := New(tt.input).Tokenize()
			if tokens[0].Type != tt.expectedType {
				t.Errorf("type = %v, want %v", tokens[0].Type, tt.expectedType)
			}
			if tokens[0].Literal != tt.expectedLiteral {
				t.Errorf("literal = %q, want %q", tokens[0].Literal, tt.expectedLiteral)
			}
		})
	}
}

func TestTokenizeStringLiterals(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedLiteral string
	}{
		{"simple", "'hello'", "'hello'"},
		{"empty", "''", "''"},
		{"doubled quote", "'it''s'", "'it''s'"},
		{"only escape", "''''", "''''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := New(tt.input).Tokenize()
			if tokens[0].Type != token.STRING {
				t.Fatalf("type = %v, want STRING", tokens[0].Type)
			}
			// The literal is the exact source substring, quotes included.
			if tokens[0].Literal != tt.expectedLiteral {
				t.Errorf("literal = %q, want %q", tokens[0].Literal, tt.expectedLiteral)
			}
		})
	}
}

func TestTokenizeQuotedIdentifier(t *testing.T) {
	tokens := New(`"Document No."`).Tokenize()
	if tokens[0].Type != token.QUOTED_IDENT {
		t.Fatalf("type = %v, want QUOTED_IDENT", tokens[0].Type)
	}
	if tokens[0].Literal != `"Document No."` {
		t.Errorf("literal = %q", tokens[0].Literal)
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", "'abc"},
		{"unterminated quoted identifier", `"Doc`},
		{"string cut by newline", "'abc\nx := 1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			tokens := l.Tokenize()

			if tokens[0].Type != token.ILLEGAL {
				t.Fatalf("type = %v, want ILLEGAL", tokens[0].Type)
			}
			if tokens[len(tokens)-1].Type != token.EOF {
				t.Error("token stream must be EOF-terminated")
			}

			result := l.IsCleanExit(CleanExitOptions{})
			if result.Passed {
				t.Error("clean exit should fail")
			}
			if !result.Categories[CategoryUnterminatedLiteral] {
				t.Errorf("expected %s category, got %v", CategoryUnterminatedLiteral, result.Categories)
			}
		})
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "x := 1; // trailing comment\ny := 2;"
	tokens := New(input).Tokenize()

	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token %q", tok.Literal)
		}
	}
	// x := 1 ; y := 2 ; EOF
	if len(tokens) != 9 {
		t.Errorf("token count = %d, want 9", len(tokens))
	}
	if tokens[4].Literal != "y" || tokens[4].Pos.Line != 2 {
		t.Errorf("token after comment = %q at line %d, want y at line 2",
			tokens[4].Literal, tokens[4].Pos.Line)
	}
}

func TestBlockCommentAtTopLevel(t *testing.T) {
	input := "{ header comment }\nx := 1;"
	tokens := New(input).Tokenize()

	if tokens[0].Type != token.IDENT || tokens[0].Literal != "x" {
		t.Fatalf("first token = %v %q, want IDENT x", tokens[0].Type, tokens[0].Literal)
	}
}

func TestSectionKeywordDisambiguation(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedType token.TokenType
	}{
		// CODE followed by '{' is the section keyword.
		{"section keyword", "CODE{", token.CODE},
		{"section keyword with space", "CODE {", token.CODE},
		// Code[20] is a data type name; a bare Code is an identifier.
		{"type with length", "Code[20]", token.IDENT},
		{"bare identifier", "Code", token.IDENT},
		{"identifier then assign", "Code := 1", token.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := New(tt.input).Tokenize()
			if tokens[0].Type != tt.expectedType {
				t.Errorf("first token type = %v, want %v", tokens[0].Type, tt.expectedType)
			}
		})
	}
}

func TestLexerDeterminism(t *testing.T) {
	input := "OBJECT Codeunit 50000 Test{CODE{PROCEDURE P@1();BEGIN x := 'a''b'; END;}}"

	first := New(input)
	second := New(input)
	tokensA := first.Tokenize()
	tokensB := second.Tokenize()

	if len(tokensA) != len(tokensB) {
		t.Fatalf("token counts differ: %d vs %d", len(tokensA), len(tokensB))
	}
	for i := range tokensA {
		if tokensA[i] != tokensB[i] {
			t.Errorf("tokens[%d] differ: %+v vs %+v", i, tokensA[i], tokensB[i])
		}
	}

	resultA := first.IsCleanExit(CleanExitOptions{})
	resultB := second.IsCleanExit(CleanExitOptions{})
	if resultA.Passed != resultB.Passed || len(resultA.Violations) != len(resultB.Violations) {
		t.Error("clean-exit verdicts differ between runs")
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	l := New("x := 1;")
	first := l.Tokenize()
	second := l.Tokenize()

	if len(first) != len(second) {
		t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("tokens[%d] differ between calls", i)
		}
	}
}

func TestCleanExitOnFullObject(t *testing.T) {
	input := `OBJECT Codeunit 50000 Test
{
  OBJECT-PROPERTIES
  {
    Date=01-01-20;
    Time=12:00:00;
  }
  PROPERTIES
  {
    OnRun=BEGIN
          END;
  }
  CODE
  {
    VAR
      Counter@1000 : Integer;

    PROCEDURE Run@1();
    BEGIN
      Counter := Counter + 1;
    END;

    BEGIN
    END.
  }
}`

	l := New(input)
	l.Tokenize()
	result := l.IsCleanExit(CleanExitOptions{})
	if !result.Passed {
		t.Fatalf("clean exit failed: %+v", result.Violations)
	}
}

func TestCleanExitUnbalancedBrace(t *testing.T) {
	l := New("OBJECT Codeunit 1 T{CODE{")
	l.Tokenize()
	result := l.IsCleanExit(CleanExitOptions{})

	if result.Passed {
		t.Fatal("clean exit should fail")
	}
	if !result.Categories[CategoryUnbalancedBrace] {
		t.Errorf("expected %s, got %v", CategoryUnbalancedBrace, result.Categories)
	}
	if !result.Categories[CategoryStackMismatch] {
		t.Errorf("expected %s, got %v", CategoryStackMismatch, result.Categories)
	}
}

func TestCleanExitUnbalancedParen(t *testing.T) {
	l := New("F(a, b")
	l.Tokenize()
	result := l.IsCleanExit(CleanExitOptions{})

	if result.Passed {
		t.Fatal("clean exit should fail")
	}
	if !result.Categories[CategoryUnbalancedParen] {
		t.Errorf("expected %s, got %v", CategoryUnbalancedParen, result.Categories)
	}
}

func TestRDLDataPayloadIsOpaque(t *testing.T) {
	input := `OBJECT Report 50000 R
{
  RDLDATA
  {
    <Report xmlns="http://example.invalid"> <Body/> </Report>
  }
}`

	l := New(input)
	tokens := l.Tokenize()
	result := l.IsCleanExit(CleanExitOptions{})
	if !result.Passed {
		t.Fatalf("clean exit failed: %+v", result.Violations)
	}

	// The payload must not leak tokens: RDLDATA { } and the object braces.
	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			t.Errorf("payload leaked ILLEGAL token %q", tok.Literal)
		}
	}
}

func TestRDLDataUnderflow(t *testing.T) {
	// The payload contains a surplus close brace, so the section closes
	// early and the object's final brace underflows.
	input := "OBJECT Report 50000 R{RDLDATA{ x } } }"

	l := New(input)
	l.Tokenize()

	strict := l.IsCleanExit(CleanExitOptions{})
	if strict.Passed {
		t.Fatal("strict mode should report the underflow")
	}
	if !strict.Categories[CategoryRdldataUnderflow] {
		t.Errorf("expected %s, got %v", CategoryRdldataUnderflow, strict.Categories)
	}

	relaxed := l.IsCleanExit(CleanExitOptions{AllowRdldataUnderflow: true})
	if !relaxed.Passed {
		t.Fatalf("relaxed mode should pass, got %+v", relaxed.Violations)
	}
}

func TestObjectPropertiesKeyword(t *testing.T) {
	tokens := New("OBJECT-PROPERTIES{}").Tokenize()
	if tokens[0].Type != token.OBJECT_PROPERTIES {
		t.Fatalf("type = %v, want OBJECT_PROPERTIES", tokens[0].Type)
	}
	if tokens[0].Literal != "OBJECT-PROPERTIES" {
		t.Errorf("literal = %q", tokens[0].Literal)
	}
}

func TestPreprocessorMarker(t *testing.T) {
	tokens := New("#pragma x := 1;").Tokenize()
	if tokens[0].Type != token.PREPROC {
		t.Fatalf("type = %v, want PREPROC", tokens[0].Type)
	}
	if tokens[0].Literal != "#pragma" {
		t.Errorf("literal = %q, want #pragma", tokens[0].Literal)
	}
}

func TestUnknownCharacter(t *testing.T) {
	l := New("x := 1 ?;")
	tokens := l.Tokenize()

	foundIllegal := false
	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			foundIllegal = true
		}
	}
	if !foundIllegal {
		t.Error("expected an ILLEGAL token for the unknown character")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		t.Error("token stream must be EOF-terminated")
	}
}

// collectingSink records trace events for assertions.
type collectingSink struct {
	events []TraceEvent
}

func (s *collectingSink) Event(ev TraceEvent) {
	s.events = append(s.events, ev)
}

func TestTraceEvents(t *testing.T) {
	sink := &collectingSink{}
	l := New("OBJECT Codeunit 1 T{CODE{}}", WithTrace(sink))
	l.Tokenize()

	kinds := map[TraceEventKind]int{}
	pushed := []string{}
	for _, ev := range sink.events {
		kinds[ev.Kind]++
		if ev.Kind == TracePush {
			pushed = append(pushed, ev.Detail)
		}
		// Raw source text travels only in Value of token events; details
		// are lexer-generated diagnostics.
		if ev.Kind != TraceToken && ev.Value != "" {
			t.Errorf("%s event carries a token value %q", ev.Kind, ev.Value)
		}
	}

	if kinds[TraceToken] == 0 {
		t.Error("expected token events")
	}

	var objectEvent *TraceEvent
	for i := range sink.events {
		if sink.events[i].Kind == TraceToken && sink.events[i].Value == "OBJECT" {
			objectEvent = &sink.events[i]
			break
		}
	}
	if objectEvent == nil {
		t.Fatal("missing token event for OBJECT")
	}
	if objectEvent.Detail != "OBJECT" {
		t.Errorf("token event detail = %q, want the token type name", objectEvent.Detail)
	}
	if kinds[TracePush] == 0 || kinds[TracePop] == 0 {
		t.Error("expected push and pop events")
	}
	if kinds[TraceFlag] == 0 {
		t.Error("expected flag events")
	}

	wantPushes := []string{"OBJECT_HEADER", "PROPERTY_BLOCK", "CODE_SECTION"}
	if len(pushed) != len(wantPushes) {
		t.Fatalf("pushes = %v, want %v", pushed, wantPushes)
	}
	for i, want := range wantPushes {
		if pushed[i] != want {
			t.Errorf("pushes[%d] = %q, want %q", i, pushed[i], want)
		}
	}
}

func TestUTF8BOMIsSkipped(t *testing.T) {
	input := "\xEF\xBB\xBFx := 1;"
	tokens := New(input).Tokenize()

	if tokens[0].Type != token.IDENT || tokens[0].Literal != "x" {
		t.Fatalf("first token = %v %q, want IDENT x", tokens[0].Type, tokens[0].Literal)
	}
	if tokens[0].Pos.Offset != 3 {
		t.Errorf("first token offset = %d, want 3", tokens[0].Pos.Offset)
	}
	if tokens[0].Pos.Column != 1 {
		t.Errorf("first token column = %d, want 1", tokens[0].Pos.Column)
	}
}
