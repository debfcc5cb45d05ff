package parser

import (
	"strings"
	"testing"

	"github.com/klauskaan/go-cal/pkg/ast"
)

// wrapDecl builds a minimal codeunit around a single global declaration.
func wrapDecl(decl string) string {
	return "OBJECT Codeunit 50000 T{CODE{VAR\n" + decl + "\nBEGIN END.}}"
}

// parseGlobal parses a single global declaration and returns it.
func parseGlobal(t *testing.T, decl string, wantErrors bool) (*ast.VariableDecl, *Parser) {
	t.Helper()
	doc, p := parseSource(t, wrapDecl(decl))
	if !wantErrors && len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if doc.Object == nil || doc.Object.Code == nil || len(doc.Object.Code.Variables) != 1 {
		t.Fatalf("expected exactly one global declaration")
	}
	return doc.Object.Code.Variables[0], p
}

func TestParsePrimitiveTypes(t *testing.T) {
	tests := []struct {
		decl   string
		name   string
		length int
	}{
		{"x@1 : Integer;", "Integer", 0},
		{"x@1 : Decimal;", "Decimal", 0},
		{"x@1 : Boolean;", "Boolean", 0},
		{"x@1 : DateTime;", "DateTime", 0},
		{"x@1 : Text[30];", "Text", 30},
		{"x@1 : Code[20];", "Code", 20},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			decl, _ := parseGlobal(t, tt.decl, false)
			prim, ok := decl.Type.(*ast.PrimitiveType)
			if !ok {
				t.Fatalf("type is %T, want PrimitiveType", decl.Type)
			}
			if prim.Name != tt.name || prim.Length != tt.length {
				t.Errorf("type = %s[%d], want %s[%d]", prim.Name, prim.Length, tt.name, tt.length)
			}
		})
	}
}

func TestParseRecordTypes(t *testing.T) {
	decl, _ := parseGlobal(t, "Customer@1 : Record 18;", false)
	rec, ok := decl.Type.(*ast.RecordType)
	if !ok {
		t.Fatalf("type is %T, want RecordType", decl.Type)
	}
	if rec.TableID != 18 || rec.Temporary {
		t.Errorf("record = %+v, want table 18 non-temporary", rec)
	}

	decl, _ = parseGlobal(t, "TempLine@1 : TEMPORARY Record 37;", false)
	rec, ok = decl.Type.(*ast.RecordType)
	if !ok {
		t.Fatalf("type is %T, want RecordType", decl.Type)
	}
	if rec.TableID != 37 || !rec.Temporary {
		t.Errorf("record = %+v, want table 37 temporary", rec)
	}
}

func TestParseArrayType(t *testing.T) {
	decl, _ := parseGlobal(t, "Buffer@1 : ARRAY[10] OF Decimal;", false)
	arr, ok := decl.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("type is %T, want ArrayType", decl.Type)
	}
	if arr.Length != 10 {
		t.Errorf("length = %d, want 10", arr.Length)
	}
	elem, ok := arr.Element.(*ast.PrimitiveType)
	if !ok || elem.Name != "Decimal" {
		t.Errorf("element = %v, want Decimal", arr.Element)
	}
}

func TestParseNestedArrayType(t *testing.T) {
	decl, _ := parseGlobal(t, "Grid@1 : ARRAY[3] OF ARRAY[4] OF Integer;", false)
	outer, ok := decl.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("type is %T, want ArrayType", decl.Type)
	}
	inner, ok := outer.Element.(*ast.ArrayType)
	if !ok || inner.Length != 4 {
		t.Errorf("inner element = %v, want ARRAY[4]", outer.Element)
	}
}

func TestParseInlineOptionType(t *testing.T) {
	decl, _ := parseGlobal(t, "Status@1 : 'Open,Released,Closed';", false)
	opt, ok := decl.Type.(*ast.OptionType)
	if !ok {
		t.Fatalf("type is %T, want OptionType", decl.Type)
	}
	if opt.OptionString != "Open,Released,Closed" {
		t.Errorf("option string = %q", opt.OptionString)
	}
}

func TestParseDotNetType(t *testing.T) {
	decl, _ := parseGlobal(t,
		`Builder@1 : DotNet "'mscorlib, Version=4.0.0.0'.System.Text.StringBuilder";`, false)
	dn, ok := decl.Type.(*ast.DotNetType)
	if !ok {
		t.Fatalf("type is %T, want DotNetType", decl.Type)
	}
	if dn.AssemblyReference != "mscorlib, Version=4.0.0.0" {
		t.Errorf("assembly = %q", dn.AssemblyReference)
	}
	if dn.TypeName != "System.Text.StringBuilder" {
		t.Errorf("type name = %q", dn.TypeName)
	}
}

func TestParseDotNetWithEvents(t *testing.T) {
	decl, _ := parseGlobal(t,
		`Timer@1 : DotNet "'mscorlib'.System.Timers.Timer" WITHEVENTS;`, false)
	if _, ok := decl.Type.(*ast.DotNetType); !ok {
		t.Fatalf("type is %T, want DotNetType", decl.Type)
	}
	if !decl.WithEvents {
		t.Error("WITHEVENTS modifier lost")
	}
}

func TestParseAutomationType(t *testing.T) {
	decl, _ := parseGlobal(t,
		`XL@1 : Automation "{00020813-0000-0000-C000-000000000046} 1.9:{00024500-0000-0000-C000-000000000046}:'Microsoft Excel 14.0 Object Library'.Application" WITHEVENTS RUNONCLIENT;`,
		false)
	auto, ok := decl.Type.(*ast.AutomationType)
	if !ok {
		t.Fatalf("type is %T, want AutomationType", decl.Type)
	}
	if auto.TypeLibGUID != "00020813-0000-0000-C000-000000000046" {
		t.Errorf("typelib guid = %q", auto.TypeLibGUID)
	}
	if auto.Version != "1.9" {
		t.Errorf("version = %q", auto.Version)
	}
	if auto.ClassGUID != "00024500-0000-0000-C000-000000000046" {
		t.Errorf("class guid = %q", auto.ClassGUID)
	}
	if auto.TypeLibName != "Microsoft Excel 14.0 Object Library" {
		t.Errorf("typelib name = %q", auto.TypeLibName)
	}
	if auto.ClassName != "Application" {
		t.Errorf("class name = %q", auto.ClassName)
	}
	if !decl.WithEvents || !decl.RunOnClient {
		t.Error("modifiers lost")
	}
}

// Escaped single quotes inside Automation library names decode to quotes.
func TestAutomationQuoteUnescaping(t *testing.T) {
	decl, _ := parseGlobal(t,
		`A@1 : Automation "{11111111-1111-1111-1111-111111111111} 1.0:{22222222-2222-2222-2222-222222222222}:'O''Reilly''s Library'.C";`,
		false)
	auto, ok := decl.Type.(*ast.AutomationType)
	if !ok {
		t.Fatalf("type is %T, want AutomationType", decl.Type)
	}
	if auto.TypeLibName != "O'Reilly's Library" {
		t.Errorf("typelib name = %q, want %q", auto.TypeLibName, "O'Reilly's Library")
	}
	if auto.ClassName != "C" {
		t.Errorf("class name = %q, want C", auto.ClassName)
	}
}

func TestMalformedAutomationPayload(t *testing.T) {
	tests := []struct {
		name string
		decl string
	}{
		{"bad guid", `A@1 : Automation "{not-a-guid} 1.0:{22222222-2222-2222-2222-222222222222}:'L'.C";`},
		{"missing version", `A@1 : Automation "{11111111-1111-1111-1111-111111111111}";`},
		{"missing class", `A@1 : Automation "{11111111-1111-1111-1111-111111111111} 1.0:{22222222-2222-2222-2222-222222222222}:'L'";`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, p := parseGlobal(t, tt.decl, true)
			if len(p.Errors()) == 0 {
				t.Fatal("expected an error for malformed payload")
			}
			// A partial node survives with the fields that parsed.
			auto, ok := decl.Type.(*ast.AutomationType)
			if !ok {
				t.Fatalf("type is %T, want partial AutomationType", decl.Type)
			}
			if tt.name != "bad guid" && auto.TypeLibGUID == "" {
				t.Error("typelib guid should have parsed")
			}
		})
	}
}

// WITHEVENTS belongs to Automation and DotNet declarations only.
func TestWithEventsRejectedOnOtherTypes(t *testing.T) {
	tests := []string{
		"x@1 : Integer WITHEVENTS;",
		"r@1 : Record 18 WITHEVENTS;",
		"s@1 : 'Open,Closed' WITHEVENTS;",
	}

	for _, decl := range tests {
		t.Run(decl, func(t *testing.T) {
			parsed, p := parseGlobal(t, decl, true)
			found := false
			for _, err := range p.Errors() {
				if err.Code == ErrUnexpectedToken &&
					strings.Contains(err.Message, "WITHEVENTS") {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a WITHEVENTS error, got %v", p.Errors())
			}
			if parsed.WithEvents {
				t.Error("WITHEVENTS must not be recorded on the declaration")
			}
		})
	}
}

func TestWithEventsRejectedOnParameter(t *testing.T) {
	source := `OBJECT Codeunit 50000 T{CODE{
PROCEDURE F@1(n@1 : Integer WITHEVENTS);
BEGIN
END;
}}`
	doc, p := parseSource(t, source)

	found := false
	for _, err := range p.Errors() {
		if err.Code == ErrUnexpectedToken && strings.Contains(err.Message, "WITHEVENTS") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a WITHEVENTS error, got %v", p.Errors())
	}
	param := doc.Object.Code.Procedures[0].Parameters[0]
	if param.WithEvents {
		t.Error("WITHEVENTS must not be recorded on the parameter")
	}
}

// Keywords that are not statement-starting reserved words are accepted as
// parameter names.
func TestKeywordsAsParameterNames(t *testing.T) {
	source := `OBJECT Codeunit 50000 T{CODE{
PROCEDURE F@1(VAR Table@1 : DotNet "'mscorlib'.System.String");
BEGIN
END;
}}`
	doc, p := parseSource(t, source)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}

	procs := doc.Object.Code.Procedures
	if len(procs) != 1 || len(procs[0].Parameters) != 1 {
		t.Fatal("expected one procedure with one parameter")
	}
	param := procs[0].Parameters[0]
	if param.Name != "Table" {
		t.Errorf("parameter name = %q, want Table", param.Name)
	}
	if !param.IsVar {
		t.Error("parameter should be VAR")
	}
	dn, ok := param.Type.(*ast.DotNetType)
	if !ok {
		t.Fatalf("parameter type is %T, want DotNetType", param.Type)
	}
	if dn.TypeName != "System.String" {
		t.Errorf("type name = %q", dn.TypeName)
	}
}

func TestMoreKeywordParameterNames(t *testing.T) {
	source := `OBJECT Codeunit 50000 T{CODE{
PROCEDURE F@1(Code@1 : Code[10];Page@2 : Integer;Report@3 : Text[30]);
BEGIN
END;
}}`
	doc, p := parseSource(t, source)
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}

	params := doc.Object.Code.Procedures[0].Parameters
	if len(params) != 3 {
		t.Fatalf("parameters = %d, want 3", len(params))
	}
	names := []string{params[0].Name, params[1].Name, params[2].Name}
	want := []string{"Code", "Page", "Report"}
	for i := range want {
		if !strings.EqualFold(names[i], want[i]) {
			t.Errorf("parameter %d name = %q, want %q", i, names[i], want[i])
		}
	}
}
