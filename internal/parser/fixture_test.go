package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/klauskaan/go-cal/internal/lexer"
)

// Snapshot fixtures: whole-object parses rendered through the AST String
// forms plus the sanitized error list. Catches accidental changes to
// tree shape, operator precedence, and error wording in one place.
func TestParseFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{
			"codeunit with control flow",
			`OBJECT Codeunit 50100 Flow
{
  CODE
  {
    VAR
      i@1000 : Integer;
      Total@1001 : Decimal;

    PROCEDURE Sum@1(Count@1000 : Integer) : Decimal;
    BEGIN
      Total := 0;
      FOR i := 1 TO Count DO
        Total += i;
      IF Total > 100 THEN
        EXIT(100)
      ELSE
        EXIT(Total);
    END;

    PROCEDURE Drain@2();
    BEGIN
      REPEAT
        Total -= 1;
      UNTIL Total <= 0;
      WHILE Total < 10 DO
        Total += 2;
    END;

    BEGIN
    END.
  }
}`,
		},
		{
			"case dispatch",
			`OBJECT Codeunit 50101 Dispatch
{
  CODE
  {
    PROCEDURE Route@1(Status@1000 : 'Open,Released,Closed');
    BEGIN
      CASE Status OF
        Status::Open:
          Handle(1);
        Status::Released, Status::Closed:
          BEGIN
            Handle(2);
            Handle(3);
          END;
        ELSE
          Handle(0);
      END;
    END;

    BEGIN
    END.
  }
}`,
		},
		{
			"recovery keeps partial tree",
			`OBJECT Codeunit 50102 Broken
{
  CODE
  {
    PROCEDURE P@1();
    BEGIN
      REPEAT x := 1; END;
    END;
  }
}`,
		},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			l := lexer.New(fixture.source)
			p := New(l.Tokenize())
			doc := p.Parse()

			var b strings.Builder
			b.WriteString(doc.String())
			b.WriteString("\n---\n")
			for _, err := range p.Errors() {
				fmt.Fprintf(&b, "%s\n", err.Error())
			}
			snaps.MatchSnapshot(t, b.String())
		})
	}
}
