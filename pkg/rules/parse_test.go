package rules

import (
	"strings"
	"testing"

	"github.com/rubiojr/msilog/pkg/core"
)

func TestParse(t *testing.T) {
	script := `
# comment
msi_log("INFO", "disk full");
  msi_log("error", "say \"hi\", twice")
msi_log(null, "x")
msi_log(42, "x");
msi_noargs()
`
	stmts, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(stmts))
	}

	first := stmts[0]
	if first.Line != 3 || first.Name != "msi_log" || len(first.Args) != 2 {
		t.Fatalf("unexpected first statement: %+v", first)
	}
	if s, ok := core.ParseForStr(first.Args[0]); !ok || s != "INFO" {
		t.Errorf("expected INFO, got %v", first.Args[0])
	}
	if first.Args[1].Label != "arg2" {
		t.Errorf("expected label arg2, got %s", first.Args[1].Label)
	}

	if s, _ := core.ParseForStr(stmts[1].Args[1]); s != `say "hi", twice` {
		t.Errorf("escapes not decoded: %q", s)
	}
	if stmts[2].Args[0] != nil {
		t.Errorf("expected null argument, got %v", stmts[2].Args[0])
	}
	if stmts[3].Args[0].Type != core.IntMsT || stmts[3].Args[0].Value != 42 {
		t.Errorf("expected integer argument, got %v", stmts[3].Args[0])
	}
	if stmts[4].Name != "msi_noargs" || len(stmts[4].Args) != 0 {
		t.Errorf("unexpected no-arg statement: %+v", stmts[4])
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no parens":      `msi_log "INFO", "x"`,
		"unclosed":       `msi_log("INFO", "x"`,
		"bad name":       `1msi("x")`,
		"empty name":     `("x")`,
		"bad literal":    `msi_log(INFO, "x")`,
		"unterminated":   `msi_log("INFO, x)`,
		"missing comma":  `msi_log("INFO" "x")`,
		"trailing comma": `msi_log("INFO",)`,
		"float":          `msi_log(1.5, "x")`,
	}

	for name, script := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader("\n" + script + "\n"))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.HasPrefix(err.Error(), "line 2:") {
				t.Errorf("expected line number in error, got %v", err)
			}
		})
	}
}

func TestStatementString(t *testing.T) {
	stmt := Statement{Name: "msi_log", Args: []*core.MsParam{nil, core.IntParam("a", 3), core.StrParam("b", "x\ty")}}
	if got := stmt.String(); got != `msi_log(null, 3, "x\ty")` {
		t.Errorf("unexpected String(): %s", got)
	}
}
