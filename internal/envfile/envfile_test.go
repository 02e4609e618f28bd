package envfile

import (
	"strings"
	"testing"
)

func TestParse_BasicContent(t *testing.T) {
	env, err := Parse("# devstrap exports\nXAMPP_HOME=C:\\xampp\nexport CLOUDSDK_PYTHON=python3\n\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if env["XAMPP_HOME"] != `C:\xampp` {
		t.Fatalf("XAMPP_HOME = %q", env["XAMPP_HOME"])
	}
	if env["CLOUDSDK_PYTHON"] != "python3" {
		t.Fatalf("CLOUDSDK_PYTHON = %q", env["CLOUDSDK_PYTHON"])
	}
}

func TestParse_QuotedValues(t *testing.T) {
	env, err := Parse("A=\"with space\"\nB='single $literal'\nC=\"tab\\there\"\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if env["A"] != "with space" {
		t.Fatalf("A = %q", env["A"])
	}
	if env["B"] != "single $literal" {
		t.Fatalf("B = %q", env["B"])
	}
}

func TestParse_InvalidLine(t *testing.T) {
	_, err := Parse("JUSTAWORD\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("error = %v", err)
	}
}

func TestParse_UnterminatedQuote(t *testing.T) {
	_, err := Parse("A=\"never closed\n")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPatch_UpdatesExistingKey(t *testing.T) {
	content := "# exports\nXAMPP_HOME=C:\\old\n"
	got := Patch(content, map[string]string{"XAMPP_HOME": `C:\xampp`})
	if !strings.Contains(got, `XAMPP_HOME=C:\xampp`) {
		t.Fatalf("patched = %q", got)
	}
	if strings.Contains(got, `C:\old`) {
		t.Fatalf("old value survived: %q", got)
	}
	if !strings.Contains(got, "# exports") {
		t.Fatalf("comment dropped: %q", got)
	}
}

func TestPatch_AppendsNewKey(t *testing.T) {
	got := Patch("EXISTING=1", map[string]string{"JAVA_HOME": `C:\java`})
	env, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse patched: %v", err)
	}
	if env["EXISTING"] != "1" || env["JAVA_HOME"] != `C:\java` {
		t.Fatalf("env = %v", env)
	}
}

func TestPatch_DropsDuplicateDefinitions(t *testing.T) {
	content := "A=1\nA=2\n"
	got := Patch(content, map[string]string{"A": "3"})
	if strings.Count(got, "A=") != 1 {
		t.Fatalf("patched = %q", got)
	}
	env, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse patched: %v", err)
	}
	if env["A"] != "3" {
		t.Fatalf("A = %q", env["A"])
	}
}

func TestPatch_QuotesValuesWithSpaces(t *testing.T) {
	got := Patch("", map[string]string{"GOPATH": `C:\Program Files\Go`})
	if !strings.Contains(got, `GOPATH="C:\\Program Files\\Go"`) {
		t.Fatalf("patched = %q", got)
	}
	env, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse patched: %v", err)
	}
	if env["GOPATH"] != `C:\Program Files\Go` {
		t.Fatalf("GOPATH = %q", env["GOPATH"])
	}
}

func TestRemove_DropsKeyLines(t *testing.T) {
	content := "# exports\nXAMPP_HOME=C:\\xampp\nKEEP=1\n"
	got := Remove(content, []string{"XAMPP_HOME"})
	if strings.Contains(got, "XAMPP_HOME") {
		t.Fatalf("removed key survived: %q", got)
	}
	if !strings.Contains(got, "KEEP=1") || !strings.Contains(got, "# exports") {
		t.Fatalf("unrelated content dropped: %q", got)
	}
}

func TestRemove_NoKeysIsNoop(t *testing.T) {
	content := "A=1\n"
	if got := Remove(content, nil); got != content {
		t.Fatalf("Remove = %q", got)
	}
}

func TestRender_SortedAndParseable(t *testing.T) {
	got := Render(map[string]string{"B": "2", "A": "value with space"})
	if !strings.HasPrefix(got, "A=") {
		t.Fatalf("not sorted: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("no trailing newline: %q", got)
	}
	env, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse rendered: %v", err)
	}
	if env["A"] != "value with space" || env["B"] != "2" {
		t.Fatalf("env = %v", env)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Fatalf("Render(nil) = %q", got)
	}
}

func TestRenderPowerShell(t *testing.T) {
	got := RenderPowerShell(map[string]string{"XAMPP_HOME": `C:\xampp`, "NAME": "it's"})
	if !strings.Contains(got, `$env:XAMPP_HOME = 'C:\xampp'`) {
		t.Fatalf("rendered = %q", got)
	}
	if !strings.Contains(got, "$env:NAME = 'it''s'") {
		t.Fatalf("single quote not doubled: %q", got)
	}
}

func TestPatchThenParse_RoundTrip(t *testing.T) {
	content := ""
	content = Patch(content, map[string]string{"XAMPP_HOME": `C:\xampp`})
	content = Patch(content, map[string]string{"CLOUDSDK_PYTHON": "python3"})
	env, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(env) != 2 {
		t.Fatalf("env = %v", env)
	}
}
