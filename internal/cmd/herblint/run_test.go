package herblint

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("GITHUB_ACTIONS", "")
	var out, errOut bytes.Buffer
	code = RunWithIO(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Version(t *testing.T) {
	for _, args := range [][]string{{"--version"}, {"version"}} {
		code, stdout, _ := run(t, "", args...)
		if code != 0 {
			t.Errorf("RunWithIO(%v) returned %d, want 0", args, code)
		}
		if !strings.HasPrefix(stdout, "herblint ") {
			t.Errorf("RunWithIO(%v) output = %q", args, stdout)
		}
	}
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := run(t, "", "--help")
	if code != 0 {
		t.Errorf("RunWithIO(--help) returned %d, want 0", code)
	}
	for _, want := range []string{"--fix", "<%# herb:disable rule-name %>", "<%# herb:linter ignore %>"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_IgnoreFileDirective(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "ignored.html.erb", "<%# herb:linter ignore %>\n<DIV></DIV>\n")

	code, stdout, stderr := run(t, "", file)
	if code != 0 {
		t.Errorf("exit code = %d, want 0\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
}

func TestRun_Clean(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "clean.html.erb", "<p>Hello</p>\n")

	code, stdout, stderr := run(t, "", file)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "Checked 1 file, all clean") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, stdout, _ := run(t, "", file)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	for _, want := range []string{
		":1:2: error: Opening tag name `<DIV>` should be lowercase.",
		"(html-tag-name-lowercase)",
		"Found 2 errors in 1 of 1 file",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_WarningsOnly(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "quotes.html.erb", "<div class='box'></div>\n")

	code, stdout, _ := run(t, "", file)
	if code != 2 {
		t.Errorf("exit code = %d, want 2\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "warning:") {
		t.Errorf("stdout = %q", stdout)
	}

	code, _, _ = run(t, "", "--warnings-as-errors", file)
	if code != 1 {
		t.Errorf("--warnings-as-errors exit code = %d, want 1", code)
	}
}

func TestRun_DisableRule(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, stdout, stderr := run(t, "", "--disable", "html-tag-name-lowercase", file)
	if code != 0 {
		t.Errorf("exit code = %d, want 0\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
}

func TestRun_UnknownRule(t *testing.T) {
	code, _, stderr := run(t, "", "--disable", "html-tag-name-lowercas", t.TempDir())
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, `did you mean "html-tag-name-lowercase"?`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	code, _, stderr := run(t, "", "--format", "xml", t.TempDir())
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, `unknown format "xml"`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_FixAndDiffExclusive(t *testing.T) {
	code, _, stderr := run(t, "", "--fix", "--diff", t.TempDir())
	if code != 1 || !strings.Contains(stderr, "mutually exclusive") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, stdout, _ := run(t, "", "--format", "json", file)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	var out struct {
		Offenses []struct {
			Code     string `json:"code"`
			Severity string `json:"severity"`
		} `json:"offenses"`
		Summary struct {
			FilesChecked int `json:"filesChecked"`
			TotalErrors  int `json:"totalErrors"`
		} `json:"summary"`
		Completed bool `json:"completed"`
		Clean     bool `json:"clean"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(out.Offenses) != 2 || out.Offenses[0].Code != "html-tag-name-lowercase" {
		t.Errorf("offenses = %+v", out.Offenses)
	}
	if out.Summary.FilesChecked != 1 || out.Summary.TotalErrors != 2 {
		t.Errorf("summary = %+v", out.Summary)
	}
	if !out.Completed || out.Clean {
		t.Errorf("completed = %v, clean = %v", out.Completed, out.Clean)
	}
}

func TestRun_Fix(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, stdout, stderr := run(t, "", "--fix", file)
	if code != 0 {
		t.Errorf("exit code = %d, want 0\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<div></div>\n" {
		t.Errorf("fixed content = %q", got)
	}
}

func TestRun_Diff(t *testing.T) {
	dir := t.TempDir()
	file := writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, stdout, _ := run(t, "", "--diff", file)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	for _, want := range []string{"-<DIV></DIV>", "+<div></div>"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("diff missing %q:\n%s", want, stdout)
		}
	}
	got, _ := os.ReadFile(file)
	if string(got) != "<DIV></DIV>\n" {
		t.Errorf("--diff modified the file: %q", got)
	}
}

func TestRun_Stdin(t *testing.T) {
	code, stdout, _ := run(t, "<DIV></DIV>\n", "-")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout, "stdin.html.erb:1:2: error:") {
		t.Errorf("stdout = %q", stdout)
	}

	code, stdout, _ = run(t, "<DIV></DIV>\n", "--fix", "-")
	if code != 0 || stdout != "<div></div>\n" {
		t.Errorf("--fix stdin: code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTemplate(t, dir, ".herb.yml", `linter:
  rules:
    html-tag-name-lowercase:
      enabled: false
`)
	file := writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, stdout, stderr := run(t, "", "--config", cfg, file)
	if code != 0 {
		t.Errorf("exit code = %d, want 0\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
}

func TestRun_ConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTemplate(t, dir, ".herb.yml", "linter:\n  colour: red\n")

	code, _, stderr := run(t, "", "--config", cfg, dir)
	if code != 1 || stderr == "" {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_LinterDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTemplate(t, dir, ".herb.yml", "linter:\n  enabled: false\n")
	writeTemplate(t, dir, "upper.html.erb", "<DIV></DIV>\n")

	code, _, stderr := run(t, "", "--config", cfg, dir)
	if code != 0 || !strings.Contains(stderr, "linter is disabled") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_NoFiles(t *testing.T) {
	code, stdout, _ := run(t, "", t.TempDir())
	if code != 0 || !strings.Contains(stdout, "No files found") {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRules(t *testing.T) {
	code, stdout, _ := run(t, "", "rules")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"Available rules (", "html-tag-name-lowercase", "[fix]", "[off]"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("rules output missing %q", want)
		}
	}

	code, _, stderr := run(t, "", "rules", "--category", "nope")
	if code != 1 || !strings.Contains(stderr, "unknown category") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestExplain(t *testing.T) {
	code, stdout, _ := run(t, "", "explain", "html-attribute-double-quotes")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"Severity:    warning", "Autofix:     yes", "herb:disable html-attribute-double-quotes"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("explain output missing %q:\n%s", want, stdout)
		}
	}

	code, _, stderr := run(t, "", "explain", "html-img-alt")
	if code != 1 || !strings.Contains(stderr, "did you mean") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}
