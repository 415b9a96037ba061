package rules_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
	"github.com/albertocavalcante/herb/internal/herb/linter/rules"
)

// newLinter returns a linter over the built-in registry with only the named
// rules enabled.
func newLinter(enable ...string) *linter.Linter {
	reg := rules.NewRegistry()
	cfg := linter.NewConfig()
	cfg.Disable(reg, "all")
	cfg.Enable(reg, enable...)
	return linter.New(reg, cfg)
}

func lint(t *testing.T, src string, opts linter.Options, enable ...string) *linter.LintResult {
	t.Helper()
	r := newLinter(enable...).Lint(src, opts)
	for _, f := range r.Faults {
		t.Errorf("unexpected fault: %v", f)
	}
	return r
}

func autofix(t *testing.T, src string, opts linter.Options, enable ...string) *linter.AutofixResult {
	t.Helper()
	r := newLinter(enable...).Autofix(src, opts)
	for _, f := range r.Faults {
		t.Errorf("unexpected fault: %v", f)
	}
	return r
}

func messages(offenses []linter.Offense) []string {
	out := make([]string, len(offenses))
	for i, o := range offenses {
		out[i] = o.Message
	}
	return out
}

// ruleCase lints input with a single rule enabled and compares messages.
type ruleCase struct {
	name     string
	input    string
	fileName string
	want     []string
}

func runRuleCases(t *testing.T, rule string, tests []ruleCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := lint(t, tt.input, linter.Options{FileName: tt.fileName}, rule)
			if diff := cmp.Diff(tt.want, messages(r.Offenses), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("messages mismatch (-want +got):\n%s", diff)
			}
			for _, o := range r.Offenses {
				if o.Code != rule {
					t.Errorf("offense code = %q, want %q", o.Code, rule)
				}
			}
		})
	}
}

// fixCase autofixes input with a single rule enabled.
type fixCase struct {
	name     string
	input    string
	fileName string
	want     string
}

func runFixCases(t *testing.T, rule string, tests []fixCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := autofix(t, tt.input, linter.Options{FileName: tt.fileName}, rule)
			if r.Source != tt.want {
				t.Errorf("Autofix() source = %q, want %q", r.Source, tt.want)
			}
			if len(r.Unfixed) != 0 {
				t.Errorf("Unfixed = %v, want none", messages(r.Unfixed))
			}
			if len(r.Fixed) == 0 {
				t.Errorf("Fixed is empty")
			}
		})
	}
}

func TestAll_RegistersEveryRule(t *testing.T) {
	reg := rules.NewRegistry()
	all := rules.All()
	if got := len(reg.Rules()); got != len(all) {
		t.Fatalf("registry has %d rules, want %d", got, len(all))
	}
	for _, r := range all {
		if r.Description() == "" {
			t.Errorf("%s has no description", r.Name())
		}
		switch r.(type) {
		case linter.TreeRule, linter.TextRule:
		default:
			t.Errorf("%s is neither a tree nor a text rule", r.Name())
		}
	}
}

func TestAll_DefaultConfig(t *testing.T) {
	reg := rules.NewRegistry()
	tests := []struct {
		name     string
		enabled  bool
		severity linter.Severity
	}{
		{"parser-no-errors", true, linter.SeverityError},
		{"html-no-block-inside-inline", false, linter.SeverityError},
		{"html-no-empty-attributes", true, linter.SeverityWarning},
		{"herb-disable-comment-malformed", true, linter.SeverityError},
		{"herb-disable-comment-unnecessary", true, linter.SeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := reg.Rule(tt.name)
			if !ok {
				t.Fatalf("rule %s not registered", tt.name)
			}
			cfg := r.DefaultConfig()
			if cfg.Enabled != tt.enabled || cfg.Severity != tt.severity {
				t.Errorf("DefaultConfig() = {%v %v}, want {%v %v}", cfg.Enabled, cfg.Severity, tt.enabled, tt.severity)
			}
		})
	}
}

func TestAutocorrectable(t *testing.T) {
	reg := rules.NewRegistry()
	fixable := map[string]bool{
		"html-tag-name-lowercase":             true,
		"html-no-self-closing":                true,
		"erb-no-extra-newline":                true,
		"erb-require-trailing-newline":        true,
		"html-img-require-alt":                false,
		"herb-disable-comment-malformed":      false,
		"erb-no-extra-whitespace-inside-tags": true,
	}
	for name, want := range fixable {
		r, _ := reg.Rule(name)
		if got := linter.Autocorrectable(r); got != want {
			t.Errorf("Autocorrectable(%s) = %v, want %v", name, got, want)
		}
	}
}

func TestParserNoErrors(t *testing.T) {
	r := lint(t, "<div>", linter.Options{}, "parser-no-errors", "html-tag-name-lowercase")
	if len(r.Offenses) != 1 {
		t.Fatalf("got %d offenses, want 1: %v", len(r.Offenses), messages(r.Offenses))
	}
	o := r.Offenses[0]
	if o.Code != "parser-no-errors" {
		t.Errorf("Code = %q", o.Code)
	}
	if want := "(`MISSING_CLOSING_TAG_ERROR`)"; !strings.HasSuffix(o.Message, want) {
		t.Errorf("Message = %q, want suffix %q", o.Message, want)
	}
	if o.Location.Start != (ast.Position{Line: 1, Column: 0}) {
		t.Errorf("Location = %v", o.Location)
	}
}
