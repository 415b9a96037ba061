package linter

import (
	"fmt"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/filekind"
	"github.com/albertocavalcante/herb/internal/herb/parser"
)

// ParserNoErrors is the only rule that runs on documents with parse errors.
const ParserNoErrors = "parser-no-errors"

// Options control a single lint or autofix call.
type Options struct {
	// FileName is used for include/exclude matching and is copied into
	// every offense.
	FileName string

	// IgnoreDisableComments reports offenses even when a herb:disable
	// comment covers them. Directives are still validated.
	IgnoreDisableComments bool
}

// Linter runs the rules of a registry under a configuration. A Linter holds
// no per-file state and is safe for concurrent use.
type Linter struct {
	registry *Registry
	config   *Config
}

// New creates a linter. A nil config uses rule defaults.
func New(registry *Registry, config *Config) *Linter {
	if config == nil {
		config = NewConfig()
	}
	return &Linter{registry: registry, config: config}
}

// Registry returns the linter's rule registry.
func (l *Linter) Registry() *Registry { return l.registry }

// Config returns the linter's configuration.
func (l *Linter) Config() *Config { return l.config }

type boundRule struct {
	rule   Rule
	config RuleConfig
}

// Lint parses source and reports offenses.
func (l *Linter) Lint(source string, opts Options) *LintResult {
	return l.LintDocument(parser.Parse(source), source, opts)
}

// LintDocument reports offenses for an already parsed document. source must
// be the text doc was parsed from.
func (l *Linter) LintDocument(doc *ast.Document, source string, opts Options) *LintResult {
	ctx := l.newContext(opts)
	rules := l.enabledRules(doc, ctx, false)

	if HasIgnoreFileDirective(doc) {
		return newLintResult(nil, len(rules), 0, nil)
	}

	offenses, ignored, faults := l.collect(doc, source, ctx, rules, opts)
	return newLintResult(offenses, len(rules), ignored, faults)
}

func (l *Linter) newContext(opts Options) *Context {
	return &Context{
		FileName:       opts.FileName,
		FileKind:       filekind.Classify(opts.FileName),
		ValidRuleNames: l.registry.Names(),
		Extensions:     make(map[string]any),
	}
}

// enabledRules resolves configuration and returns the rules that run on the
// document, in registration order.
func (l *Linter) enabledRules(doc *ast.Document, ctx *Context, fixersOnly bool) []boundRule {
	var out []boundRule
	for _, rule := range l.registry.rules {
		if fixersOnly && !Autocorrectable(rule) {
			continue
		}
		cfg := l.config.Resolve(rule)
		if !cfg.Enabled || !cfg.AppliesTo(ctx.FileName, l.config.Files) {
			continue
		}
		if e, ok := rule.(Enabler); ok && !e.Enabled(doc, ctx) {
			continue
		}
		out = append(out, boundRule{rule: rule, config: cfg})
	}
	return out
}

// collect runs rules in two passes. The first pass runs every rule that
// does not validate directives and records what fired on each line; the
// second runs the directive rules with that record, then removes offenses
// covered by directives.
func (l *Linter) collect(doc *ast.Document, source string, ctx *Context, rules []boundRule, opts Options) ([]Offense, int, []Fault) {
	var faults []Fault
	run := func(b boundRule) []Offense {
		found, fault := runCheck(b.rule, doc, source, ctx)
		if fault != nil {
			faults = append(faults, *fault)
			return nil
		}
		out := make([]Offense, len(found))
		for i, u := range found {
			out[i] = u.Bind(b.rule.Name(), b.config.Severity, opts.FileName)
		}
		return out
	}

	if doc.HasErrors() {
		var offenses []Offense
		for _, b := range rules {
			if b.rule.Name() == ParserNoErrors {
				offenses = append(offenses, run(b)...)
			}
		}
		return offenses, 0, faults
	}

	var offenses, directiveOffenses []Offense
	var directiveRules []boundRule
	for _, b := range rules {
		if IsDirectiveRule(b.rule.Name()) {
			directiveRules = append(directiveRules, b)
			continue
		}
		offenses = append(offenses, run(b)...)
	}

	ctx.recordFired(offenses)
	for _, b := range directiveRules {
		directiveOffenses = append(directiveOffenses, run(b)...)
	}

	ignored := 0
	if !opts.IgnoreDisableComments {
		offenses, ignored = NewSuppressions(Directives(doc)).Filter(offenses)
	}
	return append(offenses, directiveOffenses...), ignored, faults
}

// runCheck invokes a rule, converting a panic into a Fault.
func runCheck(rule Rule, doc *ast.Document, source string, ctx *Context) (found []UnboundOffense, fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			fault = &Fault{Rule: rule.Name(), Phase: "check", Message: fmt.Sprint(r)}
		}
	}()

	switch r := rule.(type) {
	case TreeRule:
		return r.Check(doc, ctx), nil
	case TextRule:
		return r.CheckText(source, ctx), nil
	}
	return nil, nil
}
