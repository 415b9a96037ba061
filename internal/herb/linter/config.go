package linter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RuleConfig is the effective configuration of one rule.
type RuleConfig struct {
	Enabled  bool
	Severity Severity

	// Include restricts the rule to files matching one of the patterns.
	Include []string
	// Exclude skips files matching one of the patterns.
	Exclude []string
	// Only overrides Include when set.
	Only []string
}

// RuleOverride is a user-supplied partial RuleConfig. Nil fields keep the
// default.
type RuleOverride struct {
	Enabled  *bool
	Severity *Severity
	Include  []string
	Exclude  []string
	Only     []string
}

// Merge applies o on top of c. Scalars are replaced when set; lists are
// replaced, not concatenated, when non-nil.
func (c RuleConfig) Merge(o RuleOverride) RuleConfig {
	out := c
	if o.Enabled != nil {
		out.Enabled = *o.Enabled
	}
	if o.Severity != nil {
		out.Severity = *o.Severity
	}
	if o.Include != nil {
		out.Include = o.Include
	}
	if o.Exclude != nil {
		out.Exclude = o.Exclude
	}
	if o.Only != nil {
		out.Only = o.Only
	}
	return out
}

// FileFilter is the linter-wide include/exclude configuration.
type FileFilter struct {
	Include []string
	Exclude []string
}

// Match reports whether fileName passes the filter. An empty file name
// always passes.
func (f FileFilter) Match(fileName string) bool {
	if fileName == "" {
		return true
	}
	name := normalizePath(fileName)
	if len(f.Include) > 0 && !matchAny(f.Include, name) {
		return false
	}
	return !matchAny(f.Exclude, name)
}

// AppliesTo reports whether the rule runs on fileName. Only takes precedence
// over Include; Exclude always applies.
func (c RuleConfig) AppliesTo(fileName string, files FileFilter) bool {
	if fileName == "" {
		return true
	}
	if !files.Match(fileName) {
		return false
	}
	name := normalizePath(fileName)
	switch {
	case len(c.Only) > 0:
		if !matchAny(c.Only, name) {
			return false
		}
	case len(c.Include) > 0:
		if !matchAny(c.Include, name) {
			return false
		}
	}
	return !matchAny(c.Exclude, name)
}

// Config holds user configuration for a lint run.
type Config struct {
	// Rules maps rule names to overrides. Unknown names are ignored.
	Rules map[string]RuleOverride

	// Files filters which files are linted at all.
	Files FileFilter

	// WarningsAsErrors makes warnings fail the run.
	WarningsAsErrors bool
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{Rules: make(map[string]RuleOverride)}
}

// Resolve returns the effective configuration of rule.
func (c *Config) Resolve(rule Rule) RuleConfig {
	def := rule.DefaultConfig()
	if c == nil {
		return def
	}
	return def.Merge(c.Rules[rule.Name()])
}

// Enable turns on every rule matched by the selectors (see Registry.Expand).
func (c *Config) Enable(reg *Registry, selectors ...string) {
	c.setEnabled(reg, true, selectors)
}

// Disable turns off every rule matched by the selectors.
func (c *Config) Disable(reg *Registry, selectors ...string) {
	c.setEnabled(reg, false, selectors)
}

func (c *Config) setEnabled(reg *Registry, enabled bool, selectors []string) {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleOverride)
	}
	for _, sel := range selectors {
		for _, name := range reg.Expand(sel) {
			o := c.Rules[name]
			v := enabled
			o.Enabled = &v
			c.Rules[name] = o
		}
	}
}

// SetSeverity overrides the severity of one rule.
func (c *Config) SetSeverity(name string, sev Severity) {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleOverride)
	}
	o := c.Rules[name]
	o.Severity = &sev
	c.Rules[name] = o
}

func normalizePath(name string) string {
	name = filepath.ToSlash(name)
	return strings.TrimPrefix(name, "./")
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
