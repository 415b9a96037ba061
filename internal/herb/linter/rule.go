// Package linter provides the rule engine for HTML+ERB templates.
//
// Rules come in two variants: TreeRules inspect the parsed document and
// TextRules inspect the raw source. Rules that can correct their offenses
// additionally implement TreeFixer or TextFixer. Offenses can be suppressed
// per line with `<%# herb:disable rule-name %>` comments.
package linter

import (
	"errors"

	"github.com/albertocavalcante/herb/internal/herb/ast"
)

// Source is stamped on every offense produced by the engine.
const Source = "Herb Linter"

// ErrNotFixable is returned by autofix implementations when an offense cannot
// be corrected. The offense is then reported as unfixed.
var ErrNotFixable = errors.New("offense cannot be fixed")

// Rule is the contract shared by all lint rules.
type Rule interface {
	// Name is the unique kebab-case identifier (e.g., "html-tag-name-lowercase").
	Name() string

	// Description is a one-line summary shown by `herblint rules`.
	Description() string

	// Category groups related rules (e.g., "html", "erb", "herb").
	Category() string

	// DefaultConfig is the configuration used when the user provides none.
	DefaultConfig() RuleConfig
}

// TreeRule inspects the parsed document.
type TreeRule interface {
	Rule
	Check(doc *ast.Document, ctx *Context) []UnboundOffense
}

// TextRule inspects the raw source text.
type TextRule interface {
	Rule
	CheckText(source string, ctx *Context) []UnboundOffense
}

// TreeFixer is a TreeRule that can correct its offenses by mutating the
// document in place.
type TreeFixer interface {
	TreeRule
	Autofix(offense Offense, doc *ast.Document, ctx *Context) error
}

// TextFixer is a TextRule that can correct its offenses by rewriting the
// source. Fix contexts implementing Ranged let the engine apply several
// fixes in a single pass.
type TextFixer interface {
	TextRule
	AutofixText(offense Offense, source string, ctx *Context) (string, error)
}

// Enabler lets a rule opt out of documents it does not understand, for
// example rules about HTML structure in XML templates.
type Enabler interface {
	Enabled(doc *ast.Document, ctx *Context) bool
}

// Ranged is implemented by text fix contexts that touch a byte range of the
// source.
type Ranged interface {
	Range() (start, end int)
}

// Autocorrectable reports whether r can fix at least some of its offenses.
func Autocorrectable(r Rule) bool {
	switch r.(type) {
	case TreeFixer, TextFixer:
		return true
	}
	return false
}

// Meta implements the descriptive half of Rule. Rules embed it.
type Meta struct {
	RuleName string
	Doc      string
	Group    string

	// Severity is the default severity.
	Severity Severity
	// Disabled turns the rule off unless the user enables it.
	Disabled bool
	// Include restricts the rule to matching files by default.
	Include []string
}

func (m Meta) Name() string        { return m.RuleName }
func (m Meta) Description() string { return m.Doc }
func (m Meta) Category() string    { return m.Group }

func (m Meta) DefaultConfig() RuleConfig {
	return RuleConfig{
		Enabled:  !m.Disabled,
		Severity: m.Severity,
		Include:  m.Include,
	}
}

// UnboundOffense is what a rule reports before the engine attaches its
// identity and configured severity.
type UnboundOffense struct {
	Message  string
	Location ast.Location
	// Fix is rule-private data needed to correct the offense.
	Fix any
}

// Offense is a reported problem.
type Offense struct {
	Message  string       `json:"message"`
	Location ast.Location `json:"location"`
	Severity Severity     `json:"severity"`
	Code     string       `json:"code"`
	Source   string       `json:"source"`
	FileName string       `json:"filename,omitempty"`

	Fix any `json:"-"`
}

// Bind attaches rule identity and severity.
func (u UnboundOffense) Bind(rule string, severity Severity, fileName string) Offense {
	return Offense{
		Message:  u.Message,
		Location: u.Location,
		Severity: severity,
		Code:     rule,
		Source:   Source,
		FileName: fileName,
		Fix:      u.Fix,
	}
}

// Line returns the line the offense starts on.
func (o Offense) Line() int { return o.Location.Start.Line }

type offenseKey struct {
	code string
	loc  ast.Location
}

func keyOf(o Offense) offenseKey {
	return offenseKey{code: o.Code, loc: o.Location}
}
