package linter

import (
	"github.com/albertocavalcante/herb/internal/herb/filekind"
)

// Context is the read-only per-file state handed to rules.
type Context struct {
	// FileName is the path of the file being linted, relative to the project
	// root when known. It may be empty.
	FileName string

	// FileKind is the classification of FileName.
	FileKind filekind.Kind

	// ValidRuleNames lists every registered rule.
	ValidRuleNames []string

	// IgnoredOffensesByLine records, per line, the rules that reported an
	// offense there before directives were applied. Directive validation
	// rules use it to decide whether a directive suppressed anything.
	IgnoredOffensesByLine map[int]map[string]bool

	// Extensions carries rule-specific data.
	Extensions map[string]any
}

// IsXML reports whether the file is an XML template.
func (c *Context) IsXML() bool {
	return c != nil && c.FileKind.IsXML()
}

// FiredOn returns the rules that reported offenses on line.
func (c *Context) FiredOn(line int) map[string]bool {
	if c == nil || c.IgnoredOffensesByLine == nil {
		return nil
	}
	return c.IgnoredOffensesByLine[line]
}

func (c *Context) recordFired(offenses []Offense) {
	c.IgnoredOffensesByLine = make(map[int]map[string]bool)
	for _, o := range offenses {
		set := c.IgnoredOffensesByLine[o.Line()]
		if set == nil {
			set = make(map[string]bool)
			c.IgnoredOffensesByLine[o.Line()] = set
		}
		set[o.Code] = true
	}
}
