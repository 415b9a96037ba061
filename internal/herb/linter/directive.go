package linter

import (
	"regexp"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
)

const (
	// DisablePrefix starts a line-scoped suppression directive.
	DisablePrefix = "herb:disable"

	// IgnoreFileDirective, as the entire content of an ERB comment, turns off
	// linting for the whole file.
	IgnoreFileDirective = "herb:linter ignore"

	// AllRules in a directive suppresses every rule on its line.
	AllRules = "all"
)

// Malformation classifies directive syntax errors.
type Malformation int

const (
	WellFormed Malformation = iota
	MissingSpace
	MissingRules
	LeadingComma
	TrailingComma
	ConsecutiveCommas
	Malformed
)

func (m Malformation) String() string {
	switch m {
	case WellFormed:
		return "well-formed"
	case MissingSpace:
		return "missing space"
	case MissingRules:
		return "missing rules"
	case LeadingComma:
		return "leading comma"
	case TrailingComma:
		return "trailing comma"
	case ConsecutiveCommas:
		return "consecutive commas"
	default:
		return "malformed"
	}
}

// RuleNameDetail locates one rule name inside the comment content.
type RuleNameDetail struct {
	Name string
	// Offset is the byte offset of Name in the untrimmed comment content.
	Offset int
	Length int
}

// Directive is a parsed `herb:disable` comment.
type Directive struct {
	RuleNames       []string
	RuleNameDetails []RuleNameDetail
	// RulesString is the raw rule list after the prefix.
	RulesString string
	// Malformation is WellFormed unless the directive could not be parsed,
	// in which case RuleNames is empty.
	Malformation Malformation
}

// Valid reports whether the directive parsed cleanly.
func (d *Directive) Valid() bool { return d.Malformation == WellFormed }

// Includes reports whether name, or "all", is listed.
func (d *Directive) Includes(name string) bool {
	for _, n := range d.RuleNames {
		if n == name || n == AllRules {
			return true
		}
	}
	return false
}

var consecutiveCommas = regexp.MustCompile(`,\s*,`)

// ParseDirective parses the content of an ERB comment. ok is false when the
// content is not a directive at all.
func ParseDirective(content string) (d *Directive, ok bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, DisablePrefix) {
		return nil, false
	}

	rest := trimmed[len(DisablePrefix):]
	if rest == "" {
		return &Directive{Malformation: MissingRules}, true
	}
	if c := rest[0]; c != ' ' && c != '\t' && c != '\n' {
		return &Directive{Malformation: MissingSpace}, true
	}

	rulesString := strings.TrimSpace(rest)
	d = &Directive{RulesString: rulesString}
	switch {
	case rulesString == "":
		d.Malformation = MissingRules
		return d, true
	case strings.HasSuffix(rulesString, ","):
		d.Malformation = TrailingComma
		return d, true
	case consecutiveCommas.MatchString(rulesString):
		d.Malformation = ConsecutiveCommas
		return d, true
	case strings.HasPrefix(rulesString, ","):
		d.Malformation = LeadingComma
		return d, true
	}

	names := strings.Split(rulesString, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
		if names[i] == "" {
			d.Malformation = Malformed
			return d, true
		}
	}

	base := strings.Index(content, DisablePrefix) + len(DisablePrefix)
	base += strings.Index(content[base:], rulesString)
	cursor := 0
	for _, name := range names {
		i := strings.Index(rulesString[cursor:], name)
		if i < 0 {
			d.Malformation = Malformed
			d.RuleNameDetails = nil
			return d, true
		}
		d.RuleNames = append(d.RuleNames, name)
		d.RuleNameDetails = append(d.RuleNameDetails, RuleNameDetail{
			Name:   name,
			Offset: base + cursor + i,
			Length: len(name),
		})
		cursor += i + len(name)
	}
	return d, true
}

// DirectiveComment is a directive together with the ERB comment it came from.
type DirectiveComment struct {
	Node      *ast.ERB
	Directive *Directive
}

// Line returns the line the directive applies to.
func (c DirectiveComment) Line() int { return c.Node.Loc().Start.Line }

// NameLocation returns the precise location of a rule name in the comment.
func (c DirectiveComment) NameLocation(detail RuleNameDetail) ast.Location {
	start := c.Node.Content.Location.Start
	return ast.Loc(start.Line, start.Column+detail.Offset, start.Line, start.Column+detail.Offset+detail.Length)
}

// Directives returns every herb:disable comment in the document, valid or
// not, in source order.
func Directives(doc *ast.Document) []DirectiveComment {
	var out []DirectiveComment
	ast.Inspect(doc, func(n ast.Node) bool {
		erb, ok := n.(*ast.ERB)
		if !ok || !erb.IsComment() || erb.Content.Empty() {
			return true
		}
		if d, ok := ParseDirective(erb.Content.Value); ok {
			out = append(out, DirectiveComment{Node: erb, Directive: d})
		}
		return true
	})
	return out
}

// HasIgnoreFileDirective reports whether the document opts out of linting.
func HasIgnoreFileDirective(doc *ast.Document) bool {
	found := false
	ast.Inspect(doc, func(n ast.Node) bool {
		if found {
			return false
		}
		if erb, ok := n.(*ast.ERB); ok && erb.IsComment() && strings.TrimSpace(erb.Content.Value) == IgnoreFileDirective {
			found = true
		}
		return true
	})
	return found
}
