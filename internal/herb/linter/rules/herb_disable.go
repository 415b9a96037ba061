package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

// The herb-disable-comment-* rules validate suppression directives. They run
// after every other rule and their own offenses cannot be suppressed.

type herbDisableMalformed struct{ linter.Meta }

// HerbDisableCommentMalformed reports directives whose rule list cannot be
// parsed.
func HerbDisableCommentMalformed() linter.Rule {
	return herbDisableMalformed{linter.Meta{
		RuleName: "herb-disable-comment-malformed",
		Doc:      "Detect malformed herb:disable comments",
		Group:    categoryHerb,
	}}
}

var malformedMessages = map[linter.Malformation]string{
	linter.MissingSpace:      "`herb:disable` comment is missing a space after `herb:disable`. Add a space before the rule names.",
	linter.TrailingComma:     "`herb:disable` comment has a trailing comma. Remove the trailing comma.",
	linter.ConsecutiveCommas: "`herb:disable` comment has consecutive commas. Remove extra commas.",
	linter.LeadingComma:      "`herb:disable` comment starts with a comma. Remove the leading comma.",
	linter.Malformed:         "`herb:disable` comment is malformed.",
}

func (herbDisableMalformed) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	var out []linter.UnboundOffense
	for _, c := range linter.Directives(doc) {
		if msg, ok := malformedMessages[c.Directive.Malformation]; ok {
			out = append(out, linter.UnboundOffense{Message: msg, Location: c.Node.Loc()})
		}
	}
	return out
}

type herbDisableMissingRules struct{ linter.Meta }

// HerbDisableCommentMissingRules reports directives that name no rules.
func HerbDisableCommentMissingRules() linter.Rule {
	return herbDisableMissingRules{linter.Meta{
		RuleName: "herb-disable-comment-missing-rules",
		Doc:      "Require rule names in herb:disable comments",
		Group:    categoryHerb,
	}}
}

func (herbDisableMissingRules) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	var out []linter.UnboundOffense
	for _, c := range linter.Directives(doc) {
		if c.Directive.Malformation == linter.MissingRules {
			out = append(out, linter.UnboundOffense{
				Message:  "`herb:disable` comment is missing rule names. Specify `all` or list specific rules to disable.",
				Location: c.Node.Loc(),
			})
		}
	}
	return out
}

type herbDisableNoDuplicateRules struct{ linter.Meta }

// HerbDisableCommentNoDuplicateRules reports rule names listed twice in one
// directive.
func HerbDisableCommentNoDuplicateRules() linter.Rule {
	return herbDisableNoDuplicateRules{linter.Meta{
		RuleName: "herb-disable-comment-no-duplicate-rules",
		Doc:      "Disallow duplicate rule names in herb:disable comments",
		Group:    categoryHerb,
		Severity: linter.SeverityWarning,
	}}
}

func (herbDisableNoDuplicateRules) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	var out []linter.UnboundOffense
	for _, c := range linter.Directives(doc) {
		seen := make(map[string]bool)
		for _, detail := range c.Directive.RuleNameDetails {
			if seen[detail.Name] {
				out = append(out, linter.UnboundOffense{
					Message:  fmt.Sprintf("Duplicate rule `%s` in `herb:disable` comment. Remove the duplicate.", detail.Name),
					Location: c.NameLocation(detail),
				})
			}
			seen[detail.Name] = true
		}
	}
	return out
}

type herbDisableNoRedundantAll struct{ linter.Meta }

// HerbDisableCommentNoRedundantAll reports "all" combined with specific
// rule names.
func HerbDisableCommentNoRedundantAll() linter.Rule {
	return herbDisableNoRedundantAll{linter.Meta{
		RuleName: "herb-disable-comment-no-redundant-all",
		Doc:      "Disallow combining `all` with specific rules in herb:disable comments",
		Group:    categoryHerb,
		Severity: linter.SeverityWarning,
	}}
}

func (herbDisableNoRedundantAll) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	var out []linter.UnboundOffense
	for _, c := range linter.Directives(doc) {
		specific := false
		for _, name := range c.Directive.RuleNames {
			if name != linter.AllRules {
				specific = true
				break
			}
		}
		if !specific {
			continue
		}
		for _, detail := range c.Directive.RuleNameDetails {
			if detail.Name == linter.AllRules {
				out = append(out, linter.UnboundOffense{
					Message:  "Using `all` with specific rules is redundant. Use `herb:disable all` by itself or list only specific rules.",
					Location: c.NameLocation(detail),
				})
			}
		}
	}
	return out
}

type herbDisableValidRuleName struct{ linter.Meta }

// HerbDisableCommentValidRuleName reports unknown rule names and suggests
// the closest known one.
func HerbDisableCommentValidRuleName() linter.Rule {
	return herbDisableValidRuleName{linter.Meta{
		RuleName: "herb-disable-comment-valid-rule-name",
		Doc:      "Require known rule names in herb:disable comments",
		Group:    categoryHerb,
		Severity: linter.SeverityWarning,
	}}
}

func (herbDisableValidRuleName) Check(doc *ast.Document, ctx *linter.Context) []linter.UnboundOffense {
	if len(ctx.ValidRuleNames) == 0 {
		return nil
	}
	known := append(append([]string(nil), ctx.ValidRuleNames...), linter.AllRules)
	valid := set(known...)

	var out []linter.UnboundOffense
	for _, c := range linter.Directives(doc) {
		for _, detail := range c.Directive.RuleNameDetails {
			if valid[detail.Name] {
				continue
			}
			msg := fmt.Sprintf("Unknown rule `%s`.", detail.Name)
			if suggestion, ok := linter.Suggest(detail.Name, known); ok {
				msg = fmt.Sprintf("Unknown rule `%s`. Did you mean `%s`?", detail.Name, suggestion)
			}
			out = append(out, linter.UnboundOffense{Message: msg, Location: c.NameLocation(detail)})
		}
	}
	return out
}

type herbDisableUnnecessary struct{ linter.Meta }

// HerbDisableCommentUnnecessary reports directives, or rule names within
// them, that did not suppress anything on their line.
func HerbDisableCommentUnnecessary() linter.Rule {
	return herbDisableUnnecessary{linter.Meta{
		RuleName: "herb-disable-comment-unnecessary",
		Doc:      "Detect herb:disable comments that suppress nothing",
		Group:    categoryHerb,
		Severity: linter.SeverityWarning,
	}}
}

func (herbDisableUnnecessary) Check(doc *ast.Document, ctx *linter.Context) []linter.UnboundOffense {
	if len(ctx.ValidRuleNames) == 0 || ctx.IgnoredOffensesByLine == nil {
		return nil
	}
	valid := set(append(append([]string(nil), ctx.ValidRuleNames...), linter.AllRules)...)

	var out []linter.UnboundOffense
	for _, c := range linter.Directives(doc) {
		d := c.Directive
		if !d.Valid() {
			continue
		}
		fired := ctx.FiredOn(c.Line())

		if slices.Contains(d.RuleNames, linter.AllRules) {
			onlyAll := !slices.ContainsFunc(d.RuleNames, func(name string) bool { return name != linter.AllRules })
			if onlyAll && len(fired) == 0 {
				out = append(out, linter.UnboundOffense{
					Message:  "No offenses to disable on this line. Remove the `herb:disable all` comment.",
					Location: c.Node.Loc(),
				})
			}
			continue
		}

		var unused []linter.RuleNameDetail
		validCount := 0
		for _, detail := range d.RuleNameDetails {
			if !valid[detail.Name] {
				continue
			}
			validCount++
			if !fired[detail.Name] {
				unused = append(unused, detail)
			}
		}

		switch {
		case len(unused) == 0:
		case len(unused) == validCount && len(unused) == 1:
			out = append(out, linter.UnboundOffense{
				Message:  fmt.Sprintf("No offenses from `%s` on this line. Remove the `herb:disable` comment.", unused[0].Name),
				Location: c.Node.Loc(),
			})
		case len(unused) == validCount:
			names := make([]string, len(unused))
			for i, detail := range unused {
				names[i] = "`" + detail.Name + "`"
			}
			out = append(out, linter.UnboundOffense{
				Message:  fmt.Sprintf("No offenses from rules %s on this line. Remove them from the `herb:disable` comment.", strings.Join(names, ", ")),
				Location: c.Node.Loc(),
			})
		default:
			for _, detail := range unused {
				out = append(out, linter.UnboundOffense{
					Message:  fmt.Sprintf("No offenses from `%s` on this line. Remove it from the `herb:disable` comment.", detail.Name),
					Location: c.NameLocation(detail),
				})
			}
		}
	}
	return out
}
