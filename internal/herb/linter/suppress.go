package linter

import "strings"

// DirectiveRulePrefix names the rules that validate herb:disable comments.
// Their offenses are never suppressed, and they run after every other rule
// so they can see what fired on each line.
const DirectiveRulePrefix = "herb-disable-comment-"

// IsDirectiveRule reports whether name validates directives.
func IsDirectiveRule(name string) bool {
	return strings.HasPrefix(name, DirectiveRulePrefix)
}

// Suppressions maps lines to the well-formed directives on them.
type Suppressions map[int][]*Directive

// NewSuppressions indexes valid directives by line.
func NewSuppressions(comments []DirectiveComment) Suppressions {
	s := make(Suppressions)
	for _, c := range comments {
		if c.Directive.Valid() {
			s[c.Line()] = append(s[c.Line()], c.Directive)
		}
	}
	return s
}

// Suppressed reports whether a directive on the offense's start line names
// its rule or "all".
func (s Suppressions) Suppressed(o Offense) bool {
	for _, d := range s[o.Line()] {
		if d.Includes(o.Code) {
			return true
		}
	}
	return false
}

// Filter splits offenses into those that survive and the number removed.
func (s Suppressions) Filter(offenses []Offense) (kept []Offense, ignored int) {
	if len(s) == 0 {
		return offenses, 0
	}
	kept = offenses[:0:0]
	for _, o := range offenses {
		if s.Suppressed(o) {
			ignored++
			continue
		}
		kept = append(kept, o)
	}
	return kept, ignored
}
