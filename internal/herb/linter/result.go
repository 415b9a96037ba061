package linter

import (
	"fmt"

	"github.com/albertocavalcante/herb/internal/sortutil"
)

// Fault records a rule that panicked. Faults never abort a run; the rule
// simply contributes nothing for the affected file.
type Fault struct {
	Rule    string `json:"rule"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

func (f Fault) Error() string {
	return fmt.Sprintf("rule %s failed during %s: %s", f.Rule, f.Phase, f.Message)
}

// LintResult is the outcome of linting one file.
type LintResult struct {
	Offenses []Offense `json:"offenses"`

	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Hints    int `json:"hints"`

	// Ignored counts offenses removed by herb:disable directives.
	Ignored int `json:"ignored"`

	// RuleCount is the number of rules that were enabled for the file.
	RuleCount int `json:"ruleCount"`

	Faults []Fault `json:"faults,omitempty"`
}

// Clean reports whether no offenses were found.
func (r *LintResult) Clean() bool { return len(r.Offenses) == 0 }

func newLintResult(offenses []Offense, ruleCount, ignored int, faults []Fault) *LintResult {
	sortOffenses(offenses)
	r := &LintResult{
		Offenses:  offenses,
		RuleCount: ruleCount,
		Ignored:   ignored,
		Faults:    faults,
	}
	if r.Offenses == nil {
		r.Offenses = []Offense{}
	}
	for _, o := range offenses {
		switch o.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		case SeverityInfo:
			r.Info++
		case SeverityHint:
			r.Hints++
		}
	}
	return r
}

// AutofixResult is the outcome of autofixing one file.
type AutofixResult struct {
	// Source is the final text.
	Source string
	// Fixed holds offenses whose fix was applied and that did not reappear.
	Fixed []Offense
	// Unfixed holds offenses of autocorrectable rules left after the last
	// iteration.
	Unfixed []Offense
	// Iterations is the number of fix passes performed.
	Iterations int

	Faults []Fault
}

// Changed reports whether the source was modified.
func (r *AutofixResult) Changed(original string) bool { return r.Source != original }

func newAutofixResult(source string, applied, remaining []Offense, iterations int, faults []Fault) *AutofixResult {
	left := make(map[offenseKey]bool, len(remaining))
	for _, o := range remaining {
		left[keyOf(o)] = true
	}
	var fixed []Offense
	for _, o := range applied {
		if !left[keyOf(o)] {
			fixed = append(fixed, o)
		}
	}
	sortOffenses(fixed)
	sortOffenses(remaining)
	return &AutofixResult{
		Source:     source,
		Fixed:      fixed,
		Unfixed:    remaining,
		Iterations: iterations,
		Faults:     uniqueFaults(faults),
	}
}

// uniqueFaults drops repeats of the same fault, keeping first-seen order.
// A fixer that panics is retried when its offense moves, and each retry
// panics the same way.
func uniqueFaults(faults []Fault) []Fault {
	seen := make(map[Fault]bool, len(faults))
	var out []Fault
	for _, f := range faults {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// sortOffenses orders offenses by line, column, then rule name.
func sortOffenses(offenses []Offense) {
	sortutil.ByLineColumnName(offenses,
		func(o Offense) int { return o.Location.Start.Line },
		func(o Offense) int { return o.Location.Start.Column },
		func(o Offense) string { return o.Code },
	)
}
