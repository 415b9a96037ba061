package linter

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/parser"
	"github.com/albertocavalcante/herb/internal/herb/printer"
	"github.com/albertocavalcante/herb/internal/sortutil"
)

// MaxAutofixIterations bounds the number of fix passes per file.
const MaxAutofixIterations = 10

// Autofix repeatedly lints source with the autocorrectable rules and applies
// their fixes until the text stops changing, returns to an earlier state, or
// MaxAutofixIterations passes have run. Every pass starts from a fresh parse
// so fixes never act on stale nodes.
func (l *Linter) Autofix(source string, opts Options) *AutofixResult {
	current := source
	seen := map[string]bool{source: true}
	unfixable := make(map[offenseKey]bool)

	var applied, remaining []Offense
	var faults []Fault
	iterations := 0

	for iterations < MaxAutofixIterations {
		doc := parser.Parse(current)
		ctx := l.newContext(opts)
		// Check faults are taken from the final pass only.
		var checkFaults []Fault
		pending := l.fixable(doc, current, ctx, opts, &checkFaults)

		var candidates []Offense
		for _, o := range pending {
			if !unfixable[keyOf(o)] && o.Fix != nil {
				candidates = append(candidates, o)
			}
		}
		if len(candidates) == 0 {
			break
		}
		iterations++

		fixed, next := l.applyFixes(doc, current, ctx, candidates, unfixable, &faults)
		if next == current || seen[next] {
			break
		}
		seen[next] = true
		applied = append(applied, fixed...)
		current = next
	}

	ctx := l.newContext(opts)
	remaining = l.fixable(parser.Parse(current), current, ctx, opts, &faults)
	return newAutofixResult(current, applied, remaining, iterations, faults)
}

// fixable collects offenses from the enabled autocorrectable rules.
func (l *Linter) fixable(doc *ast.Document, source string, ctx *Context, opts Options, faults *[]Fault) []Offense {
	if HasIgnoreFileDirective(doc) {
		return nil
	}
	rules := l.enabledRules(doc, ctx, true)
	offenses, _, found := l.collect(doc, source, ctx, rules, opts)
	*faults = append(*faults, found...)
	return offenses
}

// applyFixes applies tree fixes to doc, prints it, then applies text fixes
// to the printed source. Text fixes are deferred to the next pass when a
// tree fix changed the document, since their offsets would be stale.
func (l *Linter) applyFixes(doc *ast.Document, source string, ctx *Context, offenses []Offense, unfixable map[offenseKey]bool, faults *[]Fault) ([]Offense, string) {
	var fixed, textual []Offense
	fail := func(o Offense, err error) {
		unfixable[keyOf(o)] = true
		var f Fault
		if errors.As(err, &f) {
			*faults = append(*faults, f)
		}
	}

	for _, o := range offenses {
		rule, _ := l.registry.Rule(o.Code)
		fixer, ok := rule.(TreeFixer)
		if !ok {
			if _, ok := rule.(TextFixer); ok {
				textual = append(textual, o)
			}
			continue
		}
		if err := runTreeFix(fixer, o, doc, ctx); err != nil {
			fail(o, err)
			continue
		}
		fixed = append(fixed, o)
	}

	out := printer.Print(doc)
	if out != source || len(textual) == 0 {
		return fixed, out
	}

	var ranged, unranged []Offense
	for _, o := range textual {
		if _, ok := o.Fix.(Ranged); ok {
			ranged = append(ranged, o)
		} else {
			unranged = append(unranged, o)
		}
	}

	// Apply from the end of the file backwards so earlier offsets stay
	// valid, skipping fixes that overlap one already applied.
	sortutil.Desc(ranged, func(o Offense) int {
		start, _ := o.Fix.(Ranged).Range()
		return start
	})
	lowest := len(out) + 1
	for _, o := range ranged {
		start, end := o.Fix.(Ranged).Range()
		if end > lowest {
			continue
		}
		next, err := runTextFix(l.mustTextFixer(o.Code), o, out, ctx)
		if err != nil {
			fail(o, err)
			continue
		}
		out = next
		lowest = start
		fixed = append(fixed, o)
	}

	if len(fixed) == 0 && len(unranged) > 0 {
		o := unranged[0]
		next, err := runTextFix(l.mustTextFixer(o.Code), o, out, ctx)
		if err != nil {
			fail(o, err)
		} else {
			out = next
			fixed = append(fixed, o)
		}
	}
	return fixed, out
}

func (l *Linter) mustTextFixer(name string) TextFixer {
	rule, _ := l.registry.Rule(name)
	return rule.(TextFixer)
}

func runTreeFix(fixer TreeFixer, o Offense, doc *ast.Document, ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Fault{Rule: o.Code, Phase: "autofix", Message: fmt.Sprint(r)}
		}
	}()
	return fixer.Autofix(o, doc, ctx)
}

func runTextFix(fixer TextFixer, o Offense, source string, ctx *Context) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = source, Fault{Rule: o.Code, Phase: "autofix", Message: fmt.Sprint(r)}
		}
	}()
	return fixer.AutofixText(o, source, ctx)
}

// Target resolves a fix path against the current document. Rules use it in
// Autofix so that they never hold node pointers across passes.
func Target[T ast.Node](doc *ast.Document, path ast.Path) (T, error) {
	n, ok := ast.ResolveAs[T](doc, path)
	if !ok {
		return n, fmt.Errorf("%w: no %T at %s", ErrNotFixable, n, path)
	}
	return n, nil
}
