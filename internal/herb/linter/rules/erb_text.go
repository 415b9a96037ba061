package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

// rangeFix replaces source[Start:End] with Replacement.
type rangeFix struct {
	Start, End  int
	Replacement string
}

func (f rangeFix) Range() (int, int) { return f.Start, f.End }

func (f rangeFix) apply(source string) (string, error) {
	if f.Start < 0 || f.End > len(source) || f.Start > f.End {
		return source, fmt.Errorf("%w: range %d..%d outside source", linter.ErrNotFixable, f.Start, f.End)
	}
	return source[:f.Start] + f.Replacement + source[f.End:], nil
}

func applyRangeFix(o linter.Offense, source string) (string, error) {
	fix, ok := o.Fix.(rangeFix)
	if !ok {
		return source, linter.ErrNotFixable
	}
	return fix.apply(source)
}

// positionAt converts a byte offset into a line/column position.
func positionAt(source string, offset int) ast.Position {
	pos := ast.Position{Line: 1}
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			pos.Line++
			pos.Column = 0
		} else {
			pos.Column++
		}
	}
	return pos
}

type erbNoExtraNewline struct{ linter.Meta }

var extraNewlines = regexp.MustCompile(`\n{4,}`)

// ERBNoExtraNewline allows at most two consecutive blank lines.
func ERBNoExtraNewline() linter.Rule {
	return erbNoExtraNewline{linter.Meta{
		RuleName: "erb-no-extra-newline",
		Doc:      "Disallow more than two consecutive blank lines",
		Group:    categoryERB,
	}}
}

func (erbNoExtraNewline) CheckText(source string, _ *linter.Context) []linter.UnboundOffense {
	var out []linter.UnboundOffense
	for _, m := range extraNewlines.FindAllStringIndex(source, -1) {
		start, end := m[0]+3, m[1]
		extra := end - start
		noun := "lines"
		if extra == 1 {
			noun = "line"
		}
		out = append(out, linter.UnboundOffense{
			Message:  fmt.Sprintf("Extra blank line detected. Remove %d blank %s to maintain consistent spacing (max 2 allowed).", extra, noun),
			Location: ast.Location{Start: positionAt(source, start), End: positionAt(source, end)},
			Fix:      rangeFix{Start: start, End: end},
		})
	}
	return out
}

func (erbNoExtraNewline) AutofixText(o linter.Offense, source string, _ *linter.Context) (string, error) {
	fix, ok := o.Fix.(rangeFix)
	if !ok || strings.Trim(source[min(fix.Start, len(source)):min(fix.End, len(source))], "\n") != "" {
		return source, linter.ErrNotFixable
	}
	return applyRangeFix(o, source)
}

type erbRequireTrailingNewline struct{ linter.Meta }

// ERBRequireTrailingNewline requires files to end with a newline. Snippets
// linted without a file name are exempt.
func ERBRequireTrailingNewline() linter.Rule {
	return erbRequireTrailingNewline{linter.Meta{
		RuleName: "erb-require-trailing-newline",
		Doc:      "Require a trailing newline at the end of the file",
		Group:    categoryERB,
	}}
}

func (erbRequireTrailingNewline) CheckText(source string, ctx *linter.Context) []linter.UnboundOffense {
	if ctx == nil || ctx.FileName == "" || source == "" || strings.HasSuffix(source, "\n") {
		return nil
	}
	end := positionAt(source, len(source))
	return []linter.UnboundOffense{{
		Message:  "File must end with trailing newline",
		Location: ast.Location{Start: end, End: end},
		Fix:      rangeFix{Start: len(source), End: len(source), Replacement: "\n"},
	}}
}

func (erbRequireTrailingNewline) AutofixText(o linter.Offense, source string, _ *linter.Context) (string, error) {
	if strings.HasSuffix(source, "\n") {
		return source, linter.ErrNotFixable
	}
	return applyRangeFix(o, source)
}
