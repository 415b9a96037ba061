package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

// erbVisitor calls check for every ERB tag with the path of the tag.
func erbVisitor(check func(v *visitor, erb *ast.ERB, path ast.Path)) *visitor {
	v := newVisitor()
	v.On(ast.KindERB, func(w *ast.Walker, n ast.Node) {
		check(v, n.(*ast.ERB), w.Path())
	})
	return v
}

func erbAt(doc *ast.Document, o linter.Offense) (*ast.ERB, error) {
	switch fix := o.Fix.(type) {
	case nodeFix:
		return linter.Target[*ast.ERB](doc, fix.Path)
	case whitespaceFix:
		return linter.Target[*ast.ERB](doc, fix.Path)
	}
	return nil, linter.ErrNotFixable
}

type erbCommentSyntax struct{ linter.Meta }

// ERBCommentSyntax disallows Ruby comments directly after an ERB opening
// such as "<% # note %>".
func ERBCommentSyntax() linter.Rule {
	return erbCommentSyntax{linter.Meta{
		RuleName: "erb-comment-syntax",
		Doc:      "Require `<%#` for ERB comments",
		Group:    categoryERB,
	}}
}

func (erbCommentSyntax) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return erbVisitor(func(v *visitor, erb *ast.ERB, path ast.Path) {
		if erb.IsComment() {
			return
		}
		rest := strings.TrimLeft(erb.Content.Value, " \t")
		if !strings.HasPrefix(rest, "#") {
			return
		}
		opening := erb.TagOpening.Value
		if strings.HasPrefix(strings.TrimSpace(rest[1:]), linter.DisablePrefix) {
			v.add(fmt.Sprintf("Use `<%%#` instead of `%s #` for `herb:disable` directives. Herb directives only work with ERB comment syntax (`<%%# ... %%>`).", opening),
				erb.Loc(), nodeFix{path})
			return
		}
		v.add(fmt.Sprintf("Use `<%%#` instead of `%s #`. Ruby comments immediately after ERB tags can cause parsing issues.", opening),
			erb.Loc(), nodeFix{path})
	}).run(doc)
}

// Autofix rewrites "<% # note %>" to "<%# note %>".
func (erbCommentSyntax) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	erb, err := erbAt(doc, o)
	if err != nil {
		return err
	}
	rest := strings.TrimLeft(erb.Content.Value, " \t")
	if erb.IsComment() || !strings.HasPrefix(rest, "#") {
		return linter.ErrNotFixable
	}
	erb.TagOpening.Value = "<%#"
	erb.Content.Value = " " + strings.TrimLeft(rest[1:], " \t")
	return nil
}

type erbNoEmptyTags struct{ linter.Meta }

// ERBNoEmptyTags disallows ERB tags without content.
func ERBNoEmptyTags() linter.Rule {
	return erbNoEmptyTags{linter.Meta{
		RuleName: "erb-no-empty-tags",
		Doc:      "Disallow empty ERB tags",
		Group:    categoryERB,
	}}
}

func (erbNoEmptyTags) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return erbVisitor(func(v *visitor, erb *ast.ERB, _ ast.Path) {
		if erb.IsComment() || erb.TagClosing.Value == "" || strings.TrimSpace(erb.Content.Value) != "" {
			return
		}
		v.add("ERB tag should not be empty. Remove empty ERB tags or add content.", erb.Loc(), nil)
	}).run(doc)
}

type erbNoExtraWhitespaceInsideTags struct{ linter.Meta }

type whitespaceFixType int

const (
	fixAfterOpen whitespaceFixType = iota
	fixBeforeClose
	fixAfterCommentEquals
)

type whitespaceFix struct {
	Path ast.Path
	Type whitespaceFixType
}

var (
	leadingBlanks  = regexp.MustCompile(`^\s{2,}`)
	trailingBlanks = regexp.MustCompile(`\s{2,}$`)
	leadingSpace   = regexp.MustCompile(`^\s+`)
	trailingSpace  = regexp.MustCompile(`\s+$`)
)

// ERBNoExtraWhitespaceInsideTags allows at most one space after the ERB
// opening and before the closing.
func ERBNoExtraWhitespaceInsideTags() linter.Rule {
	return erbNoExtraWhitespaceInsideTags{linter.Meta{
		RuleName: "erb-no-extra-whitespace-inside-tags",
		Doc:      "Disallow extra whitespace inside ERB tags",
		Group:    categoryERB,
	}}
}

func (erbNoExtraWhitespaceInsideTags) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return erbVisitor(func(v *visitor, erb *ast.ERB, path ast.Path) {
		content := erb.Content.Value
		if content == "" || erb.TagClosing.Value == "" {
			return
		}
		start, end := erb.Content.Location.Start, erb.Content.Location.End

		if strings.HasPrefix(content, "  ") && !strings.HasPrefix(content, "  \n") {
			n := len(leadingSpace.FindString(content))
			v.add(fmt.Sprintf("Remove extra whitespace after `%s`.", erb.TagOpening.Value),
				ast.Loc(start.Line, start.Column, start.Line, start.Column+n),
				whitespaceFix{path, fixAfterOpen})
		}

		if erb.IsComment() && strings.HasPrefix(content, "=") && len(content) > 1 {
			after := content[1:]
			if leadingBlanks.MatchString(after) && !strings.HasPrefix(after, "  \n") && !strings.HasPrefix(after, "\n") {
				n := len(leadingSpace.FindString(after))
				v.add("Remove extra whitespace after `<%#=`.",
					ast.Loc(start.Line, start.Column+1, start.Line, start.Column+1+n),
					whitespaceFix{path, fixAfterCommentEquals})
			}
		}

		if !strings.Contains(content, "\n") && trailingBlanks.MatchString(content) {
			n := len(trailingSpace.FindString(content))
			v.add(fmt.Sprintf("Remove extra whitespace before `%s`.", erb.TagClosing.Value),
				ast.Loc(end.Line, end.Column-n, end.Line, end.Column),
				whitespaceFix{path, fixBeforeClose})
		}
	}).run(doc)
}

func (erbNoExtraWhitespaceInsideTags) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	fix, ok := o.Fix.(whitespaceFix)
	if !ok {
		return linter.ErrNotFixable
	}
	erb, err := erbAt(doc, o)
	if err != nil {
		return err
	}
	content := erb.Content.Value
	switch fix.Type {
	case fixAfterOpen:
		erb.Content.Value = leadingBlanks.ReplaceAllLiteralString(content, " ")
	case fixBeforeClose:
		erb.Content.Value = trailingBlanks.ReplaceAllLiteralString(content, " ")
	case fixAfterCommentEquals:
		if !strings.HasPrefix(content, "=") {
			return linter.ErrNotFixable
		}
		erb.Content.Value = "= " + leadingBlanks.ReplaceAllLiteralString(content[1:], "")
	}
	return nil
}

type erbRightTrim struct{ linter.Meta }

// ERBRightTrim flags right-trim markers that are obscure or have no effect.
func ERBRightTrim() linter.Rule {
	return erbRightTrim{linter.Meta{
		RuleName: "erb-right-trim",
		Doc:      "Enforce consistent right-trimming in ERB tags",
		Group:    categoryERB,
	}}
}

func (erbRightTrim) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	return erbVisitor(func(v *visitor, erb *ast.ERB, path ast.Path) {
		closing := erb.TagClosing.Value
		if closing != "-%>" && closing != "=%>" {
			return
		}
		if !erb.IsOutput() {
			v.add(fmt.Sprintf("Right-trimming with `%s` has no effect on non-output ERB tags. Use `%%>` instead", closing),
				erb.TagClosing.Location, nodeFix{path})
			return
		}
		if closing == "=%>" {
			v.add("Use `-%>` instead of `=%>` for right-trimming. The `=%>` syntax is obscure and not well-supported in most ERB engines",
				erb.TagClosing.Location, nodeFix{path})
		}
	}).run(doc)
}

func (erbRightTrim) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	erb, err := erbAt(doc, o)
	if err != nil {
		return err
	}
	switch {
	case !erb.IsOutput():
		erb.TagClosing.Value = "%>"
	case erb.TagClosing.Value == "=%>":
		erb.TagClosing.Value = "-%>"
	default:
		return linter.ErrNotFixable
	}
	return nil
}
