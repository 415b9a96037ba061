package rules

import (
	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

var inlineElements = set(
	"a", "abbr", "acronym", "b", "bdo", "big", "br", "button", "cite", "code",
	"dfn", "em", "i", "img", "input", "kbd", "label", "map", "object", "output",
	"q", "samp", "script", "select", "small", "span", "strong", "sub", "sup",
	"textarea", "time", "tt", "var",
)

var blockElements = set(
	"address", "article", "aside", "blockquote", "canvas", "dd", "div", "dl",
	"dt", "fieldset", "figcaption", "figure", "footer", "form", "h1", "h2",
	"h3", "h4", "h5", "h6", "header", "hr", "li", "main", "nav", "noscript",
	"ol", "p", "pre", "section", "table", "tfoot", "ul", "video",
)

var booleanAttributes = set(
	"autofocus", "autoplay", "checked", "controls", "defer", "disabled", "hidden",
	"loop", "multiple", "muted", "readonly", "required", "reversed", "selected",
	"open", "default", "formnovalidate", "novalidate", "itemscope", "scoped",
	"seamless", "allowfullscreen", "async", "compact", "declare", "nohref",
	"noresize", "noshade", "nowrap", "sortable", "truespeed", "typemustmatch",
)

var headOnlyElements = set("base", "link", "meta", "style", "title")

var bodyOnlyElements = set(
	"a", "abbr", "address", "article", "aside", "audio", "b", "blockquote",
	"br", "button", "canvas", "caption", "code", "dd", "details", "dialog",
	"div", "dl", "dt", "em", "fieldset", "figcaption", "figure", "footer",
	"form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "i", "iframe",
	"img", "input", "label", "li", "main", "nav", "ol", "p", "pre", "section",
	"select", "span", "strong", "table", "tbody", "td", "textarea", "tfoot",
	"th", "thead", "tr", "ul", "video",
)

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// visitor accumulates offenses while walking a document. Handlers record
// offenses with add, optionally attaching the walker's current path so the
// fix can find the node again.
type visitor struct {
	*ast.Walker
	offenses []linter.UnboundOffense
}

func newVisitor() *visitor {
	return &visitor{Walker: ast.NewWalker()}
}

func (v *visitor) add(message string, loc ast.Location, fix any) {
	v.offenses = append(v.offenses, linter.UnboundOffense{Message: message, Location: loc, Fix: fix})
}

func (v *visitor) run(doc *ast.Document) []linter.UnboundOffense {
	v.Walk(doc)
	return v.offenses
}

// nodeFix addresses the node a fix applies to.
type nodeFix struct {
	Path ast.Path
}

// childPath extends the walker path of the current node with a child index.
func childPath(w *ast.Walker, idx ...int) ast.Path {
	return append(w.Path(), idx...)
}

// notXML disables a rule for XML templates, either by file name or by an
// XML declaration at the top of the document.
func notXML(doc *ast.Document, ctx *linter.Context) bool {
	if ctx.IsXML() {
		return false
	}
	for _, n := range doc.Body {
		if _, ok := n.(*ast.Text); ok {
			continue
		}
		_, decl := n.(*ast.XMLDeclaration)
		return !decl
	}
	return true
}
