package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
	"github.com/albertocavalcante/herb/internal/herb/parser"
)

type htmlTagNameLowercase struct{ linter.Meta }

// HTMLTagNameLowercase requires lowercase tag names outside of SVG.
func HTMLTagNameLowercase() linter.Rule {
	return htmlTagNameLowercase{linter.Meta{
		RuleName: "html-tag-name-lowercase",
		Doc:      "Enforce lowercase HTML tag names",
		Group:    categoryHTML,
	}}
}

func (htmlTagNameLowercase) Enabled(doc *ast.Document, ctx *linter.Context) bool {
	return notXML(doc, ctx)
}

func (htmlTagNameLowercase) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	v.On(ast.KindElement, func(w *ast.Walker, n ast.Node) {
		el := n.(*ast.Element)
		if el.Name() == "svg" {
			// SVG has camelCase elements of its own.
			return
		}
		if name := el.OpenTag.TagName.Value; name != strings.ToLower(name) {
			v.add(fmt.Sprintf("Opening tag name `<%s>` should be lowercase. Use `<%s>` instead.", name, strings.ToLower(name)),
				el.OpenTag.TagName.Location, nodeFix{childPath(w, 0)})
		}
		if el.CloseTag != nil {
			if name := el.CloseTag.TagName.Value; name != strings.ToLower(name) {
				v.add(fmt.Sprintf("Closing tag name `</%s>` should be lowercase. Use `</%s>` instead.", name, strings.ToLower(name)),
					el.CloseTag.TagName.Location, nodeFix{childPath(w, len(el.Children())-1)})
			}
		}
		w.VisitChildren(n)
	})
	return v.run(doc)
}

func (htmlTagNameLowercase) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	fix, ok := o.Fix.(nodeFix)
	if !ok {
		return linter.ErrNotFixable
	}
	n, err := linter.Target[ast.Node](doc, fix.Path)
	if err != nil {
		return err
	}
	switch tag := n.(type) {
	case *ast.OpenTag:
		tag.TagName.Value = strings.ToLower(tag.TagName.Value)
	case *ast.CloseTag:
		tag.TagName.Value = strings.ToLower(tag.TagName.Value)
	default:
		return fmt.Errorf("%w: %s is not a tag", linter.ErrNotFixable, n.Kind())
	}
	return nil
}

type htmlNoSelfClosing struct{ linter.Meta }

// HTMLNoSelfClosing disallows the "<tag />" syntax in HTML documents.
func HTMLNoSelfClosing() linter.Rule {
	return htmlNoSelfClosing{linter.Meta{
		RuleName: "html-no-self-closing",
		Doc:      "Disallow self-closing tags in HTML",
		Group:    categoryHTML,
	}}
}

func (htmlNoSelfClosing) Enabled(doc *ast.Document, ctx *linter.Context) bool {
	return notXML(doc, ctx)
}

func (htmlNoSelfClosing) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	var svgDepth int
	v.On(ast.KindElement, func(w *ast.Walker, n ast.Node) {
		el := n.(*ast.Element)
		if el.Name() == "svg" {
			svgDepth++
			defer func() { svgDepth-- }()
		}
		if svgDepth == 0 && el.OpenTag.SelfClosing() {
			name := el.TagName()
			msg := fmt.Sprintf("Use `<%s></%s>` instead of self-closing `<%s />` for HTML compatibility.", name, name, name)
			if parser.IsVoidElement(el.Name()) {
				msg = fmt.Sprintf("Use `<%s>` instead of self-closing `<%s />` for HTML compatibility.", name, name)
			}
			v.add(msg, el.OpenTag.Loc(), nodeFix{w.Path()})
		}
		w.VisitChildren(n)
	})
	return v.run(doc)
}

func (htmlNoSelfClosing) Autofix(o linter.Offense, doc *ast.Document, _ *linter.Context) error {
	fix, ok := o.Fix.(nodeFix)
	if !ok {
		return linter.ErrNotFixable
	}
	el, err := linter.Target[*ast.Element](doc, fix.Path)
	if err != nil {
		return err
	}
	open := el.OpenTag
	if !open.SelfClosing() {
		return linter.ErrNotFixable
	}
	open.TagClosing.Value = ">"
	if n := len(open.Nodes); n > 0 {
		if _, ws := open.Nodes[n-1].(*ast.Whitespace); ws {
			open.Nodes = open.Nodes[:n-1]
		}
	}

	el.Void = parser.IsVoidElement(el.Name())
	if !el.Void && el.CloseTag == nil {
		at := ast.Location{Start: open.TagClosing.Location.End, End: open.TagClosing.Location.End}
		el.CloseTag = &ast.CloseTag{
			TagOpening: ast.Token{Value: "</", Location: at},
			TagName:    ast.Token{Value: el.TagName(), Location: at},
			TagClosing: ast.Token{Value: ">", Location: at},
		}
	}
	return nil
}

type htmlNoNestedLinks struct{ linter.Meta }

// HTMLNoNestedLinks disallows <a> inside another <a>.
func HTMLNoNestedLinks() linter.Rule {
	return htmlNoNestedLinks{linter.Meta{
		RuleName: "html-no-nested-links",
		Doc:      "Disallow nested links",
		Group:    categoryHTML,
	}}
}

func (htmlNoNestedLinks) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	depth := 0
	v.On(ast.KindElement, func(w *ast.Walker, n ast.Node) {
		el := n.(*ast.Element)
		if el.Name() != "a" {
			w.VisitChildren(n)
			return
		}
		if depth > 0 {
			v.add("Nested `<a>` elements are not allowed. Links cannot contain other links.", el.OpenTag.Loc(), nil)
		}
		depth++
		w.VisitChildren(n)
		depth--
	})
	return v.run(doc)
}

type htmlNoBlockInsideInline struct{ linter.Meta }

// HTMLNoBlockInsideInline disallows block-level and unknown elements inside
// inline elements.
func HTMLNoBlockInsideInline() linter.Rule {
	return htmlNoBlockInsideInline{linter.Meta{
		RuleName: "html-no-block-inside-inline",
		Doc:      "Disallow block-level elements inside inline elements",
		Group:    categoryHTML,
		Disabled: true,
	}}
}

func (htmlNoBlockInsideInline) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	var inline []string
	v.On(ast.KindElement, func(w *ast.Walker, n ast.Node) {
		el := n.(*ast.Element)
		name := el.Name()
		isInline := inlineElements[name]

		if !isInline && len(inline) > 0 {
			kind := "Unknown"
			if blockElements[name] {
				kind = "Block-level"
			}
			v.add(fmt.Sprintf("%s element `<%s>` cannot be placed inside inline element `<%s>`.", kind, name, inline[len(inline)-1]),
				el.OpenTag.TagName.Location, nil)
		}

		if isInline {
			inline = append(inline, name)
			w.VisitChildren(n)
			inline = inline[:len(inline)-1]
			return
		}
		saved := inline
		inline = nil
		w.VisitChildren(n)
		inline = saved
	})
	return v.run(doc)
}

// sectionVisitor tracks the names of the enclosing elements.
type sectionVisitor struct {
	*visitor
	stack []string
}

func newSectionVisitor(check func(v *sectionVisitor, el *ast.Element)) *sectionVisitor {
	sv := &sectionVisitor{visitor: newVisitor()}
	sv.On(ast.KindElement, func(w *ast.Walker, n ast.Node) {
		el := n.(*ast.Element)
		check(sv, el)
		sv.stack = append(sv.stack, el.Name())
		w.VisitChildren(n)
		sv.stack = sv.stack[:len(sv.stack)-1]
	})
	return sv
}

func (sv *sectionVisitor) inside(name string) bool { return slices.Contains(sv.stack, name) }

type htmlHeadOnlyElements struct{ linter.Meta }

// HTMLHeadOnlyElements requires metadata elements to live in <head>.
func HTMLHeadOnlyElements() linter.Rule {
	return htmlHeadOnlyElements{linter.Meta{
		RuleName: "html-head-only-elements",
		Doc:      "Require head-only elements to be inside <head>",
		Group:    categoryHTML,
	}}
}

func (htmlHeadOnlyElements) Enabled(_ *ast.Document, ctx *linter.Context) bool {
	return !ctx.IsXML()
}

func (htmlHeadOnlyElements) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	sv := newSectionVisitor(func(sv *sectionVisitor, el *ast.Element) {
		name := el.Name()
		if !headOnlyElements[name] || sv.inside("head") {
			return
		}
		if name == "title" && sv.inside("svg") {
			return
		}
		sv.add(fmt.Sprintf("Element `<%s>` must be placed inside the `<head>` tag.", name), el.Loc(), nil)
	})
	return sv.run(doc)
}

type htmlBodyOnlyElements struct{ linter.Meta }

// HTMLBodyOnlyElements disallows content elements inside <head>.
func HTMLBodyOnlyElements() linter.Rule {
	return htmlBodyOnlyElements{linter.Meta{
		RuleName: "html-body-only-elements",
		Doc:      "Require body-only elements to be inside <body>",
		Group:    categoryHTML,
	}}
}

func (htmlBodyOnlyElements) Enabled(_ *ast.Document, ctx *linter.Context) bool {
	return !ctx.IsXML()
}

func (htmlBodyOnlyElements) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	sv := newSectionVisitor(func(sv *sectionVisitor, el *ast.Element) {
		name := el.Name()
		if sv.inside("body") || !sv.inside("head") || !bodyOnlyElements[name] {
			return
		}
		sv.add(fmt.Sprintf("Element `<%s>` must be placed inside the `<body>` tag.", name), el.Loc(), nil)
	})
	return sv.run(doc)
}

type htmlImgRequireAlt struct{ linter.Meta }

// HTMLImgRequireAlt requires an alt attribute on images.
func HTMLImgRequireAlt() linter.Rule {
	return htmlImgRequireAlt{linter.Meta{
		RuleName: "html-img-require-alt",
		Doc:      "Require alt attributes on <img> tags",
		Group:    categoryHTML,
	}}
}

func (htmlImgRequireAlt) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	v.On(ast.KindOpenTag, func(_ *ast.Walker, n ast.Node) {
		tag := n.(*ast.OpenTag)
		if tag.Name() == "img" && tag.Attribute("alt") == nil {
			v.add("Missing required `alt` attribute on `<img>` tag. Add `alt=\"\"` for decorative images or `alt=\"description\"` for informative images.",
				tag.TagName.Location, nil)
		}
	})
	return v.run(doc)
}

type htmlIframeHasTitle struct{ linter.Meta }

// HTMLIframeHasTitle requires a title on visible iframes.
func HTMLIframeHasTitle() linter.Rule {
	return htmlIframeHasTitle{linter.Meta{
		RuleName: "html-iframe-has-title",
		Doc:      "Require title attributes on <iframe> tags",
		Group:    categoryHTML,
	}}
}

func (htmlIframeHasTitle) Check(doc *ast.Document, _ *linter.Context) []linter.UnboundOffense {
	v := newVisitor()
	v.On(ast.KindOpenTag, func(_ *ast.Walker, n ast.Node) {
		tag := n.(*ast.OpenTag)
		if tag.Name() != "iframe" {
			return
		}
		if hidden := tag.Attribute("aria-hidden"); hidden != nil && hidden.Value != nil {
			if value, static := hidden.Value.Static(); static && value == "true" {
				return
			}
		}
		if title := tag.Attribute("title"); title != nil && title.Value != nil {
			if value, static := title.Value.Static(); !static || strings.TrimSpace(value) != "" {
				return
			}
		}
		v.add("`<iframe>` elements must have a `title` attribute that describes the content of the frame for screen reader users.",
			tag.TagName.Location, nil)
	})
	return v.run(doc)
}
