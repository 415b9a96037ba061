package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/printer"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"text", "hello world\n"},
		{"element", "<div class=\"a\">hi</div>\n"},
		{"uppercase", "<DIV>test</DIV>\n"},
		{"void", "<br><img src=\"x\" alt=''>\n"},
		{"self closing", "<div />\n"},
		{"unquoted", "<input type=text disabled>"},
		{"spaced equals", "<a href = \"/\">x</a>"},
		{"erb", "<% if x %>\n  <%= y -%>\n<% end %>\n"},
		{"erb in attribute", "<div class=\"a <%= b %>\" <%= attrs %>></div>"},
		{"erb comment", "<%# herb:disable all %>"},
		{"comment", "<!-- note -->"},
		{"doctype", "<!DOCTYPE html>\n<html></html>"},
		{"xml", "<?xml version=\"1.0\"?>\n<feed></feed>"},
		{"cdata", "<![CDATA[ <x> ]]>"},
		{"script", "<script>if (a < b) { x = \"</div>\" }</script>"},
		{"stray close", "</p>text"},
		{"unclosed element", "<div><span>"},
		{"unclosed erb", "<%= foo"},
		{"unclosed quote", "<a href='x>"},
		{"unclosed comment", "<!-- x"},
		{"lone angle", "a < b <"},
		{"crlf", "<div>\r\n</div>\r\n"},
		{"close tag junk", "<div></div foo >"},
		{"empty value", "<div class=>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)
			if got := printer.Print(doc); got != tt.input {
				t.Errorf("Print(Parse()) = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParse_Element(t *testing.T) {
	doc := Parse(`<div class="a">hi</div>`)
	if doc.HasErrors() {
		t.Fatalf("unexpected errors: %v", doc.Errors)
	}
	if len(doc.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(doc.Body))
	}
	el, ok := doc.Body[0].(*ast.Element)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.Element", doc.Body[0])
	}
	if el.Name() != "div" || el.CloseTag == nil {
		t.Errorf("element = %q closed=%v", el.Name(), el.CloseTag != nil)
	}
	if diff := cmp.Diff(ast.Loc(1, 0, 1, 15), el.OpenTag.Loc()); diff != "" {
		t.Errorf("OpenTag.Loc() mismatch (-want +got):\n%s", diff)
	}

	attrs := el.OpenTag.Attributes()
	if len(attrs) != 1 {
		t.Fatalf("len(Attributes) = %d, want 1", len(attrs))
	}
	if diff := cmp.Diff(ast.Loc(1, 5, 1, 14), attrs[0].Loc()); diff != "" {
		t.Errorf("Attribute.Loc() mismatch (-want +got):\n%s", diff)
	}
	value, static := attrs[0].Value.Static()
	if value != "a" || !static || !attrs[0].Value.Quoted {
		t.Errorf("value = %q static=%v quoted=%v", value, static, attrs[0].Value.Quoted)
	}
	if text, ok := el.Body[0].(*ast.Text); !ok || text.Content.Value != "hi" {
		t.Errorf("Body[0] = %#v, want text hi", el.Body[0])
	}
}

func TestParse_CaseInsensitiveClose(t *testing.T) {
	doc := Parse("<DIV>test</div>")
	if doc.HasErrors() {
		t.Fatalf("unexpected errors: %v", doc.Errors)
	}
	el := doc.Body[0].(*ast.Element)
	if el.CloseTag == nil || el.CloseTag.TagName.Value != "div" {
		t.Errorf("CloseTag = %#v", el.CloseTag)
	}
}

func TestParse_VoidElements(t *testing.T) {
	doc := Parse(`<br><img src="x" /><input>`)
	if doc.HasErrors() {
		t.Fatalf("unexpected errors: %v", doc.Errors)
	}
	if len(doc.Body) != 3 {
		t.Fatalf("len(Body) = %d, want 3", len(doc.Body))
	}
	for i, n := range doc.Body {
		el := n.(*ast.Element)
		if !el.Void || el.CloseTag != nil {
			t.Errorf("Body[%d] Void=%v CloseTag=%v", i, el.Void, el.CloseTag)
		}
	}
	if !doc.Body[1].(*ast.Element).OpenTag.SelfClosing() {
		t.Error("img should be self-closing")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  []ast.ErrorKind
	}{
		{"<div><span></div>", []ast.ErrorKind{ast.ErrMissingClosingTag}},
		{"</p>", []ast.ErrorKind{ast.ErrMissingOpeningTag}},
		{"<div>", []ast.ErrorKind{ast.ErrMissingClosingTag}},
		{"<% x", []ast.ErrorKind{ast.ErrUnclosedERBTag}},
		{"<a href='x>", []ast.ErrorKind{ast.ErrUnclosedQuote, ast.ErrUnclosedOpenTag}},
		{"<!-- x", []ast.ErrorKind{ast.ErrUnclosedComment}},
		{"<div></div", []ast.ErrorKind{ast.ErrUnclosedCloseTag}},
		{"<div><p>ok</p></div>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			var got []ast.ErrorKind
			for _, err := range doc.Errors {
				got = append(got, err.Kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("error kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ERB(t *testing.T) {
	tests := []struct {
		input                     string
		opening, content, closing string
	}{
		{"<%= foo %>", "<%=", " foo ", "%>"},
		{"<%= foo -%>", "<%=", " foo ", "-%>"},
		{"<%= a =%>", "<%=", " a ", "=%>"},
		{"<%== raw %>", "<%==", " raw ", "%>"},
		{"<%- x %>", "<%-", " x ", "%>"},
		{"<%# note %>", "<%#", " note ", "%>"},
		{"<% a == b %>", "<%", " a == b ", "%>"},
		{"<%=%>", "<%=", "", "%>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			e, ok := doc.Body[0].(*ast.ERB)
			if !ok {
				t.Fatalf("Body[0] = %T, want *ast.ERB", doc.Body[0])
			}
			got := []string{e.TagOpening.Value, e.Content.Value, e.TagClosing.Value}
			want := []string{tt.opening, tt.content, tt.closing}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ERB tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_RawText(t *testing.T) {
	doc := Parse(`<script>x = "<div>";</script>`)
	if doc.HasErrors() {
		t.Fatalf("unexpected errors: %v", doc.Errors)
	}
	el := doc.Body[0].(*ast.Element)
	if len(el.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(el.Body))
	}
	if text, ok := el.Body[0].(*ast.Text); !ok || text.Content.Value != `x = "<div>";` {
		t.Errorf("Body[0] = %#v", el.Body[0])
	}
}

func TestParse_MultilineLocations(t *testing.T) {
	doc := Parse("<div>\n  <p>x</p>\n</div>")
	div := doc.Body[0].(*ast.Element)
	p := div.Body[1].(*ast.Element)
	if diff := cmp.Diff(ast.Loc(2, 2, 2, 10), p.Loc()); diff != "" {
		t.Errorf("p.Loc() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ast.Loc(3, 0, 3, 6), div.CloseTag.Loc()); diff != "" {
		t.Errorf("CloseTag.Loc() mismatch (-want +got):\n%s", diff)
	}
}
