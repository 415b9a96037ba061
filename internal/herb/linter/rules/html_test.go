package rules_test

import (
	"testing"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

func TestHTMLTagNameLowercase(t *testing.T) {
	runRuleCases(t, "html-tag-name-lowercase", []ruleCase{
		{name: "lowercase", input: "<div>test</div>"},
		{
			name:  "uppercase",
			input: "<DIV>test</DIV>",
			want: []string{
				"Opening tag name `<DIV>` should be lowercase. Use `<div>` instead.",
				"Closing tag name `</DIV>` should be lowercase. Use `</div>` instead.",
			},
		},
		{
			name:  "void",
			input: "<BR>",
			want:  []string{"Opening tag name `<BR>` should be lowercase. Use `<br>` instead."},
		},
		{name: "svg children", input: "<svg><linearGradient></linearGradient></svg>"},
		{name: "xml file", input: "<Feed></Feed>", fileName: "feed.xml.erb"},
		{name: "xml declaration", input: "<?xml version=\"1.0\"?>\n<Feed></Feed>"},
	})

	r := lint(t, "<DIV>test</DIV>", linter.Options{}, "html-tag-name-lowercase")
	want := []ast.Location{ast.Loc(1, 1, 1, 4), ast.Loc(1, 11, 1, 14)}
	for i, o := range r.Offenses {
		if o.Location != want[i] {
			t.Errorf("offense %d location = %v, want %v", i, o.Location, want[i])
		}
	}
}

func TestHTMLTagNameLowercase_Autofix(t *testing.T) {
	runFixCases(t, "html-tag-name-lowercase", []fixCase{
		{name: "element", input: "<DIV>test</DIV>", want: "<div>test</div>"},
		{name: "nested", input: "<Ul><LI>a</LI></Ul>", want: "<ul><li>a</li></ul>"},
		{name: "mixed case close", input: "<div></Div>", want: "<div></div>"},
	})
}

func TestHTMLNoSelfClosing(t *testing.T) {
	runRuleCases(t, "html-no-self-closing", []ruleCase{
		{name: "regular", input: "<div></div>"},
		{
			name:  "element",
			input: "<div />",
			want:  []string{"Use `<div></div>` instead of self-closing `<div />` for HTML compatibility."},
		},
		{
			name:  "void",
			input: "<br/>",
			want:  []string{"Use `<br>` instead of self-closing `<br />` for HTML compatibility."},
		},
		{name: "svg", input: "<svg><path d=\"M0\" /></svg>"},
		{name: "xml", input: "<item />", fileName: "feed.xml.erb"},
	})
}

func TestHTMLNoSelfClosing_Autofix(t *testing.T) {
	runFixCases(t, "html-no-self-closing", []fixCase{
		{name: "element", input: "<div />", want: "<div></div>"},
		{name: "attributes", input: "<span class=\"a\" />", want: "<span class=\"a\"></span>"},
		{name: "void", input: "<br />", want: "<br>"},
		{name: "void no space", input: "<img src=\"a\"/>", want: "<img src=\"a\">"},
	})
}

func TestHTMLNoNestedLinks(t *testing.T) {
	runRuleCases(t, "html-no-nested-links", []ruleCase{
		{name: "siblings", input: "<a href=\"/\">a</a><a href=\"/b\">b</a>"},
		{
			name:  "nested",
			input: "<a href=\"/\"><span><a href=\"/x\">x</a></span></a>",
			want:  []string{"Nested `<a>` elements are not allowed. Links cannot contain other links."},
		},
	})
}

func TestHTMLNoBlockInsideInline(t *testing.T) {
	runRuleCases(t, "html-no-block-inside-inline", []ruleCase{
		{name: "inline in block", input: "<div><span>x</span></div>"},
		{
			name:  "block in inline",
			input: "<span><div>x</div></span>",
			want:  []string{"Block-level element `<div>` cannot be placed inside inline element `<span>`."},
		},
		{
			name:  "unknown in inline",
			input: "<strong><my-widget></my-widget></strong>",
			want:  []string{"Unknown element `<my-widget>` cannot be placed inside inline element `<strong>`."},
		},
		{
			name:  "block resets inline context",
			input: "<span><div><p>x</p></div></span>",
			want:  []string{"Block-level element `<div>` cannot be placed inside inline element `<span>`."},
		},
	})

	if r := lint(t, "<span><div>x</div></span>", linter.Options{}); len(r.Offenses) != 0 {
		t.Errorf("rule should be disabled by default, got %v", messages(r.Offenses))
	}
}

func TestHTMLHeadOnlyElements(t *testing.T) {
	runRuleCases(t, "html-head-only-elements", []ruleCase{
		{name: "in head", input: "<html><head><title>x</title><meta charset=\"utf-8\"></head></html>"},
		{
			name:  "in body",
			input: "<html><body><title>x</title></body></html>",
			want:  []string{"Element `<title>` must be placed inside the `<head>` tag."},
		},
		{name: "svg title", input: "<body><svg><title>icon</title></svg></body>"},
		{name: "xml", input: "<link href=\"/\"></link>", fileName: "feed.xml.erb"},
	})
}

func TestHTMLBodyOnlyElements(t *testing.T) {
	runRuleCases(t, "html-body-only-elements", []ruleCase{
		{name: "in body", input: "<html><body><div>x</div></body></html>"},
		{name: "fragment", input: "<div>x</div>"},
		{
			name:  "in head",
			input: "<html><head><div>x</div></head></html>",
			want:  []string{"Element `<div>` must be placed inside the `<body>` tag."},
		},
	})
}

func TestHTMLImgRequireAlt(t *testing.T) {
	runRuleCases(t, "html-img-require-alt", []ruleCase{
		{name: "alt", input: "<img src=\"a.png\" alt=\"\">"},
		{
			name:  "missing",
			input: "<img src=\"a.png\">",
			want:  []string{"Missing required `alt` attribute on `<img>` tag. Add `alt=\"\"` for decorative images or `alt=\"description\"` for informative images."},
		},
		{name: "case insensitive", input: "<IMG SRC=\"a.png\" ALT=\"logo\">"},
	})
}

func TestHTMLIframeHasTitle(t *testing.T) {
	msg := "`<iframe>` elements must have a `title` attribute that describes the content of the frame for screen reader users."
	runRuleCases(t, "html-iframe-has-title", []ruleCase{
		{name: "title", input: "<iframe src=\"/map\" title=\"Map\"></iframe>"},
		{name: "missing", input: "<iframe src=\"/map\"></iframe>", want: []string{msg}},
		{name: "blank", input: "<iframe src=\"/map\" title=\"  \"></iframe>", want: []string{msg}},
		{name: "erb title", input: "<iframe title=\"<%= t(:map) %>\"></iframe>"},
		{name: "hidden", input: "<iframe src=\"/x\" aria-hidden=\"true\"></iframe>"},
	})
}

func TestHTMLAttributeDoubleQuotes(t *testing.T) {
	runRuleCases(t, "html-attribute-double-quotes", []ruleCase{
		{name: "double", input: "<div class=\"a\"></div>"},
		{
			name:  "single",
			input: "<div class='a'></div>",
			want:  []string{"Attribute `class` uses single quotes. Prefer double quotes for HTML attribute values: `class=\"value\"`."},
		},
		{name: "contains double quote", input: "<div title='say \"hi\"'></div>"},
	})
	runFixCases(t, "html-attribute-double-quotes", []fixCase{
		{name: "single", input: "<div class='a' id='b'></div>", want: "<div class=\"a\" id=\"b\"></div>"},
	})
}

func TestHTMLAttributeValuesRequireQuotes(t *testing.T) {
	runRuleCases(t, "html-attribute-values-require-quotes", []ruleCase{
		{name: "quoted", input: "<input type=\"text\">"},
		{name: "valueless", input: "<input disabled>"},
		{
			name:  "unquoted",
			input: "<input type=text>",
			want:  []string{"Attribute value should be quoted: type=\"value\". Always wrap attribute values in quotes."},
		},
	})
	runFixCases(t, "html-attribute-values-require-quotes", []fixCase{
		{name: "unquoted", input: "<input type=text>", want: "<input type=\"text\">"},
	})
}

func TestHTMLBooleanAttributesNoValue(t *testing.T) {
	runRuleCases(t, "html-boolean-attributes-no-value", []ruleCase{
		{name: "bare", input: "<input disabled>"},
		{
			name:  "value",
			input: "<input disabled=\"disabled\">",
			want:  []string{"Boolean attribute `disabled` should not have a value. Use `disabled` instead of `disabled=\"disabled\"`."},
		},
		{name: "not boolean", input: "<input value=\"x\">"},
	})
	runFixCases(t, "html-boolean-attributes-no-value", []fixCase{
		{name: "value", input: "<input checked=\"checked\" type=\"checkbox\">", want: "<input checked type=\"checkbox\">"},
	})

	r := autofix(t, "<input disabled=\"<%= off? %>\">", linter.Options{}, "html-boolean-attributes-no-value")
	if len(r.Unfixed) != 1 || r.Source != "<input disabled=\"<%= off? %>\">" {
		t.Errorf("dynamic value should stay unfixed, got source %q unfixed %d", r.Source, len(r.Unfixed))
	}
}

func TestHTMLNoDuplicateAttributes(t *testing.T) {
	runRuleCases(t, "html-no-duplicate-attributes", []ruleCase{
		{name: "unique", input: "<div class=\"a\" id=\"b\"></div>"},
		{
			name:  "duplicate",
			input: "<div class=\"a\" class=\"b\"></div>",
			want:  []string{"Duplicate attribute `class` found on tag. Remove the duplicate occurrence."},
		},
		{
			name:  "case insensitive",
			input: "<div id=\"a\" ID=\"b\"></div>",
			want:  []string{"Duplicate attribute `id` found on tag. Remove the duplicate occurrence."},
		},
	})

	r := lint(t, "<div class=\"a\" class=\"b\"></div>", linter.Options{}, "html-no-duplicate-attributes")
	if got, want := r.Offenses[0].Location, ast.Loc(1, 15, 1, 20); got != want {
		t.Errorf("location = %v, want %v", got, want)
	}
}

func TestHTMLNoEmptyAttributes(t *testing.T) {
	runRuleCases(t, "html-no-empty-attributes", []ruleCase{
		{name: "value", input: "<div class=\"a\"></div>"},
		{
			name:  "empty class",
			input: "<div class=\"\"></div>",
			want:  []string{"Attribute `class` must not be empty. Either provide a meaningful value or remove the attribute entirely."},
		},
		{
			name:  "blank data",
			input: "<div data-role=\" \"></div>",
			want:  []string{"Attribute `data-role` must not be empty. Either provide a meaningful value or remove the attribute entirely."},
		},
		{name: "dynamic", input: "<div class=\"<%= css %>\"></div>"},
		{name: "unrestricted", input: "<input value=\"\">"},
	})

	r := lint(t, "<div id=\"\"></div>", linter.Options{}, "html-no-empty-attributes")
	if r.Warnings != 1 || r.Errors != 0 {
		t.Errorf("warnings = %d errors = %d, want 1 and 0", r.Warnings, r.Errors)
	}
}

func TestHTMLNoUnderscoresInAttributeNames(t *testing.T) {
	runRuleCases(t, "html-no-underscores-in-attribute-names", []ruleCase{
		{name: "hyphen", input: "<div data-user-id=\"1\"></div>"},
		{
			name:  "underscore",
			input: "<div data_user_id=\"1\"></div>",
			want:  []string{"Attribute `data_user_id` should not contain underscores. Use hyphens (-) instead."},
		},
	})
}
