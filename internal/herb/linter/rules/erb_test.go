package rules_test

import (
	"testing"

	"github.com/albertocavalcante/herb/internal/herb/ast"
	"github.com/albertocavalcante/herb/internal/herb/linter"
)

func TestERBCommentSyntax(t *testing.T) {
	runRuleCases(t, "erb-comment-syntax", []ruleCase{
		{name: "comment tag", input: "<%# good comment %>"},
		{name: "multi-line ruby comment", input: "<%\n  # good comment\n%>"},
		{
			name:  "statement",
			input: "<% # bad comment %>",
			want:  []string{"Use `<%#` instead of `<% #`. Ruby comments immediately after ERB tags can cause parsing issues."},
		},
		{
			name:  "output tags",
			input: "<%= # a %>\n<%== # b %>\n<%-  # c %>",
			want: []string{
				"Use `<%#` instead of `<%= #`. Ruby comments immediately after ERB tags can cause parsing issues.",
				"Use `<%#` instead of `<%== #`. Ruby comments immediately after ERB tags can cause parsing issues.",
				"Use `<%#` instead of `<%- #`. Ruby comments immediately after ERB tags can cause parsing issues.",
			},
		},
		{
			name:  "directive",
			input: "<DIV></DIV><%  #  herb:disable html-tag-name-lowercase %>",
			want:  []string{"Use `<%#` instead of `<% #` for `herb:disable` directives. Herb directives only work with ERB comment syntax (`<%# ... %>`)."},
		},
	})
	runFixCases(t, "erb-comment-syntax", []fixCase{
		{name: "statement", input: "<% # bad comment %>", want: "<%# bad comment %>"},
		{name: "output", input: "<%=   # note %>", want: "<%# note %>"},
	})
}

func TestERBNoEmptyTags(t *testing.T) {
	msg := "ERB tag should not be empty. Remove empty ERB tags or add content."
	runRuleCases(t, "erb-no-empty-tags", []ruleCase{
		{name: "content", input: "<h1>\n  <%= title %>\n</h1>\n<%= \"\" %>\n<% # note %>"},
		{name: "empty", input: "<h1>\n  <% %>\n  <%= %>\n</h1>", want: []string{msg, msg}},
		{name: "in attribute value", input: "<div class=\"<%= %>\"></div>", want: []string{msg}},
		{name: "in tag", input: "<div <%= %>></div>", want: []string{msg}},
		{name: "unclosed", input: "<%"},
	})
}

func TestERBNoExtraWhitespaceInsideTags(t *testing.T) {
	runRuleCases(t, "erb-no-extra-whitespace-inside-tags", []ruleCase{
		{name: "single spaces", input: "<%= foo %>"},
		{name: "multi-line", input: "<%  \n  foo\n%>"},
		{
			name:  "after open",
			input: "<%=  foo %>",
			want:  []string{"Remove extra whitespace after `<%=`."},
		},
		{
			name:  "before close",
			input: "<%= foo   -%>",
			want:  []string{"Remove extra whitespace before `-%>`."},
		},
		{
			name:  "comment equals",
			input: "<%#=  foo %>",
			want:  []string{"Remove extra whitespace after `<%#=`."},
		},
	})

	r := lint(t, "<%=  foo %>", linter.Options{}, "erb-no-extra-whitespace-inside-tags")
	if got, want := r.Offenses[0].Location, ast.Loc(1, 3, 1, 5); got != want {
		t.Errorf("location = %v, want %v", got, want)
	}

	runFixCases(t, "erb-no-extra-whitespace-inside-tags", []fixCase{
		{name: "after open", input: "<%=   foo %>", want: "<%= foo %>"},
		{name: "both sides", input: "<%  if x   %>y<% end %>", want: "<% if x %>y<% end %>"},
		{name: "comment equals", input: "<%#=   foo %>", want: "<%#= foo %>"},
	})
}

func TestERBRightTrim(t *testing.T) {
	noEffect := func(closing string) string {
		return "Right-trimming with `" + closing + "` has no effect on non-output ERB tags. Use `%>` instead"
	}
	obscure := "Use `-%>` instead of `=%>` for right-trimming. The `=%>` syntax is obscure and not well-supported in most ERB engines"

	runRuleCases(t, "erb-right-trim", []ruleCase{
		{name: "output trim", input: "<%= title -%>"},
		{name: "no trim", input: "<% if x %>\n<% end %>"},
		{
			name:  "statement trim",
			input: "<% if x -%>\n<% else -%>\n<% end -%>",
			want:  []string{noEffect("-%>"), noEffect("-%>"), noEffect("-%>")},
		},
		{name: "statement equals", input: "<% each do =%>", want: []string{noEffect("=%>")}},
		{name: "output equals", input: "<%= valid %>\n<%= bad =%>", want: []string{obscure}},
	})
	runFixCases(t, "erb-right-trim", []fixCase{
		{name: "statement", input: "<% if x -%>y<% end =%>", want: "<% if x %>y<% end %>"},
		{name: "output", input: "<%= a =%>\n<%== b =%>", want: "<%= a -%>\n<%== b -%>"},
	})
}

func TestERBNoExtraNewline(t *testing.T) {
	runRuleCases(t, "erb-no-extra-newline", []ruleCase{
		{name: "two blank lines", input: "a\n\n\nb"},
		{
			name:  "three blank lines",
			input: "a\n\n\n\nb",
			want:  []string{"Extra blank line detected. Remove 1 blank line to maintain consistent spacing (max 2 allowed)."},
		},
		{
			name:  "four blank lines",
			input: "a\n\n\n\n\nb",
			want:  []string{"Extra blank line detected. Remove 2 blank lines to maintain consistent spacing (max 2 allowed)."},
		},
	})

	r := lint(t, "a\n\n\n\n\nb", linter.Options{}, "erb-no-extra-newline")
	if got, want := r.Offenses[0].Location, ast.Loc(4, 0, 6, 0); got != want {
		t.Errorf("location = %v, want %v", got, want)
	}

	runFixCases(t, "erb-no-extra-newline", []fixCase{
		{name: "single run", input: "a\n\n\n\n\nb", want: "a\n\n\nb"},
		{name: "several runs", input: "a\n\n\n\nb\n\n\n\n\n\nc", want: "a\n\n\nb\n\n\nc"},
	})
}

func TestERBRequireTrailingNewline(t *testing.T) {
	msg := "File must end with trailing newline"
	runRuleCases(t, "erb-require-trailing-newline", []ruleCase{
		{name: "newline", input: "<h1></h1>\n", fileName: "a.html.erb"},
		{name: "single newline", input: "\n", fileName: "a.html.erb"},
		{name: "empty", input: "", fileName: "a.html.erb"},
		{name: "missing", input: "<h1></h1>", fileName: "a.html.erb", want: []string{msg}},
		{name: "whitespace only", input: " ", fileName: "a.html.erb", want: []string{msg}},
		{name: "snippet", input: "<h1></h1>"},
	})
	runFixCases(t, "erb-require-trailing-newline", []fixCase{
		{name: "missing", input: "<%= hello %>", fileName: "a.html.erb", want: "<%= hello %>\n"},
	})
}

func TestAutofix_TextFixesCombine(t *testing.T) {
	r := autofix(t, "a\n\n\n\n\nb", linter.Options{FileName: "a.html.erb"},
		"erb-no-extra-newline", "erb-require-trailing-newline")
	if want := "a\n\n\nb\n"; r.Source != want {
		t.Errorf("Source = %q, want %q", r.Source, want)
	}
	if len(r.Fixed) != 2 {
		t.Errorf("Fixed = %v, want 2 offenses", messages(r.Fixed))
	}
}
