package filekind

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"app/views/home/index.html.erb", KindHTMLERB},
		{"app/views/home/INDEX.HTML.ERB", KindHTMLERB},
		{"legacy/page.rhtml", KindHTMLERB},
		{"app/views/feed.xml.erb", KindXMLERB},
		{"app/views/feed.rss.erb", KindXMLERB},
		{"sitemap.xml", KindXMLERB},
		{"app/views/posts/create.turbo_stream.erb", KindTurboStream},
		{"app/components/card.herb", KindHerb},
		{"public/404.html", KindHTML},
		{"README.md", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestKind_IsXML(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindXMLERB, true},
		{KindHTMLERB, false},
		{KindTurboStream, false},
		{KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsXML(); got != tt.want {
				t.Errorf("Kind.IsXML() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTemplateFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"index.html.erb", true},
		{"card.herb", true},
		{"feed.xml.erb", true},
		{"index.html", false},
		{"main.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemplateFile(tt.name); got != tt.want {
				t.Errorf("IsTemplateFile(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestAllKinds(t *testing.T) {
	seen := make(map[Kind]bool)
	for _, k := range AllKinds() {
		if seen[k] {
			t.Errorf("duplicate kind %q", k)
		}
		seen[k] = true
	}
	if !seen[KindUnknown] {
		t.Error("AllKinds() missing KindUnknown")
	}
}
