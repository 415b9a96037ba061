// Package filekind defines the template file types recognized by herblint.
package filekind

import (
	"path/filepath"
	"strings"
)

// Kind represents the type of template file.
type Kind string

const (
	// KindHTMLERB is an HTML template with embedded Ruby (.html.erb, .erb, .rhtml).
	KindHTMLERB Kind = "html+erb"
	// KindHerb is a .herb template.
	KindHerb Kind = "herb"
	// KindXMLERB is an XML template (.xml.erb, .rss.erb, .atom.erb).
	KindXMLERB Kind = "xml+erb"
	// KindTurboStream is a Turbo Stream template (.turbo_stream.erb).
	KindTurboStream Kind = "turbo_stream"
	// KindHTML is plain HTML.
	KindHTML Kind = "html"

	// KindUnknown indicates an unrecognized file type.
	KindUnknown Kind = "unknown"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsXML returns true for kinds whose markup is XML rather than HTML.
// Rules about HTML document structure do not apply to them.
func (k Kind) IsXML() bool {
	return k == KindXMLERB
}

// IsTemplate returns true if the kind contains ERB.
func (k Kind) IsTemplate() bool {
	switch k {
	case KindHTMLERB, KindHerb, KindXMLERB, KindTurboStream:
		return true
	}
	return false
}

// AllKinds returns all defined file kinds.
func AllKinds() []Kind {
	return []Kind{
		KindHTMLERB,
		KindHerb,
		KindXMLERB,
		KindTurboStream,
		KindHTML,
		KindUnknown,
	}
}

// Classify returns the kind of the file at path.
func Classify(path string) Kind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".xml.erb"),
		strings.HasSuffix(name, ".rss.erb"),
		strings.HasSuffix(name, ".atom.erb"),
		strings.HasSuffix(name, ".xml"):
		return KindXMLERB
	case strings.HasSuffix(name, ".turbo_stream.erb"):
		return KindTurboStream
	case strings.HasSuffix(name, ".herb"):
		return KindHerb
	case strings.HasSuffix(name, ".erb"),
		strings.HasSuffix(name, ".rhtml"):
		return KindHTMLERB
	case strings.HasSuffix(name, ".html"),
		strings.HasSuffix(name, ".htm"):
		return KindHTML
	}
	return KindUnknown
}

// IsTemplateFile returns true if the filename is linted by default.
func IsTemplateFile(name string) bool {
	k := Classify(name)
	return k.IsTemplate()
}

// DefaultIncludes are the glob patterns matched during directory discovery.
var DefaultIncludes = []string{
	"**/*.html.erb",
	"**/*.herb",
	"**/*.erb",
	"**/*.rhtml",
	"**/*.turbo_stream.erb",
}

// DefaultExcludes are directory patterns skipped during discovery.
var DefaultExcludes = []string{
	"coverage/**/*",
	"log/**/*",
	"node_modules/**/*",
	"storage/**/*",
	"tmp/**/*",
	"vendor/**/*",
}
