// Package ast defines the syntax tree of HTML+ERB templates.
//
// Every node carries a Kind discriminant. Composite nodes expose their
// children in source order through Children, which is the order used by
// Walker and by child-index Paths.
package ast

import "strings"

// Kind discriminates node types.
type Kind int

const (
	KindDocument Kind = iota
	KindText
	KindWhitespace
	KindLiteral
	KindElement
	KindOpenTag
	KindCloseTag
	KindAttribute
	KindAttributeName
	KindAttributeValue
	KindComment
	KindDoctype
	KindXMLDeclaration
	KindCDATA
	KindERB

	kindCount
)

var kindNames = [kindCount]string{
	KindDocument:       "Document",
	KindText:           "Text",
	KindWhitespace:     "Whitespace",
	KindLiteral:        "Literal",
	KindElement:        "Element",
	KindOpenTag:        "OpenTag",
	KindCloseTag:       "CloseTag",
	KindAttribute:      "Attribute",
	KindAttributeName:  "AttributeName",
	KindAttributeValue: "AttributeValue",
	KindComment:        "Comment",
	KindDoctype:        "Doctype",
	KindXMLDeclaration: "XMLDeclaration",
	KindCDATA:          "CDATA",
	KindERB:            "ERB",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is implemented by every tree node.
type Node interface {
	Kind() Kind
	Loc() Location
	// Children returns the child nodes in source order. It never contains nil.
	Children() []Node
}

// Document is the root of a parsed template.
type Document struct {
	Body   []Node
	Errors []*ParseError
}

func (*Document) Kind() Kind         { return KindDocument }
func (d *Document) Children() []Node { return d.Body }
func (d *Document) Loc() Location {
	if len(d.Body) == 0 {
		return Loc(1, 0, 1, 0)
	}
	return Location{Start: Position{Line: 1}, End: d.Body[len(d.Body)-1].Loc().End}
}

// HasErrors reports whether the parser recorded any error.
func (d *Document) HasErrors() bool { return len(d.Errors) > 0 }

// Text is character data between tags.
type Text struct {
	Content Token
}

func (*Text) Kind() Kind       { return KindText }
func (*Text) Children() []Node { return nil }
func (t *Text) Loc() Location  { return t.Content.Location }

// Whitespace is a run of blanks inside a tag.
type Whitespace struct {
	Value Token
}

func (*Whitespace) Kind() Kind       { return KindWhitespace }
func (*Whitespace) Children() []Node { return nil }
func (w *Whitespace) Loc() Location  { return w.Value.Location }

// Literal is static text inside an attribute value or a tag.
type Literal struct {
	Content Token
}

func (*Literal) Kind() Kind       { return KindLiteral }
func (*Literal) Children() []Node { return nil }
func (l *Literal) Loc() Location  { return l.Content.Location }

// Element is an HTML element. CloseTag is nil for void and self-closing
// elements, and for elements the parser could not close.
type Element struct {
	OpenTag  *OpenTag
	Body     []Node
	CloseTag *CloseTag
	// Void is set for void elements (<br>) and self-closing tags (<div />).
	Void bool
}

func (*Element) Kind() Kind { return KindElement }

func (e *Element) Children() []Node {
	out := make([]Node, 0, len(e.Body)+2)
	out = append(out, e.OpenTag)
	out = append(out, e.Body...)
	if e.CloseTag != nil {
		out = append(out, e.CloseTag)
	}
	return out
}

func (e *Element) Loc() Location {
	loc := e.OpenTag.Loc()
	switch {
	case e.CloseTag != nil:
		loc.End = e.CloseTag.Loc().End
	case len(e.Body) > 0:
		loc.End = e.Body[len(e.Body)-1].Loc().End
	}
	return loc
}

// TagName returns the element name as written.
func (e *Element) TagName() string { return e.OpenTag.TagName.Value }

// Name returns the lowercased element name.
func (e *Element) Name() string { return strings.ToLower(e.OpenTag.TagName.Value) }

// OpenTag is "<name attrs...>" or "<name attrs... />".
type OpenTag struct {
	TagOpening Token
	TagName    Token
	// Children holds attributes, whitespace and ERB tags in source order.
	Nodes      []Node
	TagClosing Token
}

func (*OpenTag) Kind() Kind         { return KindOpenTag }
func (o *OpenTag) Children() []Node { return o.Nodes }
func (o *OpenTag) Loc() Location {
	return Span(o.TagOpening.Location, o.TagClosing.Location)
}

// SelfClosing reports whether the tag ends with "/>".
func (o *OpenTag) SelfClosing() bool { return o.TagClosing.Value == "/>" }

// Name returns the lowercased tag name.
func (o *OpenTag) Name() string { return strings.ToLower(o.TagName.Value) }

// Attributes returns the attribute children of the tag.
func (o *OpenTag) Attributes() []*Attribute {
	var out []*Attribute
	for _, c := range o.Nodes {
		if a, ok := c.(*Attribute); ok {
			out = append(out, a)
		}
	}
	return out
}

// Attribute returns the first attribute whose name matches name
// case-insensitively.
func (o *OpenTag) Attribute(name string) *Attribute {
	for _, a := range o.Attributes() {
		if strings.EqualFold(a.Name.Name.Value, name) {
			return a
		}
	}
	return nil
}

// CloseTag is "</name>".
type CloseTag struct {
	TagOpening Token
	TagName    Token
	Nodes      []Node
	TagClosing Token
}

func (*CloseTag) Kind() Kind         { return KindCloseTag }
func (c *CloseTag) Children() []Node { return c.Nodes }
func (c *CloseTag) Loc() Location {
	return Span(c.TagOpening.Location, c.TagClosing.Location)
}

// Name returns the lowercased tag name.
func (c *CloseTag) Name() string { return strings.ToLower(c.TagName.Value) }

// Attribute is name, name=value or name="value". Equals holds the "=" together
// with any surrounding blanks and is nil for valueless attributes.
type Attribute struct {
	Name   *AttributeName
	Equals *Token
	Value  *AttributeValue
}

func (*Attribute) Kind() Kind { return KindAttribute }

func (a *Attribute) Children() []Node {
	if a.Value == nil {
		return []Node{a.Name}
	}
	return []Node{a.Name, a.Value}
}

func (a *Attribute) Loc() Location {
	loc := a.Name.Loc()
	if a.Equals != nil {
		loc = Span(loc, a.Equals.Location)
	}
	if a.Value != nil {
		loc = Span(loc, a.Value.Loc())
	}
	return loc
}

// NameString returns the lowercased attribute name.
func (a *Attribute) NameString() string { return strings.ToLower(a.Name.Name.Value) }

// AttributeName holds the attribute name token.
type AttributeName struct {
	Name Token
}

func (*AttributeName) Kind() Kind       { return KindAttributeName }
func (*AttributeName) Children() []Node { return nil }
func (n *AttributeName) Loc() Location  { return n.Name.Location }

// AttributeValue is a quoted or unquoted value made of literals and ERB tags.
type AttributeValue struct {
	OpenQuote  Token
	Nodes      []Node
	CloseQuote Token
	Quoted     bool
}

func (*AttributeValue) Kind() Kind         { return KindAttributeValue }
func (v *AttributeValue) Children() []Node { return v.Nodes }

func (v *AttributeValue) Loc() Location {
	if v.Quoted {
		loc := v.OpenQuote.Location
		if !v.CloseQuote.Empty() {
			loc = Span(loc, v.CloseQuote.Location)
		} else if n := len(v.Nodes); n > 0 {
			loc = Span(loc, v.Nodes[n-1].Loc())
		}
		return loc
	}
	if len(v.Nodes) == 0 {
		return v.OpenQuote.Location
	}
	return Span(v.Nodes[0].Loc(), v.Nodes[len(v.Nodes)-1].Loc())
}

// Static returns the concatenated literal content and whether the value is
// free of ERB.
func (v *AttributeValue) Static() (string, bool) {
	var b strings.Builder
	static := true
	for _, c := range v.Nodes {
		switch c := c.(type) {
		case *Literal:
			b.WriteString(c.Content.Value)
		default:
			static = false
		}
	}
	return b.String(), static
}

// Comment is "<!-- ... -->".
type Comment struct {
	CommentStart Token
	Content      Token
	CommentEnd   Token
}

func (*Comment) Kind() Kind       { return KindComment }
func (*Comment) Children() []Node { return nil }
func (c *Comment) Loc() Location {
	return Span(c.CommentStart.Location, Span(c.Content.Location, c.CommentEnd.Location))
}

// Doctype is "<!DOCTYPE ...>".
type Doctype struct {
	Value Token
}

func (*Doctype) Kind() Kind       { return KindDoctype }
func (*Doctype) Children() []Node { return nil }
func (d *Doctype) Loc() Location  { return d.Value.Location }

// XMLDeclaration is "<?xml ... ?>".
type XMLDeclaration struct {
	Value Token
}

func (*XMLDeclaration) Kind() Kind       { return KindXMLDeclaration }
func (*XMLDeclaration) Children() []Node { return nil }
func (x *XMLDeclaration) Loc() Location  { return x.Value.Location }

// CDATA is "<![CDATA[ ... ]]>".
type CDATA struct {
	Value Token
}

func (*CDATA) Kind() Kind       { return KindCDATA }
func (*CDATA) Children() []Node { return nil }
func (c *CDATA) Loc() Location  { return c.Value.Location }

// ERB is an embedded Ruby tag such as "<%= value %>".
type ERB struct {
	TagOpening Token
	Content    Token
	TagClosing Token
}

func (*ERB) Kind() Kind       { return KindERB }
func (*ERB) Children() []Node { return nil }
func (e *ERB) Loc() Location {
	return Span(e.TagOpening.Location, Span(e.Content.Location, e.TagClosing.Location))
}

// IsComment reports whether the tag is "<%# ... %>".
func (e *ERB) IsComment() bool { return e.TagOpening.Value == "<%#" }

// IsOutput reports whether the tag renders its value.
func (e *ERB) IsOutput() bool {
	return e.TagOpening.Value == "<%=" || e.TagOpening.Value == "<%=="
}
