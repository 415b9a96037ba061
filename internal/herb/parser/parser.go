// Package parser builds ast trees from HTML+ERB source.
//
// The parser is lossless: every byte of the input belongs to exactly one
// token, so printing the resulting tree reproduces the input. Syntax errors
// are recorded on the document instead of aborting the parse.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// IsVoidElement reports whether name (lowercase) never has a closing tag.
func IsVoidElement(name string) bool {
	return voidElements[name]
}

// Parse parses source into a document.
func Parse(source string) *ast.Document {
	p := &parser{
		src: source,
		doc: &ast.Document{},
	}
	p.lines = append(p.lines, 0)
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			p.lines = append(p.lines, i+1)
		}
	}
	p.parse()
	return p.doc
}

type parser struct {
	src   string
	pos   int
	lines []int
	doc   *ast.Document
	open  []*ast.Element
}

func (p *parser) position(off int) ast.Position {
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > off }) - 1
	return ast.Position{Line: line + 1, Column: off - p.lines[line]}
}

func (p *parser) token(start, end int) ast.Token {
	return ast.Token{
		Value:    p.src[start:end],
		Location: ast.Location{Start: p.position(start), End: p.position(end)},
	}
}

// take consumes n bytes as a token.
func (p *parser) take(n int) ast.Token {
	start := p.pos
	p.pos += n
	return p.token(start, p.pos)
}

func (p *parser) takeWhile(f func(byte) bool) ast.Token {
	start := p.pos
	for p.pos < len(p.src) && f(p.src[p.pos]) {
		p.pos++
	}
	return p.token(start, p.pos)
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) at(prefix string) bool {
	return strings.HasPrefix(p.src[p.pos:], prefix)
}

func (p *parser) atFold(prefix string) bool {
	return len(p.src)-p.pos >= len(prefix) && strings.EqualFold(p.src[p.pos:p.pos+len(prefix)], prefix)
}

func (p *parser) errorf(kind ast.ErrorKind, loc ast.Location, format string, args ...any) {
	p.doc.Errors = append(p.doc.Errors, &ast.ParseError{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

// appendNode adds n to the innermost open element, or to the document.
func (p *parser) appendNode(n ast.Node) {
	if len(p.open) == 0 {
		p.doc.Body = append(p.doc.Body, n)
		return
	}
	top := p.open[len(p.open)-1]
	top.Body = append(top.Body, n)
}

func (p *parser) parse() {
	for !p.eof() {
		switch {
		case p.at("<%"):
			p.appendNode(p.parseERB())
		case p.at("<!--"):
			p.appendNode(p.parseComment())
		case p.at("<![CDATA["):
			p.appendNode(&ast.CDATA{Value: p.takeUntil("]]>")})
		case p.at("<!"):
			p.appendNode(&ast.Doctype{Value: p.takeUntil(">")})
		case p.at("<?"):
			p.appendNode(&ast.XMLDeclaration{Value: p.takeUntil("?>")})
		case p.at("</") && p.pos+2 < len(p.src) && isNameStart(p.src[p.pos+2]):
			p.closeElement(p.parseCloseTag())
		case p.at("<") && p.pos+1 < len(p.src) && isNameStart(p.src[p.pos+1]):
			p.openElement(p.parseOpenTag())
		default:
			p.appendNode(&ast.Text{Content: p.parseText()})
		}
	}
	for i := len(p.open) - 1; i >= 0; i-- {
		p.missingClose(p.open[i])
	}
	p.open = nil
}

// startsMarkup reports whether a construct other than text begins at off.
func (p *parser) startsMarkup(off int) bool {
	if p.src[off] != '<' || off+1 >= len(p.src) {
		return false
	}
	switch c := p.src[off+1]; {
	case c == '%', c == '!', c == '?':
		return true
	case c == '/':
		return off+2 < len(p.src) && isNameStart(p.src[off+2])
	default:
		return isNameStart(c)
	}
}

func (p *parser) parseText() ast.Token {
	start := p.pos
	p.pos++
	for !p.eof() && !p.startsMarkup(p.pos) {
		p.pos++
	}
	return p.token(start, p.pos)
}

// takeUntil consumes through the first occurrence of end, or to EOF.
func (p *parser) takeUntil(end string) ast.Token {
	start := p.pos
	if i := strings.Index(p.src[p.pos+1:], end); i >= 0 {
		p.pos += 1 + i + len(end)
	} else {
		p.pos = len(p.src)
	}
	return p.token(start, p.pos)
}

func (p *parser) parseComment() *ast.Comment {
	c := &ast.Comment{CommentStart: p.take(len("<!--"))}
	start := p.pos
	i := strings.Index(p.src[p.pos:], "-->")
	if i < 0 {
		c.Content = p.token(start, len(p.src))
		p.pos = len(p.src)
		c.CommentEnd = p.token(p.pos, p.pos)
		p.errorf(ast.ErrUnclosedComment, c.CommentStart.Location,
			"Comment opened at (%s) was never closed with `-->`.", c.CommentStart.Location.Start)
		return c
	}
	c.Content = p.token(start, start+i)
	p.pos = start + i
	c.CommentEnd = p.take(len("-->"))
	return c
}

func (p *parser) parseERB() *ast.ERB {
	n := 2
	for _, opening := range []string{"<%==", "<%=", "<%-", "<%#", "<%%"} {
		if p.at(opening) {
			n = len(opening)
			break
		}
	}
	e := &ast.ERB{TagOpening: p.take(n)}
	start := p.pos
	i := strings.Index(p.src[p.pos:], "%>")
	if i < 0 {
		e.Content = p.token(start, len(p.src))
		p.pos = len(p.src)
		e.TagClosing = p.token(p.pos, p.pos)
		p.errorf(ast.ErrUnclosedERBTag, e.TagOpening.Location,
			"Unclosed ERB tag `%s` at (%s). Add `%%>` to close it.", e.TagOpening.Value, e.TagOpening.Location.Start)
		return e
	}
	closeAt := start + i
	if closeAt > start && (p.src[closeAt-1] == '-' || p.src[closeAt-1] == '=') {
		closeAt--
	}
	e.Content = p.token(start, closeAt)
	p.pos = closeAt
	e.TagClosing = p.take(start + i + 2 - closeAt)
	return e
}

func (p *parser) parseOpenTag() *ast.OpenTag {
	tag := &ast.OpenTag{TagOpening: p.take(1)}
	tag.TagName = p.takeWhile(isNameChar)
	for {
		switch {
		case p.eof():
			tag.TagClosing = p.token(p.pos, p.pos)
			p.errorf(ast.ErrUnclosedOpenTag, tag.Loc(),
				"Tag `<%s` at (%s) is missing a closing `>`.", tag.TagName.Value, tag.TagOpening.Location.Start)
			return tag
		case isSpace(p.src[p.pos]):
			tag.Nodes = append(tag.Nodes, &ast.Whitespace{Value: p.takeWhile(isSpace)})
		case p.at("<%"):
			tag.Nodes = append(tag.Nodes, p.parseERB())
		case p.at("/>"):
			tag.TagClosing = p.take(2)
			return tag
		case p.at(">"):
			tag.TagClosing = p.take(1)
			return tag
		default:
			tag.Nodes = append(tag.Nodes, p.parseAttribute())
		}
	}
}

func (p *parser) attrNameEnd(off int) bool {
	c := p.src[off]
	switch {
	case isSpace(c), c == '>', c == '=':
		return true
	case c == '/':
		return off+1 < len(p.src) && p.src[off+1] == '>'
	case c == '<':
		return off+1 < len(p.src) && p.src[off+1] == '%'
	}
	return false
}

func (p *parser) parseAttribute() *ast.Attribute {
	start := p.pos
	for !p.eof() && !p.attrNameEnd(p.pos) {
		p.pos++
	}
	attr := &ast.Attribute{Name: &ast.AttributeName{Name: p.token(start, p.pos)}}

	j := p.pos
	for j < len(p.src) && isSpace(p.src[j]) {
		j++
	}
	if j >= len(p.src) || p.src[j] != '=' {
		return attr
	}
	j++
	for j < len(p.src) && isSpace(p.src[j]) {
		j++
	}
	eq := p.token(p.pos, j)
	attr.Equals = &eq
	p.pos = j
	attr.Value = p.parseAttributeValue()
	return attr
}

func (p *parser) parseAttributeValue() *ast.AttributeValue {
	if !p.eof() && (p.src[p.pos] == '"' || p.src[p.pos] == '\'') {
		quote := p.src[p.pos : p.pos+1]
		v := &ast.AttributeValue{Quoted: true, OpenQuote: p.take(1)}
		for {
			switch {
			case p.eof():
				v.CloseQuote = p.token(p.pos, p.pos)
				p.errorf(ast.ErrUnclosedQuote, v.OpenQuote.Location,
					"String opened at (%s) was never closed with `%s`.", v.OpenQuote.Location.Start, quote)
				return v
			case p.at(quote):
				v.CloseQuote = p.take(1)
				return v
			case p.at("<%"):
				v.Nodes = append(v.Nodes, p.parseERB())
			default:
				start := p.pos
				for !p.eof() && !p.at(quote) && !p.at("<%") {
					p.pos++
				}
				v.Nodes = append(v.Nodes, &ast.Literal{Content: p.token(start, p.pos)})
			}
		}
	}

	v := &ast.AttributeValue{OpenQuote: p.token(p.pos, p.pos)}
	for !p.eof() && !isSpace(p.src[p.pos]) && p.src[p.pos] != '>' {
		if p.at("<%") {
			v.Nodes = append(v.Nodes, p.parseERB())
			continue
		}
		start := p.pos
		for !p.eof() && !isSpace(p.src[p.pos]) && p.src[p.pos] != '>' && !p.at("<%") {
			p.pos++
		}
		v.Nodes = append(v.Nodes, &ast.Literal{Content: p.token(start, p.pos)})
	}
	v.CloseQuote = p.token(p.pos, p.pos)
	return v
}

func (p *parser) parseCloseTag() *ast.CloseTag {
	tag := &ast.CloseTag{TagOpening: p.take(2)}
	tag.TagName = p.takeWhile(isNameChar)
	for {
		switch {
		case p.eof():
			tag.TagClosing = p.token(p.pos, p.pos)
			p.errorf(ast.ErrUnclosedCloseTag, tag.Loc(),
				"Closing tag `</%s` at (%s) is missing a closing `>`.", tag.TagName.Value, tag.TagOpening.Location.Start)
			return tag
		case p.at(">"):
			tag.TagClosing = p.take(1)
			return tag
		case isSpace(p.src[p.pos]):
			tag.Nodes = append(tag.Nodes, &ast.Whitespace{Value: p.takeWhile(isSpace)})
		default:
			tag.Nodes = append(tag.Nodes, &ast.Literal{Content: p.takeWhile(func(c byte) bool {
				return c != '>' && !isSpace(c)
			})})
		}
	}
}

func (p *parser) openElement(tag *ast.OpenTag) {
	el := &ast.Element{OpenTag: tag}
	p.appendNode(el)
	name := tag.Name()
	if tag.SelfClosing() || voidElements[name] || tag.TagClosing.Empty() {
		el.Void = tag.SelfClosing() || voidElements[name]
		return
	}
	p.open = append(p.open, el)
	if rawTextElements[name] {
		p.parseRawText(name)
	}
}

// parseRawText consumes the body of script and style elements up to their
// closing tag. ERB tags are still recognised.
func (p *parser) parseRawText(name string) {
	end := "</" + name
	for !p.eof() && !p.atFold(end) {
		if p.at("<%") {
			p.appendNode(p.parseERB())
			continue
		}
		start := p.pos
		for !p.eof() && !p.atFold(end) && !p.at("<%") {
			p.pos++
		}
		p.appendNode(&ast.Text{Content: p.token(start, p.pos)})
	}
}

func (p *parser) closeElement(tag *ast.CloseTag) {
	name := tag.Name()
	for i := len(p.open) - 1; i >= 0; i-- {
		if p.open[i].Name() != name {
			continue
		}
		for j := len(p.open) - 1; j > i; j-- {
			p.missingClose(p.open[j])
		}
		p.open[i].CloseTag = tag
		p.open = p.open[:i]
		return
	}
	p.errorf(ast.ErrMissingOpeningTag, tag.Loc(),
		"Found closing tag `</%s>` at (%s) without a matching opening tag in the same scope.",
		tag.TagName.Value, tag.TagOpening.Location.Start)
	p.appendNode(tag)
}

func (p *parser) missingClose(el *ast.Element) {
	p.errorf(ast.ErrMissingClosingTag, el.OpenTag.Loc(),
		"Opening tag `<%s>` at (%s) doesn't have a matching closing tag `</%s>` in the same scope.",
		el.TagName(), el.OpenTag.TagOpening.Location.Start, el.TagName())
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == ':' || c == '_' || c == '.'
}
