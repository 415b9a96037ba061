// Package printer serializes ast trees back to source text.
//
// Print is the exact inverse of parser.Parse: for any input s,
// Print(parser.Parse(s)) == s.
package printer

import (
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/ast"
)

// Print renders n and its descendants.
func Print(n ast.Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Document:
		writeAll(b, n.Body)
	case *ast.Text:
		b.WriteString(n.Content.Value)
	case *ast.Whitespace:
		b.WriteString(n.Value.Value)
	case *ast.Literal:
		b.WriteString(n.Content.Value)
	case *ast.Element:
		write(b, n.OpenTag)
		writeAll(b, n.Body)
		if n.CloseTag != nil {
			write(b, n.CloseTag)
		}
	case *ast.OpenTag:
		b.WriteString(n.TagOpening.Value)
		b.WriteString(n.TagName.Value)
		writeAll(b, n.Nodes)
		b.WriteString(n.TagClosing.Value)
	case *ast.CloseTag:
		b.WriteString(n.TagOpening.Value)
		b.WriteString(n.TagName.Value)
		writeAll(b, n.Nodes)
		b.WriteString(n.TagClosing.Value)
	case *ast.Attribute:
		write(b, n.Name)
		if n.Equals != nil {
			b.WriteString(n.Equals.Value)
		}
		if n.Value != nil {
			write(b, n.Value)
		}
	case *ast.AttributeName:
		b.WriteString(n.Name.Value)
	case *ast.AttributeValue:
		b.WriteString(n.OpenQuote.Value)
		writeAll(b, n.Nodes)
		b.WriteString(n.CloseQuote.Value)
	case *ast.Comment:
		b.WriteString(n.CommentStart.Value)
		b.WriteString(n.Content.Value)
		b.WriteString(n.CommentEnd.Value)
	case *ast.Doctype:
		b.WriteString(n.Value.Value)
	case *ast.XMLDeclaration:
		b.WriteString(n.Value.Value)
	case *ast.CDATA:
		b.WriteString(n.Value.Value)
	case *ast.ERB:
		b.WriteString(n.TagOpening.Value)
		b.WriteString(n.Content.Value)
		b.WriteString(n.TagClosing.Value)
	}
}

func writeAll(b *strings.Builder, nodes []ast.Node) {
	for _, n := range nodes {
		write(b, n)
	}
}
