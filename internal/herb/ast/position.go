package ast

import "fmt"

// Position is a point in a template. Line is 1-based, Column is a 0-based
// byte offset within the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Compare orders positions by line, then column.
func (p Position) Compare(q Position) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Column < q.Column:
		return -1
	case p.Column > q.Column:
		return 1
	}
	return 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a half-open source range.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Loc builds a Location from line/column pairs.
func Loc(startLine, startColumn, endLine, endColumn int) Location {
	return Location{
		Start: Position{Line: startLine, Column: startColumn},
		End:   Position{Line: endLine, Column: endColumn},
	}
}

// Span returns the location covering both a and b.
func Span(a, b Location) Location {
	out := a
	if b.Start.Compare(out.Start) < 0 {
		out.Start = b.Start
	}
	if b.End.Compare(out.End) > 0 {
		out.End = b.End
	}
	return out
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// Token is a lexeme of the template. The printer reproduces a document by
// concatenating token values, so the Value of every token is exact source text.
type Token struct {
	Value    string
	Location Location
}

// Empty reports whether the token holds no text. Missing closing delimiters
// are represented as empty tokens.
func (t Token) Empty() bool {
	return t.Value == ""
}
