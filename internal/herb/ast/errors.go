package ast

import "fmt"

// ErrorKind classifies parse errors.
type ErrorKind string

const (
	ErrMissingClosingTag ErrorKind = "MISSING_CLOSING_TAG_ERROR"
	ErrMissingOpeningTag ErrorKind = "MISSING_OPENING_TAG_ERROR"
	ErrUnclosedERBTag    ErrorKind = "UNCLOSED_ERB_TAG_ERROR"
	ErrUnclosedQuote     ErrorKind = "UNCLOSED_QUOTE_ERROR"
	ErrUnclosedOpenTag   ErrorKind = "UNCLOSED_OPEN_TAG_ERROR"
	ErrUnclosedCloseTag  ErrorKind = "UNCLOSED_CLOSE_TAG_ERROR"
	ErrUnclosedComment   ErrorKind = "UNCLOSED_COMMENT_ERROR"
)

// ParseError is a syntax error found while building the tree.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Location Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location.Start, e.Message)
}
