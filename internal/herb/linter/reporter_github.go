package linter

import (
	"fmt"
	"io"
	"strings"
)

// GitHubReporter outputs offenses in GitHub Actions annotation format.
// Format: ::warning file={file},line={line},col={col}::{message} [{rule}]
// See: https://docs.github.com/en/actions/using-workflows/workflow-commands-for-github-actions
type GitHubReporter struct{}

// NewGitHubReporter creates a new GitHub Actions reporter.
func NewGitHubReporter() *GitHubReporter {
	return &GitHubReporter{}
}

var (
	messageEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	paramEscaper   = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// Report implements the Reporter interface for GitHub Actions output.
func (r *GitHubReporter) Report(w io.Writer, result *RunResult) error {
	for _, o := range result.Offenses() {
		if err := r.reportOffense(w, o); err != nil {
			return err
		}
	}

	for _, fileErr := range result.Errors {
		if _, err := fmt.Fprintf(w, "::error file=%s::%s\n",
			paramEscaper.Replace(fileErr.Path),
			messageEscaper.Replace("Failed to process file: "+fileErr.Err.Error())); err != nil {
			return err
		}
	}
	return nil
}

func (r *GitHubReporter) reportOffense(w io.Writer, o Offense) error {
	start, end := o.Location.Start, o.Location.End
	location := fmt.Sprintf("file=%s,line=%d,col=%d", paramEscaper.Replace(o.FileName), start.Line, start.Column+1)
	if end.Line > 0 && end.Line != start.Line {
		location += fmt.Sprintf(",endLine=%d", end.Line)
	}
	if end.Line == start.Line && end.Column > start.Column {
		location += fmt.Sprintf(",endColumn=%d", end.Column+1)
	}

	message := messageEscaper.Replace(o.Message)
	if o.Code != "" {
		message += fmt.Sprintf(" [%s]", o.Code)
	}
	_, err := fmt.Fprintf(w, "::%s %s,title=%s::%s\n",
		severityToLevel(o.Severity), location, paramEscaper.Replace(o.Code), message)
	return err
}

// severityToLevel converts a Severity to a GitHub Actions annotation level.
func severityToLevel(s Severity) string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		// GitHub Actions only supports error, warning, and notice
		return "notice"
	}
}
