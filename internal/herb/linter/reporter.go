package linter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/albertocavalcante/herb/internal/sortutil"
)

// Reporter formats and outputs lint results.
type Reporter interface {
	// Report writes the lint results to the writer.
	Report(w io.Writer, result *RunResult) error
}

// ColorEnabled reports whether w is a terminal that should receive ANSI
// colours. NO_COLOR disables colour regardless.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TextReporter outputs offenses in human-readable text format. Columns are
// shown 1-based.
type TextReporter struct {
	// ShowRule includes the rule name in the output
	ShowRule bool

	// ColorOutput enables colored output (for terminals)
	ColorOutput bool

	// ShowTiming appends the run duration to the summary.
	ShowTiming bool
}

// NewTextReporter creates a new text reporter with default settings.
func NewTextReporter() *TextReporter {
	return &TextReporter{ShowRule: true}
}

// Report implements the Reporter interface for text output.
func (r *TextReporter) Report(w io.Writer, result *RunResult) error {
	offenses := result.Offenses()

	var currentFile string
	for _, o := range offenses {
		if o.FileName != currentFile {
			if currentFile != "" {
				if _, err := fmt.Fprintln(w); err != nil { // Blank line between files
					return err
				}
			}
			currentFile = o.FileName
		}
		if err := r.reportOffense(w, o); err != nil {
			return err
		}
	}

	for name, faults := range sortedFaults(result) {
		for _, f := range faults {
			if _, err := fmt.Fprintf(w, "%s: %s %v\n", name, r.paint("warning:", ansiYellow), f); err != nil {
				return err
			}
		}
	}

	for _, fileErr := range result.Errors {
		if _, err := fmt.Fprintf(w, "Error processing %s: %v\n", fileErr.Path, fileErr.Err); err != nil {
			return err
		}
	}

	if len(offenses) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return r.reportSummary(w, result)
}

func (r *TextReporter) reportOffense(w io.Writer, o Offense) error {
	parts := []string{
		fmt.Sprintf("%s:%d:%d:", o.FileName, o.Location.Start.Line, o.Location.Start.Column+1),
		r.formatSeverity(o.Severity),
		o.Message,
	}
	if r.ShowRule && o.Code != "" {
		parts = append(parts, r.paint(fmt.Sprintf("(%s)", o.Code), ansiGray))
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGreen  = "\033[32m"
	ansiGray   = "\033[90m"
	ansiReset  = "\033[0m"
)

func (r *TextReporter) paint(s, color string) string {
	if !r.ColorOutput {
		return s
	}
	return color + s + ansiReset
}

func (r *TextReporter) formatSeverity(s Severity) string {
	switch s {
	case SeverityError:
		return r.paint("error:", ansiRed)
	case SeverityWarning:
		return r.paint("warning:", ansiYellow)
	case SeverityInfo:
		return r.paint("info:", ansiCyan)
	case SeverityHint:
		return r.paint("hint:", ansiGray)
	default:
		return "unknown:"
	}
}

func (r *TextReporter) reportSummary(w io.Writer, result *RunResult) error {
	files := len(result.Files) + len(result.Errors)
	errors := result.ErrorCount()
	warnings := result.WarningCount()

	var parts []string
	if errors > 0 {
		parts = append(parts, plural(errors, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}

	var line string
	if len(parts) > 0 {
		line = fmt.Sprintf("Found %s in %d of %s", strings.Join(parts, ", "),
			result.FilesWithOffenses(), plural(files, "file"))
	} else if len(result.Errors) == 0 {
		line = r.paint(fmt.Sprintf("Checked %s, all clean", plural(files, "file")), ansiGreen)
	} else {
		line = fmt.Sprintf("Checked %s", plural(files, "file"))
	}
	if fixed := result.FixedCount(); fixed > 0 {
		line += fmt.Sprintf(" (%s fixed)", plural(fixed, "offense"))
	}
	if r.ShowTiming {
		line += fmt.Sprintf(" in %dms with %s", result.Duration.Milliseconds(), plural(result.RuleCount, "rule"))
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// CompactReporter outputs offenses in a compact, single-line format.
// Format: file:line:column: severity: message (rule)
type CompactReporter struct{}

// NewCompactReporter creates a new compact reporter.
func NewCompactReporter() *CompactReporter {
	return &CompactReporter{}
}

// Report implements the Reporter interface for compact output.
func (r *CompactReporter) Report(w io.Writer, result *RunResult) error {
	for _, o := range result.Offenses() {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n",
			o.FileName, o.Location.Start.Line, o.Location.Start.Column+1,
			o.Severity, o.Message, o.Code); err != nil {
			return err
		}
	}

	for _, fileErr := range result.Errors {
		if _, err := fmt.Fprintf(w, "%s: error: %v\n", fileErr.Path, fileErr.Err); err != nil {
			return err
		}
	}
	return nil
}

// sortedFaults yields faults grouped by file name in name order.
func sortedFaults(result *RunResult) func(yield func(string, []Fault) bool) {
	return func(yield func(string, []Fault) bool) {
		byFile := result.Faults()
		names := make([]string, 0, len(byFile))
		for name := range byFile {
			names = append(names, name)
		}
		sortutil.ByName(names, func(s string) string { return s })
		for _, name := range names {
			if !yield(name, byFile[name]) {
				return
			}
		}
	}
}
