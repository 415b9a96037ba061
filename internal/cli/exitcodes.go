// Package cli provides shared plumbing for the herblint command line.
package cli

import "fmt"

// Exit codes follow Unix conventions.
const (
	// ExitOK means no offenses, or only info and hint offenses.
	ExitOK = 0

	// ExitError means error offenses were found or the run failed (bad
	// flags, unreadable config, I/O errors).
	ExitError = 1

	// ExitWarning means warnings but no errors were found.
	ExitWarning = 2
)

// ExitCodeError makes a command exit with the given code without printing
// an error message. Commands return it after they have already reported
// their results.
type ExitCodeError int

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}
