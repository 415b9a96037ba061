// Package cmdtest provides a testscript-based test harness for herblint.
//
// It uses txtar format test files to specify input files and expected outputs,
// making it easy to write end-to-end CLI tests.
//
// Example test file (testdata/herblint/lowercase.txtar):
//
//	# Uppercase tag names are errors
//	! exec herblint page.html.erb
//	stdout 'html-tag-name-lowercase'
//
//	-- page.html.erb --
//	<DIV></DIV>
package cmdtest

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/albertocavalcante/herb/internal/cmd/herblint"
)

// Run executes the testscript tests in the given directory.
func Run(t *testing.T, dir string) {
	testscript.Run(t, testscript.Params{
		Dir: dir,
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

// Main is the TestMain function that should be called from test files.
// It sets up herblint as a testscript command.
func Main(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"herblint": wrapRun(herblint.Run),
	}))
}

// wrapRun wraps a Run(args []string) int function to func() int for testscript.
// The args are taken from os.Args[1:].
func wrapRun(run func(args []string) int) func() int {
	return func() int {
		return run(os.Args[1:])
	}
}
