package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

// Execute runs cmd with args and returns a process exit code. An
// ExitCodeError returned by the command becomes its exit code silently;
// any other error is printed to stderr and exits with ExitError.
func Execute(ctx context.Context, cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var code ExitCodeError
	if errors.As(err, &code) {
		return int(code)
	}
	Writef(stderr, "%s: %v\n", cmd.Name(), err)
	return ExitError
}
