package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestExitCodes(t *testing.T) {
	if ExitOK != 0 || ExitError != 1 || ExitWarning != 2 {
		t.Errorf("exit codes = %d, %d, %d; want 0, 1, 2", ExitOK, ExitError, ExitWarning)
	}
}

func TestWriteHelpers(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "hello %s, count=%d", "world", 42)
	Writeln(&buf)
	Writeln(&buf, "a", 1)
	Write(&buf, "tail")

	want := "hello world, count=42\na 1\ntail"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExitCodeError(t *testing.T) {
	err := ExitCodeError(42)
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("ExitCodeError.Error() = %q, want to contain '42'", err.Error())
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		runErr     error
		wantCode   int
		wantStderr string
	}{
		{"success", nil, ExitOK, ""},
		{"exit code", ExitCodeError(ExitWarning), ExitWarning, ""},
		{"wrapped exit code", errors.Join(errors.New("ctx"), ExitCodeError(7)), 7, ""},
		{"plain error", errors.New("boom"), ExitError, "testcmd: boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{
				Use:  "testcmd",
				RunE: func(*cobra.Command, []string) error { return tt.runErr },
			}
			var stdout, stderr bytes.Buffer
			code := Execute(context.Background(), cmd, nil, &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("Execute() = %d, want %d", code, tt.wantCode)
			}
			if got := stderr.String(); got != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", got, tt.wantStderr)
			}
		})
	}
}

func TestExecute_UnknownFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "testcmd", RunE: func(*cobra.Command, []string) error { return nil }}
	var stdout, stderr bytes.Buffer
	if code := Execute(context.Background(), cmd, []string{"--nope"}, &stdout, &stderr); code != ExitError {
		t.Errorf("Execute() = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "unknown flag: --nope") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
