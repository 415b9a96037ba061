// Package herblint implements the herblint command.
package herblint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/herb/internal/ci"
	"github.com/albertocavalcante/herb/internal/cli"
	"github.com/albertocavalcante/herb/internal/herb/config"
	"github.com/albertocavalcante/herb/internal/herb/linter"
	"github.com/albertocavalcante/herb/internal/herb/linter/rules"
	"github.com/albertocavalcante/herb/internal/logging"
	"github.com/albertocavalcante/herb/internal/version"
)

// Run executes herblint with the given arguments.
// Returns exit code.
func Run(args []string) int {
	return RunWithIO(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithIO allows custom IO for embedding/testing.
func RunWithIO(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return cli.Execute(ctx, newRootCmd(stdin), args, stdout, stderr)
}

type options struct {
	fix                   bool
	diff                  bool
	format                string
	configPath            string
	enable                []string
	disable               []string
	ignoreDisableComments bool
	warningsAsErrors      bool
	watch                 bool
	timing                bool
	noColor               bool
	stdinFilename         string
	noGitHub              bool
	logLevel              string
	logFormat             string
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "herblint [flags] [path ...]",
		Short: "Lint HTML+ERB templates",
		Long: `Lints HTML+ERB templates. Directories are searched for .html.erb, .erb,
.herb, .rhtml and .turbo_stream.erb files. With no paths, the current
directory is linted. A path of "-" reads a template from stdin.

Offenses on a line can be suppressed with <%# herb:disable rule-name %>
(or herb:disable all) at the end of that line. A file containing
<%# herb:linter ignore %> is not linted at all.`,
		Example: `  herblint                                  # Lint the current directory
  herblint app/views                        # Lint a directory
  herblint --fix app/views                  # Apply safe fixes in place
  herblint --diff app/views                 # Show what --fix would change
  herblint --format json . > report.json    # Machine-readable output
  herblint --disable html-no-self-closing . # Turn a rule off
  herblint rules                            # List all available rules`,
		Args:    cobra.ArbitraryArgs,
		Version: version.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), args, stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetVersionTemplate("herblint {{.Version}}\n")

	f := cmd.Flags()
	f.BoolVar(&o.fix, "fix", false, "apply fixes and write changed files")
	f.BoolVar(&o.diff, "diff", false, "print fixes as a unified diff without writing files")
	f.StringVar(&o.format, "format", "", "output format: text, compact, json, github, lsp (default: github on GitHub Actions, text elsewhere)")
	f.StringVar(&o.configPath, "config", "", "path to a config file (default: discover .herb.yml, herb.toml or herb.star)")
	f.StringSliceVar(&o.enable, "enable", nil, "enable rules (comma-separated; accepts 'all', categories and globs)")
	f.StringSliceVar(&o.disable, "disable", nil, "disable rules (comma-separated; accepts 'all', categories and globs)")
	f.BoolVar(&o.ignoreDisableComments, "ignore-disable-comments", false, "report offenses even when a herb:disable comment covers them")
	f.BoolVar(&o.warningsAsErrors, "warnings-as-errors", false, "exit with status 1 when warnings are found")
	f.BoolVar(&o.watch, "watch", false, "re-lint templates when they change")
	f.BoolVar(&o.timing, "timing", false, "report run duration")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	f.StringVar(&o.stdinFilename, "stdin-filename", "stdin.html.erb", "file name used for input read from stdin")
	f.BoolVar(&o.noGitHub, "no-github", false, "do not switch to GitHub Actions output when GITHUB_ACTIONS is set")

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&o.logFormat, "log-format", logging.FormatText, "log format: text, json")

	cmd.AddCommand(newRulesCmd(), newExplainCmd(), newVersionCmd())
	return cmd
}

// session holds everything a lint run needs once flags and config are
// resolved.
type session struct {
	opts     *options
	logger   *slog.Logger
	linter   *linter.Linter
	root     string
	reporter linter.Reporter
	strict   bool
	ci       ci.System
}

func (o *options) run(ctx context.Context, paths []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if o.fix && o.diff {
		return errors.New("--fix and --diff are mutually exclusive")
	}
	logger, err := logging.New(stderr, o.logLevel, o.logFormat)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := o.loadConfig(logger)
	if err != nil {
		return err
	}
	if !cfg.LinterEnabled() {
		cli.Writef(stderr, "herblint: linter is disabled in %s\n", cfgPath)
		return nil
	}

	s, err := o.newSession(cfg, cfgPath, logger, stdout)
	if err != nil {
		return err
	}

	if len(paths) == 1 && paths[0] == "-" {
		return s.runStdin(stdin, stdout)
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	code, err := s.runOnce(ctx, paths, stdout)
	if err != nil {
		return err
	}
	if o.watch {
		return s.watch(ctx, paths, stdout)
	}
	if code != cli.ExitOK {
		return cli.ExitCodeError(code)
	}
	return nil
}

func (o *options) loadConfig(logger *slog.Logger) (*config.Config, string, error) {
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("loaded config", "path", o.configPath, "source", "--config")
		return cfg, o.configPath, nil
	}
	return config.Discover("", logger)
}

func (o *options) newSession(cfg *config.Config, cfgPath string, logger *slog.Logger, stdout io.Writer) (*session, error) {
	reg := rules.NewRegistry()
	lcfg, err := cfg.ToLinter(reg, logger)
	if err != nil {
		return nil, err
	}
	for _, group := range []struct {
		selectors []string
		apply     func(*linter.Registry, ...string)
	}{
		{o.enable, lcfg.Enable},
		{o.disable, lcfg.Disable},
	} {
		for _, sel := range group.selectors {
			if err := checkSelector(reg, sel); err != nil {
				return nil, err
			}
		}
		group.apply(reg, group.selectors...)
	}

	system := ci.Detect(os.Getenv)
	if o.noGitHub && system == ci.SystemGitHub {
		system = ci.SystemNone
	}
	if o.format == "" {
		o.format = ci.DefaultFormat(system)
	}
	reporter, err := o.newReporter(stdout)
	if err != nil {
		return nil, err
	}

	root := ""
	if cfgPath != "" {
		if abs, err := filepath.Abs(cfgPath); err == nil {
			root = filepath.Dir(abs)
		}
	}
	return &session{
		opts:     o,
		logger:   logger,
		linter:   linter.New(reg, lcfg),
		root:     root,
		reporter: reporter,
		strict:   o.warningsAsErrors || lcfg.WarningsAsErrors,
		ci:       system,
	}, nil
}

// checkSelector rejects --enable/--disable values that match no rule.
func checkSelector(reg *linter.Registry, sel string) error {
	if len(reg.Expand(sel)) > 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown rule %q", sel)
	if s, ok := linter.Suggest(sel, reg.Names()); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return errors.New(msg)
}

func (o *options) newReporter(stdout io.Writer) (linter.Reporter, error) {
	switch o.format {
	case "text":
		return &linter.TextReporter{
			ShowRule:    true,
			ColorOutput: !o.noColor && linter.ColorEnabled(stdout),
			ShowTiming:  o.timing,
		}, nil
	case "compact":
		return linter.NewCompactReporter(), nil
	case "json":
		return &linter.JSONReporter{ShowTiming: o.timing}, nil
	case "github":
		return linter.NewGitHubReporter(), nil
	case "lsp":
		return linter.NewLSPReporter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (valid: text, compact, json, github, lsp)", o.format)
	}
}

func (s *session) mode() linter.Mode {
	switch {
	case s.opts.fix:
		return linter.ModeFix
	case s.opts.diff:
		return linter.ModeDiff
	default:
		return linter.ModeCheck
	}
}

// runOnce lints paths, prints the report and returns the exit code the
// results call for.
func (s *session) runOnce(ctx context.Context, paths []string, stdout io.Writer) (int, error) {
	start := time.Now()
	driver := linter.NewDriver(s.linter, linter.DriverOptions{
		Mode:                  s.mode(),
		Root:                  s.root,
		IgnoreDisableComments: s.opts.ignoreDisableComments,
		Logger:                s.logger,
	})
	result, err := driver.Run(ctx, paths)
	if err != nil {
		return cli.ExitError, err
	}

	if len(result.Files) == 0 && len(result.Errors) == 0 {
		msg := fmt.Sprintf("No files found matching %s", strings.Join(paths, ", "))
		if j, ok := s.reporter.(*linter.JSONReporter); ok {
			return cli.ExitOK, j.ReportMessage(stdout, msg, start)
		}
		cli.Writeln(stdout, msg)
		return cli.ExitOK, nil
	}

	if s.opts.diff {
		return s.reportDiff(result, stdout), nil
	}
	if err := s.reporter.Report(stdout, result); err != nil {
		return cli.ExitError, fmt.Errorf("failed to report results: %w", err)
	}
	if s.ci == ci.SystemGitHub {
		if err := ci.WriteGitHubArtifacts(os.Getenv, result); err != nil {
			s.logger.Warn("github artifacts", "err", err)
		}
	}
	return s.exitCode(result), nil
}

// reportDiff prints the pending fixes and fails when any file would change.
func (s *session) reportDiff(result *linter.RunResult, stdout io.Writer) int {
	changed := 0
	for _, f := range result.Files {
		if f.Fix != nil && f.Fix.HasChanges() {
			cli.Write(stdout, f.Fix.Diff())
			changed++
		}
	}
	if changed > 0 || len(result.Errors) > 0 {
		return cli.ExitError
	}
	return cli.ExitOK
}

func (s *session) exitCode(result *linter.RunResult) int {
	switch {
	case result.ErrorCount() > 0 || len(result.Errors) > 0:
		return cli.ExitError
	case result.WarningCount() > 0 && s.strict:
		return cli.ExitError
	case result.WarningCount() > 0:
		return cli.ExitWarning
	default:
		return cli.ExitOK
	}
}

// runStdin lints a template read from stdin. With --fix the corrected
// template is written to stdout instead of a report.
func (s *session) runStdin(stdin io.Reader, stdout io.Writer) error {
	if stdin == nil {
		return errors.New("no stdin available")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	source := string(data)
	opts := linter.Options{FileName: s.opts.stdinFilename, IgnoreDisableComments: s.opts.ignoreDisableComments}

	if s.opts.fix {
		cli.Write(stdout, s.linter.Autofix(source, opts).Source)
		return nil
	}

	start := time.Now()
	result := &linter.RunResult{
		Files: []linter.FileResult{{
			Path: s.opts.stdinFilename,
			Name: s.opts.stdinFilename,
			Lint: s.linter.Lint(source, opts),
		}},
		StartTime: start,
	}
	result.RuleCount = result.Files[0].Lint.RuleCount
	result.Duration = time.Since(start)
	if err := s.reporter.Report(stdout, result); err != nil {
		return fmt.Errorf("failed to report results: %w", err)
	}
	if code := s.exitCode(result); code != cli.ExitOK {
		return cli.ExitCodeError(code)
	}
	return nil
}
