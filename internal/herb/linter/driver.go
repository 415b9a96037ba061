package linter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/herb/internal/herb/filekind"
	"github.com/albertocavalcante/herb/internal/sortutil"
)

// Mode selects what the driver does with autocorrectable offenses.
type Mode int

const (
	// ModeCheck only reports offenses.
	ModeCheck Mode = iota
	// ModeFix applies fixes and writes changed files back to disk.
	ModeFix
	// ModeDiff applies fixes in memory so callers can show a diff.
	ModeDiff
)

// DriverOptions configure a Driver.
type DriverOptions struct {
	Mode Mode

	// Root is the directory file names are reported relative to. Defaults
	// to the working directory.
	Root string

	IgnoreDisableComments bool

	// Concurrency bounds the number of files processed at once. Zero means
	// GOMAXPROCS.
	Concurrency int

	// LockFile serializes writes across herblint processes in ModeFix.
	// Defaults to herblint.lock in the system temp directory.
	LockFile string

	Logger *slog.Logger
}

// Driver lints files on disk.
type Driver struct {
	linter *Linter
	opts   DriverOptions
	logger *slog.Logger
}

// NewDriver creates a driver around l.
func NewDriver(l *Linter, opts DriverOptions) *Driver {
	if opts.Root == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.Root = wd
		}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if opts.LockFile == "" {
		opts.LockFile = filepath.Join(os.TempDir(), "herblint.lock")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{linter: l, opts: opts, logger: logger}
}

// FileResult is the outcome for one file.
type FileResult struct {
	// Path is the path the file was read from.
	Path string
	// Name is Path relative to the driver root, with forward slashes. It is
	// the file name stamped on offenses.
	Name string

	// Lint holds the offenses left after any fixes.
	Lint *LintResult
	// Fix is set in ModeFix and ModeDiff.
	Fix *FixResult

	Err error
}

// FileError records a file that could not be processed.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// RunResult aggregates a driver run.
type RunResult struct {
	Files  []FileResult
	Errors []FileError

	// RuleCount is the largest number of rules enabled for any file.
	RuleCount int

	StartTime time.Time
	Duration  time.Duration
}

// Offenses returns every offense ordered by file, line, then column.
func (r *RunResult) Offenses() []Offense {
	out := []Offense{}
	for _, f := range r.Files {
		if f.Lint != nil {
			out = append(out, f.Lint.Offenses...)
		}
	}
	sortutil.ByFileLineColumn(out,
		func(o Offense) string { return o.FileName },
		func(o Offense) int { return o.Location.Start.Line },
		func(o Offense) int { return o.Location.Start.Column },
	)
	return out
}

// Faults returns the rule faults of every file, keyed by file name. A fault
// seen by both the lint and the fix run of a file is listed once.
func (r *RunResult) Faults() map[string][]Fault {
	out := make(map[string][]Fault)
	for _, f := range r.Files {
		var all []Fault
		if f.Lint != nil {
			all = append(all, f.Lint.Faults...)
		}
		if f.Fix != nil {
			all = append(all, f.Fix.Faults...)
		}
		if faults := uniqueFaults(all); len(faults) > 0 {
			out[f.Name] = faults
		}
	}
	return out
}

// ErrorCount returns the number of error-severity offenses.
func (r *RunResult) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Lint != nil {
			n += f.Lint.Errors
		}
	}
	return n
}

// WarningCount returns the number of warning-severity offenses.
func (r *RunResult) WarningCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Lint != nil {
			n += f.Lint.Warnings
		}
	}
	return n
}

// FilesWithOffenses returns how many files reported at least one offense.
func (r *RunResult) FilesWithOffenses() int {
	n := 0
	for _, f := range r.Files {
		if f.Lint != nil && !f.Lint.Clean() {
			n++
		}
	}
	return n
}

// FixedCount returns the number of offenses corrected across all files.
func (r *RunResult) FixedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Fix != nil {
			n += len(f.Fix.Applied)
		}
	}
	return n
}

// Clean reports whether no offenses or file errors were found.
func (r *RunResult) Clean() bool {
	return r.ErrorCount() == 0 && r.WarningCount() == 0 && len(r.Errors) == 0
}

// Run lints the given files and directories. Directories are walked for
// template files; files named explicitly are always linted.
func (d *Driver) Run(ctx context.Context, paths []string) (*RunResult, error) {
	result := &RunResult{StartTime: time.Now()}
	defer func() { result.Duration = time.Since(result.StartTime) }()

	files, err := d.expandPaths(paths)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("expanded paths", "inputs", len(paths), "files", len(files))

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.RunFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, fr := range results {
		if fr.Err != nil {
			result.Errors = append(result.Errors, FileError{Path: fr.Path, Err: fr.Err})
			continue
		}
		result.Files = append(result.Files, fr)
		if fr.Lint != nil && fr.Lint.RuleCount > result.RuleCount {
			result.RuleCount = fr.Lint.RuleCount
		}
	}
	return result, nil
}

// RunFile processes a single file according to the driver mode.
func (d *Driver) RunFile(ctx context.Context, path string) FileResult {
	ctx, span := startFileSpan(ctx, path, d.opts.Mode != ModeCheck)
	defer span.End()
	start := time.Now()

	fr := d.processFile(path)
	if fr.Err != nil {
		span.RecordError(fr.Err)
		span.SetStatus(codes.Error, fr.Err.Error())
		d.logger.Debug("file failed", "path", path, "err", fr.Err)
	} else {
		d.logger.Debug("file linted", "path", fr.Name,
			"offenses", len(fr.Lint.Offenses), "ignored", fr.Lint.Ignored,
			"duration", time.Since(start))
		for _, f := range fr.Lint.Faults {
			d.logger.Warn("rule failed", "path", fr.Name, "rule", f.Rule, "phase", f.Phase, "err", f.Message)
		}
	}
	recordFileMetrics(ctx, &fr, time.Since(start))
	return fr
}

func (d *Driver) processFile(path string) FileResult {
	fr := FileResult{Path: path, Name: d.relName(path)}
	content, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("reading file: %w", err)
		return fr
	}
	source := string(content)
	opts := Options{FileName: fr.Name, IgnoreDisableComments: d.opts.IgnoreDisableComments}

	if d.opts.Mode == ModeCheck {
		fr.Lint = d.linter.Lint(source, opts)
		return fr
	}

	fixed := d.linter.Autofix(source, opts)
	fr.Fix = &FixResult{
		Path:            path,
		Name:            fr.Name,
		OriginalContent: content,
		FixedContent:    []byte(fixed.Source),
		Applied:         fixed.Fixed,
		Unfixed:         fixed.Unfixed,
		Iterations:      fixed.Iterations,
		Faults:          fixed.Faults,
	}
	fr.Lint = d.linter.Lint(fixed.Source, opts)

	if d.opts.Mode == ModeFix && fr.Fix.HasChanges() {
		if err := d.writeFixed(fr.Fix); err != nil {
			fr.Err = err
		}
	}
	return fr
}

// writeFixed writes r back to disk unless the file changed since it was
// read.
func (d *Driver) writeFixed(r *FixResult) error {
	return withLock(d.opts.LockFile, func() error {
		current, err := os.ReadFile(r.Path)
		if err != nil {
			return fmt.Errorf("re-reading file: %w", err)
		}
		if string(current) != string(r.OriginalContent) {
			return fmt.Errorf("%w: %s", ErrModified, r.Path)
		}
		info, err := os.Stat(r.Path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(r.Path, r.FixedContent, info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing file: %w", err)
		}
		d.logger.Debug("wrote fixes", "path", r.Name, "fixed", len(r.Applied))
		return nil
	})
}

func (d *Driver) relName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil || d.opts.Root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(d.opts.Root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// expandPaths expands a list of paths into individual files, dropping
// duplicates.
func (d *Driver) expandPaths(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, path := range paths {
		expanded, err := d.expandPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range expanded {
			absPath, err := filepath.Abs(f)
			if err != nil {
				absPath = f
			}
			if !seen[absPath] {
				seen[absPath] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

func (d *Driver) expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	filter := d.linter.Config().Files
	var files []string
	err = filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if p != path && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !filekind.IsTemplateFile(name) {
			return nil
		}
		rel := d.relName(p)
		if matchAny(filekind.DefaultExcludes, rel) || !filter.Match(rel) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	return files, nil
}

// ErrModified is returned when a file changed on disk while it was being
// fixed.
var ErrModified = errors.New("file modified during fix")
