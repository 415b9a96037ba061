package linter

import (
	"bytes"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/pmezard/go-difflib/difflib"
)

// FixResult represents the result of autofixing a file on disk.
type FixResult struct {
	// Path is the file path.
	Path string
	// Name is the reported file name.
	Name string

	OriginalContent []byte
	FixedContent    []byte

	// Applied holds the offenses that were corrected.
	Applied []Offense
	// Unfixed holds offenses of autocorrectable rules that remain.
	Unfixed []Offense

	Iterations int
	Faults     []Fault
}

// HasChanges returns true if fixes changed the content.
func (r *FixResult) HasChanges() bool {
	return !bytes.Equal(r.OriginalContent, r.FixedContent)
}

// Diff returns a unified diff between original and fixed content.
func (r *FixResult) Diff() string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(r.OriginalContent)),
		B:        difflib.SplitLines(string(r.FixedContent)),
		FromFile: "a/" + r.Name,
		ToFile:   "b/" + r.Name,
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text
}

func withLock(path string, fn func() error) error {
	fileLock := flock.New(path)
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = fileLock.Unlock() }()

	return fn()
}
