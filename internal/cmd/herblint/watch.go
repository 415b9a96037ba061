package herblint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/albertocavalcante/herb/internal/cli"
	"github.com/albertocavalcante/herb/internal/herb/filekind"
)

// watchDebounce coalesces bursts of events, such as an editor writing a
// temp file and renaming it, into one re-lint.
const watchDebounce = 150 * time.Millisecond

// watch re-lints changed templates until ctx is cancelled.
func (s *session) watch(ctx context.Context, paths []string, stdout io.Writer) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = fsWatcher.Close() }()

	for _, p := range paths {
		if err := addWatchTree(fsWatcher, p); err != nil {
			return err
		}
	}
	cli.Writef(stdout, "Watching %s for changes. Press Ctrl+C to stop.\n", strings.Join(paths, ", "))

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatchTree(fsWatcher, ev.Name); err != nil {
						s.logger.Warn("watch directory", "path", ev.Name, "err", err)
					}
					continue
				}
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if !filekind.IsTemplateFile(ev.Name) {
				continue
			}
			s.logger.Debug("template changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			timer.Reset(watchDebounce)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "err", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				if _, err := os.Stat(p); err == nil {
					changed = append(changed, p)
				}
			}
			clear(pending)
			if len(changed) == 0 {
				continue
			}
			slices.Sort(changed)
			cli.Writef(stdout, "\n[%s] %d file(s) changed\n", time.Now().Format(time.TimeOnly), len(changed))
			if _, err := s.runOnce(ctx, changed, stdout); err != nil {
				s.logger.Warn("re-lint failed", "err", err)
			}
		}
	}
}

// addWatchTree watches root and, when it is a directory, every directory
// below it that discovery would descend into.
func addWatchTree(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if p != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}
