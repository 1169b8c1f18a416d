// Package watch re-runs a check and render whenever the configuration, the
// sidebar file or a doc changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/logfields"
	"git.home.luguber.info/inful/notesite/internal/observability"
)

// DefaultDebounce is the quiet period after the last change before a cycle runs.
const DefaultDebounce = 500 * time.Millisecond

// CycleFunc runs one check and render cycle. Errors are logged and watching continues.
type CycleFunc func(ctx context.Context, cycle int) error

// PathsFunc returns the files and directories to watch. It is called after
// every cycle since a configuration change can move the docs tree.
type PathsFunc func() ([]string, error)

// Watcher monitors project files and triggers debounced cycles.
type Watcher struct {
	paths    PathsFunc
	run      CycleFunc
	debounce time.Duration

	watcher *fsnotify.Watcher
	dirs    map[string]bool // directories registered with fsnotify
	files   map[string]bool // watched files, matched by exact path
	trees   []string        // watched directory roots, matched by prefix
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher. Nothing is watched until Run.
func New(paths PathsFunc, run CycleFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	w := &Watcher{
		paths:    paths,
		run:      run,
		debounce: DefaultDebounce,
		watcher:  fw,
		dirs:     map[string]bool{},
		files:    map[string]bool{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run executes an initial cycle, then one cycle per burst of changes until ctx
// is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	cycle := 1
	w.runCycle(ctx, cycle)
	if err := w.refresh(); err != nil {
		return err
	}
	slog.Info("Watching for changes", logfields.Count(len(w.dirs)))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				w.addIfTreeDir(event.Name)
			}
			pending = true
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			cycle++
			w.runCycle(ctx, cycle)
			if err := w.refresh(); err != nil {
				slog.Error("Failed to refresh watched paths", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) runCycle(ctx context.Context, cycle int) {
	ctx = observability.WithCycle(ctx, cycle)
	start := time.Now()
	if err := w.run(ctx, cycle); err != nil {
		observability.ErrorContext(ctx, "Cycle failed", logfields.Error(err))
		return
	}
	observability.DebugContext(ctx, "Cycle complete",
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

// refresh recomputes the watched set and reconciles fsnotify registrations.
func (w *Watcher) refresh() error {
	paths, err := w.paths()
	if err != nil {
		// Keep the previous registrations so a fix to the config is still seen.
		slog.Warn("Cannot resolve watch paths", logfields.Error(err))
		return nil
	}

	files := map[string]bool{}
	var trees []string
	want := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watch path").
				WithContext("path", p).
				Build()
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			trees = append(trees, abs)
			for _, d := range subdirs(abs) {
				want[d] = true
			}
			continue
		}
		// Files are watched through their directory so editors that replace
		// files on save are still seen.
		files[abs] = true
		want[filepath.Dir(abs)] = true
	}

	for d := range w.dirs {
		if !want[d] {
			_ = w.watcher.Remove(d)
			delete(w.dirs, d)
		}
	}
	for _, d := range sortedKeys(want) {
		if w.dirs[d] {
			continue
		}
		if err := w.watcher.Add(d); err != nil {
			slog.Warn("Cannot watch directory", logfields.Path(d), logfields.Error(err))
			continue
		}
		w.dirs[d] = true
	}
	w.files = files
	w.trees = trees
	return nil
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.files[event.Name] {
		return true
	}
	for _, root := range w.trees {
		if event.Name == root || strings.HasPrefix(event.Name, root+string(filepath.Separator)) {
			base := filepath.Base(event.Name)
			return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
		}
	}
	return false
}

func (w *Watcher) addIfTreeDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for _, d := range subdirs(path) {
		if w.dirs[d] {
			continue
		}
		if err := w.watcher.Add(d); err == nil {
			w.dirs[d] = true
		}
	}
}

// subdirs returns root and every directory below it, skipping hidden ones.
func subdirs(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		out = append(out, p)
		return nil
	})
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
