package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	root, config, docs string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		root:   root,
		config: filepath.Join(root, "notesite.yaml"),
		docs:   filepath.Join(root, "docs"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(f.docs, "plt"), 0o750))
	require.NoError(t, os.WriteFile(f.config, []byte("title: x\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(f.docs, "plt", "syllabus.md"), []byte("# S\n"), 0o600))
	return f
}

func startWatcher(t *testing.T, f fixture, run CycleFunc) (cycles chan int, stop func() error) {
	t.Helper()
	cycles = make(chan int, 16)
	w, err := New(
		func() ([]string, error) { return []string{f.config, f.docs}, nil },
		func(ctx context.Context, cycle int) error {
			cycles <- cycle
			if run != nil {
				return run(ctx, cycle)
			}
			return nil
		},
		WithDebounce(50*time.Millisecond),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case c := <-cycles:
		require.Equal(t, 1, c)
	case <-time.After(5 * time.Second):
		t.Fatal("initial cycle did not run")
	}
	// Registration happens right after the initial cycle.
	time.Sleep(100 * time.Millisecond)

	return cycles, func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
			return nil
		}
	}
}

func waitCycle(t *testing.T, cycles chan int) int {
	t.Helper()
	select {
	case c := <-cycles:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("no cycle after change")
		return 0
	}
}

func TestWatcher_DocChangeTriggersCycle(t *testing.T) {
	f := newFixture(t)
	cycles, stop := startWatcher(t, f, nil)

	require.NoError(t, os.WriteFile(filepath.Join(f.docs, "plt", "syllabus.md"), []byte("# Changed\n"), 0o600))
	assert.Equal(t, 2, waitCycle(t, cycles))

	require.NoError(t, os.WriteFile(f.config, []byte("title: y\n"), 0o600))
	assert.Equal(t, 3, waitCycle(t, cycles))

	require.NoError(t, stop())
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	f := newFixture(t)
	cycles, stop := startWatcher(t, f, nil)

	for i := range 5 {
		name := filepath.Join(f.docs, "plt", "unit-"+string(rune('1'+i))+".md")
		require.NoError(t, os.WriteFile(name, []byte("# U\n"), 0o600))
	}
	assert.Equal(t, 2, waitCycle(t, cycles))

	select {
	case c := <-cycles:
		t.Fatalf("unexpected extra cycle %d", c)
	case <-time.After(300 * time.Millisecond):
	}
	require.NoError(t, stop())
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	f := newFixture(t)
	cycles, stop := startWatcher(t, f, nil)

	dir := filepath.Join(f.docs, "madt")
	require.NoError(t, os.Mkdir(dir, 0o750))
	waitCycle(t, cycles)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# MADT\n"), 0o600))
	waitCycle(t, cycles)
	require.NoError(t, stop())
}

func TestWatcher_CycleErrorKeepsWatching(t *testing.T) {
	f := newFixture(t)
	cycles, stop := startWatcher(t, f, func(context.Context, int) error {
		return errors.New("broken config")
	})

	require.NoError(t, os.WriteFile(f.config, []byte("title: [\n"), 0o600))
	assert.Equal(t, 2, waitCycle(t, cycles))
	require.NoError(t, stop())
}

func TestRelevant(t *testing.T) {
	w := &Watcher{
		files: map[string]bool{"/p/notesite.yaml": true},
		trees: []string{"/p/docs"},
	}
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/notesite.yaml", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/docs/plt/a.md", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/docs/plt/a.md", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/docs/.a.md.swp", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/docs-old/a.md", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/other.yaml", Op: fsnotify.Write}))
}

func TestWithDebounce(t *testing.T) {
	w := &Watcher{debounce: DefaultDebounce}
	WithDebounce(0)(w)
	assert.Equal(t, DefaultDebounce, w.debounce)
	WithDebounce(time.Second)(w)
	assert.Equal(t, time.Second, w.debounce)
}
