package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termcore/internal/config/notify"
	"github.com/dshills/termcore/internal/config/watcher"
)

type changeLog struct {
	mu      sync.Mutex
	changes []notify.Change
}

func (l *changeLog) observe(c notify.Change) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, c)
}

func (l *changeLog) snapshot() []notify.Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]notify.Change(nil), l.changes...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yml")
	writeFile(t, path, "profiles:\n  main:\n    terminal_size: {columns: 100}\n")

	reg := prometheus.NewRegistry()
	s := NewStore(path, withHost(testHost), WithMetrics(NewMetrics(reg)))
	defer s.Close()

	first := s.Document()
	assert.Equal(t, 100, first.Profile("main").TerminalSize.Columns.Value())

	var all, work changeLog
	s.Subscribe(all.observe)
	s.SubscribePath("profiles.work", work.observe)

	writeFile(t, path, `
word_delimiters: " "
profiles:
  main:
    terminal_size: {columns: 120}
  work: {}
input_mapping:
  - { key: F2, action: Quit }
`)
	next, err := s.Reload()
	require.NoError(t, err)
	assert.Same(t, next, s.Document())
	assert.Equal(t, 120, s.Document().Profile("main").TerminalSize.Columns.Value())
	assert.Equal(t, 100, first.Profile("main").TerminalSize.Columns.Value())

	changes := all.snapshot()
	require.NotEmpty(t, changes)
	var paths []string
	for _, c := range changes[:len(changes)-1] {
		paths = append(paths, c.Path+":"+c.Type.String())
		assert.Equal(t, changes[0].Generation, c.Generation)
	}
	assert.Equal(t, []string{
		"word_delimiters:" + notify.ChangeModified.String(),
		"profiles.main:" + notify.ChangeModified.String(),
		"profiles.work:" + notify.ChangeAdded.String(),
		"input_mapping:" + notify.ChangeModified.String(),
	}, paths)

	last := changes[len(changes)-1]
	assert.Equal(t, notify.ChangeReload, last.Type)
	assert.Equal(t, path, last.Source)

	workChanges := work.snapshot()
	require.Len(t, workChanges, 2)
	assert.Equal(t, notify.ChangeAdded, workChanges[0].Type)
	assert.Equal(t, notify.ChangeReload, workChanges[1].Type)

	assert.Equal(t, 1.0, counterValue(t, reg, "termcore_config_reloads_total", "", ""))
	assert.Equal(t, 2.0, counterValue(t, reg, "termcore_config_loads_total", "result", "ok"))
}

func TestStoreReloadReportsIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yml")
	writeFile(t, path, "live_config: nope\n")

	s := NewStore(path, withHost(testHost))
	defer s.Close()
	require.Len(t, s.Issues(), 1)

	var log changeLog
	s.Subscribe(log.observe)
	writeFile(t, path, "live_config: false\nreflow_on_resize: 9\nspawn_new_process: x\n")
	_, err := s.Reload()
	require.NoError(t, err)

	assert.Len(t, s.Issues(), 2)
	changes := log.snapshot()
	require.Len(t, changes, 1)
	assert.Equal(t, notify.ChangeReload, changes[0].Type)
	assert.Equal(t, 2, changes[0].Issues)
}

func TestStoreReloadKeepsDocumentWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yml")
	writeFile(t, path, "profiles:\n  main:\n    fullscreen: true\n")

	s := NewStore(path, withHost(testHost))
	defer s.Close()
	before := s.Document()
	require.True(t, before.Profile("main").Fullscreen.Value())

	var log changeLog
	s.Subscribe(log.observe)
	require.NoError(t, os.Rename(path, path+".swp"))

	doc, err := s.Reload()
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Same(t, before, doc)
	assert.Same(t, before, s.Document())
	assert.Empty(t, log.snapshot())

	require.NoError(t, os.Rename(path+".swp", path))
	doc, err = s.Reload()
	require.NoError(t, err)
	assert.True(t, doc.Profile("main").Fullscreen.Value())
}

func TestStoreClosed(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.yml"), withHost(testHost))
	assert.Equal(t, newDocument(testHost), s.Document())

	s.Close()
	s.Close()
	_, err := s.Reload()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Start(context.Background()), ErrClosed)
}

func TestStoreStartWithoutLiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yml")
	writeFile(t, path, "live_config: false\n")

	s := NewStore(path, withHost(testHost))
	defer s.Close()
	require.NoError(t, s.Start(context.Background()))
	assert.Nil(t, s.watcher)
}

func TestStoreLiveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yml")
	writeFile(t, path, "live_config: true\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStore(path, withHost(testHost), WithDebounce(10*time.Millisecond))
	defer s.Close()
	require.NoError(t, s.Start(ctx))

	var log changeLog
	s.Subscribe(log.observe)

	writeFile(t, path, "live_config: true\nprofiles:\n  main:\n    fullscreen: true\n")

	require.Eventually(t, func() bool {
		return s.Document().Profile("main").Fullscreen.Value()
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(log.snapshot()) > 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStoreForcedWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termcore.yml")
	writeFile(t, path, "maximized: true\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStore(path, withHost(testHost), WithWatch(true), WithDebounce(10*time.Millisecond))
	defer s.Close()
	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Start(ctx), watcher.ErrRunning)

	writeFile(t, path, "profiles:\n  main:\n    maximized: true\n")
	require.Eventually(t, func() bool {
		return s.Document().Profile("main").Maximized.Value()
	}, 5*time.Second, 20*time.Millisecond)
}
