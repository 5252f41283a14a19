package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/termcore/internal/config/notify"
	"github.com/dshills/termcore/internal/config/watcher"
)

// ErrClosed is returned by Store operations after Close.
var ErrClosed = errors.New("config store closed")

// Store holds the active Document of a configuration file and replaces
// it when the file is reloaded. Document never blocks and always returns
// a complete document.
type Store struct {
	path string
	opts options

	current  atomic.Pointer[Document]
	notifier *notify.Notifier

	mu      sync.Mutex
	reader  *Reader
	issues  []*FieldError
	watcher *watcher.Watcher
	closed  bool
}

// NewStore loads the file at path and returns a store holding it.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		opts:     applyOptions(opts),
		notifier: notify.New(),
	}
	s.reader = &Reader{opts: s.opts, host: currentHost()}
	if s.opts.host != nil {
		s.reader.host = *s.opts.host
	}
	s.current.Store(s.reader.LoadFile(path))
	s.issues = s.reader.Issues()
	return s
}

// Path returns the file the store loads.
func (s *Store) Path() string {
	return s.path
}

// Document returns the active document.
func (s *Store) Document() *Document {
	return s.current.Load()
}

// Issues returns the field errors of the most recent load.
func (s *Store) Issues() []*FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issues
}

// Subscribe registers an observer for every change.
func (s *Store) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes under a section path
// such as "profiles.main" or "input_mapping".
func (s *Store) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return s.notifier.SubscribePath(path, observer)
}

// Reload loads the file again, publishes the new document and notifies
// observers of the sections that changed. When the file does not exist
// the current document stays active and the error is returned.
func (s *Store) Reload() (*Document, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	next := s.reader.LoadFile(s.path)
	if err := s.reader.Err(); errors.Is(err, fs.ErrNotExist) {
		current := s.current.Load()
		s.mu.Unlock()
		s.opts.logger.Info("configuration file missing, keeping current document",
			slog.String("path", s.path))
		return current, err
	}
	s.issues = s.reader.Issues()
	issues := len(s.issues)
	prev := s.current.Swap(next)
	s.mu.Unlock()

	s.opts.metrics.observeReload()
	gen := uuid.New()
	batch := s.notifier.NewBatch(gen, s.path)
	diffDocuments(batch, prev, next)
	s.opts.logger.Info("configuration reloaded",
		slog.String("path", s.path),
		slog.String("generation", gen.String()),
		slog.Int("changes", batch.Len()),
		slog.Int("issues", issues),
	)
	batch.Commit(issues)
	return next, nil
}

// Start watches the file and reloads it on change. It does nothing when
// the document does not enable live_config, unless WithWatch(true) was
// given. Watching stops when ctx is done or the store is closed.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.watcher != nil {
		return watcher.ErrRunning
	}
	if !s.opts.forceWatch && !s.current.Load().LiveConfig.Value() {
		s.opts.logger.Debug("live_config disabled, not watching", slog.String("path", s.path))
		return nil
	}

	w := watcher.New(
		watcher.WithDebounce(s.opts.debounce),
		watcher.WithErrorHandler(func(err error) {
			s.opts.logger.Warn("file watcher error", slog.Any("error", err))
		}),
	)
	if err := w.Watch(s.path); err != nil {
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			s.opts.logger.Info("configuration file moved away, keeping current document",
				slog.String("path", ev.Path), slog.String("op", ev.Op.String()))
			return
		}
		if _, err := s.Reload(); err != nil {
			s.opts.logger.Debug("reload skipped", slog.Any("error", err))
		}
	})
	if err := w.Start(ctx); err != nil {
		return err
	}
	s.watcher = w
	s.opts.logger.Info("watching configuration", slog.String("path", s.path))
	return nil
}

// Close stops watching and releases observers.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		w.Stop()
	}
	s.notifier.Close()
}

// diffDocuments records the sections that differ between two documents.
func diffDocuments(b *notify.Batch, prev, next *Document) {
	for _, f := range documentFields {
		if f.load == nil {
			continue
		}
		if fieldText(f, prev) != fieldText(f, next) {
			b.Add(f.key, notify.ChangeModified)
		}
	}
	diffMaps(b, "profiles", prev.profiles, next.profiles)
	diffMaps(b, "color_schemes", prev.colorSchemes, next.colorSchemes)
	if !reflect.DeepEqual(prev.bindings, next.bindings) {
		b.Add("input_mapping", notify.ChangeModified)
	}
}

func diffMaps[V any](b *notify.Batch, section string, prev, next map[string]V) {
	names := slices.Sorted(maps.Keys(prev))
	for name := range next {
		if _, ok := prev[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		pv, inPrev := prev[name]
		nv, inNext := next[name]
		path := joinPath(section, name)
		switch {
		case !inPrev:
			b.Add(path, notify.ChangeAdded)
		case !inNext:
			b.Add(path, notify.ChangeRemoved)
		case !reflect.DeepEqual(pv, nv):
			b.Add(path, notify.ChangeModified)
		}
	}
}

// fieldText renders one field for comparison.
func fieldText[S any](f field[S], s *S) string {
	w := &writer{}
	f.render(w, s)
	return w.String()
}
