// Package notify delivers configuration document change events.
//
// When a document is reloaded the store compares it section by section
// with the previous one and publishes one Change per modified section
// ("profiles.main", "color_schemes.default", "input_mapping", ...)
// followed by a ChangeReload event. Every event of one reload carries the
// same Generation id.
package notify

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeModified indicates a section exists in both documents but differs.
	ChangeModified ChangeType = iota

	// ChangeAdded indicates a section exists only in the new document.
	ChangeAdded

	// ChangeRemoved indicates a section exists only in the old document.
	ChangeRemoved

	// ChangeReload indicates a new document was published.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeModified:
		return "modified"
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated section path, empty for reload events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// Generation identifies the reload that produced the change.
	Generation uuid.UUID

	// Source is the file the document was loaded from.
	Source string

	// Issues is the number of field errors in the new document.
	Issues int
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	path     string
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	globalObservers map[uint64]Observer
	pathObservers   map[string]map[uint64]Observer
	nextID          uint64

	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		pathObservers:   make(map[string]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for one section and its children.
// Subscribing to "profiles" receives changes to "profiles.main". Path
// observers also receive reload events.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.pathObservers[path] == nil {
		n.pathObservers[path] = make(map[uint64]Observer)
	}
	n.pathObservers[path][id] = observer

	return &Subscription{id: id, path: path, notifier: n}
}

// Notify sends a change notification to all relevant observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for path, observers := range n.pathObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.pathObservers, path)
		}
	}
}

func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for path, pathObs := range n.pathObservers {
		if change.Type == ChangeReload || covers(path, change.Path) {
			for _, obs := range pathObs {
				observers = append(observers, obs)
			}
		}
	}

	n.mu.RUnlock()

	// Observers run outside the lock so they may subscribe or unsubscribe.
	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}

// covers reports whether path equals target or is one of its parents.
func covers(path, target string) bool {
	if path == target {
		return true
	}
	return strings.HasPrefix(target, path) && target[len(path)] == '.'
}

// Batch collects the changes of one reload and delivers them together.
type Batch struct {
	notifier   *Notifier
	generation uuid.UUID
	source     string
	changes    []Change
	mu         sync.Mutex
}

// NewBatch starts a batch for one reload generation.
func (n *Notifier) NewBatch(generation uuid.UUID, source string) *Batch {
	return &Batch{
		notifier:   n,
		generation: generation,
		source:     source,
	}
}

// Add records a section change.
func (b *Batch) Add(path string, typ ChangeType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = append(b.changes, Change{
		Path:       path,
		Type:       typ,
		Generation: b.generation,
		Source:     b.source,
	})
}

// Commit delivers the recorded section changes followed by a reload event.
func (b *Batch) Commit(issues int) {
	b.mu.Lock()
	changes := b.changes
	b.changes = nil
	b.mu.Unlock()

	for _, change := range changes {
		change.Issues = issues
		b.notifier.Notify(change)
	}
	b.notifier.Notify(Change{
		Type:       ChangeReload,
		Generation: b.generation,
		Source:     b.source,
		Issues:     issues,
	})
}

// Len returns the number of pending section changes.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.changes)
}
