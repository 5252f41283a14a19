package input

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/termcore/internal/config"
	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
	"github.com/dshills/termcore/internal/logging"
)

// DefaultBufferSize is the capacity of the dispatch channel.
const DefaultBufferSize = 100

// DocumentSource supplies the configuration document bindings are
// resolved against. *config.Store satisfies it, so a dispatcher fed by
// a store picks up reloaded bindings on the next event.
type DocumentSource interface {
	Document() *config.Document
}

type staticSource struct {
	doc *config.Document
}

func (s staticSource) Document() *config.Document { return s.doc }

// Static returns a DocumentSource that always yields doc.
func Static(doc *config.Document) DocumentSource {
	return staticSource{doc: doc}
}

// Dispatch is one resolved event.
type Dispatch struct {
	Event   Event
	Modes   matchmode.Flags
	Actions []action.Action
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logging.Component(l, "input")
	}
}

// WithBufferSize sets the dispatch channel capacity.
func WithBufferSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.bufferSize = n
		}
	}
}

// WithModes sets the initial terminal mode flags.
func WithModes(flags matchmode.Flags) Option {
	return func(d *Dispatcher) {
		d.modes.Store(uint32(flags))
	}
}

// Dispatcher resolves input events against the bindings of the current
// document under the terminal's mode flags.
type Dispatcher struct {
	source     DocumentSource
	logger     *slog.Logger
	bufferSize int
	metrics    *Metrics
	hooks      hookChain

	modes atomic.Uint32

	// mu guards the channel against sends after Close.
	mu      sync.Mutex
	actions chan Dispatch
	closed  bool
}

// NewDispatcher creates a dispatcher reading bindings from source.
func NewDispatcher(source DocumentSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		source:     source,
		logger:     logging.Discard(),
		bufferSize: DefaultBufferSize,
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.actions = make(chan Dispatch, d.bufferSize)
	return d
}

// Modes returns the current terminal mode flags.
func (d *Dispatcher) Modes() matchmode.Flags {
	return matchmode.Flags(d.modes.Load())
}

// SetModes replaces the terminal mode flags.
func (d *Dispatcher) SetModes(flags matchmode.Flags) {
	d.modes.Store(uint32(flags))
}

// SetMode sets or clears a single mode flag.
func (d *Dispatcher) SetMode(flag matchmode.Flag, enabled bool) {
	for {
		old := d.modes.Load()
		flags := matchmode.Flags(old)
		if enabled {
			flags = flags.With(flag)
		} else {
			flags = flags.Without(flag)
		}
		if d.modes.CompareAndSwap(old, uint32(flags)) {
			return
		}
	}
}

// HandleKey resolves a named key press.
func (d *Dispatcher) HandleKey(mods key.Modifier, k key.Key) ([]action.Action, bool) {
	return d.Handle(KeyEvent(mods, k))
}

// HandleChar resolves a character key press.
func (d *Dispatcher) HandleChar(mods key.Modifier, r rune) ([]action.Action, bool) {
	return d.Handle(CharEvent(mods, r))
}

// HandleMouse resolves a mouse button or wheel event.
func (d *Dispatcher) HandleMouse(mods key.Modifier, b mouse.Button) ([]action.Action, bool) {
	return d.Handle(MouseEvent(mods, b))
}

// Handle resolves ev and publishes the matched actions on the Actions
// channel. It returns the actions and whether a binding matched. Events
// consumed by a hook, and events handled after Close, match nothing.
func (d *Dispatcher) Handle(ev Event) ([]action.Action, bool) {
	if d.isClosed() {
		return nil, false
	}

	modes := d.Modes()
	hooks := d.hooks.snapshot()
	for _, h := range hooks {
		if h.PreEvent(ev, modes) {
			d.metrics.recordHookConsumption()
			return nil, false
		}
	}

	start := time.Now()
	actions, ok := d.resolve(ev, modes)
	d.metrics.recordResolve(time.Since(start), ok)

	for _, h := range hooks {
		h.PostEvent(ev, actions)
	}

	if !ok {
		d.logger.Debug("unbound input", "event", ev.String(), "modes", modes.String())
		return nil, false
	}
	d.publish(Dispatch{Event: ev, Modes: modes, Actions: slices.Clone(actions)})
	return actions, true
}

func (d *Dispatcher) resolve(ev Event, modes matchmode.Flags) ([]action.Action, bool) {
	doc := d.source.Document()
	if doc == nil {
		return nil, false
	}
	table := doc.Bindings()
	switch ev.Kind {
	case KindKey:
		return table.ResolveKey(ev.Modifiers, ev.Key, modes)
	case KindChar:
		return table.ResolveChar(ev.Modifiers, ev.Char, modes)
	case KindMouse:
		return table.ResolveMouse(ev.Modifiers, ev.Button, modes)
	default:
		return nil, false
	}
}

// publish sends without blocking. When the channel is full the oldest
// dispatch is dropped.
func (d *Dispatcher) publish(dispatch Dispatch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	select {
	case d.actions <- dispatch:
		return
	default:
	}

	select {
	case <-d.actions:
		d.metrics.recordDropped()
		d.logger.Warn("dispatch buffer full, dropped oldest", "capacity", cap(d.actions))
	default:
	}
	select {
	case d.actions <- dispatch:
	default:
		d.metrics.recordDropped()
	}
}

// Actions returns the channel of resolved dispatches. It is closed by
// Close.
func (d *Dispatcher) Actions() <-chan Dispatch {
	return d.actions
}

// AddHook registers a hook at the given priority.
func (d *Dispatcher) AddHook(h Hook, priority HookPriority) HookID {
	return d.hooks.add(h, priority)
}

// RemoveHook unregisters a hook. It reports whether the hook was found.
func (d *Dispatcher) RemoveHook(id HookID) bool {
	return d.hooks.remove(id)
}

// Metrics returns the dispatcher metrics.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

func (d *Dispatcher) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Close stops dispatching and closes the Actions channel.
// It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	close(d.actions)
}
