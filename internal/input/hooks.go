package input

import (
	"sort"
	"sync"

	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/matchmode"
)

// Hook intercepts events around resolution.
type Hook interface {
	// PreEvent is called before an event is resolved.
	// Return true to consume the event.
	PreEvent(ev Event, modes matchmode.Flags) bool

	// PostEvent is called after resolution with the actions found,
	// nil when nothing matched.
	PostEvent(ev Event, actions []action.Action)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
)

// HookID identifies a registered hook.
type HookID uint64

type hookRegistration struct {
	id       HookID
	priority HookPriority
	hook     Hook
}

// hookChain holds hooks ordered by priority.
type hookChain struct {
	mu     sync.Mutex
	hooks  []hookRegistration
	nextID HookID
}

func (c *hookChain) add(h Hook, priority HookPriority) HookID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.hooks = append(c.hooks, hookRegistration{id: c.nextID, priority: priority, hook: h})
	sort.SliceStable(c.hooks, func(i, j int) bool {
		return c.hooks[i].priority < c.hooks[j].priority
	})
	return c.nextID
}

func (c *hookChain) remove(id HookID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.hooks {
		if c.hooks[i].id == id {
			c.hooks = append(c.hooks[:i], c.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot copies the hooks so they run outside the lock.
func (c *hookChain) snapshot() []Hook {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.hooks) == 0 {
		return nil
	}
	hooks := make([]Hook, len(c.hooks))
	for i := range c.hooks {
		hooks[i] = c.hooks[i].hook
	}
	return hooks
}
