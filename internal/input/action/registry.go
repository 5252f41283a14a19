package action

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/termcore/internal/fuzzy"
)

// ErrUnknownAction is returned when an action name is not registered.
var ErrUnknownAction = errors.New("unknown action")

// ErrMissingParam is returned when a required action parameter is absent.
var ErrMissingParam = errors.New("missing action parameter")

// Constructor builds an action from its textual parameters.
type Constructor func(params map[string]string) (Action, error)

type registration struct {
	name string
	c    Constructor
}

var (
	mu           sync.RWMutex
	constructors = make(map[string]registration)
)

func init() {
	for _, s := range []Simple{
		ToggleFullscreen, ToggleTitleBar, ScreenshotVT,
		IncreaseFontSize, DecreaseFontSize, ResetFontSize,
		IncreaseOpacity, DecreaseOpacity,
		ScrollUp, ScrollDown, ScrollPageUp, ScrollPageDown,
		ScrollToTop, ScrollToBottom, ScrollMarkUp, ScrollMarkDown,
		CopySelection, PasteSelection, PasteClipboard, CancelSelection,
		ClearHistoryAndReset, OpenConfiguration, ReloadConfig, SearchReverse,
		FollowHyperlink, ViNormalMode,
		CreateNewTab, CloseTab, NextTab, PreviousTab, Quit,
	} {
		RegisterSimple(s)
	}

	Register("SendChars", func(p map[string]string) (Action, error) {
		chars, ok := p["chars"]
		if !ok {
			return nil, fmt.Errorf("SendChars: %w %q", ErrMissingParam, "chars")
		}
		return SendChars{Chars: chars}, nil
	})
	Register("WriteScreen", func(p map[string]string) (Action, error) {
		chars, ok := p["chars"]
		if !ok {
			return nil, fmt.Errorf("WriteScreen: %w %q", ErrMissingParam, "chars")
		}
		return WriteScreen{Chars: chars}, nil
	})
	Register("ChangeProfile", func(p map[string]string) (Action, error) {
		name := p["name"]
		if name == "" {
			return nil, fmt.Errorf("ChangeProfile: %w %q", ErrMissingParam, "name")
		}
		return ChangeProfile{Profile: name}, nil
	})
	Register("NewTerminal", func(p map[string]string) (Action, error) {
		return NewTerminal{Profile: p["profile"]}, nil
	})
	Register("SwitchToTab", func(p map[string]string) (Action, error) {
		raw, ok := p["position"]
		if !ok {
			return nil, fmt.Errorf("SwitchToTab: %w %q", ErrMissingParam, "position")
		}
		pos, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || pos < 1 {
			return nil, fmt.Errorf("SwitchToTab: invalid position %q", raw)
		}
		return SwitchToTab{Position: pos}, nil
	})
}

// Register adds or replaces the constructor for an action name.
func Register(name string, c Constructor) {
	mu.Lock()
	defer mu.Unlock()
	constructors[strings.ToLower(name)] = registration{name: name, c: c}
}

// RegisterSimple registers a parameterless action.
func RegisterSimple(s Simple) {
	Register(string(s), func(map[string]string) (Action, error) { return s, nil })
}

// Has returns true if an action with the given name is registered.
func Has(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := constructors[strings.ToLower(name)]
	return ok
}

// New builds the named action (case-insensitive) from its parameters.
func New(name string, params map[string]string) (Action, error) {
	mu.RLock()
	reg, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	mu.RUnlock()
	if !ok {
		if s, found := fuzzy.Suggest(name, Names()); found {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownAction, name, s)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return reg.c(params)
}

// Names returns the registered action names as they were registered,
// sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(constructors))
	for _, reg := range constructors {
		names = append(names, reg.name)
	}
	sort.Strings(names)
	return names
}
