package action

import (
	"fmt"
	"strconv"
)

// Action is a single application action selected by an input binding.
// Implementations must be comparable values.
type Action interface {
	// Name returns the action name used in configuration documents.
	Name() string

	// Params returns the action parameters in a stable order.
	Params() []Param
}

// Param is a named action parameter in its textual form.
type Param struct {
	Key   string
	Value string
}

// Simple is an action without parameters.
type Simple string

// Parameterless actions known to the default binding table.
const (
	ToggleFullscreen     Simple = "ToggleFullscreen"
	ToggleTitleBar       Simple = "ToggleTitleBar"
	ScreenshotVT         Simple = "ScreenshotVT"
	IncreaseFontSize     Simple = "IncreaseFontSize"
	DecreaseFontSize     Simple = "DecreaseFontSize"
	ResetFontSize        Simple = "ResetFontSize"
	IncreaseOpacity      Simple = "IncreaseOpacity"
	DecreaseOpacity      Simple = "DecreaseOpacity"
	ScrollUp             Simple = "ScrollUp"
	ScrollDown           Simple = "ScrollDown"
	ScrollPageUp         Simple = "ScrollPageUp"
	ScrollPageDown       Simple = "ScrollPageDown"
	ScrollToTop          Simple = "ScrollToTop"
	ScrollToBottom       Simple = "ScrollToBottom"
	ScrollMarkUp         Simple = "ScrollMarkUp"
	ScrollMarkDown       Simple = "ScrollMarkDown"
	CopySelection        Simple = "CopySelection"
	PasteSelection       Simple = "PasteSelection"
	PasteClipboard       Simple = "PasteClipboard"
	CancelSelection      Simple = "CancelSelection"
	ClearHistoryAndReset Simple = "ClearHistoryAndReset"
	OpenConfiguration    Simple = "OpenConfiguration"
	ReloadConfig         Simple = "ReloadConfig"
	SearchReverse        Simple = "SearchReverse"
	FollowHyperlink      Simple = "FollowHyperlink"
	ViNormalMode         Simple = "ViNormalMode"
	CreateNewTab         Simple = "CreateNewTab"
	CloseTab             Simple = "CloseTab"
	NextTab              Simple = "NextTab"
	PreviousTab          Simple = "PreviousTab"
	Quit                 Simple = "Quit"
)

// Name implements Action.
func (s Simple) Name() string { return string(s) }

// Params implements Action.
func (s Simple) Params() []Param { return nil }

// SendChars writes Chars to the application as if typed.
type SendChars struct {
	Chars string
}

// Name implements Action.
func (SendChars) Name() string { return "SendChars" }

// Params implements Action.
func (a SendChars) Params() []Param {
	return []Param{{Key: "chars", Value: a.Chars}}
}

// WriteScreen writes Chars directly to the screen, bypassing the application.
type WriteScreen struct {
	Chars string
}

// Name implements Action.
func (WriteScreen) Name() string { return "WriteScreen" }

// Params implements Action.
func (a WriteScreen) Params() []Param {
	return []Param{{Key: "chars", Value: a.Chars}}
}

// ChangeProfile switches the active session to the named profile.
type ChangeProfile struct {
	Profile string
}

// Name implements Action.
func (ChangeProfile) Name() string { return "ChangeProfile" }

// Params implements Action.
func (a ChangeProfile) Params() []Param {
	return []Param{{Key: "name", Value: a.Profile}}
}

// NewTerminal spawns a new terminal window. An empty Profile uses the
// default profile.
type NewTerminal struct {
	Profile string
}

// Name implements Action.
func (NewTerminal) Name() string { return "NewTerminal" }

// Params implements Action.
func (a NewTerminal) Params() []Param {
	if a.Profile == "" {
		return nil
	}
	return []Param{{Key: "profile", Value: a.Profile}}
}

// SwitchToTab focuses the tab at Position (1-based).
type SwitchToTab struct {
	Position int
}

// Name implements Action.
func (SwitchToTab) Name() string { return "SwitchToTab" }

// Params implements Action.
func (a SwitchToTab) Params() []Param {
	return []Param{{Key: "position", Value: strconv.Itoa(a.Position)}}
}

// String formats an action for diagnostics, e.g. "SendChars(chars=\"x\")".
func String(a Action) string {
	params := a.Params()
	if len(params) == 0 {
		return a.Name()
	}
	s := a.Name() + "("
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%q", p.Key, p.Value)
	}
	return s + ")"
}
