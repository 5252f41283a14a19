package config

import (
	"fmt"
	"strings"
)

type enum interface {
	~uint8
}

func enumString[E enum](names []string, v E) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", v)
}

func parseEnum[E enum](names []string, s string) (E, error) {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return E(i), nil
		}
	}
	return 0, invalid("%q is not one of %s", s, strings.Join(names, ", "))
}

// TerminalID is the terminal model reported to applications.
type TerminalID uint8

// Terminal models.
const (
	VT100 TerminalID = iota
	VT220
	VT240
	VT320
	VT330
	VT340
	VT420
	VT510
	VT520
	VT525
)

var terminalIDNames = []string{"VT100", "VT220", "VT240", "VT320", "VT330", "VT340", "VT420", "VT510", "VT520", "VT525"}

func (t TerminalID) String() string { return enumString(terminalIDNames, t) }

// ScrollbarPosition places the scrollbar.
type ScrollbarPosition uint8

// Scrollbar positions.
const (
	ScrollbarHidden ScrollbarPosition = iota
	ScrollbarLeft
	ScrollbarRight
)

var scrollbarPositionNames = []string{"Hidden", "Left", "Right"}

func (p ScrollbarPosition) String() string { return enumString(scrollbarPositionNames, p) }

// Permission answers a capability request from an application.
type Permission uint8

// Permission values.
const (
	PermissionAllow Permission = iota
	PermissionDeny
	PermissionAsk
)

var permissionNames = []string{"allow", "deny", "ask"}

func (p Permission) String() string { return enumString(permissionNames, p) }

// RenderMode selects glyph anti-aliasing.
type RenderMode uint8

// Render modes.
const (
	RenderLCD RenderMode = iota
	RenderLight
	RenderGray
	RenderMonochrome
)

var renderModeNames = []string{"lcd", "light", "gray", "monochrome"}

func (m RenderMode) String() string { return enumString(renderModeNames, m) }

// CursorShape is the shape of the text cursor.
type CursorShape uint8

// Cursor shapes.
const (
	CursorBlock CursorShape = iota
	CursorRectangle
	CursorUnderscore
	CursorBar
)

var cursorShapeNames = []string{"block", "rectangle", "underscore", "bar"}

func (s CursorShape) String() string { return enumString(cursorShapeNames, s) }

// StatusDisplay selects what the status line shows.
type StatusDisplay uint8

// Status line display kinds.
const (
	StatusNone StatusDisplay = iota
	StatusIndicator
)

var statusDisplayNames = []string{"none", "indicator"}

func (d StatusDisplay) String() string { return enumString(statusDisplayNames, d) }

// StatusPosition places the status line.
type StatusPosition uint8

// Status line positions.
const (
	StatusTop StatusPosition = iota
	StatusBottom
)

var statusPositionNames = []string{"top", "bottom"}

func (p StatusPosition) String() string { return enumString(statusPositionNames, p) }

// SelectionAction is performed when a mouse selection completes.
type SelectionAction uint8

// Selection actions.
const (
	CopyToSelectionClipboard SelectionAction = iota
	CopyToClipboard
	SelectionNothing
)

var selectionActionNames = []string{"CopyToSelectionClipboard", "CopyToClipboard", "Nothing"}

func (a SelectionAction) String() string { return enumString(selectionActionNames, a) }

// RenderBackend selects the rendering backend.
type RenderBackend uint8

// Render backends.
const (
	BackendDefault RenderBackend = iota
	BackendOpenGL
	BackendSoftware
)

var renderBackendNames = []string{"default", "OpenGL", "software"}

func (b RenderBackend) String() string { return enumString(renderBackendNames, b) }

// FontWeight is the weight of a font face.
type FontWeight uint8

// Font weights.
const (
	WeightThin FontWeight = iota
	WeightExtraLight
	WeightLight
	WeightDemilight
	WeightBook
	WeightNormal
	WeightMedium
	WeightDemibold
	WeightBold
	WeightExtraBold
	WeightBlack
	WeightExtraBlack
)

var fontWeightNames = []string{
	"thin", "extra_light", "light", "demilight", "book", "normal",
	"medium", "demibold", "bold", "extra_bold", "black", "extra_black",
}

func (w FontWeight) String() string { return enumString(fontWeightNames, w) }

// FontSlant is the slant of a font face.
type FontSlant uint8

// Font slants.
const (
	SlantNormal FontSlant = iota
	SlantItalic
	SlantOblique
)

var fontSlantNames = []string{"normal", "italic", "oblique"}

func (s FontSlant) String() string { return enumString(fontSlantNames, s) }
