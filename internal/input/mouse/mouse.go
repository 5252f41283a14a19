package mouse

import (
	"fmt"
	"strings"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonRelease is reported when a button is released.
	ButtonRelease
	// ButtonWheelUp indicates scroll wheel up.
	ButtonWheelUp
	// ButtonWheelDown indicates scroll wheel down.
	ButtonWheelDown
	// ButtonWheelLeft indicates horizontal scroll left.
	ButtonWheelLeft
	// ButtonWheelRight indicates horizontal scroll right.
	ButtonWheelRight
)

// String returns the configuration name of the button.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "None"
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	case ButtonRelease:
		return "Release"
	case ButtonWheelUp:
		return "WheelUp"
	case ButtonWheelDown:
		return "WheelDown"
	case ButtonWheelLeft:
		return "WheelLeft"
	case ButtonWheelRight:
		return "WheelRight"
	default:
		return fmt.Sprintf("Button(%d)", b)
	}
}

// IsWheel returns true if this is a wheel "button".
func (b Button) IsWheel() bool {
	return b >= ButtonWheelUp && b <= ButtonWheelRight
}

var buttonNameMap = map[string]Button{
	"left":       ButtonLeft,
	"middle":     ButtonMiddle,
	"right":      ButtonRight,
	"release":    ButtonRelease,
	"wheelup":    ButtonWheelUp,
	"wheeldown":  ButtonWheelDown,
	"wheelleft":  ButtonWheelLeft,
	"wheelright": ButtonWheelRight,
	"scrollup":   ButtonWheelUp,
	"scrolldown": ButtonWheelDown,
}

// ButtonFromName returns the Button for a name (case-insensitive).
func ButtonFromName(name string) (Button, error) {
	if b, ok := buttonNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return ButtonNone, fmt.Errorf("unknown mouse button %q", name)
}
