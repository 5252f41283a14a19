// Package mouse defines the mouse buttons that can trigger bindings.
//
// Wheel motion is modelled as buttons (WheelUp, WheelDown, ...) because
// that is how terminals report it and how users bind it.
package mouse
