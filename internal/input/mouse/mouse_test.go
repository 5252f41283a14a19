package mouse

import (
	"testing"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "None"},
		{ButtonLeft, "Left"},
		{ButtonMiddle, "Middle"},
		{ButtonRight, "Right"},
		{ButtonRelease, "Release"},
		{ButtonWheelUp, "WheelUp"},
		{ButtonWheelDown, "WheelDown"},
		{ButtonWheelLeft, "WheelLeft"},
		{ButtonWheelRight, "WheelRight"},
		{Button(42), "Button(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestButtonIsWheel(t *testing.T) {
	wheel := []Button{ButtonWheelUp, ButtonWheelDown, ButtonWheelLeft, ButtonWheelRight}
	other := []Button{ButtonNone, ButtonLeft, ButtonMiddle, ButtonRight, ButtonRelease}

	for _, b := range wheel {
		if !b.IsWheel() {
			t.Errorf("%v.IsWheel() = false, want true", b)
		}
	}
	for _, b := range other {
		if b.IsWheel() {
			t.Errorf("%v.IsWheel() = true, want false", b)
		}
	}
}

func TestButtonFromName(t *testing.T) {
	for b := ButtonLeft; b <= ButtonWheelRight; b++ {
		got, err := ButtonFromName(b.String())
		if err != nil {
			t.Errorf("ButtonFromName(%q) error = %v", b.String(), err)
			continue
		}
		if got != b {
			t.Errorf("ButtonFromName(%q) = %v, want %v", b.String(), got, b)
		}
	}

	if got, err := ButtonFromName("scrollup"); err != nil || got != ButtonWheelUp {
		t.Errorf("ButtonFromName(scrollup) = %v, %v", got, err)
	}
	if _, err := ButtonFromName("Thumb"); err == nil {
		t.Error("ButtonFromName(Thumb) should fail")
	}
}
