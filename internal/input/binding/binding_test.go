package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
)

var anyMode = matchmode.AnyFilter()

func TestAddAccumulates(t *testing.T) {
	var l List[key.Key]
	a1 := action.SendChars{Chars: "one"}
	a2 := action.SendChars{Chars: "two"}

	l.Add(anyMode, key.ModControl, key.KeyF5, a1, false)
	l.Add(anyMode, key.ModControl, key.KeyF5, a2, false)

	require.Len(t, l, 1)
	assert.Equal(t, []action.Action{a1, a2}, l[0].Actions)

	got, ok := Resolve(l, key.ModControl, key.KeyF5, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{a1, a2}, got)
}

func TestAddDistinctTriples(t *testing.T) {
	var l List[rune]
	alt := anyMode.Enable(matchmode.AlternateScreen)

	l.Add(anyMode, key.ModControl, 'x', action.CopySelection, false)
	l.Add(alt, key.ModControl, 'x', action.PasteClipboard, false)
	l.Add(anyMode, key.ModControl|key.ModShift, 'x', action.Quit, false)
	l.Add(anyMode, key.ModControl, 'y', action.Quit, false)

	assert.Len(t, l, 4)
	assert.NotNil(t, l.Find(alt, key.ModControl, 'x'))
	assert.Nil(t, l.Find(alt, key.ModShift, 'x'))
}

func TestResolveExactModifiers(t *testing.T) {
	var l List[rune]
	l.Add(anyMode, key.ModControl, 'x', action.CopySelection, false)

	_, ok := Resolve(l, key.ModControl|key.ModShift, 'x', 0)
	assert.False(t, ok, "{Control} must not match {Control, Shift}")

	var l2 List[rune]
	l2.Add(anyMode, key.ModControl|key.ModShift, 'x', action.CopySelection, false)
	_, ok = Resolve(l2, key.ModControl, 'x', 0)
	assert.False(t, ok, "{Control, Shift} must not match {Control}")

	got, ok := Resolve(l, key.ModControl, 'x', 0)
	assert.True(t, ok)
	assert.Equal(t, []action.Action{action.CopySelection}, got)
}

func TestResolveFirstMatchWins(t *testing.T) {
	var l List[mouse.Button]
	noAlt := anyMode.Disable(matchmode.AlternateScreen)
	l.Add(noAlt, key.ModNone, mouse.ButtonWheelUp, action.ScrollUp, false)
	l.Add(anyMode, key.ModNone, mouse.ButtonWheelUp, action.SendChars{Chars: "\x1b[A"}, false)

	got, ok := Resolve(l, key.ModNone, mouse.ButtonWheelUp, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ScrollUp}, got)

	alt := matchmode.Flags(0).With(matchmode.AlternateScreen)
	got, ok = Resolve(l, key.ModNone, mouse.ButtonWheelUp, alt)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.SendChars{Chars: "\x1b[A"}}, got)
}

func TestResolveMiss(t *testing.T) {
	got, ok := Resolve(List[key.Key](nil), key.ModNone, key.KeyEnter, 0)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestBuiltinAndUserActions(t *testing.T) {
	var l List[key.Key]
	l.Add(anyMode, key.ModAlt, key.KeyEnter, action.ToggleFullscreen, true)
	l.Add(anyMode, key.ModAlt, key.KeyEnter, action.ToggleTitleBar, true)
	l.Add(anyMode, key.ModAlt, key.KeyEnter, action.SendChars{Chars: "x"}, false)
	l.Add(anyMode, key.ModAlt, key.KeyEnter, action.ToggleFullscreen, true)

	b := &l[0]
	assert.Equal(t, []action.Action{action.ToggleFullscreen, action.ToggleTitleBar}, b.BuiltinActions())
	assert.Equal(t, []action.Action{action.SendChars{Chars: "x"}, action.ToggleFullscreen}, b.UserActions())
}

func TestCloneIsDeep(t *testing.T) {
	orig := Default()
	cp := orig.Clone()
	cp.AddKey(anyMode, key.ModAlt, key.KeyEnter, action.Quit)

	got, ok := orig.ResolveKey(key.ModAlt, key.KeyEnter, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ToggleFullscreen}, got)

	got, ok = cp.ResolveKey(key.ModAlt, key.KeyEnter, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ToggleFullscreen, action.Quit}, got)
}

func TestDefaultAltEnter(t *testing.T) {
	table := Default()
	got, ok := table.ResolveKey(key.ModAlt, key.KeyEnter, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ToggleFullscreen}, got)

	// Any-mode binding: every flag combination resolves the same way.
	for i := 0; i < 1<<matchmode.FlagCount; i++ {
		got, ok := table.ResolveKey(key.ModAlt, key.KeyEnter, matchmode.Flags(i))
		require.True(t, ok)
		assert.Equal(t, []action.Action{action.ToggleFullscreen}, got)
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	table := Default()
	got, ok := table.ResolveKey(key.ModAlt, key.KeyEnter, 0)
	require.True(t, ok)
	got[0] = action.Quit

	again, ok := table.ResolveKey(key.ModAlt, key.KeyEnter, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ToggleFullscreen}, again)
}

func TestDefaultTableUnique(t *testing.T) {
	table := Default()
	assert.Equal(t, len(defaultKeys)+len(defaultChars)+len(defaultMouse)-1, table.Len(),
		"only the two Control+Shift+C selection actions share a binding")

	for i, b := range table.Keys {
		for j := i + 1; j < len(table.Keys); j++ {
			assert.False(t, table.Keys[j].SameTrigger(b.Modes, b.Modifiers, b.Input))
		}
		assert.Empty(t, b.UserActions())
	}

	got, ok := table.ResolveChar(key.ModControl|key.ModShift, 'C', matchmode.Flags(0).With(matchmode.Select))
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.CopySelection, action.CancelSelection}, got)

	_, ok = table.ResolveChar(key.ModControl|key.ModShift, 'C', 0)
	assert.False(t, ok)
}

func TestDefaultMouseModes(t *testing.T) {
	table := Default()
	alt := matchmode.Flags(0).With(matchmode.AlternateScreen)

	got, ok := table.ResolveMouse(key.ModNone, mouse.ButtonWheelDown, 0)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.ScrollDown}, got)

	_, ok = table.ResolveMouse(key.ModNone, mouse.ButtonWheelDown, alt)
	assert.False(t, ok)

	got, ok = table.ResolveMouse(key.ModControl, mouse.ButtonWheelUp, alt)
	require.True(t, ok)
	assert.Equal(t, []action.Action{action.IncreaseFontSize}, got)
}
