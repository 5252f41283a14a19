// Package input turns terminal input events into configured actions.
//
// A Dispatcher receives key, character and mouse events together with
// the active modifiers, resolves them against the binding table of the
// current configuration document under the terminal's mode flags, and
// publishes the resulting action lists on a channel.
//
// # Components
//
//   - key, mouse: input identities and modifier sets
//   - matchmode: terminal mode flags and tri-state filters
//   - action: the action vocabulary and its registry
//   - binding: binding lists, accumulation and resolution
//   - tcellinput: translation of tcell events into Events
//
// # Usage
//
//	d := input.NewDispatcher(store)
//	defer d.Close()
//
//	d.SetMode(matchmode.AlternateScreen, true)
//	d.HandleKey(key.ModAlt, key.KeyEnter)
//
//	for dispatch := range d.Actions() {
//	    execute(dispatch.Actions)
//	}
package input
