// Package binding holds the input binding table of a terminal and resolves
// input events against it.
//
// # Key Concepts
//
// Binding: maps (mode filter, exact modifier set, trigger) to an ordered
// list of actions.
//
// List: the ordered bindings for one trigger kind. There are three lists,
// one each for named keys, literal characters and mouse buttons.
//
// Table: the three lists together.
//
// # Accumulation
//
// A List never holds two bindings with the same (filter, modifiers,
// trigger) triple. Adding a definition for an existing triple appends its
// action to that binding instead of creating a new one. The built-in table
// is added first and user definitions follow in file order, so user
// bindings extend built-in ones and file order decides both the action
// order of a binding and the priority between bindings.
//
// # Resolution
//
// Resolve scans a list in order and returns the actions of the first
// binding whose modifiers equal the query exactly, whose trigger is equal
// and whose filter matches the terminal mode flags. Control+X and
// Shift+Control+X are different queries and never shadow each other.
//
// # Usage
//
//	table := binding.Default()
//	actions, ok := table.ResolveKey(key.ModAlt, key.KeyEnter, flags)
//	if ok {
//	    // execute actions in order
//	}
package binding
