// Package config provides the configuration model of termcore.
//
// A Document holds named Profiles (bundles of terminal session settings),
// color schemes, global settings and the input binding table. Every
// setting is an Entry: a typed value plus the documentation text bound to
// it in the schema.
//
// # Schema
//
// Profile and Document fields are declared once, in schema tables that
// map each YAML key to its default, its documentation and its codec. The
// same tables drive construction of defaults, loading and rendering, so
// the three can never disagree about a field.
//
// # Loading
//
// A Reader never fails. A document that cannot be parsed yields the
// all-default Document. A field that cannot be decoded keeps its previous
// value and is reported through Reader.Issues; every other field still
// loads. Unknown keys are ignored.
//
// Profiles inherit from the default profile: the default profile entry is
// loaded on top of the built-in defaults and every other profile starts
// as a copy of it.
//
// Bindings accumulate: the built-in table is loaded first, then document
// bindings in file order. A binding for an existing (mode, modifiers,
// trigger) triple appends its action to that binding.
//
// # Rendering
//
// Render produces a fully commented YAML document that loads back into
// an equal Document.
//
// # Live Reload
//
// A Store owns the active Document. Reload builds a new Document and
// swaps it in atomically; readers never observe a partially loaded
// Document. With live_config enabled the Store watches the file and
// reloads on change, publishing notify.Change events.
//
// # Basic Usage
//
//	doc := config.NewReader(config.WithLogger(logger)).LoadFile(path)
//	profile := doc.Profile(doc.DefaultProfileName.Value())
//	fmt.Println(profile.TerminalSize.Columns.Value())
//
//	actions, ok := doc.Bindings().ResolveKey(key.ModAlt, key.KeyEnter, flags)
package config
