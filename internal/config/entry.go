package config

// Entry is a documented configuration value. The documentation is fixed
// when the schema is defined; only the value changes.
type Entry[T any] struct {
	value T
	doc   string
}

// NewEntry returns an entry holding v.
func NewEntry[T any](v T, doc string) Entry[T] {
	return Entry[T]{value: v, doc: doc}
}

// Value returns the current value.
func (e Entry[T]) Value() T {
	return e.value
}

// Set replaces the value. Only the Reader mutates entries of a Document.
func (e *Entry[T]) Set(v T) {
	e.value = v
}

// Doc returns the documentation text.
func (e Entry[T]) Doc() string {
	return e.doc
}
