package selection

// Value is the public handle of a selection: a numeric index in plain mode,
// or a key compared against each item's lookup key in keyed mode.
type Value = any

// KeyFunc derives the lookup key of an item for the given name.
// It returns nil when the item carries no such key.
type KeyFunc[T any] func(item T, name string) any

// Sink receives selection reflection calls.
type Sink[T any] interface {
	SelectionChanged(item T, selected bool)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc[T any] func(item T, selected bool)

// SelectionChanged calls f(item, selected).
func (f SinkFunc[T]) SelectionChanged(item T, selected bool) {
	f(item, selected)
}

// Config holds the mapper settings.
type Config struct {
	// AttrForSelected switches the mapper to keyed mode when non-empty.
	AttrForSelected string
	// Fallback is selected when the current value resolves to nothing.
	Fallback Value
	// SelectedClass and SelectedAttribute are not used by the mapper
	// itself; sinks read them to reflect selection onto items.
	SelectedClass     string
	SelectedAttribute string
}

// Keyed reports whether selection values are keys rather than indexes.
func (c Config) Keyed() bool {
	return c.AttrForSelected != ""
}
