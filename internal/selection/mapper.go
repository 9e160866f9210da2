// Package selection maps a single selection value onto an ordered list of
// item handles and reports every change of the selected item to a sink.
//
// A Mapper never mutates the item list it is given and does no locking;
// all calls are expected from one goroutine.
package selection

// Mapper tracks the selected item of a list.
type Mapper[T comparable] struct {
	cfg   Config
	keyOf KeyFunc[T]
	sink  Sink[T]

	items    []T
	value    Value
	selected T
	has      bool
}

// New creates a mapper. keyOf is only consulted in keyed mode and sink may
// be nil.
func New[T comparable](cfg Config, keyOf KeyFunc[T], sink Sink[T]) *Mapper[T] {
	return &Mapper[T]{
		cfg:   cfg,
		keyOf: keyOf,
		sink:  sink,
	}
}

// Config returns the current settings.
func (m *Mapper[T]) Config() Config {
	return m.cfg
}

// SetItems replaces the working item list. The selection is not
// re-resolved until Resolve or Select is called.
func (m *Mapper[T]) SetItems(items []T) {
	m.items = items
}

// Items returns the working item list.
func (m *Mapper[T]) Items() []T {
	return m.items
}

// Selected returns the current selection value, nil if unset.
func (m *Mapper[T]) Selected() Value {
	return m.value
}

// SelectedItem returns the resolved item.
func (m *Mapper[T]) SelectedItem() (T, bool) {
	return m.selected, m.has
}

// SelectedIndex returns the index of the resolved item, or -1.
func (m *Mapper[T]) SelectedIndex() int {
	if !m.has {
		return -1
	}
	return m.IndexOf(m.selected)
}

// Select sets the selection value and resolves it. When the value matches
// nothing the fallback step of ResolveFallback applies.
func (m *Mapper[T]) Select(v Value) {
	m.value = v
	m.resolve()
	m.ResolveFallback()
}

// SelectIndex selects the value of the item at index.
func (m *Mapper[T]) SelectIndex(index int) {
	m.Select(m.IndexToValue(index))
}

// SelectNext moves the selection forward by one, wrapping at the end.
func (m *Mapper[T]) SelectNext() {
	m.step(1)
}

// SelectPrevious moves the selection back by one, wrapping at the start.
func (m *Mapper[T]) SelectPrevious() {
	m.step(-1)
}

func (m *Mapper[T]) step(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	current := m.SelectedIndex()
	var next int
	switch {
	case current >= 0:
		next = (current + delta + n) % n
	case delta > 0:
		next = 0
	default:
		next = n - 1
	}
	m.SelectIndex(next)
}

// Resolve re-resolves the current value against the current item list.
// Hosts call it after SetItems.
func (m *Mapper[T]) Resolve() {
	m.resolve()
	m.ResolveFallback()
}

// ResolveFallback selects the configured fallback once when the current
// value resolves to nothing and the list is not empty. A fallback that
// itself resolves to nothing is left as is.
func (m *Mapper[T]) ResolveFallback() {
	if m.has || len(m.items) == 0 || m.cfg.Fallback == nil {
		return
	}
	if sameValue(m.value, m.cfg.Fallback) {
		return
	}
	m.value = m.cfg.Fallback
	m.resolve()
}

// SetFallback changes the fallback value. It takes effect on the next
// resolution.
func (m *Mapper[T]) SetFallback(v Value) {
	m.cfg.Fallback = v
}

// SetAttrForSelected switches between plain and keyed mode. A currently
// selected item stays selected: the value is re-derived from it.
func (m *Mapper[T]) SetAttrForSelected(name string) {
	if name == m.cfg.AttrForSelected {
		return
	}
	m.cfg.AttrForSelected = name
	if m.has {
		m.Select(m.ValueForItem(m.selected))
	}
}

// IndexOf returns the position of item in the list, or -1.
func (m *Mapper[T]) IndexOf(item T) int {
	for i, it := range m.items {
		if it == item {
			return i
		}
	}
	return -1
}

// ValueToItem resolves a selection value to an item.
func (m *Mapper[T]) ValueToItem(v Value) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	if !m.cfg.Keyed() {
		i, ok := toIndex(v)
		if !ok || i < 0 || i >= len(m.items) {
			return zero, false
		}
		return m.items[i], true
	}
	for _, it := range m.items {
		if looseEqual(m.key(it), v) {
			return it, true
		}
	}
	return zero, false
}

// IndexToValue returns the selection value addressing the item at index.
// In keyed mode an out of range index yields nil.
func (m *Mapper[T]) IndexToValue(index int) Value {
	if !m.cfg.Keyed() {
		return index
	}
	if index < 0 || index >= len(m.items) {
		return nil
	}
	return m.key(m.items[index])
}

// ValueForItem returns the selection value addressing item: its key in
// keyed mode, its index otherwise.
func (m *Mapper[T]) ValueForItem(item T) Value {
	if m.cfg.Keyed() {
		return m.key(item)
	}
	return m.IndexOf(item)
}

func (m *Mapper[T]) key(item T) any {
	if m.keyOf == nil {
		return nil
	}
	return m.keyOf(item, m.cfg.AttrForSelected)
}

func (m *Mapper[T]) resolve() {
	item, ok := m.ValueToItem(m.value)
	if ok == m.has && (!ok || item == m.selected) {
		return
	}
	prev, hadPrev := m.selected, m.has
	var zero T
	m.selected, m.has = zero, false
	if ok {
		m.selected, m.has = item, true
	}
	if m.sink == nil {
		return
	}
	if hadPrev {
		m.sink.SelectionChanged(prev, false)
	}
	if ok {
		m.sink.SelectionChanged(item, true)
	}
}
