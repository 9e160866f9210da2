// Package selectable binds a selection mapper to domain items. It acts as
// the mapper's sink, reflecting selection onto each item as a class and an
// attribute, and republishes every change on the event bus
package selectable

import (
	"log"

	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/selection"
)

// ActivateFunc is offered every activation before it is applied
// Returning true cancels it
type ActivateFunc func(item *domain.Item, value selection.Value) (cancel bool)

// List is a single-select list of domain items
type List struct {
	mapper     *selection.Mapper[*domain.Item]
	bus        eventbus.EventBus
	onActivate ActivateFunc
	changed    bool
}

// New creates a list. bus may be nil
func New(cfg selection.Config, bus eventbus.EventBus) *List {
	l := &List{bus: bus}
	l.mapper = selection.New[*domain.Item](cfg, domain.KeyOf, l)
	return l
}

// OnActivate installs the activation hook
func (l *List) OnActivate(fn ActivateFunc) {
	l.onActivate = fn
}

// SelectionChanged reflects a selection change onto the item
func (l *List) SelectionChanged(item *domain.Item, selected bool) {
	cfg := l.mapper.Config()
	item.ToggleClass(cfg.SelectedClass, selected)
	if cfg.SelectedAttribute != "" {
		if selected {
			item.SetAttr(cfg.SelectedAttribute, "true")
		} else {
			item.RemoveAttr(cfg.SelectedAttribute)
		}
	}
	l.changed = true

	if selected {
		l.publish(domain.ItemSelectedEvent{Item: item})
	} else {
		l.publish(domain.ItemDeselectedEvent{Item: item})
	}
}

// SetItems takes a new item list from the item source and re-resolves
// the selection against it
func (l *List) SetItems(items []*domain.Item) {
	l.track(func() {
		l.mapper.SetItems(items)
		l.publish(domain.ItemsChangedEvent{Count: len(items)})
		l.mapper.Resolve()
	})
}

// Select selects by value
func (l *List) Select(v selection.Value) {
	l.track(func() { l.mapper.Select(v) })
}

// SelectIndex selects by position
func (l *List) SelectIndex(index int) {
	l.track(func() { l.mapper.SelectIndex(index) })
}

// SelectNext moves the selection down, wrapping around
func (l *List) SelectNext() {
	l.track(l.mapper.SelectNext)
}

// SelectPrevious moves the selection up, wrapping around
func (l *List) SelectPrevious() {
	l.track(l.mapper.SelectPrevious)
}

// SelectLast selects the final item
func (l *List) SelectLast() {
	if n := len(l.mapper.Items()); n > 0 {
		l.SelectIndex(n - 1)
	}
}

// SetAttrForSelected switches between index and keyed addressing
func (l *List) SetAttrForSelected(name string) {
	l.track(func() { l.mapper.SetAttrForSelected(name) })
}

// SetFallback changes the fallback value and applies it if nothing is selected
func (l *List) SetFallback(v selection.Value) {
	l.track(func() {
		l.mapper.SetFallback(v)
		l.mapper.ResolveFallback()
	})
}

// Activate offers item to the activation hook and selects it unless the
// hook cancels. It reports whether the item got selected
func (l *List) Activate(item *domain.Item) bool {
	index := l.mapper.IndexOf(item)
	if index < 0 {
		return false
	}
	value := l.mapper.IndexToValue(index)

	l.publish(domain.ActivateRequestedEvent{Item: item, Value: value})
	if l.onActivate != nil && l.onActivate(item, value) {
		log.Printf("Activation of %q cancelled", item.Name)
		l.publish(domain.ActivationCancelledEvent{Item: item, Value: value})
		return false
	}

	l.Select(value)
	l.publish(domain.ItemActivatedEvent{Item: item, Value: value})
	return true
}

// ActivateIndex activates the item at index
func (l *List) ActivateIndex(index int) bool {
	items := l.mapper.Items()
	if index < 0 || index >= len(items) {
		return false
	}
	return l.Activate(items[index])
}

// ActivateSelected re-activates the currently selected item
func (l *List) ActivateSelected() bool {
	item, ok := l.mapper.SelectedItem()
	if !ok {
		return false
	}
	return l.Activate(item)
}

// Items returns the current item list
func (l *List) Items() []*domain.Item {
	return l.mapper.Items()
}

// Selected returns the current selection value
func (l *List) Selected() selection.Value {
	return l.mapper.Selected()
}

// SelectedItem returns the selected item or nil
func (l *List) SelectedItem() *domain.Item {
	item, _ := l.mapper.SelectedItem()
	return item
}

// SelectedIndex returns the selected position or -1
func (l *List) SelectedIndex() int {
	return l.mapper.SelectedIndex()
}

// Config returns the mapper settings
func (l *List) Config() selection.Config {
	return l.mapper.Config()
}

// DisabledGuard returns an activation hook that cancels activation of
// items carrying attr
func DisabledGuard(attr string) ActivateFunc {
	return func(item *domain.Item, _ selection.Value) bool {
		return item.Disabled(attr)
	}
}

// track runs op and publishes a single SelectionChangedEvent if the
// selected item changed while it ran
func (l *List) track(op func()) {
	outer := l.changed
	l.changed = false
	op()
	if l.changed {
		l.publish(domain.SelectionChangedEvent{
			Value: l.mapper.Selected(),
			Index: l.mapper.SelectedIndex(),
			Item:  l.SelectedItem(),
		})
	}
	l.changed = outer
}

func (l *List) publish(event domain.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(event)
	}
}
