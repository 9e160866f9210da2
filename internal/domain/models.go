package domain

import "sort"

// Item represents one selectable entry, such as a file found by discovery
// or a line read from stdin
type Item struct {
	Name    string
	Path    string
	Kind    string // "file", "dir", "symlink" or "line"
	Attrs   map[string]string
	classes map[string]struct{}
}

// NewItem creates an item with an empty attribute set
func NewItem(name, path, kind string) *Item {
	return &Item{
		Name:  name,
		Path:  path,
		Kind:  kind,
		Attrs: make(map[string]string),
	}
}

// Lookup returns the value used to address the item by name: the matching
// property when it is set, otherwise the attribute of that name, otherwise nil
func (i *Item) Lookup(name string) any {
	switch name {
	case "name":
		if i.Name != "" {
			return i.Name
		}
	case "path":
		if i.Path != "" {
			return i.Path
		}
	case "kind":
		if i.Kind != "" {
			return i.Kind
		}
	}
	if v, ok := i.Attrs[name]; ok {
		return v
	}
	return nil
}

// Attr returns an attribute value
func (i *Item) Attr(name string) (string, bool) {
	v, ok := i.Attrs[name]
	return v, ok
}

// SetAttr sets an attribute value
func (i *Item) SetAttr(name, value string) {
	if i.Attrs == nil {
		i.Attrs = make(map[string]string)
	}
	i.Attrs[name] = value
}

// RemoveAttr deletes an attribute
func (i *Item) RemoveAttr(name string) {
	delete(i.Attrs, name)
}

// HasClass reports whether the class is set on the item
func (i *Item) HasClass(name string) bool {
	_, ok := i.classes[name]
	return ok
}

// ToggleClass adds or removes a class
func (i *Item) ToggleClass(name string, on bool) {
	if name == "" {
		return
	}
	if !on {
		delete(i.classes, name)
		return
	}
	if i.classes == nil {
		i.classes = make(map[string]struct{})
	}
	i.classes[name] = struct{}{}
}

// Classes returns the item's classes in sorted order
func (i *Item) Classes() []string {
	out := make([]string, 0, len(i.classes))
	for c := range i.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Disabled reports whether the item carries the given disabling attribute
// An empty attribute name never disables
func (i *Item) Disabled(attr string) bool {
	if attr == "" {
		return false
	}
	v, ok := i.Attrs[attr]
	return ok && v != "false"
}

// KeyOf adapts Item.Lookup to the mapper's key function signature
func KeyOf(item *Item, name string) any {
	if item == nil {
		return nil
	}
	return item.Lookup(name)
}
