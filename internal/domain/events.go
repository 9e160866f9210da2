package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventItemsDiscovered     EventType = "ItemsDiscovered"
	EventItemsChanged        EventType = "ItemsChanged"
	EventItemSelected        EventType = "ItemSelected"
	EventItemDeselected      EventType = "ItemDeselected"
	EventSelectionChanged    EventType = "SelectionChanged"
	EventActivateRequested   EventType = "ActivateRequested"
	EventActivationCancelled EventType = "ActivationCancelled"
	EventItemActivated       EventType = "ItemActivated"
	EventScanRequested       EventType = "ScanRequested"
	EventScanStarted         EventType = "ScanStarted"
	EventScanCompleted       EventType = "ScanCompleted"
	EventError               EventType = "Error"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ItemsDiscoveredEvent carries a complete item list produced by an item source
type ItemsDiscoveredEvent struct {
	Source string
	Items  []*Item
}

func (e ItemsDiscoveredEvent) Type() EventType { return EventItemsDiscovered }

// ItemsChangedEvent is emitted after a selectable list took a new item list
type ItemsChangedEvent struct {
	Count int
}

func (e ItemsChangedEvent) Type() EventType { return EventItemsChanged }

// ItemSelectedEvent is emitted when an item becomes selected
type ItemSelectedEvent struct {
	Item *Item
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// ItemDeselectedEvent is emitted when an item stops being selected
type ItemDeselectedEvent struct {
	Item *Item
}

func (e ItemDeselectedEvent) Type() EventType { return EventItemDeselected }

// SelectionChangedEvent is emitted once per operation that changed the selected item
type SelectionChangedEvent struct {
	Value any
	Index int   // -1 when nothing is selected
	Item  *Item // nil when nothing is selected
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ActivateRequestedEvent is emitted before an activation is offered to the cancel hook
type ActivateRequestedEvent struct {
	Item  *Item
	Value any
}

func (e ActivateRequestedEvent) Type() EventType { return EventActivateRequested }

// ActivationCancelledEvent is emitted when the cancel hook rejected an activation
type ActivationCancelledEvent struct {
	Item  *Item
	Value any
}

func (e ActivationCancelledEvent) Type() EventType { return EventActivationCancelled }

// ItemActivatedEvent is emitted when an activation went through
type ItemActivatedEvent struct {
	Item  *Item
	Value any
}

func (e ItemActivatedEvent) Type() EventType { return EventItemActivated }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Root string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// ScanStartedEvent is emitted when scanning begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when scanning completes
type ScanCompletedEvent struct {
	Root       string
	ItemsFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
