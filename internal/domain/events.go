package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRecordsLoaded       EventType = "RecordsLoaded"
	EventRecordsDeleted      EventType = "RecordsDeleted"
	EventRecordsChanged      EventType = "RecordsChanged"
	EventRefreshRequested    EventType = "RefreshRequested"
	EventSelectionChanged    EventType = "SelectionChanged"
	EventBulkActionStarted   EventType = "BulkActionStarted"
	EventBulkActionCompleted EventType = "BulkActionCompleted"
	EventError               EventType = "Error"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
	EventConfigChanged       EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RecordsLoadedEvent is emitted when a collection has been (re)loaded
type RecordsLoadedEvent struct {
	Kind    RecordKind
	Records []Record
}

func (e RecordsLoadedEvent) Type() EventType { return EventRecordsLoaded }

// RecordsDeletedEvent is emitted after records have been removed
type RecordsDeletedEvent struct {
	Kind RecordKind
	IDs  []string
}

func (e RecordsDeletedEvent) Type() EventType { return EventRecordsDeleted }

// RecordsChangedEvent is emitted after records have been mutated in place
type RecordsChangedEvent struct {
	Kind RecordKind
	IDs  []string
}

func (e RecordsChangedEvent) Type() EventType { return EventRecordsChanged }

// RefreshRequestedEvent asks the CRM service to reload a collection
type RefreshRequestedEvent struct {
	Kind RecordKind // "" means reload all kinds
}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// SelectionChangedEvent is emitted when the selection set changes
type SelectionChangedEvent struct {
	Kind  RecordKind
	IDs   []string
	Total int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// BulkActionStartedEvent is emitted when a bulk action begins executing
type BulkActionStartedEvent struct {
	ActionID string
	Count    int
}

func (e BulkActionStartedEvent) Type() EventType { return EventBulkActionStarted }

// BulkActionCompletedEvent is emitted when a bulk action finishes
type BulkActionCompletedEvent struct {
	ActionID string
	Count    int
	Err      error // nil on success
}

func (e BulkActionCompletedEvent) Type() EventType { return EventBulkActionCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	DatabasePath string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	DefaultKind RecordKind
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
