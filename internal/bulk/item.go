package bulk

import "pantrycrm/internal/domain"

// Item is one selectable entry in a list view. ID must be unique within
// the owning collection and stable for the record's UI lifetime. Payload
// is a snapshot of the record taken at selection time; it is not
// refreshed if the underlying record changes afterwards.
type Item struct {
	ID      string
	Kind    domain.RecordKind
	Payload domain.Record
}

// FromRecord wraps a domain record into an Item
func FromRecord(r domain.Record) Item {
	return Item{
		ID:      r.RecordID(),
		Kind:    r.Kind(),
		Payload: r,
	}
}
