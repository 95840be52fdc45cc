package bulk

import "pantrycrm/internal/domain"

// Adapter bridges a rendered list of typed rows to a selection store.
// It carries the collection's fixed kind, an id accessor, and an
// optional projection from row to payload snapshot. Adapters hold no
// state of their own.
type Adapter[R any] struct {
	store   *Store
	kind    domain.RecordKind
	id      func(R) string
	payload func(R) domain.Record
}

// NewAdapter creates an adapter for one record collection. payload may
// be nil when the view has no use for snapshots.
func NewAdapter[R any](store *Store, kind domain.RecordKind, id func(R) string, payload func(R) domain.Record) *Adapter[R] {
	return &Adapter[R]{
		store:   store,
		kind:    kind,
		id:      id,
		payload: payload,
	}
}

// Item wraps a row into a selectable item
func (a *Adapter[R]) Item(row R) Item {
	item := Item{
		ID:   a.id(row),
		Kind: a.kind,
	}
	if a.payload != nil {
		item.Payload = a.payload(row)
	}
	return item
}

// IsAllSelected reports whether rows is non-empty and every row is
// currently selected
func (a *Adapter[R]) IsAllSelected(rows []R) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if !a.store.IsSelected(a.id(row)) {
			return false
		}
	}
	return true
}

// IsPartiallySelected reports whether at least one but not all rows are
// selected, for the header checkbox's indeterminate state
func (a *Adapter[R]) IsPartiallySelected(rows []R) bool {
	selected := 0
	for _, row := range rows {
		if a.store.IsSelected(a.id(row)) {
			selected++
		}
	}
	return selected > 0 && selected < len(rows)
}

// ToggleRow toggles one row's selection
func (a *Adapter[R]) ToggleRow(row R) {
	a.store.Toggle(a.Item(row))
}

// ToggleAll toggles between all rows selected and none
func (a *Adapter[R]) ToggleAll(rows []R) {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, a.Item(row))
	}
	a.store.ToggleSelectAll(items)
}
