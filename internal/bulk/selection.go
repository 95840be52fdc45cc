package bulk

import "sync"

// Observer is notified after every mutating Store operation with the
// full updated list of selected items, in selection order.
type Observer func(items []Item)

// observerEntry pairs an observer with a removable identity
type observerEntry struct {
	id int
	fn Observer
}

// Store holds the canonical selection set for one list view. Items keep
// their original selection order; re-selecting an id updates its stored
// payload without moving it.
type Store struct {
	mu        sync.Mutex
	items     map[string]Item
	order     []string
	observers []observerEntry
	nextID    int
	closed    bool
}

// NewStore creates an empty selection store
func NewStore() *Store {
	return &Store{
		items: make(map[string]Item),
	}
}

// Subscribe registers an observer and returns an unsubscribe function
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				break
			}
		}
	}
}

// Select inserts or overwrites item under item.ID. Selecting an
// already-selected id refreshes its stored payload.
func (s *Store) Select(item Item) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.selectLocked(item)
	s.notifyAndUnlock()
}

// Deselect removes id if present; absent ids are a no-op, not an error
func (s *Store) Deselect(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.deselectLocked(id)
	s.notifyAndUnlock()
}

// SelectAll replaces the selection with exactly the supplied items.
// This is a full replacement, not a union: a prior selection from a
// different filter view is discarded. Callers wanting additive behavior
// must union client-side first.
func (s *Store) SelectAll(items []Item) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.replaceLocked(items)
	s.notifyAndUnlock()
}

// DeselectAll empties the selection
func (s *Store) DeselectAll() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.replaceLocked(nil)
	s.notifyAndUnlock()
}

// Toggle selects item if absent and deselects it if present
func (s *Store) Toggle(item Item) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, ok := s.items[item.ID]; ok {
		s.deselectLocked(item.ID)
	} else {
		s.selectLocked(item)
	}
	s.notifyAndUnlock()
}

// ToggleSelectAll deselects everything if items is exactly the current
// selection, otherwise replaces the selection with items. Membership is
// compared by id set, not just size, so a stale selection from another
// item list of coincidentally equal length does not read as "fully
// selected".
func (s *Store) ToggleSelectAll(items []Item) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.containsExactlyLocked(items) {
		s.replaceLocked(nil)
	} else {
		s.replaceLocked(items)
	}
	s.notifyAndUnlock()
}

// SelectedItems returns the selected items in selection order
func (s *Store) SelectedItems() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SelectedIDs returns the selected ids in selection order
func (s *Store) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// IsSelected reports whether id is currently selected
func (s *Store) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[id]
	return ok
}

// Count returns the number of selected items
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close disposes the store. Every later mutation is a silent no-op so
// that a late-resolving bulk action racing a view teardown cannot
// corrupt anything. Reads keep working on the last state.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.observers = nil
}

// Closed reports whether the store has been disposed
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// selectLocked inserts or overwrites without disturbing selection order
func (s *Store) selectLocked(item Item) {
	if _, ok := s.items[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	s.items[item.ID] = item
}

func (s *Store) deselectLocked(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) replaceLocked(items []Item) {
	s.items = make(map[string]Item, len(items))
	s.order = s.order[:0]
	for _, item := range items {
		s.selectLocked(item)
	}
}

// containsExactlyLocked reports whether the current selection is exactly
// the id set of items
func (s *Store) containsExactlyLocked(items []Item) bool {
	if len(items) != len(s.items) || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if _, ok := s.items[item.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *Store) snapshotLocked() []Item {
	result := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.items[id])
	}
	return result
}

// notifyAndUnlock snapshots state, releases the lock, then calls the
// observers synchronously. Observers run outside the lock so they can
// call back into the store.
func (s *Store) notifyAndUnlock() {
	items := s.snapshotLocked()
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(items)
	}
}
