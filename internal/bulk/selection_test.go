package bulk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pantrycrm/internal/domain"
)

func orgItem(id string) Item {
	return FromRecord(domain.Organization{ID: id, Name: "Org " + id})
}

func orgItems(ids ...string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, orgItem(id))
	}
	return items
}

func TestSelectIsIdempotent(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Select(orgItem("a"))
	s.Select(orgItem("a"))

	require.Equal(t, 1, s.Count(), "selecting the same id twice should not grow the selection")
	require.Equal(t, []string{"a"}, s.SelectedIDs(), "selection order should hold a single entry")
}

func TestSelectRefreshesPayload(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Select(FromRecord(domain.Organization{ID: "a", Name: "Stale Name"}))
	s.Select(FromRecord(domain.Organization{ID: "a", Name: "Fresh Name"}))

	items := s.SelectedItems()
	require.Len(t, items, 1, "re-select should overwrite, not append")
	require.Equal(t, "Fresh Name", items[0].Payload.Title(), "latest payload snapshot should be stored")
}

func TestDeselectAbsentIsNoop(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Select(orgItem("a"))
	s.Deselect("missing")

	require.Equal(t, 1, s.Count(), "deselecting an absent id should change nothing")
}

func TestToggleSymmetry(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.Select(orgItem("a"))

	s.Toggle(orgItem("b"))
	require.True(t, s.IsSelected("b"), "toggle of an unselected item should select it")

	s.Toggle(orgItem("b"))
	require.False(t, s.IsSelected("b"), "second toggle should deselect it again")
	require.Equal(t, []string{"a"}, s.SelectedIDs(), "prior selection should be untouched")
}

func TestSelectAllReplacesDoesNotUnion(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.SelectAll(orgItems("a", "b"))

	s.SelectAll(orgItems("x", "y", "z"))

	require.Equal(t, []string{"x", "y", "z"}, s.SelectedIDs(),
		"selectAll should replace the selection; nothing from the prior set survives")
}

func TestToggleSelectAllRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewStore()
	rows := orgItems("a", "b", "c", "d")

	s.ToggleSelectAll(rows)
	require.Equal(t, 4, s.Count(), "first toggle should select all rows")

	s.ToggleSelectAll(rows)
	require.Equal(t, 0, s.Count(), "second toggle should clear the selection")
}

func TestToggleSelectAllComparesMembershipNotSize(t *testing.T) {
	t.Parallel()
	s := NewStore()
	// Selection from a different filter view, same size as the candidate rows
	s.SelectAll(orgItems("a", "b", "c"))

	s.ToggleSelectAll(orgItems("x", "y", "z"))

	require.Equal(t, []string{"x", "y", "z"}, s.SelectedIDs(),
		"equal sizes with different membership must select, not clear")
}

func TestObserverNotifiedOnEveryMutation(t *testing.T) {
	t.Parallel()
	s := NewStore()

	var calls int
	var last []Item
	s.Subscribe(func(items []Item) {
		calls++
		last = items
	})

	s.Select(orgItem("a"))
	s.Select(orgItem("b"))
	s.Deselect("a")

	require.Equal(t, 3, calls, "each mutating operation should notify once")
	require.Len(t, last, 1, "observer should receive the full updated list")
	require.Equal(t, "b", last[0].ID)

	// Derived reads must not notify
	_ = s.SelectedItems()
	_ = s.Count()
	require.Equal(t, 3, calls, "reads should not trigger notifications")
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()
	s := NewStore()

	var calls int
	unsubscribe := s.Subscribe(func(items []Item) { calls++ })

	s.Select(orgItem("a"))
	unsubscribe()
	s.Select(orgItem("b"))

	require.Equal(t, 1, calls, "no notifications should arrive after unsubscribe")
}

func TestClosedStoreIgnoresMutations(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.SelectAll(orgItems("a", "b"))

	s.Close()

	s.Select(orgItem("c"))
	s.Deselect("a")
	s.DeselectAll()
	s.Toggle(orgItem("d"))
	s.ToggleSelectAll(orgItems("x"))

	require.True(t, s.Closed(), "store should report closed")
	require.Equal(t, []string{"a", "b"}, s.SelectedIDs(),
		"mutations after close should be silent no-ops")
}

func TestSelectedItemsPreserveSelectionOrder(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Select(orgItem("c"))
	s.Select(orgItem("a"))
	s.Select(orgItem("b"))
	// Re-selecting must not move an item to the back
	s.Select(orgItem("c"))

	require.Equal(t, []string{"c", "a", "b"}, s.SelectedIDs(),
		"selection order is insertion order, stable across re-select")
}

func TestSelectIdempotentProperty(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStore()
		seed := rapid.SliceOfDistinct(rapid.StringMatching(`[a-z]{1,8}`), rapid.ID[string]).Draw(rt, "seed")
		for _, id := range seed {
			s.Select(orgItem(id))
		}

		id := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "id")
		s.Select(orgItem(id))
		once := s.SelectedIDs()
		s.Select(orgItem(id))
		twice := s.SelectedIDs()

		require.Equal(rt, once, twice, "double select must equal single select")
	})
}

func TestToggleTwiceRestoresSelectionProperty(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStore()
		seed := rapid.SliceOfDistinct(rapid.StringMatching(`[a-z]{1,8}`), rapid.ID[string]).Draw(rt, "seed")
		for _, id := range seed {
			s.Select(orgItem(id))
		}
		before := s.SelectedIDs()

		// The dash keeps this id disjoint from the seeded ones
		extra := fmt.Sprintf("extra-%d", rapid.IntRange(0, 1<<20).Draw(rt, "extra"))

		s.Toggle(orgItem(extra))
		s.Toggle(orgItem(extra))

		require.Equal(rt, before, s.SelectedIDs(), "toggle twice must restore the prior selection")
	})
}

func TestToggleSelectAllRoundTripProperty(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStore()
		ids := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,8}`), 1, 16, rapid.ID[string]).Draw(rt, "ids")
		rows := orgItems(ids...)

		s.ToggleSelectAll(rows)
		require.Equal(rt, len(rows), s.Count(), "first toggle selects all")

		s.ToggleSelectAll(rows)
		require.Equal(rt, 0, s.Count(), "second toggle clears all")
	})
}
