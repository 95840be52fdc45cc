package input

import (
	"pantrycrm/internal/bulk"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler.
// Visible supplies the records as displayed, after filtering and
// sorting, so cursor-relative lookups match what the user sees.
type ModelContext struct {
	State       *state.AppState
	Selection   *bulk.Store
	Visible     func() []domain.Record
	CurrentSort func() string
}

// CurrentIndex returns the current cursor index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of visible records
func (c *ModelContext) TotalItems() int {
	return len(c.Visible())
}

// HasSelection returns true if any records are checked
func (c *ModelContext) HasSelection() bool {
	return c.Selection != nil && c.Selection.Count() > 0
}

// SelectedCount returns the number of checked records
func (c *ModelContext) SelectedCount() int {
	if c.Selection == nil {
		return 0
	}
	return c.Selection.Count()
}

// CurrentRecordID returns the id of the record under the cursor
func (c *ModelContext) CurrentRecordID() string {
	records := c.Visible()
	if c.State.SelectedIndex < 0 || c.State.SelectedIndex >= len(records) {
		return ""
	}
	return records[c.State.SelectedIndex].RecordID()
}

// CurrentKind returns the displayed record kind
func (c *ModelContext) CurrentKind() string {
	return string(c.State.CurrentKind)
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.State.SearchQuery
}

// GetCurrentSort returns the current sort key
func (c *ModelContext) GetCurrentSort() string {
	return c.CurrentSort()
}
