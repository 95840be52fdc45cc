package handlers

import (
	"fmt"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/ui/state"
)

// EventHandler applies domain events to the UI state
type EventHandler struct {
	state     *state.AppState
	selection *bulk.Store
}

// NewEventHandler creates a new event handler
func NewEventHandler(st *state.AppState, selection *bulk.Store) *EventHandler {
	return &EventHandler{
		state:     st,
		selection: selection,
	}
}

// HandleEvent processes a domain event and updates the state.
// Returns true when the event was recognized.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) bool {
	switch e := event.(type) {
	case eventbus.RecordsLoadedEvent:
		h.handleRecordsLoaded(e)
	case eventbus.RecordsDeletedEvent:
		h.handleRecordsDeleted(e)
	case eventbus.RecordsChangedEvent:
		h.handleRecordsChanged(e)
	case eventbus.BulkActionStartedEvent:
		h.state.RunningAction = e.ActionID
	case eventbus.BulkActionCompletedEvent:
		h.handleBulkActionCompleted(e)
	case eventbus.ErrorEvent:
		h.handleError(e)
	case eventbus.ConfigLoadedEvent:
		// Nothing to apply; the config is consumed at startup
	default:
		return false
	}
	return true
}

func (h *EventHandler) handleRecordsLoaded(e eventbus.RecordsLoadedEvent) {
	h.state.SetRecords(e.Kind, e.Records)
	if e.Kind == h.state.CurrentKind {
		h.state.Loading = false
		h.state.ClampSelection()
	}
}

func (h *EventHandler) handleRecordsDeleted(e eventbus.RecordsDeletedEvent) {
	h.state.RemoveRecords(e.Kind, e.IDs)
	for _, id := range e.IDs {
		h.selection.Deselect(id)
	}
	if e.Kind == h.state.CurrentKind {
		h.state.ClampSelection()
	}
}

func (h *EventHandler) handleRecordsChanged(e eventbus.RecordsChangedEvent) {
	// Mutated records are re-read on the next refresh; just surface the count
	if h.state.StatusMessage == "" {
		h.state.StatusMessage = fmt.Sprintf("Updated %d records", len(e.IDs))
	}
}

func (h *EventHandler) handleBulkActionCompleted(e eventbus.BulkActionCompletedEvent) {
	h.state.RunningAction = ""
	if e.Err != nil {
		h.state.StatusMessage = fmt.Sprintf("Error: %s failed: %v", e.ActionID, e.Err)
		return
	}
	h.state.StatusMessage = fmt.Sprintf("%s completed (%d records)", e.ActionID, e.Count)
}

func (h *EventHandler) handleError(e eventbus.ErrorEvent) {
	h.state.Loading = false
	if e.Err != nil {
		h.state.StatusMessage = fmt.Sprintf("Error: %s: %v", e.Message, e.Err)
	} else {
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)
	}
}
