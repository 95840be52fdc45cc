package bulk

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Executor runs one bulk action against the current selection with
// deterministic before/after state: on success the selection is cleared,
// on failure it is left exactly as it was and the handler's error is
// returned unchanged.
type Executor struct {
	store    *Store
	registry *Registry
	running  atomic.Bool
}

// NewExecutor creates an executor bound to a selection store and an
// action registry
func NewExecutor(store *Store, registry *Registry) *Executor {
	return &Executor{
		store:    store,
		registry: registry,
	}
}

// IsRunning reports whether an Execute invocation is in flight. The
// toolbar uses this to disable action buttons while a handler runs.
func (e *Executor) IsRunning() bool {
	return e.running.Load()
}

// Execute resolves actionID, snapshots the ordered selection at
// invocation time, and invokes the handler with it. Concurrent calls
// are rejected with ErrAlreadyRunning so a rapid double-press cannot
// launch two handler executions against the same snapshot.
//
// The executor does not retry, batch, or time out the handler, and it
// does not check Action.Disabled: confirmation and enablement gating
// belong to the presentation layer.
func (e *Executor) Execute(ctx context.Context, actionID string) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	action, ok := e.registry.Action(actionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrActionNotFound, actionID)
	}

	items := e.store.SelectedItems()
	if len(items) == 0 {
		// The handler is never invoked with zero items
		return ErrEmptySelection
	}

	if err := action.Handler(ctx, items); err != nil {
		// Selection stays intact; the error reaches the caller unwrapped
		return err
	}

	// Clearing is mandatory and immediate. DeselectAll is a no-op if the
	// owning view tore the store down while the handler was running.
	e.store.DeselectAll()
	return nil
}
