package bulk

import (
	"context"
	"fmt"
	"sync"
)

// Variant controls the toolbar styling of an action
type Variant string

// Action variants
const (
	VariantDefault     Variant = "default"
	VariantPrimary     Variant = "primary"
	VariantDestructive Variant = "destructive"
)

// Handler performs the actual bulk mutation for an action. It receives
// the selection snapshot in selection order and owns its own retry and
// timeout policy.
type Handler func(ctx context.Context, items []Item) error

// Action describes one bulk operation available to the toolbar
type Action struct {
	ID      string
	Label   string
	Icon    string
	Variant Variant

	// RequiresConfirmation asks the presentation layer to obtain an
	// explicit yes/no (showing ConfirmationMessage) before executing.
	// The core only carries the flag; it never prompts itself.
	RequiresConfirmation bool
	ConfirmationMessage  string

	// Disabled forces the action unavailable regardless of selection
	// size; DisabledReason is supplied by the caller for display.
	Disabled       bool
	DisabledReason string

	Handler Handler
}

// Registry holds the set of bulk actions currently valid for a view.
// Callers re-register the full set when context changes, e.g. when
// navigating between record kinds.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	order   []string
}

// NewRegistry creates an empty action registry
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// SetActions replaces the registered set wholesale
func (r *Registry) SetActions(actions []Action) error {
	byID := make(map[string]Action, len(actions))
	order := make([]string, 0, len(actions))
	for _, action := range actions {
		if action.Handler == nil {
			return fmt.Errorf("%w: %q", ErrNilHandler, action.ID)
		}
		if _, ok := byID[action.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateAction, action.ID)
		}
		byID[action.ID] = action
		order = append(order, action.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = byID
	r.order = order
	return nil
}

// Action returns the action for id. A lookup miss is a normal outcome,
// not an error: the UI may race a registry update with an in-flight
// click.
func (r *Registry) Action(id string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.actions[id]
	return action, ok
}

// Actions returns all registered actions in registration order
func (r *Registry) Actions() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Action, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.actions[id])
	}
	return result
}

// CanExecute is the single source of truth for toolbar button
// enablement. It must be re-derived on every selection count change.
func (r *Registry) CanExecute(id string, selectionCount int) bool {
	action, ok := r.Action(id)
	if !ok {
		return false
	}
	if action.Disabled {
		return false
	}
	return selectionCount > 0
}
