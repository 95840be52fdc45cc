package bulk

import "errors"

// Execution and registration errors
var (
	// ErrActionNotFound means Execute was called with an id absent from the registry
	ErrActionNotFound = errors.New("bulk action not found")
	// ErrEmptySelection means Execute was called with nothing selected
	ErrEmptySelection = errors.New("no records selected")
	// ErrAlreadyRunning means Execute was called while a prior invocation was still in flight
	ErrAlreadyRunning = errors.New("bulk action already running")
	// ErrDuplicateAction means SetActions was given two actions with the same id
	ErrDuplicateAction = errors.New("duplicate bulk action id")
	// ErrNilHandler means an action was registered without a handler
	ErrNilHandler = errors.New("bulk action handler cannot be nil")
)
