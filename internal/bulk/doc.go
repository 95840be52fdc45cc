// Package bulk implements multi-record selection and bulk-action
// execution for list views. A Store holds the currently selected
// records, a Registry holds the bulk actions available to the toolbar,
// and an Executor runs one action against the selection snapshot,
// clearing the selection on success and leaving it untouched on
// failure. Adapters bridge typed record lists into Store operations
// and derive the tri-state header checkbox flags.
//
// One Store/Registry/Executor triple belongs to one list view. The
// components are not meant to be shared between simultaneously visible
// views; give each view its own instances.
package bulk
