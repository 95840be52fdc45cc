package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ToggleSelectAction struct {
	Index int // -1 for current
}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type ToggleSelectAllAction struct{}

func (a ToggleSelectAllAction) Type() string { return "toggle_select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Kind switching
type SwitchKindAction struct {
	Kind string
}

func (a SwitchKindAction) Type() string { return "switch_kind" }

type CycleKindAction struct {
	Direction int // +1 forward, -1 backward
}

func (a CycleKindAction) Type() string { return "cycle_kind" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Bulk action invocation
type BulkActionAction struct {
	ID string
}

func (a BulkActionAction) Type() string { return "bulk_action" }

// Confirm dialog result
type ConfirmAction struct {
	Accepted bool
}

func (a ConfirmAction) Type() string { return "confirm" }

// Command actions
type RefreshAction struct {
	All bool // true to reload every kind
}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleDetailAction struct{}

func (a ToggleDetailAction) Type() string { return "toggle_detail" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Sort actions
type SortByAction struct {
	Criteria string
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }
