package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/domain"
)

// Executor runs commands against a shared context
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a command executor
func NewExecutor(ctx *CommandContext) *Executor {
	return &Executor{ctx: ctx}
}

// ExecuteRefresh reloads the given kinds, or all kinds when none are given
func (e *Executor) ExecuteRefresh(kinds ...domain.RecordKind) tea.Cmd {
	if len(kinds) == 0 {
		kinds = domain.Kinds()
	}
	return NewRefreshCommand(e.ctx, kinds).Execute()
}

// ExecuteToggleSelection toggles a single record's selection
func (e *Executor) ExecuteToggleSelection(item bulk.Item) tea.Cmd {
	return NewToggleSelectionCommand(e.ctx, item).Execute()
}

// ExecuteToggleSelectAll toggles between all-visible and none selected
func (e *Executor) ExecuteToggleSelectAll(items []bulk.Item) tea.Cmd {
	return NewToggleSelectAllCommand(e.ctx, items).Execute()
}

// ExecuteDeselectAll clears the selection
func (e *Executor) ExecuteDeselectAll() tea.Cmd {
	return NewDeselectAllCommand(e.ctx).Execute()
}
