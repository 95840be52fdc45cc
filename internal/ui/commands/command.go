package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State     *state.AppState
	Bus       eventbus.EventBus
	Selection *bulk.Store
}

// RefreshCommand requests a reload of one or more record kinds
type RefreshCommand struct {
	ctx   *CommandContext
	kinds []domain.RecordKind
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(ctx *CommandContext, kinds []domain.RecordKind) *RefreshCommand {
	return &RefreshCommand{
		ctx:   ctx,
		kinds: kinds,
	}
}

// Execute publishes a refresh request per kind
func (c *RefreshCommand) Execute() tea.Cmd {
	if len(c.kinds) == 0 {
		return nil
	}
	c.ctx.State.Loading = true
	if c.ctx.Bus != nil {
		for _, kind := range c.kinds {
			c.ctx.Bus.Publish(eventbus.RefreshRequestedEvent{Kind: kind})
		}
	}
	return nil
}

// ToggleSelectionCommand toggles a single record's selection
type ToggleSelectionCommand struct {
	ctx  *CommandContext
	item bulk.Item
}

// NewToggleSelectionCommand creates a new toggle selection command
func NewToggleSelectionCommand(ctx *CommandContext, item bulk.Item) *ToggleSelectionCommand {
	return &ToggleSelectionCommand{
		ctx:  ctx,
		item: item,
	}
}

// Execute toggles the selection
func (c *ToggleSelectionCommand) Execute() tea.Cmd {
	if c.item.ID != "" {
		c.ctx.Selection.Toggle(c.item)
	}
	return nil
}

// ToggleSelectAllCommand toggles between all-visible-selected and none
type ToggleSelectAllCommand struct {
	ctx   *CommandContext
	items []bulk.Item
}

// NewToggleSelectAllCommand creates a new toggle select all command
func NewToggleSelectAllCommand(ctx *CommandContext, items []bulk.Item) *ToggleSelectAllCommand {
	return &ToggleSelectAllCommand{
		ctx:   ctx,
		items: items,
	}
}

// Execute toggles select all
func (c *ToggleSelectAllCommand) Execute() tea.Cmd {
	if len(c.items) == 0 {
		return nil
	}
	c.ctx.Selection.ToggleSelectAll(c.items)
	if count := c.ctx.Selection.Count(); count > 0 {
		c.ctx.State.StatusMessage = fmt.Sprintf("Selected %d records", count)
	} else {
		c.ctx.State.StatusMessage = "Selection cleared"
	}
	return nil
}

// DeselectAllCommand clears the selection
type DeselectAllCommand struct {
	ctx *CommandContext
}

// NewDeselectAllCommand creates a new deselect all command
func NewDeselectAllCommand(ctx *CommandContext) *DeselectAllCommand {
	return &DeselectAllCommand{ctx: ctx}
}

// Execute clears the selection
func (c *DeselectAllCommand) Execute() tea.Cmd {
	c.ctx.Selection.DeselectAll()
	return nil
}
