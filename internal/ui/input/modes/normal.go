package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pantrycrm/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.CycleKindAction{Direction: 1}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.CycleKindAction{Direction: -1}}, true

	case tea.KeyEnter:
		if ctx.CurrentRecordID() != "" {
			return []types.Action{types.ToggleDetailAction{}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "1", "2", "3", "4", "5":
		return []types.Action{types.SwitchKindAction{Kind: msg.String()}}, true

	case " ":
		return []types.Action{types.ToggleSelectAction{Index: -1}}, true

	case "a", "A":
		return []types.Action{types.ToggleSelectAllAction{}}, true

	case "d", "x":
		// Delete selected records
		return []types.Action{types.BulkActionAction{ID: "bulk-delete"}}, true

	case "H":
		// Archive selected records
		return []types.Action{types.BulkActionAction{ID: "bulk-archive"}}, true

	case "s":
		// Assign segment prompts for the segment name first
		if ctx.HasSelection() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSegment}}, true
		}
		return []types.Action{types.BulkActionAction{ID: "assign-segment"}}, true

	case "c":
		// Export selected records to CSV
		return []types.Action{types.BulkActionAction{ID: "export-csv"}}, true

	case "v":
		// Advance pipeline stage (opportunities)
		return []types.Action{types.BulkActionAction{ID: "advance-stage"}}, true

	case "i", "I":
		if ctx.CurrentRecordID() != "" {
			return []types.Action{types.ToggleDetailAction{}}, true
		}
		return nil, false

	case "r":
		return []types.Action{types.RefreshAction{All: false}}, true

	case "R":
		return []types.Action{types.RefreshAction{All: true}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "ctrl+f", "F", "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true

	case "n":
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "next"}}, true
		}
		return nil, true // Consume the key even if no action

	case "N":
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "prev"}}, true
		}
		return nil, true

	case "o":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "esc":
		// Clear selection if any, otherwise do nothing
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		if m.lastKeyWasG {
			m.lastKeyWasG = false
		}
	}

	return nil, false
}
