package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pantrycrm/internal/domain"
	"pantrycrm/internal/ui/input/modes"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Kind    domain.RecordKind
	Records []domain.Record

	SelectedIndex  int
	SelectedIDs    map[string]bool
	SelectedCount  int
	AllSelected    bool
	PartialSelect  bool
	ViewportOffset int
	ViewportHeight int

	Loading       bool
	RunningAction string
	StatusMessage string

	ShowDetail    bool
	DetailContent string

	SearchQuery     string
	FilterQuery     string
	IsFiltered      bool
	SortOptionIndex int

	TextInput      string
	InputMode      string
	ConfirmMessage string

	ShowSegment bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	recordRender *RecordRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showSegment bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		recordRender: NewRecordRenderer(styles, showSegment),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderTabs(state))
	content.WriteString("\n\n")

	// Confirmation prompt or active text input
	if state.ConfirmMessage != "" {
		content.WriteString(r.styles.Confirm.Render(fmt.Sprintf("%s (y/n): ", state.ConfirmMessage)))
		content.WriteString("\n\n")
	} else if state.InputMode != "" {
		if state.InputMode == "sort" {
			content.WriteString(r.renderSortOptions(state))
		} else {
			content.WriteString(state.TextInput)
		}
		content.WriteString("\n\n")
	}

	// Main content
	if state.Loading && len(state.Records) == 0 {
		content.WriteString(r.styles.Dim.Render("Loading records..."))
	} else if len(state.Records) == 0 {
		if state.IsFiltered {
			content.WriteString(r.styles.Dim.Render("No records match the filter."))
		} else {
			content.WriteString(r.styles.Dim.Render("No records yet. Press R to reload or seed the database."))
		}
	} else {
		content.WriteString(r.renderRecordList(state))
	}

	// Status bar
	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	// Help hint pinned to the bottom
	helpText := r.styles.Help.Render("Press ? for help")
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - 1; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	finalContent := r.styles.Main.MaxHeight(state.Height).Render(content.String())

	// Detail popup replaces the list while open
	if state.ShowDetail && state.DetailContent != "" {
		return r.popupRender.RenderPopup(state.DetailContent, state.Height, state.Width, r.styles.DetailBox)
	}

	return finalContent
}

// renderTitleLine renders the logo with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("pantrycrm")

	indicators := []string{}
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Loading", spinner[frame]))
	}
	if state.RunningAction != "" {
		indicators = append(indicators, fmt.Sprintf("⟳ Running %s", state.RunningAction))
	}

	rightContent := ""
	if len(indicators) > 0 {
		rightContent = r.styles.Dim.Render(strings.Join(indicators, " | "))
	}
	if state.FilterQuery != "" {
		filterText := r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery))
		if rightContent != "" {
			rightContent = fmt.Sprintf("%s  %s", rightContent, filterText)
		} else {
			rightContent = filterText
		}
	}

	if rightContent == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return fmt.Sprintf("%s%s%s", logo, strings.Repeat(" ", paddingWidth), rightContent)
	}
	return fmt.Sprintf("%s  %s", logo, rightContent)
}

// renderTabs renders the record-kind tab bar
func (r *Renderer) renderTabs(state ViewState) string {
	var tabs []string
	for i, kind := range domain.Kinds() {
		label := fmt.Sprintf("%d:%s", i+1, kind.Label())
		if kind == state.Kind {
			tabs = append(tabs, r.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(label))
		}
	}
	return strings.Join(tabs, r.styles.Dim.Render(" │ "))
}

// renderRecordList renders the visible slice of the record list
func (r *Renderer) renderRecordList(state ViewState) string {
	var lines []string

	header := r.recordRender.RenderSelectAllHeader(
		state.AllSelected, state.PartialSelect,
		state.SelectedCount, len(state.Records), state.Kind.Label())
	lines = append(lines, header, "")

	effectiveHeight := state.ViewportHeight
	needsTopIndicator := state.ViewportOffset > 0
	needsBottomIndicator := len(state.Records) > state.ViewportOffset+effectiveHeight

	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}

	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ViewportOffset)))
	}

	end := state.ViewportOffset + effectiveHeight
	if end > len(state.Records) {
		end = len(state.Records)
	}
	for i := state.ViewportOffset; i < end; i++ {
		record := state.Records[i]
		line := r.recordRender.RenderRecord(
			record,
			i == state.SelectedIndex,
			state.SelectedIDs[record.RecordID()],
			state.RunningAction != "" && state.SelectedIDs[record.RecordID()],
			state.SearchQuery,
		)
		lines = append(lines, line)
	}

	if needsBottomIndicator {
		below := len(state.Records) - end
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}

	return strings.Join(lines, "\n")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	if state.SortOptionIndex >= 0 && state.SortOptionIndex < len(modes.SortOptions) {
		option := modes.SortOptions[state.SortOptionIndex]
		sortLine := fmt.Sprintf("Sort by: %s - %s", option.Name, option.Description)
		helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel")
		return sortLine + "\n" + helpLine
	}
	return ""
}
