package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/config"
	"pantrycrm/internal/crm"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/ui/commands"
	"pantrycrm/internal/ui/handlers"
	"pantrycrm/internal/ui/input"
	"pantrycrm/internal/ui/input/types"
	"pantrycrm/internal/ui/logic"
	"pantrycrm/internal/ui/state"
	"pantrycrm/internal/ui/viewmodels"
	"pantrycrm/internal/ui/views"
)

const (
	tickInterval   = 80 * time.Millisecond
	statusLifetime = 4 * time.Second
	actionTimeout  = 60 * time.Second
)

// Model is the bubbletea model for the record browser
type Model struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	service crm.Service

	state     *state.AppState
	selection *bulk.Store
	registry  *bulk.Registry
	executor  *bulk.Executor
	actionSet *ActionSet

	inputHandler *input.Handler
	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	eventHandler *handlers.EventHandler
	navigator    *logic.Navigator
	filter       *logic.RecordFilter
	cmdExecutor  *commands.Executor

	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	currentSort logic.SortMode

	width          int
	height         int
	pauseRendering bool
	quitting       bool
}

// NewModel creates the UI model wired to the CRM service
func NewModel(cfg *config.Config, service crm.Service, bus eventbus.EventBus) *Model {
	st := state.NewAppState()
	if cfg != nil && cfg.DefaultKind != "" {
		st.CurrentKind = cfg.DefaultKind
	}

	selection := bulk.NewStore()
	registry := bulk.NewRegistry()

	showSegment := cfg == nil || cfg.UISettings.ShowSegment

	m := &Model{
		cfg:          cfg,
		bus:          bus,
		service:      service,
		state:        st,
		selection:    selection,
		registry:     registry,
		executor:     bulk.NewExecutor(selection, registry),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(showSegment),
		navigator:    logic.NewNavigator(),
		filter:       logic.NewRecordFilter(),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(nil),
	}

	m.actionSet = NewActionSet(service, func() string { return m.state.PendingSegment })
	m.registerActions()

	m.viewModel = viewmodels.NewViewModel(st, selection, m.inputHandler,
		func() logic.SortMode { return m.currentSort }, showSegment)
	m.eventHandler = handlers.NewEventHandler(st, selection)

	// Announce selection changes so other bus subscribers stay in sync
	if bus != nil {
		selection.Subscribe(func(items []bulk.Item) {
			ids := make([]string, len(items))
			for i, item := range items {
				ids[i] = item.ID
			}
			bus.Publish(eventbus.SelectionChangedEvent{
				Kind:  m.state.CurrentKind,
				IDs:   ids,
				Total: len(ids),
			})
		})
	}
	m.cmdExecutor = commands.NewExecutor(&commands.CommandContext{
		State:     st,
		Bus:       bus,
		Selection: selection,
	})

	return m
}

// SetProgram attaches the running program so the help pager can release
// the terminal
func (m *Model) SetProgram(program *tea.Program) {
	m.helpOps.SetProgram(program)
}

// Init starts the spinner tick and requests the initial load
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.cmdExecutor.ExecuteRefresh())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title, tabs, list header, status and help lines
		m.state.ViewportHeight = msg.Height - 9
		if m.state.ViewportHeight < 3 {
			m.state.ViewportHeight = 3
		}
		return m, nil

	case tea.KeyMsg:
		if m.pauseRendering {
			return m, nil
		}
		return m.handleKey(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prevMode := m.inputHandler.CurrentMode()
	actions, inputCmd := m.inputHandler.HandleKey(msg, m.inputContext())

	var cmds []tea.Cmd
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	for _, action := range actions {
		if cmd := m.processAction(action, prevMode); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State:       m.state,
		Selection:   m.selection,
		Visible:     m.viewModel.VisibleRecords,
		CurrentSort: func() string { return m.currentSort.Key() },
	}
}

// processAction applies a single input action to the model
func (m *Model) processAction(action types.Action, prevMode types.Mode) tea.Cmd {
	switch a := action.(type) {
	case types.NavigateAction:
		m.navigate(a.Direction)

	case types.ToggleSelectAction:
		return m.toggleSelect(a.Index)

	case types.ToggleSelectAllAction:
		return m.cmdExecutor.ExecuteToggleSelectAll(m.visibleItems())

	case types.DeselectAllAction:
		return m.cmdExecutor.ExecuteDeselectAll()

	case types.SwitchKindAction:
		m.switchKindByKey(a.Kind)

	case types.CycleKindAction:
		m.cycleKind(a.Direction)

	case types.BulkActionAction:
		return m.startBulkAction(a.ID)

	case types.ConfirmAction:
		return m.finishConfirmation(a.Accepted)

	case types.UpdateTextAction:
		m.liveTextUpdate(a.Text)

	case types.SubmitTextAction:
		return m.submitText(a.Text, a.Mode)

	case types.CancelTextAction:
		m.cancelText(prevMode)

	case types.SearchNavigateAction:
		m.searchNavigate(a.Direction)

	case types.RefreshAction:
		m.state.StatusMessage = "Reloading..."
		if a.All {
			return m.cmdExecutor.ExecuteRefresh()
		}
		return m.cmdExecutor.ExecuteRefresh(m.state.CurrentKind)

	case types.ToggleDetailAction:
		m.toggleDetail()

	case types.ToggleHelpAction:
		return m.showHelp()

	case types.SortByAction:
		if mode, ok := logic.SortModeForKey(a.Criteria); ok {
			m.currentSort = mode
		}

	case types.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case types.QuitAction:
		m.quitting = true
		m.selection.Close()
		return tea.Quit
	}

	return nil
}

func (m *Model) navigate(direction string) {
	visible := m.viewModel.VisibleRecords()
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(visible))

	var index, offset int
	switch direction {
	case "up":
		index, offset = m.navigator.Move(-1)
	case "down":
		index, offset = m.navigator.Move(1)
	case "pageup":
		index, offset = m.navigator.Move(-m.navigator.PageSize())
	case "pagedown":
		index, offset = m.navigator.Move(m.navigator.PageSize())
	case "home":
		index, offset = m.navigator.SetSelectedIndex(0)
	case "end":
		index, offset = m.navigator.SetSelectedIndex(m.navigator.MaxIndex())
	default:
		return
	}

	m.state.SelectedIndex = index
	m.state.ViewportOffset = offset
}

// toggleSelect toggles the record at index, or under the cursor when
// index is negative
func (m *Model) toggleSelect(index int) tea.Cmd {
	if index < 0 {
		index = m.state.SelectedIndex
	}
	visible := m.viewModel.VisibleRecords()
	if index < 0 || index >= len(visible) {
		return nil
	}
	record := visible[index]
	return m.cmdExecutor.ExecuteToggleSelection(bulk.Item{
		ID:      record.RecordID(),
		Kind:    record.Kind(),
		Payload: record,
	})
}

func (m *Model) visibleItems() []bulk.Item {
	visible := m.viewModel.VisibleRecords()
	items := make([]bulk.Item, 0, len(visible))
	for _, record := range visible {
		items = append(items, bulk.Item{
			ID:      record.RecordID(),
			Kind:    record.Kind(),
			Payload: record,
		})
	}
	return items
}

// switchKindByKey maps the number row onto the tab bar
func (m *Model) switchKindByKey(key string) {
	kinds := domain.Kinds()
	index := int(key[0] - '1')
	if index < 0 || index >= len(kinds) {
		return
	}
	m.switchKind(kinds[index])
}

func (m *Model) cycleKind(direction int) {
	kinds := domain.Kinds()
	current := 0
	for i, kind := range kinds {
		if kind == m.state.CurrentKind {
			current = i
			break
		}
	}
	next := (current + direction + len(kinds)) % len(kinds)
	m.switchKind(kinds[next])
}

func (m *Model) switchKind(kind domain.RecordKind) {
	if kind == m.state.CurrentKind {
		return
	}
	m.state.SwitchKind(kind)
	m.registerActions()
}

// registerActions replaces the action set for the displayed kind
func (m *Model) registerActions() {
	if err := m.registry.SetActions(m.actionSet.Actions(m.state.CurrentKind)); err != nil {
		m.state.StatusMessage = fmt.Sprintf("Error: registering actions: %v", err)
	}
}

// startBulkAction validates and either confirms or runs the action
func (m *Model) startBulkAction(id string) tea.Cmd {
	action, ok := m.registry.Action(id)
	if !ok {
		m.state.StatusMessage = fmt.Sprintf("Unknown action %q", id)
		return m.clearStatusLater()
	}
	if action.Disabled {
		m.state.StatusMessage = fmt.Sprintf("%s unavailable: %s", action.Label, action.DisabledReason)
		return m.clearStatusLater()
	}
	if m.selection.Count() == 0 {
		m.state.StatusMessage = "No records selected"
		return m.clearStatusLater()
	}
	if m.executor.IsRunning() {
		m.state.StatusMessage = "An action is already running"
		return m.clearStatusLater()
	}

	if action.RequiresConfirmation {
		m.state.PendingActionID = id
		m.state.ConfirmMessage = fmt.Sprintf("%s (%d selected)", action.ConfirmationMessage, m.selection.Count())
		for _, act := range m.inputHandler.ChangeMode(types.ModeConfirm, m.inputContext()) {
			m.processAction(act, types.ModeNormal)
		}
		return nil
	}

	return m.runBulkAction(id)
}

// finishConfirmation resolves a pending confirmation prompt
func (m *Model) finishConfirmation(accepted bool) tea.Cmd {
	id := m.state.PendingActionID
	m.state.PendingActionID = ""
	m.state.ConfirmMessage = ""

	if !accepted || id == "" {
		m.state.StatusMessage = "Cancelled"
		return m.clearStatusLater()
	}
	return m.runBulkAction(id)
}

// runBulkAction executes the action asynchronously against the
// selection snapshot
func (m *Model) runBulkAction(id string) tea.Cmd {
	count := m.selection.Count()
	m.state.RunningAction = id

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		err := m.executor.Execute(ctx, id)
		return bulkActionMsg{id: id, count: count, err: err}
	}
}

// liveTextUpdate applies search and filter input as it is typed
func (m *Model) liveTextUpdate(text string) {
	switch m.inputHandler.CurrentMode() {
	case types.ModeSearch:
		m.state.SearchQuery = text
		m.performSearch()
	case types.ModeFilter:
		m.state.FilterQuery = text
		m.state.IsFiltered = text != ""
		m.state.ClampSelection()
	}
}

// submitText resolves a completed text prompt
func (m *Model) submitText(text string, mode types.Mode) tea.Cmd {
	switch mode {
	case types.ModeSearch:
		m.state.SearchQuery = text
		m.performSearch()

	case types.ModeFilter:
		m.state.FilterQuery = text
		m.state.IsFiltered = text != ""
		m.state.SelectedIndex = 0
		m.state.ViewportOffset = 0

	case types.ModeSegment:
		segment := strings.TrimSpace(text)
		if segment == "" {
			m.state.StatusMessage = "No segment given"
			return m.clearStatusLater()
		}
		m.state.PendingSegment = segment
		return m.runBulkAction("assign-segment")
	}
	return nil
}

// cancelText clears the transient state of an aborted text prompt
func (m *Model) cancelText(prevMode types.Mode) {
	switch prevMode {
	case types.ModeSearch:
		m.state.SearchQuery = ""
		m.state.SearchMatches = nil
		m.state.SearchIndex = 0
	case types.ModeFilter:
		m.state.FilterQuery = ""
		m.state.IsFiltered = false
	case types.ModeSegment:
		m.state.PendingSegment = ""
	}
}

// performSearch recomputes the match set and jumps to the first match
func (m *Model) performSearch() {
	if m.state.SearchQuery == "" {
		m.state.SearchMatches = nil
		m.state.SearchIndex = 0
		return
	}

	visible := m.viewModel.VisibleRecords()
	m.state.SearchMatches = m.filter.PerformSearch(visible, m.state.SearchQuery)
	m.state.SearchIndex = 0

	if len(m.state.SearchMatches) > 0 {
		m.jumpTo(m.state.SearchMatches[0])
	}
}

// searchNavigate cycles through the search matches
func (m *Model) searchNavigate(direction string) {
	matches := m.state.SearchMatches
	if len(matches) == 0 {
		return
	}

	switch direction {
	case "next":
		m.state.SearchIndex = (m.state.SearchIndex + 1) % len(matches)
	case "prev":
		m.state.SearchIndex = (m.state.SearchIndex - 1 + len(matches)) % len(matches)
	}
	m.jumpTo(matches[m.state.SearchIndex])
}

func (m *Model) jumpTo(index int) {
	visible := m.viewModel.VisibleRecords()
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(visible))
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(index)
}

// toggleDetail opens or closes the record detail popup
func (m *Model) toggleDetail() {
	if m.state.ShowDetail {
		m.state.ShowDetail = false
		m.state.DetailContent = ""
		return
	}

	visible := m.viewModel.VisibleRecords()
	if m.state.SelectedIndex < 0 || m.state.SelectedIndex >= len(visible) {
		return
	}
	m.state.DetailContent = buildDetailContent(visible[m.state.SelectedIndex])
	m.state.ShowDetail = true
}

// showHelp opens the keymap reference in the ov pager
func (m *Model) showHelp() tea.Cmd {
	m.pauseRendering = true
	content := m.helpRenderer.RenderHelpContent()
	return func() tea.Msg {
		err := m.helpOps.ShowHelpInPager(content)
		return helpPagerMsg{err: err}
	}
}

func (m *Model) clearStatusLater() tea.Cmd {
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// handleNonKeyboardMsg processes everything that is not a key press
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.eventHandler.HandleEvent(msg.Event)
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tick()

	case bulkActionMsg:
		return m, m.finishBulkAction(msg)

	case helpPagerMsg:
		m.pauseRendering = false
		if msg.err != nil {
			m.state.StatusMessage = fmt.Sprintf("Error: help pager: %v", msg.err)
			return m, m.clearStatusLater()
		}
		return m, nil

	case pauseRenderingMsg:
		m.pauseRendering = true
		return m, nil

	case resumeRenderingMsg:
		m.pauseRendering = false
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// finishBulkAction applies the outcome of an asynchronous bulk action
func (m *Model) finishBulkAction(msg bulkActionMsg) tea.Cmd {
	m.state.RunningAction = ""
	m.state.PendingSegment = ""

	if msg.err != nil {
		switch msg.err {
		case bulk.ErrAlreadyRunning:
			m.state.StatusMessage = "An action is already running"
		case bulk.ErrEmptySelection:
			m.state.StatusMessage = "No records selected"
		default:
			m.state.StatusMessage = fmt.Sprintf("Error: %s failed: %v", msg.id, msg.err)
		}
		return m.clearStatusLater()
	}

	switch msg.id {
	case "export-csv":
		m.state.StatusMessage = fmt.Sprintf("Exported %d records to %s", msg.count, m.actionSet.LastExportPath())
	case "bulk-delete":
		m.state.StatusMessage = fmt.Sprintf("Deleted %d records", msg.count)
	case "bulk-archive":
		m.state.StatusMessage = fmt.Sprintf("Archived %d records", msg.count)
	case "assign-segment":
		m.state.StatusMessage = fmt.Sprintf("Assigned segment on %d records", msg.count)
	case "advance-stage":
		m.state.StatusMessage = fmt.Sprintf("Advanced %d opportunities", msg.count)
	default:
		m.state.StatusMessage = fmt.Sprintf("%s completed (%d records)", msg.id, msg.count)
	}
	return m.clearStatusLater()
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting || m.pauseRendering {
		return ""
	}
	return m.renderer.Render(m.viewModel.BuildViewState(m.width, m.height))
}

// buildDetailContent formats the full record for the detail popup
func buildDetailContent(record domain.Record) string {
	var b strings.Builder

	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-14s %s\n", label+":", value)
		}
	}

	fmt.Fprintf(&b, "%s\n\n", record.Title())
	writeField("ID", record.RecordID())
	writeField("Kind", record.Kind().Label())

	switch r := record.(type) {
	case domain.Organization:
		writeField("Segment", r.Segment)
		writeField("Priority", r.Priority)
		writeField("City", r.City)
		writeField("Phone", r.Phone)
		writeField("Archived", archivedLabel(r.Archived))
	case domain.Contact:
		writeField("Organization", r.OrganizationID)
		writeField("Role", r.Role)
		writeField("Email", r.Email)
		writeField("Segment", r.Segment)
		writeField("Archived", archivedLabel(r.Archived))
	case domain.Product:
		writeField("Principal", r.Principal)
		writeField("Category", r.Category)
		writeField("Segment", r.Segment)
		writeField("Archived", archivedLabel(r.Archived))
	case domain.Opportunity:
		writeField("Organization", r.OrganizationID)
		writeField("Stage", domain.StageLabel(r.Stage))
		writeField("Probability", fmt.Sprintf("%d%%", r.Probability))
		writeField("Segment", r.Segment)
		writeField("Archived", archivedLabel(r.Archived))
	case domain.Interaction:
		writeField("Organization", r.OrganizationID)
		writeField("Contact", r.ContactID)
		writeField("Type", r.Type)
		writeField("Date", r.OccurredAt.Format("2006-01-02 15:04"))
		writeField("Segment", r.Segment)
		if r.Notes != "" {
			fmt.Fprintf(&b, "\n%s\n", r.Notes)
		}
		writeField("Archived", archivedLabel(r.Archived))
	}

	return strings.TrimRight(b.String(), "\n")
}

func archivedLabel(archived bool) string {
	if archived {
		return "yes"
	}
	return ""
}
