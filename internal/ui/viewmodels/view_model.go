package viewmodels

import (
	"pantrycrm/internal/bulk"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/ui/input"
	"pantrycrm/internal/ui/input/types"
	"pantrycrm/internal/ui/logic"
	"pantrycrm/internal/ui/state"
	"pantrycrm/internal/ui/views"
)

// ViewModel assembles the render state from the application state
type ViewModel struct {
	state        *state.AppState
	selection    *bulk.Store
	inputHandler *input.Handler
	filter       *logic.RecordFilter
	showSegment  bool

	// currentSort is queried at render time so sort changes apply immediately
	currentSort func() logic.SortMode
}

// NewViewModel creates a new view model
func NewViewModel(st *state.AppState, selection *bulk.Store, inputHandler *input.Handler, currentSort func() logic.SortMode, showSegment bool) *ViewModel {
	return &ViewModel{
		state:        st,
		selection:    selection,
		inputHandler: inputHandler,
		filter:       logic.NewRecordFilter(),
		currentSort:  currentSort,
		showSegment:  showSegment,
	}
}

// VisibleRecords returns the displayed kind's records after filtering and sorting
func (vm *ViewModel) VisibleRecords() []domain.Record {
	records := vm.state.CurrentRecords()
	if vm.state.IsFiltered && vm.state.FilterQuery != "" {
		records = vm.filter.FilterRecords(records, vm.state.FilterQuery)
	}
	sorted := make([]domain.Record, len(records))
	copy(sorted, records)
	logic.SortRecords(sorted, vm.currentSort())
	return sorted
}

// BuildViewState constructs view state for rendering
func (vm *ViewModel) BuildViewState(width, height int) views.ViewState {
	records := vm.VisibleRecords()

	selectedIDs := make(map[string]bool)
	for _, id := range vm.selection.SelectedIDs() {
		selectedIDs[id] = true
	}

	visibleSelected := 0
	for _, record := range records {
		if selectedIDs[record.RecordID()] {
			visibleSelected++
		}
	}
	allSelected := len(records) > 0 && visibleSelected == len(records)
	partialSelect := visibleSelected > 0 && !allSelected

	vs := views.ViewState{
		Width:  width,
		Height: height,

		Kind:    vm.state.CurrentKind,
		Records: records,

		SelectedIndex:  vm.state.SelectedIndex,
		SelectedIDs:    selectedIDs,
		SelectedCount:  vm.selection.Count(),
		AllSelected:    allSelected,
		PartialSelect:  partialSelect,
		ViewportOffset: vm.state.ViewportOffset,
		ViewportHeight: vm.state.ViewportHeight,

		Loading:       vm.state.Loading,
		RunningAction: vm.state.RunningAction,
		StatusMessage: vm.state.StatusMessage,

		ShowDetail:    vm.state.ShowDetail,
		DetailContent: vm.state.DetailContent,

		SearchQuery:     vm.state.SearchQuery,
		FilterQuery:     vm.state.FilterQuery,
		IsFiltered:      vm.state.IsFiltered,
		SortOptionIndex: vm.state.SortOptionIndex,

		ShowSegment: vm.showSegment,
	}

	switch vm.inputHandler.CurrentMode() {
	case types.ModeConfirm:
		vs.ConfirmMessage = vm.state.ConfirmMessage
	case types.ModeSort:
		vs.InputMode = vm.inputHandler.CurrentModeName()
	case types.ModeSearch, types.ModeFilter, types.ModeSegment:
		vs.InputMode = vm.inputHandler.CurrentModeName()
		if ti := vm.inputHandler.TextInput(); ti != nil {
			vs.TextInput = ti.View()
		}
	}

	return vs
}
