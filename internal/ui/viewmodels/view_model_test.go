package viewmodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/ui/input"
	"pantrycrm/internal/ui/logic"
	"pantrycrm/internal/ui/state"
)

func newViewModelFixture() (*ViewModel, *state.AppState, *bulk.Store) {
	st := state.NewAppState()
	selection := bulk.NewStore()
	vm := NewViewModel(st, selection, input.New(),
		func() logic.SortMode { return logic.SortByName }, true)
	return vm, st, selection
}

func TestVisibleRecordsAreSorted(t *testing.T) {
	t.Parallel()

	vm, st, _ := newViewModelFixture()
	st.SetRecords(domain.KindOrganization, []domain.Record{
		domain.Organization{ID: "o1", Name: "Zeta"},
		domain.Organization{ID: "o2", Name: "Alpha"},
	})

	visible := vm.VisibleRecords()
	require.Equal(t, "Alpha", visible[0].Title())

	// Sorting must not reorder the underlying state
	require.Equal(t, "Zeta", st.CurrentRecords()[0].Title())
}

func TestVisibleRecordsApplyFilter(t *testing.T) {
	t.Parallel()

	vm, st, _ := newViewModelFixture()
	st.SetRecords(domain.KindOrganization, []domain.Record{
		domain.Organization{ID: "o1", Name: "Riverside", Segment: "healthcare"},
		domain.Organization{ID: "o2", Name: "Maple Grove", Segment: "education"},
	})
	st.FilterQuery = "segment:health"
	st.IsFiltered = true

	visible := vm.VisibleRecords()
	require.Len(t, visible, 1)
	require.Equal(t, "Riverside", visible[0].Title())
}

func TestBuildViewStateSelectAllTriState(t *testing.T) {
	t.Parallel()

	vm, st, selection := newViewModelFixture()
	st.SetRecords(domain.KindOrganization, []domain.Record{
		domain.Organization{ID: "o1", Name: "First"},
		domain.Organization{ID: "o2", Name: "Second"},
	})

	vs := vm.BuildViewState(80, 24)
	require.False(t, vs.AllSelected)
	require.False(t, vs.PartialSelect)

	selection.Select(bulk.Item{ID: "o1", Kind: domain.KindOrganization})
	vs = vm.BuildViewState(80, 24)
	require.False(t, vs.AllSelected)
	require.True(t, vs.PartialSelect)
	require.Equal(t, 1, vs.SelectedCount)

	selection.Select(bulk.Item{ID: "o2", Kind: domain.KindOrganization})
	vs = vm.BuildViewState(80, 24)
	require.True(t, vs.AllSelected)
	require.False(t, vs.PartialSelect)
}

func TestBuildViewStateCarriesStatus(t *testing.T) {
	t.Parallel()

	vm, st, _ := newViewModelFixture()
	st.StatusMessage = "done"
	st.RunningAction = "bulk-archive"
	st.Loading = true

	vs := vm.BuildViewState(100, 40)
	require.Equal(t, "done", vs.StatusMessage)
	require.Equal(t, "bulk-archive", vs.RunningAction)
	require.True(t, vs.Loading)
	require.Equal(t, 100, vs.Width)
	require.Equal(t, 40, vs.Height)
}
