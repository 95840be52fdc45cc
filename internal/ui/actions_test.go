package ui

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/crm"
	"pantrycrm/internal/domain"
	"pantrycrm/internal/storage/sqlite"
)

type actionFixture struct {
	service   crm.Service
	store     *sqlite.Store
	actionSet *ActionSet
	selection *bulk.Store
	registry  *bulk.Registry
	executor  *bulk.Executor
	segment   string
}

func newActionFixture(t *testing.T) *actionFixture {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	service := crm.NewService(store, nil)

	f := &actionFixture{
		service:   service,
		store:     store,
		selection: bulk.NewStore(),
		registry:  bulk.NewRegistry(),
	}
	f.actionSet = NewActionSet(service, func() string { return f.segment })
	return f
}

func (f *actionFixture) register(t *testing.T, kind domain.RecordKind) {
	t.Helper()
	require.NoError(t, f.registry.SetActions(f.actionSet.Actions(kind)))
	f.executor = bulk.NewExecutor(f.selection, f.registry)
}

func (f *actionFixture) insertOrg(t *testing.T, id, name string) {
	t.Helper()
	err := f.store.Insert(context.Background(), domain.Organization{ID: id, Name: name})
	require.NoError(t, err)
	f.selection.Select(bulk.Item{
		ID:      id,
		Kind:    domain.KindOrganization,
		Payload: domain.Organization{ID: id, Name: name},
	})
}

func TestActionSetRegistersAllActions(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOrganization)

	actions := f.registry.Actions()
	ids := make([]string, len(actions))
	for i, action := range actions {
		ids[i] = action.ID
	}
	require.Equal(t, []string{"bulk-delete", "bulk-archive", "assign-segment", "export-csv", "advance-stage"}, ids)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOrganization)

	action, ok := f.registry.Action("bulk-delete")
	require.True(t, ok)
	require.True(t, action.RequiresConfirmation)
	require.Equal(t, bulk.VariantDestructive, action.Variant)
	require.NotEmpty(t, action.ConfirmationMessage)
}

func TestAdvanceStageDisabledOutsideOpportunities(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)

	f.register(t, domain.KindOrganization)
	action, _ := f.registry.Action("advance-stage")
	require.True(t, action.Disabled)
	require.NotEmpty(t, action.DisabledReason)

	f.register(t, domain.KindOpportunity)
	action, _ = f.registry.Action("advance-stage")
	require.False(t, action.Disabled)
}

func TestDeleteActionRemovesRecords(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOrganization)
	f.insertOrg(t, "o1", "First")
	f.insertOrg(t, "o2", "Second")

	err := f.executor.Execute(context.Background(), "bulk-delete")
	require.NoError(t, err)

	records, err := f.service.Records(context.Background(), domain.KindOrganization)
	require.NoError(t, err)
	require.Empty(t, records)
	require.Zero(t, f.selection.Count(), "selection clears after a successful action")
}

func TestAssignSegmentAction(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOrganization)
	f.insertOrg(t, "o1", "First")
	f.segment = "healthcare"

	err := f.executor.Execute(context.Background(), "assign-segment")
	require.NoError(t, err)

	record, err := f.service.Record(context.Background(), domain.KindOrganization, "o1")
	require.NoError(t, err)
	require.Equal(t, "healthcare", record.(domain.Organization).Segment)
}

func TestAssignSegmentWithoutSegmentFails(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOrganization)
	f.insertOrg(t, "o1", "First")

	err := f.executor.Execute(context.Background(), "assign-segment")
	require.Error(t, err)
	require.Equal(t, 1, f.selection.Count(), "selection survives a failed action")
}

func TestExportActionRecordsPath(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOrganization)
	f.insertOrg(t, "o1", "First")

	err := f.executor.Execute(context.Background(), "export-csv")
	require.NoError(t, err)

	path := f.actionSet.LastExportPath()
	require.NotEmpty(t, path)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "o1")
}

func TestAdvanceStageActionIgnoresOtherKinds(t *testing.T) {
	t.Parallel()

	f := newActionFixture(t)
	f.register(t, domain.KindOpportunity)

	opp := domain.Opportunity{ID: "p1", Name: "Deal", Stage: domain.StageNewLead}
	require.NoError(t, f.store.Insert(context.Background(), opp))
	f.selection.Select(bulk.Item{ID: "p1", Kind: domain.KindOpportunity, Payload: opp})
	f.selection.Select(bulk.Item{ID: "x1", Kind: domain.KindOrganization})

	err := f.executor.Execute(context.Background(), "advance-stage")
	require.NoError(t, err)

	record, err := f.service.Record(context.Background(), domain.KindOpportunity, "p1")
	require.NoError(t, err)
	require.Equal(t, domain.StageInitialOutreach, record.(domain.Opportunity).Stage)
}
