package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pantrycrm/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err, "in-memory database should open")
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func seedOrganizations(t *testing.T, store *Store, names ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(names))
	for i, name := range names {
		id := string(rune('a'+i)) + "-org"
		require.NoError(t, store.Insert(context.Background(), domain.Organization{
			ID: id, Name: name, Priority: "B",
		}))
		ids = append(ids, id)
	}
	return ids
}

func TestInsertAndList(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	seedOrganizations(t, store, "Zeta Foods", "Acme Catering")

	records, err := store.List(context.Background(), domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Acme Catering", records[0].Title(), "listing is ordered by name")
}

func TestDeleteMany(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ids := seedOrganizations(t, store, "One", "Two", "Three")

	require.NoError(t, store.DeleteMany(context.Background(), domain.KindOrganization, ids[:2]))

	records, err := store.List(context.Background(), domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, ids[2], records[0].RecordID())
}

func TestDeleteManyEmptyIsNoop(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	seedOrganizations(t, store, "Keep")

	require.NoError(t, store.DeleteMany(context.Background(), domain.KindOrganization, nil))

	records, err := store.List(context.Background(), domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestUpdateSegment(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ids := seedOrganizations(t, store, "One", "Two")

	require.NoError(t, store.UpdateSegment(context.Background(), domain.KindOrganization, ids[:1], "fine-dining"))

	record, err := store.Get(context.Background(), domain.KindOrganization, ids[0])
	require.NoError(t, err)
	require.Equal(t, "fine-dining", record.(domain.Organization).Segment)

	other, err := store.Get(context.Background(), domain.KindOrganization, ids[1])
	require.NoError(t, err)
	require.Empty(t, other.(domain.Organization).Segment, "unlisted ids keep their segment")
}

func TestArchiveHidesFromList(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ids := seedOrganizations(t, store, "One", "Two")

	require.NoError(t, store.Archive(context.Background(), domain.KindOrganization, ids[:1]))

	records, err := store.List(context.Background(), domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, records, 1, "archived records disappear from listings")
	require.Equal(t, ids[1], records[0].RecordID())
}

func TestAdvanceStage(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, domain.Opportunity{
		ID: "opp-1", Name: "First", Stage: domain.StageNewLead,
	}))
	require.NoError(t, store.Insert(ctx, domain.Opportunity{
		ID: "opp-2", Name: "Won", Stage: domain.StageClosedWon,
	}))

	require.NoError(t, store.AdvanceStage(ctx, []string{"opp-1", "opp-2"}))

	first, err := store.Get(ctx, domain.KindOpportunity, "opp-1")
	require.NoError(t, err)
	require.Equal(t, domain.StageInitialOutreach, first.(domain.Opportunity).Stage)

	won, err := store.Get(ctx, domain.KindOpportunity, "opp-2")
	require.NoError(t, err)
	require.Equal(t, domain.StageClosedWon, won.(domain.Opportunity).Stage,
		"terminal stage does not advance")
}

func TestAdvanceStageUnknownIDFailsWholeBatch(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, domain.Opportunity{
		ID: "opp-1", Name: "First", Stage: domain.StageNewLead,
	}))

	err := store.AdvanceStage(ctx, []string{"opp-1", "ghost"})
	require.ErrorIs(t, err, ErrNotFound)

	unchanged, err := store.Get(ctx, domain.KindOpportunity, "opp-1")
	require.NoError(t, err)
	require.Equal(t, domain.StageNewLead, unchanged.(domain.Opportunity).Stage,
		"the transaction rolls back on failure")
}

func TestInteractionRoundTrip(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	when := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, domain.Interaction{
		ID: "int-1", OrganizationID: "a-org", Type: "visit",
		Notes: "sample drop-off", OccurredAt: when,
	}))

	records, err := store.List(ctx, domain.KindInteraction)
	require.NoError(t, err)
	require.Len(t, records, 1)
	got := records[0].(domain.Interaction)
	require.Equal(t, "visit", got.Type)
	require.True(t, got.OccurredAt.Equal(when), "timestamp survives the round trip")
}

func TestGetMissing(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	_, err := store.Get(context.Background(), domain.KindProduct, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
