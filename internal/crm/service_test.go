package crm

import (
	"context"
	"encoding/csv"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pantrycrm/internal/domain"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/storage/sqlite"
)

// eventRecorder captures bus events for assertions
type eventRecorder struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (r *eventRecorder) record(e eventbus.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []eventbus.DomainEvent
	for _, e := range r.events {
		if e.Type() == t {
			matched = append(matched, e)
		}
	}
	return matched
}

func newServiceFixture(t *testing.T) (Service, *eventRecorder) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := eventbus.New()
	recorder := &eventRecorder{}
	bus.Subscribe(eventbus.EventRecordsLoaded, recorder.record)
	bus.Subscribe(eventbus.EventRecordsDeleted, recorder.record)
	bus.Subscribe(eventbus.EventRecordsChanged, recorder.record)

	store := sqlite.NewStore(db)
	svc := NewService(store, bus)

	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, domain.Organization{ID: "o1", Name: "Acme", Priority: "A"}))
	require.NoError(t, store.Insert(ctx, domain.Organization{ID: "o2", Name: "Bistro", Priority: "B"}))
	require.NoError(t, store.Insert(ctx, domain.Opportunity{ID: "p1", Name: "Deal", Stage: domain.StageNewLead}))

	return svc, recorder
}

func TestRecordsReadsThroughCache(t *testing.T) {
	t.Parallel()
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	first, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// A second read inside the TTL is served from the cache
	second, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, second, 2)
}

func TestDeleteRecordsInvalidatesAndPublishes(t *testing.T) {
	t.Parallel()
	svc, recorder := newServiceFixture(t)
	ctx := context.Background()

	// Warm the cache first
	_, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecords(ctx, domain.KindOrganization, []string{"o1"}))

	records, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, records, 1, "delete must not be masked by a stale cache")
	require.Equal(t, "o2", records[0].RecordID())

	require.Eventually(t, func() bool {
		return len(recorder.ofType(eventbus.EventRecordsDeleted)) == 1
	}, time.Second, 10*time.Millisecond, "a RecordsDeleted event should be published")
}

func TestAssignSegment(t *testing.T) {
	t.Parallel()
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.AssignSegment(ctx, domain.KindOrganization, []string{"o1", "o2"}, "healthcare"))

	records, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)
	for _, record := range records {
		require.Equal(t, "healthcare", record.(domain.Organization).Segment)
	}
}

func TestAdvanceStage(t *testing.T) {
	t.Parallel()
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.AdvanceStage(ctx, []string{"p1"}))

	record, err := svc.Record(ctx, domain.KindOpportunity, "p1")
	require.NoError(t, err)
	require.Equal(t, domain.StageInitialOutreach, record.(domain.Opportunity).Stage)
}

func TestArchiveRecords(t *testing.T) {
	t.Parallel()
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.ArchiveRecords(ctx, domain.KindOrganization, []string{"o1"}))

	records, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)
	require.Len(t, records, 1, "archived records drop out of listings")
}

func TestLoadAllPublishesEveryKind(t *testing.T) {
	t.Parallel()
	svc, recorder := newServiceFixture(t)

	svc.LoadAll(context.Background())

	require.Eventually(t, func() bool {
		return len(recorder.ofType(eventbus.EventRecordsLoaded)) >= len(domain.Kinds())
	}, time.Second, 10*time.Millisecond, "one RecordsLoaded event per kind")
}

func TestExportCSV(t *testing.T) {
	t.Parallel()
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	records, err := svc.Records(ctx, domain.KindOrganization)
	require.NoError(t, err)

	path, err := svc.ExportCSV(records)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two organizations")
	require.Equal(t, []string{"id", "kind", "title", "segment"}, rows[0])
}

func TestExportCSVEmpty(t *testing.T) {
	t.Parallel()
	svc, _ := newServiceFixture(t)

	_, err := svc.ExportCSV(nil)
	require.Error(t, err, "an empty export is rejected")
}
