// Package crm is the feature layer that owns the actual record
// mutations behind the bulk actions. The UI never talks to the database
// directly: action handlers call into the service, and collection
// reloads flow back to the UI as RecordsLoaded events on the bus.
package crm

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"pantrycrm/internal/domain"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/storage/sqlite"
)

// Service handles CRM record operations
type Service interface {
	Records(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error)
	Record(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error)
	LoadAll(ctx context.Context)
	DeleteRecords(ctx context.Context, kind domain.RecordKind, ids []string) error
	ArchiveRecords(ctx context.Context, kind domain.RecordKind, ids []string) error
	AssignSegment(ctx context.Context, kind domain.RecordKind, ids []string, segment string) error
	AdvanceStage(ctx context.Context, ids []string) error
	ExportCSV(records []domain.Record) (string, error)
}

// service is the concrete implementation
type service struct {
	store      *sqlite.Store
	bus        eventbus.EventBus
	cache      *recordCache
	exportDir  string
	workerPool chan struct{} // Semaphore for limiting concurrent reloads
}

// NewService creates a new CRM service. It subscribes to refresh
// requests and reloads collections in the background.
func NewService(store *sqlite.Store, bus eventbus.EventBus) Service {
	s := &service{
		store:      store,
		bus:        bus,
		cache:      newRecordCache(30 * time.Second),
		exportDir:  os.TempDir(),
		workerPool: make(chan struct{}, 3), // Limit concurrent collection reloads
	}

	if bus != nil {
		bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.RefreshRequestedEvent); ok {
				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					defer cancel()

					if event.Kind == "" {
						s.LoadAll(ctx)
					} else {
						s.reload(ctx, event.Kind)
					}
				}()
			}
		})
	}

	return s
}

// Records returns the records of a kind, served from the cache when
// fresh
func (s *service) Records(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	if records, ok := s.cache.get(kind); ok {
		return records, nil
	}

	records, err := s.store.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	s.cache.set(kind, records)
	return records, nil
}

// Record fetches a single record, bypassing the cache
func (s *service) Record(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error) {
	return s.store.Get(ctx, kind, id)
}

// LoadAll reloads every collection and publishes the results
func (s *service) LoadAll(ctx context.Context) {
	for _, kind := range domain.Kinds() {
		s.reload(ctx, kind)
	}
}

// reload refreshes one collection and announces it on the bus
func (s *service) reload(ctx context.Context, kind domain.RecordKind) {
	s.workerPool <- struct{}{}
	defer func() { <-s.workerPool }()

	s.cache.invalidate(kind)
	records, err := s.store.List(ctx, kind)
	if err != nil {
		log.Printf("Failed to load %s: %v", kind, err)
		if s.bus != nil {
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("loading %s failed", kind.Label()),
				Err:     err,
			})
		}
		return
	}

	s.cache.set(kind, records)
	if s.bus != nil {
		s.bus.Publish(eventbus.RecordsLoadedEvent{Kind: kind, Records: records})
	}
}

// DeleteRecords permanently removes records and reloads the collection
func (s *service) DeleteRecords(ctx context.Context, kind domain.RecordKind, ids []string) error {
	if err := s.store.DeleteMany(ctx, kind, ids); err != nil {
		return err
	}

	s.cache.invalidate(kind)
	if s.bus != nil {
		s.bus.Publish(eventbus.RecordsDeletedEvent{Kind: kind, IDs: ids})
	}
	s.reload(ctx, kind)
	return nil
}

// ArchiveRecords soft-deletes records and reloads the collection
func (s *service) ArchiveRecords(ctx context.Context, kind domain.RecordKind, ids []string) error {
	if err := s.store.Archive(ctx, kind, ids); err != nil {
		return err
	}

	s.cache.invalidate(kind)
	if s.bus != nil {
		s.bus.Publish(eventbus.RecordsChangedEvent{Kind: kind, IDs: ids})
	}
	s.reload(ctx, kind)
	return nil
}

// AssignSegment sets the market segment on records
func (s *service) AssignSegment(ctx context.Context, kind domain.RecordKind, ids []string, segment string) error {
	if err := s.store.UpdateSegment(ctx, kind, ids, segment); err != nil {
		return err
	}

	s.cache.invalidate(kind)
	if s.bus != nil {
		s.bus.Publish(eventbus.RecordsChangedEvent{Kind: kind, IDs: ids})
	}
	s.reload(ctx, kind)
	return nil
}

// AdvanceStage moves opportunities to the next pipeline stage
func (s *service) AdvanceStage(ctx context.Context, ids []string) error {
	if err := s.store.AdvanceStage(ctx, ids); err != nil {
		return err
	}

	s.cache.invalidate(domain.KindOpportunity)
	if s.bus != nil {
		s.bus.Publish(eventbus.RecordsChangedEvent{Kind: domain.KindOpportunity, IDs: ids})
	}
	s.reload(ctx, domain.KindOpportunity)
	return nil
}

// ExportCSV writes the records to a timestamped CSV file and returns
// its path
func (s *service) ExportCSV(records []domain.Record) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	name := fmt.Sprintf("pantrycrm-export-%s.csv", time.Now().Format("20060102-150405"))
	path := filepath.Join(s.exportDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "kind", "title", "segment"}); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}
	for _, record := range records {
		row := []string{record.RecordID(), string(record.Kind()), record.Title(), segmentOf(record)}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	return path, nil
}

// segmentOf pulls the segment field out of any record type
func segmentOf(record domain.Record) string {
	switch r := record.(type) {
	case domain.Organization:
		return r.Segment
	case domain.Contact:
		return r.Segment
	case domain.Product:
		return r.Segment
	case domain.Opportunity:
		return r.Segment
	case domain.Interaction:
		return r.Segment
	default:
		return ""
	}
}
