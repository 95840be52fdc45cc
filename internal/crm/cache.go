package crm

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pantrycrm/internal/domain"
)

// recordCache is a TTL cache for per-kind record listings. Reads go
// through it so that cursor movement and re-renders don't hammer the
// database; every mutation invalidates the affected kind.
type recordCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func newRecordCache(ttl time.Duration) *recordCache {
	return &recordCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (rc *recordCache) get(kind domain.RecordKind) ([]domain.Record, bool) {
	value, ok := rc.cache.Get(string(kind))
	if !ok {
		return nil, false
	}
	records, ok := value.([]domain.Record)
	return records, ok
}

func (rc *recordCache) set(kind domain.RecordKind, records []domain.Record) {
	rc.cache.Set(string(kind), records, rc.ttl)
}

func (rc *recordCache) invalidate(kind domain.RecordKind) {
	rc.cache.Delete(string(kind))
}

func (rc *recordCache) invalidateAll() {
	rc.cache.Flush()
}
