package repositories

import (
	"context"
	"sync"

	"github.com/anonto42/travel-match/gateway/internal/models"
)

// MemorySessionRepository keeps sessions in process. Used when no PostgreSQL
// connection is configured and in tests.
type MemorySessionRepository struct {
	mu      sync.Mutex
	records map[string]models.SessionRecord
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{records: map[string]models.SessionRecord{}}
}

func (r *MemorySessionRepository) Find(_ context.Context, key string) (*models.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *MemorySessionRepository) Save(_ context.Context, rec *models.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Key] = *rec
	return nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, key)
	return nil
}

func (r *MemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
