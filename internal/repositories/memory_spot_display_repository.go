package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/models"
)

// MemorySpotDisplayRepository is the in-process fallback when MongoDB is not
// configured.
type MemorySpotDisplayRepository struct {
	mu   sync.Mutex
	docs map[int64]models.SpotFavoriteDisplay
}

func NewMemorySpotDisplayRepository() *MemorySpotDisplayRepository {
	return &MemorySpotDisplayRepository{docs: map[int64]models.SpotFavoriteDisplay{}}
}

func (r *MemorySpotDisplayRepository) Get(_ context.Context, spotID int64) (*models.SpotFavoriteDisplay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[spotID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *MemorySpotDisplayRepository) Put(_ context.Context, display *models.SpotFavoriteDisplay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	display.UpdatedAt = time.Now()
	r.docs[display.SpotID] = *display
	return nil
}

func (r *MemorySpotDisplayRepository) Delete(_ context.Context, spotID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, spotID)
	return nil
}
