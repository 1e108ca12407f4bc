// Package spot keeps the display snapshot of favourited spots.
package spot

import (
	"context"
	"fmt"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/repositories"
	"github.com/rs/zerolog/log"
)

type Cache struct {
	repo repositories.SpotDisplayRepository
}

func NewCache(repo repositories.SpotDisplayRepository) *Cache {
	return &Cache{repo: repo}
}

// Get returns the stored display, or nil. A read failure counts as absent.
func (c *Cache) Get(ctx context.Context, spotID int64) *models.SpotFavoriteDisplay {
	d, err := c.repo.Get(ctx, spotID)
	if err != nil {
		log.Warn().Err(err).Int64("spot_id", spotID).Msg("Spot display lookup failed")
		return nil
	}
	return d
}

func (c *Cache) Set(ctx context.Context, display models.SpotFavoriteDisplay) error {
	if err := c.repo.Put(ctx, &display); err != nil {
		return fmt.Errorf("save spot display %d: %w", display.SpotID, err)
	}
	return nil
}

func (c *Cache) Remove(ctx context.Context, spotID int64) error {
	if err := c.repo.Delete(ctx, spotID); err != nil {
		return fmt.Errorf("remove spot display %d: %w", spotID, err)
	}
	return nil
}

// Enrich fills the missing name, location and cover of a shared spot card from
// the stored display.
func (c *Cache) Enrich(ctx context.Context, p *models.ChatSpotPayload) {
	if p == nil || p.SpotID == nil {
		return
	}
	d := c.Get(ctx, *p.SpotID)
	if d == nil {
		return
	}
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.Location == "" {
		p.Location = d.Location
	}
	if p.ImageURL == "" {
		p.ImageURL = d.ImageURL
	}
	if p.Lng == nil && p.Lat == nil {
		p.Lng, p.Lat = d.Lng, d.Lat
	}
}
