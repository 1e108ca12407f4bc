package spot

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRepo struct{}

func (brokenRepo) Get(context.Context, int64) (*models.SpotFavoriteDisplay, error) {
	return nil, errors.New("connection refused")
}
func (brokenRepo) Put(context.Context, *models.SpotFavoriteDisplay) error {
	return errors.New("connection refused")
}
func (brokenRepo) Delete(context.Context, int64) error { return errors.New("connection refused") }

func TestSetGetRemove(t *testing.T) {
	ctx := context.Background()
	c := NewCache(repositories.NewMemorySpotDisplayRepository())

	assert.Nil(t, c.Get(ctx, 5))
	require.NoError(t, c.Set(ctx, models.SpotFavoriteDisplay{SpotID: 5, Name: "West Lake", Location: "Hangzhou"}))

	got := c.Get(ctx, 5)
	require.NotNil(t, got)
	assert.Equal(t, "West Lake", got.Name)
	assert.False(t, got.UpdatedAt.IsZero())

	require.NoError(t, c.Remove(ctx, 5))
	assert.Nil(t, c.Get(ctx, 5))
}

func TestLoadFailureIsAbsent(t *testing.T) {
	c := NewCache(brokenRepo{})
	assert.Nil(t, c.Get(context.Background(), 1))
	assert.Error(t, c.Set(context.Background(), models.SpotFavoriteDisplay{SpotID: 1}))
	assert.Error(t, c.Remove(context.Background(), 1))
}

func TestEnrichFillsBlanksOnly(t *testing.T) {
	ctx := context.Background()
	c := NewCache(repositories.NewMemorySpotDisplayRepository())
	lng, lat := 120.1, 30.2
	require.NoError(t, c.Set(ctx, models.SpotFavoriteDisplay{SpotID: 9, Name: "Stored", Location: "Hangzhou", ImageURL: "https://img/1.jpg", Lng: &lng, Lat: &lat}))

	id := int64(9)
	p := &models.ChatSpotPayload{SpotID: &id, Name: "Shared"}
	c.Enrich(ctx, p)
	assert.Equal(t, "Shared", p.Name)
	assert.Equal(t, "Hangzhou", p.Location)
	assert.Equal(t, "https://img/1.jpg", p.ImageURL)
	require.NotNil(t, p.Lat)
	assert.Equal(t, 30.2, *p.Lat)

	c.Enrich(ctx, nil)
	c.Enrich(ctx, &models.ChatSpotPayload{Name: "no id"})
}
