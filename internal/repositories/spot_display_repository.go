package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SpotDisplayRepository remembers the last shown name and cover of a
// favourited spot.
type SpotDisplayRepository interface {
	Get(ctx context.Context, spotID int64) (*models.SpotFavoriteDisplay, error)
	Put(ctx context.Context, display *models.SpotFavoriteDisplay) error
	Delete(ctx context.Context, spotID int64) error
}

type mongoSpotDisplayRepository struct {
	collection *mongo.Collection
}

func NewMongoSpotDisplayRepository(db *mongo.Database) SpotDisplayRepository {
	return &mongoSpotDisplayRepository{collection: db.Collection("spot_favorite_displays")}
}

func (r *mongoSpotDisplayRepository) Get(ctx context.Context, spotID int64) (*models.SpotFavoriteDisplay, error) {
	var display models.SpotFavoriteDisplay
	err := r.collection.FindOne(ctx, bson.M{"_id": spotID}).Decode(&display)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &display, nil
}

func (r *mongoSpotDisplayRepository) Put(ctx context.Context, display *models.SpotFavoriteDisplay) error {
	display.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": display.SpotID}, display, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoSpotDisplayRepository) Delete(ctx context.Context, spotID int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": spotID})
	return err
}
