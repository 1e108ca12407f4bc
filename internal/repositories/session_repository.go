package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository stores the durable part of browser sessions.
type SessionRepository interface {
	Find(ctx context.Context, key string) (*models.SessionRecord, error)
	Save(ctx context.Context, rec *models.SessionRecord) error
	Delete(ctx context.Context, key string) error
}

type postgresSessionRepository struct {
	db *gorm.DB
}

func NewPostgresSessionRepository(db *gorm.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Find(ctx context.Context, key string) (*models.SessionRecord, error) {
	var rec models.SessionRecord
	err := r.db.WithContext(ctx).Where("session_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save upserts on the session key.
func (r *postgresSessionRepository) Save(ctx context.Context, rec *models.SessionRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "user_id", "nickname", "reputation_level", "updated_at"}),
	}).Create(rec).Error
}

func (r *postgresSessionRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("session_key = ?", key).Delete(&models.SessionRecord{}).Error
}
