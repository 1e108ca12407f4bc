package models

import "time"

// SessionRecord is the durable part of a browser session (PostgreSQL).
type SessionRecord struct {
	Key             string    `json:"key" gorm:"column:session_key;primaryKey;size:64"`
	Token           string    `json:"-" gorm:"type:text"`
	UserID          *int64    `json:"user_id" gorm:"index"`
	Nickname        *string   `json:"nickname" gorm:"size:64"`
	ReputationLevel *int      `json:"reputation_level"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (SessionRecord) TableName() string {
	return "client_sessions"
}
