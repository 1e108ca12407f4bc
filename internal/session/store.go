// Package session holds the signed-in identity of one browser session and
// writes it through to durable storage.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
)

// Repository persists session records keyed by the client session key. Find
// returns a nil record when nothing is stored.
type Repository interface {
	Find(ctx context.Context, key string) (*models.SessionRecord, error)
	Save(ctx context.Context, rec *models.SessionRecord) error
	Delete(ctx context.Context, key string) error
}

// AuthAPI is the part of the upstream API the login flow needs.
type AuthAPI interface {
	Login(ctx context.Context, body models.LoginRequest) apiclient.Result[models.LoginResponse]
	MeDetail(ctx context.Context) apiclient.Result[models.MeDetail]
}

type Store struct {
	key  string
	repo Repository
	now  func() time.Time

	mu              sync.RWMutex
	token           string
	userID          *int64
	nickname        *string
	reputationLevel *int
	// followed during this session only, not persisted
	followed  map[int64]struct{}
	onSignOut func()
}

func New(key string, repo Repository) *Store {
	return &Store{
		key:      key,
		repo:     repo,
		now:      time.Now,
		followed: map[int64]struct{}{},
	}
}

func (s *Store) Key() string { return s.key }

// Restore loads the persisted record, if any.
func (s *Store) Restore(ctx context.Context) error {
	rec, err := s.repo.Find(ctx, s.key)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if rec == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = rec.Token
	s.userID = rec.UserID
	s.nickname = rec.Nickname
	s.reputationLevel = rec.ReputationLevel
	return nil
}

// Token implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

func (s *Store) Nickname() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.nickname == nil {
		return ""
	}
	return *s.nickname
}

// HasValidSession is true when a token is held and, if it is a JWT with an
// expiry, that expiry is still ahead.
func (s *Store) HasValidSession() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims := &models.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return s.now().Before(claims.ExpiresAt.Time)
}

func (s *Store) SetAuth(ctx context.Context, token string, userID int64) error {
	s.mu.Lock()
	s.token = token
	s.userID = &userID
	rec := s.recordLocked()
	s.mu.Unlock()
	return s.save(ctx, rec)
}

// SetProfile stores the display snapshot; nil clears a field.
func (s *Store) SetProfile(ctx context.Context, nickname *string, reputationLevel *int) error {
	s.mu.Lock()
	s.nickname = nickname
	s.reputationLevel = reputationLevel
	rec := s.recordLocked()
	s.mu.Unlock()
	return s.save(ctx, rec)
}

// OnSignOut registers fn to run after every ClearAuth, outside the lock.
func (s *Store) OnSignOut(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignOut = fn
}

// ClearAuth drops token, user id, nickname, reputation level and the followed
// set together. The sign-out hook runs even when the record cannot be deleted.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.userID = nil
	s.nickname = nil
	s.reputationLevel = nil
	s.followed = map[int64]struct{}{}
	hook := s.onSignOut
	s.mu.Unlock()

	err := s.repo.Delete(ctx, s.key)
	if hook != nil {
		hook()
	}
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Login exchanges credentials for a token. The profile snapshot is filled in
// afterwards on a best-effort basis.
func (s *Store) Login(ctx context.Context, api AuthAPI, body models.LoginRequest) (models.LoginResponse, error) {
	resp, err := api.Login(ctx, body).Get()
	if err != nil {
		return models.LoginResponse{}, err
	}
	if err := s.SetAuth(ctx, resp.Token, resp.UserID); err != nil {
		return resp, err
	}

	me, err := api.MeDetail(ctx).Get()
	if err != nil {
		log.Warn().Err(err).Int64("user_id", resp.UserID).Msg("Profile fetch after login failed")
		return resp, nil
	}
	var nickname *string
	if me.Nickname != "" {
		nickname = &me.Nickname
	}
	if err := s.SetProfile(ctx, nickname, me.ReputationLevel); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *Store) Logout(ctx context.Context) error {
	return s.ClearAuth(ctx)
}

func (s *Store) AddFollowed(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followed[userID] = struct{}{}
}

func (s *Store) RemoveFollowed(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.followed, userID)
}

func (s *Store) IsFollowed(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.followed[userID]
	return ok
}

// Snapshot is the JSON view of the session handed to the UI. The token never
// leaves the gateway.
type Snapshot struct {
	LoggedIn        bool    `json:"loggedIn"`
	UserID          *int64  `json:"userId"`
	Nickname        *string `json:"nickname"`
	ReputationLevel *int    `json:"reputationLevel"`
	ReputationLabel string  `json:"reputationLabel"`
	FollowedUserIDs []int64 `json:"followedUserIds"`
}

func (s *Store) Snapshot() Snapshot {
	valid := s.HasValidSession()
	s.mu.RLock()
	defer s.mu.RUnlock()
	followed := make([]int64, 0, len(s.followed))
	for id := range s.followed {
		followed = append(followed, id)
	}
	return Snapshot{
		LoggedIn:        valid,
		UserID:          s.userID,
		Nickname:        s.nickname,
		ReputationLevel: s.reputationLevel,
		ReputationLabel: ReputationLabel(s.reputationLevel),
		FollowedUserIDs: followed,
	}
}

func (s *Store) recordLocked() *models.SessionRecord {
	return &models.SessionRecord{
		Key:             s.key,
		Token:           s.token,
		UserID:          s.userID,
		Nickname:        s.nickname,
		ReputationLevel: s.reputationLevel,
		UpdatedAt:       s.now(),
	}
}

func (s *Store) save(ctx context.Context, rec *models.SessionRecord) error {
	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
