// Package chat caches private conversations per peer and handles optimistic
// sends.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/timeutil"
	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog/log"
)

type API interface {
	SendChatMessage(ctx context.Context, peerUserID int64, body models.SendChatRequest) apiclient.Result[models.ChatMessageItemDTO]
	ChatMessages(ctx context.Context, peerUserID int64) apiclient.Result[[]models.ChatMessageItemDTO]
	ClearChatUnread(ctx context.Context, peerUserID int64) apiclient.Result[apiclient.Empty]
}

// Store keeps one ordered message list per session key.
type Store struct {
	api API
	ids *snowflake.Node
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string][]Message
	onRead   func(peerUserID int64)
}

// New builds a store. ids generates local message ids; they are time ordered
// and unique across the process.
func New(api API, ids *snowflake.Node) *Store {
	return &Store{
		api:      api,
		ids:      ids,
		now:      time.Now,
		sessions: map[string][]Message{},
	}
}

// OnPeerRead registers fn to be told when a peer's unread count was cleared
// upstream. fn runs outside the store lock.
func (s *Store) OnPeerRead(fn func(peerUserID int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRead = fn
}

// Messages returns a copy of the session's list, empty for unknown keys.
func (s *Store) Messages(key string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message{}, s.sessions[key]...)
}

// SetMessagesFromAPI replaces the session's list with a server batch.
func (s *Store) SetMessagesFromAPI(key string, items []models.ChatMessageItemDTO, currentUserID int64) []Message {
	list := make([]Message, len(items))
	for i, m := range items {
		list[i] = fromDTO(m, currentUserID, s.now)
	}
	s.mu.Lock()
	s.sessions[key] = list
	s.mu.Unlock()
	return append([]Message(nil), list...)
}

// Append adds msg to the tail of the session, filling in a local id and the
// current time when they are missing.
func (s *Store) Append(key string, msg Message) Message {
	if msg.ID == 0 {
		msg.ID = s.ids.Generate().Int64()
	}
	if msg.CreatedAt == "" {
		msg.CreatedAt = timeutil.ISO(s.now())
	}
	s.mu.Lock()
	s.sessions[key] = append(s.sessions[key], msg)
	s.mu.Unlock()
	return msg
}

func (s *Store) AddText(key string, from From, content string) Message {
	return s.Append(key, Message{From: from, Type: KindText, Content: content})
}

func (s *Store) AddImage(key string, from From, imageURL string) Message {
	return s.Append(key, Message{From: from, Type: KindImage, Content: ImagePlaceholder, ImageURL: imageURL})
}

func (s *Store) AddRouteCard(key string, from From, p models.ChatRoutePayload) Message {
	return s.Append(key, Message{From: from, Type: KindRoute, Content: p.Title, RoutePayload: &p})
}

func (s *Store) AddCompanionCard(key string, from From, p models.ChatCompanionPayload) Message {
	return s.Append(key, Message{From: from, Type: KindCompanion, Content: p.Destination, CompanionPayload: &p})
}

func spotContent(p models.ChatSpotPayload) string {
	return "shared a spot: " + p.Name
}

func (s *Store) AddSpotCard(key string, from From, p models.ChatSpotPayload) Message {
	return s.Append(key, Message{From: from, Type: KindSpot, Content: spotContent(p), SpotPayload: &p})
}

func (s *Store) AddSystemTip(key, content string) Message {
	return s.Append(key, Message{From: FromSystem, Type: KindSystem, Content: content})
}

// MarkFailed flags a message whose send did not go through. Unknown ids are
// ignored.
func (s *Store) MarkFailed(key string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.sessions[key]
	for i := range list {
		if list[i].ID == id {
			list[i].Pending = false
			list[i].Failed = true
			return true
		}
	}
	return false
}

// LastMessages maps every session to its tail message, nil when empty.
func (s *Store) LastMessages() map[string]*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*Message, len(s.sessions))
	for key, list := range s.sessions {
		if len(list) == 0 {
			out[key] = nil
			continue
		}
		last := list[len(list)-1]
		out[key] = &last
	}
	return out
}

func (s *Store) pendingFor(body models.SendChatRequest) Message {
	msg := Message{From: FromMe, Type: kindOf(body.Type), Content: body.Content, Pending: true}
	switch msg.Type {
	case KindImage:
		msg.Content = ImagePlaceholder
		msg.ImageURL = body.Content
	case KindSpot:
		msg.SpotPayload = parseSpot(body.SpotJSON)
		if msg.SpotPayload != nil {
			msg.Content = spotContent(*msg.SpotPayload)
		}
	}
	return msg
}

// Send echoes the message locally as pending, then either swaps in the
// server's copy or marks the echo failed.
func (s *Store) Send(ctx context.Context, peerUserID int64, body models.SendChatRequest) (Message, error) {
	key := SessionKey(peerUserID)
	local := s.Append(key, s.pendingFor(body))

	dto, err := s.api.SendChatMessage(ctx, peerUserID, body).Get()
	if err != nil {
		s.MarkFailed(key, local.ID)
		local.Pending = false
		local.Failed = true
		return local, fmt.Errorf("send chat message: %w", err)
	}

	confirmed := fromDTO(dto, dto.SenderID, s.now)
	confirmed.From = FromMe
	if confirmed.Type == KindSpot && confirmed.SpotPayload == nil {
		confirmed.SpotPayload = local.SpotPayload
	}
	s.mu.Lock()
	list := s.sessions[key]
	for i := range list {
		if list[i].ID == local.ID {
			list[i] = confirmed
			break
		}
	}
	s.mu.Unlock()
	return confirmed, nil
}

// Reload replaces the conversation with the server's list and then clears its
// unread count upstream. Failing to clear is only logged.
func (s *Store) Reload(ctx context.Context, peerUserID, currentUserID int64) ([]Message, error) {
	items, err := s.api.ChatMessages(ctx, peerUserID).Get()
	if err != nil {
		return nil, fmt.Errorf("load chat with %d: %w", peerUserID, err)
	}
	list := s.SetMessagesFromAPI(SessionKey(peerUserID), items, currentUserID)

	if err := s.api.ClearChatUnread(ctx, peerUserID).Err(); err != nil {
		log.Warn().Err(err).Int64("peer_user_id", peerUserID).Msg("Clearing chat unread failed")
		return list, nil
	}
	s.mu.RLock()
	fn := s.onRead
	s.mu.RUnlock()
	if fn != nil {
		fn(peerUserID)
	}
	return list, nil
}
