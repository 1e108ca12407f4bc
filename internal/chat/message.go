package chat

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/timeutil"
)

type From string

const (
	FromMe     From = "me"
	FromOther  From = "other"
	FromSystem From = "system"
)

type Kind string

const (
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindRoute     Kind = "route"
	KindCompanion Kind = "companion"
	KindSpot      Kind = "spot"
	KindSystem    Kind = "system"
)

// ImagePlaceholder is the text shown for image messages.
const ImagePlaceholder = "[image]"

// Message is one rendered chat entry. At most one payload is set and it
// matches Type.
type Message struct {
	ID               int64                        `json:"id"`
	From             From                         `json:"from"`
	Type             Kind                         `json:"type"`
	Content          string                       `json:"content"`
	CreatedAt        string                       `json:"createdAt"`
	RoutePayload     *models.ChatRoutePayload     `json:"routePayload,omitempty"`
	CompanionPayload *models.ChatCompanionPayload `json:"companionPayload,omitempty"`
	SpotPayload      *models.ChatSpotPayload      `json:"spotPayload,omitempty"`
	ImageURL         string                       `json:"imageUrl,omitempty"`
	Pending          bool                         `json:"pending,omitempty"`
	Failed           bool                         `json:"failed,omitempty"`
}

// SessionKey names the local message cache of a conversation with peerUserID.
func SessionKey(peerUserID int64) string {
	return "user-" + strconv.FormatInt(peerUserID, 10)
}

func kindOf(s string) Kind {
	switch k := Kind(s); k {
	case KindText, KindImage, KindRoute, KindCompanion, KindSpot:
		return k
	default:
		return KindText
	}
}

// parseSpot returns nil for missing or malformed payloads.
func parseSpot(raw string) *models.ChatSpotPayload {
	if raw == "" {
		return nil
	}
	var p models.ChatSpotPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

func createdAt(f timeutil.Flexible, now func() time.Time) string {
	if f.Parts == nil && f.Text != "" {
		return f.Text
	}
	return timeutil.ISO(f.Time(now))
}

func fromDTO(m models.ChatMessageItemDTO, currentUserID int64, now func() time.Time) Message {
	msg := Message{
		ID:        m.ID,
		From:      FromOther,
		Type:      kindOf(m.Type),
		Content:   m.Content,
		CreatedAt: createdAt(m.CreatedAt, now),
	}
	if m.SenderID == currentUserID {
		msg.From = FromMe
	}
	switch msg.Type {
	case KindImage:
		msg.ImageURL = m.Content
	case KindSpot:
		if m.SpotJSON != nil {
			msg.SpotPayload = parseSpot(*m.SpotJSON)
		}
	}
	return msg
}
