package models

import "github.com/anonto42/travel-match/gateway/internal/timeutil"

// MessageOverview feeds the global unread badge.
type MessageOverview struct {
	TotalUnread int `json:"totalUnread"`
}

// InteractionMessageDTO is a like or comment notification. Type and TargetType
// arrive in either case.
type InteractionMessageDTO struct {
	ID             int64  `json:"id"`
	Type           string `json:"type"`
	FromUserID     int64  `json:"fromUserId"`
	FromUserName   string `json:"fromUserName"`
	FromUserAvatar string `json:"fromUserAvatar,omitempty"`
	TargetType     string `json:"targetType"`
	TargetID       int64  `json:"targetId"`
	TargetTitle    string `json:"targetTitle"`
	ContentPreview string `json:"contentPreview,omitempty"`
	CreatedAt      string `json:"createdAt"`
	Read           bool   `json:"read"`
}

// ConversationSummaryDTO is one row of the private message list.
type ConversationSummaryDTO struct {
	ID                 int64  `json:"id"`
	PeerUserID         int64  `json:"peerUserId"`
	PeerNickname       string `json:"peerNickname"`
	PeerAvatar         string `json:"peerAvatar,omitempty"`
	LastMessagePreview string `json:"lastMessagePreview"`
	LastMessageTime    string `json:"lastMessageTime"`
	UnreadCount        int    `json:"unreadCount"`
	Pinned             bool   `json:"pinned,omitempty"`
	PeerIsFollower     bool   `json:"peerIsFollower,omitempty"`
}

// ChatMessageItemDTO is one private message as stored upstream.
type ChatMessageItemDTO struct {
	ID        int64             `json:"id"`
	SenderID  int64             `json:"senderId"`
	Content   string            `json:"content"`
	Type      string            `json:"type"`
	SpotJSON  *string           `json:"spotJson,omitempty"`
	CreatedAt timeutil.Flexible `json:"createdAt"`
}

// SendChatRequest is the body of POST messages/chat/{peer}. Image content is
// base64; spot messages carry spotJson.
type SendChatRequest struct {
	Content  string `json:"content" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=text image spot"`
	SpotJSON string `json:"spotJson,omitempty" validate:"required_if=Type spot,omitempty,json"`
}
