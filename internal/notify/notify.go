// Package notify pushes the unread badge count to the user's devices.
package notify

import (
	"context"
	"fmt"
	"strconv"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
)

type Notifier interface {
	UnreadChanged(ctx context.Context, userID int64, total int) error
}

// Sender is satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCM sends a data-only message to the user's topic.
type FCM struct {
	sender Sender
}

func NewFCM(sender Sender) *FCM {
	return &FCM{sender: sender}
}

func Topic(userID int64) string {
	return "user-" + strconv.FormatInt(userID, 10)
}

func (f *FCM) UnreadChanged(ctx context.Context, userID int64, total int) error {
	if userID == 0 {
		return nil
	}
	id, err := f.sender.Send(ctx, &messaging.Message{
		Topic: Topic(userID),
		Data:  map[string]string{"type": "unread", "unread": strconv.Itoa(total)},
	})
	if err != nil {
		return fmt.Errorf("push unread badge: %w", err)
	}
	log.Debug().Str("message_id", id).Int64("user_id", userID).Int("unread", total).Msg("Unread badge pushed")
	return nil
}

// Noop is used when Firebase is not configured.
type Noop struct{}

func (Noop) UnreadChanged(context.Context, int64, int) error { return nil }
