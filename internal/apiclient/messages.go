package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/anonto42/travel-match/gateway/internal/models"
)

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// Overview returns the global unread count.
func (c *Client) Overview(ctx context.Context) Result[models.MessageOverview] {
	return get[models.MessageOverview](ctx, c, "messages/overview", "messages/overview", nil)
}

// InteractionList pages like/comment notifications; category is all, like or comment.
func (c *Client) InteractionList(ctx context.Context, page, pageSize int, category string) Result[models.PageResult[models.InteractionMessageDTO]] {
	q := pageQuery(page, pageSize)
	if category != "" {
		q.Set("category", category)
	}
	return get[models.PageResult[models.InteractionMessageDTO]](ctx, c, "messages/interactions", "messages/interactions", q)
}

func (c *Client) ConversationList(ctx context.Context, page, pageSize int) Result[models.PageResult[models.ConversationSummaryDTO]] {
	return get[models.PageResult[models.ConversationSummaryDTO]](ctx, c, "messages/conversations", "messages/conversations", pageQuery(page, pageSize))
}

func (c *Client) MarkInteractionRead(ctx context.Context, id int64) Result[Empty] {
	return post[Empty](ctx, c, "messages/interactions/{id}/read", fmt.Sprintf("messages/interactions/%d/read", id), nil)
}

func (c *Client) MarkAllInteractionRead(ctx context.Context) Result[Empty] {
	return post[Empty](ctx, c, "messages/interactions/read-all", "messages/interactions/read-all", nil)
}

func (c *Client) ClearConversationUnread(ctx context.Context, conversationID int64) Result[Empty] {
	return post[Empty](ctx, c, "messages/conversations/{id}/clear-unread", fmt.Sprintf("messages/conversations/%d/clear-unread", conversationID), nil)
}

// DeleteConversation hides a conversation for the caller only.
func (c *Client) DeleteConversation(ctx context.Context, conversationID int64) Result[Empty] {
	return del[Empty](ctx, c, "messages/conversations/{id}", fmt.Sprintf("messages/conversations/%d", conversationID), nil)
}

// SendChatMessage posts a private message. SpotJSON is only sent for spot messages.
func (c *Client) SendChatMessage(ctx context.Context, peerUserID int64, body models.SendChatRequest) Result[models.ChatMessageItemDTO] {
	if body.Type == "" {
		body.Type = "text"
	}
	if body.Type != "spot" {
		body.SpotJSON = ""
	}
	return post[models.ChatMessageItemDTO](ctx, c, "messages/chat/{peer}", fmt.Sprintf("messages/chat/%d", peerUserID), body)
}

func (c *Client) ChatMessages(ctx context.Context, peerUserID int64) Result[[]models.ChatMessageItemDTO] {
	return get[[]models.ChatMessageItemDTO](ctx, c, "messages/chat/{peer}/messages", fmt.Sprintf("messages/chat/%d/messages", peerUserID), nil)
}

func (c *Client) ClearChatUnread(ctx context.Context, peerUserID int64) Result[Empty] {
	return post[Empty](ctx, c, "messages/chat/{peer}/clear-unread", fmt.Sprintf("messages/chat/%d/clear-unread", peerUserID), nil)
}
