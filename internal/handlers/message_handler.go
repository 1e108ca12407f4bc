package handlers

import (
	"github.com/labstack/echo/v4"
)

// MessageHandler exposes the messaging centre: the unread badge, the
// interaction list and the conversation list.
type MessageHandler struct{}

func NewMessageHandler() *MessageHandler {
	return &MessageHandler{}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages/overview", h.Overview)
	g.GET("/messages/interactions", h.Interactions)
	g.GET("/messages/conversations", h.Conversations)
	g.POST("/messages/interactions/read-all", h.MarkAllRead)
	g.POST("/messages/interactions/:id/read", h.MarkRead)
	g.POST("/messages/conversations/:id/clear-unread", h.ClearUnread)
	g.DELETE("/messages/conversations/:id", h.DeleteConversation)
}

func (h *MessageHandler) Overview(c echo.Context) error {
	box := ws(c).Inbox
	if err := box.FetchOverview(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, box.Counts())
}

// Interactions loads ?page (1 replaces, more appends) of ?category
// (all, like or comment). ?more=1 loads the page after the current one.
func (h *MessageHandler) Interactions(c echo.Context) error {
	box := ws(c).Inbox
	ctx := c.Request().Context()
	category := c.QueryParam("category")
	if category == "" {
		category = "all"
	}

	var err error
	if c.QueryParam("more") == "1" {
		err = box.NextInteractionPage(ctx, category)
	} else {
		box.SetInteractionPage(queryInt(c, "page", 1), queryInt(c, "pageSize", 0))
		err = box.FetchInteractionMessages(ctx, category)
	}
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"page": box.Interactions(), "counts": box.Counts()})
}

func (h *MessageHandler) Conversations(c echo.Context) error {
	box := ws(c).Inbox
	ctx := c.Request().Context()

	var err error
	if c.QueryParam("more") == "1" {
		err = box.NextConversationPage(ctx)
	} else {
		box.SetConversationPage(queryInt(c, "page", 1), queryInt(c, "pageSize", 0))
		err = box.FetchConversations(ctx)
	}
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"page": box.Conversations(), "counts": box.Counts()})
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	box := ws(c).Inbox
	if err := box.MarkInteractionRead(c.Request().Context(), id); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, box.Counts())
}

func (h *MessageHandler) MarkAllRead(c echo.Context) error {
	box := ws(c).Inbox
	if err := box.MarkAllInteractionRead(c.Request().Context()); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, box.Counts())
}

func (h *MessageHandler) ClearUnread(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	box := ws(c).Inbox
	if err := box.ClearConversationUnread(c.Request().Context(), id); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, box.Counts())
}

func (h *MessageHandler) DeleteConversation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	box := ws(c).Inbox
	if err := box.DeleteConversation(c.Request().Context(), id); err != nil {
		return fail(c, err, nil)
	}
	return ok(c, echo.Map{"page": box.Conversations(), "counts": box.Counts()})
}
