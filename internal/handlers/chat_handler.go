package handlers

import (
	"encoding/json"

	"github.com/anonto42/travel-match/gateway/internal/chat"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/spot"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ChatHandler serves private conversations.
type ChatHandler struct {
	spots *spot.Cache
}

func NewChatHandler(spots *spot.Cache) *ChatHandler {
	return &ChatHandler{spots: spots}
}

func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chat/last", h.LastMessages)
	g.GET("/chat/:peer/messages", h.Messages)
	g.POST("/chat/:peer/messages", h.Send)
	g.POST("/chat/:peer/messages/:id/failed", h.MarkFailed)
}

// Messages reloads the conversation from upstream and clears its unread count.
func (h *ChatHandler) Messages(c echo.Context) error {
	peer, err := pathID(c, "peer")
	if err != nil {
		return fail(c, err, nil)
	}
	list, err := ws(c).Chat.Reload(c.Request().Context(), peer, viewerID(c))
	if err != nil {
		return fail(c, err, nil)
	}
	return ok(c, list)
}

// Send fills a shared spot card from the favourites cache before sending. On
// failure the failed echo is returned in data so the UI can offer a retry.
func (h *ChatHandler) Send(c echo.Context) error {
	peer, err := pathID(c, "peer")
	if err != nil {
		return fail(c, err, nil)
	}
	var req models.SendChatRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err, nil)
	}
	if req.Type == string(chat.KindSpot) {
		req.SpotJSON = h.enrichSpot(c, req.SpotJSON)
	}
	msg, err := ws(c).Chat.Send(c.Request().Context(), peer, req)
	if err != nil {
		return fail(c, err, msg)
	}
	return ok(c, msg)
}

func (h *ChatHandler) enrichSpot(c echo.Context, raw string) string {
	var p models.ChatSpotPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return raw
	}
	h.spots.Enrich(c.Request().Context(), &p)
	out, err := json.Marshal(p)
	if err != nil {
		log.Warn().Err(err).Msg("Re-encoding spot card failed")
		return raw
	}
	return string(out)
}

func (h *ChatHandler) MarkFailed(c echo.Context) error {
	peer, err := pathID(c, "peer")
	if err != nil {
		return fail(c, err, nil)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err, nil)
	}
	marked := ws(c).Chat.MarkFailed(chat.SessionKey(peer), id)
	return ok(c, echo.Map{"marked": marked})
}

func (h *ChatHandler) LastMessages(c echo.Context) error {
	return ok(c, ws(c).Chat.LastMessages())
}
