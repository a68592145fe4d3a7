package handler

import (
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/internal/pkg/serverutils"
	"insight-center-be/internal/service"
	internalWS "insight-center-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveHandler upgrades dashboard tabs to websockets. Each tab receives health
// broadcasts and every state change rendered for its session, including the
// ones it requested itself.
type LiveHandler struct {
	navigation service.INavigationService
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewLiveHandler(navigation service.INavigationService, hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		navigation: navigation,
		hub:        hub,
		logger:     log,
	}
}

func (h *LiveHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
}

func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionID := serverutils.SessionID(c)
	if sessionID == "" {
		return fiber.ErrUnauthorized
	}

	greeting := internalWS.Message{
		Type: service.MessageTypeHealth,
		Data: h.navigation.Health(c.UserContext()),
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LiveHandler", "WebSocket session started", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID, greeting)
		h.logger.Info("LiveHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}
