package handler

import (
	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/pkg/serverutils"
	internalWS "knotpad-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChangeStreamHandler upgrades authenticated requests to a websocket that
// receives the caller's notebook and note change events.
type ChangeStreamHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewChangeStreamHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *ChangeStreamHandler {
	return &ChangeStreamHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs takes the token from the "token" query param (browsers cannot set
// headers on a websocket handshake) or from a bearer Authorization header.
func (h *ChangeStreamHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c)
	}
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	userID, err := serverutils.ParseUserToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("ChangeStreamHandler", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChangeStreamHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("ChangeStreamHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

func (h *ChangeStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/changes", h.ServeWs)
}
