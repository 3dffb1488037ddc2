package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/notify"
)

// SocketHandler upgrades GET /ws/:userId to a WebSocket and registers the
// connection in the hub. The channel is push-only: inbound frames are read
// and discarded, and reading until error is what detects the close.
type SocketHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewSocketHandler(hub *notify.Hub, allowedOrigins []string, logger zerolog.Logger) *SocketHandler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return &SocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		logger: logger,
	}
}

// Serve handles the socket lifecycle: connecting → open (registered) →
// closed (unregistered). It blocks until the peer disconnects.
func (h *SocketHandler) Serve(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user id")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Debug().Err(err).Msg("socket upgrade failed")
		return nil
	}

	session := h.hub.Register(userID, conn)
	defer func() {
		h.hub.Unregister(session)
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Str("user_id", userID).Msg("socket read failed")
			}
			return nil
		}
	}
}
