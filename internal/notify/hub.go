// Package notify implements the project change notification fan-out: an
// in-process connection registry (Hub), a member-resolving broadcaster
// (Notifier), a sharded fire-and-forget dispatcher, and an optional Redis
// relay for multi-instance deployments.
package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/api/metrics"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

// Conn is the minimal socket surface the hub needs. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Session is one registered socket. Writes are serialized through the
// session mutex because gorilla connections do not support concurrent
// writers.
type Session struct {
	userID string
	conn   Conn
	mu     sync.Mutex
}

func (s *Session) send(event ports.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(event)
}

// Hub is the connection registry: user id → live sessions. It is owned by
// the server process and injected into whatever needs it; socket lifecycle
// events and notify broadcasts race freely, so all access goes through the
// registry lock.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string][]*Session
	logger   zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string][]*Session),
		logger:   logger,
	}
}

// Register adds a socket under userID and returns its session handle.
func (h *Hub) Register(userID string, conn Conn) *Session {
	s := &Session{userID: userID, conn: conn}

	h.mu.Lock()
	h.sessions[userID] = append(h.sessions[userID], s)
	h.mu.Unlock()

	metrics.SocketConnectionsActive.Inc()
	h.logger.Debug().Str("user_id", userID).Msg("socket registered")
	return s
}

// Unregister removes a session. Removing the last session of a user deletes
// the map entry so the registry does not accumulate empty slices.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	live := h.sessions[s.userID]
	for i, candidate := range live {
		if candidate == s {
			live = append(live[:i], live[i+1:]...)
			metrics.SocketConnectionsActive.Dec()
			break
		}
	}
	if len(live) == 0 {
		delete(h.sessions, s.userID)
		return
	}
	h.sessions[s.userID] = live
}

// Sessions reports how many live sessions userID currently has.
func (h *Hub) Sessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// SendToUser delivers event to every live session of userID and reports how
// many writes succeeded. A failed write closes and drops only that session;
// the remaining sockets still receive the event.
func (h *Hub) SendToUser(userID string, event ports.Event) int {
	h.mu.RLock()
	live := make([]*Session, len(h.sessions[userID]))
	copy(live, h.sessions[userID])
	h.mu.RUnlock()

	delivered := 0
	for _, s := range live {
		if err := s.send(event); err != nil {
			h.logger.Debug().Err(err).Str("user_id", userID).Msg("socket write failed, dropping session")
			metrics.NotificationsFailedTotal.WithLabelValues("write_failed").Inc()
			_ = s.conn.Close()
			h.Unregister(s)
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues(event.Type).Inc()
		delivered++
	}
	return delivered
}

// Close tears down every registered socket. Used during server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, live := range h.sessions {
		for _, s := range live {
			_ = s.conn.Close()
			metrics.SocketConnectionsActive.Dec()
		}
		delete(h.sessions, userID)
	}
}
