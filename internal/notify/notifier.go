package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/api/metrics"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

// MemberSource resolves a project id to its current member list. The Mongo
// project repository implements it with a projection query.
type MemberSource interface {
	Members(ctx context.Context, projectID string) ([]string, error)
}

// Broadcaster delivers one event to all members of a project. Implemented by
// Notifier (local sockets only) and Relay (local + other instances).
type Broadcaster interface {
	Broadcast(ctx context.Context, projectID string, event ports.Event)
}

// Notifier resolves a project's member list and pushes an event to each
// member's live sockets. Best-effort end to end: a missing project, a lookup
// failure, or any number of dead sockets never surface to the caller.
type Notifier struct {
	hub     *Hub
	members MemberSource
	logger  zerolog.Logger
}

func NewNotifier(hub *Hub, members MemberSource, logger zerolog.Logger) *Notifier {
	return &Notifier{hub: hub, members: members, logger: logger}
}

func (n *Notifier) Broadcast(ctx context.Context, projectID string, event ports.Event) {
	members, err := n.members.Members(ctx, projectID)
	if err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("member_lookup_failed").Inc()
		n.logger.Warn().Err(err).
			Str("project_id", projectID).
			Str("type", event.Type).
			Msg("member lookup failed, event dropped")
		return
	}

	delivered := 0
	for _, userID := range members {
		delivered += n.hub.SendToUser(userID, event)
	}

	n.logger.Debug().
		Str("project_id", projectID).
		Str("type", event.Type).
		Int("delivered", delivered).
		Msg("event broadcast")
}
