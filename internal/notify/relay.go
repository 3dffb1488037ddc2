package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/core/ports"
)

// relayChannel is the Redis pub/sub channel shared by all API instances.
const relayChannel = "taskboard:notify"

// envelope is the wire format published on the relay channel. Origin lets an
// instance skip its own messages, which it has already delivered locally.
type envelope struct {
	Origin    string      `json:"origin"`
	ProjectID string      `json:"project_id"`
	Event     ports.Event `json:"event"`
}

// Relay extends a local Notifier across API instances via Redis pub/sub.
// Each broadcast is delivered to local sockets immediately and published for
// the other instances; a subscriber loop replays foreign events into the
// local notifier. Publish and subscribe failures are logged and swallowed;
// the relay inherits the channel's best-effort contract.
type Relay struct {
	client *redis.Client
	origin string
	local  *Notifier
	logger zerolog.Logger
}

// NewRelay wraps local with cross-instance replication. origin must be
// unique per process (an instance id).
func NewRelay(client *redis.Client, origin string, local *Notifier, logger zerolog.Logger) *Relay {
	return &Relay{client: client, origin: origin, local: local, logger: logger}
}

func (r *Relay) Broadcast(ctx context.Context, projectID string, event ports.Event) {
	r.local.Broadcast(ctx, projectID, event)

	payload, err := json.Marshal(envelope{Origin: r.origin, ProjectID: projectID, Event: event})
	if err != nil {
		r.logger.Warn().Err(err).Str("type", event.Type).Msg("relay marshal failed")
		return
	}
	if err := r.client.Publish(ctx, relayChannel, payload).Err(); err != nil {
		r.logger.Warn().Err(err).Str("type", event.Type).Msg("relay publish failed")
	}
}

// Start subscribes to the relay channel and replays events published by
// other instances into the local notifier. It blocks until ctx is cancelled,
// so run it in its own goroutine.
func (r *Relay) Start(ctx context.Context) {
	sub := r.client.Subscribe(ctx, relayChannel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.logger.Warn().Err(err).Msg("relay received malformed envelope")
				continue
			}
			if env.Origin == r.origin {
				continue
			}
			r.local.Broadcast(ctx, env.ProjectID, env.Event)
		}
	}
}
