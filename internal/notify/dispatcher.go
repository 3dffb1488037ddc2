package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/api/metrics"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type notification struct {
	projectID string
	event     ports.Event
}

// Dispatcher decouples HTTP mutations from socket fan-out: Notify enqueues
// and returns immediately, and a fixed set of workers performs the actual
// broadcasts. Events are sharded by project id so all events of one project
// are delivered in order.
//
// Dispatcher implements ports.Notifier.
type Dispatcher struct {
	workers []chan notification
	sink    Broadcaster
	logger  zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Broadcaster, logger zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan notification, numWorkers),
		sink:    sink,
		logger:  logger,
	}
	for i := range d.workers {
		d.workers[i] = make(chan notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues an event for fan-out. It never blocks: when the shard's
// buffer is full the event is dropped. The stream is lossy; clients re-fetch
// state on reconnect.
func (d *Dispatcher) Notify(projectID string, event ports.Event) {
	n := notification{projectID: projectID, event: event}
	select {
	case d.workers[d.shardIndex(projectID)] <- n:
	default:
		metrics.NotificationsFailedTotal.WithLabelValues("queue_full").Inc()
		d.logger.Warn().
			Str("project_id", projectID).
			Str("type", event.Type).
			Msg("notification queue full, event dropped")
	}
}

// shardIndex maps a project id deterministically to a worker index.
func (d *Dispatcher) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.sink.Broadcast(ctx, n.projectID, n.event)
		}
	}
}
