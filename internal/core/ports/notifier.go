package ports

// Event types pushed over the socket channel.
const (
	EventProjectCreated = "project_created"
	EventProjectUpdated = "project_updated"
	EventTaskCreated    = "task_created"
	EventTaskUpdated    = "task_updated"
	EventTaskDeleted    = "task_deleted"
	EventActivity       = "activity"
)

// Event is the JSON message pushed to project members over their sockets.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Notifier fans an event out to all live sockets of a project's members.
// Delivery is fire-and-forget: implementations must never block the caller
// on socket I/O and must never surface delivery failures.
type Notifier interface {
	Notify(projectID string, event Event)
}
