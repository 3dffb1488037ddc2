package domain

import (
	"errors"
	"time"
)

// TaskStatus is the Kanban column a task lives in.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidStatus = errors.New("invalid task status")

// Valid reports whether s is one of the three known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a single card on a project board.
type Task struct {
	ID          string     `json:"id" bson:"id"`
	ProjectID   string     `json:"project_id" bson:"project_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      TaskStatus `json:"status" bson:"status"`
	AssignedTo  string     `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
