package domain

import (
	"errors"
	"time"
)

// ErrProjectNotFound is returned both when a project does not exist and when
// the caller is not a member: membership doubles as the existence check, so
// non-members never learn whether a project id is real.
var ErrProjectNotFound = errors.New("project not found")

// Project is a Kanban board shared by its members. The creator is always the
// first entry of Members and every member has full access.
type Project struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Members     []string  `json:"members" bson:"members"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// HasMember reports whether userID appears in the membership list.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}
