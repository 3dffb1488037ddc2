package service

import (
	"context"
	"errors"
	"sync"

	"github.com/kanbanhq/taskboard/internal/core/domain"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

// Shared in-memory stubs for the service tests.

type stubProjectRepo struct {
	projects map[string]*domain.Project
}

func newStubProjectRepo(projects ...*domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[string]*domain.Project)}
	for _, p := range projects {
		clone := *p
		r.projects[p.ID] = &clone
	}
	return r
}

func (r *stubProjectRepo) Insert(_ context.Context, p *domain.Project) error {
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) ListByMember(_ context.Context, userID string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if p.HasMember(userID) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, update ports.ProjectUpdate) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) AddMember(_ context.Context, id, userID string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if !p.HasMember(userID) {
		p.Members = append(p.Members, userID)
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubTaskRepo struct {
	tasks           map[string]*domain.Task
	deletedProjects []string
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Insert(_ context.Context, t *domain.Task) error {
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, projectID, taskID string) (*domain.Task, error) {
	if t, ok := r.tasks[taskID]; ok && t.ProjectID == projectID {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, projectID, taskID string, update ports.TaskUpdate) (*domain.Task, error) {
	t, ok := r.tasks[taskID]
	if !ok || t.ProjectID != projectID {
		return nil, domain.ErrTaskNotFound
	}
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.AssignedTo != nil {
		t.AssignedTo = *update.AssignedTo
	}
	if update.DueDate != nil {
		due := *update.DueDate
		t.DueDate = &due
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, projectID, taskID string) error {
	if t, ok := r.tasks[taskID]; ok && t.ProjectID == projectID {
		delete(r.tasks, taskID)
		return nil
	}
	return domain.ErrTaskNotFound
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) error {
	r.deletedProjects = append(r.deletedProjects, projectID)
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

// stubActivities implements ports.ActivityService for the project and task
// service tests.
type stubActivities struct {
	recorded        []ports.RecordActivityInput
	deletedProjects []string
	failRecord      bool
}

func (s *stubActivities) List(_ context.Context, _, _ string) ([]*domain.Activity, error) {
	return nil, nil
}

func (s *stubActivities) Create(_ context.Context, _ ports.RecordActivityInput) (*domain.Activity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubActivities) Record(_ context.Context, input ports.RecordActivityInput) error {
	if s.failRecord {
		return errors.New("activity store down")
	}
	s.recorded = append(s.recorded, input)
	return nil
}

func (s *stubActivities) DeleteByProject(_ context.Context, projectID string) error {
	s.deletedProjects = append(s.deletedProjects, projectID)
	return nil
}

type notified struct {
	projectID string
	event     ports.Event
}

type stubNotifier struct {
	mu     sync.Mutex
	events []notified
}

func (n *stubNotifier) Notify(projectID string, event ports.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notified{projectID: projectID, event: event})
}

func (n *stubNotifier) byType(eventType string) []notified {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notified
	for _, e := range n.events {
		if e.event.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type stubActivityRepo struct {
	activities      []*domain.Activity
	deletedProjects []string
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	clone := *a
	r.activities = append(r.activities, &clone)
	return nil
}

func (r *stubActivityRepo) ListByProject(_ context.Context, projectID string, limit int) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for i := len(r.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if r.activities[i].ProjectID == projectID {
			clone := *r.activities[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) DeleteByProject(_ context.Context, projectID string) error {
	r.deletedProjects = append(r.deletedProjects, projectID)
	return nil
}
