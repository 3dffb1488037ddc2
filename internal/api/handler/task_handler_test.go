package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/kanbanhq/taskboard/internal/core/domain"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

type stubTaskService struct {
	tasks     []*domain.Task
	lastInput ports.CreateTaskInput
	lastPatch ports.UpdateTaskInput
	deleted   []string
	err       error
}

func (s *stubTaskService) List(_ context.Context, _, _ string) ([]*domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *stubTaskService) Create(_ context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastInput = input
	return &domain.Task{
		ID:        "t1",
		ProjectID: input.ProjectID,
		Title:     input.Title,
		Status:    domain.StatusNotStarted,
		CreatedBy: input.UserID,
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubTaskService) Update(_ context.Context, input ports.UpdateTaskInput) (*domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastPatch = input
	return &domain.Task{ID: input.TaskID, ProjectID: input.ProjectID, Status: domain.StatusInProgress}, nil
}

func (s *stubTaskService) Delete(_ context.Context, _, taskID, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, taskID)
	return nil
}

func TestTaskHandler_Create(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/projects/p1/tasks",
		`{"title":"T1","description":"d","status":"in-progress"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.ProjectID != "p1" || svc.lastInput.UserID != "u1" || svc.lastInput.Status != "in-progress" {
		t.Fatalf("unexpected service input: %+v", svc.lastInput)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})

	c, rec := newTestContext(t, http.MethodPost, "/projects/p1/tasks", `{"description":"d"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTaskHandler_Create_NonMemberErrorPassesThrough(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{err: domain.ErrProjectNotFound})

	c, _ := newTestContext(t, http.MethodPost, "/projects/p1/tasks", `{"title":"T1"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "intruder")

	// Domain errors are left for the central error handler to map.
	if err := h.Create(c); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskHandler_List(t *testing.T) {
	svc := &stubTaskService{tasks: []*domain.Task{
		{ID: "t1", ProjectID: "p1", Title: "T1", Status: domain.StatusDone},
	}}
	h := NewTaskHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/projects/p1/tasks", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u1")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestTaskHandler_Update_OnlyProvidedFields(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/projects/p1/tasks/t1", `{"status":"done"}`)
	c.SetParamNames("id", "taskId")
	c.SetParamValues("p1", "t1")
	c.Set("user_id", "u1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastPatch.Status == nil || *svc.lastPatch.Status != "done" {
		t.Fatalf("expected status pointer set to done, got %+v", svc.lastPatch.Status)
	}
	if svc.lastPatch.Title != nil || svc.lastPatch.Description != nil {
		t.Fatalf("absent fields must stay nil: %+v", svc.lastPatch)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/projects/p1/tasks/t1", "")
	c.SetParamNames("id", "taskId")
	c.SetParamValues("p1", "t1")
	c.Set("user_id", "u1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "t1" {
		t.Fatalf("expected t1 deleted, got %v", svc.deleted)
	}
}

func TestTaskHandler_Delete_UnknownTask(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{err: domain.ErrTaskNotFound})

	c, _ := newTestContext(t, http.MethodDelete, "/projects/p1/tasks/nope", "")
	c.SetParamNames("id", "taskId")
	c.SetParamValues("p1", "nope")
	c.Set("user_id", "u1")

	if err := h.Delete(c); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
