package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/api/metrics"
	"github.com/kanbanhq/taskboard/internal/core/domain"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

// StatusMode selects how unknown task statuses are handled at write time.
type StatusMode string

const (
	// StatusModeCoerce silently maps unknown statuses to "not-started".
	StatusModeCoerce StatusMode = "coerce"
	// StatusModeStrict rejects unknown statuses as a validation error.
	StatusModeStrict StatusMode = "strict"
)

// TaskService implements task use cases. Every operation requires the caller
// to be a member of the parent project; non-members get ErrProjectNotFound.
type TaskService struct {
	tasks      ports.TaskRepository
	projects   ports.ProjectRepository
	activities ports.ActivityService
	notifier   ports.Notifier
	statusMode StatusMode
	logger     zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	activities ports.ActivityService,
	notifier ports.Notifier,
	statusMode StatusMode,
	logger zerolog.Logger,
) *TaskService {
	if statusMode != StatusModeStrict {
		statusMode = StatusModeCoerce
	}
	return &TaskService{
		tasks:      tasks,
		projects:   projects,
		activities: activities,
		notifier:   notifier,
		statusMode: statusMode,
		logger:     logger,
	}
}

func (s *TaskService) List(ctx context.Context, projectID, userID string) ([]*domain.Task, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := s.requireMember(ctx, input.ProjectID, input.UserID); err != nil {
		return nil, err
	}

	status, err := s.resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		CreatedBy:   input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()

	s.recordActivity(ctx, ports.RecordActivityInput{
		ProjectID: input.ProjectID,
		TaskID:    task.ID,
		UserID:    input.UserID,
		Action:    domain.ActionTaskCreated,
		Details:   fmt.Sprintf("Created task %q", task.Title),
	})
	s.notifier.Notify(input.ProjectID, ports.Event{Type: ports.EventTaskCreated, Data: task})

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, input ports.UpdateTaskInput) (*domain.Task, error) {
	if err := s.requireMember(ctx, input.ProjectID, input.UserID); err != nil {
		return nil, err
	}

	existing, err := s.tasks.FindByID(ctx, input.ProjectID, input.TaskID)
	if err != nil {
		return nil, err
	}

	update := ports.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
	}
	if input.Status != nil {
		status, err := s.resolveStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		update.Status = &status
	}

	updated, err := s.tasks.Update(ctx, input.ProjectID, input.TaskID, update)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	// Status moves get their own activity label so boards can render a
	// column-change history.
	if update.Status != nil {
		s.recordActivity(ctx, ports.RecordActivityInput{
			ProjectID: input.ProjectID,
			TaskID:    input.TaskID,
			UserID:    input.UserID,
			Action:    domain.ActionTaskStatusChanged,
			Details:   fmt.Sprintf("Changed task %q status to %s", existing.Title, *update.Status),
		})
	} else {
		s.recordActivity(ctx, ports.RecordActivityInput{
			ProjectID: input.ProjectID,
			TaskID:    input.TaskID,
			UserID:    input.UserID,
			Action:    domain.ActionTaskUpdated,
			Details:   fmt.Sprintf("Updated task %q", existing.Title),
		})
	}
	s.notifier.Notify(input.ProjectID, ports.Event{Type: ports.EventTaskUpdated, Data: updated})

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, projectID, taskID, userID string) error {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return err
	}

	existing, err := s.tasks.FindByID(ctx, projectID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, projectID, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.recordActivity(ctx, ports.RecordActivityInput{
		ProjectID: projectID,
		TaskID:    taskID,
		UserID:    userID,
		Action:    domain.ActionTaskDeleted,
		Details:   fmt.Sprintf("Deleted task %q", existing.Title),
	})
	s.notifier.Notify(projectID, ports.Event{
		Type: ports.EventTaskDeleted,
		Data: map[string]string{"task_id": taskID},
	})

	return nil
}

// resolveStatus applies the configured status mode. An empty status always
// resolves to the default column.
func (s *TaskService) resolveStatus(raw string) (domain.TaskStatus, error) {
	if raw == "" {
		return domain.StatusNotStarted, nil
	}
	status := domain.TaskStatus(raw)
	if status.Valid() {
		return status, nil
	}
	if s.statusMode == StatusModeStrict {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
	}
	s.logger.Debug().Str("status", raw).Msg("coercing unknown task status to default")
	return domain.StatusNotStarted, nil
}

func (s *TaskService) requireMember(ctx context.Context, projectID, userID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.HasMember(userID) {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (s *TaskService) recordActivity(ctx context.Context, input ports.RecordActivityInput) {
	if err := s.activities.Record(ctx, input); err != nil {
		s.logger.Warn().Err(err).
			Str("project_id", input.ProjectID).
			Str("action", input.Action).
			Msg("failed to record activity")
	}
}
