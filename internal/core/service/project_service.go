package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/core/domain"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

// ProjectService implements project use cases. Activity records and
// notifications are best-effort side effects: their failures are logged and
// never fail the primary operation.
type ProjectService struct {
	projects   ports.ProjectRepository
	tasks      ports.TaskRepository
	users      ports.AuthRepository
	activities ports.ActivityService
	notifier   ports.Notifier
	logger     zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	users ports.AuthRepository,
	activities ports.ActivityService,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		tasks:      tasks,
		users:      users,
		activities: activities,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projects.ListByMember(ctx, userID)
}

func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Members:     []string{input.UserID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info().Str("project_id", project.ID).Str("user_id", input.UserID).Msg("project created")

	s.recordActivity(ctx, ports.RecordActivityInput{
		ProjectID: project.ID,
		UserID:    input.UserID,
		Action:    domain.ActionProjectCreated,
		Details:   fmt.Sprintf("Created project %q", project.Name),
	})
	s.notifier.Notify(project.ID, ports.Event{Type: ports.EventProjectCreated, Data: project})

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	return s.memberProject(ctx, projectID, userID)
}

func (s *ProjectService) Update(ctx context.Context, input ports.UpdateProjectInput) (*domain.Project, error) {
	if _, err := s.memberProject(ctx, input.ProjectID, input.UserID); err != nil {
		return nil, err
	}

	updated, err := s.projects.Update(ctx, input.ProjectID, ports.ProjectUpdate{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.recordActivity(ctx, ports.RecordActivityInput{
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		Action:    domain.ActionProjectUpdated,
		Details:   "Updated project details",
	})
	s.notifier.Notify(input.ProjectID, ports.Event{Type: ports.EventProjectUpdated, Data: updated})

	return updated, nil
}

func (s *ProjectService) AddMember(ctx context.Context, projectID, userID, memberEmail string) (*domain.Project, error) {
	if _, err := s.memberProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	member, err := s.users.FindByEmail(ctx, memberEmail)
	if err != nil {
		return nil, err
	}

	updated, err := s.projects.AddMember(ctx, projectID, member.ID)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.recordActivity(ctx, ports.RecordActivityInput{
		ProjectID: projectID,
		UserID:    userID,
		Action:    domain.ActionMemberAdded,
		Details:   fmt.Sprintf("Added %s to the project", member.Name),
	})
	s.notifier.Notify(projectID, ports.Event{Type: ports.EventProjectUpdated, Data: updated})

	return updated, nil
}

// Delete removes the project and cascades to its tasks and activity log.
// The cascade is a sequence of single-collection deletes: a crash in between
// can leave orphaned tasks or activities, which is an accepted limitation of
// running against standalone MongoDB.
func (s *ProjectService) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := s.memberProject(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := s.tasks.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	if err := s.activities.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project activities: %w", err)
	}

	s.logger.Info().Str("project_id", projectID).Str("user_id", userID).Msg("project deleted")

	// No broadcast: the member list is gone with the project document, so
	// the notifier would find nobody to deliver to.
	return nil
}

// memberProject loads a project and enforces membership. Non-members get
// ErrProjectNotFound so they cannot probe for existing project ids.
func (s *ProjectService) memberProject(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(userID) {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) recordActivity(ctx context.Context, input ports.RecordActivityInput) {
	if err := s.activities.Record(ctx, input); err != nil {
		s.logger.Warn().Err(err).
			Str("project_id", input.ProjectID).
			Str("action", input.Action).
			Msg("failed to record activity")
	}
}
