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

// activityPageLimit caps how many log entries a single read returns.
const activityPageLimit = 100

// ActivityService implements the append-only project activity log. Every
// recorded entry is also broadcast to the project's members as an "activity"
// event.
type ActivityService struct {
	repo     ports.ActivityRepository
	projects ports.ProjectRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewActivityService(
	repo ports.ActivityRepository,
	projects ports.ProjectRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *ActivityService {
	return &ActivityService{repo: repo, projects: projects, notifier: notifier, logger: logger}
}

func (s *ActivityService) List(ctx context.Context, projectID, userID string) ([]*domain.Activity, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID, activityPageLimit)
}

func (s *ActivityService) Create(ctx context.Context, input ports.RecordActivityInput) (*domain.Activity, error) {
	if err := s.requireMember(ctx, input.ProjectID, input.UserID); err != nil {
		return nil, err
	}
	return s.record(ctx, input)
}

func (s *ActivityService) Record(ctx context.Context, input ports.RecordActivityInput) error {
	_, err := s.record(ctx, input)
	return err
}

func (s *ActivityService) DeleteByProject(ctx context.Context, projectID string) error {
	return s.repo.DeleteByProject(ctx, projectID)
}

func (s *ActivityService) record(ctx context.Context, input ports.RecordActivityInput) (*domain.Activity, error) {
	activity := &domain.Activity{
		ID:        uuid.NewString(),
		ProjectID: input.ProjectID,
		TaskID:    input.TaskID,
		UserID:    input.UserID,
		Action:    input.Action,
		Details:   input.Details,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, activity); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivitiesRecordedTotal.WithLabelValues(activity.Action).Inc()
	s.notifier.Notify(input.ProjectID, ports.Event{Type: ports.EventActivity, Data: activity})

	return activity, nil
}

func (s *ActivityService) requireMember(ctx context.Context, projectID, userID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.HasMember(userID) {
		return domain.ErrProjectNotFound
	}
	return nil
}
