package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type personalActivityStore interface {
	Save(ctx context.Context, activities []models.PersonalActivity) error
	List(ctx context.Context) ([]models.PersonalActivity, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PersonalActivityService manages the user's personal busy slots.
type PersonalActivityService struct {
	store    personalActivityStore
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPersonalActivityService constructs the service.
func NewPersonalActivityService(store personalActivityStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PersonalActivityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonalActivityService{store: store, metrics: metrics, validate: validate, logger: logger}
}

// Save validates and stores personal activities. Saving an activity again
// with the same name and slots changes nothing.
func (s *PersonalActivityService) Save(ctx context.Context, req dto.PersonalActivitiesRequest) ([]models.PersonalActivity, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid personal activities")
	}
	activities := make([]models.PersonalActivity, 0, len(req.Activities))
	for _, payload := range req.Activities {
		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "personal activity name is required")
		}
		meetings, err := parseMeetings(payload.Meetings)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("personal activity %q: %s", name, err))
		}
		activities = append(activities, models.NewPersonalActivity(name, meetings...))
	}

	start := time.Now()
	err := s.store.Save(ctx, activities)
	s.metrics.ObserveDBQuery("personal_activities_save", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to save personal activities")
	}
	s.logger.Info("personal activities saved", zap.Int("count", len(activities)))
	return activities, nil
}

// List returns every stored personal activity with its meetings.
func (s *PersonalActivityService) List(ctx context.Context) ([]models.PersonalActivity, error) {
	start := time.Now()
	activities, err := s.store.List(ctx)
	s.metrics.ObserveDBQuery("personal_activities_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list personal activities")
	}
	if activities == nil {
		activities = []models.PersonalActivity{}
	}
	return activities, nil
}

// Delete removes a personal activity by id.
func (s *PersonalActivityService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return appErrors.Internal(err, fmt.Sprintf("failed to delete personal activity %s", id))
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("personal activity %s not found", id))
	}
	return nil
}
