package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type choiceActivityLister interface {
	ListByChoice(ctx context.Context, courseName string, campusID int64, language models.Language, lecture, practice models.LecturerFilter) ([]models.AcademicActivity, error)
}

type activityMeetingLister interface {
	ListByActivity(ctx context.Context, activityID string, campusID int64, language models.Language) ([]models.Meeting, error)
}

// ActivityRetrievalService loads the activities that satisfy a set of
// course choices, with their meetings attached.
type ActivityRetrievalService struct {
	campuses   campusResolver
	activities choiceActivityLister
	meetings   activityMeetingLister
	metrics    *MetricsService
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewActivityRetrievalService constructs the service.
func NewActivityRetrievalService(campuses campusResolver, activities choiceActivityLister, meetings activityMeetingLister, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ActivityRetrievalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityRetrievalService{
		campuses:   campuses,
		activities: activities,
		meetings:   meetings,
		metrics:    metrics,
		validate:   validate,
		logger:     logger,
	}
}

// Retrieve returns, course by course in name order, every activity of the
// scope whose lecturer passes the choice filter of its kind group. An empty
// lecturer selection accepts any lecturer. Each activity appears once.
func (s *ActivityRetrievalService) Retrieve(ctx context.Context, choices map[string]models.CourseChoice, scope models.Scope) ([]models.AcademicActivity, error) {
	if err := validateScope(s.validate, scope); err != nil {
		return nil, err
	}
	campusID, err := resolveCampus(ctx, s.campuses, s.metrics, scope)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(choices))
	for name := range choices {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]models.AcademicActivity, 0)
	seen := make(map[models.ActivityKey]struct{})
	for _, name := range names {
		choice := choices[name]

		start := time.Now()
		activities, err := s.activities.ListByChoice(ctx, name, campusID, scope.Language, choice.LectureFilter(), choice.PracticeFilter())
		s.metrics.ObserveDBQuery("activities_by_choice", time.Since(start))
		if err != nil {
			return nil, appErrors.Internal(err, fmt.Sprintf("failed to load activities of course %q at %s", name, scopeContext(scope)))
		}

		for _, activity := range activities {
			if _, dup := seen[activity.Key()]; dup {
				continue
			}
			seen[activity.Key()] = struct{}{}

			start := time.Now()
			meetings, err := s.meetings.ListByActivity(ctx, activity.ActivityID, activity.CampusID, activity.Language)
			s.metrics.ObserveDBQuery("meetings_by_activity", time.Since(start))
			if err != nil {
				return nil, appErrors.Internal(err, fmt.Sprintf("failed to load meetings of activity %s of course %q at %s", activity.ActivityID, name, scopeContext(scope)))
			}
			if meetings == nil {
				meetings = []models.Meeting{}
			}
			activity.Meetings = meetings
			result = append(result, activity)
		}
	}

	s.metrics.RecordActivitiesRetrieved(scope.Language.ShortName(), len(result))
	s.logger.Debug("activities retrieved",
		zap.String("campus", scope.Campus),
		zap.String("language", scope.Language.ShortName()),
		zap.Int("courses", len(names)),
		zap.Int("activities", len(result)))
	return result, nil
}
