package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/models"
	"github.com/noah-isme/course-planner-api/pkg/cache"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type activeCourseLister interface {
	ListActive(ctx context.Context, campusID int64, language models.Language) ([]models.Course, error)
}

type lecturerRoleLister interface {
	ListByCourse(ctx context.Context, course models.Course, campusID int64, language models.Language) ([]models.LecturerRole, error)
}

// BuildCourseChoices indexes the lecturers of each course by name. Every
// course name appears exactly once; courses sharing a name are merged and a
// course without roles gets two empty collections.
func BuildCourseChoices(courses []models.Course, roles map[models.CourseKey][]models.LecturerRole) map[string]models.CourseChoice {
	type lecturerSets struct {
		lecture  map[string]struct{}
		practice map[string]struct{}
	}
	sets := make(map[string]*lecturerSets, len(courses))
	for _, course := range courses {
		entry, ok := sets[course.Name]
		if !ok {
			entry = &lecturerSets{lecture: map[string]struct{}{}, practice: map[string]struct{}{}}
			sets[course.Name] = entry
		}
		for _, role := range roles[course.Key()] {
			if role.IsLecture {
				entry.lecture[role.LecturerName] = struct{}{}
			} else {
				entry.practice[role.LecturerName] = struct{}{}
			}
		}
	}

	choices := make(map[string]models.CourseChoice, len(sets))
	for name, entry := range sets {
		choices[name] = models.NewCourseChoice(name, setKeys(entry.lecture), setKeys(entry.practice))
	}
	return choices
}

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}

// CourseChoiceConfig tunes course choice caching.
type CourseChoiceConfig struct {
	CacheTTL time.Duration
}

// CourseChoiceService builds the choice index for a scope from stored data.
type CourseChoiceService struct {
	campuses campusResolver
	courses  activeCourseLister
	roles    lecturerRoleLister
	cache    *CacheService
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
	cfg      CourseChoiceConfig
}

// NewCourseChoiceService constructs the service. cache and metrics may be nil.
func NewCourseChoiceService(campuses campusResolver, courses activeCourseLister, roles lecturerRoleLister, cacheSvc *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg CourseChoiceConfig) *CourseChoiceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseChoiceService{
		campuses: campuses,
		courses:  courses,
		roles:    roles,
		cache:    cacheSvc,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
		cfg:      cfg,
	}
}

// CourseChoicesCacheKey is the cache key of the full index of a scope.
func CourseChoicesCacheKey(scope models.Scope) string {
	return cache.Key("course_choices", scope.Campus, scope.Language.ShortName())
}

// CourseChoicesCachePattern matches every cached index.
func CourseChoicesCachePattern() string {
	return cache.Key("course_choices", "*")
}

// Build returns the choice index for the active courses of the scope. When
// courseNames is non-empty only those courses are indexed and each must
// exist in the scope.
func (s *CourseChoiceService) Build(ctx context.Context, scope models.Scope, courseNames []string) (map[string]models.CourseChoice, error) {
	if err := validateScope(s.validate, scope); err != nil {
		return nil, err
	}
	fullIndex := len(courseNames) == 0

	if fullIndex && s.cache.Enabled() {
		var cached map[string]models.CourseChoice
		if hit, err := s.cache.Get(ctx, CourseChoicesCacheKey(scope), &cached); err == nil && hit {
			return cached, nil
		}
	}

	campusID, err := resolveCampus(ctx, s.campuses, s.metrics, scope)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	courses, err := s.courses.ListActive(ctx, campusID, scope.Language)
	s.metrics.ObserveDBQuery("courses_active", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses for "+scopeContext(scope))
	}

	if !fullIndex {
		courses, err = selectCourses(courses, courseNames, scope)
		if err != nil {
			return nil, err
		}
	}

	roles := make(map[models.CourseKey][]models.LecturerRole, len(courses))
	for _, course := range courses {
		start := time.Now()
		courseRoles, err := s.roles.ListByCourse(ctx, course, campusID, scope.Language)
		s.metrics.ObserveDBQuery("lecturer_roles", time.Since(start))
		if err != nil {
			return nil, appErrors.Internal(err, fmt.Sprintf("failed to load lecturers of course %q at %s", course.Name, scopeContext(scope)))
		}
		roles[course.Key()] = append(roles[course.Key()], courseRoles...)
	}

	choices := BuildCourseChoices(courses, roles)

	if fullIndex && s.cache.Enabled() {
		if err := s.cache.Set(ctx, CourseChoicesCacheKey(scope), choices, s.cfg.CacheTTL); err != nil {
			s.logger.Debug("course choices not cached", zap.String("campus", scope.Campus), zap.Error(err))
		}
	}
	s.logger.Debug("course choices built",
		zap.String("campus", scope.Campus),
		zap.String("language", scope.Language.ShortName()),
		zap.Int("courses", len(choices)))
	return choices, nil
}

// selectCourses keeps the requested course names; every name must match an
// active course of the scope.
func selectCourses(courses []models.Course, names []string, scope models.Scope) ([]models.Course, error) {
	byName := make(map[string][]models.Course, len(courses))
	for _, course := range courses {
		byName[course.Name] = append(byName[course.Name], course)
	}

	requested := append([]string(nil), names...)
	sort.Strings(requested)
	selected := make([]models.Course, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		matches, ok := byName[name]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %q not found at %s", name, scopeContext(scope)))
		}
		selected = append(selected, matches...)
	}
	return selected, nil
}
