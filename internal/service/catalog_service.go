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

type catalogImporter interface {
	Import(ctx context.Context, catalog models.Catalog) (models.ImportSummary, error)
}

type catalogCampusReader interface {
	campusResolver
	List(ctx context.Context) ([]models.Campus, error)
}

type catalogCourseReader interface {
	activeCourseLister
	ListByLanguage(ctx context.Context, language models.Language) ([]models.Course, error)
}

type courseActivityLister interface {
	ListByCourses(ctx context.Context, campusID int64, language models.Language, parentCourseNumbers []int64) ([]models.AcademicActivity, error)
}

type semesterLister interface {
	List(ctx context.Context) ([]models.Semester, error)
}

const clockLayout = "15:04"

// CatalogService imports catalogs and serves catalog reads.
type CatalogService struct {
	importer   catalogImporter
	campuses   catalogCampusReader
	courses    catalogCourseReader
	activities courseActivityLister
	meetings   activityMeetingLister
	semesters  semesterLister
	cache      *CacheService
	metrics    *MetricsService
	validate   *validator.Validate
	logger     *zap.Logger
}

// CatalogReaders are the stores behind the catalog reads.
type CatalogReaders struct {
	Campuses   catalogCampusReader
	Courses    catalogCourseReader
	Activities courseActivityLister
	Meetings   activityMeetingLister
	Semesters  semesterLister
}

// NewCatalogService constructs the service.
func NewCatalogService(importer catalogImporter, readers CatalogReaders, cacheSvc *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		importer:   importer,
		campuses:   readers.Campuses,
		courses:    readers.Courses,
		activities: readers.Activities,
		meetings:   readers.Meetings,
		semesters:  readers.Semesters,
		cache:      cacheSvc,
		metrics:    metrics,
		validate:   validate,
		logger:     logger,
	}
}

// Import validates and stores a catalog, then drops every cached choice
// index.
func (s *CatalogService) Import(ctx context.Context, req dto.CatalogImportRequest) (*models.ImportSummary, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid catalog payload")
	}
	catalog, err := toCatalog(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	start := time.Now()
	summary, err := s.importer.Import(ctx, catalog)
	s.metrics.ObserveDBQuery("catalog_import", time.Since(start))
	s.metrics.RecordCatalogImport(catalog.Language.ShortName(), err == nil)
	if err != nil {
		return nil, appErrors.Internal(err, fmt.Sprintf("failed to import catalog of campus %q in language %s", catalog.Campus.EnglishName, catalog.Language))
	}

	if err := s.cache.Invalidate(ctx, CourseChoicesCachePattern()); err != nil {
		s.logger.Warn("course choices cache not invalidated after import", zap.Error(err))
	}
	s.logger.Info("catalog imported",
		zap.Int64("campus_id", summary.CampusID),
		zap.String("language", summary.Language.ShortName()),
		zap.Int("courses", summary.Courses),
		zap.Int("activities", summary.Activities),
		zap.Int("meetings", summary.Meetings))
	return &summary, nil
}

// Campuses lists campuses named in the requested language.
func (s *CatalogService) Campuses(ctx context.Context, language models.Language) ([]dto.CampusItem, error) {
	if !language.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a supported language is required")
	}
	campuses, err := s.campuses.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list campuses")
	}
	items := make([]dto.CampusItem, 0, len(campuses))
	for _, campus := range campuses {
		items = append(items, dto.CampusItem{ID: campus.ID, Name: campus.NameFor(language)})
	}
	return items, nil
}

// ActiveCourses lists the courses with at least one activity in scope.
func (s *CatalogService) ActiveCourses(ctx context.Context, scope models.Scope) ([]models.Course, error) {
	if err := validateScope(s.validate, scope); err != nil {
		return nil, err
	}
	campusID, err := resolveCampus(ctx, s.campuses, s.metrics, scope)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.ListActive(ctx, campusID, scope.Language)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses for "+scopeContext(scope))
	}
	return nonNilCourses(courses), nil
}

// Courses lists every stored course of a language with its semesters.
func (s *CatalogService) Courses(ctx context.Context, language models.Language) ([]models.Course, error) {
	if !language.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a supported language is required")
	}
	courses, err := s.courses.ListByLanguage(ctx, language)
	if err != nil {
		return nil, appErrors.Internal(err, fmt.Sprintf("failed to list courses in language %s", language))
	}
	return nonNilCourses(courses), nil
}

// Semesters lists the semester dictionary.
func (s *CatalogService) Semesters(ctx context.Context) ([]models.Semester, error) {
	semesters, err := s.semesters.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list semesters")
	}
	if semesters == nil {
		semesters = []models.Semester{}
	}
	return semesters, nil
}

// CourseActivities returns every activity of the named courses in scope with
// meetings attached, regardless of lecturer. No names means every course
// offered in scope; an unknown name is NotFound.
func (s *CatalogService) CourseActivities(ctx context.Context, scope models.Scope, courseNames []string) ([]models.AcademicActivity, error) {
	if err := validateScope(s.validate, scope); err != nil {
		return nil, err
	}
	campusID, err := resolveCampus(ctx, s.campuses, s.metrics, scope)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	courses, err := s.courses.ListActive(ctx, campusID, scope.Language)
	s.metrics.ObserveDBQuery("active_courses", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses for "+scopeContext(scope))
	}
	parents, err := parentNumbers(courses, courseNames, scope)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	activities, err := s.activities.ListByCourses(ctx, campusID, scope.Language, parents)
	s.metrics.ObserveDBQuery("activities_by_courses", time.Since(start))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load course activities for "+scopeContext(scope))
	}

	result := make([]models.AcademicActivity, 0, len(activities))
	for _, activity := range activities {
		meetings, err := s.meetings.ListByActivity(ctx, activity.ActivityID, campusID, scope.Language)
		if err != nil {
			return nil, appErrors.Internal(err, fmt.Sprintf("failed to load meetings of activity %s at %s", activity.ActivityID, scopeContext(scope)))
		}
		if meetings == nil {
			meetings = []models.Meeting{}
		}
		activity.Meetings = meetings
		result = append(result, activity)
	}
	return result, nil
}

// parentNumbers selects the parent course numbers of the named courses.
// Courses sharing a name contribute all of their numbers.
func parentNumbers(courses []models.Course, names []string, scope models.Scope) ([]int64, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			wanted[name] = false
		}
	}
	parents := make([]int64, 0, len(courses))
	for _, course := range courses {
		if len(wanted) > 0 {
			if _, ok := wanted[course.Name]; !ok {
				continue
			}
			wanted[course.Name] = true
		}
		parents = append(parents, course.ParentCourseNumber)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if found, ok := wanted[name]; ok && !found {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %q not found at %s", name, scopeContext(scope)))
		}
	}
	return parents, nil
}

func nonNilCourses(courses []models.Course) []models.Course {
	if courses == nil {
		return []models.Course{}
	}
	return courses
}

func toCatalog(req dto.CatalogImportRequest) (models.Catalog, error) {
	language, err := models.ParseLanguage(req.Language)
	if err != nil {
		return models.Catalog{}, err
	}
	catalog := models.Catalog{
		Campus: models.Campus{
			ID:          req.Campus.ID,
			EnglishName: strings.TrimSpace(req.Campus.EnglishName),
			HebrewName:  strings.TrimSpace(req.Campus.HebrewName),
		},
		Language:   language,
		Courses:    make([]models.Course, 0, len(req.Courses)),
		Activities: make([]models.AcademicActivity, 0, len(req.Activities)),
	}

	if catalog.Semesters, err = parseSemesters(req.Semesters); err != nil {
		return models.Catalog{}, err
	}
	for _, payload := range req.Courses {
		semesters, err := parseSemesters(payload.Semesters)
		if err != nil {
			return models.Catalog{}, fmt.Errorf("course %q: %w", payload.Name, err)
		}
		catalog.Courses = append(catalog.Courses, models.NewCourse(strings.TrimSpace(payload.Name), payload.CourseNumber, payload.ParentCourseNumber, semesters...))
	}

	for _, payload := range req.Activities {
		kind, err := models.ParseActivityKind(payload.Kind)
		if err != nil {
			return models.Catalog{}, fmt.Errorf("activity %s: %w", payload.ActivityID, err)
		}
		attendance := true
		if payload.AttendanceRequired != nil {
			attendance = *payload.AttendanceRequired
		}
		activity := models.AcademicActivity{
			Name:               strings.TrimSpace(payload.Name),
			Kind:               kind,
			AttendanceRequired: attendance,
			LecturerName:       strings.TrimSpace(payload.LecturerName),
			CourseNumber:       payload.CourseNumber,
			ParentCourseNumber: payload.ParentCourseNumber,
			Location:           payload.Location,
			ActivityID:         strings.TrimSpace(payload.ActivityID),
			Description:        payload.Description,
			CurrentCapacity:    payload.CurrentCapacity,
			MaxCapacity:        payload.MaxCapacity,
			ActualCourseNumber: payload.ActualCourseNumber,
			CampusID:           catalog.Campus.ID,
			Language:           language,
		}
		if activity.Meetings, err = parseMeetings(payload.Meetings); err != nil {
			return models.Catalog{}, fmt.Errorf("activity %s: %w", payload.ActivityID, err)
		}
		catalog.Activities = append(catalog.Activities, activity)
	}
	return catalog, nil
}

// parseMeetings normalises HH:MM times and rejects slots that do not end
// after they start.
func parseMeetings(payloads []dto.MeetingPayload) ([]models.Meeting, error) {
	meetings := make([]models.Meeting, 0, len(payloads))
	for _, meeting := range payloads {
		start, errStart := time.Parse(clockLayout, meeting.StartTime)
		end, errEnd := time.Parse(clockLayout, meeting.EndTime)
		if errStart != nil || errEnd != nil {
			return nil, fmt.Errorf("meeting times must be HH:MM")
		}
		if !end.After(start) {
			return nil, fmt.Errorf("meeting ends at %s before it starts at %s", meeting.EndTime, meeting.StartTime)
		}
		meetings = append(meetings, models.Meeting{
			Day:       meeting.Day,
			StartTime: start.Format(clockLayout),
			EndTime:   end.Format(clockLayout),
		})
	}
	return meetings, nil
}

func parseSemesters(names []string) ([]models.Semester, error) {
	semesters := make([]models.Semester, 0, len(names))
	for _, name := range names {
		semester, err := models.ParseSemester(name)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, semester)
	}
	return semesters, nil
}
