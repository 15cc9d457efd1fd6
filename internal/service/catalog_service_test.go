package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type importerStub struct {
	received *models.Catalog
	err      error
}

func (s *importerStub) Import(ctx context.Context, catalog models.Catalog) (models.ImportSummary, error) {
	if s.err != nil {
		return models.ImportSummary{}, s.err
	}
	s.received = &catalog
	return models.ImportSummary{CampusID: catalog.Campus.ID, Language: catalog.Language, Courses: len(catalog.Courses), Activities: len(catalog.Activities)}, nil
}

func validCatalogRequest() dto.CatalogImportRequest {
	optional := false
	return dto.CatalogImportRequest{
		Campus:    dto.CampusPayload{ID: 1, EnglishName: " Machon Lev ", HebrewName: "מכון לב"},
		Language:  "english",
		Semesters: []string{"fall", "SPRING"},
		Courses: []dto.CoursePayload{
			{Name: "Calculus I", CourseNumber: 120701, ParentCourseNumber: 1207, Semesters: []string{"Fall"}},
		},
		Activities: []dto.ActivityPayload{
			{Name: "Calculus I", Kind: "lecture", LecturerName: "Cohen", CourseNumber: 120701, ParentCourseNumber: 1207, ActivityID: "120701.01",
				Meetings: []dto.MeetingPayload{{Day: 1, StartTime: "9:00", EndTime: "11:00"}}},
			{Name: "Calculus I", Kind: "LAB", AttendanceRequired: &optional, CourseNumber: 120701, ParentCourseNumber: 1207, ActivityID: "120701.21"},
		},
	}
}

func newCatalogFixture(importer *importerStub, cacheRepo CacheRepository) *CatalogService {
	campuses := &campusStub{
		ids:      map[string]int64{"Machon Lev": 1},
		campuses: []models.Campus{{ID: 1, EnglishName: "Machon Lev", HebrewName: "מכון לב"}},
	}
	courses := &courseStub{
		active:     map[int64][]models.Course{1: {models.NewCourse("Calculus I", 120701, 1207)}},
		byLanguage: nil,
	}
	store := calculusCatalog()
	cacheSvc := NewCacheService(cacheRepo, nil, 0, zap.NewNop(), cacheRepo != nil)
	return NewCatalogService(importer, CatalogReaders{
		Campuses:   campuses,
		Courses:    courses,
		Activities: store,
		Meetings:   store,
		Semesters:  &semesterStub{semesters: []models.Semester{models.SemesterFall}},
	}, cacheSvc, nil, validator.New(), zap.NewNop())
}

func TestCatalogServiceImport(t *testing.T) {
	importer := &importerStub{}
	cacheRepo := newMemoryCache()
	cacheRepo.entries["planner:course_choices:machon_lev:en"] = map[string]models.CourseChoice{}
	svc := newCatalogFixture(importer, cacheRepo)

	summary, err := svc.Import(context.Background(), validCatalogRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Activities)

	catalog := importer.received
	require.NotNil(t, catalog)
	assert.Equal(t, models.LanguageEnglish, catalog.Language)
	assert.Equal(t, "Machon Lev", catalog.Campus.EnglishName)
	assert.Equal(t, []models.Semester{models.SemesterFall, models.SemesterSpring}, catalog.Semesters)
	assert.Equal(t, []models.Semester{models.SemesterFall}, catalog.Courses[0].Semesters)
	assert.Equal(t, models.ActivityLecture, catalog.Activities[0].Kind)
	assert.True(t, catalog.Activities[0].AttendanceRequired)
	assert.Equal(t, "09:00", catalog.Activities[0].Meetings[0].StartTime)
	assert.False(t, catalog.Activities[1].AttendanceRequired)
	assert.Equal(t, models.ActivityLab, catalog.Activities[1].Kind)

	assert.Equal(t, []string{CourseChoicesCachePattern()}, cacheRepo.deleted)
	assert.Empty(t, cacheRepo.entries)
}

func TestCatalogServiceImportValidation(t *testing.T) {
	svc := newCatalogFixture(&importerStub{}, nil)

	cases := map[string]func(*dto.CatalogImportRequest){
		"missing campus id": func(r *dto.CatalogImportRequest) { r.Campus.ID = 0 },
		"unknown language":  func(r *dto.CatalogImportRequest) { r.Language = "fr" },
		"unknown kind":      func(r *dto.CatalogImportRequest) { r.Activities[0].Kind = "WORKSHOP" },
		"bad semester":      func(r *dto.CatalogImportRequest) { r.Courses[0].Semesters = []string{"WINTER"} },
		"bad day":           func(r *dto.CatalogImportRequest) { r.Activities[0].Meetings[0].Day = 8 },
		"bad time":          func(r *dto.CatalogImportRequest) { r.Activities[0].Meetings[0].StartTime = "25:00" },
		"reversed meeting":  func(r *dto.CatalogImportRequest) { r.Activities[0].Meetings[0].EndTime = "08:00" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCatalogRequest()
			mutate(&req)
			_, err := svc.Import(context.Background(), req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestCatalogServiceImportFailure(t *testing.T) {
	svc := newCatalogFixture(&importerStub{err: errors.New("disk full")}, nil)

	_, err := svc.Import(context.Background(), validCatalogRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestCatalogServiceCampusesByLanguage(t *testing.T) {
	svc := newCatalogFixture(&importerStub{}, nil)

	items, err := svc.Campuses(context.Background(), models.LanguageHebrew)
	require.NoError(t, err)
	assert.Equal(t, []dto.CampusItem{{ID: 1, Name: "מכון לב"}}, items)

	_, err = svc.Campuses(context.Background(), "xx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCatalogServiceCourses(t *testing.T) {
	svc := newCatalogFixture(&importerStub{}, nil)

	active, err := svc.ActiveCourses(context.Background(), models.Scope{Campus: "Machon Lev", Language: models.LanguageEnglish})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = svc.ActiveCourses(context.Background(), models.Scope{Campus: "Elsewhere", Language: models.LanguageEnglish})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	all, err := svc.Courses(context.Background(), models.LanguageEnglish)
	require.NoError(t, err)
	assert.NotNil(t, all)
}

func TestCatalogServiceCourseActivities(t *testing.T) {
	svc := newCatalogFixture(&importerStub{}, nil)
	scope := models.Scope{Campus: "Machon Lev", Language: models.LanguageEnglish}

	activities, err := svc.CourseActivities(context.Background(), scope, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "L1", "L2", "O1", "P1", "P2", "S1"}, sortedIDs(activities))
	for _, activity := range activities {
		require.NotNil(t, activity.Meetings)
		if activity.ActivityID == "L1" {
			assert.Len(t, activity.Meetings, 1)
		}
	}

	named, err := svc.CourseActivities(context.Background(), scope, []string{" Calculus I "})
	require.NoError(t, err)
	assert.Len(t, named, 7)

	_, err = svc.CourseActivities(context.Background(), scope, []string{"Calculus I", "Poetry"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Contains(t, err.Error(), `"Poetry"`)

	_, err = svc.CourseActivities(context.Background(), models.Scope{Campus: "Elsewhere", Language: models.LanguageEnglish}, nil)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCatalogServiceSemesters(t *testing.T) {
	svc := newCatalogFixture(&importerStub{}, nil)

	semesters, err := svc.Semesters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Semester{models.SemesterFall}, semesters)
}
