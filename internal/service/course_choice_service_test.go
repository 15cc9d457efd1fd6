package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

func TestBuildCourseChoicesSplitsRoles(t *testing.T) {
	calculus := models.NewCourse("Calculus I", 120701, 1207)
	physics := models.NewCourse("Physics", 130101, 1301)
	roles := map[models.CourseKey][]models.LecturerRole{
		calculus.Key(): {
			{LecturerName: "Cohen", IsLecture: true},
			{LecturerName: "Levi", IsLecture: true},
			{LecturerName: "Adler", IsLecture: false},
			{LecturerName: "Cohen", IsLecture: true},
		},
	}

	choices := BuildCourseChoices([]models.Course{calculus, physics}, roles)

	require.Len(t, choices, 2)
	assert.Equal(t, []string{"Cohen", "Levi"}, choices["Calculus I"].LectureLecturers)
	assert.Equal(t, []string{"Adler"}, choices["Calculus I"].PracticeLecturers)
	assert.Equal(t, "Physics", choices["Physics"].CourseName)
	assert.Empty(t, choices["Physics"].LectureLecturers)
	assert.NotNil(t, choices["Physics"].PracticeLecturers)
}

func TestBuildCourseChoicesMergesSameName(t *testing.T) {
	first := models.NewCourse("Algebra", 100, 10)
	second := models.NewCourse("Algebra", 200, 20)
	roles := map[models.CourseKey][]models.LecturerRole{
		first.Key():  {{LecturerName: "Berg", IsLecture: true}},
		second.Key(): {{LecturerName: "Adler", IsLecture: true}, {LecturerName: "Dror", IsLecture: false}},
	}

	forward := BuildCourseChoices([]models.Course{first, second}, roles)
	backward := BuildCourseChoices([]models.Course{second, first}, roles)

	require.Len(t, forward, 1)
	assert.Equal(t, []string{"Adler", "Berg"}, forward["Algebra"].LectureLecturers)
	assert.Equal(t, []string{"Dror"}, forward["Algebra"].PracticeLecturers)
	assert.Equal(t, forward, backward)
}

func TestBuildCourseChoicesIdempotent(t *testing.T) {
	course := models.NewCourse("Algebra", 100, 10)
	roles := map[models.CourseKey][]models.LecturerRole{course.Key(): {{LecturerName: "Berg", IsLecture: true}}}

	assert.Equal(t, BuildCourseChoices([]models.Course{course}, roles), BuildCourseChoices([]models.Course{course}, roles))
	assert.Empty(t, BuildCourseChoices(nil, nil))
}

func newCourseChoiceFixture(cacheRepo CacheRepository) (*CourseChoiceService, *courseStub) {
	courses := &courseStub{active: map[int64][]models.Course{
		1: {models.NewCourse("Calculus I", 120701, 1207), models.NewCourse("Physics", 130101, 1301)},
	}}
	roles := &roleStub{roles: map[string][]models.LecturerRole{
		"Calculus I": {{LecturerName: "Cohen", IsLecture: true}, {LecturerName: "Adler", IsLecture: false}},
	}}
	var cacheSvc *CacheService
	if cacheRepo != nil {
		cacheSvc = NewCacheService(cacheRepo, nil, 0, zap.NewNop(), true)
	}
	svc := NewCourseChoiceService(&campusStub{ids: map[string]int64{"Main": 1}}, courses, roles, cacheSvc, nil, validator.New(), zap.NewNop(), CourseChoiceConfig{})
	return svc, courses
}

func TestCourseChoiceServiceBuildAll(t *testing.T) {
	svc, _ := newCourseChoiceFixture(nil)

	choices, err := svc.Build(context.Background(), models.Scope{Campus: "Main", Language: models.LanguageEnglish}, nil)
	require.NoError(t, err)
	require.Len(t, choices, 2)
	assert.Equal(t, []string{"Cohen"}, choices["Calculus I"].LectureLecturers)
	assert.Empty(t, choices["Physics"].PracticeLecturers)
}

func TestCourseChoiceServiceBuildSelected(t *testing.T) {
	svc, _ := newCourseChoiceFixture(nil)

	choices, err := svc.Build(context.Background(), models.Scope{Campus: "Main", Language: models.LanguageEnglish}, []string{"Physics", "Physics"})
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Contains(t, choices, "Physics")
}

func TestCourseChoiceServiceUnknownCourse(t *testing.T) {
	svc, _ := newCourseChoiceFixture(nil)

	_, err := svc.Build(context.Background(), models.Scope{Campus: "Main", Language: models.LanguageEnglish}, []string{"Chemistry"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Contains(t, err.Error(), `"Chemistry"`)
	assert.Contains(t, err.Error(), `"Main"`)
	assert.Contains(t, err.Error(), "en")
}

func TestCourseChoiceServiceUnknownCampus(t *testing.T) {
	svc, _ := newCourseChoiceFixture(nil)

	_, err := svc.Build(context.Background(), models.Scope{Campus: "Nowhere", Language: models.LanguageHebrew}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseChoiceServiceInvalidScope(t *testing.T) {
	svc, _ := newCourseChoiceFixture(nil)

	_, err := svc.Build(context.Background(), models.Scope{Campus: "Main", Language: "fr"}, nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseChoiceServiceRepositoryFailure(t *testing.T) {
	svc, courses := newCourseChoiceFixture(nil)
	courses.err = errors.New("database is locked")

	_, err := svc.Build(context.Background(), models.Scope{Campus: "Main", Language: models.LanguageEnglish}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestCourseChoiceServiceCachesFullIndex(t *testing.T) {
	cacheRepo := newMemoryCache()
	svc, courses := newCourseChoiceFixture(cacheRepo)
	scope := models.Scope{Campus: "Main", Language: models.LanguageEnglish}

	first, err := svc.Build(context.Background(), scope, nil)
	require.NoError(t, err)
	second, err := svc.Build(context.Background(), scope, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, courses.calls)
	assert.Contains(t, cacheRepo.entries, CourseChoicesCacheKey(scope))

	_, err = svc.Build(context.Background(), scope, []string{"Physics"})
	require.NoError(t, err)
	assert.Equal(t, 2, courses.calls)
}

func TestCourseChoicesCacheKeys(t *testing.T) {
	key := CourseChoicesCacheKey(models.Scope{Campus: "Machon Lev", Language: models.LanguageHebrew})
	assert.Equal(t, "planner:course_choices:machon_lev:he", key)
	assert.Equal(t, "planner:course_choices:*", CourseChoicesCachePattern())
}

func TestCourseChoiceServiceLogsCacheWriteFailure(t *testing.T) {
	cacheRepo := newMemoryCache()
	cacheRepo.setErr = errors.New("redis: connection refused")
	core, logs := observer.New(zapcore.DebugLevel)
	courses := &courseStub{active: map[int64][]models.Course{1: {models.NewCourse("Calculus I", 120701, 1207)}}}
	cacheSvc := NewCacheService(cacheRepo, nil, 0, zap.NewNop(), true)
	svc := NewCourseChoiceService(&campusStub{ids: map[string]int64{"Main": 1}}, courses, &roleStub{}, cacheSvc, nil, validator.New(), zap.New(core), CourseChoiceConfig{})

	choices, err := svc.Build(context.Background(), models.Scope{Campus: "Main", Language: models.LanguageEnglish}, nil)
	require.NoError(t, err)
	assert.Len(t, choices, 1)
	assert.Empty(t, cacheRepo.entries)

	entries := logs.FilterMessage("course choices not cached").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}
