package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type campusStub struct {
	ids      map[string]int64
	campuses []models.Campus
	err      error
}

func (s *campusStub) ResolveID(ctx context.Context, name string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	id, ok := s.ids[name]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return id, nil
}

func (s *campusStub) List(ctx context.Context) ([]models.Campus, error) {
	return s.campuses, s.err
}

type courseStub struct {
	active     map[int64][]models.Course
	byLanguage []models.Course
	err        error
	calls      int
}

func (s *courseStub) ListActive(ctx context.Context, campusID int64, language models.Language) ([]models.Course, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.active[campusID], nil
}

func (s *courseStub) ListByLanguage(ctx context.Context, language models.Language) ([]models.Course, error) {
	return s.byLanguage, s.err
}

type roleStub struct {
	roles map[string][]models.LecturerRole
	err   error
}

func (s *roleStub) ListByCourse(ctx context.Context, course models.Course, campusID int64, language models.Language) ([]models.LecturerRole, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.roles[course.Name], nil
}

// activityStore filters an in-memory catalog the way the SQL query does.
type activityStore struct {
	activities []models.AcademicActivity
	meetings   map[string][]models.Meeting
	err        error
	calls      []string
}

func (s *activityStore) ListByChoice(ctx context.Context, courseName string, campusID int64, language models.Language, lecture, practice models.LecturerFilter) ([]models.AcademicActivity, error) {
	s.calls = append(s.calls, courseName)
	if s.err != nil {
		return nil, s.err
	}
	var out []models.AcademicActivity
	for _, activity := range s.activities {
		if activity.Name != courseName || activity.CampusID != campusID || activity.Language != language {
			continue
		}
		switch {
		case activity.Kind.IsLectureLike() && lecture.Allows(activity.LecturerName):
			out = append(out, activity)
		case activity.Kind.IsPracticeLike() && practice.Allows(activity.LecturerName):
			out = append(out, activity)
		}
	}
	return out, nil
}

func (s *activityStore) ListByCourses(ctx context.Context, campusID int64, language models.Language, parentCourseNumbers []int64) ([]models.AcademicActivity, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[int64]bool, len(parentCourseNumbers))
	for _, number := range parentCourseNumbers {
		wanted[number] = true
	}
	out := []models.AcademicActivity{}
	for _, activity := range s.activities {
		if activity.CampusID == campusID && activity.Language == language && wanted[activity.ParentCourseNumber] {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (s *activityStore) ListByActivity(ctx context.Context, activityID string, campusID int64, language models.Language) ([]models.Meeting, error) {
	return s.meetings[activityID], nil
}

type semesterStub struct {
	semesters []models.Semester
	err       error
}

func (s *semesterStub) List(ctx context.Context) ([]models.Semester, error) {
	return s.semesters, s.err
}

type memoryCache struct {
	entries map[string]interface{}
	deleted []string
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]interface{}{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	target := dest.(*map[string]models.CourseChoice)
	*target = value.(map[string]models.CourseChoice)
	return nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	c.entries = map[string]interface{}{}
	return nil
}

func activityIDs(activities []models.AcademicActivity) []string {
	ids := make([]string, 0, len(activities))
	for _, activity := range activities {
		ids = append(ids, activity.ActivityID)
	}
	return ids
}

func sortedIDs(activities []models.AcademicActivity) []string {
	ids := activityIDs(activities)
	sort.Strings(ids)
	return ids
}
