package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

func calculusCatalog() *activityStore {
	activity := func(id string, kind models.ActivityKind, lecturer string) models.AcademicActivity {
		return models.AcademicActivity{
			Name: "Calculus I", Kind: kind, LecturerName: lecturer, ActivityID: id,
			CourseNumber: 120701, ParentCourseNumber: 1207, CampusID: 1, Language: models.LanguageEnglish,
		}
	}
	return &activityStore{
		activities: []models.AcademicActivity{
			activity("L1", models.ActivityLecture, "Cohen"),
			activity("L2", models.ActivityLecture, "Levi"),
			activity("S1", models.ActivitySeminar, "Cohen"),
			activity("P1", models.ActivityPractice, "Adler"),
			activity("P2", models.ActivityPractice, "Berg"),
			activity("B1", models.ActivityLab, "Dror"),
			activity("O1", models.ActivityOther, "Cohen"),
			{Name: "Physics", Kind: models.ActivityLecture, LecturerName: "Smith", ActivityID: "PH1", CampusID: 1, Language: models.LanguageEnglish},
			{Name: "Physics", Kind: models.ActivityPractice, LecturerName: "Jones", ActivityID: "PH2", CampusID: 1, Language: models.LanguageEnglish},
			{Name: "Calculus I", Kind: models.ActivityLecture, LecturerName: "Cohen", ActivityID: "L1", CampusID: 2, Language: models.LanguageEnglish},
		},
		meetings: map[string][]models.Meeting{
			"L1": {{ID: "m1", Day: 1, StartTime: "10:00", EndTime: "12:00"}},
		},
	}
}

func newRetrievalService(store *activityStore) *ActivityRetrievalService {
	campuses := &campusStub{ids: map[string]int64{"Main": 1, "North": 2}}
	return NewActivityRetrievalService(campuses, store, store, nil, validator.New(), zap.NewNop())
}

var mainEnglish = models.Scope{Campus: "Main", Language: models.LanguageEnglish}

func TestRetrieveCalculusLectureRestriction(t *testing.T) {
	svc := newRetrievalService(calculusCatalog())
	choices := map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", []string{"Cohen"}, nil),
	}

	activities, err := svc.Retrieve(context.Background(), choices, mainEnglish)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "L1", "P1", "P2", "S1"}, sortedIDs(activities))
	for _, activity := range activities {
		if activity.Kind.IsLectureLike() {
			assert.Equal(t, "Cohen", activity.LecturerName)
		}
	}
}

func TestRetrieveEmptyChoiceReturnsAllGroupedActivities(t *testing.T) {
	svc := newRetrievalService(calculusCatalog())
	choices := map[string]models.CourseChoice{"Calculus I": models.NewCourseChoice("Calculus I", nil, nil)}

	activities, err := svc.Retrieve(context.Background(), choices, mainEnglish)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "L1", "L2", "P1", "P2", "S1"}, sortedIDs(activities))
}

func TestRetrieveEmptyChoiceKeepsUnstaffedSections(t *testing.T) {
	store := calculusCatalog()
	store.activities = append(store.activities, models.AcademicActivity{
		Name: "Calculus I", Kind: models.ActivityPractice, ActivityID: "P3", CampusID: 1, Language: models.LanguageEnglish,
	})
	svc := newRetrievalService(store)

	all, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", nil, nil),
	}, mainEnglish)
	require.NoError(t, err)
	assert.Contains(t, activityIDs(all), "P3")

	named, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", nil, []string{"Adler"}),
	}, mainEnglish)
	require.NoError(t, err)
	assert.NotContains(t, activityIDs(named), "P3")
}

func TestRetrieveLectureRestrictionLeavesPracticeUnaffected(t *testing.T) {
	store := calculusCatalog()
	svc := newRetrievalService(store)

	unrestricted, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Physics": models.NewCourseChoice("Physics", nil, nil),
	}, mainEnglish)
	require.NoError(t, err)
	restricted, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Physics": models.NewCourseChoice("Physics", []string{"Nobody"}, nil),
	}, mainEnglish)
	require.NoError(t, err)

	assert.Equal(t, []string{"PH1", "PH2"}, activityIDs(unrestricted))
	assert.Equal(t, []string{"PH2"}, activityIDs(restricted))
}

func TestRetrieveGroupsByCourseAndAttachesMeetings(t *testing.T) {
	store := calculusCatalog()
	svc := newRetrievalService(store)
	choices := map[string]models.CourseChoice{
		"Physics":    models.NewCourseChoice("Physics", nil, nil),
		"Calculus I": models.NewCourseChoice("Calculus I", []string{"Cohen"}, []string{"Adler"}),
	}

	activities, err := svc.Retrieve(context.Background(), choices, mainEnglish)
	require.NoError(t, err)
	assert.Equal(t, []string{"Calculus I", "Physics"}, store.calls)
	assert.Equal(t, "Physics", activities[len(activities)-1].Name)

	for _, activity := range activities {
		require.NotNil(t, activity.Meetings)
		if activity.ActivityID == "L1" {
			assert.Len(t, activity.Meetings, 1)
		}
	}
}

func TestRetrieveDeduplicatesActivities(t *testing.T) {
	store := calculusCatalog()
	store.activities = append(store.activities, store.activities[0])
	svc := newRetrievalService(store)

	activities, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", nil, nil),
	}, mainEnglish)
	require.NoError(t, err)

	seen := map[models.ActivityKey]bool{}
	for _, activity := range activities {
		assert.False(t, seen[activity.Key()], "duplicate %v", activity.Key())
		seen[activity.Key()] = true
	}
}

func TestRetrieveScopesByCampus(t *testing.T) {
	svc := newRetrievalService(calculusCatalog())

	activities, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", nil, nil),
	}, models.Scope{Campus: "North", Language: models.LanguageEnglish})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, int64(2), activities[0].CampusID)
}

func TestRetrieveUnknownCampus(t *testing.T) {
	store := calculusCatalog()
	svc := newRetrievalService(store)

	_, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", nil, nil),
	}, models.Scope{Campus: "Atlantis", Language: models.LanguageEnglish})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, store.calls)
}

func TestRetrieveRepositoryFailureCarriesContext(t *testing.T) {
	store := calculusCatalog()
	store.err = errors.New("no such table: activities")
	svc := newRetrievalService(store)

	_, err := svc.Retrieve(context.Background(), map[string]models.CourseChoice{
		"Calculus I": models.NewCourseChoice("Calculus I", nil, nil),
	}, mainEnglish)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Contains(t, err.Error(), `"Calculus I"`)
	assert.Contains(t, err.Error(), `"Main"`)
	assert.Contains(t, err.Error(), "language en")
}

func TestRetrieveEmptyChoices(t *testing.T) {
	svc := newRetrievalService(calculusCatalog())

	activities, err := svc.Retrieve(context.Background(), nil, mainEnglish)
	require.NoError(t, err)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
}
