package dto

import (
	"time"

	"github.com/noah-isme/course-planner-api/internal/models"
)

// ScopeQuery is the campus and language of a read request.
type ScopeQuery struct {
	Campus   string `form:"campus"`
	Language string `form:"language"`
}

// CourseChoicesQuery selects the courses to index; no course means all.
type CourseChoicesQuery struct {
	ScopeQuery
	Courses []string `form:"course"`
}

// ChoicePayload is the lecturer selection for one course. Empty lists
// accept any lecturer.
type ChoicePayload struct {
	CourseName        string   `json:"course_name"`
	LectureLecturers  []string `json:"lecture_lecturers"`
	PracticeLecturers []string `json:"practice_lecturers"`
}

// ActivitySearchRequest retrieves activities for lecturer choices keyed by
// course name. No choices yields no activities.
type ActivitySearchRequest struct {
	Campus   string                   `json:"campus"`
	Language string                   `json:"language"`
	Choices  map[string]ChoicePayload `json:"choices"`
}

// ActivitySearchResponse lists retrieved activities.
type ActivitySearchResponse struct {
	Activities []models.AcademicActivity `json:"activities"`
	Count      int                       `json:"count"`
}

// ExportRequest renders the timetable of retrieved activities.
type ExportRequest struct {
	Campus   string                   `json:"campus"`
	Language string                   `json:"language"`
	Choices  map[string]ChoicePayload `json:"choices"`
	Format   string                   `json:"format" validate:"required,oneof=csv pdf"`
	Title    string                   `json:"title" validate:"max=120"`

	// IncludePersonal adds the stored personal activities to the timetable.
	IncludePersonal bool `json:"include_personal"`
}

// ExportResponse points to the rendered file.
type ExportResponse struct {
	ID         string    `json:"id"`
	Format     string    `json:"format"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
	Activities int       `json:"activities"`
	Rows       int       `json:"rows"`
}

// CampusItem is a campus with its name in the requested language.
type CampusItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToChoices converts payloads into normalised course choices. The map key
// wins over the embedded course name.
func ToChoices(payload map[string]ChoicePayload) map[string]models.CourseChoice {
	choices := make(map[string]models.CourseChoice, len(payload))
	for name, choice := range payload {
		choices[name] = models.NewCourseChoice(name, choice.LectureLecturers, choice.PracticeLecturers)
	}
	return choices
}

// PersonalActivityPayload is a named busy slot set.
type PersonalActivityPayload struct {
	Name     string           `json:"name" validate:"required,max=120"`
	Meetings []MeetingPayload `json:"meetings" validate:"required,min=1,dive"`
}

// PersonalActivitiesRequest stores personal activities.
type PersonalActivitiesRequest struct {
	Activities []PersonalActivityPayload `json:"activities" validate:"required,min=1,dive"`
}

// CourseActivitiesQuery selects the courses whose activities are listed; no
// course means all.
type CourseActivitiesQuery struct {
	ScopeQuery
	Courses []string `form:"course"`
}
