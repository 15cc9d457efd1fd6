package dto

// CatalogImportRequest carries the catalog of one campus in one language.
type CatalogImportRequest struct {
	Campus     CampusPayload     `json:"campus"`
	Language   string            `json:"language" validate:"required"`
	Semesters  []string          `json:"semesters" validate:"omitempty,dive,required"`
	Courses    []CoursePayload   `json:"courses" validate:"omitempty,dive"`
	Activities []ActivityPayload `json:"activities" validate:"omitempty,dive"`
}

// CampusPayload names a campus in both languages.
type CampusPayload struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	EnglishName string `json:"english_name" validate:"required"`
	HebrewName  string `json:"hebrew_name" validate:"required"`
}

// CoursePayload is a catalog course.
type CoursePayload struct {
	Name               string   `json:"name" validate:"required"`
	CourseNumber       int64    `json:"course_number" validate:"gt=0"`
	ParentCourseNumber int64    `json:"parent_course_number" validate:"gt=0"`
	Semesters          []string `json:"semesters" validate:"omitempty,dive,required"`
}

// ActivityPayload is one offering of a course. AttendanceRequired defaults
// to true when omitted.
type ActivityPayload struct {
	Name               string           `json:"name" validate:"required"`
	Kind               string           `json:"kind" validate:"required"`
	AttendanceRequired *bool            `json:"attendance_required"`
	LecturerName       string           `json:"lecturer_name"`
	CourseNumber       int64            `json:"course_number" validate:"gt=0"`
	ParentCourseNumber int64            `json:"parent_course_number" validate:"gt=0"`
	Location           string           `json:"location"`
	ActivityID         string           `json:"activity_id" validate:"required"`
	Description        string           `json:"description"`
	CurrentCapacity    int              `json:"current_capacity" validate:"gte=0"`
	MaxCapacity        int              `json:"max_capacity" validate:"gte=0"`
	ActualCourseNumber int64            `json:"actual_course_number" validate:"gte=0"`
	Meetings           []MeetingPayload `json:"meetings" validate:"omitempty,dive"`
}

// MeetingPayload is a weekly slot; day runs Sunday=1..Saturday=7.
type MeetingPayload struct {
	Day       int    `json:"day" validate:"min=1,max=7"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}
