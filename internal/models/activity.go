package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ActivityKind classifies an academic activity.
type ActivityKind int

const (
	ActivityLecture ActivityKind = iota + 1
	ActivitySeminar
	ActivityPractice
	ActivityLab
	ActivityOther
)

var activityKindNames = map[ActivityKind]string{
	ActivityLecture:  "LECTURE",
	ActivitySeminar:  "SEMINAR",
	ActivityPractice: "PRACTICE",
	ActivityLab:      "LAB",
	ActivityOther:    "OTHER",
}

// LectureKinds are the kinds gated by the lecture lecturer selection.
var LectureKinds = []ActivityKind{ActivityLecture, ActivitySeminar}

// PracticeKinds are the kinds gated by the practice lecturer selection.
var PracticeKinds = []ActivityKind{ActivityPractice, ActivityLab}

func (k ActivityKind) String() string {
	if name, ok := activityKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActivityKind(%d)", int(k))
}

// IsLectureLike reports whether k is a lecture or seminar.
func (k ActivityKind) IsLectureLike() bool {
	return k == ActivityLecture || k == ActivitySeminar
}

// IsPracticeLike reports whether k is a practice or lab.
func (k ActivityKind) IsPracticeLike() bool {
	return k == ActivityPractice || k == ActivityLab
}

// MarshalText renders the kind by name.
func (k ActivityKind) MarshalText() ([]byte, error) {
	if _, ok := activityKindNames[k]; !ok {
		return nil, fmt.Errorf("invalid activity kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name case-insensitively.
func (k *ActivityKind) UnmarshalText(text []byte) error {
	parsed, err := ParseActivityKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseActivityKind maps a kind name to its value.
func ParseActivityKind(raw string) (ActivityKind, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	for kind, name := range activityKindNames {
		if name == upper {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown activity kind %q", raw)
}

// Meeting is one weekly slot of an activity. Day runs Sunday=1..Saturday=7.
type Meeting struct {
	ID        string `db:"id" json:"id"`
	Day       int    `db:"day" json:"day"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

var dayNames = [...]string{"", "SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

// DayName returns the upper-case weekday name.
func (m Meeting) DayName() string {
	if m.Day < 1 || m.Day > 7 {
		return ""
	}
	return dayNames[m.Day]
}

// AcademicActivity is one scheduled offering of a course.
type AcademicActivity struct {
	Name               string       `db:"name" json:"name"`
	Kind               ActivityKind `db:"activity_type" json:"kind"`
	AttendanceRequired bool         `db:"attendance_required" json:"attendance_required"`
	LecturerName       string       `db:"lecturer_name" json:"lecturer_name"`
	CourseNumber       int64        `db:"course_number" json:"course_number"`
	ParentCourseNumber int64        `db:"parent_course_number" json:"parent_course_number"`
	Location           string       `db:"location" json:"location"`
	ActivityID         string       `db:"activity_id" json:"activity_id"`
	Description        string       `db:"description" json:"description"`
	CurrentCapacity    int          `db:"current_capacity" json:"current_capacity"`
	MaxCapacity        int          `db:"max_capacity" json:"max_capacity"`
	ActualCourseNumber int64        `db:"actual_course_number" json:"actual_course_number"`
	CampusID           int64        `db:"campus_id" json:"campus_id"`
	Language           Language     `db:"language_value" json:"language"`
	Meetings           []Meeting    `db:"-" json:"meetings"`
}

// ActivityKey identifies an activity; the same activity id may repeat across
// campuses and languages.
type ActivityKey struct {
	ActivityID string
	CampusID   int64
	Language   Language
}

// Key returns the activity identity.
func (a AcademicActivity) Key() ActivityKey {
	return ActivityKey{ActivityID: a.ActivityID, CampusID: a.CampusID, Language: a.Language}
}

// IsFull reports whether the activity reached its declared capacity.
func (a AcademicActivity) IsFull() bool {
	return a.MaxCapacity > 0 && a.CurrentCapacity >= a.MaxCapacity
}

var meetingNamespace = uuid.MustParse("6f1c1e52-3c55-4b7a-9d8e-2a7f0b1d9c41")

// AssignMeetingIDs fills missing meeting ids with ids derived from the
// activity identity and the slot, so re-importing a catalog is idempotent.
func (a *AcademicActivity) AssignMeetingIDs() {
	for i := range a.Meetings {
		if a.Meetings[i].ID != "" {
			continue
		}
		m := a.Meetings[i]
		seed := fmt.Sprintf("%s|%d|%s|%d|%s|%s", a.ActivityID, a.CampusID, a.Language, m.Day, m.StartTime, m.EndTime)
		a.Meetings[i].ID = uuid.NewSHA1(meetingNamespace, []byte(seed)).String()
	}
}
