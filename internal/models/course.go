package models

import (
	"fmt"
	"sort"
	"strings"
)

// Semester is a teaching period a course may be offered in.
type Semester int

const (
	SemesterFall Semester = iota + 1
	SemesterSpring
	SemesterSummer
	SemesterAnnual
)

var semesterNames = map[Semester]string{
	SemesterFall:   "FALL",
	SemesterSpring: "SPRING",
	SemesterSummer: "SUMMER",
	SemesterAnnual: "ANNUAL",
}

// Semesters lists every known semester.
var Semesters = []Semester{SemesterFall, SemesterSpring, SemesterSummer, SemesterAnnual}

func (s Semester) String() string {
	if name, ok := semesterNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Semester(%d)", int(s))
}

// MarshalText renders the semester by name.
func (s Semester) MarshalText() ([]byte, error) {
	if _, ok := semesterNames[s]; !ok {
		return nil, fmt.Errorf("invalid semester %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a semester name case-insensitively.
func (s *Semester) UnmarshalText(text []byte) error {
	parsed, err := ParseSemester(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSemester maps a semester name to its value.
func ParseSemester(raw string) (Semester, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	for semester, name := range semesterNames {
		if name == upper {
			return semester, nil
		}
	}
	return 0, fmt.Errorf("unknown semester %q", raw)
}

// Course is a catalog course. Attendance flags default to required.
type Course struct {
	Name                          string     `db:"name" json:"name"`
	CourseNumber                  int64      `db:"course_number" json:"course_number"`
	ParentCourseNumber            int64      `db:"parent_course_number" json:"parent_course_number"`
	ActivityID                    string     `db:"-" json:"activity_id,omitempty"`
	ActualCourseNumber            int64      `db:"-" json:"actual_course_number,omitempty"`
	AttendanceRequiredForLecture  bool       `db:"-" json:"attendance_required_for_lecture"`
	AttendanceRequiredForPractice bool       `db:"-" json:"attendance_required_for_practice"`
	Semesters                     []Semester `db:"-" json:"semesters"`
}

// NewCourse returns a course with attendance required for every kind.
func NewCourse(name string, courseNumber, parentCourseNumber int64, semesters ...Semester) Course {
	c := Course{
		Name:                          name,
		CourseNumber:                  courseNumber,
		ParentCourseNumber:            parentCourseNumber,
		AttendanceRequiredForLecture:  true,
		AttendanceRequiredForPractice: true,
	}
	c.AddSemesters(semesters...)
	return c
}

// CourseKey is the identity of a course. When the course is bound to an
// activity the activity id alone identifies it.
type CourseKey struct {
	ActivityID         string
	Name               string
	CourseNumber       int64
	ParentCourseNumber int64
}

// Key returns the course identity.
func (c Course) Key() CourseKey {
	if c.ActivityID != "" {
		return CourseKey{ActivityID: c.ActivityID}
	}
	return CourseKey{Name: c.Name, CourseNumber: c.CourseNumber, ParentCourseNumber: c.ParentCourseNumber}
}

// AddSemesters unions semesters into the course, keeping them sorted.
func (c *Course) AddSemesters(semesters ...Semester) {
	seen := make(map[Semester]struct{}, len(c.Semesters)+len(semesters))
	merged := make([]Semester, 0, len(c.Semesters)+len(semesters))
	for _, s := range append(append([]Semester{}, c.Semesters...), semesters...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	c.Semesters = merged
}

// SetAttendanceRequired sets the flag for the kind's group. Kinds outside
// both groups are ignored.
func (c *Course) SetAttendanceRequired(kind ActivityKind, required bool) {
	switch {
	case kind.IsLectureLike():
		c.AttendanceRequiredForLecture = required
	case kind.IsPracticeLike():
		c.AttendanceRequiredForPractice = required
	}
}

// IsAttendanceRequired reports the flag for the kind's group; other kinds are
// always required.
func (c Course) IsAttendanceRequired(kind ActivityKind) bool {
	switch {
	case kind.IsLectureLike():
		return c.AttendanceRequiredForLecture
	case kind.IsPracticeLike():
		return c.AttendanceRequiredForPractice
	default:
		return true
	}
}
