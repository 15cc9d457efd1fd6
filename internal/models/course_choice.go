package models

import (
	"sort"
	"strings"
)

// LecturerRole records that a lecturer teaches a course in the lecture role
// (IsLecture) or the practice role.
type LecturerRole struct {
	LecturerName string `db:"lecturer_name" json:"lecturer_name"`
	IsLecture    bool   `db:"is_lecture_role" json:"is_lecture"`
}

// CourseChoice holds the acceptable lecturers per kind group for one course.
// An empty collection accepts any lecturer.
type CourseChoice struct {
	CourseName        string   `json:"course_name"`
	LectureLecturers  []string `json:"lecture_lecturers"`
	PracticeLecturers []string `json:"practice_lecturers"`
}

// NewCourseChoice normalises both collections into sorted, de-duplicated
// slices that are never nil.
func NewCourseChoice(courseName string, lecture, practice []string) CourseChoice {
	return CourseChoice{
		CourseName:        courseName,
		LectureLecturers:  normalizeNames(lecture),
		PracticeLecturers: normalizeNames(practice),
	}
}

// LectureFilter returns the filter gating lecture-like activities.
func (c CourseChoice) LectureFilter() LecturerFilter {
	return FilterFromSelection(c.LectureLecturers)
}

// PracticeFilter returns the filter gating practice-like activities.
func (c CourseChoice) PracticeFilter() LecturerFilter {
	return FilterFromSelection(c.PracticeLecturers)
}

type lecturerFilterKind int

const (
	filterAny lecturerFilterKind = iota
	filterOneOf
)

// LecturerFilter is either Any lecturer or OneOf a set of names. The zero
// value is Any.
type LecturerFilter struct {
	kind  lecturerFilterKind
	names []string
}

// AnyLecturer accepts every lecturer.
func AnyLecturer() LecturerFilter {
	return LecturerFilter{kind: filterAny}
}

// OneOfLecturers accepts only the given names.
func OneOfLecturers(names ...string) LecturerFilter {
	return LecturerFilter{kind: filterOneOf, names: normalizeNames(names)}
}

// FilterFromSelection treats an empty selection as unconstrained.
func FilterFromSelection(names []string) LecturerFilter {
	normalized := normalizeNames(names)
	if len(normalized) == 0 {
		return AnyLecturer()
	}
	return LecturerFilter{kind: filterOneOf, names: normalized}
}

// IsAny reports whether the filter accepts every lecturer.
func (f LecturerFilter) IsAny() bool {
	return f.kind == filterAny
}

// Names returns the accepted names of a OneOf filter.
func (f LecturerFilter) Names() []string {
	return append([]string(nil), f.names...)
}

// Allows reports whether a lecturer passes the filter.
func (f LecturerFilter) Allows(lecturer string) bool {
	if f.IsAny() {
		return true
	}
	idx := sort.SearchStrings(f.names, lecturer)
	return idx < len(f.names) && f.names[idx] == lecturer
}

func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
