// Package csvio reads catalog spreadsheets into import requests.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/course-planner-api/internal/dto"
)

// CatalogRow is one meeting of an activity. Rows sharing an activity_id
// describe the same activity; a row with day 0 carries no meeting.
type CatalogRow struct {
	CourseName         string `csv:"course_name"`
	CourseNumber       int64  `csv:"course_number"`
	ParentCourseNumber int64  `csv:"parent_course_number"`
	Semesters          string `csv:"semesters"`
	Kind               string `csv:"kind"`
	AttendanceRequired string `csv:"attendance_required"`
	Lecturer           string `csv:"lecturer"`
	Location           string `csv:"location"`
	ActivityID         string `csv:"activity_id"`
	Description        string `csv:"description"`
	CurrentCapacity    int    `csv:"current_capacity"`
	MaxCapacity        int    `csv:"max_capacity"`
	ActualCourseNumber int64  `csv:"actual_course_number"`
	Day                int    `csv:"day"`
	Start              string `csv:"start"`
	End                string `csv:"end"`
}

// LoadCatalogFile reads a catalog CSV from disk.
func LoadCatalogFile(path string, delim rune, campus dto.CampusPayload, language string) (dto.CatalogImportRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return dto.CatalogImportRequest{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	return LoadCatalog(f, delim, campus, language)
}

// LoadCatalog parses catalog rows and groups them into courses and
// activities in first-seen order.
func LoadCatalog(in io.Reader, delim rune, campus dto.CampusPayload, language string) (dto.CatalogImportRequest, error) {
	reader := csv.NewReader(in)
	if delim != 0 {
		reader.Comma = delim
	}
	reader.TrimLeadingSpace = true

	var rows []CatalogRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return dto.CatalogImportRequest{}, fmt.Errorf("parse catalog: %w", err)
	}

	req := dto.CatalogImportRequest{Campus: campus, Language: language}
	courseIdx := make(map[[2]int64]int)
	activityIdx := make(map[string]int)

	for i, row := range rows {
		line := i + 2
		if strings.TrimSpace(row.ActivityID) == "" {
			return dto.CatalogImportRequest{}, fmt.Errorf("line %d: activity_id is required", line)
		}

		semesters := splitList(row.Semesters)
		key := [2]int64{row.CourseNumber, row.ParentCourseNumber}
		if idx, ok := courseIdx[key]; ok {
			req.Courses[idx].Semesters = mergeList(req.Courses[idx].Semesters, semesters)
		} else {
			courseIdx[key] = len(req.Courses)
			req.Courses = append(req.Courses, dto.CoursePayload{
				Name:               strings.TrimSpace(row.CourseName),
				CourseNumber:       row.CourseNumber,
				ParentCourseNumber: row.ParentCourseNumber,
				Semesters:          semesters,
			})
		}

		idx, ok := activityIdx[row.ActivityID]
		if !ok {
			attendance, err := parseAttendance(row.AttendanceRequired)
			if err != nil {
				return dto.CatalogImportRequest{}, fmt.Errorf("line %d: %w", line, err)
			}
			idx = len(req.Activities)
			activityIdx[row.ActivityID] = idx
			req.Activities = append(req.Activities, dto.ActivityPayload{
				Name:               strings.TrimSpace(row.CourseName),
				Kind:               strings.TrimSpace(row.Kind),
				AttendanceRequired: attendance,
				LecturerName:       strings.TrimSpace(row.Lecturer),
				CourseNumber:       row.CourseNumber,
				ParentCourseNumber: row.ParentCourseNumber,
				Location:           strings.TrimSpace(row.Location),
				ActivityID:         row.ActivityID,
				Description:        row.Description,
				CurrentCapacity:    row.CurrentCapacity,
				MaxCapacity:        row.MaxCapacity,
				ActualCourseNumber: row.ActualCourseNumber,
			})
		}

		if row.Day == 0 {
			continue
		}
		req.Activities[idx].Meetings = append(req.Activities[idx].Meetings, dto.MeetingPayload{
			Day:       row.Day,
			StartTime: strings.TrimSpace(row.Start),
			EndTime:   strings.TrimSpace(row.End),
		})
	}

	return req, nil
}

func parseAttendance(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("attendance_required %q is not a boolean", raw)
	}
	return &v, nil
}

// splitList reads "FALL;SPRING" style cells.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '|' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func mergeList(existing, extra []string) []string {
	for _, item := range extra {
		found := false
		for _, e := range existing {
			if strings.EqualFold(e, item) {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, item)
		}
	}
	return existing
}
