package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

type courseSemesterRow struct {
	CourseID int64  `db:"course_id"`
	Name     string `db:"name"`
}

// CourseRepository persists catalog courses and the semesters they run in.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListActive returns courses that have at least one activity on the campus
// in the given language.
func (r *CourseRepository) ListActive(ctx context.Context, campusID int64, language models.Language) ([]models.Course, error) {
	query := r.db.Rebind(`SELECT DISTINCT courses.name, courses.course_number, courses.parent_course_number
		FROM courses
		INNER JOIN activities
		ON courses.parent_course_number = activities.parent_course_number
		AND courses.course_number = activities.course_number
		AND courses.language_value = activities.language_value
		WHERE activities.campus_id = ? AND courses.language_value = ?
		ORDER BY courses.name, courses.parent_course_number`)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, campusID, language); err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}
	return r.withSemesters(ctx, courses, language)
}

// ListByLanguage returns every course stored for the language.
func (r *CourseRepository) ListByLanguage(ctx context.Context, language models.Language) ([]models.Course, error) {
	query := r.db.Rebind(`SELECT name, course_number, parent_course_number FROM courses WHERE language_value = ? ORDER BY name, parent_course_number`)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, language); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return r.withSemesters(ctx, courses, language)
}

func (r *CourseRepository) withSemesters(ctx context.Context, courses []models.Course, language models.Language) ([]models.Course, error) {
	if len(courses) == 0 {
		return courses, nil
	}
	query := r.db.Rebind(`SELECT semesters_courses.course_id, semesters.name
		FROM semesters
		INNER JOIN semesters_courses ON semesters.id = semesters_courses.semester_id
		WHERE semesters_courses.language_value = ?`)
	var rows []courseSemesterRow
	if err := r.db.SelectContext(ctx, &rows, query, language); err != nil {
		return nil, fmt.Errorf("list course semesters: %w", err)
	}
	byCourse := make(map[int64][]models.Semester, len(rows))
	for _, row := range rows {
		semester, err := models.ParseSemester(row.Name)
		if err != nil {
			continue
		}
		byCourse[row.CourseID] = append(byCourse[row.CourseID], semester)
	}
	for i := range courses {
		courses[i].AttendanceRequiredForLecture = true
		courses[i].AttendanceRequiredForPractice = true
		courses[i].AddSemesters(byCourse[courses[i].ParentCourseNumber]...)
	}
	return courses, nil
}

// SaveAll inserts courses and their semester links for the language.
func (r *CourseRepository) SaveAll(ctx context.Context, exec sqlx.ExtContext, courses []models.Course, language models.Language) error {
	courseQuery := exec.Rebind(`INSERT INTO courses (name, course_number, parent_course_number, language_value) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`)
	semesterQuery := exec.Rebind(`INSERT INTO semesters_courses (semester_id, course_id, language_value) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`)
	for _, course := range courses {
		if _, err := exec.ExecContext(ctx, courseQuery, course.Name, course.CourseNumber, course.ParentCourseNumber, language); err != nil {
			return fmt.Errorf("save course %q: %w", course.Name, err)
		}
		for _, semester := range course.Semesters {
			if _, err := exec.ExecContext(ctx, semesterQuery, int64(semester), course.ParentCourseNumber, language); err != nil {
				return fmt.Errorf("save course %q semester %s: %w", course.Name, semester, err)
			}
		}
	}
	return nil
}
