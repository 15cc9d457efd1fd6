package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

// LecturerRoleRepository reads which lecturers teach a course and in which role.
type LecturerRoleRepository struct {
	db *sqlx.DB
}

// NewLecturerRoleRepository constructs the repository.
func NewLecturerRoleRepository(db *sqlx.DB) *LecturerRoleRepository {
	return &LecturerRoleRepository{db: db}
}

// ListByCourse returns the lecturer-role pairs of a course in scope.
func (r *LecturerRoleRepository) ListByCourse(ctx context.Context, course models.Course, campusID int64, language models.Language) ([]models.LecturerRole, error) {
	query := r.db.Rebind(`SELECT lecturer_name, is_lecture_role FROM courses_lecturers
		WHERE course_number = ? AND parent_course_number = ? AND campus_id = ? AND language_value = ?
		ORDER BY lecturer_name`)
	var roles []models.LecturerRole
	if err := r.db.SelectContext(ctx, &roles, query, course.CourseNumber, course.ParentCourseNumber, campusID, language); err != nil {
		return nil, fmt.Errorf("list lecturer roles for %q: %w", course.Name, err)
	}
	return roles, nil
}
