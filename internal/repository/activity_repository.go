package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

const activityColumns = `name, activity_type, attendance_required, lecturer_name,
	course_number, parent_course_number, location, activity_id, description, current_capacity,
	max_capacity, actual_course_number, campus_id, language_value`

// ActivityRepository persists academic activities and their meetings.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ListByChoice returns the activities of a course in scope whose kind group
// and lecturer pass the matching filter. Meetings are not attached.
func (r *ActivityRepository) ListByChoice(ctx context.Context, courseName string, campusID int64, language models.Language, lecture, practice models.LecturerFilter) ([]models.AcademicActivity, error) {
	lectureClause, lectureArgs := lecturerClause(lecture)
	practiceClause, practiceArgs := lecturerClause(practice)

	raw := fmt.Sprintf(`SELECT %s FROM activities
		WHERE name = ? AND language_value = ? AND campus_id = ?
		AND ((activity_type IN (?) AND %s) OR (activity_type IN (?) AND %s))
		ORDER BY activity_type, activity_id`, activityColumns, lectureClause, practiceClause)

	args := []interface{}{courseName, language, campusID, kindValues(models.LectureKinds)}
	args = append(args, lectureArgs...)
	args = append(args, kindValues(models.PracticeKinds))
	args = append(args, practiceArgs...)

	query, bound, err := sqlx.In(raw, args...)
	if err != nil {
		return nil, fmt.Errorf("build activity query for %q: %w", courseName, err)
	}

	var activities []models.AcademicActivity
	if err := r.db.SelectContext(ctx, &activities, r.db.Rebind(query), bound...); err != nil {
		return nil, fmt.Errorf("list activities for %q: %w", courseName, err)
	}
	return activities, nil
}

// ListByCourses returns every activity in scope belonging to the given parent
// course numbers. Meetings are not attached.
func (r *ActivityRepository) ListByCourses(ctx context.Context, campusID int64, language models.Language, parentCourseNumbers []int64) ([]models.AcademicActivity, error) {
	if len(parentCourseNumbers) == 0 {
		return []models.AcademicActivity{}, nil
	}
	raw := fmt.Sprintf(`SELECT %s FROM activities
		WHERE campus_id = ? AND language_value = ? AND parent_course_number IN (?)
		ORDER BY name, activity_type, activity_id`, activityColumns)
	query, bound, err := sqlx.In(raw, campusID, language, parentCourseNumbers)
	if err != nil {
		return nil, fmt.Errorf("build activities by courses query: %w", err)
	}
	var activities []models.AcademicActivity
	if err := r.db.SelectContext(ctx, &activities, r.db.Rebind(query), bound...); err != nil {
		return nil, fmt.Errorf("list activities by courses: %w", err)
	}
	return activities, nil
}

// SaveAll stores activities for the scope together with their lecturers,
// lecturer roles and meetings. Existing rows are left untouched.
func (r *ActivityRepository) SaveAll(ctx context.Context, exec sqlx.ExtContext, activities []models.AcademicActivity, campusID int64, language models.Language) error {
	lecturerQuery := exec.Rebind(`INSERT INTO lecturers (name) VALUES (?) ON CONFLICT DO NOTHING`)
	roleQuery := exec.Rebind(`INSERT INTO courses_lecturers (course_number, parent_course_number, lecturer_name, is_lecture_role, campus_id, language_value)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`)
	meetingQuery := exec.Rebind(`INSERT INTO meetings (id, day, start_time, end_time) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`)
	linkQuery := exec.Rebind(`INSERT INTO activities_meetings (activity_id, meeting_id, campus_id, language_value) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`)
	const activityQuery = `INSERT INTO activities (name, activity_type, attendance_required, lecturer_name, course_number,
		parent_course_number, location, activity_id, description, current_capacity, max_capacity,
		actual_course_number, campus_id, language_value)
		VALUES (:name, :activity_type, :attendance_required, :lecturer_name, :course_number,
		:parent_course_number, :location, :activity_id, :description, :current_capacity, :max_capacity,
		:actual_course_number, :campus_id, :language_value) ON CONFLICT DO NOTHING`

	for i := range activities {
		activity := activities[i]
		activity.CampusID = campusID
		activity.Language = language
		activity.AssignMeetingIDs()

		if activity.LecturerName != "" {
			if _, err := exec.ExecContext(ctx, lecturerQuery, activity.LecturerName); err != nil {
				return fmt.Errorf("save lecturer %q: %w", activity.LecturerName, err)
			}
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, activityQuery, &activity); err != nil {
			return fmt.Errorf("save activity %s: %w", activity.ActivityID, err)
		}
		if activity.LecturerName != "" && (activity.Kind.IsLectureLike() || activity.Kind.IsPracticeLike()) {
			if _, err := exec.ExecContext(ctx, roleQuery, activity.CourseNumber, activity.ParentCourseNumber,
				activity.LecturerName, activity.Kind.IsLectureLike(), campusID, language); err != nil {
				return fmt.Errorf("save lecturer role for activity %s: %w", activity.ActivityID, err)
			}
		}
		for _, meeting := range activity.Meetings {
			if _, err := exec.ExecContext(ctx, meetingQuery, meeting.ID, meeting.Day, meeting.StartTime, meeting.EndTime); err != nil {
				return fmt.Errorf("save meeting for activity %s: %w", activity.ActivityID, err)
			}
			if _, err := exec.ExecContext(ctx, linkQuery, activity.ActivityID, meeting.ID, campusID, language); err != nil {
				return fmt.Errorf("link meeting for activity %s: %w", activity.ActivityID, err)
			}
		}
		activities[i] = activity
	}
	return nil
}

// lecturerClause translates a filter into a SQL predicate on lecturer_name.
// The column is never NULL, so Any keeps every row including activities
// stored without a lecturer. An empty OneOf matches nothing.
func lecturerClause(filter models.LecturerFilter) (string, []interface{}) {
	if filter.IsAny() {
		return "lecturer_name IS NOT NULL", nil
	}
	names := filter.Names()
	if len(names) == 0 {
		return "1 = 0", nil
	}
	return "lecturer_name IN (?)", []interface{}{names}
}

func kindValues(kinds []models.ActivityKind) []int {
	values := make([]int, 0, len(kinds))
	for _, kind := range kinds {
		values = append(values, int(kind))
	}
	return values
}
