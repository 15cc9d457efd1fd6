package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

type personalMeetingRow struct {
	ActivityID string `db:"activity_id"`
	models.Meeting
}

// PersonalActivityRepository persists personal busy slots. Their meetings
// share the meetings table with academic activities.
type PersonalActivityRepository struct {
	db *sqlx.DB
}

// NewPersonalActivityRepository constructs the repository.
func NewPersonalActivityRepository(db *sqlx.DB) *PersonalActivityRepository {
	return &PersonalActivityRepository{db: db}
}

// Save stores the activities and their meetings in one transaction. Existing
// rows are left untouched.
func (r *PersonalActivityRepository) Save(ctx context.Context, activities []models.PersonalActivity) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin personal activities transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	activityQuery := tx.Rebind(`INSERT INTO personal_activities (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`)
	meetingQuery := tx.Rebind(`INSERT INTO meetings (id, day, start_time, end_time) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`)
	linkQuery := tx.Rebind(`INSERT INTO personal_activities_meetings (activity_id, meeting_id) VALUES (?, ?) ON CONFLICT DO NOTHING`)

	for _, activity := range activities {
		if _, err = tx.ExecContext(ctx, activityQuery, activity.ID, activity.Name); err != nil {
			return fmt.Errorf("save personal activity %q: %w", activity.Name, err)
		}
		for _, meeting := range activity.Meetings {
			if _, err = tx.ExecContext(ctx, meetingQuery, meeting.ID, meeting.Day, meeting.StartTime, meeting.EndTime); err != nil {
				return fmt.Errorf("save meeting of personal activity %q: %w", activity.Name, err)
			}
			if _, err = tx.ExecContext(ctx, linkQuery, activity.ID, meeting.ID); err != nil {
				return fmt.Errorf("link meeting of personal activity %q: %w", activity.Name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit personal activities: %w", err)
	}
	return nil
}

// List returns every personal activity by name with its meetings ordered by
// day and start time.
func (r *PersonalActivityRepository) List(ctx context.Context) ([]models.PersonalActivity, error) {
	var activities []models.PersonalActivity
	if err := r.db.SelectContext(ctx, &activities, `SELECT id, name FROM personal_activities ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list personal activities: %w", err)
	}
	if len(activities) == 0 {
		return []models.PersonalActivity{}, nil
	}

	var rows []personalMeetingRow
	const query = `SELECT personal_activities_meetings.activity_id, meetings.id, meetings.day, meetings.start_time, meetings.end_time
		FROM meetings
		INNER JOIN personal_activities_meetings ON meetings.id = personal_activities_meetings.meeting_id
		ORDER BY meetings.day, meetings.start_time`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list personal activity meetings: %w", err)
	}
	byActivity := make(map[string][]models.Meeting, len(activities))
	for _, row := range rows {
		byActivity[row.ActivityID] = append(byActivity[row.ActivityID], row.Meeting)
	}
	for i := range activities {
		activities[i].Meetings = byActivity[activities[i].ID]
		if activities[i].Meetings == nil {
			activities[i].Meetings = []models.Meeting{}
		}
	}
	return activities, nil
}

// Delete removes a personal activity and its meeting links. It reports
// whether the activity existed.
func (r *PersonalActivityRepository) Delete(ctx context.Context, id string) (deleted bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin personal activity delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM personal_activities_meetings WHERE activity_id = ?`), id); err != nil {
		return false, fmt.Errorf("unlink personal activity %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM personal_activities WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete personal activity %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete personal activity %s: %w", id, err)
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit personal activity delete: %w", err)
	}
	return affected > 0, nil
}
