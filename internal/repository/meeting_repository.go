package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

// MeetingRepository reads activity meetings.
type MeetingRepository struct {
	db *sqlx.DB
}

// NewMeetingRepository constructs the repository.
func NewMeetingRepository(db *sqlx.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// ListByActivity returns the meetings of one activity in scope, ordered by
// day and start time.
func (r *MeetingRepository) ListByActivity(ctx context.Context, activityID string, campusID int64, language models.Language) ([]models.Meeting, error) {
	query := r.db.Rebind(`SELECT meetings.id, meetings.day, meetings.start_time, meetings.end_time
		FROM meetings
		INNER JOIN activities_meetings ON meetings.id = activities_meetings.meeting_id
		WHERE activities_meetings.activity_id = ?
		AND activities_meetings.campus_id = ?
		AND activities_meetings.language_value = ?
		ORDER BY meetings.day, meetings.start_time`)
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, activityID, campusID, language); err != nil {
		return nil, fmt.Errorf("list meetings for activity %s: %w", activityID, err)
	}
	return meetings, nil
}
