package repository

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newPlannerMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var activityRowColumns = []string{
	"name", "activity_type", "attendance_required", "lecturer_name", "course_number", "parent_course_number",
	"location", "activity_id", "description", "current_capacity", "max_capacity", "actual_course_number",
	"campus_id", "language_value",
}
