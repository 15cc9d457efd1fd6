package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables lists every planner table in dependency order.
var Tables = []string{
	"campuses",
	"semesters",
	"courses",
	"semesters_courses",
	"lecturers",
	"meetings",
	"activities",
	"activities_meetings",
	"courses_lecturers",
	"personal_activities",
	"personal_activities_meetings",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS campuses (
		id INTEGER PRIMARY KEY,
		english_name TEXT NOT NULL,
		hebrew_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS semesters (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		name TEXT NOT NULL,
		course_number INTEGER NOT NULL,
		parent_course_number INTEGER NOT NULL,
		language_value CHAR(2) NOT NULL,
		PRIMARY KEY (parent_course_number, language_value)
	)`,
	`CREATE TABLE IF NOT EXISTS semesters_courses (
		semester_id INTEGER NOT NULL,
		course_id INTEGER NOT NULL,
		language_value CHAR(2) NOT NULL,
		PRIMARY KEY (semester_id, course_id, language_value)
	)`,
	`CREATE TABLE IF NOT EXISTS lecturers (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		id TEXT PRIMARY KEY,
		day INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		name TEXT NOT NULL,
		activity_type INTEGER NOT NULL,
		attendance_required BOOLEAN NOT NULL,
		lecturer_name TEXT NOT NULL DEFAULT '',
		course_number INTEGER NOT NULL,
		parent_course_number INTEGER NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		activity_id TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		current_capacity INTEGER NOT NULL DEFAULT 0,
		max_capacity INTEGER NOT NULL DEFAULT 0,
		actual_course_number INTEGER NOT NULL DEFAULT 0,
		campus_id INTEGER NOT NULL,
		language_value CHAR(2) NOT NULL,
		PRIMARY KEY (activity_id, campus_id, language_value)
	)`,
	`CREATE TABLE IF NOT EXISTS activities_meetings (
		activity_id TEXT NOT NULL,
		meeting_id TEXT NOT NULL,
		campus_id INTEGER NOT NULL,
		language_value CHAR(2) NOT NULL,
		PRIMARY KEY (activity_id, meeting_id, campus_id, language_value)
	)`,
	`CREATE TABLE IF NOT EXISTS courses_lecturers (
		course_number INTEGER NOT NULL,
		parent_course_number INTEGER NOT NULL,
		lecturer_name TEXT NOT NULL,
		is_lecture_role BOOLEAN NOT NULL,
		campus_id INTEGER NOT NULL,
		language_value CHAR(2) NOT NULL,
		PRIMARY KEY (course_number, parent_course_number, lecturer_name, is_lecture_role, campus_id, language_value)
	)`,
	`CREATE TABLE IF NOT EXISTS personal_activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS personal_activities_meetings (
		activity_id TEXT NOT NULL,
		meeting_id TEXT NOT NULL,
		PRIMARY KEY (activity_id, meeting_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_scope_name ON activities (campus_id, language_value, name)`,
}

// Migrate creates the planner tables when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// TablesExist reports whether every planner table is present.
func TablesExist(ctx context.Context, db *sqlx.DB) (bool, error) {
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	if db.DriverName() == "postgres" {
		query = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
	}
	query = db.Rebind(query)
	for _, table := range Tables {
		var count int
		if err := db.GetContext(ctx, &count, query, table); err != nil {
			return false, fmt.Errorf("check table %s: %w", table, err)
		}
		if count == 0 {
			return false, nil
		}
	}
	return true, nil
}

// DropAll removes every planner table.
func DropAll(ctx context.Context, db *sqlx.DB) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i]); err != nil {
			return fmt.Errorf("drop table %s: %w", Tables[i], err)
		}
	}
	return nil
}
