package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

type semesterRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// SemesterRepository persists the semester dictionary.
type SemesterRepository struct {
	db *sqlx.DB
}

// NewSemesterRepository constructs the repository.
func NewSemesterRepository(db *sqlx.DB) *SemesterRepository {
	return &SemesterRepository{db: db}
}

// List returns stored semesters. Unknown names are skipped.
func (r *SemesterRepository) List(ctx context.Context) ([]models.Semester, error) {
	var rows []semesterRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM semesters ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list semesters: %w", err)
	}
	semesters := make([]models.Semester, 0, len(rows))
	for _, row := range rows {
		semester, err := models.ParseSemester(row.Name)
		if err != nil {
			continue
		}
		semesters = append(semesters, semester)
	}
	return semesters, nil
}

// SaveAll inserts semesters by id and name.
func (r *SemesterRepository) SaveAll(ctx context.Context, exec sqlx.ExtContext, semesters []models.Semester) error {
	query := exec.Rebind(`INSERT INTO semesters (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`)
	for _, semester := range semesters {
		if _, err := exec.ExecContext(ctx, query, int64(semester), semester.String()); err != nil {
			return fmt.Errorf("save semester %s: %w", semester, err)
		}
	}
	return nil
}
