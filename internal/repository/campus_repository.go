package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

// CampusRepository persists campuses.
type CampusRepository struct {
	db *sqlx.DB
}

// NewCampusRepository constructs the repository.
func NewCampusRepository(db *sqlx.DB) *CampusRepository {
	return &CampusRepository{db: db}
}

// ResolveID returns the id of the campus whose English or Hebrew name matches.
// sql.ErrNoRows is returned unwrapped for unknown names.
func (r *CampusRepository) ResolveID(ctx context.Context, name string) (int64, error) {
	query := r.db.Rebind(`SELECT id FROM campuses WHERE english_name = ? OR hebrew_name = ? ORDER BY id LIMIT 1`)
	var id int64
	if err := r.db.GetContext(ctx, &id, query, name, name); err != nil {
		return 0, err
	}
	return id, nil
}

// List returns every campus ordered by id.
func (r *CampusRepository) List(ctx context.Context) ([]models.Campus, error) {
	const query = `SELECT id, english_name, hebrew_name FROM campuses ORDER BY id`
	var campuses []models.Campus
	if err := r.db.SelectContext(ctx, &campuses, query); err != nil {
		return nil, fmt.Errorf("list campuses: %w", err)
	}
	return campuses, nil
}

// SaveAll inserts campuses, keeping existing rows untouched.
func (r *CampusRepository) SaveAll(ctx context.Context, exec sqlx.ExtContext, campuses []models.Campus) error {
	const query = `INSERT INTO campuses (id, english_name, hebrew_name) VALUES (:id, :english_name, :hebrew_name) ON CONFLICT DO NOTHING`
	for i := range campuses {
		if _, err := sqlx.NamedExecContext(ctx, exec, query, &campuses[i]); err != nil {
			return fmt.Errorf("save campus %d: %w", campuses[i].ID, err)
		}
	}
	return nil
}
