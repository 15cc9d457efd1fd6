package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-planner-api/internal/models"
)

// CatalogRepository writes a whole catalog atomically.
type CatalogRepository struct {
	db         *sqlx.DB
	campuses   *CampusRepository
	semesters  *SemesterRepository
	courses    *CourseRepository
	activities *ActivityRepository
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{
		db:         db,
		campuses:   NewCampusRepository(db),
		semesters:  NewSemesterRepository(db),
		courses:    NewCourseRepository(db),
		activities: NewActivityRepository(db),
	}
}

// Import stores the catalog in a single transaction. Existing rows are kept.
func (r *CatalogRepository) Import(ctx context.Context, catalog models.Catalog) (summary models.ImportSummary, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	semesters := semesterDictionary(catalog)
	if err = r.campuses.SaveAll(ctx, tx, []models.Campus{catalog.Campus}); err != nil {
		return summary, err
	}
	if err = r.semesters.SaveAll(ctx, tx, semesters); err != nil {
		return summary, err
	}
	if err = r.courses.SaveAll(ctx, tx, catalog.Courses, catalog.Language); err != nil {
		return summary, err
	}
	if err = r.activities.SaveAll(ctx, tx, catalog.Activities, catalog.Campus.ID, catalog.Language); err != nil {
		return summary, err
	}

	if err = tx.Commit(); err != nil {
		return summary, fmt.Errorf("commit catalog: %w", err)
	}

	summary = models.ImportSummary{
		CampusID:   catalog.Campus.ID,
		Language:   catalog.Language,
		Courses:    len(catalog.Courses),
		Activities: len(catalog.Activities),
	}
	for _, activity := range catalog.Activities {
		summary.Meetings += len(activity.Meetings)
	}
	return summary, nil
}

// semesterDictionary returns the catalog semesters followed by any semester a
// course runs in that the catalog list left out. Course semester links join
// on this table, so a missing entry would drop the link on read.
func semesterDictionary(catalog models.Catalog) []models.Semester {
	base := catalog.Semesters
	if len(base) == 0 {
		base = models.Semesters
	}
	seen := make(map[models.Semester]struct{}, len(models.Semesters))
	semesters := make([]models.Semester, 0, len(models.Semesters))
	add := func(semester models.Semester) {
		if _, ok := seen[semester]; ok {
			return
		}
		seen[semester] = struct{}{}
		semesters = append(semesters, semester)
	}
	for _, semester := range base {
		add(semester)
	}
	for _, course := range catalog.Courses {
		for _, semester := range course.Semesters {
			add(semester)
		}
	}
	return semesters
}
