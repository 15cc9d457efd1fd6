package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type campusResolver interface {
	ResolveID(ctx context.Context, name string) (int64, error)
}

func validateScope(validate *validator.Validate, scope models.Scope) error {
	if err := validate.Struct(scope); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "campus and a supported language are required")
	}
	return nil
}

// resolveCampus maps an unknown campus to NotFound.
func resolveCampus(ctx context.Context, campuses campusResolver, metrics *MetricsService, scope models.Scope) (int64, error) {
	start := time.Now()
	id, err := campuses.ResolveID(ctx, strings.TrimSpace(scope.Campus))
	metrics.ObserveDBQuery("campus_resolve", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("campus %q not found", scope.Campus))
		}
		return 0, appErrors.Internal(err, fmt.Sprintf("failed to resolve campus %q", scope.Campus))
	}
	return id, nil
}

func scopeContext(scope models.Scope) string {
	return fmt.Sprintf("campus %q in language %s", scope.Campus, scope.Language)
}
