package handler

import (
	"strings"

	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

// ScopeDefaults fill in the campus and language a request leaves out.
type ScopeDefaults struct {
	Campus   string
	Language models.Language
}

func resolveScope(campus, language string, defaults ScopeDefaults) (models.Scope, error) {
	campus = strings.TrimSpace(campus)
	if campus == "" {
		campus = defaults.Campus
	}
	if campus == "" {
		return models.Scope{}, appErrors.Clone(appErrors.ErrValidation, "campus is required")
	}
	lang, err := resolveLanguage(language, defaults)
	if err != nil {
		return models.Scope{}, err
	}
	return models.Scope{Campus: campus, Language: lang}, nil
}

func resolveLanguage(language string, defaults ScopeDefaults) (models.Language, error) {
	if strings.TrimSpace(language) == "" {
		if defaults.Language.Valid() {
			return defaults.Language, nil
		}
		return "", appErrors.Clone(appErrors.ErrValidation, "language is required")
	}
	lang, err := models.ParseLanguage(language)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "language must be en or he")
	}
	return lang, nil
}
