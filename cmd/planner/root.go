package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-planner-api/internal/app"
	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	"github.com/noah-isme/course-planner-api/pkg/config"
	"github.com/noah-isme/course-planner-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "Course planner catalog and retrieval tool",
		Long: `planner manages the local course catalog store and answers lecturer
choice and activity retrieval queries against it.

Storage, cache and results directory come from the same environment as the
API server (DB_DRIVER, SQLITE_PATH, RESULTS_DIR, ...).`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newImportCmd(),
		newChoicesCmd(),
		newRetrieveCmd(),
		newExportCmd(),
		newCleanupCmd(),
	)
	return root
}

// withPlanner loads configuration, wires the planner and runs fn against it.
func withPlanner(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg, "planner-cli")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	a, err := app.New(cmd.Context(), cfg, logr)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	return fn(cmd.Context(), a)
}

type scopeFlags struct {
	campus   string
	language string
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.campus, "campus", "", "Campus name in either language (default DEFAULT_CAMPUS)")
	cmd.Flags().StringVar(&f.language, "language", "", "Catalog language: en or he (default DEFAULT_LANGUAGE)")
}

func (f *scopeFlags) resolve(a *app.App) (models.Scope, error) {
	defaults := a.ScopeDefaults()
	scope := models.Scope{Campus: strings.TrimSpace(f.campus), Language: defaults.Language}
	if scope.Campus == "" {
		scope.Campus = defaults.Campus
	}
	if scope.Campus == "" {
		return models.Scope{}, fmt.Errorf("--campus is required")
	}
	if f.language != "" {
		lang, err := models.ParseLanguage(f.language)
		if err != nil {
			return models.Scope{}, err
		}
		scope.Language = lang
	}
	if !scope.Language.Valid() {
		return models.Scope{}, fmt.Errorf("--language is required")
	}
	return scope, nil
}

func readChoices(path string) (map[string]models.CourseChoice, map[string]dto.ChoicePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read choices: %w", err)
	}
	var payload map[string]dto.ChoicePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, fmt.Errorf("parse choices %s: %w", path, err)
	}
	return dto.ToChoices(payload), payload, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
