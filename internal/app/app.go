// Package app wires configuration, storage and services into a runnable
// planner shared by the HTTP server and the command line tool.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/handler"
	"github.com/noah-isme/course-planner-api/internal/models"
	"github.com/noah-isme/course-planner-api/internal/repository"
	"github.com/noah-isme/course-planner-api/internal/service"
	"github.com/noah-isme/course-planner-api/pkg/cache"
	"github.com/noah-isme/course-planner-api/pkg/config"
	"github.com/noah-isme/course-planner-api/pkg/database"
	"github.com/noah-isme/course-planner-api/pkg/jobs"
	"github.com/noah-isme/course-planner-api/pkg/storage"
)

// App holds the wired planner components.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB

	Metrics    *service.MetricsService
	Catalog    *service.CatalogService
	Choices    *service.CourseChoiceService
	Activities *service.ActivityRetrievalService
	Personal   *service.PersonalActivityService
	Exports    *service.ExportService

	redis   *redis.Client
	cleanup *jobs.Queue
}

// New opens the store, applies the schema and builds every service. Redis is
// optional: when it cannot be reached the planner runs without a cache.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger, DB: db, Metrics: service.NewMetricsService()}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, course choice cache disabled", zap.Error(err))
		} else {
			a.redis = client
			cacheRepo = repository.NewCacheRepository(client, logger)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, a.Metrics, cfg.Cache.CourseChoicesTTL, logger, a.redis != nil)

	validate := validator.New()
	campusRepo := repository.NewCampusRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	roleRepo := repository.NewLecturerRoleRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	a.Catalog = service.NewCatalogService(catalogRepo, service.CatalogReaders{
		Campuses:   campusRepo,
		Courses:    courseRepo,
		Activities: activityRepo,
		Meetings:   meetingRepo,
		Semesters:  repository.NewSemesterRepository(db),
	}, cacheSvc, a.Metrics, validate, logger)
	a.Choices = service.NewCourseChoiceService(campusRepo, courseRepo, roleRepo, cacheSvc, a.Metrics, validate, logger,
		service.CourseChoiceConfig{CacheTTL: cfg.Cache.CourseChoicesTTL})
	a.Activities = service.NewActivityRetrievalService(campusRepo, activityRepo, meetingRepo, a.Metrics, validate, logger)
	a.Personal = service.NewPersonalActivityService(repository.NewPersonalActivityRepository(db), a.Metrics, validate, logger)

	results, err := storage.NewResultsDir(cfg.Planner.ResultsDir)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("prepare results directory: %w", err)
	}
	signer := storage.NewLinkSigner(cfg.Export.SigningSecret, cfg.Export.LinkTTL)
	a.Exports = service.NewExportService(a.Activities, results, signer,
		service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Export.ResultTTL},
		validate, logger, nil, nil)
	a.cleanup = jobs.NewQueue("timetable-cleanup", a.Exports.HandleCleanupJob, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 1,
		MaxRetries: 1,
		Logger:     logger,
	})
	a.Exports.SetCleanupQueue(a.cleanup)
	a.Exports.SetPersonalActivities(a.Personal)

	return a, nil
}

// StartBackground starts the timetable retention sweeper. Without it exports
// still work and old files are only removed by an explicit cleanup.
func (a *App) StartBackground(ctx context.Context) {
	a.cleanup.Start(ctx)
}

// ScopeDefaults returns the configured campus and language fallbacks.
func (a *App) ScopeDefaults() handler.ScopeDefaults {
	defaults := handler.ScopeDefaults{Campus: a.Config.Planner.DefaultCampus}
	if lang, err := models.ParseLanguage(a.Config.Planner.DefaultLanguage); err == nil {
		defaults.Language = lang
	}
	return defaults
}

// Handlers builds the HTTP handlers over the wired services.
func (a *App) Handlers() handler.Handlers {
	defaults := a.ScopeDefaults()
	return handler.Handlers{
		Catalog:  handler.NewCatalogHandler(a.Catalog, defaults),
		Choices:  handler.NewCourseChoiceHandler(a.Choices, defaults),
		Activity: handler.NewActivityHandler(a.Activities, nil, defaults),
		Personal: handler.NewPersonalActivityHandler(a.Personal),
		Export:   handler.NewExportHandler(a.Exports, defaults),
		Metrics:  handler.NewMetricsHandler(a.Metrics, a.Ready),
	}
}

// Ready reports whether the store is reachable and migrated.
func (a *App) Ready(ctx context.Context) error {
	if err := a.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	ok, err := database.TablesExist(ctx, a.DB)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("planner tables are missing")
	}
	return nil
}

// Close releases the store and cache connections.
func (a *App) Close() error {
	if a.cleanup != nil {
		a.cleanup.Stop()
	}
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
