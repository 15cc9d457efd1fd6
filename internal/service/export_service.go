package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/export"
	"github.com/noah-isme/course-planner-api/pkg/jobs"
)

// CleanupJobType marks retention sweeps queued after an export.
const CleanupJobType = "timetable_cleanup"

// ExportFormat names a rendered timetable format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type activityRetriever interface {
	Retrieve(ctx context.Context, choices map[string]models.CourseChoice, scope models.Scope) ([]models.AcademicActivity, error)
}

type resultStore interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type downloadSigner interface {
	Sign(exportID, relPath string) (string, time.Time, error)
	Verify(token string) (exportID, relPath string, err error)
}

type personalActivityLister interface {
	List(ctx context.Context) ([]models.PersonalActivity, error)
}

type cleanupScheduler interface {
	TryEnqueue(job jobs.Job) error
}

type csvRenderer interface {
	Render(rows []export.Row) ([]byte, error)
}

type pdfRenderer interface {
	Render(rows []export.Row, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult describes a stored timetable.
type ExportResult struct {
	ID           string
	RelativePath string
	URL          string
	Format       ExportFormat
	ExpiresAt    time.Time
	Activities   int
	Rows         int
}

// ExportService renders retrieved activities as timetables and stores them
// in the results directory.
type ExportService struct {
	retriever activityRetriever
	storage   resultStore
	signer    downloadSigner
	csv       csvRenderer
	pdf       pdfRenderer
	validate  *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	sweeper   cleanupScheduler
	personal  personalActivityLister
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the default exporters.
func NewExportService(retriever activityRetriever, storage resultStore, signer downloadSigner, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 72 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		retriever: retriever,
		storage:   storage,
		signer:    signer,
		csv:       csv,
		pdf:       pdf,
		validate:  validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SetPersonalActivities lets exports include the user's personal activities.
func (s *ExportService) SetPersonalActivities(p personalActivityLister) {
	s.personal = p
}

// SetCleanupQueue makes every export schedule a retention sweep.
func (s *ExportService) SetCleanupQueue(q cleanupScheduler) {
	s.sweeper = q
}

// HandleCleanupJob removes timetables past the configured retention.
func (s *ExportService) HandleCleanupJob(ctx context.Context, job jobs.Job) error {
	removed, err := s.Cleanup(0)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		s.logger.Info("expired timetables removed", zap.String("trigger", job.ID), zap.Int("count", len(removed)))
	}
	return nil
}

// Export retrieves the activities for the choices and stores the rendered
// timetable, returning a signed download link.
func (s *ExportService) Export(ctx context.Context, scope models.Scope, req dto.ExportRequest) (*ExportResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	format := ExportFormat(strings.ToLower(req.Format))

	activities, err := s.retriever.Retrieve(ctx, dto.ToChoices(req.Choices), scope)
	if err != nil {
		return nil, err
	}
	rows := TimetableRows(activities)
	if req.IncludePersonal && s.personal != nil {
		personal, err := s.personal.List(ctx)
		if err != nil {
			return nil, err
		}
		rows = append(rows, PersonalRows(personal)...)
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s timetable (%s)", scope.Campus, scope.Language)
	}

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(rows)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(rows, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %s", req.Format))
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render timetable")
	}

	id := uuid.NewString()
	relPath, err := s.storage.Save(s.buildFilename(id, scope, format), payload)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to store timetable")
	}
	token, expiresAt, err := s.signer.Sign(id, relPath)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign download link")
	}

	if s.sweeper != nil {
		if err := s.sweeper.TryEnqueue(jobs.Job{ID: id, Type: CleanupJobType}); err != nil {
			s.logger.Debug("cleanup not scheduled", zap.Error(err))
		}
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	s.logger.Info("timetable exported",
		zap.String("export_id", id),
		zap.String("format", string(format)),
		zap.String("path", relPath),
		zap.Int("activities", len(activities)))
	return &ExportResult{
		ID:           id,
		RelativePath: relPath,
		URL:          fmt.Sprintf("%s/exports/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
		Activities:   len(activities),
		Rows:         len(rows),
	}, nil
}

// Open resolves a download token to the stored file.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	_, relPath, err := s.signer.Verify(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "download link is invalid or expired")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "timetable no longer available")
	}
	return file, relPath, nil
}

// Cleanup removes stored timetables older than ttl, or the configured
// retention when ttl is not positive.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to clean up timetables")
	}
	return removed, nil
}

func (s *ExportService) buildFilename(id string, scope models.Scope, format ExportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	shortID := strings.SplitN(id, "-", 2)[0]
	return fmt.Sprintf("timetables/%s_%s_%s_%s.%s", sanitizeFilename(scope.Campus), scope.Language, timestamp, shortID, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(strings.TrimSpace(raw))
	if len(result) > 60 {
		return result[:60]
	}
	return result
}

// TimetableRows flattens activities into one row per meeting. Activities
// without meetings still get a row.
func TimetableRows(activities []models.AcademicActivity) []export.Row {
	rows := make([]export.Row, 0, len(activities))
	for _, activity := range activities {
		base := export.Row{
			Course:       activity.Name,
			CourseNumber: activity.CourseNumber,
			ActivityID:   activity.ActivityID,
			Kind:         activity.Kind.String(),
			Lecturer:     activity.LecturerName,
			Location:     activity.Location,
		}
		if activity.MaxCapacity > 0 {
			base.Capacity = fmt.Sprintf("%d/%d", activity.CurrentCapacity, activity.MaxCapacity)
		}
		if len(activity.Meetings) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, meeting := range activity.Meetings {
			row := base
			row.Day = meeting.DayName()
			row.Start = meeting.StartTime
			row.End = meeting.EndTime
			rows = append(rows, row)
		}
	}
	return rows
}

// PersonalRows renders personal activities as timetable rows of kind
// PERSONAL, one per meeting.
func PersonalRows(activities []models.PersonalActivity) []export.Row {
	rows := make([]export.Row, 0, len(activities))
	for _, activity := range activities {
		for _, meeting := range activity.Meetings {
			rows = append(rows, export.Row{
				Course: activity.Name,
				Kind:   "PERSONAL",
				Day:    meeting.DayName(),
				Start:  meeting.StartTime,
				End:    meeting.EndTime,
			})
		}
	}
	return rows
}
