package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/jobs"
	"github.com/noah-isme/course-planner-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	store, err := storage.NewResultsDir(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewLinkSigner("secret", time.Hour)
	retriever := newRetrievalService(calculusCatalog())
	return NewExportService(retriever, store, signer, ExportConfig{APIPrefix: "/api/v1/"}, validator.New(), zap.NewNop(), nil, nil)
}

func exportRequest(format string) dto.ExportRequest {
	return dto.ExportRequest{
		Format: format,
		Choices: map[string]dto.ChoicePayload{
			"Calculus I": {LectureLecturers: []string{"Cohen"}},
		},
	}
}

func TestExportServiceCSVRoundTrip(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Export(context.Background(), mainEnglish, exportRequest("csv"))
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, result.Format)
	assert.Equal(t, 5, result.Activities)
	assert.Equal(t, 5, result.Rows)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/exports/"))
	assert.True(t, strings.HasPrefix(result.RelativePath, "timetables/Main_en_"))

	token := strings.TrimPrefix(result.URL, "/api/v1/exports/")
	file, name, err := svc.Open(token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, result.RelativePath, name)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "course,course_number,activity_id")
	assert.Contains(t, string(content), "Calculus I,120701,L1,LECTURE,Cohen,SUNDAY,10:00,12:00")
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Export(context.Background(), mainEnglish, exportRequest("pdf"))
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, result.Format)
	assert.True(t, strings.HasSuffix(result.RelativePath, ".pdf"))
}

func TestExportServiceRejectsBadRequests(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.Export(context.Background(), mainEnglish, exportRequest("xlsx"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Export(context.Background(), models.Scope{Campus: "Atlantis", Language: models.LanguageEnglish}, exportRequest("csv"))
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, _, err = svc.Open("not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestExportServiceCleanup(t *testing.T) {
	svc := newExportServiceForTest(t)
	_, err := svc.Export(context.Background(), mainEnglish, exportRequest("csv"))
	require.NoError(t, err)

	removed, err := svc.Cleanup(-1)
	require.NoError(t, err)
	assert.Empty(t, removed)

	removed, err = svc.Cleanup(time.Nanosecond)
	require.NoError(t, err)
	assert.Len(t, removed, 1)
}

func TestTimetableRows(t *testing.T) {
	rows := TimetableRows([]models.AcademicActivity{
		{Name: "Algebra", Kind: models.ActivitySeminar, ActivityID: "A1", CurrentCapacity: 3, MaxCapacity: 20,
			Meetings: []models.Meeting{{Day: 2, StartTime: "08:00", EndTime: "10:00"}, {Day: 4, StartTime: "08:00", EndTime: "10:00"}}},
		{Name: "Algebra", Kind: models.ActivityOther, ActivityID: "A2"},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "MONDAY", rows[0].Day)
	assert.Equal(t, "WEDNESDAY", rows[1].Day)
	assert.Equal(t, "3/20", rows[0].Capacity)
	assert.Equal(t, "SEMINAR", rows[0].Kind)
	assert.Empty(t, rows[2].Day)
	assert.Empty(t, rows[2].Capacity)
}

type recordingQueue struct {
	jobs []jobs.Job
}

func (q *recordingQueue) TryEnqueue(job jobs.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func TestExportServiceSchedulesCleanup(t *testing.T) {
	svc := newExportServiceForTest(t)
	queue := &recordingQueue{}
	svc.SetCleanupQueue(queue)

	result, err := svc.Export(context.Background(), mainEnglish, exportRequest("csv"))
	require.NoError(t, err)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, result.ID, queue.jobs[0].ID)
	assert.Equal(t, CleanupJobType, queue.jobs[0].Type)

	require.NoError(t, svc.HandleCleanupJob(context.Background(), queue.jobs[0]))
	_, _, err = svc.Open(strings.TrimPrefix(result.URL, "/api/v1/exports/"))
	assert.NoError(t, err, "fresh timetables survive the sweep")
}

func TestExportServiceEmptyChoices(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.Export(context.Background(), mainEnglish, dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)
	assert.Zero(t, result.Activities)
	assert.Zero(t, result.Rows)
}

func TestExportServiceIncludesPersonalActivities(t *testing.T) {
	svc := newExportServiceForTest(t)
	personal := &personalStoreStub{saved: []models.PersonalActivity{
		models.NewPersonalActivity("Work", models.Meeting{Day: 2, StartTime: "08:00", EndTime: "12:00"}),
	}}
	svc.SetPersonalActivities(NewPersonalActivityService(personal, nil, nil, nil))

	without, err := svc.Export(context.Background(), mainEnglish, exportRequest("csv"))
	require.NoError(t, err)

	req := exportRequest("csv")
	req.IncludePersonal = true
	with, err := svc.Export(context.Background(), mainEnglish, req)
	require.NoError(t, err)
	assert.Equal(t, without.Activities, with.Activities)
	assert.Equal(t, without.Rows+1, with.Rows)

	file, _, err := svc.Open(strings.TrimPrefix(with.URL, "/api/v1/exports/"))
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Work,0,,PERSONAL,,MONDAY,08:00,12:00")
}

func TestExportFilenameToleratesShortIDs(t *testing.T) {
	svc := newExportServiceForTest(t)

	assert.NotPanics(t, func() {
		name := svc.buildFilename("abc", mainEnglish, ExportFormatCSV)
		assert.True(t, strings.HasSuffix(name, "_abc.csv"), name)
	})
	name := svc.buildFilename("0d1f6c2e-1111-2222-3333-444455556666", mainEnglish, ExportFormatPDF)
	assert.True(t, strings.HasSuffix(name, "_0d1f6c2e.pdf"), name)
}

func TestPersonalRows(t *testing.T) {
	rows := PersonalRows([]models.PersonalActivity{
		models.NewPersonalActivity("Work",
			models.Meeting{Day: 1, StartTime: "08:00", EndTime: "12:00"},
			models.Meeting{Day: 3, StartTime: "08:00", EndTime: "12:00"}),
		models.NewPersonalActivity("Empty"),
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "PERSONAL", rows[0].Kind)
	assert.Equal(t, "SUNDAY", rows[0].Day)
	assert.Equal(t, "TUESDAY", rows[1].Day)
}
