package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	"github.com/noah-isme/course-planner-api/internal/service"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, scope models.Scope, req dto.ExportRequest) (*service.ExportResult, error)
	Open(token string) (*os.File, string, error)
}

// ExportHandler renders and serves timetable files.
type ExportHandler struct {
	service  exportService
	defaults ScopeDefaults
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService, defaults ScopeDefaults) *ExportHandler {
	return &ExportHandler{service: service, defaults: defaults}
}

// Create godoc
// @Summary Export a timetable
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	scope, err := resolveScope(req.Campus, req.Language, h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Export(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ExportResponse{
		ID:         result.ID,
		Format:     string(result.Format),
		URL:        result.URL,
		ExpiresAt:  result.ExpiresAt,
		Activities: result.Activities,
		Rows:       result.Rows,
	})
}

// Download godoc
// @Summary Download an exported timetable
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, name, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read timetable"))
		return
	}
	contentType := "text/csv"
	if filepath.Ext(name) == ".pdf" {
		contentType = "application/pdf"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": `attachment; filename="` + filepath.Base(name) + `"`,
	})
}
