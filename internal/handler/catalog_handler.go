package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/response"
)

type catalogService interface {
	Import(ctx context.Context, req dto.CatalogImportRequest) (*models.ImportSummary, error)
	Campuses(ctx context.Context, language models.Language) ([]dto.CampusItem, error)
	ActiveCourses(ctx context.Context, scope models.Scope) ([]models.Course, error)
	Courses(ctx context.Context, language models.Language) ([]models.Course, error)
	CourseActivities(ctx context.Context, scope models.Scope, courseNames []string) ([]models.AcademicActivity, error)
	Semesters(ctx context.Context) ([]models.Semester, error)
}

// CatalogHandler exposes catalog import and read endpoints.
type CatalogHandler struct {
	service  catalogService
	defaults ScopeDefaults
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService, defaults ScopeDefaults) *CatalogHandler {
	return &CatalogHandler{service: service, defaults: defaults}
}

// Campuses godoc
// @Summary List campuses
// @Tags Catalog
// @Produce json
// @Param language query string false "Language (en|he)"
// @Success 200 {object} response.Envelope
// @Router /campuses [get]
func (h *CatalogHandler) Campuses(c *gin.Context) {
	language, err := resolveLanguage(c.Query("language"), h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.Campuses(c.Request.Context(), language)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// ActiveCourses godoc
// @Summary List courses offered on a campus
// @Tags Catalog
// @Produce json
// @Param campus query string false "Campus name in either language"
// @Param language query string false "Language (en|he)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) ActiveCourses(c *gin.Context) {
	var query dto.ScopeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	scope, err := resolveScope(query.Campus, query.Language, h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	courses, err := h.service.ActiveCourses(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// Courses godoc
// @Summary List every stored course of a language
// @Tags Catalog
// @Produce json
// @Param language query string false "Language (en|he)"
// @Success 200 {object} response.Envelope
// @Router /courses/catalog [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	language, err := resolveLanguage(c.Query("language"), h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	courses, err := h.service.Courses(c.Request.Context(), language)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// CourseActivities godoc
// @Summary List every activity of courses on a campus
// @Description Activities are returned regardless of lecturer, with meetings.
// @Tags Catalog
// @Produce json
// @Param campus query string false "Campus name in either language"
// @Param language query string false "Language (en|he)"
// @Param course query []string false "Course names; all offered courses when omitted"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/activities [get]
func (h *CatalogHandler) CourseActivities(c *gin.Context) {
	var query dto.CourseActivitiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	scope, err := resolveScope(query.Campus, query.Language, h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	activities, err := h.service.CourseActivities(c.Request.Context(), scope, query.Courses)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ActivitySearchResponse{Activities: activities, Count: len(activities)})
}

// Semesters godoc
// @Summary List known semesters
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /semesters [get]
func (h *CatalogHandler) Semesters(c *gin.Context) {
	semesters, err := h.service.Semesters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, semesters)
}

// Import godoc
// @Summary Import a campus catalog
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CatalogImportRequest true "Catalog payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /catalog/import [post]
func (h *CatalogHandler) Import(c *gin.Context) {
	var req dto.CatalogImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid catalog payload"))
		return
	}
	summary, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, summary)
}
