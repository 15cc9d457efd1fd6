package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/response"
)

type activityRetrievalService interface {
	Retrieve(ctx context.Context, choices map[string]models.CourseChoice, scope models.Scope) ([]models.AcademicActivity, error)
}

// ActivityHandler serves activity retrieval.
type ActivityHandler struct {
	service  activityRetrievalService
	validate *validator.Validate
	defaults ScopeDefaults
}

// NewActivityHandler builds a new handler.
func NewActivityHandler(service activityRetrievalService, validate *validator.Validate, defaults ScopeDefaults) *ActivityHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ActivityHandler{service: service, validate: validate, defaults: defaults}
}

// Search godoc
// @Summary Retrieve activities for lecturer choices
// @Description Empty lecturer lists accept any lecturer of that kind group. No choices returns no activities.
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.ActivitySearchRequest true "Choices keyed by course name"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/search [post]
func (h *ActivityHandler) Search(c *gin.Context) {
	var req dto.ActivitySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search payload"))
		return
	}
	scope, err := resolveScope(req.Campus, req.Language, h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	activities, err := h.service.Retrieve(c.Request.Context(), dto.ToChoices(req.Choices), scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ActivitySearchResponse{Activities: activities, Count: len(activities)})
}
