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

type courseChoiceService interface {
	Build(ctx context.Context, scope models.Scope, courseNames []string) (map[string]models.CourseChoice, error)
}

// CourseChoiceHandler serves the lecturer choice index.
type CourseChoiceHandler struct {
	service  courseChoiceService
	defaults ScopeDefaults
}

// NewCourseChoiceHandler builds a new handler.
func NewCourseChoiceHandler(service courseChoiceService, defaults ScopeDefaults) *CourseChoiceHandler {
	return &CourseChoiceHandler{service: service, defaults: defaults}
}

// List godoc
// @Summary Lecturer choices per course
// @Description Returns, per course name, the lecturers teaching lectures and practices. Repeat course to restrict the index.
// @Tags Planner
// @Produce json
// @Param campus query string false "Campus name in either language"
// @Param language query string false "Language (en|he)"
// @Param course query []string false "Course names" collectionFormat(multi)
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /course-choices [get]
func (h *CourseChoiceHandler) List(c *gin.Context) {
	var query dto.CourseChoicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	scope, err := resolveScope(query.Campus, query.Language, h.defaults)
	if err != nil {
		response.Error(c, err)
		return
	}
	choices, err := h.service.Build(c.Request.Context(), scope, query.Courses)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, choices, map[string]interface{}{
		"campus":   scope.Campus,
		"language": scope.Language,
		"count":    len(choices),
	})
}
