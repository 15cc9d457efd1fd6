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

type personalActivityService interface {
	Save(ctx context.Context, req dto.PersonalActivitiesRequest) ([]models.PersonalActivity, error)
	List(ctx context.Context) ([]models.PersonalActivity, error)
	Delete(ctx context.Context, id string) error
}

// PersonalActivityHandler manages personal busy slots.
type PersonalActivityHandler struct {
	service personalActivityService
}

// NewPersonalActivityHandler builds a new handler.
func NewPersonalActivityHandler(service personalActivityService) *PersonalActivityHandler {
	return &PersonalActivityHandler{service: service}
}

// List godoc
// @Summary List personal activities
// @Tags Personal
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /personal-activities [get]
func (h *PersonalActivityHandler) List(c *gin.Context) {
	activities, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities, map[string]interface{}{"count": len(activities)})
}

// Create godoc
// @Summary Store personal activities
// @Tags Personal
// @Accept json
// @Produce json
// @Param payload body dto.PersonalActivitiesRequest true "Personal activities"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /personal-activities [post]
func (h *PersonalActivityHandler) Create(c *gin.Context) {
	var req dto.PersonalActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid personal activities payload"))
		return
	}
	activities, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, activities)
}

// Delete godoc
// @Summary Delete a personal activity
// @Tags Personal
// @Param id path string true "Personal activity id"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /personal-activities/{id} [delete]
func (h *PersonalActivityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
