package handler

import "github.com/gin-gonic/gin"

// Handlers groups the planner HTTP handlers.
type Handlers struct {
	Catalog  *CatalogHandler
	Choices  *CourseChoiceHandler
	Activity *ActivityHandler
	Personal *PersonalActivityHandler
	Export   *ExportHandler
	Metrics  *MetricsHandler
}

// RegisterRoutes mounts the planner API on the group.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	api.GET("/campuses", h.Catalog.Campuses)
	api.GET("/courses", h.Catalog.ActiveCourses)
	api.GET("/courses/catalog", h.Catalog.Courses)
	api.GET("/courses/activities", h.Catalog.CourseActivities)
	api.GET("/semesters", h.Catalog.Semesters)
	api.POST("/catalog/import", h.Catalog.Import)

	api.GET("/course-choices", h.Choices.List)
	api.POST("/activities/search", h.Activity.Search)

	if h.Personal != nil {
		api.GET("/personal-activities", h.Personal.List)
		api.POST("/personal-activities", h.Personal.Create)
		api.DELETE("/personal-activities/:id", h.Personal.Delete)
	}
	if h.Export != nil {
		api.POST("/exports", h.Export.Create)
		api.GET("/exports/:token", h.Export.Download)
	}
	if h.Metrics != nil {
		api.GET("/metrics/summary", h.Metrics.Summary)
	}
}
