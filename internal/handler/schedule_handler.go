package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcpheron/ccc-schedule/internal/model"
	"github.com/jmcpheron/ccc-schedule/internal/repository"
	"github.com/jmcpheron/ccc-schedule/internal/response"
	"github.com/jmcpheron/ccc-schedule/internal/service"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// ListSchedules godoc
// GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.scheduleService.ListSchedules(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if schedules == nil {
		schedules = []repository.StoredSchedule{}
	}
	response.Success(c, http.StatusOK, gin.H{"schedules": schedules})
}

// GetSchedule godoc
// GET /api/v1/schedules/:college?term=202530
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	document, err := h.scheduleService.GetDocument(c.Request.Context(), c.Param("college"), c.Query("term"))
	if err != nil {
		failScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedule_document": json.RawMessage(document)})
}

// FilterCourses godoc
// GET /api/v1/schedules/:college/courses — filter criteria arrive as
// query parameters bound straight onto FilterOptions.
func (h *ScheduleHandler) FilterCourses(c *gin.Context) {
	var opts model.FilterOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	courses, err := h.scheduleService.FilterCourses(c.Request.Context(), c.Param("college"), c.Query("term"), opts)
	if err != nil {
		failScheduleError(c, err)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"courses": courses,
		"count":   len(courses),
	})
}

// GetFilters godoc
// GET /api/v1/schedules/:college/filters
func (h *ScheduleHandler) GetFilters(c *gin.Context) {
	values, err := h.scheduleService.UniqueValues(c.Request.Context(), c.Param("college"), c.Query("term"))
	if err != nil {
		failScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"filters": values})
}

func failScheduleError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrScheduleNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
