package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcpheron/ccc-schedule/internal/response"
	"github.com/jmcpheron/ccc-schedule/internal/service"
	"github.com/jmcpheron/ccc-schedule/internal/transform"
	"github.com/jmcpheron/ccc-schedule/internal/validator"
)

type IngestHandler struct {
	scheduleService  *service.ScheduleService
	transformService *service.TransformService
}

func NewIngestHandler(scheduleService *service.ScheduleService, transformService *service.TransformService) *IngestHandler {
	return &IngestHandler{
		scheduleService:  scheduleService,
		transformService: transformService,
	}
}

// TransformRequest is the payload for transforming a raw feed.
type TransformRequest struct {
	Source  string          `json:"source" binding:"required"`
	College string          `json:"college" binding:"required"`
	Feed    json.RawMessage `json:"feed" binding:"required"`
}

// IngestSchedule godoc
// POST /api/v1/admin/schedules/:college?strict=true — body is the
// canonical document itself. Structural violations reject with the full
// violation list; semantic findings are reported on acceptance.
func (h *IngestHandler) IngestSchedule(c *gin.Context) {
	document, err := io.ReadAll(c.Request.Body)
	if err != nil || len(document) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	strict := c.Query("strict") == "true"
	report, violations, err := h.scheduleService.Ingest(c.Request.Context(), c.Param("college"), document, strict)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSchemaViolations):
			response.FailWithDetails(c, http.StatusUnprocessableEntity, response.ErrSchemaViolations, violations)
		case errors.Is(err, service.ErrNoTerm),
			errors.Is(err, transform.ErrMissingCollege),
			errors.Is(err, transform.ErrMissingFeatures):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"report": report})
}

// TransformFeed godoc
// POST /api/v1/admin/transform
func (h *IngestHandler) TransformFeed(c *gin.Context) {
	var req TransformRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	document, err := h.transformService.TransformFeed(req.Source, req.College, req.Feed)
	if err != nil {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrUnknownSource)
		return
	}

	c.Data(http.StatusOK, "application/json", document)
}

// ListSources godoc
// GET /api/v1/sources
func (h *IngestHandler) ListSources(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"sources": h.transformService.Sources()})
}
