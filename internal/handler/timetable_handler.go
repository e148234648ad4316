package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adewale-oss/timetable-api/internal/dto"
	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/service"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
	"github.com/adewale-oss/timetable-api/pkg/response"
)

type timetableOrchestrator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	GenerateAsync(req dto.GenerateTimetableRequest) (*dto.GenerateJobResponse, error)
	JobStatus(jobID string) (*dto.JobStatusResponse, error)
	Get(ctx context.Context, id string) (*models.Timetable, error)
	List(ctx context.Context, query dto.TimetableQuery) ([]models.Timetable, *models.Pagination, error)
	Grid(ctx context.Context, timetableID string) (*dto.GridResponse, error)
	Stats(ctx context.Context, semester int) (*models.TimetableStats, error)
	Publish(ctx context.Context, id string) (*models.Timetable, error)
	Delete(ctx context.Context, id string) error
	UpdateEntry(ctx context.Context, timetableID, entryID string, req dto.UpdateEntryRequest) (*models.TimetableEntry, error)
}

type timetableExporter interface {
	ExportCSV(ctx context.Context, timetableID string) (*service.ExportFile, error)
	ExportPDF(ctx context.Context, timetableID string) (*service.ExportFile, error)
}

// TimetableHandler exposes timetable generation and management endpoints.
type TimetableHandler struct {
	service  timetableOrchestrator
	exporter timetableExporter
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService, exporter *service.ExportService) *TimetableHandler {
	return &TimetableHandler{service: svc, exporter: exporter}
}

// Generate godoc
// @Summary Generate a timetable
// @Description Run the scheduler for a semester and persist the resulting draft timetable
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// GenerateAsync godoc
// @Summary Queue a timetable generation job
// @Description Enqueue generation and return a job handle for polling
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generate payload"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetables/generate/async [post]
func (h *TimetableHandler) GenerateAsync(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}

	res, err := h.service.GenerateAsync(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, res, nil)
}

// JobStatus godoc
// @Summary Get generation job status
// @Tags Timetables
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/jobs/{id} [get]
func (h *TimetableHandler) JobStatus(c *gin.Context) {
	status, err := h.service.JobStatus(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// List godoc
// @Summary List timetables
// @Tags Timetables
// @Produce json
// @Param academicSession query string false "Academic session"
// @Param semester query int false "Semester (1 or 2)"
// @Param status query string false "Status (DRAFT, PUBLISHED, ARCHIVED)"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable query"))
		return
	}

	timetables, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, timetables, pagination)
}

// Get godoc
// @Summary Get timetable by ID
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	timetable, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Grid godoc
// @Summary Get timetable grid
// @Description Returns the timetable laid out as times by days for rendering
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/{id}/grid [get]
func (h *TimetableHandler) Grid(c *gin.Context) {
	grid, err := h.service.Grid(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Stats godoc
// @Summary Get scheduling input statistics
// @Tags Timetables
// @Produce json
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {object} response.Envelope
// @Router /timetables/stats [get]
func (h *TimetableHandler) Stats(c *gin.Context) {
	semester, err := strconv.Atoi(c.DefaultQuery("semester", "1"))
	if err != nil || semester < 1 || semester > 2 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), semester)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Publish godoc
// @Summary Publish a draft timetable
// @Description Promote a draft to the active published timetable, archiving any previously active one
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetables/{id}/publish [post]
func (h *TimetableHandler) Publish(c *gin.Context) {
	timetable, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Delete godoc
// @Summary Delete a timetable
// @Description Delete a draft or archived timetable. Published timetables must be archived first
// @Tags Timetables
// @Param id path string true "Timetable ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateEntry godoc
// @Summary Move an entry or assign a venue
// @Description Apply a manual slot move or venue assignment after clash checks
// @Tags Timetables
// @Accept json
// @Produce json
// @Param id path string true "Timetable ID"
// @Param entryId path string true "Entry ID"
// @Param payload body dto.UpdateEntryRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetables/{id}/entries/{entryId} [patch]
func (h *TimetableHandler) UpdateEntry(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid entry payload"))
		return
	}

	entry, err := h.service.UpdateEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Export godoc
// @Summary Export a timetable
// @Description Download the timetable as a CSV listing or a PDF weekly grid
// @Tags Timetables
// @Produce octet-stream
// @Param id path string true "Timetable ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /timetables/{id}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	var file *service.ExportFile
	var err error

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		file, err = h.exporter.ExportCSV(c.Request.Context(), c.Param("id"))
	case "pdf":
		file, err = h.exporter.ExportPDF(c.Request.Context(), c.Param("id"))
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
