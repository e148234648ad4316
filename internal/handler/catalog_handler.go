package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adewale-oss/timetable-api/internal/dto"
	"github.com/adewale-oss/timetable-api/internal/service"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
	"github.com/adewale-oss/timetable-api/pkg/response"
)

// CatalogHandler exposes lecturer, venue, and time slot endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListLecturers godoc
// @Summary List lecturers
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lecturers [get]
func (h *CatalogHandler) ListLecturers(c *gin.Context) {
	lecturers, err := h.service.ListLecturers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturers, nil)
}

// GetLecturer godoc
// @Summary Get lecturer by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [get]
func (h *CatalogHandler) GetLecturer(c *gin.Context) {
	lecturer, err := h.service.GetLecturer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer, nil)
}

// CreateLecturer godoc
// @Summary Register a lecturer
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateLecturerRequest true "Lecturer payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lecturers [post]
func (h *CatalogHandler) CreateLecturer(c *gin.Context) {
	var req dto.CreateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lecturer payload"))
		return
	}
	lecturer, err := h.service.CreateLecturer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecturer)
}

// UpdateLecturer godoc
// @Summary Update a lecturer
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param payload body dto.UpdateLecturerRequest true "Lecturer payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [put]
func (h *CatalogHandler) UpdateLecturer(c *gin.Context) {
	var req dto.UpdateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid lecturer payload"))
		return
	}
	lecturer, err := h.service.UpdateLecturer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer, nil)
}

// DeleteLecturer godoc
// @Summary Delete a lecturer
// @Tags Catalog
// @Param id path string true "Lecturer ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [delete]
func (h *CatalogHandler) DeleteLecturer(c *gin.Context) {
	if err := h.service.DeleteLecturer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListVenues godoc
// @Summary List venues
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /venues [get]
func (h *CatalogHandler) ListVenues(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venues, nil)
}

// GetVenue godoc
// @Summary Get venue by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /venues/{id} [get]
func (h *CatalogHandler) GetVenue(c *gin.Context) {
	venue, err := h.service.GetVenue(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venue, nil)
}

// CreateVenue godoc
// @Summary Register a venue
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateVenueRequest true "Venue payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /venues [post]
func (h *CatalogHandler) CreateVenue(c *gin.Context) {
	var req dto.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid venue payload"))
		return
	}
	venue, err := h.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, venue)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param payload body dto.UpdateVenueRequest true "Venue payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /venues/{id} [put]
func (h *CatalogHandler) UpdateVenue(c *gin.Context) {
	var req dto.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid venue payload"))
		return
	}
	venue, err := h.service.UpdateVenue(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venue, nil)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Tags Catalog
// @Param id path string true "Venue ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /venues/{id} [delete]
func (h *CatalogHandler) DeleteVenue(c *gin.Context) {
	if err := h.service.DeleteVenue(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTimeSlots godoc
// @Summary List teaching periods
// @Description Returns all teaching periods ordered by day and start time
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeslots [get]
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	slots, err := h.service.ListTimeSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// CreateTimeSlot godoc
// @Summary Register a teaching period
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateTimeSlotRequest true "Time slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timeslots [post]
func (h *CatalogHandler) CreateTimeSlot(c *gin.Context) {
	var req dto.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slot payload"))
		return
	}
	slot, err := h.service.CreateTimeSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// DeleteTimeSlot godoc
// @Summary Delete a teaching period
// @Tags Catalog
// @Param id path string true "Time slot ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /timeslots/{id} [delete]
func (h *CatalogHandler) DeleteTimeSlot(c *gin.Context) {
	if err := h.service.DeleteTimeSlot(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
