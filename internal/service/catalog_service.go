package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/adewale-oss/timetable-api/internal/dto"
	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/scheduler"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
)

type lecturerRepository interface {
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
	List(ctx context.Context) ([]models.Lecturer, error)
	Create(ctx context.Context, lecturer *models.Lecturer) error
	Update(ctx context.Context, lecturer *models.Lecturer) error
	Delete(ctx context.Context, id string) error
}

type venueRepository interface {
	FindByID(ctx context.Context, id string) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) error
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id string) error
}

type timeSlotRepository interface {
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	List(ctx context.Context) ([]models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the scheduling inputs: lecturers, venues, and
// teaching periods.
type CatalogService struct {
	lecturers lecturerRepository
	venues    venueRepository
	slots     timeSlotRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(lecturers lecturerRepository, venues venueRepository, slots timeSlotRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{lecturers: lecturers, venues: venues, slots: slots, validator: validate, logger: logger}
}

// GetLecturer returns a lecturer by identifier.
func (s *CatalogService) GetLecturer(ctx context.Context, id string) (*models.Lecturer, error) {
	lecturer, err := s.lecturers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}
	return lecturer, nil
}

// ListLecturers returns all lecturers.
func (s *CatalogService) ListLecturers(ctx context.Context) ([]models.Lecturer, error) {
	lecturers, err := s.lecturers.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecturers")
	}
	return lecturers, nil
}

// CreateLecturer registers a new lecturer.
func (s *CatalogService) CreateLecturer(ctx context.Context, req dto.CreateLecturerRequest) (*models.Lecturer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecturer payload")
	}
	lecturer := &models.Lecturer{
		Name:           req.Name,
		Email:          req.Email,
		Department:     req.Department,
		MaxHoursPerDay: req.MaxHoursPerDay,
	}
	if err := s.lecturers.Create(ctx, lecturer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lecturer")
	}
	return lecturer, nil
}

// UpdateLecturer modifies an existing lecturer.
func (s *CatalogService) UpdateLecturer(ctx context.Context, id string, req dto.UpdateLecturerRequest) (*models.Lecturer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecturer payload")
	}
	lecturer, err := s.GetLecturer(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		lecturer.Name = *req.Name
	}
	if req.Department != nil {
		lecturer.Department = *req.Department
	}
	if req.MaxHoursPerDay != nil {
		lecturer.MaxHoursPerDay = *req.MaxHoursPerDay
	}
	if err := s.lecturers.Update(ctx, lecturer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lecturer")
	}
	return lecturer, nil
}

// DeleteLecturer removes a lecturer.
func (s *CatalogService) DeleteLecturer(ctx context.Context, id string) error {
	if _, err := s.GetLecturer(ctx, id); err != nil {
		return err
	}
	if err := s.lecturers.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lecturer")
	}
	return nil
}

// GetVenue returns a venue by identifier.
func (s *CatalogService) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "venue not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load venue")
	}
	return venue, nil
}

// ListVenues returns all venues.
func (s *CatalogService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list venues")
	}
	return venues, nil
}

// CreateVenue registers a new venue.
func (s *CatalogService) CreateVenue(ctx context.Context, req dto.CreateVenueRequest) (*models.Venue, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid venue payload")
	}
	venue := &models.Venue{
		Name:     req.Name,
		Capacity: req.Capacity,
		Type:     models.VenueType(req.Type),
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create venue")
	}
	return venue, nil
}

// UpdateVenue modifies an existing venue.
func (s *CatalogService) UpdateVenue(ctx context.Context, id string, req dto.UpdateVenueRequest) (*models.Venue, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid venue payload")
	}
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.Type != nil {
		venue.Type = models.VenueType(*req.Type)
	}
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update venue")
	}
	return venue, nil
}

// DeleteVenue removes a venue.
func (s *CatalogService) DeleteVenue(ctx context.Context, id string) error {
	if _, err := s.GetVenue(ctx, id); err != nil {
		return err
	}
	if err := s.venues.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete venue")
	}
	return nil
}

// ListTimeSlots returns all teaching periods in chronological order.
func (s *CatalogService) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return slots, nil
}

// CreateTimeSlot registers a teaching period after validating its clock
// range parses and runs forward.
func (s *CatalogService) CreateTimeSlot(ctx context.Context, req dto.CreateTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	start, err := scheduler.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must be HH:MM")
	}
	end, err := scheduler.ParseClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be HH:MM")
	}
	if end <= start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}

	slot := &models.TimeSlot{
		Day:       req.Day,
		StartTime: start.String() + ":00",
		EndTime:   end.String() + ":00",
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time slot")
	}
	return slot, nil
}

// DeleteTimeSlot removes a teaching period.
func (s *CatalogService) DeleteTimeSlot(ctx context.Context, id string) error {
	if _, err := s.slots.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slot")
	}
	if err := s.slots.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time slot")
	}
	return nil
}
