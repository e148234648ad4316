package dto

// CreateLecturerRequest registers a lecturer.
type CreateLecturerRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Department     string `json:"department" validate:"required"`
	MaxHoursPerDay int    `json:"maxHoursPerDay" validate:"omitempty,min=1,max=10"`
}

// UpdateLecturerRequest modifies mutable lecturer fields.
type UpdateLecturerRequest struct {
	Name           *string `json:"name"`
	Department     *string `json:"department"`
	MaxHoursPerDay *int    `json:"maxHoursPerDay" validate:"omitempty,min=1,max=10"`
}

// CreateVenueRequest registers a venue.
type CreateVenueRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Type     string `json:"type" validate:"required,oneof=LECTURE_HALL LAB CLASSROOM"`
}

// UpdateVenueRequest modifies mutable venue fields.
type UpdateVenueRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	Type     *string `json:"type" validate:"omitempty,oneof=LECTURE_HALL LAB CLASSROOM"`
}

// CreateTimeSlotRequest registers a teaching period.
type CreateTimeSlotRequest struct {
	Day       string `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}
