package models

import "time"

// VenueType classifies physical teaching locations.
type VenueType string

const (
	VenueLectureHall VenueType = "LECTURE_HALL"
	VenueLab         VenueType = "LAB"
	VenueClassroom   VenueType = "CLASSROOM"
)

// Venue represents a room where classes can be held. Venues are listed for
// the manual assignment workflow and export legends; the automated generator
// never books them.
type Venue struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Type      VenueType `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
