package models

import "time"

// Lecturer represents a member of teaching staff.
type Lecturer struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Department     string    `db:"department" json:"department"`
	MaxHoursPerDay int       `db:"max_hours_per_day" json:"max_hours_per_day"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
