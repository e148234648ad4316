package models

import "time"

// Course represents an academic course that needs timetable sessions.
// LecturerID is nullable: unassigned courses still get scheduled, they just
// carry no lecturer constraint.
type Course struct {
	ID          string    `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Title       string    `db:"title" json:"title"`
	Level       int       `db:"level" json:"level"`
	CreditHours int       `db:"credit_hours" json:"credit_hours"`
	LecturerID  *string   `db:"lecturer_id" json:"lecturer_id,omitempty"`
	Department  string    `db:"department" json:"department"`
	Enrollment  int       `db:"enrollment" json:"enrollment"`
	Semester    int       `db:"semester" json:"semester"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter describes query params for listing courses.
type CourseFilter struct {
	Semester   int
	Department string
	Level      int
	LecturerID string
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
