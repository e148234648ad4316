package models

import "time"

// TimetableStatus represents lifecycle phases for generated timetables.
type TimetableStatus string

const (
	TimetableStatusDraft     TimetableStatus = "DRAFT"
	TimetableStatusPublished TimetableStatus = "PUBLISHED"
	TimetableStatusArchived  TimetableStatus = "ARCHIVED"
)

// Timetable is one generated schedule for an academic session and semester.
type Timetable struct {
	ID              string          `db:"id" json:"id"`
	AcademicSession string          `db:"academic_session" json:"academic_session"`
	Semester        int             `db:"semester" json:"semester"`
	Status          TimetableStatus `db:"status" json:"status"`
	IsActive        bool            `db:"is_active" json:"is_active"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// TimetableEntry is one scheduled hour linking a course to a time slot.
// VenueID stays NULL until an administrator assigns a room manually.
type TimetableEntry struct {
	ID          string    `db:"id" json:"id"`
	TimetableID string    `db:"timetable_id" json:"timetable_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	TimeslotID  string    `db:"timeslot_id" json:"timeslot_id"`
	VenueID     *string   `db:"venue_id" json:"venue_id,omitempty"`
	IsLocked    bool      `db:"is_locked" json:"is_locked"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TimetableEntryDetail is an entry joined with its course, slot, and venue
// for grid views and exports.
type TimetableEntryDetail struct {
	EntryID    string  `db:"entry_id" json:"entry_id"`
	CourseID   string  `db:"course_id" json:"course_id"`
	CourseCode string  `db:"course_code" json:"course_code"`
	Title      string  `db:"title" json:"title"`
	Level      int     `db:"level" json:"level"`
	Department string  `db:"department" json:"department"`
	LecturerID *string `db:"lecturer_id" json:"lecturer_id,omitempty"`
	Lecturer   *string `db:"lecturer_name" json:"lecturer_name,omitempty"`
	Day        string  `db:"day" json:"day"`
	StartTime  string  `db:"start_time" json:"start_time"`
	EndTime    string  `db:"end_time" json:"end_time"`
	VenueID    *string `db:"venue_id" json:"venue_id,omitempty"`
	VenueName  *string `db:"venue_name" json:"venue_name,omitempty"`
}

// TimetableStats summarises the snapshot feeding a generation run.
type TimetableStats struct {
	Courses   int `json:"courses"`
	Lecturers int `json:"lecturers"`
	Venues    int `json:"venues"`
	TimeSlots int `json:"time_slots"`
}
