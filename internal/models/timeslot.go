package models

import "time"

// TimeSlot represents a one-hour teaching period on a specific weekday.
// Times are stored as "HH:MM:SS" strings matching the TIME column encoding.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	Day       string    `db:"day" json:"day"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
