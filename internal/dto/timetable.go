package dto

// TimetableQuery filters timetable listings.
type TimetableQuery struct {
	AcademicSession string `form:"academicSession" json:"academicSession"`
	Semester        int    `form:"semester" json:"semester"`
	Status          string `form:"status" json:"status"`
	Page            int    `form:"page" json:"page"`
	PageSize        int    `form:"pageSize" json:"pageSize"`
}

// GridCell is one course occurrence inside the weekly grid.
type GridCell struct {
	EntryID    string  `json:"entryId"`
	CourseCode string  `json:"courseCode"`
	Title      string  `json:"title"`
	Level      int     `json:"level"`
	Lecturer   *string `json:"lecturer,omitempty"`
	Venue      *string `json:"venue,omitempty"`
}

// GridResponse lays the timetable out as times by days for rendering.
type GridResponse struct {
	TimetableID string                           `json:"timetableId"`
	Days        []string                         `json:"days"`
	Times       []string                         `json:"times"`
	Cells       map[string]map[string][]GridCell `json:"cells"`
}

// UpdateEntryRequest moves an entry to another slot or assigns a venue.
// Both fields are optional; omitted fields keep their current value.
type UpdateEntryRequest struct {
	TimeslotID *string `json:"timeslotId"`
	VenueID    *string `json:"venueId"`
}
