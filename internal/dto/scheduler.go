package dto

// CourseConstraintRequest overrides session shape for a single course.
// Duration is consecutive hours per session, Frequency is sessions per week.
type CourseConstraintRequest struct {
	Duration  int `json:"duration" validate:"omitempty,min=1,max=8"`
	Frequency int `json:"frequency" validate:"omitempty,min=1,max=5"`
}

// GenerateTimetableRequest instructs the generator to build a timetable
// for the semester. Courses without an entry in Constraints default to a
// single one-hour session per week.
type GenerateTimetableRequest struct {
	AcademicSession string                             `json:"academicSession" validate:"required"`
	Semester        int                                `json:"semester" validate:"required,min=1,max=2"`
	Seed            int64                              `json:"seed"`
	Constraints     map[string]CourseConstraintRequest `json:"constraints" validate:"omitempty,dive"`
}

// SolverStats summarises one search run.
type SolverStats struct {
	Items      int   `json:"items"`
	Steps      int   `json:"steps"`
	Backtracks int   `json:"backtracks"`
	ElapsedMS  int64 `json:"elapsedMs"`
}

// GenerateTimetableResponse returns the persisted draft timetable.
type GenerateTimetableResponse struct {
	TimetableID     string      `json:"timetableId"`
	AcademicSession string      `json:"academicSession"`
	Semester        int         `json:"semester"`
	Status          string      `json:"status"`
	Entries         int         `json:"entries"`
	Stats           SolverStats `json:"stats"`
}

// GenerateJobResponse acknowledges an async generation request.
type GenerateJobResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// JobStatusResponse reports the state of an async generation job.
type JobStatusResponse struct {
	JobID  string                     `json:"jobId"`
	Status string                     `json:"status"`
	Error  string                     `json:"error,omitempty"`
	Result *GenerateTimetableResponse `json:"result,omitempty"`
}
