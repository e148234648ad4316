package dto

// CreateCourseRequest registers a course for scheduling.
type CreateCourseRequest struct {
	Code        string  `json:"code" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Level       int     `json:"level" validate:"required,min=100,max=900"`
	CreditHours int     `json:"creditHours" validate:"omitempty,min=1,max=6"`
	LecturerID  *string `json:"lecturerId"`
	Department  string  `json:"department" validate:"required"`
	Enrollment  int     `json:"enrollment" validate:"omitempty,min=0"`
	Semester    int     `json:"semester" validate:"required,min=1,max=2"`
}

// UpdateCourseRequest modifies mutable course fields.
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Level       *int    `json:"level" validate:"omitempty,min=100,max=900"`
	CreditHours *int    `json:"creditHours" validate:"omitempty,min=1,max=6"`
	LecturerID  *string `json:"lecturerId"`
	Department  *string `json:"department"`
	Enrollment  *int    `json:"enrollment" validate:"omitempty,min=0"`
	Semester    *int    `json:"semester" validate:"omitempty,min=1,max=2"`
}

// CourseQuery filters course listings.
type CourseQuery struct {
	Semester   int    `form:"semester" json:"semester"`
	Level      int    `form:"level" json:"level"`
	Department string `form:"department" json:"department"`
	LecturerID string `form:"lecturerId" json:"lecturerId"`
	Search     string `form:"search" json:"search"`
	Page       int    `form:"page" json:"page"`
	PageSize   int    `form:"pageSize" json:"pageSize"`
}
