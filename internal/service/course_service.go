package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/adewale-oss/timetable-api/internal/dto"
	"github.com/adewale-oss/timetable-api/internal/models"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
)

type courseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type courseLecturerReader interface {
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
}

// CourseService provides course management use cases.
type CourseService struct {
	repo      courseRepository
	lecturers courseLecturerReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(repo courseRepository, lecturers courseLecturerReader, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, lecturers: lecturers, validator: validate, logger: logger}
}

// Get returns a course by identifier.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// List returns courses matching the query.
func (s *CourseService) List(ctx context.Context, query dto.CourseQuery) ([]models.Course, *models.Pagination, error) {
	filter := models.CourseFilter{
		Semester:   query.Semester,
		Level:      query.Level,
		Department: query.Department,
		LecturerID: query.LecturerID,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return courses, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}

	if err := s.ensureLecturer(ctx, req.LecturerID); err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:        req.Code,
		Title:       req.Title,
		Level:       req.Level,
		CreditHours: req.CreditHours,
		LecturerID:  req.LecturerID,
		Department:  req.Department,
		Enrollment:  req.Enrollment,
		Semester:    req.Semester,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.CreditHours != nil {
		course.CreditHours = *req.CreditHours
	}
	if req.LecturerID != nil {
		if *req.LecturerID == "" {
			course.LecturerID = nil
		} else {
			if err := s.ensureLecturer(ctx, req.LecturerID); err != nil {
				return nil, err
			}
			course.LecturerID = req.LecturerID
		}
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.Enrollment != nil {
		course.Enrollment = *req.Enrollment
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

func (s *CourseService) ensureLecturer(ctx context.Context, lecturerID *string) error {
	if lecturerID == nil || *lecturerID == "" || s.lecturers == nil {
		return nil
	}
	if _, err := s.lecturers.FindByID(ctx, *lecturerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}
	return nil
}
