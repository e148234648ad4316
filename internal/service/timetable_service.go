package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/adewale-oss/timetable-api/internal/dto"
	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/scheduler"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
	"github.com/adewale-oss/timetable-api/pkg/jobs"
)

type courseReader interface {
	ListBySemester(ctx context.Context, semester int) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	CountBySemester(ctx context.Context, semester int) (int, error)
}

type timeSlotReader interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Count(ctx context.Context) (int, error)
}

type lecturerCounter interface {
	Count(ctx context.Context) (int, error)
}

type venueReader interface {
	FindByID(ctx context.Context, id string) (*models.Venue, error)
	Count(ctx context.Context) (int, error)
}

type timetableStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error
	BulkCreateEntries(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
	List(ctx context.Context, academicSession string, semester int, status string, page, pageSize int) ([]models.Timetable, int, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.TimetableStatus, isActive bool) error
	ArchiveActive(ctx context.Context, exec sqlx.ExtContext, academicSession string, semester int, excludeID string) error
	Delete(ctx context.Context, id string) error
	ListEntryDetails(ctx context.Context, timetableID string) ([]models.TimetableEntryDetail, error)
	FindEntry(ctx context.Context, entryID string) (*models.TimetableEntry, error)
	UpdateEntry(ctx context.Context, entry *models.TimetableEntry) error
	CountVenueClashes(ctx context.Context, timetableID, timeslotID, venueID, excludeEntryID string) (int, error)
	CountLecturerClashes(ctx context.Context, timetableID, timeslotID, lecturerID, excludeEntryID string) (int, error)
}

type timetableCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type generationObserver interface {
	ObserveGeneration(outcome string, stats scheduler.Stats)
}

// TimetableConfig governs generator and cache behaviour.
type TimetableConfig struct {
	Seed            int64
	MaxSteps        int
	GenerateTimeout time.Duration
	Blackout        scheduler.Blackout
	GridTTL         time.Duration
	StatsTTL        time.Duration
	JobQueueSize    int
}

// TimetableService orchestrates schedule generation and timetable management.
type TimetableService struct {
	courses    courseReader
	slots      timeSlotReader
	lecturers  lecturerCounter
	venues     venueReader
	timetables timetableStore
	cache      timetableCache
	tx         txProvider
	metrics    generationObserver
	validator  *validator.Validate
	logger     *zap.Logger
	cfg        TimetableConfig

	queue   *jobs.Queue
	jobsMu  sync.RWMutex
	jobRuns map[string]*dto.JobStatusResponse
}

// NewTimetableService wires timetable dependencies.
func NewTimetableService(
	courses courseReader,
	slots timeSlotReader,
	lecturers lecturerCounter,
	venues venueReader,
	timetables timetableStore,
	cache timetableCache,
	tx txProvider,
	metrics generationObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 2 * time.Minute
	}
	if cfg.GridTTL <= 0 {
		cfg.GridTTL = 10 * time.Minute
	}
	if cfg.StatsTTL <= 0 {
		cfg.StatsTTL = 5 * time.Minute
	}
	if cfg.Blackout == (scheduler.Blackout{}) {
		cfg.Blackout = scheduler.DefaultBlackout()
	}

	s := &TimetableService{
		courses:    courses,
		slots:      slots,
		lecturers:  lecturers,
		venues:     venues,
		timetables: timetables,
		cache:      cache,
		tx:         tx,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		cfg:        cfg,
		jobRuns:    make(map[string]*dto.JobStatusResponse),
	}
	s.queue = jobs.NewQueue("timetable-generation", s.runGenerationJob, jobs.QueueConfig{
		Workers:    1,
		BufferSize: cfg.JobQueueSize,
		Logger:     logger,
	})
	return s
}

// StartWorkers launches the async generation queue.
func (s *TimetableService) StartWorkers(ctx context.Context) {
	s.queue.Start(ctx)
}

// StopWorkers drains the async generation queue.
func (s *TimetableService) StopWorkers() {
	s.queue.Stop()
}

// Generate runs the solver for a semester and persists the resulting draft
// timetable atomically. Entries carry no venue; rooms are assigned manually
// afterwards.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}

	courses, err := s.courses.ListBySemester(ctx, req.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	if len(courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("no courses registered for semester %d", req.Semester))
	}

	venueCount, err := s.venues.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count venues")
	}
	if venueCount == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no venues registered; add venues before generating a timetable")
	}

	slotRecords, err := s.slots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slots")
	}

	grid, slotIDs, err := s.buildGrid(slotRecords)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.Seed
	}

	solver := scheduler.New(grid, toSchedulerCourses(courses), toConstraintMap(req.Constraints), scheduler.Config{
		Seed:     seed,
		MaxSteps: s.cfg.MaxSteps,
	})

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	placements, stats, err := solver.Solve(runCtx)
	if err != nil {
		s.observe(outcomeFor(err), stats)
		return nil, mapSolverError(err)
	}
	s.observe("success", stats)

	timetable := &models.Timetable{
		AcademicSession: req.AcademicSession,
		Semester:        req.Semester,
		Status:          models.TimetableStatusDraft,
	}

	entries := make([]models.TimetableEntry, 0, len(placements))
	for _, p := range placements {
		entries = append(entries, models.TimetableEntry{
			CourseID:   p.CourseID,
			TimeslotID: slotIDs[p.SlotIndex],
		})
	}

	if err := s.persistTimetable(ctx, timetable, entries); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)

	s.logger.Info("timetable generated",
		zap.String("timetable_id", timetable.ID),
		zap.Int("entries", len(entries)),
		zap.Int("steps", stats.Steps),
		zap.Int("backtracks", stats.Backtracks),
		zap.Duration("elapsed", stats.Elapsed),
	)

	return &dto.GenerateTimetableResponse{
		TimetableID:     timetable.ID,
		AcademicSession: timetable.AcademicSession,
		Semester:        timetable.Semester,
		Status:          string(timetable.Status),
		Entries:         len(entries),
		Stats: dto.SolverStats{
			Items:      stats.Items,
			Steps:      stats.Steps,
			Backtracks: stats.Backtracks,
			ElapsedMS:  stats.Elapsed.Milliseconds(),
		},
	}, nil
}

// GenerateAsync queues a generation run and returns a job handle.
func (s *TimetableService) GenerateAsync(req dto.GenerateTimetableRequest) (*dto.GenerateJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}

	jobID := uuid.NewString()
	s.jobsMu.Lock()
	s.jobRuns[jobID] = &dto.JobStatusResponse{JobID: jobID, Status: "QUEUED"}
	s.jobsMu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: jobID, Type: "generate", Payload: req}); err != nil {
		s.jobsMu.Lock()
		delete(s.jobRuns, jobID)
		s.jobsMu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue generation job")
	}

	return &dto.GenerateJobResponse{JobID: jobID, Status: "QUEUED"}, nil
}

// JobStatus reports the state of an async generation job.
func (s *TimetableService) JobStatus(jobID string) (*dto.JobStatusResponse, error) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	status, ok := s.jobRuns[jobID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "generation job not found")
	}
	copied := *status
	return &copied, nil
}

func (s *TimetableService) runGenerationJob(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateTimetableRequest)
	if !ok {
		return fmt.Errorf("unexpected payload type for job %s", job.ID)
	}

	s.setJobStatus(job.ID, "RUNNING", "", nil)
	result, err := s.Generate(ctx, req)
	if err != nil {
		s.setJobStatus(job.ID, "FAILED", appErrors.FromError(err).Message, nil)
		return nil
	}
	s.setJobStatus(job.ID, "COMPLETED", "", result)
	return nil
}

func (s *TimetableService) setJobStatus(jobID, status, errMsg string, result *dto.GenerateTimetableResponse) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	s.jobRuns[jobID] = &dto.JobStatusResponse{JobID: jobID, Status: status, Error: errMsg, Result: result}
}

// Get returns a timetable header.
func (s *TimetableService) Get(ctx context.Context, id string) (*models.Timetable, error) {
	timetable, err := s.timetables.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return timetable, nil
}

// List returns timetables matching the query.
func (s *TimetableService) List(ctx context.Context, query dto.TimetableQuery) ([]models.Timetable, *models.Pagination, error) {
	timetables, total, err := s.timetables.List(ctx, query.AcademicSession, query.Semester, query.Status, query.Page, query.PageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return timetables, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Grid returns the timetable laid out as times by days, cached per timetable.
func (s *TimetableService) Grid(ctx context.Context, timetableID string) (*dto.GridResponse, error) {
	cacheKey := gridCacheKey(timetableID)
	if s.cache != nil {
		var cached dto.GridResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("grid cache lookup failed", zap.Error(err))
		}
	}

	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}

	details, err := s.timetables.ListEntryDetails(ctx, timetableID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entries")
	}

	slotRecords, err := s.slots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slots")
	}

	grid := buildGridResponse(timetableID, slotRecords, details)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, grid, s.cfg.GridTTL); err != nil {
			s.logger.Warn("grid cache write failed", zap.Error(err))
		}
	}
	return grid, nil
}

// Stats summarises the scheduling inputs available for a semester.
func (s *TimetableService) Stats(ctx context.Context, semester int) (*models.TimetableStats, error) {
	cacheKey := fmt.Sprintf("timetable:stats:%d", semester)
	if s.cache != nil {
		var cached models.TimetableStats
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	courses, err := s.courses.CountBySemester(ctx, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}
	lecturers, err := s.lecturers.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count lecturers")
	}
	venues, err := s.venues.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count venues")
	}
	slots, err := s.slots.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count time slots")
	}

	stats := &models.TimetableStats{Courses: courses, Lecturers: lecturers, Venues: venues, TimeSlots: slots}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, s.cfg.StatsTTL); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// Publish promotes a draft to the active published timetable for its
// session and semester, archiving any previously active one.
func (s *TimetableService) Publish(ctx context.Context, id string) (*models.Timetable, error) {
	timetable, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if timetable.Status == models.TimetableStatusPublished {
		return nil, appErrors.Clone(appErrors.ErrPublished, "")
	}
	if timetable.Status == models.TimetableStatusArchived {
		return nil, appErrors.Clone(appErrors.ErrConflict, "archived timetables cannot be published")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.timetables.ArchiveActive(ctx, tx, timetable.AcademicSession, timetable.Semester, id); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive previous timetable")
		return nil, err
	}
	if err = s.timetables.UpdateStatus(ctx, tx, id, models.TimetableStatusPublished, true); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish timetable")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit publish transaction")
		return nil, err
	}

	s.invalidateCaches(ctx)

	timetable.Status = models.TimetableStatusPublished
	timetable.IsActive = true
	return timetable, nil
}

// Delete removes a timetable. Published timetables must be archived first.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	timetable, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if timetable.Status == models.TimetableStatusPublished {
		return appErrors.Clone(appErrors.ErrPublished, "published timetables cannot be deleted")
	}
	if err := s.timetables.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	s.invalidateCaches(ctx)
	return nil
}

// UpdateEntry applies a manual slot move or venue assignment after checking
// venue and lecturer clashes inside the same timetable.
func (s *TimetableService) UpdateEntry(ctx context.Context, timetableID, entryID string, req dto.UpdateEntryRequest) (*models.TimetableEntry, error) {
	entry, err := s.timetables.FindEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	if entry.TimetableID != timetableID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "entry does not belong to this timetable")
	}

	if req.TimeslotID != nil && *req.TimeslotID != entry.TimeslotID {
		if _, err := s.slots.FindByID(ctx, *req.TimeslotID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slot")
		}
		entry.TimeslotID = *req.TimeslotID
	}
	if req.VenueID != nil {
		if *req.VenueID == "" {
			entry.VenueID = nil
		} else {
			if _, err := s.venues.FindByID(ctx, *req.VenueID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, appErrors.Clone(appErrors.ErrNotFound, "venue not found")
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load venue")
			}
			entry.VenueID = req.VenueID
		}
	}

	if entry.VenueID != nil {
		clashes, err := s.timetables.CountVenueClashes(ctx, timetableID, entry.TimeslotID, *entry.VenueID, entry.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check venue availability")
		}
		if clashes > 0 {
			return nil, appErrors.Clone(appErrors.ErrVenueOccupied, "")
		}
	}

	if lecturerID, ok := s.entryLecturer(ctx, entry.CourseID); ok {
		clashes, err := s.timetables.CountLecturerClashes(ctx, timetableID, entry.TimeslotID, lecturerID, entry.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check lecturer availability")
		}
		if clashes > 0 {
			return nil, appErrors.Clone(appErrors.ErrLecturerOccupied, "")
		}
	}

	if err := s.timetables.UpdateEntry(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timetable entry")
	}

	s.invalidateCaches(ctx)
	return entry, nil
}

// EntryDetails returns joined entry rows for exports.
func (s *TimetableService) EntryDetails(ctx context.Context, timetableID string) ([]models.TimetableEntryDetail, error) {
	if _, err := s.Get(ctx, timetableID); err != nil {
		return nil, err
	}
	details, err := s.timetables.ListEntryDetails(ctx, timetableID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entries")
	}
	return details, nil
}

func (s *TimetableService) persistTimetable(ctx context.Context, timetable *models.Timetable, entries []models.TimetableEntry) error {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.timetables.Create(ctx, tx, timetable); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timetable")
		return err
	}
	for i := range entries {
		entries[i].TimetableID = timetable.ID
	}
	if err = s.timetables.BulkCreateEntries(ctx, tx, entries); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable entries")
		return err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit timetable transaction")
		return err
	}
	return nil
}

// buildGrid converts persisted slots into the solver grid and remembers
// which database slot backs each grid index.
func (s *TimetableService) buildGrid(records []models.TimeSlot) (scheduler.Grid, []string, error) {
	slots := make([]scheduler.Slot, 0, len(records))
	for _, record := range records {
		day, err := scheduler.ParseDay(record.Day)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid time slot day")
		}
		start, err := scheduler.ParseClock(record.StartTime)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid time slot start")
		}
		end, err := scheduler.ParseClock(record.EndTime)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid time slot end")
		}
		slots = append(slots, scheduler.Slot{ID: record.ID, Day: day, Start: start, End: end})
	}

	grid, err := scheduler.BuildGrid(slots, s.cfg.Blackout)
	if err != nil {
		var confErr *scheduler.ConfigurationError
		if errors.As(err, &confErr) {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrNoFeasibleSchedule.Code, appErrors.ErrNoFeasibleSchedule.Status, "no usable time slots configured")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build scheduling grid")
	}

	slotIDs := make([]string, len(grid))
	for i, slot := range grid {
		slotIDs[i] = slot.ID
	}
	return grid, slotIDs, nil
}

func (s *TimetableService) entryLecturer(ctx context.Context, courseID string) (string, bool) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil || course.LecturerID == nil || *course.LecturerID == "" {
		return "", false
	}
	return *course.LecturerID, true
}

func (s *TimetableService) observe(outcome string, stats scheduler.Stats) {
	if s.metrics != nil {
		s.metrics.ObserveGeneration(outcome, stats)
	}
}

func (s *TimetableService) invalidateCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "timetable:*"); err != nil {
		s.logger.Warn("failed to invalidate timetable caches", zap.Error(err))
	}
}

func toSchedulerCourses(records []models.Course) []scheduler.Course {
	courses := make([]scheduler.Course, 0, len(records))
	for _, record := range records {
		lecturer := ""
		if record.LecturerID != nil {
			lecturer = *record.LecturerID
		}
		courses = append(courses, scheduler.Course{
			ID:         record.ID,
			Code:       record.Code,
			Level:      record.Level,
			Department: record.Department,
			Enrollment: record.Enrollment,
			LecturerID: lecturer,
			Semester:   record.Semester,
		})
	}
	return courses
}

func toConstraintMap(overrides map[string]dto.CourseConstraintRequest) scheduler.ConstraintMap {
	constraints := make(scheduler.ConstraintMap, len(overrides))
	for courseID, override := range overrides {
		constraints[courseID] = scheduler.Constraint{
			Duration:  override.Duration,
			Frequency: override.Frequency,
		}
	}
	return constraints
}

func mapSolverError(err error) error {
	switch {
	case errors.Is(err, scheduler.ErrInfeasible):
		return appErrors.Clone(appErrors.ErrNoFeasibleSchedule, "")
	case errors.Is(err, scheduler.ErrSearchExhausted):
		return appErrors.Clone(appErrors.ErrSearchExhausted, "")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return appErrors.Wrap(err, appErrors.ErrSearchExhausted.Code, appErrors.ErrSearchExhausted.Status, "schedule search timed out")
	default:
		var confErr *scheduler.ConfigurationError
		if errors.As(err, &confErr) {
			return appErrors.Wrap(err, appErrors.ErrNoFeasibleSchedule.Code, appErrors.ErrNoFeasibleSchedule.Status, confErr.Reason)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "schedule generation failed")
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, scheduler.ErrInfeasible):
		return "infeasible"
	case errors.Is(err, scheduler.ErrSearchExhausted):
		return "exhausted"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}

func gridCacheKey(timetableID string) string {
	return "timetable:grid:" + timetableID
}

// buildGridResponse lays entries out as times by days matching the
// registered teaching periods.
func buildGridResponse(timetableID string, slots []models.TimeSlot, details []models.TimetableEntryDetail) *dto.GridResponse {
	days := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}

	seen := make(map[string]bool)
	times := make([]string, 0)
	for _, slot := range slots {
		label := formatTimeRange(slot.StartTime, slot.EndTime)
		if !seen[label] {
			seen[label] = true
			times = append(times, label)
		}
	}

	cells := make(map[string]map[string][]dto.GridCell, len(days))
	for _, day := range days {
		cells[day] = make(map[string][]dto.GridCell)
	}
	for _, detail := range details {
		label := formatTimeRange(detail.StartTime, detail.EndTime)
		if cells[detail.Day] == nil {
			cells[detail.Day] = make(map[string][]dto.GridCell)
		}
		var lecturer *string
		if detail.Lecturer != nil && *detail.Lecturer != "" {
			lecturer = detail.Lecturer
		}
		cells[detail.Day][label] = append(cells[detail.Day][label], dto.GridCell{
			EntryID:    detail.EntryID,
			CourseCode: detail.CourseCode,
			Title:      detail.Title,
			Level:      detail.Level,
			Lecturer:   lecturer,
			Venue:      detail.VenueName,
		})
	}

	return &dto.GridResponse{TimetableID: timetableID, Days: days, Times: times, Cells: cells}
}

// formatTimeRange renders "08:00:00".."09:00:00" as "08:00 - 09:00".
func formatTimeRange(start, end string) string {
	return trimSeconds(start) + " - " + trimSeconds(end)
}

func trimSeconds(clock string) string {
	if strings.Count(clock, ":") == 2 {
		return clock[:strings.LastIndex(clock, ":")]
	}
	return clock
}
