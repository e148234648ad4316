package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adewale-oss/timetable-api/internal/dto"
	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/scheduler"
	appErrors "github.com/adewale-oss/timetable-api/pkg/errors"
)

type stubCourseReader struct {
	courses []models.Course
	byID    map[string]*models.Course
	count   int
	listErr error
}

func (s *stubCourseReader) ListBySemester(ctx context.Context, semester int) ([]models.Course, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.courses, nil
}

func (s *stubCourseReader) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if course, ok := s.byID[id]; ok {
		return course, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubCourseReader) CountBySemester(ctx context.Context, semester int) (int, error) {
	return s.count, nil
}

type stubSlotReader struct {
	slots []models.TimeSlot
	byID  map[string]*models.TimeSlot
}

func (s *stubSlotReader) List(ctx context.Context) ([]models.TimeSlot, error) {
	return s.slots, nil
}

func (s *stubSlotReader) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	if slot, ok := s.byID[id]; ok {
		return slot, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubSlotReader) Count(ctx context.Context) (int, error) {
	return len(s.slots), nil
}

type stubLecturerCounter struct{ count int }

func (s *stubLecturerCounter) Count(ctx context.Context) (int, error) { return s.count, nil }

type stubVenueReader struct {
	byID  map[string]*models.Venue
	count int
}

func (s *stubVenueReader) FindByID(ctx context.Context, id string) (*models.Venue, error) {
	if venue, ok := s.byID[id]; ok {
		return venue, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubVenueReader) Count(ctx context.Context) (int, error) { return s.count, nil }

type stubTimetableStore struct {
	created         *models.Timetable
	createdEntries  []models.TimetableEntry
	byID            map[string]*models.Timetable
	entries         map[string]*models.TimetableEntry
	details         []models.TimetableEntryDetail
	archivedCalls   int
	statusUpdates   []models.TimetableStatus
	deleted         []string
	updatedEntry    *models.TimetableEntry
	venueClashes    int
	lecturerClashes int
}

func (s *stubTimetableStore) Create(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error {
	if timetable.ID == "" {
		timetable.ID = "tt-1"
	}
	if timetable.Status == "" {
		timetable.Status = models.TimetableStatusDraft
	}
	s.created = timetable
	return nil
}

func (s *stubTimetableStore) BulkCreateEntries(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error {
	s.createdEntries = append(s.createdEntries, entries...)
	return nil
}

func (s *stubTimetableStore) FindByID(ctx context.Context, id string) (*models.Timetable, error) {
	if timetable, ok := s.byID[id]; ok {
		return timetable, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubTimetableStore) List(ctx context.Context, academicSession string, semester int, status string, page, pageSize int) ([]models.Timetable, int, error) {
	out := make([]models.Timetable, 0, len(s.byID))
	for _, timetable := range s.byID {
		out = append(out, *timetable)
	}
	return out, len(out), nil
}

func (s *stubTimetableStore) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.TimetableStatus, isActive bool) error {
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

func (s *stubTimetableStore) ArchiveActive(ctx context.Context, exec sqlx.ExtContext, academicSession string, semester int, excludeID string) error {
	s.archivedCalls++
	return nil
}

func (s *stubTimetableStore) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubTimetableStore) ListEntryDetails(ctx context.Context, timetableID string) ([]models.TimetableEntryDetail, error) {
	return s.details, nil
}

func (s *stubTimetableStore) FindEntry(ctx context.Context, entryID string) (*models.TimetableEntry, error) {
	if entry, ok := s.entries[entryID]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubTimetableStore) UpdateEntry(ctx context.Context, entry *models.TimetableEntry) error {
	s.updatedEntry = entry
	return nil
}

func (s *stubTimetableStore) CountVenueClashes(ctx context.Context, timetableID, timeslotID, venueID, excludeEntryID string) (int, error) {
	return s.venueClashes, nil
}

func (s *stubTimetableStore) CountLecturerClashes(ctx context.Context, timetableID, timeslotID, lecturerID, excludeEntryID string) (int, error) {
	return s.lecturerClashes, nil
}

type stubCache struct {
	values  map[string][]byte
	deleted []string
}

func (s *stubCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	s.values[key] = raw
	return nil
}

func (s *stubCache) DeleteByPattern(ctx context.Context, pattern string) error {
	s.deleted = append(s.deleted, pattern)
	return nil
}

type stubObserver struct {
	outcomes []string
	stats    []scheduler.Stats
}

func (s *stubObserver) ObserveGeneration(outcome string, stats scheduler.Stats) {
	s.outcomes = append(s.outcomes, outcome)
	s.stats = append(s.stats, stats)
}

type txProviderMock struct {
	db   *sqlx.DB
	mock sqlmock.Sqlmock
}

func newTxProviderMock(t *testing.T) *txProviderMock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlx.NewDb(db, "sqlmock"), mock: mock}
}

func (p *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return p.db.BeginTxx(ctx, opts)
}

func strPtr(s string) *string { return &s }

func weekdaySlots(days []string, hours int) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(days)*hours)
	for _, day := range days {
		for h := 0; h < hours; h++ {
			slots = append(slots, models.TimeSlot{
				ID:        fmt.Sprintf("slot-%s-%d", day, h),
				Day:       day,
				StartTime: fmt.Sprintf("%02d:00:00", 8+h),
				EndTime:   fmt.Sprintf("%02d:00:00", 9+h),
			})
		}
	}
	return slots
}

func newGenerateFixture(t *testing.T) (*TimetableService, *stubTimetableStore, *stubObserver, *txProviderMock) {
	t.Helper()
	courses := &stubCourseReader{
		courses: []models.Course{
			{ID: "c1", Code: "CSC401", Level: 400, Enrollment: 90, LecturerID: strPtr("lec-1"), Semester: 1},
			{ID: "c2", Code: "CSC201", Level: 200, Enrollment: 120, LecturerID: strPtr("lec-2"), Semester: 1},
		},
	}
	slots := &stubSlotReader{slots: weekdaySlots([]string{"MONDAY", "TUESDAY"}, 2)}
	store := &stubTimetableStore{byID: map[string]*models.Timetable{}}
	observer := &stubObserver{}
	tx := newTxProviderMock(t)

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{}, &stubVenueReader{count: 3}, store, nil, tx, observer, nil, nil, TimetableConfig{Seed: 7})
	return svc, store, observer, tx
}

func TestTimetableServiceGeneratePersistsDraft(t *testing.T) {
	svc, store, observer, tx := newGenerateFixture(t)
	tx.mock.ExpectBegin()
	tx.mock.ExpectCommit()

	res, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{
		AcademicSession: "2025/2026",
		Semester:        1,
	})
	require.NoError(t, err)

	assert.Equal(t, "tt-1", res.TimetableID)
	assert.Equal(t, string(models.TimetableStatusDraft), res.Status)
	assert.Equal(t, 2, res.Entries)
	assert.Equal(t, 2, res.Stats.Items)

	require.Len(t, store.createdEntries, 2)
	for _, entry := range store.createdEntries {
		assert.Equal(t, "tt-1", entry.TimetableID)
		assert.NotEmpty(t, entry.TimeslotID)
		assert.Nil(t, entry.VenueID)
	}

	require.Equal(t, []string{"success"}, observer.outcomes)
	assert.NoError(t, tx.mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateIsDeterministicForSeed(t *testing.T) {
	first, _, _, tx1 := newGenerateFixture(t)
	tx1.mock.ExpectBegin()
	tx1.mock.ExpectCommit()
	second, _, _, tx2 := newGenerateFixture(t)
	tx2.mock.ExpectBegin()
	tx2.mock.ExpectCommit()

	req := dto.GenerateTimetableRequest{AcademicSession: "2025/2026", Semester: 1, Seed: 42}

	resA, err := first.Generate(context.Background(), req)
	require.NoError(t, err)
	resB, err := second.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, resA.Entries, resB.Entries)
	assert.Equal(t, resA.Stats.Steps, resB.Stats.Steps)
}

func TestTimetableServiceGenerateNoCourses(t *testing.T) {
	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, &stubTimetableStore{}, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{AcademicSession: "2025/2026", Semester: 2})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceGenerateInfeasible(t *testing.T) {
	courses := &stubCourseReader{
		courses: []models.Course{
			{ID: "c1", Code: "CSC401", Level: 400, Enrollment: 90, LecturerID: strPtr("lec-1"), Semester: 1},
			{ID: "c2", Code: "CSC402", Level: 400, Enrollment: 80, LecturerID: strPtr("lec-1"), Semester: 1},
		},
	}
	slots := &stubSlotReader{slots: []models.TimeSlot{{ID: "slot-1", Day: "MONDAY", StartTime: "08:00:00", EndTime: "09:00:00"}}}
	observer := &stubObserver{}

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{}, &stubVenueReader{count: 3}, &stubTimetableStore{}, nil, newTxProviderMock(t), observer, nil, nil, TimetableConfig{})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{AcademicSession: "2025/2026", Semester: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoFeasibleSchedule.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []string{"infeasible"}, observer.outcomes)
}

func TestTimetableServiceGenerateNoVenues(t *testing.T) {
	courses := &stubCourseReader{courses: []models.Course{{ID: "c1", Code: "CSC401", Level: 400, Semester: 1}}}
	slots := &stubSlotReader{slots: weekdaySlots([]string{"MONDAY"}, 2)}
	store := &stubTimetableStore{}
	observer := &stubObserver{}

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{}, &stubVenueReader{}, store, nil, newTxProviderMock(t), observer, nil, nil, TimetableConfig{})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{AcademicSession: "2025/2026", Semester: 1})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "no venues")
	assert.Nil(t, store.created)
	assert.Empty(t, observer.outcomes)
}

func TestTimetableServiceGenerateNoUsableSlots(t *testing.T) {
	courses := &stubCourseReader{courses: []models.Course{{ID: "c1", Code: "CSC401", Level: 400, Semester: 1}}}
	// Every slot falls inside the Friday blackout window.
	slots := &stubSlotReader{slots: []models.TimeSlot{
		{ID: "slot-1", Day: "FRIDAY", StartTime: "13:00:00", EndTime: "14:00:00"},
		{ID: "slot-2", Day: "FRIDAY", StartTime: "14:00:00", EndTime: "15:00:00"},
	}}

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{}, &stubVenueReader{count: 3}, &stubTimetableStore{}, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{AcademicSession: "2025/2026", Semester: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoFeasibleSchedule.Code, appErrors.FromError(err).Code)
}

func TestTimetableServicePublishArchivesPrevious(t *testing.T) {
	store := &stubTimetableStore{byID: map[string]*models.Timetable{
		"tt-2": {ID: "tt-2", AcademicSession: "2025/2026", Semester: 1, Status: models.TimetableStatusDraft},
	}}
	cache := &stubCache{}
	tx := newTxProviderMock(t)
	tx.mock.ExpectBegin()
	tx.mock.ExpectCommit()

	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, store, cache, tx, nil, nil, nil, TimetableConfig{})

	published, err := svc.Publish(context.Background(), "tt-2")
	require.NoError(t, err)

	assert.Equal(t, models.TimetableStatusPublished, published.Status)
	assert.True(t, published.IsActive)
	assert.Equal(t, 1, store.archivedCalls)
	assert.Equal(t, []models.TimetableStatus{models.TimetableStatusPublished}, store.statusUpdates)
	assert.Equal(t, []string{"timetable:*"}, cache.deleted)
	assert.NoError(t, tx.mock.ExpectationsWereMet())
}

func TestTimetableServicePublishRejectsRepublish(t *testing.T) {
	store := &stubTimetableStore{byID: map[string]*models.Timetable{
		"tt-3": {ID: "tt-3", Status: models.TimetableStatusPublished},
	}}
	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, store, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.Publish(context.Background(), "tt-3")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPublished.Code, appErrors.FromError(err).Code)
	assert.Zero(t, store.archivedCalls)
}

func TestTimetableServiceDeleteRejectsPublished(t *testing.T) {
	store := &stubTimetableStore{byID: map[string]*models.Timetable{
		"tt-4": {ID: "tt-4", Status: models.TimetableStatusPublished},
	}}
	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, store, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	err := svc.Delete(context.Background(), "tt-4")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPublished.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.deleted)
}

func TestTimetableServiceUpdateEntryVenueClash(t *testing.T) {
	store := &stubTimetableStore{
		byID:         map[string]*models.Timetable{"tt-5": {ID: "tt-5", Status: models.TimetableStatusDraft}},
		entries:      map[string]*models.TimetableEntry{"e1": {ID: "e1", TimetableID: "tt-5", CourseID: "c1", TimeslotID: "slot-1"}},
		venueClashes: 1,
	}
	venues := &stubVenueReader{byID: map[string]*models.Venue{"v1": {ID: "v1", Name: "LT1"}}}
	courses := &stubCourseReader{byID: map[string]*models.Course{"c1": {ID: "c1"}}}

	svc := NewTimetableService(courses, &stubSlotReader{}, &stubLecturerCounter{}, venues, store, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.UpdateEntry(context.Background(), "tt-5", "e1", dto.UpdateEntryRequest{VenueID: strPtr("v1")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrVenueOccupied.Code, appErrors.FromError(err).Code)
	assert.Nil(t, store.updatedEntry)
}

func TestTimetableServiceUpdateEntryLecturerClash(t *testing.T) {
	store := &stubTimetableStore{
		byID:            map[string]*models.Timetable{"tt-6": {ID: "tt-6"}},
		entries:         map[string]*models.TimetableEntry{"e1": {ID: "e1", TimetableID: "tt-6", CourseID: "c1", TimeslotID: "slot-1"}},
		lecturerClashes: 1,
	}
	slots := &stubSlotReader{byID: map[string]*models.TimeSlot{"slot-2": {ID: "slot-2", Day: "TUESDAY", StartTime: "09:00:00", EndTime: "10:00:00"}}}
	courses := &stubCourseReader{byID: map[string]*models.Course{"c1": {ID: "c1", LecturerID: strPtr("lec-1")}}}

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{}, &stubVenueReader{}, store, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.UpdateEntry(context.Background(), "tt-6", "e1", dto.UpdateEntryRequest{TimeslotID: strPtr("slot-2")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLecturerOccupied.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceUpdateEntryMovesSlot(t *testing.T) {
	store := &stubTimetableStore{
		byID:    map[string]*models.Timetable{"tt-7": {ID: "tt-7"}},
		entries: map[string]*models.TimetableEntry{"e1": {ID: "e1", TimetableID: "tt-7", CourseID: "c1", TimeslotID: "slot-1"}},
	}
	slots := &stubSlotReader{byID: map[string]*models.TimeSlot{"slot-2": {ID: "slot-2"}}}
	courses := &stubCourseReader{byID: map[string]*models.Course{"c1": {ID: "c1"}}}
	cache := &stubCache{}

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{}, &stubVenueReader{}, store, cache, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	entry, err := svc.UpdateEntry(context.Background(), "tt-7", "e1", dto.UpdateEntryRequest{TimeslotID: strPtr("slot-2")})
	require.NoError(t, err)
	assert.Equal(t, "slot-2", entry.TimeslotID)
	require.NotNil(t, store.updatedEntry)
	assert.Equal(t, "slot-2", store.updatedEntry.TimeslotID)
	assert.Equal(t, []string{"timetable:*"}, cache.deleted)
}

func TestTimetableServiceUpdateEntryWrongTimetable(t *testing.T) {
	store := &stubTimetableStore{
		byID:    map[string]*models.Timetable{"tt-8": {ID: "tt-8"}},
		entries: map[string]*models.TimetableEntry{"e1": {ID: "e1", TimetableID: "other", CourseID: "c1"}},
	}
	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, store, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.UpdateEntry(context.Background(), "tt-8", "e1", dto.UpdateEntryRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceGridServedFromCache(t *testing.T) {
	cached := dto.GridResponse{TimetableID: "tt-9", Days: []string{"MONDAY"}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	cache := &stubCache{values: map[string][]byte{"timetable:grid:tt-9": raw}}

	// No timetable in the store: a hit must never reach the database.
	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, &stubTimetableStore{}, cache, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	grid, err := svc.Grid(context.Background(), "tt-9")
	require.NoError(t, err)
	assert.Equal(t, "tt-9", grid.TimetableID)
	assert.Equal(t, []string{"MONDAY"}, grid.Days)
}

func TestTimetableServiceGridBuildsAndCaches(t *testing.T) {
	venue := "LT1"
	lecturer := "Dr. Bello"
	store := &stubTimetableStore{
		byID: map[string]*models.Timetable{"tt-10": {ID: "tt-10"}},
		details: []models.TimetableEntryDetail{
			{EntryID: "e1", CourseCode: "CSC401", Title: "Algorithms", Level: 400, Lecturer: &lecturer, Day: "MONDAY", StartTime: "08:00:00", EndTime: "09:00:00", VenueName: &venue},
			{EntryID: "e2", CourseCode: "CSC201", Title: "Data Structures", Level: 200, Day: "TUESDAY", StartTime: "09:00:00", EndTime: "10:00:00"},
		},
	}
	slots := &stubSlotReader{slots: weekdaySlots([]string{"MONDAY", "TUESDAY"}, 2)}
	cache := &stubCache{}

	svc := NewTimetableService(&stubCourseReader{}, slots, &stubLecturerCounter{}, &stubVenueReader{}, store, cache, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	grid, err := svc.Grid(context.Background(), "tt-10")
	require.NoError(t, err)

	assert.Equal(t, []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}, grid.Days)
	assert.Equal(t, []string{"08:00 - 09:00", "09:00 - 10:00"}, grid.Times)

	monday := grid.Cells["MONDAY"]["08:00 - 09:00"]
	require.Len(t, monday, 1)
	assert.Equal(t, "CSC401", monday[0].CourseCode)
	require.NotNil(t, monday[0].Venue)
	assert.Equal(t, "LT1", *monday[0].Venue)

	tuesday := grid.Cells["TUESDAY"]["09:00 - 10:00"]
	require.Len(t, tuesday, 1)
	assert.Nil(t, tuesday[0].Lecturer)

	_, ok := cache.values["timetable:grid:tt-10"]
	assert.True(t, ok)
}

func TestTimetableServiceStats(t *testing.T) {
	courses := &stubCourseReader{count: 12}
	slots := &stubSlotReader{slots: weekdaySlots([]string{"MONDAY"}, 3)}
	cache := &stubCache{}

	svc := NewTimetableService(courses, slots, &stubLecturerCounter{count: 5}, &stubVenueReader{count: 4}, &stubTimetableStore{}, cache, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &models.TimetableStats{Courses: 12, Lecturers: 5, Venues: 4, TimeSlots: 3}, stats)

	_, ok := cache.values["timetable:stats:1"]
	assert.True(t, ok)
}

func TestTimetableServiceJobStatusUnknown(t *testing.T) {
	svc := NewTimetableService(&stubCourseReader{}, &stubSlotReader{}, &stubLecturerCounter{}, &stubVenueReader{}, &stubTimetableStore{}, nil, newTxProviderMock(t), nil, nil, nil, TimetableConfig{})

	_, err := svc.JobStatus("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "08:00 - 09:00", formatTimeRange("08:00:00", "09:00:00"))
	assert.Equal(t, "13:00 - 15:00", formatTimeRange("13:00", "15:00"))
}
