package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adewale-oss/timetable-api/internal/models"
)

// TimetableRepository manages timetables and their per-hour entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new instance of TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

func (r *TimetableRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a timetable header. Accepts an optional transaction so the
// header and its entries commit atomically.
func (r *TimetableRepository) Create(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error {
	if timetable.ID == "" {
		timetable.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if timetable.CreatedAt.IsZero() {
		timetable.CreatedAt = now
	}
	timetable.UpdatedAt = now
	if timetable.Status == "" {
		timetable.Status = models.TimetableStatusDraft
	}

	const query = `INSERT INTO timetables (id, academic_session, semester, status, is_active, created_at, updated_at)
VALUES (:id, :academic_session, :semester, :status, :is_active, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, timetable); err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	return nil
}

// BulkCreateEntries inserts timetable entries, one row per scheduled hour.
func (r *TimetableRepository) BulkCreateEntries(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `INSERT INTO timetable_entries (id, timetable_id, course_id, timeslot_id, venue_id, is_locked, created_at)
VALUES (:id, :timetable_id, :course_id, :timeslot_id, :venue_id, :is_locked, :created_at)`

	for i := range entries {
		entry := &entries[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, entry); err != nil {
			return fmt.Errorf("create timetable entry: %w", err)
		}
	}
	return nil
}

// FindByID returns a timetable header by identifier.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.Timetable, error) {
	const query = `SELECT id, academic_session, semester, status, is_active, created_at, updated_at FROM timetables WHERE id = $1 LIMIT 1`
	var timetable models.Timetable
	if err := r.db.GetContext(ctx, &timetable, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find timetable by id: %w", err)
	}
	return &timetable, nil
}

// FindActive returns the active timetable for a session/semester pair.
func (r *TimetableRepository) FindActive(ctx context.Context, academicSession string, semester int) (*models.Timetable, error) {
	const query = `SELECT id, academic_session, semester, status, is_active, created_at, updated_at
FROM timetables WHERE academic_session = $1 AND semester = $2 AND is_active = TRUE LIMIT 1`
	var timetable models.Timetable
	if err := r.db.GetContext(ctx, &timetable, query, academicSession, semester); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find active timetable: %w", err)
	}
	return &timetable, nil
}

// List returns timetables matching the filters with total count.
func (r *TimetableRepository) List(ctx context.Context, academicSession string, semester int, status string, page, pageSize int) ([]models.Timetable, int, error) {
	baseQuery := `FROM timetables WHERE 1=1`
	var conditions []string
	var args []interface{}

	if academicSession != "" {
		conditions = append(conditions, fmt.Sprintf("academic_session = $%d", len(args)+1))
		args = append(args, academicSession)
	}
	if semester > 0 {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, semester)
	}
	if status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, status)
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT id, academic_session, semester, status, is_active, created_at, updated_at %s ORDER BY created_at DESC LIMIT %d OFFSET %d", baseQuery, pageSize, offset)

	var timetables []models.Timetable
	if err := r.db.SelectContext(ctx, &timetables, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list timetables: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count timetables: %w", err)
	}

	return timetables, total, nil
}

// UpdateStatus moves a timetable through its lifecycle.
func (r *TimetableRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.TimetableStatus, isActive bool) error {
	const query = `UPDATE timetables SET status = $2, is_active = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.exec(exec).ExecContext(ctx, query, id, status, isActive, time.Now().UTC()); err != nil {
		return fmt.Errorf("update timetable status: %w", err)
	}
	return nil
}

// ArchiveActive archives any currently active timetable for the same
// session/semester so a newly published one becomes the single source.
func (r *TimetableRepository) ArchiveActive(ctx context.Context, exec sqlx.ExtContext, academicSession string, semester int, excludeID string) error {
	const query = `UPDATE timetables SET status = $3, is_active = FALSE, updated_at = $4
WHERE academic_session = $1 AND semester = $2 AND is_active = TRUE AND id <> $5`
	if _, err := r.exec(exec).ExecContext(ctx, query, academicSession, semester, models.TimetableStatusArchived, time.Now().UTC(), excludeID); err != nil {
		return fmt.Errorf("archive active timetables: %w", err)
	}
	return nil
}

// Delete removes a timetable and cascades to its entries.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM timetables WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const entryDetailColumns = `e.id AS entry_id, c.id AS course_id, c.code AS course_code, c.title, c.level, c.department,
c.lecturer_id, l.name AS lecturer_name, t.day, t.start_time, t.end_time, e.venue_id, v.name AS venue_name`

const entryDetailJoins = `FROM timetable_entries e
JOIN courses c ON c.id = e.course_id
JOIN time_slots t ON t.id = e.timeslot_id
LEFT JOIN lecturers l ON l.id = c.lecturer_id
LEFT JOIN venues v ON v.id = e.venue_id`

// ListEntryDetails returns joined entry rows for a timetable in
// chronological order, ready for grid rendering and exports.
func (r *TimetableRepository) ListEntryDetails(ctx context.Context, timetableID string) ([]models.TimetableEntryDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.timetable_id = $1 ORDER BY %s, t.start_time ASC, c.code ASC`,
		entryDetailColumns, entryDetailJoins, dayOrderExpr("t.day"))
	var details []models.TimetableEntryDetail
	if err := r.db.SelectContext(ctx, &details, query, timetableID); err != nil {
		return nil, fmt.Errorf("list timetable entry details: %w", err)
	}
	return details, nil
}

// FindEntry returns a single timetable entry.
func (r *TimetableRepository) FindEntry(ctx context.Context, entryID string) (*models.TimetableEntry, error) {
	const query = `SELECT id, timetable_id, course_id, timeslot_id, venue_id, is_locked, created_at FROM timetable_entries WHERE id = $1 LIMIT 1`
	var entry models.TimetableEntry
	if err := r.db.GetContext(ctx, &entry, query, entryID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find timetable entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry persists a manual slot move or venue assignment.
func (r *TimetableRepository) UpdateEntry(ctx context.Context, entry *models.TimetableEntry) error {
	const query = `UPDATE timetable_entries SET timeslot_id = :timeslot_id, venue_id = :venue_id, is_locked = :is_locked WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update timetable entry: %w", err)
	}
	return nil
}

// CountVenueClashes counts entries in the same timetable occupying the
// given venue and slot, excluding the entry being moved.
func (r *TimetableRepository) CountVenueClashes(ctx context.Context, timetableID, timeslotID, venueID, excludeEntryID string) (int, error) {
	const query = `SELECT COUNT(*) FROM timetable_entries
WHERE timetable_id = $1 AND timeslot_id = $2 AND venue_id = $3 AND id <> $4`
	var total int
	if err := r.db.GetContext(ctx, &total, query, timetableID, timeslotID, venueID, excludeEntryID); err != nil {
		return 0, fmt.Errorf("count venue clashes: %w", err)
	}
	return total, nil
}

// CountLecturerClashes counts entries in the same timetable whose course
// shares a lecturer with the given course at the given slot.
func (r *TimetableRepository) CountLecturerClashes(ctx context.Context, timetableID, timeslotID, lecturerID, excludeEntryID string) (int, error) {
	const query = `SELECT COUNT(*) FROM timetable_entries e
JOIN courses c ON c.id = e.course_id
WHERE e.timetable_id = $1 AND e.timeslot_id = $2 AND c.lecturer_id = $3 AND e.id <> $4`
	var total int
	if err := r.db.GetContext(ctx, &total, query, timetableID, timeslotID, lecturerID, excludeEntryID); err != nil {
		return 0, fmt.Errorf("count lecturer clashes: %w", err)
	}
	return total, nil
}
