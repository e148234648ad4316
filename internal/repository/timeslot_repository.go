package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adewale-oss/timetable-api/internal/models"
)

// dayOrderExpr yields a chronological sort for the weekday enum stored as text.
func dayOrderExpr(column string) string {
	return fmt.Sprintf(`CASE %s
WHEN 'MONDAY' THEN 1
WHEN 'TUESDAY' THEN 2
WHEN 'WEDNESDAY' THEN 3
WHEN 'THURSDAY' THEN 4
WHEN 'FRIDAY' THEN 5
ELSE 6 END`, column)
}

// TimeSlotRepository provides database access for teaching periods.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository creates a new instance of TimeSlotRepository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// FindByID returns a time slot by identifier.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	const query = `SELECT id, day, start_time, end_time, created_at, updated_at FROM time_slots WHERE id = $1 LIMIT 1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find time slot by id: %w", err)
	}
	return &slot, nil
}

// List returns all time slots in chronological order. The generator relies
// on this ordering when it builds its search grid.
func (r *TimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	query := fmt.Sprintf(`SELECT id, day, start_time, end_time, created_at, updated_at FROM time_slots ORDER BY %s, start_time ASC`, dayOrderExpr("day"))
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

// Create inserts a new time slot.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `INSERT INTO time_slots (id, day, start_time, end_time, created_at, updated_at)
VALUES (:id, :day, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create time slot: %w", err)
	}
	return nil
}

// BulkCreate inserts time slots skipping duplicates on (day, start_time).
// Used by the seed command to lay down the standard teaching week.
func (r *TimeSlotRepository) BulkCreate(ctx context.Context, slots []models.TimeSlot) (int, error) {
	const query = `INSERT INTO time_slots (id, day, start_time, end_time, created_at, updated_at)
VALUES (:id, :day, :start_time, :end_time, :created_at, :updated_at)
ON CONFLICT (day, start_time) DO NOTHING`

	now := time.Now().UTC()
	inserted := 0
	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		slot.UpdatedAt = now
		res, err := r.db.NamedExecContext(ctx, query, slot)
		if err != nil {
			return inserted, fmt.Errorf("bulk create time slot: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// Delete removes a time slot.
func (r *TimeSlotRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM time_slots WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	return nil
}

// Count returns the number of time slots.
func (r *TimeSlotRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM time_slots`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count time slots: %w", err)
	}
	return total, nil
}
