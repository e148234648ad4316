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

// LecturerRepository provides database access for lecturers.
type LecturerRepository struct {
	db *sqlx.DB
}

// NewLecturerRepository creates a new instance of LecturerRepository.
func NewLecturerRepository(db *sqlx.DB) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// FindByID returns a lecturer by identifier.
func (r *LecturerRepository) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	const query = `SELECT id, name, email, department, max_hours_per_day, created_at, updated_at FROM lecturers WHERE id = $1 LIMIT 1`
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lecturer by id: %w", err)
	}
	return &lecturer, nil
}

// List returns all lecturers ordered by name.
func (r *LecturerRepository) List(ctx context.Context) ([]models.Lecturer, error) {
	const query = `SELECT id, name, email, department, max_hours_per_day, created_at, updated_at FROM lecturers ORDER BY name ASC`
	var lecturers []models.Lecturer
	if err := r.db.SelectContext(ctx, &lecturers, query); err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	return lecturers, nil
}

// Create inserts a new lecturer.
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	if lecturer.ID == "" {
		lecturer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if lecturer.CreatedAt.IsZero() {
		lecturer.CreatedAt = now
	}
	lecturer.UpdatedAt = now

	const query = `INSERT INTO lecturers (id, name, email, department, max_hours_per_day, created_at, updated_at)
VALUES (:id, :name, :email, :department, :max_hours_per_day, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lecturer); err != nil {
		return fmt.Errorf("create lecturer: %w", err)
	}
	return nil
}

// Update updates mutable fields of a lecturer.
func (r *LecturerRepository) Update(ctx context.Context, lecturer *models.Lecturer) error {
	lecturer.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lecturers SET name = :name, department = :department, max_hours_per_day = :max_hours_per_day, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, lecturer); err != nil {
		return fmt.Errorf("update lecturer: %w", err)
	}
	return nil
}

// Delete removes a lecturer.
func (r *LecturerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM lecturers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete lecturer: %w", err)
	}
	return nil
}

// Count returns the number of registered lecturers.
func (r *LecturerRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM lecturers`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count lecturers: %w", err)
	}
	return total, nil
}
