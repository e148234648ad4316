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

// VenueRepository provides database access for venues.
type VenueRepository struct {
	db *sqlx.DB
}

// NewVenueRepository creates a new instance of VenueRepository.
func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// FindByID returns a venue by identifier.
func (r *VenueRepository) FindByID(ctx context.Context, id string) (*models.Venue, error) {
	const query = `SELECT id, name, capacity, type, created_at, updated_at FROM venues WHERE id = $1 LIMIT 1`
	var venue models.Venue
	if err := r.db.GetContext(ctx, &venue, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find venue by id: %w", err)
	}
	return &venue, nil
}

// List returns all venues ordered by name.
func (r *VenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	const query = `SELECT id, name, capacity, type, created_at, updated_at FROM venues ORDER BY name ASC`
	var venues []models.Venue
	if err := r.db.SelectContext(ctx, &venues, query); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Create inserts a new venue.
func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	if venue.ID == "" {
		venue.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if venue.CreatedAt.IsZero() {
		venue.CreatedAt = now
	}
	venue.UpdatedAt = now

	const query = `INSERT INTO venues (id, name, capacity, type, created_at, updated_at)
VALUES (:id, :name, :capacity, :type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, venue); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

// Update updates mutable fields of a venue.
func (r *VenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	venue.UpdatedAt = time.Now().UTC()
	const query = `UPDATE venues SET name = :name, capacity = :capacity, type = :type, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, venue); err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

// Delete removes a venue.
func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM venues WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

// Count returns the number of registered venues.
func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM venues`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count venues: %w", err)
	}
	return total, nil
}
