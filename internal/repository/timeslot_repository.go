package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

// timeslotOrder fixes the weekly iteration order: Monday first, then
// period ascending within a day. The engine relies on this ordering.
const timeslotOrder = ` ORDER BY CASE day
	WHEN 'Mon' THEN 1
	WHEN 'Tue' THEN 2
	WHEN 'Wed' THEN 3
	WHEN 'Thu' THEN 4
	WHEN 'Fri' THEN 5
	ELSE 6 END, period ASC`

// TimeslotRepository manages persistence for timeslots.
type TimeslotRepository struct {
	db *sqlx.DB
}

// NewTimeslotRepository constructs a TimeslotRepository.
func NewTimeslotRepository(db *sqlx.DB) *TimeslotRepository {
	return &TimeslotRepository{db: db}
}

// ListAll returns every timeslot in (day, period) order.
func (r *TimeslotRepository) ListAll(ctx context.Context) ([]models.Timeslot, error) {
	query := `SELECT id, day, period, start_time, end_time, created_at, updated_at FROM timeslots` + timeslotOrder
	var slots []models.Timeslot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// FindByID fetches a timeslot by ID.
func (r *TimeslotRepository) FindByID(ctx context.Context, id string) (*models.Timeslot, error) {
	const query = `SELECT id, day, period, start_time, end_time, created_at, updated_at FROM timeslots WHERE id = $1`
	var slot models.Timeslot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ExistsByDayPeriod checks whether another timeslot occupies the same
// (day, period) identity.
func (r *TimeslotRepository) ExistsByDayPeriod(ctx context.Context, day, period, excludeID string) (bool, error) {
	query := "SELECT 1 FROM timeslots WHERE day = $1 AND period = $2"
	args := []interface{}{day, period}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check timeslot identity: %w", err)
	}
	return true, nil
}

// Create inserts a new timeslot record.
func (r *TimeslotRepository) Create(ctx context.Context, slot *models.Timeslot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `INSERT INTO timeslots (id, day, period, start_time, end_time, created_at, updated_at)
		VALUES (:id, :day, :period, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create timeslot: %w", err)
	}
	return nil
}

// Update modifies an existing timeslot record.
func (r *TimeslotRepository) Update(ctx context.Context, slot *models.Timeslot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timeslots SET day = :day, period = :period, start_time = :start_time, end_time = :end_time, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update timeslot: %w", err)
	}
	return nil
}

// Delete removes a timeslot.
func (r *TimeslotRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timeslots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timeslot: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
