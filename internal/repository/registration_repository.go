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

// RegistrationRepository manages class-time demand records.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// ListAll returns registrations in storage order. The generation run
// consumes demands in exactly this order, so the sort must be stable.
func (r *RegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	const query = `SELECT id, group_code, subject_code, created_at FROM registrations ORDER BY created_at, id`
	var registrations []models.Registration
	if err := r.db.SelectContext(ctx, &registrations, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// Exists checks for a duplicate (group, subject) demand pair.
func (r *RegistrationRepository) Exists(ctx context.Context, groupCode, subjectCode string) (bool, error) {
	const query = `SELECT 1 FROM registrations WHERE group_code = $1 AND subject_code = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, groupCode, subjectCode); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check registration: %w", err)
	}
	return true, nil
}

// Create inserts a new registration record.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	if registration.ID == "" {
		registration.ID = uuid.NewString()
	}
	if registration.CreatedAt.IsZero() {
		registration.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO registrations (id, group_code, subject_code, created_at)
		VALUES (:id, :group_code, :subject_code, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, registration); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// Delete removes a registration.
func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the number of registrations.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM registrations`); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}
