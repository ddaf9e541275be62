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

// YearLevelRepository manages persistence for year levels.
type YearLevelRepository struct {
	db *sqlx.DB
}

// NewYearLevelRepository constructs a YearLevelRepository.
func NewYearLevelRepository(db *sqlx.DB) *YearLevelRepository {
	return &YearLevelRepository{db: db}
}

// ListAll returns every year level.
func (r *YearLevelRepository) ListAll(ctx context.Context) ([]models.YearLevel, error) {
	const query = `SELECT id, name, created_at, updated_at FROM year_levels ORDER BY name`
	var levels []models.YearLevel
	if err := r.db.SelectContext(ctx, &levels, query); err != nil {
		return nil, fmt.Errorf("list year levels: %w", err)
	}
	return levels, nil
}

// FindByID fetches a year level by ID.
func (r *YearLevelRepository) FindByID(ctx context.Context, id string) (*models.YearLevel, error) {
	const query = `SELECT id, name, created_at, updated_at FROM year_levels WHERE id = $1`
	var level models.YearLevel
	if err := r.db.GetContext(ctx, &level, query, id); err != nil {
		return nil, err
	}
	return &level, nil
}

// ExistsByName checks for a duplicate year level name.
func (r *YearLevelRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	query := "SELECT 1 FROM year_levels WHERE LOWER(name) = LOWER($1)"
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check year level name: %w", err)
	}
	return true, nil
}

// Create inserts a new year level record.
func (r *YearLevelRepository) Create(ctx context.Context, level *models.YearLevel) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if level.CreatedAt.IsZero() {
		level.CreatedAt = now
	}
	level.UpdatedAt = now

	const query = `INSERT INTO year_levels (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, level); err != nil {
		return fmt.Errorf("create year level: %w", err)
	}
	return nil
}

// Update modifies an existing year level record.
func (r *YearLevelRepository) Update(ctx context.Context, level *models.YearLevel) error {
	level.UpdatedAt = time.Now().UTC()
	const query = `UPDATE year_levels SET name = :name, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, level); err != nil {
		return fmt.Errorf("update year level: %w", err)
	}
	return nil
}

// Delete removes a year level record.
func (r *YearLevelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM year_levels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete year level: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
