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

// TeachRepository manages teacher-subject eligibility rows.
type TeachRepository struct {
	db *sqlx.DB
}

// NewTeachRepository constructs a TeachRepository.
func NewTeachRepository(db *sqlx.DB) *TeachRepository {
	return &TeachRepository{db: db}
}

// ListAll returns eligibility rows in storage order. Candidate teachers
// for a subject are tried in exactly this order.
func (r *TeachRepository) ListAll(ctx context.Context) ([]models.TeachEligibility, error) {
	const query = `SELECT id, teacher_code, subject_code, created_at FROM teach_eligibilities ORDER BY created_at, id`
	var rows []models.TeachEligibility
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teach eligibilities: %w", err)
	}
	return rows, nil
}

// Exists checks for a duplicate eligibility pair.
func (r *TeachRepository) Exists(ctx context.Context, teacherCode, subjectCode string) (bool, error) {
	const query = `SELECT 1 FROM teach_eligibilities WHERE teacher_code = $1 AND subject_code = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherCode, subjectCode); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teach eligibility: %w", err)
	}
	return true, nil
}

// Create inserts a new eligibility row.
func (r *TeachRepository) Create(ctx context.Context, eligibility *models.TeachEligibility) error {
	if eligibility.ID == "" {
		eligibility.ID = uuid.NewString()
	}
	if eligibility.CreatedAt.IsZero() {
		eligibility.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO teach_eligibilities (id, teacher_code, subject_code, created_at)
		VALUES (:id, :teacher_code, :subject_code, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, eligibility); err != nil {
		return fmt.Errorf("create teach eligibility: %w", err)
	}
	return nil
}

// Delete removes an eligibility row.
func (r *TeachRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teach_eligibilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teach eligibility: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
