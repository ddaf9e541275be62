package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

const studentGroupColumns = "id, code, name, student_count, department_id, year_level_id, advisor_id, created_at, updated_at"

// StudentGroupRepository manages persistence for student groups.
type StudentGroupRepository struct {
	db *sqlx.DB
}

// NewStudentGroupRepository constructs a StudentGroupRepository.
func NewStudentGroupRepository(db *sqlx.DB) *StudentGroupRepository {
	return &StudentGroupRepository{db: db}
}

// ListAll returns the full group catalog in stable catalog order.
func (r *StudentGroupRepository) ListAll(ctx context.Context) ([]models.StudentGroup, error) {
	query := fmt.Sprintf("SELECT %s FROM student_groups ORDER BY created_at, id", studentGroupColumns)
	var groups []models.StudentGroup
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list all student groups: %w", err)
	}
	return groups, nil
}

// List returns student groups matching filters along with total count.
func (r *StudentGroupRepository) List(ctx context.Context, search string, page, size int) ([]models.StudentGroup, int, error) {
	base := "FROM student_groups WHERE 1=1"
	var args []interface{}

	if search != "" {
		base += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(code) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at, id LIMIT %d OFFSET %d", studentGroupColumns, base, size, offset)
	var groups []models.StudentGroup
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list student groups: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count student groups: %w", err)
	}

	return groups, total, nil
}

// FindByID fetches a student group by ID.
func (r *StudentGroupRepository) FindByID(ctx context.Context, id string) (*models.StudentGroup, error) {
	query := fmt.Sprintf("SELECT %s FROM student_groups WHERE id = $1", studentGroupColumns)
	var group models.StudentGroup
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// ExistsByCode checks if another group uses the same code.
func (r *StudentGroupRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	query := "SELECT 1 FROM student_groups WHERE code = $1"
	args := []interface{}{code}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student group code: %w", err)
	}
	return true, nil
}

// Create inserts a new student group record.
func (r *StudentGroupRepository) Create(ctx context.Context, group *models.StudentGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now
	}
	group.UpdatedAt = now

	const query = `INSERT INTO student_groups (id, code, name, student_count, department_id, year_level_id, advisor_id, created_at, updated_at)
		VALUES (:id, :code, :name, :student_count, :department_id, :year_level_id, :advisor_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create student group: %w", err)
	}
	return nil
}

// Update modifies an existing student group record.
func (r *StudentGroupRepository) Update(ctx context.Context, group *models.StudentGroup) error {
	group.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student_groups SET code = :code, name = :name, student_count = :student_count, department_id = :department_id, year_level_id = :year_level_id, advisor_id = :advisor_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update student group: %w", err)
	}
	return nil
}

// Delete removes a student group record.
func (r *StudentGroupRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM student_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student group: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the number of student groups.
func (r *StudentGroupRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM student_groups`); err != nil {
		return 0, fmt.Errorf("count student groups: %w", err)
	}
	return total, nil
}
