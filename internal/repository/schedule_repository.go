package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

// ScheduleRepository persists generated schedule entries. The entry set
// is only ever replaced wholesale; there is no per-entry update path.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedule entries matching the filter, ordered for stable
// presentation by timeslot then group.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	query := "SELECT id, group_code, timeslot_id, subject_code, teacher_code, room_code, created_at FROM schedule_entries WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.GroupCode != "" {
		conditions = append(conditions, fmt.Sprintf("group_code = $%d", len(args)+1))
		args = append(args, filter.GroupCode)
	}
	if filter.TeacherCode != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_code = $%d", len(args)+1))
		args = append(args, filter.TeacherCode)
	}
	if filter.RoomCode != "" {
		conditions = append(conditions, fmt.Sprintf("room_code = $%d", len(args)+1))
		args = append(args, filter.RoomCode)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timeslot_id, group_code"

	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}

// ReplaceAll swaps the persisted schedule for the provided entries
// inside the caller's transaction: one delete-all, then the inserts.
// Deletes and inserts are never interleaved per record.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, tx *sqlx.Tx, entries []models.ScheduleEntry) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries`); err != nil {
		return fmt.Errorf("clear schedule entries: %w", err)
	}
	return r.bulkInsert(ctx, tx, entries)
}

func (r *ScheduleRepository) bulkInsert(ctx context.Context, exec sqlx.ExtContext, entries []models.ScheduleEntry) error {
	now := time.Now().UTC()
	const query = `INSERT INTO schedule_entries (id, group_code, timeslot_id, subject_code, teacher_code, room_code, created_at)
		VALUES (:id, :group_code, :timeslot_id, :subject_code, :teacher_code, :room_code, :created_at)`
	for i := range entries {
		payload := entries[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, query, &payload); err != nil {
			return fmt.Errorf("insert schedule entry: %w", err)
		}
		entries[i] = payload
	}
	return nil
}

// Count returns the number of persisted schedule entries.
func (r *ScheduleRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM schedule_entries`); err != nil {
		return 0, fmt.Errorf("count schedule entries: %w", err)
	}
	return total, nil
}
