package models

import "time"

// Teacher roles.
const (
	TeacherRoleLeader  = "leader"
	TeacherRoleTeacher = "teacher"
)

// Teacher is an instructor. Identity is Code, unique. MaxHoursPerWeek
// is informational; the assignment engine does not enforce it.
type Teacher struct {
	ID              string    `db:"id" json:"id"`
	Code            string    `db:"code" json:"code"`
	Name            string    `db:"name" json:"name"`
	Role            string    `db:"role" json:"role"`
	DepartmentID    *string   `db:"department_id" json:"department_id,omitempty"`
	MaxHoursPerWeek *int      `db:"max_hours_per_week" json:"max_hours_per_week,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
