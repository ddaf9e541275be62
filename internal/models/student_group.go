package models

import "time"

// StudentGroup is a cohort of students scheduled together. Identity is
// Code, unique.
type StudentGroup struct {
	ID           string    `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	StudentCount int       `db:"student_count" json:"student_count"`
	DepartmentID *string   `db:"department_id" json:"department_id,omitempty"`
	YearLevelID  *string   `db:"year_level_id" json:"year_level_id,omitempty"`
	AdvisorID    *string   `db:"advisor_id" json:"advisor_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
