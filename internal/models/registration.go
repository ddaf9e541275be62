package models

import "time"

// Registration is one unit of class-time demand: a student group needs
// one meeting of a subject. The engine assigns exactly one
// teacher/room/timeslot triple per registration.
type Registration struct {
	ID          string    `db:"id" json:"id"`
	GroupCode   string    `db:"group_code" json:"group_code"`
	SubjectCode string    `db:"subject_code" json:"subject_code"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
