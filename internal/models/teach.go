package models

import "time"

// TeachEligibility declares that a teacher may teach a subject.
// Many-to-many over codes.
type TeachEligibility struct {
	ID          string    `db:"id" json:"id"`
	TeacherCode string    `db:"teacher_code" json:"teacher_code"`
	SubjectCode string    `db:"subject_code" json:"subject_code"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
