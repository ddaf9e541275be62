package models

import "time"

// Subject is an academic subject. Identity is Code, unique.
type Subject struct {
	ID            string    `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	Name          string    `db:"name" json:"name"`
	TheoryHours   int       `db:"theory_hours" json:"theory_hours"`
	PracticeHours int       `db:"practice_hours" json:"practice_hours"`
	Credit        int       `db:"credit" json:"credit"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
