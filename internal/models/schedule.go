package models

import "time"

// ScheduleEntry is one committed class meeting. The full set is
// replaced wholesale on each generation run.
type ScheduleEntry struct {
	ID          string    `db:"id" json:"id"`
	GroupCode   string    `db:"group_code" json:"group_code"`
	TimeslotID  string    `db:"timeslot_id" json:"timeslot_id"`
	SubjectCode string    `db:"subject_code" json:"subject_code"`
	TeacherCode string    `db:"teacher_code" json:"teacher_code"`
	RoomCode    string    `db:"room_code" json:"room_code"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ScheduleFilter describes query params for listing schedule entries.
type ScheduleFilter struct {
	GroupCode   string
	TeacherCode string
	RoomCode    string
}

// UnscheduledDemand records a registration the generator could not
// place, with a reason from a fixed vocabulary.
type UnscheduledDemand struct {
	GroupCode   string `json:"group_code"`
	SubjectCode string `json:"subject_code"`
	Reason      string `json:"reason"`
}

// GenerationReport summarises one generation run.
type GenerationReport struct {
	ScheduledCount int                 `json:"scheduled_count"`
	TotalRequests  int                 `json:"total_requests"`
	Unscheduled    []UnscheduledDemand `json:"unscheduled"`
	Summary        string              `json:"summary"`
	GeneratedAt    time.Time           `json:"generated_at"`
}
