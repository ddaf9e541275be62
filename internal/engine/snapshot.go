package engine

import "github.com/BTEC2025/automatic-timetable-backend/internal/models"

// Snapshot is the fully loaded input of one generation run. Slice order
// is significant: timeslots arrive sorted by (day, period), rooms and
// teachers in catalog order, registrations in storage order. The engine
// performs no I/O; everything it needs is here.
type Snapshot struct {
	Timeslots     []models.Timeslot
	Rooms         []models.Room
	Teachers      []models.Teacher
	Subjects      []models.Subject
	Groups        []models.StudentGroup
	Eligibilities []models.TeachEligibility
	Registrations []models.Registration
	Constraints   []models.Constraint
}
