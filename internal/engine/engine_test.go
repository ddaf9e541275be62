package engine

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

func slot(id, day, period string) models.Timeslot {
	return models.Timeslot{ID: id, Day: day, Period: period, StartTime: "08:00", EndTime: "09:00"}
}

func constraintFor(id, targetType string, targetID *string, timeslots ...string) models.Constraint {
	payload, _ := json.Marshal(map[string]interface{}{"timeslots": timeslots})
	return models.Constraint{
		ID:         id,
		TargetType: targetType,
		TargetID:   targetID,
		RuleType:   models.ConstraintRuleBlockedSlot,
		Priority:   models.ConstraintPriorityHard,
		Payload:    types.JSONText(payload),
	}
}

func strptr(s string) *string { return &s }

func baseSnapshot() Snapshot {
	return Snapshot{
		Timeslots: []models.Timeslot{slot("ts1", "Mon", "1")},
		Rooms:     []models.Room{{ID: "r1", Code: "R1", Name: "Room 1", Type: models.RoomTypeTheory}},
		Teachers:  []models.Teacher{{ID: "t1", Code: "T1", Name: "Teacher One", Role: models.TeacherRoleTeacher}},
		Subjects:  []models.Subject{{ID: "s1", Code: "MATH", Name: "Math"}},
		Groups:    []models.StudentGroup{{ID: "g1", Code: "G1", Name: "Group 1"}},
		Eligibilities: []models.TeachEligibility{
			{ID: "e1", TeacherCode: "T1", SubjectCode: "MATH"},
		},
		Registrations: []models.Registration{
			{ID: "d1", GroupCode: "G1", SubjectCode: "MATH"},
		},
	}
}

func TestGreedyPlacesSingleDemand(t *testing.T) {
	result := NewGreedy(nil).Build(baseSnapshot())

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, "G1", entry.GroupCode)
	assert.Equal(t, "ts1", entry.TimeslotID)
	assert.Equal(t, "MATH", entry.SubjectCode)
	assert.Equal(t, "T1", entry.TeacherCode)
	assert.Equal(t, "R1", entry.RoomCode)
	assert.Equal(t, 1, result.ScheduledCount)
	assert.Empty(t, result.Unscheduled)
}

func TestGreedyGlobalBlockLeavesDemandUnplaced(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Constraints = []models.Constraint{
		constraintFor("c1", models.ConstraintTargetGlobal, nil, "mon-1"),
	}

	result := NewGreedy(nil).Build(snapshot)

	assert.Empty(t, result.Entries)
	assert.Equal(t, 0, result.ScheduledCount)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, "G1", result.Unscheduled[0].GroupCode)
	assert.Equal(t, "MATH", result.Unscheduled[0].SubjectCode)
	assert.Equal(t, ReasonNoFreeSlot, result.Unscheduled[0].Reason)
	assert.Equal(t, "no placements were possible under the current catalog and constraints", result.Summary)
}

func TestGreedyTeacherBusyBlocksSecondDemand(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Subjects = append(snapshot.Subjects, models.Subject{ID: "s2", Code: "PHYS", Name: "Physics"})
	snapshot.Eligibilities = append(snapshot.Eligibilities, models.TeachEligibility{ID: "e2", TeacherCode: "T1", SubjectCode: "PHYS"})
	snapshot.Registrations = append(snapshot.Registrations, models.Registration{ID: "d2", GroupCode: "G1", SubjectCode: "PHYS"})

	result := NewGreedy(nil).Build(snapshot)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "MATH", result.Entries[0].SubjectCode)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, "PHYS", result.Unscheduled[0].SubjectCode)
	assert.Equal(t, ReasonNoFreeSlot, result.Unscheduled[0].Reason)
}

func TestGreedyNoEligibleTeacher(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Subjects = append(snapshot.Subjects, models.Subject{ID: "s3", Code: "CHEM", Name: "Chemistry"})
	snapshot.Registrations = []models.Registration{
		{ID: "d1", GroupCode: "G1", SubjectCode: "CHEM"},
	}

	result := NewGreedy(nil).Build(snapshot)

	assert.Empty(t, result.Entries)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, ReasonNoEligibleTeacher, result.Unscheduled[0].Reason)
	assert.Equal(t, "no placements were possible under the current catalog and constraints", result.Summary)
}

func TestGreedyEmptyDemand(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Registrations = nil

	result := NewGreedy(nil).Build(snapshot)

	assert.Equal(t, 0, result.TotalRequests)
	assert.Equal(t, 0, result.ScheduledCount)
	assert.Empty(t, result.Unscheduled)
	assert.Equal(t, "no registrations found; nothing to schedule", result.Summary)
}

func TestGreedyMissingGroupOrSubject(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Registrations = append(snapshot.Registrations, models.Registration{ID: "d2", GroupCode: "GX", SubjectCode: "MATH"})

	result := NewGreedy(nil).Build(snapshot)

	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, ReasonMissingData, result.Unscheduled[0].Reason)
	assert.Equal(t, 1, result.ScheduledCount)
}

// largeSnapshot builds a snapshot big enough to exercise conflicts:
// three groups, two teachers, two rooms, a 2x3 slot grid.
func largeSnapshot() Snapshot {
	slots := []models.Timeslot{
		slot("ts1", "Mon", "1"), slot("ts2", "Mon", "2"), slot("ts3", "Mon", "3"),
		slot("ts4", "Tue", "1"), slot("ts5", "Tue", "2"), slot("ts6", "Tue", "3"),
	}
	snapshot := Snapshot{
		Timeslots: slots,
		Rooms: []models.Room{
			{ID: "r1", Code: "R1", Name: "Room 1", Type: models.RoomTypeTheory},
			{ID: "r2", Code: "R2", Name: "Room 2", Type: models.RoomTypePractice},
		},
		Teachers: []models.Teacher{
			{ID: "t1", Code: "T1", Name: "Teacher One", Role: models.TeacherRoleTeacher},
			{ID: "t2", Code: "T2", Name: "Teacher Two", Role: models.TeacherRoleTeacher},
		},
		Subjects: []models.Subject{
			{ID: "s1", Code: "MATH", Name: "Math"},
			{ID: "s2", Code: "PHYS", Name: "Physics"},
		},
		Groups: []models.StudentGroup{
			{ID: "g1", Code: "G1", Name: "Group 1"},
			{ID: "g2", Code: "G2", Name: "Group 2"},
			{ID: "g3", Code: "G3", Name: "Group 3"},
		},
		Eligibilities: []models.TeachEligibility{
			{ID: "e1", TeacherCode: "T1", SubjectCode: "MATH"},
			{ID: "e2", TeacherCode: "T2", SubjectCode: "MATH"},
			{ID: "e3", TeacherCode: "T2", SubjectCode: "PHYS"},
		},
	}
	for i, g := range []string{"G1", "G2", "G3"} {
		snapshot.Registrations = append(snapshot.Registrations,
			models.Registration{ID: fmt.Sprintf("dm%d", i), GroupCode: g, SubjectCode: "MATH"},
			models.Registration{ID: fmt.Sprintf("dp%d", i), GroupCode: g, SubjectCode: "PHYS"},
		)
	}
	return snapshot
}

func TestGreedyNoDoubleBooking(t *testing.T) {
	result := NewGreedy(nil).Build(largeSnapshot())

	teacherSlots := make(map[string]struct{})
	groupSlots := make(map[string]struct{})
	roomSlots := make(map[string]struct{})
	for _, entry := range result.Entries {
		tk := entry.TeacherCode + "|" + entry.TimeslotID
		gk := entry.GroupCode + "|" + entry.TimeslotID
		rk := entry.RoomCode + "|" + entry.TimeslotID
		_, tDup := teacherSlots[tk]
		_, gDup := groupSlots[gk]
		_, rDup := roomSlots[rk]
		assert.False(t, tDup, "teacher double-booked at %s", tk)
		assert.False(t, gDup, "group double-booked at %s", gk)
		assert.False(t, rDup, "room double-booked at %s", rk)
		teacherSlots[tk] = struct{}{}
		groupSlots[gk] = struct{}{}
		roomSlots[rk] = struct{}{}
	}
}

func TestGreedyEligibilityRespected(t *testing.T) {
	snapshot := largeSnapshot()
	eligible := make(map[string]struct{})
	for _, e := range snapshot.Eligibilities {
		eligible[e.TeacherCode+"|"+e.SubjectCode] = struct{}{}
	}

	result := NewGreedy(nil).Build(snapshot)
	for _, entry := range result.Entries {
		_, ok := eligible[entry.TeacherCode+"|"+entry.SubjectCode]
		assert.True(t, ok, "entry %v violates eligibility", entry)
	}
}

func TestGreedyCompletenessBound(t *testing.T) {
	result := NewGreedy(nil).Build(largeSnapshot())
	assert.Equal(t, result.TotalRequests, result.ScheduledCount+len(result.Unscheduled))
}

func TestGreedyDeterminism(t *testing.T) {
	first := NewGreedy(nil).Build(largeSnapshot())
	second := NewGreedy(nil).Build(largeSnapshot())

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.Unscheduled, second.Unscheduled)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestGreedyTeacherConstraintByCode(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Timeslots = append(snapshot.Timeslots, slot("ts2", "Mon", "2"))
	snapshot.Constraints = []models.Constraint{
		constraintFor("c1", models.ConstraintTargetTeacher, strptr("T1"), "mon-1"),
	}

	result := NewGreedy(nil).Build(snapshot)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "ts2", result.Entries[0].TimeslotID)
}

func TestGreedyDepartmentBlockAppliesToGroup(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Groups[0].DepartmentID = strptr("dep1")
	snapshot.Constraints = []models.Constraint{
		constraintFor("c1", models.ConstraintTargetDepartment, strptr("dep1"), "ts1"),
	}

	result := NewGreedy(nil).Build(snapshot)

	assert.Empty(t, result.Entries)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, ReasonNoFreeSlot, result.Unscheduled[0].Reason)
}

func TestGreedySummaryRatio(t *testing.T) {
	result := NewGreedy(nil).Build(largeSnapshot())
	if len(result.Unscheduled) > 0 {
		assert.Contains(t, result.Summary, "manual assignment")
	}
	assert.Contains(t, result.Summary, fmt.Sprintf("%d/%d", result.ScheduledCount, result.TotalRequests))
}
