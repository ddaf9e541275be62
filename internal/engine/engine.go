package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

// Reasons a registration can go unplaced. Fixed vocabulary; callers may
// match on these values.
const (
	ReasonNoEligibleTeacher = "no eligible teacher"
	ReasonNoFreeSlot        = "no free time/room matching constraints"
	ReasonMissingData       = "missing group or subject data"
)

// Result is the complete outcome of one generation run.
type Result struct {
	Entries        []models.ScheduleEntry
	Unscheduled    []models.UnscheduledDemand
	ScheduledCount int
	TotalRequests  int
	Summary        string
	Resolutions    []ResolutionOutcome
}

// Scheduler produces a timetable from a loaded snapshot. The greedy
// implementation below is the documented behaviour; the interface
// exists so a backtracking or CP solver could be swapped in without
// touching the data model.
type Scheduler interface {
	Build(snapshot Snapshot) *Result
}

// Greedy is a deterministic first-fit scheduler without backtracking.
// It guarantees hard-constraint safety and per-demand diagnostics, not
// maximality: a demand may be reported unplaceable even though another
// assignment order would have placed it.
type Greedy struct {
	logger *zap.Logger
}

// NewGreedy constructs the greedy scheduler.
func NewGreedy(logger *zap.Logger) *Greedy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Greedy{logger: logger}
}

// Build processes registrations strictly in order. Each commit marks
// the teacher, group, and room busy before the next registration is
// evaluated, so later demands see every earlier placement.
func (g *Greedy) Build(snapshot Snapshot) *Result {
	resolver := NewSlotResolver(snapshot.Timeslots)
	blocks, resolutions := BuildBlockIndex(snapshot, resolver)
	eligibility := BuildEligibilityIndex(snapshot.Eligibilities, snapshot.Teachers)

	groupsByCode := make(map[string]models.StudentGroup, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		groupsByCode[group.Code] = group
	}
	subjectsByCode := make(map[string]models.Subject, len(snapshot.Subjects))
	for _, subject := range snapshot.Subjects {
		subjectsByCode[subject.Code] = subject
	}

	teacherBusy := newBusySet()
	groupBusy := newBusySet()
	roomBusy := newBusySet()

	result := &Result{
		Entries:       make([]models.ScheduleEntry, 0, len(snapshot.Registrations)),
		Unscheduled:   make([]models.UnscheduledDemand, 0),
		TotalRequests: len(snapshot.Registrations),
		Resolutions:   resolutions,
	}

	for _, registration := range snapshot.Registrations {
		group, groupOK := groupsByCode[registration.GroupCode]
		subject, subjectOK := subjectsByCode[registration.SubjectCode]
		if !groupOK || !subjectOK {
			result.Unscheduled = append(result.Unscheduled, models.UnscheduledDemand{
				GroupCode:   registration.GroupCode,
				SubjectCode: registration.SubjectCode,
				Reason:      ReasonMissingData,
			})
			continue
		}

		candidates := eligibility.Candidates(subject.Code)
		if len(candidates) == 0 {
			result.Unscheduled = append(result.Unscheduled, models.UnscheduledDemand{
				GroupCode:   group.Code,
				SubjectCode: subject.Code,
				Reason:      ReasonNoEligibleTeacher,
			})
			continue
		}

		placed := false
		for _, teacher := range candidates {
			for _, slot := range snapshot.Timeslots {
				room := g.pickRoom(snapshot.Rooms, roomBusy, blocks, slot.ID)
				if room == nil {
					continue
				}

				blockKeys := []string{
					teacherBlockKey(teacher.Code),
					groupBlockKey(group.Code),
					roomBlockKey(room.Code),
				}
				if group.DepartmentID != nil {
					blockKeys = append(blockKeys, models.ConstraintTargetDepartment+":"+*group.DepartmentID)
				}
				if group.YearLevelID != nil {
					blockKeys = append(blockKeys, models.ConstraintTargetYearLevel+":"+*group.YearLevelID)
				}

				if teacherBusy.busy(teacher.Code, slot.ID) ||
					groupBusy.busy(group.Code, slot.ID) ||
					blocks.BlockedAny(blockKeys, slot.ID) {
					continue
				}

				result.Entries = append(result.Entries, models.ScheduleEntry{
					GroupCode:   group.Code,
					TimeslotID:  slot.ID,
					SubjectCode: subject.Code,
					TeacherCode: teacher.Code,
					RoomCode:    room.Code,
				})
				teacherBusy.mark(teacher.Code, slot.ID)
				groupBusy.mark(group.Code, slot.ID)
				roomBusy.mark(room.Code, slot.ID)
				placed = true
				break
			}
			if placed {
				break
			}
		}

		if !placed {
			result.Unscheduled = append(result.Unscheduled, models.UnscheduledDemand{
				GroupCode:   group.Code,
				SubjectCode: subject.Code,
				Reason:      ReasonNoFreeSlot,
			})
		}
	}

	result.ScheduledCount = len(result.Entries)
	result.Summary = describeSummary(result.TotalRequests, result.ScheduledCount, len(result.Unscheduled))
	return result
}

// pickRoom returns the first room in catalog order that is free and not
// blocked at the slot, or nil when every room is taken or blocked.
func (g *Greedy) pickRoom(rooms []models.Room, roomBusy busySet, blocks BlockIndex, slotID string) *models.Room {
	for i := range rooms {
		room := &rooms[i]
		if roomBusy.busy(room.Code, slotID) {
			continue
		}
		if blocks.BlockedAny([]string{roomBlockKey(room.Code)}, slotID) {
			continue
		}
		return room
	}
	return nil
}

func describeSummary(totalRequests, scheduled, conflicts int) string {
	if totalRequests == 0 {
		return "no registrations found; nothing to schedule"
	}
	if scheduled == 0 {
		return "no placements were possible under the current catalog and constraints"
	}
	ratio := int(math.Round(float64(scheduled) / float64(totalRequests) * 100))
	text := fmt.Sprintf("generated %d/%d meetings (%d%%)", scheduled, totalRequests, ratio)
	if conflicts > 0 {
		text += fmt.Sprintf("; %d remain unplaced and need manual assignment", conflicts)
	}
	return text
}
