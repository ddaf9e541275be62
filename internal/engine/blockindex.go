package engine

import (
	"fmt"
	"strings"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

// Block keys scope blocking rules: "global", "teacher:<code>",
// "group:<code>", "room:<code>", "department:<id>", "yearLevel:<id>".
const blockKeyGlobal = "global"

func teacherBlockKey(code string) string { return "teacher:" + code }

func groupBlockKey(code string) string { return "group:" + code }

func roomBlockKey(code string) string { return "room:" + code }

// BlockIndex maps a block key to the set of blocked timeslot ids.
type BlockIndex map[string]map[string]struct{}

// Blocked reports whether the slot is blocked for the given key.
func (idx BlockIndex) Blocked(key, slotID string) bool {
	set, ok := idx[key]
	if !ok {
		return false
	}
	_, blocked := set[slotID]
	return blocked
}

// BlockedAny reports whether the slot is blocked globally or for any of
// the given keys. Empty keys are skipped.
func (idx BlockIndex) BlockedAny(keys []string, slotID string) bool {
	if idx.Blocked(blockKeyGlobal, slotID) {
		return true
	}
	for _, key := range keys {
		if key != "" && idx.Blocked(key, slotID) {
			return true
		}
	}
	return false
}

func (idx BlockIndex) add(key string, slotIDs []string) {
	if len(slotIDs) == 0 {
		return
	}
	set, ok := idx[key]
	if !ok {
		set = make(map[string]struct{}, len(slotIDs))
		idx[key] = set
	}
	for _, id := range slotIDs {
		set[id] = struct{}{}
	}
}

// ResolutionOutcome records whether a constraint could be compiled into
// the block index. Dropped constraints simply have no effect; they are
// reported for observability, never as errors.
type ResolutionOutcome struct {
	ConstraintID string `json:"constraint_id"`
	TargetType   string `json:"target_type"`
	Key          string `json:"key,omitempty"`
	SlotCount    int    `json:"slot_count"`
	Resolved     bool   `json:"resolved"`
	Reason       string `json:"reason,omitempty"`
}

// SlotResolver normalizes timeslot references. A reference may be a
// timeslot id or a "<day>-<period>" label; both resolve to the
// canonical id. Lookup is case-insensitive for labels.
type SlotResolver struct {
	byID    map[string]struct{}
	byLabel map[string]string
}

// NewSlotResolver builds a resolver over the timeslot catalog.
func NewSlotResolver(timeslots []models.Timeslot) *SlotResolver {
	r := &SlotResolver{
		byID:    make(map[string]struct{}, len(timeslots)),
		byLabel: make(map[string]string, len(timeslots)),
	}
	for _, slot := range timeslots {
		r.byID[slot.ID] = struct{}{}
		r.byLabel[slot.Label()] = slot.ID
	}
	return r
}

// Resolve returns the canonical timeslot id for a reference, or "" when
// the reference matches nothing.
func (r *SlotResolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if _, ok := r.byID[ref]; ok {
		return ref
	}
	if id, ok := r.byLabel[strings.ToLower(ref)]; ok {
		return id
	}
	return ""
}

// BuildBlockIndex compiles raw constraints into a block index. Every
// constraint yields a ResolutionOutcome; unresolvable targets or
// references are dropped without error (fail-open for rules). Rule type
// and priority are deliberately not differentiated: all resolvable
// payload timeslots block.
func BuildBlockIndex(snapshot Snapshot, resolver *SlotResolver) (BlockIndex, []ResolutionOutcome) {
	teachersByRef := make(map[string]string, len(snapshot.Teachers)*2)
	for _, t := range snapshot.Teachers {
		teachersByRef[t.ID] = t.Code
		teachersByRef[t.Code] = t.Code
	}
	groupsByRef := make(map[string]string, len(snapshot.Groups)*2)
	for _, g := range snapshot.Groups {
		groupsByRef[g.ID] = g.Code
		groupsByRef[g.Code] = g.Code
	}
	roomsByRef := make(map[string]string, len(snapshot.Rooms)*2)
	for _, r := range snapshot.Rooms {
		roomsByRef[r.ID] = r.Code
		roomsByRef[r.Code] = r.Code
	}

	index := make(BlockIndex)
	outcomes := make([]ResolutionOutcome, 0, len(snapshot.Constraints))

	for _, constraint := range snapshot.Constraints {
		outcome := ResolutionOutcome{
			ConstraintID: constraint.ID,
			TargetType:   constraint.TargetType,
		}

		payload := constraint.DecodePayload()
		slotIDs := make([]string, 0, len(payload.Timeslots))
		for _, ref := range payload.Timeslots {
			if id := resolver.Resolve(ref); id != "" {
				slotIDs = append(slotIDs, id)
			}
		}
		if len(slotIDs) == 0 {
			outcome.Reason = "no resolvable timeslot references"
			outcomes = append(outcomes, outcome)
			continue
		}

		key, reason := deriveBlockKey(constraint, teachersByRef, groupsByRef, roomsByRef)
		if key == "" {
			outcome.Reason = reason
			outcomes = append(outcomes, outcome)
			continue
		}

		index.add(key, slotIDs)
		outcome.Key = key
		outcome.SlotCount = len(slotIDs)
		outcome.Resolved = true
		outcomes = append(outcomes, outcome)
	}

	return index, outcomes
}

func deriveBlockKey(constraint models.Constraint, teachers, groups, rooms map[string]string) (string, string) {
	targetID := ""
	if constraint.TargetID != nil {
		targetID = strings.TrimSpace(*constraint.TargetID)
	}

	switch constraint.TargetType {
	case models.ConstraintTargetGlobal:
		return blockKeyGlobal, ""
	case models.ConstraintTargetTeacher:
		if targetID == "" {
			return "", "missing teacher target"
		}
		if code, ok := teachers[targetID]; ok {
			return teacherBlockKey(code), ""
		}
		return "", "unknown teacher target"
	case models.ConstraintTargetStudentGroup:
		if targetID == "" {
			return "", "missing group target"
		}
		if code, ok := groups[targetID]; ok {
			return groupBlockKey(code), ""
		}
		return "", "unknown group target"
	case models.ConstraintTargetRoom:
		if targetID == "" {
			return "", "missing room target"
		}
		if code, ok := rooms[targetID]; ok {
			return roomBlockKey(code), ""
		}
		return "", "unknown room target"
	case models.ConstraintTargetDepartment, models.ConstraintTargetYearLevel:
		// No id-to-code catalog exists for these scopes; the raw id is
		// the key, matching the group references used during placement.
		if targetID == "" {
			return "", fmt.Sprintf("missing %s target", constraint.TargetType)
		}
		return constraint.TargetType + ":" + targetID, ""
	default:
		return "", "unknown target type"
	}
}
