package models

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Constraint target scopes.
const (
	ConstraintTargetTeacher      = "teacher"
	ConstraintTargetStudentGroup = "studentGroup"
	ConstraintTargetDepartment   = "department"
	ConstraintTargetRoom         = "room"
	ConstraintTargetYearLevel    = "yearLevel"
	ConstraintTargetGlobal       = "global"
)

// Constraint rule types. The assignment engine treats every resolvable
// payload timeslot as blocked regardless of rule type or priority.
const (
	ConstraintRuleUnavailable  = "UNAVAILABLE"
	ConstraintRuleRequiredSlot = "REQUIRED_SLOT"
	ConstraintRuleBlockedSlot  = "BLOCKED_SLOT"
	ConstraintRuleCustom       = "CUSTOM"
)

// Constraint priorities.
const (
	ConstraintPriorityHard = "hard"
	ConstraintPrioritySoft = "soft"
)

// ConstraintTargets lists valid target types for validation.
var ConstraintTargets = []string{
	ConstraintTargetTeacher,
	ConstraintTargetStudentGroup,
	ConstraintTargetDepartment,
	ConstraintTargetRoom,
	ConstraintTargetYearLevel,
	ConstraintTargetGlobal,
}

// Constraint is a scheduling rule. Only payload.timeslots is interpreted
// by the engine; rule type and priority are stored for future use.
type Constraint struct {
	ID         string         `db:"id" json:"id"`
	TargetType string         `db:"target_type" json:"target_type"`
	TargetID   *string        `db:"target_id" json:"target_id,omitempty"`
	RuleType   string         `db:"rule_type" json:"rule_type"`
	Priority   string         `db:"priority" json:"priority"`
	Payload    types.JSONText `db:"payload" json:"payload"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// ConstraintPayload is the interpreted portion of a constraint payload.
// Timeslot references may be slot ids or "<day>-<period>" labels.
type ConstraintPayload struct {
	Timeslots []string `json:"timeslots"`
}

// DecodePayload extracts the timeslot references from the raw payload.
// Malformed payloads yield an empty list, never an error: bad rule data
// must not block generation.
func (c Constraint) DecodePayload() ConstraintPayload {
	var payload ConstraintPayload
	if len(c.Payload) == 0 {
		return payload
	}
	if err := json.Unmarshal(c.Payload, &payload); err != nil {
		// Tolerate loosely typed entries by refiltering as raw JSON.
		var loose struct {
			Timeslots []json.RawMessage `json:"timeslots"`
		}
		if err := json.Unmarshal(c.Payload, &loose); err != nil {
			return ConstraintPayload{}
		}
		for _, raw := range loose.Timeslots {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				payload.Timeslots = append(payload.Timeslots, s)
			}
		}
	}
	return payload
}
