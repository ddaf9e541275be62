package engine

import (
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

func TestSlotResolverAcceptsIDAndLabel(t *testing.T) {
	resolver := NewSlotResolver([]models.Timeslot{
		slot("ts1", "Mon", "1"),
		slot("ts2", "Tue", "3"),
	})

	assert.Equal(t, "ts1", resolver.Resolve("ts1"))
	assert.Equal(t, "ts1", resolver.Resolve("mon-1"))
	assert.Equal(t, "ts1", resolver.Resolve("MON-1"))
	assert.Equal(t, "ts2", resolver.Resolve(" tue-3 "))
	assert.Equal(t, "", resolver.Resolve("wed-1"))
	assert.Equal(t, "", resolver.Resolve(""))
}

func TestBuildBlockIndexResolvesTargetsByIDOrCode(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Constraints = []models.Constraint{
		constraintFor("c1", models.ConstraintTargetTeacher, strptr("t1"), "mon-1"),
		constraintFor("c2", models.ConstraintTargetTeacher, strptr("T1"), "ts1"),
		constraintFor("c3", models.ConstraintTargetRoom, strptr("R1"), "mon-1"),
	}
	resolver := NewSlotResolver(snapshot.Timeslots)

	index, outcomes := BuildBlockIndex(snapshot, resolver)

	require.Len(t, outcomes, 3)
	for _, outcome := range outcomes {
		assert.True(t, outcome.Resolved, "constraint %s should resolve", outcome.ConstraintID)
	}
	assert.True(t, index.Blocked("teacher:T1", "ts1"))
	assert.True(t, index.Blocked("room:R1", "ts1"))
}

func TestBuildBlockIndexDropsUnknownTargets(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Constraints = []models.Constraint{
		constraintFor("c1", models.ConstraintTargetTeacher, strptr("T9"), "mon-1"),
		constraintFor("c2", models.ConstraintTargetTeacher, nil, "mon-1"),
		constraintFor("c3", "building", strptr("b1"), "mon-1"),
		constraintFor("c4", models.ConstraintTargetGlobal, nil, "sat-9"),
	}
	resolver := NewSlotResolver(snapshot.Timeslots)

	index, outcomes := BuildBlockIndex(snapshot, resolver)

	assert.Empty(t, index)
	require.Len(t, outcomes, 4)
	assert.Equal(t, "unknown teacher target", outcomes[0].Reason)
	assert.Equal(t, "missing teacher target", outcomes[1].Reason)
	assert.Equal(t, "unknown target type", outcomes[2].Reason)
	assert.Equal(t, "no resolvable timeslot references", outcomes[3].Reason)
	for _, outcome := range outcomes {
		assert.False(t, outcome.Resolved)
	}
}

func TestBuildBlockIndexDepartmentUsesRawID(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Constraints = []models.Constraint{
		constraintFor("c1", models.ConstraintTargetDepartment, strptr("dep1"), "mon-1"),
		constraintFor("c2", models.ConstraintTargetYearLevel, strptr("yl2"), "mon-1"),
	}
	resolver := NewSlotResolver(snapshot.Timeslots)

	index, outcomes := BuildBlockIndex(snapshot, resolver)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "department:dep1", outcomes[0].Key)
	assert.Equal(t, "yearLevel:yl2", outcomes[1].Key)
	assert.True(t, index.Blocked("department:dep1", "ts1"))
	assert.True(t, index.Blocked("yearLevel:yl2", "ts1"))
}

func TestBlockedAnyChecksGlobalFirst(t *testing.T) {
	index := make(BlockIndex)
	index.add(blockKeyGlobal, []string{"ts1"})
	index.add("teacher:T1", []string{"ts2"})

	assert.True(t, index.BlockedAny(nil, "ts1"))
	assert.True(t, index.BlockedAny([]string{"teacher:T1"}, "ts2"))
	assert.False(t, index.BlockedAny([]string{"teacher:T1", ""}, "ts3"))
}

func TestBuildBlockIndexToleratesMalformedPayloads(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantBlocked bool
	}{
		{"mixed entry types keep the string refs", `{"timeslots": ["mon-1", 5, null, {"x": 1}]}`, true},
		{"timeslots not an array", `{"timeslots": "not-an-array"}`, false},
		{"not json at all", `not json`, false},
		{"empty object", `{}`, false},
		{"empty payload", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := baseSnapshot()
			snapshot.Constraints = []models.Constraint{{
				ID:         "c1",
				TargetType: models.ConstraintTargetGlobal,
				RuleType:   models.ConstraintRuleBlockedSlot,
				Priority:   models.ConstraintPriorityHard,
				Payload:    types.JSONText(tt.payload),
			}}
			resolver := NewSlotResolver(snapshot.Timeslots)

			index, outcomes := BuildBlockIndex(snapshot, resolver)

			require.Len(t, outcomes, 1)
			assert.Equal(t, tt.wantBlocked, index.Blocked(blockKeyGlobal, "ts1"))
			if !tt.wantBlocked {
				assert.Equal(t, "no resolvable timeslot references", outcomes[0].Reason)
			}
		})
	}
}

func TestGreedyMalformedConstraintDoesNotBlockGeneration(t *testing.T) {
	snapshot := baseSnapshot()
	snapshot.Constraints = []models.Constraint{{
		ID:         "c1",
		TargetType: models.ConstraintTargetGlobal,
		RuleType:   models.ConstraintRuleBlockedSlot,
		Priority:   models.ConstraintPriorityHard,
		Payload:    types.JSONText(`{"timeslots": {"nested": true}}`),
	}}

	result := NewGreedy(nil).Build(snapshot)

	require.Len(t, result.Entries, 1)
	assert.Empty(t, result.Unscheduled)
}

func TestEligibilityIndexDropsUnknownTeachers(t *testing.T) {
	teachers := []models.Teacher{
		{ID: "t1", Code: "T1", Name: "Teacher One"},
	}
	eligibilities := []models.TeachEligibility{
		{ID: "e1", TeacherCode: "T1", SubjectCode: "MATH"},
		{ID: "e2", TeacherCode: "TX", SubjectCode: "MATH"},
	}

	index := BuildEligibilityIndex(eligibilities, teachers)

	candidates := index.Candidates("MATH")
	require.Len(t, candidates, 1)
	assert.Equal(t, "T1", candidates[0].Code)
	assert.Empty(t, index.Candidates("PHYS"))
}
