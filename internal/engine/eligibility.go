package engine

import "github.com/BTEC2025/automatic-timetable-backend/internal/models"

// EligibilityIndex maps a subject code to the teachers eligible to
// teach it, in eligibility-row order. The first-listed teacher is
// always tried first; no metric reorders candidates.
type EligibilityIndex map[string][]models.Teacher

// BuildEligibilityIndex compiles teach-eligibility rows against the
// teacher catalog. Rows referencing an unknown teacher are dropped.
func BuildEligibilityIndex(eligibilities []models.TeachEligibility, teachers []models.Teacher) EligibilityIndex {
	byCode := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		byCode[t.Code] = t
	}

	index := make(EligibilityIndex)
	for _, row := range eligibilities {
		teacher, ok := byCode[row.TeacherCode]
		if !ok {
			continue
		}
		index[row.SubjectCode] = append(index[row.SubjectCode], teacher)
	}
	return index
}

// Candidates returns the eligible teachers for a subject code.
func (idx EligibilityIndex) Candidates(subjectCode string) []models.Teacher {
	return idx[subjectCode]
}
