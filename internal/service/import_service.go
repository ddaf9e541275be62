package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

// Importable entity names accepted by the CSV importer.
const (
	ImportEntityTeachers      = "teachers"
	ImportEntityRooms         = "rooms"
	ImportEntitySubjects      = "subjects"
	ImportEntityStudentGroups = "student-groups"
	ImportEntityTeaches       = "teaches"
	ImportEntityRegistrations = "registrations"
)

// headerAliases maps accepted CSV header spellings to canonical names.
// Matching is case-insensitive after trimming.
var headerAliases = map[string]string{
	"code":               "code",
	"name":               "name",
	"full name":          "name",
	"role":               "role",
	"department":         "department_id",
	"department id":      "department_id",
	"max hours":          "max_hours_per_week",
	"max hours per week": "max_hours_per_week",
	"building":           "building",
	"type":               "type",
	"room type":          "type",
	"theory hours":       "theory_hours",
	"practice hours":     "practice_hours",
	"credit":             "credit",
	"credits":            "credit",
	"student count":      "student_count",
	"students":           "student_count",
	"year level":         "year_level_id",
	"year level id":      "year_level_id",
	"advisor":            "advisor_id",
	"advisor id":         "advisor_id",
	"teacher":            "teacher_code",
	"teacher code":       "teacher_code",
	"subject":            "subject_code",
	"subject code":       "subject_code",
	"group":              "group_code",
	"group code":         "group_code",
}

// ImportRowError records one rejected row.
type ImportRowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportSummary reports the outcome of one import. Rows fail
// independently; one bad row never aborts the file.
type ImportSummary struct {
	Entity   string           `json:"entity"`
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ImportService loads catalog rows from CSV files. Each row maps to the
// corresponding service Create call so the same validation and
// uniqueness rules apply as for the JSON API.
type ImportService struct {
	teachers      *TeacherService
	rooms         *RoomService
	subjects      *SubjectService
	groups        *StudentGroupService
	teaches       *TeachService
	registrations *RegistrationService
	logger        *zap.Logger
}

// NewImportService wires importer dependencies.
func NewImportService(
	teachers *TeacherService,
	rooms *RoomService,
	subjects *SubjectService,
	groups *StudentGroupService,
	teaches *TeachService,
	registrations *RegistrationService,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		teachers:      teachers,
		rooms:         rooms,
		subjects:      subjects,
		groups:        groups,
		teaches:       teaches,
		registrations: registrations,
		logger:        logger,
	}
}

// Import parses the CSV stream and creates one record per row.
func (s *ImportService) Import(ctx context.Context, entity string, r io.Reader) (*ImportSummary, error) {
	entity = strings.ToLower(strings.TrimSpace(entity))

	var create func(ctx context.Context, row map[string]string) error
	switch entity {
	case ImportEntityTeachers:
		create = s.createTeacher
	case ImportEntityRooms:
		create = s.createRoom
	case ImportEntitySubjects:
		create = s.createSubject
	case ImportEntityStudentGroups:
		create = s.createStudentGroup
	case ImportEntityTeaches:
		create = s.createTeach
	case ImportEntityRegistrations:
		create = s.createRegistration
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown import entity")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing csv header row")
	}
	columns := resolveHeaders(headerRow)

	summary := &ImportSummary{Entity: entity}
	line := 1
	for {
		record, err := reader.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.Total++
			summary.Failed++
			summary.Errors = append(summary.Errors, ImportRowError{Line: line, Message: "malformed csv row"})
			continue
		}

		summary.Total++
		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = strings.TrimSpace(record[i])
		}

		if err := create(ctx, row); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, ImportRowError{Line: line, Message: importErrorMessage(err)})
			continue
		}
		summary.Imported++
	}

	s.logger.Info("csv import finished",
		zap.String("entity", entity),
		zap.Int("total", summary.Total),
		zap.Int("imported", summary.Imported),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (s *ImportService) createTeacher(ctx context.Context, row map[string]string) error {
	req := CreateTeacherRequest{
		Code: row["code"],
		Name: row["name"],
		Role: strings.ToLower(row["role"]),
	}
	if req.Role == "" {
		req.Role = "teacher"
	}
	if v := row["department_id"]; v != "" {
		req.DepartmentID = &v
	}
	if v := row["max_hours_per_week"]; v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("max hours must be a number")
		}
		req.MaxHoursPerWeek = &hours
	}
	_, err := s.teachers.Create(ctx, req)
	return err
}

func (s *ImportService) createRoom(ctx context.Context, row map[string]string) error {
	req := CreateRoomRequest{
		Code: row["code"],
		Name: row["name"],
		Type: strings.ToLower(row["type"]),
	}
	if v := row["building"]; v != "" {
		req.Building = &v
	}
	_, err := s.rooms.Create(ctx, req)
	return err
}

func (s *ImportService) createSubject(ctx context.Context, row map[string]string) error {
	theory, err := atoiField(row["theory_hours"])
	if err != nil {
		return fmt.Errorf("theory hours must be a number")
	}
	practice, err := atoiField(row["practice_hours"])
	if err != nil {
		return fmt.Errorf("practice hours must be a number")
	}
	credit, err := atoiField(row["credit"])
	if err != nil {
		return fmt.Errorf("credit must be a number")
	}
	_, err = s.subjects.Create(ctx, CreateSubjectRequest{
		Code:          row["code"],
		Name:          row["name"],
		TheoryHours:   theory,
		PracticeHours: practice,
		Credit:        credit,
	})
	return err
}

func (s *ImportService) createStudentGroup(ctx context.Context, row map[string]string) error {
	count, err := atoiField(row["student_count"])
	if err != nil {
		return fmt.Errorf("student count must be a number")
	}
	req := CreateStudentGroupRequest{
		Code:         row["code"],
		Name:         row["name"],
		StudentCount: count,
	}
	if v := row["department_id"]; v != "" {
		req.DepartmentID = &v
	}
	if v := row["year_level_id"]; v != "" {
		req.YearLevelID = &v
	}
	if v := row["advisor_id"]; v != "" {
		req.AdvisorID = &v
	}
	_, err = s.groups.Create(ctx, req)
	return err
}

func (s *ImportService) createTeach(ctx context.Context, row map[string]string) error {
	_, err := s.teaches.Create(ctx, TeachRequest{
		TeacherCode: row["teacher_code"],
		SubjectCode: row["subject_code"],
	})
	return err
}

func (s *ImportService) createRegistration(ctx context.Context, row map[string]string) error {
	_, err := s.registrations.Create(ctx, RegistrationRequest{
		GroupCode:   row["group_code"],
		SubjectCode: row["subject_code"],
	})
	return err
}

func resolveHeaders(raw []string) []string {
	columns := make([]string, len(raw))
	for i, header := range raw {
		key := strings.ToLower(strings.TrimSpace(header))
		key = strings.ReplaceAll(key, "_", " ")
		if canonical, ok := headerAliases[key]; ok {
			columns[i] = canonical
		}
	}
	return columns
}

func atoiField(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func importErrorMessage(err error) string {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
