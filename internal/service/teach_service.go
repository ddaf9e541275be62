package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

type teachRepository interface {
	ListAll(ctx context.Context) ([]models.TeachEligibility, error)
	Exists(ctx context.Context, teacherCode, subjectCode string) (bool, error)
	Create(ctx context.Context, eligibility *models.TeachEligibility) error
	Delete(ctx context.Context, id string) error
}

type codeChecker interface {
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
}

// TeachRequest links a teacher to a subject they may teach.
type TeachRequest struct {
	TeacherCode string `json:"teacher_code" validate:"required"`
	SubjectCode string `json:"subject_code" validate:"required"`
}

// TeachService handles teacher/subject eligibility workflows.
type TeachService struct {
	repo      teachRepository
	teachers  codeChecker
	subjects  codeChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeachService creates a new teach eligibility service.
func NewTeachService(repo teachRepository, teachers, subjects codeChecker, validate *validator.Validate, logger *zap.Logger) *TeachService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeachService{repo: repo, teachers: teachers, subjects: subjects, validator: validate, logger: logger}
}

// List returns every eligibility in storage order.
func (s *TeachService) List(ctx context.Context) ([]models.TeachEligibility, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teach eligibilities")
	}
	return rows, nil
}

// Create links a teacher to a subject. Both codes must exist in the
// catalog and a pair may only be declared once.
func (s *TeachService) Create(ctx context.Context, req TeachRequest) (*models.TeachEligibility, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teach payload")
	}

	req.TeacherCode = strings.ToUpper(strings.TrimSpace(req.TeacherCode))
	req.SubjectCode = strings.ToUpper(strings.TrimSpace(req.SubjectCode))

	teacherExists, err := s.teachers.ExistsByCode(ctx, req.TeacherCode, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher code")
	}
	if !teacherExists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher code does not exist")
	}

	subjectExists, err := s.subjects.ExistsByCode(ctx, req.SubjectCode, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject code")
	}
	if !subjectExists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject code does not exist")
	}

	exists, err := s.repo.Exists(ctx, req.TeacherCode, req.SubjectCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check eligibility")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "eligibility already declared")
	}

	eligibility := &models.TeachEligibility{
		TeacherCode: req.TeacherCode,
		SubjectCode: req.SubjectCode,
	}
	if err := s.repo.Create(ctx, eligibility); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create eligibility")
	}
	return eligibility, nil
}

// Delete removes an eligibility.
func (s *TeachService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "eligibility not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete eligibility")
	}
	return nil
}
