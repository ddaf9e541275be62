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

type studentGroupRepository interface {
	List(ctx context.Context, search string, page, size int) ([]models.StudentGroup, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentGroup, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, group *models.StudentGroup) error
	Update(ctx context.Context, group *models.StudentGroup) error
	Delete(ctx context.Context, id string) error
}

// CreateStudentGroupRequest captures fields for creating student groups.
type CreateStudentGroupRequest struct {
	Code         string  `json:"code" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	StudentCount int     `json:"student_count" validate:"min=0"`
	DepartmentID *string `json:"department_id,omitempty"`
	YearLevelID  *string `json:"year_level_id,omitempty"`
	AdvisorID    *string `json:"advisor_id,omitempty"`
}

// UpdateStudentGroupRequest modifies student group fields.
type UpdateStudentGroupRequest struct {
	Code         string  `json:"code" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	StudentCount int     `json:"student_count" validate:"min=0"`
	DepartmentID *string `json:"department_id,omitempty"`
	YearLevelID  *string `json:"year_level_id,omitempty"`
	AdvisorID    *string `json:"advisor_id,omitempty"`
}

// StudentGroupService handles student group catalog workflows.
type StudentGroupService struct {
	repo      studentGroupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentGroupService creates a new student group service.
func NewStudentGroupService(repo studentGroupRepository, validate *validator.Validate, logger *zap.Logger) *StudentGroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentGroupService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated student groups.
func (s *StudentGroupService) List(ctx context.Context, search string, page, size int) ([]models.StudentGroup, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	groups, total, err := s.repo.List(ctx, search, page, size)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student groups")
	}
	return groups, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a student group by identifier.
func (s *StudentGroupService) Get(ctx context.Context, id string) (*models.StudentGroup, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student group")
	}
	return group, nil
}

// Create adds a new student group ensuring code uniqueness.
func (s *StudentGroupService) Create(ctx context.Context, req CreateStudentGroupRequest) (*models.StudentGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student group payload")
	}

	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

	exists, err := s.repo.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student group code already exists")
	}

	group := &models.StudentGroup{
		Code:         req.Code,
		Name:         req.Name,
		StudentCount: req.StudentCount,
		DepartmentID: req.DepartmentID,
		YearLevelID:  req.YearLevelID,
		AdvisorID:    req.AdvisorID,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student group")
	}
	return group, nil
}

// Update modifies an existing student group.
func (s *StudentGroupService) Update(ctx context.Context, id string, req UpdateStudentGroupRequest) (*models.StudentGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student group payload")
	}

	group, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

	exists, err := s.repo.ExistsByCode(ctx, req.Code, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student group code already exists")
	}

	group.Code = req.Code
	group.Name = req.Name
	group.StudentCount = req.StudentCount
	group.DepartmentID = req.DepartmentID
	group.YearLevelID = req.YearLevelID
	group.AdvisorID = req.AdvisorID

	if err := s.repo.Update(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student group")
	}
	return group, nil
}

// Delete removes a student group.
func (s *StudentGroupService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student group")
	}
	return nil
}
