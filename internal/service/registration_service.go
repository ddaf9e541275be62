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

type registrationRepository interface {
	ListAll(ctx context.Context) ([]models.Registration, error)
	Create(ctx context.Context, registration *models.Registration) error
	Delete(ctx context.Context, id string) error
}

// RegistrationRequest declares one meeting of demand for a group and
// subject. Duplicates are allowed: each row is one meeting.
type RegistrationRequest struct {
	GroupCode   string `json:"group_code" validate:"required"`
	SubjectCode string `json:"subject_code" validate:"required"`
}

// RegistrationService handles class-time demand workflows.
type RegistrationService struct {
	repo      registrationRepository
	groups    codeChecker
	subjects  codeChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(repo registrationRepository, groups, subjects codeChecker, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, groups: groups, subjects: subjects, validator: validate, logger: logger}
}

// List returns every registration in storage order.
func (s *RegistrationService) List(ctx context.Context) ([]models.Registration, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return rows, nil
}

// Create records one unit of demand after verifying both codes exist.
func (s *RegistrationService) Create(ctx context.Context, req RegistrationRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	req.GroupCode = strings.ToUpper(strings.TrimSpace(req.GroupCode))
	req.SubjectCode = strings.ToUpper(strings.TrimSpace(req.SubjectCode))

	groupExists, err := s.groups.ExistsByCode(ctx, req.GroupCode, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group code")
	}
	if !groupExists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group code does not exist")
	}

	subjectExists, err := s.subjects.ExistsByCode(ctx, req.SubjectCode, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject code")
	}
	if !subjectExists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject code does not exist")
	}

	registration := &models.Registration{
		GroupCode:   req.GroupCode,
		SubjectCode: req.SubjectCode,
	}
	if err := s.repo.Create(ctx, registration); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create registration")
	}
	return registration, nil
}

// Delete removes a registration.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete registration")
	}
	return nil
}
