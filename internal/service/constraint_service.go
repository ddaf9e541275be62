package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

type constraintRepository interface {
	ListAll(ctx context.Context) ([]models.Constraint, error)
	FindByID(ctx context.Context, id string) (*models.Constraint, error)
	Create(ctx context.Context, constraint *models.Constraint) error
	Update(ctx context.Context, constraint *models.Constraint) error
	Delete(ctx context.Context, id string) error
}

// ConstraintRequest captures fields for creating or updating constraints.
// Payload is stored as-is; timeslot references inside it are resolved at
// generation time, not at write time.
type ConstraintRequest struct {
	TargetType string          `json:"target_type" validate:"required,oneof=teacher studentGroup department room yearLevel global"`
	TargetID   *string         `json:"target_id,omitempty"`
	RuleType   string          `json:"rule_type" validate:"required,oneof=UNAVAILABLE REQUIRED_SLOT BLOCKED_SLOT CUSTOM"`
	Priority   string          `json:"priority" validate:"required,oneof=hard soft"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
}

// ConstraintService handles scheduling rule workflows.
type ConstraintService struct {
	repo      constraintRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConstraintService creates a new constraint service.
func NewConstraintService(repo constraintRepository, validate *validator.Validate, logger *zap.Logger) *ConstraintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConstraintService{repo: repo, validator: validate, logger: logger}
}

// List returns every constraint.
func (s *ConstraintService) List(ctx context.Context) ([]models.Constraint, error) {
	constraints, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list constraints")
	}
	return constraints, nil
}

// Get returns a constraint by identifier.
func (s *ConstraintService) Get(ctx context.Context, id string) (*models.Constraint, error) {
	constraint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "constraint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load constraint")
	}
	return constraint, nil
}

// Create adds a new constraint. Non-global targets require a target id.
func (s *ConstraintService) Create(ctx context.Context, req ConstraintRequest) (*models.Constraint, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	constraint := &models.Constraint{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		RuleType:   req.RuleType,
		Priority:   req.Priority,
		Payload:    types.JSONText(req.Payload),
	}
	if err := s.repo.Create(ctx, constraint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create constraint")
	}
	return constraint, nil
}

// Update modifies an existing constraint.
func (s *ConstraintService) Update(ctx context.Context, id string, req ConstraintRequest) (*models.Constraint, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	constraint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	constraint.TargetType = req.TargetType
	constraint.TargetID = req.TargetID
	constraint.RuleType = req.RuleType
	constraint.Priority = req.Priority
	constraint.Payload = types.JSONText(req.Payload)

	if err := s.repo.Update(ctx, constraint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update constraint")
	}
	return constraint, nil
}

// Delete removes a constraint.
func (s *ConstraintService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "constraint not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete constraint")
	}
	return nil
}

func (s *ConstraintService) validateRequest(req ConstraintRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid constraint payload")
	}
	if req.TargetType != models.ConstraintTargetGlobal && (req.TargetID == nil || *req.TargetID == "") {
		return appErrors.Clone(appErrors.ErrValidation, "target_id is required for non-global constraints")
	}
	if !json.Valid(req.Payload) {
		return appErrors.Clone(appErrors.ErrValidation, "payload must be valid JSON")
	}
	return nil
}
