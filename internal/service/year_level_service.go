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

type yearLevelRepository interface {
	ListAll(ctx context.Context) ([]models.YearLevel, error)
	FindByID(ctx context.Context, id string) (*models.YearLevel, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, level *models.YearLevel) error
	Update(ctx context.Context, level *models.YearLevel) error
	Delete(ctx context.Context, id string) error
}

// YearLevelRequest captures fields for creating or updating year levels.
type YearLevelRequest struct {
	Name string `json:"name" validate:"required"`
}

// YearLevelService handles year level catalog workflows.
type YearLevelService struct {
	repo      yearLevelRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewYearLevelService creates a new year level service.
func NewYearLevelService(repo yearLevelRepository, validate *validator.Validate, logger *zap.Logger) *YearLevelService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YearLevelService{repo: repo, validator: validate, logger: logger}
}

// List returns every year level.
func (s *YearLevelService) List(ctx context.Context) ([]models.YearLevel, error) {
	levels, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list year levels")
	}
	return levels, nil
}

// Get returns a year level by identifier.
func (s *YearLevelService) Get(ctx context.Context, id string) (*models.YearLevel, error) {
	level, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "year level not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load year level")
	}
	return level, nil
}

// Create adds a new year level ensuring name uniqueness.
func (s *YearLevelService) Create(ctx context.Context, req YearLevelRequest) (*models.YearLevel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid year level payload")
	}

	req.Name = strings.TrimSpace(req.Name)

	exists, err := s.repo.ExistsByName(ctx, req.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check year level name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "year level name already exists")
	}

	level := &models.YearLevel{Name: req.Name}
	if err := s.repo.Create(ctx, level); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create year level")
	}
	return level, nil
}

// Update modifies an existing year level.
func (s *YearLevelService) Update(ctx context.Context, id string, req YearLevelRequest) (*models.YearLevel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid year level payload")
	}

	level, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)

	exists, err := s.repo.ExistsByName(ctx, req.Name, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check year level name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "year level name already exists")
	}

	level.Name = req.Name
	if err := s.repo.Update(ctx, level); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update year level")
	}
	return level, nil
}

// Delete removes a year level.
func (s *YearLevelService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "year level not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete year level")
	}
	return nil
}
