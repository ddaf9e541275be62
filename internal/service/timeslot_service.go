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

type timeslotRepository interface {
	ListAll(ctx context.Context) ([]models.Timeslot, error)
	FindByID(ctx context.Context, id string) (*models.Timeslot, error)
	ExistsByDayPeriod(ctx context.Context, day, period, excludeID string) (bool, error)
	Create(ctx context.Context, slot *models.Timeslot) error
	Update(ctx context.Context, slot *models.Timeslot) error
	Delete(ctx context.Context, id string) error
}

// CreateTimeslotRequest captures fields for creating timeslots.
type CreateTimeslotRequest struct {
	Day       string `json:"day" validate:"required,oneof=Mon Tue Wed Thu Fri"`
	Period    string `json:"period" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// UpdateTimeslotRequest modifies timeslot fields.
type UpdateTimeslotRequest struct {
	Day       string `json:"day" validate:"required,oneof=Mon Tue Wed Thu Fri"`
	Period    string `json:"period" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// TimeslotService handles the weekly grid of teachable periods.
type TimeslotService struct {
	repo      timeslotRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeslotService creates a new timeslot service.
func NewTimeslotService(repo timeslotRepository, validate *validator.Validate, logger *zap.Logger) *TimeslotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeslotService{repo: repo, validator: validate, logger: logger}
}

// List returns every timeslot in canonical day/period order.
func (s *TimeslotService) List(ctx context.Context) ([]models.Timeslot, error) {
	slots, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timeslots")
	}
	return slots, nil
}

// Get returns a timeslot by identifier.
func (s *TimeslotService) Get(ctx context.Context, id string) (*models.Timeslot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timeslot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslot")
	}
	return slot, nil
}

// Create adds a timeslot ensuring (day, period) uniqueness.
func (s *TimeslotService) Create(ctx context.Context, req CreateTimeslotRequest) (*models.Timeslot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timeslot payload")
	}

	req.Period = strings.TrimSpace(req.Period)

	exists, err := s.repo.ExistsByDayPeriod(ctx, req.Day, req.Period, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check timeslot")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "timeslot already exists for this day and period")
	}

	slot := &models.Timeslot{
		Day:       req.Day,
		Period:    req.Period,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create timeslot")
	}
	return slot, nil
}

// Update modifies an existing timeslot.
func (s *TimeslotService) Update(ctx context.Context, id string, req UpdateTimeslotRequest) (*models.Timeslot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timeslot payload")
	}

	slot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Period = strings.TrimSpace(req.Period)

	exists, err := s.repo.ExistsByDayPeriod(ctx, req.Day, req.Period, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check timeslot")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "timeslot already exists for this day and period")
	}

	slot.Day = req.Day
	slot.Period = req.Period
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timeslot")
	}
	return slot, nil
}

// Delete removes a timeslot.
func (s *TimeslotService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timeslot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timeslot")
	}
	return nil
}
