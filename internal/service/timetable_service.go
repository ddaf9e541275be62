package service

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/engine"
	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

type timeslotLister interface {
	ListAll(ctx context.Context) ([]models.Timeslot, error)
}

type roomLister interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type teacherLister interface {
	ListAll(ctx context.Context) ([]models.Teacher, error)
}

type subjectLister interface {
	ListAll(ctx context.Context) ([]models.Subject, error)
}

type studentGroupLister interface {
	ListAll(ctx context.Context) ([]models.StudentGroup, error)
}

type teachLister interface {
	ListAll(ctx context.Context) ([]models.TeachEligibility, error)
}

type registrationLister interface {
	ListAll(ctx context.Context) ([]models.Registration, error)
}

type constraintLister interface {
	ListAll(ctx context.Context) ([]models.Constraint, error)
}

type scheduleWriter interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
	ReplaceAll(ctx context.Context, tx *sqlx.Tx, entries []models.ScheduleEntry) error
}

type generationObserver interface {
	ObserveGeneration(outcome string, duration time.Duration, totalRequests, scheduled int)
}

// TimetableService loads the catalog snapshot, runs the scheduler, and
// replaces the persisted timetable in one transaction. Only one
// generation run is allowed at a time.
type TimetableService struct {
	timeslots     timeslotLister
	rooms         roomLister
	teachers      teacherLister
	subjects      subjectLister
	groups        studentGroupLister
	teaches       teachLister
	registrations registrationLister
	constraints   constraintLister
	schedules     scheduleWriter
	db            *sqlx.DB
	scheduler     engine.Scheduler
	metrics       generationObserver
	logger        *zap.Logger

	mu         sync.Mutex
	generating bool

	reportMu   sync.RWMutex
	lastReport *models.GenerationReport
}

// NewTimetableService wires the generation pipeline.
func NewTimetableService(
	timeslots timeslotLister,
	rooms roomLister,
	teachers teacherLister,
	subjects subjectLister,
	groups studentGroupLister,
	teaches teachLister,
	registrations registrationLister,
	constraints constraintLister,
	schedules scheduleWriter,
	db *sqlx.DB,
	scheduler engine.Scheduler,
	metrics generationObserver,
	logger *zap.Logger,
) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scheduler == nil {
		scheduler = engine.NewGreedy(logger)
	}
	return &TimetableService{
		timeslots:     timeslots,
		rooms:         rooms,
		teachers:      teachers,
		subjects:      subjects,
		groups:        groups,
		teaches:       teaches,
		registrations: registrations,
		constraints:   constraints,
		schedules:     schedules,
		db:            db,
		scheduler:     scheduler,
		metrics:       metrics,
		logger:        logger,
	}
}

// Generate runs one full generation cycle. Any catalog load failure
// aborts the run before the scheduler starts; the previous timetable is
// only replaced after the scheduler finishes, inside one transaction.
func (s *TimetableService) Generate(ctx context.Context) (*models.GenerationReport, error) {
	if !s.tryAcquire() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "generation already in progress")
	}
	defer s.release()

	started := time.Now()

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		s.observe("load_failed", started, 0, 0)
		return nil, err
	}

	result := s.scheduler.Build(*snapshot)
	s.logResolutions(result.Resolutions)

	if err := s.persist(ctx, result.Entries); err != nil {
		s.observe("persist_failed", started, result.TotalRequests, result.ScheduledCount)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable")
	}

	report := &models.GenerationReport{
		ScheduledCount: result.ScheduledCount,
		TotalRequests:  result.TotalRequests,
		Unscheduled:    result.Unscheduled,
		Summary:        result.Summary,
		GeneratedAt:    time.Now().UTC(),
	}
	s.setLastReport(report)
	s.observe("ok", started, result.TotalRequests, result.ScheduledCount)

	s.logger.Info("timetable generated",
		zap.Int("total_requests", report.TotalRequests),
		zap.Int("scheduled", report.ScheduledCount),
		zap.Int("unscheduled", len(report.Unscheduled)),
		zap.Duration("duration", time.Since(started)),
	)
	return report, nil
}

// GetSchedule returns persisted entries matching the filter.
func (s *TimetableService) GetSchedule(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	entries, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule")
	}
	return entries, nil
}

// LastReport returns the most recent generation report, or nil when no
// run has completed since the process started.
func (s *TimetableService) LastReport() *models.GenerationReport {
	s.reportMu.RLock()
	defer s.reportMu.RUnlock()
	return s.lastReport
}

func (s *TimetableService) loadSnapshot(ctx context.Context) (*engine.Snapshot, error) {
	timeslots, err := s.timeslots.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslots")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	subjects, err := s.subjects.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	groups, err := s.groups.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student groups")
	}
	teaches, err := s.teaches.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teach eligibilities")
	}
	registrations, err := s.registrations.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registrations")
	}
	constraints, err := s.constraints.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load constraints")
	}

	return &engine.Snapshot{
		Timeslots:     timeslots,
		Rooms:         rooms,
		Teachers:      teachers,
		Subjects:      subjects,
		Groups:        groups,
		Eligibilities: teaches,
		Registrations: registrations,
		Constraints:   constraints,
	}, nil
}

func (s *TimetableService) persist(ctx context.Context, entries []models.ScheduleEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := s.schedules.ReplaceAll(ctx, tx, entries); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// logResolutions surfaces constraints that were kept, narrowed, or
// dropped during block index construction. Dropped constraints are not
// errors; the generator treats them as inert.
func (s *TimetableService) logResolutions(resolutions []engine.ResolutionOutcome) {
	for _, res := range resolutions {
		if res.Resolved {
			continue
		}
		s.logger.Warn("constraint dropped",
			zap.String("constraint_id", res.ConstraintID),
			zap.String("target_type", res.TargetType),
			zap.String("reason", res.Reason),
		)
	}
}

func (s *TimetableService) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

func (s *TimetableService) release() {
	s.mu.Lock()
	s.generating = false
	s.mu.Unlock()
}

func (s *TimetableService) setLastReport(report *models.GenerationReport) {
	s.reportMu.Lock()
	s.lastReport = report
	s.reportMu.Unlock()
}

func (s *TimetableService) observe(outcome string, started time.Time, total, scheduled int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveGeneration(outcome, time.Since(started), total, scheduled)
}
