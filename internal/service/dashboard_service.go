package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

const dashboardCacheKey = "dashboard:summary"

type entityCounter interface {
	Count(ctx context.Context) (int, error)
}

type reportProvider interface {
	LastReport() *models.GenerationReport
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheRecorder interface {
	RecordCacheOperation(hit bool)
}

// DashboardSummary surfaces catalog and timetable totals.
type DashboardSummary struct {
	Teachers      int                      `json:"teachers"`
	Rooms         int                      `json:"rooms"`
	Subjects      int                      `json:"subjects"`
	StudentGroups int                      `json:"student_groups"`
	Registrations int                      `json:"registrations"`
	ScheduleSize  int                      `json:"schedule_size"`
	LastRun       *models.GenerationReport `json:"last_run,omitempty"`
	GeneratedAt   time.Time                `json:"generated_at"`
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// DashboardService composes catalog totals and the latest generation
// report, optionally cached in Redis.
type DashboardService struct {
	teachers      entityCounter
	rooms         entityCounter
	subjects      entityCounter
	groups        entityCounter
	registrations entityCounter
	schedules     entityCounter
	reports       reportProvider
	cache         cacheStore
	metrics       cacheRecorder
	logger        *zap.Logger
	cfg           DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Teachers      entityCounter
	Rooms         entityCounter
	Subjects      entityCounter
	Groups        entityCounter
	Registrations entityCounter
	Schedules     entityCounter
	Reports       reportProvider
	Cache         cacheStore
	Metrics       cacheRecorder
	Logger        *zap.Logger
	Config        DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		teachers:      params.Teachers,
		rooms:         params.Rooms,
		subjects:      params.Subjects,
		groups:        params.Groups,
		registrations: params.Registrations,
		schedules:     params.Schedules,
		reports:       params.Reports,
		cache:         params.Cache,
		metrics:       params.Metrics,
		logger:        logger,
		cfg:           cfg,
	}
}

// Summary returns the dashboard payload, served from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if s.cacheEnabled() {
		var cached DashboardSummary
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			s.recordCache(true)
			return &cached, nil
		}
		s.recordCache(false)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary. Called after generation runs so
// the next read reflects the new timetable.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s == nil || !s.cacheEnabled() {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) build(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}

	counts := []struct {
		counter entityCounter
		dest    *int
		name    string
	}{
		{s.teachers, &summary.Teachers, "teachers"},
		{s.rooms, &summary.Rooms, "rooms"},
		{s.subjects, &summary.Subjects, "subjects"},
		{s.groups, &summary.StudentGroups, "student groups"},
		{s.registrations, &summary.Registrations, "registrations"},
		{s.schedules, &summary.ScheduleSize, "schedule entries"},
	}
	for _, c := range counts {
		if c.counter == nil {
			continue
		}
		n, err := c.counter.Count(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count "+c.name)
		}
		*c.dest = n
	}

	if s.reports != nil {
		summary.LastRun = s.reports.LastReport()
	}
	return summary, nil
}

func (s *DashboardService) cacheEnabled() bool {
	return s.cfg.Enabled && s.cache != nil
}

func (s *DashboardService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}
