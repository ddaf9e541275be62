package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

type staticCounter int

func (c staticCounter) Count(ctx context.Context) (int, error) { return int(c), nil }

type fakeReports struct {
	report *models.GenerationReport
}

func (f *fakeReports) LastReport() *models.GenerationReport { return f.report }

type memoryCache struct {
	data    map[string][]byte
	hits    int
	deletes int
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return appErrors.Clone(appErrors.ErrCacheMiss, "")
	}
	m.hits++
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	m.deletes++
	return nil
}

type fakeCacheRecorder struct {
	hits   int
	misses int
}

func (f *fakeCacheRecorder) RecordCacheOperation(hit bool) {
	if hit {
		f.hits++
	} else {
		f.misses++
	}
}

func newDashboardFixture(cache *memoryCache, recorder *fakeCacheRecorder) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Teachers:      staticCounter(3),
		Rooms:         staticCounter(2),
		Subjects:      staticCounter(5),
		Groups:        staticCounter(4),
		Registrations: staticCounter(12),
		Schedules:     staticCounter(10),
		Reports:       &fakeReports{report: &models.GenerationReport{ScheduledCount: 10, TotalRequests: 12}},
		Cache:         cache,
		Metrics:       recorder,
		Logger:        zap.NewNop(),
		Config:        DashboardServiceConfig{Enabled: true, CacheTTL: time.Minute},
	})
}

func TestDashboardServiceSummaryCachesResult(t *testing.T) {
	cache := &memoryCache{}
	recorder := &fakeCacheRecorder{}
	svc := newDashboardFixture(cache, recorder)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Teachers)
	assert.Equal(t, 10, summary.ScheduleSize)
	require.NotNil(t, summary.LastRun)
	assert.Equal(t, 10, summary.LastRun.ScheduledCount)
	assert.Equal(t, 1, recorder.misses)

	cached, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, summary.Teachers, cached.Teachers)
	assert.Equal(t, 1, recorder.hits)
}

func TestDashboardServiceInvalidate(t *testing.T) {
	cache := &memoryCache{}
	svc := newDashboardFixture(cache, &fakeCacheRecorder{})

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cache.data)

	svc.Invalidate(context.Background())
	assert.Empty(t, cache.data)
	assert.Equal(t, 1, cache.deletes)
}

func TestDashboardServiceInvalidateNilReceiver(t *testing.T) {
	var svc *DashboardService
	assert.NotPanics(t, func() { svc.Invalidate(context.Background()) })
}

func TestDashboardServiceWithoutCache(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Teachers: staticCounter(1),
		Config:   DashboardServiceConfig{Enabled: false},
	})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Teachers)
	assert.Nil(t, summary.LastRun)
}
