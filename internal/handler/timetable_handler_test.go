package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	"github.com/BTEC2025/automatic-timetable-backend/internal/service"
)

type stubTimeslots struct{ items []models.Timeslot }

func (s *stubTimeslots) ListAll(ctx context.Context) ([]models.Timeslot, error) { return s.items, nil }

type stubRooms struct{ items []models.Room }

func (s *stubRooms) ListAll(ctx context.Context) ([]models.Room, error) { return s.items, nil }

type stubTeachers struct{ items []models.Teacher }

func (s *stubTeachers) ListAll(ctx context.Context) ([]models.Teacher, error) { return s.items, nil }

type stubSubjects struct{ items []models.Subject }

func (s *stubSubjects) ListAll(ctx context.Context) ([]models.Subject, error) { return s.items, nil }

type stubGroups struct{ items []models.StudentGroup }

func (s *stubGroups) ListAll(ctx context.Context) ([]models.StudentGroup, error) {
	return s.items, nil
}

type stubTeaches struct{ items []models.TeachEligibility }

func (s *stubTeaches) ListAll(ctx context.Context) ([]models.TeachEligibility, error) {
	return s.items, nil
}

type stubRegistrations struct{ items []models.Registration }

func (s *stubRegistrations) ListAll(ctx context.Context) ([]models.Registration, error) {
	return s.items, nil
}

type stubConstraints struct{}

func (s *stubConstraints) ListAll(ctx context.Context) ([]models.Constraint, error) {
	return nil, nil
}

type stubScheduleStore struct {
	entries    []models.ScheduleEntry
	lastFilter models.ScheduleFilter
}

func (s *stubScheduleStore) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	s.lastFilter = filter
	return s.entries, nil
}

func (s *stubScheduleStore) ReplaceAll(ctx context.Context, tx *sqlx.Tx, entries []models.ScheduleEntry) error {
	s.entries = entries
	return nil
}

type stubInvalidator struct{ calls int }

func (s *stubInvalidator) Invalidate(ctx context.Context) { s.calls++ }

func newTimetableHandlerFixture(t *testing.T) (*TimetableHandler, *stubScheduleStore, *stubInvalidator, sqlmock.Sqlmock, func()) {
	gin.SetMode(gin.TestMode)
	rawDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := sqlx.NewDb(rawDB, "sqlmock")

	timeslots := &stubTimeslots{items: []models.Timeslot{{ID: "ts1", Day: "Mon", Period: "1", StartTime: "07:00", EndTime: "07:45"}}}
	store := &stubScheduleStore{}
	svc := service.NewTimetableService(
		timeslots,
		&stubRooms{items: []models.Room{{ID: "r1", Code: "R1", Name: "Room 1", Type: models.RoomTypeTheory}}},
		&stubTeachers{items: []models.Teacher{{ID: "t1", Code: "T1", Name: "Teacher One"}}},
		&stubSubjects{items: []models.Subject{{ID: "s1", Code: "MATH", Name: "Math"}}},
		&stubGroups{items: []models.StudentGroup{{ID: "g1", Code: "G1", Name: "Group 1"}}},
		&stubTeaches{items: []models.TeachEligibility{{ID: "e1", TeacherCode: "T1", SubjectCode: "MATH"}}},
		&stubRegistrations{items: []models.Registration{{ID: "d1", GroupCode: "G1", SubjectCode: "MATH"}}},
		&stubConstraints{},
		store,
		db,
		nil,
		nil,
		zap.NewNop(),
	)
	exporter := service.NewExportService(store, timeslots, nil, nil, zap.NewNop())
	invalidator := &stubInvalidator{}
	handler := NewTimetableHandler(svc, exporter, invalidator)
	return handler, store, invalidator, mock, func() { rawDB.Close() }
}

func TestTimetableHandlerGenerate(t *testing.T) {
	handler, store, invalidator, mock, cleanup := newTimetableHandlerFixture(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/admin/timetable/generate", nil)

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data models.GenerationReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.TotalRequests)
	assert.Equal(t, 1, envelope.Data.ScheduledCount)
	assert.Len(t, store.entries, 1)
	assert.Equal(t, 1, invalidator.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableHandlerGetScheduleNormalizesFilter(t *testing.T) {
	handler, store, _, _, cleanup := newTimetableHandlerFixture(t)
	defer cleanup()
	store.entries = []models.ScheduleEntry{{ID: "se1", GroupCode: "G1"}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/schedule?group=g1&teacher=+t1+", nil)

	handler.GetSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "G1", store.lastFilter.GroupCode)
	assert.Equal(t, "T1", store.lastFilter.TeacherCode)
}

func TestTimetableHandlerExportCSV(t *testing.T) {
	handler, store, _, _, cleanup := newTimetableHandlerFixture(t)
	defer cleanup()
	store.entries = []models.ScheduleEntry{
		{ID: "se1", GroupCode: "G1", TimeslotID: "ts1", SubjectCode: "MATH", TeacherCode: "T1", RoomCode: "R1"},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/schedule/export?format=csv", nil)

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Mon,1,07:00-07:45,G1,MATH,T1,R1")
}

func TestTimetableHandlerExportBadFormat(t *testing.T) {
	handler, _, _, _, cleanup := newTimetableHandlerFixture(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/schedule/export?format=xlsx", nil)

	handler.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "format must be csv or pdf"))
}

func TestTimetableHandlerLastReportEmpty(t *testing.T) {
	handler, _, _, _, cleanup := newTimetableHandlerFixture(t)
	defer cleanup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/schedule/report", nil)

	handler.LastReport(c)

	require.Equal(t, http.StatusOK, w.Code)
}
