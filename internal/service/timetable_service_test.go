package service

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

type fakeTimeslots struct {
	items []models.Timeslot
	err   error
}

func (f *fakeTimeslots) ListAll(ctx context.Context) ([]models.Timeslot, error) {
	return f.items, f.err
}

type fakeRooms struct{ items []models.Room }

func (f *fakeRooms) ListAll(ctx context.Context) ([]models.Room, error) { return f.items, nil }

type fakeTeachers struct{ items []models.Teacher }

func (f *fakeTeachers) ListAll(ctx context.Context) ([]models.Teacher, error) { return f.items, nil }

type fakeSubjects struct{ items []models.Subject }

func (f *fakeSubjects) ListAll(ctx context.Context) ([]models.Subject, error) { return f.items, nil }

type fakeGroups struct{ items []models.StudentGroup }

func (f *fakeGroups) ListAll(ctx context.Context) ([]models.StudentGroup, error) {
	return f.items, nil
}

type fakeTeaches struct{ items []models.TeachEligibility }

func (f *fakeTeaches) ListAll(ctx context.Context) ([]models.TeachEligibility, error) {
	return f.items, nil
}

type fakeRegistrations struct{ items []models.Registration }

func (f *fakeRegistrations) ListAll(ctx context.Context) ([]models.Registration, error) {
	return f.items, nil
}

type fakeConstraints struct{ items []models.Constraint }

func (f *fakeConstraints) ListAll(ctx context.Context) ([]models.Constraint, error) {
	return f.items, nil
}

type fakeScheduleWriter struct {
	persisted  []models.ScheduleEntry
	listResult []models.ScheduleEntry
	replaceErr error
	listErr    error
}

func (f *fakeScheduleWriter) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	return f.listResult, f.listErr
}

func (f *fakeScheduleWriter) ReplaceAll(ctx context.Context, tx *sqlx.Tx, entries []models.ScheduleEntry) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.persisted = entries
	return nil
}

type fakeGenerationObserver struct {
	outcomes []string
}

func (f *fakeGenerationObserver) ObserveGeneration(outcome string, duration time.Duration, totalRequests, scheduled int) {
	f.outcomes = append(f.outcomes, outcome)
}

func newTimetableFixture(t *testing.T) (*TimetableService, *fakeScheduleWriter, *fakeGenerationObserver, sqlmock.Sqlmock, func()) {
	rawDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := sqlx.NewDb(rawDB, "sqlmock")

	writer := &fakeScheduleWriter{}
	observer := &fakeGenerationObserver{}
	svc := NewTimetableService(
		&fakeTimeslots{items: []models.Timeslot{{ID: "ts1", Day: "Mon", Period: "1"}}},
		&fakeRooms{items: []models.Room{{ID: "r1", Code: "R1", Name: "Room 1", Type: models.RoomTypeTheory}}},
		&fakeTeachers{items: []models.Teacher{{ID: "t1", Code: "T1", Name: "Teacher One"}}},
		&fakeSubjects{items: []models.Subject{{ID: "s1", Code: "MATH", Name: "Math"}}},
		&fakeGroups{items: []models.StudentGroup{{ID: "g1", Code: "G1", Name: "Group 1"}}},
		&fakeTeaches{items: []models.TeachEligibility{{ID: "e1", TeacherCode: "T1", SubjectCode: "MATH"}}},
		&fakeRegistrations{items: []models.Registration{{ID: "d1", GroupCode: "G1", SubjectCode: "MATH"}}},
		&fakeConstraints{},
		writer,
		db,
		nil,
		observer,
		zap.NewNop(),
	)
	return svc, writer, observer, mock, func() { rawDB.Close() }
}

func TestTimetableServiceGenerate(t *testing.T) {
	svc, writer, observer, mock, cleanup := newTimetableFixture(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	report, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalRequests)
	assert.Equal(t, 1, report.ScheduledCount)
	assert.Empty(t, report.Unscheduled)
	assert.False(t, report.GeneratedAt.IsZero())
	require.Len(t, writer.persisted, 1)
	assert.Equal(t, "T1", writer.persisted[0].TeacherCode)
	assert.Equal(t, []string{"ok"}, observer.outcomes)
	assert.Equal(t, report, svc.LastReport())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateConflictGuard(t *testing.T) {
	svc, _, _, _, cleanup := newTimetableFixture(t)
	defer cleanup()

	svc.mu.Lock()
	svc.generating = true
	svc.mu.Unlock()

	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceGenerateLoadFailureAborts(t *testing.T) {
	svc, writer, observer, _, cleanup := newTimetableFixture(t)
	defer cleanup()
	svc.timeslots = &fakeTimeslots{err: errors.New("db down")}

	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load timeslots")
	assert.Empty(t, writer.persisted)
	assert.Equal(t, []string{"load_failed"}, observer.outcomes)
	assert.Nil(t, svc.LastReport())
}

func TestTimetableServiceGeneratePersistFailureRollsBack(t *testing.T) {
	svc, writer, observer, mock, cleanup := newTimetableFixture(t)
	defer cleanup()
	writer.replaceErr = errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist timetable")
	assert.Equal(t, []string{"persist_failed"}, observer.outcomes)
	assert.Nil(t, svc.LastReport())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateReleasesGuard(t *testing.T) {
	svc, writer, _, mock, cleanup := newTimetableFixture(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	first, err := svc.Generate(context.Background())
	require.NoError(t, err)
	firstPersisted := append([]models.ScheduleEntry(nil), writer.persisted...)

	second, err := svc.Generate(context.Background())
	require.NoError(t, err)

	// Regeneration over an unchanged catalog replaces the schedule with
	// the exact same entries and report, only the timestamp moves.
	assert.Equal(t, firstPersisted, writer.persisted)
	assert.Equal(t, first.ScheduledCount, second.ScheduledCount)
	assert.Equal(t, first.TotalRequests, second.TotalRequests)
	assert.Equal(t, first.Unscheduled, second.Unscheduled)
	assert.Equal(t, first.Summary, second.Summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGetSchedule(t *testing.T) {
	svc, writer, _, _, cleanup := newTimetableFixture(t)
	defer cleanup()
	writer.listResult = []models.ScheduleEntry{{ID: "se1", GroupCode: "G1"}}

	entries, err := svc.GetSchedule(context.Background(), models.ScheduleFilter{GroupCode: "G1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "se1", entries[0].ID)
}
