package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
)

func newTimeslotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimeslotRepositoryListAllUsesWeekOrder(t *testing.T) {
	db, mock, cleanup := newTimeslotRepoMock(t)
	defer cleanup()
	repo := NewTimeslotRepository(db)

	rows := sqlmock.NewRows([]string{"id", "day", "period", "start_time", "end_time", "created_at", "updated_at"}).
		AddRow("ts1", "Mon", "1", "07:00", "07:45", time.Now(), time.Now()).
		AddRow("ts2", "Mon", "2", "07:45", "08:30", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, day, period, start_time, end_time, created_at, updated_at FROM timeslots ORDER BY CASE day")).
		WillReturnRows(rows)

	slots, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "mon-1", slots[0].Label())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeslotRepositoryExistsByDayPeriod(t *testing.T) {
	db, mock, cleanup := newTimeslotRepoMock(t)
	defer cleanup()
	repo := NewTimeslotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM timeslots WHERE day = $1 AND period = $2 LIMIT 1")).
		WithArgs("Mon", "1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByDayPeriod(context.Background(), "Mon", "1", "")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM timeslots WHERE day = $1 AND period = $2 AND id <> $3 LIMIT 1")).
		WithArgs("Mon", "1", "ts1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err = repo.ExistsByDayPeriod(context.Background(), "Mon", "1", "ts1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeslotRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newTimeslotRepoMock(t)
	defer cleanup()
	repo := NewTimeslotRepository(db)

	mock.ExpectExec("INSERT INTO timeslots").
		WithArgs(sqlmock.AnyArg(), "Mon", "1", "07:00", "07:45", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.Timeslot{Day: "Mon", Period: "1", StartTime: "07:00", EndTime: "07:45"}
	require.NoError(t, repo.Create(context.Background(), slot))
	assert.NotEmpty(t, slot.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
