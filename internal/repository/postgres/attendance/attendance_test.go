package attendance

import (
	"context"
	"net/http"
	"testing"
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/auth"
	"timetrack/backend/internal/pkg/repository/postgresql"
	"timetrack/backend/internal/shift"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockRepository(t *testing.T, now time.Time) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := &postgresql.Database{DB: bun.NewDB(sqldb, pgdialect.New())}

	r := NewRepository(db, shift.DefaultSchedule(), time.UTC)
	r.now = func() time.Time { return now }

	return r, mock
}

func employeeRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "full_name", "national_id"}).
		AddRow(3, "Maria Lopez", "AAA010101")
}

func TestCheckInIgnoresStaleOpenRecord(t *testing.T) {
	// A record left open two days ago is out of reach for check-out once
	// the grace window has passed; it must not block a fresh check-in
	// either. The open-record guard therefore only probes the work days
	// the checkout plan still covers.
	now := time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC)
	r, mock := newMockRepository(t, now)

	mock.ExpectQuery(`(?s)SELECT.+FROM "employees"`).WillReturnRows(employeeRow())
	mock.ExpectQuery(`(?s)SELECT EXISTS.+work_day IN \('2024-03-17'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO "attendance"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	nationalID := "AAA010101"
	response, err := r.CheckIn(context.Background(), CheckInRequest{NationalID: &nationalID})
	require.NoError(t, err)

	assert.Equal(t, 42, response.ID)
	assert.Equal(t, "Maria Lopez", response.FullName)
	assert.Equal(t, "2024-03-17", response.WorkDay)
	assert.Equal(t, "Day Shift", response.ShiftName)
	assert.True(t, response.Late)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckInConflictOnReachableOpenRecord(t *testing.T) {
	// Inside the grace window the guard covers yesterday too, so a night
	// shift still open from last night blocks a second check-in.
	now := time.Date(2024, 3, 17, 5, 30, 0, 0, time.UTC)
	r, mock := newMockRepository(t, now)

	mock.ExpectQuery(`(?s)SELECT.+FROM "employees"`).WillReturnRows(employeeRow())
	mock.ExpectQuery(`(?s)SELECT EXISTS.+work_day IN \('2024-03-17',\s*'2024-03-16'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	nationalID := "AAA010101"
	_, err := r.CheckIn(context.Background(), CheckInRequest{NationalID: &nationalID})
	require.Error(t, err)

	webErr, ok := web.GetRequestError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, webErr.Status)
	assert.Equal(t, ErrAlreadyCheckedIn, webErr.Err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetListClosesRows(t *testing.T) {
	r, mock := newMockRepository(t, time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC))

	ctx := context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 1, Role: auth.RoleAdmin})

	listRows := sqlmock.NewRows([]string{
		"id", "full_name", "national_id", "work_day", "shift_name", "late", "come_time", "leave_time", "worked_duration",
	}).AddRow(1, "Maria Lopez", "AAA010101", "2024-03-15", "Day Shift", false, []byte("09:05:00"), []byte("16:01:00"), "6:56:00")

	mock.ExpectQuery(`(?s)SELECT.+FROM attendance a.+JOIN employees e`).
		WillReturnRows(listRows).
		RowsWillBeClosed()
	mock.ExpectQuery(`(?s)SELECT.+count\(a\.id\).+FROM attendance a`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, count, err := r.GetList(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, count)

	require.NotNil(t, list[0].ComeTime)
	assert.Equal(t, "09:05:00", list[0].ComeTime.Format("15:04:05"))
	assert.Equal(t, "6:56:00", list[0].WorkedDuration)

	assert.NoError(t, mock.ExpectationsWereMet())
}
