package employee

import (
	"context"
	"testing"

	"timetrack/backend/internal/auth"
	"timetrack/backend/internal/pkg/repository/postgresql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := &postgresql.Database{DB: bun.NewDB(sqldb, pgdialect.New())}

	return NewRepository(db), mock
}

func TestGetListClosesRows(t *testing.T) {
	r, mock := newMockRepository(t)

	ctx := context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: 1, Role: auth.RoleAdmin})

	listRows := sqlmock.NewRows([]string{"id", "full_name", "national_id", "phone", "active"}).
		AddRow(3, "Maria Lopez", "AAA010101", "555-0101", true).
		AddRow(4, "Juan Perez", "BBB020202", nil, false)

	mock.ExpectQuery(`(?s)SELECT.+FROM employees e`).
		WillReturnRows(listRows).
		RowsWillBeClosed()
	mock.ExpectQuery(`(?s)SELECT.+count\(e\.id\).+FROM employees e`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	list, count, err := r.GetList(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, count)

	require.NotNil(t, list[0].FullName)
	assert.Equal(t, "Maria Lopez", *list[0].FullName)
	assert.Nil(t, list[1].Phone)

	assert.NoError(t, mock.ExpectationsWereMet())
}
