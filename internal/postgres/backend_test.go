package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

const testDSN = "postgres://admin@localhost/backoffice?sslmode=disable"

// withMockOpen routes sqlOpen to a sqlmock connection for the test.
func withMockOpen(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.MonitorPingsOption(true),
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
	)
	require.NoError(t, err)

	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, driverName, driver)
		assert.Equal(t, testDSN, dsn)
		return db, nil
	}
	t.Cleanup(func() { sqlOpen = orig })
	return mock
}

func pgConfig() types.Config {
	return types.Config{Backend: types.BackendPostgres, DSN: testDSN}
}

func TestBackend_AttachDetach(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectPing()
	mock.ExpectClose()

	b := NewBackend(WithoutMigrations(), WithoutSeed())
	require.NoError(t, b.Attach(pgConfig()))
	assert.ErrorIs(t, b.Attach(pgConfig()), types.ErrAlreadyAttached)

	c, err := b.Collection(types.CollectionOrders)
	require.NoError(t, err)
	assert.Equal(t, types.CollectionOrders, c.Name())

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())
	_, err = b.Collection(types.CollectionOrders)
	assert.ErrorIs(t, err, types.ErrGatewayDetached)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackend_AttachPingFailure(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectPing().WillReturnError(assert.AnError)
	mock.ExpectClose()

	b := NewBackend(WithoutMigrations(), WithoutSeed())
	err := b.Attach(pgConfig())
	require.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "ping postgres")

	_, err = b.Collection(types.CollectionOrders)
	assert.ErrorIs(t, err, types.ErrGatewayDetached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendPostgres}), types.ErrDSNEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendSQLite}), types.ErrBackendUnknown)
}

func TestBackend_QueriesUsePostgresDialect(t *testing.T) {
	mock := withMockOpen(t)
	mock.ExpectPing()

	b := NewBackend(WithoutMigrations(), WithoutSeed())
	require.NoError(t, b.Attach(pgConfig()))

	const bannerID = "0196a3c2-7b10-7c3e-9a51-2f4d8e6b1b01"
	mock.ExpectExec(`DELETE FROM "banners" WHERE "id" = $1`).
		WithArgs(bannerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectClose()

	banners, err := b.Collection(types.CollectionBanners)
	require.NoError(t, err)
	require.NoError(t, banners.Delete(context.Background(), bannerID))
	require.NoError(t, b.Detach())
	assert.NoError(t, mock.ExpectationsWereMet())
}
