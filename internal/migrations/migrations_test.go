package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUp_CreatesTables(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, DialectSQLite))

	for _, table := range []string{
		"products", "categories", "orders", "order_items", "customers", "reviews",
		"banners", "showcases", "legal_texts", "admin_profiles", "admin_login_logs",
	} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}

	version, err := Version(ctx, db, DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestUp_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, DialectSQLite))
	require.NoError(t, Up(ctx, db, DialectSQLite))
}

func TestDown_DropsTables(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, DialectSQLite))
	require.NoError(t, Down(ctx, db, DialectSQLite))

	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'products'").Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUp_UnknownDialect(t *testing.T) {
	db := openSQLite(t)
	err := Up(context.Background(), db, "oracle")
	assert.ErrorContains(t, err, "unsupported migration dialect")
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		entries, err := migrations.ReadDir(dir)
		require.NoError(t, err)
		assert.NotEmpty(t, entries, dir)
	}
}
