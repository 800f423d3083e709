// Tests for the SQLite gateway backend lifecycle.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func testConfig(dir string) types.Config {
	return types.Config{Backend: types.BackendSQLite, DataDir: dir}
}

func TestBackend_Attach(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(dir)))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dir, DBFile))
	assert.NoError(t, err, "database file not created")

	assert.ErrorIs(t, b.Attach(testConfig(dir)), types.ErrAlreadyAttached)
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
		want   error
	}{
		{"empty backend", types.Config{}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "dynamo"}, types.ErrBackendUnknown},
		{"postgres config", types.Config{Backend: types.BackendPostgres, DSN: "postgres://x"}, types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackend().Attach(tt.config)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t.TempDir())))

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	_, err := b.Collection(types.CollectionProducts)
	assert.ErrorIs(t, err, types.ErrGatewayDetached)
}

func TestBackend_Collection(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(t.TempDir())))
	defer b.Detach()

	for _, name := range types.StandardCollectionNames {
		c, err := b.Collection(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}

	_, err := b.Collection("unknown")
	assert.ErrorIs(t, err, types.ErrCollectionNotFound)
}

func TestBackend_DataSurvivesReattach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(testConfig(dir)))
	cats, err := b.Collection(types.CollectionCategories)
	require.NoError(t, err)
	rec, err := cats.Insert(ctx, types.Record{"name": "Kadın"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(testConfig(dir)))
	defer b2.Detach()
	cats, err = b2.Collection(types.CollectionCategories)
	require.NoError(t, err)
	got, err := cats.Get(ctx, rec["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, "Kadın", got["name"])

	legal, err := b2.Collection(types.CollectionLegalTexts)
	require.NoError(t, err)
	texts, err := legal.Select(ctx, types.Query{})
	require.NoError(t, err)
	assert.Len(t, texts, len(types.LegalTextTypes), "seed must not duplicate on reattach")
}

func TestBackend_WithoutSeed(t *testing.T) {
	ctx := context.Background()
	b := NewBackend(WithoutSeed())
	require.NoError(t, b.Attach(testConfig(t.TempDir())))
	defer b.Detach()

	legal, err := b.Collection(types.CollectionLegalTexts)
	require.NoError(t, err)
	texts, err := legal.Select(ctx, types.Query{})
	require.NoError(t, err)
	assert.Empty(t, texts)
}
