package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest-sim/domain"
)

func openTestSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_GetSetDelete(t *testing.T) {
	kv := openTestSQLite(t, filepath.Join(t.TempDir(), "kv.db"))

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", "v1"))
	require.NoError(t, kv.Set("k", "v2"))
	val, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", val)

	require.NoError(t, kv.Delete("k"))
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_ScenariosSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.db")

	first := openTestSQLite(t, path)
	store := newTestStore(first)
	_, err := store.Save(scenarioNamed("a"), domain.Create())
	require.NoError(t, err)
	_, err = store.Save(scenarioNamed("b"), domain.Create())
	require.NoError(t, err)
	want := store.List()
	require.NoError(t, first.Close())

	reopened := openTestSQLite(t, path)
	got, err := newTestStore(reopened).LoadAll()

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenSQLiteStore_RequiresPath(t *testing.T) {
	_, err := OpenSQLiteStore("  ")
	assert.Error(t, err)
}
