package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/promptshare/internal/errors"
	"github.com/jrsteele09/promptshare/sessions/storage"
	"github.com/stretchr/testify/require"
)

func repos(t *testing.T) map[string]storage.Repo {
	t.Helper()

	sqliteRepo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "nested", "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteRepo.Close() })

	return map[string]storage.Repo{
		"memory": storage.NewInMemoryRepo(),
		"sqlite": sqliteRepo,
	}
}

func TestRepo_PutGetDelete(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Get("browser-1", "auth-storage")
			require.ErrorIs(t, err, storage.ErrNotFound)
			require.True(t, errors.Is(err, errors.ErrNotFound))

			require.NoError(t, repo.Put("browser-1", "auth-storage", []byte(`{"a":1}`)))
			require.NoError(t, repo.Put("browser-2", "auth-storage", []byte(`{"b":2}`)))

			value, err := repo.Get("browser-1", "auth-storage")
			require.NoError(t, err)
			require.JSONEq(t, `{"a":1}`, string(value))

			require.NoError(t, repo.Put("browser-1", "auth-storage", []byte(`{"a":3}`)))
			value, err = repo.Get("browser-1", "auth-storage")
			require.NoError(t, err)
			require.JSONEq(t, `{"a":3}`, string(value))

			require.NoError(t, repo.Delete("browser-1", "auth-storage"))
			_, err = repo.Get("browser-1", "auth-storage")
			require.ErrorIs(t, err, storage.ErrNotFound)

			// other namespaces are untouched
			value, err = repo.Get("browser-2", "auth-storage")
			require.NoError(t, err)
			require.JSONEq(t, `{"b":2}`, string(value))

			require.NoError(t, repo.Delete("browser-3", "auth-storage"))
		})
	}
}

func TestRepo_Validation(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			require.Error(t, repo.Put("", "key", nil))
			require.Error(t, repo.Put("ns", "", nil))
			_, err := repo.Get("", "key")
			require.Error(t, err)
			require.Error(t, repo.Delete("ns", ""))
		})
	}
}

func TestInMemoryRepo_CopiesValues(t *testing.T) {
	repo := storage.NewInMemoryRepo()
	buf := []byte("value")
	require.NoError(t, repo.Put("ns", "key", buf))
	buf[0] = 'X'

	value, err := repo.Get("ns", "key")
	require.NoError(t, err)
	require.Equal(t, "value", string(value))
}

func TestSQLiteRepo_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	repo, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, repo.Put("browser-1", "auth-storage", []byte("persisted")))
	require.NoError(t, repo.Close())

	reopened, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get("browser-1", "auth-storage")
	require.NoError(t, err)
	require.Equal(t, "persisted", string(value))

	removed, err := reopened.DeleteOlderThan(time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := storage.OpenSQLite("  ")
	require.Error(t, err)
}
