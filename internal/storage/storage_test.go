package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backends returns one fresh store per backend, each rooted in its own temp dir.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	out := make(map[string]Store)
	for _, b := range []string{BackendMemory, BackendFile, BackendSqlite} {
		path := t.TempDir()
		if b == BackendSqlite {
			path = filepath.Join(path, "state.db")
		}
		s, closeFn, err := Open(noopLogger(), b, path)
		require.NoError(t, err, b)
		t.Cleanup(func() { _ = closeFn() })
		out[b] = s
	}
	return out
}

func TestStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "auth")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "auth", `{"token":"a"}`))
			v, ok, err := s.Get(ctx, "auth")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"token":"a"}`, v)

			require.NoError(t, s.Set(ctx, "auth", `{"token":"b"}`))
			v, _, err = s.Get(ctx, "auth")
			require.NoError(t, err)
			assert.Equal(t, `{"token":"b"}`, v)

			require.NoError(t, s.Remove(ctx, "auth"))
			_, ok, err = s.Get(ctx, "auth")
			require.NoError(t, err)
			assert.False(t, ok)

			// removing twice is fine
			require.NoError(t, s.Remove(ctx, "auth"))
		})
	}
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.Get(ctx, "auth")
			assert.ErrorIs(t, err, context.Canceled)
			assert.ErrorIs(t, s.Set(ctx, "auth", "x"), context.Canceled)
			assert.ErrorIs(t, s.Remove(ctx, "auth"), context.Canceled)
		})
	}
}

func TestStore_EmptyKeyRejected(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Set(context.Background(), "", "x")
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s, err := NewFile(noopLogger(), t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../auth", "a/b", "..", "."} {
		err := s.Set(context.Background(), key, "x")
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFile(noopLogger(), dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "auth", "persisted"))

	s2, err := NewFile(noopLogger(), dir)
	require.NoError(t, err)
	v, ok, err := s2.Get(ctx, "auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)

	info, err := os.Stat(filepath.Join(dir, "auth.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSqliteStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	ctx := context.Background()

	s1, close1, err := Open(noopLogger(), BackendSqlite, path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "auth", "persisted"))
	require.NoError(t, close1())

	s2, close2, err := Open(noopLogger(), BackendSqlite, path)
	require.NoError(t, err)
	defer close2()
	v, ok, err := s2.Get(ctx, "auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, closeFn, err := Open(noopLogger(), "redis", "")
	require.Error(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())
}
