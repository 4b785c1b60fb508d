package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/addisride/admin-console/credstore"
	"github.com/addisride/admin-console/session"
	"github.com/stretchr/testify/require"
)

func testSession() *session.Session {
	return &session.Session{
		Identity:     session.Identity{ID: 1, DisplayName: "Sara Tesfaye", Role: "admin"},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-session.json")
	store := credstore.NewFileStore(path)

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, testSession(), loaded)
}

func TestLoadAbsent(t *testing.T) {
	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestLoadCorruptTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := credstore.NewFileStore(path)
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-session.json")
	store := credstore.NewFileStore(path)

	require.NoError(t, store.Save(testSession()))
	rotated := testSession().WithTokens("access-2", "refresh-2")
	require.NoError(t, store.Save(rotated))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "access-2", loaded.AccessToken)
	require.Equal(t, "refresh-2", loaded.RefreshToken)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin-session.json")
	store := credstore.NewFileStore(path)

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())
	// Idempotent.
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSaveUnavailableStorageIsNoOp(t *testing.T) {
	dir := t.TempDir()
	// A path whose parent is a regular file cannot be created.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := credstore.NewFileStore(filepath.Join(blocker, "nested", "session.json"))
	require.NoError(t, store.Save(testSession()))
}
