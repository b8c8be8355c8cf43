package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarahq/clara/internal/storage"
)

func makeDatabase(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clara.db")
	store := storage.NewSQLiteStore(path)
	require.NoError(t, store.Init())
	require.NoError(t, store.Close())
	return path
}

func TestCreateAndList(t *testing.T) {
	dbPath := makeDatabase(t, t.TempDir())
	mgr := NewManager(dbPath, 14)

	backupPath, err := mgr.Create()
	require.NoError(t, err)
	assert.Equal(t, mgr.BackupDir(), filepath.Dir(backupPath))

	backups, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, backupPath, backups[0].Path)
	assert.Greater(t, backups[0].Size, int64(0))
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.db"), 14)

	_, err := mgr.Create()
	assert.Error(t, err)
}

func TestCreate_UniqueNamesWithinOneSecond(t *testing.T) {
	dbPath := makeDatabase(t, t.TempDir())
	mgr := NewManager(dbPath, 14)

	first, err := mgr.Create()
	require.NoError(t, err)
	second, err := mgr.Create()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestRotation(t *testing.T) {
	dbPath := makeDatabase(t, t.TempDir())
	mgr := NewManager(dbPath, 2)

	for i := 0; i < 4; i++ {
		_, err := mgr.Create()
		require.NoError(t, err)
	}

	backups, err := mgr.List()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(backups), 2)
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := makeDatabase(t, dir)
	mgr := NewManager(dbPath, 14)

	backupPath, err := mgr.Create()
	require.NoError(t, err)

	// The store must open cleanly after the swap.
	require.NoError(t, mgr.Restore(backupPath))

	store := storage.NewSQLiteStore(dbPath)
	require.NoError(t, store.Init())
	defer store.Close()

	settings, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, 1, settings.ID)
}

func TestRestore_MissingBackup(t *testing.T) {
	dbPath := makeDatabase(t, t.TempDir())
	mgr := NewManager(dbPath, 14)

	err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestRestore_RejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := makeDatabase(t, dir)
	mgr := NewManager(dbPath, 14)

	corrupt := filepath.Join(dir, "corrupt.db")
	require.NoError(t, os.WriteFile(corrupt, []byte("this is not a sqlite database"), 0600))

	err := mgr.Restore(corrupt)
	assert.Error(t, err)
}
