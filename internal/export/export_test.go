package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarahq/clara/internal/ledger"
	"github.com/clarahq/clara/internal/registry"
	"github.com/clarahq/clara/internal/storage"
)

func TestDumpWriteReadRoundTrip(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "clara.json"))
	require.NoError(t, store.Init())
	defer store.Close()

	reg := registry.New(store)
	led := ledger.New(store)

	kitchen, err := reg.AddRoom("Kitchen", "🍳")
	require.NoError(t, err)
	attic, err := reg.AddRoom("Attic", "")
	require.NoError(t, err)
	require.NoError(t, reg.ArchiveRoom(attic.ID))

	_, err = led.AddCheckin(kitchen.ID, "2026-01-14", true, "")
	require.NoError(t, err)
	_, err = led.AddCheckin(kitchen.ID, "2026-01-15", false, "dishes")
	require.NoError(t, err)

	snapshot, err := Dump(store)
	require.NoError(t, err)
	// Archived rooms are part of the dump.
	assert.Len(t, snapshot.Rooms, 2)
	assert.Len(t, snapshot.Checkins, 2)
	require.Len(t, snapshot.Settings, 1)
	assert.Equal(t, 1, snapshot.Settings[0].ID)

	dir := t.TempDir()
	path, err := Write(snapshot, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "clara-export-"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
