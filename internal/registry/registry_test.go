package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarahq/clara/internal/storage"
)

func setup(t *testing.T) (*Registry, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "clara.json"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestAddRoom(t *testing.T) {
	reg, store := setup(t)

	room, err := reg.AddRoom("  Kitchen  ", "🍳")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", room.Name)
	assert.Equal(t, "🍳", room.Emoji)
	assert.NotEmpty(t, room.ID)
	assert.NotEmpty(t, room.CreatedAt)
	assert.False(t, room.Archived)

	stored, err := store.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Equal(t, room, stored)
}

func TestAddRoom_EmptyNameRejected(t *testing.T) {
	reg, _ := setup(t)

	_, err := reg.AddRoom("   ", "")
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestRenameRoom_Validation(t *testing.T) {
	reg, _ := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)

	assert.ErrorIs(t, reg.RenameRoom(room.ID, "  "), storage.ErrValidation)
	require.NoError(t, reg.RenameRoom(room.ID, " Galley "))

	rooms, err := reg.ActiveRooms()
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Galley", rooms[0].Name)
}

func TestArchiveRoom_Idempotent(t *testing.T) {
	reg, store := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)

	require.NoError(t, reg.ArchiveRoom(room.ID))
	// Second archive is a no-op, not an error.
	require.NoError(t, reg.ArchiveRoom(room.ID))

	got, err := store.GetRoom(room.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)

	assert.ErrorIs(t, reg.ArchiveRoom("missing"), storage.ErrNotFound)
}

func TestReorder(t *testing.T) {
	reg, _ := setup(t)

	kitchen, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)
	bedroom, err := reg.AddRoom("Bedroom", "")
	require.NoError(t, err)

	require.NoError(t, reg.Reorder([]string{bedroom.ID, kitchen.ID}))

	rooms, err := reg.ActiveRooms()
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, bedroom.ID, rooms[0].ID)
	assert.Equal(t, kitchen.ID, rooms[1].ID)
}

func TestReorder_RejectsBadIDs(t *testing.T) {
	reg, _ := setup(t)

	kitchen, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)
	attic, err := reg.AddRoom("Attic", "")
	require.NoError(t, err)
	require.NoError(t, reg.ArchiveRoom(attic.ID))

	// Unknown id.
	assert.ErrorIs(t, reg.Reorder([]string{kitchen.ID, "missing"}), storage.ErrValidation)
	// Archived id.
	assert.ErrorIs(t, reg.Reorder([]string{kitchen.ID, attic.ID}), storage.ErrValidation)
	// Duplicate id.
	assert.ErrorIs(t, reg.Reorder([]string{kitchen.ID, kitchen.ID}), storage.ErrValidation)
}
