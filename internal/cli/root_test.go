package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarahq/clara/internal/config"
	"github.com/clarahq/clara/internal/ledger"
	"github.com/clarahq/clara/internal/registry"
	"github.com/clarahq/clara/internal/storage"
)

func setupContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "clara.json"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	return &Context{
		Store:    store,
		Registry: registry.New(store),
		Ledger:   ledger.New(store),
		Config:   config.Config{Backups: config.BackupsConfig{Keep: 14}},
	}
}

func TestResolveRoom(t *testing.T) {
	ctx := setupContext(t)

	kitchen, err := ctx.Registry.AddRoom("Kitchen", "")
	require.NoError(t, err)
	attic, err := ctx.Registry.AddRoom("Attic", "")
	require.NoError(t, err)
	require.NoError(t, ctx.Registry.ArchiveRoom(attic.ID))

	// By id.
	id, err := resolveRoom(ctx, kitchen.ID)
	require.NoError(t, err)
	assert.Equal(t, kitchen.ID, id)

	// By name, case-insensitive.
	id, err = resolveRoom(ctx, "kitchen")
	require.NoError(t, err)
	assert.Equal(t, kitchen.ID, id)

	// Archived rooms do not resolve.
	_, err = resolveRoom(ctx, "Attic")
	assert.Error(t, err)

	_, err = resolveRoom(ctx, "garage")
	assert.Error(t, err)
}

func TestResolveDate(t *testing.T) {
	date, err := resolveDate("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", date)

	todayStr, err := resolveDate("")
	require.NoError(t, err)
	assert.Equal(t, today(), todayStr)

	todayStr, err = resolveDate("today")
	require.NoError(t, err)
	assert.Equal(t, today(), todayStr)

	_, err = resolveDate("15/01/2026")
	assert.Error(t, err)
}

func TestRoomListCmd(t *testing.T) {
	ctx := setupContext(t)

	kitchen, err := ctx.Registry.AddRoom("Kitchen", "")
	require.NoError(t, err)
	require.NoError(t, ctx.Registry.ArchiveRoom(kitchen.ID))

	// Runs cleanly whether or not archived rooms are included.
	require.NoError(t, (&RoomListCmd{}).Run(ctx))
	require.NoError(t, (&RoomListCmd{All: true}).Run(ctx))
}

func TestRoomLabel(t *testing.T) {
	assert.Equal(t, "🍳 Kitchen", roomLabel("Kitchen", "🍳"))
	assert.Equal(t, "Kitchen", roomLabel("Kitchen", ""))
}
