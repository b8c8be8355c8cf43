package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarahq/clara/internal/registry"
	"github.com/clarahq/clara/internal/storage"
)

func setup(t *testing.T) (*Ledger, *registry.Registry) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "clara.json"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return New(store), registry.New(store)
}

func TestAddCheckin(t *testing.T) {
	led, reg := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)

	checkin, err := led.AddCheckin(room.ID, "2026-01-15", false, "  too many dishes  ")
	require.NoError(t, err)
	assert.NotEmpty(t, checkin.ID)
	assert.Equal(t, room.ID, checkin.RoomID)
	assert.Equal(t, "2026-01-15", checkin.Date)
	assert.False(t, checkin.IsTidy)
	assert.Equal(t, "too many dishes", checkin.Reason)
	assert.NotEmpty(t, checkin.CreatedAt)
}

func TestAddCheckin_ReasonDroppedWhenTidy(t *testing.T) {
	led, reg := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)

	checkin, err := led.AddCheckin(room.ID, "2026-01-15", true, "should vanish")
	require.NoError(t, err)
	assert.Empty(t, checkin.Reason)
}

func TestAddCheckin_UnknownRoom(t *testing.T) {
	led, _ := setup(t)

	_, err := led.AddCheckin("missing", "2026-01-15", true, "")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddCheckin_InvalidDate(t *testing.T) {
	led, reg := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)

	for _, date := range []string{"", "15-01-2026", "2026/01/15", "2026-13-40"} {
		_, err := led.AddCheckin(room.ID, date, true, "")
		assert.ErrorIs(t, err, storage.ErrValidation, "date %q", date)
	}
}

func TestAddCheckin_ArchivedRoomStillAccepts(t *testing.T) {
	led, reg := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)
	require.NoError(t, reg.ArchiveRoom(room.ID))

	_, err = led.AddCheckin(room.ID, "2026-01-15", true, "")
	require.NoError(t, err)
}

func TestHistory(t *testing.T) {
	led, reg := setup(t)

	room, err := reg.AddRoom("Kitchen", "")
	require.NoError(t, err)

	for _, date := range []string{"2026-01-10", "2026-01-12", "2026-01-11"} {
		_, err := led.AddCheckin(room.ID, date, true, "")
		require.NoError(t, err)
	}

	history, err := led.History(room.ID, nil)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2026-01-12", history[0].Date)

	ranged, err := led.History(room.ID, &storage.DateRange{From: "2026-01-11", To: "2026-01-12"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	_, err = led.History("missing", nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
