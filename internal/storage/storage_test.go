package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarahq/clara/internal/constants"
	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/streaks"
)

type factory struct {
	name string
	open func(t *testing.T, path string) Provider
}

func backends() []factory {
	return []factory{
		{
			name: "sqlite",
			open: func(t *testing.T, path string) Provider {
				return NewSQLiteStore(filepath.Join(path, "clara.db"))
			},
		},
		{
			name: "json",
			open: func(t *testing.T, path string) Provider {
				return NewJSONStore(filepath.Join(path, "clara.json"))
			},
		},
	}
}

func setupStore(t *testing.T, f factory) Provider {
	t.Helper()
	store := f.open(t, t.TempDir())
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func room(id, name string) models.Room {
	return models.Room{
		ID:        id,
		Name:      name,
		CreatedAt: "2026-01-01T08:00:00Z",
	}
}

func checkin(id, roomID, date string, isTidy bool, reason string) models.Checkin {
	return models.Checkin{
		ID:        id,
		RoomID:    roomID,
		Date:      date,
		IsTidy:    isTidy,
		Reason:    reason,
		CreatedAt: "2026-01-01T20:00:00Z",
	}
}

func TestInit_SeedsDefaultSettings(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)

			settings, err := store.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, 1, settings.ID)
			assert.Equal(t, constants.DefaultNotifyHour, settings.NotifyHour)
			assert.Equal(t, constants.DefaultNotifyMinute, settings.NotifyMinute)
			assert.True(t, settings.VoiceEnabled)
			assert.True(t, settings.SttEnabled)
		})
	}
}

func TestInit_Idempotent(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			dir := t.TempDir()
			store := f.open(t, dir)
			require.NoError(t, store.Init())
			require.NoError(t, store.Init())

			hour := 7
			require.NoError(t, store.UpdateSettings(models.SettingsPatch{NotifyHour: &hour}))
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))
			require.NoError(t, store.Close())

			// A fresh handle on the same file must not reset anything.
			reopened := f.open(t, dir)
			require.NoError(t, reopened.Init())
			defer reopened.Close()

			settings, err := reopened.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, 7, settings.NotifyHour)

			rooms, err := reopened.GetActiveRooms()
			require.NoError(t, err)
			assert.Len(t, rooms, 1)
		})
	}
}

func TestGetRoom_NotFound(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)

			_, err := store.GetRoom("missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRenameRoom(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))

			require.NoError(t, store.RenameRoom("r1", "Galley"))

			got, err := store.GetRoom("r1")
			require.NoError(t, err)
			assert.Equal(t, "Galley", got.Name)

			assert.ErrorIs(t, store.RenameRoom("missing", "X"), ErrNotFound)
		})
	}
}

func TestArchiveRoom_HidesFromActiveOnly(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))
			require.NoError(t, store.InsertRoom(room("r2", "Bedroom")))
			require.NoError(t, store.InsertCheckin(checkin("c1", "r1", "2026-01-01", true, "")))

			require.NoError(t, store.ArchiveRoom("r1"))

			active, err := store.GetActiveRooms()
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, "r2", active[0].ID)

			all, err := store.GetAllRooms()
			require.NoError(t, err)
			assert.Len(t, all, 2)

			// History survives archival.
			checkins, err := store.GetCheckinsForRoom("r1", nil)
			require.NoError(t, err)
			assert.Len(t, checkins, 1)
		})
	}
}

func TestReorderRooms(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			for i, id := range []string{"r1", "r2", "r3"} {
				r := room(id, "Room "+id)
				r.SortOrder = i
				require.NoError(t, store.InsertRoom(r))
			}

			require.NoError(t, store.ReorderRooms([]string{"r3", "r1", "r2"}))

			rooms, err := store.GetActiveRooms()
			require.NoError(t, err)
			require.Len(t, rooms, 3)
			assert.Equal(t, "r3", rooms[0].ID)
			assert.Equal(t, "r1", rooms[1].ID)
			assert.Equal(t, "r2", rooms[2].ID)
		})
	}
}

func TestReorderRooms_UnknownIDLeavesOrderIntact(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			for i, id := range []string{"r1", "r2"} {
				r := room(id, "Room "+id)
				r.SortOrder = i
				require.NoError(t, store.InsertRoom(r))
			}

			err := store.ReorderRooms([]string{"r2", "missing"})
			assert.ErrorIs(t, err, ErrNotFound)

			rooms, err := store.GetActiveRooms()
			require.NoError(t, err)
			require.Len(t, rooms, 2)
			assert.Equal(t, "r1", rooms[0].ID)
			assert.Equal(t, "r2", rooms[1].ID)
		})
	}
}

func TestReorderRooms_OmittedRoomsKeepTheirOrder(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			for i, id := range []string{"r1", "r2", "r3"} {
				r := room(id, "Room "+id)
				r.SortOrder = i + 5
				require.NoError(t, store.InsertRoom(r))
			}

			require.NoError(t, store.ReorderRooms([]string{"r2", "r1"}))

			rooms, err := store.GetActiveRooms()
			require.NoError(t, err)
			require.Len(t, rooms, 3)
			// r2 and r1 take positions 0 and 1; r3 keeps sort_order 7.
			assert.Equal(t, "r2", rooms[0].ID)
			assert.Equal(t, "r1", rooms[1].ID)
			assert.Equal(t, "r3", rooms[2].ID)
		})
	}
}

func TestGetCheckinsForRoom_RangeAndOrder(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))
			require.NoError(t, store.InsertCheckin(checkin("c1", "r1", "2026-01-01", true, "")))
			require.NoError(t, store.InsertCheckin(checkin("c2", "r1", "2026-01-03", false, "busy")))
			require.NoError(t, store.InsertCheckin(checkin("c3", "r1", "2026-01-02", true, "")))

			all, err := store.GetCheckinsForRoom("r1", nil)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "2026-01-03", all[0].Date)
			assert.Equal(t, "2026-01-02", all[1].Date)
			assert.Equal(t, "2026-01-01", all[2].Date)

			ranged, err := store.GetCheckinsForRoom("r1", &DateRange{From: "2026-01-02", To: "2026-01-03"})
			require.NoError(t, err)
			assert.Len(t, ranged, 2)
		})
	}
}

func TestGetCheckinsForRoom_SameDayKeepsInsertionOrder(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))
			require.NoError(t, store.InsertCheckin(checkin("c1", "r1", "2026-01-02", false, "busy")))
			require.NoError(t, store.InsertCheckin(checkin("c2", "r1", "2026-01-02", true, "")))
			require.NoError(t, store.InsertCheckin(checkin("c3", "r1", "2026-01-01", true, "")))

			all, err := store.GetCheckinsForRoom("r1", nil)
			require.NoError(t, err)
			require.Len(t, all, 3)
			// Within a date, rows surface in insertion order so that
			// downstream last-written-wins collapsing sees the newest
			// write last.
			assert.Equal(t, "c1", all[0].ID)
			assert.Equal(t, "c2", all[1].ID)
			assert.Equal(t, "c3", all[2].ID)
		})
	}
}

// A same-day correction recorded through the store must win in the
// streak math on every backend.
func TestCompute_SameDayCorrectionThroughStore(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))
			require.NoError(t, store.InsertCheckin(checkin("c1", "r1", "2026-01-01", true, "")))
			require.NoError(t, store.InsertCheckin(checkin("c2", "r1", "2026-01-02", false, "busy")))
			require.NoError(t, store.InsertCheckin(checkin("c3", "r1", "2026-01-02", true, "")))

			checkins, err := store.GetCheckinsForRoom("r1", nil)
			require.NoError(t, err)

			result := streaks.Compute(checkins)
			assert.Equal(t, 2, result.Current)
			assert.Equal(t, streaks.LastTidy, result.Last)

			// And the inverse correction: a later not-tidy entry wins.
			require.NoError(t, store.InsertCheckin(checkin("c4", "r1", "2026-01-02", false, "guests")))

			checkins, err = store.GetCheckinsForRoom("r1", nil)
			require.NoError(t, err)

			result = streaks.Compute(checkins)
			assert.Equal(t, 0, result.Current)
			assert.Equal(t, streaks.LastNotTidy, result.Last)
		})
	}
}

func TestGetLatestCheckinForRoom(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)
			require.NoError(t, store.InsertRoom(room("r1", "Kitchen")))

			_, err := store.GetLatestCheckinForRoom("r1")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.InsertCheckin(checkin("c1", "r1", "2026-01-02", true, "")))
			require.NoError(t, store.InsertCheckin(checkin("c2", "r1", "2026-01-01", false, "busy")))
			// Duplicate for the latest date; the later insert wins.
			require.NoError(t, store.InsertCheckin(checkin("c3", "r1", "2026-01-02", false, "guests")))

			latest, err := store.GetLatestCheckinForRoom("r1")
			require.NoError(t, err)
			assert.Equal(t, "c3", latest.ID)
		})
	}
}

func TestUpdateSettings_PartialPatch(t *testing.T) {
	for _, f := range backends() {
		t.Run(f.name, func(t *testing.T) {
			store := setupStore(t, f)

			hour := 7
			voice := false
			require.NoError(t, store.UpdateSettings(models.SettingsPatch{
				NotifyHour:   &hour,
				VoiceEnabled: &voice,
			}))

			settings, err := store.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, 7, settings.NotifyHour)
			assert.False(t, settings.VoiceEnabled)
			// Untouched fields keep their defaults.
			assert.Equal(t, constants.DefaultNotifyMinute, settings.NotifyMinute)
			assert.True(t, settings.SttEnabled)
		})
	}
}
