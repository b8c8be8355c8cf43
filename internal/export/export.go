package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/storage"
)

// Snapshot is the full-dump payload handed to the share collaborator:
// every room (archived included), every check-in, and the settings
// singleton as a one-element slice. Raw rows, no summarization.
type Snapshot struct {
	Rooms    []models.Room     `json:"rooms"`
	Checkins []models.Checkin  `json:"checkins"`
	Settings []models.Settings `json:"settings"`
}

// Dump reads a complete snapshot from the store.
func Dump(store storage.Provider) (Snapshot, error) {
	rooms, err := store.GetAllRooms()
	if err != nil {
		return Snapshot{}, fmt.Errorf("dumping rooms: %w", err)
	}
	checkins, err := store.GetAllCheckins()
	if err != nil {
		return Snapshot{}, fmt.Errorf("dumping checkins: %w", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		return Snapshot{}, fmt.Errorf("dumping settings: %w", err)
	}

	return Snapshot{
		Rooms:    rooms,
		Checkins: checkins,
		Settings: []models.Settings{settings},
	}, nil
}

// Write saves the snapshot as pretty-printed JSON under dir with a
// timestamped filename, returning the written path.
func Write(snapshot Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing snapshot: %w", err)
	}

	name := fmt.Sprintf("clara-export-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}

// Read loads a previously written snapshot.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading export file: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("parsing export file: %w", err)
	}
	return snapshot, nil
}
