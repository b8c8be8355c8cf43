package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/clarahq/clara/internal/constants"
	"github.com/clarahq/clara/internal/models"
)

// Store is the on-disk document for the JSON backend.
type Store struct {
	Version  int                    `json:"version"`
	Settings models.Settings        `json:"settings"`
	Rooms    map[string]models.Room `json:"rooms"`
	Checkins []models.Checkin       `json:"checkins"`
}

// JSONStore implements Provider as a single pretty-printed JSON file.
// Mostly useful for tests and for inspecting data by hand; SQLite is the
// default backend.
type JSONStore struct {
	path string

	once    sync.Once
	initErr error
	store   *Store
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	s.once.Do(func() {
		s.initErr = s.open()
	})
	return s.initErr
}

func (s *JSONStore) open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return storageErr("creating data directory", err)
	}

	data, err := os.ReadFile(s.path)
	if err == nil {
		s.store = &Store{}
		if err := json.Unmarshal(data, s.store); err != nil {
			return storageErr("parsing storage file", err)
		}
		if s.store.Rooms == nil {
			s.store.Rooms = make(map[string]models.Room)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return storageErr("reading storage file", err)
	}

	// First run: seed the settings singleton with defaults.
	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			ID:           1,
			NotifyHour:   constants.DefaultNotifyHour,
			NotifyMinute: constants.DefaultNotifyMinute,
			VoiceEnabled: constants.DefaultVoiceEnabled,
			SttEnabled:   constants.DefaultSttEnabled,
		},
		Rooms: make(map[string]models.Room),
	}
	return s.save()
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return storageErr("serializing storage", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return storageErr("writing storage file", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return storageErr("loading storage", fmt.Errorf("store not initialized"))
	}
	return nil
}

func (s *JSONStore) GetActiveRooms() ([]models.Room, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var result []models.Room
	for _, room := range s.store.Rooms {
		if !room.Archived {
			result = append(result, room)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].CreatedAt < result[j].CreatedAt
	})
	return result, nil
}

func (s *JSONStore) GetAllRooms() ([]models.Room, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	result := make([]models.Room, 0, len(s.store.Rooms))
	for _, room := range s.store.Rooms {
		result = append(result, room)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].CreatedAt < result[j].CreatedAt
	})
	return result, nil
}

func (s *JSONStore) GetRoom(id string) (models.Room, error) {
	if err := s.loaded(); err != nil {
		return models.Room{}, err
	}

	room, ok := s.store.Rooms[id]
	if !ok {
		return models.Room{}, ErrNotFound
	}
	return room, nil
}

func (s *JSONStore) InsertRoom(room models.Room) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Rooms[room.ID] = room
	return s.save()
}

func (s *JSONStore) RenameRoom(id, name string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	room, ok := s.store.Rooms[id]
	if !ok {
		return ErrNotFound
	}
	room.Name = name
	s.store.Rooms[id] = room
	return s.save()
}

func (s *JSONStore) ArchiveRoom(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	room, ok := s.store.Rooms[id]
	if !ok {
		return ErrNotFound
	}
	room.Archived = true
	s.store.Rooms[id] = room
	return s.save()
}

func (s *JSONStore) ReorderRooms(idsInOrder []string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	// Validate the whole list before mutating anything so a bad id can't
	// leave a partial reorder behind.
	for _, id := range idsInOrder {
		if _, ok := s.store.Rooms[id]; !ok {
			return ErrNotFound
		}
	}
	for position, id := range idsInOrder {
		room := s.store.Rooms[id]
		room.SortOrder = position
		s.store.Rooms[id] = room
	}
	return s.save()
}

func (s *JSONStore) InsertCheckin(checkin models.Checkin) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Checkins = append(s.store.Checkins, checkin)
	return s.save()
}

func (s *JSONStore) GetCheckinsForRoom(roomID string, rng *DateRange) ([]models.Checkin, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var result []models.Checkin
	for _, checkin := range s.store.Checkins {
		if checkin.RoomID != roomID {
			continue
		}
		if rng != nil && (checkin.Date < rng.From || checkin.Date > rng.To) {
			continue
		}
		result = append(result, checkin)
	}
	sortCheckinsDateDesc(result)
	return result, nil
}

func (s *JSONStore) GetAllCheckins() ([]models.Checkin, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	result := make([]models.Checkin, len(s.store.Checkins))
	copy(result, s.store.Checkins)
	sortCheckinsDateDesc(result)
	return result, nil
}

func (s *JSONStore) GetLatestCheckinForRoom(roomID string) (models.Checkin, error) {
	if err := s.loaded(); err != nil {
		return models.Checkin{}, err
	}

	var latest models.Checkin
	found := false
	for _, checkin := range s.store.Checkins {
		if checkin.RoomID != roomID {
			continue
		}
		if !found || checkin.Date >= latest.Date {
			latest = checkin
			found = true
		}
	}
	if !found {
		return models.Checkin{}, ErrNotFound
	}
	return latest, nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.store.Settings, nil
}

func (s *JSONStore) UpdateSettings(patch models.SettingsPatch) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.store.Settings = patch.Apply(s.store.Settings)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// sortCheckinsDateDesc orders newest date first; same-day entries keep
// their insertion order.
func sortCheckinsDateDesc(checkins []models.Checkin) {
	sort.SliceStable(checkins, func(i, j int) bool {
		return checkins[i].Date > checkins[j].Date
	})
}

var _ Provider = (*JSONStore)(nil)
