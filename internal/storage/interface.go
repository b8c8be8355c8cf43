package storage

import "github.com/clarahq/clara/internal/models"

// DateRange is an inclusive calendar-date range, both ends YYYY-MM-DD.
type DateRange struct {
	From string
	To   string
}

// Provider is the persistence contract consumed by the registry, the
// ledger, and the export collaborator. Implementations are not safe for
// concurrent writers; the application owns a single logical writer.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Rooms
	GetActiveRooms() ([]models.Room, error)
	GetAllRooms() ([]models.Room, error)
	GetRoom(id string) (models.Room, error)
	InsertRoom(models.Room) error
	RenameRoom(id, name string) error
	ArchiveRoom(id string) error
	ReorderRooms(idsInOrder []string) error

	// Check-ins
	InsertCheckin(models.Checkin) error
	GetCheckinsForRoom(roomID string, rng *DateRange) ([]models.Checkin, error)
	GetAllCheckins() ([]models.Checkin, error)
	GetLatestCheckinForRoom(roomID string) (models.Checkin, error)

	// Settings
	GetSettings() (models.Settings, error)
	UpdateSettings(models.SettingsPatch) error

	// Utils
	GetConfigPath() string
}
