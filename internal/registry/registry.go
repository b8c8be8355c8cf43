package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/storage"
)

// Registry enforces room-level business rules on top of the store.
type Registry struct {
	store storage.Provider
}

func New(store storage.Provider) *Registry {
	return &Registry{store: store}
}

// AddRoom creates a room with a fresh id. New rooms get sort_order 0;
// callers place them explicitly via Reorder.
func (r *Registry) AddRoom(name, emoji string) (models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, fmt.Errorf("%w: room name must not be empty", storage.ErrValidation)
	}

	room := models.Room{
		ID:        uuid.New().String(),
		Name:      name,
		Emoji:     strings.TrimSpace(emoji),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.store.InsertRoom(room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (r *Registry) RenameRoom(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: room name must not be empty", storage.ErrValidation)
	}
	return r.store.RenameRoom(id, name)
}

// ArchiveRoom hides a room from active views. Archiving an already
// archived room is a no-op, not an error.
func (r *Registry) ArchiveRoom(id string) error {
	room, err := r.store.GetRoom(id)
	if err != nil {
		return err
	}
	if room.Archived {
		return nil
	}
	return r.store.ArchiveRoom(id)
}

// Reorder assigns each listed active room the sort order of its position.
// Every supplied id must reference an active room; active rooms omitted
// from the list keep their previous order.
func (r *Registry) Reorder(idsInOrder []string) error {
	active, err := r.store.GetActiveRooms()
	if err != nil {
		return err
	}

	activeIDs := make(map[string]bool, len(active))
	for _, room := range active {
		activeIDs[room.ID] = true
	}

	seen := make(map[string]bool, len(idsInOrder))
	for _, id := range idsInOrder {
		if !activeIDs[id] {
			return fmt.Errorf("%w: unknown or archived room id %q", storage.ErrValidation, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate room id %q", storage.ErrValidation, id)
		}
		seen[id] = true
	}

	return r.store.ReorderRooms(idsInOrder)
}

// ActiveRooms returns non-archived rooms in display order.
func (r *Registry) ActiveRooms() ([]models.Room, error) {
	return r.store.GetActiveRooms()
}
