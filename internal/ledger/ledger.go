package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/storage"
)

// Ledger records daily tidy/not-tidy outcomes. It is append-only:
// corrections are new entries, never updates, and the analytics engines
// resolve same-day duplicates to the last-written entry.
type Ledger struct {
	store storage.Provider
}

func New(store storage.Provider) *Ledger {
	return &Ledger{store: store}
}

// AddCheckin appends an outcome for a room on a calendar date. The room
// may be archived (history keeps accruing); an unknown room id fails with
// ErrNotFound. A reason supplied with a tidy outcome is dropped.
func (l *Ledger) AddCheckin(roomID, date string, isTidy bool, reason string) (models.Checkin, error) {
	if _, err := l.store.GetRoom(roomID); err != nil {
		return models.Checkin{}, err
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return models.Checkin{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", storage.ErrValidation, date)
	}

	if isTidy {
		reason = ""
	} else {
		reason = strings.TrimSpace(reason)
	}

	checkin := models.Checkin{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		Date:      date,
		IsTidy:    isTidy,
		Reason:    reason,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := l.store.InsertCheckin(checkin); err != nil {
		return models.Checkin{}, err
	}
	return checkin, nil
}

// History returns a room's check-ins, newest date first.
func (l *Ledger) History(roomID string, rng *storage.DateRange) ([]models.Checkin, error) {
	if _, err := l.store.GetRoom(roomID); err != nil {
		return nil, err
	}
	return l.store.GetCheckinsForRoom(roomID, rng)
}
