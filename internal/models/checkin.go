package models

// Checkin is a single day's tidy/not-tidy record for a room.
// Reason is only meaningful when IsTidy is false.
type Checkin struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"` // YYYY-MM-DD format
	IsTidy    bool   `json:"is_tidy"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"` // RFC3339 timestamp, audit only
}
