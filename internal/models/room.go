package models

// Room is a user-defined physical space tracked for tidiness.
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji,omitempty"`
	CreatedAt string `json:"created_at"` // RFC3339 timestamp
	Archived  bool   `json:"archived"`
	SortOrder int    `json:"sort_order"`
}
