package storage

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/clarahq/clara/internal/constants"
	"github.com/clarahq/clara/internal/models"
)

// SQLiteStore implements Provider on top of a single SQLite file.
type SQLiteStore struct {
	path   string
	logger *slog.Logger

	once    sync.Once
	initErr error
	db      *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path:   path,
		logger: slog.Default().With("component", "storage"),
	}
}

// Init opens the database and bootstraps the schema. It is idempotent:
// repeated and concurrent callers converge on a single handle, and the
// schema/seed writes run at most once per process.
func (s *SQLiteStore) Init() error {
	s.once.Do(func() {
		s.initErr = s.open()
	})
	return s.initErr
}

func (s *SQLiteStore) open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return storageErr("creating data directory", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return storageErr("opening database", err)
	}

	// WAL keeps readers unblocked during writes and recovers cleanly
	// after a crash.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return storageErr("enabling WAL mode", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return storageErr("enabling foreign keys", err)
	}

	s.db = db

	if err := s.createSchema(); err != nil {
		db.Close()
		s.db = nil
		return storageErr("creating schema", err)
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		s.db = nil
		return storageErr("running migrations", err)
	}
	if err := s.seedSettings(); err != nil {
		db.Close()
		s.db = nil
		return storageErr("seeding settings", err)
	}

	s.logger.Info("store initialized", "path", s.path)
	return nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rooms (
			id         TEXT PRIMARY KEY NOT NULL,
			name       TEXT NOT NULL,
			emoji      TEXT,
			created_at TEXT NOT NULL,
			archived   INTEGER NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS checkins (
			id         TEXT PRIMARY KEY NOT NULL,
			room_id    TEXT NOT NULL,
			date       TEXT NOT NULL,
			is_tidy    INTEGER NOT NULL,
			reason     TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (room_id) REFERENCES rooms(id)
		);

		CREATE INDEX IF NOT EXISTS idx_checkins_room_date
			ON checkins(room_id, date);

		CREATE TABLE IF NOT EXISTS app_settings (
			id            INTEGER PRIMARY KEY NOT NULL,
			notify_hour   INTEGER NOT NULL,
			notify_min    INTEGER NOT NULL,
			voice_enabled INTEGER NOT NULL DEFAULT 1,
			stt_enabled   INTEGER NOT NULL DEFAULT 1
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// runMigrations applies column additions for databases created by older
// releases. SQLite has no ADD COLUMN IF NOT EXISTS, so each column is
// checked through pragma_table_info first. Safe to run repeatedly.
func (s *SQLiteStore) runMigrations() error {
	migrations := []struct {
		table  string
		column string
		apply  string
	}{
		{
			table:  "rooms",
			column: "emoji",
			apply:  `ALTER TABLE rooms ADD COLUMN emoji TEXT`,
		},
		{
			table:  "rooms",
			column: "sort_order",
			apply:  `ALTER TABLE rooms ADD COLUMN sort_order INTEGER NOT NULL DEFAULT 0`,
		},
	}

	for _, m := range migrations {
		var exists int
		err := s.db.QueryRow(
			`SELECT 1 FROM pragma_table_info(?) WHERE name = ?`, m.table, m.column,
		).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return err
		}
		if _, err := s.db.Exec(m.apply); err != nil {
			return err
		}
		s.logger.Info("applied migration", "table", m.table, "column", m.column)
	}

	return nil
}

// seedSettings inserts the settings singleton if the table is empty.
// Re-running Init never resets existing settings.
func (s *SQLiteStore) seedSettings() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM app_settings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO app_settings (id, notify_hour, notify_min, voice_enabled, stt_enabled)
		 VALUES (1, ?, ?, ?, ?)`,
		constants.DefaultNotifyHour,
		constants.DefaultNotifyMinute,
		constants.DefaultVoiceEnabled,
		constants.DefaultSttEnabled,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetActiveRooms() ([]models.Room, error) {
	rows, err := s.db.Query(`
		SELECT id, name, emoji, created_at, archived, sort_order
		FROM rooms WHERE archived = 0
		ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, storageErr("querying active rooms", err)
	}
	defer rows.Close()

	var result []models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, storageErr("scanning room row", err)
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating room rows", err)
	}
	return result, nil
}

// GetAllRooms returns every room, archived included. Used by export.
func (s *SQLiteStore) GetAllRooms() ([]models.Room, error) {
	rows, err := s.db.Query(`
		SELECT id, name, emoji, created_at, archived, sort_order
		FROM rooms
		ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, storageErr("querying all rooms", err)
	}
	defer rows.Close()

	var result []models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, storageErr("scanning room row", err)
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating room rows", err)
	}
	return result, nil
}

func (s *SQLiteStore) GetRoom(id string) (models.Room, error) {
	row := s.db.QueryRow(`
		SELECT id, name, emoji, created_at, archived, sort_order
		FROM rooms WHERE id = ?`, id)

	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return models.Room{}, ErrNotFound
	}
	if err != nil {
		return models.Room{}, storageErr("querying room", err)
	}
	return room, nil
}

func (s *SQLiteStore) InsertRoom(room models.Room) error {
	_, err := s.db.Exec(`
		INSERT INTO rooms (id, name, emoji, created_at, archived, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)`,
		room.ID, room.Name, nullString(room.Emoji), room.CreatedAt, room.Archived, room.SortOrder,
	)
	if err != nil {
		return storageErr("inserting room", err)
	}
	s.logger.Debug("inserted room", "id", room.ID, "name", room.Name)
	return nil
}

func (s *SQLiteStore) RenameRoom(id, name string) error {
	result, err := s.db.Exec(`UPDATE rooms SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return storageErr("renaming room", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("getting rows affected", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ArchiveRoom(id string) error {
	result, err := s.db.Exec(`UPDATE rooms SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		return storageErr("archiving room", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("getting rows affected", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.logger.Debug("archived room", "id", id)
	return nil
}

// ReorderRooms assigns sort_order = position for every listed id inside a
// single transaction. Rooms not in the list keep their previous order.
func (s *SQLiteStore) ReorderRooms(idsInOrder []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("beginning reorder transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE rooms SET sort_order = ? WHERE id = ?`)
	if err != nil {
		return storageErr("preparing reorder statement", err)
	}
	defer stmt.Close()

	for position, id := range idsInOrder {
		result, err := stmt.Exec(position, id)
		if err != nil {
			return storageErr("updating sort order", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return storageErr("getting rows affected", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing reorder transaction", err)
	}
	return nil
}

func (s *SQLiteStore) InsertCheckin(checkin models.Checkin) error {
	_, err := s.db.Exec(`
		INSERT INTO checkins (id, room_id, date, is_tidy, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		checkin.ID, checkin.RoomID, checkin.Date, checkin.IsTidy,
		nullString(checkin.Reason), checkin.CreatedAt,
	)
	if err != nil {
		return storageErr("inserting checkin", err)
	}
	s.logger.Debug("inserted checkin", "id", checkin.ID, "room_id", checkin.RoomID, "date", checkin.Date)
	return nil
}

// GetCheckinsForRoom returns rows newest date first. Same-day rows keep
// insertion order (rowid ASC); the index alone would surface them
// newest-insert-first, which would invert last-written-wins collapsing
// downstream.
func (s *SQLiteStore) GetCheckinsForRoom(roomID string, rng *DateRange) ([]models.Checkin, error) {
	query := `
		SELECT id, room_id, date, is_tidy, reason, created_at
		FROM checkins WHERE room_id = ?
		ORDER BY date DESC, rowid ASC`
	args := []any{roomID}

	if rng != nil {
		query = `
			SELECT id, room_id, date, is_tidy, reason, created_at
			FROM checkins WHERE room_id = ? AND date BETWEEN ? AND ?
			ORDER BY date DESC, rowid ASC`
		args = []any{roomID, rng.From, rng.To}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("querying checkins", err)
	}
	defer rows.Close()

	return collectCheckins(rows)
}

func (s *SQLiteStore) GetAllCheckins() ([]models.Checkin, error) {
	rows, err := s.db.Query(`
		SELECT id, room_id, date, is_tidy, reason, created_at
		FROM checkins ORDER BY date DESC, rowid ASC`)
	if err != nil {
		return nil, storageErr("querying all checkins", err)
	}
	defer rows.Close()

	return collectCheckins(rows)
}

// GetLatestCheckinForRoom returns the row with the maximum date for the
// room. When duplicates share the maximum date the most recently inserted
// row wins; that tie-break is incidental, not contractual.
func (s *SQLiteStore) GetLatestCheckinForRoom(roomID string) (models.Checkin, error) {
	row := s.db.QueryRow(`
		SELECT id, room_id, date, is_tidy, reason, created_at
		FROM checkins WHERE room_id = ?
		ORDER BY date DESC, rowid DESC LIMIT 1`, roomID)

	checkin, err := scanCheckin(row)
	if err == sql.ErrNoRows {
		return models.Checkin{}, ErrNotFound
	}
	if err != nil {
		return models.Checkin{}, storageErr("querying latest checkin", err)
	}
	return checkin, nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT id, notify_hour, notify_min, voice_enabled, stt_enabled
		FROM app_settings WHERE id = 1`)

	var settings models.Settings
	err := row.Scan(
		&settings.ID, &settings.NotifyHour, &settings.NotifyMinute,
		&settings.VoiceEnabled, &settings.SttEnabled,
	)
	if err == sql.ErrNoRows {
		return models.Settings{}, ErrNotFound
	}
	if err != nil {
		return models.Settings{}, storageErr("querying settings", err)
	}
	return settings, nil
}

// UpdateSettings merges the patch onto the current singleton row.
// Unspecified fields keep their previous values.
func (s *SQLiteStore) UpdateSettings(patch models.SettingsPatch) error {
	current, err := s.GetSettings()
	if err != nil {
		return err
	}
	merged := patch.Apply(current)

	_, err = s.db.Exec(`
		UPDATE app_settings
		SET notify_hour = ?, notify_min = ?, voice_enabled = ?, stt_enabled = ?
		WHERE id = 1`,
		merged.NotifyHour, merged.NotifyMinute, merged.VoiceEnabled, merged.SttEnabled,
	)
	if err != nil {
		return storageErr("updating settings", err)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the raw handle for diagnostics (doctor, backup checks).
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (models.Room, error) {
	var room models.Room
	var emoji sql.NullString

	err := row.Scan(&room.ID, &room.Name, &emoji, &room.CreatedAt, &room.Archived, &room.SortOrder)
	if err != nil {
		return models.Room{}, err
	}
	if emoji.Valid {
		room.Emoji = emoji.String
	}
	return room, nil
}

func scanCheckin(row rowScanner) (models.Checkin, error) {
	var checkin models.Checkin
	var reason sql.NullString

	err := row.Scan(&checkin.ID, &checkin.RoomID, &checkin.Date, &checkin.IsTidy, &reason, &checkin.CreatedAt)
	if err != nil {
		return models.Checkin{}, err
	}
	if reason.Valid {
		checkin.Reason = reason.String
	}
	return checkin, nil
}

func collectCheckins(rows *sql.Rows) ([]models.Checkin, error) {
	var result []models.Checkin
	for rows.Next() {
		checkin, err := scanCheckin(rows)
		if err != nil {
			return nil, storageErr("scanning checkin row", err)
		}
		result = append(result, checkin)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating checkin rows", err)
	}
	return result, nil
}

// nullString returns nil for empty strings so optional columns stay NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Provider = (*SQLiteStore)(nil)
