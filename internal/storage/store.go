package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Keys for the two documents the bot caches per chat.
const (
	KeyStats     = "blackjackStats"
	KeyGameState = "blackjackGameState"
)

// Store is a best-effort JSON key/value cache over sqlite. Writes and
// reads never propagate errors: persistence failing must not break the
// game, the affected feature just degrades (no resume, default stats).
type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &Store{
		db:  db,
		log: logrus.WithField("component", "storage"),
	}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		chat_id INTEGER NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (chat_id, key)
	);
	`

	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Persist writes v as JSON under (chatID, key). Any failure is logged
// and swallowed.
func (s *Store) Persist(chatID int64, key string, v any) {
	encoded, err := json.Marshal(v)
	if err != nil {
		s.log.WithField("key", key).WithError(err).Warn("unable to encode value")
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (chat_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (chat_id, key) DO UPDATE SET
			value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, chatID, key, string(encoded))

	if err != nil {
		s.log.WithField("key", key).WithError(err).Warn("unable to persist value")
	}
}

// Load decodes the value under (chatID, key) into dest and reports
// whether it succeeded. A missing row or malformed JSON returns false
// and the caller keeps its fallback value. Never panics or propagates.
func (s *Store) Load(chatID int64, key string, dest any) bool {
	var raw string
	err := s.db.QueryRow(`
		SELECT value FROM snapshots WHERE chat_id = ? AND key = ?
	`, chatID, key).Scan(&raw)

	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.log.WithField("key", key).WithError(err).Warn("unable to read value")
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.WithField("key", key).WithError(err).Warn("stored value is corrupted")
		return false
	}

	return true
}

// Delete removes the value under (chatID, key), best-effort.
func (s *Store) Delete(chatID int64, key string) {
	if _, err := s.db.Exec(`
		DELETE FROM snapshots WHERE chat_id = ? AND key = ?
	`, chatID, key); err != nil {
		s.log.WithField("key", key).WithError(err).Warn("unable to delete value")
	}
}
