package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// DefaultSessionKey names the row holding the current session.
const DefaultSessionKey = "user"

// SessionStore keeps the session slot as a JSON row in the session_slot
// table of the same database file, so the session survives a restart.
type SessionStore struct {
	db  *sql.DB
	key string
}

// SessionStore returns the slot stored under key. An empty key selects
// DefaultSessionKey.
func (s *Store) SessionStore(key string) *SessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionStore{db: s.db, key: key}
}

// Load returns (nil, nil) when the slot is empty and an error when the row
// does not hold a well-formed session.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM session_slot WHERE key = ?", s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	if !session.Valid() {
		return nil, fmt.Errorf("session decode: malformed session in %q", s.key)
	}
	return &session, nil
}

// Save overwrites the slot.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_slot (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(raw), formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Clear removes the slot. Clearing an empty slot is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session_slot WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
