package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// DefaultSessionKey is the fixed name of the session slot.
const DefaultSessionKey = "user"

// SlotClient is the part of *redis.Client the session store needs.
type SlotClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore persists the current session as a JSON document under a
// single key. The value never contains a credential.
type SessionStore struct {
	client SlotClient
	key    string
}

// NewSessionStore wraps client. An empty key selects DefaultSessionKey.
func NewSessionStore(client SlotClient, key string) *SessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionStore{client: client, key: key}
}

// Load returns (nil, nil) when the slot is empty and an error when it holds
// something that is not a well-formed session.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session load: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	if !session.Valid() {
		return nil, fmt.Errorf("session decode: malformed session in %q", s.key)
	}
	return &session, nil
}

// Save overwrites the slot. The key has no expiry.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	return s.client.Set(ctx, s.key, raw, 0).Err()
}

// Clear removes the slot. Deleting a missing key is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
