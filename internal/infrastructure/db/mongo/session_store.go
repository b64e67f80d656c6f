package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigboard/marketplace/internal/core/domain"
)

const (
	sessionsCollection = "session_slot"
	// DefaultSessionKey is the _id of the document holding the session.
	DefaultSessionKey = "user"
)

// SessionStore keeps the session slot as a single document keyed by name.
type SessionStore struct {
	col *mongo.Collection
	key string
}

// NewSessionStore returns the slot stored under key. An empty key selects
// DefaultSessionKey.
func NewSessionStore(db *mongo.Database, key string) *SessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &SessionStore{col: db.Collection(sessionsCollection), key: key}
}

type sessionDoc struct {
	Key       string    `bson:"_id"`
	AccountID string    `bson:"account_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newSessionDoc(key string, s domain.Session, now time.Time) sessionDoc {
	return sessionDoc{
		Key:       key,
		AccountID: s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      string(s.Role),
		UpdatedAt: now.UTC(),
	}
}

func (d sessionDoc) toDomain() (*domain.Session, error) {
	session := domain.Session{
		ID:    d.AccountID,
		Name:  d.Name,
		Email: d.Email,
		Role:  domain.Role(d.Role),
	}
	if !session.Valid() {
		return nil, fmt.Errorf("session decode: malformed session in %q", d.Key)
	}
	return &session, nil
}

// Load returns (nil, nil) when the slot is empty and an error when the
// document is not a well-formed session.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("session load: %w", err)
	}
	return doc.toDomain()
}

// Save overwrites the slot.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newSessionDoc(s.key, session, time.Now())
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": s.key}, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Clear removes the slot. Clearing an empty slot is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": s.key}); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
