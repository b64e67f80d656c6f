package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// SessionStore is the durable slot holding the current session.
type SessionStore interface {
	// Load returns (nil, nil) when the slot is empty.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
