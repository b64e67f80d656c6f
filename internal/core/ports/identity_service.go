package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// IdentityService manages the single current session of the instance.
type IdentityService interface {
	Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error)
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Session, error)
	Logout(ctx context.Context) error
	CurrentSession() *domain.Session
}
