package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// AccountRepository is the directory of known accounts.
type AccountRepository interface {
	// FindByEmail returns domain.ErrAccountNotFound when no account has email.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Create assigns an id and stores the account. It returns
	// domain.ErrEmailTaken when the email is already in the directory,
	// regardless of role.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Count(ctx context.Context) (int, error)
}
