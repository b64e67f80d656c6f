package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// AccountRepository is an append-only account directory.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts []domain.Account
	byEmail  map[string]int
	seq      uint64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byEmail: make(map[string]int)}
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := r.accounts[i]
	return &clone, nil
}

// Create checks email uniqueness and assigns the next id under one lock.
func (r *AccountRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrEmailTaken
	}

	r.seq++
	stored := *account
	stored.ID = strconv.FormatUint(r.seq, 10)
	r.byEmail[stored.Email] = len(r.accounts)
	r.accounts = append(r.accounts, stored)

	clone := stored
	return &clone, nil
}

func (r *AccountRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}
