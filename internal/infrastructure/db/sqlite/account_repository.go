package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gigboard/marketplace/internal/core/domain"
)

func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var (
		a         domain.Account
		id        int64
		role      string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, created_at
		FROM accounts WHERE email = ?`, email,
	).Scan(&id, &a.Name, &a.Email, &role, &a.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	a.ID = strconv.FormatInt(id, 10)
	a.Role = domain.Role(role)
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create relies on the UNIQUE email constraint for the uniqueness check.
func (s *Store) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (name, email, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		account.Name, account.Email, string(account.Role), account.PasswordHash, formatTime(account.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	created := *account
	created.ID = strconv.FormatInt(id, 10)
	return &created, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
