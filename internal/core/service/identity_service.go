package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so that a miss
// costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// IdentityService implements login, registration and the single current
// session of the instance.
type IdentityService struct {
	accounts ports.AccountRepository
	sessions ports.SessionStore
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	current *domain.Session
}

// NewIdentityService builds the service and restores the persisted session.
// A missing or unreadable slot starts the instance logged out.
func NewIdentityService(ctx context.Context, accounts ports.AccountRepository, sessions ports.SessionStore, log zerolog.Logger) *IdentityService {
	s := &IdentityService{
		accounts: accounts,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}

	restored, err := sessions.Load(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("discarding unreadable persisted session")
	case restored != nil:
		s.current = restored
		log.Info().Str("account_id", restored.ID).Str("role", string(restored.Role)).Msg("session restored")
	}
	return s
}

// Login authenticates against the directory. Email and role must match
// exactly; any mismatch yields domain.ErrInvalidCredentials. A successful
// login replaces whatever session was active.
func (s *IdentityService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if account.Role != role {
		return nil, domain.ErrInvalidCredentials
	}

	session := account.Session()
	s.setSession(ctx, &session)
	s.log.Info().Str("account_id", session.ID).Str("role", string(session.Role)).Msg("login")
	return &session, nil
}

// Register adds an account to the directory and makes it the current session.
func (s *IdentityService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Session, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.accounts.Create(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	session := created.Session()
	s.setSession(ctx, &session)
	s.log.Info().Str("account_id", session.ID).Str("role", string(session.Role)).Msg("account registered")
	return &session, nil
}

// Logout clears the current session. Calling it with no session is a no-op.
// A slot that cannot be cleared is logged; the session is gone regardless.
func (s *IdentityService) Logout(ctx context.Context) error {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	if had {
		s.log.Info().Msg("logout")
	}
	return nil
}

// CurrentSession returns a copy of the active session, or nil.
func (s *IdentityService) CurrentSession() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	clone := *s.current
	return &clone
}

// setSession swaps the in-memory session and persists it. Persistence is
// best effort: the in-memory session is authoritative for this process.
func (s *IdentityService) setSession(ctx context.Context, session *domain.Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	if err := s.sessions.Save(ctx, *session); err != nil {
		s.log.Warn().Err(err).Str("account_id", session.ID).Msg("failed to persist session")
	}
}
