package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/service"
)

func TestSessionStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "marketplace.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	identity := service.NewIdentityService(ctx, first, first.SessionStore(""), zerolog.Nop())
	registered, err := identity.Register(ctx, "Jane Client", "jane@example.com", "secret1", domain.RoleClient)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	restored := service.NewIdentityService(ctx, second, second.SessionStore(""), zerolog.Nop())
	cur := restored.CurrentSession()
	if cur == nil || *cur != *registered {
		t.Fatalf("expected session %+v after restart, got %+v", registered, cur)
	}

	if err := restored.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got, err := second.SessionStore("").Load(ctx); err != nil || got != nil {
		t.Fatalf("slot must be empty after logout, got (%+v, %v)", got, err)
	}
}

func TestSessionStore_Slot(t *testing.T) {
	s := openTestStore(t)
	slot := s.SessionStore("user")
	ctx := context.Background()

	if got, err := slot.Load(ctx); err != nil || got != nil {
		t.Fatalf("empty slot: want (nil, nil), got (%+v, %v)", got, err)
	}

	john := domain.Session{ID: "1", Name: "John", Email: "john@example.com", Role: domain.RoleFreelancer}
	jane := domain.Session{ID: "2", Name: "Jane", Email: "jane@example.com", Role: domain.RoleClient}
	for _, sess := range []domain.Session{john, jane} {
		if err := slot.Save(ctx, sess); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if got, err := slot.Load(ctx); err != nil || *got != jane {
		t.Fatalf("the last save must win, got (%+v, %v)", got, err)
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}

	for _, raw := range []string{`{"id":`, `{"id":"","role":"client"}`, `{"id":"2","role":"admin"}`} {
		if _, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO session_slot (key, value, updated_at) VALUES ('user', ?, '')", raw); err != nil {
			t.Fatalf("seed slot: %v", err)
		}
		if got, err := slot.Load(ctx); err == nil || got != nil {
			t.Fatalf("%s: expected a decode error, got (%+v, %v)", raw, got, err)
		}
	}
}
