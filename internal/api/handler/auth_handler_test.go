package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gigboard/marketplace/internal/core/domain"
)

type stubIdentityService struct {
	loginFn    func(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error)
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) (*domain.Session, error)
	logoutErr  error
	current    *domain.Session
}

func (s *stubIdentityService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	return s.loginFn(ctx, email, password, role)
}

func (s *stubIdentityService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Session, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubIdentityService) Logout(context.Context) error {
	s.current = nil
	return s.logoutErr
}

func (s *stubIdentityService) CurrentSession() *domain.Session {
	return s.current
}

type stubIssuer struct {
	err error
}

func (i stubIssuer) Issue(session domain.Session) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "token-for-" + session.ID, nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(_ context.Context, name, email, password string, role domain.Role) (*domain.Session, error) {
			if name != "Ana" || email != "ana@example.com" || role != domain.RoleFreelancer {
				t.Fatalf("unexpected args: %s %s %s", name, email, role)
			}
			return &domain.Session{ID: "4", Name: name, Email: email, Role: role}, nil
		},
	}
	h := NewAuthHandler(stub, stubIssuer{})

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret1","role":"freelancer"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	resp := decode(t, rec)
	if resp["token"] != "token-for-4" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	session, ok := resp["session"].(map[string]any)
	if !ok || session["id"] != "4" || session["role"] != "freelancer" {
		t.Fatalf("unexpected session payload: %+v", resp["session"])
	}
	if _, leaked := session["password"]; leaked {
		t.Fatal("credential must not be returned")
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(context.Context, string, string, string, domain.Role) (*domain.Session, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, stubIssuer{})

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret1","role":"client"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusConflict)
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	h := NewAuthHandler(&stubIdentityService{}, stubIssuer{})

	c, rec := newContext(http.MethodPost, "/auth/register", `{"name":"Ana","email":"not-an-email","password":"x","role":"admin"}`, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(_ context.Context, email, password string, role domain.Role) (*domain.Session, error) {
			return &domain.Session{ID: "2", Name: "Jane", Email: email, Role: role}, nil
		},
	}
	h := NewAuthHandler(stub, stubIssuer{})

	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"password","role":"client"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if decode(t, rec)["token"] != "token-for-2" {
		t.Fatal("expected token in response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(context.Context, string, string, domain.Role) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, stubIssuer{})

	// An empty body still reaches the service so every failure looks the same.
	c, rec := newContext(http.MethodPost, "/auth/login", `{}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusUnauthorized)
	if decode(t, rec)["error"] != "invalid credentials" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_TokenFailure(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(context.Context, string, string, domain.Role) (*domain.Session, error) {
			return &domain.Session{ID: "2", Role: domain.RoleClient}, nil
		},
	}
	h := NewAuthHandler(stub, stubIssuer{err: errors.New("sign failed")})

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"a","password":"b","role":"client"}`, nil)
	if err := h.Login(c); err == nil {
		t.Fatal("expected error to propagate to the central handler")
	}
}

func TestAuthHandler_LogoutAndSession(t *testing.T) {
	stub := &stubIdentityService{current: &domain.Session{ID: "1", Name: "John", Email: "john@example.com", Role: domain.RoleFreelancer}}
	h := NewAuthHandler(stub, stubIssuer{})

	c, rec := newContext(http.MethodGet, "/auth/session", "", nil)
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	session, ok := decode(t, rec)["session"].(map[string]any)
	if !ok || session["id"] != "1" {
		t.Fatalf("unexpected session: %s", rec.Body.String())
	}

	c, rec = newContext(http.MethodPost, "/auth/logout", "", nil)
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusNoContent)

	c, rec = newContext(http.MethodGet, "/auth/session", "", nil)
	_ = h.Session(c)
	if decode(t, rec)["session"] != nil {
		t.Fatalf("expected null session, got %s", rec.Body.String())
	}
}
