package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/api/middleware"
	"github.com/gigboard/marketplace/internal/core/domain"
)

// newContext builds an echo context for a JSON request. who, when non-nil,
// is injected the way the Auth middleware would.
func newContext(method, target, body string, who *identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if who != nil {
		c.Set(middleware.CtxAccountID, who.ID)
		c.Set(middleware.CtxName, who.Name)
		c.Set(middleware.CtxRole, string(who.Role))
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

var (
	clientJane     = &identity{ID: "2", Name: "Jane Client", Role: domain.RoleClient}
	freelancerJohn = &identity{ID: "1", Name: "John Freelancer", Role: domain.RoleFreelancer}
)

func TestCtxIdentity_MissingClaims(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/", "", nil)
	_, err := ctxIdentity(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&postJobRequest{Title: "", Category: "gaming", Budget: -1, Deadline: "31/12/2024", Description: "d"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"title is required", "category must be one of", "budget must be greater than 0", "deadline must be a date"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
