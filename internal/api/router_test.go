package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/api/middleware"
	"github.com/gigboard/marketplace/internal/core/ports"
	"github.com/gigboard/marketplace/internal/core/service"
	"github.com/gigboard/marketplace/internal/infrastructure/db/memory"
)

const testSecret = "router-test-secret"

type directQueue struct {
	svc ports.MessageService
}

func (q directQueue) Enqueue(msg ports.SendMessageInput) {
	_, _ = q.svc.Deliver(context.Background(), msg)
}

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	identity := service.NewIdentityService(ctx, memory.NewAccountRepository(), memory.NewSessionStore(), log)
	jobs := service.NewJobService(memory.NewJobRepository(), service.JobOptions{AllowDecisionChanges: true}, log)
	messages := service.NewMessageService(memory.NewMessageRepository(), log)
	reg := prometheus.NewRegistry()

	e := NewRouter(Deps{
		Identity:   identity,
		Jobs:       jobs,
		Messages:   messages,
		Queue:      directQueue{svc: messages},
		Tokens:     middleware.NewTokenIssuer(testSecret, time.Hour),
		JWTSecret:  testSecret,
		Registerer: reg,
		Gatherer:   reg,
		Log:        log,
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	req, _ := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (s *testServer) register(name, email, role string) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/auth/register", "",
		`{"name":"`+name+`","email":"`+email+`","password":"password","role":"`+role+`"}`)
	if code != http.StatusCreated {
		s.t.Fatalf("register %s: %d %v", email, code, body)
	}
	return body["token"].(string)
}

func TestRouter_MarketplaceFlow(t *testing.T) {
	s := newTestServer(t)

	clientTok := s.register("Jane Client", "jane@example.com", "client")
	freelancerTok := s.register("John Freelancer", "john@example.com", "freelancer")

	code, job := s.do(http.MethodPost, "/v1/jobs", clientTok,
		`{"title":"Landing page","description":"Responsive","category":"web","budget":500,"deadline":"2024-12-31"}`)
	if code != http.StatusCreated {
		t.Fatalf("post job: %d %v", code, job)
	}
	jobID := job["id"].(string)

	// Role gating.
	if code, _ := s.do(http.MethodPost, "/v1/jobs", freelancerTok,
		`{"title":"x","description":"y","category":"web","budget":1,"deadline":"2024-12-31"}`); code != http.StatusForbidden {
		t.Fatalf("freelancer posting a job: want 403, got %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/v1/jobs", "", `{}`); code != http.StatusUnauthorized {
		t.Fatalf("anonymous post: want 401, got %d", code)
	}

	code, app := s.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", freelancerTok,
		`{"cover_letter":"Five years of experience","proposed_budget":450}`)
	if code != http.StatusCreated {
		t.Fatalf("apply: %d %v", code, app)
	}
	appID := app["id"].(string)

	code, decided := s.do(http.MethodPatch, "/v1/applications/"+appID, clientTok, `{"status":"accepted"}`)
	if code != http.StatusOK || decided["status"] != "accepted" || decided["proposed_budget"].(float64) != 450 {
		t.Fatalf("decide: %d %v", code, decided)
	}

	code, mine := s.do(http.MethodGet, "/v1/me/applications", freelancerTok, "")
	if code != http.StatusOK {
		t.Fatalf("my applications: %d", code)
	}
	data := mine["data"].([]any)
	if len(data) != 1 || data[0].(map[string]any)["status"] != "accepted" {
		t.Fatalf("freelancer view: %v", mine)
	}

	code, list := s.do(http.MethodGet, "/v1/jobs?category=design&min_budget=0&max_budget=600", "", "")
	if code != http.StatusOK || list["total"].(float64) != 0 {
		t.Fatalf("search: %d %v", code, list)
	}

	code, _ = s.do(http.MethodPatch, "/v1/applications/999", clientTok, `{"status":"rejected"}`)
	if code != http.StatusNotFound {
		t.Fatalf("unknown application: want 404, got %d", code)
	}
}

func TestRouter_AuthErrors(t *testing.T) {
	s := newTestServer(t)
	s.register("Jane", "jane@example.com", "client")

	code, body := s.do(http.MethodPost, "/auth/register", "",
		`{"name":"Other","email":"jane@example.com","password":"password","role":"freelancer"}`)
	if code != http.StatusConflict {
		t.Fatalf("duplicate email: want 409, got %d %v", code, body)
	}

	code, body = s.do(http.MethodPost, "/auth/login", "",
		`{"email":"jane@example.com","password":"password","role":"freelancer"}`)
	if code != http.StatusUnauthorized || body["error"] != "invalid credentials" {
		t.Fatalf("role mismatch: %d %v", code, body)
	}

	code, body = s.do(http.MethodGet, "/auth/session", "", "")
	if code != http.StatusOK || body["session"] == nil {
		t.Fatalf("session after register: %d %v", code, body)
	}

	code, _ = s.do(http.MethodPost, "/auth/logout", "", "")
	if code != http.StatusNoContent {
		t.Fatalf("logout: want 204, got %d", code)
	}

	code, body = s.do(http.MethodGet, "/v1/conversations", "not-a-token", "")
	if code != http.StatusUnauthorized || body["error"] != "invalid token" {
		t.Fatalf("bad token: %d %v", code, body)
	}

	code, _ = s.do(http.MethodGet, "/no/such/route", "", "")
	if code != http.StatusNotFound {
		t.Fatalf("unknown route: want 404, got %d", code)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.do(http.MethodGet, "/health", "", ""); code != http.StatusOK {
		t.Fatalf("/health: %d", code)
	}
	if code, body := s.do(http.MethodGet, "/health/ready", "", ""); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("/health/ready: %d %v", code, body)
	}

	resp, err := http.Get(s.srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("/metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics: %d", resp.StatusCode)
	}
}
