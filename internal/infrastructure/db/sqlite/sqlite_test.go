package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gigboard/marketplace/internal/core/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Accounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, &domain.Account{
		Name:         "Jane",
		Email:        "jane@example.com",
		Role:         domain.RoleClient,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id")
	}

	got, err := s.FindByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != created.ID || got.Role != domain.RoleClient || got.PasswordHash != "hash" {
		t.Fatalf("unexpected account %+v", got)
	}

	_, err = s.Create(ctx, &domain.Account{Name: "Dup", Email: "jane@example.com", Role: domain.RoleFreelancer, PasswordHash: "x"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := s.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Fatalf("want 1 account, got %d", n)
	}
}

func TestStore_JobsAndApplications(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	j1 := &domain.Job{ClientID: "2", Title: "Landing", Description: "d", Category: domain.CategoryWeb, Budget: 500, Deadline: "2024-02-01", CreatedAt: now}
	j2 := &domain.Job{ClientID: "9", Title: "Logo", Description: "d", Category: domain.CategoryDesign, Budget: 800, Deadline: "2024-02-02", CreatedAt: now}
	for _, j := range []*domain.Job{j1, j2} {
		if err := s.CreateJob(ctx, j); err != nil {
			t.Fatalf("CreateJob: %v", err)
		}
	}
	if j1.ID == j2.ID {
		t.Fatal("job ids must differ")
	}

	got, err := s.FindJobByID(ctx, j1.ID)
	if err != nil {
		t.Fatalf("FindJobByID: %v", err)
	}
	if got.Title != "Landing" || got.Budget != 500 || got.Deadline != "2024-02-01" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected job %+v", got)
	}
	if _, err := s.FindJobByID(ctx, "999"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	a1 := &domain.Application{JobID: j1.ID, FreelancerID: "1", FreelancerName: "John", CoverLetter: "c", ProposedBudget: 450, Status: domain.StatusPending, CreatedAt: now}
	a2 := &domain.Application{JobID: j1.ID, FreelancerID: "3", FreelancerName: "Val", CoverLetter: "c", ProposedBudget: 480, Status: domain.StatusPending, CreatedAt: now}
	a3 := &domain.Application{JobID: j2.ID, FreelancerID: "1", FreelancerName: "John", CoverLetter: "c", ProposedBudget: 700, Status: domain.StatusPending, CreatedAt: now}
	for _, a := range []*domain.Application{a1, a2, a3} {
		if err := s.CreateApplication(ctx, a); err != nil {
			t.Fatalf("CreateApplication: %v", err)
		}
	}

	byJob, _ := s.ListApplicationsByJob(ctx, j1.ID)
	if len(byJob) != 2 || byJob[0].ID != a1.ID || byJob[1].ID != a2.ID {
		t.Fatalf("unexpected applications for job: %+v", byJob)
	}
	byFreelancer, _ := s.ListApplicationsByFreelancer(ctx, "1")
	if len(byFreelancer) != 2 || byFreelancer[0].ID != a1.ID || byFreelancer[1].ID != a3.ID {
		t.Fatalf("unexpected applications for freelancer: %+v", byFreelancer)
	}

	updated, err := s.UpdateApplicationStatus(ctx, a1.ID, domain.StatusAccepted, false)
	if err != nil || updated.Status != domain.StatusAccepted || updated.ProposedBudget != 450 {
		t.Fatalf("UpdateApplicationStatus: %+v, %v", updated, err)
	}
	if _, err := s.UpdateApplicationStatus(ctx, "999", domain.StatusRejected, false); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
	if _, err := s.UpdateApplicationStatus(ctx, a1.ID, domain.StatusRejected, false); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for a decided application, got %v", err)
	}
	if got, _ := s.FindApplicationByID(ctx, a1.ID); got.Status != domain.StatusAccepted {
		t.Fatalf("refused decision must not be written, got %s", got.Status)
	}
	revised, err := s.UpdateApplicationStatus(ctx, a1.ID, domain.StatusRejected, true)
	if err != nil || revised.Status != domain.StatusRejected {
		t.Fatalf("revision: %+v, %v", revised, err)
	}

	clientJobs, _ := s.ListJobsByClient(ctx, "2")
	if len(clientJobs) != 1 || clientJobs[0].ID != j1.ID {
		t.Fatalf("unexpected client jobs: %+v", clientJobs)
	}
	all, _ := s.ListJobs(ctx)
	apps, _ := s.ListApplications(ctx)
	if len(all) != 2 || len(apps) != 3 {
		t.Fatalf("want 2 jobs and 3 applications, got %d and %d", len(all), len(apps))
	}
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
