package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// JobRepository owns the job and application collections. Every List method
// returns records in insertion order.
type JobRepository interface {
	// CreateJob assigns ID and stores j.
	CreateJob(ctx context.Context, j *domain.Job) error
	// CreateApplication assigns ID and stores a.
	CreateApplication(ctx context.Context, a *domain.Application) error
	// UpdateApplicationStatus replaces the status in place and returns the
	// updated record, or domain.ErrApplicationNotFound. Unless allowRevision
	// is set, only a pending application is updated; a decided one yields
	// domain.ErrInvalidTransition. Check and write are a single atomic step.
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, allowRevision bool) (*domain.Application, error)

	FindJobByID(ctx context.Context, id string) (*domain.Job, error)
	FindApplicationByID(ctx context.Context, id string) (*domain.Application, error)

	ListJobs(ctx context.Context) ([]domain.Job, error)
	ListJobsByClient(ctx context.Context, clientID string) ([]domain.Job, error)
	ListApplications(ctx context.Context) ([]domain.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	ListApplicationsByFreelancer(ctx context.Context, freelancerID string) ([]domain.Application, error)
}
