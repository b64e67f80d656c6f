package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// PostJobInput carries the fields a client supplies for a new job.
type PostJobInput struct {
	ClientID    string
	Title       string
	Description string
	Category    domain.Category
	Budget      float64
	Deadline    string
}

// ApplyInput carries a freelancer's proposal.
type ApplyInput struct {
	JobID          string
	FreelancerID   string
	FreelancerName string
	CoverLetter    string
	ProposedBudget float64
}

// ClientJobOverview is one row of the client dashboard.
type ClientJobOverview struct {
	Job          domain.Job
	Applications int
	Pending      int
}

// FreelancerOverview is the freelancer dashboard: own applications and their tally.
type FreelancerOverview struct {
	Applications []domain.Application
	Tally        domain.StatusTally
}

// JobService defines the job and application use cases.
type JobService interface {
	PostJob(ctx context.Context, in PostJobInput) (*domain.Job, error)
	Apply(ctx context.Context, in ApplyInput) (*domain.Application, error)
	SetApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) (*domain.Application, error)

	JobByID(ctx context.Context, id string) (*domain.Job, error)
	ApplicationByID(ctx context.Context, id string) (*domain.Application, error)
	ApplicationsForJob(ctx context.Context, jobID string) ([]domain.Application, error)
	ApplicationsForFreelancer(ctx context.Context, freelancerID string) ([]domain.Application, error)
	JobsForClient(ctx context.Context, clientID string) ([]domain.Job, error)
	AllJobs(ctx context.Context) ([]domain.Job, error)
	AllApplications(ctx context.Context) ([]domain.Application, error)

	SearchJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ClientOverview(ctx context.Context, clientID string) ([]ClientJobOverview, error)
	FreelancerOverview(ctx context.Context, freelancerID string) (*FreelancerOverview, error)
}
