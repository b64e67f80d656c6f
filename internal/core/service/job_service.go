package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// JobOptions tunes JobService behaviour.
type JobOptions struct {
	// AllowDecisionChanges lets a client flip an already accepted or
	// rejected application. When false, only pending applications can be
	// decided.
	AllowDecisionChanges bool
}

type JobService struct {
	repo ports.JobRepository
	opts JobOptions
	log  zerolog.Logger
	now  func() time.Time
}

func NewJobService(repo ports.JobRepository, opts JobOptions, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, opts: opts, log: log, now: time.Now}
}

// PostJob stores a new job. Field validation is the caller's job.
func (s *JobService) PostJob(ctx context.Context, in ports.PostJobInput) (*domain.Job, error) {
	job := &domain.Job{
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Budget:      in.Budget,
		Deadline:    in.Deadline,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		s.log.Error().Err(err).Str("client_id", in.ClientID).Msg("failed to create job")
		return nil, fmt.Errorf("post job: %w", err)
	}

	s.log.Info().Str("job_id", job.ID).Str("client_id", job.ClientID).Str("category", string(job.Category)).Msg("job posted")
	return job, nil
}

// Apply records a pending application. The job is not looked up and repeat
// applications by the same freelancer are accepted.
func (s *JobService) Apply(ctx context.Context, in ports.ApplyInput) (*domain.Application, error) {
	app := &domain.Application{
		JobID:          in.JobID,
		FreelancerID:   in.FreelancerID,
		FreelancerName: in.FreelancerName,
		CoverLetter:    in.CoverLetter,
		ProposedBudget: in.ProposedBudget,
		Status:         domain.StatusPending,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		s.log.Error().Err(err).Str("job_id", in.JobID).Msg("failed to create application")
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.log.Info().Str("application_id", app.ID).Str("job_id", app.JobID).Str("freelancer_id", app.FreelancerID).Msg("application submitted")
	return app, nil
}

// SetApplicationStatus records a client decision on an application.
func (s *JobService) SetApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.IsDecision() {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := s.repo.UpdateApplicationStatus(ctx, applicationID, status, s.opts.AllowDecisionChanges)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("application_id", applicationID).
		Str("status", string(status)).
		Msg("application decided")
	return updated, nil
}

func (s *JobService) JobByID(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindJobByID(ctx, id)
}

func (s *JobService) ApplicationByID(ctx context.Context, id string) (*domain.Application, error) {
	return s.repo.FindApplicationByID(ctx, id)
}

func (s *JobService) ApplicationsForJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return s.repo.ListApplicationsByJob(ctx, jobID)
}

func (s *JobService) ApplicationsForFreelancer(ctx context.Context, freelancerID string) ([]domain.Application, error) {
	return s.repo.ListApplicationsByFreelancer(ctx, freelancerID)
}

func (s *JobService) JobsForClient(ctx context.Context, clientID string) ([]domain.Job, error) {
	return s.repo.ListJobsByClient(ctx, clientID)
}

func (s *JobService) AllJobs(ctx context.Context) ([]domain.Job, error) {
	return s.repo.ListJobs(ctx)
}

func (s *JobService) AllApplications(ctx context.Context) ([]domain.Application, error) {
	return s.repo.ListApplications(ctx)
}

// SearchJobs applies filter over a fresh snapshot of all jobs.
func (s *JobService) SearchJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return domain.FilterJobs(jobs, filter), nil
}

// ClientOverview lists the client's jobs with their application counts.
func (s *JobService) ClientOverview(ctx context.Context, clientID string) ([]ports.ClientJobOverview, error) {
	jobs, err := s.repo.ListJobsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client overview: %w", err)
	}
	apps, err := s.repo.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("client overview: %w", err)
	}

	byJob := make(map[string][]domain.Application, len(jobs))
	for _, a := range apps {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}

	out := make([]ports.ClientJobOverview, 0, len(jobs))
	for _, j := range jobs {
		tally := domain.TallyStatuses(byJob[j.ID])
		out = append(out, ports.ClientJobOverview{
			Job:          j,
			Applications: tally.Total(),
			Pending:      tally.Pending,
		})
	}
	return out, nil
}

// FreelancerOverview returns the freelancer's applications and their tally.
func (s *JobService) FreelancerOverview(ctx context.Context, freelancerID string) (*ports.FreelancerOverview, error) {
	apps, err := s.repo.ListApplicationsByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("freelancer overview: %w", err)
	}
	return &ports.FreelancerOverview{
		Applications: apps,
		Tally:        domain.TallyStatuses(apps),
	}, nil
}
