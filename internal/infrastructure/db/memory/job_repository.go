package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// JobRepository keeps jobs and applications in insertion-ordered slices.
// Ids come from per-collection counters, never from collection length.
type JobRepository struct {
	mu     sync.RWMutex
	jobs   []domain.Job
	apps   []domain.Application
	jobSeq uint64
	appSeq uint64
}

func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

func (r *JobRepository) CreateJob(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobSeq++
	j.ID = strconv.FormatUint(r.jobSeq, 10)
	r.jobs = append(r.jobs, *j)
	return nil
}

func (r *JobRepository) CreateApplication(_ context.Context, a *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appSeq++
	a.ID = strconv.FormatUint(r.appSeq, 10)
	r.apps = append(r.apps, *a)
	return nil
}

func (r *JobRepository) UpdateApplicationStatus(_ context.Context, id string, status domain.ApplicationStatus, allowRevision bool) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.apps {
		if r.apps[i].ID == id {
			if !r.apps[i].Status.CanTransitionTo(status, allowRevision) {
				return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, r.apps[i].Status, status)
			}
			r.apps[i].Status = status
			clone := r.apps[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *JobRepository) FindJobByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *JobRepository) FindApplicationByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.apps {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *JobRepository) ListJobs(_ context.Context) ([]domain.Job, error) {
	return r.jobsWhere(func(domain.Job) bool { return true }), nil
}

func (r *JobRepository) ListJobsByClient(_ context.Context, clientID string) ([]domain.Job, error) {
	return r.jobsWhere(func(j domain.Job) bool { return j.ClientID == clientID }), nil
}

func (r *JobRepository) ListApplications(_ context.Context) ([]domain.Application, error) {
	return r.appsWhere(func(domain.Application) bool { return true }), nil
}

func (r *JobRepository) ListApplicationsByJob(_ context.Context, jobID string) ([]domain.Application, error) {
	return r.appsWhere(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r *JobRepository) ListApplicationsByFreelancer(_ context.Context, freelancerID string) ([]domain.Application, error) {
	return r.appsWhere(func(a domain.Application) bool { return a.FreelancerID == freelancerID }), nil
}

func (r *JobRepository) jobsWhere(keep func(domain.Job) bool) []domain.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out
}

func (r *JobRepository) appsWhere(keep func(domain.Application) bool) []domain.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Application, 0, len(r.apps))
	for _, a := range r.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
