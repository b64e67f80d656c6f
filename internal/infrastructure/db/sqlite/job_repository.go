package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/gigboard/marketplace/internal/core/domain"
)

const (
	jobColumns         = "id, client_id, title, description, category, budget, deadline, created_at"
	applicationColumns = "id, job_id, freelancer_id, freelancer_name, cover_letter, proposed_budget, status, created_at"
)

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateJob(ctx context.Context, j *domain.Job) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (client_id, title, description, category, budget, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.ClientID, j.Title, j.Description, string(j.Category), j.Budget, j.Deadline, formatTime(j.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	j.ID = strconv.FormatInt(id, 10)
	return nil
}

func (s *Store) CreateApplication(ctx context.Context, a *domain.Application) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (job_id, freelancer_id, freelancer_name, cover_letter, proposed_budget, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.JobID, a.FreelancerID, a.FreelancerName, a.CoverLetter, a.ProposedBudget, string(a.Status), formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	a.ID = strconv.FormatInt(id, 10)
	return nil
}

// UpdateApplicationStatus is a single conditional UPDATE, so two concurrent
// decisions on a pending application cannot both succeed.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, allowRevision bool) (*domain.Application, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE applications SET status = ? WHERE id = ? AND (status = ? OR ?)",
		string(status), id, string(domain.StatusPending), allowRevision,
	)
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	if n == 0 {
		current, err := s.FindApplicationByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, status)
	}
	return s.FindApplicationByID(ctx, id)
}

func (s *Store) FindJobByID(ctx context.Context, id string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &j, nil
}

func (s *Store) FindApplicationByID(ctx context.Context, id string) (*domain.Application, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+applicationColumns+" FROM applications WHERE id = ?", id)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &a, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.queryJobs(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY id ASC")
}

func (s *Store) ListJobsByClient(ctx context.Context, clientID string) ([]domain.Job, error) {
	return s.queryJobs(ctx, "SELECT "+jobColumns+" FROM jobs WHERE client_id = ? ORDER BY id ASC", clientID)
}

func (s *Store) ListApplications(ctx context.Context) ([]domain.Application, error) {
	return s.queryApplications(ctx, "SELECT "+applicationColumns+" FROM applications ORDER BY id ASC")
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return s.queryApplications(ctx, "SELECT "+applicationColumns+" FROM applications WHERE job_id = ? ORDER BY id ASC", jobID)
}

func (s *Store) ListApplicationsByFreelancer(ctx context.Context, freelancerID string) ([]domain.Application, error) {
	return s.queryApplications(ctx, "SELECT "+applicationColumns+" FROM applications WHERE freelancer_id = ? ORDER BY id ASC", freelancerID)
}

func (s *Store) queryJobs(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) queryApplications(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func scanJob(row scanner) (domain.Job, error) {
	var (
		j         domain.Job
		id        int64
		category  string
		createdAt string
	)
	if err := row.Scan(&id, &j.ClientID, &j.Title, &j.Description, &category, &j.Budget, &j.Deadline, &createdAt); err != nil {
		return domain.Job{}, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return domain.Job{}, err
	}
	j.ID = strconv.FormatInt(id, 10)
	j.Category = domain.Category(category)
	j.CreatedAt = created
	return j, nil
}

func scanApplication(row scanner) (domain.Application, error) {
	var (
		a         domain.Application
		id        int64
		status    string
		createdAt string
	)
	if err := row.Scan(&id, &a.JobID, &a.FreelancerID, &a.FreelancerName, &a.CoverLetter, &a.ProposedBudget, &status, &createdAt); err != nil {
		return domain.Application{}, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return domain.Application{}, err
	}
	a.ID = strconv.FormatInt(id, 10)
	a.Status = domain.ApplicationStatus(status)
	a.CreatedAt = created
	return a, nil
}
