// Package seed loads the demo marketplace fixture into a fresh store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

//go:embed demo.yaml
var demoFixture []byte

// Fixture is the on-disk shape of a seed file. Jobs reference their client
// by email and applications reference jobs by key, so the fixture works
// with any id scheme.
type Fixture struct {
	Accounts []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"accounts"`
	Jobs []struct {
		Key         string    `yaml:"key"`
		Client      string    `yaml:"client"`
		Title       string    `yaml:"title"`
		Description string    `yaml:"description"`
		Category    string    `yaml:"category"`
		Budget      float64   `yaml:"budget"`
		Deadline    string    `yaml:"deadline"`
		CreatedAt   time.Time `yaml:"created_at"`
	} `yaml:"jobs"`
	Applications []struct {
		Job            string    `yaml:"job"`
		Freelancer     string    `yaml:"freelancer"`
		CoverLetter    string    `yaml:"cover_letter"`
		ProposedBudget float64   `yaml:"proposed_budget"`
		CreatedAt      time.Time `yaml:"created_at"`
	} `yaml:"applications"`
}

// Demo parses the embedded demo fixture.
func Demo() (*Fixture, error) {
	return Parse(demoFixture)
}

// Parse decodes a YAML fixture.
func Parse(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: decode fixture: %w", err)
	}
	return &f, nil
}

// Load writes f into the repositories. It is a no-op when the directory
// already has accounts, so restarting against a durable backend does not
// duplicate the fixture.
func Load(ctx context.Context, f *Fixture, accounts ports.AccountRepository, jobs ports.JobRepository, log zerolog.Logger) error {
	n, err := accounts.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		log.Debug().Int("accounts", n).Msg("store already populated, skipping seed")
		return nil
	}

	byEmail := make(map[string]domain.Session, len(f.Accounts))
	for _, a := range f.Accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", a.Email, err)
		}
		created, err := accounts.Create(ctx, &domain.Account{
			Name:         a.Name,
			Email:        a.Email,
			Role:         domain.Role(a.Role),
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("seed: account %s: %w", a.Email, err)
		}
		byEmail[a.Email] = created.Session()
	}

	jobIDs := make(map[string]string, len(f.Jobs))
	for _, j := range f.Jobs {
		client, ok := byEmail[j.Client]
		if !ok {
			return fmt.Errorf("seed: job %q references unknown client %s", j.Key, j.Client)
		}
		job := &domain.Job{
			ClientID:    client.ID,
			Title:       j.Title,
			Description: j.Description,
			Category:    domain.Category(j.Category),
			Budget:      j.Budget,
			Deadline:    j.Deadline,
			CreatedAt:   j.CreatedAt.UTC(),
		}
		if err := jobs.CreateJob(ctx, job); err != nil {
			return fmt.Errorf("seed: job %q: %w", j.Key, err)
		}
		jobIDs[j.Key] = job.ID
	}

	for _, a := range f.Applications {
		jobID, ok := jobIDs[a.Job]
		if !ok {
			return fmt.Errorf("seed: application references unknown job %q", a.Job)
		}
		freelancer, ok := byEmail[a.Freelancer]
		if !ok {
			return fmt.Errorf("seed: application references unknown freelancer %s", a.Freelancer)
		}
		if err := jobs.CreateApplication(ctx, &domain.Application{
			JobID:          jobID,
			FreelancerID:   freelancer.ID,
			FreelancerName: freelancer.Name,
			CoverLetter:    a.CoverLetter,
			ProposedBudget: a.ProposedBudget,
			Status:         domain.StatusPending,
			CreatedAt:      a.CreatedAt.UTC(),
		}); err != nil {
			return fmt.Errorf("seed: application for %q: %w", a.Job, err)
		}
	}

	log.Info().
		Int("accounts", len(f.Accounts)).
		Int("jobs", len(f.Jobs)).
		Int("applications", len(f.Applications)).
		Msg("demo data seeded")
	return nil
}
