package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigboard/marketplace/internal/core/domain"
)

const (
	jobsCollection         = "jobs"
	applicationsCollection = "applications"
)

// JobRepository stores jobs and applications in two collections. Reads sort
// on the seq field so results come back in insertion order.
type JobRepository struct {
	jobs     *mongo.Collection
	apps     *mongo.Collection
	jobSeq   sequence
	appSeq   sequence
	bySeqAsc *options.FindOptions
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{
		jobs:     db.Collection(jobsCollection),
		apps:     db.Collection(applicationsCollection),
		jobSeq:   newSequence(db, jobsCollection),
		appSeq:   newSequence(db, applicationsCollection),
		bySeqAsc: options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}),
	}
}

type jobDoc struct {
	ID          string    `bson:"_id"`
	Seq         int64     `bson:"seq"`
	ClientID    string    `bson:"client_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Category    string    `bson:"category"`
	Budget      float64   `bson:"budget"`
	Deadline    string    `bson:"deadline"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d jobDoc) toDomain() domain.Job {
	return domain.Job{
		ID:          d.ID,
		ClientID:    d.ClientID,
		Title:       d.Title,
		Description: d.Description,
		Category:    domain.Category(d.Category),
		Budget:      d.Budget,
		Deadline:    d.Deadline,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type applicationDoc struct {
	ID             string    `bson:"_id"`
	Seq            int64     `bson:"seq"`
	JobID          string    `bson:"job_id"`
	FreelancerID   string    `bson:"freelancer_id"`
	FreelancerName string    `bson:"freelancer_name"`
	CoverLetter    string    `bson:"cover_letter"`
	ProposedBudget float64   `bson:"proposed_budget"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (d applicationDoc) toDomain() domain.Application {
	return domain.Application{
		ID:             d.ID,
		JobID:          d.JobID,
		FreelancerID:   d.FreelancerID,
		FreelancerName: d.FreelancerName,
		CoverLetter:    d.CoverLetter,
		ProposedBudget: d.ProposedBudget,
		Status:         domain.ApplicationStatus(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

func (r *JobRepository) CreateJob(ctx context.Context, j *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, id, err := r.jobSeq.next(ctx)
	if err != nil {
		return err
	}

	doc := jobDoc{
		ID:          id,
		Seq:         seq,
		ClientID:    j.ClientID,
		Title:       j.Title,
		Description: j.Description,
		Category:    string(j.Category),
		Budget:      j.Budget,
		Deadline:    j.Deadline,
		CreatedAt:   j.CreatedAt,
	}
	if _, err := r.jobs.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	j.ID = id
	return nil
}

func (r *JobRepository) CreateApplication(ctx context.Context, a *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, id, err := r.appSeq.next(ctx)
	if err != nil {
		return err
	}

	doc := applicationDoc{
		ID:             id,
		Seq:            seq,
		JobID:          a.JobID,
		FreelancerID:   a.FreelancerID,
		FreelancerName: a.FreelancerName,
		CoverLetter:    a.CoverLetter,
		ProposedBudget: a.ProposedBudget,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
	if _, err := r.apps.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	a.ID = id
	return nil
}

// UpdateApplicationStatus sets the status atomically and returns the new
// document. Without allowRevision the filter only matches a pending
// application, so the check and the write happen in one server operation.
func (r *JobRepository) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, allowRevision bool) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDoc
	err := r.apps.FindOneAndUpdate(ctx,
		decisionFilter(id, allowRevision),
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("update application: %w", err)
		}
		if allowRevision {
			return nil, domain.ErrApplicationNotFound
		}
		n, cerr := r.apps.CountDocuments(ctx, bson.M{"_id": id})
		if cerr != nil {
			return nil, fmt.Errorf("update application: %w", cerr)
		}
		if n == 0 {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("%w (to %s)", domain.ErrInvalidTransition, status)
	}
	app := doc.toDomain()
	return &app, nil
}

// decisionFilter matches the application by id and, unless a decision may
// be revised, only while it is still pending.
func decisionFilter(id string, allowRevision bool) bson.M {
	filter := bson.M{"_id": id}
	if !allowRevision {
		filter["status"] = string(domain.StatusPending)
	}
	return filter
}

func (r *JobRepository) FindJobByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDoc
	if err := r.jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	job := doc.toDomain()
	return &job, nil
}

func (r *JobRepository) FindApplicationByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDoc
	if err := r.apps.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	app := doc.toDomain()
	return &app, nil
}

func (r *JobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return r.findJobs(ctx, bson.M{})
}

func (r *JobRepository) ListJobsByClient(ctx context.Context, clientID string) ([]domain.Job, error) {
	return r.findJobs(ctx, bson.M{"client_id": clientID})
}

func (r *JobRepository) ListApplications(ctx context.Context) ([]domain.Application, error) {
	return r.findApplications(ctx, bson.M{})
}

func (r *JobRepository) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return r.findApplications(ctx, bson.M{"job_id": jobID})
}

func (r *JobRepository) ListApplicationsByFreelancer(ctx context.Context, freelancerID string) ([]domain.Application, error) {
	return r.findApplications(ctx, bson.M{"freelancer_id": freelancerID})
}

func (r *JobRepository) findJobs(ctx context.Context, filter bson.M) ([]domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.jobs.Find(ctx, filter, r.bySeqAsc)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	var docs []jobDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	out := make([]domain.Job, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *JobRepository) findApplications(ctx context.Context, filter bson.M) ([]domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.apps.Find(ctx, filter, r.bySeqAsc)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	var docs []applicationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	out := make([]domain.Application, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the lookup indexes used by the List queries.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.jobs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "seq", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("job indexes: %w", err)
	}

	_, err := r.apps.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "freelancer_id", Value: 1}, {Key: "seq", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("application indexes: %w", err)
	}
	return nil
}
