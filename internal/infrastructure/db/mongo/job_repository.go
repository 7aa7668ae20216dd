package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

const collectionJobs = "jobs"

// JobRepository implements ports.JobRepository using MongoDB.
type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoJob struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Title           string               `bson:"title"`
	Company         string               `bson:"company"`
	Location        string               `bson:"location"`
	Description     string               `bson:"description"`
	Requirements    []string             `bson:"requirements"`
	Salary          domain.Salary        `bson:"salary"`
	JobType         string               `bson:"job_type"`
	ExperienceLevel string               `bson:"experience_level"`
	Status          string               `bson:"status"`
	PostedBy        primitive.ObjectID   `bson:"posted_by"`
	Applicants      []primitive.ObjectID `bson:"applicants"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

func (mj *mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:              mj.ID.Hex(),
		Title:           mj.Title,
		Company:         mj.Company,
		Location:        mj.Location,
		Description:     mj.Description,
		Requirements:    mj.Requirements,
		Salary:          mj.Salary,
		JobType:         domain.JobType(mj.JobType),
		ExperienceLevel: domain.ExperienceLevel(mj.ExperienceLevel),
		Status:          domain.JobStatus(mj.Status),
		PostedBy:        mj.PostedBy.Hex(),
		Applicants:      hexIDs(mj.Applicants),
		CreatedAt:       mj.CreatedAt.UTC(),
		UpdatedAt:       mj.UpdatedAt.UTC(),
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	owner, err := objectID(job.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("create job: posted_by: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Salary:          job.Salary,
		JobType:         string(job.JobType),
		ExperienceLevel: string(job.ExperienceLevel),
		Status:          string(job.Status),
		PostedBy:        owner,
		Applicants:      objectIDs(job.Applicants),
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// List returns the jobs matching filter, newest first.
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, buildJobFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoJob
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(docs))
	for i := range docs {
		jobs = append(jobs, docs[i].toDomain())
	}
	return jobs, nil
}

// buildJobFilter translates a domain filter into a Mongo query. Search uses
// the text index over title, company and description.
func buildJobFilter(f domain.JobFilter) bson.M {
	q := bson.M{}
	if f.Search != "" {
		q["$text"] = bson.M{"$search": f.Search}
	}
	if f.Location != "" {
		q["location"] = f.Location
	}
	if f.JobType != "" {
		q["job_type"] = string(f.JobType)
	}
	if f.ExperienceLevel != "" {
		q["experience_level"] = string(f.ExperienceLevel)
	}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	if f.MinSalary != nil {
		q["salary.min"] = bson.M{"$gte": *f.MinSalary}
	}
	if f.PostedBy != "" {
		if oid, err := primitive.ObjectIDFromHex(f.PostedBy); err == nil {
			q["posted_by"] = oid
		} else {
			q["posted_by"] = primitive.NilObjectID
		}
	}
	return q
}

// Replace overwrites the mutable fields. posted_by, applicants and
// created_at are never written here.
func (r *JobRepository) Replace(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	oid, err := objectID(job.ID)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":            job.Title,
		"company":          job.Company,
		"location":         job.Location,
		"description":      job.Description,
		"requirements":     job.Requirements,
		"salary":           job.Salary,
		"job_type":         string(job.JobType),
		"experience_level": string(job.ExperienceLevel),
		"status":           string(job.Status),
		"updated_at":       job.UpdatedAt,
	}

	var mj mongoJob
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("replace job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// AddApplicant appends userID in a single conditional update so two
// concurrent applications by the same user cannot both succeed.
func (r *JobRepository) AddApplicant(ctx context.Context, jobID, userID string) error {
	jid, err := objectID(jobID)
	if err != nil {
		return domain.ErrJobNotFound
	}
	uid, err := objectID(userID)
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": jid, "applicants": bson.M{"$ne": uid}}
	update := bson.M{
		"$addToSet": bson.M{"applicants": uid},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the job is gone or the user is already in.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": jid})
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}
	if n == 0 {
		return domain.ErrJobNotFound
	}
	return domain.ErrAlreadyApplied
}

// EnsureIndexes creates the text index used by search and the filter index.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "company", Value: "text"},
			{Key: "description", Value: "text"},
		}},
		{Keys: bson.D{
			{Key: "location", Value: 1},
			{Key: "job_type", Value: 1},
			{Key: "experience_level", Value: 1},
		}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
