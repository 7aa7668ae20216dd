package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// JobRepository defines persistence for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns jobs matching filter, newest first.
	List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	// Replace overwrites the mutable fields of an existing job.
	Replace(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	// AddApplicant atomically appends userID to the job's applicants.
	// Returns domain.ErrAlreadyApplied when userID is already present.
	AddApplicant(ctx context.Context, jobID, userID string) error
}
