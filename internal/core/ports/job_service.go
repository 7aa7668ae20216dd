package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// ApplicationNotice tells a job owner that someone applied.
type ApplicationNotice struct {
	JobID       string
	JobTitle    string
	OwnerID     string
	ApplicantID string
	Applicant   string
}

// NoticeQueue accepts application notices for asynchronous delivery.
type NoticeQueue interface {
	Enqueue(notice ApplicationNotice)
}

// NoticeService delivers a single application notice.
type NoticeService interface {
	Deliver(ctx context.Context, notice ApplicationNotice) error
}

// JobService defines use-case operations for job postings.
type JobService interface {
	ListJobs(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, caller domain.Identity, job *domain.Job) (*domain.Job, error)
	UpdateJob(ctx context.Context, caller domain.Identity, id string, update domain.JobUpdate) (*domain.Job, error)
	DeleteJob(ctx context.Context, caller domain.Identity, id string) error
	Apply(ctx context.Context, caller domain.Identity, id string) error
	MatchJobs(ctx context.Context, caller domain.Identity, limit int) ([]domain.JobMatch, error)
}
