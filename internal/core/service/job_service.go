package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

const defaultMatchLimit = 3

type JobService struct {
	jobs    ports.JobRepository
	users   ports.UserRepository
	notices ports.NoticeQueue
	logger  zerolog.Logger
	now     func() time.Time
}

// NewJobService wires the job use cases. notices may be nil, in which case no
// application notices are sent.
func NewJobService(jobs ports.JobRepository, users ports.UserRepository, notices ports.NoticeQueue, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, notices: notices, logger: logger, now: time.Now}
}

func (s *JobService) ListJobs(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.jobs.List(ctx, filter)
}

func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

// CreateJob stores a new posting owned by the caller.
func (s *JobService) CreateJob(ctx context.Context, caller domain.Identity, job *domain.Job) (*domain.Job, error) {
	if !caller.HasRole(domain.RoleEmployer, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	now := s.now().UTC()
	job.ID = ""
	job.PostedBy = caller.ID
	job.Applicants = nil
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Normalize()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", created.ID).Str("posted_by", caller.ID).Msg("job created")
	return created, nil
}

// UpdateJob applies update when the caller owns the job.
func (s *JobService) UpdateJob(ctx context.Context, caller domain.Identity, id string, update domain.JobUpdate) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	update.Apply(job)
	job.UpdatedAt = s.now().UTC()
	job.Normalize()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.jobs.Replace(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return updated, nil
}

func (s *JobService) DeleteJob(ctx context.Context, caller domain.Identity, id string) error {
	if _, err := s.ownedJob(ctx, caller, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("job_id", id).Str("user_id", caller.ID).Msg("job deleted")
	return nil
}

// Apply adds the caller to the job's applicants. A second application is
// rejected with domain.ErrAlreadyApplied and leaves the applicants unchanged.
func (s *JobService) Apply(ctx context.Context, caller domain.Identity, id string) error {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if job.OwnedBy(caller.ID) {
		return domain.ErrForbidden
	}
	if job.Status == domain.JobStatusClosed {
		return domain.ErrJobClosed
	}
	if job.HasApplicant(caller.ID) {
		return domain.ErrAlreadyApplied
	}

	// the repository re-checks membership atomically
	if err := s.jobs.AddApplicant(ctx, id, caller.ID); err != nil {
		return err
	}

	s.logger.Info().Str("job_id", id).Str("applicant_id", caller.ID).Msg("application received")

	if s.notices != nil {
		s.notices.Enqueue(ports.ApplicationNotice{
			JobID:       job.ID,
			JobTitle:    job.Title,
			OwnerID:     job.PostedBy,
			ApplicantID: caller.ID,
			Applicant:   strings.TrimSpace(caller.FirstName + " " + caller.LastName),
		})
	}
	return nil
}

// MatchJobs ranks active jobs against the caller's profile.
func (s *JobService) MatchJobs(ctx context.Context, caller domain.Identity, limit int) ([]domain.JobMatch, error) {
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.List(ctx, domain.JobFilter{Status: domain.JobStatusActive})
	if err != nil {
		return nil, err
	}

	// own postings are never a match
	candidates := jobs[:0:0]
	for _, j := range jobs {
		if !j.OwnedBy(caller.ID) {
			candidates = append(candidates, j)
		}
	}

	return domain.TopMatches(domain.CandidateFromUser(user, s.now()), candidates, limit), nil
}

func (s *JobService) ownedJob(ctx context.Context, caller domain.Identity, id string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(caller.ID) {
		return nil, domain.ErrNotOwner
	}
	return job, nil
}
