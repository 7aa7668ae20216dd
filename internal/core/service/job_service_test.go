package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

var (
	employer  = domain.Identity{ID: "emp-1", Email: "boss@example.com", FirstName: "Bo", LastName: "Ss", Role: domain.RoleEmployer}
	employer2 = domain.Identity{ID: "emp-2", Email: "other@example.com", Role: domain.RoleEmployer}
	seeker    = domain.Identity{ID: "seek-1", Email: "seek@example.com", FirstName: "Sam", LastName: "Seeker", Role: domain.RoleJobSeeker}
)

func sampleJob(jobType domain.JobType, min, max float64) *domain.Job {
	return &domain.Job{
		Title:           "Backend Engineer",
		Company:         "Acme",
		Location:        "Remote",
		Description:     "Build APIs",
		Requirements:    []string{"Go", "MongoDB"},
		Salary:          domain.Salary{Min: min, Max: max},
		JobType:         jobType,
		ExperienceLevel: domain.LevelMid,
	}
}

func newTestJobService() (*JobService, *stubJobRepo, *stubUserRepo, *stubNoticeQueue) {
	jobs := newStubJobRepo()
	users := newStubUserRepo()
	queue := &stubNoticeQueue{}
	return NewJobService(jobs, users, queue, discardLogger), jobs, users, queue
}

func TestJobService_Create_SetsOwnerAndDefaults(t *testing.T) {
	svc, _, _, _ := newTestJobService()

	job := sampleJob(domain.JobTypeFullTime, 50000, 70000)
	job.PostedBy = "someone-else"
	job.Applicants = []string{"sneaky"}

	created, err := svc.CreateJob(context.Background(), employer, job)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, employer.ID, created.PostedBy)
	assert.Empty(t, created.Applicants)
	assert.Equal(t, domain.JobStatusActive, created.Status)
	assert.Equal(t, domain.DefaultCurrency, created.Salary.Currency)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestJobService_Create_RequiresEmployerRole(t *testing.T) {
	svc, jobs, _, _ := newTestJobService()

	_, err := svc.CreateJob(context.Background(), seeker, sampleJob(domain.JobTypeFullTime, 1, 2))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, jobs.byID)
}

func TestJobService_Create_Validation(t *testing.T) {
	svc, _, _, _ := newTestJobService()

	job := sampleJob("Freelance", 80000, 50000)
	job.Title = "  "
	_, err := svc.CreateJob(context.Background(), employer, job)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "salary")
	assert.Contains(t, ve.Fields, "job_type")
}

func TestJobService_List_FiltersByJobType(t *testing.T) {
	svc, _, _, _ := newTestJobService()
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeContract, 1, 2))
	require.NoError(t, err)
	_, err = svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)

	jobs, err := svc.ListJobs(ctx, domain.JobFilter{JobType: domain.JobTypeContract})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	for _, j := range jobs {
		assert.Equal(t, domain.JobTypeContract, j.JobType)
	}
}

func TestJobService_List_MinSalaryScenario(t *testing.T) {
	svc, _, _, _ := newTestJobService()
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 50000, 70000))
	require.NoError(t, err)

	lower := 40000.0
	jobs, err := svc.ListJobs(ctx, domain.JobFilter{MinSalary: &lower})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, created.ID, jobs[0].ID)

	higher := 80000.0
	jobs, err = svc.ListJobs(ctx, domain.JobFilter{MinSalary: &higher})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobService_UpdateAndDelete_RequireOwnership(t *testing.T) {
	svc, _, _, _ := newTestJobService()
	ctx := context.Background()
	created, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.UpdateJob(ctx, employer2, created.ID, domain.JobUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.DeleteJob(ctx, employer2, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	got, err := svc.GetJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
}

func TestJobService_Update_ByOwner(t *testing.T) {
	svc, _, _, _ := newTestJobService()
	ctx := context.Background()
	created, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)

	title := "Staff Engineer"
	closed := domain.JobStatusClosed
	updated, err := svc.UpdateJob(ctx, employer, created.ID, domain.JobUpdate{Title: &title, Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, domain.JobStatusClosed, updated.Status)
	assert.Equal(t, employer.ID, updated.PostedBy)

	bad := domain.JobType("Gig")
	_, err = svc.UpdateJob(ctx, employer, created.ID, domain.JobUpdate{JobType: &bad})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestJobService_Delete_ThenNotFound(t *testing.T) {
	svc, _, _, _ := newTestJobService()
	ctx := context.Background()
	created, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJob(ctx, employer, created.ID))

	_, err = svc.GetJob(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobService_Apply_Twice(t *testing.T) {
	svc, jobs, _, queue := newTestJobService()
	ctx := context.Background()
	created, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)

	require.NoError(t, svc.Apply(ctx, seeker, created.ID))
	err = svc.Apply(ctx, seeker, created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)

	assert.Equal(t, []string{seeker.ID}, jobs.byID[created.ID].Applicants)
	require.Len(t, queue.notices, 1)
	assert.Equal(t, employer.ID, queue.notices[0].OwnerID)
	assert.Equal(t, "Sam Seeker", queue.notices[0].Applicant)
}

func TestJobService_Apply_Rejections(t *testing.T) {
	svc, _, _, _ := newTestJobService()
	ctx := context.Background()
	created, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Apply(ctx, employer, created.ID), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Apply(ctx, seeker, "missing"), domain.ErrJobNotFound)

	closed := domain.JobStatusClosed
	_, err = svc.UpdateJob(ctx, employer, created.ID, domain.JobUpdate{Status: &closed})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Apply(ctx, seeker, created.ID), domain.ErrJobClosed)
}

func TestJobService_MatchJobs(t *testing.T) {
	svc, _, users, _ := newTestJobService()
	ctx := context.Background()

	u, err := users.Create(ctx, &domain.User{
		Email:    "match@example.com",
		Role:     domain.RoleJobSeeker,
		Location: "remote",
		Profile: &domain.Profile{
			Skills: []string{"Go", "MongoDB"},
			Experience: []domain.Experience{{
				StartDate: time.Now().AddDate(-3, 0, 0),
				Current:   true,
			}},
		},
	})
	require.NoError(t, err)
	caller := u.Identity()

	good, err := svc.CreateJob(ctx, employer, sampleJob(domain.JobTypeFullTime, 1, 2))
	require.NoError(t, err)
	weak := sampleJob(domain.JobTypeFullTime, 1, 2)
	weak.Requirements = []string{"Rust"}
	weak.Location = "Berlin"
	_, err = svc.CreateJob(ctx, employer, weak)
	require.NoError(t, err)

	matches, err := svc.MatchJobs(ctx, caller, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, good.ID, matches[0].Job.ID)
	// two skills, location and Mid level
	assert.Equal(t, 80, matches[0].Score)
	assert.Equal(t, 20, matches[1].Score)
}
