package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/api/metrics"
	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type JobHandler struct {
	jobService ports.JobService
}

func NewJobHandler(jobService ports.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List returns jobs matching the query filters, newest first.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        search           query     string  false  "Full-text search over title, company and description"
// @Param        location         query     string  false  "Exact location"
// @Param        jobType          query     string  false  "Full-time, Part-time, Contract or Internship"
// @Param        experienceLevel  query     string  false  "Entry, Mid, Senior or Lead"
// @Param        minSalary        query     number  false  "Lower bound on salary.min"
// @Param        status           query     string  false  "active or closed"
// @Success      200  {array}   domain.Job
// @Failure      400  {object}  errorBody
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	filter, err := jobFilterFromQuery(c)
	if err != nil {
		return err
	}
	return h.respondJobs(c, filter)
}

// Mine returns the jobs posted by the caller.
//
// @Summary      My job postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Job
// @Failure      401  {object}  errorBody
// @Router       /jobs/mine [get]
func (h *JobHandler) Mine(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return h.respondJobs(c, domain.JobFilter{PostedBy: ident.ID})
}

func (h *JobHandler) respondJobs(c echo.Context, filter domain.JobFilter) error {
	jobs, err := h.jobService.ListJobs(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get returns a single job.
//
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorBody
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobService.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFoundOnBadID(err, domain.ErrJobNotFound)
	}
	return c.JSON(http.StatusOK, job)
}

// Create posts a new job owned by the caller. Employers and admins only.
//
// @Summary      Create job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), ident, req.toDomain())
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(job.JobType)).Inc()
	return c.JSON(http.StatusCreated, job)
}

// Update changes a job owned by the caller.
//
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobService.UpdateJob(c.Request().Context(), ident, c.Param("id"), req.toDomain())
	if err != nil {
		return notFoundOnBadID(err, domain.ErrJobNotFound)
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job owned by the caller.
//
// @Summary      Delete job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      204
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), ident, c.Param("id")); err != nil {
		return notFoundOnBadID(err, domain.ErrJobNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// Apply records the caller as an applicant.
//
// @Summary      Apply to job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      409  {object}  errorBody
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.jobService.Apply(c.Request().Context(), ident, id); err != nil {
		result := "rejected"
		if errors.Is(err, domain.ErrAlreadyApplied) {
			result = "duplicate"
		}
		metrics.ApplicationsTotal.WithLabelValues(result).Inc()
		return notFoundOnBadID(err, domain.ErrJobNotFound)
	}
	metrics.ApplicationsTotal.WithLabelValues("accepted").Inc()

	job, err := h.jobService.GetJob(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Matches ranks active jobs against the caller's profile.
//
// @Summary      Job matches
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Number of matches (default 3)"
// @Success      200    {object}  matchResponse
// @Failure      401    {object}  errorBody
// @Router       /jobs/matches [get]
func (h *JobHandler) Matches(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, err := limitFromQuery(c)
	if err != nil {
		return err
	}

	matches, err := h.jobService.MatchJobs(c.Request().Context(), ident, limit)
	if err != nil {
		return err
	}
	if matches == nil {
		matches = []domain.JobMatch{}
	}
	return c.JSON(http.StatusOK, matchResponse{Matches: matches})
}

// notFoundOnBadID reports a malformed path id as the resource's not-found
// error, since such an id can never name an existing document.
func notFoundOnBadID(err, notFound error) error {
	if errors.Is(err, domain.ErrInvalidID) {
		return notFound
	}
	return err
}
