package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

type salaryRequest struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gte=0,gtefield=Min"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
}

type createJobRequest struct {
	Title           string         `json:"title" validate:"required"`
	Company         string         `json:"company" validate:"required"`
	Location        string         `json:"location" validate:"required"`
	Description     string         `json:"description" validate:"required"`
	Requirements    []string       `json:"requirements" validate:"required,min=1,dive,required"`
	Salary          *salaryRequest `json:"salary" validate:"required"`
	JobType         string         `json:"job_type" validate:"required,oneof=Full-time Part-time Contract Internship"`
	ExperienceLevel string         `json:"experience_level" validate:"required,oneof=Entry Mid Senior Lead"`
	Status          string         `json:"status" validate:"omitempty,oneof=active closed"`
}

type updateJobRequest struct {
	Title           *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	Company         *string        `json:"company,omitempty" validate:"omitempty,min=1"`
	Location        *string        `json:"location,omitempty" validate:"omitempty,min=1"`
	Description     *string        `json:"description,omitempty" validate:"omitempty,min=1"`
	Requirements    []string       `json:"requirements,omitempty" validate:"omitempty,min=1,dive,required"`
	Salary          *salaryRequest `json:"salary,omitempty"`
	JobType         *string        `json:"job_type,omitempty" validate:"omitempty,oneof=Full-time Part-time Contract Internship"`
	ExperienceLevel *string        `json:"experience_level,omitempty" validate:"omitempty,oneof=Entry Mid Senior Lead"`
	Status          *string        `json:"status,omitempty" validate:"omitempty,oneof=active closed"`
}

type matchResponse struct {
	Matches []domain.JobMatch `json:"matches"`
}

func (s *salaryRequest) toDomain() domain.Salary {
	return domain.Salary{Min: s.Min, Max: s.Max, Currency: strings.ToUpper(s.Currency)}
}

func (r createJobRequest) toDomain() *domain.Job {
	return &domain.Job{
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		Description:     r.Description,
		Requirements:    append([]string(nil), r.Requirements...),
		Salary:          r.Salary.toDomain(),
		JobType:         domain.JobType(r.JobType),
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Status:          domain.JobStatus(r.Status),
	}
}

func (r updateJobRequest) toDomain() domain.JobUpdate {
	u := domain.JobUpdate{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
	}
	if r.Salary != nil {
		s := r.Salary.toDomain()
		u.Salary = &s
	}
	if r.JobType != nil {
		t := domain.JobType(*r.JobType)
		u.JobType = &t
	}
	if r.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*r.ExperienceLevel)
		u.ExperienceLevel = &l
	}
	if r.Status != nil {
		s := domain.JobStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// jobFilterFromQuery reads the listing filters from the query string.
func jobFilterFromQuery(c echo.Context) (domain.JobFilter, error) {
	f := domain.JobFilter{
		Search:          strings.TrimSpace(c.QueryParam("search")),
		Location:        strings.TrimSpace(c.QueryParam("location")),
		JobType:         domain.JobType(c.QueryParam("jobType")),
		ExperienceLevel: domain.ExperienceLevel(c.QueryParam("experienceLevel")),
		Status:          domain.JobStatus(c.QueryParam("status")),
	}
	if raw := strings.TrimSpace(c.QueryParam("minSalary")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return domain.JobFilter{}, domain.NewValidationError("minSalary", "minSalary must be a non-negative number")
		}
		f.MinSalary = &v
	}
	return f, nil
}

// limitFromQuery parses a positive "limit" query parameter; 0 means unset.
func limitFromQuery(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 50 {
		return 0, domain.NewValidationError("limit", "limit must be between 1 and 50")
	}
	return n, nil
}
