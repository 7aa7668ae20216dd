package domain

import (
	"strings"
	"time"
)

// JobType is the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// ExperienceLevel is the seniority a posting asks for.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry"
	LevelMid    ExperienceLevel = "Mid"
	LevelSenior ExperienceLevel = "Senior"
	LevelLead   ExperienceLevel = "Lead"
)

// Valid reports whether l is a known experience level.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelLead:
		return true
	}
	return false
}

// LevelForYears maps years of experience onto an experience level.
func LevelForYears(years float64) ExperienceLevel {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	case years < 8:
		return LevelSenior
	default:
		return LevelLead
	}
}

// JobStatus tells whether a posting accepts applications.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusClosed
}

const DefaultCurrency = "USD"

// Salary is the advertised pay range.
type Salary struct {
	Min      float64 `json:"min" bson:"min"`
	Max      float64 `json:"max" bson:"max"`
	Currency string  `json:"currency" bson:"currency"`
}

// Job is a posting owned by the employer who created it.
type Job struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	Requirements    []string        `json:"requirements"`
	Salary          Salary          `json:"salary"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Status          JobStatus       `json:"status"`
	PostedBy        string          `json:"posted_by"`
	Applicants      []string        `json:"applicants"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OwnedBy reports whether userID posted the job.
func (j *Job) OwnedBy(userID string) bool {
	return j.PostedBy != "" && j.PostedBy == userID
}

// HasApplicant reports whether userID already applied.
func (j *Job) HasApplicant(userID string) bool {
	for _, id := range j.Applicants {
		if id == userID {
			return true
		}
	}
	return false
}

// Normalize trims free-text fields and fills defaults.
func (j *Job) Normalize() {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	j.Location = strings.TrimSpace(j.Location)
	if j.Salary.Currency == "" {
		j.Salary.Currency = DefaultCurrency
	}
	if j.Status == "" {
		j.Status = JobStatusActive
	}
	if j.Applicants == nil {
		j.Applicants = []string{}
	}
	reqs := j.Requirements[:0]
	for _, r := range j.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	j.Requirements = reqs
}

// Validate checks the posting against the job schema.
func (j *Job) Validate() error {
	v := &ValidationError{}
	if j.Title == "" {
		v.Add("title", "Job title is required")
	}
	if j.Company == "" {
		v.Add("company", "Company name is required")
	}
	if j.Location == "" {
		v.Add("location", "Location is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		v.Add("description", "Job description is required")
	}
	if len(j.Requirements) == 0 {
		v.Add("requirements", "Job requirements are required")
	}
	if j.Salary.Min < 0 || j.Salary.Max < 0 {
		v.Add("salary", "Salary must not be negative")
	} else if j.Salary.Min > j.Salary.Max {
		v.Add("salary", "Minimum salary must not exceed maximum salary")
	}
	if !j.JobType.Valid() {
		v.Add("job_type", "Job type must be one of: Full-time, Part-time, Contract, Internship")
	}
	if !j.ExperienceLevel.Valid() {
		v.Add("experience_level", "Experience level must be one of: Entry, Mid, Senior, Lead")
	}
	if !j.Status.Valid() {
		v.Add("status", "Status must be one of: active, closed")
	}
	return v.OrNil()
}

// JobUpdate is a partial update of a posting. Ownership, applicants and
// timestamps are not updatable.
type JobUpdate struct {
	Title           *string
	Company         *string
	Location        *string
	Description     *string
	Requirements    []string
	Salary          *Salary
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
	Status          *JobStatus
}

// Apply copies the set fields onto j.
func (u JobUpdate) Apply(j *Job) {
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Company != nil {
		j.Company = *u.Company
	}
	if u.Location != nil {
		j.Location = *u.Location
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Requirements != nil {
		j.Requirements = append([]string(nil), u.Requirements...)
	}
	if u.Salary != nil {
		j.Salary = *u.Salary
	}
	if u.JobType != nil {
		j.JobType = *u.JobType
	}
	if u.ExperienceLevel != nil {
		j.ExperienceLevel = *u.ExperienceLevel
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
}

// JobFilter narrows a job listing. Zero values disable a filter.
type JobFilter struct {
	Search          string
	Location        string
	JobType         JobType
	ExperienceLevel ExperienceLevel
	Status          JobStatus
	MinSalary       *float64
	PostedBy        string
}
