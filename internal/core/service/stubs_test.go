package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindIdentity(_ context.Context, id string) (*domain.Identity, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	ident := u.Identity()
	return &ident, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.Profile != nil {
		u.Profile = upd.Profile
	}
	if upd.Company != nil {
		u.Company = upd.Company
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Identity cache
// ---------------------------------------------------------------------------

type stubIdentityCache struct {
	entries     map[string]domain.Identity
	invalidated []string
	getErr      error
}

func newStubIdentityCache() *stubIdentityCache {
	return &stubIdentityCache{entries: make(map[string]domain.Identity)}
}

func (c *stubIdentityCache) Get(_ context.Context, id string) (*domain.Identity, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	ident, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return &ident, nil
}

func (c *stubIdentityCache) Set(_ context.Context, ident *domain.Identity) error {
	c.entries[ident.ID] = *ident
	return nil
}

func (c *stubIdentityCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	byID   map[string]*domain.Job
	nextID int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.Applicants = append([]string(nil), j.Applicants...)
	c.Requirements = append([]string(nil), j.Requirements...)
	return &c
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.nextID++
	c := cloneJob(job)
	c.ID = fmt.Sprintf("j%d", r.nextID)
	r.byID[c.ID] = c
	return cloneJob(c), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, f domain.JobFilter) ([]*domain.Job, error) {
	var out []*domain.Job
	for _, j := range r.byID {
		if matchesFilter(f, j) {
			out = append(out, cloneJob(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID > out[k].ID })
	return out, nil
}

func (r *stubJobRepo) Replace(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if _, ok := r.byID[job.ID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	r.byID[job.ID] = cloneJob(job)
	return cloneJob(job), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubJobRepo) AddApplicant(_ context.Context, jobID, userID string) error {
	j, ok := r.byID[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.HasApplicant(userID) {
		return domain.ErrAlreadyApplied
	}
	j.Applicants = append(j.Applicants, userID)
	return nil
}

type stubNoticeQueue struct {
	notices []ports.ApplicationNotice
}

func (q *stubNoticeQueue) Enqueue(n ports.ApplicationNotice) {
	q.notices = append(q.notices, n)
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	byID      map[string]*domain.Message
	nextID    int
	createErr error
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{byID: make(map[string]*domain.Message)}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	c := *m
	c.ID = fmt.Sprintf("m%d", r.nextID)
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	c := *m
	return &c, nil
}

func (r *stubMessageRepo) sorted(keep func(*domain.Message) bool, asc bool) []*domain.Message {
	var out []*domain.Message
	for _, m := range r.byID {
		if keep(m) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if asc {
			return out[i].CreatedAt.Before(out[k].CreatedAt)
		}
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	return out
}

func (r *stubMessageRepo) ListForUser(_ context.Context, userID string) ([]*domain.Message, error) {
	return r.sorted(func(m *domain.Message) bool {
		return m.SenderID == userID || m.ReceiverID == userID
	}, false), nil
}

func (r *stubMessageRepo) ListBetween(_ context.Context, a, b string) ([]*domain.Message, error) {
	return r.sorted(func(m *domain.Message) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	}, true), nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	m.Read = true
	c := *m
	return &c, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, receiverID string) (int64, error) {
	var n int64
	for _, m := range r.byID {
		if m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n, nil
}

// matchesFilter is the in-memory stand-in for the store's query: exact
// field matches plus a case-insensitive substring search.
func matchesFilter(f domain.JobFilter, j *domain.Job) bool {
	if f.Location != "" && j.Location != f.Location {
		return false
	}
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.MinSalary != nil && j.Salary.Min < *f.MinSalary {
		return false
	}
	if f.PostedBy != "" && j.PostedBy != f.PostedBy {
		return false
	}
	if f.Search != "" {
		hay := strings.ToLower(j.Title + " " + j.Company + " " + j.Description)
		if !strings.Contains(hay, strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}
