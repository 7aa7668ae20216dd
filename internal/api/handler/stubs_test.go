package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/api/middleware"
	"github.com/careerconnect/jobboard/internal/core/domain"
)

var (
	employer  = domain.Identity{ID: "emp1", Email: "boss@example.com", FirstName: "Bea", Role: domain.RoleEmployer}
	jobSeeker = domain.Identity{ID: "seek1", Email: "sam@example.com", FirstName: "Sam", Role: domain.RoleJobSeeker}
)

// newContext builds an echo context for a JSON request, optionally
// authenticated as ident.
func newContext(method, target string, body io.Reader, ident *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		middleware.SetIdentity(c, *ident)
	}
	return c, rec
}

type stubAuthService struct {
	registerFn       func(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

type stubUserService struct {
	users    map[string]*domain.User
	lastUpd  *domain.ProfileUpdate
	updateFn func(update domain.ProfileUpdate) error
}

func (s *stubUserService) GetProfile(_ context.Context, userID string) (*domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	s.lastUpd = &update
	if s.updateFn != nil {
		if err := s.updateFn(update); err != nil {
			return nil, err
		}
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.Profile != nil {
		u.Profile = update.Profile
	}
	return u, nil
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "bad" {
		return nil, domain.ErrInvalidID
	}
	return s.GetProfile(ctx, id)
}

func (s *stubUserService) ListUsers(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

type stubJobService struct {
	jobs       map[string]*domain.Job
	lastFilter domain.JobFilter
	lastLimit  int
	applyErr   error
	createErr  error
	updateErr  error
	matches    []domain.JobMatch
}

func (s *stubJobService) ListJobs(_ context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	s.lastFilter = filter
	var out []*domain.Job
	for _, j := range s.jobs {
		if matchesFilter(filter, j) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *stubJobService) GetJob(_ context.Context, id string) (*domain.Job, error) {
	if id == "bad" {
		return nil, domain.ErrInvalidID
	}
	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return j, nil
}

func (s *stubJobService) CreateJob(_ context.Context, caller domain.Identity, job *domain.Job) (*domain.Job, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	job.ID = "j-new"
	job.PostedBy = caller.ID
	job.Normalize()
	if s.jobs == nil {
		s.jobs = map[string]*domain.Job{}
	}
	s.jobs[job.ID] = job
	return job, nil
}

func (s *stubJobService) UpdateJob(ctx context.Context, caller domain.Identity, id string, update domain.JobUpdate) (*domain.Job, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	j, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !j.OwnedBy(caller.ID) {
		return nil, domain.ErrNotOwner
	}
	update.Apply(j)
	return j, nil
}

func (s *stubJobService) DeleteJob(ctx context.Context, caller domain.Identity, id string) error {
	j, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if !j.OwnedBy(caller.ID) {
		return domain.ErrNotOwner
	}
	delete(s.jobs, id)
	return nil
}

func (s *stubJobService) Apply(ctx context.Context, caller domain.Identity, id string) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	j, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if j.HasApplicant(caller.ID) {
		return domain.ErrAlreadyApplied
	}
	j.Applicants = append(j.Applicants, caller.ID)
	return nil
}

func (s *stubJobService) MatchJobs(_ context.Context, _ domain.Identity, limit int) ([]domain.JobMatch, error) {
	s.lastLimit = limit
	return s.matches, nil
}

type stubMessageService struct {
	sent     []*domain.Message
	sendErr  error
	markErr  error
	unread   int64
	convs    []domain.Conversation
	lastPeer string
}

func (s *stubMessageService) Send(_ context.Context, caller domain.Identity, receiverID, content string) (*domain.Message, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	m := &domain.Message{ID: "m1", SenderID: caller.ID, ReceiverID: receiverID, Content: content}
	s.sent = append(s.sent, m)
	return m, nil
}

func (s *stubMessageService) Conversations(context.Context, domain.Identity) ([]domain.Conversation, error) {
	return s.convs, nil
}

func (s *stubMessageService) Conversation(_ context.Context, _ domain.Identity, otherID string) ([]*domain.Message, error) {
	s.lastPeer = otherID
	return nil, nil
}

func (s *stubMessageService) MarkRead(_ context.Context, caller domain.Identity, id string) (*domain.Message, error) {
	if s.markErr != nil {
		return nil, s.markErr
	}
	return &domain.Message{ID: id, ReceiverID: caller.ID, Read: true}, nil
}

func (s *stubMessageService) Delete(context.Context, domain.Identity, string) error {
	return nil
}

func (s *stubMessageService) UnreadCount(context.Context, domain.Identity) (int64, error) {
	return s.unread, nil
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
