package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// Date accepts RFC3339 timestamps as well as plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return &time.ParseError{Layout: time.RFC3339, Value: s, Message: ": expected RFC3339 or YYYY-MM-DD date"}
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type experienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	StartDate   Date   `json:"start_date"`
	EndDate     *Date  `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School    string `json:"school" validate:"required"`
	Degree    string `json:"degree" validate:"required"`
	Field     string `json:"field"`
	StartDate Date   `json:"start_date"`
	EndDate   *Date  `json:"end_date,omitempty"`
	Current   bool   `json:"current"`
}

type profileRequest struct {
	Title      string              `json:"title"`
	Bio        string              `json:"bio" validate:"max=2000"`
	Skills     []string            `json:"skills" validate:"dive,required"`
	Experience []experienceRequest `json:"experience" validate:"dive"`
	Education  []educationRequest  `json:"education" validate:"dive"`
}

type companyRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Website  string `json:"website" validate:"omitempty,url"`
}

type registerRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6,max=72"`
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Role      string          `json:"role" validate:"required,oneof=jobseeker employer admin"`
	Location  string          `json:"location"`
	Profile   *profileRequest `json:"profile,omitempty"`
	Company   *companyRequest `json:"company,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// updateProfileRequest lists the only fields a user may change on
// themselves. Anything else in the body rejects the whole update.
type updateProfileRequest struct {
	FirstName *string         `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string         `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Location  *string         `json:"location,omitempty"`
	Profile   *profileRequest `json:"profile,omitempty"`
	Company   *companyRequest `json:"company,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// publicUserResponse is what other users may see about an account.
type publicUserResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      string          `json:"role"`
	Location  string          `json:"location,omitempty"`
	Profile   *domain.Profile `json:"profile,omitempty"`
	Company   *domain.Company `json:"company,omitempty"`
}

func (r registerRequest) toDomain() domain.Registration {
	return domain.Registration{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
		Location:  r.Location,
		Profile:   r.Profile.toDomain(),
		Company:   r.Company.toDomain(),
	}
}

func (r updateProfileRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Location:  r.Location,
		Profile:   r.Profile.toDomain(),
		Company:   r.Company.toDomain(),
	}
}

func (p *profileRequest) toDomain() *domain.Profile {
	if p == nil {
		return nil
	}
	out := &domain.Profile{
		Title:  strings.TrimSpace(p.Title),
		Bio:    p.Bio,
		Skills: make([]string, 0, len(p.Skills)),
	}
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			out.Skills = append(out.Skills, s)
		}
	}
	for _, e := range p.Experience {
		out.Experience = append(out.Experience, domain.Experience{
			Title:       e.Title,
			Company:     e.Company,
			StartDate:   e.StartDate.Time,
			EndDate:     e.EndDate.ptr(),
			Current:     e.Current,
			Description: e.Description,
		})
	}
	for _, e := range p.Education {
		out.Education = append(out.Education, domain.Education{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartDate: e.StartDate.Time,
			EndDate:   e.EndDate.ptr(),
			Current:   e.Current,
		})
	}
	return out
}

func (c *companyRequest) toDomain() *domain.Company {
	if c == nil {
		return nil
	}
	return &domain.Company{Name: c.Name, Position: c.Position, Website: c.Website}
}

func toPublicUser(u *domain.User) publicUserResponse {
	return publicUserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Location:  u.Location,
		Profile:   u.Profile,
		Company:   u.Company,
	}
}
