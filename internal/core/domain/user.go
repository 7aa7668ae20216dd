package domain

import (
	"net/mail"
	"strings"
	"time"
)

const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes and the library rejects it outright.
	maxPasswordBytes = 72
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// NormalizeEmail trims and lower-cases an address; emails are stored this way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Experience is a single entry in a user's work history.
type Experience struct {
	Title       string     `json:"title" bson:"title"`
	Company     string     `json:"company" bson:"company"`
	StartDate   time.Time  `json:"start_date" bson:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Current     bool       `json:"current" bson:"current"`
	Description string     `json:"description" bson:"description"`
}

// Education is a single entry in a user's education history.
type Education struct {
	School    string     `json:"school" bson:"school"`
	Degree    string     `json:"degree" bson:"degree"`
	Field     string     `json:"field" bson:"field"`
	StartDate time.Time  `json:"start_date" bson:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Current   bool       `json:"current" bson:"current"`
}

// Profile is the optional job-seeker profile.
type Profile struct {
	Title      string       `json:"title,omitempty" bson:"title,omitempty"`
	Bio        string       `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills     []string     `json:"skills,omitempty" bson:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty" bson:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty" bson:"education,omitempty"`
}

// YearsOfExperience sums the length of all experience entries, counting
// current positions up to now.
func (p *Profile) YearsOfExperience(now time.Time) float64 {
	if p == nil {
		return 0
	}
	var total time.Duration
	for _, e := range p.Experience {
		end := now
		if e.EndDate != nil && !e.Current {
			end = *e.EndDate
		}
		if end.After(e.StartDate) && !e.StartDate.IsZero() {
			total += end.Sub(e.StartDate)
		}
	}
	return total.Hours() / (24 * 365)
}

// Company describes an employer's organisation.
type Company struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Position string `json:"position,omitempty" bson:"position,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
}

// User models an account on the job board.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Location     string    `json:"location,omitempty"`
	Profile      *Profile  `json:"profile,omitempty"`
	Company      *Company  `json:"company,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the minimal projection attached to authenticated requests.
func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// Identity is the authenticated caller resolved from a token.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// HasRole reports whether the identity's role is one of roles.
func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// Registration carries the fields accepted when creating an account.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Location  string
	Profile   *Profile
	Company   *Company
}

// Validate checks the registration the same way the user schema does.
func (r Registration) Validate() error {
	v := &ValidationError{}
	email := NormalizeEmail(r.Email)
	if email == "" {
		v.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "Email must be a valid email address")
	}
	if r.Password == "" {
		v.Add("password", "Password is required")
	} else if len(r.Password) < minPasswordLength {
		v.Add("password", "Password must be at least 6 characters long")
	} else if len(r.Password) > maxPasswordBytes {
		v.Add("password", "Password must be at most 72 bytes long")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		v.Add("first_name", "First name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		v.Add("last_name", "Last name is required")
	}
	if r.Role == "" {
		v.Add("role", "Role is required")
	} else if !ValidRole(r.Role) {
		v.Add("role", "Role must be one of: jobseeker, employer, admin")
	}
	return v.OrNil()
}

// ValidatePassword applies the password policy on its own.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return NewValidationError("password", "Password must be at least 6 characters long")
	}
	if len(password) > maxPasswordBytes {
		return NewValidationError("password", "Password must be at most 72 bytes long")
	}
	return nil
}

// ProfileUpdate is a partial update of the caller's own account. Nil fields
// are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Location  *string
	Profile   *Profile
	Company   *Company
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Location == nil && u.Profile == nil && u.Company == nil
}

// Validate rejects blank names.
func (u ProfileUpdate) Validate() error {
	v := &ValidationError{}
	if u.FirstName != nil && strings.TrimSpace(*u.FirstName) == "" {
		v.Add("first_name", "First name is required")
	}
	if u.LastName != nil && strings.TrimSpace(*u.LastName) == "" {
		v.Add("last_name", "Last name is required")
	}
	return v.OrNil()
}
