package domain

import (
	"errors"
	"sort"
	"strings"
)

// Authentication failures. All of them surface as 401 with a static message.
var (
	ErrMissingToken       = errors.New("missing authentication token")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrIdentityNotFound   = errors.New("authenticated user no longer exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

// Authorization failures.
var (
	ErrForbidden = errors.New("access forbidden")
	ErrNotOwner  = errors.New("not authorized to modify this resource")
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrJobNotFound     = errors.New("job not found")
	ErrJobClosed       = errors.New("job is closed")
	ErrAlreadyApplied  = errors.New("already applied to this job")
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidUpdates  = errors.New("invalid updates")
)

// ValidationError carries per-field messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records a message for field, keeping the first message per field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, ", ")
}
