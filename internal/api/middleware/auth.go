package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/api/metrics"
	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

const identityKey = "identity"

// Static message for every authentication failure; the cause stays internal.
const authFailedMsg = "Please authenticate."

// Auth verifies the bearer token, resolves the caller and injects it into
// the echo context.
func Auth(tokens ports.TokenIssuer, resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return unauthorized("missing_token", domain.ErrMissingToken)
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				return unauthorized("invalid_token", domain.ErrInvalidToken)
			}

			ident, err := resolver.Resolve(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrIdentityNotFound) {
					return unauthorized("unknown_user", domain.ErrIdentityNotFound)
				}
				return err
			}

			c.Set(identityKey, *ident)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	ident, ok := c.Get(identityKey).(domain.Identity)
	return ident, ok
}

// SetIdentity stores ident the way Auth does. Used by tests and internal callers.
func SetIdentity(c echo.Context, ident domain.Identity) {
	c.Set(identityKey, ident)
}

// bearerToken strips a case-insensitive "Bearer " scheme. A header without
// the scheme is taken as the raw token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	return header
}

func unauthorized(reason string, cause error) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, authFailedMsg).SetInternal(cause)
}
