package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/api/metrics"
	"github.com/careerconnect/jobboard/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return unauthorized("missing_token", domain.ErrMissingToken)
			}
			if _, ok := allowed[ident.Role]; !ok {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Access denied.").SetInternal(domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
