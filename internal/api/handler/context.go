package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/api/middleware"
	"github.com/careerconnect/jobboard/internal/core/domain"
)

// ctxIdentity returns the caller injected by the Auth middleware. Routes that
// reach it without the middleware are a wiring mistake, reported as 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok || ident.ID == "" {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return ident, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
