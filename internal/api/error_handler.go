package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

const authFailedMsg = "Please authenticate."

// domainErrors maps sentinel errors to HTTP status codes. The response
// message is the sentinel's text unless overridden.
var domainErrors = []struct {
	err  error
	code int
	msg  string
}{
	{domain.ErrMissingToken, http.StatusUnauthorized, authFailedMsg},
	{domain.ErrInvalidToken, http.StatusUnauthorized, authFailedMsg},
	{domain.ErrIdentityNotFound, http.StatusUnauthorized, authFailedMsg},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	{domain.ErrForbidden, http.StatusForbidden, ""},
	{domain.ErrNotOwner, http.StatusForbidden, ""},
	{domain.ErrInvalidUpdates, http.StatusBadRequest, ""},
	{domain.ErrInvalidID, http.StatusBadRequest, ""},
	{domain.ErrUserNotFound, http.StatusNotFound, ""},
	{domain.ErrJobNotFound, http.StatusNotFound, ""},
	{domain.ErrMessageNotFound, http.StatusNotFound, ""},
	{domain.ErrUserExists, http.StatusConflict, ""},
	{domain.ErrAlreadyApplied, http.StatusConflict, ""},
	{domain.ErrJobClosed, http.StatusConflict, ""},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Adds per-field messages for validation failures.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields}
	}

	// Echo's own errors (bind failures, router 404/405) and the ones raised
	// by our middleware.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			msg := m.msg
			if msg == "" {
				msg = m.err.Error()
			}
			return m.code, errorResponse{Error: msg}
		}
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
