package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the caller's own account.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorBody
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the caller's account. Only
// first_name, last_name, location, profile and company may be set.
//
// @Summary      Update current user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /users/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if isUnknownFieldError(err) {
			return domain.ErrInvalidUpdates
		}
		var perr *time.ParseError
		if errors.As(err, &perr) {
			return domain.NewValidationError("date", "dates must be RFC3339 or YYYY-MM-DD")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), ident.ID, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers returns every account. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorBody
// @Router       /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns the public view of another account.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  publicUserResponse
// @Failure      404  {object}  errorBody
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return c.JSON(http.StatusOK, toPublicUser(user))
}

// isUnknownFieldError reports whether err came from DisallowUnknownFields.
// encoding/json has no typed error for this, only the message prefix.
func isUnknownFieldError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "json: unknown field ")
}
