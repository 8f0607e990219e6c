package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventschedule/eventschedule/internal/logging"
	"github.com/eventschedule/eventschedule/internal/models"
	"github.com/eventschedule/eventschedule/internal/repo"
	"github.com/eventschedule/eventschedule/internal/service"
	"github.com/eventschedule/eventschedule/internal/tokens"
)

type AuthHTTP struct {
	Creds *service.CredentialService
	Reset *service.ResetFlow
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	account, err := h.Creds.Register(ctx, service.RegisterParams{
		FirstName: req.Firstname,
		LastName:  req.Lastname,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required.")
	case errors.Is(err, repo.ErrDuplicateUsername):
		return echo.NewHTTPError(http.StatusBadRequest, "Username is already taken.")
	case errors.Is(err, repo.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "Email is already in use.")
	case errors.Is(err, repo.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "try again")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
	}

	return c.JSON(http.StatusOK, account)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Creds.Login(ctx, req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required.")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password.")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   res.Token,
		"message": "Logged in",
	})
}

func (h *AuthHTTP) makeRole(c echo.Context, target models.Role) error {
	ctx := c.Request().Context()
	username := c.Param("username")

	account, err := h.Creds.Elevate(ctx, username, target)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found.")
	case errors.Is(err, repo.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "try again")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "role change failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("User '%s' is now %s.", account.Username, account.Role),
	})
}

func (h *AuthHTTP) MakeEditor(c echo.Context) error { return h.makeRole(c, models.RoleEditor) }
func (h *AuthHTTP) MakeAdmin(c echo.Context) error  { return h.makeRole(c, models.RoleAdmin) }
func (h *AuthHTTP) MakeUser(c echo.Context) error   { return h.makeRole(c, models.RoleUser) }

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Reset.RequestReset(ctx, req.Email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "reset request failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Password reset email sent successfully.",
	})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	capability := c.Param("token")

	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	err := h.Reset.Redeem(ctx, capability, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required.")
	case errors.Is(err, tokens.ErrInvalidToken), errors.Is(err, service.ErrMalformedCapability):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired token")
	case errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "User not found.")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "reset failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Password reset successful.",
	})
}
