package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventschedule/eventschedule/internal/authz"
)

type Deps struct {
	AuthHandler *AuthHTTP
	Auth        *AuthMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/auth")

	api.POST("/login", d.AuthHandler.Login)
	api.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	api.POST("/reset-password/:token", d.AuthHandler.ResetPassword)

	admin := api.Group("", d.Auth.RequireRoles(authz.AdminOnly...))
	admin.POST("/register", d.AuthHandler.Register)
	admin.POST("/make-editor/:username", d.AuthHandler.MakeEditor)
	admin.POST("/make-admin/:username", d.AuthHandler.MakeAdmin)
	admin.POST("/make-user/:username", d.AuthHandler.MakeUser)
}
