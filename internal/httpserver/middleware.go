package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventschedule/eventschedule/internal/authz"
	"github.com/eventschedule/eventschedule/internal/logging"
	"github.com/eventschedule/eventschedule/internal/models"
	"github.com/eventschedule/eventschedule/internal/tokens"
)

// claimsKey is where validated claims land in the echo context.
const claimsKey = "claims"

type AuthMiddleware struct {
	Codec *tokens.Codec
}

// RequireRoles validates the bearer token and gates the request on the role
// claim. Every validation failure answers with the same 401 body; the real
// cause stays in the log.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			claims, err := m.Codec.Validate(raw)
			if err != nil {
				logging.FromContext(c.Request().Context()).Warn("token_rejected", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if len(roles) > 0 && !authz.Allowed(claims.Role, roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}

// ClaimsFrom returns the claims a RequireRoles middleware stored for this
// request, or nil on unauthenticated routes.
func ClaimsFrom(c echo.Context) *tokens.Claims {
	if v, ok := c.Get(claimsKey).(*tokens.Claims); ok {
		return v
	}
	return nil
}
