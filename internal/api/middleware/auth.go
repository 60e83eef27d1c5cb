package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/api/metrics"
	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

// Context keys populated by Auth for downstream gates and handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth verifies the bearer token and injects the authenticated identity into
// the request context. The failure modes carry distinct reasons so a client
// can tell a missing header, an expired token and a forged token apart.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					metrics.AuthFailuresTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
				case errors.Is(err, domain.ErrTokenInvalid):
					metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				default:
					return echo.NewHTTPError(http.StatusInternalServerError, "token verification failed")
				}
			}

			c.Set(CtxUserID, identity.ID)
			c.Set(CtxRole, identity.Role)

			return next(c)
		}
	}
}
