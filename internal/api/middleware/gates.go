package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

// RequireServiceProvider passes only callers whose verified identity carries
// the serviceProvider role. It must run after Auth.
func RequireServiceProvider() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if role != domain.RoleServiceProvider {
				return echo.NewHTTPError(http.StatusForbidden, "access denied: not a service provider")
			}
			return next(c)
		}
	}
}

// RequireVerifiedProvider passes only verified service providers. The token
// asserts {id, role} and nothing else, so the verified flag is read from the
// provider store on every request; an admin flipping it takes effect
// immediately.
func RequireVerifiedProvider(providers ports.ProviderRepository) echo.MiddlewareFunc {
	role := RequireServiceProvider()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return role(func(c echo.Context) error {
			userID, _ := c.Get(CtxUserID).(string)

			provider, err := providers.FindByUserID(c.Request().Context(), userID)
			if err != nil || !provider.Verified {
				return echo.NewHTTPError(http.StatusForbidden, "access denied: provider not verified")
			}
			return next(c)
		})
	}
}
