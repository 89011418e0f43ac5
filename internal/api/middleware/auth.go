package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/climawatch/weather-api/internal/api/metrics"
	"github.com/climawatch/weather-api/internal/core/domain"
	"github.com/climawatch/weather-api/internal/core/ports"
)

// TokenCookie is the name of the cookie carrying the session token.
const TokenCookie = "token"

const userContextKey = "current_user"

// UserResolver resolves the acting user from a verified token's subject.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Authenticate runs the first two auth gate stages: extract the token from
// the cookie, verify it, and resolve the live user record. A token whose
// user no longer exists is rejected: the gate fails closed.
func Authenticate(tokens ports.TokenService, users UserResolver, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				metrics.AuthDeniedTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Login first to access this resource")
			}

			revoked, err := denylist.Contains(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if revoked {
				metrics.AuthDeniedTotal.WithLabelValues("revoked_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				// Deleted or unknown user: the token is structurally valid
				// but no longer refers to anyone.
				metrics.AuthDeniedTotal.WithLabelValues("unknown_user").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRoles runs the third auth gate stage: the resolved user's role must
// be in the route's allow-list. Allow-lists are built at route registration
// time, so an entry outside the role enumeration fails startup.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		if _, err := domain.ParseRole(string(r)); err != nil {
			panic("middleware: route allow-list contains unknown role " + string(r))
		}
		set[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Login first to access this resource")
			}
			if _, ok := set[user.Role]; !ok {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden,
					"role ("+string(user.Role)+") is not allowed to access this resource")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Authenticate.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok
}
