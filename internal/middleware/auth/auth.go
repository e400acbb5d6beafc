package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KingDev1404/freshbulk/internal/guard"
	"github.com/KingDev1404/freshbulk/internal/tokens"
)

const identityKey = "identity"

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// RequireAuth resolves the caller from the access token cookie and stores
// the identity in the request context. Missing or invalid tokens end the
// request with 401.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := m.resolve(c)
		if err != nil {
			return err
		}
		SetIdentity(c, ident)
		return next(c)
	}
}

// RequireAdmin is RequireAuth plus an admin role check. A resolved
// non-admin caller gets 403, not 401.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := m.resolve(c)
		if err != nil {
			return err
		}
		if !guard.AdminOnly(ident) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		SetIdentity(c, ident)
		return next(c)
	}
}

func (m *Middleware) resolve(c echo.Context) (guard.Identity, error) {
	cookie, err := c.Cookie(tokens.AccessCookie)
	if err != nil || cookie.Value == "" {
		return guard.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	claims, err := tokens.AccessClaimsFromToken(cookie.Value, m.JWTSecret)
	if err != nil {
		return guard.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return guard.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	return guard.Identity{UserID: userID, Role: claims.Role}, nil
}

// SetIdentity stores a resolved identity in the request context.
func SetIdentity(c echo.Context, ident guard.Identity) {
	c.Set(identityKey, ident)
}

// IdentityFrom returns the identity RequireAuth put into the context.
func IdentityFrom(c echo.Context) (guard.Identity, bool) {
	ident, ok := c.Get(identityKey).(guard.Identity)
	return ident, ok
}
