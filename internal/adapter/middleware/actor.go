package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway after authentication.
const (
	HeaderOwnerID = "Ax-Owner-Id"
	HeaderAdminID = "Ax-Admin-Id"
)

const (
	ctxOwnerID = "actor.owner_id"
	ctxAdminID = "actor.admin_id"

	maxAdminIDLen = 64
)

// RequireOwner rejects requests without a 32-hex Ax-Owner-Id.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderOwnerID))
			if !reHex32.MatchString(id) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid Ax-Owner-Id"})
			}
			c.Set(ctxOwnerID, id)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests without an Ax-Admin-Id.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderAdminID))
			if id == "" || len(id) > maxAdminIDLen {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid Ax-Admin-Id"})
			}
			c.Set(ctxAdminID, id)
			return next(c)
		}
	}
}

func OwnerID(c echo.Context) string {
	id, _ := c.Get(ctxOwnerID).(string)
	return id
}

func AdminID(c echo.Context) string {
	id, _ := c.Get(ctxAdminID).(string)
	return id
}
