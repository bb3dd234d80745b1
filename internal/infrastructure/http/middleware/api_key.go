package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-notes/errors"
)

// APIKeyHeader carries the shared API key
const APIKeyHeader = "X-API-Key"

// Skipper reports whether a request bypasses the API key check
type Skipper func(c echo.Context) bool

// EchoAPIKey returns an Echo middleware that requires X-API-Key (or a Bearer
// token) to match key. An empty key disables the check.
func EchoAPIKey(key string, skip Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" || (skip != nil && skip(c)) {
				return next(c)
			}

			provided := extractKey(c)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				appErr := errors.ErrUnauthenticated()
				return c.JSON(appErr.HTTPCode, map[string]interface{}{
					"code":    appErr.Code,
					"message": appErr.Message,
				})
			}
			return next(c)
		}
	}
}

// extractKey reads the key from X-API-Key, falling back to "Authorization: Bearer <key>"
func extractKey(c echo.Context) string {
	if k := strings.TrimSpace(c.Request().Header.Get(APIKeyHeader)); k != "" {
		return k
	}
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SkipPathSuffix skips requests whose route path ends with suffix
func SkipPathSuffix(suffix string) Skipper {
	return func(c echo.Context) bool {
		return strings.HasSuffix(c.Path(), suffix)
	}
}
