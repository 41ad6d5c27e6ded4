// Package middleware contains reusable Echo middleware: the JWT guard,
// the redis response cache and the redis token-bucket rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type authError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JWTAuth validates a Bearer access token and injects the subject and
// nickname claims into the request context. Protected handlers read
// them via c.Get("user_id") and c.Get("nickname"). Requests without a
// valid token are rejected with 401 before any handler logic runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, authError{Message: "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, authError{Message: "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, authError{Message: "invalid claims"})
			}

			c.Set("user_id", claims["sub"])
			c.Set("nickname", claims["nickname"])
			return next(c)
		}
	}
}
