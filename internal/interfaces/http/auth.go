package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "userID"

// AuthMiddleware verifies the identity provider's session token and puts the
// caller's user id into the echo context. Token issuance and revocation are
// the provider's business; only the signature and expiry are checked here.
func AuthMiddleware(sessionSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return c.JSON(http.StatusUnauthorized, envelope{
					"success": false,
					"message": "missing bearer token",
				})
			}

			token, err := jwt.Parse(tokenString,
				func(t *jwt.Token) (interface{}, error) {
					return []byte(sessionSecret), nil
				},
				jwt.WithValidMethods([]string{"HS256"}),
			)
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, envelope{
					"success": false,
					"message": "invalid session token",
				})
			}

			userID, err := token.Claims.GetSubject()
			if err != nil || userID == "" {
				return c.JSON(http.StatusUnauthorized, envelope{
					"success": false,
					"message": "invalid session token",
				})
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

func callerID(c echo.Context) string {
	userID, _ := c.Get(userIDContextKey).(string)
	return userID
}
