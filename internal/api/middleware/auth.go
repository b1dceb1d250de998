package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenKey is the context key under which the opaque session token is stored.
const TokenKey = "token"

const cookieName = "session_token"

// Token extracts the opaque bearer token, if any, into the request context.
// Tokens arrive either as an Authorization bearer header or as a cookie; the
// header wins when both are present. Resolution and authorization happen
// downstream in the access guard, so a missing or unknown token is not an
// error here — operations that list the guest role are reachable without one.
func Token() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if header := c.Request().Header.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					c.Set(TokenKey, parts[1])
					return next(c)
				}
			}

			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				c.Set(TokenKey, cookie.Value)
			}
			return next(c)
		}
	}
}
