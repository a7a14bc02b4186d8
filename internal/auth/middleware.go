package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	errs "jobtrack/internal/errors"
)

// ContextKey is where the middleware stores the verified *Claims on the
// request context.
const ContextKey = "user"

// Middleware returns the authorization gate for protected routes. Every
// request is evaluated independently: a bearer token is extracted from the
// Authorization header, verified through the JWT service, and the resolved
// claims are attached to the context. The three rejection classes (no token,
// expired token, invalid token) all yield 401 with distinct messages.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.ValidateToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
					Error: "token expired",
					Code:  "TOKEN_EXPIRED",
				})
			case errors.Is(err, ErrTokenInvalid):
				return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
					Error: "invalid token",
					Code:  "TOKEN_INVALID",
				})
			default:
				// extraction failed: no Authorization header or not "Bearer <token>"
				return echo.NewHTTPError(http.StatusUnauthorized, errs.ErrorResponse{
					Error: "no token provided or invalid format",
					Code:  "TOKEN_MISSING",
				})
			}
		},
	})
}

// CurrentUser returns the claims attached by Middleware, or nil on an
// unprotected route.
func CurrentUser(c echo.Context) *Claims {
	claims, _ := c.Get(ContextKey).(*Claims)
	return claims
}
