package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// identityKey is the echo context key under which the verified identity is
// stored for downstream handlers.
const identityKey = "identity"

// AccessVerifier validates a raw access token and returns the identity it
// carries.
type AccessVerifier interface {
	VerifyAccessToken(tokenString string) (*domain.Identity, error)
}

// Auth validates the bearer token and injects the caller's identity into the
// request context. Requests without a valid token are rejected.
func Auth(verifier AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}
			identity, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				return err
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// OptionalAuth injects the identity when a valid bearer token is present and
// lets the request through anonymously on any failure, so public routes can
// personalize for logged-in callers without locking anyone out.
func OptionalAuth(verifier AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return next(c)
			}
			identity, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				return next(c)
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the verified identity stored by Auth, or nil when the
// request is anonymous.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", domain.NewUnauthorized("Missing authorization header")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.NewUnauthorized("Invalid authorization header format")
	}
	return parts[1], nil
}
