// Package middleware contains the HTTP middleware of the delivery layer.
package middleware

import (
	"slices"
	"strings"

	"tapify/internal/delivery/http/response"
	"tapify/internal/domain/entity"
	"tapify/internal/domain/repository"
	"tapify/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUser  = "user"
	ContextKeyRoles = "roles"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	store    repository.Store
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, store repository.Store) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, store: store}
}

// Authenticate validates the bearer token and resolves the account it
// names. The full user record rides on the echo context so handlers can
// attribute activity entries without another lookup.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		user, err := m.findUser(c, claims.UserID)
		if err != nil {
			return response.InternalServerError(c, "STORE_EXECUTE_FAILED", "Failed to load account")
		}
		if user == nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Account no longer exists")
		}

		c.Set(ContextKeyUser, *user)
		c.Set(ContextKeyRoles, claims.Roles)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(ContextKeyRoles).([]string)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if !slices.Contains(roles, requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c echo.Context) (entity.User, bool) {
	user, ok := c.Get(ContextKeyUser).(entity.User)

	return user, ok
}

func (m *AuthMiddleware) findUser(c echo.Context, userID string) (*entity.User, error) {
	users, err := m.store.Users(c.Request().Context())
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}

	return nil, nil
}
