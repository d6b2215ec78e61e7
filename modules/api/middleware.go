package api

import (
	"strings"

	"github.com/example/task-manager/domain/apperror"
	"github.com/example/task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key under which the authenticated user view is
	// stored in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware validates the bearer token and resolves the caller's
// account before any protected handler runs.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format. Use: Bearer <token>")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return unauthorized(c, "Token is required")
		}

		current, err := authPort.CurrentUser(c.UserContext(), token)
		if err != nil {
			if appErr, ok := apperror.Parse(err.Error()); ok && appErr.Kind == apperror.KindAuthentication {
				return unauthorized(c, appErr.Message)
			}
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, current)
		return c.Next()
	}
}

// currentUser returns the authenticated user view stored by the middleware.
func currentUser(c *fiber.Ctx) (auth.UserResponse, bool) {
	u, ok := c.Locals(UserContextKey).(auth.UserResponse)
	return u, ok
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: apperror.CodeAuthentication,
	})
}
