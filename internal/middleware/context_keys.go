package middleware

import (
	"context"
	"log/slog"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type so context values cannot collide with other
// packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetLoggerFromCtx retrieves the request-scoped logger from the standard
// context, falling back to the default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			id, ok := userIDVal.(string)
			return id, ok
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetActorFromContext builds the domain actor from the authenticated
// identity and role placed in the context by AuthMiddleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}

	roleVal := c.Request.Context().Value(userRoleKey)
	role, ok := roleVal.(domain.Role)
	if !ok || !role.IsValid() {
		return domain.Actor{}, false
	}

	return domain.Actor{UserID: userID, Role: role}, true
}
