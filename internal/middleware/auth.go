package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Anjos2/oportuniapp/internal/core/domain"
	"github.com/Anjos2/oportuniapp/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and places the actor identity into the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		role := domain.Role(claims.Role)
		if userID == "" || !role.IsValid() {
			logger.Error("Token valid but identity claims incomplete")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctxWithRole := context.WithValue(ctxWithUser, userRoleKey, role)

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctxWithAll := context.WithValue(ctxWithRole, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithAll)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor from a Bearer token when one is
// present but lets anonymous requests through. Catalog routes use it so a
// logged-in viewer gets personalized flags without requiring a session.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			// An invalid token on an optional route is treated as anonymous.
			GetLoggerFromCtx(c.Request.Context()).Debug("Ignoring invalid token on optional-auth route", "error", err)
			c.Next()
			return
		}

		userID := claims.Subject
		role := domain.Role(claims.Role)
		if userID == "" || !role.IsValid() {
			c.Next()
			return
		}

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctxWithRole := context.WithValue(ctxWithUser, userRoleKey, role)
		c.Request = c.Request.WithContext(ctxWithRole)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated actor carries one of
// the given roles. It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
