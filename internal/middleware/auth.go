package middleware

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/util"
	"cbt_portal_backend/pkg/logger"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenBlacklist reports whether a token id has been revoked by logout.
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func AuthMiddleware(secret string, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !claims.Role.Valid() {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Log.Warn("Token blacklist lookup failed", zap.Error(err))
			}
			if revoked {
				util.Unauthorized(c)
				c.Abort()
				return
			}
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware admits exactly the listed roles.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	allowed := make(map[model.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !allowed[user.Role] {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
