package middleware

import (
	"strings"

	"realestate-backend/internal/shared/response"
	"realestate-backend/pkg/jwt"
	"realestate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextKeySubject = "subject"
	ContextKeyScopes  = "scopes"
)

// AuthMiddleware - Middleware xác thực JWT token và kiểm tra scope
func AuthMiddleware(manager *jwt.Manager, requiredScope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token từ "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify signature, issuer, audience, expiry
		claims, err := manager.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug().Err(err).Msg("Token rejected")
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// 4. Scope
		if requiredScope != "" && !claims.HasScope(requiredScope) {
			response.Forbidden(c, "Missing required scope: "+requiredScope)
			c.Abort()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyScopes, strings.Fields(claims.Scope))
		c.Next()
	}
}

// GetSubject trả về subject của token đã xác thực
func GetSubject(c *gin.Context) (string, bool) {
	sub := c.GetString(ContextKeySubject)
	return sub, sub != ""
}
