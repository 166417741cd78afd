package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"order-service/internal/auth"
	"order-service/pkg/ctxmanage"
	"order-service/pkg/logkey"

	"github.com/gin-gonic/gin"
)

type Mid struct {
	keys *auth.Keys
}

func NewMid(keys *auth.Keys) (*Mid, error) {
	if keys == nil {
		return nil, fmt.Errorf("auth keys are nil")
	}
	return &Mid{keys: keys}, nil
}

// Authentication validates the Bearer token and stores the claims in the
// request context for handlers to pick up via auth.ClaimsKey.
func (m *Mid) Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.GetTraceIdOfRequest(c)

		authHeader := c.Request.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			slog.Error("missing or malformed authorization header", slog.String(logkey.TraceID, traceId))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHENTICATED", "message": "expected Authorization: Bearer <token>"},
			})
			return
		}

		claims, err := m.keys.ValidateToken(parts[1])
		if err != nil {
			slog.Error("token validation failed", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHENTICATED", "message": "invalid or expired token"},
			})
			return
		}

		ctx := context.WithValue(c.Request.Context(), auth.ClaimsKey, claims)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize gates a handler on a required role.
func (m *Mid) Authorize(next gin.HandlerFunc, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
		if !ok || !claims.HasRole(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "PERMISSION_DENIED", "message": "insufficient role"},
			})
			return
		}
		next(c)
	}
}
