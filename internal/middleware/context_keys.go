package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	loggerCtxKey contextKey = "logger"
	operatorKey  contextKey = "operatorID"
)

// GinOperatorKey is the gin-context key the auth middleware sets.
const GinOperatorKey = "operatorID"

// GetOperatorIDFromContext resolves the authenticated operator id, checking
// the gin context first and the request context second.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	if id, ok := c.Get(GinOperatorKey); ok {
		if s, ok := id.(string); ok && s != "" {
			return s, true
		}
	}
	if s, ok := c.Request.Context().Value(operatorKey).(string); ok && s != "" {
		return s, true
	}
	return "", false
}

// WithOperatorID stamps the operator id onto a plain context, for code
// running outside the HTTP request cycle.
func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorKey, operatorID)
}
