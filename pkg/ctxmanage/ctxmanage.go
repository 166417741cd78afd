// Package ctxmanage plumbs the per-request trace id set by the logging
// middleware.
package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDKey is the gin-context key the Logger middleware stores the trace
// id under.
const TraceIDKey = "traceId"

// GetTraceIdOfRequest returns the request's trace id, minting one if the
// middleware has not run (e.g. in tests that call handlers directly).
func GetTraceIdOfRequest(c *gin.Context) string {
	if traceId, ok := c.Get(TraceIDKey); ok {
		if s, ok := traceId.(string); ok && s != "" {
			return s
		}
	}
	return uuid.NewString()
}
