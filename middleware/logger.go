package middleware

import (
	"log/slog"
	"time"

	"order-service/pkg/ctxmanage"
	"order-service/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger assigns every request a trace id (honoring one sent by the
// gateway) and logs the request on completion.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := c.Request.Header.Get("X-Trace-Id")
		if traceId == "" {
			traceId = uuid.NewString()
		}
		c.Set(ctxmanage.TraceIDKey, traceId)
		c.Writer.Header().Set("X-Trace-Id", traceId)

		start := time.Now()
		c.Next()

		slog.Info("request completed",
			slog.String(logkey.TraceID, traceId),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
