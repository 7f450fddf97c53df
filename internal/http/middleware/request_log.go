package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/platform/ctxutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// RequestLogger logs one line per request after the handler chain completes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	rlog := log.With("Middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "request_id", td.RequestID)
			if td.TraceID != "" {
				fields = append(fields, "trace_id", td.TraceID)
			}
		}

		switch {
		case c.Writer.Status() >= 500:
			rlog.Error("request", fields...)
		case c.Writer.Status() >= 400:
			rlog.Warn("request", fields...)
		default:
			rlog.Info("request", fields...)
		}
	}
}
