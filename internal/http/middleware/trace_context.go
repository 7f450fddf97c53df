package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/clintwin/clintwin-backend/internal/platform/ctxutil"
)

// TraceContext assigns each request an id, echoes it in X-Request-Id, and
// links it with the active otel trace when one exists.
func TraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		td := &ctxutil.TraceData{RequestID: requestID}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			td.TraceID = sc.TraceID().String()
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Header("X-Request-Id", requestID)
		c.Next()
	}
}
