package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nativedelight/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestObserver records request latency.
type RequestObserver interface {
	ObserveRequest(route string, status int, duration time.Duration)
}

// RequestLogger tags the request context with a request id and route, and
// logs one line per request once the handler chain has run.
func RequestLogger(logg *logger.Logger, observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		route = c.Request.Method + " " + route

		ctx := logg.WithRequestID(c.Request.Context(), requestID)
		ctx = logg.WithRoute(ctx, route)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		if observer != nil {
			observer.ObserveRequest(route, status, latency)
		}

		entry := logg.WithFields(c.Request.Context(), map[string]any{
			"status":     status,
			"latency_ms": latency.Milliseconds(),
		})
		switch {
		case status >= 500:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last
			}
			logg.Error(entry, "request failed", err)
		case status >= 400:
			logg.Warn(entry, "request rejected")
		default:
			logg.Info(entry, "request completed")
		}
	}
}
