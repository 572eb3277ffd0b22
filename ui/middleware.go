package ui

import (
	"time"

	"github.com/gin-gonic/gin"

	"presence-analyzer/domain/core"
	"presence-analyzer/ports"
)

// RequestIDHeader is the HTTP header carrying the request ID
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates a new one, and
// echoes it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := core.RequestID(c.GetHeader(RequestIDHeader))
		if id.IsEmpty() {
			id = core.NewRequestID()
		}
		c.Set(requestIDKey, id.String())
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs one line per request after it completes
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		format := "[HTTP] %s %s %d %s request_id=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), GetRequestID(c)}
		switch {
		case status >= 500:
			logger.Error(format, args...)
		case status >= 400:
			logger.Warn(format, args...)
		default:
			logger.Info(format, args...)
		}
	}
}
