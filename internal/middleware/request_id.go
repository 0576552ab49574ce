package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	contextKeyRequestID = "request_id"
)

// RequestIDFromContext returns the id set by RequestID, or "" if not set.
func RequestIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyRequestID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// RequestID echoes the caller's X-Request-ID when it is a UUID and replaces it
// otherwise, then logs every failed request under it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestID(c.GetHeader(HeaderRequestID))
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		c.Next()

		if status := c.Writer.Status(); status >= 500 {
			log.Printf("request %s: %s %s -> %d %v", id, c.Request.Method, c.Request.URL.Path, status, c.Errors.ByType(gin.ErrorTypeAny))
		}
	}
}

// requestID returns raw in canonical form, or a fresh id if raw is not a UUID.
// Only parsed values reach headers and logs.
func requestID(raw string) string {
	if u, err := uuid.Parse(raw); err == nil {
		return u.String()
	}
	return uuid.NewString()
}
