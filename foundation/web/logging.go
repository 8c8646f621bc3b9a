package web

import (
	"expvar"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

var (
	requestsTotal = expvar.NewInt("http_requests_total")
	requestErrors = expvar.NewInt("http_request_errors_total")
)

// RequestLogger logs one line per request and keeps the expvar counters.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		requestsTotal.Add(1)
		if status >= 500 {
			requestErrors.Add(1)
		}

		log.Printf("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start).Milliseconds(), requestID)
	}
}
