package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())

		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// Timer measures invocation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	plugin  string
	tool    string
}

// NewTimer creates a new invocation timer
func NewTimer(metrics *Metrics, plugin, tool string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		plugin:  plugin,
		tool:    tool,
	}
}

// Stop stops the timer and records the invocation
func (t *Timer) Stop(status string) {
	duration := time.Since(t.start)
	t.metrics.RecordInvocation(t.plugin, t.tool, status, duration)
}
