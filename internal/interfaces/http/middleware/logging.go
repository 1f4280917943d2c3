package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/shared/logger"
)

// CustomLogger writes one line per request. Paths in skipPaths that
// answer 2xx, such as probes and scrapes, are not logged.
func CustomLogger(log logger.Interface, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if skip[c.Request.URL.Path] && status < 300 {
			return
		}

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
			"request_id", c.GetString(ContextKeyRequestID),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", q)
		}
		if actorID := c.GetString(ContextKeyActorID); actorID != "" {
			args = append(args, "actor_id", actorID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		default:
			log.Debugw("request completed", args...)
		}
	}
}
